// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package poolstore

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/cockroachdb/pebble"
	"github.com/nocturnalnematode/VerusCoin-sub001/coinutil"
	"github.com/nocturnalnematode/VerusCoin-sub001/mempool"
	"github.com/pkg/errors"
)

// currentVersion is the snapshot format written by Dump.
const currentVersion = 1

var (
	keyVersion  = []byte("v")
	prefixTx    = byte('t')
	prefixDelta = byte('d')
)

// ErrUnknownVersion is returned by Load when the snapshot was written in a
// format this package does not understand.
var ErrUnknownVersion = errors.New("unknown mempool snapshot version")

// Prioritiser records prioritisation deltas.  The memory pool satisfies it.
type Prioritiser interface {
	PrioritiseTransaction(txHash *chainhash.Hash, priorityDelta float64,
		feeDelta int64)
}

// AcceptFunc submits a transaction read from a snapshot for admission,
// carrying the time it originally entered the pool.
type AcceptFunc func(tx *coinutil.Tx, added time.Time) error

// LoadStats summarizes the outcome of a Load.
type LoadStats struct {
	Accepted int
	Failed   int
	Expired  int
	Deltas   int
}

// Store is a pebble backed mempool snapshot.
type Store struct {
	db *pebble.DB
}

// Open opens or creates the snapshot database at path.
func Open(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	return &Store{db: db}, nil
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	err := s.db.Flush()
	if err != nil {
		return errors.Wrap(err, "on flush")
	}
	return errors.Wrap(s.db.Close(), "on close")
}

func txKey(seq uint32) []byte {
	key := make([]byte, 5)
	key[0] = prefixTx
	binary.BigEndian.PutUint32(key[1:], seq)
	return key
}

func deltaKey(hash *chainhash.Hash) []byte {
	key := make([]byte, 1+chainhash.HashSize)
	key[0] = prefixDelta
	copy(key[1:], hash[:])
	return key
}

// dependencyOrder returns descs ordered so that every transaction follows
// the pooled transactions it spends.
func dependencyOrder(descs []*mempool.TxDesc) []*mempool.TxDesc {
	byHash := make(map[chainhash.Hash]*mempool.TxDesc, len(descs))
	for _, desc := range descs {
		byHash[*desc.Tx.Hash()] = desc
	}

	ordered := make([]*mempool.TxDesc, 0, len(descs))
	visited := make(map[chainhash.Hash]struct{}, len(descs))
	var visit func(desc *mempool.TxDesc)
	visit = func(desc *mempool.TxDesc) {
		hash := *desc.Tx.Hash()
		if _, ok := visited[hash]; ok {
			return
		}
		visited[hash] = struct{}{}
		for _, txIn := range desc.Tx.MsgTx().TxIn {
			if parent, ok := byHash[txIn.PreviousOutPoint.Hash]; ok {
				visit(parent)
			}
		}
		ordered = append(ordered, desc)
	}
	for _, desc := range descs {
		visit(desc)
	}
	return ordered
}

// Dump replaces the stored snapshot with the current contents and
// prioritisation deltas of src.  It returns the number of transactions
// written.
func (s *Store) Dump(src mempool.TxMempool) (int, error) {
	start := time.Now()
	descs := dependencyOrder(src.TxDescs())
	deltas := src.Deltas()

	batch := s.db.NewBatch()
	defer batch.Close()

	err := batch.DeleteRange([]byte{prefixTx}, []byte{prefixTx + 1}, nil)
	if err != nil {
		return 0, errors.Wrap(err, "clearing transactions")
	}
	err = batch.DeleteRange([]byte{prefixDelta}, []byte{prefixDelta + 1}, nil)
	if err != nil {
		return 0, errors.Wrap(err, "clearing deltas")
	}

	var version [4]byte
	binary.BigEndian.PutUint32(version[:], currentVersion)
	if err := batch.Set(keyVersion, version[:], nil); err != nil {
		return 0, errors.WithStack(err)
	}

	for i, desc := range descs {
		txBytes, err := desc.Tx.MsgTx().Bytes()
		if err != nil {
			return 0, errors.Wrapf(err, "serializing %v", desc.Tx.Hash())
		}
		value := make([]byte, 8+len(txBytes))
		binary.BigEndian.PutUint64(value, uint64(desc.Added.UnixNano()))
		copy(value[8:], txBytes)
		if err := batch.Set(txKey(uint32(i)), value, nil); err != nil {
			return 0, errors.WithStack(err)
		}
	}

	for hash, delta := range deltas {
		hash := hash
		var value [16]byte
		binary.BigEndian.PutUint64(value[:8], math.Float64bits(delta.Priority))
		binary.BigEndian.PutUint64(value[8:], uint64(delta.Fee))
		if err := batch.Set(deltaKey(&hash), value[:], nil); err != nil {
			return 0, errors.WithStack(err)
		}
	}

	if err := batch.Commit(pebble.Sync); err != nil {
		return 0, errors.Wrap(err, "committing snapshot")
	}

	log.Infof("Dumped %d mempool transactions and %d deltas in %v",
		len(descs), len(deltas), time.Since(start))
	return len(descs), nil
}

// Load applies the stored prioritisation deltas through prioritiser and
// then submits every stored transaction to accept in the order they were
// dumped.  Transactions that entered the pool more than expiry before now
// are skipped.  A zero expiry disables the age check.  Acceptance failures
// are counted, not returned.
func (s *Store) Load(prioritiser Prioritiser, accept AcceptFunc,
	expiry time.Duration, now time.Time) (*LoadStats, error) {

	stats := &LoadStats{}
	version, closer, err := s.db.Get(keyVersion)
	if errors.Is(err, pebble.ErrNotFound) {
		return stats, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading version")
	}
	v := uint32(0)
	if len(version) == 4 {
		v = binary.BigEndian.Uint32(version)
	}
	closer.Close()
	if v != currentVersion {
		return nil, errors.Wrapf(ErrUnknownVersion, "version %d", v)
	}

	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte{prefixDelta},
		UpperBound: []byte{prefixDelta + 1},
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating delta iterator")
	}
	for iter.First(); iter.Valid(); iter.Next() {
		key, value := iter.Key(), iter.Value()
		if len(key) != 1+chainhash.HashSize || len(value) != 16 {
			iter.Close()
			return nil, errors.Errorf("malformed delta record %x", key)
		}
		hash, _ := chainhash.NewHash(key[1:])
		priority := math.Float64frombits(binary.BigEndian.Uint64(value[:8]))
		fee := int64(binary.BigEndian.Uint64(value[8:]))
		prioritiser.PrioritiseTransaction(hash, priority, fee)
		stats.Deltas++
	}
	if err := iter.Close(); err != nil {
		return nil, errors.Wrap(err, "closing delta iterator")
	}

	iter, err = s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte{prefixTx},
		UpperBound: []byte{prefixTx + 1},
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating transaction iterator")
	}
	defer iter.Close()
	for iter.First(); iter.Valid(); iter.Next() {
		value := iter.Value()
		if len(value) < 8 {
			return nil, errors.Errorf("malformed transaction record %x",
				iter.Key())
		}
		added := time.Unix(0, int64(binary.BigEndian.Uint64(value[:8])))
		tx, err := coinutil.NewTxFromBytes(value[8:])
		if err != nil {
			return nil, errors.Wrapf(err, "decoding transaction record %x",
				iter.Key())
		}

		if expiry > 0 && added.Add(expiry).Before(now) {
			stats.Expired++
			continue
		}
		if err := accept(tx, added); err != nil {
			log.Debugf("Snapshot transaction %v rejected: %v", tx.Hash(), err)
			stats.Failed++
			continue
		}
		stats.Accepted++
	}

	log.Infof("Loaded %d mempool transactions (%d failed, %d expired), "+
		"%d deltas", stats.Accepted, stats.Failed, stats.Expired,
		stats.Deltas)
	return stats, nil
}
