// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Tool dumpmempool prints the contents of a mempool snapshot or restores it
// into a scratch pool to report what a node would load from it.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/nocturnalnematode/VerusCoin-sub001/coinutil"
	"github.com/nocturnalnematode/VerusCoin-sub001/internal/log"
	"github.com/nocturnalnematode/VerusCoin-sub001/mempool"
	"github.com/nocturnalnematode/VerusCoin-sub001/mempool/poolstore"
)

var cfg *config

// deltaPrinter prints prioritisation deltas as they are read.
type deltaPrinter struct{}

func (deltaPrinter) PrioritiseTransaction(txHash *chainhash.Hash,
	priorityDelta float64, feeDelta int64) {

	fmt.Printf("delta %v priority %+g fee %v\n", txHash, priorityDelta,
		btcutil.Amount(feeDelta))
}

// printTx prints one snapshot transaction.
func printTx(tx *coinutil.Tx, added time.Time) error {
	msgTx := tx.MsgTx()
	fmt.Printf("tx %v added %v size %d inputs %d outputs %d expiry %d\n",
		tx.Hash(), added.UTC().Format(time.RFC3339), msgTx.SerializeSize(),
		len(msgTx.TxIn), len(msgTx.TxOut), msgTx.ExpiryHeight)
	return nil
}

// verify restores the snapshot into a scratch pool.  Inputs and fees are
// not resolved against a chain, so only pool-internal structure is checked.
func verify(store *poolstore.Store) error {
	pool := mempool.New(&mempool.Config{ChainParams: activeNetParams})
	accept := func(tx *coinutil.Tx, added time.Time) error {
		if conflicts := pool.CheckNameConflicts(tx); len(conflicts) > 0 {
			return fmt.Errorf("name claim conflicts with %v",
				conflicts[0].Hash())
		}
		for _, txIn := range tx.MsgTx().TxIn {
			if spender := pool.CheckSpend(txIn.PreviousOutPoint); spender != nil {
				return fmt.Errorf("input %v already spent by %v",
					txIn.PreviousOutPoint, spender.Hash())
			}
		}
		desc := mempool.NewTxDesc(tx, 0, added, 0, 0, false, 0)
		return pool.AddUnchecked(desc, nil, false)
	}

	stats, err := store.Load(pool, accept, cfg.MaxAge, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("accepted %d %s, failed %d, expired %d, deltas %d\n",
		stats.Accepted, log.PickNoun(uint64(stats.Accepted),
			"transaction", "transactions"),
		stats.Failed, stats.Expired, stats.Deltas)
	fmt.Printf("pool size %d bytes, memory usage %d bytes\n",
		pool.TotalTxSize(), pool.DynamicMemoryUsage())
	return nil
}

func realMain() error {
	tcfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	cfg = tcfg
	cmdsLog := log.CmdsLog
	defer func() {
		if log.LogRotator != nil {
			log.LogRotator.Close()
		}
	}()

	path := filepath.Join(cfg.DataDir, defaultSnapshotName)
	cmdsLog.Infof("Opening mempool snapshot %s", path)
	store, err := poolstore.Open(path)
	if err != nil {
		cmdsLog.Errorf("Failed to open snapshot: %v", err)
		return err
	}
	defer store.Close()

	if cfg.Verify {
		return verify(store)
	}
	_, err = store.Load(deltaPrinter{}, printTx, cfg.MaxAge, time.Now())
	return err
}

func main() {
	if err := realMain(); err != nil {
		os.Exit(1)
	}
}
