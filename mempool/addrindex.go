// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"bytes"
	"sort"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/nocturnalnematode/VerusCoin-sub001/blockchain"
	"github.com/nocturnalnematode/VerusCoin-sub001/wire"
)

// AddressIndexKey identifies one credit or debit of an address by a pooled
// transaction.
type AddressIndexKey struct {
	Address  AddressKey
	TxHash   chainhash.Hash
	Index    uint32
	Spending bool
}

// AddressDeltaValue is the value change recorded for an AddressIndexKey.
// PrevOut is set for spends.
type AddressDeltaValue struct {
	Time    time.Time
	Amount  int64
	PrevOut *wire.OutPoint
}

// AddressDelta is a single address index entry as returned by
// AddressDeltas.
type AddressDelta struct {
	Key   AddressIndexKey
	Value AddressDeltaValue
}

// SpentIndexValue describes the pooled input spending an outpoint.
type SpentIndexValue struct {
	TxHash      chainhash.Hash
	InputIndex  uint32
	BlockHeight int32
	Satoshis    int64
	AddressType AddressType
	AddressHash [20]byte
}

// prevOutput returns the output spent by txIn from the pool or the view.
//
// This function MUST be called with the mempool lock held (for reads).
func (mp *TxPool) prevOutput(txIn *wire.TxIn, view blockchain.CoinView) *wire.TxOut {
	prevOut := &txIn.PreviousOutPoint
	if desc, ok := mp.pool[prevOut.Hash]; ok {
		outs := desc.Tx.MsgTx().TxOut
		if prevOut.Index < uint32(len(outs)) {
			return outs[prevOut.Index]
		}
		return nil
	}
	if view == nil {
		return nil
	}
	coins := view.AccessCoins(&prevOut.Hash)
	if coins == nil {
		return nil
	}
	return coins.Output(prevOut.Index)
}

// addAddressIndex records the address activity of desc.
//
// This function MUST be called with the mempool lock held (for writes).
func (mp *TxPool) addAddressIndex(desc *TxDesc, view blockchain.CoinView) {
	tx := desc.Tx
	txHash := *tx.Hash()
	params := mp.cfg.ChainParams.AddressParams
	var inserted []AddressIndexKey
	insert := func(key AddressIndexKey, value AddressDeltaValue) {
		if _, exists := mp.addrIndex[key]; exists {
			return
		}
		mp.addrIndex[key] = value
		inserted = append(inserted, key)
	}

	if !tx.IsCoinBase() {
		for i, txIn := range tx.MsgTx().TxIn {
			prev := mp.prevOutput(txIn, view)
			if prev == nil {
				continue
			}
			prevOut := txIn.PreviousOutPoint
			for _, addr := range outputAddressKeys(prev, params) {
				key := AddressIndexKey{
					Address:  addr,
					TxHash:   txHash,
					Index:    uint32(i),
					Spending: true,
				}
				insert(key, AddressDeltaValue{
					Time:    desc.Added,
					Amount:  -prev.Value,
					PrevOut: &prevOut,
				})
			}
		}
	}

	for i, out := range tx.MsgTx().TxOut {
		for _, addr := range outputAddressKeys(out, params) {
			key := AddressIndexKey{
				Address: addr,
				TxHash:  txHash,
				Index:   uint32(i),
			}
			insert(key, AddressDeltaValue{
				Time:   desc.Added,
				Amount: out.Value,
			})
		}
	}

	if len(inserted) > 0 {
		mp.addrInserted[txHash] = inserted
	}
}

// removeAddressIndex erases the address activity recorded for txHash.
//
// This function MUST be called with the mempool lock held (for writes).
func (mp *TxPool) removeAddressIndex(txHash *chainhash.Hash) {
	for _, key := range mp.addrInserted[*txHash] {
		delete(mp.addrIndex, key)
	}
	delete(mp.addrInserted, *txHash)
}

// addressEntries returns every address index entry of the given addresses.
//
// This function MUST be called with the mempool lock held (for reads).
func (mp *TxPool) addressEntries(addrs []AddressKey) []AddressDelta {
	want := make(map[AddressKey]struct{}, len(addrs))
	for _, addr := range addrs {
		want[addr] = struct{}{}
	}

	var deltas []AddressDelta
	for key, value := range mp.addrIndex {
		if _, ok := want[key.Address]; ok {
			deltas = append(deltas, AddressDelta{Key: key, Value: value})
		}
	}
	return deltas
}

// AddressDeltas returns the pooled credits and debits of the given
// addresses ordered by address, transaction hash, index and direction.
//
// This function is safe for concurrent access.
func (mp *TxPool) AddressDeltas(addrs []AddressKey) []AddressDelta {
	mp.mtx.RLock()
	deltas := mp.addressEntries(addrs)
	mp.mtx.RUnlock()

	sort.Slice(deltas, func(i, j int) bool {
		a, b := &deltas[i].Key, &deltas[j].Key
		if a.Address.Type != b.Address.Type {
			return a.Address.Type < b.Address.Type
		}
		if c := bytes.Compare(a.Address.Hash[:], b.Address.Hash[:]); c != 0 {
			return c < 0
		}
		if c := bytes.Compare(a.TxHash[:], b.TxHash[:]); c != 0 {
			return c < 0
		}
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		return !a.Spending && b.Spending
	})
	return deltas
}

// spentEntry is a spent index entry as recorded by the transaction that
// inserted it.
type spentEntry struct {
	op    wire.OutPoint
	value SpentIndexValue
}

// addSpentIndex records the outpoints spent by desc.
//
// This function MUST be called with the mempool lock held (for writes).
func (mp *TxPool) addSpentIndex(desc *TxDesc, view blockchain.CoinView) {
	tx := desc.Tx
	if tx.IsCoinBase() {
		return
	}

	txHash := *tx.Hash()
	params := mp.cfg.ChainParams.AddressParams
	var inserted []spentEntry
	for i, txIn := range tx.MsgTx().TxIn {
		prev := mp.prevOutput(txIn, view)
		if prev == nil {
			continue
		}
		value := SpentIndexValue{
			TxHash:      txHash,
			InputIndex:  uint32(i),
			BlockHeight: -1,
			Satoshis:    prev.Value,
		}
		if addrs := extractAddressKeys(prev.PkScript, params); len(addrs) > 0 {
			value.AddressType = addrs[0].Type
			value.AddressHash = addrs[0].Hash
		}
		mp.spentIndex[txIn.PreviousOutPoint] = value
		inserted = append(inserted, spentEntry{
			op:    txIn.PreviousOutPoint,
			value: value,
		})
	}

	if len(inserted) > 0 {
		mp.spentInserted[txHash] = inserted
	}
}

// removeSpentIndex erases the spent index entries recorded for txHash.  An
// outpoint whose claim has been handed back to a displaced spender points at
// that spender again.
//
// This function MUST be called with the mempool lock held (for writes) and
// after the outpoint claims of txHash have been released.
func (mp *TxPool) removeSpentIndex(txHash *chainhash.Hash) {
	for _, entry := range mp.spentInserted[*txHash] {
		v, ok := mp.spentIndex[entry.op]
		if !ok || v.TxHash != *txHash {
			continue
		}
		delete(mp.spentIndex, entry.op)

		ip, ok := mp.outpoints[entry.op]
		if !ok {
			continue
		}
		for _, prior := range mp.spentInserted[*ip.tx.Hash()] {
			if prior.op == entry.op {
				mp.spentIndex[entry.op] = prior.value
				break
			}
		}
	}
	delete(mp.spentInserted, *txHash)
}

// SpentInfo returns the pooled input spending the outpoint.
//
// This function is safe for concurrent access.
func (mp *TxPool) SpentInfo(op wire.OutPoint) (SpentIndexValue, bool) {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()

	value, ok := mp.spentIndex[op]
	return value, ok
}
