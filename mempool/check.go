// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"math/rand"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/nocturnalnematode/VerusCoin-sub001/blockchain"
	"github.com/nocturnalnematode/VerusCoin-sub001/coinutil"
	"github.com/nocturnalnematode/VerusCoin-sub001/wire"
)

// Check verifies every internal invariant of the pool against the confirmed
// state in view.  It runs with probability frequency, so a frequency of zero
// disables it and one always runs it.  Pooled transactions are replayed on a
// scratch view in dependency order, so every input must resolve either to
// view or to another pooled transaction.  The first violation is returned
// as an AssertError, which callers must treat as fatal.
//
// This function is safe for concurrent access.
func (mp *TxPool) Check(view blockchain.CoinView, frequency float64) error {
	if frequency <= 0 || rand.Float64() >= frequency {
		return nil
	}

	mp.mtx.RLock()
	defer mp.mtx.RUnlock()
	view = mp.heldView(view)

	log.Debugf("Checking mempool with %d transactions and %d inputs",
		len(mp.pool), len(mp.outpoints))

	scratch := blockchain.NewCoinsViewCache(view)
	var checkTotal, innerUsage int64
	var waiting []*TxDesc
	for hash, desc := range mp.pool {
		tx := desc.Tx
		if *tx.Hash() != hash {
			return assertf("entry %v holds transaction %v", hash, tx.Hash())
		}
		checkTotal += desc.Size
		innerUsage += desc.UsageSize

		msgTx := tx.MsgTx()
		dependsWait := false
		if !tx.IsCoinBase() {
			for i, txIn := range msgTx.TxIn {
				prevOut := txIn.PreviousOutPoint
				if parent, ok := mp.pool[prevOut.Hash]; ok {
					outs := parent.Tx.MsgTx().TxOut
					if prevOut.Index >= uint32(len(outs)) {
						return assertf("transaction %v spends "+
							"missing pooled output %v", hash,
							prevOut)
					}
					dependsWait = true
				} else {
					coins := view.AccessCoins(&prevOut.Hash)
					if coins == nil || !coins.IsAvailable(prevOut.Index) {
						return assertf("transaction %v spends "+
							"unavailable output %v", hash, prevOut)
					}
				}

				ip, ok := mp.outpoints[prevOut]
				if !ok || ip.tx != tx || ip.index != uint32(i) {
					return assertf("outpoint %v is not claimed by "+
						"input %d of %v", prevOut, i, hash)
				}
			}
		}

		for _, pool := range wire.ShieldedTypes {
			for _, nf := range msgTx.Nullifiers(pool) {
				nf := nf
				if view.GetNullifier(&nf, pool) {
					return assertf("transaction %v reveals %v "+
						"nullifier %v spent on chain", hash, pool, nf)
				}
				if mp.nullifiers[pool][nf] != tx {
					return assertf("%v nullifier %v of %v is not "+
						"tracked", pool, nf, hash)
				}
			}
			for _, anchor := range msgTx.Anchors(pool) {
				anchor := anchor
				if !view.GetAnchorAt(&anchor, pool) {
					return assertf("transaction %v uses unknown %v "+
						"anchor %v", hash, pool, anchor)
				}
			}
		}

		if dependsWait {
			waiting = append(waiting, desc)
			continue
		}
		if err := scratch.ConnectTransaction(tx, UnminedHeight); err != nil {
			return assertf("transaction %v does not connect: %v", hash, err)
		}
	}

	// Replay the transactions depending on other pooled transactions.  A
	// full pass without progress means a dependency can never resolve.
	stepsSinceLastConnect := 0
	for len(waiting) > 0 {
		desc := waiting[0]
		waiting = waiting[1:]
		if !scratch.HaveInputs(desc.Tx) {
			waiting = append(waiting, desc)
			stepsSinceLastConnect++
			if stepsSinceLastConnect >= len(waiting) {
				return assertf("transaction %v has unresolvable "+
					"pooled inputs", desc.Tx.Hash())
			}
			continue
		}
		err := scratch.ConnectTransaction(desc.Tx, UnminedHeight)
		if err != nil {
			return assertf("transaction %v does not connect: %v",
				desc.Tx.Hash(), err)
		}
		stepsSinceLastConnect = 0
	}

	for op, ip := range mp.outpoints {
		desc, ok := mp.pool[*ip.tx.Hash()]
		if !ok || desc.Tx != ip.tx {
			return assertf("outpoint %v claimed by unpooled "+
				"transaction %v", op, ip.tx.Hash())
		}
		txIns := ip.tx.MsgTx().TxIn
		if ip.index >= uint32(len(txIns)) ||
			txIns[ip.index].PreviousOutPoint != op {

			return assertf("outpoint %v claim points at the wrong "+
				"input of %v", op, ip.tx.Hash())
		}
	}

	if len(mp.displaced) > 0 {
		return assertf("%d outpoints spent by more than one pooled "+
			"transaction", len(mp.displaced))
	}

	for _, pool := range wire.ShieldedTypes {
		for nf, tx := range mp.nullifiers[pool] {
			desc, ok := mp.pool[*tx.Hash()]
			if !ok || desc.Tx != tx {
				return assertf("%v nullifier %v tracked for unpooled "+
					"transaction %v", pool, nf, tx.Hash())
			}
			if !revealsNullifier(tx, pool, &nf) {
				return assertf("%v nullifier %v tracked for "+
					"transaction %v which does not reveal it",
					pool, nf, tx.Hash())
			}
		}
	}

	numAddrKeys := 0
	for hash, keys := range mp.addrInserted {
		if !mp.isTransactionInPool(&hash) {
			return assertf("address index holds unpooled "+
				"transaction %v", hash)
		}
		numAddrKeys += len(keys)
	}
	if numAddrKeys != len(mp.addrIndex) {
		return assertf("address index has %d entries, %d recorded",
			len(mp.addrIndex), numAddrKeys)
	}
	for op, value := range mp.spentIndex {
		if !mp.isTransactionInPool(&value.TxHash) {
			return assertf("spent index entry %v holds unpooled "+
				"transaction %v", op, value.TxHash)
		}
		if ip, ok := mp.outpoints[op]; !ok || *ip.tx.Hash() != value.TxHash {
			return assertf("spent index entry %v names %v, which does "+
				"not hold the claim", op, value.TxHash)
		}
	}

	if checkTotal != mp.totalTxSize {
		return assertf("total transaction size %d, recomputed %d",
			mp.totalTxSize, checkTotal)
	}
	if innerUsage != mp.cachedInnerUsage {
		return assertf("cached inner usage %d, recomputed %d",
			mp.cachedInnerUsage, innerUsage)
	}

	return nil
}

// revealsNullifier returns whether tx spends the note with nullifier nf from
// the given shielded pool.
func revealsNullifier(tx *coinutil.Tx, pool wire.ShieldedType, nf *chainhash.Hash) bool {
	for _, revealed := range tx.MsgTx().Nullifiers(pool) {
		if revealed == *nf {
			return true
		}
	}
	return false
}
