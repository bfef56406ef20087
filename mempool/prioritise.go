// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// PriorityDelta is a manual adjustment of the priority and fee of a
// transaction used when selecting transactions for blocks.
type PriorityDelta struct {
	Priority float64
	Fee      int64
}

// PrioritiseTransaction adds the passed deltas to the prioritisation of the
// transaction.  Deltas accumulate across calls and may be set before the
// transaction enters the pool.
//
// This function is safe for concurrent access.
func (mp *TxPool) PrioritiseTransaction(txHash *chainhash.Hash, priorityDelta float64,
	feeDelta int64) {

	mp.mtx.Lock()
	mp.prioritiseTransaction(txHash, priorityDelta, feeDelta)
	mp.mtx.Unlock()
}

// prioritiseTransaction is the internal function which implements the public
// PrioritiseTransaction.
//
// This function MUST be called with the mempool lock held (for writes).
func (mp *TxPool) prioritiseTransaction(txHash *chainhash.Hash, priorityDelta float64,
	feeDelta int64) {

	delta, ok := mp.deltas[*txHash]
	if !ok {
		delta = &PriorityDelta{}
		mp.deltas[*txHash] = delta
	}
	delta.Priority += priorityDelta
	delta.Fee += feeDelta

	log.Infof("Prioritised transaction %v: priority += %v, fee += %v",
		txHash, priorityDelta, feeDelta)
}

// applyDeltas returns priority and fee adjusted by the prioritisation of the
// transaction.
//
// This function MUST be called with the mempool lock held (for reads).
func (mp *TxPool) applyDeltas(txHash *chainhash.Hash, priority float64,
	fee int64) (float64, int64) {

	if delta, ok := mp.deltas[*txHash]; ok {
		priority += delta.Priority
		fee += delta.Fee
	}
	return priority, fee
}

// ApplyDeltas returns priority and fee adjusted by the prioritisation of the
// transaction.
//
// This function is safe for concurrent access.
func (mp *TxPool) ApplyDeltas(txHash *chainhash.Hash, priority float64,
	fee int64) (float64, int64) {

	mp.mtx.RLock()
	defer mp.mtx.RUnlock()
	return mp.applyDeltas(txHash, priority, fee)
}

// ClearPrioritisation drops the prioritisation and the reserve descriptor of
// the transaction.
//
// This function is safe for concurrent access.
func (mp *TxPool) ClearPrioritisation(txHash *chainhash.Hash) {
	mp.mtx.Lock()
	mp.clearPrioritisation(txHash)
	mp.mtx.Unlock()
}

// clearPrioritisation is the internal function which implements the public
// ClearPrioritisation.
//
// This function MUST be called with the mempool lock held (for writes).
func (mp *TxPool) clearPrioritisation(txHash *chainhash.Hash) {
	delete(mp.deltas, *txHash)
	delete(mp.reserveTxs, *txHash)
}

// Deltas returns a copy of every prioritisation currently recorded.
//
// This function is safe for concurrent access.
func (mp *TxPool) Deltas() map[chainhash.Hash]PriorityDelta {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()

	deltas := make(map[chainhash.Hash]PriorityDelta, len(mp.deltas))
	for hash, delta := range mp.deltas {
		deltas[hash] = *delta
	}
	return deltas
}
