// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/nocturnalnematode/VerusCoin-sub001/blockchain"
	"github.com/nocturnalnematode/VerusCoin-sub001/coinutil"
	"github.com/nocturnalnematode/VerusCoin-sub001/wire"
)

// RemovalReason describes why a transaction left the pool.
type RemovalReason int

// These constants define the reasons a transaction is removed.
const (
	// ReasonExplicit is a removal requested by a caller.
	ReasonExplicit RemovalReason = iota

	// ReasonBlock is a removal because the transaction was mined.
	ReasonBlock

	// ReasonConflict is a removal because a mined or pooled transaction
	// spends the same output, reveals the same nullifier or claims the
	// same name.
	ReasonConflict

	// ReasonReorg is a removal because the transaction is no longer valid
	// on the new chain tip.
	ReasonReorg

	// ReasonExpiry is a removal because the transaction expired.
	ReasonExpiry

	// ReasonBranch is a removal because the transaction was validated
	// against another consensus branch.
	ReasonBranch

	// ReasonAnchor is a removal because a shielded spend is anchored to an
	// invalidated commitment tree root.
	ReasonAnchor
)

var removalReasonStrings = map[RemovalReason]string{
	ReasonExplicit: "explicit",
	ReasonBlock:    "block",
	ReasonConflict: "conflict",
	ReasonReorg:    "reorg",
	ReasonExpiry:   "expiry",
	ReasonBranch:   "branch",
	ReasonAnchor:   "anchor",
}

// String returns the RemovalReason in human-readable form.
func (r RemovalReason) String() string {
	if s, ok := removalReasonStrings[r]; ok {
		return s
	}
	return fmt.Sprintf("Unknown RemovalReason (%d)", int(r))
}

// removeAll removes every transaction in txs and their redeemers.
//
// This function MUST be called with the mempool lock held (for writes).
func (mp *TxPool) removeAll(txs []*coinutil.Tx, reason RemovalReason) []*TxDesc {
	var removed []*TxDesc
	for _, tx := range txs {
		removed = append(removed, mp.removeTransaction(tx, true, reason)...)
	}
	return removed
}

// removeConflicts removes the pooled transactions other than tx that spend
// an output tx spends, reveal a nullifier tx reveals or claim a name tx
// claims, along with their redeemers.
//
// This function MUST be called with the mempool lock held (for writes).
func (mp *TxPool) removeConflicts(tx *coinutil.Tx) []*TxDesc {
	txHash := tx.Hash()
	var conflicts []*coinutil.Tx
	if !tx.IsCoinBase() {
		for _, txIn := range tx.MsgTx().TxIn {
			spenders := mp.outpointSpenders(txIn.PreviousOutPoint)
			for _, spender := range spenders {
				if !spender.Hash().IsEqual(txHash) {
					conflicts = append(conflicts, spender)
				}
			}
		}
	}
	for _, pool := range wire.ShieldedTypes {
		for _, nf := range tx.MsgTx().Nullifiers(pool) {
			spender, ok := mp.nullifiers[pool][nf]
			if ok && !spender.Hash().IsEqual(txHash) {
				conflicts = append(conflicts, spender)
			}
		}
	}
	conflicts = append(conflicts, mp.checkNameConflicts(tx)...)

	return mp.removeAll(conflicts, ReasonConflict)
}

// RemoveConflicts removes the pooled transactions other than tx that spend
// an output tx spends, reveal a nullifier tx reveals or claim an identity
// name or currency tx claims.  Transactions depending on them are removed as
// well.  The removed transactions are returned.
//
// This function is safe for concurrent access.
func (mp *TxPool) RemoveConflicts(tx *coinutil.Tx) []*coinutil.Tx {
	mp.mtx.Lock()
	removed := mp.removeConflicts(tx)
	mp.mtx.Unlock()

	mp.notifyRemoved(removed, ReasonConflict)
	return descTxs(removed)
}

// RemoveForBlock removes the transactions of a block connected at height
// from the pool, along with the pooled transactions conflicting with them.
// The fee estimator is told about the mined pooled transactions before they
// are removed.  The removed conflicting transactions are returned.
//
// This function is safe for concurrent access.
func (mp *TxPool) RemoveForBlock(txs []*coinutil.Tx, height int32) []*coinutil.Tx {
	mp.mtx.Lock()

	if mp.cfg.FeeEstimator != nil {
		var mined []*chainhash.Hash
		for _, tx := range txs {
			if mp.isTransactionInPool(tx.Hash()) {
				mined = append(mined, tx.Hash())
			}
		}
		current := mp.cfg.IsCurrent == nil || mp.cfg.IsCurrent()
		mp.cfg.FeeEstimator.ProcessBlock(height, mined, current)
	}

	var removed, conflicts []*TxDesc
	for _, tx := range txs {
		removed = append(removed, mp.removeTransaction(tx, false,
			ReasonBlock)...)
		conflicts = append(conflicts, mp.removeConflicts(tx)...)
		mp.clearPrioritisation(tx.Hash())
	}
	mp.mtx.Unlock()

	log.Debugf("Removed %d mined and %d conflicting %s for block %d",
		len(removed), len(conflicts),
		pickNoun(len(removed)+len(conflicts), "transaction", "transactions"),
		height)

	mp.notifyRemoved(removed, ReasonBlock)
	mp.notifyRemoved(conflicts, ReasonConflict)
	return descTxs(conflicts)
}

// isExemptFromRecheck returns whether outputs of the condition kind are
// never rechecked after a reorganization.
func isExemptFromRecheck(code wire.EvalCode) bool {
	switch code {
	case wire.EvalNotaryEvidence, wire.EvalFinalizeNotarization,
		wire.EvalReserveTransfer, wire.EvalIdentityPrimary,
		wire.EvalIdentityReservation, wire.EvalIdentityAdvancedReservation,
		wire.EvalFinalizeExport:

		return true
	}
	return false
}

// conditionStale returns whether a condition of a pooled transaction no
// longer holds on a chain whose next block is at height.  Only claims about
// this chain can be rechecked.
//
// This function MUST be called with the mempool lock held (for reads).
func (mp *TxPool) conditionStale(cond *wire.Condition, height int32) bool {
	if cond == nil || isExemptFromRecheck(cond.Code) {
		return false
	}

	native := mp.cfg.ChainParams.NativeCurrencyID
	switch cond.Code {
	case wire.EvalAcceptedNotarization, wire.EvalEarnedNotarization:
		n, err := cond.Notarization()
		if err != nil {
			return true
		}
		if mp.cfg.ProofRoots == nil || n.ProofRoot.SystemID != native {
			return false
		}
		root, ok := mp.cfg.ProofRoots.ProofRootAt(native, n.ProofRoot.Height)
		return !ok || root != n.ProofRoot

	case wire.EvalCrossChainExport, wire.EvalCrossChainImport:
		t, err := cond.CrossChainTransfer()
		if err != nil {
			return true
		}
		if t.SourceSystemID != native {
			return false
		}
		return t.SourceHeightStart > t.SourceHeightEnd ||
			int64(t.SourceHeightEnd) >= int64(height)
	}

	return false
}

// coinbaseSpendsStale returns whether tx spends a coinbase output that is
// not spendable in a block at height or that no longer exists.
//
// This function MUST be called with the mempool lock held (for reads).
func (mp *TxPool) coinbaseSpendsStale(tx *coinutil.Tx, view blockchain.CoinView,
	height int32) bool {

	if view == nil {
		return false
	}
	for _, txIn := range tx.MsgTx().TxIn {
		prevOut := &txIn.PreviousOutPoint
		if mp.isTransactionInPool(&prevOut.Hash) {
			continue
		}
		coins := view.AccessCoins(&prevOut.Hash)
		if coins == nil {
			return true
		}
		out := coins.Output(prevOut.Index)
		if out == nil {
			return true
		}
		if coins.IsCoinBase() && !mp.cfg.ChainParams.IsCoinbaseSpendable(
			coins.BlockHeight(), height, out.Value) {

			return true
		}
	}
	return false
}

// RemoveForReorg removes the transactions that are no longer valid after
// the chain tip changed so that the next block is at height: transactions
// that are not final or fail the contextual checks at height, transactions
// spending coinbase outputs that are missing or not yet spendable and
// transactions whose notarizations or exports refer to blocks no longer on
// the chain.  Transactions depending on them are removed as well.
//
// This function is safe for concurrent access.
func (mp *TxPool) RemoveForReorg(view blockchain.CoinView, height int32,
	flags blockchain.LockFlags) []*coinutil.Tx {

	mp.mtx.Lock()
	view = mp.heldView(view)

	// Collect first since removal modifies the pool.
	var stale []*coinutil.Tx
	for _, desc := range mp.pool {
		tx := desc.Tx
		switch {
		case mp.cfg.Validator != nil &&
			!mp.cfg.Validator.CheckFinal(tx, height, flags):

			stale = append(stale, tx)

		case mp.cfg.Validator != nil &&
			mp.cfg.Validator.CheckContextual(tx, height) != nil:

			stale = append(stale, tx)

		case desc.SpendsCoinbase && mp.coinbaseSpendsStale(tx, view, height):
			stale = append(stale, tx)

		default:
			for _, out := range tx.MsgTx().TxOut {
				if mp.conditionStale(out.Condition, height) {
					stale = append(stale, tx)
					break
				}
			}
		}
	}
	removed := mp.removeAll(stale, ReasonReorg)
	mp.mtx.Unlock()

	mp.notifyRemoved(removed, ReasonReorg)
	return descTxs(removed)
}

// RemoveWithAnchor removes the transactions with shielded spends of the
// given pool anchored to root, as happens when the block producing root is
// disconnected.  Transactions depending on them are removed as well.
//
// This function is safe for concurrent access.
func (mp *TxPool) RemoveWithAnchor(root *chainhash.Hash, pool wire.ShieldedType) ([]*coinutil.Tx, error) {
	if !pool.IsValid() {
		str := fmt.Sprintf("unknown shielded pool %v", pool)
		return nil, ruleError(ErrUnknownShieldedPool, str)
	}

	mp.mtx.Lock()
	var stale []*coinutil.Tx
	for _, desc := range mp.pool {
		for _, anchor := range desc.Tx.MsgTx().Anchors(pool) {
			if anchor == *root {
				stale = append(stale, desc.Tx)
				break
			}
		}
	}
	removed := mp.removeAll(stale, ReasonAnchor)
	mp.mtx.Unlock()

	mp.notifyRemoved(removed, ReasonAnchor)
	return descTxs(removed), nil
}

// RemoveExpired removes the transactions that are expired in a block at
// height and any coinbase transaction.  Transactions depending on them are
// removed as well.  The hashes of the removed transactions are returned.
//
// This function is safe for concurrent access.
func (mp *TxPool) RemoveExpired(height int32) []*chainhash.Hash {
	mp.mtx.Lock()
	var expired []*coinutil.Tx
	for _, desc := range mp.pool {
		tx := desc.Tx
		if blockchain.IsExpiredTx(tx, height) || tx.IsCoinBase() {
			expired = append(expired, tx)
		}
	}
	removed := mp.removeAll(expired, ReasonExpiry)
	mp.mtx.Unlock()

	hashes := make([]*chainhash.Hash, 0, len(removed))
	for _, desc := range removed {
		log.Infof("Removing expired transaction %v", desc.Tx.Hash())
		hashes = append(hashes, desc.Tx.Hash())
	}

	mp.notifyRemoved(removed, ReasonExpiry)
	return hashes
}

// RemoveWithoutBranchID removes the transactions that were validated against
// a consensus branch other than branchID.  Transactions depending on them are
// removed as well.
//
// This function is safe for concurrent access.
func (mp *TxPool) RemoveWithoutBranchID(branchID uint32) []*coinutil.Tx {
	mp.mtx.Lock()
	var stale []*coinutil.Tx
	for _, desc := range mp.pool {
		if desc.BranchID != branchID {
			stale = append(stale, desc.Tx)
		}
	}
	removed := mp.removeAll(stale, ReasonBranch)
	mp.mtx.Unlock()

	mp.notifyRemoved(removed, ReasonBranch)
	return descTxs(removed)
}

// descTxs returns the transactions of descs.
func descTxs(descs []*TxDesc) []*coinutil.Tx {
	if len(descs) == 0 {
		return nil
	}
	txs := make([]*coinutil.Tx, len(descs))
	for i, desc := range descs {
		txs[i] = desc.Tx
	}
	return txs
}
