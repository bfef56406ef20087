// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/nocturnalnematode/VerusCoin-sub001/blockchain"
	"github.com/nocturnalnematode/VerusCoin-sub001/coinutil"
	"github.com/nocturnalnematode/VerusCoin-sub001/wire"
)

// FeeEstimator is notified of pool and block events and estimates fees and
// priorities from them.
type FeeEstimator interface {
	// AddMemPoolTransaction records a transaction entering the pool.
	// valid reports whether it may be used for the statistics.
	AddMemPoolTransaction(txHash *chainhash.Hash, fee, size int64,
		priority float64, height int32, valid bool)

	// RemoveMemPoolTransaction forgets a transaction leaving the pool.
	RemoveMemPoolTransaction(txHash *chainhash.Hash)

	// ProcessBlock records the pooled transactions mined in a block at
	// height.  current reports whether the chain is synced.
	ProcessBlock(height int32, mined []*chainhash.Hash, current bool)

	// EstimateFee returns the fee rate per kilobyte needed to confirm
	// within numBlocks blocks.
	EstimateFee(numBlocks int) (btcutil.Amount, error)

	// EstimatePriority returns the priority needed to confirm within
	// numBlocks blocks without a fee.
	EstimatePriority(numBlocks int) (float64, error)
}

// TxValidator evaluates the rules of a transaction that depend on the height
// of the block it would be mined in.  blockchain.ContextChecker implements
// it.
type TxValidator interface {
	// CheckFinal returns whether tx is final in a block at height.
	CheckFinal(tx *coinutil.Tx, height int32, flags blockchain.LockFlags) bool

	// CheckContextual returns an error when tx breaks a rule of the
	// network upgrades active at height.
	CheckContextual(tx *coinutil.Tx, height int32) error
}

// Ensure ContextChecker satisfies the TxValidator interface.
var _ TxValidator = (*blockchain.ContextChecker)(nil)

// ProofRootProvider returns the proof root of a system at a height.
type ProofRootProvider interface {
	// ProofRootAt returns the proof root of systemID at height and
	// whether it exists on the current chain.
	ProofRootAt(systemID wire.ID160, height uint32) (wire.ProofRoot, bool)
}

// CurrencyConverter converts reserve currency amounts to the native
// currency.
type CurrencyConverter interface {
	// ReserveToNative returns the native value of the given reserve
	// amounts.
	ReserveToNative(amounts map[wire.ID160]int64) int64
}

// TxMempool defines an interface that's used by other subsystems to interact
// with the mempool.
type TxMempool interface {
	// LastUpdated returns the last time a transaction was added to or
	// removed from the source pool.
	LastUpdated() time.Time

	// TxDescs returns a slice of descriptors for all the transactions in
	// the pool.
	TxDescs() []*TxDesc

	// Deltas returns every prioritisation currently recorded.
	Deltas() map[chainhash.Hash]PriorityDelta

	// Count returns the number of transactions in the main pool.
	Count() int

	// FetchTransaction returns the requested transaction from the
	// transaction pool.
	FetchTransaction(txHash *chainhash.Hash) (*coinutil.Tx, error)

	// IsTransactionInPool returns whether or not the passed transaction
	// already exists in the main pool.
	IsTransactionInPool(hash *chainhash.Hash) bool

	// RemoveTransaction removes the passed transaction from the mempool.
	// When the removeRedeemers flag is set, any transactions that redeem
	// outputs from the removed transaction will also be removed
	// recursively from the mempool, as they would otherwise become
	// orphans.
	RemoveTransaction(tx *coinutil.Tx, removeRedeemers bool) []*TxDesc

	// PrioritiseTransaction adds to the prioritisation of a transaction.
	PrioritiseTransaction(txHash *chainhash.Hash, priorityDelta float64,
		feeDelta int64)

	// MiningDescs returns the pooled transactions with prioritisation
	// applied.
	MiningDescs() []*TxDesc

	// NullifierExists returns whether a pooled transaction reveals the
	// nullifier.
	NullifierExists(nf *chainhash.Hash, pool wire.ShieldedType) (bool, error)
}
