// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/nocturnalnematode/VerusCoin-sub001/blockchain"
	"github.com/nocturnalnematode/VerusCoin-sub001/wire"
)

// CoinsViewMemPool is a coin view combining the confirmed state of a base
// view with the pool.  Outputs of pooled transactions appear as coins at
// UnminedHeight and nullifiers revealed by pooled transactions are
// reported as spent.
type CoinsViewMemPool struct {
	base blockchain.CoinView
	pool *TxPool

	// held is set on the copies the pool uses while it holds its own
	// lock, so lookups read the pool directly.
	held bool
}

// Ensure CoinsViewMemPool implements the CoinView interface.
var _ blockchain.CoinView = (*CoinsViewMemPool)(nil)

// NewCoinsViewMemPool returns a view of base extended by the pool.
func NewCoinsViewMemPool(base blockchain.CoinView, pool *TxPool) *CoinsViewMemPool {
	return &CoinsViewMemPool{base: base, pool: pool}
}

// heldView returns view prepared for use while the mempool lock is held.  A
// view composed over this pool is replaced by one that does not take the
// lock again.
//
// This function MUST be called with the mempool lock held (for reads).
func (mp *TxPool) heldView(view blockchain.CoinView) blockchain.CoinView {
	v, ok := view.(*CoinsViewMemPool)
	if !ok || v == nil || v.pool != mp || v.held {
		return view
	}
	return &CoinsViewMemPool{base: v.base, pool: mp, held: true}
}

// AccessCoins returns the coins of a pooled transaction or, when the
// transaction is not pooled, the coins of the base view.  Pooled coins
// never conflict with the base view, so they take precedence.
func (v *CoinsViewMemPool) AccessCoins(hash *chainhash.Hash) *blockchain.Coins {
	if !v.held {
		v.pool.mtx.RLock()
	}
	desc, ok := v.pool.pool[*hash]
	if !v.held {
		v.pool.mtx.RUnlock()
	}

	if ok {
		return blockchain.NewCoins(desc.Tx, UnminedHeight)
	}
	return v.base.AccessCoins(hash)
}

// HaveCoins returns whether the transaction is pooled or has unspent
// outputs in the base view.
func (v *CoinsViewMemPool) HaveCoins(hash *chainhash.Hash) bool {
	if v.held {
		return v.pool.isTransactionInPool(hash) || v.base.HaveCoins(hash)
	}
	return v.pool.IsTransactionInPool(hash) || v.base.HaveCoins(hash)
}

// GetNullifier returns whether the nullifier is spent on chain or by a
// pooled transaction.
func (v *CoinsViewMemPool) GetNullifier(nf *chainhash.Hash, pool wire.ShieldedType) bool {
	if v.base.GetNullifier(nf, pool) {
		return true
	}
	if v.held {
		_, exists := v.pool.nullifiers[pool][*nf]
		return exists
	}
	exists, err := v.pool.NullifierExists(nf, pool)
	return err == nil && exists
}

// GetAnchorAt returns whether root is an anchor of the base view.
func (v *CoinsViewMemPool) GetAnchorAt(root *chainhash.Hash, pool wire.ShieldedType) bool {
	return v.base.GetAnchorAt(root, pool)
}
