// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/nocturnalnematode/VerusCoin-sub001/coinutil"
	"github.com/nocturnalnematode/VerusCoin-sub001/wire"
)

// Coins contains contextual information about the unspent outputs of a
// transaction such as whether or not it is a coinbase transaction, which
// block it was found in, and the spent status of its outputs.
type Coins struct {
	isCoinBase  bool          // Whether the coins come from a coinbase.
	blockHeight int32         // Height of block containing tx.
	outputs     []*wire.TxOut // Outputs; nil entries are spent.
}

// NewCoins returns the coins created by tx in a block at height.
func NewCoins(tx *coinutil.Tx, blockHeight int32) *Coins {
	msgTx := tx.MsgTx()
	outputs := make([]*wire.TxOut, len(msgTx.TxOut))
	copy(outputs, msgTx.TxOut)
	return &Coins{
		isCoinBase:  msgTx.IsCoinBase(),
		blockHeight: blockHeight,
		outputs:     outputs,
	}
}

// IsCoinBase returns whether or not the coins come from a coinbase.
func (c *Coins) IsCoinBase() bool {
	return c.isCoinBase
}

// BlockHeight returns the height of the block containing the transaction
// the coins come from.
func (c *Coins) BlockHeight() int32 {
	return c.blockHeight
}

// IsAvailable returns whether the output at index exists and is unspent.
func (c *Coins) IsAvailable(index uint32) bool {
	return index < uint32(len(c.outputs)) && c.outputs[index] != nil
}

// Output returns the output at index or nil when it is spent or does not
// exist.
func (c *Coins) Output(index uint32) *wire.TxOut {
	if !c.IsAvailable(index) {
		return nil
	}
	return c.outputs[index]
}

// Spend marks the output at index as spent.  It returns false when the
// output was not available.
func (c *Coins) Spend(index uint32) bool {
	if !c.IsAvailable(index) {
		return false
	}
	c.outputs[index] = nil
	return true
}

// IsFullySpent returns whether every output has been spent.
func (c *Coins) IsFullySpent() bool {
	for _, out := range c.outputs {
		if out != nil {
			return false
		}
	}
	return true
}

// Clone returns a copy of the coins that can be spent independently.
func (c *Coins) Clone() *Coins {
	if c == nil {
		return nil
	}
	outputs := make([]*wire.TxOut, len(c.outputs))
	copy(outputs, c.outputs)
	return &Coins{
		isCoinBase:  c.isCoinBase,
		blockHeight: c.blockHeight,
		outputs:     outputs,
	}
}

// CoinView provides access to the confirmed chain state the transaction pool
// validates against: unspent coins, revealed nullifiers and the commitment
// tree roots shielded spends may anchor to.
type CoinView interface {
	// AccessCoins returns the unspent outputs of the transaction with the
	// given hash or nil when none are known.  The returned value must not
	// be modified.
	AccessCoins(hash *chainhash.Hash) *Coins

	// HaveCoins returns whether any unspent output of the transaction
	// exists.
	HaveCoins(hash *chainhash.Hash) bool

	// GetNullifier returns whether the nullifier has been revealed in the
	// given shielded pool.
	GetNullifier(nf *chainhash.Hash, pool wire.ShieldedType) bool

	// GetAnchorAt returns whether root is a valid commitment tree root of
	// the given shielded pool.
	GetAnchorAt(root *chainhash.Hash, pool wire.ShieldedType) bool
}

// CoinsViewCache represents a view into the set of unspent outputs, the
// nullifier sets and the anchors from a specific point of view in the chain.
// Lookups that miss are forwarded to the backing view and the results are
// cached so they can be modified without affecting it.
type CoinsViewCache struct {
	base       CoinView
	coins      map[chainhash.Hash]*Coins
	nullifiers [2]map[chainhash.Hash]bool
	anchors    [2]map[chainhash.Hash]bool
}

// Ensure CoinsViewCache implements the CoinView interface.
var _ CoinView = (*CoinsViewCache)(nil)

// NewCoinsViewCache returns a new empty view backed by base.  A nil base
// makes an empty standalone view.
func NewCoinsViewCache(base CoinView) *CoinsViewCache {
	view := &CoinsViewCache{
		base:  base,
		coins: make(map[chainhash.Hash]*Coins),
	}
	for i := range view.nullifiers {
		view.nullifiers[i] = make(map[chainhash.Hash]bool)
		view.anchors[i] = make(map[chainhash.Hash]bool)
	}
	return view
}

// AccessCoins returns information about a given transaction according to the
// current state of the view.  It will return nil if the passed transaction
// hash does not exist in the view or is otherwise not available such as when
// it has been disconnected during a reorg.
func (view *CoinsViewCache) AccessCoins(hash *chainhash.Hash) *Coins {
	if coins, ok := view.coins[*hash]; ok {
		return coins
	}
	if view.base == nil {
		return nil
	}
	coins := view.base.AccessCoins(hash).Clone()
	if coins != nil {
		view.coins[*hash] = coins
	}
	return coins
}

// HaveCoins returns whether any unspent output of the transaction exists in
// the view.
func (view *CoinsViewCache) HaveCoins(hash *chainhash.Hash) bool {
	coins := view.AccessCoins(hash)
	return coins != nil && !coins.IsFullySpent()
}

// HaveInputs returns whether every transparent input of tx refers to an
// available output.  Coinbase transactions trivially have their inputs.
func (view *CoinsViewCache) HaveInputs(tx *coinutil.Tx) bool {
	if tx.IsCoinBase() {
		return true
	}
	for _, txIn := range tx.MsgTx().TxIn {
		prevOut := &txIn.PreviousOutPoint
		coins := view.AccessCoins(&prevOut.Hash)
		if coins == nil || !coins.IsAvailable(prevOut.Index) {
			return false
		}
	}
	return true
}

// GetNullifier returns whether the nullifier has been revealed in the view
// or its backing view.
func (view *CoinsViewCache) GetNullifier(nf *chainhash.Hash, pool wire.ShieldedType) bool {
	if !pool.IsValid() {
		return false
	}
	if spent, ok := view.nullifiers[pool][*nf]; ok {
		return spent
	}
	return view.base != nil && view.base.GetNullifier(nf, pool)
}

// SetNullifier records the nullifier as revealed or not.
func (view *CoinsViewCache) SetNullifier(nf *chainhash.Hash, pool wire.ShieldedType, spent bool) {
	if pool.IsValid() {
		view.nullifiers[pool][*nf] = spent
	}
}

// GetAnchorAt returns whether root is a valid anchor in the view or its
// backing view.
func (view *CoinsViewCache) GetAnchorAt(root *chainhash.Hash, pool wire.ShieldedType) bool {
	if !pool.IsValid() {
		return false
	}
	if valid, ok := view.anchors[pool][*root]; ok {
		return valid
	}
	return view.base != nil && view.base.GetAnchorAt(root, pool)
}

// PushAnchor records root as a valid anchor.
func (view *CoinsViewCache) PushAnchor(root *chainhash.Hash, pool wire.ShieldedType) {
	if pool.IsValid() {
		view.anchors[pool][*root] = true
	}
}

// PopAnchor invalidates root, as happens when the block that produced it is
// disconnected.
func (view *CoinsViewCache) PopAnchor(root *chainhash.Hash, pool wire.ShieldedType) {
	if pool.IsValid() {
		view.anchors[pool][*root] = false
	}
}

// AddCoins adds the outputs of tx to the view as created in a block at
// height.  Existing coins for the same hash are replaced.
func (view *CoinsViewCache) AddCoins(tx *coinutil.Tx, height int32) {
	view.coins[*tx.Hash()] = NewCoins(tx, height)
}

// ConnectTransaction updates the view by spending every input of tx,
// revealing its nullifiers and adding its outputs at height.  An error is
// returned if the view does not contain the required outputs.
func (view *CoinsViewCache) ConnectTransaction(tx *coinutil.Tx, height int32) error {
	if !tx.IsCoinBase() {
		for _, txIn := range tx.MsgTx().TxIn {
			prevOut := &txIn.PreviousOutPoint
			coins := view.AccessCoins(&prevOut.Hash)
			if coins == nil || !coins.Spend(prevOut.Index) {
				return AssertError(fmt.Sprintf("view missing input %v",
					*prevOut))
			}
		}
	}
	for _, pool := range wire.ShieldedTypes {
		for _, nf := range tx.MsgTx().Nullifiers(pool) {
			nf := nf
			view.SetNullifier(&nf, pool, true)
		}
	}
	view.AddCoins(tx, height)
	return nil
}
