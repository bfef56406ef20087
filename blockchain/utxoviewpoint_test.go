// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/nocturnalnematode/VerusCoin-sub001/coinutil"
	"github.com/nocturnalnematode/VerusCoin-sub001/wire"
	"github.com/stretchr/testify/require"
)

func newSpend(prev *coinutil.Tx, index uint32, value int64) *coinutil.Tx {
	msgTx := wire.NewMsgTx(1)
	msgTx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Hash: *prev.Hash(), Index: index},
		Sequence:         wire.MaxTxInSequenceNum,
	})
	msgTx.AddTxOut(wire.NewTxOut(value, []byte{0x51}))
	return coinutil.NewTx(msgTx)
}

func newFunding(values ...int64) *coinutil.Tx {
	msgTx := wire.NewMsgTx(1)
	msgTx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Hash: chainhash.Hash{0xfe}},
	})
	for _, v := range values {
		msgTx.AddTxOut(wire.NewTxOut(v, []byte{0x51}))
	}
	return coinutil.NewTx(msgTx)
}

// TestCoinsSpend ensures outputs are spent exactly once and clones are
// independent.
func TestCoinsSpend(t *testing.T) {
	t.Parallel()

	coins := NewCoins(newFunding(1, 2), 5)
	require.Equal(t, int32(5), coins.BlockHeight())
	require.False(t, coins.IsCoinBase())
	require.True(t, coins.IsAvailable(1))
	require.False(t, coins.IsAvailable(2))

	clone := coins.Clone()
	require.True(t, coins.Spend(0))
	require.False(t, coins.Spend(0))
	require.Nil(t, coins.Output(0))
	require.NotNil(t, clone.Output(0))
	require.False(t, coins.IsFullySpent())
	require.True(t, coins.Spend(1))
	require.True(t, coins.IsFullySpent())
}

// TestCoinsViewCache ensures the cache reads through to its base without
// modifying it and tracks nullifiers and anchors.
func TestCoinsViewCache(t *testing.T) {
	t.Parallel()

	fund := newFunding(100, 200)
	base := NewCoinsViewCache(nil)
	base.AddCoins(fund, 1)
	base.PushAnchor(&chainhash.Hash{0xaa}, wire.Sapling)

	view := NewCoinsViewCache(base)
	spend := newSpend(fund, 1, 150)
	require.True(t, view.HaveInputs(spend))
	require.NoError(t, view.ConnectTransaction(spend, 2))
	require.False(t, view.HaveInputs(spend))
	require.True(t, base.HaveInputs(spend))
	require.True(t, view.HaveCoins(spend.Hash()))

	// Spending the same output again fails.
	err := view.ConnectTransaction(newSpend(fund, 1, 10), 2)
	require.IsType(t, AssertError(""), err)

	require.True(t, view.GetAnchorAt(&chainhash.Hash{0xaa}, wire.Sapling))
	require.False(t, view.GetAnchorAt(&chainhash.Hash{0xaa}, wire.Sprout))
	view.PopAnchor(&chainhash.Hash{0xaa}, wire.Sapling)
	require.False(t, view.GetAnchorAt(&chainhash.Hash{0xaa}, wire.Sapling))
	require.True(t, base.GetAnchorAt(&chainhash.Hash{0xaa}, wire.Sapling))

	shielded := wire.NewSaplingMsgTx(0)
	shielded.SpendDescs = []*wire.SpendDescription{{
		Nullifier: chainhash.Hash{0x11},
	}}
	require.NoError(t, view.ConnectTransaction(coinutil.NewTx(shielded), 3))
	require.True(t, view.GetNullifier(&chainhash.Hash{0x11}, wire.Sapling))
	require.False(t, view.GetNullifier(&chainhash.Hash{0x11}, wire.Sprout))
	require.False(t, base.GetNullifier(&chainhash.Hash{0x11}, wire.Sapling))
	require.False(t, view.GetNullifier(&chainhash.Hash{0x11}, wire.ShieldedType(9)))
}
