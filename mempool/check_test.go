// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/nocturnalnematode/VerusCoin-sub001/blockchain"
	"github.com/nocturnalnematode/VerusCoin-sub001/coinutil"
	"github.com/nocturnalnematode/VerusCoin-sub001/wire"
	"github.com/stretchr/testify/require"
)

// TestCheckDetectsCorruption ensures each kind of internal corruption is
// reported as an assertion.
func TestCheckDetectsCorruption(t *testing.T) {
	t.Parallel()

	anchor, nf := chainhash.Hash{0xa1}, chainhash.Hash{0xf1}
	tests := []struct {
		name    string
		corrupt func(h *poolHarness, tx *coinutil.Tx)
	}{{
		name: "total size",
		corrupt: func(h *poolHarness, tx *coinutil.Tx) {
			h.txPool.totalTxSize++
		},
	}, {
		name: "inner usage",
		corrupt: func(h *poolHarness, tx *coinutil.Tx) {
			h.txPool.cachedInnerUsage--
		},
	}, {
		name: "missing claim",
		corrupt: func(h *poolHarness, tx *coinutil.Tx) {
			delete(h.txPool.outpoints, tx.MsgTx().TxIn[0].PreviousOutPoint)
		},
	}, {
		name: "stray claim",
		corrupt: func(h *poolHarness, tx *coinutil.Tx) {
			stray := h.createTx(h.fund(5000), 1)
			op := stray.MsgTx().TxIn[0].PreviousOutPoint
			h.txPool.outpoints[op] = inPoint{tx: stray}
		},
	}, {
		name: "stray nullifier",
		corrupt: func(h *poolHarness, tx *coinutil.Tx) {
			stray := h.createTx(h.fund(5000), 1)
			h.txPool.nullifiers[wire.Sprout][chainhash.Hash{0x01}] = stray
		},
	}, {
		name: "nullifier not revealed by its pooled owner",
		corrupt: func(h *poolHarness, tx *coinutil.Tx) {
			h.txPool.nullifiers[wire.Sapling][chainhash.Hash{0x04}] = tx
		},
	}, {
		name: "nullifier moved to another pool",
		corrupt: func(h *poolHarness, tx *coinutil.Tx) {
			h.txPool.nullifiers[wire.Sprout][nf] = tx
		},
	}, {
		name: "untracked nullifier",
		corrupt: func(h *poolHarness, tx *coinutil.Tx) {
			delete(h.txPool.nullifiers[wire.Sapling], nf)
		},
	}, {
		name: "nullifier spent on chain",
		corrupt: func(h *poolHarness, tx *coinutil.Tx) {
			h.view.SetNullifier(&nf, wire.Sapling, true)
		},
	}, {
		name: "anchor left the chain",
		corrupt: func(h *poolHarness, tx *coinutil.Tx) {
			h.view.PopAnchor(&anchor, wire.Sapling)
		},
	}, {
		name: "input left the chain",
		corrupt: func(h *poolHarness, tx *coinutil.Tx) {
			prevOut := tx.MsgTx().TxIn[0].PreviousOutPoint
			h.view.AccessCoins(&prevOut.Hash).Spend(prevOut.Index)
		},
	}, {
		name: "stale address index",
		corrupt: func(h *poolHarness, tx *coinutil.Tx) {
			h.txPool.addrInserted[chainhash.Hash{0x02}] = nil
		},
	}, {
		name: "stale spent index",
		corrupt: func(h *poolHarness, tx *coinutil.Tx) {
			h.txPool.spentIndex[wire.OutPoint{Index: 7}] = SpentIndexValue{
				TxHash: chainhash.Hash{0x03},
			}
		},
	}}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			h := newPoolHarness(t)
			h.view.PushAnchor(&anchor, wire.Sapling)
			tx := h.createTx(h.fund(5000), 1, withSaplingSpend(anchor, nf))
			h.add(tx)
			h.requireConsistent()

			test.corrupt(h, tx)
			err := h.txPool.Check(h.view, 1)
			require.IsType(t, AssertError(""), err)

			// A disabled check never reports.
			require.NoError(t, h.txPool.Check(h.view, 0))
		})
	}
}

// TestCheckDependencyOrder ensures pooled chains are replayed regardless of
// the order the pool iterates them.
func TestCheckDependencyOrder(t *testing.T) {
	t.Parallel()

	h := newPoolHarness(t)
	prev := h.fund(100000)
	for i := 0; i < 50; i++ {
		tx := h.createTx(prev, 2)
		h.add(tx)
		prev = []spendableOutput{txOutToSpendableOut(tx, 0),
			txOutToSpendableOut(tx, 1)}
	}
	for i := 0; i < 10; i++ {
		h.requireConsistent()
	}
}

// TestCoinsViewMemPool ensures the pool backed view exposes pooled outputs
// as unmined coins and falls back to the base view.
func TestCoinsViewMemPool(t *testing.T) {
	t.Parallel()

	h := newPoolHarness(t)
	anchor := chainhash.Hash{0xa1}
	chainNf, poolNf := chainhash.Hash{0xf1}, chainhash.Hash{0xf2}
	h.view.PushAnchor(&anchor, wire.Sapling)
	h.view.SetNullifier(&chainNf, wire.Sapling, true)

	outs := h.fund(5000)
	parent := h.createTx(outs, 1, withSaplingSpend(anchor, poolNf))
	h.add(parent)

	view := NewCoinsViewMemPool(h.view, h.txPool)
	coins := view.AccessCoins(parent.Hash())
	require.NotNil(t, coins)
	require.Equal(t, int32(UnminedHeight), coins.BlockHeight())
	require.True(t, coins.IsAvailable(0))
	require.True(t, view.HaveCoins(parent.Hash()))

	confirmed := view.AccessCoins(&outs[0].outPoint.Hash)
	require.NotNil(t, confirmed)
	require.Equal(t, int32(1), confirmed.BlockHeight())
	require.False(t, view.HaveCoins(&chainhash.Hash{0x09}))

	require.True(t, view.GetNullifier(&chainNf, wire.Sapling))
	require.True(t, view.GetNullifier(&poolNf, wire.Sapling))
	require.False(t, view.GetNullifier(&poolNf, wire.Sprout))
	require.True(t, view.GetAnchorAt(&anchor, wire.Sapling))
	require.False(t, view.GetAnchorAt(&anchor, wire.Sprout))

	var _ blockchain.CoinView = view
}

// TestPoolViewWhileLocked ensures the pool accepts a view composed over
// itself in the operations that read the view with the pool lock held.
func TestPoolViewWhileLocked(t *testing.T) {
	t.Parallel()

	h := newPoolHarness(t)
	cbSpend := h.createTx([]spendableOutput{h.coinbase(150, 5000)}, 1)
	parent := h.createTx(h.fund(5000), 1)
	h.add(cbSpend)
	h.add(parent)

	outs := h.fund(7000)
	child := h.createTx(append(outs, txOutToSpendableOut(parent, 0)), 1)
	desc := h.newDesc(child, time.Now())
	view := NewCoinsViewMemPool(h.view, h.txPool)

	var addErr, checkErr error
	var removed []*coinutil.Tx
	done := make(chan struct{})
	go func() {
		defer close(done)
		addErr = h.txPool.AddUnchecked(desc, view, true)
		removed = h.txPool.RemoveForReorg(view, 300,
			blockchain.StandardLockTimeFlags)
		checkErr = h.txPool.Check(view, 1)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("pool view operations did not return")
	}

	require.NoError(t, addErr)
	require.Empty(t, removed)
	require.NoError(t, checkErr)
	h.requirePooled(cbSpend, parent, child)

	info, ok := h.txPool.SpentInfo(outs[0].outPoint)
	require.True(t, ok)
	require.Equal(t, *child.Hash(), info.TxHash)
	require.Equal(t, int64(7000), info.Satoshis)
	info, ok = h.txPool.SpentInfo(wire.OutPoint{Hash: *parent.Hash()})
	require.True(t, ok)
	require.Equal(t, *child.Hash(), info.TxHash)
	require.Equal(t, uint32(1), info.InputIndex)
}
