// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/nocturnalnematode/VerusCoin-sub001/blockchain"
	"github.com/nocturnalnematode/VerusCoin-sub001/coinutil"
	"github.com/nocturnalnematode/VerusCoin-sub001/wire"
	"github.com/stretchr/testify/require"
)

// withCondition attaches cond to the first output.
func withCondition(cond *wire.Condition) func(*wire.MsgTx) {
	return func(msgTx *wire.MsgTx) {
		msgTx.TxOut[0].Condition = cond
	}
}

// withSaplingSpend adds a sapling spend revealing nf anchored to anchor.
func withSaplingSpend(anchor, nf chainhash.Hash) func(*wire.MsgTx) {
	return func(msgTx *wire.MsgTx) {
		msgTx.SpendDescs = append(msgTx.SpendDescs, &wire.SpendDescription{
			Anchor:    anchor,
			Nullifier: nf,
		})
	}
}

// withJoinSplit adds a sprout join-split revealing nfs anchored to anchor.
func withJoinSplit(anchor chainhash.Hash, nfs [2]chainhash.Hash) func(*wire.MsgTx) {
	return func(msgTx *wire.MsgTx) {
		msgTx.JoinSplits = append(msgTx.JoinSplits, &wire.JoinSplit{
			Anchor:     anchor,
			Nullifiers: nfs,
		})
	}
}

// txHashes returns the hashes of txs.
func txHashes(txs []*coinutil.Tx) []chainhash.Hash {
	hashes := make([]chainhash.Hash, len(txs))
	for i, tx := range txs {
		hashes[i] = *tx.Hash()
	}
	return hashes
}

// TestRemoveForBlock ensures mined transactions are removed without their
// redeemers, conflicting transactions are removed with theirs and the fee
// estimator sees the mined pooled transactions.
func TestRemoveForBlock(t *testing.T) {
	t.Parallel()

	h := newPoolHarness(t)
	outs := h.fund(5000, 5000)
	mined := h.createTx(outs[:1], 1)
	minedChild := h.createTx([]spendableOutput{txOutToSpendableOut(mined, 0)}, 1)
	loser := h.createTx(outs[1:], 1)
	loserChild := h.createTx([]spendableOutput{txOutToSpendableOut(loser, 0)}, 1)
	for _, tx := range []*coinutil.Tx{mined, minedChild, loser, loserChild} {
		h.add(tx)
	}
	h.txPool.PrioritiseTransaction(mined.Hash(), 5, 5)

	// The block spends the output claimed by loser in another transaction
	// the pool never saw.
	winner := h.createTx(outs[1:], 2)
	conflicts := h.txPool.RemoveForBlock([]*coinutil.Tx{mined, winner}, 301)

	require.ElementsMatch(t, txHashes([]*coinutil.Tx{loser, loserChild}),
		txHashes(conflicts))
	h.requireGone(mined, loser, loserChild)
	h.requirePooled(minedChild)
	require.NotContains(t, h.txPool.Deltas(), *mined.Hash())

	require.Len(t, h.estimator.blocks, 1)
	block := h.estimator.blocks[0]
	require.Equal(t, int32(301), block.height)
	require.True(t, block.current)
	require.Equal(t, []chainhash.Hash{*mined.Hash()}, block.mined)

	// The mined parent now lives in the chain.
	h.view.AddCoins(mined, 301)
	h.requireConsistent()
}

// TestRemoveForBlockNullifiers ensures a mined nullifier evicts the pooled
// transaction revealing it.
func TestRemoveForBlockNullifiers(t *testing.T) {
	t.Parallel()

	h := newPoolHarness(t)
	anchor, nf := chainhash.Hash{0xa1}, chainhash.Hash{0xf1}
	h.view.PushAnchor(&anchor, wire.Sapling)
	shielded := h.createTx(h.fund(5000), 1, withSaplingSpend(anchor, nf))
	h.add(shielded)
	h.requireConsistent()

	exists, err := h.txPool.NullifierExists(&nf, wire.Sapling)
	require.NoError(t, err)
	require.True(t, exists)
	exists, err = h.txPool.NullifierExists(&nf, wire.Sprout)
	require.NoError(t, err)
	require.False(t, exists)
	_, err = h.txPool.NullifierExists(&nf, wire.ShieldedType(5))
	require.ErrorIs(t, err, RuleError{ErrorCode: ErrUnknownShieldedPool})

	block := h.createTx(nil, 0, withSaplingSpend(anchor, nf))
	conflicts := h.txPool.RemoveForBlock([]*coinutil.Tx{block}, 301)
	require.Equal(t, txHashes([]*coinutil.Tx{shielded}), txHashes(conflicts))

	exists, err = h.txPool.NullifierExists(&nf, wire.Sapling)
	require.NoError(t, err)
	require.False(t, exists)
}

// TestDoubleSpendResolution ensures two pooled transactions spending the
// same outpoint are detected and resolved by either conflict removal path.
func TestDoubleSpendResolution(t *testing.T) {
	t.Parallel()

	h := newPoolHarness(t)
	outs := h.fund(5000)
	first := h.createTx(outs, 1)
	second := h.createTx(outs, 2)
	h.add(first)
	h.add(second)
	require.Same(t, second, h.txPool.CheckSpend(outs[0].outPoint))

	err := h.txPool.Check(h.view, 1)
	require.IsType(t, AssertError(""), err)

	removed := h.txPool.RemoveConflicts(first)
	require.Equal(t, txHashes([]*coinutil.Tx{second}), txHashes(removed))
	require.Same(t, first, h.txPool.CheckSpend(outs[0].outPoint))
	h.requireConsistent()

	// Mining the second spend evicts the first and leaves the outpoint
	// unclaimed.
	h.add(second)
	conflicts := h.txPool.RemoveForBlock([]*coinutil.Tx{second}, 301)
	require.Equal(t, txHashes([]*coinutil.Tx{first}), txHashes(conflicts))
	require.Nil(t, h.txPool.CheckSpend(outs[0].outPoint))
	require.Zero(t, h.txPool.Count())
	h.requireConsistent()
}

// TestRemoveWithAnchor ensures shielded spends anchored to an invalidated
// root are removed with their redeemers, per shielded pool.
func TestRemoveWithAnchor(t *testing.T) {
	t.Parallel()

	h := newPoolHarness(t)
	stale, kept := chainhash.Hash{0xa1}, chainhash.Hash{0xa2}
	for _, root := range []chainhash.Hash{stale, kept} {
		root := root
		h.view.PushAnchor(&root, wire.Sapling)
		h.view.PushAnchor(&root, wire.Sprout)
	}

	saplingTx := h.createTx(h.fund(5000), 1,
		withSaplingSpend(stale, chainhash.Hash{0xf1}))
	child := h.createTx([]spendableOutput{txOutToSpendableOut(saplingTx, 0)}, 1)
	other := h.createTx(h.fund(5000), 1,
		withSaplingSpend(kept, chainhash.Hash{0xf2}))
	sproutTx := h.createTx(h.fund(5000), 1,
		withJoinSplit(stale, [2]chainhash.Hash{{0xe1}, {0xe2}}))
	for _, tx := range []*coinutil.Tx{saplingTx, child, other, sproutTx} {
		h.add(tx)
	}
	h.requireConsistent()

	_, err := h.txPool.RemoveWithAnchor(&stale, wire.ShieldedType(9))
	require.ErrorIs(t, err, RuleError{ErrorCode: ErrUnknownShieldedPool})

	h.view.PopAnchor(&stale, wire.Sapling)
	removed, err := h.txPool.RemoveWithAnchor(&stale, wire.Sapling)
	require.NoError(t, err)
	require.ElementsMatch(t, txHashes([]*coinutil.Tx{saplingTx, child}),
		txHashes(removed))
	h.requirePooled(other, sproutTx)
	h.requireConsistent()

	h.view.PopAnchor(&stale, wire.Sprout)
	removed, err = h.txPool.RemoveWithAnchor(&stale, wire.Sprout)
	require.NoError(t, err)
	require.Equal(t, txHashes([]*coinutil.Tx{sproutTx}), txHashes(removed))
	h.requirePooled(other)
	h.requireConsistent()
}

// TestRemoveForReorgCoinbase ensures spends of coinbase outputs that are not
// spendable at the new tip are removed.
func TestRemoveForReorgCoinbase(t *testing.T) {
	t.Parallel()

	h := newPoolHarness(t)
	immature := h.createTx([]spendableOutput{h.coinbase(200, 5000)}, 1)
	desc := h.add(immature)
	require.True(t, desc.SpendsCoinbase)

	removed := h.txPool.RemoveForReorg(h.view, 300, blockchain.StandardLockTimeFlags)
	require.Empty(t, removed)

	removed = h.txPool.RemoveForReorg(h.view, 201, blockchain.StandardLockTimeFlags)
	require.Equal(t, txHashes([]*coinutil.Tx{immature}), txHashes(removed))
	h.requireGone(immature)

	// Accepted again once the coinbase has matured, the spend survives a
	// later reorg back to a tip where it is still mature.
	desc = h.add(immature)
	require.True(t, desc.SpendsCoinbase)
	removed = h.txPool.RemoveForReorg(h.view, 300, blockchain.StandardLockTimeFlags)
	require.Empty(t, removed)
	h.requirePooled(immature)
	h.requireConsistent()

	// Large coinbase outputs stay locked for longer.
	locked := h.createTx([]spendableOutput{h.coinbase(200, 10000*1e8)}, 1)
	child := h.createTx([]spendableOutput{txOutToSpendableOut(locked, 0)}, 1)
	h.add(locked)
	h.add(child)
	removed = h.txPool.RemoveForReorg(h.view, 400, blockchain.StandardLockTimeFlags)
	require.Empty(t, removed)
	removed = h.txPool.RemoveForReorg(h.view, 300, blockchain.StandardLockTimeFlags)
	require.ElementsMatch(t, txHashes([]*coinutil.Tx{locked, child}),
		txHashes(removed))

	// A spent or missing coinbase is stale too.
	missing := h.createTx([]spendableOutput{h.coinbase(100, 5000)}, 1)
	h.add(missing)
	removed = h.txPool.RemoveForReorg(blockchain.NewCoinsViewCache(nil), 300,
		blockchain.StandardLockTimeFlags)
	require.ElementsMatch(t, txHashes([]*coinutil.Tx{missing, immature}),
		txHashes(removed))
}

// TestRemoveForReorgContextual ensures transactions that are not final or
// break the rules of the new tip are removed with their redeemers.
func TestRemoveForReorgContextual(t *testing.T) {
	t.Parallel()

	h := newPoolHarness(t)
	heightLocked := h.createTx(h.fund(5000), 1, func(m *wire.MsgTx) {
		m.LockTime = 400
		m.TxIn[0].Sequence = 0
	})
	heightLockedChild := h.createTx(
		[]spendableOutput{txOutToSpendableOut(heightLocked, 0)}, 1)
	timeLocked := h.createTx(h.fund(5000), 1, func(m *wire.MsgTx) {
		m.LockTime = 1700000000
		m.TxIn[0].Sequence = 0
	})
	legacy := h.createTx(h.fund(5000), 1, func(m *wire.MsgTx) {
		m.Version = 1
		m.Overwintered = false
		m.VersionGroupID = 0
	})
	expiring := h.createTx(h.fund(5000), 1, func(m *wire.MsgTx) {
		m.ExpiryHeight = 250
	})
	good := h.createTx(h.fund(5000), 1)
	for _, tx := range []*coinutil.Tx{heightLocked, heightLockedChild,
		timeLocked, legacy, expiring, good} {

		h.add(tx)
	}

	removed := h.txPool.RemoveForReorg(h.view, 300, blockchain.StandardLockTimeFlags)
	require.ElementsMatch(t, txHashes([]*coinutil.Tx{heightLocked,
		heightLockedChild, timeLocked, legacy, expiring}), txHashes(removed))
	h.requirePooled(good)
	h.requireConsistent()
}

// TestRemoveForReorgConditions ensures notarizations and exports referring
// to blocks that left the chain are removed while exempt kinds are kept.
func TestRemoveForReorgConditions(t *testing.T) {
	t.Parallel()

	h := newPoolHarness(t)
	native := h.params.NativeCurrencyID
	root := wire.ProofRoot{
		SystemID:  native,
		Height:    250,
		StateRoot: chainhash.Hash{0x01},
		BlockHash: chainhash.Hash{0x02},
	}
	h.chain.SetProofRoot(root)

	notarized := h.createTx(h.fund(5000), 1, withCondition(
		wire.NewNotarizationCondition(&wire.Notarization{
			CurrencyID:         native,
			NotarizationHeight: 260,
			ProofRoot:          root,
		}, false)))
	foreign := h.createTx(h.fund(5000), 1, withCondition(
		wire.NewNotarizationCondition(&wire.Notarization{
			CurrencyID:         wire.NameID("other", wire.ID160{}),
			NotarizationHeight: 260,
			ProofRoot: wire.ProofRoot{
				SystemID: wire.NameID("other", wire.ID160{}),
				Height:   999,
			},
		}, true)))
	export := h.createTx(h.fund(5000), 1, withCondition(
		wire.NewCrossChainCondition(&wire.CrossChainTransfer{
			SourceSystemID:    native,
			SourceHeightStart: 100,
			SourceHeightEnd:   290,
		}, false)))
	reservation := h.createTx(h.fund(5000), 1, withCondition(
		wire.NewReservationCondition(&wire.IdentityReservation{
			Name: "alice",
		}, false)))
	finalize := h.createTx(h.fund(5000), 1, withCondition(&wire.Condition{
		Code:    wire.EvalFinalizeNotarization,
		Payload: []byte{0x01},
	}))
	for _, tx := range []*coinutil.Tx{notarized, foreign, export,
		reservation, finalize} {

		h.add(tx)
	}

	removed := h.txPool.RemoveForReorg(h.view, 300, blockchain.StandardLockTimeFlags)
	require.Empty(t, removed)

	// The notarized block was replaced.
	root.BlockHash = chainhash.Hash{0x03}
	h.chain.SetProofRoot(root)
	removed = h.txPool.RemoveForReorg(h.view, 300, blockchain.StandardLockTimeFlags)
	require.Equal(t, txHashes([]*coinutil.Tx{notarized}), txHashes(removed))

	// The exported window is no longer below the tip.
	removed = h.txPool.RemoveForReorg(h.view, 290, blockchain.StandardLockTimeFlags)
	require.Equal(t, txHashes([]*coinutil.Tx{export}), txHashes(removed))

	h.requirePooled(foreign, reservation, finalize)
	h.requireConsistent()
}

// TestRemoveExpired ensures expired transactions and pooled coinbases are
// removed with their redeemers.
func TestRemoveExpired(t *testing.T) {
	t.Parallel()

	h := newPoolHarness(t)
	expiring := h.createTx(h.fund(5000), 1, func(m *wire.MsgTx) {
		m.ExpiryHeight = 305
	})
	child := h.createTx([]spendableOutput{txOutToSpendableOut(expiring, 0)}, 1)
	forever := h.createTx(h.fund(5000), 1)
	h.add(expiring)
	h.add(child)
	h.add(forever)

	require.Empty(t, h.txPool.RemoveExpired(305))
	hashes := h.txPool.RemoveExpired(306)
	require.ElementsMatch(t, []*chainhash.Hash{expiring.Hash(), child.Hash()},
		hashes)
	h.requirePooled(forever)

	cb := h.coinbaseTx(0, 5000, false)
	h.add(cb)
	hashes = h.txPool.RemoveExpired(306)
	require.Equal(t, []*chainhash.Hash{cb.Hash()}, hashes)
	h.requirePooled(forever)
	h.requireConsistent()
}

// TestRemoveWithoutBranchID ensures transactions validated against another
// consensus branch are removed.
func TestRemoveWithoutBranchID(t *testing.T) {
	t.Parallel()

	h := newPoolHarness(t)
	current := h.createTx(h.fund(5000), 1)
	h.add(current)

	stale := h.createTx(h.fund(5000), 1)
	desc := h.newDesc(stale, h.chain.MedianTimePast())
	desc.BranchID = 0x1234
	require.NoError(t, h.txPool.AddUnchecked(desc, h.view, true))

	branchID := h.params.BranchID(h.chain.BestHeight() + 1)
	removed := h.txPool.RemoveWithoutBranchID(branchID)
	require.Equal(t, txHashes([]*coinutil.Tx{stale}), txHashes(removed))
	h.requirePooled(current)
}
