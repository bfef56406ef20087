// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/nocturnalnematode/VerusCoin-sub001/wire"
	"github.com/stretchr/testify/require"
)

// TestAddressDeltas ensures pooled debits and credits are indexed by
// address and dropped with the transaction.
func TestAddressDeltas(t *testing.T) {
	t.Parallel()

	h := newPoolHarness(t)
	outs := h.fund(5000)
	tx := h.createTx(outs, 2)
	desc := h.add(tx)

	deltas := h.txPool.AddressDeltas([]AddressKey{h.payAddr})
	require.Len(t, deltas, 3)

	require.Equal(t, AddressIndexKey{Address: h.payAddr, TxHash: *tx.Hash(),
		Index: 0}, deltas[0].Key)
	require.Equal(t, int64(2000), deltas[0].Value.Amount)
	require.Nil(t, deltas[0].Value.PrevOut)

	require.Equal(t, AddressIndexKey{Address: h.payAddr, TxHash: *tx.Hash(),
		Index: 0, Spending: true}, deltas[1].Key)
	require.Equal(t, int64(-5000), deltas[1].Value.Amount)
	require.Equal(t, &outs[0].outPoint, deltas[1].Value.PrevOut)
	require.Equal(t, desc.Added, deltas[1].Value.Time)

	require.Equal(t, uint32(1), deltas[2].Key.Index)
	require.False(t, deltas[2].Key.Spending)

	stranger := AddressKey{Type: AddrTypePubKeyHash, Hash: [20]byte{0x01}}
	require.Empty(t, h.txPool.AddressDeltas([]AddressKey{stranger}))

	h.txPool.RemoveTransaction(tx, true)
	require.Empty(t, h.txPool.AddressDeltas([]AddressKey{h.payAddr}))
	h.requireConsistent()
}

// TestAddressDeltasPooledParent ensures inputs spending pooled outputs are
// indexed from the pooled parent.
func TestAddressDeltasPooledParent(t *testing.T) {
	t.Parallel()

	h := newPoolHarness(t)
	scriptHash := btcutil.Hash160([]byte("script"))
	addr, err := btcutil.NewAddressScriptHashFromHash(scriptHash,
		h.params.AddressParams)
	require.NoError(t, err)
	p2sh, err := txscript.PayToAddrScript(addr)
	require.NoError(t, err)
	p2shKey := AddressKey{Type: AddrTypeScriptHash}
	copy(p2shKey.Hash[:], scriptHash)

	parent := h.createTx(h.fund(5000), 1, func(m *wire.MsgTx) {
		m.TxOut[0].PkScript = p2sh
	})
	child := h.createTx([]spendableOutput{txOutToSpendableOut(parent, 0)}, 1)
	h.add(parent)
	h.add(child)

	deltas := h.txPool.AddressDeltas([]AddressKey{p2shKey})
	require.Len(t, deltas, 2)
	var credit, debit int64
	for _, delta := range deltas {
		if delta.Key.Spending {
			require.Equal(t, *child.Hash(), delta.Key.TxHash)
			debit += delta.Value.Amount
		} else {
			require.Equal(t, *parent.Hash(), delta.Key.TxHash)
			credit += delta.Value.Amount
		}
	}
	require.Equal(t, int64(4000), credit)
	require.Equal(t, int64(-4000), debit)
}

// TestConditionIndex ensures outputs carrying conditions are indexed under
// the identifier they refer to.
func TestConditionIndex(t *testing.T) {
	t.Parallel()

	h := newPoolHarness(t)
	res := &wire.IdentityReservation{Name: "alice"}
	tx := h.createTx(h.fund(5000), 1,
		withCondition(wire.NewReservationCondition(res, false)))
	h.add(tx)

	key := AddressKey{
		Type: AddrTypeIndex,
		Hash: wire.ConditionID(res.ID(), wire.EvalIdentityReservation),
	}
	deltas := h.txPool.AddressDeltas([]AddressKey{key})
	require.Len(t, deltas, 1)
	require.Equal(t, *tx.Hash(), deltas[0].Key.TxHash)
}

// TestSpentInfo ensures the spent index reports the pooled spender of an
// outpoint only while it is pooled and only when enabled.
func TestSpentInfo(t *testing.T) {
	t.Parallel()

	h := newPoolHarness(t)
	outs := h.fund(5000)
	tx := h.createTx(outs, 1)
	h.add(tx)

	info, ok := h.txPool.SpentInfo(outs[0].outPoint)
	require.True(t, ok)
	require.Equal(t, SpentIndexValue{
		TxHash:      *tx.Hash(),
		InputIndex:  0,
		BlockHeight: -1,
		Satoshis:    5000,
		AddressType: AddrTypePubKeyHash,
		AddressHash: h.payAddr.Hash,
	}, info)

	h.txPool.RemoveTransaction(tx, true)
	_, ok = h.txPool.SpentInfo(outs[0].outPoint)
	require.False(t, ok)

	disabled := New(&Config{ChainParams: h.params})
	other := h.createTx(h.fund(5000), 1)
	require.NoError(t, disabled.AddUnchecked(h.newDesc(other, h.chain.MedianTimePast()),
		h.view, true))
	_, ok = disabled.SpentInfo(other.MsgTx().TxIn[0].PreviousOutPoint)
	require.False(t, ok)
}

// TestSpentInfoDisplacedSpender ensures the spent index follows the outpoint
// claim back to an earlier spender when a later double spend leaves.
func TestSpentInfoDisplacedSpender(t *testing.T) {
	t.Parallel()

	h := newPoolHarness(t)
	outs := h.fund(5000)
	first := h.createTx(outs, 1)
	second := h.createTx(outs, 2)
	h.add(first)
	h.add(second)

	info, ok := h.txPool.SpentInfo(outs[0].outPoint)
	require.True(t, ok)
	require.Equal(t, *second.Hash(), info.TxHash)

	h.txPool.RemoveTransaction(second, true)
	h.requirePooled(first)
	require.Same(t, first, h.txPool.CheckSpend(outs[0].outPoint))
	info, ok = h.txPool.SpentInfo(outs[0].outPoint)
	require.True(t, ok)
	require.Equal(t, SpentIndexValue{
		TxHash:      *first.Hash(),
		InputIndex:  0,
		BlockHeight: -1,
		Satoshis:    5000,
		AddressType: AddrTypePubKeyHash,
		AddressHash: h.payAddr.Hash,
	}, info)
	h.requireConsistent()

	// Removing the displaced spender first leaves the later one indexed.
	h.add(second)
	h.txPool.RemoveTransaction(first, true)
	info, ok = h.txPool.SpentInfo(outs[0].outPoint)
	require.True(t, ok)
	require.Equal(t, *second.Hash(), info.TxHash)
	h.requireConsistent()

	h.txPool.RemoveTransaction(second, true)
	_, ok = h.txPool.SpentInfo(outs[0].outPoint)
	require.False(t, ok)
}
