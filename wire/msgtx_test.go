// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

// shieldedTx returns a sapling transaction exercising every serialized
// section.
func shieldedTx() *MsgTx {
	tx := NewSaplingMsgTx(500)
	tx.AddTxIn(&TxIn{
		PreviousOutPoint: OutPoint{Hash: chainhash.Hash{0x01}, Index: 2},
		SignatureScript:  []byte{0x51},
		Sequence:         0xffffffff,
	})
	tx.AddTxOut(NewTxOut(5000, []byte{0x76, 0xa9}))
	tx.AddTxOut(&TxOut{
		Value:    0,
		PkScript: []byte{0x6a},
		Condition: NewReservationCondition(&IdentityReservation{
			Name: "alice",
			Salt: chainhash.Hash{0x09},
		}, false),
	})
	tx.LockTime = 7
	tx.ValueBalance = -1000
	tx.SpendDescs = []*SpendDescription{{
		Anchor:    chainhash.Hash{0xaa},
		Nullifier: chainhash.Hash{0xbb},
	}}
	tx.OutputDescs = []*OutputDescription{{Cmu: chainhash.Hash{0xcc}}}
	tx.JoinSplits = []*JoinSplit{{
		VPubOld:    10,
		Anchor:     chainhash.Hash{0xdd},
		Nullifiers: [2]chainhash.Hash{{0xe0}, {0xe1}},
	}}
	return tx
}

// TestTxSerialize ensures a shielded transaction with conditions survives
// a serialization round trip and that the size calculation matches.
func TestTxSerialize(t *testing.T) {
	t.Parallel()

	tx := shieldedTx()
	var buf bytes.Buffer
	require.NoError(t, tx.Serialize(&buf))
	require.Equal(t, tx.SerializeSize(), buf.Len())

	var decoded MsgTx
	require.NoError(t, decoded.Deserialize(bytes.NewReader(buf.Bytes())))
	require.Equal(t, tx, &decoded, spew.Sdump(decoded))
	require.Equal(t, tx.TxHash(), decoded.TxHash())

	// A transparent legacy transaction has no shielded sections.
	legacy := NewMsgTx(1)
	legacy.AddTxIn(&TxIn{PreviousOutPoint: OutPoint{Index: 1}})
	legacy.AddTxOut(NewTxOut(1, nil))
	b, err := legacy.Bytes()
	require.NoError(t, err)
	require.Len(t, b, legacy.SerializeSize())
}

// TestTxDeserializeTruncated ensures truncated input is rejected.
func TestTxDeserializeTruncated(t *testing.T) {
	t.Parallel()

	b, err := shieldedTx().Bytes()
	require.NoError(t, err)
	for _, n := range []int{0, 3, 10, len(b) - 1} {
		var tx MsgTx
		require.Error(t, tx.FromBytes(b[:n]), "length %d", n)
	}
}

// TestIsCoinBase ensures coinbase detection.
func TestIsCoinBase(t *testing.T) {
	t.Parallel()

	cb := NewMsgTx(1)
	cb.AddTxIn(&TxIn{PreviousOutPoint: OutPoint{Index: MaxPrevOutIndex}})
	require.True(t, cb.IsCoinBase())

	spend := NewMsgTx(1)
	spend.AddTxIn(&TxIn{PreviousOutPoint: OutPoint{
		Hash: chainhash.Hash{0x01}, Index: MaxPrevOutIndex,
	}})
	require.False(t, spend.IsCoinBase())
}

// TestNullifiersAndAnchors ensures shielded spends are reported per pool
// generation.
func TestNullifiersAndAnchors(t *testing.T) {
	t.Parallel()

	tx := shieldedTx()
	require.True(t, tx.HasShieldedSpends())
	require.Equal(t, []chainhash.Hash{{0xe0}, {0xe1}}, tx.Nullifiers(Sprout))
	require.Equal(t, []chainhash.Hash{{0xbb}}, tx.Nullifiers(Sapling))
	require.Equal(t, []chainhash.Hash{{0xdd}}, tx.Anchors(Sprout))
	require.Equal(t, []chainhash.Hash{{0xaa}}, tx.Anchors(Sapling))
	require.Nil(t, tx.Nullifiers(ShieldedType(7)))
	require.False(t, ShieldedType(7).IsValid())
}
