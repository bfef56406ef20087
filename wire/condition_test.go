// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
)

// TestNameID ensures name identifiers ignore case and surrounding
// whitespace and depend on the parent.
func TestNameID(t *testing.T) {
	t.Parallel()

	root := ID160{}
	require.Equal(t, NameID("alice", root), NameID(" Alice ", root))
	require.NotEqual(t, NameID("alice", root), NameID("bob", root))

	parent := NameID("vrsc", root)
	require.NotEqual(t, NameID("alice", root), NameID("alice", parent))
	require.False(t, NameID("alice", root).IsNull())
}

// TestConditionID ensures condition index keys are distinct per condition
// kind for the same object.
func TestConditionID(t *testing.T) {
	t.Parallel()

	id := NameID("alice", ID160{})
	require.NotEqual(t, ConditionID(id, EvalIdentityReservation),
		ConditionID(id, EvalIdentityAdvancedReservation))
	require.Equal(t, ConditionID(id, EvalCurrencyDefinition),
		ConditionID(id, EvalCurrencyDefinition))
}

// TestConditionPayloads ensures each payload kind decodes from the
// condition that carries it and is rejected from any other kind.
func TestConditionPayloads(t *testing.T) {
	t.Parallel()

	res := &IdentityReservation{Name: "alice", Salt: chainhash.Hash{0x01}}
	cond := NewReservationCondition(res, true)
	require.Equal(t, EvalIdentityAdvancedReservation, cond.Code)
	got, err := cond.Reservation()
	require.NoError(t, err)
	require.Equal(t, res, got)
	require.Equal(t, NameID("alice", ID160{}), got.ID())
	_, err = cond.CurrencyDefinition()
	require.ErrorIs(t, err, ErrWrongCondition)

	def := &CurrencyDefinition{Name: "gold", Options: 0x20}
	cond = NewCurrencyDefinitionCondition(def)
	gotDef, err := cond.CurrencyDefinition()
	require.NoError(t, err)
	require.Equal(t, def, gotDef)

	n := &Notarization{
		CurrencyID:         def.ID(),
		NotarizationHeight: 100,
		ProofRoot: ProofRoot{
			Height:    99,
			StateRoot: chainhash.Hash{0x02},
			BlockHash: chainhash.Hash{0x03},
		},
	}
	cond = NewNotarizationCondition(n, false)
	gotN, err := cond.Notarization()
	require.NoError(t, err)
	require.Equal(t, n, gotN)
	_, err = cond.Reservation()
	require.ErrorIs(t, err, ErrWrongCondition)

	xfer := &CrossChainTransfer{SourceHeightStart: 10, SourceHeightEnd: 20}
	cond = NewCrossChainCondition(xfer, true)
	require.Equal(t, EvalCrossChainImport, cond.Code)
	gotX, err := cond.CrossChainTransfer()
	require.NoError(t, err)
	require.Equal(t, xfer, gotX)

	truncated := &Condition{Code: EvalCurrencyDefinition, Payload: []byte{5}}
	_, err = truncated.CurrencyDefinition()
	require.Error(t, err)
}
