// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"testing"

	"github.com/nocturnalnematode/VerusCoin-sub001/coinutil"
	"github.com/nocturnalnematode/VerusCoin-sub001/wire"
	"github.com/stretchr/testify/require"
)

// reserve returns a condition reserving name under parent.
func reserve(name string, parent wire.ID160, advanced bool) *wire.Condition {
	return wire.NewReservationCondition(&wire.IdentityReservation{
		Name:   name,
		Parent: parent,
	}, advanced)
}

// TestIdentityNameConflicts ensures reservations of the same identity
// conflict across reservation kinds and name spellings.
func TestIdentityNameConflicts(t *testing.T) {
	t.Parallel()

	h := newPoolHarness(t)
	plain := h.createTx(h.fund(5000), 1,
		withCondition(reserve("alice", wire.ID160{}, false)))
	h.add(plain)
	require.Empty(t, h.txPool.CheckNameConflicts(plain))

	advanced := h.createTx(h.fund(5000), 1,
		withCondition(reserve(" Alice ", wire.ID160{}, true)))
	otherParent := h.createTx(h.fund(5000), 1,
		withCondition(reserve("alice", wire.NameID("org", wire.ID160{}), false)))
	other := h.createTx(h.fund(5000), 1,
		withCondition(reserve("bob", wire.ID160{}, false)))
	h.add(advanced)
	h.add(otherParent)
	h.add(other)

	require.Equal(t, []*coinutil.Tx{plain}, h.txPool.CheckNameConflicts(advanced))
	require.Equal(t, []*coinutil.Tx{advanced}, h.txPool.CheckNameConflicts(plain))
	require.Empty(t, h.txPool.CheckNameConflicts(otherParent))
	require.Empty(t, h.txPool.CheckNameConflicts(other))

	removed := h.txPool.RemoveConflicts(advanced)
	require.Equal(t, txHashes([]*coinutil.Tx{plain}), txHashes(removed))
	h.requireGone(plain)
	h.requirePooled(advanced, otherParent, other)
	require.Empty(t, h.txPool.CheckNameConflicts(advanced))
	h.requireConsistent()
}

// TestCurrencyNameConflicts ensures definitions of the same currency
// conflict and a mined definition evicts the pooled one.
func TestCurrencyNameConflicts(t *testing.T) {
	t.Parallel()

	h := newPoolHarness(t)
	define := func(name string) func(*wire.MsgTx) {
		return withCondition(wire.NewCurrencyDefinitionCondition(
			&wire.CurrencyDefinition{Name: name}))
	}
	gold := h.createTx(h.fund(5000), 1, define("gold"))
	silver := h.createTx(h.fund(5000), 1, define("silver"))
	h.add(gold)
	h.add(silver)

	mined := h.createTx(h.fund(5000), 1, define("GOLD"))
	require.Equal(t, []*coinutil.Tx{gold}, h.txPool.CheckNameConflicts(mined))

	conflicts := h.txPool.RemoveForBlock([]*coinutil.Tx{mined}, 301)
	require.Equal(t, txHashes([]*coinutil.Tx{gold}), txHashes(conflicts))
	h.requirePooled(silver)
	h.requireConsistent()
}
