// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/nocturnalnematode/VerusCoin-sub001/coinutil"
	"github.com/nocturnalnematode/VerusCoin-sub001/wire"
)

// nameClaimKeys returns the index keys under which a claim of the same
// identity or currency as out would be recorded.  An identity may be claimed
// by either reservation kind, so both are returned for reservations.
func nameClaimKeys(out *wire.TxOut) []AddressKey {
	cond := out.Condition
	if cond == nil {
		return nil
	}

	switch cond.Code {
	case wire.EvalIdentityReservation, wire.EvalIdentityAdvancedReservation:
		res, err := cond.Reservation()
		if err != nil {
			return nil
		}
		id := res.ID()
		return []AddressKey{
			indexKey(id, wire.EvalIdentityReservation),
			indexKey(id, wire.EvalIdentityAdvancedReservation),
		}

	case wire.EvalCurrencyDefinition:
		def, err := cond.CurrencyDefinition()
		if err != nil {
			return nil
		}
		return []AddressKey{indexKey(def.ID(), wire.EvalCurrencyDefinition)}
	}

	return nil
}

// checkNameConflicts is the internal function which implements the public
// CheckNameConflicts.
//
// This function MUST be called with the mempool lock held (for reads).
func (mp *TxPool) checkNameConflicts(tx *coinutil.Tx) []*coinutil.Tx {
	var keys []AddressKey
	for _, out := range tx.MsgTx().TxOut {
		keys = append(keys, nameClaimKeys(out)...)
	}
	if len(keys) == 0 {
		return nil
	}

	txHash := tx.Hash()
	seen := make(map[chainhash.Hash]struct{})
	var conflicts []*coinutil.Tx
	for _, entry := range mp.addressEntries(keys) {
		hash := entry.Key.TxHash
		if hash == *txHash {
			continue
		}
		if _, ok := seen[hash]; ok {
			continue
		}
		seen[hash] = struct{}{}
		if desc, ok := mp.pool[hash]; ok {
			conflicts = append(conflicts, desc.Tx)
		}
	}
	return conflicts
}

// CheckNameConflicts returns the pooled transactions other than tx that
// reserve an identity name or define a currency tx also claims.
//
// This function is safe for concurrent access.
func (mp *TxPool) CheckNameConflicts(tx *coinutil.Tx) []*coinutil.Tx {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()
	return mp.checkNameConflicts(tx)
}
