// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"github.com/btcsuite/btcd/btcutil"
	btcchaincfg "github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/nocturnalnematode/VerusCoin-sub001/blockchain"
	"github.com/nocturnalnematode/VerusCoin-sub001/wire"
)

// UnminedHeight is the height used for the "block" height field of the
// contextual transaction information provided in a transaction store
// when it has not yet been mined into a block.
const UnminedHeight = 0x7fffffff

// minInt is a helper function to return the minimum of two ints.  This avoids
// a math import and the need to cast to floats.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// CalcPriority returns a transaction priority given a transaction and the sum
// of each of its input values multiplied by their age (# of confirmations).
// Thus, the final formula for the priority is:
// sum(inputValue * inputAge) / adjustedTxSize
//
// Inputs whose coins are unknown to the view or that are still unmined
// contribute no input age.
func CalcPriority(tx *wire.MsgTx, view blockchain.CoinView, nextBlockHeight int32) float64 {
	// In order to encourage spending multiple old unspent transaction
	// outputs thereby reducing the total set, don't count the constant
	// overhead for each input as well as enough bytes of the signature
	// script to cover a pay-to-script-hash redemption with a compressed
	// pubkey.  This makes additional inputs free by boosting the priority
	// of the transaction accordingly.  No more incentive is given to avoid
	// encouraging gaming future transactions through the use of junk
	// outputs.
	//
	// The constant overhead for a txin is 41 bytes since the previous
	// outpoint is 36 bytes + 4 bytes for the sequence + 1 byte the
	// signature script length.
	//
	// A compressed pubkey pay-to-script-hash redemption with a maximum len
	// signature is of the form:
	// [OP_DATA_73 <73-byte sig> + OP_DATA_35 + {OP_DATA_33
	// <33 byte compresed pubkey> + OP_CHECKSIG}]
	//
	// Thus 1 + 73 + 1 + 1 + 33 + 1 = 110
	overhead := 0
	for _, txIn := range tx.TxIn {
		// Max inputs + size can't possibly overflow here.
		overhead += 41 + minInt(110, len(txIn.SignatureScript))
	}

	serializedTxSize := tx.SerializeSize()
	if overhead >= serializedTxSize {
		return 0.0
	}

	inputValueAge := calcInputValueAge(tx, view, nextBlockHeight)
	return inputValueAge / float64(serializedTxSize-overhead)
}

// calcInputValueAge is a helper function used to calculate the input age of
// a transaction.  The input age for a txin is the number of confirmations
// since the referenced txout multiplied by its output value.  The total input
// age is the sum of this value for each txin.  Any inputs to the transaction
// which are currently in the mempool and hence not mined into a block yet,
// contribute no additional input age to the transaction.
func calcInputValueAge(tx *wire.MsgTx, view blockchain.CoinView, nextBlockHeight int32) float64 {
	if view == nil || tx.IsCoinBase() {
		return 0
	}

	var totalInputAge float64
	for _, txIn := range tx.TxIn {
		prevOut := &txIn.PreviousOutPoint
		coins := view.AccessCoins(&prevOut.Hash)
		if coins == nil {
			continue
		}
		out := coins.Output(prevOut.Index)
		if out == nil {
			continue
		}

		// Inputs with dependencies currently in the mempool have their
		// block height set to a special constant.  Their input age
		// should computed as zero since their parent hasn't made it
		// into a block yet.
		var inputAge int32
		if coins.BlockHeight() != UnminedHeight {
			inputAge = nextBlockHeight - coins.BlockHeight()
		}
		totalInputAge += float64(out.Value) * float64(inputAge)
	}

	return totalInputAge
}

// AddressType identifies how an address index key was derived.
type AddressType uint8

// These constants define the address kinds recorded in the address and
// spent indexes.
const (
	AddrTypeUnknown AddressType = iota
	AddrTypePubKeyHash
	AddrTypeScriptHash
	AddrTypeWitness
	AddrTypeIndex
)

// AddressKey identifies an address in the address index.
type AddressKey struct {
	Type AddressType
	Hash [20]byte
}

// extractAddressKeys returns the address keys a public key script pays to.
// Scripts whose addresses can't be reduced to a 20 byte hash are skipped.
func extractAddressKeys(pkScript []byte, params *btcchaincfg.Params) []AddressKey {
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(pkScript, params)
	if err != nil {
		return nil
	}

	keys := make([]AddressKey, 0, len(addrs))
	for _, addr := range addrs {
		var key AddressKey
		switch a := addr.(type) {
		case *btcutil.AddressPubKeyHash:
			key.Type = AddrTypePubKeyHash
			copy(key.Hash[:], a.ScriptAddress())
		case *btcutil.AddressPubKey:
			key.Type = AddrTypePubKeyHash
			copy(key.Hash[:], a.AddressPubKeyHash().ScriptAddress())
		case *btcutil.AddressScriptHash:
			key.Type = AddrTypeScriptHash
			copy(key.Hash[:], a.ScriptAddress())
		case *btcutil.AddressWitnessPubKeyHash:
			key.Type = AddrTypeWitness
			copy(key.Hash[:], a.ScriptAddress())
		default:
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

// conditionIndexKeys returns the index keys under which an output carrying
// cond is recorded.  Identity and currency claims are recorded under the
// condition id of the claimed name so conflicting claims can be found.
func conditionIndexKeys(cond *wire.Condition) []AddressKey {
	if cond == nil {
		return nil
	}

	var objectID wire.ID160
	switch cond.Code {
	case wire.EvalIdentityReservation, wire.EvalIdentityAdvancedReservation:
		res, err := cond.Reservation()
		if err != nil {
			return nil
		}
		objectID = res.ID()

	case wire.EvalCurrencyDefinition:
		def, err := cond.CurrencyDefinition()
		if err != nil {
			return nil
		}
		objectID = def.ID()

	case wire.EvalAcceptedNotarization, wire.EvalEarnedNotarization:
		n, err := cond.Notarization()
		if err != nil {
			return nil
		}
		objectID = n.CurrencyID

	case wire.EvalCrossChainExport, wire.EvalCrossChainImport:
		t, err := cond.CrossChainTransfer()
		if err != nil {
			return nil
		}
		objectID = t.SourceSystemID

	default:
		return nil
	}

	return []AddressKey{indexKey(objectID, cond.Code)}
}

// indexKey returns the address key of the condition index for objectID.
func indexKey(objectID wire.ID160, code wire.EvalCode) AddressKey {
	return AddressKey{
		Type: AddrTypeIndex,
		Hash: wire.ConditionID(objectID, code),
	}
}

// outputAddressKeys returns every address key an output is recorded under.
func outputAddressKeys(out *wire.TxOut, params *btcchaincfg.Params) []AddressKey {
	keys := extractAddressKeys(out.PkScript, params)
	return append(keys, conditionIndexKeys(out.Condition)...)
}
