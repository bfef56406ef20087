// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/nocturnalnematode/VerusCoin-sub001/coinutil"
	"github.com/nocturnalnematode/VerusCoin-sub001/wire"
)

// reservePriorityMultiplier scales the fee delta of a reserve transaction
// into its priority delta.
const reservePriorityMultiplier = 100

// ReserveTxFlags describe the outcome of analysing a multi-currency
// transaction.
type ReserveTxFlags uint16

// These constants define the reserve transaction flags.
const (
	ReserveTxValid ReserveTxFlags = 1 << iota
	ReserveTxReject
	ReserveTxIsReserve
	ReserveTxIsImport
	ReserveTxIsExport
)

// ReserveTxDescriptor summarises the currency flows of a multi-currency
// transaction.
type ReserveTxDescriptor struct {
	Tx         *coinutil.Tx
	Flags      ReserveTxFlags
	NativeIn   int64
	NativeOut  int64
	ReserveIn  map[wire.ID160]int64
	ReserveOut map[wire.ID160]int64
}

// IsValid returns whether the analysis succeeded and the transaction is not
// rejected.
func (d *ReserveTxDescriptor) IsValid() bool {
	return d.Flags&ReserveTxValid != 0 && d.Flags&ReserveTxReject == 0
}

// NativeFees returns the fee paid in the native currency.
func (d *ReserveTxDescriptor) NativeFees() int64 {
	return d.NativeIn - d.NativeOut
}

// ReserveFees returns the fees paid in each reserve currency.  Currencies
// without a positive fee are omitted.
func (d *ReserveTxDescriptor) ReserveFees() map[wire.ID160]int64 {
	fees := make(map[wire.ID160]int64)
	for id, in := range d.ReserveIn {
		if fee := in - d.ReserveOut[id]; fee > 0 {
			fees[id] = fee
		}
	}
	return fees
}

// clone returns a copy of the descriptor sharing the currency maps.
func (d *ReserveTxDescriptor) clone() *ReserveTxDescriptor {
	c := *d
	return &c
}

// allFeesAsNative returns the fees of desc in native currency.  Reserve
// fees are only counted on chains that are not the primary chain, where a
// converter is available.
//
// This function MUST be called with the mempool lock held (for reads).
func (mp *TxPool) allFeesAsNative(desc *ReserveTxDescriptor) int64 {
	fees := desc.NativeFees()
	if mp.cfg.ChainParams.IsPrimaryChain() || mp.cfg.CurrencyConverter == nil {
		return fees
	}
	reserveFees := desc.ReserveFees()
	if len(reserveFees) == 0 {
		return fees
	}
	return fees + mp.cfg.CurrencyConverter.ReserveToNative(reserveFees)
}

// PrioritiseReserveTransaction records the descriptor of a multi-currency
// transaction and prioritises the transaction by its fees expressed in
// native currency.  It returns false without any effect when the
// descriptor is not valid.
//
// This function is safe for concurrent access.
func (mp *TxPool) PrioritiseReserveTransaction(desc *ReserveTxDescriptor) bool {
	if desc == nil || desc.Tx == nil || !desc.IsValid() {
		return false
	}

	mp.mtx.Lock()
	defer mp.mtx.Unlock()

	txHash := desc.Tx.Hash()
	mp.reserveTxs[*txHash] = desc.clone()
	feeDelta := mp.allFeesAsNative(desc)
	mp.prioritiseTransaction(txHash,
		float64(feeDelta)*reservePriorityMultiplier, feeDelta)
	return true
}

// ReserveTransaction returns a copy of the recorded descriptor of the
// transaction pointing at the pooled transaction.  Descriptors of
// transactions that are no longer pooled are dropped.
//
// This function is safe for concurrent access.
func (mp *TxPool) ReserveTransaction(txHash *chainhash.Hash) (*ReserveTxDescriptor, bool) {
	mp.mtx.Lock()
	defer mp.mtx.Unlock()

	desc, ok := mp.reserveTxs[*txHash]
	if !ok {
		return nil, false
	}
	poolDesc, inPool := mp.pool[*txHash]
	if !inPool {
		delete(mp.reserveTxs, *txHash)
		return nil, false
	}
	desc.Tx = poolDesc.Tx
	return desc.clone(), true
}
