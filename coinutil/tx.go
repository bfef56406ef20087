// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinutil

import (
	"bytes"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/nocturnalnematode/VerusCoin-sub001/wire"
)

// Tx defines a transaction that provides easier and more efficient
// manipulation of raw transactions.  The hash and serialized size are
// computed once when the Tx is created, so a single Tx may be shared by any
// number of indexes and goroutines as long as the underlying wire.MsgTx is
// never modified afterwards.
type Tx struct {
	msgTx  *wire.MsgTx    // Underlying MsgTx
	txHash chainhash.Hash // Transaction hash
	size   int            // Serialized size
}

// MsgTx returns the underlying wire.MsgTx for the transaction.
func (t *Tx) MsgTx() *wire.MsgTx {
	return t.msgTx
}

// Hash returns the hash of the transaction.
func (t *Tx) Hash() *chainhash.Hash {
	return &t.txHash
}

// SerializeSize returns the serialized size of the transaction.
func (t *Tx) SerializeSize() int {
	return t.size
}

// IsCoinBase returns whether the transaction is a coinbase.
func (t *Tx) IsCoinBase() bool {
	return t.msgTx.IsCoinBase()
}

// NewTx returns a new instance of a transaction given an underlying
// wire.MsgTx.  The MsgTx must not be modified after this call.
func NewTx(msgTx *wire.MsgTx) *Tx {
	return &Tx{
		msgTx:  msgTx,
		txHash: msgTx.TxHash(),
		size:   msgTx.SerializeSize(),
	}
}

// NewTxFromBytes returns a new instance of a transaction given the
// serialized bytes.
func NewTxFromBytes(serializedTx []byte) (*Tx, error) {
	var msgTx wire.MsgTx
	err := msgTx.Deserialize(bytes.NewReader(serializedTx))
	if err != nil {
		return nil, err
	}
	return NewTx(&msgTx), nil
}
