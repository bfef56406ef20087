// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinutil

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/nocturnalnematode/VerusCoin-sub001/wire"
	"github.com/stretchr/testify/require"
)

// TestTx ensures the cached hash and size match the underlying message and
// survive a trip through the serialized form.
func TestTx(t *testing.T) {
	t.Parallel()

	msgTx := wire.NewMsgTx(1)
	msgTx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Hash: chainhash.Hash{0x01}},
	})
	msgTx.AddTxOut(wire.NewTxOut(100, []byte{0x51}))
	tx := NewTx(msgTx)

	wantHash := msgTx.TxHash()
	require.Equal(t, &wantHash, tx.Hash())
	require.Equal(t, msgTx.SerializeSize(), tx.SerializeSize())
	require.False(t, tx.IsCoinBase())

	b, err := msgTx.Bytes()
	require.NoError(t, err)
	decoded, err := NewTxFromBytes(b)
	require.NoError(t, err)
	require.Equal(t, tx.Hash(), decoded.Hash())

	_, err = NewTxFromBytes(b[:5])
	require.Error(t, err)
}
