// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	btcwire "github.com/btcsuite/btcd/wire"
)

const (
	// overwinterFlag is the high bit of the serialized version header which
	// marks a transaction as using the overwintered format.
	overwinterFlag = uint32(1) << 31

	// SaplingTxVersion is the first transaction version carrying sapling
	// spend and output descriptions.
	SaplingTxVersion = 4

	// OverwinterTxVersion is the transaction version introduced with the
	// overwinter network upgrade.
	OverwinterTxVersion = 3

	// JoinSplitTxVersion is the first transaction version carrying sprout
	// join-split descriptions.
	JoinSplitTxVersion = 2

	// OverwinterVersionGroupID is the version group id of overwinter
	// transactions.
	OverwinterVersionGroupID = 0x03C48270

	// SaplingVersionGroupID is the version group id of sapling transactions.
	SaplingVersionGroupID = 0x892F2085

	// MaxPrevOutIndex is the maximum index the index field of a previous
	// outpoint can be.
	MaxPrevOutIndex = btcwire.MaxPrevOutIndex

	// MaxTxInSequenceNum is the maximum sequence number the sequence field
	// of a transaction input can be.
	MaxTxInSequenceNum = btcwire.MaxTxInSequenceNum

	// maxTxElements bounds the number of inputs, outputs and shielded
	// descriptions decoded from untrusted input.
	maxTxElements = 1 << 16

	// maxScriptSize is the maximum size of a script or condition payload
	// accepted while decoding.
	maxScriptSize = 1 << 20
)

// OutPoint defines a data type that is used to track previous transaction
// outputs.
type OutPoint = btcwire.OutPoint

// TxIn defines a transparent transaction input.
type TxIn = btcwire.TxIn

// TxOut defines a transparent transaction output.  Outputs of smart
// transactions additionally carry a typed condition payload.
type TxOut struct {
	Value     int64
	PkScript  []byte
	Condition *Condition
}

// NewTxOut returns a new transaction output with the provided value and
// public key script.
func NewTxOut(value int64, pkScript []byte) *TxOut {
	return &TxOut{Value: value, PkScript: pkScript}
}

// SerializeSize returns the number of bytes it would take to serialize the
// the transaction output.
func (t *TxOut) SerializeSize() int {
	// Value 8 bytes + serialized varint size for the length of PkScript +
	// PkScript bytes + 1 byte condition code.
	n := 8 + btcwire.VarIntSerializeSize(uint64(len(t.PkScript))) +
		len(t.PkScript) + 1
	if t.Condition != nil && t.Condition.Code != EvalNone {
		n += btcwire.VarIntSerializeSize(uint64(len(t.Condition.Payload))) +
			len(t.Condition.Payload)
	}
	return n
}

// SpendDescription is a sapling spend.  Only the fields the node needs to
// track double spends and anchors are carried.
type SpendDescription struct {
	CV        chainhash.Hash
	Anchor    chainhash.Hash
	Nullifier chainhash.Hash
	RK        chainhash.Hash
}

// OutputDescription is a sapling output.
type OutputDescription struct {
	CV  chainhash.Hash
	Cmu chainhash.Hash
}

// JoinSplit is a sprout join-split description.
type JoinSplit struct {
	VPubOld     int64
	VPubNew     int64
	Anchor      chainhash.Hash
	Nullifiers  [2]chainhash.Hash
	Commitments [2]chainhash.Hash
}

// MsgTx is a transaction of the chain.  It carries a transparent part,
// optional sprout join-splits and sapling spends/outputs.
type MsgTx struct {
	Version        int32
	Overwintered   bool
	VersionGroupID uint32
	TxIn           []*TxIn
	TxOut          []*TxOut
	LockTime       uint32
	ExpiryHeight   uint32
	ValueBalance   int64
	SpendDescs     []*SpendDescription
	OutputDescs    []*OutputDescription
	JoinSplits     []*JoinSplit
}

// NewMsgTx returns a new transaction with the passed version.
func NewMsgTx(version int32) *MsgTx {
	return &MsgTx{
		Version: version,
		TxIn:    make([]*TxIn, 0, 1),
		TxOut:   make([]*TxOut, 0, 1),
	}
}

// NewSaplingMsgTx returns a new overwintered sapling transaction that
// expires at the passed height.  An expiry of zero disables expiry.
func NewSaplingMsgTx(expiryHeight uint32) *MsgTx {
	tx := NewMsgTx(SaplingTxVersion)
	tx.Overwintered = true
	tx.VersionGroupID = SaplingVersionGroupID
	tx.ExpiryHeight = expiryHeight
	return tx
}

// AddTxIn adds a transaction input to the message.
func (msg *MsgTx) AddTxIn(ti *TxIn) {
	msg.TxIn = append(msg.TxIn, ti)
}

// AddTxOut adds a transaction output to the message.
func (msg *MsgTx) AddTxOut(to *TxOut) {
	msg.TxOut = append(msg.TxOut, to)
}

// IsCoinBase determines whether or not a transaction is a coinbase.  A
// coinbase is a special transaction created by miners that has no inputs.
// This is represented in the block chain by a transaction with a single input
// that has a previous output transaction index set to the maximum value along
// with a zero hash.
func (msg *MsgTx) IsCoinBase() bool {
	if len(msg.TxIn) != 1 {
		return false
	}

	prevOut := &msg.TxIn[0].PreviousOutPoint
	return prevOut.Index == MaxPrevOutIndex && prevOut.Hash == zeroHash
}

// HasShieldedSpends returns whether the transaction spends any shielded
// notes of either pool generation.
func (msg *MsgTx) HasShieldedSpends() bool {
	return len(msg.JoinSplits) > 0 || len(msg.SpendDescs) > 0
}

// Nullifiers returns every nullifier revealed by the transaction for the
// given shielded pool generation.
func (msg *MsgTx) Nullifiers(pool ShieldedType) []chainhash.Hash {
	var nfs []chainhash.Hash
	switch pool {
	case Sprout:
		for _, js := range msg.JoinSplits {
			nfs = append(nfs, js.Nullifiers[:]...)
		}
	case Sapling:
		for _, sd := range msg.SpendDescs {
			nfs = append(nfs, sd.Nullifier)
		}
	}
	return nfs
}

// Anchors returns the commitment tree roots the shielded spends of the given
// pool generation are anchored to.
func (msg *MsgTx) Anchors(pool ShieldedType) []chainhash.Hash {
	var anchors []chainhash.Hash
	switch pool {
	case Sprout:
		for _, js := range msg.JoinSplits {
			anchors = append(anchors, js.Anchor)
		}
	case Sapling:
		for _, sd := range msg.SpendDescs {
			anchors = append(anchors, sd.Anchor)
		}
	}
	return anchors
}

// TxHash generates the hash for the transaction.
func (msg *MsgTx) TxHash() chainhash.Hash {
	buf := bytes.NewBuffer(make([]byte, 0, msg.SerializeSize()))
	_ = msg.Serialize(buf)
	return chainhash.DoubleHashH(buf.Bytes())
}

// Copy creates a deep copy of the transaction so that the original does not
// get modified when the copy is manipulated.
func (msg *MsgTx) Copy() *MsgTx {
	var buf bytes.Buffer
	_ = msg.Serialize(&buf)
	var c MsgTx
	_ = c.Deserialize(&buf)
	return &c
}

func (msg *MsgTx) header() uint32 {
	h := uint32(msg.Version)
	if msg.Overwintered {
		h |= overwinterFlag
	}
	return h
}

func (msg *MsgTx) hasSapling() bool {
	return msg.Overwintered && msg.Version >= SaplingTxVersion
}

// Serialize encodes the transaction to w.
func (msg *MsgTx) Serialize(w io.Writer) error {
	var scratch [8]byte
	putUint32 := func(v uint32) error {
		binary.LittleEndian.PutUint32(scratch[:4], v)
		_, err := w.Write(scratch[:4])
		return err
	}
	putInt64 := func(v int64) error {
		binary.LittleEndian.PutUint64(scratch[:], uint64(v))
		_, err := w.Write(scratch[:])
		return err
	}
	putHash := func(h *chainhash.Hash) error {
		_, err := w.Write(h[:])
		return err
	}

	if err := putUint32(msg.header()); err != nil {
		return err
	}
	if msg.Overwintered {
		if err := putUint32(msg.VersionGroupID); err != nil {
			return err
		}
	}

	if err := btcwire.WriteVarInt(w, 0, uint64(len(msg.TxIn))); err != nil {
		return err
	}
	for _, ti := range msg.TxIn {
		if err := putHash(&ti.PreviousOutPoint.Hash); err != nil {
			return err
		}
		if err := putUint32(ti.PreviousOutPoint.Index); err != nil {
			return err
		}
		if err := btcwire.WriteVarBytes(w, 0, ti.SignatureScript); err != nil {
			return err
		}
		if err := putUint32(ti.Sequence); err != nil {
			return err
		}
	}

	if err := btcwire.WriteVarInt(w, 0, uint64(len(msg.TxOut))); err != nil {
		return err
	}
	for _, to := range msg.TxOut {
		if err := putInt64(to.Value); err != nil {
			return err
		}
		if err := btcwire.WriteVarBytes(w, 0, to.PkScript); err != nil {
			return err
		}
		code := EvalNone
		if to.Condition != nil {
			code = to.Condition.Code
		}
		if _, err := w.Write([]byte{byte(code)}); err != nil {
			return err
		}
		if code != EvalNone {
			err := btcwire.WriteVarBytes(w, 0, to.Condition.Payload)
			if err != nil {
				return err
			}
		}
	}

	if err := putUint32(msg.LockTime); err != nil {
		return err
	}
	if msg.Overwintered {
		if err := putUint32(msg.ExpiryHeight); err != nil {
			return err
		}
	}

	if msg.hasSapling() {
		if err := putInt64(msg.ValueBalance); err != nil {
			return err
		}
		err := btcwire.WriteVarInt(w, 0, uint64(len(msg.SpendDescs)))
		if err != nil {
			return err
		}
		for _, sd := range msg.SpendDescs {
			for _, h := range []*chainhash.Hash{&sd.CV, &sd.Anchor,
				&sd.Nullifier, &sd.RK} {

				if err := putHash(h); err != nil {
					return err
				}
			}
		}
		err = btcwire.WriteVarInt(w, 0, uint64(len(msg.OutputDescs)))
		if err != nil {
			return err
		}
		for _, od := range msg.OutputDescs {
			if err := putHash(&od.CV); err != nil {
				return err
			}
			if err := putHash(&od.Cmu); err != nil {
				return err
			}
		}
	}

	if msg.Version >= JoinSplitTxVersion {
		err := btcwire.WriteVarInt(w, 0, uint64(len(msg.JoinSplits)))
		if err != nil {
			return err
		}
		for _, js := range msg.JoinSplits {
			if err := putInt64(js.VPubOld); err != nil {
				return err
			}
			if err := putInt64(js.VPubNew); err != nil {
				return err
			}
			hashes := []*chainhash.Hash{&js.Anchor, &js.Nullifiers[0],
				&js.Nullifiers[1], &js.Commitments[0], &js.Commitments[1]}
			for _, h := range hashes {
				if err := putHash(h); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// Deserialize decodes a transaction from r into the receiver.
func (msg *MsgTx) Deserialize(r io.Reader) error {
	var scratch [8]byte
	getUint32 := func() (uint32, error) {
		if _, err := io.ReadFull(r, scratch[:4]); err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint32(scratch[:4]), nil
	}
	getInt64 := func() (int64, error) {
		if _, err := io.ReadFull(r, scratch[:]); err != nil {
			return 0, err
		}
		return int64(binary.LittleEndian.Uint64(scratch[:])), nil
	}
	getHash := func(h *chainhash.Hash) error {
		_, err := io.ReadFull(r, h[:])
		return err
	}
	getCount := func(field string) (uint64, error) {
		count, err := btcwire.ReadVarInt(r, 0)
		if err != nil {
			return 0, err
		}
		if count > maxTxElements {
			return 0, fmt.Errorf("too many %s to fit into max message "+
				"size [count %d, max %d]", field, count, maxTxElements)
		}
		return count, nil
	}

	header, err := getUint32()
	if err != nil {
		return err
	}
	*msg = MsgTx{
		Version:      int32(header &^ overwinterFlag),
		Overwintered: header&overwinterFlag != 0,
	}
	if msg.Overwintered {
		if msg.VersionGroupID, err = getUint32(); err != nil {
			return err
		}
	}

	count, err := getCount("input transactions")
	if err != nil {
		return err
	}
	msg.TxIn = make([]*TxIn, 0, count)
	for i := uint64(0); i < count; i++ {
		ti := new(TxIn)
		if err := getHash(&ti.PreviousOutPoint.Hash); err != nil {
			return err
		}
		if ti.PreviousOutPoint.Index, err = getUint32(); err != nil {
			return err
		}
		ti.SignatureScript, err = btcwire.ReadVarBytes(r, 0,
			maxScriptSize, "signature script")
		if err != nil {
			return err
		}
		if ti.Sequence, err = getUint32(); err != nil {
			return err
		}
		msg.TxIn = append(msg.TxIn, ti)
	}

	count, err = getCount("output transactions")
	if err != nil {
		return err
	}
	msg.TxOut = make([]*TxOut, 0, count)
	for i := uint64(0); i < count; i++ {
		to := new(TxOut)
		if to.Value, err = getInt64(); err != nil {
			return err
		}
		to.PkScript, err = btcwire.ReadVarBytes(r, 0, maxScriptSize,
			"public key script")
		if err != nil {
			return err
		}
		if _, err := io.ReadFull(r, scratch[:1]); err != nil {
			return err
		}
		if code := EvalCode(scratch[0]); code != EvalNone {
			payload, err := btcwire.ReadVarBytes(r, 0, maxScriptSize,
				"condition payload")
			if err != nil {
				return err
			}
			to.Condition = &Condition{Code: code, Payload: payload}
		}
		msg.TxOut = append(msg.TxOut, to)
	}

	if msg.LockTime, err = getUint32(); err != nil {
		return err
	}
	if msg.Overwintered {
		if msg.ExpiryHeight, err = getUint32(); err != nil {
			return err
		}
	}

	if msg.hasSapling() {
		if msg.ValueBalance, err = getInt64(); err != nil {
			return err
		}
		count, err = getCount("sapling spends")
		if err != nil {
			return err
		}
		for i := uint64(0); i < count; i++ {
			sd := new(SpendDescription)
			for _, h := range []*chainhash.Hash{&sd.CV, &sd.Anchor,
				&sd.Nullifier, &sd.RK} {

				if err := getHash(h); err != nil {
					return err
				}
			}
			msg.SpendDescs = append(msg.SpendDescs, sd)
		}
		count, err = getCount("sapling outputs")
		if err != nil {
			return err
		}
		for i := uint64(0); i < count; i++ {
			od := new(OutputDescription)
			if err := getHash(&od.CV); err != nil {
				return err
			}
			if err := getHash(&od.Cmu); err != nil {
				return err
			}
			msg.OutputDescs = append(msg.OutputDescs, od)
		}
	}

	if msg.Version >= JoinSplitTxVersion {
		count, err = getCount("join-splits")
		if err != nil {
			return err
		}
		for i := uint64(0); i < count; i++ {
			js := new(JoinSplit)
			if js.VPubOld, err = getInt64(); err != nil {
				return err
			}
			if js.VPubNew, err = getInt64(); err != nil {
				return err
			}
			hashes := []*chainhash.Hash{&js.Anchor, &js.Nullifiers[0],
				&js.Nullifiers[1], &js.Commitments[0], &js.Commitments[1]}
			for _, h := range hashes {
				if err := getHash(h); err != nil {
					return err
				}
			}
			msg.JoinSplits = append(msg.JoinSplits, js)
		}
	}

	return nil
}

// Bytes returns the serialized form of the transaction in bytes.
func (msg *MsgTx) Bytes() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, msg.SerializeSize()))
	if err := msg.Serialize(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromBytes deserializes a transaction byte slice.
func (msg *MsgTx) FromBytes(b []byte) error {
	return msg.Deserialize(bytes.NewReader(b))
}

// SerializeSize returns the number of bytes it would take to serialize the
// the transaction.
func (msg *MsgTx) SerializeSize() int {
	// Version header 4 bytes + LockTime 4 bytes + serialized varint size
	// for the number of transaction inputs and outputs.
	n := 8 + btcwire.VarIntSerializeSize(uint64(len(msg.TxIn))) +
		btcwire.VarIntSerializeSize(uint64(len(msg.TxOut)))
	if msg.Overwintered {
		// Version group id and expiry height.
		n += 8
	}

	for _, ti := range msg.TxIn {
		// Outpoint 36 bytes + sequence 4 bytes + signature script.
		n += 40 + btcwire.VarIntSerializeSize(uint64(len(ti.SignatureScript))) +
			len(ti.SignatureScript)
	}
	for _, to := range msg.TxOut {
		n += to.SerializeSize()
	}

	if msg.hasSapling() {
		n += 8 + btcwire.VarIntSerializeSize(uint64(len(msg.SpendDescs))) +
			len(msg.SpendDescs)*4*chainhash.HashSize +
			btcwire.VarIntSerializeSize(uint64(len(msg.OutputDescs))) +
			len(msg.OutputDescs)*2*chainhash.HashSize
	}
	if msg.Version >= JoinSplitTxVersion {
		n += btcwire.VarIntSerializeSize(uint64(len(msg.JoinSplits))) +
			len(msg.JoinSplits)*(16+5*chainhash.HashSize)
	}

	return n
}

// zeroHash is the zero value for a chainhash.Hash and is defined as a package
// level variable to avoid the need to create a new instance every time a check
// is needed.
var zeroHash chainhash.Hash
