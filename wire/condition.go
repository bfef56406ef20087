// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	btcwire "github.com/btcsuite/btcd/wire"
	"golang.org/x/crypto/ripemd160"
)

// ShieldedType identifies one of the shielded pool generations supported by
// the chain.  Each generation has its own nullifier space and commitment
// tree.
type ShieldedType uint8

const (
	// Sprout is the first generation shielded pool (join-splits).
	Sprout ShieldedType = iota

	// Sapling is the second generation shielded pool.
	Sapling

	// numShieldedTypes is the number of supported generations.  It must
	// remain the last constant.
	numShieldedTypes
)

// ShieldedTypes lists every supported shielded pool generation.
var ShieldedTypes = []ShieldedType{Sprout, Sapling}

// IsValid returns whether the pool generation is one the chain supports.
func (t ShieldedType) IsValid() bool {
	return t < numShieldedTypes
}

// String returns the ShieldedType in human-readable form.
func (t ShieldedType) String() string {
	switch t {
	case Sprout:
		return "sprout"
	case Sapling:
		return "sapling"
	}
	return fmt.Sprintf("Unknown ShieldedType (%d)", uint8(t))
}

// EvalCode identifies the kind of smart-transaction condition an output
// carries.
type EvalCode uint8

// These constants define the condition kinds the node understands.
const (
	EvalNone EvalCode = iota
	EvalIdentityPrimary
	EvalIdentityReservation
	EvalIdentityAdvancedReservation
	EvalCurrencyDefinition
	EvalAcceptedNotarization
	EvalEarnedNotarization
	EvalFinalizeNotarization
	EvalNotaryEvidence
	EvalReserveTransfer
	EvalReserveOutput
	EvalCrossChainExport
	EvalCrossChainImport
	EvalFinalizeExport
)

var evalCodeStrings = map[EvalCode]string{
	EvalNone:                        "EvalNone",
	EvalIdentityPrimary:             "EvalIdentityPrimary",
	EvalIdentityReservation:         "EvalIdentityReservation",
	EvalIdentityAdvancedReservation: "EvalIdentityAdvancedReservation",
	EvalCurrencyDefinition:          "EvalCurrencyDefinition",
	EvalAcceptedNotarization:        "EvalAcceptedNotarization",
	EvalEarnedNotarization:          "EvalEarnedNotarization",
	EvalFinalizeNotarization:        "EvalFinalizeNotarization",
	EvalNotaryEvidence:              "EvalNotaryEvidence",
	EvalReserveTransfer:             "EvalReserveTransfer",
	EvalReserveOutput:               "EvalReserveOutput",
	EvalCrossChainExport:            "EvalCrossChainExport",
	EvalCrossChainImport:            "EvalCrossChainImport",
	EvalFinalizeExport:              "EvalFinalizeExport",
}

// String returns the EvalCode in human-readable form.
func (e EvalCode) String() string {
	if s, ok := evalCodeStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("Unknown EvalCode (%d)", uint8(e))
}

// Condition is the typed payload of a smart-transaction output.
type Condition struct {
	Code    EvalCode
	Payload []byte
}

// ErrWrongCondition is returned when a condition payload is decoded as a
// kind it does not carry.
var ErrWrongCondition = errors.New("condition does not carry the " +
	"requested payload kind")

// ID160 is a 160-bit identifier for identities and currencies.
type ID160 [ripemd160.Size]byte

// String returns the identifier as a hex string.
func (id ID160) String() string {
	return hex.EncodeToString(id[:])
}

// IsNull returns whether the identifier is all zeros.
func (id ID160) IsNull() bool {
	return id == ID160{}
}

func hash160(b []byte) ID160 {
	sha := sha256.Sum256(b)
	h := ripemd160.New()
	h.Write(sha[:])
	var id ID160
	copy(id[:], h.Sum(nil))
	return id
}

// NameID derives the identifier of a name registered under parent.  Names
// are case insensitive and surrounding whitespace is ignored, so two claims
// that differ only in that respect collide.
func NameID(name string, parent ID160) ID160 {
	clean := strings.ToLower(strings.TrimSpace(name))
	nameHash := chainhash.DoubleHashH([]byte(clean))
	if !parent.IsNull() {
		buf := make([]byte, 0, len(parent)+chainhash.HashSize)
		buf = append(buf, parent[:]...)
		buf = append(buf, nameHash[:]...)
		nameHash = chainhash.DoubleHashH(buf)
	}
	return hash160(nameHash[:])
}

// ConditionID derives the index key under which outputs of the given
// condition kind about objectID are recorded in the address index.
func ConditionID(objectID ID160, code EvalCode) ID160 {
	var buf [ripemd160.Size + 4]byte
	copy(buf[:], objectID[:])
	binary.LittleEndian.PutUint32(buf[ripemd160.Size:], uint32(code))
	return hash160(buf[:])
}

// ProofRoot commits to the state of a chain at a height.
type ProofRoot struct {
	SystemID  ID160
	Height    uint32
	StateRoot chainhash.Hash
	BlockHash chainhash.Hash
}

// IdentityReservation reserves a name.  AdvancedReservation uses the same
// layout with a different condition code.
type IdentityReservation struct {
	Name     string
	Parent   ID160
	Salt     chainhash.Hash
	Referral ID160
}

// ID returns the identity identifier the reservation claims.
func (r *IdentityReservation) ID() ID160 {
	return NameID(r.Name, r.Parent)
}

// CurrencyDefinition defines a new currency.
type CurrencyDefinition struct {
	Name    string
	Parent  ID160
	Options uint32
}

// ID returns the currency identifier the definition claims.
func (c *CurrencyDefinition) ID() ID160 {
	return NameID(c.Name, c.Parent)
}

// Notarization is a cross-chain notarization committing to a proof root of
// the notarized system.
type Notarization struct {
	CurrencyID         ID160
	NotarizationHeight uint32
	ProofRoot          ProofRoot
}

// CrossChainTransfer describes an export or import of a batch of transfers
// sourced from a height window of the source system.
type CrossChainTransfer struct {
	SourceSystemID    ID160
	SourceHeightStart uint32
	SourceHeightEnd   uint32
}

func writeString(w io.Writer, s string) error {
	return btcwire.WriteVarString(w, 0, s)
}

func readString(r io.Reader) (string, error) {
	return btcwire.ReadVarString(r, 0)
}

func writeElements(w io.Writer, elements ...interface{}) error {
	for _, e := range elements {
		if err := binary.Write(w, binary.LittleEndian, e); err != nil {
			return err
		}
	}
	return nil
}

func readElements(r io.Reader, elements ...interface{}) error {
	for _, e := range elements {
		if err := binary.Read(r, binary.LittleEndian, e); err != nil {
			return err
		}
	}
	return nil
}

// NewReservationCondition returns a condition carrying the reservation.
// Passing advanced selects the advanced reservation kind.
func NewReservationCondition(r *IdentityReservation, advanced bool) *Condition {
	var buf bytes.Buffer
	_ = writeString(&buf, r.Name)
	_ = writeElements(&buf, r.Parent, r.Salt, r.Referral)
	code := EvalIdentityReservation
	if advanced {
		code = EvalIdentityAdvancedReservation
	}
	return &Condition{Code: code, Payload: buf.Bytes()}
}

// Reservation decodes the reservation carried by the condition.
func (c *Condition) Reservation() (*IdentityReservation, error) {
	if c.Code != EvalIdentityReservation &&
		c.Code != EvalIdentityAdvancedReservation {

		return nil, ErrWrongCondition
	}
	r := bytes.NewReader(c.Payload)
	name, err := readString(r)
	if err != nil {
		return nil, err
	}
	res := &IdentityReservation{Name: name}
	err = readElements(r, &res.Parent, &res.Salt, &res.Referral)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// NewCurrencyDefinitionCondition returns a condition carrying the currency
// definition.
func NewCurrencyDefinitionCondition(d *CurrencyDefinition) *Condition {
	var buf bytes.Buffer
	_ = writeString(&buf, d.Name)
	_ = writeElements(&buf, d.Parent, d.Options)
	return &Condition{Code: EvalCurrencyDefinition, Payload: buf.Bytes()}
}

// CurrencyDefinition decodes the currency definition carried by the
// condition.
func (c *Condition) CurrencyDefinition() (*CurrencyDefinition, error) {
	if c.Code != EvalCurrencyDefinition {
		return nil, ErrWrongCondition
	}
	r := bytes.NewReader(c.Payload)
	name, err := readString(r)
	if err != nil {
		return nil, err
	}
	def := &CurrencyDefinition{Name: name}
	if err := readElements(r, &def.Parent, &def.Options); err != nil {
		return nil, err
	}
	return def, nil
}

// NewNotarizationCondition returns a condition carrying the notarization.
// Passing earned selects the earned notarization kind.
func NewNotarizationCondition(n *Notarization, earned bool) *Condition {
	var buf bytes.Buffer
	_ = writeElements(&buf, n.CurrencyID, n.NotarizationHeight,
		n.ProofRoot.SystemID, n.ProofRoot.Height, n.ProofRoot.StateRoot,
		n.ProofRoot.BlockHash)
	code := EvalAcceptedNotarization
	if earned {
		code = EvalEarnedNotarization
	}
	return &Condition{Code: code, Payload: buf.Bytes()}
}

// Notarization decodes the notarization carried by the condition.
func (c *Condition) Notarization() (*Notarization, error) {
	if c.Code != EvalAcceptedNotarization &&
		c.Code != EvalEarnedNotarization {

		return nil, ErrWrongCondition
	}
	var n Notarization
	err := readElements(bytes.NewReader(c.Payload), &n.CurrencyID,
		&n.NotarizationHeight, &n.ProofRoot.SystemID, &n.ProofRoot.Height,
		&n.ProofRoot.StateRoot, &n.ProofRoot.BlockHash)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// NewCrossChainCondition returns a condition carrying an export or import
// description.  Passing isImport selects the import kind.
func NewCrossChainCondition(t *CrossChainTransfer, isImport bool) *Condition {
	var buf bytes.Buffer
	_ = writeElements(&buf, t.SourceSystemID, t.SourceHeightStart,
		t.SourceHeightEnd)
	code := EvalCrossChainExport
	if isImport {
		code = EvalCrossChainImport
	}
	return &Condition{Code: code, Payload: buf.Bytes()}
}

// CrossChainTransfer decodes the export or import carried by the
// condition.
func (c *Condition) CrossChainTransfer() (*CrossChainTransfer, error) {
	if c.Code != EvalCrossChainExport && c.Code != EvalCrossChainImport {
		return nil, ErrWrongCondition
	}
	var t CrossChainTransfer
	err := readElements(bytes.NewReader(c.Payload), &t.SourceSystemID,
		&t.SourceHeightStart, &t.SourceHeightEnd)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
