// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"errors"

	btcchaincfg "github.com/btcsuite/btcd/chaincfg"
	"github.com/nocturnalnematode/VerusCoin-sub001/wire"
)

// UpgradeIndex identifies a network upgrade.
type UpgradeIndex int

// These constants identify the network upgrades known to the node in
// activation order.
const (
	UpgradeOverwinter UpgradeIndex = iota
	UpgradeSapling

	// numUpgrades is the number of known upgrades.  It must remain the
	// last constant.
	numUpgrades
)

// SproutBranchID is the consensus branch id in effect before any network
// upgrade activates.
const SproutBranchID = 0

// NoActivationHeight marks an upgrade that never activates on a network.
const NoActivationHeight int32 = -1

// NetworkUpgrade describes a consensus rule change and the height at which
// it activates.
type NetworkUpgrade struct {
	// Name is a human readable identifier for the upgrade.
	Name string

	// BranchID commits transactions to the rule set.
	BranchID uint32

	// ActivationHeight is the first height the upgrade is active at or
	// NoActivationHeight.
	ActivationHeight int32
}

// Params defines a network by its parameters.  These parameters may be used
// by applications to differentiate networks as well as addresses and keys
// for one network from those intended for use on another network.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// AddressParams are the address encoding parameters used when
	// extracting addresses from public key scripts.
	AddressParams *btcchaincfg.Params

	// CoinbaseMaturity is the number of blocks required before newly mined
	// coins (coinbase transactions) can be spent.
	CoinbaseMaturity int32

	// CoinbaseTimeLockValue is the coinbase output value at and above which
	// the chain applies an additional time lock to coinbase outputs.  Zero
	// disables the rule.
	CoinbaseTimeLockValue int64

	// CoinbaseTimeLockBlocks is the number of blocks a time locked coinbase
	// output stays unspendable.
	CoinbaseTimeLockBlocks int32

	// Upgrades are the network upgrades indexed by UpgradeIndex.
	Upgrades [numUpgrades]NetworkUpgrade

	// DefaultExpiryDelta is the number of blocks after which transactions
	// created by the node expire.
	DefaultExpiryDelta uint32

	// NativeCurrencyID is the identifier of the currency native to the
	// chain the node runs.
	NativeCurrencyID wire.ID160

	// PrimaryCurrencyID is the identifier of the primary currency of the
	// network of chains.  It differs from NativeCurrencyID on chains
	// launched from the primary chain.
	PrimaryCurrencyID wire.ID160
}

// IsUpgradeActive returns whether the upgrade is active at height.
func (p *Params) IsUpgradeActive(idx UpgradeIndex, height int32) bool {
	activation := p.Upgrades[idx].ActivationHeight
	return activation != NoActivationHeight && height >= activation
}

// BranchID returns the consensus branch id in effect at height.
func (p *Params) BranchID(height int32) uint32 {
	for idx := numUpgrades - 1; idx >= 0; idx-- {
		if p.IsUpgradeActive(idx, height) {
			return p.Upgrades[idx].BranchID
		}
	}
	return SproutBranchID
}

// IsPrimaryChain returns whether the node runs the primary chain of the
// network, in which case reserve fees never need conversion.
func (p *Params) IsPrimaryChain() bool {
	return p.NativeCurrencyID == p.PrimaryCurrencyID
}

// IsCoinbaseSpendable returns whether a coinbase output of value mined at
// coinHeight may be spent by a transaction in a block at spendHeight.
func (p *Params) IsCoinbaseSpendable(coinHeight, spendHeight int32, value int64) bool {
	if spendHeight-coinHeight < p.CoinbaseMaturity {
		return false
	}
	if p.CoinbaseTimeLockValue > 0 && value >= p.CoinbaseTimeLockValue &&
		spendHeight-coinHeight < p.CoinbaseTimeLockBlocks {

		return false
	}
	return true
}

var (
	// ErrDuplicateNet describes an error where the parameters for a
	// network could not be set due to the network already being a standard
	// network or previously-registered into this package.
	ErrDuplicateNet = errors.New("duplicate network")

	// ErrUnknownNet describes an error where the requested network is not
	// registered.
	ErrUnknownNet = errors.New("unknown network")
)

var registeredNets = make(map[string]*Params)

// Register registers the network parameters for a network.  This may error
// with ErrDuplicateNet if the network is already registered (either due to a
// previous Register call, or the network being one of the default networks).
func Register(params *Params) error {
	if _, ok := registeredNets[params.Name]; ok {
		return ErrDuplicateNet
	}
	registeredNets[params.Name] = params
	return nil
}

// ParamsByName returns the registered network parameters with the given
// name.
func ParamsByName(name string) (*Params, error) {
	params, ok := registeredNets[name]
	if !ok {
		return nil, ErrUnknownNet
	}
	return params, nil
}

// mustRegister performs the same function as Register except it panics if
// there is an error.  This should only be called from package init
// functions.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("failed to register network: " + err.Error())
	}
}

func init() {
	mustRegister(&MainNetParams)
	mustRegister(&TestNetParams)
	mustRegister(&RegressionNetParams)
}
