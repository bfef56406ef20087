// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	btcchaincfg "github.com/btcsuite/btcd/chaincfg"
	"github.com/nocturnalnematode/VerusCoin-sub001/wire"
)

// testCurrencyID is the identifier of the test network currency.
var testCurrencyID = wire.NameID("VRSCTEST", wire.ID160{})

// TestNetParams defines the network parameters for the test network.
var TestNetParams = Params{
	Name:                   "testnet",
	AddressParams:          &btcchaincfg.TestNet3Params,
	CoinbaseMaturity:       100,
	CoinbaseTimeLockValue:  0,
	CoinbaseTimeLockBlocks: 0,
	Upgrades: [numUpgrades]NetworkUpgrade{
		UpgradeOverwinter: {
			Name:             "overwinter",
			BranchID:         0x5ba81b19,
			ActivationHeight: 1,
		},
		UpgradeSapling: {
			Name:             "sapling",
			BranchID:         0x76b809bb,
			ActivationHeight: 1,
		},
	},
	DefaultExpiryDelta: 20,
	NativeCurrencyID:   testCurrencyID,
	PrimaryCurrencyID:  testCurrencyID,
}

// RegressionNetParams defines the network parameters for the regression
// test network.  Its native currency is a currency launched from the test
// network so reserve fee conversion paths are exercised.
var RegressionNetParams = Params{
	Name:                   "regtest",
	AddressParams:          &btcchaincfg.RegressionNetParams,
	CoinbaseMaturity:       100,
	CoinbaseTimeLockValue:  10000 * 1e8,
	CoinbaseTimeLockBlocks: 200,
	Upgrades: [numUpgrades]NetworkUpgrade{
		UpgradeOverwinter: {
			Name:             "overwinter",
			BranchID:         0x5ba81b19,
			ActivationHeight: 10,
		},
		UpgradeSapling: {
			Name:             "sapling",
			BranchID:         0x76b809bb,
			ActivationHeight: 20,
		},
	},
	DefaultExpiryDelta: 20,
	NativeCurrencyID:   wire.NameID("regtest", testCurrencyID),
	PrimaryCurrencyID:  testCurrencyID,
}
