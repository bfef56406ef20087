// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	btcchaincfg "github.com/btcsuite/btcd/chaincfg"
	"github.com/nocturnalnematode/VerusCoin-sub001/wire"
)

// mainCurrencyID is the identifier of the main network currency.
var mainCurrencyID = wire.NameID("VRSC", wire.ID160{})

// MainNetParams defines the network parameters for the main network.
var MainNetParams = Params{
	Name:                   "mainnet",
	AddressParams:          &btcchaincfg.MainNetParams,
	CoinbaseMaturity:       100,
	CoinbaseTimeLockValue:  0,
	CoinbaseTimeLockBlocks: 0,
	Upgrades: [numUpgrades]NetworkUpgrade{
		UpgradeOverwinter: {
			Name:             "overwinter",
			BranchID:         0x5ba81b19,
			ActivationHeight: 227520,
		},
		UpgradeSapling: {
			Name:             "sapling",
			BranchID:         0x76b809bb,
			ActivationHeight: 227520,
		},
	},
	DefaultExpiryDelta: 20,
	NativeCurrencyID:   mainCurrencyID,
	PrimaryCurrencyID:  mainCurrencyID,
}
