// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestBranchID ensures the branch id follows upgrade activation.
func TestBranchID(t *testing.T) {
	t.Parallel()

	p := &RegressionNetParams
	require.Equal(t, uint32(SproutBranchID), p.BranchID(9))
	require.Equal(t, p.Upgrades[UpgradeOverwinter].BranchID, p.BranchID(10))
	require.Equal(t, p.Upgrades[UpgradeSapling].BranchID, p.BranchID(20))
	require.True(t, p.IsUpgradeActive(UpgradeSapling, 25))
	require.False(t, p.IsUpgradeActive(UpgradeSapling, 19))

	never := *p
	never.Upgrades[UpgradeSapling].ActivationHeight = NoActivationHeight
	require.Equal(t, p.Upgrades[UpgradeOverwinter].BranchID, never.BranchID(1e6))
}

// TestCoinbaseSpendable ensures coinbase maturity and the additional time
// lock are both applied.
func TestCoinbaseSpendable(t *testing.T) {
	t.Parallel()

	p := &RegressionNetParams
	require.False(t, p.IsCoinbaseSpendable(10, 109, 1))
	require.True(t, p.IsCoinbaseSpendable(10, 110, 1))

	big := p.CoinbaseTimeLockValue
	require.False(t, p.IsCoinbaseSpendable(10, 110, big))
	require.True(t, p.IsCoinbaseSpendable(10, 210, big))
}

// TestRegister ensures duplicate registration fails and lookups work.
func TestRegister(t *testing.T) {
	require.ErrorIs(t, Register(&MainNetParams), ErrDuplicateNet)
	p, err := ParamsByName("regtest")
	require.NoError(t, err)
	require.False(t, p.IsPrimaryChain())
	require.True(t, MainNetParams.IsPrimaryChain())
	_, err = ParamsByName("nope")
	require.ErrorIs(t, err, ErrUnknownNet)
}
