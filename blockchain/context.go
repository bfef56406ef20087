// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"math"
	"time"

	"github.com/nocturnalnematode/VerusCoin-sub001/chaincfg"
	"github.com/nocturnalnematode/VerusCoin-sub001/coinutil"
	"github.com/nocturnalnematode/VerusCoin-sub001/wire"
)

const (
	// LockTimeThreshold is the number below which a lock time is
	// interpreted to be a block number.  Since an average of one block
	// is generated per 10 minutes, this allows blocks for about 9,512
	// years.
	LockTimeThreshold = 5e8 // Tue Nov 5 00:53:20 1985 UTC

	// MaxExpiryHeight is the largest expiry height a transaction may
	// carry.
	MaxExpiryHeight = 499999999
)

// LockFlags modify how transaction finality is evaluated.
type LockFlags uint32

const (
	// LockTimeMedianTimePast evaluates time based lock times against the
	// median time past of the chain tip instead of the adjusted time.
	LockTimeMedianTimePast LockFlags = 1 << iota
)

// StandardLockTimeFlags are the flags used when evaluating the finality of
// transactions that are candidates for the next block.
const StandardLockTimeFlags = LockTimeMedianTimePast

// IsFinalizedTransaction determines whether or not a transaction is
// finalized.
func IsFinalizedTransaction(tx *coinutil.Tx, blockHeight int32, blockTime time.Time) bool {
	// Lock time of zero means the transaction is finalized.
	msgTx := tx.MsgTx()
	lockTime := msgTx.LockTime
	if lockTime == 0 {
		return true
	}

	// The lock time field of a transaction is either a block height at
	// which the transaction is finalized or a timestamp depending on if the
	// value is before the LockTimeThreshold.  When it is under the
	// threshold it is a block height.
	blockTimeOrHeight := int64(0)
	if lockTime < LockTimeThreshold {
		blockTimeOrHeight = int64(blockHeight)
	} else {
		blockTimeOrHeight = blockTime.Unix()
	}
	if int64(lockTime) < blockTimeOrHeight {
		return true
	}

	// At this point, the transaction's lock time hasn't occurred yet, but
	// the transaction might still be finalized if the sequence number
	// for all transaction inputs is maxed out.
	for _, txIn := range msgTx.TxIn {
		if txIn.Sequence != math.MaxUint32 {
			return false
		}
	}
	return true
}

// IsExpiredTx returns whether tx is expired at blockHeight.  Coinbase
// transactions and transactions without an expiry height never expire.
func IsExpiredTx(tx *coinutil.Tx, blockHeight int32) bool {
	expiry := tx.MsgTx().ExpiryHeight
	if expiry == 0 || tx.IsCoinBase() {
		return false
	}
	return int64(blockHeight) > int64(expiry)
}

// ContextChecker evaluates the rules of a transaction that depend on the
// height it would be mined at.
type ContextChecker struct {
	// Params are the parameters of the network.
	Params *chaincfg.Params

	// MedianTimePast returns the median time past of the chain tip.
	MedianTimePast func() time.Time

	// AdjustedTime returns the network adjusted current time.  When nil,
	// the local clock is used.
	AdjustedTime func() time.Time
}

// CheckFinal returns whether tx would be final in a block at height.
func (c *ContextChecker) CheckFinal(tx *coinutil.Tx, height int32, flags LockFlags) bool {
	var blockTime time.Time
	switch {
	case flags&LockTimeMedianTimePast != 0 && c.MedianTimePast != nil:
		blockTime = c.MedianTimePast()
	case c.AdjustedTime != nil:
		blockTime = c.AdjustedTime()
	default:
		blockTime = time.Now()
	}
	if !IsFinalizedTransaction(tx, height, blockTime) {
		log.Tracef("Transaction %v is not final at height %d, block "+
			"time %v", tx.Hash(), height, blockTime)
		return false
	}
	return true
}

// CheckContextual checks the rules of tx that depend on the network upgrades
// active at height and on its expiry.
func (c *ContextChecker) CheckContextual(tx *coinutil.Tx, height int32) error {
	msgTx := tx.MsgTx()
	overwinter := c.Params.IsUpgradeActive(chaincfg.UpgradeOverwinter, height)
	sapling := c.Params.IsUpgradeActive(chaincfg.UpgradeSapling, height)

	if !overwinter {
		if msgTx.Overwintered {
			str := fmt.Sprintf("transaction %v uses the overwintered "+
				"format before overwinter activation", tx.Hash())
			return ruleError(ErrUpgradeNotActive, str)
		}
		return nil
	}

	if !msgTx.Overwintered {
		str := fmt.Sprintf("transaction %v does not use the "+
			"overwintered format", tx.Hash())
		return ruleError(ErrTxNotOverwintered, str)
	}

	switch {
	case sapling:
		if msgTx.VersionGroupID != wire.SaplingVersionGroupID ||
			msgTx.Version < wire.SaplingTxVersion {

			str := fmt.Sprintf("transaction %v has version %d group "+
				"%#x, sapling requires version %d group %#x",
				tx.Hash(), msgTx.Version, msgTx.VersionGroupID,
				wire.SaplingTxVersion, wire.SaplingVersionGroupID)
			return ruleError(ErrBadTxVersion, str)
		}
	default:
		if msgTx.VersionGroupID != wire.OverwinterVersionGroupID ||
			msgTx.Version != wire.OverwinterTxVersion {

			str := fmt.Sprintf("transaction %v has version %d group "+
				"%#x, overwinter requires version %d group %#x",
				tx.Hash(), msgTx.Version, msgTx.VersionGroupID,
				wire.OverwinterTxVersion, wire.OverwinterVersionGroupID)
			return ruleError(ErrBadTxVersion, str)
		}
	}

	if msgTx.ExpiryHeight > MaxExpiryHeight {
		str := fmt.Sprintf("transaction %v expiry height %d exceeds "+
			"maximum %d", tx.Hash(), msgTx.ExpiryHeight, MaxExpiryHeight)
		return ruleError(ErrExpiryTooHigh, str)
	}
	if IsExpiredTx(tx, height) {
		str := fmt.Sprintf("transaction %v expired at height %d",
			tx.Hash(), msgTx.ExpiryHeight)
		return ruleError(ErrExpiredTx, str)
	}

	return nil
}
