// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
)

// AssertError identifies an error that indicates an internal code consistency
// issue and should be treated as a critical and unrecoverable error.
type AssertError string

// Error returns the assertion error as a human-readable string and satisfies
// the error interface.
func (e AssertError) Error() string {
	return "assertion failed: " + string(e)
}

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific RuleError.
const (
	// ErrUnfinalizedTx indicates a transaction has not been finalized.
	ErrUnfinalizedTx ErrorCode = iota

	// ErrExpiredTx indicates a transaction is past its expiry height.
	ErrExpiredTx

	// ErrUpgradeNotActive indicates a transaction uses a format whose
	// network upgrade is not active at the height it is checked at.
	ErrUpgradeNotActive

	// ErrTxNotOverwintered indicates a transaction does not use the
	// overwintered format although overwinter is active.
	ErrTxNotOverwintered

	// ErrBadTxVersion indicates a transaction version or version group id
	// does not match the active rules.
	ErrBadTxVersion

	// ErrExpiryTooHigh indicates an expiry height beyond the allowed
	// maximum.
	ErrExpiryTooHigh
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrUnfinalizedTx:     "ErrUnfinalizedTx",
	ErrExpiredTx:         "ErrExpiredTx",
	ErrUpgradeNotActive:  "ErrUpgradeNotActive",
	ErrTxNotOverwintered: "ErrTxNotOverwintered",
	ErrBadTxVersion:      "ErrBadTxVersion",
	ErrExpiryTooHigh:     "ErrExpiryTooHigh",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// RuleError identifies a rule violation.  It is used to indicate that
// processing of a transaction failed due to one of the many validation
// rules.  The caller can use type assertions to determine if a failure was
// specifically due to a rule violation and access the ErrorCode field to
// ascertain the specific reason for the rule violation.
type RuleError struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	return e.Description
}

// ruleError creates an RuleError given a set of arguments.
func ruleError(c ErrorCode, desc string) RuleError {
	return RuleError{ErrorCode: c, Description: desc}
}
