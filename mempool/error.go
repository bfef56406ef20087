// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific RuleError.
const (
	// ErrDuplicate indicates a transaction is already in the pool.
	ErrDuplicate ErrorCode = iota

	// ErrUnknownShieldedPool indicates a shielded pool generation the
	// pool does not track.
	ErrUnknownShieldedPool
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrDuplicate:           "ErrDuplicate",
	ErrUnknownShieldedPool: "ErrUnknownShieldedPool",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// RuleError identifies a precondition violation by a caller of the pool.
// The caller can use errors.As to determine if a failure was specifically
// due to a rule violation and access the ErrorCode field to ascertain the
// specific reason.
type RuleError struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	return e.Description
}

// Is reports whether target is a RuleError with the same error code, which
// allows errors.Is(err, RuleError{ErrorCode: ErrDuplicate}).
func (e RuleError) Is(target error) bool {
	t, ok := target.(RuleError)
	return ok && t.ErrorCode == e.ErrorCode
}

// ruleError creates a RuleError given a set of arguments.
func ruleError(c ErrorCode, desc string) RuleError {
	return RuleError{ErrorCode: c, Description: desc}
}

// AssertError identifies an error that indicates an internal consistency
// issue of the pool and should be treated as a critical and unrecoverable
// error.
type AssertError string

// Error returns the assertion error as a human-readable string and satisfies
// the error interface.
func (e AssertError) Error() string {
	return "assertion failed: " + string(e)
}

// assertf returns an AssertError built from a format string.
func assertf(format string, args ...interface{}) AssertError {
	return AssertError(fmt.Sprintf(format, args...))
}
