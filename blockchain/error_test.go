// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"
)

// TestErrorCodeStringer tests the stringized output for the ErrorCode type.
func TestErrorCodeStringer(t *testing.T) {
	tests := []struct {
		in   ErrorCode
		want string
	}{
		{ErrUnfinalizedTx, "ErrUnfinalizedTx"},
		{ErrExpiredTx, "ErrExpiredTx"},
		{ErrUpgradeNotActive, "ErrUpgradeNotActive"},
		{ErrTxNotOverwintered, "ErrTxNotOverwintered"},
		{ErrBadTxVersion, "ErrBadTxVersion"},
		{ErrExpiryTooHigh, "ErrExpiryTooHigh"},
		{0xffff, "Unknown ErrorCode (65535)"},
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		result := test.in.String()
		if result != test.want {
			t.Errorf("String #%d\n got: %s want: %s", i, result,
				test.want)
			continue
		}
	}
}

// TestRuleError tests the error output for the RuleError type.
func TestRuleError(t *testing.T) {
	tests := []struct {
		in   RuleError
		want string
	}{
		{
			RuleError{Description: "duplicate block"},
			"duplicate block",
		},
		{
			RuleError{Description: "human-readable error"},
			"human-readable error",
		},
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		result := test.in.Error()
		if result != test.want {
			t.Errorf("Error #%d\n got: %s want: %s", i, result,
				test.want)
			continue
		}
	}
}

// TestAssertError tests the error output for the AssertError type.
func TestAssertError(t *testing.T) {
	err := AssertError("view missing input")
	if got := err.Error(); got != "assertion failed: view missing input" {
		t.Errorf("unexpected assertion string %q", got)
	}
}
