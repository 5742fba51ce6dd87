// Copyright (c) 2014 Conformal Systems LLC.
// Copyright (c) 2015-2020 The Decred developers
// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stake

import (
	"errors"
	"testing"
)

// TestErrorKindStringer tests the stringized output for the ErrorKind type.
func TestErrorKindStringer(t *testing.T) {
	tests := []struct {
		in   ErrorKind
		want string
	}{
		{ErrNoModifierGeneration, "ErrNoModifierGeneration"},
		{ErrModifierSelection, "ErrModifierSelection"},
		{ErrModifierCheckpoint, "ErrModifierCheckpoint"},
		{ErrKernelModifier, "ErrKernelModifier"},
		{ErrBestBlockTooOld, "ErrBestBlockTooOld"},
		{ErrStakeTimeViolation, "ErrStakeTimeViolation"},
		{ErrStakeMinAge, "ErrStakeMinAge"},
		{ErrStakeMinDepth, "ErrStakeMinDepth"},
		{ErrKernelHashHigh, "ErrKernelHashHigh"},
		{ErrNotCoinStake, "ErrNotCoinStake"},
		{ErrWrongSpendType, "ErrWrongSpendType"},
		{ErrMissingStakeTx, "ErrMissingStakeTx"},
		{ErrBadStakeScript, "ErrBadStakeScript"},
		{ErrMissingStakeOrigin, "ErrMissingStakeOrigin"},
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

// TestRuleError tests the error output for the RuleError type.
func TestRuleError(t *testing.T) {
	tests := []struct {
		in   RuleError
		want string
	}{
		{RuleError{Description: "kernel hash above target"},
			"kernel hash above target",
		},
		{RuleError{Description: "human-readable error"},
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

// TestErrorKindIsAs ensures rule errors can be identified by their kind.
func TestErrorKindIsAs(t *testing.T) {
	err := error(stakeRuleError(ErrStakeMinDepth, "too shallow"))
	if !errors.Is(err, ErrStakeMinDepth) {
		t.Fatalf("error %v is not %v", err, ErrStakeMinDepth)
	}
	if errors.Is(err, ErrStakeMinAge) {
		t.Fatalf("error %v unexpectedly is %v", err, ErrStakeMinAge)
	}
	var kind ErrorKind
	if !errors.As(err, &kind) || kind != ErrStakeMinDepth {
		t.Fatalf("unable to extract kind from %v", err)
	}
}
