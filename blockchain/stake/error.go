// Copyright (c) 2014 Conformal Systems LLC.
// Copyright (c) 2015-2020 The Decred developers
// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stake

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific RuleError.
const (
	// ErrNoModifierGeneration indicates no block at or before the given
	// block generated a stake modifier.
	ErrNoModifierGeneration = ErrorKind("ErrNoModifierGeneration")

	// ErrModifierSelection indicates a stake modifier selection round found
	// no candidate block.
	ErrModifierSelection = ErrorKind("ErrModifierSelection")

	// ErrModifierCheckpoint indicates the stake modifier checksum of a block
	// does not match the hard checkpoint for its height.
	ErrModifierCheckpoint = ErrorKind("ErrModifierCheckpoint")

	// ErrKernelModifier indicates the stake modifier for a kernel could not
	// be located in the best chain.
	ErrKernelModifier = ErrorKind("ErrKernelModifier")

	// ErrBestBlockTooOld indicates the best chain tip is too old for the
	// kernel timestamp to select a stake modifier backwards from it.
	ErrBestBlockTooOld = ErrorKind("ErrBestBlockTooOld")

	// ErrStakeTimeViolation indicates a kernel timestamp earlier than the
	// block the staked coin originates from.
	ErrStakeTimeViolation = ErrorKind("ErrStakeTimeViolation")

	// ErrStakeMinAge indicates the staked coin is younger than the minimum
	// stake age.
	ErrStakeMinAge = ErrorKind("ErrStakeMinAge")

	// ErrStakeMinDepth indicates the staked coin is buried by fewer blocks
	// than the minimum stake depth.
	ErrStakeMinDepth = ErrorKind("ErrStakeMinDepth")

	// ErrKernelHashHigh indicates the kernel hash does not meet the target
	// weighted by the staked value.
	ErrKernelHashHigh = ErrorKind("ErrKernelHashHigh")

	// ErrNotCoinStake indicates the second transaction of a block claiming
	// proof of stake is not a coinstake.
	ErrNotCoinStake = ErrorKind("ErrNotCoinStake")

	// ErrWrongSpendType indicates a zerocoin stake whose spend type is not
	// the stake type.
	ErrWrongSpendType = ErrorKind("ErrWrongSpendType")

	// ErrMissingStakeTx indicates the transaction spent by the kernel input
	// could not be found.
	ErrMissingStakeTx = ErrorKind("ErrMissingStakeTx")

	// ErrBadStakeScript indicates the kernel input does not satisfy the
	// script of the output it spends.
	ErrBadStakeScript = ErrorKind("ErrBadStakeScript")

	// ErrMissingStakeOrigin indicates the block the staked coin originates
	// from is not part of the block index.
	ErrMissingStakeOrigin = ErrorKind("ErrMissingStakeOrigin")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// RuleError identifies a rule violation related to proof of stake.  It has
// full support for errors.Is and errors.As, so the caller can ascertain the
// specific reason for the error by checking the underlying error.
type RuleError struct {
	Description string
	Err         error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped rule error.
func (e RuleError) Unwrap() error {
	return e.Err
}

// stakeRuleError creates a RuleError given a set of arguments.
func stakeRuleError(kind ErrorKind, desc string) RuleError {
	return RuleError{Err: kind, Description: desc}
}
