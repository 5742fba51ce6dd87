// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"errors"
	"fmt"
)

// ErrNoRewardSchedule is returned when the parameters are used without a
// block reward schedule.
var ErrNoRewardSchedule = errors.New("no block reward schedule")

// RewardSchedule describes the block value of a network and how it is split
// between masternodes and the treasury.
//
// No network preset carries a schedule.  The amounts are consensus critical,
// so they are always provided by the operator, for instance through the
// reward options of beetled, and checked with Validate.
type RewardSchedule struct {
	// BlockOneSubsidy is the block value of height 1.
	BlockOneSubsidy int64

	// BaseSubsidy is the starting block value in atoms.  It is multiplied
	// by MulSubsidy and divided by DivSubsidy every ReductionInterval
	// blocks.  A zero ReductionInterval keeps the block value constant.
	BaseSubsidy       int64
	MulSubsidy        int64
	DivSubsidy        int64
	ReductionInterval int64

	// MasternodeProportions is indexed by masternode tier.  Both
	// proportions are percentages of the block value.
	MasternodeProportions [4]uint16
	TreasuryProportion    uint16
}

// IsSet returns whether a schedule was provided.
func (r *RewardSchedule) IsSet() bool {
	return r.BaseSubsidy != 0
}

// Validate returns an error when the schedule is unset or inconsistent.
func (r *RewardSchedule) Validate() error {
	if !r.IsSet() {
		return ErrNoRewardSchedule
	}
	switch {
	case r.BaseSubsidy < 0 || r.BlockOneSubsidy < 0:
		return fmt.Errorf("negative block value")
	case r.ReductionInterval < 0:
		return fmt.Errorf("negative reduction interval %d", r.ReductionInterval)
	case r.ReductionInterval > 0 && (r.DivSubsidy <= 0 || r.MulSubsidy < 0 ||
		r.MulSubsidy > r.DivSubsidy):
		return fmt.Errorf("reduction factor %d/%d does not reduce the "+
			"block value", r.MulSubsidy, r.DivSubsidy)
	}
	for level, proportion := range r.MasternodeProportions {
		if int(proportion)+int(r.TreasuryProportion) > 100 {
			return fmt.Errorf("tier %d and treasury proportions exceed the "+
				"block value", level)
		}
	}
	return nil
}
