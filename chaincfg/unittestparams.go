// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

// ModifiableParams wraps the unit test network parameters and exposes setters
// for the handful of fields tests are allowed to tweak.  Only the unit test
// network is ever handed out in this form.
type ModifiableParams struct {
	*Params
}

// UnitTestParams returns the network parameters for the unit test network.  It
// shares the main network consensus values and checkpoints.
func UnitTestParams() *ModifiableParams {
	params := MainNetParams()
	params.Name = "unittest"
	params.ID = NetUnitTest
	params.DefaultPort = "51478"
	params.DNSSeeds = nil
	params.FixedSeeds = nil

	params.MiningRequiresPeers = false
	params.DefaultConsistencyChecks = true
	params.AllowMinDifficultyBlocks = false
	params.MineBlocksOnDemand = true

	return &ModifiableParams{Params: params}
}

// SetEnforceBlockUpgradeMajority sets the number of blocks with a newer version
// required to enforce the new rules.
func (p *ModifiableParams) SetEnforceBlockUpgradeMajority(n int32) {
	p.EnforceBlockUpgradeMajority = n
}

// SetRejectBlockOutdatedMajority sets the number of newer blocks required to
// reject outdated block versions.
func (p *ModifiableParams) SetRejectBlockOutdatedMajority(n int32) {
	p.RejectBlockOutdatedMajority = n
}

// SetToCheckBlockUpgradeMajority sets the window used by the upgrade majority
// checks.
func (p *ModifiableParams) SetToCheckBlockUpgradeMajority(n int32) {
	p.ToCheckBlockUpgradeMajority = n
}

// SetDefaultConsistencyChecks toggles the default consistency checks.
func (p *ModifiableParams) SetDefaultConsistencyChecks(v bool) {
	p.DefaultConsistencyChecks = v
}

// SetAllowMinDifficultyBlocks toggles minimum difficulty blocks.
func (p *ModifiableParams) SetAllowMinDifficultyBlocks(v bool) {
	p.AllowMinDifficultyBlocks = v
}

// SetSkipProofOfWorkCheck toggles the proof of work check.
func (p *ModifiableParams) SetSkipProofOfWorkCheck(v bool) {
	p.SkipProofOfWorkCheck = v
}

// SetRewardSchedule sets the block reward schedule.
func (p *ModifiableParams) SetRewardSchedule(r RewardSchedule) {
	p.Rewards = r
}
