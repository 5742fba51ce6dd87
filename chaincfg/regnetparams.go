// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"github.com/beetlecoin/beetled/wire"
)

// RegNetParams returns the network parameters for the regression test
// network.  This should not be confused with the public test network or the
// simulation test network.  The purpose of this network is primarily for unit
// tests and integration tests.
//
// The regression test network shares the test network consensus values and
// keys, overriding the fields below.
func RegNetParams() *Params {
	// regNetPowLimit is the highest proof of work value a block can have for
	// the regression test network.  It is the value (2^256 - 1) >> 1.
	regNetPowLimit := powLimitShifted(1)

	params := TestNetParams()
	params.Name = "regtest"
	params.ID = NetRegTest
	params.Net = wire.RegNet
	params.DefaultPort = "51436"
	params.DNSSeeds = nil
	params.FixedSeeds = nil

	params.GenesisBlock = newGenesisBlock(1515524400, 0x1e0ffff0, 732084)
	params.GenesisHash = *newHashFromStr("2949492cb176f49ef3bf86a3a86f0f7755f974e383b1b2c649452aaf48e8a295")
	params.PowLimit = regNetPowLimit
	params.PowLimitBits = powLimitBits(regNetPowLimit)
	params.SecondForkHeight = 300

	params.EnforceBlockUpgradeMajority = 750
	params.RejectBlockOutdatedMajority = 950
	params.ToCheckBlockUpgradeMajority = 1000

	// The regression test network validates its genesis stake modifier
	// checksum like the main network.  Its genesis hash carries a set
	// entropy bit, so the checksum differs from the main network one.
	params.SkipStakeModifierCheckpoints = false
	params.StakeModifierCheckpoints = map[int32]uint32{
		0: 0x0e00670b,
	}

	params.MiningRequiresPeers = false
	params.AllowMinDifficultyBlocks = true
	params.DefaultConsistencyChecks = true
	params.RequireStandard = false
	params.MineBlocksOnDemand = true

	params.Checkpoints = []Checkpoint{
		{0, newHashFromStr("0000000000000000000000000000000000000000000000000000000000000001")},
	}
	params.CheckpointData = CheckpointData{
		LastCheckpointTime:       1454124731,
		TransactionsAtCheckpoint: 0,
		TransactionsPerDay:       100,
	}

	return params
}
