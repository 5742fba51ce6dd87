// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"time"

	"github.com/beetlecoin/beetled/wire"
)

// testSporkKey signs sporks and alerts on the test and regression test
// networks.
const testSporkKey = "03c6a3b3881692505afeab25b0fa3e52e0f13109f51f94abd58fdd022d96a23f1f"

// ipv4Seed returns a fixed seed entry for the IPv4 address a.b.c.d.
func ipv4Seed(a, b, c, d byte, port uint16) SeedSpec6 {
	return SeedSpec6{
		Addr: [16]byte{10: 0xff, 11: 0xff, 12: a, 13: b, 14: c, 15: d},
		Port: port,
	}
}

// TestNetParams returns the network parameters for the test currency network.
// This network is sometimes simply called "testnet".
func TestNetParams() *Params {
	// testNetPowLimit is the highest proof of work value a block can have
	// for the test network.  It is the value (2^256 - 1) >> 12.
	testNetPowLimit := powLimitShifted(12)

	const zerocoinStartHeight = 50

	return &Params{
		Name:        "test",
		ID:          NetTestNet,
		Net:         wire.TestNet,
		DefaultPort: "51434",
		DNSSeeds:    nil,
		FixedSeeds: []SeedSpec6{
			ipv4Seed(45, 76, 61, 28, 51434),
			ipv4Seed(207, 148, 0, 129, 51434),
			ipv4Seed(209, 250, 240, 94, 51434),
			ipv4Seed(45, 77, 239, 30, 51434),
			ipv4Seed(45, 77, 176, 204, 51434),
			ipv4Seed(45, 76, 226, 204, 51434),
		},

		// Chain parameters
		GenesisBlock:   newGenesisBlock(1515616140, 0x1e0ffff0, 79855),
		GenesisHash:    *newHashFromStr("c26eb3f91ed71e314384e46bbb22dc58177a27cfea46def2d845dd5422cab4a1"),
		PowLimit:       testNetPowLimit,
		PowLimitBits:   powLimitBits(testNetPowLimit),
		TargetSpacing:  time.Minute,
		TargetTimespan: 10 * time.Minute,
		MaxReorgDepth:  100,

		EnforceBlockUpgradeMajority: 4032,
		RejectBlockOutdatedMajority: 4032,
		ToCheckBlockUpgradeMajority: 5760,

		CoinbaseMaturity:     15,
		MasternodeCountDrift: 4,

		FirstSupplyReduction:  400000000 * AtomsPerCoin,
		SecondSupplyReduction: 450000000 * AtomsPerCoin,
		MaxMoneyOut:           500000000 * AtomsPerCoin,

		LastPoWHeight:              200,
		ModifierUpgradeHeight:      -1,
		SecondForkHeight:           15000,
		ZerocoinStartHeight:        zerocoinStartHeight,
		ZerocoinV2Height:           zerocoinStartHeight + 20,
		MasternodeTiersStartHeight: -1,

		TreasuryAddress:     "yEz2MNkNQnBBNVzYiJJpNawMhH3yn7NY5p",
		TreasuryStartHeight: 10,
		TreasuryBlockStep:   20,

		ModifierInterval: 20 * time.Minute,
		StakeMinAge:      24 * time.Hour,
		StakeMinAgeOld:   time.Hour,
		StakeMinDepth:    100,

		SkipStakeModifierCheckpoints: true,

		BudgetCycleBlocks:       144,
		BudgetFeeConfirmations:  3,
		StartMasternodePayments: 1420837558,

		SporkKey:           hexDecode(testSporkKey),
		SporkKeyOld:        hexDecode(testSporkKey),
		EnforceNewSporkKey: 1521604800,
		RejectOldSporkKey:  1522454400,
		AlertKey:           hexDecode(testSporkKey),

		ObfuscationPoolDummyAddress: "yBToNUFGJUSHKxiZkUMZc3dYrYbvWXgLEp",

		MiningRequiresPeers:      true,
		AllowMinDifficultyBlocks: true,
		DefaultConsistencyChecks: false,
		RequireStandard:          true,
		MineBlocksOnDemand:       false,
		SkipProofOfWorkCheck:     false,

		Checkpoints: []Checkpoint{
			{0, newHashFromStr("0000000000000000000000000000000000000000000000000000000000000001")},
		},
		CheckpointData: CheckpointData{
			LastCheckpointTime:       1740710,
			TransactionsAtCheckpoint: 0,
			TransactionsPerDay:       250,
		},

		Zerocoin: ZerocoinConstants{
			Modulus:                 rsa2048Modulus,
			MaxSpendsPerTransaction: 7,
			MinMintFee:              1 * AtomsPerCent,
			MintRequiredConfs:       20,
			RequiredAccumulation:    1,
			DefaultSecurityLevel:    100,
			HeaderVersion:           3,
			RequiredStakeDepth:      200,
		},

		// Address encoding magics
		PubKeyHashAddrID: 139, // starts with x or y
		ScriptHashAddrID: 19,  // starts with 8 or 9
		PrivateKeyID:     239, // starts with 9 or c

		// BIP32 hierarchical deterministic extended key magics
		HDPrivateKeyID: [4]byte{0x3a, 0x80, 0x58, 0x37}, // starts with DRKP
		HDPublicKeyID:  [4]byte{0x3a, 0x80, 0x61, 0xa0}, // starts with DRKV

		// BIP44 coin type used in the hierarchical deterministic path for
		// address generation.
		SLIP0044Coin: 0x80000001,

		zerocoin: new(zerocoinMemo),
	}
}
