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

// mainSporkKey signs sporks and alerts on the main network.
const mainSporkKey = "04DE3E3D0380A7359563B990F7AF701320F44CEB0FBC325CD7EB0" +
	"6A6C228FE57D8448AD2365E7F36B31591B9B3BFCE6A5FE9A01773215604CB9DD512470AF" +
	"BB9BB"

// mainNetCheckpoints returns the main network checkpoint table.
func mainNetCheckpoints() []Checkpoint {
	return []Checkpoint{
		{0, newHashFromStr("00000c9d6ee5917dcd9e9d291f4b2283fce7d6b8525a653267bae3a1c5fbdd00")},
		{196750, newHashFromStr("92978c520c2a3f78f01ad1e8a2b3da382e35f51d5eb68e654b3626c9257f4de9")},
		{320320, newHashFromStr("3ce055b2728aec7bd788c61e43c6320ec3b361b13e6d44c4e2bc619c558c597a")},
		{339800, newHashFromStr("4105f23e74afabea348838ac8740a500e5754703321ddd19de9036c3f32d3ce2")},
		{400000, newHashFromStr("95312e692c2b8ee9148dd55cd34d4f1215c75be90f7d6764dcfa063d180cfa8b")},
		{500000, newHashFromStr("8f8ae0a206f418a7a6a8f6f67219cd3761cf2616ddeb4780fcb8a6242bf95996")},
		{536400, newHashFromStr("1d4bd5d4b490368911447cc4fc3d211dbc76261fb9b8323bcd5c0e319b211caf")},
		{540000, newHashFromStr("f045cbd1630fe4efe33153d9b3d97d65e2119efbb527a49075b2270e60270d64")},
		{545000, newHashFromStr("b7d93ca0614a7ce87e1436e5e82888101665c6b17fa86972d5db27118caa7a92")},
		{549000, newHashFromStr("00f23d3de5f23558f8f205f7c353d63f027e21543d7dce6a163bb6a21103e793")},
		{549400, newHashFromStr("1fcc94a88278aa599c7a56efe7fc13452fb1e17c73e1f2a04bf617c5770e045a")},
		{550000, newHashFromStr("fdc92657576685dc03016cc371c2099f5c791efcf883a39bf5fe5e38009fb969")},
		{560000, newHashFromStr("957f3011e0536d4ba5948ab24c752d72bfba47f68a1f6a3820a749b22efdd48e")},
		{570000, newHashFromStr("5e763ba286664c8654bd8ee4cc0d4fdcd7e4af814fd1f46eae2d4785dc8c2e88")},
		{574440, newHashFromStr("45d8c0e097a4061bd22f8cf995e1e1f856ad15eae291e1b58f1c8f004ba146bf")},
		{600000, newHashFromStr("e508a4b604fcf6956b975706e7e0df6bd41c6d1cb6d9ecbeefa9cc2e9d63f74f")},
		{630000, newHashFromStr("7e4c50fc7730b0a04e01b3510a6c563b124668ba982f9bbecf29ed61ec461dd7")},
		{660000, newHashFromStr("b7f1f7f7bde4f7a37889cf1b713634af31020c884456af4afff6f479379865c3")},
		{690000, newHashFromStr("cea07312dd0194e10ae6594634989b4009d4815bf659bc607d6d3fe61d3310c6")},
		{697397, newHashFromStr("e61dbdf9749782569cb32f0c8eaf3589520979ac88d542b3b25c1acf19876853")},
		{700000, newHashFromStr("be8a8e5fd45a4b912d729231edfdc3e96108260d81757068b203e011d2955f89")},
		{710000, newHashFromStr("e3fdcf241fbadcfa6c736f30b07f252232b9e58d22d347935bf96c0880466e85")},
		{720000, newHashFromStr("ef6b2d980e4b8eae143fcf6d8b7e585c72589206f0652a8f058f4c2674edca7c")},
		{730000, newHashFromStr("450d82304ae06c5dfb8190528e16e27acff44a46543ff4412e9508575e6e3ca1")},
		{740000, newHashFromStr("415721140af9e3c4283def528c5ca129bd7e81938726fb3fec984d67974aea2e")},
		{750000, newHashFromStr("db40df6362d4cec724ea9e7274a6b7e6765cf4583f0e66e55fad48dcd0e4162d")},
		{760000, newHashFromStr("feae0e9bd6aed9ce5c79d45a518b0810f7a2d6f93316dc1c1b7364c1f15ae400")},
		{762312, newHashFromStr("aaa0e619d49f8cadbfa3c586c38146496295ec3d6920221c07ae346aa38fee99")},
		{772788, newHashFromStr("164329851730c601db13f43cc9f55e59de94997bc96533c055150dcd50b71522")},
	}
}

// mainNetCheckpointData summarizes the main network checkpoints.
var mainNetCheckpointData = CheckpointData{
	LastCheckpointTime:       1583366329,
	TransactionsAtCheckpoint: 1764532,
	TransactionsPerDay:       3000,
}

// MainNetParams returns the network parameters for the main BeetleCoin
// network.
func MainNetParams() *Params {
	// mainPowLimit is the highest proof of work value a block can have for
	// the main network.  It is the value (2^256 - 1) >> 20.
	mainPowLimit := powLimitShifted(20)

	const modifierUpgradeHeight = 345000
	const zerocoinStartHeight = 12000

	return &Params{
		Name:        "main",
		ID:          NetMain,
		Net:         wire.MainNet,
		DefaultPort: "3133",
		DNSSeeds: []DNSSeed{
			{"seedereu.beetlecoin.io", false},
			{"seederch.beetlecoin.io", false},
		},

		// Chain parameters
		GenesisBlock:   newGenesisBlock(1536981458, 0x1e0ffff0, 1510561),
		GenesisHash:    *newHashFromStr("00000c9d6ee5917dcd9e9d291f4b2283fce7d6b8525a653267bae3a1c5fbdd00"),
		PowLimit:       mainPowLimit,
		PowLimitBits:   powLimitBits(mainPowLimit),
		TargetSpacing:  64 * time.Second,
		TargetTimespan: 24 * time.Hour,
		MaxReorgDepth:  100,

		EnforceBlockUpgradeMajority: 7560,
		RejectBlockOutdatedMajority: 7560,
		ToCheckBlockUpgradeMajority: 10800,

		CoinbaseMaturity:     10,
		MasternodeCountDrift: 20,

		FirstSupplyReduction:  400000000 * AtomsPerCoin,
		SecondSupplyReduction: 450000000 * AtomsPerCoin,
		MaxMoneyOut:           500000000 * AtomsPerCoin,

		LastPoWHeight:              200,
		ModifierUpgradeHeight:      modifierUpgradeHeight,
		SecondForkHeight:           1200000,
		ZerocoinStartHeight:        zerocoinStartHeight,
		ZerocoinV2Height:           modifierUpgradeHeight + 20,
		MasternodeTiersStartHeight: modifierUpgradeHeight,

		TreasuryAddress:     "XaU63hVi3dPzCcgXMzbFWbqmSCvzcysgnC",
		TreasuryStartHeight: modifierUpgradeHeight,
		TreasuryBlockStep:   1440,

		ModifierInterval: 3 * time.Hour,
		StakeMinAge:      6 * 24 * time.Hour,
		StakeMinAgeOld:   time.Hour,
		StakeMinDepth:    600,

		StakeModifierCheckpoints: map[int32]uint32{
			0: 0xfd11f4e7,
		},

		BudgetCycleBlocks:       43200,
		BudgetFeeConfirmations:  6,
		StartMasternodePayments: 1403728576,

		SporkKey:           hexDecode(mainSporkKey),
		SporkKeyOld:        hexDecode(mainSporkKey),
		EnforceNewSporkKey: 1525158000,
		RejectOldSporkKey:  1527811200,
		AlertKey:           hexDecode(mainSporkKey),

		ObfuscationPoolDummyAddress: "XKCwyEbFpa9xTC1ontK3v2JzLns2Zc6UCJ",

		MiningRequiresPeers:      true,
		AllowMinDifficultyBlocks: false,
		DefaultConsistencyChecks: false,
		RequireStandard:          true,
		MineBlocksOnDemand:       false,
		SkipProofOfWorkCheck:     false,

		Checkpoints:    mainNetCheckpoints(),
		CheckpointData: mainNetCheckpointData,

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
		PubKeyHashAddrID: 75,  // starts with X
		ScriptHashAddrID: 85,  // starts with b
		PrivateKeyID:     127, // starts with t

		// BIP32 hierarchical deterministic extended key magics
		HDPrivateKeyID: [4]byte{0x02, 0x21, 0x31, 0x2b},
		HDPublicKeyID:  [4]byte{0x02, 0x2d, 0x25, 0x73},

		// BIP44 coin type used in the hierarchical deterministic path for
		// address generation.
		SLIP0044Coin: 0x80001dfc,

		zerocoin: new(zerocoinMemo),
	}
}
