// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"github.com/beetlecoin/beetled/blockchain/standalone"
	"github.com/beetlecoin/beetled/wire"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/decred/dcrd/math/uint256"
)

// AtomsPerCoin is the number of atomic units in one coin.
const AtomsPerCoin = 100000000

// AtomsPerCent is the number of atomic units in one hundredth of a coin.
const AtomsPerCent = AtomsPerCoin / 100

// NetworkTag identifies one of the standard parameter sets.
type NetworkTag uint8

// The standard networks.
const (
	NetMain NetworkTag = iota
	NetTestNet
	NetRegTest
	NetUnitTest
)

// nwStrings maps network tags to their human-readable names.
var nwStrings = map[NetworkTag]string{
	NetMain:     "main",
	NetTestNet:  "test",
	NetRegTest:  "regtest",
	NetUnitTest: "unittest",
}

// String returns the NetworkTag in human-readable form.
func (n NetworkTag) String() string {
	if s, ok := nwStrings[n]; ok {
		return s
	}
	return fmt.Sprintf("Unknown NetworkTag (%d)", uint8(n))
}

// Checkpoint identifies a known good point in the block chain.  Using
// checkpoints allows a few optimizations for old blocks during initial download
// and also prevents forks from old blocks.
type Checkpoint struct {
	Height int32
	Hash   *chainhash.Hash
}

// CheckpointData summarizes the checkpoint table of a network for progress
// estimation.
type CheckpointData struct {
	// LastCheckpointTime is the unix timestamp of the last checkpoint block.
	LastCheckpointTime int64

	// TransactionsAtCheckpoint is the total number of transactions between
	// genesis and the last checkpoint.
	TransactionsAtCheckpoint int64

	// TransactionsPerDay is the estimated number of transactions per day
	// after the last checkpoint.
	TransactionsPerDay float64
}

// DNSSeed identifies a DNS seed.
type DNSSeed struct {
	// Host defines the hostname of the seed.
	Host string

	// HasFiltering defines whether the seed supports filtering
	// by service flags.
	HasFiltering bool
}

// String returns the hostname of the DNS seed in human-readable form.
func (d DNSSeed) String() string {
	return d.Host
}

// SeedSpec6 is a hard-coded peer address.  Addr holds an IPv6 or IPv4-mapped
// IPv6 address.
type SeedSpec6 struct {
	Addr [16]byte
	Port uint16
}

// ZerocoinConstants groups the zerocoin accumulator settings of a network.
type ZerocoinConstants struct {
	// Modulus is the RSA-2048 challenge modulus in decimal form.
	Modulus string

	MaxSpendsPerTransaction int
	MinMintFee              int64
	MintRequiredConfs       int32
	RequiredAccumulation    int32
	DefaultSecurityLevel    int32
	HeaderVersion           int32
	RequiredStakeDepth      int32
}

// Params defines a BeetleCoin network by its parameters.  These parameters may
// be used by applications to differentiate networks as well as addresses and
// keys for one network from those intended for use on another network.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// ID identifies the standard parameter set.
	ID NetworkTag

	// Net defines the magic bytes used to identify the network.
	Net wire.BeetleNet

	// DefaultPort defines the default peer-to-peer port for the network.
	DefaultPort string

	// DNSSeeds defines a list of DNS seeds for the network that are used
	// as one method to discover peers.
	DNSSeeds []DNSSeed

	// FixedSeeds are hard-coded peers used when DNS seeding fails.
	FixedSeeds []SeedSpec6

	// GenesisBlock defines the first block of the chain.
	GenesisBlock *wire.MsgBlock

	// GenesisHash is the starting block hash.  Version 1 headers are
	// identified by their legacy proof hash, so this is the declared value
	// rather than one derived from GenesisBlock.
	GenesisHash chainhash.Hash

	// PowLimit defines the highest allowed proof of work value for a block
	// as a uint256.
	PowLimit *uint256.Uint256

	// PowLimitBits defines the highest allowed proof of work value for a
	// block in compact form.
	PowLimitBits uint32

	// TargetSpacing is the desired amount of time to generate each block
	// and TargetTimespan the window the moving average aims for once the
	// second fork is active.
	TargetSpacing  time.Duration
	TargetTimespan time.Duration

	// MaxReorgDepth is the deepest reorganization the node accepts.
	MaxReorgDepth int32

	// EnforceBlockUpgradeMajority, RejectBlockOutdatedMajority and
	// ToCheckBlockUpgradeMajority control the block version supermajority
	// rules.
	EnforceBlockUpgradeMajority int32
	RejectBlockOutdatedMajority int32
	ToCheckBlockUpgradeMajority int32

	// CoinbaseMaturity is the number of blocks required before newly mined
	// coins can be spent.
	CoinbaseMaturity int32

	// MasternodeCountDrift is the tolerance applied to masternode counts.
	MasternodeCountDrift int32

	// Supply limits, in atoms.
	FirstSupplyReduction  int64
	SecondSupplyReduction int64
	MaxMoneyOut           int64

	// Height based activations.  They are compared directly against block
	// heights, so -1 activates from the genesis block.
	LastPoWHeight              int32
	ModifierUpgradeHeight      int32
	SecondForkHeight           int32
	ZerocoinStartHeight        int32
	ZerocoinV2Height           int32
	MasternodeTiersStartHeight int32

	// Treasury payments.
	TreasuryAddress     string
	TreasuryStartHeight int32
	TreasuryBlockStep   int32

	// Stake modifier and kernel settings.
	ModifierInterval time.Duration
	StakeMinAge      time.Duration
	StakeMinAgeOld   time.Duration
	StakeMinDepth    int32

	// StakeModifierCheckpoints maps heights to the expected stake modifier
	// checksum.  It is ignored when SkipStakeModifierCheckpoints is set.
	StakeModifierCheckpoints     map[int32]uint32
	SkipStakeModifierCheckpoints bool

	// Rewards is the block reward schedule.  The network presets leave it
	// unset and the owner of the parameters must supply it before any
	// subsidy is calculated.  See RewardSchedule.
	Rewards RewardSchedule

	// BudgetCycleBlocks is the length of a budget cycle.
	BudgetCycleBlocks int32

	// BudgetFeeConfirmations is the number of confirmations required for a
	// budget finalization fee.
	BudgetFeeConfirmations int32

	// StartMasternodePayments is the unix time at which masternode payments
	// began.
	StartMasternodePayments int64

	// Spork signing keys.  Sporks signed after EnforceNewSporkKey must use
	// SporkKey and after RejectOldSporkKey SporkKeyOld is refused.
	SporkKey           []byte
	SporkKeyOld        []byte
	EnforceNewSporkKey int64
	RejectOldSporkKey  int64

	// AlertKey is the key that signs network alerts.
	AlertKey []byte

	// ObfuscationPoolDummyAddress is the placeholder payee of the mixing
	// pool.
	ObfuscationPoolDummyAddress string

	// Policy flags.
	MiningRequiresPeers      bool
	AllowMinDifficultyBlocks bool
	DefaultConsistencyChecks bool
	RequireStandard          bool
	MineBlocksOnDemand       bool
	SkipProofOfWorkCheck     bool

	// Checkpoints ordered from oldest to newest.
	Checkpoints    []Checkpoint
	CheckpointData CheckpointData

	// Zerocoin accumulator settings.
	Zerocoin ZerocoinConstants

	// Address encoding magics.
	PubKeyHashAddrID byte
	ScriptHashAddrID byte
	PrivateKeyID     byte

	// BIP32 hierarchical deterministic extended key magics.
	HDPrivateKeyID [4]byte
	HDPublicKeyID  [4]byte

	// SLIP0044Coin is the BIP44 coin type including the hardened bit.
	SLIP0044Coin uint32

	zerocoin *zerocoinMemo
}

// HDPrivKeyVersion returns the hierarchical deterministic extended private key
// magic version bytes for the network the parameters define.
func (p *Params) HDPrivKeyVersion() [4]byte {
	return p.HDPrivateKeyID
}

// HDPubKeyVersion returns the hierarchical deterministic extended public key
// magic version bytes for the network the parameters define.
func (p *Params) HDPubKeyVersion() [4]byte {
	return p.HDPublicKeyID
}

// BlockOneSubsidy returns the total subsidy of block height 1 for the
// network.
func (p *Params) BlockOneSubsidy() int64 {
	return p.Rewards.BlockOneSubsidy
}

// BaseSubsidyValue returns the starting block value.
//
// This is part of the standalone.SubsidyParams interface.
func (p *Params) BaseSubsidyValue() int64 {
	return p.Rewards.BaseSubsidy
}

// SubsidyReductionMultiplier returns the multiplier to use when performing
// the exponential subsidy reduction.
//
// This is part of the standalone.SubsidyParams interface.
func (p *Params) SubsidyReductionMultiplier() int64 {
	return p.Rewards.MulSubsidy
}

// SubsidyReductionDivisor returns the divisor to use when performing the
// exponential subsidy reduction.
//
// This is part of the standalone.SubsidyParams interface.
func (p *Params) SubsidyReductionDivisor() int64 {
	return p.Rewards.DivSubsidy
}

// SubsidyReductionIntervalBlocks returns the reduction interval in number of
// blocks.
//
// This is part of the standalone.SubsidyParams interface.
func (p *Params) SubsidyReductionIntervalBlocks() int64 {
	return p.Rewards.ReductionInterval
}

// MasternodeSubsidyProportion returns the percentage of the block value owed
// to the masternode of the given tier.
//
// This is part of the standalone.SubsidyParams interface.
func (p *Params) MasternodeSubsidyProportion(level uint32) uint16 {
	if level >= uint32(len(p.Rewards.MasternodeProportions)) {
		return 0
	}
	return p.Rewards.MasternodeProportions[level]
}

// TreasurySubsidyProportion returns the percentage of each block value
// accrued by the treasury.
//
// This is part of the standalone.SubsidyParams interface.
func (p *Params) TreasurySubsidyProportion() uint16 {
	return p.Rewards.TreasuryProportion
}

// TreasuryBlockInterval returns the number of blocks between two treasury
// payments.
//
// This is part of the standalone.SubsidyParams interface.
func (p *Params) TreasuryBlockInterval() int64 {
	return int64(p.TreasuryBlockStep)
}

// IsTreasuryBlock returns whether or not the block at the given height must
// pay the treasury.
//
// This is part of the standalone.SubsidyParams interface.
func (p *Params) IsTreasuryBlock(height int64) bool {
	start := int64(p.TreasuryStartHeight)
	step := int64(p.TreasuryBlockStep)
	if start < 0 || step <= 0 || height < start {
		return false
	}
	return (height-start)%step == 0
}

// CheckpointAt returns the checkpoint hash for the given height or nil when
// the height is not checkpointed.
func (p *Params) CheckpointAt(height int32) *chainhash.Hash {
	i := sort.Search(len(p.Checkpoints), func(i int) bool {
		return p.Checkpoints[i].Height >= height
	})
	if i < len(p.Checkpoints) && p.Checkpoints[i].Height == height {
		return p.Checkpoints[i].Hash
	}
	return nil
}

// LatestCheckpoint returns the most recent checkpoint or nil when the network
// has none.
func (p *Params) LatestCheckpoint() *Checkpoint {
	if len(p.Checkpoints) == 0 {
		return nil
	}
	return &p.Checkpoints[len(p.Checkpoints)-1]
}

// ModifierIntervalSeconds returns the stake modifier interval in seconds.
func (p *Params) ModifierIntervalSeconds() int64 {
	return int64(p.ModifierInterval / time.Second)
}

// TargetSpacingSeconds returns the target block spacing in seconds.
func (p *Params) TargetSpacingSeconds() int64 {
	return int64(p.TargetSpacing / time.Second)
}

// TargetTimespanSeconds returns the retarget window in seconds.
func (p *Params) TargetTimespanSeconds() int64 {
	return int64(p.TargetTimespan / time.Second)
}

// newHashFromStr converts the passed big-endian hex string into a
// chainhash.Hash.  It only differs from the one available in chainhash in that
// it panics on an error since it will only (and must only) be called with
// hard-coded, and therefore known good, hashes.
func newHashFromStr(hexStr string) *chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(hexStr)
	if err != nil {
		panic(err)
	}
	return hash
}

// hexDecode decodes the passed hex string and returns the resulting bytes.  It
// panics if an error occurs. This is only provided for the hard-coded constants
// so errors in the source code can be detected. It will only (and must only) be
// called with hard-coded values.
func hexDecode(hexStr string) []byte {
	b, err := hex.DecodeString(hexStr)
	if err != nil {
		panic(err)
	}
	return b
}

// powLimitShifted returns (2^256 - 1) >> shift.
func powLimitShifted(shift uint32) *uint256.Uint256 {
	limit := new(uint256.Uint256).SetUint64(0)
	limit.Not()
	return limit.Rsh(shift)
}

// powLimitBits returns the compact form of the passed limit.
func powLimitBits(limit *uint256.Uint256) uint32 {
	return standalone.Uint256ToDiffBits(limit)
}

// ParamsForNet returns the standard parameters for the given network tag or
// nil when the tag is unknown.  The unit test network is returned through its
// wrapped parameters.
func ParamsForNet(net NetworkTag) *Params {
	switch net {
	case NetMain:
		return MainNetParams()
	case NetTestNet:
		return TestNetParams()
	case NetRegTest:
		return RegNetParams()
	case NetUnitTest:
		return UnitTestParams().Params
	}
	return nil
}
