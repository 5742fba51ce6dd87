// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/beetlecoin/beetled/blockchain/standalone"
	"github.com/beetlecoin/beetled/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/decred/dcrd/math/uint256"
)

const (
	// dgwPastBlocks is the number of blocks averaged by the dark gravity
	// wave retarget.
	dgwPastBlocks = 24

	// legacyEMASpacing and legacyEMATimespan are the moving average
	// parameters used before the second fork, in seconds.
	legacyEMASpacing  = 60
	legacyEMATimespan = 40 * 60
)

// bitsOverride pins the required difficulty of a main network block whose
// header time and parent hash match.
type bitsOverride struct {
	height   int32
	time     int64
	prevHash chainhash.Hash
	bits     uint32
}

// mainNetBitsOverrides resets the difficulty of the first proof-of-stake block
// and of the blocks following the first fork.
var mainNetBitsOverrides = []bitsOverride{
	{201, 1536997636, *mustParseHash("000000632f1519f1cb77740707b7efab42bd947adfa3d72b9bc527a99f149e61"), 0x1e00b943},
	{345000, 1557783102, *mustParseHash("f347f550ac55ba62e44b4e6a99bdde0e5e4cabed08d33d04966e6ad37d709a26"), 0x1d059e8c},
	{345001, 1557783117, *mustParseHash("69c0a8d13ea706b047acada8ba5f67c608d2bd6bf44eea9400be7e128f78363a"), 0x1e00ffff},
	{345002, 1557783127, *mustParseHash("f335a8fa78eed0430292e052b60e26ca1b349b114ce300447e60242443548804"), 0x1e00ffff},
	{345003, 1557783135, *mustParseHash("0fd093031c7e9354e8102692d9921e02a6b4e1b01387d5ecb4e164fc4121b452"), 0x1e00ffff},
	{345004, 1557783146, *mustParseHash("8198b4589cc30bfae5de27035ebc9c21c2b0a86fb8224be1f16b8fe9a8dd1a81"), 0x1e00ffff},
	{345005, 1557783154, *mustParseHash("9de65e3db76dc3a6c6163c64415e9b46c09f8dd684cd4b0a6028507102665d77"), 0x1e00ffff},
	{345006, 1557783167, *mustParseHash("a5c69feec49ea12632c23bdfb89a1652497ae31896a80b15396b42df5a7ef5ab"), 0x1e00ffff},
	{345007, 1557783176, *mustParseHash("88550b0b8633ebdf672e5f43af97e4a32e3531fb76924984e6bd0c12b00d2985"), 0x1e00ffff},
	{345008, 1557783188, *mustParseHash("3d5836627f058b814e3f399d97e7dcbdf0696ec18792ae1a93d56d4a8c1c16dc"), 0x1e00ffff},
	{345009, 1557783198, *mustParseHash("1e26bd657acf9150ff0c4ad155bdb7d38e5ef941f343e239ac01a3088bca39d9"), 0x1e00ffff},
}

// mustParseHash converts the passed big-endian hex string into a
// chainhash.Hash and panics on error.  It must only be called with hard-coded
// values.
func mustParseHash(s string) *chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(s)
	if err != nil {
		panic("invalid hash in source file: " + s)
	}
	return hash
}

// preForkTargetLimit is the easiest target allowed by the moving average
// before the second fork, (2^256 - 1) >> 24.
var preForkTargetLimit = func() uint256.Uint256 {
	var limit uint256.Uint256
	limit.Not()
	limit.Rsh(24)
	return limit
}()

// lookupBitsOverride returns the pinned difficulty for the candidate block, if
// any.
func lookupBitsOverride(params *chaincfg.Params, height int32, headerTime int64, prevHash *chainhash.Hash) (uint32, bool) {
	if params.ID != chaincfg.NetMain {
		return 0, false
	}
	for i := range mainNetBitsOverrides {
		o := &mainNetBitsOverrides[i]
		if o.height == height && o.time == headerTime && o.prevHash == *prevHash {
			return o.bits, true
		}
	}
	return 0, false
}

// calcNextRequiredBits calculates the required difficulty for the block after
// the passed previous block node.  The header time is the timestamp of the
// candidate block and is only used to match the pinned difficulty table.
//
// This function MUST be called with the block index lock held (for reads).
func (bi *BlockIndex) calcNextRequiredBits(prev *BlockNode, headerTime int64) uint32 {
	params := bi.params
	if prev == nil || prev.Height == 0 || prev.Height < dgwPastBlocks {
		return params.PowLimitBits
	}

	height := prev.Height + 1
	if height > params.LastPoWHeight || height >= params.SecondForkHeight {
		return bi.calcEMARequiredBits(prev, height, headerTime)
	}
	return bi.calcDGWRequiredBits(prev)
}

// calcEMARequiredBits retargets every block with an exponential moving average
// toward the target spacing.
//
// This function MUST be called with the block index lock held (for reads).
func (bi *BlockIndex) calcEMARequiredBits(prev *BlockNode, height int32, headerTime int64) uint32 {
	params := bi.params
	postFork := height >= params.SecondForkHeight

	limit := preForkTargetLimit
	if postFork {
		limit = *params.PowLimit
	}

	prevPrev := bi.parent(prev)
	if prevPrev == nil || bi.parent(prevPrev) == nil {
		return standalone.Uint256ToDiffBits(&limit)
	}

	if bits, ok := lookupBitsOverride(params, height, headerTime, &prev.Hash); ok {
		return bits
	}

	actualSpacing := prev.Time - prevPrev.Time
	targetSpacing := int64(legacyEMASpacing)
	targetTimespan := int64(legacyEMATimespan)
	if postFork {
		targetSpacing = params.TargetSpacingSeconds()
		targetTimespan = params.TargetTimespanSeconds()
	}
	interval := targetTimespan / targetSpacing

	if postFork {
		// Very negative spacings would drive the numerator to zero or below,
		// so they are limited to the lowest value the formula handles.
		floor := -((interval - 1) * targetSpacing / 2)
		if actualSpacing <= floor {
			actualSpacing = floor + 1
		}
	} else if actualSpacing < 0 {
		actualSpacing = 1
	}

	numerator := uint32((interval-1)*targetSpacing + 2*actualSpacing)
	denominator := uint32((interval + 1) * targetSpacing)

	target, _, _ := standalone.DiffBitsToUint256(prev.Bits)
	target.MulUint64(uint64(numerator))
	target.DivUint64(uint64(denominator))
	if target.IsZero() || target.Gt(&limit) {
		target = limit
	}

	return standalone.Uint256ToDiffBits(&target)
}

// calcDGWRequiredBits retargets with the dark gravity wave over the last
// dgwPastBlocks blocks.
//
// This function MUST be called with the block index lock held (for reads).
func (bi *BlockIndex) calcDGWRequiredBits(prev *BlockNode) uint32 {
	params := bi.params

	var avg, prevAvg uint256.Uint256
	var actualTimespan, lastBlockTime, count int64
	for n := prev; n != nil && n.Height > 0; n = bi.parent(n) {
		if count >= dgwPastBlocks {
			break
		}
		count++

		target, _, _ := standalone.DiffBitsToUint256(n.Bits)
		if count == 1 {
			avg = target
		} else {
			avg.Set(&prevAvg).MulUint64(uint64(count)).Add(&target).
				DivUint64(uint64(count + 1))
		}
		prevAvg = avg

		if lastBlockTime > 0 {
			actualTimespan += lastBlockTime - n.Time
		}
		lastBlockTime = n.Time
	}

	target := avg
	target.MulUint64(uint64(uint32(actualTimespan)))
	target.DivUint64(uint64(count * params.TargetSpacingSeconds()))
	if target.Gt(params.PowLimit) {
		target.Set(params.PowLimit)
	}

	return standalone.Uint256ToDiffBits(&target)
}

// NextRequiredBits calculates the required difficulty of the block after the
// passed previous block node given the timestamp of the candidate header.
//
// This function is safe for concurrent access.
func (bi *BlockIndex) NextRequiredBits(prev *BlockNode, headerTime int64) uint32 {
	bi.RLock()
	bits := bi.calcNextRequiredBits(prev, headerTime)
	bi.RUnlock()
	return bits
}

// CheckProofOfWork ensures the block bits are in the valid range for the
// network and that the passed proof-of-work hash does not exceed the target
// they claim.  The check is skipped entirely when the network disables it.
func CheckProofOfWork(powHash *chainhash.Hash, bits uint32, params *chaincfg.Params) error {
	if params.SkipProofOfWorkCheck {
		return nil
	}
	err := standalone.CheckProofOfWork(powHash, bits, params.PowLimit)
	return standaloneToChainRuleError(err)
}

// CalcWork calculates a work value from difficulty bits.  It returns zero for
// negative, zero or overflowing targets.
func CalcWork(bits uint32) uint256.Uint256 {
	return standalone.CalcWork(bits)
}
