// Copyright (c) 2014-2014 PPCD developers.
// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stake

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/beetlecoin/beetled/blockchain"
	"github.com/beetlecoin/beetled/blockchain/standalone"
	"github.com/beetlecoin/beetled/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/decred/dcrd/math/uint256"
)

// hashDrift is the number of timestamps tried by a minting attempt.
const hashDrift = 60

// GetWeight returns the stake weight of a coin held between the two unix
// times: the time held beyond the minimum stake age.
func GetWeight(params *chaincfg.Params, begin, end int64) int64 {
	return end - begin - int64(params.StakeMinAge/time.Second)
}

// GetKernelStakeModifier returns the stake modifier a coin confirmed in the
// given block hashes with under the legacy kernel, together with the height
// and time of the block that generated it.  The modifier is the first one
// generated a selection interval after the coin's block, found by scanning
// the best chain forward.
func GetKernelStakeModifier(bi *blockchain.BlockIndex, blockFrom *chainhash.Hash) (uint64, int32, int64, error) {
	from := bi.LookupNode(blockFrom)
	if from == nil {
		str := fmt.Sprintf("stake origin block %s is not indexed", blockFrom)
		return 0, 0, 0, stakeRuleError(ErrMissingStakeOrigin, str)
	}

	modifierHeight, modifierTime := from.Height, from.Time
	selectionInterval := SelectionInterval(bi.Params())
	node := from
	next := bi.NodeAtHeight(from.Height + 1)
	for modifierTime < from.Time+selectionInterval {
		if next == nil {
			str := fmt.Sprintf("reached the best chain tip while looking "+
				"for the stake modifier of block %v", from)
			return 0, 0, 0, stakeRuleError(ErrKernelModifier, str)
		}
		node = next
		next = bi.NodeAtHeight(next.Height + 1)
		if node.GeneratedStakeModifier() {
			modifierHeight, modifierTime = node.Height, node.Time
		}
	}
	return node.StakeModifier, modifierHeight, modifierTime, nil
}

// GetKernelStakeModifierV05 returns the stake modifier a kernel with the given
// timestamp hashes with after the second fork.  It scans backwards from the
// tip to the modifier generated at least the minimum stake age minus a
// selection interval before the kernel, so the modifier does not depend on the
// staked coin.
func GetKernelStakeModifierV05(bi *blockchain.BlockIndex, tip *blockchain.BlockNode, txTime int64) (uint64, int32, int64, error) {
	params := bi.Params()
	offset := int64(params.StakeMinAge/time.Second) - SelectionInterval(params)

	node := tip
	modifierHeight, modifierTime := node.Height, node.Time
	if modifierTime+offset <= txTime {
		str := fmt.Sprintf("best block %v is too old for a kernel at time %d",
			node, txTime)
		return 0, 0, 0, stakeRuleError(ErrBestBlockTooOld, str)
	}
	for modifierTime+offset > txTime {
		parent := bi.Parent(node)
		if parent == nil {
			return 0, 0, 0, stakeRuleError(ErrKernelModifier,
				"reached the genesis block looking for a kernel modifier")
		}
		node = parent
		if node.GeneratedStakeModifier() {
			modifierHeight, modifierTime = node.Height, node.Time
		}
	}
	return node.StakeModifier, modifierHeight, modifierTime, nil
}

// Kernel describes a coinstake kernel: the staked coin, the modifier it hashes
// with and the timestamps and heights the stake rules apply to.
type Kernel struct {
	Uniqueness      []byte
	Value           int64
	Modifier        uint64
	BlockFromTime   int64
	BlockFromHeight int32

	// TxTime is the kernel timestamp and Height the height of the block
	// being staked.
	TxTime int64
	Height int32
}

// Hash returns the kernel hash: the double SHA-256 of the modifier, the
// origin block time, the coin uniqueness and the kernel time.
func (k *Kernel) Hash() chainhash.Hash {
	b := make([]byte, 0, 8+4+len(k.Uniqueness)+4)
	b = binary.LittleEndian.AppendUint64(b, k.Modifier)
	b = binary.LittleEndian.AppendUint32(b, uint32(k.BlockFromTime))
	b = append(b, k.Uniqueness...)
	b = binary.LittleEndian.AppendUint32(b, uint32(k.TxTime))
	return chainhash.DoubleHashH(b)
}

// stakeTargetHit returns whether the kernel hash is at most the target per
// coin day weighted by the staked value.  The weight is the value after the
// second fork and a hundredth of it before.
func stakeTargetHit(hash *chainhash.Hash, value int64, targetPerCoinDay *uint256.Uint256, newWeight bool) bool {
	var weight uint256.Uint256
	weight.SetUint64(uint64(value))
	if !newWeight {
		weight.DivUint64(100)
	}
	weight.Mul(targetPerCoinDay)

	proof := standalone.HashToUint256(hash)
	return !proof.Gt(&weight)
}

// CheckStake validates the kernel against the target per coin day and returns
// its hash.  After the second fork, outside of the regression test network,
// the kernel time, minimum age and minimum depth rules are enforced first.
func CheckStake(params *chaincfg.Params, k *Kernel, targetPerCoinDay *uint256.Uint256) (chainhash.Hash, error) {
	postFork := k.Height >= params.SecondForkHeight
	if postFork && params.ID != chaincfg.NetRegTest {
		if err := checkStakeTime(k.BlockFromTime, k.TxTime); err != nil {
			return chainhash.Hash{}, err
		}
		err := checkStakeAge(k.BlockFromTime, k.TxTime, params.StakeMinAge)
		if err != nil {
			return chainhash.Hash{}, err
		}
		err = checkStakeDepth(k.BlockFromHeight, k.Height, params.StakeMinDepth)
		if err != nil {
			return chainhash.Hash{}, err
		}
	}

	hash := k.Hash()
	if !stakeTargetHit(&hash, k.Value, targetPerCoinDay, postFork) {
		str := fmt.Sprintf("kernel hash %v of coin from block time %d at "+
			"time %d is above the target", hash, k.BlockFromTime, k.TxTime)
		return hash, stakeRuleError(ErrKernelHashHigh, str)
	}
	return hash, nil
}

func checkStakeTime(blockFromTime, txTime int64) error {
	if txTime < blockFromTime {
		str := fmt.Sprintf("kernel time %d is before the stake origin "+
			"time %d", txTime, blockFromTime)
		return stakeRuleError(ErrStakeTimeViolation, str)
	}
	return nil
}

func checkStakeAge(blockFromTime, txTime int64, minAge time.Duration) error {
	if blockFromTime+int64(minAge/time.Second) > txTime {
		str := fmt.Sprintf("stake origin time %d plus minimum age %v is "+
			"after kernel time %d", blockFromTime, minAge, txTime)
		return stakeRuleError(ErrStakeMinAge, str)
	}
	return nil
}

func checkStakeDepth(blockFromHeight, height, minDepth int32) error {
	if height-blockFromHeight < minDepth {
		str := fmt.Sprintf("stake origin height %d is less than %d blocks "+
			"below height %d", blockFromHeight, minDepth, height)
		return stakeRuleError(ErrStakeMinDepth, str)
	}
	return nil
}

// CheckCoinStakeTimestamp returns whether the coinstake timestamp matches the
// block timestamp.
func CheckCoinStakeTimestamp(blockTime, txTime int64) bool {
	return blockTime == txTime
}

// Staker searches for kernels on top of the best chain tip and remembers when
// it last hashed on each tip.
type Staker struct {
	index *blockchain.BlockIndex
	now   func() time.Time

	mtx          sync.Mutex
	hashedBlocks map[int32]time.Time
}

// NewStaker returns a staker minting on top of the passed block index.
func NewStaker(bi *blockchain.BlockIndex) *Staker {
	return &Staker{
		index:        bi,
		now:          time.Now,
		hashedBlocks: make(map[int32]time.Time),
	}
}

// LastHashed returns when the staker last searched for a kernel on the tip at
// the given height.
func (s *Staker) LastHashed(height int32) (time.Time, bool) {
	s.mtx.Lock()
	t, ok := s.hashedBlocks[height]
	s.mtx.Unlock()
	return t, ok
}

// Stake searches for a kernel of the staked input in the hashDrift seconds
// that follow txTime, starting with the latest timestamp.  The search stops
// early when the tip changes.  It returns the kernel hash and timestamp and
// whether a kernel meeting the target was found.
func (s *Staker) Stake(input Input, bits uint32, blockFromTime int64, blockFromHeight int32, txTime int64) (chainhash.Hash, int64, bool, error) {
	bi := s.index
	params := bi.Params()
	tip := bi.Tip()
	height := tip.Height + 1
	postFork := height >= params.SecondForkHeight

	if params.ID != chaincfg.NetRegTest {
		if err := checkStakeTime(blockFromTime, txTime); err != nil {
			return chainhash.Hash{}, 0, false, err
		}
		err := checkStakeAge(blockFromTime, txTime, params.StakeMinAgeOld)
		if err != nil {
			return chainhash.Hash{}, 0, false, err
		}
		if postFork {
			err := checkStakeAge(blockFromTime, txTime, params.StakeMinAge)
			if err != nil {
				return chainhash.Hash{}, 0, false, err
			}
			err = checkStakeDepth(blockFromHeight, height, params.StakeMinDepth)
			if err != nil {
				return chainhash.Hash{}, 0, false, err
			}
		}
	}

	target, _, _ := standalone.DiffBitsToUint256(bits)

	var modifier uint64
	switch {
	case params.ID == chaincfg.NetRegTest:
		modifier = tip.StakeModifier
	case postFork:
		var err error
		modifier, _, _, err = GetKernelStakeModifierV05(bi, tip, txTime)
		if err != nil {
			log.Debugf("Failed to get kernel stake modifier: %v", err)
			modifier = tip.StakeModifier
		}
	default:
		var err error
		modifier, err = input.Modifier(bi)
		if err != nil {
			return chainhash.Hash{}, 0, false, err
		}
	}

	k := Kernel{
		Uniqueness:      input.Uniqueness(),
		Value:           input.Value(),
		Modifier:        modifier,
		BlockFromTime:   blockFromTime,
		BlockFromHeight: blockFromHeight,
		Height:          height,
	}
	var hash chainhash.Hash
	found := false
	for i := 0; i < hashDrift; i++ {
		if bi.Tip().Height != tip.Height {
			break
		}
		k.TxTime = txTime + hashDrift - int64(i)
		h, err := CheckStake(params, &k, &target)
		if err != nil {
			continue
		}
		hash, found = h, true
		break
	}

	s.mtx.Lock()
	s.hashedBlocks = map[int32]time.Time{bi.Tip().Height: s.now()}
	s.mtx.Unlock()

	if !found {
		return chainhash.Hash{}, 0, false, nil
	}
	return hash, k.TxTime, true, nil
}
