// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stake

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/beetlecoin/beetled/blockchain"
	"github.com/beetlecoin/beetled/blockchain/standalone"
	"github.com/beetlecoin/beetled/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/decred/dcrd/math/uint256"
)

const (
	// modifierIntervalRatio is the ratio between the longest and shortest
	// selection interval sections.
	modifierIntervalRatio = 3

	// modifierBits is the number of bits of a stake modifier and therefore
	// the number of selection rounds.
	modifierBits = 64

	// StakeModifierSeed is the modifier given to the first block after the
	// genesis block.  It reads "stakemod".
	StakeModifierSeed uint64 = 0x7374616b656d6f64
)

// GetLastStakeModifier returns the stake modifier and the block time of the
// closest ancestor of node, node included, that generated a stake modifier.
func GetLastStakeModifier(bi *blockchain.BlockIndex, node *blockchain.BlockNode) (uint64, int64, error) {
	if node == nil {
		return 0, 0, stakeRuleError(ErrNoModifierGeneration,
			"no block to get the last stake modifier from")
	}
	for !node.GeneratedStakeModifier() {
		parent := bi.Parent(node)
		if parent == nil {
			break
		}
		node = parent
	}
	if !node.GeneratedStakeModifier() {
		return 0, 0, stakeRuleError(ErrNoModifierGeneration,
			"no stake modifier generation at genesis block")
	}
	return node.StakeModifier, node.Time, nil
}

// SelectionIntervalSection returns the length in seconds of the given
// selection round.  Later rounds get longer sections.
func SelectionIntervalSection(params *chaincfg.Params, section int) int64 {
	if section < 0 || section >= modifierBits {
		panic(fmt.Sprintf("selection interval section %d out of range",
			section))
	}
	interval := params.ModifierIntervalSeconds()
	return interval * 63 / (63 + int64(63-section)*(modifierIntervalRatio-1))
}

// SelectionInterval returns the total length in seconds of the 64 selection
// interval sections.
func SelectionInterval(params *chaincfg.Params) int64 {
	var total int64
	for section := 0; section < modifierBits; section++ {
		total += SelectionIntervalSection(params, section)
	}
	return total
}

// byTimeHash sorts candidate blocks by time and then by hash, comparing the
// hashes as 256-bit little-endian numbers.
type byTimeHash []*blockchain.BlockNode

func (s byTimeHash) Len() int      { return len(s) }
func (s byTimeHash) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s byTimeHash) Less(i, j int) bool {
	if s[i].Time != s[j].Time {
		return s[i].Time < s[j].Time
	}
	a, b := s[i].Hash[:], s[j].Hash[:]
	for k := chainhash.HashSize - 1; k >= 0; k-- {
		if a[k] != b[k] {
			return a[k] < b[k]
		}
	}
	return false
}

// selectionHash returns the number used to rank a candidate block during a
// selection round.  Proof-of-stake hashes are divided by 2^32 so they are
// favored over proof-of-work blocks.
func selectionHash(node *blockchain.BlockNode, prevModifier uint64, modifierV2 bool) uint256.Uint256 {
	var proof chainhash.Hash
	if modifierV2 || node.IsProofOfWork() {
		proof = node.Hash
	}

	var buf [chainhash.HashSize + 8]byte
	copy(buf[:], proof[:])
	binary.LittleEndian.PutUint64(buf[chainhash.HashSize:], prevModifier)
	hash := chainhash.DoubleHashH(buf[:])
	n := standalone.HashToUint256(&hash)
	if node.IsProofOfStake() {
		n.Rsh(32)
	}
	return n
}

// selectBlockFromCandidates returns the candidate with the lowest selection
// hash among the ones not selected yet.  Candidates past stop are only
// considered while nothing has been selected.
func selectBlockFromCandidates(params *chaincfg.Params, candidates []*blockchain.BlockNode,
	selected map[chainhash.Hash]struct{}, stop int64, prevModifier uint64) *blockchain.BlockNode {

	var best *blockchain.BlockNode
	var bestHash uint256.Uint256
	modifierV2 := false
	for i, node := range candidates {
		if best != nil && node.Time > stop {
			break
		}

		// The regime is decided by the oldest candidate.
		if i == 0 {
			modifierV2 = node.Height >= params.ModifierUpgradeHeight
		}

		if _, ok := selected[node.Hash]; ok {
			continue
		}

		hash := selectionHash(node, prevModifier, modifierV2)
		if best == nil || hash.Lt(&bestHash) {
			best, bestHash = node, hash
		}
	}
	if best != nil {
		log.Tracef("selected %v with selection hash %064x", best, &bestHash)
	}
	return best
}

// ComputeNextStakeModifier computes the stake modifier of the block after
// prev and whether it was generated at that block or inherited.
//
// A new modifier is only generated once per modifier interval.  It folds the
// entropy bits of 64 past blocks, each selected by a round of a selection
// interval that ends at the start of the current modifier interval.
func ComputeNextStakeModifier(bi *blockchain.BlockIndex, prev *blockchain.BlockNode) (uint64, bool, error) {
	if prev == nil {
		// The genesis block modifier is zero.
		return 0, true, nil
	}
	if prev.Height == 0 {
		return StakeModifierSeed, true, nil
	}

	prevModifier, modifierTime, err := GetLastStakeModifier(bi, prev)
	if err != nil {
		return 0, false, err
	}
	params := bi.Params()
	interval := params.ModifierIntervalSeconds()
	if modifierTime/interval >= prev.Time/interval {
		return prevModifier, false, nil
	}

	selectionStart := (prev.Time/interval)*interval - SelectionInterval(params)
	var candidates []*blockchain.BlockNode
	for node := prev; node != nil && node.Time >= selectionStart; node = bi.Parent(node) {
		candidates = append(candidates, node)
	}
	sort.Sort(byTimeHash(candidates))

	var modifier uint64
	stop := selectionStart
	selected := make(map[chainhash.Hash]struct{}, modifierBits)
	rounds := len(candidates)
	if rounds > modifierBits {
		rounds = modifierBits
	}
	for round := 0; round < rounds; round++ {
		stop += SelectionIntervalSection(params, round)
		node := selectBlockFromCandidates(params, candidates, selected, stop,
			prevModifier)
		if node == nil {
			str := fmt.Sprintf("unable to select a block at round %d", round)
			return 0, false, stakeRuleError(ErrModifierSelection, str)
		}
		modifier |= node.StakeEntropyBit() << uint(round)
		selected[node.Hash] = struct{}{}
	}

	log.Debugf("new stake modifier %016x after block %v (%d candidates)",
		modifier, prev, len(candidates))
	return modifier, true, nil
}

// ComputeStakeModifierV3 returns the stake modifier derived from the kernel
// of the block after prev.  Blocks on the regression test network always use
// the seed.
func ComputeStakeModifierV3(params *chaincfg.Params, prev *blockchain.BlockNode, kernel *chainhash.Hash) uint64 {
	if prev == nil {
		return 0
	}
	if prev.Height == 0 || params.ID == chaincfg.NetRegTest {
		return StakeModifierSeed
	}

	var buf [chainhash.HashSize + 8]byte
	copy(buf[:], kernel[:])
	binary.LittleEndian.PutUint64(buf[chainhash.HashSize:], prev.StakeModifier)
	hash := chainhash.DoubleHashH(buf[:])
	return binary.LittleEndian.Uint64(hash[:8])
}
