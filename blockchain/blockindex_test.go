// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"errors"
	"testing"
	"time"

	"github.com/beetlecoin/beetled/chaincfg"
	"github.com/beetlecoin/beetled/wire"
	"github.com/davecgh/go-spew/spew"
)

func constTime(base, spacing int64) func(int32) int64 {
	return func(height int32) int64 { return base + spacing*int64(height) }
}

func constBits(bits uint32) func(int32) uint32 {
	return func(int32) uint32 { return bits }
}

// TestBlockIndexGenesis ensures a new index is seeded with the genesis block of
// the network.
func TestBlockIndexGenesis(t *testing.T) {
	t.Parallel()

	params := chaincfg.MainNetParams()
	bi := NewBlockIndex(params)

	tip := bi.Tip()
	if tip.Hash != params.GenesisHash || tip.Height != 0 ||
		tip.Parent != NoParent || tip.Bits != 0x1e0ffff0 ||
		tip.Time != 1536981458 {

		t.Fatalf("unexpected genesis node: %v", spew.Sdump(tip))
	}
	if bi.Parent(tip) != nil {
		t.Fatal("genesis block has a parent")
	}
	if bi.LookupNode(&params.GenesisHash) != tip || !bi.HaveBlock(&tip.Hash) {
		t.Fatal("genesis block is not indexed")
	}
	if bi.Len() != 1 {
		t.Fatalf("unexpected index size %d", bi.Len())
	}
}

// TestBlockIndexAddNode ensures nodes are linked to their parent and that
// duplicate and orphan headers are rejected.
func TestBlockIndexAddNode(t *testing.T) {
	t.Parallel()

	bi := NewBlockIndex(chaincfg.RegNetParams())
	genesis := bi.Tip()

	hash := fakeHash(0, 1)
	node := addFakeNode(t, bi, genesis, hash, 1515524460, 0x207fffff,
		FlagProofOfStake|FlagStakeModifier)
	if node.Height != 1 || node.Parent != genesis.ID || bi.Parent(node) != genesis {
		t.Fatalf("node is not linked to genesis: %v", spew.Sdump(node))
	}
	if !node.IsProofOfStake() || node.IsProofOfWork() {
		t.Fatal("proof-of-stake flag was not kept")
	}
	if node.GeneratedStakeModifier() {
		t.Fatal("generated modifier flag must only be set with the modifier")
	}
	if got, want := node.StakeEntropyBit(), uint64(hash[0]&1); got != want {
		t.Fatalf("unexpected entropy bit %d, want %d", got, want)
	}

	header := &wire.BlockHeader{PrevBlock: genesis.Hash, Timestamp: time.Unix(0, 0)}
	if _, err := bi.AddNode(hash, header, 0); !errors.Is(err, ErrDuplicateBlock) {
		t.Fatalf("unexpected duplicate error: %v", err)
	}
	header.PrevBlock = fakeHash(9, 9)
	_, err := bi.AddNode(fakeHash(0, 2), header, 0)
	if !errors.Is(err, ErrMissingParent) {
		t.Fatalf("unexpected orphan error: %v", err)
	}
	var rerr RuleError
	if !errors.As(err, &rerr) {
		t.Fatalf("orphan error is not a rule error: %T", err)
	}
}

// TestBlockIndexBestChain ensures the best chain view follows reorganizations.
func TestBlockIndexBestChain(t *testing.T) {
	t.Parallel()

	bi := NewBlockIndex(chaincfg.RegNetParams())
	genesis := bi.Tip()
	timeAt, bitsAt := constTime(1515524400, 60), constBits(0x207fffff)

	mainTip := extendFakeChain(t, bi, genesis, 0, 10, timeAt, bitsAt)
	fork := bi.NodeAtHeight(5)

	// Build a longer side chain forking at height 5 without activating it.
	side := fork
	for i := int32(0); i < 7; i++ {
		side = addFakeNode(t, bi, side, fakeHash(1, side.Height+1),
			timeAt(side.Height+1), 0x207fffff, 0)
	}
	if bi.Contains(side) || bi.Tip() != mainTip {
		t.Fatal("side chain became active without SetTip")
	}
	if got := bi.Ancestor(side, 3); got != bi.NodeAtHeight(3) {
		t.Fatalf("unexpected side chain ancestor %v", got)
	}
	if got := bi.Ancestor(side, 8); got == nil || bi.Contains(got) || got.Height != 8 {
		t.Fatalf("unexpected side chain ancestor %v", got)
	}
	if bi.Ancestor(side, 13) != nil || bi.Ancestor(side, -1) != nil {
		t.Fatal("out of range ancestor is not nil")
	}
	if bi.Next(side) != nil {
		t.Fatal("side chain node has a best chain successor")
	}

	if err := bi.SetTip(side); err != nil {
		t.Fatalf("SetTip: %v", err)
	}
	if bi.Tip() != side || bi.Contains(mainTip) || !bi.Contains(fork) {
		t.Fatal("reorganization was not applied")
	}
	if next := bi.Next(fork); next == nil || next.Hash != fakeHash(1, 6) {
		t.Fatalf("unexpected successor of the fork point %v", next)
	}
	if bi.NodeAtHeight(13) != nil {
		t.Fatal("node beyond tip is not nil")
	}

	// Reorganize back to a shorter chain.
	oldMain := bi.Ancestor(mainTip, 9)
	if err := bi.SetTip(oldMain); err != nil {
		t.Fatalf("SetTip: %v", err)
	}
	if bi.Tip() != oldMain || bi.NodeAtHeight(10) != nil || bi.Contains(side) {
		t.Fatal("reorganization to a shorter chain was not applied")
	}

	stranger := &BlockNode{Hash: fakeHash(7, 7)}
	if err := bi.SetTip(stranger); !errors.Is(err, ErrUnknownBlock) {
		t.Fatalf("unexpected error for unknown tip: %v", err)
	}
}

// TestSetStakeModifier ensures a stake modifier can only be assigned once.
func TestSetStakeModifier(t *testing.T) {
	t.Parallel()

	bi := NewBlockIndex(chaincfg.RegNetParams())
	node := extendFakeChain(t, bi, bi.Tip(), 0, 1, constTime(1515524400, 60),
		constBits(0x207fffff))

	if node.HasStakeModifier() {
		t.Fatal("new node already has a stake modifier")
	}
	if err := bi.SetStakeModifier(node, 0x7374616b656d6f64, true); err != nil {
		t.Fatalf("SetStakeModifier: %v", err)
	}
	if !node.HasStakeModifier() || !node.GeneratedStakeModifier() ||
		node.StakeModifier != 0x7374616b656d6f64 {

		t.Fatalf("modifier was not assigned: %v", spew.Sdump(node))
	}

	// Assigning the same value again is accepted while a different value is
	// rejected and leaves the node untouched.
	if err := bi.SetStakeModifier(node, 0x7374616b656d6f64, true); err != nil {
		t.Fatalf("SetStakeModifier with same value: %v", err)
	}
	err := bi.SetStakeModifier(node, 1, false)
	if !errors.Is(err, ErrStakeModifierSet) {
		t.Fatalf("unexpected error: %v", err)
	}
	if node.StakeModifier != 0x7374616b656d6f64 || !node.GeneratedStakeModifier() {
		t.Fatal("rejected assignment modified the node")
	}
}

// TestTryTip ensures the non-blocking tip accessor gives up while the index is
// locked for writes.
func TestTryTip(t *testing.T) {
	t.Parallel()

	bi := NewBlockIndex(chaincfg.RegNetParams())
	if tip, ok := bi.TryTip(); !ok || tip.Height != 0 {
		t.Fatalf("unexpected TryTip result %v %v", tip, ok)
	}

	bi.Lock()
	_, ok := bi.TryTip()
	bi.Unlock()
	if ok {
		t.Fatal("TryTip succeeded while the index was locked")
	}
}

// TestPruneSideChains ensures only side chains forking deeper than the maximum
// reorganization depth are removed.
func TestPruneSideChains(t *testing.T) {
	t.Parallel()

	params := chaincfg.RegNetParams()
	params.MaxReorgDepth = 5
	bi := NewBlockIndex(params)
	timeAt, bitsAt := constTime(1515524400, 60), constBits(0x207fffff)
	tip := extendFakeChain(t, bi, bi.Tip(), 0, 20, timeAt, bitsAt)

	// Stale branch forking at height 3 and a recent branch forking at 17.
	stale := bi.NodeAtHeight(3)
	for i := 0; i < 3; i++ {
		stale = addFakeNode(t, bi, stale, fakeHash(1, stale.Height+1),
			timeAt(stale.Height+1), 0x207fffff, 0)
	}
	recent := addFakeNode(t, bi, bi.NodeAtHeight(17), fakeHash(2, 18),
		timeAt(18), 0x207fffff, 0)

	if pruned := bi.PruneSideChains(); pruned != 3 {
		t.Fatalf("unexpected number of pruned nodes %d", pruned)
	}
	if bi.HaveBlock(&stale.Hash) {
		t.Fatal("stale branch was not pruned")
	}
	if !bi.HaveBlock(&recent.Hash) || bi.Tip() != tip || bi.Len() != 22 {
		t.Fatal("recent branch or best chain was pruned")
	}
	if pruned := bi.PruneSideChains(); pruned != 0 {
		t.Fatalf("second prune removed %d nodes", pruned)
	}
}
