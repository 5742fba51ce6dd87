// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stake

import (
	"errors"
	"testing"

	"github.com/beetlecoin/beetled/blockchain"
	"github.com/beetlecoin/beetled/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// TestSelectionInterval ensures the selection interval sections grow from a
// third of the modifier interval to the full interval.
func TestSelectionInterval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		params    *chaincfg.Params
		first     int64
		last      int64
		selection int64
	}{{
		name:      "mainnet",
		params:    chaincfg.MainNetParams(),
		first:     3600,
		last:      10800,
		selection: 380945,
	}, {
		name:      "regnet",
		params:    chaincfg.RegNetParams(),
		first:     400,
		last:      1200,
		selection: 42301,
	}}

	for _, test := range tests {
		if got := SelectionIntervalSection(test.params, 0); got != test.first {
			t.Errorf("%q: first section %d, want %d", test.name, got, test.first)
		}
		if got := SelectionIntervalSection(test.params, 63); got != test.last {
			t.Errorf("%q: last section %d, want %d", test.name, got, test.last)
		}
		if got := SelectionInterval(test.params); got != test.selection {
			t.Errorf("%q: selection interval %d, want %d", test.name, got,
				test.selection)
		}
	}

	defer func() {
		if recover() == nil {
			t.Fatal("out of range section did not panic")
		}
	}()
	SelectionIntervalSection(chaincfg.MainNetParams(), 64)
}

// TestComputeNextStakeModifierStart ensures the genesis block gets a zero
// modifier and its child the seed.
func TestComputeNextStakeModifierStart(t *testing.T) {
	t.Parallel()

	bi := blockchain.NewBlockIndex(testParams())
	genesis := bi.Tip()

	if _, _, err := GetLastStakeModifier(bi, genesis); !errors.Is(err, ErrNoModifierGeneration) {
		t.Fatalf("unexpected error before the genesis modifier: %v", err)
	}

	modifier, generated, err := ComputeNextStakeModifier(bi, nil)
	if err != nil || modifier != 0 || !generated {
		t.Fatalf("genesis modifier: got %016x/%v/%v", modifier, generated, err)
	}

	connectGenesis(t, bi)
	modifier, generated, err = ComputeNextStakeModifier(bi, genesis)
	if err != nil || modifier != StakeModifierSeed || !generated {
		t.Fatalf("first modifier: got %016x/%v/%v", modifier, generated, err)
	}
}

// TestComputeNextStakeModifier ensures modifiers are inherited within a
// modifier interval and generated from the selected entropy bits once per
// interval.
func TestComputeNextStakeModifier(t *testing.T) {
	t.Parallel()

	params := testParams()
	bi := buildChain(t, params, 300, 60)

	var generatedAt []int32
	for height := int32(0); height <= 300; height++ {
		if bi.NodeAtHeight(height).GeneratedStakeModifier() {
			generatedAt = append(generatedAt, height)
		}
	}
	if len(generatedAt) != 16 {
		t.Fatalf("unexpected number of generated modifiers %d: %v",
			len(generatedAt), generatedAt)
	}
	for i, height := range generatedAt[2:] {
		if want := int32(21 + 20*i); height != want {
			t.Fatalf("modifier generated at height %d, want %d", height, want)
		}
	}

	tests := []struct {
		height    int32
		modifier  uint64
		generated bool
		checksum  uint32
	}{
		{1, StakeModifierSeed, true, 0x00c062b8},
		{2, StakeModifierSeed, false, 0x00e7b334},
		{20, StakeModifierSeed, false, 0xff2eeecd},
		{21, 0x0000000000109ced, true, 0x4a701d8d},
		{100, 0x0a4a0b53cf909ced, false, 0x78bfaae5},
		{150, 0x8a4a0b53cf909ced, false, 0xe2ce9e4c},
		{200, 0xc44a0b53cf909ced, false, 0x5a92f908},
		{300, 0xb1020b53cf909ced, false, 0x529b6fb6},
	}
	for _, test := range tests {
		node := bi.NodeAtHeight(test.height)
		if node.StakeModifier != test.modifier {
			t.Errorf("height %d: modifier %016x, want %016x", test.height,
				node.StakeModifier, test.modifier)
		}
		if node.GeneratedStakeModifier() != test.generated {
			t.Errorf("height %d: generated %v, want %v", test.height,
				node.GeneratedStakeModifier(), test.generated)
		}
		if node.StakeModifierChecksum != test.checksum {
			t.Errorf("height %d: checksum %08x, want %08x", test.height,
				node.StakeModifierChecksum, test.checksum)
		}
	}

	modifier, modifierTime, err := GetLastStakeModifier(bi, bi.NodeAtHeight(300))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := bi.NodeAtHeight(generatedAt[len(generatedAt)-1])
	if modifier != last.StakeModifier || modifierTime != last.Time {
		t.Fatalf("last modifier %016x at %d, want %016x at %d", modifier,
			modifierTime, last.StakeModifier, last.Time)
	}
}

// TestComputeNextStakeModifierDeterministic ensures two indexes holding the
// same blocks agree on every modifier.
func TestComputeNextStakeModifierDeterministic(t *testing.T) {
	t.Parallel()

	a := buildChain(t, testParams(), 120, 600)
	b := buildChain(t, testParams(), 120, 600)
	for height := int32(0); height <= 120; height++ {
		na, nb := a.NodeAtHeight(height), b.NodeAtHeight(height)
		if na.StakeModifier != nb.StakeModifier ||
			na.StakeModifierChecksum != nb.StakeModifierChecksum {

			t.Fatalf("height %d: indexes disagree", height)
		}
	}
	tip := a.Tip()
	if tip.StakeModifier != 0x31a3ee8fa3ee8a4a || tip.StakeModifierChecksum != 0x53bf1957 {
		t.Fatalf("unexpected tip modifier %016x checksum %08x",
			tip.StakeModifier, tip.StakeModifierChecksum)
	}
}

// TestSelectionOrder ensures candidates are ordered by time and then by hash
// compared as a little-endian number.
func TestSelectionOrder(t *testing.T) {
	t.Parallel()

	var low, high chainhash.Hash
	low[0], high[0] = 0xff, 0x01
	high[31] = 0x01
	nodes := byTimeHash{
		{Hash: high, Time: 10},
		{Hash: low, Time: 10},
		{Hash: high, Time: 5},
	}
	if !nodes.Less(2, 0) || !nodes.Less(1, 0) || nodes.Less(0, 1) {
		t.Fatal("unexpected candidate order")
	}
}

// TestComputeStakeModifierV3 ensures kernel derived modifiers chain the
// previous modifier and are seeded on the regression test network.
func TestComputeStakeModifierV3(t *testing.T) {
	t.Parallel()

	kernel := fakeHash(7, 7)
	if got := ComputeStakeModifierV3(chaincfg.MainNetParams(), nil, &kernel); got != 0 {
		t.Fatalf("modifier without a previous block %016x", got)
	}

	genesis := &blockchain.BlockNode{Height: 0}
	if got := ComputeStakeModifierV3(chaincfg.MainNetParams(), genesis, &kernel); got != StakeModifierSeed {
		t.Fatalf("modifier after genesis %016x", got)
	}

	prev := &blockchain.BlockNode{Height: 10, StakeModifier: 1}
	if got := ComputeStakeModifierV3(chaincfg.RegNetParams(), prev, &kernel); got != StakeModifierSeed {
		t.Fatalf("regnet modifier %016x", got)
	}

	a := ComputeStakeModifierV3(chaincfg.MainNetParams(), prev, &kernel)
	if a == prev.StakeModifier || a == StakeModifierSeed {
		t.Fatalf("modifier %016x was not derived from the kernel", a)
	}
	other := fakeHash(7, 8)
	if b := ComputeStakeModifierV3(chaincfg.MainNetParams(), prev, &other); a == b {
		t.Fatal("different kernels produced the same modifier")
	}
}
