// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stake

import (
	"errors"
	"testing"

	"github.com/beetlecoin/beetled/blockchain"
	"github.com/beetlecoin/beetled/chaincfg"
)

// TestGenesisStakeModifierChecksum ensures the genesis checksum of the
// networks matches their hard checkpoint.
func TestGenesisStakeModifierChecksum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		params   *chaincfg.Params
		checksum uint32
	}{
		{"mainnet", chaincfg.MainNetParams(), 0xfd11f4e7},
		{"regnet", chaincfg.RegNetParams(), 0x0e00670b},
	}
	for _, test := range tests {
		bi := blockchain.NewBlockIndex(test.params)
		genesis := bi.Tip()
		if err := ConnectStakeModifier(bi, genesis); err != nil {
			t.Errorf("%q: unexpected error: %v", test.name, err)
			continue
		}
		if genesis.StakeModifier != 0 || !genesis.GeneratedStakeModifier() {
			t.Errorf("%q: unexpected genesis modifier %016x", test.name,
				genesis.StakeModifier)
		}
		if genesis.StakeModifierChecksum != test.checksum {
			t.Errorf("%q: checksum %08x, want %08x", test.name,
				genesis.StakeModifierChecksum, test.checksum)
		}
		if got := StakeModifierChecksum(bi, genesis); got != test.checksum {
			t.Errorf("%q: recomputed checksum %08x", test.name, got)
		}
	}
}

// TestCheckStakeModifierCheckpoints ensures checksums are only compared at
// checkpointed heights and never on the test network.
func TestCheckStakeModifierCheckpoints(t *testing.T) {
	t.Parallel()

	mainNet := chaincfg.MainNetParams()
	testNet := chaincfg.TestNetParams()
	tests := []struct {
		name     string
		params   *chaincfg.Params
		height   int32
		checksum uint32
		want     bool
	}{
		{"mainnet genesis match", mainNet, 0, 0xfd11f4e7, true},
		{"mainnet genesis mismatch", mainNet, 0, 0xfd11f4e8, false},
		{"mainnet unchecked height", mainNet, 1, 0, true},
		{"testnet genesis mismatch", testNet, 0, 0xfd11f4e8, true},
	}
	for _, test := range tests {
		got := CheckStakeModifierCheckpoints(test.params, test.height,
			test.checksum)
		if got != test.want {
			t.Errorf("%q: got %v, want %v", test.name, got, test.want)
		}
	}
}

// TestConnectStakeModifierCheckpointMismatch ensures a block whose checksum
// differs from its checkpoint is rejected and keeps no checksum.
func TestConnectStakeModifierCheckpointMismatch(t *testing.T) {
	t.Parallel()

	params := testParams()
	params.StakeModifierCheckpoints = map[int32]uint32{
		0: 0x0e00670b,
		1: 0xdeadbeef,
	}
	bi := blockchain.NewBlockIndex(params)
	genesis := connectGenesis(t, bi)

	header := blockHeaderAt(genesis, regNetGenesisTime+60)
	node, err := bi.AddNode(fakeHash(0, 1), header, 0)
	if err != nil {
		t.Fatalf("unable to add block: %v", err)
	}
	err = ConnectStakeModifier(bi, node)
	if !errors.Is(err, ErrModifierCheckpoint) {
		t.Fatalf("unexpected error: %v", err)
	}
	var rerr RuleError
	if !errors.As(err, &rerr) {
		t.Fatalf("error is not a rule error: %T", err)
	}
	if node.StakeModifierChecksum != 0 {
		t.Fatalf("checksum %08x recorded for a rejected block",
			node.StakeModifierChecksum)
	}

	// Reconnecting computes the same modifier, so only the checkpoint
	// failure is reported again.
	if err := ConnectStakeModifier(bi, node); !errors.Is(err, ErrModifierCheckpoint) {
		t.Fatalf("unexpected error on reconnect: %v", err)
	}
}
