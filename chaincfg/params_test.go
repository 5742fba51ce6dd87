// Copyright (c) 2016 The btcsuite developers
// Copyright (c) 2016-2019 The Decred developers
// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"bytes"
	"encoding/hex"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// TestPowLimits ensures the proof of work limits of every network have the
// expected compact form.
func TestPowLimits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params *Params
		bits   uint32
	}{
		{"mainnet", MainNetParams(), 0x1e0fffff},
		{"testnet", TestNetParams(), 0x1f0fffff},
		{"regnet", RegNetParams(), 0x207fffff},
		{"unittest", UnitTestParams().Params, 0x1e0fffff},
	}

	for _, test := range tests {
		if test.params.PowLimitBits != test.bits {
			t.Errorf("%s: unexpected pow limit bits - got %08x, want %08x",
				test.name, test.params.PowLimitBits, test.bits)
		}
	}
}

// TestParamsForNet ensures every network tag maps to the matching preset and
// that each call returns an independent value.
func TestParamsForNet(t *testing.T) {
	t.Parallel()

	for _, net := range []NetworkTag{NetMain, NetTestNet, NetRegTest, NetUnitTest} {
		params := ParamsForNet(net)
		if params == nil {
			t.Fatalf("%v: no params", net)
		}
		if params.ID != net || params.Name != net.String() {
			t.Fatalf("%v: unexpected params %s (%v)", net, params.Name,
				params.ID)
		}

		other := ParamsForNet(net)
		other.MaxReorgDepth = 1
		if params.MaxReorgDepth == 1 {
			t.Fatalf("%v: presets share state", net)
		}
	}
	if ParamsForNet(NetworkTag(99)) != nil {
		t.Fatal("unknown network tag returned params")
	}
	if got := NetworkTag(99).String(); got != "Unknown NetworkTag (99)" {
		t.Fatalf("unexpected unknown tag string %q", got)
	}
}

// TestCheckpoints ensures the checkpoint lookups behave as expected.
func TestCheckpoints(t *testing.T) {
	t.Parallel()

	mainNet := MainNetParams()
	if len(mainNet.Checkpoints) != 29 {
		t.Fatalf("unexpected number of main checkpoints %d",
			len(mainNet.Checkpoints))
	}
	for i := 1; i < len(mainNet.Checkpoints); i++ {
		if mainNet.Checkpoints[i].Height <= mainNet.Checkpoints[i-1].Height {
			t.Fatalf("checkpoint %d is out of order", i)
		}
	}

	tests := []struct {
		name   string
		params *Params
		height int32
		want   string
	}{
		{"main genesis", mainNet, 0, mainNet.GenesisHash.String()},
		{"main 550000", mainNet, 550000, "fdc92657576685dc03016cc371c2099f5c791efcf883a39bf5fe5e38009fb969"},
		{"main last", mainNet, 772788, "164329851730c601db13f43cc9f55e59de94997bc96533c055150dcd50b71522"},
		{"main missing", mainNet, 550001, ""},
		{"main beyond", mainNet, 900000, ""},
		{"testnet genesis", TestNetParams(), 0, "0000000000000000000000000000000000000000000000000000000000000001"},
		{"regnet missing", RegNetParams(), 1, ""},
	}

	for _, test := range tests {
		hash := test.params.CheckpointAt(test.height)
		switch {
		case test.want == "" && hash != nil:
			t.Errorf("%s: unexpected checkpoint %v", test.name, hash)
		case test.want != "" && (hash == nil || hash.String() != test.want):
			t.Errorf("%s: checkpoint mismatch - got %v, want %s", test.name,
				hash, test.want)
		}
	}

	latest := mainNet.LatestCheckpoint()
	if latest == nil || latest.Height != 772788 {
		t.Fatalf("unexpected latest checkpoint %v", spew.Sdump(latest))
	}
	if (&Params{}).LatestCheckpoint() != nil {
		t.Fatal("latest checkpoint of an empty table is not nil")
	}
}

// TestTreasuryScript ensures the treasury address decodes into the expected
// output script and that malformed or foreign addresses are rejected.
func TestTreasuryScript(t *testing.T) {
	t.Parallel()

	mainNet := MainNetParams()
	testNet := TestNetParams()

	tests := []struct {
		name    string
		params  *Params
		addr    string
		want    string
		wantErr bool
	}{{
		name:   "main treasury p2pkh",
		params: mainNet,
		addr:   mainNet.TreasuryAddress,
		want:   "76a914fd96754e823000ef4a9d2a9ed0cb48425cf2847788ac",
	}, {
		name:   "testnet treasury p2pkh",
		params: testNet,
		addr:   testNet.TreasuryAddress,
		want:   "76a914c57b04cb067c68d1300953ec83846e45618a4d5588ac",
	}, {
		name:   "main p2sh",
		params: mainNet,
		addr:   "bCpbnCkrjoJ6EHXtLx9eASHEbFYyikt35C",
		want:   "a9140102030405060708090a0b0c0d0e0f101112131487",
	}, {
		name:    "testnet address on main",
		params:  mainNet,
		addr:    "xw5Ax4rR5YKQPh4Zfc8rMCyiaVTv3YVAKf",
		wantErr: true,
	}, {
		name:    "bad checksum",
		params:  mainNet,
		addr:    "XaU63hVi3dPzCcgXMzbFWbqmSCvzcysgnD",
		wantErr: true,
	}}

	for _, test := range tests {
		script, err := test.params.PayToAddrScript(test.addr)
		if test.wantErr {
			if err == nil {
				t.Errorf("%s: expected error, got script %x", test.name,
					script)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		want, _ := hex.DecodeString(test.want)
		if !bytes.Equal(script, want) {
			t.Errorf("%s: script mismatch - got %x, want %x", test.name,
				script, want)
		}
	}

	script, err := mainNet.TreasuryScriptAt(mainNet.TreasuryStartHeight)
	if err != nil {
		t.Fatalf("TreasuryScriptAt: %v", err)
	}
	if got := hex.EncodeToString(script); got != tests[0].want {
		t.Fatalf("TreasuryScriptAt: got %s, want %s", got, tests[0].want)
	}
}

// TestIsTreasuryBlock ensures treasury blocks are scheduled from the start
// height at the configured step.
func TestIsTreasuryBlock(t *testing.T) {
	t.Parallel()

	mainNet := MainNetParams()
	testNet := TestNetParams()

	tests := []struct {
		name   string
		params *Params
		height int64
		want   bool
	}{
		{"main before start", mainNet, 344999, false},
		{"main start", mainNet, 345000, true},
		{"main off step", mainNet, 345001, false},
		{"main next step", mainNet, 346440, true},
		{"testnet start", testNet, 10, true},
		{"testnet step", testNet, 30, true},
		{"testnet off step", testNet, 31, false},
		{"disabled", &Params{TreasuryStartHeight: -1, TreasuryBlockStep: 20}, 40, false},
		{"zero step", &Params{TreasuryStartHeight: 0}, 0, false},
	}

	for _, test := range tests {
		if got := test.params.IsTreasuryBlock(test.height); got != test.want {
			t.Errorf("%s: got %v, want %v", test.name, got, test.want)
		}
	}
}

// TestZerocoinParams ensures both accumulator moduli decode and are memoised.
func TestZerocoinParams(t *testing.T) {
	t.Parallel()

	params := MainNetParams()
	v2 := params.ZerocoinParams(false)
	if v2.Modulus.BitLen() != 2048 {
		t.Fatalf("unexpected v2 modulus size %d", v2.Modulus.BitLen())
	}
	v1 := params.ZerocoinParams(true)
	if v1.Modulus.BitLen() != 2466 {
		t.Fatalf("unexpected v1 modulus size %d", v1.Modulus.BitLen())
	}
	if v1.SecurityLevel != 100 || v2.SecurityLevel != 100 {
		t.Fatalf("unexpected security levels %d %d", v1.SecurityLevel,
			v2.SecurityLevel)
	}
	if params.ZerocoinParams(false) != v2 || params.ZerocoinParams(true) != v1 {
		t.Fatal("zerocoin params are not memoised")
	}
}

// TestModifiableParams ensures the unit test setters only affect the unit
// test parameters they were called on.
func TestModifiableParams(t *testing.T) {
	t.Parallel()

	params := UnitTestParams()
	if params.DefaultPort != "51478" || params.MiningRequiresPeers ||
		!params.DefaultConsistencyChecks || params.AllowMinDifficultyBlocks ||
		!params.MineBlocksOnDemand || len(params.DNSSeeds) != 0 {

		t.Fatalf("unexpected unit test params: %v", spew.Sdump(params.Name,
			params.DefaultPort, params.DNSSeeds))
	}

	params.SetEnforceBlockUpgradeMajority(1)
	params.SetRejectBlockOutdatedMajority(2)
	params.SetToCheckBlockUpgradeMajority(3)
	params.SetDefaultConsistencyChecks(false)
	params.SetAllowMinDifficultyBlocks(true)
	params.SetSkipProofOfWorkCheck(true)

	if params.EnforceBlockUpgradeMajority != 1 ||
		params.RejectBlockOutdatedMajority != 2 ||
		params.ToCheckBlockUpgradeMajority != 3 ||
		params.DefaultConsistencyChecks || !params.AllowMinDifficultyBlocks ||
		!params.SkipProofOfWorkCheck {

		t.Fatal("setters did not update the unit test params")
	}

	fresh := UnitTestParams()
	if fresh.SkipProofOfWorkCheck || fresh.EnforceBlockUpgradeMajority != 7560 {
		t.Fatal("setters leaked into a fresh unit test params value")
	}
}

// TestFixedSeedAddrs ensures fixed seeds convert into addresses last seen one
// to two weeks ago.
func TestFixedSeedAddrs(t *testing.T) {
	t.Parallel()

	now := time.Unix(1700000000, 0)
	params := TestNetParams()
	addrs := params.FixedSeedAddrs(now)
	if len(addrs) != len(params.FixedSeeds) {
		t.Fatalf("unexpected number of addresses %d", len(addrs))
	}
	for i, addr := range addrs {
		if addr.Port != 51434 {
			t.Fatalf("#%d: unexpected port %d", i, addr.Port)
		}
		if addr.IP.To4() == nil {
			t.Fatalf("#%d: %v is not an IPv4 address", i, addr.IP)
		}
		age := now.Sub(addr.Timestamp)
		if age < oneWeek || age > 2*oneWeek {
			t.Fatalf("#%d: unexpected age %v", i, age)
		}
	}
	if got := addrs[0].IP.String(); got != "45.76.61.28" {
		t.Fatalf("unexpected first seed %s", got)
	}

	if addrs := MainNetParams().FixedSeedAddrs(now); len(addrs) != 0 {
		t.Fatalf("unexpected main fixed seeds %v", addrs)
	}
}
