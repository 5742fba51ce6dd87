// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stake

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/beetlecoin/beetled/blockchain"
	"github.com/beetlecoin/beetled/chaincfg"
	"github.com/beetlecoin/beetled/wire"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// regNetGenesisTime is the timestamp of the regression test network genesis
// block.  It is a multiple of the regression test modifier interval.
const regNetGenesisTime = 1515524400

// testParams returns regression test network parameters with the modifier
// upgrade moved to height 50 so chains built by the tests cover both
// selection regimes.
func testParams() *chaincfg.Params {
	params := chaincfg.RegNetParams()
	params.ModifierUpgradeHeight = 50
	return params
}

// fakeHash returns a deterministic hash for the passed branch and height.
func fakeHash(branch byte, height int32) chainhash.Hash {
	var b [5]byte
	b[0] = branch
	binary.LittleEndian.PutUint32(b[1:], uint32(height))
	return chainhash.DoubleHashH(b[:])
}

// fakeProofOfStake is the block type pattern of the chains built by the tests.
func fakeProofOfStake(height int32) bool {
	return height > 5 && height%3 != 0
}

// connectGenesis assigns the stake modifier of the genesis block.
func connectGenesis(t *testing.T, bi *blockchain.BlockIndex) *blockchain.BlockNode {
	t.Helper()

	genesis := bi.Tip()
	if err := ConnectStakeModifier(bi, genesis); err != nil {
		t.Fatalf("unable to connect genesis modifier: %v", err)
	}
	return genesis
}

// blockHeaderAt returns a header building on parent with the passed time.
func blockHeaderAt(parent *blockchain.BlockNode, timestamp int64) *wire.BlockHeader {
	return &wire.BlockHeader{
		Version:   wire.ZerocoinHeaderVersion,
		PrevBlock: parent.Hash,
		Timestamp: time.Unix(timestamp, 0),
		Bits:      parent.Bits,
	}
}

// addBlock adds a block with the passed time on top of parent, connects its
// stake modifier and makes it the best chain tip.
func addBlock(t *testing.T, bi *blockchain.BlockIndex, parent *blockchain.BlockNode, timestamp int64, pos bool) *blockchain.BlockNode {
	t.Helper()

	height := parent.Height + 1
	header := blockHeaderAt(parent, timestamp)
	var flags blockchain.BlockFlags
	if pos {
		flags = blockchain.FlagProofOfStake
	}
	node, err := bi.AddNode(fakeHash(0, height), header, flags)
	if err != nil {
		t.Fatalf("unable to add block %d: %v", height, err)
	}
	if err := ConnectStakeModifier(bi, node); err != nil {
		t.Fatalf("unable to connect modifier of block %d: %v", height, err)
	}
	if err := bi.SetTip(node); err != nil {
		t.Fatalf("unable to set tip %d: %v", height, err)
	}
	return node
}

// buildChain returns a block index for params holding count blocks after the
// genesis block, spaced by the passed number of seconds.
func buildChain(t *testing.T, params *chaincfg.Params, count int32, spacing int64) *blockchain.BlockIndex {
	t.Helper()

	bi := blockchain.NewBlockIndex(params)
	tip := connectGenesis(t, bi)
	genesisTime := tip.Time
	for height := int32(1); height <= count; height++ {
		tip = addBlock(t, bi, tip, genesisTime+spacing*int64(height),
			fakeProofOfStake(height))
	}
	return bi
}
