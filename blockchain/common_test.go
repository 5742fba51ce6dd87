// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/beetlecoin/beetled/wire"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// fakeHash returns a deterministic hash for the passed branch and height.
func fakeHash(branch byte, height int32) chainhash.Hash {
	var b [5]byte
	b[0] = branch
	binary.LittleEndian.PutUint32(b[1:], uint32(height))
	return chainhash.DoubleHashH(b[:])
}

// addFakeNode adds a node with the passed fields as a child of parent.
func addFakeNode(t *testing.T, bi *BlockIndex, parent *BlockNode, hash chainhash.Hash, timestamp int64, bits uint32, flags BlockFlags) *BlockNode {
	t.Helper()

	header := &wire.BlockHeader{
		Version:   4,
		PrevBlock: parent.Hash,
		Timestamp: time.Unix(timestamp, 0),
		Bits:      bits,
	}
	node, err := bi.AddNode(hash, header, flags)
	if err != nil {
		t.Fatalf("unable to add node at height %d: %v", parent.Height+1, err)
	}
	return node
}

// extendFakeChain extends the chain ending at tip by count blocks on the
// passed branch.  The time and bits of each block are derived from its height
// by the passed functions.  The new tip is returned and made the best chain
// tip.
func extendFakeChain(t *testing.T, bi *BlockIndex, tip *BlockNode, branch byte, count int32, timeAt func(int32) int64, bitsAt func(int32) uint32) *BlockNode {
	t.Helper()

	for i := int32(0); i < count; i++ {
		height := tip.Height + 1
		tip = addFakeNode(t, bi, tip, fakeHash(branch, height), timeAt(height),
			bitsAt(height), 0)
	}
	if err := bi.SetTip(tip); err != nil {
		t.Fatalf("unable to set tip: %v", err)
	}
	return tip
}
