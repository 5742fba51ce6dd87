// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stake

import (
	"encoding/binary"
	"fmt"

	"github.com/beetlecoin/beetled/blockchain"
	"github.com/beetlecoin/beetled/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// StakeModifierChecksum returns the stake modifier checksum of node: the top
// 32 bits of the double SHA-256 of the parent checksum, the block flags, the
// proof hash and the stake modifier.  The genesis block has no parent
// checksum.
func StakeModifierChecksum(bi *blockchain.BlockIndex, node *blockchain.BlockNode) uint32 {
	var buf [4 + 4 + chainhash.HashSize + 8]byte
	b := buf[:0]
	if parent := bi.Parent(node); parent != nil {
		b = binary.LittleEndian.AppendUint32(b, parent.StakeModifierChecksum)
	}
	b = binary.LittleEndian.AppendUint32(b, uint32(node.Flags))
	b = append(b, node.ProofHash[:]...)
	b = binary.LittleEndian.AppendUint64(b, node.StakeModifier)

	hash := chainhash.DoubleHashH(b)
	return binary.LittleEndian.Uint32(hash[chainhash.HashSize-4:])
}

// CheckStakeModifierCheckpoints returns whether the checksum matches the hard
// checkpoint of the network at the given height.  Heights without a
// checkpoint always match.
func CheckStakeModifierCheckpoints(params *chaincfg.Params, height int32, checksum uint32) bool {
	if params.SkipStakeModifierCheckpoints {
		return true
	}
	if want, ok := params.StakeModifierCheckpoints[height]; ok {
		return checksum == want
	}
	return true
}

// ConnectStakeModifier computes the stake modifier of node from its parent,
// records it together with the resulting checksum and enforces the modifier
// checkpoints.  The modifier of a block never changes once assigned.
func ConnectStakeModifier(bi *blockchain.BlockIndex, node *blockchain.BlockNode) error {
	modifier, generated, err := ComputeNextStakeModifier(bi, bi.Parent(node))
	if err != nil {
		return err
	}
	if err := bi.SetStakeModifier(node, modifier, generated); err != nil {
		return err
	}

	checksum := StakeModifierChecksum(bi, node)
	if !CheckStakeModifierCheckpoints(bi.Params(), node.Height, checksum) {
		str := fmt.Sprintf("stake modifier checksum %08x of block %v does "+
			"not match its checkpoint", checksum, node)
		return stakeRuleError(ErrModifierCheckpoint, str)
	}
	bi.SetStakeModifierChecksum(node, checksum)
	return nil
}
