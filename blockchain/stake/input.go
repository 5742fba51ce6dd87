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
	btcwire "github.com/btcsuite/btcd/wire"
)

// Input is a coin staked by a coinstake kernel.
type Input interface {
	// Uniqueness returns the bytes that identify the staked coin in the
	// kernel hash.
	Uniqueness() []byte

	// Value returns the staked amount in atoms.
	Value() int64

	// IndexFrom returns the block the staked coin originates from, or nil
	// when it is not part of the index.
	IndexFrom(bi *blockchain.BlockIndex) *blockchain.BlockNode

	// Modifier returns the stake modifier the coin hashes with before the
	// second fork.
	Modifier(bi *blockchain.BlockIndex) (uint64, error)
}

// UtxoInput is a staked transaction output.
type UtxoInput struct {
	// PrevTx is the transaction holding the staked output and BlockHash
	// the block that confirmed it.
	PrevTx    *btcwire.MsgTx
	Index     uint32
	BlockHash chainhash.Hash
}

// Uniqueness returns the output index followed by the transaction hash.
func (in *UtxoInput) Uniqueness() []byte {
	txHash := in.PrevTx.TxHash()
	b := make([]byte, 4, 4+chainhash.HashSize)
	binary.LittleEndian.PutUint32(b, in.Index)
	return append(b, txHash[:]...)
}

// Value returns the amount of the staked output.
func (in *UtxoInput) Value() int64 {
	if int(in.Index) >= len(in.PrevTx.TxOut) {
		return 0
	}
	return in.PrevTx.TxOut[in.Index].Value
}

// IndexFrom returns the block that confirmed the staked output.
func (in *UtxoInput) IndexFrom(bi *blockchain.BlockIndex) *blockchain.BlockNode {
	return bi.LookupNode(&in.BlockHash)
}

// Modifier returns the kernel stake modifier selected forward from the block
// that confirmed the staked output.
func (in *UtxoInput) Modifier(bi *blockchain.BlockIndex) (uint64, error) {
	modifier, _, _, err := GetKernelStakeModifier(bi, &in.BlockHash)
	return modifier, err
}

// SpendType is the purpose a zerocoin spend commits to.
type SpendType uint8

// The zerocoin spend types.
const (
	SpendTypeSpend SpendType = iota
	SpendTypeStake
	SpendTypeMasternodeCollateral
	SpendTypeSignMessage
)

// AccumulatorSource returns the accumulator checkpoint committed to by a
// block header.
type AccumulatorSource interface {
	AccumulatorCheckpoint(hash *chainhash.Hash) (chainhash.Hash, bool)
}

// zerocoinModifierAge is how much younger than the origin block the block
// providing a zerocoin stake modifier must be, in seconds.
const zerocoinModifierAge = 60 * 60

// ZerocoinInput is a staked zerocoin, identified by the serial it reveals.
type ZerocoinInput struct {
	Serial       []byte
	Denomination int64 // in whole coins
	Version      uint8
	SpendType    SpendType

	// CheckpointBlock is the block whose accumulator checkpoint the spend
	// proves membership against.
	CheckpointBlock chainhash.Hash

	Accumulators AccumulatorSource
}

// Uniqueness returns the double SHA-256 of the serial.
func (in *ZerocoinInput) Uniqueness() []byte {
	hash := chainhash.DoubleHashH(in.Serial)
	return hash[:]
}

// Value returns the denomination in atoms.
func (in *ZerocoinInput) Value() int64 {
	return in.Denomination * chaincfg.AtomsPerCoin
}

// IndexFrom returns the block of the accumulator checkpoint.
func (in *ZerocoinInput) IndexFrom(bi *blockchain.BlockIndex) *blockchain.BlockNode {
	return bi.LookupNode(&in.CheckpointBlock)
}

// Modifier returns the low 64 bits of the accumulator checkpoint of the first
// best chain block more than an hour younger than the origin block.
func (in *ZerocoinInput) Modifier(bi *blockchain.BlockIndex) (uint64, error) {
	from := in.IndexFrom(bi)
	if from == nil {
		return 0, stakeRuleError(ErrMissingStakeOrigin,
			"zerocoin stake origin is not indexed")
	}
	for node := from; node != nil; node = bi.Next(node) {
		if node.Time-from.Time <= zerocoinModifierAge {
			continue
		}
		checkpoint, ok := in.Accumulators.AccumulatorCheckpoint(&node.Hash)
		if !ok {
			break
		}
		return binary.LittleEndian.Uint64(checkpoint[:8]), nil
	}
	str := fmt.Sprintf("no accumulator checkpoint an hour after block %v", from)
	return 0, stakeRuleError(ErrKernelModifier, str)
}
