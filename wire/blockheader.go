// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/binary"
	"io"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// ZerocoinHeaderVersion is the first block header version that commits to the
// zerocoin accumulator checkpoint and is identified by its double SHA-256
// hash.
const ZerocoinHeaderVersion = 4

// legacyHeaderPayload is the number of bytes of a block header before the
// accumulator checkpoint: version 4 bytes + timestamp 4 bytes + bits 4 bytes +
// nonce 4 bytes + PrevBlock and MerkleRoot hashes.
const legacyHeaderPayload = 16 + (chainhash.HashSize * 2)

// MaxBlockHeaderPayload is the maximum number of bytes a block header can be.
const MaxBlockHeaderPayload = legacyHeaderPayload + chainhash.HashSize

// LegacyHeaderHasher computes the identifying hash of headers with a version
// below ZerocoinHeaderVersion.  Those headers are identified by their Quark
// proof-of-work hash, which lives outside this package.  When it is nil, the
// double SHA-256 of the header is used.
var LegacyHeaderHasher func(header []byte) chainhash.Hash

// BlockHeader defines information about a block and is used in the block
// (MsgBlock) and headers messages.
type BlockHeader struct {
	// Version of the block.  This is not the same as the protocol version.
	Version int32

	// Hash of the previous block in the block chain.
	PrevBlock chainhash.Hash

	// Merkle tree reference to hash of all transactions for the block.
	MerkleRoot chainhash.Hash

	// Time the block was created.  This is, unfortunately, encoded as a
	// uint32 on the wire and therefore is limited to 2106.
	Timestamp time.Time

	// Difficulty target for the block.
	Bits uint32

	// Nonce used to generate the block.
	Nonce uint32

	// AccumulatorCheckpoint commits to the zerocoin accumulators.  It is
	// only serialized for versions >= ZerocoinHeaderVersion.
	AccumulatorCheckpoint chainhash.Hash
}

// BlockHash computes the block identifier hash for the given block header.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	buf := bytes.NewBuffer(make([]byte, 0, h.SerializeSize()))
	_ = h.Serialize(buf)
	if h.Version < ZerocoinHeaderVersion && LegacyHeaderHasher != nil {
		return LegacyHeaderHasher(buf.Bytes())
	}
	return chainhash.DoubleHashH(buf.Bytes())
}

// SerializeSize returns the number of bytes it would take to serialize the
// block header.
func (h *BlockHeader) SerializeSize() int {
	if h.Version < ZerocoinHeaderVersion {
		return legacyHeaderPayload
	}
	return MaxBlockHeaderPayload
}

// Serialize encodes a block header from r into the receiver using a format
// that is suitable for long-term storage such as a database.
func (h *BlockHeader) Serialize(w io.Writer) error {
	var buf [MaxBlockHeaderPayload]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(h.Version))
	copy(buf[4:36], h.PrevBlock[:])
	copy(buf[36:68], h.MerkleRoot[:])
	binary.LittleEndian.PutUint32(buf[68:72], uint32(h.Timestamp.Unix()))
	binary.LittleEndian.PutUint32(buf[72:76], h.Bits)
	binary.LittleEndian.PutUint32(buf[76:80], h.Nonce)
	n := legacyHeaderPayload
	if h.Version >= ZerocoinHeaderVersion {
		copy(buf[80:112], h.AccumulatorCheckpoint[:])
		n = MaxBlockHeaderPayload
	}
	_, err := w.Write(buf[:n])
	return err
}

// Deserialize decodes a block header from r into the receiver using a format
// that is suitable for long-term storage such as a database.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	var buf [MaxBlockHeaderPayload]byte
	if _, err := io.ReadFull(r, buf[:legacyHeaderPayload]); err != nil {
		return err
	}
	h.Version = int32(binary.LittleEndian.Uint32(buf[0:4]))
	copy(h.PrevBlock[:], buf[4:36])
	copy(h.MerkleRoot[:], buf[36:68])
	h.Timestamp = time.Unix(int64(binary.LittleEndian.Uint32(buf[68:72])), 0)
	h.Bits = binary.LittleEndian.Uint32(buf[72:76])
	h.Nonce = binary.LittleEndian.Uint32(buf[76:80])
	h.AccumulatorCheckpoint = chainhash.Hash{}
	if h.Version >= ZerocoinHeaderVersion {
		if _, err := io.ReadFull(r, buf[80:112]); err != nil {
			return err
		}
		copy(h.AccumulatorCheckpoint[:], buf[80:112])
	}
	return nil
}

// NewBlockHeader returns a new BlockHeader using the provided version, previous
// block hash, merkle root hash, difficulty bits, and nonce used to generate the
// block with defaults for the remaining fields.
func NewBlockHeader(version int32, prevHash, merkleRootHash *chainhash.Hash,
	bits uint32, nonce uint32) *BlockHeader {

	// Limit the timestamp to one second precision since the protocol
	// doesn't support better.
	return &BlockHeader{
		Version:    version,
		PrevBlock:  *prevHash,
		MerkleRoot: *merkleRootHash,
		Timestamp:  time.Unix(time.Now().Unix(), 0),
		Bits:       bits,
		Nonce:      nonce,
	}
}
