// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2019 The Decred developers
// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	btcwire "github.com/btcsuite/btcd/wire"
)

// maxTxPerBlock is the maximum number of transactions that could possibly fit
// into a block.
const maxTxPerBlock = (btcwire.MaxBlockPayload / 10) + 1

// maxBlockSigSize is the maximum size of the block signature carried by
// proof-of-stake blocks.
const maxBlockSigSize = 128

// MsgBlock represents a block: a header, its transactions and, for
// proof-of-stake blocks, the staker's signature over the block hash.
type MsgBlock struct {
	Header       BlockHeader
	Transactions []*btcwire.MsgTx
	Signature    []byte
}

// AddTransaction adds a transaction to the message.
func (msg *MsgBlock) AddTransaction(tx *btcwire.MsgTx) {
	msg.Transactions = append(msg.Transactions, tx)
}

// BlockHash computes the block identifier hash for this block.
func (msg *MsgBlock) BlockHash() chainhash.Hash {
	return msg.Header.BlockHash()
}

// IsProofOfStake returns whether the second transaction of the block is a
// coinstake.
func (msg *MsgBlock) IsProofOfStake() bool {
	return len(msg.Transactions) > 1 && IsCoinStake(msg.Transactions[1])
}

// PaymentTx returns the transaction that carries the block reward outputs:
// the coinstake for proof-of-stake blocks and the coinbase otherwise.
func (msg *MsgBlock) PaymentTx() *btcwire.MsgTx {
	if msg.IsProofOfStake() {
		return msg.Transactions[1]
	}
	if len(msg.Transactions) == 0 {
		return nil
	}
	return msg.Transactions[0]
}

// CalcMerkleRoot computes the merkle root of the block transactions.
func (msg *MsgBlock) CalcMerkleRoot() chainhash.Hash {
	txns := make([]*btcutil.Tx, 0, len(msg.Transactions))
	for _, tx := range msg.Transactions {
		txns = append(txns, btcutil.NewTx(tx))
	}
	return blockchain.CalcMerkleRoot(txns, false)
}

// Serialize encodes the block to w.
func (msg *MsgBlock) Serialize(w io.Writer) error {
	if err := msg.Header.Serialize(w); err != nil {
		return err
	}
	err := btcwire.WriteVarInt(w, 0, uint64(len(msg.Transactions)))
	if err != nil {
		return err
	}
	for _, tx := range msg.Transactions {
		if err := tx.SerializeNoWitness(w); err != nil {
			return err
		}
	}
	if msg.IsProofOfStake() {
		return btcwire.WriteVarBytes(w, 0, msg.Signature)
	}
	return nil
}

// Deserialize decodes a block from r into the receiver.
func (msg *MsgBlock) Deserialize(r io.Reader) error {
	const op = "MsgBlock.Deserialize"
	if err := msg.Header.Deserialize(r); err != nil {
		return err
	}
	txCount, err := btcwire.ReadVarInt(r, 0)
	if err != nil {
		return err
	}
	if txCount > maxTxPerBlock {
		str := fmt.Sprintf("too many transactions to fit into a block "+
			"[count %d, max %d]", txCount, maxTxPerBlock)
		return messageError(op, ErrTooManyTxs, str)
	}
	msg.Transactions = make([]*btcwire.MsgTx, 0, txCount)
	for i := uint64(0); i < txCount; i++ {
		tx := new(btcwire.MsgTx)
		if err := tx.DeserializeNoWitness(r); err != nil {
			return err
		}
		msg.Transactions = append(msg.Transactions, tx)
	}
	msg.Signature = nil
	if msg.IsProofOfStake() {
		msg.Signature, err = btcwire.ReadVarBytes(r, 0, maxBlockSigSize,
			"block signature")
		if err != nil {
			return err
		}
	}
	return nil
}

// Bytes returns the serialized block.
func (msg *MsgBlock) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := msg.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewMsgBlock returns a new block message that conforms to the Message
// interface.  See MsgBlock for details.
func NewMsgBlock(blockHeader *BlockHeader) *MsgBlock {
	return &MsgBlock{
		Header:       *blockHeader,
		Transactions: make([]*btcwire.MsgTx, 0, 2),
	}
}
