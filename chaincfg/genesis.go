// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2018 The Decred developers
// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"time"

	"github.com/beetlecoin/beetled/wire"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	btcwire "github.com/btcsuite/btcd/wire"
)

// genesisTimestamp is the text committed to by the genesis coinbase.
const genesisTimestamp = "Any foolish boy can stamp on a beetle, but all " +
	"the professors in the world cannot make a beetle"

// genesisPubKey is the uncompressed public key paid by the genesis coinbase.
var genesisPubKey = hexDecode("040f54c5893d68f990bdba4c5b9bc8f9eae59bb6df5ec" +
	"b1fde548446e2292a9b514915ba867b8a9edcdced258ba8d16c3cdaf274d8896a645088f" +
	"d86e4d75112d9")

// genesisCoinbaseTx returns the coinbase transaction of the genesis block
// shared by every network.  Its outputs can never be spent.
func genesisCoinbaseTx() *btcwire.MsgTx {
	// The signature script pushes the compact difficulty one bits, the
	// number 4 as a one byte push and the timestamp text.  The small number
	// is not minimally encoded, so the script is assembled by hand.
	sigScript := []byte{
		0x04, 0xff, 0xff, 0x00, 0x1d, // 486604799
		0x01, 0x04, // 4
		txscript.OP_PUSHDATA1, byte(len(genesisTimestamp)),
	}
	sigScript = append(sigScript, genesisTimestamp...)

	pkScript, err := txscript.NewScriptBuilder().AddData(genesisPubKey).
		AddOp(txscript.OP_CHECKSIG).Script()
	if err != nil {
		panic(err)
	}

	return &btcwire.MsgTx{
		Version: 1,
		TxIn: []*btcwire.TxIn{{
			PreviousOutPoint: btcwire.OutPoint{
				Hash:  chainhash.Hash{},
				Index: 0xffffffff,
			},
			SignatureScript: sigScript,
			Sequence:        0xffffffff,
		}},
		TxOut: []*btcwire.TxOut{{
			Value:    1 * AtomsPerCoin,
			PkScript: pkScript,
		}},
		LockTime: 0,
	}
}

// newGenesisBlock returns a genesis block with the shared coinbase and the
// provided header fields.
func newGenesisBlock(timestamp int64, bits, nonce uint32) *wire.MsgBlock {
	block := &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:   1,
			PrevBlock: chainhash.Hash{}, // All zero.
			// MerkleRoot: Calculated below.
			Timestamp: time.Unix(timestamp, 0),
			Bits:      bits,
			Nonce:     nonce,
		},
		Transactions: []*btcwire.MsgTx{genesisCoinbaseTx()},
	}
	block.Header.MerkleRoot = block.CalcMerkleRoot()
	return block
}
