// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stake

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/beetlecoin/beetled/chaincfg"
	"github.com/beetlecoin/beetled/wire"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	btcwire "github.com/btcsuite/btcd/wire"
)

// confirmedTx is a transaction along with the block that confirmed it.
type confirmedTx struct {
	tx    *btcwire.MsgTx
	block chainhash.Hash
}

// fakeTxSource serves transactions from a map.
type fakeTxSource map[chainhash.Hash]confirmedTx

func (s fakeTxSource) FetchTransaction(hash *chainhash.Hash) (*btcwire.MsgTx, *chainhash.Hash, error) {
	entry, ok := s[*hash]
	if !ok {
		return nil, nil, errors.New("transaction not found")
	}
	return entry.tx, &entry.block, nil
}

// fakeVerifier returns a fixed script verification result.
type fakeVerifier struct {
	err error
}

func (v fakeVerifier) VerifyInput(*btcwire.MsgTx, int, *btcwire.TxOut) error {
	return v.err
}

// fakeZerocoinParser returns a fixed zerocoin spend.
type fakeZerocoinParser struct {
	spend *ZerocoinInput
}

func (p fakeZerocoinParser) ParseZerocoinSpend(*btcwire.TxIn) (*ZerocoinInput, error) {
	return p.spend, nil
}

// fakeAccumulators serves accumulator checkpoints from a map.
type fakeAccumulators map[chainhash.Hash]chainhash.Hash

func (a fakeAccumulators) AccumulatorCheckpoint(hash *chainhash.Hash) (chainhash.Hash, bool) {
	checkpoint, ok := a[*hash]
	return checkpoint, ok
}

// stakedTx returns the transaction whose first output is staked by the tests.
func stakedTx() *btcwire.MsgTx {
	tx := btcwire.NewMsgTx(1)
	tx.AddTxIn(&btcwire.TxIn{
		PreviousOutPoint: btcwire.OutPoint{Index: btcwire.MaxPrevOutIndex},
		SignatureScript:  []byte{0x51},
		Sequence:         btcwire.MaxTxInSequenceNum,
	})
	tx.AddTxOut(&btcwire.TxOut{Value: 2, PkScript: []byte{0x51}})
	return tx
}

// coinStakeBlock returns a block at the passed time whose coinstake spends
// the passed outpoint.
func coinStakeBlock(prevOut btcwire.OutPoint, timestamp int64, bits uint32, sigScript []byte) *wire.MsgBlock {
	coinbase := btcwire.NewMsgTx(1)
	coinbase.AddTxIn(&btcwire.TxIn{
		PreviousOutPoint: btcwire.OutPoint{Index: btcwire.MaxPrevOutIndex},
		SignatureScript:  []byte{0x01, 0x01},
	})
	coinbase.AddTxOut(&btcwire.TxOut{})

	coinStake := btcwire.NewMsgTx(1)
	coinStake.AddTxIn(&btcwire.TxIn{
		PreviousOutPoint: prevOut,
		SignatureScript:  sigScript,
	})
	coinStake.AddTxOut(&btcwire.TxOut{})
	coinStake.AddTxOut(&btcwire.TxOut{Value: 3, PkScript: []byte{0x51}})

	block := wire.NewMsgBlock(&wire.BlockHeader{
		Version:   wire.ZerocoinHeaderVersion,
		Timestamp: time.Unix(timestamp, 0),
		Bits:      bits,
	})
	block.AddTransaction(coinbase)
	block.AddTransaction(coinStake)
	return block
}

// TestCheckProofOfStake ensures coinstake kernels are resolved to their staked
// input and checked against the block target.
func TestCheckProofOfStake(t *testing.T) {
	t.Parallel()

	bi := buildChain(t, testParams(), 300, 60)
	tip := bi.Tip()
	origin := bi.NodeAtHeight(10)
	prevTx := stakedTx()
	prevHash := prevTx.TxHash()
	source := fakeTxSource{prevHash: {prevTx, origin.Hash}}

	checker := NewChecker(&Config{
		Index:          bi,
		TxSource:       source,
		ScriptVerifier: fakeVerifier{},
	})

	blockTime := int64(regNetGenesisTime + 301*60)
	block := coinStakeBlock(btcwire.OutPoint{Hash: prevHash}, blockTime,
		0x207fffff, []byte{0x51})
	hash, input, err := checker.CheckProofOfStake(block, tip)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	utxo, ok := input.(*UtxoInput)
	if !ok || utxo.PrevTx != prevTx || utxo.Index != 0 || utxo.BlockHash != origin.Hash {
		t.Fatalf("unexpected staked input %#v", input)
	}
	k := Kernel{
		Uniqueness:    utxo.Uniqueness(),
		Modifier:      tip.StakeModifier,
		BlockFromTime: origin.Time,
		TxTime:        blockTime,
	}
	if hash != k.Hash() {
		t.Fatalf("unexpected kernel hash %v", hash)
	}

	block.Header.Bits = 0x03000001
	if _, _, err := checker.CheckProofOfStake(block, tip); !errors.Is(err, ErrKernelHashHigh) {
		t.Fatalf("unexpected error for a tiny target: %v", err)
	}
}

// TestCheckProofOfStakeTimestamp ensures the kernel check leaves the coinstake
// timestamp rule to the caller.
func TestCheckProofOfStakeTimestamp(t *testing.T) {
	t.Parallel()

	bi := buildChain(t, testParams(), 300, 60)
	tip := bi.Tip()
	prevTx := stakedTx()
	prevHash := prevTx.TxHash()
	source := fakeTxSource{prevHash: {prevTx, bi.NodeAtHeight(10).Hash}}
	checker := NewChecker(&Config{
		Index:          bi,
		TxSource:       source,
		ScriptVerifier: fakeVerifier{},
	})

	blockTime := int64(regNetGenesisTime + 301*60)
	block := coinStakeBlock(btcwire.OutPoint{Hash: prevHash}, blockTime,
		0x207fffff, []byte{0x51})
	if _, _, err := checker.CheckProofOfStake(block, tip); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		txTime int64
		want   bool
	}{
		{"matching", blockTime, true},
		{"later coinstake", blockTime + 1, false},
		{"earlier coinstake", blockTime - 1, false},
	}
	headerTime := block.Header.Timestamp.Unix()
	for _, test := range tests {
		if got := CheckCoinStakeTimestamp(headerTime, test.txTime); got != test.want {
			t.Errorf("%s: got %v, want %v", test.name, got, test.want)
		}
	}
}

// TestCheckProofOfStakeErrors ensures malformed or unverifiable coinstakes
// are rejected with the expected error kind.
func TestCheckProofOfStakeErrors(t *testing.T) {
	t.Parallel()

	bi := buildChain(t, testParams(), 20, 60)
	tip := bi.Tip()
	prevTx := stakedTx()
	prevHash := prevTx.TxHash()
	unknownBlockTx := stakedTx()
	unknownBlockTx.LockTime = 1
	source := fakeTxSource{
		prevHash:                {prevTx, bi.NodeAtHeight(5).Hash},
		unknownBlockTx.TxHash(): {unknownBlockTx, fakeHash(9, 9)},
	}

	zerocoinSig := []byte{wire.OpZerocoinSpend, 0x01}
	blockTime := tip.Time + 60
	tests := []struct {
		name   string
		block  *wire.MsgBlock
		config Config
		err    error
	}{{
		name: "no coinstake",
		block: func() *wire.MsgBlock {
			b := coinStakeBlock(btcwire.OutPoint{Hash: prevHash}, blockTime,
				0x207fffff, nil)
			b.Transactions = b.Transactions[:1]
			return b
		}(),
		err: ErrNotCoinStake,
	}, {
		name: "missing staked transaction",
		block: coinStakeBlock(btcwire.OutPoint{Hash: fakeHash(8, 8)},
			blockTime, 0x207fffff, nil),
		err: ErrMissingStakeTx,
	}, {
		name: "missing staked output",
		block: coinStakeBlock(btcwire.OutPoint{Hash: prevHash, Index: 1},
			blockTime, 0x207fffff, nil),
		err: ErrMissingStakeTx,
	}, {
		name: "bad signature",
		block: coinStakeBlock(btcwire.OutPoint{Hash: prevHash}, blockTime,
			0x207fffff, nil),
		config: Config{ScriptVerifier: fakeVerifier{err: errors.New("bad sig")}},
		err:    ErrBadStakeScript,
	}, {
		name: "unknown origin block",
		block: coinStakeBlock(btcwire.OutPoint{Hash: unknownBlockTx.TxHash()},
			blockTime, 0x207fffff, nil),
		err: ErrMissingStakeOrigin,
	}, {
		name:  "zerocoin without parser",
		block: coinStakeBlock(btcwire.OutPoint{}, blockTime, 0x207fffff, zerocoinSig),
		err:   ErrWrongSpendType,
	}, {
		name:  "zerocoin spend type",
		block: coinStakeBlock(btcwire.OutPoint{}, blockTime, 0x207fffff, zerocoinSig),
		config: Config{ZerocoinParser: fakeZerocoinParser{
			spend: &ZerocoinInput{SpendType: SpendTypeSpend},
		}},
		err: ErrWrongSpendType,
	}}

	for _, test := range tests {
		cfg := test.config
		cfg.Index = bi
		cfg.TxSource = source
		if cfg.ScriptVerifier == nil {
			cfg.ScriptVerifier = fakeVerifier{}
		}
		_, _, err := NewChecker(&cfg).CheckProofOfStake(test.block, tip)
		if !errors.Is(err, test.err) {
			t.Errorf("%q: unexpected error: got %v, want %v", test.name, err,
				test.err)
		}
	}
}

// TestUtxoInput ensures staked outputs are identified by their index and
// transaction hash.
func TestUtxoInput(t *testing.T) {
	t.Parallel()

	tx := stakedTx()
	in := &UtxoInput{PrevTx: tx, Index: 0}
	uniqueness := in.Uniqueness()
	txHash := tx.TxHash()
	if len(uniqueness) != 36 || binary.LittleEndian.Uint32(uniqueness) != 0 ||
		!bytes.Equal(uniqueness[4:], txHash[:]) {

		t.Fatalf("unexpected uniqueness %x", uniqueness)
	}
	if in.Value() != 2 {
		t.Fatalf("unexpected value %d", in.Value())
	}
	in.Index = 3
	if in.Value() != 0 {
		t.Fatalf("unexpected value %d for a missing output", in.Value())
	}
}

// TestZerocoinInput ensures zerocoin stakes hash with the accumulator
// checkpoint of the first block more than an hour after their origin.
func TestZerocoinInput(t *testing.T) {
	t.Parallel()

	bi := buildChain(t, testParams(), 30, 600)
	origin := bi.NodeAtHeight(10)
	modifierBlock := bi.NodeAtHeight(17)

	var checkpoint chainhash.Hash
	binary.LittleEndian.PutUint64(checkpoint[:], 0x1122334455667788)
	accumulators := fakeAccumulators{
		bi.NodeAtHeight(16).Hash: fakeHash(1, 16),
		modifierBlock.Hash:       checkpoint,
	}
	in := &ZerocoinInput{
		Serial:          []byte{0x01, 0x02},
		Denomination:    5,
		SpendType:       SpendTypeStake,
		CheckpointBlock: origin.Hash,
		Accumulators:    accumulators,
	}

	serialHash := chainhash.DoubleHashH(in.Serial)
	if !bytes.Equal(in.Uniqueness(), serialHash[:]) {
		t.Fatalf("unexpected uniqueness %x", in.Uniqueness())
	}
	if in.Value() != 5*chaincfg.AtomsPerCoin {
		t.Fatalf("unexpected value %d", in.Value())
	}
	if in.IndexFrom(bi) != origin {
		t.Fatal("unexpected origin block")
	}
	modifier, err := in.Modifier(bi)
	if err != nil || modifier != 0x1122334455667788 {
		t.Fatalf("unexpected modifier %016x: %v", modifier, err)
	}

	delete(accumulators, modifierBlock.Hash)
	if _, err := in.Modifier(bi); !errors.Is(err, ErrKernelModifier) {
		t.Fatalf("unexpected error without a checkpoint: %v", err)
	}
	in.CheckpointBlock = fakeHash(9, 9)
	if _, err := in.Modifier(bi); !errors.Is(err, ErrMissingStakeOrigin) {
		t.Fatalf("unexpected error for an unknown origin: %v", err)
	}
}
