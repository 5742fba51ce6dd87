// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stake

import (
	"fmt"

	"github.com/beetlecoin/beetled/blockchain"
	"github.com/beetlecoin/beetled/blockchain/standalone"
	"github.com/beetlecoin/beetled/chaincfg"
	"github.com/beetlecoin/beetled/wire"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	btcwire "github.com/btcsuite/btcd/wire"
)

// TxSource looks up confirmed transactions.
type TxSource interface {
	// FetchTransaction returns the transaction with the given hash and the
	// hash of the block that confirmed it.
	FetchTransaction(hash *chainhash.Hash) (*btcwire.MsgTx, *chainhash.Hash, error)
}

// ScriptVerifier verifies that an input of a transaction satisfies the script
// of the output it spends.
type ScriptVerifier interface {
	VerifyInput(tx *btcwire.MsgTx, inputIndex int, prevOut *btcwire.TxOut) error
}

// ZerocoinSpendParser decodes the zerocoin spend carried by a coinstake input.
type ZerocoinSpendParser interface {
	ParseZerocoinSpend(txIn *btcwire.TxIn) (*ZerocoinInput, error)
}

// TxScriptVerifier is a ScriptVerifier running the btcd script engine with
// the standard verification flags.
type TxScriptVerifier struct {
	SigCache *txscript.SigCache
}

// VerifyInput executes the signature script of the input against the public
// key script of the spent output.
func (v TxScriptVerifier) VerifyInput(tx *btcwire.MsgTx, inputIndex int, prevOut *btcwire.TxOut) error {
	fetcher := txscript.NewCannedPrevOutputFetcher(prevOut.PkScript,
		prevOut.Value)
	sigHashes := txscript.NewTxSigHashes(tx, fetcher)
	vm, err := txscript.NewEngine(prevOut.PkScript, tx, inputIndex,
		txscript.StandardVerifyFlags, v.SigCache, sigHashes, prevOut.Value,
		fetcher)
	if err != nil {
		return err
	}
	return vm.Execute()
}

// Config holds the collaborators used to validate proof-of-stake blocks.
type Config struct {
	Index    *blockchain.BlockIndex
	TxSource TxSource

	// ScriptVerifier defaults to TxScriptVerifier when nil.
	ScriptVerifier ScriptVerifier

	// ZerocoinParser may be nil, in which case zerocoin stakes are
	// rejected.
	ZerocoinParser ZerocoinSpendParser
}

// Checker validates the kernels of proof-of-stake blocks.
type Checker struct {
	cfg Config
}

// NewChecker returns a proof-of-stake checker using the passed collaborators.
func NewChecker(cfg *Config) *Checker {
	c := &Checker{cfg: *cfg}
	if c.cfg.ScriptVerifier == nil {
		c.cfg.ScriptVerifier = TxScriptVerifier{}
	}
	return c
}

// stakeInput builds the staked input from the kernel input of the coinstake,
// verifying its signature for transaction outputs.
func (c *Checker) stakeInput(tx *btcwire.MsgTx) (Input, error) {
	txIn := tx.TxIn[0]
	if wire.IsZerocoinSpend(tx) {
		if c.cfg.ZerocoinParser == nil {
			return nil, stakeRuleError(ErrWrongSpendType,
				"zerocoin stakes are not supported")
		}
		spend, err := c.cfg.ZerocoinParser.ParseZerocoinSpend(txIn)
		if err != nil {
			return nil, err
		}
		if spend.SpendType != SpendTypeStake {
			str := fmt.Sprintf("zerocoin spend has the wrong spend type "+
				"(%d)", spend.SpendType)
			return nil, stakeRuleError(ErrWrongSpendType, str)
		}
		return spend, nil
	}

	prevOut := &txIn.PreviousOutPoint
	prevTx, blockHash, err := c.cfg.TxSource.FetchTransaction(&prevOut.Hash)
	if err != nil {
		str := fmt.Sprintf("unable to find stake transaction %v: %v",
			prevOut.Hash, err)
		return nil, stakeRuleError(ErrMissingStakeTx, str)
	}
	if int(prevOut.Index) >= len(prevTx.TxOut) {
		str := fmt.Sprintf("stake transaction %v has no output %d",
			prevOut.Hash, prevOut.Index)
		return nil, stakeRuleError(ErrMissingStakeTx, str)
	}
	err = c.cfg.ScriptVerifier.VerifyInput(tx, 0, prevTx.TxOut[prevOut.Index])
	if err != nil {
		str := fmt.Sprintf("signature verification failed on coinstake "+
			"%v: %v", tx.TxHash(), err)
		return nil, stakeRuleError(ErrBadStakeScript, str)
	}
	return &UtxoInput{
		PrevTx:    prevTx,
		Index:     prevOut.Index,
		BlockHash: *blockHash,
	}, nil
}

// CheckProofOfStake validates the coinstake kernel of a block built on prev
// and returns the kernel hash along with the staked input.
//
// It does not check the coinstake timestamp against the block timestamp.
// Callers validating a block must apply CheckCoinStakeTimestamp themselves.
func (c *Checker) CheckProofOfStake(block *wire.MsgBlock, prev *blockchain.BlockNode) (chainhash.Hash, Input, error) {
	bi := c.cfg.Index
	params := bi.Params()
	height := prev.Height + 1
	postFork := height >= params.SecondForkHeight

	if len(block.Transactions) < 2 || !wire.IsCoinStake(block.Transactions[1]) {
		return chainhash.Hash{}, nil, stakeRuleError(ErrNotCoinStake,
			"second transaction of the block is not a coinstake")
	}
	tx := block.Transactions[1]

	input, err := c.stakeInput(tx)
	if err != nil {
		return chainhash.Hash{}, nil, err
	}
	from := input.IndexFrom(bi)
	if from == nil {
		return chainhash.Hash{}, nil, stakeRuleError(ErrMissingStakeOrigin,
			"failed to find the block index entry of the stake origin")
	}

	target, _, _ := standalone.DiffBitsToUint256(block.Header.Bits)
	txTime := block.Header.Timestamp.Unix()

	var modifier uint64
	switch {
	case params.ID == chaincfg.NetRegTest:
		modifier = prev.StakeModifier
	case postFork:
		modifier, _, _, err = GetKernelStakeModifierV05(bi, prev, txTime)
		if err != nil {
			log.Debugf("Failed to get the kernel modifier for a stake "+
				"on %v: %v", prev, err)
			modifier = prev.StakeModifier
		}
	default:
		modifier, err = input.Modifier(bi)
		if err != nil {
			return chainhash.Hash{}, nil, err
		}
	}

	k := Kernel{
		Uniqueness:      input.Uniqueness(),
		Value:           input.Value(),
		Modifier:        modifier,
		BlockFromTime:   from.Time,
		BlockFromHeight: from.Height,
		TxTime:          txTime,
		Height:          height,
	}
	hash, err := CheckStake(params, &k, &target)
	if err != nil {
		return hash, nil, err
	}
	return hash, input, nil
}
