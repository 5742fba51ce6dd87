// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	btcwire "github.com/btcsuite/btcd/wire"
)

// Zerocoin script opcodes.  They are not part of the btcd opcode table.
const (
	OpZerocoinMint  = 0xc1
	OpZerocoinSpend = 0xc2
)

// IsNullOutPoint returns whether the outpoint references nothing, as is the
// case for coinbase inputs.
func IsNullOutPoint(op *btcwire.OutPoint) bool {
	return op.Index == btcwire.MaxPrevOutIndex && op.Hash == (chainhash.Hash{})
}

// IsCoinBase determines whether or not a transaction is a coinbase.  A
// coinbase is a special transaction created by miners that has no inputs.
// Zerocoin spends also reference a null outpoint and are not coinbases.
func IsCoinBase(tx *btcwire.MsgTx) bool {
	return len(tx.TxIn) == 1 &&
		IsNullOutPoint(&tx.TxIn[0].PreviousOutPoint) &&
		!IsZerocoinSpendIn(tx.TxIn[0])
}

// IsEmptyOutput returns whether the output carries neither value nor script.
// The first output of a coinstake is always empty.
func IsEmptyOutput(out *btcwire.TxOut) bool {
	return out.Value == 0 && len(out.PkScript) == 0
}

// IsCoinStake determines whether or not a transaction is a coinstake: it spends
// at least one real input and its first output is empty.
func IsCoinStake(tx *btcwire.MsgTx) bool {
	if len(tx.TxIn) == 0 || len(tx.TxOut) < 2 {
		return false
	}
	if IsNullOutPoint(&tx.TxIn[0].PreviousOutPoint) && !IsZerocoinSpendIn(tx.TxIn[0]) {
		return false
	}
	return IsEmptyOutput(tx.TxOut[0])
}

// IsZerocoinSpendIn returns whether the input redeems a zerocoin.
func IsZerocoinSpendIn(in *btcwire.TxIn) bool {
	return in.PreviousOutPoint.Hash == (chainhash.Hash{}) &&
		len(in.SignatureScript) > 0 && in.SignatureScript[0] == OpZerocoinSpend
}

// IsZerocoinSpend returns whether any input of the transaction redeems a
// zerocoin.
func IsZerocoinSpend(tx *btcwire.MsgTx) bool {
	for _, in := range tx.TxIn {
		if IsZerocoinSpendIn(in) {
			return true
		}
	}
	return false
}

// IsZerocoinMint returns whether the output mints a zerocoin.
func IsZerocoinMint(out *btcwire.TxOut) bool {
	return len(out.PkScript) > 0 && out.PkScript[0] == OpZerocoinMint
}

// OutPointShortString returns the "txid-index" form of an outpoint used in
// signed masternode messages.
func OutPointShortString(op *btcwire.OutPoint) string {
	return fmt.Sprintf("%s-%d", op.Hash, op.Index)
}
