// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package masternode tracks the masternodes known to the node and answers the
// ranking and payment queue queries the payment layer votes with.
package masternode

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/beetlecoin/beetled/blockchain/standalone"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	btcwire "github.com/btcsuite/btcd/wire"
	"github.com/decred/dcrd/crypto/ripemd160"
	"github.com/decred/dcrd/math/uint256"
)

// Masternode tiers.  The tier of a masternode follows from the size of its
// collateral.
const (
	LevelMin uint32 = 1
	LevelMax uint32 = 3
)

// month is the payment age after which never paid masternodes are ordered
// deterministically instead of by time.
const month = 30 * 24 * 60 * 60

// Masternode is a masternode record.
type Masternode struct {
	// Outpoint is the collateral output.  It identifies the masternode.
	Outpoint btcwire.OutPoint

	// CollateralPubKey owns the collateral and receives the payments, and
	// MasternodePubKey signs the votes of the masternode.
	CollateralPubKey []byte
	MasternodePubKey []byte

	Level           uint32
	ProtocolVersion uint32
	Enabled         bool

	// SigTime is the unix time the masternode announcement was signed and
	// LastPaid the unix time of its last payment, zero when never paid.
	SigTime  int64
	LastPaid int64

	// CollateralHeight is the height of the block that confirmed the
	// collateral.
	CollateralHeight int32
}

// Hash160 returns RIPEMD160(SHA256(buf)).
func Hash160(buf []byte) []byte {
	sum := sha256.Sum256(buf)
	hasher := ripemd160.New()
	hasher.Write(sum[:])
	return hasher.Sum(nil)
}

// PayToPubKeyHashScript returns the standard script paying the hash of the
// serialized public key.
func PayToPubKeyHashScript(pubKey []byte) []byte {
	// The builder cannot fail with fixed size pushes.
	script, _ := txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).
		AddData(Hash160(pubKey)).
		AddOp(txscript.OP_EQUALVERIFY).
		AddOp(txscript.OP_CHECKSIG).
		Script()
	return script
}

// Payee returns the script the masternode is paid to.
func (mn *Masternode) Payee() []byte {
	return PayToPubKeyHashScript(mn.CollateralPubKey)
}

// IsPayee returns whether script pays the masternode.
func (mn *Masternode) IsPayee(script []byte) bool {
	return bytes.Equal(mn.Payee(), script)
}

// Score returns the score of the masternode for the block with the given hash:
// the distance between the double SHA-256 of the block hash and the double
// SHA-256 of the block hash followed by the collateral outpoint, summed as a
// 256-bit number.
func (mn *Masternode) Score(blockHash *chainhash.Hash) uint256.Uint256 {
	var aux uint256.Uint256
	aux.SetBytesLE((*[32]byte)(&mn.Outpoint.Hash))
	aux.AddUint64(uint64(mn.Outpoint.Index))
	var auxBytes [32]byte
	aux.PutBytesLE(&auxBytes)

	hash2 := chainhash.DoubleHashH(blockHash[:])
	buf := make([]byte, 0, 2*chainhash.HashSize)
	buf = append(buf, blockHash[:]...)
	buf = append(buf, auxBytes[:]...)
	hash3 := chainhash.DoubleHashH(buf)

	n2 := standalone.HashToUint256(&hash2)
	n3 := standalone.HashToUint256(&hash3)
	if n3.Gt(&n2) {
		return *n3.Sub(&n2)
	}
	return *n2.Sub(&n3)
}

// InputAge returns the number of confirmations of the collateral with the
// best chain tip at the given height.
func (mn *Masternode) InputAge(tipHeight int32) int32 {
	if mn.CollateralHeight <= 0 || mn.CollateralHeight > tipHeight {
		return 0
	}
	return tipHeight - mn.CollateralHeight + 1
}

// SecondsSincePayment returns how long ago the masternode was paid.  Masternodes
// unpaid for over a month are ordered by a value derived from their outpoint
// and signature time that always exceeds a month.
func (mn *Masternode) SecondsSincePayment(now time.Time) int64 {
	sec := now.Unix() - mn.LastPaid
	if sec < month {
		return sec
	}

	var buf [chainhash.HashSize + 4 + 8]byte
	copy(buf[:], mn.Outpoint.Hash[:])
	binary.LittleEndian.PutUint32(buf[chainhash.HashSize:], mn.Outpoint.Index)
	binary.LittleEndian.PutUint64(buf[chainhash.HashSize+4:], uint64(mn.SigTime))
	hash := chainhash.DoubleHashH(buf[:])
	n := standalone.HashToUint256(&hash)
	return month + int64(standalone.Uint256ToDiffBits(&n))
}

// String returns the collateral outpoint and tier of the masternode.
func (mn *Masternode) String() string {
	return fmt.Sprintf("%v (level %d)", mn.Outpoint, mn.Level)
}

func (mn *Masternode) clone() *Masternode {
	c := *mn
	c.CollateralPubKey = append([]byte(nil), mn.CollateralPubKey...)
	c.MasternodePubKey = append([]byte(nil), mn.MasternodePubKey...)
	return &c
}
