// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpayments

import (
	"fmt"

	"github.com/beetlecoin/beetled/internal/msgsign"
	"github.com/beetlecoin/beetled/wire"
	btcwire "github.com/btcsuite/btcd/wire"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Winner is a masternode vote for the payee of a block.  The tier of the payee
// is not part of the vote and is recomputed from the masternode list whenever
// a vote is received.
type Winner struct {
	wire.MsgMasternodeWinner

	PayeeLevel uint32
}

// NewWinner returns an unsigned vote of the masternode with the given
// collateral outpoint for the payee of the block at height.
func NewWinner(voter btcwire.OutPoint, height int32, payee []byte, level uint32) *Winner {
	return &Winner{
		MsgMasternodeWinner: *wire.NewMsgMasternodeWinner(voter, height, payee),
		PayeeLevel:          level,
	}
}

// Sign signs the vote with the masternode key and verifies the result.
func (w *Winner) Sign(key *secp256k1.PrivateKey) error {
	message := w.SignMessage()
	sig := msgsign.Sign(key, message, true)
	err := msgsign.Verify(key.PubKey().SerializeCompressed(), sig, message)
	if err != nil {
		return fmt.Errorf("unable to verify winner signature: %w", err)
	}
	w.Signature = sig
	return nil
}

// SignatureValid returns an error unless the vote is signed by the passed
// masternode public key.
func (w *Winner) SignatureValid(pubKey []byte) error {
	return msgsign.Verify(pubKey, w.Signature, w.SignMessage())
}

// String returns the voter, height and tier of the vote.
func (w *Winner) String() string {
	return fmt.Sprintf("%s height %d level %d",
		wire.OutPointShortString(&w.Voter), w.BlockHeight, w.PayeeLevel)
}
