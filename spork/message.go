// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package spork

import (
	"fmt"
	"time"

	"github.com/beetlecoin/beetled/chaincfg"
	"github.com/beetlecoin/beetled/internal/msgsign"
	"github.com/beetlecoin/beetled/wire"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// NewMessage returns a spork message setting the spork to value, signed at
// the passed time with key.
func NewMessage(id ID, value int64, timeSigned time.Time, key *secp256k1.PrivateKey) *wire.MsgSpork {
	msg := &wire.MsgSpork{
		ID:         int32(id),
		Value:      value,
		TimeSigned: timeSigned.Unix(),
	}
	msg.Signature = msgsign.Sign(key, msg.SignMessage(), true)
	return msg
}

// CheckSignature verifies the signature of a spork message against the spork
// keys of the network.  Messages signed from EnforceNewSporkKey on must use
// the new key.  Older messages may use the old key until RejectOldSporkKey.
func CheckSignature(params *chaincfg.Params, msg *wire.MsgSpork, now time.Time) error {
	message := msg.SignMessage()
	err := msgsign.Verify(params.SporkKey, msg.Signature, message)
	if err == nil {
		return nil
	}

	requireNew := msg.TimeSigned >= params.EnforceNewSporkKey
	if !requireNew && now.Unix() < params.RejectOldSporkKey {
		if msgsign.Verify(params.SporkKeyOld, msg.Signature, message) == nil {
			return nil
		}
	}

	str := fmt.Sprintf("invalid signature for spork %v signed at %d: %v",
		ID(msg.ID), msg.TimeSigned, err)
	return sporkError(ErrBadSporkSignature, str)
}
