// Copyright (c) 2013, 2014 The btcsuite developers
// Copyright (c) 2015-2020 The Decred developers
// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package msgsign signs and verifies the text messages exchanged by
// masternodes and the spork key holder.
package msgsign

import (
	"bytes"
	"errors"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	btcwire "github.com/btcsuite/btcd/wire"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// MessageMagic prefixes every signed message.
const MessageMagic = "DarkNet Signed Message:\n"

// ErrWrongKey is returned when a signature was produced by a key other than
// the expected one.
var ErrWrongKey = errors.New("message not signed by the expected key")

// Hash returns the hash committed to by a signature of message: the double
// SHA-256 of the magic and the message, both serialized as var strings.
func Hash(message string) []byte {
	var buf bytes.Buffer
	_ = btcwire.WriteVarString(&buf, 0, MessageMagic)
	_ = btcwire.WriteVarString(&buf, 0, message)
	return chainhash.DoubleHashB(buf.Bytes())
}

// Sign returns the compact recoverable signature of message by key.
func Sign(key *secp256k1.PrivateKey, message string, compressed bool) []byte {
	return ecdsa.SignCompact(key, Hash(message), compressed)
}

// Verify checks that signature is a valid signature of message created by the
// private key of the serialized public key pubKey.
func Verify(pubKey, signature []byte, message string) error {
	// Validate the signature - this just shows that it was valid for any
	// pubkey at all.  Whether the pubkey matches is checked below.
	pk, wasCompressed, err := ecdsa.RecoverCompact(signature, Hash(message))
	if err != nil {
		return err
	}

	var serializedPK []byte
	if wasCompressed {
		serializedPK = pk.SerializeCompressed()
	} else {
		serializedPK = pk.SerializeUncompressed()
	}
	if !bytes.Equal(serializedPK, pubKey) {
		return ErrWrongKey
	}
	return nil
}
