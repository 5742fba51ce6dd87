// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"
	"strconv"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	btcwire "github.com/btcsuite/btcd/wire"
)

// MsgSpork implements the Message interface and represents a spork message:
// a network-wide flag or threshold signed by the spork key.
type MsgSpork struct {
	ID         int32
	Value      int64
	TimeSigned int64
	Signature  []byte
}

// BtcDecode decodes r using the protocol encoding into the receiver.
// This is part of the Message interface implementation.
func (msg *MsgSpork) BtcDecode(r io.Reader, pver uint32, enc btcwire.MessageEncoding) error {
	const op = "MsgSpork.BtcDecode"
	err := readElements(r, &msg.ID, &msg.Value, &msg.TimeSigned)
	if err != nil {
		return err
	}
	msg.Signature, err = readBoundedVarBytes(r, pver,
		MaxMessageSignatureSize, op, "spork signature")
	return err
}

// BtcEncode encodes the receiver to w using the protocol encoding.
// This is part of the Message interface implementation.
func (msg *MsgSpork) BtcEncode(w io.Writer, pver uint32, enc btcwire.MessageEncoding) error {
	const op = "MsgSpork.BtcEncode"
	if len(msg.Signature) > MaxMessageSignatureSize {
		return messageError(op, ErrVarBytesTooLong, "spork signature too long")
	}
	if err := writeElements(w, msg.ID, msg.Value, msg.TimeSigned); err != nil {
		return err
	}
	return btcwire.WriteVarBytes(w, pver, msg.Signature)
}

// Command returns the protocol command string for the message.  This is part
// of the Message interface implementation.
func (msg *MsgSpork) Command() string {
	return CmdSpork
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.  This is part of the Message interface implementation.
func (msg *MsgSpork) MaxPayloadLength(pver uint32) uint32 {
	return 4 + 8 + 8 + btcwire.MaxVarIntPayload + MaxMessageSignatureSize
}

// Hash returns the double SHA-256 of the identifier, value and signing time.
func (msg *MsgSpork) Hash() chainhash.Hash {
	var buf bytes.Buffer
	buf.Grow(20)
	_ = writeElements(&buf, msg.ID, msg.Value, msg.TimeSigned)
	return chainhash.DoubleHashH(buf.Bytes())
}

// SignMessage returns the text signed by the spork key.
func (msg *MsgSpork) SignMessage() string {
	return strconv.FormatInt(int64(msg.ID), 10) +
		strconv.FormatInt(msg.Value, 10) +
		strconv.FormatInt(msg.TimeSigned, 10)
}

// InvVect returns the inventory vector advertising the spork.
func (msg *MsgSpork) InvVect() *btcwire.InvVect {
	hash := msg.Hash()
	return btcwire.NewInvVect(InvTypeSpork, &hash)
}
