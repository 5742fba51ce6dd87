// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/hex"
	"io"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	btcwire "github.com/btcsuite/btcd/wire"
)

const (
	// MaxPayeeScriptSize is the maximum size of the payee script carried by
	// a masternode winner message.
	MaxPayeeScriptSize = txscript.MaxScriptSize

	// MaxMessageSignatureSize is the maximum size of a signature over a
	// masternode or spork message.
	MaxMessageSignatureSize = 256
)

// MsgMasternodeWinner implements the Message interface and represents an mnw
// message.  It is a masternode's signed vote naming the payee that should be
// paid at a block height.
//
// The tier of the payee is not part of the message.  Receivers recompute it
// from their own masternode list.
type MsgMasternodeWinner struct {
	Voter       btcwire.OutPoint
	BlockHeight int32
	Payee       []byte
	Signature   []byte
}

// BtcDecode decodes r using the protocol encoding into the receiver.
// This is part of the Message interface implementation.
func (msg *MsgMasternodeWinner) BtcDecode(r io.Reader, pver uint32, enc btcwire.MessageEncoding) error {
	const op = "MsgMasternodeWinner.BtcDecode"
	err := readElements(r, &msg.Voter, &msg.BlockHeight)
	if err != nil {
		return err
	}
	msg.Payee, err = readBoundedVarBytes(r, pver, MaxPayeeScriptSize, op,
		"payee script")
	if err != nil {
		return err
	}
	msg.Signature, err = readBoundedVarBytes(r, pver,
		MaxMessageSignatureSize, op, "winner signature")
	return err
}

// BtcEncode encodes the receiver to w using the protocol encoding.
// This is part of the Message interface implementation.
func (msg *MsgMasternodeWinner) BtcEncode(w io.Writer, pver uint32, enc btcwire.MessageEncoding) error {
	const op = "MsgMasternodeWinner.BtcEncode"
	if len(msg.Payee) > MaxPayeeScriptSize {
		return messageError(op, ErrVarBytesTooLong, "payee script too long")
	}
	if len(msg.Signature) > MaxMessageSignatureSize {
		return messageError(op, ErrVarBytesTooLong, "winner signature too long")
	}
	err := writeElements(w, &msg.Voter, msg.BlockHeight)
	if err != nil {
		return err
	}
	if err := btcwire.WriteVarBytes(w, pver, msg.Payee); err != nil {
		return err
	}
	return btcwire.WriteVarBytes(w, pver, msg.Signature)
}

// Command returns the protocol command string for the message.  This is part
// of the Message interface implementation.
func (msg *MsgMasternodeWinner) Command() string {
	return CmdMasternodeWinner
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.  This is part of the Message interface implementation.
func (msg *MsgMasternodeWinner) MaxPayloadLength(pver uint32) uint32 {
	// Outpoint 36 bytes + height 4 bytes + payee and signature with their
	// var int lengths.
	return 36 + 4 + btcwire.MaxVarIntPayload + MaxPayeeScriptSize +
		btcwire.MaxVarIntPayload + MaxMessageSignatureSize
}

// Hash returns the identity of the vote: the double SHA-256 of the payee
// script, the block height and the voter outpoint.  The signature is not
// covered.
func (msg *MsgMasternodeWinner) Hash() chainhash.Hash {
	var buf bytes.Buffer
	buf.Grow(btcwire.MaxVarIntPayload + len(msg.Payee) + 4 + 36)
	_ = btcwire.WriteVarBytes(&buf, 0, msg.Payee)
	_ = writeElements(&buf, msg.BlockHeight, &msg.Voter)
	return chainhash.DoubleHashH(buf.Bytes())
}

// scriptValueString returns the text form of data pushed by a script.  Pushes
// of up to four bytes read as little-endian sign-magnitude numbers and print
// in decimal.  Longer pushes print in hex.
func scriptValueString(data []byte) string {
	if len(data) > 4 {
		return hex.EncodeToString(data)
	}
	var v int64
	for i, b := range data {
		v |= int64(b) << (8 * uint(i))
	}
	if n := len(data); n > 0 && data[n-1]&0x80 != 0 {
		v = -(v &^ (int64(0x80) << (8 * uint(n-1))))
	}
	return strconv.FormatInt(v, 10)
}

// ScriptString returns the text form of a script as covered by vote
// signatures: space separated pushed values and opcode names.  Parsing stops
// at the first malformed opcode, which prints as "[error]".
func ScriptString(script []byte) string {
	var parts []string
	tokenizer := txscript.MakeScriptTokenizer(0, script)
	for tokenizer.Next() {
		op := tokenizer.Opcode()
		if op <= txscript.OP_PUSHDATA4 {
			parts = append(parts, scriptValueString(tokenizer.Data()))
			continue
		}
		name, _ := txscript.DisasmString([]byte{op})
		if strings.HasPrefix(name, "OP_UNKNOWN") {
			name = "OP_UNKNOWN"
		}
		parts = append(parts, name)
	}
	if tokenizer.Err() != nil {
		parts = append(parts, "[error]")
	}
	return strings.Join(parts, " ")
}

// SignMessage returns the text a masternode signs when it casts the vote.
func (msg *MsgMasternodeWinner) SignMessage() string {
	return OutPointShortString(&msg.Voter) +
		strconv.FormatInt(int64(msg.BlockHeight), 10) + ScriptString(msg.Payee)
}

// InvVect returns the inventory vector advertising the vote.
func (msg *MsgMasternodeWinner) InvVect() *btcwire.InvVect {
	hash := msg.Hash()
	return btcwire.NewInvVect(InvTypeMasternodeWinner, &hash)
}

// NewMsgMasternodeWinner returns a new mnw message that conforms to the
// Message interface using the passed parameters.
func NewMsgMasternodeWinner(voter btcwire.OutPoint, height int32, payee []byte) *MsgMasternodeWinner {
	return &MsgMasternodeWinner{
		Voter:       voter,
		BlockHeight: height,
		Payee:       payee,
	}
}
