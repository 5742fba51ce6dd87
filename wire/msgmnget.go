// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	btcwire "github.com/btcsuite/btcd/wire"
)

// MsgGetMasternodeWinners implements the Message interface and represents an
// mnget message.  It asks a peer for the payment votes it holds around its
// tip.
type MsgGetMasternodeWinners struct {
	CountNeeded int32
}

// BtcDecode decodes r using the protocol encoding into the receiver.
// This is part of the Message interface implementation.
func (msg *MsgGetMasternodeWinners) BtcDecode(r io.Reader, pver uint32, enc btcwire.MessageEncoding) error {
	return readElement(r, &msg.CountNeeded)
}

// BtcEncode encodes the receiver to w using the protocol encoding.
// This is part of the Message interface implementation.
func (msg *MsgGetMasternodeWinners) BtcEncode(w io.Writer, pver uint32, enc btcwire.MessageEncoding) error {
	return writeElement(w, msg.CountNeeded)
}

// Command returns the protocol command string for the message.  This is part
// of the Message interface implementation.
func (msg *MsgGetMasternodeWinners) Command() string {
	return CmdGetMasternodeWinners
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.  This is part of the Message interface implementation.
func (msg *MsgGetMasternodeWinners) MaxPayloadLength(pver uint32) uint32 {
	return 4
}

// NewMsgGetMasternodeWinners returns a new mnget message that conforms to the
// Message interface.
func NewMsgGetMasternodeWinners(countNeeded int32) *MsgGetMasternodeWinners {
	return &MsgGetMasternodeWinners{CountNeeded: countNeeded}
}
