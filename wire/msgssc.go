// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	btcwire "github.com/btcsuite/btcd/wire"
)

// MsgSyncStatusCount implements the Message interface and represents an ssc
// message.  It tells a syncing peer how many inventory items of a sync item
// were announced to it.
type MsgSyncStatusCount struct {
	ItemID int32
	Count  int32
}

// BtcDecode decodes r using the protocol encoding into the receiver.
// This is part of the Message interface implementation.
func (msg *MsgSyncStatusCount) BtcDecode(r io.Reader, pver uint32, enc btcwire.MessageEncoding) error {
	return readElements(r, &msg.ItemID, &msg.Count)
}

// BtcEncode encodes the receiver to w using the protocol encoding.
// This is part of the Message interface implementation.
func (msg *MsgSyncStatusCount) BtcEncode(w io.Writer, pver uint32, enc btcwire.MessageEncoding) error {
	return writeElements(w, msg.ItemID, msg.Count)
}

// Command returns the protocol command string for the message.  This is part
// of the Message interface implementation.
func (msg *MsgSyncStatusCount) Command() string {
	return CmdSyncStatusCount
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.  This is part of the Message interface implementation.
func (msg *MsgSyncStatusCount) MaxPayloadLength(pver uint32) uint32 {
	return 8
}

// NewMsgSyncStatusCount returns a new ssc message that conforms to the Message
// interface.
func NewMsgSyncStatusCount(itemID, count int32) *MsgSyncStatusCount {
	return &MsgSyncStatusCount{ItemID: itemID, Count: count}
}
