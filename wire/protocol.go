// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"

	btcwire "github.com/btcsuite/btcd/wire"
)

const (
	// ProtocolVersion is the latest protocol version this package supports.
	ProtocolVersion uint32 = 70920

	// MinPeerProtoVersionBeforeEnforcement is the oldest protocol version
	// masternodes may run before the new protocol enforcement spork is
	// activated.
	MinPeerProtoVersionBeforeEnforcement uint32 = 70919

	// MinPeerProtoVersionAfterEnforcement is the oldest protocol version
	// masternodes may run once the new protocol enforcement spork is active.
	MinPeerProtoVersionAfterEnforcement uint32 = 70920
)

// Commands used in masternode and spork message headers which describe the
// type of message.
const (
	CmdMasternodeWinner     = "mnw"
	CmdGetMasternodeWinners = "mnget"
	CmdSyncStatusCount      = "ssc"
	CmdSpork                = "spork"
)

// Inventory vector types used by the masternode layer in addition to the ones
// defined by the btcd wire package.
const (
	InvTypeSpork            btcwire.InvType = 6
	InvTypeMasternodeWinner btcwire.InvType = 7
)

// Masternode sync item identifiers carried by ssc messages.
const (
	MasternodeSyncSporks int32 = 1
	MasternodeSyncList   int32 = 2
	MasternodeSyncMNW    int32 = 3
	MasternodeSyncBudget int32 = 4
)

// BeetleNet represents which network a message belongs to.  It is the message
// start string interpreted as a little-endian integer.
type BeetleNet uint32

// Constants used to indicate the message network.  They can also be used to
// seek to the next message when a stream's state is unknown.
const (
	// MainNet represents the main network.
	MainNet BeetleNet = 0x18094810

	// TestNet represents the test network.
	TestNet BeetleNet = 0xba657643

	// RegNet represents the regression test network.
	RegNet BeetleNet = 0xac7ecf69
)

// bnStrings is a map of networks back to their constant names for pretty
// printing.
var bnStrings = map[BeetleNet]string{
	MainNet: "MainNet",
	TestNet: "TestNet",
	RegNet:  "RegNet",
}

// NetFromMagic converts four message start bytes into a BeetleNet.
func NetFromMagic(magic [4]byte) BeetleNet {
	return BeetleNet(binary.LittleEndian.Uint32(magic[:]))
}

// Magic returns the message start bytes for the network.
func (n BeetleNet) Magic() [4]byte {
	var magic [4]byte
	binary.LittleEndian.PutUint32(magic[:], uint32(n))
	return magic
}

// String returns the BeetleNet in human-readable form.
func (n BeetleNet) String() string {
	if s, ok := bnStrings[n]; ok {
		return s
	}
	return fmt.Sprintf("Unknown BeetleNet (%d)", uint32(n))
}
