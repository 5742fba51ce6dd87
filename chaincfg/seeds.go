// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"net"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/decred/dcrd/crypto/rand"
)

// oneWeek is the window used to age fixed seed addresses.
const oneWeek = 7 * 24 * time.Hour

// FixedSeedAddrs converts the hard-coded seed table of the network into peer
// addresses.  Each address is given a last seen time between one and two
// weeks before now so fixed seeds never outrank recently seen peers.
func (p *Params) FixedSeedAddrs(now time.Time) []*wire.NetAddress {
	addrs := make([]*wire.NetAddress, 0, len(p.FixedSeeds))
	for _, seed := range p.FixedSeeds {
		ip := make(net.IP, net.IPv6len)
		copy(ip, seed.Addr[:])
		na := wire.NewNetAddressIPPort(ip, seed.Port, wire.SFNodeNetwork)
		na.Timestamp = now.Add(-rand.Duration(oneWeek) - oneWeek).Truncate(time.Second)
		addrs = append(addrs, na)
	}
	return addrs
}
