// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines chain configuration parameters.
//
// In addition to the main BeetleCoin network, which is intended for the
// transfer of monetary value, there also exist two standard networks: testnet
// and regression test.  A fourth parameter set, the unit test network, shares
// the main network consensus values but exposes setters for a handful of
// fields so tests can tweak them.  These networks are incompatible with each
// other and software should handle errors where input intended for one
// network is used on an application instance running on a different network.
//
// Each builder returns a freshly allocated value that is owned by the caller,
// so there is no process-wide "current" parameter set.  Applications select a
// network once at startup and pass the resulting *Params to the packages that
// need it:
//
//	package main
//
//	import (
//		"flag"
//		"fmt"
//
//		"github.com/beetlecoin/beetled/chaincfg"
//	)
//
//	func main() {
//		var testnet = flag.Bool("testnet", false, "operate on the test network")
//		flag.Parse()
//
//		// By default (without -testnet), use mainnet.
//		var chainParams = chaincfg.MainNetParams()
//
//		// Modify active network parameters if operating on testnet.
//		if *testnet {
//			chainParams = chaincfg.TestNetParams()
//		}
//
//		// later...
//
//		fmt.Println(chainParams.TreasuryAddressAt(chainParams.TreasuryStartHeight))
//	}
package chaincfg
