// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/txscript"
)

// TreasuryAddressAt returns the address that receives the treasury payment of
// the block at the given height.
func (p *Params) TreasuryAddressAt(height int32) string {
	return p.TreasuryAddress
}

// TreasuryScriptAt returns the output script paying the treasury address of
// the block at the given height.  An error is returned when the configured
// address is not a valid pay-to-pubkey-hash or pay-to-script-hash address for
// the network.
func (p *Params) TreasuryScriptAt(height int32) ([]byte, error) {
	return p.PayToAddrScript(p.TreasuryAddressAt(height))
}

// PayToAddrScript decodes the passed base58check address and returns the
// standard script paying it.
func (p *Params) PayToAddrScript(addr string) ([]byte, error) {
	decoded, version, err := base58.CheckDecode(addr)
	if err != nil {
		return nil, fmt.Errorf("malformed address %q: %w", addr, err)
	}
	if len(decoded) != 20 {
		return nil, fmt.Errorf("address %q has a %d byte payload", addr,
			len(decoded))
	}

	switch version {
	case p.PubKeyHashAddrID:
		return txscript.NewScriptBuilder().
			AddOp(txscript.OP_DUP).
			AddOp(txscript.OP_HASH160).
			AddData(decoded).
			AddOp(txscript.OP_EQUALVERIFY).
			AddOp(txscript.OP_CHECKSIG).
			Script()

	case p.ScriptHashAddrID:
		return txscript.NewScriptBuilder().
			AddOp(txscript.OP_HASH160).
			AddData(decoded).
			AddOp(txscript.OP_EQUAL).
			Script()
	}

	return nil, fmt.Errorf("address %q is not for network %s", addr, p.Name)
}
