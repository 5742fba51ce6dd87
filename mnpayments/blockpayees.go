// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpayments

import (
	"bytes"
	"encoding/hex"
	"strconv"
	"strings"
	"sync"

	"github.com/beetlecoin/beetled/chaincfg"
	"github.com/beetlecoin/beetled/masternode"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/txscript"
	btcwire "github.com/btcsuite/btcd/wire"
)

// Payee is a candidate payee of a block along with the number of votes it
// received.
type Payee struct {
	Level  uint32
	Script []byte
	Votes  int32
}

// BlockPayees aggregates the votes for the payees of the block at a height.
type BlockPayees struct {
	Height int32

	mtx      sync.Mutex
	payments []Payee
}

func newBlockPayees(height int32) *BlockPayees {
	return &BlockPayees{Height: height}
}

// AddPayee adds votes for the payee of the tier, appending it when it has no
// votes yet.
func (bp *BlockPayees) AddPayee(level uint32, script []byte, votes int32) {
	bp.mtx.Lock()
	defer bp.mtx.Unlock()

	for i := range bp.payments {
		p := &bp.payments[i]
		if p.Level == level && bytes.Equal(p.Script, script) {
			p.Votes += votes
			return
		}
	}
	bp.payments = append(bp.payments, Payee{
		Level:  level,
		Script: append([]byte(nil), script...),
		Votes:  votes,
	})
}

// Payee returns the script of the payee of the tier with the most votes.
func (bp *BlockPayees) Payee(level uint32) ([]byte, bool) {
	bp.mtx.Lock()
	defer bp.mtx.Unlock()

	var best *Payee
	for i := range bp.payments {
		p := &bp.payments[i]
		if p.Level != level {
			continue
		}
		if best == nil || p.Votes > best.Votes {
			best = p
		}
	}
	if best == nil {
		return nil, false
	}
	return best.Script, true
}

// Payees returns a copy of the candidate payees in the order they received
// their first vote.
func (bp *BlockPayees) Payees() []Payee {
	bp.mtx.Lock()
	defer bp.mtx.Unlock()

	payees := make([]Payee, len(bp.payments))
	copy(payees, bp.payments)
	return payees
}

// qualifies returns whether the payee collected enough votes to be required.
// Before the new tiers are paid only the top tier is required.
func (p *Payee) qualifies(payNewTiers bool) bool {
	if p.Votes < SignaturesRequired {
		return false
	}
	return payNewTiers || p.Level == masternode.LevelMax
}

// isTransactionValid returns whether tx pays every tier that has a payee with
// enough votes.  Missing payees are returned as a comma separated list of
// level:address pairs.  A block without any such payee is valid.
func (bp *BlockPayees) isTransactionValid(tx *btcwire.MsgTx, params *chaincfg.Params, subsidy RewardSchedule, payNewTiers bool) (bool, string) {
	bp.mtx.Lock()
	defer bp.mtx.Unlock()

	maxSignatures := make(map[uint32]int32)
	for i := range bp.payments {
		p := &bp.payments[i]
		if !p.qualifies(payNewTiers) {
			continue
		}
		if votes, ok := maxSignatures[p.Level]; !ok || p.Votes >= votes {
			maxSignatures[p.Level] = p.Votes
		}
	}

	// Not enough votes to tell, so leave it to the longest chain.
	if len(maxSignatures) == 0 {
		return true, ""
	}

	height := int64(bp.Height)
	reward := subsidy.CalcBlockSubsidy(height)
	var possible []string
	for i := range bp.payments {
		p := &bp.payments[i]
		if !p.qualifies(payNewTiers) {
			continue
		}

		required := subsidy.CalcMasternodeSubsidy(height, p.Level, reward)
		var found bool
		for _, out := range tx.TxOut {
			if !bytes.Equal(out.PkScript, p.Script) {
				continue
			}
			if out.Value >= required {
				found = true
				break
			}
			log.Warnf("Masternode payment is out of drift range. Paid=%v "+
				"Min=%v", btcutil.Amount(out.Value), btcutil.Amount(required))
		}
		if found {
			delete(maxSignatures, p.Level)
			if len(maxSignatures) == 0 {
				return true, ""
			}
			continue
		}

		possible = append(possible, strconv.FormatUint(uint64(p.Level), 10)+
			":"+payeeAddress(params, p.Script))
	}
	return false, strings.Join(possible, ",")
}

// requiredPaymentsString returns the candidate payees as a comma separated
// list of address:level:votes triples, or "Unknown" without candidates.
func (bp *BlockPayees) requiredPaymentsString(params *chaincfg.Params) string {
	bp.mtx.Lock()
	defer bp.mtx.Unlock()

	if len(bp.payments) == 0 {
		return "Unknown"
	}
	payees := make([]string, 0, len(bp.payments))
	for i := range bp.payments {
		p := &bp.payments[i]
		payees = append(payees, payeeAddress(params, p.Script)+":"+
			strconv.FormatUint(uint64(p.Level), 10)+":"+
			strconv.FormatInt(int64(p.Votes), 10))
	}
	return strings.Join(payees, ",")
}

// payeeAddress returns the address paid by a standard script, or the script in
// hex for any other script.
func payeeAddress(params *chaincfg.Params, script []byte) string {
	switch {
	case txscript.IsPayToPubKeyHash(script):
		return base58.CheckEncode(script[3:23], params.PubKeyHashAddrID)
	case txscript.IsPayToScriptHash(script):
		return base58.CheckEncode(script[2:22], params.ScriptHashAddrID)
	}
	return hex.EncodeToString(script)
}
