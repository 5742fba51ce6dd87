// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpayments

import (
	"bytes"

	"github.com/beetlecoin/beetled/blockchain"
	"github.com/beetlecoin/beetled/masternode"
	"github.com/beetlecoin/beetled/spork"
	"github.com/beetlecoin/beetled/wire"
	"github.com/btcsuite/btcd/btcutil"
	btcwire "github.com/btcsuite/btcd/wire"
)

// blockHeight returns the height of the block, or zero when its parent is
// unknown.
func (p *Payments) blockHeight(block *wire.MsgBlock, tip *blockchain.BlockNode) int32 {
	if tip.Hash == block.Header.PrevBlock {
		return tip.Height + 1
	}
	// Out of order.
	if prev := p.cfg.Chain.LookupNode(&block.Header.PrevBlock); prev != nil {
		return prev.Height + 1
	}
	return 0
}

// hasTreasuryPayment returns whether tx pays the treasury award of the block
// at height to the treasury.
func (p *Payments) hasTreasuryPayment(tx *btcwire.MsgTx, height int32) bool {
	script, err := p.cfg.Params.TreasuryScriptAt(height)
	if err != nil {
		log.Errorf("Unable to build the treasury script of height %d: %v",
			height, err)
		return false
	}
	amount := p.cfg.Subsidy.CalcTreasurySubsidy(int64(height))
	for _, out := range tx.TxOut {
		if out.Value == amount && bytes.Equal(out.PkScript, script) {
			return true
		}
	}
	return false
}

// IsBlockValueValid returns whether the block mints no more than expected and
// pays the treasury when it has to.
func (p *Payments) IsBlockValueValid(block *wire.MsgBlock, expected, minted int64) bool {
	tip := p.cfg.Chain.Tip()
	if tip == nil {
		return true
	}

	height := p.blockHeight(block, tip)
	if height == 0 {
		log.Debugf("IsBlockValueValid: WARNING: Couldn't find previous block")
	}

	// A treasury block without a payment transaction misses its treasury
	// payment.
	if p.cfg.Params.IsTreasuryBlock(int64(height)) {
		var paid bool
		if tx := block.PaymentTx(); tx == nil {
			log.Infof("Missing treasury payment in block %v at height %d: "+
				"no payment transaction", block.BlockHash(), height)
		} else if paid = p.hasTreasuryPayment(tx, height); !paid {
			log.Infof("Invalid treasury payment detected %v", tx.TxHash())
		} else {
			log.Debugf("Valid treasury payment detected %v", tx.TxHash())
		}
		if !paid {
			enforcement := p.cfg.Sporks.Value(spork.TreasuryPaymentEnforcement)
			if block.Header.Timestamp.Unix() > enforcement {
				return false
			}
			log.Infof("Treasury enforcement is not enabled, accept anyway")
		}
	}

	if !p.cfg.Sync.IsSynced() {
		// Without budget data superblocks can only be told apart by
		// their position in the budget cycle.
		if height%p.cfg.Params.BudgetCycleBlocks < 100 {
			return true
		}
		return minted <= expected
	}

	if !p.cfg.Sporks.IsActive(spork.EnableSuperblocks) {
		return minted <= expected
	}
	if p.cfg.Budget.IsBudgetPaymentBlock(height) {
		// The value of superblocks is checked with their budget.
		return true
	}
	return minted <= expected
}

// IsBlockPayeeValid returns whether the block pays the budget or the
// masternodes it has to pay according to the enforcement sporks.
func (p *Payments) IsBlockPayeeValid(block *wire.MsgBlock, height int32) bool {
	valid := p.isBlockPayeeValid(block, height)
	result := "valid"
	if !valid {
		result = "invalid"
	}
	p.cfg.Metrics.BlockPayeeChecked(result)
	return valid
}

func (p *Payments) isBlockPayeeValid(block *wire.MsgBlock, height int32) bool {
	if !p.cfg.Sync.IsSynced() {
		log.Debugf("Client not synced, skipping block payee checks")
		return true
	}

	tx := block.PaymentTx()
	if tx == nil {
		return false
	}

	if p.cfg.Sporks.IsActive(spork.EnableSuperblocks) &&
		p.cfg.Budget.IsBudgetPaymentBlock(height) {

		switch p.cfg.Budget.IsTransactionValid(tx, height) {
		case BudgetValid:
			return true

		case BudgetInvalid:
			log.Infof("Invalid budget payment detected %v", tx.TxHash())
			if p.cfg.Sporks.IsActive(spork.MasternodeBudgetEnforcement) {
				return false
			}
			log.Infof("Budget enforcement is disabled, accepting block")
		}
	}

	// Either the budget is not enforced, was already paid or did not get
	// enough votes, so the masternodes are paid instead.
	if p.cfg.Params.IsTreasuryBlock(int64(height)) {
		return true
	}
	if p.IsTransactionValid(tx, height) {
		return true
	}
	log.Infof("Invalid mn payment detected %v", tx.TxHash())
	if p.cfg.Sporks.IsActive(spork.MasternodePaymentEnforcement) {
		return false
	}
	log.Infof("Masternode payment enforcement is disabled, accepting block")
	return true
}

// FillBlockPayee adds the budget, treasury or masternode payments of the next
// block to its coinbase or coinstake.
func (p *Payments) FillBlockPayee(tx *btcwire.MsgTx, fees int64, proofOfStake bool) {
	tip := p.cfg.Chain.Tip()
	if tip == nil {
		return
	}

	height := tip.Height + 1
	switch {
	case p.cfg.Sporks.IsActive(spork.EnableSuperblocks) &&
		p.cfg.Budget.IsBudgetPaymentBlock(height):
		p.cfg.Budget.FillBlockPayee(tx, fees, proofOfStake)

	case p.cfg.Params.IsTreasuryBlock(int64(height)):
		p.fillTreasuryPayee(tx, tip, proofOfStake)

	default:
		p.fillMasternodePayees(tx, tip, proofOfStake)
	}
}

// resizeOutputs truncates or extends the outputs of tx to n, adding empty
// outputs.
func resizeOutputs(tx *btcwire.MsgTx, n int) {
	for len(tx.TxOut) < n {
		tx.AddTxOut(&btcwire.TxOut{})
	}
	tx.TxOut = tx.TxOut[:n]
}

// fillTreasuryPayee adds the treasury award of the block after tip.  The award
// is minted in addition to the block value.
func (p *Payments) fillTreasuryPayee(tx *btcwire.MsgTx, tip *blockchain.BlockNode, proofOfStake bool) {
	height := tip.Height + 1
	script, err := p.cfg.Params.TreasuryScriptAt(height)
	if err != nil {
		log.Errorf("Unable to build the treasury script of height %d: %v",
			height, err)
		return
	}
	amount := p.cfg.Subsidy.CalcTreasurySubsidy(int64(height))
	out := btcwire.NewTxOut(amount, script)

	if proofOfStake {
		tx.AddTxOut(out)
	} else {
		blockValue := p.cfg.Subsidy.CalcBlockSubsidy(int64(tip.Height))
		resizeOutputs(tx, 2)
		tx.TxOut[0].Value = blockValue
		tx.TxOut[1] = out
	}
	log.Debugf("Treasury payment of %v to %s", btcutil.Amount(amount),
		p.cfg.Params.TreasuryAddressAt(height))
}

// FillMasternodePayee adds the masternode payments of the block after the tip
// to its coinbase or coinstake.
func (p *Payments) FillMasternodePayee(tx *btcwire.MsgTx, fees int64, proofOfStake bool) {
	tip := p.cfg.Chain.Tip()
	if tip == nil {
		return
	}
	p.fillMasternodePayees(tx, tip, proofOfStake)
}

// fillMasternodePayees pays the voted payee of every paid tier, or the current
// masternode of the tier without votes.  Coinstakes get one more output per
// payee taken from the stake reward.  Coinbases are laid out as the block
// reward followed by the payees.
func (p *Payments) fillMasternodePayees(tx *btcwire.MsgTx, tip *blockchain.BlockNode, proofOfStake bool) {
	payNewTiers := p.cfg.Sporks.IsActive(spork.NewMasternodeTiers)
	firstLevel := masternode.LevelMax
	if payNewTiers {
		firstLevel = masternode.LevelMin
	}

	blockValue := p.cfg.Subsidy.CalcBlockSubsidy(int64(tip.Height))
	height := tip.Height + 1
	paid := 1
	for level := firstLevel; level <= masternode.LevelMax; level++ {
		payee, ok := p.BlockPayee(height, level)
		if !ok {
			mn, found := p.cfg.Masternodes.CurrentMasternode(level, &tip.Hash)
			if !found {
				log.Debugf("CreateNewBlock: Failed to detect masternode "+
					"level %d to pay", level)
				if !proofOfStake && len(tx.TxOut) > 0 {
					tx.TxOut[0].Value = blockValue
				}
				continue
			}
			payee = mn.Payee()
		}

		payment := p.cfg.Subsidy.CalcMasternodeSubsidy(int64(tip.Height),
			level, blockValue)
		if proofOfStake {
			i := len(tx.TxOut)
			tx.AddTxOut(btcwire.NewTxOut(payment, payee))

			// The stake reward is split into as many outputs as the
			// staker wants, the last of which pays the masternodes.
			if len(tx.TxOut) > 1 && !wire.IsZerocoinMint(tx.TxOut[1]) &&
				i-paid >= 0 {

				tx.TxOut[i-paid].Value -= payment
			}
		} else {
			resizeOutputs(tx, 1+paid)
			tx.TxOut[paid] = btcwire.NewTxOut(payment, payee)
			if paid == 1 {
				tx.TxOut[0].Value = blockValue - payment
			} else {
				tx.TxOut[0].Value -= payment
			}
		}

		if payNewTiers {
			paid++
		}
		log.Debugf("Masternode payment of %v to %s", btcutil.Amount(payment),
			payeeAddress(p.cfg.Params, payee))
	}
}

// RequiredPaymentsString returns the payees the block at height has to pay.
func (p *Payments) RequiredPaymentsString(height int32) string {
	if p.cfg.Sporks.IsActive(spork.EnableSuperblocks) &&
		p.cfg.Budget.IsBudgetPaymentBlock(height) {

		return p.cfg.Budget.RequiredPaymentsString(height)
	}
	return p.MasternodePaymentsString(height)
}
