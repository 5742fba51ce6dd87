// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpayments

import (
	btcwire "github.com/btcsuite/btcd/wire"
)

// BudgetResult is the outcome of the validation of a budget payment.
type BudgetResult int

// These constants define the outcomes of the validation of a budget payment.
const (
	// BudgetInvalid indicates a transaction that does not pay the budget.
	BudgetInvalid BudgetResult = iota

	// BudgetValid indicates a transaction that pays the budget.
	BudgetValid

	// BudgetDoublePayment indicates a budget that was already paid.
	BudgetDoublePayment

	// BudgetVoteThreshold indicates a budget without enough masternode
	// votes to be paid.
	BudgetVoteThreshold
)

var budgetResultStrings = map[BudgetResult]string{
	BudgetInvalid:       "invalid",
	BudgetValid:         "valid",
	BudgetDoublePayment: "double payment",
	BudgetVoteThreshold: "vote threshold",
}

// String returns the BudgetResult in human-readable form.
func (r BudgetResult) String() string {
	if s, ok := budgetResultStrings[r]; ok {
		return s
	}
	return "unknown"
}

// Budget is the budget system paying the proposals voted by the masternodes
// in superblocks.
type Budget interface {
	IsBudgetPaymentBlock(height int32) bool
	IsTransactionValid(tx *btcwire.MsgTx, height int32) BudgetResult
	FillBlockPayee(tx *btcwire.MsgTx, fees int64, proofOfStake bool)
	RequiredPaymentsString(height int32) string
}

// NoBudget is a Budget without any proposal, so no block is a superblock.
type NoBudget struct{}

// IsBudgetPaymentBlock always returns false.
func (NoBudget) IsBudgetPaymentBlock(int32) bool { return false }

// IsTransactionValid always returns BudgetInvalid.
func (NoBudget) IsTransactionValid(*btcwire.MsgTx, int32) BudgetResult {
	return BudgetInvalid
}

// FillBlockPayee leaves the transaction untouched.
func (NoBudget) FillBlockPayee(*btcwire.MsgTx, int64, bool) {}

// RequiredPaymentsString always returns "Unknown".
func (NoBudget) RequiredPaymentsString(int32) string { return "Unknown" }
