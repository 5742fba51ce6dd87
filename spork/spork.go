// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package spork

import (
	"fmt"
	"sort"
)

// ID identifies a spork.
type ID int32

// These constants define the known sporks.
const (
	SwiftTx                      ID = 10001
	SwiftTxBlockFiltering        ID = 10002
	MaxValue                     ID = 10004
	MasternodeScanning           ID = 10006
	MasternodePaymentEnforcement ID = 10007
	MasternodeBudgetEnforcement  ID = 10008
	MasternodePayUpdatedNodes    ID = 10009
	EnableSuperblocks            ID = 10012
	NewProtocolEnforcement       ID = 10013
	NewProtocolEnforcement2      ID = 10014
	ZerocoinMaintenanceMode      ID = 10015
	TreasuryPaymentEnforcement   ID = 10016
	NewMasternodeTiers           ID = 10017
	NewProtocolEnforcement3      ID = 10018
	ZerocoinPublicSpend          ID = 10019
	NewProtocolEnforcement4      ID = 10020
)

// Off is the default value of time based sporks.  Sporks are active once
// their value is in the past, so this keeps them off until 2099.
const Off int64 = 4070908800

type sporkInfo struct {
	name  string
	value int64
}

var sporks = map[ID]sporkInfo{
	SwiftTx:                      {"SPORK_2_SWIFTTX", Off},
	SwiftTxBlockFiltering:        {"SPORK_3_SWIFTTX_BLOCK_FILTERING", Off},
	MaxValue:                     {"SPORK_5_MAX_VALUE", 1000},
	MasternodeScanning:           {"SPORK_7_MASTERNODE_SCANNING", Off},
	MasternodePaymentEnforcement: {"SPORK_8_MASTERNODE_PAYMENT_ENFORCEMENT", Off},
	MasternodeBudgetEnforcement:  {"SPORK_9_MASTERNODE_BUDGET_ENFORCEMENT", Off},
	MasternodePayUpdatedNodes:    {"SPORK_10_MASTERNODE_PAY_UPDATED_NODES", Off},
	EnableSuperblocks:            {"SPORK_13_ENABLE_SUPERBLOCKS", Off},
	NewProtocolEnforcement:       {"SPORK_14_NEW_PROTOCOL_ENFORCEMENT", Off},
	NewProtocolEnforcement2:      {"SPORK_15_NEW_PROTOCOL_ENFORCEMENT_2", Off},
	ZerocoinMaintenanceMode:      {"SPORK_16_ZEROCOIN_MAINTENANCE_MODE", Off},
	TreasuryPaymentEnforcement:   {"SPORK_17_TREASURY_PAYMENT_ENFORCEMENT", Off},
	NewMasternodeTiers:           {"SPORK_18_NEW_MASTERNODE_TIERS", Off},
	NewProtocolEnforcement3:      {"SPORK_19_NEW_PROTOCOL_ENFORCEMENT_3", Off},
	ZerocoinPublicSpend:          {"SPORK_20_ZEROCOIN_PUBLICSPEND", Off},
	NewProtocolEnforcement4:      {"SPORK_21_NEW_PROTOCOL_ENFORCEMENT_4", Off},
}

// String returns the spork name.
func (id ID) String() string {
	if info, ok := sporks[id]; ok {
		return info.name
	}
	return fmt.Sprintf("Unknown spork (%d)", int32(id))
}

// IsKnown returns whether the identifier names a spork.
func (id ID) IsKnown() bool {
	_, ok := sporks[id]
	return ok
}

// Default returns the value of the spork when no signed message has been
// received for it.  Unknown sporks have the value -1.
func Default(id ID) int64 {
	if info, ok := sporks[id]; ok {
		return info.value
	}
	return -1
}

// ByName returns the spork with the passed name.
func ByName(name string) (ID, bool) {
	for id, info := range sporks {
		if info.name == name {
			return id, true
		}
	}
	return 0, false
}

// All returns the identifiers of every known spork in ascending order.
func All() []ID {
	ids := make([]ID, 0, len(sporks))
	for id := range sporks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
