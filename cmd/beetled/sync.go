// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"github.com/beetlecoin/beetled/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/decred/dcrd/container/lru"
)

const (
	// maxTipAge is how old the best chain tip may be for the blockchain to
	// be considered synced.
	maxTipAge = time.Hour

	// maxSeenWinners is the number of masternode winners remembered by the
	// sync.
	maxSeenWinners = 10000
)

// chainSync tracks the sync of the node with the network.  It implements
// mnpayments.SyncTracker.
type chainSync struct {
	index *blockchain.BlockIndex
	now   func() time.Time

	// winners holds the masternode winners the node has seen.
	winners *lru.Set[chainhash.Hash]
}

func newChainSync(index *blockchain.BlockIndex) *chainSync {
	return &chainSync{
		index:   index,
		now:     time.Now,
		winners: lru.NewSet[chainhash.Hash](maxSeenWinners),
	}
}

// IsBlockchainSynced returns whether the best chain tip is recent.
func (s *chainSync) IsBlockchainSynced() bool {
	tip, ok := s.index.TryTip()
	if !ok || tip == nil {
		return false
	}
	return s.now().Sub(tip.Timestamp()) <= maxTipAge
}

// IsSynced returns whether the masternode data is synced, which for a node
// without peers only depends on the blockchain.
func (s *chainSync) IsSynced() bool {
	return s.IsBlockchainSynced()
}

// AddedMasternodeWinner records a seen winner.
func (s *chainSync) AddedMasternodeWinner(hash *chainhash.Hash) {
	s.winners.Put(*hash)
}

// ForgetMasternodeWinner forgets a winner removed from the payments.
func (s *chainSync) ForgetMasternodeWinner(hash *chainhash.Hash) {
	s.winners.Delete(*hash)
}

// SeenWinners returns the number of winners the sync remembers.
func (s *chainSync) SeenWinners() int {
	return int(s.winners.Len())
}
