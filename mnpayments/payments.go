// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mnpayments tracks the masternode votes for the payees of upcoming
// blocks, produces the votes of the local masternode and validates the
// masternode, budget and treasury payments of blocks.
package mnpayments

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/beetlecoin/beetled/blockchain"
	"github.com/beetlecoin/beetled/chaincfg"
	"github.com/beetlecoin/beetled/internal/banmanager"
	"github.com/beetlecoin/beetled/masternode"
	"github.com/beetlecoin/beetled/spork"
	"github.com/beetlecoin/beetled/wire"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	btcwire "github.com/btcsuite/btcd/wire"
	"github.com/decred/dcrd/container/lru"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// SignaturesRequired is the number of votes a payee needs before blocks
	// are required to pay it.
	SignaturesRequired = 6

	// SignaturesTotal is the number of best ranked masternodes that vote
	// for the payees of a block.
	SignaturesTotal = 10

	// misbehaviorScore is the ban score added to peers relaying invalid
	// masternode payment messages.
	misbehaviorScore = 20

	// maxFutureBlocks is how far above the best chain tip votes are
	// accepted and synced.
	maxFutureBlocks = 20

	// scheduleLookahead is the number of blocks above the tip whose payees
	// count as scheduled.
	scheduleLookahead = 8

	// scoreDepth is how far below the voted height the block used to rank
	// the voters is taken from.
	scoreDepth = 100

	// minCleanLimit is the minimum age in blocks of the votes removed by
	// Clean.
	minCleanLimit = 1000

	// refreshInterval is the minimum time between two requests for the
	// winners of the network after a block failed payee validation.
	refreshInterval = 15 * time.Minute

	// maxSyncedPeers is the number of peers whose winner requests are
	// remembered.
	maxSyncedPeers = 1024
)

// Chain is the part of the block index the payments read.
type Chain interface {
	// Tip returns the best chain tip, waiting for the chain manager.
	Tip() *blockchain.BlockNode

	// TryTip returns the best chain tip without waiting for the chain
	// manager.  The second return value is false when it would have to
	// wait.
	TryTip() (*blockchain.BlockNode, bool)

	NodeAtHeight(height int32) *blockchain.BlockNode
	LookupNode(hash *chainhash.Hash) *blockchain.BlockNode
}

// MasternodeManager is the set of masternodes known to the node.
type MasternodeManager interface {
	Find(op *btcwire.OutPoint) (*masternode.Masternode, bool)
	FindByPayee(script []byte) (*masternode.Masternode, bool)
	Size() int
	CountEnabled(level uint32) int
	CountEnabledByLevels() map[uint32]int
	Rank(op *btcwire.OutPoint, blockHash *chainhash.Hash, minProto uint32) int
	CurrentMasternode(level uint32, blockHash *chainhash.Hash) (*masternode.Masternode, bool)
	NextInQueueForPayment(height int32, level uint32, filterSigTime bool, schedule masternode.PaymentSchedule) (*masternode.Masternode, int)
	AskFor(peer masternode.Requester, op *btcwire.OutPoint)
}

// SyncTracker follows the progress of the masternode data sync.
type SyncTracker interface {
	IsSynced() bool
	IsBlockchainSynced() bool

	// AddedMasternodeWinner and ForgetMasternodeWinner record the votes
	// the sync has seen.
	AddedMasternodeWinner(hash *chainhash.Hash)
	ForgetMasternodeWinner(hash *chainhash.Hash)
}

// Sporks reads the network sporks.
type Sporks interface {
	IsActive(id spork.ID) bool
	Value(id spork.ID) int64
}

// RewardSchedule computes block values and the masternode and treasury shares
// of them.  It is implemented by standalone.SubsidyCache.
type RewardSchedule interface {
	CalcBlockSubsidy(height int64) int64
	CalcMasternodeSubsidy(height int64, level uint32, blockValue int64) int64
	CalcTreasurySubsidy(height int64) int64
}

// Peer is a connected peer that relays masternode payment messages.
type Peer interface {
	banmanager.Peer
	masternode.Requester

	ProtocolVersion() uint32
	QueueInventory(iv *btcwire.InvVect)
	QueueMessage(msg btcwire.Message)
}

// Misbehaver scores misbehaving peers.  It is implemented by
// banmanager.BanManager.
type Misbehaver interface {
	AddBanScore(p banmanager.Peer, persistent, transient uint32, reason string) bool
}

// Relayer announces inventory and messages to every connected peer.
type Relayer interface {
	RelayInventory(iv *btcwire.InvVect)
	BroadcastMessage(msg btcwire.Message)
}

// Metrics counts the outcomes of the payment operations.  Results are "ok" or
// the kind of the error that stopped the operation.
type Metrics interface {
	WinnerProcessed(result string)
	WinnersRequested(result string)
	BlockPayeeChecked(result string)
	SetVotes(n int)
}

// ActiveMasternode identifies the masternode run by the node.
type ActiveMasternode struct {
	Outpoint btcwire.OutPoint
	Key      *secp256k1.PrivateKey
}

// Config holds the collaborators of the payments.
type Config struct {
	Params      *chaincfg.Params
	Chain       Chain
	Masternodes MasternodeManager
	Sync        SyncTracker
	Sporks      Sporks
	Subsidy     RewardSchedule

	// Budget defaults to NoBudget.
	Budget Budget

	// Misbehaver, Relayer and Metrics are optional.
	Misbehaver Misbehaver
	Relayer    Relayer
	Metrics    Metrics

	// LiteMode disables the processing of masternode messages.
	LiteMode bool

	// ActiveMasternode is nil unless the node runs a masternode.
	ActiveMasternode *ActiveMasternode

	// Now defaults to time.Now.
	Now func() time.Time
}

// voterKey identifies the votes of a masternode for the payees of a tier.
type voterKey struct {
	voter btcwire.OutPoint
	level uint32
}

// Payments is the masternode payment state machine.
//
// The votes lock is always acquired before the blocks lock.
type Payments struct {
	cfg Config

	votesMtx  sync.RWMutex
	votes     map[chainhash.Hash]*Winner
	lastVotes map[voterKey]int32

	blocksMtx sync.RWMutex
	blocks    map[int32]*BlockPayees

	syncedPeers *lru.Set[int32]

	producerMtx     sync.Mutex
	lastBlockHeight int32

	refreshMtx  sync.Mutex
	lastRefresh time.Time
}

// New returns empty masternode payments using the passed collaborators.
func New(cfg *Config) *Payments {
	p := &Payments{
		cfg:         *cfg,
		votes:       make(map[chainhash.Hash]*Winner),
		lastVotes:   make(map[voterKey]int32),
		blocks:      make(map[int32]*BlockPayees),
		syncedPeers: lru.NewSet[int32](maxSyncedPeers),
	}
	if p.cfg.Budget == nil {
		p.cfg.Budget = NoBudget{}
	}
	if p.cfg.Metrics == nil {
		p.cfg.Metrics = noMetrics{}
	}
	if p.cfg.Now == nil {
		p.cfg.Now = time.Now
	}
	return p
}

// ResultOf returns the metrics result of an operation that returned err.
func ResultOf(err error) string {
	if err == nil {
		return "ok"
	}
	var kind ErrorKind
	if errors.As(err, &kind) {
		return string(kind)
	}
	return "error"
}

// ActiveProtocol returns the oldest protocol version masternodes and peers
// relaying masternode messages must run.
func (p *Payments) ActiveProtocol() uint32 {
	if p.cfg.Sporks.IsActive(spork.NewProtocolEnforcement) {
		return wire.MinPeerProtoVersionAfterEnforcement
	}
	return wire.MinPeerProtoVersionBeforeEnforcement
}

// MinPaymentsProto returns the oldest protocol version of the masternodes
// eligible for payment.
func (p *Payments) MinPaymentsProto() uint32 {
	if p.cfg.Sporks.IsActive(spork.MasternodePayUpdatedNodes) {
		return p.ActiveProtocol()
	}
	return wire.MinPeerProtoVersionBeforeEnforcement
}

func (p *Payments) misbehave(peer Peer, reason string) {
	if p.cfg.Misbehaver == nil {
		return
	}
	p.cfg.Misbehaver.AddBanScore(peer, misbehaviorScore, 0, reason)
}

// ProcessGetWinners handles a request for the recent winners from a peer.
func (p *Payments) ProcessGetWinners(peer Peer, msg *wire.MsgGetMasternodeWinners) error {
	err := p.processGetWinners(peer, msg)
	p.cfg.Metrics.WinnersRequested(ResultOf(err))
	return err
}

func (p *Payments) processGetWinners(peer Peer, msg *wire.MsgGetMasternodeWinners) error {
	if !p.cfg.Sync.IsBlockchainSynced() {
		return paymentError(ErrNotSynced, "blockchain is not synced")
	}
	if p.cfg.LiteMode {
		return paymentError(ErrLiteMode, "masternode messages are disabled")
	}

	if p.cfg.Params.ID == chaincfg.NetMain && p.syncedPeers.Contains(peer.ID()) {
		log.Infof("mnget - peer %s already asked me for the list", peer.Addr())
		p.misbehave(peer, "repeated masternode winners request")
		str := fmt.Sprintf("peer %s already asked for the winners", peer.Addr())
		return paymentError(ErrDuplicateRequest, str)
	}
	p.syncedPeers.Put(peer.ID())

	n := p.Sync(peer, msg.CountNeeded)
	log.Debugf("mnget - Sent %d masternode winners to peer %d", n, peer.ID())
	return nil
}

// Sync announces the winners of the recent and upcoming blocks to the peer,
// looking back up to countNeeded blocks per tier, followed by the number of
// winners announced.
func (p *Payments) Sync(peer Peer, countNeeded int32) int {
	counts := p.cfg.Masternodes.CountEnabledByLevels()
	for level, n := range counts {
		counts[level] = minInt(int(countNeeded), n*125/100)
	}

	p.votesMtx.RLock()
	defer p.votesMtx.RUnlock()

	tip, ok := p.cfg.Chain.TryTip()
	if !ok || tip == nil {
		return 0
	}

	var invCount int
	for hash, w := range p.votes {
		if w.BlockHeight < tip.Height-int32(counts[w.PayeeLevel]) ||
			w.BlockHeight > tip.Height+maxFutureBlocks {
			continue
		}
		hash := hash
		peer.QueueInventory(btcwire.NewInvVect(wire.InvTypeMasternodeWinner, &hash))
		invCount++
	}

	peer.QueueMessage(wire.NewMsgSyncStatusCount(wire.MasternodeSyncMNW,
		int32(invCount)))
	return invCount
}

// ProcessWinner handles a winner relayed by a peer and relays it further once
// accepted.
func (p *Payments) ProcessWinner(peer Peer, msg *wire.MsgMasternodeWinner) error {
	err := p.processWinner(peer, msg)
	p.cfg.Metrics.WinnerProcessed(ResultOf(err))
	return err
}

func (p *Payments) processWinner(peer Peer, msg *wire.MsgMasternodeWinner) error {
	if !p.cfg.Sync.IsBlockchainSynced() {
		return paymentError(ErrNotSynced, "blockchain is not synced")
	}
	if p.cfg.LiteMode {
		return paymentError(ErrLiteMode, "masternode messages are disabled")
	}
	if peer.ProtocolVersion() < p.ActiveProtocol() {
		str := fmt.Sprintf("peer %s runs obsolete protocol %d",
			peer.Addr(), peer.ProtocolVersion())
		return paymentError(ErrObsoletePeer, str)
	}

	tip, ok := p.cfg.Chain.TryTip()
	if !ok || tip == nil {
		return paymentError(ErrChainBusy, "chain tip is not available")
	}

	winner := &Winner{MsgMasternodeWinner: *msg}
	payee, ok := p.cfg.Masternodes.FindByPayee(winner.Payee)
	if !ok {
		str := fmt.Sprintf("mnw - unknown payee %s",
			payeeAddress(p.cfg.Params, winner.Payee))
		log.Debug(str)
		return paymentError(ErrUnknownPayee, str)
	}
	winner.PayeeLevel = payee.Level

	hash := winner.Hash()
	p.votesMtx.RLock()
	_, seen := p.votes[hash]
	p.votesMtx.RUnlock()
	if seen {
		log.Debugf("mnw - Already seen - %v bestHeight %d", hash, tip.Height)
		p.cfg.Sync.AddedMasternodeWinner(&hash)
		return paymentError(ErrWinnerSeen, fmt.Sprintf("winner %v already "+
			"seen", hash))
	}

	firstBlock := tip.Height -
		int32(p.cfg.Masternodes.CountEnabled(winner.PayeeLevel)*125/100)
	if winner.BlockHeight < firstBlock ||
		winner.BlockHeight > tip.Height+maxFutureBlocks {

		str := fmt.Sprintf("mnw - winner out of range - FirstBlock %d "+
			"Height %d bestHeight %d", firstBlock, winner.BlockHeight,
			tip.Height)
		log.Debug(str)
		return paymentError(ErrWinnerOutOfRange, str)
	}

	voter, err := p.checkWinner(peer, winner)
	if err != nil {
		return err
	}

	if err := winner.SignatureValid(voter.MasternodePubKey); err != nil {
		if p.cfg.Sync.IsSynced() {
			log.Infof("mnw - invalid signature from peer %s", peer.Addr())
			p.misbehave(peer, "invalid masternode winner signature")
		}
		// The voter may have changed its key since we last heard of it.
		p.cfg.Masternodes.AskFor(peer, &winner.Voter)
		str := fmt.Sprintf("winner %v has an invalid signature: %v", hash, err)
		return paymentError(ErrBadWinnerSignature, str)
	}

	if !p.CanVote(&winner.Voter, winner.BlockHeight, winner.PayeeLevel) {
		str := fmt.Sprintf("masternode %s already voted for height %d "+
			"level %d", wire.OutPointShortString(&winner.Voter),
			winner.BlockHeight, winner.PayeeLevel)
		return paymentError(ErrDoubleVote, str)
	}

	if err := p.AddWinningMasternode(winner); err != nil {
		return err
	}
	log.Debugf("mnw - winning vote - Addr %s Height %d bestHeight %d - %s",
		payeeAddress(p.cfg.Params, winner.Payee), winner.BlockHeight,
		tip.Height, wire.OutPointShortString(&winner.Voter))
	p.relay(winner)
	p.cfg.Sync.AddedMasternodeWinner(&hash)
	return nil
}

// checkWinner ensures the voter of the winner is known, up to date and ranked
// among the voters of the block.  It returns the voter.
func (p *Payments) checkWinner(peer Peer, winner *Winner) (*masternode.Masternode, error) {
	voter, ok := p.cfg.Masternodes.Find(&winner.Voter)
	if !ok {
		str := fmt.Sprintf("Unknown Masternode %v", winner.Voter.Hash)
		log.Debugf("mnw - %s", str)
		p.cfg.Masternodes.AskFor(peer, &winner.Voter)
		return nil, paymentError(ErrUnknownVoter, str)
	}

	activeProtocol := p.ActiveProtocol()
	if voter.ProtocolVersion < activeProtocol {
		str := fmt.Sprintf("Masternode protocol too old %d - req %d",
			voter.ProtocolVersion, activeProtocol)
		log.Debugf("mnw - %s", str)
		return nil, paymentError(ErrObsoleteVoter, str)
	}

	rank := p.rank(&winner.Voter, winner.BlockHeight-scoreDepth, activeProtocol)
	if rank == -1 {
		str := fmt.Sprintf("Unknown Masternode (rank==-1) %v", winner.Voter.Hash)
		log.Infof("mnw - %s", str)
		return nil, paymentError(ErrVoterNotRanked, str)
	}
	if rank > SignaturesTotal {
		str := fmt.Sprintf("Masternode not in the top %d (%d)",
			SignaturesTotal, rank)

		// Masternodes commonly believe they are in the top ranks, so
		// only the ones far off are punished.
		if rank > SignaturesTotal*2 {
			log.Debugf("mnw - %s", str)
			if p.cfg.Sync.IsSynced() &&
				p.cfg.Sporks.IsActive(spork.MasternodePaymentEnforcement) {

				p.misbehave(peer, "masternode winner voter not ranked")
			}
		}
		return nil, paymentError(ErrVoterNotRanked, str)
	}
	return voter, nil
}

// rank returns the rank of the masternode among the enabled masternodes
// running at least minProto for the block at height, or -1 when either is
// unknown.
func (p *Payments) rank(op *btcwire.OutPoint, height int32, minProto uint32) int {
	node := p.cfg.Chain.NodeAtHeight(height)
	if node == nil {
		return -1
	}
	return p.cfg.Masternodes.Rank(op, &node.Hash, minProto)
}

func (p *Payments) relay(w *Winner) {
	if p.cfg.Relayer == nil {
		return
	}
	p.cfg.Relayer.RelayInventory(w.InvVect())
}

// CanVote records a vote of the masternode for the payee of the tier at
// height.  It returns false when the masternode already voted for that height
// or a later one.
func (p *Payments) CanVote(voter *btcwire.OutPoint, height int32, level uint32) bool {
	key := voterKey{voter: *voter, level: level}

	p.votesMtx.Lock()
	defer p.votesMtx.Unlock()

	if last, ok := p.lastVotes[key]; ok && last >= height {
		return false
	}
	p.lastVotes[key] = height
	return true
}

// AddWinningMasternode adds the vote to the payees of its block.
func (p *Payments) AddWinningMasternode(w *Winner) error {
	if p.cfg.Chain.NodeAtHeight(w.BlockHeight-scoreDepth) == nil {
		str := fmt.Sprintf("no scoring block for a winner at height %d",
			w.BlockHeight)
		return paymentError(ErrMissingScoringBlock, str)
	}

	hash := w.Hash()
	p.votesMtx.Lock()
	defer p.votesMtx.Unlock()
	p.blocksMtx.Lock()
	defer p.blocksMtx.Unlock()

	if _, ok := p.votes[hash]; ok {
		return paymentError(ErrWinnerSeen, fmt.Sprintf("winner %v already "+
			"seen", hash))
	}
	p.addWinner(hash, w)
	p.cfg.Metrics.SetVotes(len(p.votes))
	return nil
}

// addWinner stores the vote and counts it for its payee.
//
// This function MUST be called with the votes and blocks locks held (for
// writes).
func (p *Payments) addWinner(hash chainhash.Hash, w *Winner) {
	p.votes[hash] = w
	bp, ok := p.blocks[w.BlockHeight]
	if !ok {
		bp = newBlockPayees(w.BlockHeight)
		p.blocks[w.BlockHeight] = bp
	}
	bp.AddPayee(w.PayeeLevel, w.Payee, 1)
}

// Winner returns the accepted vote with the given hash.
func (p *Payments) Winner(hash *chainhash.Hash) (*Winner, bool) {
	p.votesMtx.RLock()
	w, ok := p.votes[*hash]
	p.votesMtx.RUnlock()
	return w, ok
}

// BlockPayee returns the payee of the tier with the most votes for the block
// at height.
func (p *Payments) BlockPayee(height int32, level uint32) ([]byte, bool) {
	p.blocksMtx.RLock()
	bp, ok := p.blocks[height]
	p.blocksMtx.RUnlock()
	if !ok {
		return nil, false
	}
	return bp.Payee(level)
}

// IsScheduled returns whether the masternode is the winning payee of its tier
// for the blocks from the tip up to eight blocks above it, ignoring the block
// at notHeight.
//
// This is part of the masternode.PaymentSchedule interface.
func (p *Payments) IsScheduled(mn *masternode.Masternode, notHeight int32) bool {
	tip, ok := p.cfg.Chain.TryTip()
	if !ok || tip == nil {
		return false
	}

	p.blocksMtx.RLock()
	defer p.blocksMtx.RUnlock()

	for h := tip.Height; h <= tip.Height+scheduleLookahead; h++ {
		if h == notHeight {
			continue
		}
		bp, ok := p.blocks[h]
		if !ok {
			continue
		}
		if payee, ok := bp.Payee(mn.Level); ok && mn.IsPayee(payee) {
			return true
		}
	}
	return false
}

// ProcessBlock votes for the payees of every tier of the block at height when
// the node runs a masternode ranked among the voters of that block.  It
// returns whether any vote was cast.
func (p *Payments) ProcessBlock(height int32) bool {
	active := p.cfg.ActiveMasternode
	if active == nil {
		return false
	}

	p.producerMtx.Lock()
	defer p.producerMtx.Unlock()

	if height <= p.lastBlockHeight {
		return false
	}

	rank := p.rank(&active.Outpoint, height-scoreDepth, p.ActiveProtocol())
	if rank == -1 {
		log.Debugf("ProcessBlock - Unknown Masternode")
		return false
	}
	if rank > SignaturesTotal {
		log.Debugf("ProcessBlock - Masternode not in the top %d (%d)",
			SignaturesTotal, rank)
		return false
	}

	log.Infof("ProcessBlock Start nHeight %d - vin %v", height,
		active.Outpoint.Hash)

	var winners []*Winner
	if p.cfg.Budget.IsBudgetPaymentBlock(height) {
		log.Debugf("ProcessBlock - height %d is paid by the budget", height)
	} else {
		for level := masternode.LevelMin; level <= masternode.LevelMax; level++ {
			mn, _ := p.cfg.Masternodes.NextInQueueForPayment(height, level,
				true, p)
			if mn == nil {
				log.Infof("ProcessBlock Failed to find masternode level %d "+
					"to pay", level)
				continue
			}

			payee := mn.Payee()
			w := NewWinner(active.Outpoint, height, payee, level)
			log.Infof("ProcessBlock Winner payee %s nHeight %d level %d",
				payeeAddress(p.cfg.Params, payee), height, level)

			if err := w.Sign(active.Key); err != nil {
				log.Errorf("ProcessBlock - Signing Winner level %d: %v",
					level, err)
				continue
			}
			if err := p.AddWinningMasternode(w); err != nil {
				log.Debugf("ProcessBlock - AddWinningMasternode level %d: %v",
					level, err)
				continue
			}
			winners = append(winners, w)
		}
	}

	if len(winners) == 0 {
		return false
	}
	for _, w := range winners {
		p.relay(w)
	}
	p.lastBlockHeight = height
	return true
}

// IsTransactionValid returns whether tx pays the masternode payees voted for
// the block at height.  Blocks without enough votes are valid.
func (p *Payments) IsTransactionValid(tx *btcwire.MsgTx, height int32) bool {
	p.blocksMtx.RLock()
	bp, ok := p.blocks[height]
	p.blocksMtx.RUnlock()
	if !ok {
		return true
	}

	payNewTiers := p.cfg.Sporks.IsActive(spork.NewMasternodeTiers)
	valid, missing := bp.isTransactionValid(tx, p.cfg.Params, p.cfg.Subsidy,
		payNewTiers)
	if valid {
		return true
	}

	log.Infof("IsTransactionValid - Missing required payment to %s", missing)
	p.requestRefresh()
	if p.cfg.Sporks.IsActive(spork.NewProtocolEnforcement4) {
		return false
	}
	log.Debugf("IsTransactionValid - accepting block %d before protocol "+
		"enforcement", height)
	return true
}

// requestRefresh asks every peer for the recent winners, at most once per
// refresh interval.
func (p *Payments) requestRefresh() {
	if p.cfg.Relayer == nil {
		return
	}

	now := p.cfg.Now()
	p.refreshMtx.Lock()
	if now.Sub(p.lastRefresh) < refreshInterval {
		p.refreshMtx.Unlock()
		return
	}
	p.lastRefresh = now
	p.refreshMtx.Unlock()

	count := int32(p.cfg.Masternodes.CountEnabled(0))
	p.cfg.Relayer.BroadcastMessage(wire.NewMsgGetMasternodeWinners(count))
}

// MasternodePaymentsString returns the candidate masternode payees of the
// block at height or "Unknown".
func (p *Payments) MasternodePaymentsString(height int32) string {
	p.blocksMtx.RLock()
	bp, ok := p.blocks[height]
	p.blocksMtx.RUnlock()
	if !ok {
		return "Unknown"
	}
	return bp.requiredPaymentsString(p.cfg.Params)
}

// Clean removes the votes older than the larger of 1000 blocks and a quarter
// more blocks than there are masternodes, along with their blocks.
func (p *Payments) Clean() {
	p.votesMtx.Lock()
	defer p.votesMtx.Unlock()
	p.blocksMtx.Lock()
	defer p.blocksMtx.Unlock()

	tip, ok := p.cfg.Chain.TryTip()
	if !ok || tip == nil {
		return
	}

	limit := int32(maxInt(p.cfg.Masternodes.Size()*125/100, minCleanLimit))
	for hash, w := range p.votes {
		if tip.Height-w.BlockHeight <= limit {
			continue
		}
		log.Debugf("Clean - Removing old Masternode payment - block %d",
			w.BlockHeight)
		hash := hash
		if p.cfg.Sync != nil {
			p.cfg.Sync.ForgetMasternodeWinner(&hash)
		}
		delete(p.votes, hash)
		delete(p.blocks, w.BlockHeight)
	}
	p.cfg.Metrics.SetVotes(len(p.votes))
}

// OldestBlock returns the lowest height with votes, or math.MaxInt32 without
// any.
func (p *Payments) OldestBlock() int32 {
	p.blocksMtx.RLock()
	defer p.blocksMtx.RUnlock()

	oldest := int32(math.MaxInt32)
	for height := range p.blocks {
		if height < oldest {
			oldest = height
		}
	}
	return oldest
}

// NewestBlock returns the highest height with votes, or zero without any.
func (p *Payments) NewestBlock() int32 {
	p.blocksMtx.RLock()
	defer p.blocksMtx.RUnlock()

	var newest int32
	for height := range p.blocks {
		if height > newest {
			newest = height
		}
	}
	return newest
}

// String returns the number of votes and blocks.
func (p *Payments) String() string {
	p.votesMtx.RLock()
	defer p.votesMtx.RUnlock()
	p.blocksMtx.RLock()
	defer p.blocksMtx.RUnlock()
	return fmt.Sprintf("Votes: %d, Blocks: %d", len(p.votes), len(p.blocks))
}

// clear removes every vote and block.
func (p *Payments) clear() {
	p.votesMtx.Lock()
	defer p.votesMtx.Unlock()
	p.blocksMtx.Lock()
	defer p.blocksMtx.Unlock()

	p.votes = make(map[chainhash.Hash]*Winner)
	p.lastVotes = make(map[voterKey]int32)
	p.blocks = make(map[int32]*BlockPayees)
}

// noMetrics discards the payment metrics.
type noMetrics struct{}

func (noMetrics) WinnerProcessed(string)   {}
func (noMetrics) WinnersRequested(string)  {}
func (noMetrics) BlockPayeeChecked(string) {}
func (noMetrics) SetVotes(int)             {}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
