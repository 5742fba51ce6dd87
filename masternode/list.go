// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package masternode

import (
	"sort"
	"sync"
	"time"

	"github.com/beetlecoin/beetled/blockchain"
	"github.com/beetlecoin/beetled/wire"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	btcwire "github.com/btcsuite/btcd/wire"
	"github.com/decred/dcrd/container/lru"
	"github.com/decred/dcrd/math/uint256"
)

const (
	// askForInterval is how long to wait before asking peers for the same
	// missing masternode again.
	askForInterval = 10 * time.Minute

	// maxAskedFor is the number of outstanding masternode requests tracked.
	maxAskedFor = 2048

	// secondsPerQueuedNode is how long a newly announced masternode waits
	// per enabled masternode before it enters the payment queue.
	secondsPerQueuedNode = 156

	// scoreDepth is how far below the payment height the block hash used
	// to score masternodes for payment is taken from.
	scoreDepth = 100
)

// ChainView is the part of the block index the list reads.
type ChainView interface {
	Tip() *blockchain.BlockNode
	NodeAtHeight(height int32) *blockchain.BlockNode
}

// Requester asks a peer for the announcement of a masternode.
type Requester interface {
	RequestMasternode(op *btcwire.OutPoint)
}

// PaymentSchedule tells the payment queue which masternodes are already
// scheduled to be paid.
type PaymentSchedule interface {
	// IsScheduled returns whether mn is a winning payee of one of the next
	// blocks, ignoring the block at notHeight.
	IsScheduled(mn *Masternode, notHeight int32) bool
}

// Config holds the collaborators of a masternode list.
type Config struct {
	Chain ChainView

	// MinProtocol returns the oldest protocol version counted as enabled.
	// It defaults to the version accepted before protocol enforcement.
	MinProtocol func() uint32

	// Now defaults to time.Now.
	Now func() time.Time
}

// List is the set of known masternodes.
//
// The list is safe for concurrent access.  Records returned by its methods are
// copies.
type List struct {
	cfg Config

	mtx   sync.RWMutex
	nodes map[btcwire.OutPoint]*Masternode

	askedFor *lru.Set[btcwire.OutPoint]
}

// NewList returns an empty masternode list.
func NewList(cfg *Config) *List {
	l := &List{
		cfg:      *cfg,
		nodes:    make(map[btcwire.OutPoint]*Masternode),
		askedFor: lru.NewSetWithDefaultTTL[btcwire.OutPoint](maxAskedFor, askForInterval),
	}
	if l.cfg.MinProtocol == nil {
		l.cfg.MinProtocol = func() uint32 {
			return wire.MinPeerProtoVersionBeforeEnforcement
		}
	}
	if l.cfg.Now == nil {
		l.cfg.Now = time.Now
	}
	return l
}

// Add adds the masternode to the list, replacing the record with the same
// collateral outpoint.
func (l *List) Add(mn *Masternode) {
	l.mtx.Lock()
	_, replaced := l.nodes[mn.Outpoint]
	l.nodes[mn.Outpoint] = mn.clone()
	l.mtx.Unlock()

	l.askedFor.Delete(mn.Outpoint)
	if !replaced {
		log.Debugf("Added masternode %v", mn)
	}
}

// Remove removes the masternode with the given collateral outpoint.
func (l *List) Remove(op *btcwire.OutPoint) {
	l.mtx.Lock()
	delete(l.nodes, *op)
	l.mtx.Unlock()
}

// Find returns the masternode with the given collateral outpoint.
func (l *List) Find(op *btcwire.OutPoint) (*Masternode, bool) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	mn, ok := l.nodes[*op]
	if !ok {
		return nil, false
	}
	return mn.clone(), true
}

// FindByPayee returns the masternode paid by the script.
func (l *List) FindByPayee(script []byte) (*Masternode, bool) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	for _, mn := range l.nodes {
		if mn.IsPayee(script) {
			return mn.clone(), true
		}
	}
	return nil, false
}

// SetLastPaid records the unix time the masternode was last paid at.
func (l *List) SetLastPaid(op *btcwire.OutPoint, t int64) {
	l.mtx.Lock()
	if mn, ok := l.nodes[*op]; ok && t > mn.LastPaid {
		mn.LastPaid = t
	}
	l.mtx.Unlock()
}

// SetEnabled enables or disables the masternode.
func (l *List) SetEnabled(op *btcwire.OutPoint, enabled bool) {
	l.mtx.Lock()
	if mn, ok := l.nodes[*op]; ok {
		mn.Enabled = enabled
	}
	l.mtx.Unlock()
}

// Size returns the number of masternodes, enabled or not.
func (l *List) Size() int {
	l.mtx.RLock()
	n := len(l.nodes)
	l.mtx.RUnlock()
	return n
}

// countEnabled returns the number of enabled masternodes of the tier running
// at least minProto.  A zero level counts every tier.
//
// This function MUST be called with the list lock held (for reads).
func (l *List) countEnabled(level, minProto uint32) int {
	var n int
	for _, mn := range l.nodes {
		if !mn.Enabled || mn.ProtocolVersion < minProto {
			continue
		}
		if level != 0 && mn.Level != level {
			continue
		}
		n++
	}
	return n
}

// CountEnabled returns the number of enabled masternodes of the tier.  A zero
// level counts every tier.
func (l *List) CountEnabled(level uint32) int {
	minProto := l.cfg.MinProtocol()
	l.mtx.RLock()
	n := l.countEnabled(level, minProto)
	l.mtx.RUnlock()
	return n
}

// CountEnabledByLevels returns the number of enabled masternodes of every tier.
func (l *List) CountEnabledByLevels() map[uint32]int {
	minProto := l.cfg.MinProtocol()
	counts := make(map[uint32]int, LevelMax-LevelMin+1)
	for level := LevelMin; level <= LevelMax; level++ {
		counts[level] = 0
	}

	l.mtx.RLock()
	for _, mn := range l.nodes {
		if mn.Enabled && mn.ProtocolVersion >= minProto {
			counts[mn.Level]++
		}
	}
	l.mtx.RUnlock()
	return counts
}

type scored struct {
	mn    *Masternode
	score uint256.Uint256
}

// Rank returns the 1-based rank by descending score for the block with the
// given hash of the masternode among the enabled ones running at least
// minProto.  It returns -1 when the masternode is not ranked.
func (l *List) Rank(op *btcwire.OutPoint, blockHash *chainhash.Hash, minProto uint32) int {
	l.mtx.RLock()
	ranked := make([]scored, 0, len(l.nodes))
	for _, mn := range l.nodes {
		if mn.ProtocolVersion < minProto || !mn.Enabled {
			continue
		}
		ranked = append(ranked, scored{mn: mn, score: mn.Score(blockHash)})
	}
	l.mtx.RUnlock()

	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].score.Gt(&ranked[j].score)
	})
	for i := range ranked {
		if ranked[i].mn.Outpoint == *op {
			return i + 1
		}
	}
	return -1
}

// CurrentMasternode returns the enabled masternode of the tier with the
// highest score for the block with the given hash.
func (l *List) CurrentMasternode(level uint32, blockHash *chainhash.Hash) (*Masternode, bool) {
	minProto := l.cfg.MinProtocol()

	l.mtx.RLock()
	defer l.mtx.RUnlock()
	var best *Masternode
	var bestScore uint256.Uint256
	for _, mn := range l.nodes {
		if !mn.Enabled || mn.Level != level || mn.ProtocolVersion < minProto {
			continue
		}
		score := mn.Score(blockHash)
		if best == nil || score.Gt(&bestScore) {
			best, bestScore = mn, score
		}
	}
	if best == nil {
		return nil, false
	}
	return best.clone(), true
}

// NextInQueueForPayment returns the masternode of the tier that should be paid
// by the block at the given height, along with the number of masternodes that
// were eligible.
//
// Eligible masternodes are enabled, not already scheduled, confirmed at least
// as many times as there are enabled masternodes of the tier and, when
// filterSigTime is set, announced long enough ago.  Among the tenth of them
// that waited the longest since their last payment, the one with the highest
// score for the block a hundred blocks below wins.
func (l *List) NextInQueueForPayment(height int32, level uint32, filterSigTime bool, schedule PaymentSchedule) (*Masternode, int) {
	tip := l.cfg.Chain.Tip()
	if tip == nil {
		return nil, 0
	}
	minProto := l.cfg.MinProtocol()
	now := l.cfg.Now()

	l.mtx.RLock()
	count := l.countEnabled(level, minProto)
	candidates := make([]*Masternode, 0, count)
	for _, mn := range l.nodes {
		if !mn.Enabled || mn.Level != level || mn.ProtocolVersion < minProto {
			continue
		}
		candidates = append(candidates, mn.clone())
	}
	l.mtx.RUnlock()

	var queue []*Masternode
	for _, mn := range candidates {
		if schedule != nil && schedule.IsScheduled(mn, height) {
			continue
		}
		if filterSigTime && mn.SigTime+int64(count)*secondsPerQueuedNode > now.Unix() {
			continue
		}
		if mn.InputAge(tip.Height) < int32(count) {
			continue
		}
		queue = append(queue, mn)
	}

	// Do not penalize masternodes that restarted recently while the
	// network upgrades.
	if filterSigTime && len(queue) < count/3 {
		return l.NextInQueueForPayment(height, level, false, schedule)
	}

	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].SecondsSincePayment(now) > queue[j].SecondsSincePayment(now)
	})

	node := l.cfg.Chain.NodeAtHeight(height - scoreDepth)
	if node == nil {
		return nil, len(queue)
	}
	tenth := count / 10
	var best *Masternode
	var bestScore uint256.Uint256
	for i, mn := range queue {
		score := mn.Score(&node.Hash)
		if score.Gt(&bestScore) {
			best, bestScore = mn, score
		}
		if i+1 >= tenth {
			break
		}
	}
	return best, len(queue)
}

// AskFor asks the peer for the announcement of the masternode unless it was
// already asked for recently.
func (l *List) AskFor(peer Requester, op *btcwire.OutPoint) {
	if l.askedFor.Contains(*op) {
		return
	}
	l.askedFor.Put(*op)
	log.Debugf("Asking peer for missing masternode entry %v", op)
	peer.RequestMasternode(op)
}
