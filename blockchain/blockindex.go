// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2018-2020 The Decred developers
// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"sync"
	"time"

	"github.com/beetlecoin/beetled/chaincfg"
	"github.com/beetlecoin/beetled/wire"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// BlockFlags is a bit field describing the stake state of a block.
type BlockFlags uint32

// The following constants specify the possible flags of a block.
//
// NOTE: The values are committed to by the stake modifier checksum and must
// not change.
const (
	// FlagProofOfStake indicates the block is a proof-of-stake block.
	FlagProofOfStake BlockFlags = 1 << 0

	// FlagStakeEntropy holds the stake entropy bit of the block.
	FlagStakeEntropy BlockFlags = 1 << 1

	// FlagStakeModifier indicates the stake modifier of the block was
	// generated at this block rather than inherited from its parent.
	FlagStakeModifier BlockFlags = 1 << 2
)

// NoParent is the parent index of the genesis block.
const NoParent int32 = -1

// BlockNode represents a block within the block index.  Nodes live in the
// arena of the owning BlockIndex and refer to their parent by arena index.
type BlockNode struct {
	// Hash is the hash of the block this node represents.
	Hash chainhash.Hash

	// ProofHash is the kernel hash of proof-of-stake blocks.  It is zero for
	// proof-of-work blocks.
	ProofHash chainhash.Hash

	// ID is the arena index of the node and Parent the arena index of its
	// parent, or NoParent for the genesis block.
	ID     int32
	Parent int32

	Height int32
	Time   int64
	Bits   uint32
	Flags  BlockFlags

	// StakeModifier and StakeModifierChecksum are assigned once when the
	// block is connected.
	StakeModifier         uint64
	StakeModifierChecksum uint32

	modifierSet bool
}

// IsProofOfStake returns whether the block is a proof-of-stake block.
func (node *BlockNode) IsProofOfStake() bool {
	return node.Flags&FlagProofOfStake != 0
}

// IsProofOfWork returns whether the block is a proof-of-work block.
func (node *BlockNode) IsProofOfWork() bool {
	return !node.IsProofOfStake()
}

// GeneratedStakeModifier returns whether a new stake modifier was generated at
// this block.
func (node *BlockNode) GeneratedStakeModifier() bool {
	return node.Flags&FlagStakeModifier != 0
}

// StakeEntropyBit returns the stake entropy bit of the block.
func (node *BlockNode) StakeEntropyBit() uint64 {
	return uint64(node.Flags&FlagStakeEntropy) >> 1
}

// HasStakeModifier returns whether the stake modifier of the block has been
// assigned.
func (node *BlockNode) HasStakeModifier() bool {
	return node.modifierSet
}

// Timestamp returns the block time.
func (node *BlockNode) Timestamp() time.Time {
	return time.Unix(node.Time, 0)
}

// String returns the block hash and height in human-readable form.
func (node *BlockNode) String() string {
	return fmt.Sprintf("%s (height %d)", node.Hash, node.Height)
}

// blockEntropyBit returns the stake entropy bit carried by a block hash, which
// is the lowest bit of its first 64-bit word.
func blockEntropyBit(hash *chainhash.Hash) BlockFlags {
	if hash[0]&1 != 0 {
		return FlagStakeEntropy
	}
	return 0
}

// BlockIndex provides facilities for keeping track of an in-memory index of the
// block chain along with the currently active best chain.  Nodes are allocated
// in an arena and addressed by integer index.
//
// The embedded mutex plays the role of the main chain lock: the chain manager
// holds it for writes while connecting blocks and readers that must not block
// network ingress use the Try variants.
type BlockIndex struct {
	params *chaincfg.Params

	sync.RWMutex
	nodes []*BlockNode
	index map[chainhash.Hash]int32

	// chain holds the arena index of every block of the best chain keyed by
	// height.
	chain []int32
}

// NewBlockIndex returns a new block index that contains the genesis block of
// the passed network as its only node and best chain tip.
func NewBlockIndex(params *chaincfg.Params) *BlockIndex {
	bi := &BlockIndex{
		params: params,
		index:  make(map[chainhash.Hash]int32),
	}

	header := &params.GenesisBlock.Header
	genesis := &BlockNode{
		Hash:   params.GenesisHash,
		ID:     0,
		Parent: NoParent,
		Height: 0,
		Time:   header.Timestamp.Unix(),
		Bits:   header.Bits,
		Flags:  blockEntropyBit(&params.GenesisHash),
	}
	bi.nodes = append(bi.nodes, genesis)
	bi.index[genesis.Hash] = 0
	bi.chain = []int32{0}
	return bi
}

// Params returns the network parameters of the index.
func (bi *BlockIndex) Params() *chaincfg.Params {
	return bi.params
}

// parent returns the parent of the passed node or nil for the genesis block.
//
// This function MUST be called with the block index lock held (for reads).
func (bi *BlockIndex) parent(node *BlockNode) *BlockNode {
	if node == nil || node.Parent == NoParent {
		return nil
	}
	// The slot of a pruned parent is nil.
	return bi.nodes[node.Parent]
}

// Parent returns the parent of the passed node or nil for the genesis block.
//
// This function is safe for concurrent access.
func (bi *BlockIndex) Parent(node *BlockNode) *BlockNode {
	bi.RLock()
	parent := bi.parent(node)
	bi.RUnlock()
	return parent
}

// AddNode creates a node for the passed header and adds it to the index.  The
// hash is given explicitly since the identifying hash of legacy headers is not
// computed by this package.  The stake entropy bit is derived from the hash.
//
// This function is safe for concurrent access.
func (bi *BlockIndex) AddNode(hash chainhash.Hash, header *wire.BlockHeader, flags BlockFlags) (*BlockNode, error) {
	bi.Lock()
	defer bi.Unlock()

	if _, ok := bi.index[hash]; ok {
		str := fmt.Sprintf("already have block %s", hash)
		return nil, ruleError(ErrDuplicateBlock, str)
	}
	parentID, ok := bi.index[header.PrevBlock]
	if !ok {
		str := fmt.Sprintf("previous block %s is not known", header.PrevBlock)
		return nil, ruleError(ErrMissingParent, str)
	}
	parent := bi.nodes[parentID]

	node := &BlockNode{
		Hash:   hash,
		ID:     int32(len(bi.nodes)),
		Parent: parentID,
		Height: parent.Height + 1,
		Time:   header.Timestamp.Unix(),
		Bits:   header.Bits,
		Flags:  flags&FlagProofOfStake | blockEntropyBit(&hash),
	}
	bi.nodes = append(bi.nodes, node)
	bi.index[hash] = node.ID
	return node, nil
}

// lookupNode returns the block node identified by the provided hash.  It will
// return nil if there is no entry for the hash.
//
// This function MUST be called with the block index lock held (for reads).
func (bi *BlockIndex) lookupNode(hash *chainhash.Hash) *BlockNode {
	id, ok := bi.index[*hash]
	if !ok {
		return nil
	}
	return bi.nodes[id]
}

// LookupNode returns the block node identified by the provided hash.  It will
// return nil if there is no entry for the hash.
//
// This function is safe for concurrent access.
func (bi *BlockIndex) LookupNode(hash *chainhash.Hash) *BlockNode {
	bi.RLock()
	node := bi.lookupNode(hash)
	bi.RUnlock()
	return node
}

// HaveBlock returns whether or not the block index contains the provided hash.
//
// This function is safe for concurrent access.
func (bi *BlockIndex) HaveBlock(hash *chainhash.Hash) bool {
	return bi.LookupNode(hash) != nil
}

// SetTip sets the best chain tip to the passed node, which must already be in
// the index.
//
// This function is safe for concurrent access.
func (bi *BlockIndex) SetTip(node *BlockNode) error {
	bi.Lock()
	defer bi.Unlock()

	if bi.lookupNode(&node.Hash) != node {
		return unknownBlockError(&node.Hash)
	}

	height := node.Height
	if int(height) >= len(bi.chain) {
		bi.chain = append(bi.chain, make([]int32, int(height)+1-len(bi.chain))...)
	} else {
		bi.chain = bi.chain[:height+1]
	}

	// Rewrite the chain from the new tip backwards until it joins the old
	// best chain.
	for n := node; n != nil; n = bi.parent(n) {
		if bi.chain[n.Height] == n.ID && n != node {
			break
		}
		bi.chain[n.Height] = n.ID
	}

	log.Debugf("New best chain tip %v", node)
	return nil
}

// tip returns the current best chain tip.
//
// This function MUST be called with the block index lock held (for reads).
func (bi *BlockIndex) tip() *BlockNode {
	return bi.nodes[bi.chain[len(bi.chain)-1]]
}

// Tip returns the current best chain tip.
//
// This function is safe for concurrent access.
func (bi *BlockIndex) Tip() *BlockNode {
	bi.RLock()
	tip := bi.tip()
	bi.RUnlock()
	return tip
}

// TryTip returns the current best chain tip without waiting for the chain
// manager.  The second return value is false when the index is locked for
// writes.
//
// This function is safe for concurrent access.
func (bi *BlockIndex) TryTip() (*BlockNode, bool) {
	if !bi.TryRLock() {
		return nil, false
	}
	tip := bi.tip()
	bi.RUnlock()
	return tip, true
}

// nodeAtHeight returns the best chain node at the passed height.
//
// This function MUST be called with the block index lock held (for reads).
func (bi *BlockIndex) nodeAtHeight(height int32) *BlockNode {
	if height < 0 || int(height) >= len(bi.chain) {
		return nil
	}
	return bi.nodes[bi.chain[height]]
}

// NodeAtHeight returns the best chain node at the passed height or nil when
// the height is beyond the tip.
//
// This function is safe for concurrent access.
func (bi *BlockIndex) NodeAtHeight(height int32) *BlockNode {
	bi.RLock()
	node := bi.nodeAtHeight(height)
	bi.RUnlock()
	return node
}

// contains returns whether the passed node is part of the best chain.
//
// This function MUST be called with the block index lock held (for reads).
func (bi *BlockIndex) contains(node *BlockNode) bool {
	return bi.nodeAtHeight(node.Height) == node
}

// Contains returns whether the passed node is part of the best chain.
//
// This function is safe for concurrent access.
func (bi *BlockIndex) Contains(node *BlockNode) bool {
	bi.RLock()
	ok := bi.contains(node)
	bi.RUnlock()
	return ok
}

// Next returns the best chain successor of the passed node.  It returns nil
// when the node is the tip or not part of the best chain.
//
// This function is safe for concurrent access.
func (bi *BlockIndex) Next(node *BlockNode) *BlockNode {
	bi.RLock()
	defer bi.RUnlock()
	if !bi.contains(node) {
		return nil
	}
	return bi.nodeAtHeight(node.Height + 1)
}

// ancestor returns the ancestor of the passed node at the provided height.
//
// This function MUST be called with the block index lock held (for reads).
func (bi *BlockIndex) ancestor(node *BlockNode, height int32) *BlockNode {
	if height < 0 || height > node.Height {
		return nil
	}
	n := node
	for n != nil && n.Height != height {
		// Jump once the walk reaches the best chain.
		if bi.contains(n) {
			return bi.nodeAtHeight(height)
		}
		n = bi.parent(n)
	}
	return n
}

// Ancestor returns the ancestor block node at the provided height by following
// the chain backwards from the passed node.  The returned block will be nil
// when a height is requested that is after the height of the passed node or
// is less than zero.
//
// This function is safe for concurrent access.
func (bi *BlockIndex) Ancestor(node *BlockNode, height int32) *BlockNode {
	bi.RLock()
	n := bi.ancestor(node, height)
	bi.RUnlock()
	return n
}

// SetStakeModifier assigns the stake modifier of the passed node along with
// whether it was generated at this block.  A modifier can only be assigned
// once; assigning a different value afterwards is an error.
//
// This function is safe for concurrent access.
func (bi *BlockIndex) SetStakeModifier(node *BlockNode, modifier uint64, generated bool) error {
	bi.Lock()
	defer bi.Unlock()

	if node.modifierSet {
		if node.StakeModifier == modifier && node.GeneratedStakeModifier() == generated {
			return nil
		}
		str := fmt.Sprintf("block %v already has stake modifier %016x",
			node, node.StakeModifier)
		return ruleError(ErrStakeModifierSet, str)
	}

	node.StakeModifier = modifier
	if generated {
		node.Flags |= FlagStakeModifier
	}
	node.modifierSet = true
	return nil
}

// SetProofHash records the proof hash of the passed node.
//
// This function is safe for concurrent access.
func (bi *BlockIndex) SetProofHash(node *BlockNode, hash *chainhash.Hash) {
	bi.Lock()
	node.ProofHash = *hash
	bi.Unlock()
}

// SetStakeModifierChecksum records the stake modifier checksum of the passed
// node.
//
// This function is safe for concurrent access.
func (bi *BlockIndex) SetStakeModifierChecksum(node *BlockNode, checksum uint32) {
	bi.Lock()
	node.StakeModifierChecksum = checksum
	bi.Unlock()
}

// PruneSideChains removes the side chain nodes that fork from the best chain
// deeper than the maximum reorganization depth, since they can no longer
// become part of the best chain.  It returns the number of removed nodes.
//
// This function is safe for concurrent access.
func (bi *BlockIndex) PruneSideChains() int {
	bi.Lock()
	defer bi.Unlock()

	cutoff := bi.tip().Height - bi.params.MaxReorgDepth
	var pruned int
	for id, node := range bi.nodes {
		if node == nil || bi.contains(node) {
			continue
		}

		forkHeight := int32(-1)
		for n := bi.parent(node); n != nil; n = bi.parent(n) {
			if bi.contains(n) {
				forkHeight = n.Height
				break
			}
		}
		if forkHeight >= cutoff {
			continue
		}

		delete(bi.index, node.Hash)
		pruned++
		log.Tracef("Pruned stale side chain block %v", node)

		// The slot is cleared rather than removed so that arena indices
		// remain stable.
		bi.nodes[id] = nil
	}
	return pruned
}

// Len returns the number of nodes in the index.
//
// This function is safe for concurrent access.
func (bi *BlockIndex) Len() int {
	bi.RLock()
	n := len(bi.index)
	bi.RUnlock()
	return n
}
