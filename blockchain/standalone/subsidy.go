// Copyright (c) 2015-2019 The Decred developers
// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package standalone

import (
	"sort"
	"sync"
)

// SubsidyParams defines an interface that is used to provide the parameters
// required when calculating block values, masternode payments and treasury
// awards.  These values are typically well-defined and unique per network.
type SubsidyParams interface {
	// BlockOneSubsidy returns the total subsidy of block height 1 for the
	// network.  This is separate since it encompasses the initial coin
	// distribution.
	BlockOneSubsidy() int64

	// BaseSubsidyValue returns the starting block value.  This value is
	// reduced over time as controlled by the SubsidyReductionIntervalBlocks,
	// SubsidyReductionMultiplier, and SubsidyReductionDivisor parameters.
	BaseSubsidyValue() int64

	// SubsidyReductionMultiplier returns the multiplier to use when performing
	// the exponential subsidy reduction described by the CalcBlockSubsidy
	// documentation.
	SubsidyReductionMultiplier() int64

	// SubsidyReductionDivisor returns the divisor to use when performing the
	// exponential subsidy reduction described by the CalcBlockSubsidy
	// documentation.
	SubsidyReductionDivisor() int64

	// SubsidyReductionIntervalBlocks returns the reduction interval in number
	// of blocks.
	SubsidyReductionIntervalBlocks() int64

	// MasternodeSubsidyProportion returns the percentage of the block value
	// paid to the masternode of the given tier.
	MasternodeSubsidyProportion(level uint32) uint16

	// TreasurySubsidyProportion returns the percentage of each block value
	// accrued by the treasury between two treasury blocks.
	TreasurySubsidyProportion() uint16

	// TreasuryBlockInterval returns the number of blocks between two
	// treasury payments.
	TreasuryBlockInterval() int64

	// IsTreasuryBlock returns whether or not the block at the given height
	// must carry a treasury payment.
	IsTreasuryBlock(height int64) bool
}

// SubsidyCache provides efficient access to consensus-critical subsidy
// calculations for blocks, masternodes and the treasury.
//
// It makes using of caching to avoid repeated calculations.
type SubsidyCache struct {
	// The following fields are protected by the mtx mutex.
	//
	// cache houses the cached subsidies keyed by reduction interval.
	//
	// cachedIntervals contains an ordered list of all cached intervals.  It is
	// used to efficiently track sparsely cached intervals with O(log N)
	// discovery of a prior cached interval.
	mtx             sync.RWMutex
	cache           map[uint64]int64
	cachedIntervals []uint64

	// params stores the subsidy parameters to use during subsidy calculation.
	params SubsidyParams
}

// NewSubsidyCache creates and initializes a new subsidy cache instance.  See
// the SubsidyCache documentation for more details.
func NewSubsidyCache(params SubsidyParams) *SubsidyCache {
	const prealloc = 5
	cache := make(map[uint64]int64, prealloc)
	cache[0] = params.BaseSubsidyValue()

	return &SubsidyCache{
		cache:           cache,
		cachedIntervals: make([]uint64, 1, prealloc),
		params:          params,
	}
}

// uint64s implements sort.Interface for *[]uint64.
type uint64s []uint64

func (s *uint64s) Len() int           { return len(*s) }
func (s *uint64s) Less(i, j int) bool { return (*s)[i] < (*s)[j] }
func (s *uint64s) Swap(i, j int)      { (*s)[i], (*s)[j] = (*s)[j], (*s)[i] }

// CalcBlockSubsidy returns the block value for a block at the provided
// height.
//
// Subsidy calculation for exponential reductions:
//
//	subsidy := BaseSubsidyValue()
//	for i := 0; i < (height / SubsidyReductionIntervalBlocks()); i++ {
//	  subsidy *= SubsidyReductionMultiplier()
//	  subsidy /= SubsidyReductionDivisor()
//	}
//
// This function is safe for concurrent access.
func (c *SubsidyCache) CalcBlockSubsidy(height int64) int64 {
	// Negative block heights are invalid and produce no subsidy.
	// Block 0 is the genesis block and produces no subsidy.
	// Block 1 subsidy is special as it is used for initial coin distribution.
	switch {
	case height <= 0:
		return 0
	case height == 1:
		return c.params.BlockOneSubsidy()
	}

	interval := c.params.SubsidyReductionIntervalBlocks()
	if interval <= 0 {
		return c.params.BaseSubsidyValue()
	}

	reqInterval := uint64(height / interval)
	c.mtx.RLock()
	if cachedSubsidy, ok := c.cache[reqInterval]; ok {
		c.mtx.RUnlock()
		return cachedSubsidy
	}
	lastCachedInterval := c.cachedIntervals[len(c.cachedIntervals)-1]
	lastCachedSubsidy := c.cache[lastCachedInterval]
	c.mtx.RUnlock()

	// When the requested interval is after the latest cached interval, either
	// the subsidy is already exhausted or the latest interval is the starting
	// point.  Otherwise, binary search for the latest cached interval prior
	// to the requested one.
	if reqInterval > lastCachedInterval {
		if lastCachedSubsidy == 0 {
			return 0
		}
	} else {
		c.mtx.RLock()
		cachedIdx := sort.Search(len(c.cachedIntervals), func(i int) bool {
			return c.cachedIntervals[i] >= reqInterval
		})
		lastCachedInterval = c.cachedIntervals[cachedIdx-1]
		lastCachedSubsidy = c.cache[lastCachedInterval]
		c.mtx.RUnlock()
	}

	reductionMultiplier := c.params.SubsidyReductionMultiplier()
	reductionDivisor := c.params.SubsidyReductionDivisor()
	subsidy := lastCachedSubsidy
	neededIntervals := reqInterval - lastCachedInterval
	for i := uint64(0); i < neededIntervals; i++ {
		subsidy *= reductionMultiplier
		subsidy /= reductionDivisor

		// Stop once no further reduction is possible.
		if subsidy == 0 {
			reqInterval = lastCachedInterval + i + 1
			break
		}
	}

	c.mtx.Lock()
	if _, ok := c.cache[reqInterval]; !ok {
		c.cache[reqInterval] = subsidy
		c.cachedIntervals = append(c.cachedIntervals, reqInterval)
		sort.Sort((*uint64s)(&c.cachedIntervals))
	}
	c.mtx.Unlock()
	return subsidy
}

// CalcMasternodeSubsidy returns the payment owed to the masternode of the
// given tier out of blockValue.  Unknown tiers are owed nothing.
//
// This function is safe for concurrent access.
func (c *SubsidyCache) CalcMasternodeSubsidy(height int64, level uint32, blockValue int64) int64 {
	if height <= 1 || blockValue <= 0 {
		return 0
	}
	proportion := int64(c.params.MasternodeSubsidyProportion(level))
	return blockValue * proportion / 100
}

// CalcTreasurySubsidy returns the treasury award that must be paid by the
// block at the provided height.  It is the treasury share of the block value
// accrued over one treasury interval and zero for every block that is not a
// treasury block.
//
// This function is safe for concurrent access.
func (c *SubsidyCache) CalcTreasurySubsidy(height int64) int64 {
	if !c.params.IsTreasuryBlock(height) {
		return 0
	}
	proportion := int64(c.params.TreasurySubsidyProportion())
	perBlock := c.CalcBlockSubsidy(height) * proportion / 100
	return perBlock * c.params.TreasuryBlockInterval()
}
