// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2019-2024 The doriand developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"
	"time"

	"github.com/doriansuite/doriand/chaincfg"
)

// findPrevTestNetDifficulty returns the difficulty of the previous block which
// did not have the special testnet minimum difficulty rule applied.
func findPrevTestNetDifficulty(startNode HeaderCtx, params *chaincfg.Params) uint32 {
	// Search backwards through the chain for the last block without
	// the special rule applied.
	blocksPerRetarget := params.DifficultyAdjustmentInterval()
	iterNode := startNode
	for iterNode != nil && iterNode.Height()%blocksPerRetarget != 0 &&
		iterNode.Bits() == params.PowLimitBits {

		iterNode = iterNode.Parent()
	}

	// Return the found difficulty or the minimum difficulty if no
	// appropriate block was found.
	lastBits := params.PowLimitBits
	if iterNode != nil {
		lastBits = iterNode.Bits()
	}
	return lastBits
}

// CalculateNextWorkRequired calculates the required difficulty for the block
// after the passed previous block node once a retarget boundary has been
// reached, given the timestamp of the first block in the retarget window.
//
// The calculation intentionally reproduces the reference implementation,
// including the single bit of precision lost when the current target occupies
// as many bits as the proof of work limit: the target is shifted right before
// the timespan multiplication and left afterwards so the intermediate product
// stays within 256 bits.
func CalculateNextWorkRequired(lastNode HeaderCtx, firstBlockTime int64,
	params *chaincfg.Params) uint32 {

	// For networks with retargeting disabled simply keep the current
	// difficulty.
	if params.PoWNoRetargeting {
		return lastNode.Bits()
	}

	// Limit the amount of adjustment that can occur to the previous
	// difficulty.
	targetTimespan := int64(params.TargetTimespan / time.Second)
	actualTimespan := lastNode.Timestamp() - firstBlockTime
	adjustedTimespan := actualTimespan
	if actualTimespan < targetTimespan/4 {
		adjustedTimespan = targetTimespan / 4
	} else if actualTimespan > targetTimespan*4 {
		adjustedTimespan = targetTimespan * 4
	}

	// Calculate new target difficulty as:
	//  currentDifficulty * (adjustedTimespan / targetTimespan)
	// The result uses integer division which means it will be slightly
	// rounded down.
	oldTarget := CompactToBig(lastNode.Bits())
	newTarget := new(big.Int).Set(oldTarget)

	// The intermediate product can exceed 256 bits by one bit when the
	// current target is already at the width of the proof of work limit.
	// The reference implementation drops the low bit around the
	// multiplication in that case and the precision loss is part of
	// consensus.
	shift := newTarget.BitLen() > params.PowLimit.BitLen()-1
	if shift {
		newTarget.Rsh(newTarget, 1)
	}
	newTarget.Mul(newTarget, big.NewInt(adjustedTimespan))
	newTarget.Div(newTarget, big.NewInt(targetTimespan))
	if shift {
		newTarget.Lsh(newTarget, 1)
	}

	// Limit new value to the proof of work limit.
	if newTarget.Cmp(params.PowLimit) > 0 {
		newTarget.Set(params.PowLimit)
	}

	// Log new target difficulty and return it.  The new target logging is
	// intentionally converting the bits back to a number instead of using
	// newTarget since conversion to the compact representation loses
	// precision.
	newTargetBits := BigToCompact(newTarget)
	log.Debugf("Difficulty retarget at block height %d", lastNode.Height()+1)
	log.Debugf("Old target %08x (%064x)", lastNode.Bits(), oldTarget)
	log.Debugf("New target %08x (%064x)", newTargetBits,
		CompactToBig(newTargetBits))
	log.Debugf("Actual timespan %v, adjusted timespan %v, target timespan %v",
		time.Duration(actualTimespan)*time.Second,
		time.Duration(adjustedTimespan)*time.Second,
		params.TargetTimespan)

	return newTargetBits
}

// GetNextWorkRequiredBTC calculates the required difficulty for the block
// after the passed previous block node using the periodic retarget rules in
// effect before the linearly weighted algorithms activated.
//
// The retarget window deliberately steps back the full adjustment interval
// rather than interval-1 blocks except for the very first retarget after
// genesis.  The off-by-one is inherited from upstream and preserved because
// changing it would change every historical target.
func GetNextWorkRequiredBTC(lastNode HeaderCtx, newBlockTime time.Time,
	params *chaincfg.Params) (uint32, error) {

	if params.PoWNoRetargeting {
		return lastNode.Bits(), nil
	}

	// Return the previous block's difficulty requirements if this block
	// is not at a difficulty retarget interval.
	blocksPerRetarget := params.DifficultyAdjustmentInterval()
	if (lastNode.Height()+1)%blocksPerRetarget != 0 {
		// For networks that support it, allow special reduction of the
		// required difficulty once too much time has elapsed without
		// mining a block.
		if params.ReduceMinDifficulty {
			// Return minimum difficulty when more than the desired
			// amount of time has elapsed without mining a block.
			reductionTime := int64(params.MinDiffReductionTime /
				time.Second)
			allowMinTime := lastNode.Timestamp() + reductionTime
			if newBlockTime.Unix() > allowMinTime {
				return params.PowLimitBits, nil
			}

			// The block was mined within the desired timeframe, so
			// return the difficulty for the last block which did
			// not have the special minimum difficulty rule applied.
			return findPrevTestNetDifficulty(lastNode, params), nil
		}

		// For the main network (or any unrecognized networks), simply
		// return the previous block's difficulty requirements.
		return lastNode.Bits(), nil
	}

	// Go back the full adjustment interval unless this is the first
	// retarget after genesis.
	blocksToGoBack := blocksPerRetarget
	if lastNode.Height()+1 == blocksPerRetarget {
		blocksToGoBack = blocksPerRetarget - 1
	}

	// Get the block node at the start of the retarget window.
	firstNode := lastNode.RelativeAncestorCtx(blocksToGoBack)
	if firstNode == nil {
		return 0, AssertError("unable to obtain previous retarget block")
	}

	return CalculateNextWorkRequired(lastNode, firstNode.Timestamp(),
		params), nil
}

// GetNextWorkRequired calculates the required difficulty for the block after
// the passed previous block node, selecting the retarget algorithm in effect
// at that block's height:
//
//   - heights strictly greater than the ASERT anchor height use the ASERT
//     algorithm
//   - heights at and after the LWMA fix height use the stabilized LWMA
//   - heights at and after the LWMA height use the original LWMA
//   - all earlier heights use the periodic retarget
//
// A nil previous node indicates the next block is the genesis block, for
// which the proof of work limit is required.
//
// This function is safe for concurrent access.
func GetNextWorkRequired(lastNode HeaderCtx, newBlockTime time.Time,
	params *chaincfg.Params) (uint32, error) {

	// Genesis block.
	if lastNode == nil {
		return params.PowLimitBits, nil
	}

	nextHeight := lastNode.Height() + 1
	switch {
	case nextHeight > params.ASERTHeight:
		return GetNextWorkRequiredASERT(lastNode, params)

	case nextHeight >= params.LWMAFixHeight:
		return GetNextWorkRequiredLWMAV2(lastNode, params), nil

	case nextHeight >= params.LWMAHeight:
		return GetNextWorkRequiredLWMA(lastNode, params), nil

	default:
		return GetNextWorkRequiredBTC(lastNode, newBlockTime, params)
	}
}
