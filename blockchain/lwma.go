// Copyright (c) 2019-2024 The doriand developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"
	"time"

	"github.com/doriansuite/doriand/chaincfg"
)

// lwmaSolvetimes walks the last blocks parent-child pairs ending at lastNode
// and returns the linearly weighted sum of their solvetimes along with the
// sum of the weights.  The newest pair receives the highest weight.  Each
// solvetime is clamped to [1, 6*T] so that out-of-order timestamps cannot
// drive the sum negative and a single outlier block cannot dominate it.
func lwmaSolvetimes(lastNode HeaderCtx, blocks, targetSpacing int64) (int64, int64) {
	var sumWeightedSolvetimes, sumWeights int64

	block := lastNode
	for i := blocks; i >= 1; i-- {
		prev := block.Parent()
		if prev == nil {
			break
		}

		solvetime := block.Timestamp() - prev.Timestamp()
		if solvetime < 1 {
			solvetime = 1
		}
		if solvetime > 6*targetSpacing {
			solvetime = 6 * targetSpacing
		}

		sumWeightedSolvetimes += solvetime * i
		sumWeights += i

		block = prev
	}

	return sumWeightedSolvetimes, sumWeights
}

// GetNextWorkRequiredLWMA calculates the required difficulty for the block
// after the passed previous block node using a linearly weighted moving
// average over the most recent solvetimes.
//
// The next target is the previous block's target scaled by the ratio of the
// weighted solvetime sum to the sum expected at the target spacing.  The
// weighted sum is clamped to within a factor of ten of the expected sum in
// either direction, so no single window can move the difficulty more than
// 10x.
func GetNextWorkRequiredLWMA(lastNode HeaderCtx, params *chaincfg.Params) uint32 {
	if params.PoWNoRetargeting {
		return lastNode.Bits()
	}

	// Only the blocks mined since activation are usable, up to the full
	// window.  Fewer than 3 solvetimes is not enough signal to retarget
	// on, so keep the current difficulty until at least 3 are available.
	targetSpacing := int64(params.TargetTimePerBlock / time.Second)
	height := int64(lastNode.Height()) + 1
	blocks := height - int64(params.LWMAHeight)
	if blocks > params.LWMAWindow {
		blocks = params.LWMAWindow
	}
	if blocks < 3 {
		return lastNode.Bits()
	}

	prevTarget := CompactToBig(lastNode.Bits())

	sumWeightedSolvetimes, sumWeights := lwmaSolvetimes(lastNode, blocks,
		targetSpacing)

	expectedWeightedSolvetimes := sumWeights * targetSpacing
	if sumWeightedSolvetimes < expectedWeightedSolvetimes/10 {
		sumWeightedSolvetimes = expectedWeightedSolvetimes / 10
	}
	if sumWeightedSolvetimes > expectedWeightedSolvetimes*10 {
		sumWeightedSolvetimes = expectedWeightedSolvetimes * 10
	}

	// nextTarget = prevTarget * sumWeightedSolvetimes / (sumWeights * T)
	nextTarget := new(big.Int).Mul(prevTarget,
		big.NewInt(sumWeightedSolvetimes))
	nextTarget.Div(nextTarget, big.NewInt(expectedWeightedSolvetimes))

	if nextTarget.Cmp(params.PowLimit) > 0 {
		nextTarget.Set(params.PowLimit)
	}

	return BigToCompact(nextTarget)
}

// GetNextWorkRequiredLWMAV2 calculates the required difficulty for the block
// after the passed previous block node using the stabilized variant of the
// linearly weighted moving average.
//
// It differs from GetNextWorkRequiredLWMA in two ways: the target at the
// start of the averaging window is used as the reference instead of the
// previous block's target, which removes the feedback loop between
// consecutive outputs, and the clamp on the weighted solvetime sum is
// tightened from 10x to 3x.
func GetNextWorkRequiredLWMAV2(lastNode HeaderCtx, params *chaincfg.Params) uint32 {
	if params.PoWNoRetargeting {
		return lastNode.Bits()
	}

	targetSpacing := int64(params.TargetTimePerBlock / time.Second)
	height := int64(lastNode.Height()) + 1
	blocks := height - int64(params.LWMAHeight)
	if blocks > params.LWMAWindow {
		blocks = params.LWMAWindow
	}
	if blocks < 3 {
		return lastNode.Bits()
	}

	// Reference the target at the start of the window rather than the
	// previous block.
	windowStart := lastNode
	for i := int64(0); i < blocks && windowStart.Parent() != nil; i++ {
		windowStart = windowStart.Parent()
	}
	referenceTarget := CompactToBig(windowStart.Bits())

	sumWeightedSolvetimes, sumWeights := lwmaSolvetimes(lastNode, blocks,
		targetSpacing)

	expectedWeightedSolvetimes := sumWeights * targetSpacing
	if sumWeightedSolvetimes < expectedWeightedSolvetimes/3 {
		sumWeightedSolvetimes = expectedWeightedSolvetimes / 3
	}
	if sumWeightedSolvetimes > expectedWeightedSolvetimes*3 {
		sumWeightedSolvetimes = expectedWeightedSolvetimes * 3
	}

	nextTarget := new(big.Int).Mul(referenceTarget,
		big.NewInt(sumWeightedSolvetimes))
	nextTarget.Div(nextTarget, big.NewInt(expectedWeightedSolvetimes))

	if nextTarget.Cmp(params.PowLimit) > 0 {
		nextTarget.Set(params.PowLimit)
	}

	return BigToCompact(nextTarget)
}
