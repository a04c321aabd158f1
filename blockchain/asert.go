// Copyright (c) 2019-2024 The doriand developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"
	"sync"
	"time"

	"github.com/doriansuite/doriand/chaincfg"
)

// radix is the fixed-point scale used by the ASERT exponent: 2^16.
const radix = 65536

// The ASERT anchor block never changes for a given chain once the activation
// height has been reached, so it is cached after the first walk.  The cache
// must be reset whenever the chain history at or before the anchor height
// changes, such as a reorganization across the anchor.
var (
	asertAnchorMtx sync.Mutex
	asertAnchor    HeaderCtx
)

// ResetASERTAnchorCache clears the cached ASERT anchor block.  Callers must
// quiesce concurrent difficulty calculations around a reorganization that
// crosses the anchor height before resetting.
func ResetASERTAnchorCache() {
	asertAnchorMtx.Lock()
	asertAnchor = nil
	asertAnchorMtx.Unlock()
}

// asertAnchorBlock returns the anchor block at the ASERT activation height by
// walking backwards from the passed node, caching the result for subsequent
// calls.
func asertAnchorBlock(lastNode HeaderCtx, params *chaincfg.Params) (HeaderCtx, error) {
	asertAnchorMtx.Lock()
	defer asertAnchorMtx.Unlock()

	if asertAnchor != nil {
		return asertAnchor, nil
	}

	node := lastNode
	for node.Height() > params.ASERTHeight {
		node = node.Parent()
		if node == nil {
			return nil, AssertError("asert anchor walk ran past genesis")
		}
	}
	if node.Height() != params.ASERTHeight {
		return nil, AssertError("no block at the asert anchor height")
	}

	asertAnchor = node
	return node, nil
}

// asertFactor approximates radix * 2^(frac/radix) for frac in [0, radix)
// using the cubic polynomial from the aserti3-2d reference implementation.
// The coefficients and the rounding addend of 2^47 before the 48-bit shift
// are consensus-critical and must not be altered; the approximation error is
// below 0.013%.
func asertFactor(frac uint64) uint64 {
	if frac == 0 {
		return radix
	}
	return radix + ((195766423245049*frac +
		971821376*frac*frac +
		5127*frac*frac*frac +
		(1 << 47)) >> 48)
}

// GetNextWorkRequiredASERT calculates the required difficulty for the block
// after the passed previous block node using the absolutely scheduled
// exponential rise target algorithm.
//
// The target is derived solely from the deviation of the chain from its ideal
// schedule since the anchor block:
//
//	target = anchorTarget * 2^((timeDelta - T*heightDelta) / halfLife)
//
// Because the exponent depends only on the absolute deviation and not on any
// recent window, the algorithm cannot oscillate under constant hashrate and
// responds to every block individually.  The time delta is measured between
// parent timestamps, which keeps the current block's own timestamp out of its
// target.
func GetNextWorkRequiredASERT(lastNode HeaderCtx, params *chaincfg.Params) (uint32, error) {
	if params.PoWNoRetargeting {
		return lastNode.Bits(), nil
	}

	anchorNode, err := asertAnchorBlock(lastNode, params)
	if err != nil {
		return 0, err
	}
	anchorParent := anchorNode.Parent()
	if anchorParent == nil {
		return 0, AssertError("asert anchor block has no parent")
	}

	anchorTarget := CompactToBig(params.ASERTAnchorBits)

	timeDelta := lastNode.Timestamp() - anchorParent.Timestamp()
	heightDelta := int64(lastNode.Height()) + 1 - int64(params.ASERTHeight)

	// Exponent with 16 fractional bits, truncated toward zero.
	targetSpacing := int64(params.TargetTimePerBlock / time.Second)
	exponent := ((timeDelta - targetSpacing*heightDelta) * radix) /
		params.ASERTHalfLife

	// Decompose the exponent into an integer number of halvings/doublings
	// and a non-negative fractional part in [0, radix).
	var shifts int32
	var frac uint64
	if exponent >= 0 {
		shifts = int32(exponent >> 16)
		frac = uint64(exponent & 0xffff)
	} else {
		absExponent := -exponent
		shifts = -int32(absExponent >> 16)
		if remainder := absExponent & 0xffff; remainder != 0 {
			shifts--
			frac = radix - uint64(remainder)
		}
	}

	// Apply the fractional part: target = anchorTarget * factor / radix.
	nextTarget := new(big.Int).Mul(anchorTarget,
		new(big.Int).SetUint64(asertFactor(frac)))
	nextTarget.Rsh(nextTarget, 16)

	// Apply the integer part as shifts.  Anything at or past 256 bits in
	// either direction saturates at the respective extreme target.
	switch {
	case shifts >= 256:
		return params.PowLimitBits, nil
	case shifts <= -256:
		return BigToCompact(bigOne), nil
	case shifts > 0:
		nextTarget.Lsh(nextTarget, uint(shifts))
	case shifts < 0:
		nextTarget.Rsh(nextTarget, uint(-shifts))
	}

	// The target can never reach zero; one is the hardest representable
	// difficulty.
	if nextTarget.Sign() == 0 {
		nextTarget.Set(bigOne)
	}

	// Limit new value to the proof of work limit.
	if nextTarget.Cmp(params.PowLimit) > 0 {
		nextTarget.Set(params.PowLimit)
	}

	return BigToCompact(nextTarget), nil
}
