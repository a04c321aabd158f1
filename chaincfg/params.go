// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2019-2024 The doriand developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"
	"time"
)

// These variables are the chain proof-of-work limit parameters for each default
// network.
var (
	// bigOne is 1 represented as a big.Int.  It is defined here to avoid
	// the overhead of creating it multiple times.
	bigOne = big.NewInt(1)

	// mainPowLimit is the highest proof of work value a Doriancoin block
	// can have for the main network.  It is the value 2^236 - 1.
	mainPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 236), bigOne)

	// testNet4PowLimit is the highest proof of work value a Doriancoin
	// block can have for the test network (version 4).  It is the value
	// 2^236 - 1.
	testNet4PowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 236), bigOne)

	// regressionPowLimit is the highest proof of work value a Doriancoin
	// block can have for the regression test network.  It is the value
	// 2^255 - 1.
	regressionPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)

	// simNetPowLimit is the highest proof of work value a Doriancoin block
	// can have for the simulation test network.  It is the value 2^255 - 1.
	simNetPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)
)

// Params defines a Doriancoin network by its parameters.  These parameters may
// be used by applications to differentiate networks as well as addresses and
// keys for one network from those intended for use on another network.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// PowLimit defines the highest allowed proof of work value for a block
	// as a uint256.
	PowLimit *big.Int

	// PowLimitBits defines the highest allowed proof of work value for a
	// block in compact form.
	PowLimitBits uint32

	// ReduceMinDifficulty defines whether the network should reduce the
	// minimum required difficulty after a long enough period of time has
	// passed without finding a block.  This is really only useful for test
	// networks and should not be set on a main network.
	ReduceMinDifficulty bool

	// MinDiffReductionTime is the amount of time after which the minimum
	// required difficulty should be reduced when a block hasn't been found.
	//
	// NOTE: This only applies if ReduceMinDifficulty is true.
	MinDiffReductionTime time.Duration

	// PoWNoRetargeting defines whether the network has difficulty
	// retargeting disabled.  This is really only useful for the regression
	// test network.
	PoWNoRetargeting bool

	// TargetTimespan is the desired amount of time that should elapse
	// before the block difficulty requirement is examined to determine how
	// it should be changed in order to maintain the desired block
	// generation rate.  It must be an even multiple of TargetTimePerBlock.
	TargetTimespan time.Duration

	// TargetTimePerBlock is the desired amount of time to generate each
	// block.
	TargetTimePerBlock time.Duration

	// LWMAWindow is the number of parent-child solvetime pairs averaged by
	// the linearly weighted retarget algorithms.
	LWMAWindow int64

	// LWMAHeight is the height at and after which the linearly weighted
	// moving average retarget algorithm applies instead of the periodic
	// retarget.
	LWMAHeight int32

	// LWMAFixHeight is the height at and after which the stabilized
	// variant of the linearly weighted retarget algorithm applies.  The
	// stabilized variant references the target at the start of the
	// averaging window rather than the previous block's target.
	LWMAFixHeight int32

	// ASERTHeight is the height of the ASERT anchor block.  Heights
	// strictly greater than this use the ASERT retarget algorithm.
	ASERTHeight int32

	// ASERTAnchorBits is the compact target fixed at the ASERT anchor
	// block.  Every ASERT target is computed from this value and the
	// schedule deviation since the anchor.
	ASERTAnchorBits uint32

	// ASERTHalfLife is the number of seconds of schedule deviation over
	// which the ASERT algorithm doubles or halves the difficulty.
	ASERTHalfLife int64
}

// DifficultyAdjustmentInterval returns the number of blocks between periodic
// difficulty retargets.
func (p *Params) DifficultyAdjustmentInterval() int32 {
	return int32(p.TargetTimespan / p.TargetTimePerBlock)
}

// MainNetParams defines the network parameters for the main Doriancoin
// network.
var MainNetParams = Params{
	Name: "mainnet",

	// Chain parameters
	PowLimit:             mainPowLimit,
	PowLimitBits:         0x1e0fffff,
	ReduceMinDifficulty:  false,
	MinDiffReductionTime: 0,
	PoWNoRetargeting:     false,
	TargetTimespan:       (time.Hour * 24 * 3) + (time.Hour * 12), // 3.5 days
	TargetTimePerBlock:   time.Second * 150, // 2.5 minutes
	LWMAWindow:           45,
	LWMAHeight:           450000,
	LWMAFixHeight:        520000,
	ASERTHeight:          600000,
	ASERTAnchorBits:      0x1e01ffff,
	ASERTHalfLife:        60 * 60 * 48, // 2 days
}

// TestNet4Params defines the network parameters for the test Doriancoin
// network (version 4).
var TestNet4Params = Params{
	Name: "testnet4",

	// Chain parameters
	PowLimit:             testNet4PowLimit,
	PowLimitBits:         0x1e0fffff,
	ReduceMinDifficulty:  true,
	MinDiffReductionTime: time.Second * 300, // TargetTimePerBlock * 2
	PoWNoRetargeting:     false,
	TargetTimespan:       (time.Hour * 24 * 3) + (time.Hour * 12), // 3.5 days
	TargetTimePerBlock:   time.Second * 150, // 2.5 minutes
	LWMAWindow:           45,
	LWMAHeight:           2500,
	LWMAFixHeight:        4000,
	ASERTHeight:          6000,
	ASERTAnchorBits:      0x1e0fffff,
	ASERTHalfLife:        60 * 60 * 48, // 2 days
}

// RegressionNetParams defines the network parameters for the regression test
// Doriancoin network.  Not to be confused with the test network (version 4),
// this network is sometimes simply called "testnet".
var RegressionNetParams = Params{
	Name: "regtest",

	// Chain parameters
	PowLimit:             regressionPowLimit,
	PowLimitBits:         0x207fffff,
	ReduceMinDifficulty:  true,
	MinDiffReductionTime: time.Second * 300, // TargetTimePerBlock * 2
	PoWNoRetargeting:     true,
	TargetTimespan:       (time.Hour * 24 * 3) + (time.Hour * 12), // 3.5 days
	TargetTimePerBlock:   time.Second * 150, // 2.5 minutes
	LWMAWindow:           45,
	LWMAHeight:           150,
	LWMAFixHeight:        200,
	ASERTHeight:          300,
	ASERTAnchorBits:      0x207fffff,
	ASERTHalfLife:        60 * 60 * 48, // 2 days
}

// SimNetParams defines the network parameters for the simulation test
// Doriancoin network.  This network is similar to the normal test network
// except it is intended for private use within a group of individuals doing
// simulation testing.
var SimNetParams = Params{
	Name: "simnet",

	// Chain parameters
	PowLimit:             simNetPowLimit,
	PowLimitBits:         0x207fffff,
	ReduceMinDifficulty:  true,
	MinDiffReductionTime: time.Second * 300, // TargetTimePerBlock * 2
	PoWNoRetargeting:     false,
	TargetTimespan:       (time.Hour * 24 * 3) + (time.Hour * 12), // 3.5 days
	TargetTimePerBlock:   time.Second * 150, // 2.5 minutes
	LWMAWindow:           45,
	LWMAHeight:           150,
	LWMAFixHeight:        200,
	ASERTHeight:          300,
	ASERTAnchorBits:      0x207fffff,
	ASERTHalfLife:        60 * 60 * 48, // 2 days
}
