// Copyright (c) 2019-2024 The doriand developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doriansuite/doriand/blockchain"
	"github.com/doriansuite/doriand/chaincfg"
)

// lwmaTestParams returns mainnet parameters with the LWMA activation heights
// lowered so tests can build short chains, mirroring how the reference tests
// override the consensus parameters.
func lwmaTestParams(window int64) chaincfg.Params {
	params := chaincfg.MainNetParams
	params.LWMAHeight = 100
	params.LWMAFixHeight = 150
	params.LWMAWindow = window
	return params
}

// TestLWMAOnSchedule ensures a chain whose solvetimes exactly match the
// target spacing keeps the previous block's difficulty bit-for-bit.
func TestLWMAOnSchedule(t *testing.T) {
	params := lwmaTestParams(45)
	spacing := targetSpacing(&params)

	tip := buildTestChain(params.LWMAHeight, 1394325760, 0x1e0ffff0, 50,
		constantSpacing(spacing))

	bits := blockchain.GetNextWorkRequiredLWMA(tip, &params)
	assert.Equal(t, tip.bits, bits)
}

// TestLWMAColdStart ensures the algorithm keeps the previous block's
// difficulty until at least three blocks of history exist past activation.
func TestLWMAColdStart(t *testing.T) {
	params := lwmaTestParams(45)
	spacing := targetSpacing(&params)

	// One and two blocks past activation: not enough history.
	for _, numBlocks := range []int{2, 3} {
		tip := buildTestChain(params.LWMAHeight-1, 1394325760, 0x1e0ffff0,
			numBlocks, constantSpacing(spacing))
		bits := blockchain.GetNextWorkRequiredLWMA(tip, &params)
		assert.Equalf(t, tip.bits, bits, "%d blocks", numBlocks)
	}

	// Three blocks past activation is enough to retarget; an on-schedule
	// chain still reproduces the same difficulty.
	tip := buildTestChain(params.LWMAHeight-1, 1394325760, 0x1e0ffff0, 4,
		constantSpacing(spacing))
	bits := blockchain.GetNextWorkRequiredLWMA(tip, &params)
	assert.Equal(t, tip.bits, bits)
}

// TestLWMAFastChainCap ensures an extremely fast chain cannot raise the
// difficulty by more than the symmetric 10x cap in a single step.
func TestLWMAFastChainCap(t *testing.T) {
	params := lwmaTestParams(10)

	// Every block one second apart.
	tip := buildTestChain(params.LWMAHeight, 1394325760, 0x1e0ffff0, 15,
		constantSpacing(1))

	bits := blockchain.GetNextWorkRequiredLWMA(tip, &params)
	target := blockchain.CompactToBig(bits)

	prevTarget := blockchain.CompactToBig(tip.bits)
	minTarget := new(big.Int).Div(prevTarget, big.NewInt(10))
	assert.GreaterOrEqual(t, target.Cmp(minTarget), 0,
		"target fell below a tenth of the previous target")
}

// TestLWMASlowChainCap ensures an extremely slow chain cannot lower the
// difficulty by more than 10x in a single step and never exceeds the proof
// of work limit.
func TestLWMASlowChainCap(t *testing.T) {
	params := lwmaTestParams(10)
	spacing := targetSpacing(&params)

	// Every block far beyond the 6*T solvetime clamp.
	tip := buildTestChain(params.LWMAHeight, 1394325760, 0x1c0ac141, 15,
		constantSpacing(100*spacing))

	bits := blockchain.GetNextWorkRequiredLWMA(tip, &params)
	target := blockchain.CompactToBig(bits)

	prevTarget := blockchain.CompactToBig(tip.bits)
	maxTarget := new(big.Int).Mul(prevTarget, big.NewInt(10))
	assert.LessOrEqual(t, target.Cmp(maxTarget), 0,
		"target rose above ten times the previous target")
	assert.LessOrEqual(t, target.Cmp(params.PowLimit), 0)
}

// TestLWMAV2OnSchedule ensures the stabilized variant reproduces the target
// from the start of the averaging window when the chain is exactly on
// schedule, even when more recent blocks carry a different difficulty.
func TestLWMAV2OnSchedule(t *testing.T) {
	params := lwmaTestParams(10)
	spacing := targetSpacing(&params)

	// First five blocks at the base difficulty, the rest much harder; on
	// schedule throughout.  The window of ten ends on a base difficulty
	// block, so the stabilized variant must reproduce the base bits, not
	// the recent harder bits the v1 feedback loop would have used.
	windowStartBits := uint32(0x1e0ffff0)
	tip := buildTestChain(params.LWMAFixHeight, 1394325760, windowStartBits,
		15, constantSpacing(spacing))
	for node := tip; node != nil && node.height >= params.LWMAFixHeight+5; node = node.parent {
		node.bits = 0x1d0ffff0
	}

	bits := blockchain.GetNextWorkRequiredLWMAV2(tip, &params)
	assert.Equal(t, windowStartBits, bits)
}

// TestLWMAV2FastChainCap ensures the stabilized variant's tighter 3x cap
// holds relative to the window-start target on an extremely fast chain.
func TestLWMAV2FastChainCap(t *testing.T) {
	params := lwmaTestParams(10)

	tip := buildTestChain(params.LWMAFixHeight, 1394325760, 0x1e0ffff0, 15,
		constantSpacing(1))

	bits := blockchain.GetNextWorkRequiredLWMAV2(tip, &params)
	target := blockchain.CompactToBig(bits)
	require.Positive(t, target.Sign())

	windowStartTarget := blockchain.CompactToBig(uint32(0x1e0ffff0))
	minTarget := new(big.Int).Div(windowStartTarget, big.NewInt(3))
	assert.GreaterOrEqual(t, target.Cmp(minTarget), 0,
		"target fell below a third of the window start target")
}

// BenchmarkGetNextWorkRequiredLWMA benchmarks the LWMA retarget over a full
// averaging window.
func BenchmarkGetNextWorkRequiredLWMA(b *testing.B) {
	params := lwmaTestParams(45)
	spacing := targetSpacing(&params)
	tip := buildTestChain(params.LWMAHeight, 1394325760, 0x1e0ffff0, 60,
		constantSpacing(spacing))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		blockchain.GetNextWorkRequiredLWMA(tip, &params)
	}
}
