// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2019-2024 The doriand developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain_test

import (
	"time"

	"github.com/doriansuite/doriand/blockchain"
	"github.com/doriansuite/doriand/chaincfg"
)

// testNode is a minimal in-memory block index entry that implements the
// blockchain.HeaderCtx interface for tests.
type testNode struct {
	height    int32
	timestamp int64
	bits      uint32
	parent    *testNode
}

// Height returns the header's height.
func (n *testNode) Height() int32 {
	return n.height
}

// Bits returns the header's bits.
func (n *testNode) Bits() uint32 {
	return n.bits
}

// Timestamp returns the header's timestamp.
func (n *testNode) Timestamp() int64 {
	return n.timestamp
}

// Parent returns the header's parent, or nil for the genesis block.
func (n *testNode) Parent() blockchain.HeaderCtx {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// RelativeAncestorCtx returns the header's ancestor that is distance blocks
// before it in the chain, or nil if no such ancestor exists.
func (n *testNode) RelativeAncestorCtx(distance int32) blockchain.HeaderCtx {
	iterNode := n
	for ; distance > 0 && iterNode != nil; distance-- {
		iterNode = iterNode.parent
	}
	if iterNode == nil {
		return nil
	}
	return iterNode
}

// Ensure testNode implements the HeaderCtx interface.
var _ blockchain.HeaderCtx = (*testNode)(nil)

// solvetimeFunc returns the solvetime to apply between the block at the given
// chain position and its parent when building a test chain.
type solvetimeFunc func(i int) int64

// constantSpacing returns a solvetimeFunc yielding the same solvetime for
// every block.
func constantSpacing(spacing int64) solvetimeFunc {
	return func(int) int64 { return spacing }
}

// buildTestChain creates a parent-linked chain of numBlocks nodes starting at
// the provided height and timestamp, all sharing the same bits.  The
// solvetime between consecutive blocks is taken from the provided function,
// which is called with the position of the child block in the chain (1 for
// the second block).  It returns the chain tip.
func buildTestChain(startHeight int32, startTime int64, bits uint32,
	numBlocks int, solvetime solvetimeFunc) *testNode {

	tip := &testNode{
		height:    startHeight,
		timestamp: startTime,
		bits:      bits,
	}
	for i := 1; i < numBlocks; i++ {
		tip = &testNode{
			height:    tip.height + 1,
			timestamp: tip.timestamp + solvetime(i),
			bits:      bits,
			parent:    tip,
		}
	}
	return tip
}

// targetSpacing returns the target block spacing of the provided network in
// seconds.
func targetSpacing(params *chaincfg.Params) int64 {
	return int64(params.TargetTimePerBlock / time.Second)
}
