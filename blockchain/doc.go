// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2019-2024 The doriand developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package blockchain implements the Doriancoin proof-of-work consensus rules
for difficulty retargeting and block hash validation.

The package computes the compact target the next block's hash must satisfy
given a read-only walk over the block index, and verifies claimed proofs of
work.  The exact numeric output is consensus-critical: every implementation
must agree bit-for-bit on every computed target at every height on every
network or the chain will fork.

# Retarget Algorithms

Four retarget algorithms have been in effect over the chain's history and
GetNextWorkRequired dispatches between them by the height of the block being
validated:

  - the original periodic retarget, which adjusts once per 2016-block window
    by the ratio of the actual window duration to the desired duration
  - a linearly weighted moving average (LWMA) over recent solvetimes
  - a stabilized LWMA that references the target at the start of the
    averaging window to avoid oscillation
  - an absolutely scheduled exponential rise target (ASERT) that derives
    every target from the chain's total schedule deviation since a fixed
    anchor block

All arithmetic is integer-only.  The calculations deliberately reproduce the
reference implementation's quirks, such as the single bit of precision lost
by the periodic retarget near the proof of work limit and the off-by-one in
its window walk, because they are part of consensus.

# Chain Access

The package never reads the block index directly.  Callers provide the chain
tip as a HeaderCtx, a read-only view exposing the height, timestamp, compact
bits, and parent of each block.  All calculations are pure functions of that
view and the chain parameters, safe for concurrent use; the only shared state
is the cached ASERT anchor block, which ResetASERTAnchorCache clears when a
reorganization crosses the anchor height.

# Errors

Errors returned by this package are either the usual due to a rule violation
and of type RuleError, or of type AssertError when the chain state violates
an assumption that indicates corruption, such as a missing parent inside a
retarget window.
*/
package blockchain
