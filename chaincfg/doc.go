// Copyright (c) 2014 The btcsuite developers
// Copyright (c) 2019-2024 The doriand developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines chain configuration parameters.
//
// In addition to the main Doriancoin network, which is intended for the
// transfer of monetary value, there also exists the following standard
// networks:
//   - testnet (version 4)
//   - regression test
//   - simulation test
//
// These networks are incompatible with each other (each sharing the same
// genesis block would be a bug) and the consensus rules differ in the
// parameters defined here, most importantly the proof-of-work limits and the
// difficulty retarget schedule with its algorithm activation heights.
//
// For library packages, chaincfg provides the ability to work with the chain
// parameters of any network without knowing at compile time which network is
// in use.  Callers typically take a *chaincfg.Params and thread it through to
// the consensus code.
package chaincfg
