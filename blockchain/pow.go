// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2019-2024 The doriand developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/doriansuite/doriand/chaincfg"
)

// checkProofOfWorkRange ensures the provided compact target difficulty is in
// min/max range per the consensus rules and returns the decoded target.
func checkProofOfWorkRange(bits uint32, powLimit *big.Int) (*big.Int, error) {
	// The target difficulty must not encode a negative number or require
	// more than 256 bits.
	target, isNegative, overflows := compactToBig(bits)
	if isNegative {
		str := fmt.Sprintf("block target difficulty of %08x is negative",
			bits)
		return nil, ruleError(ErrUnexpectedDifficulty, str)
	}
	if overflows {
		str := fmt.Sprintf("block target difficulty of %08x overflows "+
			"256 bits", bits)
		return nil, ruleError(ErrUnexpectedDifficulty, str)
	}

	// The target difficulty must be larger than zero.
	if target.Sign() <= 0 {
		str := fmt.Sprintf("block target difficulty of %064x is too "+
			"low", target)
		return nil, ruleError(ErrUnexpectedDifficulty, str)
	}

	// The target difficulty must not exceed the maximum allowed.
	if target.Cmp(powLimit) > 0 {
		str := fmt.Sprintf("block target difficulty of %064x is "+
			"higher than max of %064x", target, powLimit)
		return nil, ruleError(ErrUnexpectedDifficulty, str)
	}

	return target, nil
}

// CheckProofOfWork ensures the provided block hash is less than or equal to
// the target difficulty encoded by the claimed bits, and that the claimed
// bits are in min/max range for the network.  A nil error means the proof of
// work is valid.
func CheckProofOfWork(hash *chainhash.Hash, bits uint32, params *chaincfg.Params) error {
	target, err := checkProofOfWorkRange(bits, params.PowLimit)
	if err != nil {
		return err
	}

	// The block hash must not exceed the claimed target.
	hashNum := HashToBig(hash)
	if hashNum.Cmp(target) > 0 {
		str := fmt.Sprintf("block hash of %064x is higher than "+
			"expected max of %064x", hashNum, target)
		return ruleError(ErrHighHash, str)
	}

	return nil
}
