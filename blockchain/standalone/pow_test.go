// Copyright (c) 2019-2023 The Decred developers
// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package standalone

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/decred/dcrd/math/uint256"
)

// hexToUint256 converts the passed hex string into a Uint256 and will panic if
// there is an error.  This is only provided for the hard-coded constants so
// errors in the source code can be detected. It will only (and must only) be
// called with hard-coded values.
func hexToUint256(s string) *uint256.Uint256 {
	if len(s)%2 != 0 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex in source file: " + s)
	}
	if len(b) > 32 {
		panic("hex in source file overflows mod 2^256: " + s)
	}
	return new(uint256.Uint256).SetByteSlice(b)
}

// mainNetPowLimit returns the main network proof-of-work limit, (2^256-1)>>20.
func mainNetPowLimit() *uint256.Uint256 {
	return hexToUint256("00000" + strings.Repeat("f", 59))
}

// TestDiffBitsToUint256 ensures converting from the compact representation used
// for target difficulties to unsigned 256-bit integers produces the correct
// results.
func TestDiffBitsToUint256(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string // test description
		input     uint32 // compact target difficulty bits to test
		want      string // expected uint256
		neg       bool   // expect result to be a negative number
		overflows bool   // expect result to overflow
	}{{
		name:  "genesis bits",
		input: 0x1e0ffff0,
		want:  "00000ffff0000000000000000000000000000000000000000000000000000000",
	}, {
		name:  "retarget override bits",
		input: 0x1e00b943,
		want:  "000000b943000000000000000000000000000000000000000000000000000000",
	}, {
		name:  "bitcoin difficulty one",
		input: 0x1d00ffff,
		want:  "00000000ffff0000000000000000000000000000000000000000000000000000",
	}, {
		name:  "zero",
		input: 0,
		want:  "00",
	}, {
		name:  "mantissa shifted away is neither zero nor negative",
		input: 0x01803456,
		want:  "00",
	}, {
		name:  "exponent 1 keeps the top byte",
		input: 0x01123456,
		want:  "12",
	}, {
		name:  "exponent 1 negative",
		input: 0x01fedcba,
		want:  "7e",
		neg:   true,
	}, {
		name:  "exponent 4 negative",
		input: 0x04923456,
		want:  "12345600",
		neg:   true,
	}, {
		name:      "max uint256 + 1 via exponent 33 (overflows)",
		input:     0x21010000,
		want:      "00",
		overflows: true,
	}, {
		name:      "max uint256 + 1 via exponent 35 (overflows)",
		input:     0x23000001,
		want:      "00",
		overflows: true,
	}, {
		name:      "huge exponent",
		input:     0xff123456,
		want:      "00",
		overflows: true,
	}}

	for _, test := range tests {
		want := hexToUint256(test.want)

		result, isNegative, overflows := DiffBitsToUint256(test.input)
		if result.Cmp(want) != 0 {
			t.Errorf("%q: mismatched result -- got %x, want %x", test.name,
				result, want)
			continue
		}
		if isNegative != test.neg {
			t.Errorf("%q: mismatched negative -- got %v, want %v", test.name,
				isNegative, test.neg)
			continue
		}
		if overflows != test.overflows {
			t.Errorf("%q: mismatched overflows -- got %v, want %v", test.name,
				overflows, test.overflows)
			continue
		}
	}
}

// TestUint256ToDiffBits ensures converting from unsigned 256-bit integers to
// the representation used for target difficulties in the header bits field
// produces the correct results.
func TestUint256ToDiffBits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string // test description
		input string // uint256 to test
		want  uint32 // expected encoded value
	}{{
		name:  "main network pow limit",
		input: "00000" + strings.Repeat("f", 59),
		want:  0x1e0fffff,
	}, {
		name:  "test network pow limit",
		input: "000" + strings.Repeat("f", 61),
		want:  0x1f0fffff,
	}, {
		name:  "regression network pow limit",
		input: "7" + strings.Repeat("f", 63),
		want:  0x207fffff,
	}, {
		name:  "pow limit shifted right 24",
		input: "000000" + strings.Repeat("f", 58),
		want:  0x1e00ffff,
	}, {
		name:  "genesis target",
		input: "00000ffff0000000000000000000000000000000000000000000000000000000",
		want:  0x1e0ffff0,
	}, {
		name:  "zero",
		input: "00",
		want:  0,
	}, {
		name:  "small value",
		input: "12",
		want:  0x01120000,
	}, {
		name:  "sign bit forces larger exponent",
		input: "80",
		want:  0x02008000,
	}}

	for _, test := range tests {
		input := hexToUint256(test.input)
		result := Uint256ToDiffBits(input)
		if result != test.want {
			t.Errorf("%q: mismatched result -- got %08x, want %08x",
				test.name, result, test.want)
			continue
		}
	}
}

// TestCalcWork ensures calculating a work value from a compact target
// difficulty produces the correct results.
func TestCalcWork(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string // test description
		input uint32 // compact target difficulty bits to test
		want  string // expected uint256
	}{{
		name:  "bitcoin difficulty one",
		input: 0x1d00ffff,
		want:  "0100010001",
	}, {
		name:  "genesis bits",
		input: 0x1e0ffff0,
		want:  "100010",
	}, {
		name:  "main network pow limit",
		input: 0x1e0fffff,
		want:  "100001",
	}, {
		name:  "regression network pow limit",
		input: 0x207fffff,
		want:  "02",
	}, {
		name:  "zero",
		input: 0,
		want:  "00",
	}, {
		name:  "negative target difficulty",
		input: 0x04923456,
		want:  "00",
	}, {
		name:  "overflowing target difficulty",
		input: 0x23000001,
		want:  "00",
	}}

	for _, test := range tests {
		want := hexToUint256(test.want)
		result := CalcWork(test.input)
		if !result.Eq(want) {
			t.Errorf("%q: mismatched result -- got %x, want %x", test.name,
				result, want)
			continue
		}
	}
}

// TestCheckProofOfWork ensures hashes and target difficulties that are outside
// of the acceptable ranges are detected as an error and those inside are not.
func TestCheckProofOfWork(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string // test description
		hash string // proof of work hash to test
		bits uint32 // compact target difficulty bits to test
		err  error  // expected error
	}{{
		name: "main network genesis",
		hash: "00000c9d6ee5917dcd9e9d291f4b2283fce7d6b8525a653267bae3a1c5fbdd00",
		bits: 0x1e0ffff0,
	}, {
		name: "exactly the target",
		hash: "00000ffff0000000000000000000000000000000000000000000000000000000",
		bits: 0x1e0ffff0,
	}, {
		name: "high hash (target + 1)",
		hash: "00000ffff0000000000000000000000000000000000000000000000000000001",
		bits: 0x1e0ffff0,
		err:  ErrHighHash,
	}, {
		name: "target above the pow limit",
		hash: "0000000000000000000000000000000000000000000000000000000000000001",
		bits: 0x1e100000,
		err:  ErrUnexpectedDifficulty,
	}, {
		name: "zero target difficulty",
		hash: "0000000000000000000000000000000000000000000000000000000000000001",
		bits: 0,
		err:  ErrUnexpectedDifficulty,
	}, {
		name: "negative target difficulty",
		hash: "0000000000000000000000000000000000000000000000000000000000000001",
		bits: 0x04923456,
		err:  ErrUnexpectedDifficulty,
	}, {
		name: "overflowing target difficulty",
		hash: "0000000000000000000000000000000000000000000000000000000000000001",
		bits: 0x23000001,
		err:  ErrUnexpectedDifficulty,
	}}

	powLimit := mainNetPowLimit()
	for _, test := range tests {
		hash, err := chainhash.NewHashFromStr(test.hash)
		if err != nil {
			t.Errorf("%q: unexpected err parsing test hash: %v", test.name, err)
			continue
		}

		err = CheckProofOfWork(hash, test.bits, powLimit)
		if !errors.Is(err, test.err) {
			t.Errorf("%q: unexpected err -- got %v, want %v", test.name, err,
				test.err)
			continue
		}
		var rerr RuleError
		if test.err != nil && !errors.As(err, &rerr) {
			t.Errorf("%q: error is not a RuleError: %T", test.name, err)
		}
	}
}
