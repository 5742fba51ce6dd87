// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package msgsign

import (
	"errors"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// TestSignVerify ensures signatures verify against the signing key in the
// serialization it was signed for and nothing else.
func TestSignVerify(t *testing.T) {
	t.Parallel()

	key := secp256k1.PrivKeyFromBytes([]byte{0x01, 0x02, 0x03})
	other := secp256k1.PrivKeyFromBytes([]byte{0x04})
	pub := key.PubKey()

	tests := []struct {
		name       string
		compressed bool
		pubKey     []byte
		message    string
		err        error
	}{
		{"compressed", true, pub.SerializeCompressed(), "10001100", nil},
		{"uncompressed", false, pub.SerializeUncompressed(), "10001100", nil},
		{"serialization mismatch", true, pub.SerializeUncompressed(), "10001100", ErrWrongKey},
		{"other key", true, other.PubKey().SerializeCompressed(), "10001100", ErrWrongKey},
	}
	for _, test := range tests {
		sig := Sign(key, "10001100", test.compressed)
		err := Verify(test.pubKey, sig, test.message)
		if !errors.Is(err, test.err) {
			t.Errorf("%q: unexpected error: got %v, want %v", test.name, err,
				test.err)
		}
	}

	sig := Sign(key, "10001100", true)
	if err := Verify(pub.SerializeCompressed(), sig, "10001101"); err == nil {
		t.Fatal("signature verified for a different message")
	}
	if err := Verify(pub.SerializeCompressed(), sig[:10], "10001100"); err == nil {
		t.Fatal("truncated signature verified")
	}
}
