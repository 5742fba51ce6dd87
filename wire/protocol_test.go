// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "testing"

// TestBeetleNetStringer tests the stringized output and the message start
// bytes of the BeetleNet type.
func TestBeetleNetStringer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in    BeetleNet
		want  string
		magic [4]byte
	}{
		{MainNet, "MainNet", [4]byte{0x10, 0x48, 0x09, 0x18}},
		{TestNet, "TestNet", [4]byte{0x43, 0x76, 0x65, 0xba}},
		{RegNet, "RegNet", [4]byte{0x69, 0xcf, 0x7e, 0xac}},
		{0xffffffff, "Unknown BeetleNet (4294967295)", [4]byte{0xff, 0xff, 0xff, 0xff}},
	}

	for i, test := range tests {
		if result := test.in.String(); result != test.want {
			t.Errorf("String #%d\n got: %s want: %s", i, result, test.want)
			continue
		}
		if got := test.in.Magic(); got != test.magic {
			t.Errorf("Magic #%d\n got: %x want: %x", i, got, test.magic)
			continue
		}
		if got := NetFromMagic(test.magic); got != test.in {
			t.Errorf("NetFromMagic #%d\n got: %v want: %v", i, got, test.in)
		}
	}
}
