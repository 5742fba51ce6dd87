// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	btcwire "github.com/btcsuite/btcd/wire"
	"github.com/davecgh/go-spew/spew"
)

// testVoter returns an outpoint whose hash bytes are all 0x01.
func testVoter() btcwire.OutPoint {
	var hash chainhash.Hash
	for i := range hash {
		hash[i] = 0x01
	}
	return btcwire.OutPoint{Hash: hash, Index: 1}
}

// TestMasternodeWinner tests the MsgMasternodeWinner API.
func TestMasternodeWinner(t *testing.T) {
	pver := ProtocolVersion

	msg := NewMsgMasternodeWinner(testVoter(), 100, []byte{0x51})
	if cmd := msg.Command(); cmd != "mnw" {
		t.Errorf("Command: wrong command - got %v, want mnw", cmd)
	}

	// Outpoint 36 bytes + height 4 bytes + two var bytes fields.
	wantPayload := uint32(36 + 4 + 9 + 10000 + 9 + 256)
	if got := msg.MaxPayloadLength(pver); got != wantPayload {
		t.Errorf("MaxPayloadLength: got %d, want %d", got, wantPayload)
	}
	if wantPayload > btcwire.MaxMessagePayload {
		t.Fatalf("MaxPayloadLength: payload length (%v) exceeds "+
			"MaxMessagePayload (%v).", wantPayload,
			btcwire.MaxMessagePayload)
	}

	wantText := strings.Repeat("01", 32) + "-1" + "100" + "1"
	if got := msg.SignMessage(); got != wantText {
		t.Errorf("SignMessage: got %q, want %q", got, wantText)
	}

	// The identity of a vote does not depend on its signature.
	h1 := msg.Hash()
	msg.Signature = []byte{0xde, 0xad}
	if h2 := msg.Hash(); h1 != h2 {
		t.Errorf("Hash: signature changed the vote identity %v != %v",
			h1, h2)
	}

	// Any payload field does.
	other := *msg
	other.BlockHeight++
	if other.Hash() == h1 {
		t.Error("Hash: height not covered by the vote identity")
	}

	iv := msg.InvVect()
	if iv.Type != InvTypeMasternodeWinner || iv.Hash != h1 {
		t.Errorf("InvVect: got %s", spew.Sdump(iv))
	}
}

// TestMasternodeWinnerSignMessageP2PKH ensures the payee script is rendered
// with opcode names the way voters sign it.
func TestMasternodeWinnerSignMessageP2PKH(t *testing.T) {
	t.Parallel()

	pkh := bytes.Repeat([]byte{0xab}, 20)
	script := append([]byte{0x76, 0xa9, 0x14}, pkh...)
	script = append(script, 0x88, 0xac)
	msg := NewMsgMasternodeWinner(testVoter(), 7, script)
	want := strings.Repeat("01", 32) + "-1" + "7" + "OP_DUP OP_HASH160 " +
		strings.Repeat("ab", 20) + " OP_EQUALVERIFY OP_CHECKSIG"
	if got := msg.SignMessage(); got != want {
		t.Errorf("SignMessage: got %q, want %q", got, want)
	}
}

// TestScriptString ensures small pushes print as decimal script numbers and
// the other script elements as hex or opcode names.
func TestScriptString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		script []byte
		want   string
	}{
		{"empty", nil, ""},
		{"OP_0", []byte{0x00}, "0"},
		{"OP_1", []byte{0x51}, "1"},
		{"OP_1NEGATE", []byte{0x4f}, "-1"},
		{"one byte", []byte{0x01, 0x05}, "5"},
		{"negative", []byte{0x02, 0xff, 0x80}, "-255"},
		{"negative zero", []byte{0x01, 0x80}, "0"},
		{"four bytes", []byte{0x04, 0x01, 0x02, 0x03, 0x04}, "67305985"},
		{"five bytes", []byte{0x05, 0x01, 0x02, 0x03, 0x04, 0x05}, "0102030405"},
		{"empty pushdata1", []byte{0x4c, 0x00}, "0"},
		{"pushdata1 number", []byte{0x4c, 0x02, 0x10, 0x27}, "10000"},
		{"p2sh", append(append([]byte{0xa9, 0x14}, bytes.Repeat([]byte{0xcd}, 20)...), 0x87),
			"OP_HASH160 " + strings.Repeat("cd", 20) + " OP_EQUAL"},
		{"unknown opcode", []byte{0x51, 0xbb}, "1 OP_UNKNOWN"},
		{"truncated push", []byte{0x01, 0x07, 0x02, 0x01}, "7 [error]"},
	}

	for _, test := range tests {
		if got := ScriptString(test.script); got != test.want {
			t.Errorf("%s: got %q, want %q", test.name, got, test.want)
		}
	}

	// The vote text carries the same rendering of a nonstandard payee.
	msg := NewMsgMasternodeWinner(testVoter(), 9, []byte{0x01, 0x05, 0x87})
	want := strings.Repeat("01", 32) + "-1" + "9" + "5 OP_EQUAL"
	if got := msg.SignMessage(); got != want {
		t.Errorf("SignMessage: got %q, want %q", got, want)
	}
}

// TestMasternodeWinnerWire tests the MsgMasternodeWinner wire encode and
// decode.
func TestMasternodeWinnerWire(t *testing.T) {
	pver := ProtocolVersion

	winner := NewMsgMasternodeWinner(testVoter(), 100, []byte{0x51})
	winner.Signature = []byte{0x0a, 0x0b}
	encoded := append(bytes.Repeat([]byte{0x01}, 32),
		0x01, 0x00, 0x00, 0x00, // Outpoint index
		0x64, 0x00, 0x00, 0x00, // Block height
		0x01, 0x51, // Payee
		0x02, 0x0a, 0x0b, // Signature
	)

	tests := []struct {
		in  *MsgMasternodeWinner // Message to encode
		out *MsgMasternodeWinner // Expected decoded message
		buf []byte               // Wire encoding
	}{{
		in:  winner,
		out: winner,
		buf: encoded,
	}}

	for i, test := range tests {
		var buf bytes.Buffer
		err := test.in.BtcEncode(&buf, pver, btcwire.BaseEncoding)
		if err != nil {
			t.Errorf("BtcEncode #%d error %v", i, err)
			continue
		}
		if !bytes.Equal(buf.Bytes(), test.buf) {
			t.Errorf("BtcEncode #%d - got %s, want: %s", i,
				spew.Sdump(buf.Bytes()), spew.Sdump(test.buf))
			continue
		}

		var msg MsgMasternodeWinner
		rbuf := bytes.NewReader(test.buf)
		err = msg.BtcDecode(rbuf, pver, btcwire.BaseEncoding)
		if err != nil {
			t.Errorf("BtcDecode #%d error %v", i, err)
			continue
		}
		if !reflect.DeepEqual(&msg, test.out) {
			t.Errorf("BtcDecode #%d - got %s, want: %s", i,
				spew.Sdump(&msg), spew.Sdump(test.out))
			continue
		}
	}
}

// TestMasternodeWinnerWireErrors performs negative tests against wire encode
// and decode of MsgMasternodeWinner to confirm error paths work correctly.
func TestMasternodeWinnerWireErrors(t *testing.T) {
	pver := ProtocolVersion

	// Truncated encodings.
	full := append(bytes.Repeat([]byte{0x01}, 32),
		0x01, 0x00, 0x00, 0x00, 0x64, 0x00, 0x00, 0x00, 0x01, 0x51, 0x00)
	for _, n := range []int{0, 10, 36, 40, 41} {
		var msg MsgMasternodeWinner
		err := msg.BtcDecode(bytes.NewReader(full[:n]), pver,
			btcwire.BaseEncoding)
		if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("BtcDecode truncated at %d: unexpected error %v", n, err)
		}
	}

	// Oversized signature.
	tooLong := append(full[:len(full)-1], 0xfd, 0x01, 0x01)
	var msg MsgMasternodeWinner
	err := msg.BtcDecode(bytes.NewReader(tooLong), pver, btcwire.BaseEncoding)
	if !errors.Is(err, ErrVarBytesTooLong) {
		t.Errorf("BtcDecode oversized signature: got %v, want %v", err,
			ErrVarBytesTooLong)
	}

	big := NewMsgMasternodeWinner(testVoter(), 1, nil)
	big.Signature = make([]byte, MaxMessageSignatureSize+1)
	var buf bytes.Buffer
	err = big.BtcEncode(&buf, pver, btcwire.BaseEncoding)
	if !errors.Is(err, ErrVarBytesTooLong) {
		t.Errorf("BtcEncode oversized signature: got %v, want %v", err,
			ErrVarBytesTooLong)
	}
}

// TestSmallMessagesWire tests the fixed size mnget and ssc messages.
func TestSmallMessagesWire(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   btcwire.Message
		out  btcwire.Message
		cmd  string
		buf  []byte
	}{{
		name: "mnget",
		in:   NewMsgGetMasternodeWinners(250),
		out:  new(MsgGetMasternodeWinners),
		cmd:  "mnget",
		buf:  []byte{0xfa, 0x00, 0x00, 0x00},
	}, {
		name: "ssc",
		in:   NewMsgSyncStatusCount(MasternodeSyncMNW, 12),
		out:  new(MsgSyncStatusCount),
		cmd:  "ssc",
		buf:  []byte{0x03, 0x00, 0x00, 0x00, 0x0c, 0x00, 0x00, 0x00},
	}}

	for _, test := range tests {
		if test.in.Command() != test.cmd {
			t.Errorf("%s: wrong command %q", test.name, test.in.Command())
		}
		var buf bytes.Buffer
		err := test.in.BtcEncode(&buf, ProtocolVersion, btcwire.BaseEncoding)
		if err != nil {
			t.Errorf("%s: BtcEncode error %v", test.name, err)
			continue
		}
		if !bytes.Equal(buf.Bytes(), test.buf) {
			t.Errorf("%s: BtcEncode - got %s, want: %s", test.name,
				spew.Sdump(buf.Bytes()), spew.Sdump(test.buf))
			continue
		}
		if uint32(len(test.buf)) != test.in.MaxPayloadLength(ProtocolVersion) {
			t.Errorf("%s: unexpected max payload length", test.name)
		}
		err = test.out.BtcDecode(bytes.NewReader(test.buf), ProtocolVersion,
			btcwire.BaseEncoding)
		if err != nil {
			t.Errorf("%s: BtcDecode error %v", test.name, err)
			continue
		}
		if !reflect.DeepEqual(test.out, test.in) {
			t.Errorf("%s: BtcDecode - got %s, want: %s", test.name,
				spew.Sdump(test.out), spew.Sdump(test.in))
		}
	}
}

// TestSporkWire tests the MsgSpork wire encode and decode along with the text
// covered by its signature.
func TestSporkWire(t *testing.T) {
	t.Parallel()

	msg := &MsgSpork{
		ID:         10007,
		Value:      1000,
		TimeSigned: 1540000000,
		Signature:  []byte{0x01},
	}
	if got, want := msg.SignMessage(), "1000710001540000000"; got != want {
		t.Errorf("SignMessage: got %q, want %q", got, want)
	}

	var buf bytes.Buffer
	if err := msg.BtcEncode(&buf, ProtocolVersion, btcwire.BaseEncoding); err != nil {
		t.Fatalf("BtcEncode: %v", err)
	}
	if buf.Len() != 4+8+8+1+1 {
		t.Fatalf("BtcEncode: unexpected length %d", buf.Len())
	}
	var got MsgSpork
	err := got.BtcDecode(&buf, ProtocolVersion, btcwire.BaseEncoding)
	if err != nil {
		t.Fatalf("BtcDecode: %v", err)
	}
	if !reflect.DeepEqual(&got, msg) {
		t.Fatalf("BtcDecode - got %s, want: %s", spew.Sdump(&got),
			spew.Sdump(msg))
	}
	if got.Hash() != msg.Hash() {
		t.Fatal("Hash: decoded spork hash mismatch")
	}
}
