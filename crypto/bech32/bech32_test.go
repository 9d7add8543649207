package bech32

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/iov-one/pact/errors"
)

func TestDecodeKnownVector(t *testing.T) {
	// bech32 -e -h tiov 746573742d7061796c6f6164
	const enc = `tiov1w3jhxapdwpshjmr0v9jqymqq4y`

	want, err := hex.DecodeString("746573742d7061796c6f6164")
	if err != nil {
		t.Fatal(err)
	}
	hrp, payload, err := Decode(enc)
	if err != nil {
		t.Fatal(err)
	}
	if hrp != "tiov" {
		t.Fatalf("unexpected prefix %q", hrp)
	}
	if !bytes.Equal(want, payload) {
		t.Fatalf("want %X, got %X", want, payload)
	}
	raw, err := Encode(hrp, payload)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}
	if raw != enc {
		t.Fatalf("invalid encoding: %q", raw)
	}
}

func TestRoundTrip(t *testing.T) {
	addr := bytes.Repeat([]byte{0xab, 0x01}, 10)
	raw, err := Encode("pact", addr)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}
	hrp, payload, err := Decode(raw)
	if err != nil {
		t.Fatalf("cannot decode %q: %s", raw, err)
	}
	if hrp != "pact" || !bytes.Equal(addr, payload) {
		t.Fatalf("got %q %X", hrp, payload)
	}
}

func TestDecodeBrokenChecksum(t *testing.T) {
	if _, _, err := Decode("tiov1w3jhxapdwpshjmr0v9jqymqq4z"); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %v", err)
	}
}
