package main

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/iov-one/pact"
	pactd "github.com/iov-one/pact/cmd/pactd/app"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/orm"
)

const txHeaderSize = 4

// codec knows every message pactd accepts.
var codec = pactd.TxCodec()

// env returns the value of an environment variable if provided (even if empty)
// or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

// writeMsg encodes the message in a transaction envelope on behalf of the
// caller and writes it out.
func writeMsg(w io.Writer, caller pact.Party, msg pact.Msg) error {
	if err := caller.Validate(); err != nil {
		return errors.Wrap(err, "caller")
	}
	raw, err := codec.Encode(caller, msg)
	if err != nil {
		return err
	}
	_, err = writeTx(w, raw)
	return err
}

// writeTx writes a serialized transaction. First bytes written contain the
// information how much space the transaction takes. Size information is
// required to be able to stream the messages:
// https://developers.google.com/protocol-buffers/docs/techniques#streaming
func writeTx(w io.Writer, raw []byte) (int, error) {
	var size [txHeaderSize]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(raw)))

	if n, err := w.Write(size[:]); err != nil {
		return n, err
	}
	if n, err := w.Write(raw); err != nil {
		return n + txHeaderSize, err
	}
	return txHeaderSize + len(raw), nil
}

// readTx reads a single transaction written by writeTx.
func readTx(r io.Reader) ([]byte, int, error) {
	var size [txHeaderSize]byte
	if n, err := io.ReadFull(r, size[:]); err != nil {
		return nil, n, err
	}
	msgSize := binary.BigEndian.Uint32(size[:])
	raw := make([]byte, msgSize)
	if n, err := io.ReadFull(r, raw); err != nil {
		return nil, n + txHeaderSize, err
	}
	return raw, int(msgSize) + txHeaderSize, nil
}

// fromSequence transforms given binary representation of a sequence value
// into a decimal form.
func fromSequence(b []byte) (int64, error) {
	if err := orm.ValidateSequence(b); err != nil {
		return 0, err
	}
	return orm.DecodeSequence(b), nil
}
