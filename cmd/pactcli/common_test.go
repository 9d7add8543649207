package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/pacttest/assert"
)

func TestWriteReadTxStream(t *testing.T) {
	var buf bytes.Buffer
	first := []byte("first transaction")
	second := []byte{0, 1, 2}

	n, err := writeTx(&buf, first)
	assert.Nil(t, err)
	assert.Equal(t, len(first)+txHeaderSize, n)
	_, err = writeTx(&buf, second)
	assert.Nil(t, err)

	got, n, err := readTx(&buf)
	assert.Nil(t, err)
	assert.Equal(t, first, got)
	assert.Equal(t, len(first)+txHeaderSize, n)

	got, _, err = readTx(&buf)
	assert.Nil(t, err)
	assert.Equal(t, second, got)

	_, _, err = readTx(&buf)
	if err != io.EOF {
		t.Fatalf("want EOF, got %v", err)
	}
}

func TestReadTxTruncated(t *testing.T) {
	var buf bytes.Buffer
	_, err := writeTx(&buf, []byte("a transaction"))
	assert.Nil(t, err)

	_, _, err = readTx(bytes.NewReader(buf.Bytes()[:buf.Len()-2]))
	if err != io.ErrUnexpectedEOF {
		t.Fatalf("want unexpected EOF, got %v", err)
	}
}

// decodeOutput reads back a transaction written by one of the commands.
func decodeOutput(t testing.TB, output *bytes.Buffer) (pact.Party, pact.Msg) {
	t.Helper()
	raw, _, err := readTx(output)
	if err != nil {
		t.Fatalf("cannot read transaction: %s", err)
	}
	tx, err := codec.Decode(raw)
	if err != nil {
		t.Fatalf("cannot decode transaction: %s", err)
	}
	msg, err := tx.GetMsg()
	if err != nil {
		t.Fatalf("cannot get message: %s", err)
	}
	return tx.GetCaller(), msg
}
