package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/iov-one/pact/pacttest/assert"
)

func TestTransactionView(t *testing.T) {
	var tx bytes.Buffer
	err := cmdDeposit(nil, &tx, []string{"-caller", "alice", "-escrow", "2", "-term", "t1", "-asset", "4 gold"})
	assert.Nil(t, err)

	var output bytes.Buffer
	assert.Nil(t, cmdTransactionView(&tx, &output, nil))

	var view struct {
		Caller string `json:"caller"`
		Path   string `json:"path"`
		Msg    struct {
			Term  string `json:"term"`
			Asset struct {
				Name  string `json:"name"`
				Whole int64  `json:"whole"`
			} `json:"asset"`
		} `json:"msg"`
	}
	if err := json.Unmarshal(output.Bytes(), &view); err != nil {
		t.Fatalf("cannot decode view %q: %s", output.String(), err)
	}
	assert.Equal(t, "alice", view.Caller)
	assert.Equal(t, "escrow/deposit", view.Path)
	assert.Equal(t, "t1", view.Msg.Term)
	assert.Equal(t, "gold", view.Msg.Asset.Name)
	assert.Equal(t, int64(4), view.Msg.Asset.Whole)
}

func TestTransactionViewGarbage(t *testing.T) {
	var tx bytes.Buffer
	_, err := writeTx(&tx, []byte("not a transaction"))
	assert.Nil(t, err)

	var output bytes.Buffer
	if err := cmdTransactionView(&tx, &output, nil); err == nil {
		t.Fatalf("want an error, got output %q", output.String())
	}
}
