package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/asset"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/pacttest/assert"
	"github.com/iov-one/pact/x/escrow"
)

var escrowOne = []byte{0, 0, 0, 0, 0, 0, 0, 1}

func TestEscrowCommands(t *testing.T) {
	cases := map[string]struct {
		cmd     func(io.Reader, io.Writer, []string) error
		args    []string
		caller  pact.Party
		wantMsg pact.Msg
	}{
		"create": {
			cmd:     cmdCreate,
			args:    []string{"-caller", "alice", "-owners", "alice,bob"},
			caller:  "alice",
			wantMsg: escrow.NewCreateMsg("alice", "bob"),
		},
		"add term": {
			cmd: cmdAddTerm,
			args: []string{"-caller", "bob", "-escrow", "1", "-name", "t1",
				"-sender", "alice", "-receiver", "bob", "-asset", "4 gold"},
			caller: "bob",
			wantMsg: &escrow.AddTermMsg{
				EscrowID: escrowOne,
				Name:     "t1",
				Sender:   "alice",
				Receiver: "bob",
				Asset:    asset.Newp("gold", 4, 0),
			},
		},
		"remove term": {
			cmd:     cmdRemoveTerm,
			args:    []string{"-caller", "bob", "-escrow", "1", "-name", "t1"},
			caller:  "bob",
			wantMsg: &escrow.RemoveTermMsg{EscrowID: escrowOne, Name: "t1"},
		},
		"sign": {
			cmd:     cmdSign,
			args:    []string{"-caller", "alice", "-escrow", "1"},
			caller:  "alice",
			wantMsg: &escrow.SignMsg{EscrowID: escrowOne},
		},
		"deposit": {
			cmd:     cmdDeposit,
			args:    []string{"-caller", "alice", "-escrow", "1", "-term", "t1", "-asset", "4 gold"},
			caller:  "alice",
			wantMsg: &escrow.DepositMsg{EscrowID: escrowOne, Term: "t1", Asset: asset.Newp("gold", 4, 0)},
		},
		"withdraw": {
			cmd:     cmdWithdraw,
			args:    []string{"-caller", "alice", "-escrow", "1", "-term", "t1"},
			caller:  "alice",
			wantMsg: &escrow.WithdrawMsg{EscrowID: escrowOne, Term: "t1"},
		},
		"execute": {
			cmd:     cmdExecute,
			args:    []string{"-caller", "carol", "-escrow", "1"},
			caller:  "carol",
			wantMsg: &escrow.ExecuteMsg{EscrowID: escrowOne},
		},
		"reset": {
			cmd:     cmdReset,
			args:    []string{"-caller", "bob", "-escrow", "1"},
			caller:  "bob",
			wantMsg: &escrow.ResetMsg{EscrowID: escrowOne},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var output bytes.Buffer
			if err := tc.cmd(nil, &output, tc.args); err != nil {
				t.Fatalf("cannot create transaction: %s", err)
			}
			caller, msg := decodeOutput(t, &output)
			assert.Equal(t, tc.caller, caller)
			assert.Equal(t, tc.wantMsg, msg)
		})
	}
}

func TestEscrowCommandRequiresCaller(t *testing.T) {
	var output bytes.Buffer
	err := cmdSign(nil, &output, []string{"-caller", "", "-escrow", "1"})
	assert.IsErr(t, errors.ErrInput, err)
	assert.Equal(t, 0, output.Len())
}
