package utils_test

import (
	"context"
	"testing"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/app"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/pacttest"
	"github.com/iov-one/pact/pacttest/assert"
	"github.com/iov-one/pact/store"
	"github.com/iov-one/pact/x/escrow"
	"github.com/iov-one/pact/x/utils"
	"github.com/tendermint/tendermint/libs/common"
)

func stringTag(key, value string) common.KVPair {
	return common.KVPair{
		Key:   []byte(key),
		Value: []byte(value),
	}
}

func TestTxTagger(t *testing.T) {
	escrowID := []byte{0, 0, 0, 0, 0, 0, 0, 1}

	cases := map[string]struct {
		handler pact.Handler
		msg     pact.Msg
		msgErr  error
		err     *errors.Error
		tags    []common.KVPair
	}{
		"message without entity": {
			handler: &pacttest.Handler{},
			msg:     &pacttest.Msg{RoutePath: "escrow/sign"},
			tags:    []common.KVPair{stringTag(utils.ActionKey, "escrow/sign")},
		},
		"escrow message": {
			handler: &pacttest.Handler{},
			msg:     &escrow.SignMsg{EscrowID: escrowID},
			tags: []common.KVPair{
				stringTag("escrow", "0000000000000001"),
				stringTag(utils.ActionKey, "escrow/sign"),
			},
		},
		"created escrow is read from the result": {
			handler: &pacttest.Handler{
				DeliverResult: pact.DeliverResult{Data: []byte{0, 0, 0, 0, 0, 0, 0, 7}},
			},
			msg: escrow.NewCreateMsg("alice"),
			tags: []common.KVPair{
				stringTag("escrow", "0000000000000007"),
				stringTag(utils.ActionKey, "escrow/create"),
			},
		},
		"handler tags are kept": {
			handler: &pacttest.Handler{
				DeliverResult: pact.DeliverResult{Tags: []common.KVPair{stringTag("release", "2")}},
			},
			msg: &escrow.ExecuteMsg{EscrowID: escrowID},
			tags: []common.KVPair{
				stringTag("release", "2"),
				stringTag("escrow", "0000000000000001"),
				stringTag(utils.ActionKey, "escrow/execute"),
			},
		},
		"passes through error": {
			handler: &pacttest.Handler{DeliverErr: errors.ErrState},
			msg:     &escrow.ExecuteMsg{EscrowID: escrowID},
			err:     errors.ErrState,
		},
		"missing message": {
			handler: &pacttest.Handler{},
			msgErr:  errors.ErrMsg,
			err:     errors.ErrMsg,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			db := store.MemStore()
			stack := app.ChainDecorators(utils.NewTxTagger()).WithHandler(tc.handler)
			tx := &pacttest.Tx{Msg: tc.msg, Err: tc.msgErr, Caller: "alice"}

			if tc.msgErr == nil {
				_, err := stack.Check(ctx, db, tx)
				assert.Nil(t, err)
			}

			res, err := stack.Deliver(ctx, db, tx)
			if !tc.err.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err == nil {
				assert.Equal(t, tc.tags, res.Tags)
			}
		})
	}
}
