package app

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/asset"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/pacttest/assert"
	"github.com/iov-one/pact/x/escrow"
)

func TestMsgCodec(t *testing.T) {
	codec := NewMsgCodec(escrow.Msgs()...)

	msg := &escrow.DepositMsg{
		EscrowID: []byte{0, 0, 0, 0, 0, 0, 0, 1},
		Term:     "t1",
		Asset:    asset.Newp("gold", 4, 0),
	}
	raw, err := codec.Encode("alice", msg)
	assert.Nil(t, err)

	tx, err := codec.Decode(raw)
	assert.Nil(t, err)
	assert.Equal(t, pact.Party("alice"), tx.GetCaller())
	assert.Equal(t, "escrow/deposit", pact.GetPath(tx))

	var got escrow.DepositMsg
	assert.Nil(t, pact.LoadMsg(tx, &got))
	assert.Equal(t, "t1", got.Term)
	assert.Equal(t, true, got.Asset.Equals(*msg.Asset))

	env, opened, err := codec.Open(raw)
	assert.Nil(t, err)
	assert.Equal(t, "alice", env.Caller)
	assert.Equal(t, msg.Path(), opened.Path())
}

func TestMsgCodecErrors(t *testing.T) {
	codec := NewMsgCodec(&escrow.SignMsg{})

	_, err := codec.Encode("alice", &escrow.ExecuteMsg{})
	assert.IsErr(t, errors.ErrMsg, err)

	_, err = codec.Decode([]byte("not a protobuf message, definitely"))
	assert.IsErr(t, errors.ErrMsg, err)

	unknown, err := proto.Marshal(&Envelope{Caller: "alice", Path: "escrow/execute"})
	assert.Nil(t, err)
	_, err = codec.Decode(unknown)
	assert.IsErr(t, errors.ErrMsg, err)

	assert.Panics(t, func() { NewMsgCodec(&escrow.SignMsg{}, &escrow.SignMsg{}) })
}
