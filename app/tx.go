package app

import (
	"fmt"
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
)

// Envelope is the wire format of a transaction. The message is carried as
// protobuf bytes next to its path, the path selects the message type when
// decoding.
type Envelope struct {
	Caller  string `protobuf:"bytes,1,opt,name=caller,proto3" json:"caller,omitempty"`
	Path    string `protobuf:"bytes,2,opt,name=path,proto3" json:"path,omitempty"`
	Payload []byte `protobuf:"bytes,3,opt,name=payload,proto3" json:"payload,omitempty"`
}

func (m *Envelope) Reset()         { *m = Envelope{} }
func (m *Envelope) String() string { return proto.CompactTextString(m) }
func (*Envelope) ProtoMessage()    {}

// tx is a decoded envelope.
type tx struct {
	caller pact.Party
	msg    pact.Msg
}

var _ pact.Tx = (*tx)(nil)

func (t *tx) GetMsg() (pact.Msg, error) {
	return t.msg, nil
}

func (t *tx) GetCaller() pact.Party {
	return t.caller
}

// NewTx returns a transaction carrying given message on behalf of the
// caller. It does not go through an envelope.
func NewTx(caller pact.Party, msg pact.Msg) pact.Tx {
	return &tx{caller: caller, msg: msg}
}

// MsgCodec encodes and decodes transaction envelopes for a fixed set of
// message types.
type MsgCodec struct {
	types map[string]reflect.Type
}

// NewMsgCodec returns a codec for given messages. It panics if two messages
// share the same path.
func NewMsgCodec(msgs ...pact.Msg) *MsgCodec {
	c := &MsgCodec{types: make(map[string]reflect.Type, len(msgs))}
	for _, m := range msgs {
		t := reflect.TypeOf(m)
		if t.Kind() != reflect.Ptr {
			panic(fmt.Sprintf("message %T must be a pointer", m))
		}
		if _, ok := c.types[m.Path()]; ok {
			panic(fmt.Sprintf("duplicated message path: %s", m.Path()))
		}
		c.types[m.Path()] = t
	}
	return c
}

// Encode serializes the message into an envelope.
func (c *MsgCodec) Encode(caller pact.Party, msg pact.Msg) ([]byte, error) {
	if _, ok := c.types[msg.Path()]; !ok {
		return nil, errors.Wrapf(errors.ErrMsg, "unknown message path %q", msg.Path())
	}
	payload, err := proto.Marshal(msg)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "cannot marshal %T: %s", msg, err)
	}
	env := Envelope{
		Caller:  caller.String(),
		Path:    msg.Path(),
		Payload: payload,
	}
	raw, err := proto.Marshal(&env)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "cannot marshal envelope: %s", err)
	}
	return raw, nil
}

// Decode implements pact.TxDecoder.
func (c *MsgCodec) Decode(raw []byte) (pact.Tx, error) {
	env, msg, err := c.Open(raw)
	if err != nil {
		return nil, err
	}
	return &tx{caller: pact.Party(env.Caller), msg: msg}, nil
}

// Open decodes the envelope and the message it carries.
func (c *MsgCodec) Open(raw []byte) (*Envelope, pact.Msg, error) {
	var env Envelope
	if err := proto.Unmarshal(raw, &env); err != nil {
		return nil, nil, errors.Wrapf(errors.ErrMsg, "cannot unmarshal envelope: %s", err)
	}
	t, ok := c.types[env.Path]
	if !ok {
		return nil, nil, errors.Wrapf(errors.ErrMsg, "unknown message path %q", env.Path)
	}
	msg := reflect.New(t.Elem()).Interface().(pact.Msg)
	if err := proto.Unmarshal(env.Payload, msg); err != nil {
		return nil, nil, errors.Wrapf(errors.ErrMsg, "cannot unmarshal %s: %s", env.Path, err)
	}
	return &env, msg, nil
}
