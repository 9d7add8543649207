package pact

import (
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pact/errors"
)

// Msg is a request for the escrow coordinator to take an action
// (make a state transition). It is just the request, and must be
// validated by the Handlers. The identity of the caller is in the
// wrapping Tx.
type Msg interface {
	proto.Message

	// Path returns the message path.
	// This is used by the Router to locate the proper Handler.
	// Msg should be created alongside the Handler that corresponds to them.
	//
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string

	// Validate performs a sanity check of the message content, without
	// any access to the state.
	Validate() error
}

// Tx represent the data sent from the user to the coordinator.
// It includes the actual message, along with the party that the
// environment asserts sent it.
type Tx interface {
	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)

	// GetCaller returns the party that submitted this transaction.
	// The identity is not verified.
	GetCaller() Party
}

// GetPath returns the path of the message, or (missing) if no message
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// TxDecoder can parse bytes into a Tx
type TxDecoder func(txBytes []byte) (Tx, error)

// LoadMsg extracts the message represented by given transaction into given
// destination. Before returning the message is validated.
//
// Destination must be a non-nil pointer of the type of the message carried
// by the transaction.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrState, "nil message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	// Rely on reflection to copy the message content. Both values must be
	// pointers to the same type.
	src := reflect.ValueOf(msg)
	dst := reflect.ValueOf(destination)
	if !dst.IsValid() || dst.Kind() != reflect.Ptr || dst.IsNil() {
		return errors.Wrapf(errors.ErrType, "invalid destination %T", destination)
	}
	if src.Type() != dst.Type() {
		return errors.Wrapf(errors.ErrType, "want %T message, got %T", destination, msg)
	}
	dst.Elem().Set(src.Elem())
	return nil
}
