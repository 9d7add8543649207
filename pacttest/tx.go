package pacttest

import (
	"github.com/iov-one/pact"
)

// Tx represents a pact transaction.
// Transaction represents a single message that is to be processed within this
// transaction, on behalf of the caller.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg pact.Msg
	// Caller is the party asserted by the environment.
	Caller pact.Party
	// Err if set is returned by GetMsg.
	Err error
}

var _ pact.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (pact.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) GetCaller() pact.Party {
	return tx.Caller
}

// Msg represents a pact message.
// Message is a request processed within a single transaction.
type Msg struct {
	// Path returned by the path method, consumed by the router.
	RoutePath string
	// Err if set is returned by Validate.
	Err error
}

var _ pact.Msg = (*Msg)(nil)

func (m *Msg) Reset()         { *m = Msg{} }
func (m *Msg) String() string { return "mock " + m.RoutePath }
func (*Msg) ProtoMessage()    {}

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
