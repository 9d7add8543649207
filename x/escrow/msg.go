package escrow

import (
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/asset"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/orm"
)

const (
	pathCreateMsg     = "escrow/create"
	pathAddTermMsg    = "escrow/add_term"
	pathRemoveTermMsg = "escrow/remove_term"
	pathSignMsg       = "escrow/sign"
	pathDepositMsg    = "escrow/deposit"
	pathWithdrawMsg   = "escrow/withdraw"
	pathExecuteMsg    = "escrow/execute"
	pathResetMsg      = "escrow/reset"
)

var (
	_ pact.Msg = (*CreateMsg)(nil)
	_ pact.Msg = (*AddTermMsg)(nil)
	_ pact.Msg = (*RemoveTermMsg)(nil)
	_ pact.Msg = (*SignMsg)(nil)
	_ pact.Msg = (*DepositMsg)(nil)
	_ pact.Msg = (*WithdrawMsg)(nil)
	_ pact.Msg = (*ExecuteMsg)(nil)
	_ pact.Msg = (*ResetMsg)(nil)
)

//--------- Path routing --------

// Path fulfills pact.Msg interface to allow routing
func (CreateMsg) Path() string { return pathCreateMsg }

// Path fulfills pact.Msg interface to allow routing
func (AddTermMsg) Path() string { return pathAddTermMsg }

// Path fulfills pact.Msg interface to allow routing
func (RemoveTermMsg) Path() string { return pathRemoveTermMsg }

// Path fulfills pact.Msg interface to allow routing
func (SignMsg) Path() string { return pathSignMsg }

// Path fulfills pact.Msg interface to allow routing
func (DepositMsg) Path() string { return pathDepositMsg }

// Path fulfills pact.Msg interface to allow routing
func (WithdrawMsg) Path() string { return pathWithdrawMsg }

// Path fulfills pact.Msg interface to allow routing
func (ExecuteMsg) Path() string { return pathExecuteMsg }

// Path fulfills pact.Msg interface to allow routing
func (ResetMsg) Path() string { return pathResetMsg }

//--------- Search tags --------

// TagKey is the key under which delivered messages are tagged with the hex
// id of their coordinator.
const TagKey = "escrow"

// EntityTag returns the tag of the created coordinator. Its id is only known
// from the delivery result data.
func (CreateMsg) EntityTag(data []byte) (string, []byte) { return TagKey, data }

func (m AddTermMsg) EntityTag([]byte) (string, []byte)    { return TagKey, m.EscrowID }
func (m RemoveTermMsg) EntityTag([]byte) (string, []byte) { return TagKey, m.EscrowID }
func (m SignMsg) EntityTag([]byte) (string, []byte)       { return TagKey, m.EscrowID }
func (m DepositMsg) EntityTag([]byte) (string, []byte)    { return TagKey, m.EscrowID }
func (m WithdrawMsg) EntityTag([]byte) (string, []byte)   { return TagKey, m.EscrowID }
func (m ExecuteMsg) EntityTag([]byte) (string, []byte)    { return TagKey, m.EscrowID }
func (m ResetMsg) EntityTag([]byte) (string, []byte)      { return TagKey, m.EscrowID }

// Msgs returns an empty instance of every message of this package. It is
// used to build the transaction decoder.
func Msgs() []pact.Msg {
	return []pact.Msg{
		&CreateMsg{},
		&AddTermMsg{},
		&RemoveTermMsg{},
		&SignMsg{},
		&DepositMsg{},
		&WithdrawMsg{},
		&ExecuteMsg{},
		&ResetMsg{},
	}
}

//--------- Validation --------

// NewCreateMsg is a helper to quickly build a create message
func NewCreateMsg(owners ...pact.Party) *CreateMsg {
	res := make([]string, len(owners))
	for i, o := range owners {
		res[i] = o.String()
	}
	return &CreateMsg{Owners: res}
}

// Validate makes sure that this is sensible
func (m *CreateMsg) Validate() error {
	if len(m.Owners) == 0 {
		return errors.Field("Owners", errors.ErrConfig, "at least one owner required")
	}
	var errs error
	for i, o := range m.Owners {
		errs = errors.Append(errs, errors.Field("Owners", pact.Party(o).Validate(), "position %d", i))
	}
	return errs
}

// Validate makes sure that this is sensible
func (m *AddTermMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "EscrowID", orm.ValidateSequence(m.EscrowID))
	errs = errors.AppendField(errs, "Name", validateTermName(m.Name))
	errs = errors.AppendField(errs, "Sender", pact.Party(m.Sender).Validate())
	errs = errors.AppendField(errs, "Receiver", pact.Party(m.Receiver).Validate())
	errs = errors.AppendField(errs, "Asset", validateAsset(m.Asset))
	return errs
}

// Validate makes sure that this is sensible
func (m *RemoveTermMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "EscrowID", orm.ValidateSequence(m.EscrowID))
	errs = errors.AppendField(errs, "Name", validateTermName(m.Name))
	return errs
}

// Validate makes sure that this is sensible
func (m *SignMsg) Validate() error {
	return errors.Field("EscrowID", orm.ValidateSequence(m.EscrowID), "")
}

// Validate makes sure that this is sensible
func (m *DepositMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "EscrowID", orm.ValidateSequence(m.EscrowID))
	errs = errors.AppendField(errs, "Term", validateTermName(m.Term))
	errs = errors.AppendField(errs, "Asset", validateAsset(m.Asset))
	return errs
}

// Validate makes sure that this is sensible
func (m *WithdrawMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "EscrowID", orm.ValidateSequence(m.EscrowID))
	errs = errors.AppendField(errs, "Term", validateTermName(m.Term))
	return errs
}

// Validate makes sure that this is sensible
func (m *ExecuteMsg) Validate() error {
	return errors.Field("EscrowID", orm.ValidateSequence(m.EscrowID), "")
}

// Validate makes sure that this is sensible
func (m *ResetMsg) Validate() error {
	return errors.Field("EscrowID", orm.ValidateSequence(m.EscrowID), "")
}

func validateTermName(name string) error {
	if !IsTermName(name) {
		return errors.Wrapf(errors.ErrInput, "invalid term name %q", name)
	}
	return nil
}

func validateAsset(a *asset.Asset) error {
	if a == nil {
		return errors.ErrEmpty
	}
	return a.Validate()
}
