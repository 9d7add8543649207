package escrow

import (
	"encoding/hex"
	"strings"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r pact.Registry, ctrl *Controller) {
	r.Handle(pathCreateMsg, CreateHandler{ctrl})
	r.Handle(pathAddTermMsg, AddTermHandler{ctrl})
	r.Handle(pathRemoveTermMsg, RemoveTermHandler{ctrl})
	r.Handle(pathSignMsg, SignHandler{ctrl})
	r.Handle(pathDepositMsg, DepositHandler{ctrl})
	r.Handle(pathWithdrawMsg, WithdrawHandler{ctrl})
	r.Handle(pathExecuteMsg, ExecuteHandler{ctrl})
	r.Handle(pathResetMsg, ResetHandler{ctrl})
}

// RegisterQuery will register the buckets as "/escrows", "/terms",
// "/deposits", "/signatures" and "/releases"
func RegisterQuery(qr pact.QueryRouter) {
	NewCoordinatorBucket().Register("escrows", qr)
	NewTermBucket().Register("terms", qr)
	NewDepositBucket().Register("deposits", qr)
	NewSignatureBucket().Register("signatures", qr)
	NewReleaseBucket().Register("releases", qr)
}

// caller returns the party that submitted the transaction.
func caller(tx pact.Tx) (pact.Party, error) {
	p := tx.GetCaller()
	if err := p.Validate(); err != nil {
		return "", errors.Wrap(errors.ErrUnauthorized, "missing or malformed caller")
	}
	return p, nil
}

// loadBundle loads the message and the coordinator it refers to.
func loadBundle(ctrl *Controller, db pact.KVStore, tx pact.Tx, msg interface{}, id func() []byte) (*Bundle, pact.Party, error) {
	if err := pact.LoadMsg(tx, msg); err != nil {
		return nil, "", errors.Wrap(err, "load msg")
	}
	who, err := caller(tx)
	if err != nil {
		return nil, "", err
	}
	b, err := ctrl.Load(db, id())
	if err != nil {
		return nil, "", err
	}
	return b, who, nil
}

// CreateHandler creates new coordinators.
type CreateHandler struct {
	ctrl *Controller
}

var _ pact.Handler = CreateHandler{}

// Check creates the coordinator in the check state.
func (h CreateHandler) Check(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.CheckResult, error) {
	res, err := h.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &pact.CheckResult{Data: res.Data}, nil
}

// Deliver stores a new coordinator and returns its id.
func (h CreateHandler) Deliver(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.DeliverResult, error) {
	var msg CreateMsg
	if err := pact.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := caller(tx); err != nil {
		return nil, err
	}
	owners := make([]pact.Party, len(msg.Owners))
	for i, o := range msg.Owners {
		owners[i] = pact.Party(o)
	}
	b, err := h.ctrl.Create(db, owners)
	if err != nil {
		return nil, err
	}
	pact.GetLogger(ctx).Debug("escrow created", "escrow", hex.EncodeToString(b.ID()), "owners", len(owners))
	return &pact.DeliverResult{
		Data: b.ID(),
		Log:  b.Address().String(),
	}, nil
}

// AddTermHandler adds or replaces a term of a draft bundle.
type AddTermHandler struct {
	ctrl *Controller
}

var _ pact.Handler = AddTermHandler{}

// Check applies the message to the check state.
func (h AddTermHandler) Check(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.CheckResult, error) {
	if _, err := h.Deliver(ctx, db, tx); err != nil {
		return nil, err
	}
	return &pact.CheckResult{}, nil
}

// Deliver adds the term.
func (h AddTermHandler) Deliver(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.DeliverResult, error) {
	var msg AddTermMsg
	b, who, err := loadBundle(h.ctrl, db, tx, &msg, func() []byte { return msg.EscrowID })
	if err != nil {
		return nil, err
	}
	err = b.AddTerm(db, who, msg.Name, pact.Party(msg.Sender), pact.Party(msg.Receiver), *msg.Asset)
	if err != nil {
		return nil, err
	}
	return &pact.DeliverResult{}, nil
}

// RemoveTermHandler removes a term from a draft bundle.
type RemoveTermHandler struct {
	ctrl *Controller
}

var _ pact.Handler = RemoveTermHandler{}

// Check applies the message to the check state.
func (h RemoveTermHandler) Check(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.CheckResult, error) {
	if _, err := h.Deliver(ctx, db, tx); err != nil {
		return nil, err
	}
	return &pact.CheckResult{}, nil
}

// Deliver removes the term.
func (h RemoveTermHandler) Deliver(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.DeliverResult, error) {
	var msg RemoveTermMsg
	b, who, err := loadBundle(h.ctrl, db, tx, &msg, func() []byte { return msg.EscrowID })
	if err != nil {
		return nil, err
	}
	if err := b.RemoveTerm(db, who, msg.Name); err != nil {
		return nil, err
	}
	return &pact.DeliverResult{}, nil
}

// SignHandler records the caller signature.
type SignHandler struct {
	ctrl *Controller
}

var _ pact.Handler = SignHandler{}

// Check applies the message to the check state.
func (h SignHandler) Check(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.CheckResult, error) {
	if _, err := h.Deliver(ctx, db, tx); err != nil {
		return nil, err
	}
	return &pact.CheckResult{}, nil
}

// Deliver signs the bundle.
func (h SignHandler) Deliver(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.DeliverResult, error) {
	var msg SignMsg
	b, who, err := loadBundle(h.ctrl, db, tx, &msg, func() []byte { return msg.EscrowID })
	if err != nil {
		return nil, err
	}
	if err := b.Sign(db, who); err != nil {
		return nil, err
	}
	return &pact.DeliverResult{}, nil
}

// DepositHandler escrows the asset of a term.
type DepositHandler struct {
	ctrl *Controller
}

var _ pact.Handler = DepositHandler{}

// Check applies the message to the check state.
func (h DepositHandler) Check(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.CheckResult, error) {
	if _, err := h.Deliver(ctx, db, tx); err != nil {
		return nil, err
	}
	return &pact.CheckResult{}, nil
}

// Deliver records the deposit and marks the term satisfied.
func (h DepositHandler) Deliver(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.DeliverResult, error) {
	var msg DepositMsg
	b, who, err := loadBundle(h.ctrl, db, tx, &msg, func() []byte { return msg.EscrowID })
	if err != nil {
		return nil, err
	}
	if err := b.Deposit(db, who, *msg.Asset, msg.Term); err != nil {
		return nil, err
	}
	return &pact.DeliverResult{}, nil
}

// WithdrawHandler returns the deposit of a term sender.
type WithdrawHandler struct {
	ctrl *Controller
}

var _ pact.Handler = WithdrawHandler{}

// Check applies the message to the check state.
func (h WithdrawHandler) Check(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.CheckResult, error) {
	if _, err := h.Deliver(ctx, db, tx); err != nil {
		return nil, err
	}
	return &pact.CheckResult{}, nil
}

// Deliver removes the deposit and marks the term not satisfied.
func (h WithdrawHandler) Deliver(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.DeliverResult, error) {
	var msg WithdrawMsg
	b, who, err := loadBundle(h.ctrl, db, tx, &msg, func() []byte { return msg.EscrowID })
	if err != nil {
		return nil, err
	}
	if err := b.Withdraw(db, who, msg.Term); err != nil {
		return nil, err
	}
	return &pact.DeliverResult{}, nil
}

// ExecuteHandler settles a ready bundle. Any party may trigger it.
type ExecuteHandler struct {
	ctrl *Controller
}

var _ pact.Handler = ExecuteHandler{}

// Check applies the message to the check state.
func (h ExecuteHandler) Check(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.CheckResult, error) {
	res, err := h.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &pact.CheckResult{Log: res.Log}, nil
}

// Deliver writes the releases to the outbox and clears the deposits. The
// log lists the release instructions, one per line.
func (h ExecuteHandler) Deliver(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.DeliverResult, error) {
	var msg ExecuteMsg
	b, who, err := loadBundle(h.ctrl, db, tx, &msg, func() []byte { return msg.EscrowID })
	if err != nil {
		return nil, err
	}
	releases, err := b.Execute(db)
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(releases))
	for i, r := range releases {
		lines[i] = r.Instruction()
	}
	pact.GetLogger(ctx).Info("escrow settled",
		"escrow", hex.EncodeToString(b.ID()),
		"caller", who,
		"releases", len(releases))
	return &pact.DeliverResult{
		Log: strings.Join(lines, "\n"),
	}, nil
}

// ResetHandler returns a settled bundle to drafting.
type ResetHandler struct {
	ctrl *Controller
}

var _ pact.Handler = ResetHandler{}

// Check applies the message to the check state.
func (h ResetHandler) Check(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.CheckResult, error) {
	if _, err := h.Deliver(ctx, db, tx); err != nil {
		return nil, err
	}
	return &pact.CheckResult{}, nil
}

// Deliver resets the bundle.
func (h ResetHandler) Deliver(ctx pact.Context, db pact.KVStore, tx pact.Tx) (*pact.DeliverResult, error) {
	var msg ResetMsg
	b, who, err := loadBundle(h.ctrl, db, tx, &msg, func() []byte { return msg.EscrowID })
	if err != nil {
		return nil, err
	}
	if err := b.Reset(db, who); err != nil {
		return nil, err
	}
	return &pact.DeliverResult{}, nil
}
