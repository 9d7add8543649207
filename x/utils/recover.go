package utils

import (
	"encoding/hex"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
)

// Recovery turns a panic of any handler below it into an ErrPanic result,
// so that a malformed transaction can never stop the node. Every recovered
// panic is logged with the message path, the caller and the entity the
// transaction acted on.
type Recovery struct{}

var _ pact.Decorator = Recovery{}

// NewRecovery returns a panic recovering decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

func (r Recovery) Check(ctx pact.Context, db pact.KVStore, tx pact.Tx, next pact.Checker) (_ *pact.CheckResult, err error) {
	defer reportPanic(ctx, "check_tx", tx, &err)
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

func (r Recovery) Deliver(ctx pact.Context, db pact.KVStore, tx pact.Tx, next pact.Deliverer) (_ *pact.DeliverResult, err error) {
	defer reportPanic(ctx, "deliver_tx", tx, &err)
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}

// reportPanic runs after errors.Recover has converted the panic.
func reportPanic(ctx pact.Context, call string, tx pact.Tx, err *error) {
	if !errors.ErrPanic.Is(*err) {
		return
	}
	keyvals := []interface{}{"call", call, "err", *err}
	if tx != nil {
		keyvals = append(keyvals, "caller", tx.GetCaller())
		if msg, merr := tx.GetMsg(); merr == nil && msg != nil {
			keyvals = append(keyvals, "path", msg.Path())
			if em, ok := msg.(EntityMsg); ok {
				// the id of a created entity is unknown after a panic
				if key, id := em.EntityTag(nil); len(id) != 0 {
					keyvals = append(keyvals, key, hex.EncodeToString(id))
				}
			}
		}
	}
	pact.GetLogger(ctx).Error("Recovered from panic", keyvals...)
}
