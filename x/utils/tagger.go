package utils

import (
	"encoding/hex"

	"github.com/iov-one/pact"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is the tag key holding the path of a delivered message.
const ActionKey = "action"

// EntityMsg is implemented by messages that act on a single stored entity,
// such as an escrow coordinator. EntityTag returns the tag key and the
// entity id. Messages creating the entity read the id from the delivery
// result data.
type EntityMsg interface {
	EntityTag(resultData []byte) (key string, id []byte)
}

// TxTagger indexes every successfully delivered transaction, so that clients
// can search the history of an entity and subscribe to actions. The entity
// tag "<key>=<hex id>" comes first, "action=<msg path>" is always last.
type TxTagger struct{}

var _ pact.Decorator = TxTagger{}

// NewTxTagger returns a decorator tagging delivered transactions.
func NewTxTagger() TxTagger {
	return TxTagger{}
}

// Check does not tag, the mempool is not indexed.
func (TxTagger) Check(ctx pact.Context, db pact.KVStore, tx pact.Tx, next pact.Checker) (*pact.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver tags the result of a successful delivery.
func (TxTagger) Deliver(ctx pact.Context, db pact.KVStore, tx pact.Tx, next pact.Deliverer) (*pact.DeliverResult, error) {
	// an undecodable message fails before reaching the handler
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if em, ok := msg.(EntityMsg); ok {
		if key, id := em.EntityTag(res.Data); len(id) != 0 {
			res.Tags = append(res.Tags, common.KVPair{
				Key:   []byte(key),
				Value: []byte(hex.EncodeToString(id)),
			})
		}
	}
	res.Tags = append(res.Tags, common.KVPair{
		Key:   []byte(ActionKey),
		Value: []byte(msg.Path()),
	})
	return res, nil
}
