package app

import (
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp serves transactions on top of the storage and queries of
// StoreApp. CheckTx runs against the check state, DeliverTx against the
// block state. Both go through the same handler stack.
type BaseApp struct {
	*StoreApp
	decoder pact.TxDecoder
	handler pact.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp returns an application dispatching decoded transactions to
// handler. In debug mode failures carry the full error in the log.
func NewBaseApp(store *StoreApp, decoder pact.TxDecoder, handler pact.Handler, debug bool) BaseApp {
	return BaseApp{StoreApp: store, decoder: decoder, handler: handler, debug: debug}
}

func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	ctx, tx, err := b.open("deliver_tx", raw)
	if err != nil {
		return pact.DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return pact.DeliverOrError(res, err, b.debug)
}

func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	ctx, tx, err := b.open("check_tx", raw)
	if err != nil {
		return pact.CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return pact.CheckOrError(res, err, b.debug)
}

// open decodes the envelope and returns the block context with a logger
// naming the call and the message path. A panicking decoder fails with
// ErrPanic instead of stopping the node.
func (b BaseApp) open(call string, raw []byte) (ctx pact.Context, tx pact.Tx, err error) {
	defer errors.Recover(&err)
	if tx, err = b.decoder(raw); err != nil {
		return nil, nil, err
	}
	ctx = pact.WithLogInfo(b.BlockContext(), "call", call, "path", pact.GetPath(tx))
	return ctx, tx, nil
}
