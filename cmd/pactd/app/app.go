/*
Package app links together all the various components
to construct the pactd app.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/app"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/store/iavl"
	"github.com/iov-one/pact/x/escrow"
	"github.com/iov-one/pact/x/utils"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// Name is reported by the ABCI Info call.
const Name = "pactd"

// Chain returns a chain of decorators, to handle logging, recovery,
// tagging and rollback of failed transactions.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewTxTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		// on DeliverTx, a failed message never leaves partial writes
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching all escrow messages.
func Router(ctrl *escrow.Controller) *app.Router {
	r := app.NewRouter()
	escrow.RegisterRoutes(r, ctrl)
	return r
}

// QueryRouter returns a default query router, allowing access to
// "/escrows", "/terms", "/deposits", "/signatures" and "/releases".
func QueryRouter() pact.QueryRouter {
	r := pact.NewQueryRouter()
	r.RegisterAll(escrow.RegisterQuery)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(ctrl *escrow.Controller) pact.Handler {
	return Chain().WithHandler(Router(ctrl))
}

// TxCodec decodes and encodes every transaction understood by pactd.
func TxCodec() *app.MsgCodec {
	return app.NewMsgCodec(escrow.Msgs()...)
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h pact.Handler, tx pact.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), context.Background()).
		WithInit(escrow.Initializer{})
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path. An empty path returns an in memory store.
func CommitKVStore(dbPath string) (*iavl.CommitStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewCommitStoreFromDB(dbm.NewMemDB()), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrConfig, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is removed
	path = strings.TrimSuffix(path, filepath.Ext(path))
	return iavl.NewCommitStore(filepath.Dir(path), filepath.Base(path))
}
