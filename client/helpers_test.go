package client

import (
	"context"
	"testing"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/app"
	"github.com/iov-one/pact/store/iavl"
	"github.com/iov-one/pact/x/escrow"
	"github.com/iov-one/pact/x/utils"
	abci "github.com/tendermint/tendermint/abci/types"
	dbm "github.com/tendermint/tendermint/libs/db"
)

func escrowMsgs() []pact.Msg { return escrow.Msgs() }

func createMsg(owners ...pact.Party) pact.Msg { return escrow.NewCreateMsg(owners...) }

func signMsg(id []byte) pact.Msg { return &escrow.SignMsg{EscrowID: id} }

// newTestNode returns an initialised application serving escrow messages
// from memory.
func newTestNode(t *testing.T, codec *app.MsgCodec) abci.Application {
	t.Helper()
	r := app.NewRouter()
	escrow.RegisterRoutes(r, escrow.NewController())
	qr := pact.NewQueryRouter()
	escrow.RegisterQuery(qr)

	kv := iavl.NewCommitStoreFromDB(dbm.NewMemDB())
	s := app.NewStoreApp("pact-client-test", kv, qr, context.Background()).
		WithInit(escrow.Initializer{})
	// history search relies on the escrow tags
	h := app.ChainDecorators(utils.NewTxTagger()).WithHandler(r)
	node := app.NewBaseApp(s, codec.Decode, h, false)
	node.InitChain(abci.RequestInitChain{ChainId: "pact-client-test", AppStateBytes: []byte(`{"escrow": []}`)})
	return node
}
