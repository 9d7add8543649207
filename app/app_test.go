package app

import (
	"context"
	"testing"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/asset"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/store/iavl"
	"github.com/iov-one/pact/x/escrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	dbm "github.com/tendermint/tendermint/libs/db"
)

func newTestApp(t *testing.T, announcer Announcer) (BaseApp, *MsgCodec) {
	t.Helper()
	ctrl := escrow.NewController()
	r := NewRouter()
	escrow.RegisterRoutes(r, ctrl)
	qr := pact.NewQueryRouter()
	escrow.RegisterQuery(qr)
	codec := NewMsgCodec(escrow.Msgs()...)

	kv := iavl.NewCommitStoreFromDB(dbm.NewMemDB())
	s := NewStoreApp("pact-test", kv, qr, context.Background()).
		WithInit(escrow.Initializer{}).
		WithAnnouncer(announcer)
	return NewBaseApp(s, codec.Decode, r, false), codec
}

func mustEncode(t *testing.T, codec *MsgCodec, caller pact.Party, msg pact.Msg) []byte {
	t.Helper()
	raw, err := codec.Encode(caller, msg)
	require.NoError(t, err)
	return raw
}

func TestApp(t *testing.T) {
	var announced []int64
	announcer := AnnouncerFunc(func(ctx pact.Context, committed pact.ReadOnlyKVStore) {
		h, _ := pact.GetHeight(ctx)
		announced = append(announced, h)
	})
	myApp, codec := newTestApp(t, announcer)

	genesis := `{
		"escrow": [{"owners": ["alice", "bob"]}]
	}`
	myApp.InitChain(abci.RequestInitChain{ChainId: "pact-test-net", AppStateBytes: []byte(genesis)})
	myApp.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1}})
	myApp.EndBlock(abci.RequestEndBlock{})
	block1 := myApp.Commit().Data
	assert.NotEmpty(t, block1)
	assert.Equal(t, "pact-test-net", myApp.GetChainID())
	assert.Equal(t, []int64{1}, announced)

	info := myApp.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, block1, info.LastBlockAppHash)

	id := []byte{0, 0, 0, 0, 0, 0, 0, 1}
	myApp.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 2}})

	addTerm := mustEncode(t, codec, "alice", &escrow.AddTermMsg{
		EscrowID: id,
		Name:     "t1",
		Sender:   "alice",
		Receiver: "bob",
		Asset:    asset.Newp("gold", 4, 0),
	})
	chres := myApp.CheckTx(addTerm)
	require.Equal(t, uint32(0), chres.Code, chres.Log)
	dres := myApp.DeliverTx(addTerm)
	require.Equal(t, uint32(0), dres.Code, dres.Log)

	// not an owner
	bad := mustEncode(t, codec, "carol", &escrow.SignMsg{EscrowID: id})
	dres = myApp.DeliverTx(bad)
	code, _ := errors.ABCIInfo(errors.ErrUnauthorized, false)
	assert.Equal(t, code, dres.Code)

	// garbage never reaches a handler
	dres = myApp.DeliverTx([]byte{0xff, 0xff, 0xff})
	code, _ = errors.ABCIInfo(errors.ErrMsg, false)
	assert.Equal(t, code, dres.Code)

	myApp.EndBlock(abci.RequestEndBlock{})
	block2 := myApp.Commit().Data
	assert.NotEqual(t, block1, block2)
	assert.Equal(t, []int64{1, 2}, announced)

	qres := myApp.Query(abci.RequestQuery{Path: "/escrows", Data: id})
	require.Equal(t, uint32(0), qres.Code, qres.Log)
	assert.Equal(t, int64(2), qres.Height)
	var c escrow.Coordinator
	require.NoError(t, UnmarshalOneResult(qres.Value, &c))
	assert.Equal(t, []string{"alice", "bob"}, c.Owners)

	qres = myApp.Query(abci.RequestQuery{Path: "/terms?prefix", Data: id})
	require.Equal(t, uint32(0), qres.Code, qres.Log)
	models, err := ParseResults(qres.Key, qres.Value)
	require.NoError(t, err)
	assert.Len(t, models, 1)

	qres = myApp.Query(abci.RequestQuery{Path: "/unknown"})
	assert.NotEqual(t, uint32(0), qres.Code)

	qres = myApp.Query(abci.RequestQuery{Path: "/terms?range", Data: id})
	code, _ = errors.ABCIInfo(errors.ErrInput, false)
	assert.Equal(t, code, qres.Code)
}

func TestInitChainTwice(t *testing.T) {
	myApp, _ := newTestApp(t, nil)
	myApp.InitChain(abci.RequestInitChain{ChainId: "pact-test-net", AppStateBytes: []byte(`{}`)})
	assert.Panics(t, func() {
		myApp.InitChain(abci.RequestInitChain{ChainId: "pact-test-net", AppStateBytes: []byte(`{}`)})
	})
}

func TestInitChainWithoutAppState(t *testing.T) {
	myApp, _ := newTestApp(t, nil)
	assert.Panics(t, func() {
		myApp.InitChain(abci.RequestInitChain{ChainId: "pact-test-net"})
	})
}

func TestSplitPath(t *testing.T) {
	cases := map[string][2]string{
		"/escrows":        {"/escrows", ""},
		"/escrows?prefix": {"/escrows", "prefix"},
		"/terms?prefix?x": {"/terms", "prefix?x"},
		"":                {"", ""},
	}
	for input, want := range cases {
		path, mod := splitPath(input)
		assert.Equal(t, want[0], path, input)
		assert.Equal(t, want[1], mod, input)
	}
}
