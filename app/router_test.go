package app

import (
	"context"
	"testing"

	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/pacttest"
	"github.com/iov-one/pact/pacttest/assert"
	"github.com/iov-one/pact/store"
)

func TestRouter(t *testing.T) {
	r := NewRouter()
	ctx := context.Background()
	db := store.MemStore()

	good := &pacttest.Handler{}
	r.Handle("escrow/sign", good)
	r.Handle("escrow/execute", &pacttest.Handler{DeliverErr: errors.ErrConsensus})

	// make sure invalid registrations panic
	assert.Panics(t, func() { r.Handle("escrow/sign", good) })
	assert.Panics(t, func() { r.Handle("l:7", good) })

	sign := &pacttest.Tx{Msg: &pacttest.Msg{RoutePath: "escrow/sign"}}
	_, err := r.Check(ctx, db, sign)
	assert.Nil(t, err)
	_, err = r.Deliver(ctx, db, sign)
	assert.Nil(t, err)
	assert.Equal(t, 1, good.CheckCallCount())
	assert.Equal(t, 1, good.DeliverCallCount())

	// the error of the handler is passed through
	_, err = r.Deliver(ctx, db, &pacttest.Tx{Msg: &pacttest.Msg{RoutePath: "escrow/execute"}})
	assert.IsErr(t, errors.ErrConsensus, err)

	// unknown path
	missing := &pacttest.Tx{Msg: &pacttest.Msg{RoutePath: "escrow/unknown"}}
	_, err = r.Deliver(ctx, db, missing)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = r.Check(ctx, db, missing)
	assert.IsErr(t, errors.ErrNotFound, err)

	// broken tx
	_, err = r.Deliver(ctx, db, &pacttest.Tx{Err: errors.ErrMsg})
	assert.IsErr(t, errors.ErrMsg, err)
}
