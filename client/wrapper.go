package client

import (
	"context"
	"time"

	"github.com/iov-one/pact/errors"
)

// WatchTx will block until this transaction makes it into a block
// It will return immediately if the id was included in a block prior to the query, to avoid timing issues
// You can use context.Context to pass in a timeout
func (c *Client) WatchTx(ctx context.Context, id TransactionID) (*CommitResult, error) {
	subctx, cancel := context.WithCancel(ctx)
	defer cancel()

	txs := make(chan CommitResult, 1)
	if err := c.SubscribeTx(subctx, QueryTxByID(id), txs); err != nil {
		return nil, err
	}

	// a not found error only means it is not in a block yet
	if found, err := c.GetTxByID(ctx, id); err == nil && found != nil {
		return found, nil
	}

	select {
	case res, ok := <-txs:
		if !ok {
			return nil, errors.Wrap(errors.ErrNetwork, "unsubscribed before result")
		}
		return &res, nil
	case <-ctx.Done():
		return nil, errors.Wrap(errors.ErrNetwork, ctx.Err().Error())
	}
}

// EscrowHistory returns every committed transaction that touched the
// coordinator with the given id.
func (c *Client) EscrowHistory(ctx context.Context, id []byte) ([]*CommitResult, error) {
	return c.SearchTx(ctx, QueryForEscrow(id))
}

// WaitForNextBlock will return the next block header to arrive (as subscription)
func (c *Client) WaitForNextBlock(ctx context.Context) (*Header, error) {
	// ensure we close subscription at function return
	cctx, cancel := context.WithCancel(ctx)
	defer cancel()

	headers := make(chan Header, 1)
	if err := c.SubscribeHeaders(cctx, headers); err != nil {
		return nil, err
	}

	h, ok := <-headers
	if !ok {
		return nil, errors.Wrap(errors.ErrNetwork, "subscription closed without returning any headers")
	}
	// A short delay so all queries on that block work as expected
	c.waitForTxIndex()
	return &h, nil
}

// WaitForHeight subscribes to headers and returns as soon as a header arrives
// equal to or greater than the given height. If the requested height is in the past,
// it will still wait for the next block to arrive
func (c *Client) WaitForHeight(ctx context.Context, height int64) (*Header, error) {
	cctx, cancel := context.WithCancel(ctx)
	defer cancel()

	headers := make(chan Header, 2)
	if err := c.SubscribeHeaders(cctx, headers); err != nil {
		return nil, err
	}

	for h := range headers {
		if h.Height >= height {
			c.waitForTxIndex()
			return &h, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrNetwork, "subscription closed before height %d", height)
}

// waitForTxIndex waits until all tx in last blocked are properly indexed for the queries
func (c *Client) waitForTxIndex() {
	time.Sleep(100 * time.Millisecond)
}
