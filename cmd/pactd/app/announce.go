package app

import (
	"context"
	"time"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/app"
	"github.com/iov-one/pact/x/escrow"
)

// OutboxAnnouncer hands the releases of every committed block to a
// Releaser. Progress is kept in a node local cursor store, so a restarted
// node continues where it stopped and a release already accepted by the
// Releaser is not sent again.
type OutboxAnnouncer struct {
	outbox   *escrow.Outbox
	cursor   pact.CommitKVStore
	releaser escrow.Releaser
	timeout  time.Duration
}

var _ app.Announcer = (*OutboxAnnouncer)(nil)

// NewOutboxAnnouncer returns an announcer dispatching with the given
// releaser. The cursor store must be loaded already.
func NewOutboxAnnouncer(cursor pact.CommitKVStore, releaser escrow.Releaser, timeout time.Duration) *OutboxAnnouncer {
	return &OutboxAnnouncer{
		outbox:   escrow.NewOutbox(),
		cursor:   cursor,
		releaser: releaser,
		timeout:  timeout,
	}
}

// Announce dispatches all pending releases. Failures are logged, the
// remaining releases are retried after the next commit.
func (a *OutboxAnnouncer) Announce(ctx pact.Context, committed pact.ReadOnlyKVStore) {
	logger := pact.GetLogger(ctx)

	dctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cache := a.cursor.CacheWrap()
	n, err := a.outbox.Dispatch(dctx, committed, cache, a.releaser)
	if err != nil {
		logger.Error("Release dispatch interrupted", "delivered", n, "err", err)
	}
	if n == 0 {
		cache.Discard()
		return
	}
	// keep the progress made before a failure
	if werr := cache.Write(); werr != nil {
		logger.Error("Cannot write outbox cursor", "err", werr)
		return
	}
	if _, cerr := a.cursor.Commit(); cerr != nil {
		logger.Error("Cannot commit outbox cursor", "err", cerr)
		return
	}
	logger.Info("Releases dispatched", "count", n)
}
