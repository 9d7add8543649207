package escrow

import (
	"context"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/orm"
)

// Releaser hands a release instruction to the service that performs the
// actual transfer.
type Releaser interface {
	Release(ctx context.Context, r *Release) error
}

// ReleaserFunc adapts a function to the Releaser interface.
type ReleaserFunc func(ctx context.Context, r *Release) error

func (fn ReleaserFunc) Release(ctx context.Context, r *Release) error {
	return fn(ctx, r)
}

// cursorKey holds the id of the last delivered release.
var cursorKey = []byte("_outbox:cursor")

// Outbox delivers releases written by Execute. Releases are part of the
// shared state, while the delivery cursor lives in a node local store, so
// that a failing Releaser never influences the shared state.
//
// Delivery is at least once: a release is marked delivered only after the
// Releaser accepted it.
type Outbox struct {
	releases orm.ModelBucket
}

// NewOutbox returns an outbox reading from the default release bucket.
func NewOutbox() *Outbox {
	return &Outbox{releases: NewReleaseBucket()}
}

// Delivered returns the id of the last delivered release, or nil if nothing
// was delivered yet.
func (o *Outbox) Delivered(cursor pact.ReadOnlyKVStore) ([]byte, error) {
	raw, err := cursor.Get(cursorKey)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "outbox cursor: %s", err)
	}
	return raw, nil
}

// Pending returns all releases that were not delivered yet, in the order
// they were written.
func (o *Outbox) Pending(db, cursor pact.ReadOnlyKVStore) ([]*Release, error) {
	last, err := o.Delivered(cursor)
	if err != nil {
		return nil, err
	}
	// release ids come from a sequence, so everything after the cursor
	// starts at the next sequence value
	it, err := o.releases.ScanFrom(db, orm.EncodeSequence(orm.DecodeSequence(last)+1))
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res []*Release
	for {
		var r Release
		_, err := it.LoadNext(&r)
		switch {
		case err == nil:
			res = append(res, &r)
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}

// Dispatch hands every pending release to the releaser, in order. It stops
// at the first failure, the failed release and everything after it stay
// pending. The number of delivered releases is returned.
func (o *Outbox) Dispatch(ctx context.Context, db pact.ReadOnlyKVStore, cursor pact.KVStore, releaser Releaser) (int, error) {
	pending, err := o.Pending(db, cursor)
	if err != nil {
		return 0, err
	}
	for i, r := range pending {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := releaser.Release(ctx, r); err != nil {
			return i, errors.Wrapf(err, "release %d", orm.DecodeSequence(r.ID))
		}
		if err := cursor.Set(cursorKey, r.ID); err != nil {
			return i, errors.Wrapf(errors.ErrDatabase, "outbox cursor: %s", err)
		}
	}
	return len(pending), nil
}
