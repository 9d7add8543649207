package app

import (
	"github.com/iov-one/pact"
)

// Announcer is notified with the committed state after every block. It
// runs outside of consensus: it must not modify the state and its failures
// never affect the application hash.
type Announcer interface {
	Announce(ctx pact.Context, committed pact.ReadOnlyKVStore)
}

// AnnouncerFunc adapts a function to the Announcer interface.
type AnnouncerFunc func(ctx pact.Context, committed pact.ReadOnlyKVStore)

func (fn AnnouncerFunc) Announce(ctx pact.Context, committed pact.ReadOnlyKVStore) {
	fn(ctx, committed)
}
