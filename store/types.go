//nolint
package store

import "github.com/iov-one/pact"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = pact.ReadOnlyKVStore
type SetDeleter = pact.SetDeleter
type KVStore = pact.KVStore
type Batch = pact.Batch
type Iterator = pact.Iterator
type CacheableKVStore = pact.CacheableKVStore
type KVCacheWrap = pact.KVCacheWrap
type CommitKVStore = pact.CommitKVStore
type CommitID = pact.CommitID
type Model = pact.Model

// Pair constructs a model from a key-value pair
var Pair = pact.Pair
