/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called buckets.
  - Each bucket contains only one type of model.
  - Models are protobuf messages that can validate themselves.
  - Keys are namespaced by the bucket name, so that prefix scans
    never leave the bucket.
  - Sequences generate monotonically increasing identifiers.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	proto.Message
	Validate() error
}

// ModelBucket stores models of a single type under a common key prefix.
type ModelBucket interface {
	pact.QueryHandler

	// One query the database for a single model instance. Lookup is done
	// by the primary key. Result is loaded into given destination model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	One(db pact.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns true if an entity with given key exists.
	Has(db pact.ReadOnlyKVStore, key []byte) (bool, error)

	// Put saves given model in the database. The model is validated
	// first.
	Put(db pact.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db pact.KVStore, key []byte) error

	// PrefixScan returns an iterator over all models which key starts
	// with given prefix, in key order.
	PrefixScan(db pact.ReadOnlyKVStore, prefix []byte, reverse bool) (ModelIterator, error)

	// ScanFrom returns an iterator over all models which key is greater
	// than or equal to start, in key order.
	ScanFrom(db pact.ReadOnlyKVStore, start []byte) (ModelIterator, error)

	// Register registers this bucket for queries under "/<name>".
	Register(name string, r pact.QueryRouter)
}

// NewModelBucket returns a ModelBucket instance storing models under the
// "<name>:" prefix.
func NewModelBucket(name string) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	return &modelBucket{
		name:   name,
		prefix: append([]byte(name), ':'),
	}
}

type modelBucket struct {
	name   string
	prefix []byte
}

var _ ModelBucket = (*modelBucket)(nil)

// dbKey is the full key we store in the db, including the prefix. A new
// slice is allocated so that consecutive calls never share memory.
func (mb *modelBucket) dbKey(key []byte) []byte {
	out := make([]byte, len(mb.prefix)+len(key))
	n := copy(out, mb.prefix)
	copy(out[n:], key)
	return out
}

func (mb *modelBucket) One(db pact.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrapf(errors.ErrDatabase, "get %s: %s", mb.name, err)
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %q", mb.name, key)
	}
	return load(raw, dest)
}

func (mb *modelBucket) Has(db pact.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return false, errors.Wrapf(errors.ErrDatabase, "has %s: %s", mb.name, err)
	}
	return ok, nil
}

func (mb *modelBucket) Put(db pact.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrapf(errors.ErrEmpty, "%s key", mb.name)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrapf(err, "invalid %s", mb.name)
	}
	raw, err := proto.Marshal(m)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot marshal %T: %s", m, err)
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "cannot store %s: %s", mb.name, err)
	}
	return nil
}

func (mb *modelBucket) Delete(db pact.KVStore, key []byte) error {
	k := mb.dbKey(key)
	ok, err := db.Has(k)
	if err != nil {
		return errors.Wrapf(errors.ErrDatabase, "has %s: %s", mb.name, err)
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %q", mb.name, key)
	}
	if err := db.Delete(k); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "cannot delete %s: %s", mb.name, err)
	}
	return nil
}

func (mb *modelBucket) PrefixScan(db pact.ReadOnlyKVStore, prefix []byte, reverse bool) (ModelIterator, error) {
	start, end := prefixRange(mb.dbKey(prefix))
	var (
		it  pact.Iterator
		err error
	)
	if reverse {
		it, err = db.ReverseIterator(start, end)
	} else {
		it, err = db.Iterator(start, end)
	}
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "scan %s: %s", mb.name, err)
	}
	return &modelIterator{iterator: it, prefix: mb.prefix}, nil
}

func (mb *modelBucket) ScanFrom(db pact.ReadOnlyKVStore, start []byte) (ModelIterator, error) {
	_, end := prefixRange(mb.prefix)
	it, err := db.Iterator(mb.dbKey(start), end)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "scan %s: %s", mb.name, err)
	}
	return &modelIterator{iterator: it, prefix: mb.prefix}, nil
}

// Register registers this bucket for queries. The query path is
// "/<name>", name defaults to the bucket name.
func (mb *modelBucket) Register(name string, r pact.QueryRouter) {
	if name == "" {
		name = mb.name
	}
	r.Register("/"+name, mb)
}

// Query handles queries from the QueryRouter. The key query returns at
// most one model, the prefix query all models in the prefix.
func (mb *modelBucket) Query(db pact.ReadOnlyKVStore, mod string, data []byte) ([]pact.Model, error) {
	switch mod {
	case pact.KeyQueryMod:
		key := mb.dbKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []pact.Model{pact.Pair(key, value)}, nil
	case pact.PrefixQueryMod:
		start, end := prefixRange(mb.dbKey(data))
		it, err := db.Iterator(start, end)
		if err != nil {
			return nil, err
		}
		return consumeIterator(it)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
}

func load(raw []byte, dest Model) error {
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %T: %s", dest, err)
	}
	return nil
}
