package orm

import (
	"bytes"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
)

// ModelIterator iterates over models of a single bucket.
// CONTRACT: No writes may happen within a domain while an iterator exists over it.
type ModelIterator interface {
	// LoadNext moves the iterator to the next model and loads it into
	// dest. The returned key is stripped of the bucket prefix.
	// ErrIteratorDone is returned when there are no more models.
	LoadNext(dest Model) (key []byte, err error)

	// Release releases the Iterator.
	Release()
}

type modelIterator struct {
	iterator pact.Iterator
	// bucket prefix to strip from each key
	prefix []byte
}

func (i *modelIterator) LoadNext(dest Model) ([]byte, error) {
	key, value, err := i.iterator.Next()
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(key, i.prefix) {
		return nil, errors.Wrapf(errors.ErrDatabase, "key %q outside of bucket", key)
	}
	if err := load(value, dest); err != nil {
		return nil, err
	}
	return key[len(i.prefix):], nil
}

func (i *modelIterator) Release() {
	i.iterator.Release()
}

// consumeIterator will read all remaining data into an
// array and release the iterator
func consumeIterator(it pact.Iterator) ([]pact.Model, error) {
	defer it.Release()

	var res []pact.Model
	for {
		key, value, err := it.Next()
		switch {
		case err == nil:
			res = append(res, pact.Pair(key, value))
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}
