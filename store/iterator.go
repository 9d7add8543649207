package store

import (
	"bytes"

	"github.com/iov-one/pact/errors"
)

// cacheIterator merges the writes cached in a btree with the content of
// the parent store. Cached entries shadow the parent entries with the same
// key, deletion markers hide them.
//
// Cached entries are copied when the iterator is created, so the iterator
// does not hold any lock or goroutine and can be dropped at any time.
type cacheIterator struct {
	local   []entry
	parent  Iterator
	reverse bool

	// lookahead of the parent iterator
	pkey, pvalue []byte
	pvalid       bool
	pdone        bool
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(local []entry, parent Iterator, reverse bool) *cacheIterator {
	return &cacheIterator{
		local:   local,
		parent:  parent,
		reverse: reverse,
	}
}

func (i *cacheIterator) Next() (key, value []byte, err error) {
	for {
		if err := i.fill(); err != nil {
			return nil, nil, err
		}

		switch {
		case len(i.local) == 0 && !i.pvalid:
			return nil, nil, errors.Wrap(errors.ErrIteratorDone, "cache iterator")
		case len(i.local) == 0:
			return i.takeParent()
		case !i.pvalid:
			e := i.takeLocal()
			if e.deleted {
				continue
			}
			return e.key, e.value, nil
		}

		cmp := bytes.Compare(i.local[0].key, i.pkey)
		if i.reverse {
			cmp = -cmp
		}
		if cmp > 0 {
			return i.takeParent()
		}
		if cmp == 0 {
			// The cached value shadows the parent one.
			i.pvalid = false
		}
		e := i.takeLocal()
		if e.deleted {
			continue
		}
		return e.key, e.value, nil
	}
}

// fill loads the next parent element if the lookahead is empty.
func (i *cacheIterator) fill() error {
	if i.pvalid || i.pdone {
		return nil
	}
	k, v, err := i.parent.Next()
	switch {
	case err == nil:
		i.pkey, i.pvalue, i.pvalid = k, v, true
	case errors.ErrIteratorDone.Is(err):
		i.pdone = true
	default:
		return err
	}
	return nil
}

func (i *cacheIterator) takeParent() ([]byte, []byte, error) {
	i.pvalid = false
	return i.pkey, i.pvalue, nil
}

func (i *cacheIterator) takeLocal() entry {
	e := i.local[0]
	i.local = i.local[1:]
	return e
}

func (i *cacheIterator) Release() {
	i.local = nil
	i.pvalid = false
	i.pdone = true
	i.parent.Release()
}
