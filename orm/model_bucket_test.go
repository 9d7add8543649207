package orm

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/pacttest/assert"
	"github.com/iov-one/pact/store"
)

func TestModelBucket(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts")

	if err := b.Put(db, []byte("c1"), &Counter{Count: 1}); err != nil {
		t.Fatalf("cannot save counter instance: %s", err)
	}

	var c1 Counter
	if err := b.One(db, []byte("c1"), &c1); err != nil {
		t.Fatalf("cannot get c1 counter: %s", err)
	}
	if c1.Count != 1 {
		t.Fatalf("unexpected counter state: %d", c1.Count)
	}
	ok, err := b.Has(db, []byte("c1"))
	assert.Nil(t, err)
	assert.Equal(t, true, ok)

	// stored under the bucket prefix
	raw, err := db.Get([]byte("cnts:c1"))
	assert.Nil(t, err)
	if raw == nil {
		t.Fatal("model not stored under the bucket prefix")
	}

	if err := b.Delete(db, []byte("c1")); err != nil {
		t.Fatalf("cannot delete c1 counter: %s", err)
	}
	if err := b.Delete(db, []byte("unknown")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error when deleting unexisting instance: %s", err)
	}
	if err := b.One(db, []byte("c1"), &c1); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error for an unknown model get: %s", err)
	}
}

func TestModelBucketPutValidates(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts")

	err := b.Put(db, []byte("c1"), &Counter{Count: -4})
	assert.IsErr(t, errors.ErrInput, err)
	err = b.Put(db, nil, &Counter{Count: 4})
	assert.IsErr(t, errors.ErrEmpty, err)

	ok, err := b.Has(db, []byte("c1"))
	assert.Nil(t, err)
	assert.Equal(t, false, ok)
}

func TestModelBucketCorruptedData(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts")

	// a varint field with the wire type of a fixed64
	assert.Nil(t, db.Set([]byte("cnts:bad"), []byte{0x09, 0x01}))
	var c Counter
	err := b.One(db, []byte("bad"), &c)
	assert.IsErr(t, errors.ErrModel, err)
}

func TestBucketNames(t *testing.T) {
	cases := map[string]bool{
		"cnts":                   true,
		"escrow_terms":           true,
		"ab":                     false,
		"Upper":                  false,
		"with:colon":             false,
		"toolongbucketnameforus": false,
	}
	for name, valid := range cases {
		t.Run(name, func(t *testing.T) {
			if valid {
				NewModelBucket(name)
				return
			}
			assert.Panics(t, func() { NewModelBucket(name) })
		})
	}
}

func TestModelBucketPrefixScan(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts")
	// another bucket sharing a textual prefix must not leak into the scan
	other := NewModelBucket("cntsx")

	for key, count := range map[string]int64{
		"a1": 1, "a2": 2, "a3": 3, "b1": 11,
	} {
		assert.Nil(t, b.Put(db, []byte(key), &Counter{Count: count}))
	}
	assert.Nil(t, other.Put(db, []byte("a9"), &Counter{Count: 99}))

	cases := map[string]struct {
		prefix   string
		reverse  bool
		wantKeys []string
		wantVals []int64
	}{
		"all": {
			prefix:   "",
			wantKeys: []string{"a1", "a2", "a3", "b1"},
			wantVals: []int64{1, 2, 3, 11},
		},
		"prefix": {
			prefix:   "a",
			wantKeys: []string{"a1", "a2", "a3"},
			wantVals: []int64{1, 2, 3},
		},
		"reverse": {
			prefix:   "a",
			reverse:  true,
			wantKeys: []string{"a3", "a2", "a1"},
			wantVals: []int64{3, 2, 1},
		},
		"none": {
			prefix: "z",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			it, err := b.PrefixScan(db, []byte(tc.prefix), tc.reverse)
			assert.Nil(t, err)
			defer it.Release()

			var (
				keys []string
				vals []int64
			)
			for {
				var c Counter
				key, err := it.LoadNext(&c)
				if errors.ErrIteratorDone.Is(err) {
					break
				}
				assert.Nil(t, err)
				keys = append(keys, string(key))
				vals = append(vals, c.Count)
			}
			assert.Equal(t, tc.wantKeys, keys)
			assert.Equal(t, tc.wantVals, vals)
		})
	}
}

func TestModelBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts")
	assert.Nil(t, b.Put(db, []byte("a1"), &Counter{Count: 1}))
	assert.Nil(t, b.Put(db, []byte("a2"), &Counter{Count: 2}))

	qr := pact.NewQueryRouter()
	b.Register("counters", qr)
	h := qr.Handler("/counters")
	if h == nil {
		t.Fatal("query handler not registered")
	}

	res, err := h.Query(db, pact.KeyQueryMod, []byte("a2"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, []byte("cnts:a2"), res[0].Key)
	var c Counter
	assert.Nil(t, proto.Unmarshal(res[0].Value, &c))
	assert.Equal(t, int64(2), c.Count)

	res, err = h.Query(db, pact.KeyQueryMod, []byte("missing"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res))

	res, err = h.Query(db, pact.PrefixQueryMod, []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))

	_, err = h.Query(db, "range", nil)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestModelBucketScanFrom(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts")
	for i := int64(1); i <= 4; i++ {
		assert.Nil(t, b.Put(db, EncodeSequence(i), &Counter{Count: i}))
	}
	// a neighbour bucket sorting right after must not leak in
	other := NewModelBucket("cntsx")
	assert.Nil(t, other.Put(db, EncodeSequence(1), &Counter{Count: 100}))

	it, err := b.ScanFrom(db, EncodeSequence(3))
	assert.Nil(t, err)
	defer it.Release()

	var got []int64
	for {
		var c Counter
		key, err := it.LoadNext(&c)
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		assert.Nil(t, err)
		assert.Equal(t, c.Count, DecodeSequence(key))
		got = append(got, c.Count)
	}
	assert.Equal(t, []int64{3, 4}, got)
}
