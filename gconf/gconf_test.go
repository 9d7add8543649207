package gconf

import (
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/pacttest/assert"
	"github.com/iov-one/pact/store"
)

type limits struct {
	Name  string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Limit int64  `protobuf:"varint,2,opt,name=limit,proto3" json:"limit,omitempty"`
}

func (m *limits) Reset()         { *m = limits{} }
func (m *limits) String() string { return proto.CompactTextString(m) }
func (*limits) ProtoMessage()    {}

func (m *limits) Validate() error {
	if m.Limit <= 0 {
		return errors.Wrap(errors.ErrInput, "limit must be positive")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	cases := map[string]struct {
		Conf        *limits
		WantSaveErr *errors.Error
	}{
		"valid": {
			Conf: &limits{Name: "escrow", Limit: 12},
		},
		"invalid configuration cannot be saved": {
			Conf:        &limits{Name: "escrow", Limit: -1},
			WantSaveErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "mypkg", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			if tc.WantSaveErr != nil {
				err := Load(db, "mypkg", &limits{})
				assert.IsErr(t, errors.ErrNotFound, err)
				return
			}

			var got limits
			if err := Load(db, "mypkg", &got); err != nil {
				t.Fatalf("cannot load configuration: %s", err)
			}
			assert.Equal(t, tc.Conf, &got)
		})
	}
}

func TestInitConfig(t *testing.T) {
	const genesis = `
		{
			"conf": {
				"mypkg": {"name": "from genesis", "limit": 7},
				"broken": {"limit": 0}
			}
		}
	`
	var opts pact.Options
	if err := json.Unmarshal([]byte(genesis), &opts); err != nil {
		t.Fatalf("cannot unmarshal genesis: %s", err)
	}

	db := store.MemStore()
	assert.Nil(t, InitConfig(db, opts, "mypkg", &limits{}))

	var got limits
	assert.Nil(t, Load(db, "mypkg", &got))
	assert.Equal(t, limits{Name: "from genesis", Limit: 7}, got)

	err := InitConfig(db, opts, "missing", &limits{})
	assert.IsErr(t, errors.ErrNotFound, err)

	err = InitConfig(db, opts, "broken", &limits{})
	assert.IsErr(t, errors.ErrInput, err)
}
