package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pact/app"
	"github.com/iov-one/pact/pacttest/assert"
	"github.com/iov-one/pact/x/escrow"
)

func queryResult(t testing.TB, keys [][]byte, values []proto.Message) string {
	t.Helper()
	vals := make([][]byte, len(values))
	for i, v := range values {
		raw, err := proto.Marshal(v)
		assert.Nil(t, err)
		vals[i] = raw
	}
	k, err := proto.Marshal(&app.ResultSet{Results: keys})
	assert.Nil(t, err)
	v, err := proto.Marshal(&app.ResultSet{Results: vals})
	assert.Nil(t, err)
	return fmt.Sprintf(`{"response": {"key": %q, "value": %q}}`,
		base64.StdEncoding.EncodeToString(k),
		base64.StdEncoding.EncodeToString(v))
}

func TestQueryEscrow(t *testing.T) {
	key := append([]byte("escrow:"), 0, 0, 0, 0, 0, 0, 0, 3)
	mock, srv := newTmMock(t, map[string]string{
		"abci_query": queryResult(t, [][]byte{key}, []proto.Message{
			&escrow.Coordinator{Owners: []string{"alice", "bob"}, Settlements: 1},
		}),
	})
	defer srv.Close()

	var output bytes.Buffer
	err := cmdQuery(nil, &output, []string{"-tm", srv.URL, "-path", "/escrows", "-id", "3"})
	assert.Nil(t, err)

	var got []struct {
		Key   string `json:"key"`
		Value struct {
			Owners      []string `json:"owners"`
			Settlements int64    `json:"settlements"`
		} `json:"value"`
	}
	if err := json.Unmarshal(output.Bytes(), &got); err != nil {
		t.Fatalf("cannot decode output %q: %s", output.String(), err)
	}
	assert.Equal(t, 1, len(got))
	assert.Equal(t, "3", got[0].Key)
	assert.Equal(t, []string{"alice", "bob"}, got[0].Value.Owners)
	assert.Equal(t, int64(1), got[0].Value.Settlements)

	params, ok := mock.called("abci_query")
	if !ok {
		t.Fatal("query not sent")
	}
	var p struct {
		Path string `json:"path"`
	}
	assert.Nil(t, json.Unmarshal(params, &p))
	assert.Equal(t, "/escrows", p.Path)
}

func TestQueryTermsUsesPrefix(t *testing.T) {
	id := []byte{0, 0, 0, 0, 0, 0, 0, 3}
	mock, srv := newTmMock(t, map[string]string{
		"abci_query": queryResult(t,
			[][]byte{
				append(append([]byte("escrow_term:"), id...), "t1"...),
				append(append([]byte("escrow_term:"), id...), "t2"...),
			},
			[]proto.Message{&escrow.Term{Sender: "alice"}, &escrow.Term{Sender: "bob"}},
		),
	})
	defer srv.Close()

	var output bytes.Buffer
	err := cmdQuery(nil, &output, []string{"-tm", srv.URL, "-path", "/terms", "-id", "3"})
	assert.Nil(t, err)
	assert.Equal(t, true, strings.Contains(output.String(), `"3/t1"`))
	assert.Equal(t, true, strings.Contains(output.String(), `"3/t2"`))

	params, _ := mock.called("abci_query")
	var p struct {
		Path string `json:"path"`
	}
	assert.Nil(t, json.Unmarshal(params, &p))
	assert.Equal(t, "/terms?prefix", p.Path)
}

func TestQueryUnknownPath(t *testing.T) {
	var output bytes.Buffer
	err := cmdQuery(nil, &output, []string{"-path", "/nothing"})
	if err == nil {
		t.Fatal("want an error")
	}
	assert.Equal(t, true, strings.Contains(err.Error(), "/releases"))
}
