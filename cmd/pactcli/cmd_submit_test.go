package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/iov-one/pact/pacttest/assert"
)

func TestSubmitCreate(t *testing.T) {
	mock, srv := newTmMock(t, map[string]string{
		"broadcast_tx_commit": `{
			"check_tx": {},
			"deliver_tx": {"data": "AAAAAAAAAAc="},
			"hash": "0A0B",
			"height": "5"
		}`,
	})
	defer srv.Close()

	var tx bytes.Buffer
	assert.Nil(t, cmdCreate(nil, &tx, []string{"-caller", "alice", "-owners", "alice,bob"}))
	raw := append([]byte(nil), tx.Bytes()[txHeaderSize:]...)

	var output bytes.Buffer
	assert.Nil(t, cmdSubmitTransaction(&tx, &output, []string{"-tm", srv.URL}))
	assert.Equal(t, "7\n", output.String())

	params, ok := mock.called("broadcast_tx_commit")
	if !ok {
		t.Fatal("transaction was not broadcast")
	}
	var p struct {
		Tx string `json:"tx"`
	}
	assert.Nil(t, json.Unmarshal(params, &p))
	assert.Equal(t, base64.StdEncoding.EncodeToString(raw), p.Tx)
}

func TestSubmitExecutePrintsInstructions(t *testing.T) {
	_, srv := newTmMock(t, map[string]string{
		"broadcast_tx_commit": `{
			"check_tx": {},
			"deliver_tx": {"log": "Giving 4 golds to bob"},
			"hash": "0A0C",
			"height": "6"
		}`,
	})
	defer srv.Close()

	var tx bytes.Buffer
	assert.Nil(t, cmdExecute(nil, &tx, []string{"-caller", "carol", "-escrow", "1"}))

	var output bytes.Buffer
	assert.Nil(t, cmdSubmitTransaction(&tx, &output, []string{"-tm", srv.URL}))
	assert.Equal(t, "Giving 4 golds to bob\n", output.String())
}

func TestSubmitDeliverFailure(t *testing.T) {
	_, srv := newTmMock(t, map[string]string{
		"broadcast_tx_commit": `{
			"check_tx": {},
			"deliver_tx": {"code": 5, "log": "escrow is settled"},
			"hash": "0A0D",
			"height": "7"
		}`,
	})
	defer srv.Close()

	var tx bytes.Buffer
	assert.Nil(t, cmdSign(nil, &tx, []string{"-caller", "alice", "-escrow", "1"}))

	var output bytes.Buffer
	if err := cmdSubmitTransaction(&tx, &output, []string{"-tm", srv.URL}); err == nil {
		t.Fatal("want a failed delivery to be reported")
	}
	assert.Equal(t, 0, output.Len())
}
