package pact

import (
	"fmt"
	"strings"
	"testing"

	"github.com/iov-one/pact/errors"
	"github.com/tendermint/tendermint/libs/common"
)

func TestDeliverOrError(t *testing.T) {
	res := &DeliverResult{
		Data: []byte{0, 0, 0, 1},
		Log:  "created",
		Tags: []common.KVPair{{Key: []byte("escrow"), Value: []byte("1")}},
	}
	abciRes := DeliverOrError(res, nil, false)
	if abciRes.Code != errors.SuccessABCICode || abciRes.Log != "created" || len(abciRes.Tags) != 1 {
		t.Fatalf("unexpected response: %#v", abciRes)
	}

	abciRes = DeliverOrError(nil, errors.Wrap(errors.ErrConsensus, "alice"), false)
	if abciRes.Code != errors.ErrConsensus.ABCICode() {
		t.Fatalf("unexpected code %d", abciRes.Code)
	}
	if want := "cannot deliver tx: alice: missing consensus"; abciRes.Log != want {
		t.Fatalf("want %q, got %q", want, abciRes.Log)
	}
}

func TestCheckOrError(t *testing.T) {
	abciRes := CheckOrError(&CheckResult{Log: "ok"}, nil, false)
	if abciRes.Code != errors.SuccessABCICode || abciRes.Log != "ok" {
		t.Fatalf("unexpected response: %#v", abciRes)
	}

	abciRes = CheckOrError(nil, fmt.Errorf("disk on fire"), false)
	if abciRes.Code != 1 {
		t.Fatalf("unexpected code %d", abciRes.Code)
	}
	if strings.Contains(abciRes.Log, "disk") {
		t.Fatalf("internal error details must be hidden: %q", abciRes.Log)
	}
}

func TestParseDeliverOrError(t *testing.T) {
	abciRes := DeliverOrError(nil, errors.Wrap(errors.ErrUnsatisfied, "term t2"), false)
	_, err := ParseDeliverOrError(abciRes)
	if !errors.ErrUnsatisfied.Is(err) {
		t.Fatalf("want unsatisfied error, got %v", err)
	}

	res, err := ParseDeliverOrError(DeliverOrError(&DeliverResult{Log: "Giving 4 golds to bob"}, nil, false))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if res.Log != "Giving 4 golds to bob" {
		t.Fatalf("unexpected log %q", res.Log)
	}
}
