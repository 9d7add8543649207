package pact

import (
	"strings"
	"testing"

	"github.com/iov-one/pact/errors"
)

func TestPartyValidate(t *testing.T) {
	cases := map[string]struct {
		party   Party
		wantErr *errors.Error
	}{
		"simple name":          {party: "alice", wantErr: nil},
		"sub account":          {party: "alice.pact", wantErr: nil},
		"separators":           {party: "bob_1-x.near", wantErr: nil},
		"digits only":          {party: "42", wantErr: nil},
		"too short":            {party: "a", wantErr: errors.ErrInput},
		"empty":                {party: "", wantErr: errors.ErrInput},
		"too long":             {party: Party(strings.Repeat("a", 65)), wantErr: errors.ErrInput},
		"max length":           {party: Party(strings.Repeat("a", 64)), wantErr: nil},
		"uppercase":            {party: "Alice", wantErr: errors.ErrInput},
		"double separator":     {party: "al..ice", wantErr: errors.ErrInput},
		"leading separator":    {party: "-alice", wantErr: errors.ErrInput},
		"trailing separator":   {party: "alice_", wantErr: errors.ErrInput},
		"forbidden characters": {party: "al ice", wantErr: errors.ErrInput},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.party.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("want %v, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestParseParty(t *testing.T) {
	p, err := ParseParty("carol.near")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !p.Equals("carol.near") {
		t.Fatalf("unexpected party: %s", p)
	}
	if _, err := ParseParty("Carol"); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %v", err)
	}
}
