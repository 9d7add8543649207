package pact

import (
	"regexp"

	"github.com/iov-one/pact/errors"
)

const (
	minPartyLength = 2
	maxPartyLength = 64
)

// isParty matches account names made of lowercase alphanumeric chunks
// separated by a single '.', '_' or '-'.
var isParty = regexp.MustCompile(`^(([a-z\d]+[\-_])*[a-z\d]+\.)*([a-z\d]+[\-_])*[a-z\d]+$`).MatchString

// Party identifies a participant of an escrow: an owner, a sender or a
// receiver. The identity is asserted by the environment that submits the
// call and is never verified here.
type Party string

// Validate returns an error if the party is not a well formed account
// name.
func (p Party) Validate() error {
	if n := len(p); n < minPartyLength || n > maxPartyLength {
		return errors.Wrapf(errors.ErrInput, "party %q must be %d to %d characters", string(p), minPartyLength, maxPartyLength)
	}
	if !isParty(string(p)) {
		return errors.Wrapf(errors.ErrInput, "party %q", string(p))
	}
	return nil
}

// Equals checks if two parties are the same.
func (p Party) Equals(o Party) bool {
	return p == o
}

func (p Party) String() string {
	return string(p)
}

// ParseParty returns a validated party.
func ParseParty(s string) (Party, error) {
	p := Party(s)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}
