package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/asset"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/orm"
)

// flSeq returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. The
// value is given in decimal form and stored as a sequence id.
// If given value cannot be deserialized to required type, process is
// terminated.
func flSeq(fl *flag.FlagSet, name, defaultVal, usage string) *[]byte {
	var b []byte
	if defaultVal != "" {
		var err error
		b, err = unpackSequence(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q sequence flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fs := flagseq{val: &b}
	fl.Var(fs, name, usage)
	return &b
}

type flagseq struct {
	val *[]byte
}

func (s flagseq) String() string {
	if s.val == nil || len(*s.val) == 0 {
		return ""
	}
	return strconv.FormatInt(orm.DecodeSequence(*s.val), 10)
}

func (s flagseq) Set(raw string) error {
	b, err := unpackSequence(raw)
	if err != nil {
		return err
	}
	*s.val = b
	return nil
}

func unpackSequence(raw string) ([]byte, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "sequence %q: %s", raw, err)
	}
	if n < 1 {
		return nil, errors.Wrapf(errors.ErrInput, "sequence %d must be positive", n)
	}
	return orm.EncodeSequence(n), nil
}

// flAsset returns an asset flag, given in the "4.5 gold" form.
func flAsset(fl *flag.FlagSet, name, defaultVal, usage string) *asset.Asset {
	var a asset.Asset
	if defaultVal != "" {
		if err := a.Set(defaultVal); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q asset flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&a, name, usage)
	return &a
}

// flParties returns a comma separated list of parties.
func flParties(fl *flag.FlagSet, name, defaultVal, usage string) *[]pact.Party {
	var ps []pact.Party
	if defaultVal != "" {
		var err error
		ps, err = parseParties(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q parties flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(flagparties{val: &ps}, name, usage)
	return &ps
}

type flagparties struct {
	val *[]pact.Party
}

func (f flagparties) String() string {
	if f.val == nil {
		return ""
	}
	names := make([]string, len(*f.val))
	for i, p := range *f.val {
		names[i] = p.String()
	}
	return strings.Join(names, ",")
}

func (f flagparties) Set(raw string) error {
	ps, err := parseParties(raw)
	if err != nil {
		return err
	}
	*f.val = append(*f.val, ps...)
	return nil
}

func parseParties(raw string) ([]pact.Party, error) {
	var ps []pact.Party
	for _, s := range strings.Split(raw, ",") {
		p, err := pact.ParseParty(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, nil
}

// flagDie terminates the program when a flag requirement is not met.
func flagDie(description string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, description, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(2)
}
