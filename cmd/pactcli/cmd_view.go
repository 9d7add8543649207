package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/pact/errors"
)

// txView is the human readable form of a transaction envelope.
type txView struct {
	Caller string      `json:"caller"`
	Path   string      `json:"path"`
	Msg    interface{} `json:"msg"`
}

func cmdTransactionView(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = usage(fl, `
Decode and display transaction summary. This command is helpful when receiving
a binary representation of a transaction. Before submitting you should check
what kind of operation you are authorizing.`)
	fl.Parse(args)

	raw, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction: %s", err)
	}
	env, msg, err := codec.Open(raw)
	if err != nil {
		return errors.Wrap(err, "cannot deserialize transaction")
	}

	pretty, err := json.MarshalIndent(txView{
		Caller: env.Caller,
		Path:   env.Path,
		Msg:    msg,
	}, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = output.Write(pretty)
	return err
}
