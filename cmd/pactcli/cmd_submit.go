package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/iov-one/pact/client"
	"github.com/iov-one/pact/x/escrow"
)

const defaultTmAddr = "http://localhost:26657"

func flTendermint(fl *flag.FlagSet) *string {
	return fl.String("tm", env("PACTCLI_TM_ADDR", defaultTmAddr),
		"Tendermint node address. You can use PACTCLI_TM_ADDR environment variable to set it.")
}

func cmdSubmitTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = usage(fl, `
Read binary serialized transaction from standard input and submit it. The
command returns once the transaction is part of a block.

For certain transactions response is written out, for example the id of a
created escrow, or the release instructions of a settlement.`)
	var (
		tmAddrFl  = flTendermint(fl)
		timeoutFl = fl.Duration("timeout", 30*time.Second, "Maximum time to wait for the transaction to be included in a block.")
	)
	fl.Parse(args)

	raw, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction from input: %s", err)
	}
	_, msg, err := codec.Open(raw)
	if err != nil {
		return fmt.Errorf("cannot deserialize transaction: %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFl)
	defer cancel()

	c := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	res, err := c.CommitTx(ctx, raw)
	if err != nil {
		return fmt.Errorf("cannot broadcast transaction: %s", err)
	}
	if res.Err != nil {
		return fmt.Errorf("transaction failed in block %d: %s", res.Height, res.Err)
	}

	format, ok := formatters[msg.Path()]
	if !ok {
		// If no formatter is registered, we do not print the result.
		return nil
	}
	pretty, err := format(res.Result.Data, res.Result.Log)
	if err != nil {
		return fmt.Errorf("cannot format result data %x: %s", res.Result.Data, err)
	}
	_, err = fmt.Fprintln(output, pretty)
	return err
}

// formatters contains a mapping of a message path to response parser. Response
// parse function accepts a raw bytes of serialized response and must return a
// human representation of that data.
//
// Do not register a message if you want response returned after its submission
// to be ignored (not printed to the user).
var formatters = map[string]func(data []byte, log string) (string, error){
	escrow.CreateMsg{}.Path():  fmtSequence,
	escrow.ExecuteMsg{}.Path(): fmtLog,
}

func fmtSequence(raw []byte, _ string) (string, error) {
	n, err := fromSequence(raw)
	if err != nil {
		return "", fmt.Errorf("cannot parse sequence: %s", err)
	}
	return fmt.Sprint(n), nil
}

func fmtLog(_ []byte, log string) (string, error) {
	return log, nil
}
