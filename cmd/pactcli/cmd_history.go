package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/iov-one/pact/client"
)

func cmdHistory(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = usage(fl, `
List the committed transactions that touched an escrow, one per line, as
"<height> <tx hash> <result>".`)
	var (
		tmAddrFl = flTendermint(fl)
		escrowFl = flSeq(fl, "escrow", "", "An ID of an escrow.")
	)
	fl.Parse(args)
	if len(*escrowFl) == 0 {
		flagDie("escrow id is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	txs, err := c.EscrowHistory(ctx, *escrowFl)
	if err != nil {
		return fmt.Errorf("cannot search transactions: %s", err)
	}
	for _, tx := range txs {
		result := "ok"
		if tx.Err != nil {
			result = tx.Err.Error()
		} else if tx.Result.Log != "" {
			result = tx.Result.Log
		}
		fmt.Fprintf(output, "%d %X %s\n", tx.Height, []byte(tx.ID), result)
	}
	return nil
}
