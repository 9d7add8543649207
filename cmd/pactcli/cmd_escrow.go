package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/x/escrow"
)

// flCaller registers the flag of the party the transaction is sent on
// behalf of.
func flCaller(fl *flag.FlagSet) *string {
	return fl.String("caller", env("PACTCLI_CALLER", ""),
		"Party sending the transaction. You can use PACTCLI_CALLER environment variable to set it.")
}

func usage(fl *flag.FlagSet, text string) func() {
	return func() {
		fmt.Fprintln(flag.CommandLine.Output(), text)
		fl.PrintDefaults()
	}
}

func cmdCreate(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = usage(fl, `
Create a transaction for a new escrow coordinator owned by the given parties.`)
	var (
		callerFl = flCaller(fl)
		ownersFl = flParties(fl, "owners", "", "Comma separated list of owners. Can be repeated.")
	)
	fl.Parse(args)
	if len(*ownersFl) == 0 {
		flagDie("at least one owner is required")
	}
	return writeMsg(output, pact.Party(*callerFl), escrow.NewCreateMsg(*ownersFl...))
}

func cmdAddTerm(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = usage(fl, `
Create a transaction adding a term to an escrow. A term with the same name is
replaced.`)
	var (
		callerFl   = flCaller(fl)
		escrowFl   = flSeq(fl, "escrow", "", "An ID of an escrow.")
		nameFl     = fl.String("name", "", "Name of the term.")
		senderFl   = fl.String("sender", "", "Party depositing the asset.")
		receiverFl = fl.String("receiver", "", "Party receiving the asset on settlement.")
		assetFl    = flAsset(fl, "asset", "", "Required asset, for example \"4.5 gold\".")
	)
	fl.Parse(args)
	return writeMsg(output, pact.Party(*callerFl), &escrow.AddTermMsg{
		EscrowID: *escrowFl,
		Name:     *nameFl,
		Sender:   *senderFl,
		Receiver: *receiverFl,
		Asset:    assetFl,
	})
}

func cmdRemoveTerm(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = usage(fl, `
Create a transaction removing a term from an escrow.`)
	var (
		callerFl = flCaller(fl)
		escrowFl = flSeq(fl, "escrow", "", "An ID of an escrow.")
		nameFl   = fl.String("name", "", "Name of the term.")
	)
	fl.Parse(args)
	return writeMsg(output, pact.Party(*callerFl), &escrow.RemoveTermMsg{
		EscrowID: *escrowFl,
		Name:     *nameFl,
	})
}

func cmdSign(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = usage(fl, `
Create a transaction ratifying the terms of an escrow. Once signed, terms can
no longer be changed.`)
	var (
		callerFl = flCaller(fl)
		escrowFl = flSeq(fl, "escrow", "", "An ID of an escrow.")
	)
	fl.Parse(args)
	return writeMsg(output, pact.Party(*callerFl), &escrow.SignMsg{EscrowID: *escrowFl})
}

func cmdDeposit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = usage(fl, `
Create a transaction depositing the asset required by a term.`)
	var (
		callerFl = flCaller(fl)
		escrowFl = flSeq(fl, "escrow", "", "An ID of an escrow.")
		termFl   = fl.String("term", "", "Name of the term.")
		assetFl  = flAsset(fl, "asset", "", "Deposited asset, must match the term exactly.")
	)
	fl.Parse(args)
	return writeMsg(output, pact.Party(*callerFl), &escrow.DepositMsg{
		EscrowID: *escrowFl,
		Term:     *termFl,
		Asset:    assetFl,
	})
}

func cmdWithdraw(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = usage(fl, `
Create a transaction withdrawing the deposit of a term.`)
	var (
		callerFl = flCaller(fl)
		escrowFl = flSeq(fl, "escrow", "", "An ID of an escrow.")
		termFl   = fl.String("term", "", "Name of the term.")
	)
	fl.Parse(args)
	return writeMsg(output, pact.Party(*callerFl), &escrow.WithdrawMsg{
		EscrowID: *escrowFl,
		Term:     *termFl,
	})
}

func cmdExecute(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = usage(fl, `
Create a transaction settling an escrow. All owners must have signed and all
terms must be satisfied.`)
	var (
		callerFl = flCaller(fl)
		escrowFl = flSeq(fl, "escrow", "", "An ID of an escrow.")
	)
	fl.Parse(args)
	return writeMsg(output, pact.Party(*callerFl), &escrow.ExecuteMsg{EscrowID: *escrowFl})
}

func cmdReset(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = usage(fl, `
Create a transaction returning a settled escrow to drafting, so that it can be
reused.`)
	var (
		callerFl = flCaller(fl)
		escrowFl = flSeq(fl, "escrow", "", "An ID of an escrow.")
	)
	fl.Parse(args)
	return writeMsg(output, pact.Party(*callerFl), &escrow.ResetMsg{EscrowID: *escrowFl})
}
