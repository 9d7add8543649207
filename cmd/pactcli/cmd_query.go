package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/client"
	"github.com/iov-one/pact/x/escrow"
)

func cmdQuery(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = usage(fl, `
Execute a ABCI query and print JSON encoded result.`)
	var (
		tmAddrFl      = flTendermint(fl)
		pathFl        = fl.String("path", "", "Path to be queried. Must be one of the supported.")
		idFl          = flSeq(fl, "id", "", "An ID of an escrow, or of a release when querying /releases. For terms, deposits and signatures all entities of the escrow are listed.")
		prefixQueryFl = fl.Bool("prefix", false, "If true, use prefix queries instead of the exact match with provided data.")
	)
	fl.Parse(args)

	conf, ok := queries[*pathFl]
	if !ok {
		paths := make([]string, 0, len(queries))
		for p := range queries {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		return fmt.Errorf("available query paths:\n\t- %s", strings.Join(paths, "\n\t- "))
	}

	queryPath := *pathFl
	// escrows and releases are keyed by the id alone, other entities
	// by the escrow id followed by a name
	exact := *pathFl == "/escrows" || *pathFl == "/releases"
	if *prefixQueryFl || len(*idFl) == 0 || !exact {
		queryPath += "?" + pact.PrefixQueryMod
	}

	c := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	models, err := c.Query(queryPath, *idFl)
	if err != nil {
		return fmt.Errorf("failed to run query: %s", err)
	}
	return writeModels(output, models, conf)
}

type keyval struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// writeModels prints the models as a JSON list, with the keys stripped of
// the bucket prefix.
func writeModels(output io.Writer, models []pact.Model, newObj func() proto.Message) error {
	result := make([]keyval, 0, len(models))
	for i, m := range models {
		obj := newObj()
		if err := proto.Unmarshal(m.Value, obj); err != nil {
			return fmt.Errorf("failed to unmarshal model %d: %s", i, err)
		}
		result = append(result, keyval{Key: displayKey(m.Key), Value: obj})
	}
	pretty, err := json.MarshalIndent(result, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = output.Write(pretty)
	return err
}

// displayKey turns "<bucket>:<8 byte id>[<name>]" into "<id>[/<name>]".
func displayKey(key []byte) string {
	i := bytes.IndexByte(key, ':')
	if i < 0 || len(key) < i+9 {
		return hex.EncodeToString(key)
	}
	id, err := fromSequence(key[i+1 : i+9])
	if err != nil {
		return hex.EncodeToString(key)
	}
	if name := key[i+9:]; len(name) > 0 {
		return fmt.Sprintf("%d/%s", id, name)
	}
	return fmt.Sprint(id)
}

// queries contains a mapping of query path to the model the result is
// decoded into.
var queries = map[string]func() proto.Message{
	"/escrows":    func() proto.Message { return &escrow.Coordinator{} },
	"/terms":      func() proto.Message { return &escrow.Term{} },
	"/deposits":   func() proto.Message { return &escrow.Deposit{} },
	"/signatures": func() proto.Message { return &escrow.Signature{} },
	"/releases":   func() proto.Message { return &escrow.Release{} },
}
