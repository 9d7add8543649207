package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/pact/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const appStateKey = "app_state"

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// InitCmd will add the app_state to the genesis file created by
// `tendermint init` and write a default node configuration, unless one
// exists already.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	genFile := filepath.Join(home, "config", "genesis.json")
	options, err := gen(args)
	if err != nil {
		return err
	}
	if err := addGenesisOptions(genFile, options); err != nil {
		return err
	}
	logger.Info("App state written to genesis file", "path", genFile)

	confFile := filepath.Join(home, "config", ConfigFile)
	if _, err := os.Stat(confFile); err == nil {
		logger.Info("Found node configuration", "path", confFile)
		return nil
	}
	if err := WriteConfig(confFile, DefaultConfig()); err != nil {
		return err
	}
	logger.Info("Generated node configuration", "path", confFile)
	return nil
}

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(errors.ErrConfig, "cannot read genesis file, run tendermint init first: %s", err)
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrapf(errors.ErrConfig, "cannot parse genesis file: %s", err)
	}
	if _, ok := doc[appStateKey]; ok {
		return errors.Wrap(errors.ErrState, "genesis file already contains app_state")
	}

	doc[appStateKey] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrapf(errors.ErrConfig, "cannot serialize genesis: %s", err)
	}
	return ioutil.WriteFile(filename, out, 0600)
}
