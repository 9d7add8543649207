package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
)

// Genesis is the subset of the tendermint genesis file the application
// cares about.
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState json.RawMessage `json:"app_state"`
}

// LoadGenesis reads a genesis file.
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrapf(errors.ErrConfig, "cannot read genesis file: %s", err)
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrConfig, "cannot parse genesis file: %s", err)
	}
	return gen, nil
}

// _pact: is a prefix for application internal data
const chainIDKey = "_pact:chainID"

// loadChainID returns the chain id stored if any
func loadChainID(kv pact.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrapf(errors.ErrDatabase, "load chain id: %s", err)
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv pact.KVStore, chainID string) error {
	if !pact.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrapf(errors.ErrDatabase, "load chain id: %s", err)
	}
	if exists {
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "save chain id: %s", err)
	}
	return nil
}
