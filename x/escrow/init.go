package escrow

import (
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/asset"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/gconf"
)

var _ pact.Initializer = (*Initializer)(nil)

// Initializer fulfils the Initializer interface to load data from the genesis file
type Initializer struct{}

type genesisTerm struct {
	Name     string      `json:"name"`
	Sender   pact.Party  `json:"sender"`
	Receiver pact.Party  `json:"receiver"`
	Asset    asset.Asset `json:"asset"`
}

// FromGenesis stores the escrow configuration, when provided, and creates
// the declared coordinators with their initial terms.
func (Initializer) FromGenesis(opts pact.Options, db pact.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(db, opts, "escrow", &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return errors.Wrap(err, "escrow configuration")
	}

	var escrows []struct {
		Owners []pact.Party  `json:"owners"`
		Terms  []genesisTerm `json:"terms"`
	}
	if err := opts.ReadOptions("escrow", &escrows); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot read escrow genesis: %s", err)
	}

	ctrl := NewController()
	for i, e := range escrows {
		b, err := ctrl.Create(db, e.Owners)
		if err != nil {
			return errors.Wrapf(err, "escrow at position %d", i)
		}
		if len(e.Terms) == 0 {
			continue
		}
		rec, err := b.Record(db)
		if err != nil {
			return err
		}
		author := pact.Party(rec.Owners[0])
		for _, t := range e.Terms {
			if err := b.AddTerm(db, author, t.Name, t.Sender, t.Receiver, t.Asset); err != nil {
				return errors.Wrapf(err, "escrow at position %d, term %q", i, t.Name)
			}
		}
	}
	return nil
}
