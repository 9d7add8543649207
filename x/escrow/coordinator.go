package escrow

import (
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/asset"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/gconf"
	"github.com/iov-one/pact/orm"
)

// Phase is the lifecycle state of a bundle, computed from the stored state.
type Phase int

const (
	// Empty bundle, no terms and no signatures.
	PhaseEmpty Phase = iota
	// Drafting while at least one owner did not sign.
	PhaseDrafting
	// Ratified by every owner, some terms are not satisfied.
	PhaseRatified
	// Ready for execution.
	PhaseReady
	// Settled by a successful execution.
	PhaseSettled
)

var phaseNames = map[Phase]string{
	PhaseEmpty:    "EMPTY",
	PhaseDrafting: "DRAFTING",
	PhaseRatified: "RATIFIED",
	PhaseReady:    "READY",
	PhaseSettled:  "SETTLED",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "UNKNOWN"
}

// Controller gives access to all coordinators kept in a store.
type Controller struct {
	coordinators orm.ModelBucket
	terms        orm.ModelBucket
	deposits     orm.ModelBucket
	signatures   orm.ModelBucket
	releases     orm.ModelBucket
}

// NewController returns a controller using the default buckets.
func NewController() *Controller {
	return &Controller{
		coordinators: NewCoordinatorBucket(),
		terms:        NewTermBucket(),
		deposits:     NewDepositBucket(),
		signatures:   NewSignatureBucket(),
		releases:     NewReleaseBucket(),
	}
}

// Bundle is a handle to a single coordinator. It holds no state besides the
// coordinator id, every operation reads the current state from the store.
type Bundle struct {
	id   []byte
	ctrl *Controller
}

// ID returns the coordinator id.
func (b *Bundle) ID() []byte {
	return b.id
}

// Address returns the address derived from the coordinator id.
func (b *Bundle) Address() pact.Address {
	return Condition(b.id).Address()
}

func loadConfiguration(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, "escrow", &conf); {
	case err == nil:
		return conf, nil
	case errors.ErrNotFound.Is(err):
		return DefaultConfiguration(), nil
	default:
		return conf, errors.Wrap(err, "escrow configuration")
	}
}

// Create persists a new coordinator with given owners. Duplicated owners
// are ignored. The owner set cannot be changed afterwards.
func (c *Controller) Create(db pact.KVStore, owners []pact.Party) (*Bundle, error) {
	normalized, err := normalizeOwners(owners)
	if err != nil {
		return nil, err
	}
	if len(normalized) == 0 {
		return nil, errors.Wrap(errors.ErrConfig, "at least one owner required")
	}
	conf, err := loadConfiguration(db)
	if err != nil {
		return nil, err
	}
	if int64(len(normalized)) > conf.MaxOwners {
		return nil, errors.Wrapf(errors.ErrConfig, "%d owners, at most %d allowed", len(normalized), conf.MaxOwners)
	}

	id, err := coordinatorSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire key")
	}
	if ok, err := c.coordinators.Has(db, id); err != nil {
		return nil, err
	} else if ok {
		return nil, errors.Wrapf(errors.ErrDuplicate, "coordinator %x", id)
	}
	rec := &Coordinator{
		Owners:  normalized,
		Address: Condition(id).Address(),
	}
	if err := c.coordinators.Put(db, id, rec); err != nil {
		return nil, errors.Wrap(err, "cannot store coordinator")
	}
	return &Bundle{id: id, ctrl: c}, nil
}

// Load returns a handle to an existing coordinator. ErrNotFound is returned
// for unknown ids.
func (c *Controller) Load(db pact.ReadOnlyKVStore, id []byte) (*Bundle, error) {
	if err := orm.ValidateSequence(id); err != nil {
		return nil, errors.Wrap(err, "coordinator id")
	}
	ok, err := c.coordinators.Has(db, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "coordinator %x", id)
	}
	return &Bundle{id: id, ctrl: c}, nil
}

// Record returns the stored coordinator record.
func (b *Bundle) Record(db pact.ReadOnlyKVStore) (*Coordinator, error) {
	var rec Coordinator
	if err := b.ctrl.coordinators.One(db, b.id, &rec); err != nil {
		return nil, errors.Wrap(err, "cannot load coordinator")
	}
	return &rec, nil
}

func (b *Bundle) requireOwner(rec *Coordinator, caller pact.Party) error {
	if !rec.IsOwner(caller) {
		return errors.Wrapf(errors.ErrUnauthorized, "%q is not an owner", caller)
	}
	return nil
}

// requireDraft ensures terms can be edited by the caller. A signed bundle
// rejects edits from anyone, owner or not.
func (b *Bundle) requireDraft(db pact.ReadOnlyKVStore, caller pact.Party) (*Coordinator, error) {
	rec, err := b.Record(db)
	if err != nil {
		return nil, err
	}
	signed, err := b.anySignature(db)
	if err != nil {
		return nil, err
	}
	if signed {
		return nil, errors.Wrap(errors.ErrState, "bundle already ratified")
	}
	if err := b.requireOwner(rec, caller); err != nil {
		return nil, err
	}
	return rec, nil
}

// AddTerm stores a fresh unsatisfied term under given name. An existing term
// with the same name is replaced.
func (b *Bundle) AddTerm(db pact.KVStore, caller pact.Party, name string, sender, receiver pact.Party, a asset.Asset) error {
	rec, err := b.requireDraft(db, caller)
	if err != nil {
		return err
	}
	if !IsTermName(name) {
		return errors.Field("Name", errors.ErrInput, "invalid term name %q", name)
	}
	term := NewTerm(sender, receiver, a)
	if err := term.Validate(); err != nil {
		return err
	}
	if rec.Settled {
		return errors.Wrap(errors.ErrState, "bundle settled")
	}

	key := subKey(b.id, name)
	exists, err := b.ctrl.terms.Has(db, key)
	if err != nil {
		return err
	}
	if !exists {
		conf, err := loadConfiguration(db)
		if err != nil {
			return err
		}
		n, err := b.countTerms(db)
		if err != nil {
			return err
		}
		if n >= conf.MaxTerms {
			return errors.Wrapf(errors.ErrConfig, "at most %d terms allowed", conf.MaxTerms)
		}
	}
	return b.ctrl.terms.Put(db, key, term)
}

// RemoveTerm deletes the term with given name. Removing an absent term is
// not an error.
func (b *Bundle) RemoveTerm(db pact.KVStore, caller pact.Party, name string) error {
	if _, err := b.requireDraft(db, caller); err != nil {
		return err
	}
	err := b.ctrl.terms.Delete(db, subKey(b.id, name))
	if errors.ErrNotFound.Is(err) {
		return nil
	}
	return err
}

// GetTerm returns the term stored under given name.
func (b *Bundle) GetTerm(db pact.ReadOnlyKVStore, name string) (*Term, error) {
	var t Term
	if err := b.ctrl.terms.One(db, subKey(b.id, name), &t); err != nil {
		return nil, errors.Wrapf(err, "term %q", name)
	}
	return &t, nil
}

// Terms returns all terms ordered by name.
func (b *Bundle) Terms(db pact.ReadOnlyKVStore) ([]NamedTerm, error) {
	it, err := b.ctrl.terms.PrefixScan(db, b.id, false)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res []NamedTerm
	for {
		var t Term
		key, err := it.LoadNext(&t)
		switch {
		case err == nil:
			res = append(res, NamedTerm{Name: string(key[len(b.id):]), Term: &t})
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}

func (b *Bundle) countTerms(db pact.ReadOnlyKVStore) (int64, error) {
	terms, err := b.Terms(db)
	return int64(len(terms)), err
}

// Deposit escrows the asset required by the named term. The asset must be
// exactly equal to the required one and only the term sender may deposit.
func (b *Bundle) Deposit(db pact.KVStore, caller pact.Party, a asset.Asset, termName string) error {
	term, err := b.GetTerm(db, termName)
	if err != nil {
		return err
	}
	rec, err := b.Record(db)
	if err != nil {
		return err
	}
	if rec.Settled {
		return errors.Wrap(errors.ErrState, "bundle settled")
	}
	if term.Satisfied {
		return errors.Wrapf(errors.ErrState, "term %q already satisfied", termName)
	}
	if want := term.GetAsset(); !want.Equals(a) {
		return errors.Wrapf(errors.ErrMismatch, "%s needed, %s deposited", want, a)
	}
	if caller.String() != term.Sender {
		return errors.Wrapf(errors.ErrUnauthorized, "%q is not the sender of term %q", caller, termName)
	}

	dep := &Deposit{Party: caller.String(), Asset: &a}
	if err := b.ctrl.deposits.Put(db, subKey(b.id, caller.String()), dep); err != nil {
		return errors.Wrap(err, "cannot store deposit")
	}
	term.SetSatisfied(true)
	return b.ctrl.terms.Put(db, subKey(b.id, termName), term)
}

// Withdraw returns the deposit of the term sender and marks the term as not
// satisfied.
func (b *Bundle) Withdraw(db pact.KVStore, caller pact.Party, termName string) error {
	term, err := b.GetTerm(db, termName)
	if err != nil {
		return err
	}
	rec, err := b.Record(db)
	if err != nil {
		return err
	}
	if rec.Settled {
		return errors.Wrap(errors.ErrState, "bundle settled")
	}
	if caller.String() != term.Sender {
		return errors.Wrapf(errors.ErrUnauthorized, "%q is not the sender of term %q", caller, termName)
	}

	err = b.ctrl.deposits.Delete(db, subKey(b.id, caller.String()))
	if err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}
	term.SetSatisfied(false)
	return b.ctrl.terms.Put(db, subKey(b.id, termName), term)
}

// DepositOf returns the asset currently escrowed by given party.
func (b *Bundle) DepositOf(db pact.ReadOnlyKVStore, p pact.Party) (*asset.Asset, error) {
	var d Deposit
	if err := b.ctrl.deposits.One(db, subKey(b.id, p.String()), &d); err != nil {
		return nil, errors.Wrapf(err, "deposit of %q", p)
	}
	return d.Asset, nil
}

// Deposits returns all deposits ordered by party.
func (b *Bundle) Deposits(db pact.ReadOnlyKVStore) ([]*Deposit, error) {
	it, err := b.ctrl.deposits.PrefixScan(db, b.id, false)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res []*Deposit
	for {
		var d Deposit
		_, err := it.LoadNext(&d)
		switch {
		case err == nil:
			res = append(res, &d)
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}

// Sign ratifies the current bundle on behalf of the caller. Signing twice
// has no additional effect.
func (b *Bundle) Sign(db pact.KVStore, caller pact.Party) error {
	rec, err := b.Record(db)
	if err != nil {
		return err
	}
	if err := b.requireOwner(rec, caller); err != nil {
		return err
	}
	return b.ctrl.signatures.Put(db, subKey(b.id, caller.String()), &Signature{Party: caller.String()})
}

// HasSigned returns true if given party signed the bundle.
func (b *Bundle) HasSigned(db pact.ReadOnlyKVStore, p pact.Party) (bool, error) {
	return b.ctrl.signatures.Has(db, subKey(b.id, p.String()))
}

// Signatures returns the parties that signed, in sorted order.
func (b *Bundle) Signatures(db pact.ReadOnlyKVStore) ([]pact.Party, error) {
	it, err := b.ctrl.signatures.PrefixScan(db, b.id, false)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res []pact.Party
	for {
		var s Signature
		_, err := it.LoadNext(&s)
		switch {
		case err == nil:
			res = append(res, pact.Party(s.Party))
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}

func (b *Bundle) anySignature(db pact.ReadOnlyKVStore) (bool, error) {
	sigs, err := b.Signatures(db)
	return len(sigs) > 0, err
}

// checkExecutable verifies unanimity, then full satisfaction, then that the
// bundle was not settled yet.
func (b *Bundle) checkExecutable(db pact.ReadOnlyKVStore) (*Coordinator, []NamedTerm, error) {
	rec, err := b.Record(db)
	if err != nil {
		return nil, nil, err
	}
	for _, owner := range rec.OwnerParties() {
		ok, err := b.HasSigned(db, owner)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return nil, nil, errors.Wrapf(errors.ErrConsensus, "owner %q has not signed", owner)
		}
	}
	terms, err := b.Terms(db)
	if err != nil {
		return nil, nil, err
	}
	for _, t := range terms {
		if !t.Satisfied {
			a := t.GetAsset()
			return nil, nil, errors.Wrapf(errors.ErrUnsatisfied,
				"term %q: %s owes %s %s", t.Name, t.Sender, a.Quantity(), a.Name)
		}
	}
	if rec.Settled {
		return nil, nil, errors.Wrap(errors.ErrState, "bundle already settled")
	}
	return rec, terms, nil
}

// Execute settles the bundle. A release is written to the outbox for every
// term, all deposits are cleared and the bundle is marked settled. Either
// all of it is written or, on error, nothing.
func (b *Bundle) Execute(db pact.KVStore) ([]*Release, error) {
	rec, terms, err := b.checkExecutable(db)
	if err != nil {
		return nil, err
	}

	work := db
	var cache pact.KVCacheWrap
	if c, ok := db.(pact.CacheableKVStore); ok {
		cache = c.CacheWrap()
		work = cache
	}
	releases, err := b.settle(work, rec, terms)
	if err != nil {
		if cache != nil {
			cache.Discard()
		}
		return nil, err
	}
	if cache != nil {
		if err := cache.Write(); err != nil {
			return nil, errors.Wrapf(errors.ErrDatabase, "cannot write settlement: %s", err)
		}
	}
	return releases, nil
}

func (b *Bundle) settle(db pact.KVStore, rec *Coordinator, terms []NamedTerm) ([]*Release, error) {
	releases := make([]*Release, 0, len(terms))
	for _, t := range terms {
		id, err := releaseSeq.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "cannot acquire release key")
		}
		a := t.GetAsset()
		r := &Release{
			ID:          id,
			Coordinator: b.id,
			Term:        t.Name,
			Sender:      t.Sender,
			Receiver:    t.Receiver,
			Asset:       &a,
		}
		if err := b.ctrl.releases.Put(db, id, r); err != nil {
			return nil, errors.Wrap(err, "cannot store release")
		}
		releases = append(releases, r)
	}

	deposits, err := b.Deposits(db)
	if err != nil {
		return nil, err
	}
	for _, d := range deposits {
		if err := b.ctrl.deposits.Delete(db, subKey(b.id, d.Party)); err != nil {
			return nil, errors.Wrap(err, "cannot clear deposit")
		}
	}

	rec.Settled = true
	rec.Settlements++
	if err := b.ctrl.coordinators.Put(db, b.id, rec); err != nil {
		return nil, errors.Wrap(err, "cannot store coordinator")
	}
	return releases, nil
}

// Reset returns a settled bundle to drafting. Signatures are cleared and
// every term is marked as not satisfied, so that the same bundle can be
// ratified and funded again.
func (b *Bundle) Reset(db pact.KVStore, caller pact.Party) error {
	rec, err := b.Record(db)
	if err != nil {
		return err
	}
	if err := b.requireOwner(rec, caller); err != nil {
		return err
	}
	if !rec.Settled {
		return errors.Wrap(errors.ErrState, "bundle not settled")
	}

	sigs, err := b.Signatures(db)
	if err != nil {
		return err
	}
	for _, p := range sigs {
		if err := b.ctrl.signatures.Delete(db, subKey(b.id, p.String())); err != nil {
			return err
		}
	}
	terms, err := b.Terms(db)
	if err != nil {
		return err
	}
	for _, t := range terms {
		t.SetSatisfied(false)
		if err := b.ctrl.terms.Put(db, subKey(b.id, t.Name), t.Term); err != nil {
			return err
		}
	}
	rec.Settled = false
	return b.ctrl.coordinators.Put(db, b.id, rec)
}

// Phase computes the lifecycle state of the bundle.
func (b *Bundle) Phase(db pact.ReadOnlyKVStore) (Phase, error) {
	rec, err := b.Record(db)
	if err != nil {
		return PhaseEmpty, err
	}
	if rec.Settled {
		return PhaseSettled, nil
	}
	terms, err := b.Terms(db)
	if err != nil {
		return PhaseEmpty, err
	}
	sigs, err := b.Signatures(db)
	if err != nil {
		return PhaseEmpty, err
	}
	if len(terms) == 0 && len(sigs) == 0 {
		return PhaseEmpty, nil
	}
	for _, owner := range rec.OwnerParties() {
		ok, err := b.HasSigned(db, owner)
		if err != nil {
			return PhaseEmpty, err
		}
		if !ok {
			return PhaseDrafting, nil
		}
	}
	for _, t := range terms {
		if !t.Satisfied {
			return PhaseRatified, nil
		}
	}
	return PhaseReady, nil
}
