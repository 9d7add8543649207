package escrow

import (
	"regexp"
	"sort"

	"github.com/iov-one/pact"
	"github.com/iov-one/pact/asset"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/orm"
)

// IsTermName is the RegExp to ensure valid term names
var IsTermName = regexp.MustCompile(`^[a-zA-Z0-9 _.\-]{1,64}$`).MatchString

// Condition calculates the address of a coordinator given its id.
func Condition(id []byte) pact.Condition {
	return pact.NewCondition("escrow", "seq", id)
}

var _ orm.Model = (*Coordinator)(nil)

// Validate ensures the coordinator record is consistent. The owner set must
// be sorted and free of duplicates, as produced by normalizeOwners.
func (c *Coordinator) Validate() error {
	var errs error
	if len(c.Owners) == 0 {
		errs = errors.AppendField(errs, "Owners", errors.Wrap(errors.ErrConfig, "at least one owner required"))
	}
	for i, o := range c.Owners {
		if err := pact.Party(o).Validate(); err != nil {
			errs = errors.AppendField(errs, "Owners", err)
		}
		if i > 0 && c.Owners[i-1] >= o {
			errs = errors.AppendField(errs, "Owners", errors.Wrap(errors.ErrInput, "owners not sorted or duplicated"))
		}
	}
	errs = errors.AppendField(errs, "Address", pact.Address(c.Address).Validate())
	if c.Settlements < 0 {
		errs = errors.AppendField(errs, "Settlements", errors.ErrInput)
	}
	return errs
}

// IsOwner returns true if given party is in the owner set.
func (c *Coordinator) IsOwner(p pact.Party) bool {
	i := sort.SearchStrings(c.Owners, p.String())
	return i < len(c.Owners) && c.Owners[i] == p.String()
}

// OwnerParties returns the owner set in sorted order.
func (c *Coordinator) OwnerParties() []pact.Party {
	res := make([]pact.Party, len(c.Owners))
	for i, o := range c.Owners {
		res[i] = pact.Party(o)
	}
	return res
}

// normalizeOwners validates, sorts and de-duplicates given owners.
func normalizeOwners(owners []pact.Party) ([]string, error) {
	seen := make(map[pact.Party]struct{}, len(owners))
	res := make([]string, 0, len(owners))
	for _, o := range owners {
		if err := o.Validate(); err != nil {
			return nil, errors.Field("Owners", err, "owner %q", o)
		}
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		res = append(res, o.String())
	}
	sort.Strings(res)
	return res, nil
}

// NewTerm returns an unsatisfied term.
func NewTerm(sender, receiver pact.Party, a asset.Asset) *Term {
	return &Term{
		Sender:    sender.String(),
		Receiver:  receiver.String(),
		Asset:     &a,
		Satisfied: false,
	}
}

var _ orm.Model = (*Term)(nil)

// Validate ensures both parties and the asset are valid. The asset quantity
// must not be negative.
func (t *Term) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Sender", pact.Party(t.Sender).Validate())
	errs = errors.AppendField(errs, "Receiver", pact.Party(t.Receiver).Validate())
	if t.Asset == nil {
		errs = errors.AppendField(errs, "Asset", errors.ErrEmpty)
	} else {
		errs = errors.AppendField(errs, "Asset", t.Asset.Validate())
	}
	return errs
}

// SetSatisfied sets the satisfied flag to given value.
func (t *Term) SetSatisfied(satisfied bool) {
	t.Satisfied = satisfied
}

// GetAsset returns the required asset, or a zero value if not set.
func (t *Term) GetAsset() asset.Asset {
	if t == nil || t.Asset == nil {
		return asset.Asset{}
	}
	return *t.Asset
}

// Equals compares all four fields.
func (t *Term) Equals(o *Term) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.Sender == o.Sender &&
		t.Receiver == o.Receiver &&
		t.GetAsset().Equals(o.GetAsset()) &&
		t.Satisfied == o.Satisfied
}

// Copy returns an independent copy of the term.
func (t *Term) Copy() *Term {
	c := *t
	if t.Asset != nil {
		a := *t.Asset
		c.Asset = &a
	}
	return &c
}

// NamedTerm is a term together with the name it is stored under.
type NamedTerm struct {
	Name string
	*Term
}

var _ orm.Model = (*Deposit)(nil)

// Validate ensures the depositing party and the asset are valid.
func (d *Deposit) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Party", pact.Party(d.Party).Validate())
	if d.Asset == nil {
		errs = errors.AppendField(errs, "Asset", errors.ErrEmpty)
	} else {
		errs = errors.AppendField(errs, "Asset", d.Asset.Validate())
	}
	return errs
}

var _ orm.Model = (*Signature)(nil)

func (s *Signature) Validate() error {
	return errors.Field("Party", pact.Party(s.Party).Validate(), "")
}

var _ orm.Model = (*Release)(nil)

// Validate ensures the release references a coordinator and carries a
// valid transfer.
func (r *Release) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "ID", orm.ValidateSequence(r.ID))
	errs = errors.AppendField(errs, "Coordinator", orm.ValidateSequence(r.Coordinator))
	if !IsTermName(r.Term) {
		errs = errors.AppendField(errs, "Term", errors.Wrapf(errors.ErrInput, "%q", r.Term))
	}
	errs = errors.AppendField(errs, "Sender", pact.Party(r.Sender).Validate())
	errs = errors.AppendField(errs, "Receiver", pact.Party(r.Receiver).Validate())
	if r.Asset == nil {
		errs = errors.AppendField(errs, "Asset", errors.ErrEmpty)
	} else {
		errs = errors.AppendField(errs, "Asset", r.Asset.Validate())
	}
	return errs
}

// Instruction is the human readable form of the release, for example
// "Giving 4 golds to bob".
func (r *Release) Instruction() string {
	var a asset.Asset
	if r.Asset != nil {
		a = *r.Asset
	}
	return "Giving " + a.Quantity() + " " + a.Name + "s to " + r.Receiver
}

const (
	// DefaultMaxOwners is used when no configuration is stored.
	DefaultMaxOwners = 32
	// DefaultMaxTerms is used when no configuration is stored.
	DefaultMaxTerms = 256
)

// DefaultConfiguration is used when the genesis did not provide one.
func DefaultConfiguration() Configuration {
	return Configuration{
		MaxOwners: DefaultMaxOwners,
		MaxTerms:  DefaultMaxTerms,
	}
}

func (c *Configuration) Validate() error {
	var errs error
	if c.MaxOwners <= 0 {
		errs = errors.AppendField(errs, "MaxOwners", errors.Wrap(errors.ErrConfig, "must be positive"))
	}
	if c.MaxTerms <= 0 {
		errs = errors.AppendField(errs, "MaxTerms", errors.Wrap(errors.ErrConfig, "must be positive"))
	}
	return errs
}

const (
	bucketCoordinators = "escrow"
	bucketTerms        = "escrow_term"
	bucketDeposits     = "escrow_deposit"
	bucketSignatures   = "escrow_sig"
	bucketReleases     = "escrow_release"
)

var (
	coordinatorSeq = orm.NewSequence(bucketCoordinators, "id")
	releaseSeq     = orm.NewSequence(bucketReleases, "id")
)

// NewCoordinatorBucket returns the bucket holding coordinator records keyed
// by their id.
func NewCoordinatorBucket() orm.ModelBucket {
	return orm.NewModelBucket(bucketCoordinators)
}

// NewTermBucket returns the bucket holding terms keyed by
// <coordinator id><term name>.
func NewTermBucket() orm.ModelBucket {
	return orm.NewModelBucket(bucketTerms)
}

// NewDepositBucket returns the bucket holding deposits keyed by
// <coordinator id><party>.
func NewDepositBucket() orm.ModelBucket {
	return orm.NewModelBucket(bucketDeposits)
}

// NewSignatureBucket returns the bucket holding signatures keyed by
// <coordinator id><party>.
func NewSignatureBucket() orm.ModelBucket {
	return orm.NewModelBucket(bucketSignatures)
}

// NewReleaseBucket returns the outbox bucket, keyed by the release id.
func NewReleaseBucket() orm.ModelBucket {
	return orm.NewModelBucket(bucketReleases)
}

// subKey joins the fixed size coordinator id with a name. Coordinator ids
// are always 8 bytes so a prefix scan over the id never matches another
// coordinator.
func subKey(id []byte, name string) []byte {
	k := make([]byte, 0, len(id)+len(name))
	k = append(k, id...)
	return append(k, name...)
}
