package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pact"
	"github.com/iov-one/pact/errors"
)

// ResultSet contains a list of keys or values
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

func (m *ResultSet) Reset()         { *m = ResultSet{} }
func (m *ResultSet) String() string { return proto.CompactTextString(m) }
func (*ResultSet) ProtoMessage()    {}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []pact.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []pact.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]pact.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrState, "mismatched result set size: %d keys, %d values", len(kref), len(vref))
	}
	mods := make([]pact.Model, len(kref))
	for i := range mods {
		mods[i] = pact.Pair(kref[i], vref[i])
	}
	return mods, nil
}

// ParseResults turns the key and value result sets of a query response back
// into models.
func ParseResults(keys, values []byte) ([]pact.Model, error) {
	var k, v ResultSet
	if err := proto.Unmarshal(keys, &k); err != nil {
		return nil, errors.Wrap(errors.ErrModel, "cannot unmarshal keys")
	}
	if err := proto.Unmarshal(values, &v); err != nil {
		return nil, errors.Wrap(errors.ErrModel, "cannot unmarshal values")
	}
	return JoinResults(&k, &v)
}

// UnmarshalOneResult will parse a resultset, and
// it if is not empty, unmarshal the first result into o
func UnmarshalOneResult(bz []byte, o proto.Message) error {
	var res ResultSet
	if err := proto.Unmarshal(bz, &res); err != nil {
		return errors.Wrap(errors.ErrModel, "cannot unmarshal result set")
	}

	// no results, do nothing
	if len(res.Results) == 0 {
		return nil
	}

	if err := proto.Unmarshal(res.Results[0], o); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %T", o)
	}
	return nil
}

func marshal(m proto.Message) ([]byte, error) {
	raw, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot marshal %T: %s", m, err)
	}
	return raw, nil
}
