/*
Package asset provides the value type transferred by escrow terms: a named
quantity with a fixed point decimal precision of 10^-9.
*/
package asset

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pact/errors"
)

// IsName is the RegExp to ensure valid asset names
var IsName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_\-.]{0,31}$`).MatchString

const (
	// MaxInt is the largest whole value we accept
	MaxInt int64 = 999999999999999 // 10^15-1

	// FracUnit is the smallest numbers we divide by
	FracUnit int64 = 1000000000 // fractional units = 10^9
	// MaxFrac is the highest possible fractional value
	MaxFrac = FracUnit - 1

	fracDigits = 9
)

// Asset is a quantity of a named thing, for example "4.5 gold". The
// quantity is whole + fractional/10^9.
type Asset struct {
	Name       string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Whole      int64  `protobuf:"varint,2,opt,name=whole,proto3" json:"whole,omitempty"`
	Fractional int64  `protobuf:"varint,3,opt,name=fractional,proto3" json:"fractional,omitempty"`
}

func (m *Asset) Reset()      { *m = Asset{} }
func (*Asset) ProtoMessage() {}

var _ proto.Message = (*Asset)(nil)

// New creates a new asset object
func New(name string, whole, fractional int64) Asset {
	return Asset{
		Name:       name,
		Whole:      whole,
		Fractional: fractional,
	}
}

// Newp returns a pointer to a new asset.
func Newp(name string, whole, fractional int64) *Asset {
	a := New(name, whole, fractional)
	return &a
}

// FromFloat creates an asset from a floating point quantity. The quantity
// is rounded to the closest 10^-9.
func FromFloat(name string, quantity float64) (Asset, error) {
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return Asset{}, errors.Wrapf(errors.ErrInput, "quantity %v", quantity)
	}
	if math.Abs(quantity) > float64(MaxInt) {
		return Asset{}, errors.Wrapf(errors.ErrOverflow, "quantity %v", quantity)
	}
	w, f := math.Modf(quantity)
	whole := int64(w)
	frac := int64(math.Round(f * float64(FracUnit)))
	switch {
	case frac >= FracUnit:
		whole++
		frac -= FracUnit
	case frac <= -FracUnit:
		whole--
		frac += FracUnit
	}
	return New(name, whole, frac), nil
}

// Equals returns true if the name and the quantity are identical
func (a Asset) Equals(o Asset) bool {
	return a.Name == o.Name &&
		a.Whole == o.Whole &&
		a.Fractional == o.Fractional
}

// IsZero returns true when the quantity is 0
func (a Asset) IsZero() bool {
	return a.Whole == 0 && a.Fractional == 0
}

// IsNegative returns true if the quantity is lower than 0
func (a Asset) IsNegative() bool {
	return a.Whole < 0 || a.Fractional < 0
}

// Float returns the quantity as a floating point number. Precision may be
// lost, use it for display only.
func (a Asset) Float() float64 {
	return float64(a.Whole) + float64(a.Fractional)/float64(FracUnit)
}

// Validate ensures that the asset has a valid name and a non negative
// quantity in the accepted range.
func (a Asset) Validate() error {
	var err error
	if !IsName(a.Name) {
		err = errors.Append(err, errors.Wrapf(errors.ErrInput, "invalid asset name: %q", a.Name))
	}
	if a.IsNegative() {
		err = errors.Append(err, errors.Wrapf(errors.ErrInput, "negative quantity: %s", a.quantity()))
	}
	if a.Whole > MaxInt || a.Whole < -MaxInt {
		err = errors.Append(err, errors.ErrOverflow)
	}
	if a.Fractional > MaxFrac || a.Fractional < -MaxFrac {
		err = errors.Append(err, errors.Wrap(errors.ErrOverflow, "fractional"))
	}
	return err
}

func (a Asset) quantity() string {
	var b bytes.Buffer
	whole, frac := a.Whole, a.Fractional
	if whole < 0 || frac < 0 {
		io.WriteString(&b, "-")
	}
	if whole < 0 {
		whole = -whole
	}
	if frac < 0 {
		frac = -frac
	}
	io.WriteString(&b, strconv.FormatInt(whole, 10))
	if frac != 0 {
		s := strconv.FormatInt(frac, 10)
		// Add leading zeros to convert it to a decimal number.
		s = "." + strings.Repeat("0", fracDigits-len(s)) + s
		// Remove trailing zeros as they provide no information.
		io.WriteString(&b, strings.TrimRight(s, "0"))
	}
	return b.String()
}

// Quantity returns the decimal representation of the quantity, for
// example "4.5".
func (a Asset) Quantity() string {
	return a.quantity()
}

// String provides a human readable representation of the asset, for example
// "4.5 gold". For a valid asset the result can be parsed back.
func (a Asset) String() string {
	if a.Name == "" {
		return a.quantity()
	}
	return a.quantity() + " " + a.Name
}

// Parse reads a human readable asset representation. Accepted format
// is a string:
//
//	"[-]<whole>[.<fractional>] <name>"
//
// At most 9 fractional digits are accepted. The result is not validated.
func Parse(h string) (Asset, error) {
	m := humanFormatRx.FindStringSubmatch(strings.TrimSpace(h))
	if m == nil {
		return Asset{}, errors.Wrapf(errors.ErrInput, "invalid asset format: %q", h)
	}
	whole, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return Asset{}, errors.Wrapf(errors.ErrInput, "invalid whole value: %s", err)
	}
	var frac int64
	if digits := strings.TrimPrefix(m[3], "."); digits != "" {
		if len(digits) > fracDigits {
			return Asset{}, errors.Wrapf(errors.ErrInput, "more than %d fractional digits", fracDigits)
		}
		frac, err = strconv.ParseInt(digits+strings.Repeat("0", fracDigits-len(digits)), 10, 64)
		if err != nil {
			return Asset{}, errors.Wrapf(errors.ErrInput, "invalid fractional value: %s", err)
		}
	}
	if m[1] == "-" {
		whole, frac = -whole, -frac
	}
	return New(m[4], whole, frac), nil
}

var humanFormatRx = regexp.MustCompile(`^(\-?)\s*(\d+)(\.\d+)?\s+([a-zA-Z][a-zA-Z0-9_\-.]{0,31})$`)

// MarshalJSON encodes the asset in its human readable form.
func (a Asset) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts both the human readable form and an object with the
// name, whole and fractional attributes.
func (a *Asset) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := Parse(human)
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	}

	// Fallback into the default unmarshaling. Because UnmarshalJSON method
	// is provided, we can no longer use Asset type for this.
	var obj struct {
		Name       string
		Whole      int64
		Fractional int64
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "asset: %s", err)
	}
	*a = New(obj.Name, obj.Whole, obj.Fractional)
	return nil
}

// Set updates this asset value to what is provided. This method implements
// flag.Value interface.
func (a *Asset) Set(raw string) error {
	val, err := Parse(raw)
	if err != nil {
		return err
	}
	*a = val
	return nil
}
