package asset

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pact/errors"
	"github.com/iov-one/pact/pacttest/assert"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Parse human readable assets", t, func() {
		Convey("whole quantity", func() {
			a, err := Parse("4 gold")
			So(err, ShouldBeNil)
			So(a, ShouldResemble, New("gold", 4, 0))
		})

		Convey("fractional quantity", func() {
			a, err := Parse("4.5 gold")
			So(err, ShouldBeNil)
			So(a, ShouldResemble, New("gold", 4, 500000000))
			So(a.String(), ShouldEqual, "4.5 gold")
		})

		Convey("smallest unit", func() {
			a, err := Parse("0.000000001 silver-coin")
			So(err, ShouldBeNil)
			So(a, ShouldResemble, New("silver-coin", 0, 1))
		})

		Convey("negative quantity parses but does not validate", func() {
			a, err := Parse("-2.25 gold")
			So(err, ShouldBeNil)
			So(a, ShouldResemble, New("gold", -2, -250000000))
			So(errors.ErrInput.Is(a.Validate()), ShouldBeTrue)
		})

		Convey("malformed input", func() {
			for _, raw := range []string{"", "gold", "4", "4gold", "4.5.1 gold", "1.0000000001 gold", "4 9gold"} {
				_, err := Parse(raw)
				So(errors.ErrInput.Is(err), ShouldBeTrue)
			}
		})
	})
}

func TestFromFloat(t *testing.T) {
	cases := map[string]struct {
		quantity float64
		want     Asset
		wantErr  *errors.Error
	}{
		"whole": {
			quantity: 3,
			want:     New("gold", 3, 0),
		},
		"half": {
			quantity: 4.5,
			want:     New("gold", 4, 500000000),
		},
		"rounded": {
			quantity: 0.1,
			want:     New("gold", 0, 100000000),
		},
		"rounding carries into whole": {
			quantity: 1.9999999999,
			want:     New("gold", 2, 0),
		},
		"negative": {
			quantity: -1.5,
			want:     New("gold", -1, -500000000),
		},
		"not a number": {
			quantity: math.NaN(),
			wantErr:  errors.ErrInput,
		},
		"too big": {
			quantity: 1e16,
			wantErr:  errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := FromFloat("gold", tc.quantity)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestEquals(t *testing.T) {
	cases := map[string]struct {
		a, b Asset
		want bool
	}{
		"identical":          {New("gold", 4, 0), New("gold", 4, 0), true},
		"different name":     {New("gold", 4, 0), New("silver", 4, 0), false},
		"different quantity": {New("gold", 4, 0), New("gold", 3, 0), false},
		"different both":     {New("gold", 4, 0), New("silver", 3, 0), false},
		"different fraction": {New("gold", 4, 1), New("gold", 4, 0), false},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Equals(tc.b))
			assert.Equal(t, tc.want, tc.b.Equals(tc.a))
		})
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		a       Asset
		wantErr *errors.Error
	}{
		"valid":             {New("gold", 4, 0), nil},
		"zero":              {New("gold", 0, 0), nil},
		"dotted name":       {New("tok.en_1-a", 1, 1), nil},
		"empty name":        {New("", 4, 0), errors.ErrInput},
		"negative whole":    {New("gold", -1, 0), errors.ErrInput},
		"negative fraction": {New("gold", 0, -1), errors.ErrInput},
		"whole overflow":    {New("gold", MaxInt+1, 0), errors.ErrOverflow},
		"fraction overflow": {New("gold", 1, FracUnit), errors.ErrOverflow},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.a.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected validation error: %+v", err)
			}
		})
	}
}

func TestString(t *testing.T) {
	cases := map[string]struct {
		a    Asset
		want string
	}{
		"whole":      {New("gold", 4, 0), "4 gold"},
		"fractional": {New("gold", 4, 500000000), "4.5 gold"},
		"tiny":       {New("gold", 0, 1), "0.000000001 gold"},
		"negative":   {New("gold", -1, -10), "-1.00000001 gold"},
		"no name":    {New("", 2, 0), "2"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.String())
		})
	}
}

func TestJSON(t *testing.T) {
	raw, err := json.Marshal(New("gold", 4, 500000000))
	assert.Nil(t, err)
	assert.Equal(t, `"4.5 gold"`, string(raw))

	var a Asset
	assert.Nil(t, json.Unmarshal([]byte(`"7 silver"`), &a))
	assert.Equal(t, New("silver", 7, 0), a)

	assert.Nil(t, json.Unmarshal([]byte(`{"name": "gold", "whole": 2, "fractional": 3}`), &a))
	assert.Equal(t, New("gold", 2, 3), a)

	err = json.Unmarshal([]byte(`"seven silver"`), &a)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestProtobuf(t *testing.T) {
	a := New("gold", 4, 500000000)
	raw, err := proto.Marshal(&a)
	assert.Nil(t, err)
	var b Asset
	assert.Nil(t, proto.Unmarshal(raw, &b))
	assert.Equal(t, true, a.Equals(b))
}

func TestFlagValue(t *testing.T) {
	var a Asset
	assert.Nil(t, a.Set("1.25 gold"))
	assert.Equal(t, New("gold", 1, 250000000), a)
	assert.IsErr(t, errors.ErrInput, a.Set("gold"))
}
