package address_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/okian/questboost/internal/domain/address"
	. "github.com/smartystreets/goconvey/convey"
)

const zeroPad = "0x" + "000000000000000000000000000000000000000000000000000000000000"

func TestNormalize(t *testing.T) {
	Convey("Given participant addresses in accepted notations", t, func() {
		cases := map[string]string{
			"0x1":    zeroPad + "0001",
			"0X1F":   zeroPad + "001f",
			"31":     zeroPad + "001f",
			" 0xab ": zeroPad + "00ab",
			"0x0":    zeroPad + "0000",
			"0x00000000000000000000000000000000000000000000000000000000000000ff": zeroPad + "00ff",
		}

		for in, want := range cases {
			got, err := address.Normalize(in)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		}
	})

	Convey("Given a real account address", t, func() {
		in := "0x61b6c4c43ca3a3f8ba9eb1e0d0ad4c01a0d4a0d2e6a1c9f4c3d4b9a1b2c3d4e"

		Convey("Then normalization pads to 64 digits and lowercases", func() {
			got, err := address.Normalize(strings.ToUpper(in[2:]))
			So(err, ShouldNotBeNil) // upper-case hex without prefix is not decimal

			got, err = address.Normalize("0x" + strings.ToUpper(in[2:]))
			So(err, ShouldBeNil)
			So(got, ShouldEqual, "0x0"+in[2:])
			So(len(got), ShouldEqual, 66)
		})
	})
}

func TestParseRejects(t *testing.T) {
	Convey("Given malformed input", t, func() {
		Convey("Then empty input is ErrEmptyAddress", func() {
			_, err := address.Parse("   ")
			So(errors.Is(err, address.ErrEmptyAddress), ShouldBeTrue)
			So(errors.Is(err, address.ErrInvalidAddress), ShouldBeTrue)
		})

		Convey("Then garbage and signed values are invalid", func() {
			for _, in := range []string{"0x", "0xzz", "abc", "-1", "+1", "0x-1", "1.5"} {
				_, err := address.Parse(in)
				So(errors.Is(err, address.ErrInvalidAddress), ShouldBeTrue)
			}
		})

		Convey("Then values at or above the field prime are out of range", func() {
			prime := "0x800000000000011000000000000000000000000000000000000000000000001"
			_, err := address.Parse(prime)
			So(errors.Is(err, address.ErrOutOfRange), ShouldBeTrue)

			below := "0x800000000000011000000000000000000000000000000000000000000000000"
			f, err := address.Parse(below)
			So(err, ShouldBeNil)
			So(f.String(), ShouldEqual, "0x0"+below[2:])
		})
	})
}
