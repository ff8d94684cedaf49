//go:build property
// +build property

package keys

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestKeyCodeProperties exercises the registry and frame codec over the full
// code space rather than hand-picked samples.
func TestKeyCodeProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: frame encoding round-trips for any 32-bit value, not just
	// assigned codes (the decoder must never lose bits).
	properties.Property("frame round-trip", prop.ForAll(
		func(v uint32) bool {
			c := Code(v)
			return DecodeFrame(c.Frame()) == c
		},
		gen.UInt32(),
	))

	// Property: Name/Lookup are mutually inverse over assigned codes.
	properties.Property("name lookup inverse", prop.ForAll(
		func(n uint8) bool {
			c := Code(n%uint8(Count()) + 1)
			got, ok := Lookup(c.Name())
			return ok && got == c
		},
		gen.UInt8(),
	))

	// Property: unassigned codes have no name and never validate.
	properties.Property("unassigned codes rejected", prop.ForAll(
		func(v uint32) bool {
			c := Code(v)
			if v >= 1 && v <= uint32(Count()) {
				return c.Valid()
			}
			return !c.Valid() && c.Name() == ""
		},
		gen.UInt32(),
	))

	properties.TestingRun(t)
}
