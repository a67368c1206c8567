package shading

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownVariant is returned by ParseVariant for names other than
// flat, gouraud and phong.
var ErrUnknownVariant = errors.New("unknown shading variant")

// Variant selects where the reflectance model is evaluated.
type Variant int

const (
	Flat Variant = iota
	Gouraud
	Phong
)

var variantNames = [...]string{"flat", "gouraud", "phong"}

// Variants lists every variant in declaration order.
func Variants() []Variant {
	return []Variant{Flat, Gouraud, Phong}
}

func (v Variant) String() string {
	if v >= 0 && int(v) < len(variantNames) {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// Valid reports whether v is one of the declared variants.
func (v Variant) Valid() bool {
	return v >= Flat && v <= Phong
}

// ParseVariant parses a variant name, ignoring case.
func ParseVariant(s string) (Variant, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range variantNames {
		if n == name {
			return Variant(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}
