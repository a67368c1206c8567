package transform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taigrr/gleam/pkg/math3d"
)

// ErrUnknownShearAxis is returned when parsing an axis name that is not x, y or z.
var ErrUnknownShearAxis = errors.New("unknown shear axis")

// ShearAxis selects the single coordinate axis that receives the shear displacement.
type ShearAxis int

const (
	ShearX ShearAxis = iota
	ShearY
	ShearZ
)

// Shear displaces coordinates along Axis by Factors applied to the two
// other coordinates, in ascending axis order.
type Shear struct {
	Factors [2]float64
	Axis    ShearAxis
}

// ShearMatrix builds a fresh shear matrix for s.
func ShearMatrix(s Shear) math3d.Mat4 {
	return math3d.Shear(int(s.Axis), s.Factors[0], s.Factors[1])
}

// ParseShearAxis parses "x", "y" or "z" (case-insensitive).
func ParseShearAxis(s string) (ShearAxis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return ShearX, nil
	case "y":
		return ShearY, nil
	case "z":
		return ShearZ, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShearAxis, s)
}

func (a ShearAxis) String() string {
	switch a {
	case ShearX:
		return "x"
	case ShearY:
		return "y"
	case ShearZ:
		return "z"
	}
	return fmt.Sprintf("ShearAxis(%d)", int(a))
}

// OneHot returns the axis as a one-hot vector.
func (a ShearAxis) OneHot() math3d.Vec3 {
	return math3d.Zero3().WithComponent(int(a), 1)
}
