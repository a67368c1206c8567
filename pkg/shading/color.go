package shading

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/taigrr/gleam/pkg/math3d"
)

// ErrBadColor is returned for strings that are not #RRGGBB hex colors.
var ErrBadColor = errors.New("invalid hex color")

// ParseHexColor parses "#RRGGBB" (the '#' is optional) into channels in
// [0,1], dividing each byte by 255.
func ParseHexColor(s string) (math3d.Vec3, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return math3d.Vec3{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	var ch [3]float64
	for i := range ch {
		b, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		ch[i] = float64(b) / 255
	}
	return math3d.V3(ch[0], ch[1], ch[2]), nil
}

// HexColor formats c, clamped to [0,1], as "#rrggbb".
func HexColor(c math3d.Vec3) string {
	rgba := ToRGBA(c)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// ToRGBA clamps c to [0,1] and converts it to an opaque 8-bit color.
func ToRGBA(c math3d.Vec3) color.RGBA {
	c = math3d.Clamp01(c)
	return color.RGBA{
		R: uint8(math.Round(c.X * 255)),
		G: uint8(math.Round(c.Y * 255)),
		B: uint8(math.Round(c.Z * 255)),
		A: 255,
	}
}

// FromRGBA converts an 8-bit color to channels in [0,1], ignoring alpha.
func FromRGBA(c color.RGBA) math3d.Vec3 {
	return math3d.V3(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
}
