package shading

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/gleam/pkg/math3d"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want math3d.Vec3
	}{
		{"#FF8000", math3d.V3(1, 0.502, 0)},
		{"#000000", math3d.V3(0, 0, 0)},
		{"ffffff", math3d.V3(1, 1, 1)},
		{" #003333 ", math3d.V3(0, 0.2, 0.2)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if err != nil {
				t.Fatalf("ParseHexColor(%q): %v", tt.in, err)
			}
			if !got.ApproxEqual(tt.want, 1.0/255) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseHexColorRejects(t *testing.T) {
	for _, in := range []string{"", "#fff", "#GG0000", "#12345678", "#-10000"} {
		if _, err := ParseHexColor(in); !errors.Is(err, ErrBadColor) {
			t.Errorf("ParseHexColor(%q) err = %v, want ErrBadColor", in, err)
		}
	}
}

func TestHexColorRoundTrip(t *testing.T) {
	c, err := ParseHexColor("#1a2b3c")
	if err != nil {
		t.Fatal(err)
	}
	if got := HexColor(c); got != "#1a2b3c" {
		t.Errorf("HexColor = %q", got)
	}
	if got := HexColor(math3d.V3(2, -1, 0.5)); got != "#ff0080" {
		t.Errorf("HexColor clamps: %q", got)
	}
}

func TestToRGBAClamps(t *testing.T) {
	c := ToRGBA(math3d.V3(1.7, -0.3, 0.5))
	if c.R != 255 || c.G != 0 || c.B != 128 || c.A != 255 {
		t.Errorf("ToRGBA = %v", c)
	}
	back := FromRGBA(c)
	if math.Abs(back.Z-0.502) > 1e-3 {
		t.Errorf("FromRGBA = %v", back)
	}
}
