package render

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/taigrr/gleam/pkg/math3d"
	"github.com/taigrr/gleam/pkg/shading"
)

// MaxTextureSize bounds the longer side of loaded textures. Larger images
// are downscaled on load.
const MaxTextureSize = 1024

// WrapMode determines how texture coordinates outside [0,1] are handled.
type WrapMode int

const (
	WrapRepeat WrapMode = iota
	WrapClamp
)

// FilterMode selects the sampling filter.
type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterBilinear
)

// Texture is an RGBA image sampled by UV. It satisfies shading.Sampler.
type Texture struct {
	Width      int
	Height     int
	Pixels     []color.RGBA
	WrapU      WrapMode
	WrapV      WrapMode
	FilterMode FilterMode
}

var _ shading.Sampler = (*Texture)(nil)

// NewTexture creates a blank texture.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// LoadTexture decodes an image file (PNG, JPEG, BMP, TIFF or WebP).
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage converts img, downscaling it to MaxTextureSize if needed.
func TextureFromImage(img image.Image) *Texture {
	b := img.Bounds()
	w, h := fitWithin(b.Dx(), b.Dy(), MaxTextureSize)

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Src)
	} else {
		xdraw.BiLinear.Scale(rgba, rgba.Bounds(), img, b, xdraw.Src, nil)
	}

	tex := NewTexture(w, h)
	for y := range h {
		for x := range w {
			tex.Pixels[y*w+x] = rgba.RGBAAt(x, y)
		}
	}
	return tex
}

func fitWithin(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}

// NewCheckerTexture creates a checkerboard of size x size texels with
// squares of check texels.
func NewCheckerTexture(size, check int, c1, c2 color.RGBA) *Texture {
	tex := NewTexture(size, size)
	for y := range size {
		for x := range size {
			c := c2
			if (x/check+y/check)%2 == 0 {
				c = c1
			}
			tex.SetPixel(x, y, c)
		}
	}
	return tex
}

// SetPixel sets a texel. Out-of-range writes are ignored.
func (t *Texture) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = c
}

// GetPixel returns a texel, or transparent black out of range.
func (t *Texture) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return color.RGBA{}
	}
	return t.Pixels[y*t.Width+x]
}

// Sample returns the texel at (u, v). V runs bottom to top.
func (t *Texture) Sample(u, v float64) color.RGBA {
	if t.Width == 0 || t.Height == 0 {
		return color.RGBA{}
	}
	u = wrapCoord(u, t.WrapU)
	v = 1 - wrapCoord(v, t.WrapV)

	if t.FilterMode == FilterBilinear {
		return t.sampleBilinear(u, v)
	}
	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)
	return t.GetPixel(x, y)
}

// SampleColor returns Sample as linear channels in [0,1].
func (t *Texture) SampleColor(u, v float64) math3d.Vec3 {
	return shading.FromRGBA(t.Sample(u, v))
}

func wrapCoord(c float64, mode WrapMode) float64 {
	if mode == WrapClamp {
		return math3d.Clamp(c, 0, 1)
	}
	return c - math.Floor(c)
}

func (t *Texture) sampleBilinear(u, v float64) color.RGBA {
	fx := u*float64(t.Width) - 0.5
	fy := v*float64(t.Height) - 0.5
	x0, y0 := int(math.Floor(fx)), int(math.Floor(fy))
	tx, ty := fx-float64(x0), fy-float64(y0)

	px := func(x, y int) color.RGBA {
		return t.GetPixel(wrapTexel(x, t.Width, t.WrapU), wrapTexel(y, t.Height, t.WrapV))
	}
	top := lerpColor(px(x0, y0), px(x0+1, y0), tx)
	bot := lerpColor(px(x0, y0+1), px(x0+1, y0+1), tx)
	return lerpColor(top, bot, ty)
}

func wrapTexel(x, size int, mode WrapMode) int {
	if mode == WrapClamp {
		return math3d.Clamp(x, 0, size-1)
	}
	x %= size
	if x < 0 {
		x += size
	}
	return x
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
