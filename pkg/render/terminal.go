package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

const halfBlock = "▀"

// Draw blits the framebuffer into area of scr. Each cell's foreground is
// the upper pixel and its background the lower one.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		top, bot := row*2, row*2+1
		if top >= fb.Height {
			return
		}
		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			scr.SetCell(col, row, &uv.Cell{
				Content: halfBlock,
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.GetPixel(col, top)),
					Bg: cellColor(fb.GetPixel(col, bot)),
				},
			})
		}
	}
}

// cellColor maps transparent pixels to the terminal default.
func cellColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}
