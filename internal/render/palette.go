package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// agePalette builds an n-step hue ramp from magenta toward blue, one entry
// per generation of survival.
func agePalette(n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		h := 330 - 270*float64(i)/float64(n-1)
		out[i] = colorful.Hsv(h, 0.85, 0.95)
	}
	return out
}

// colorForAge maps a cell age onto the palette, clamping old cells to the
// final entry.
func colorForAge(pal []color.Color, age int) color.Color {
	if age >= len(pal) {
		age = len(pal) - 1
	}
	if age < 0 {
		age = 0
	}
	return pal[age]
}
