//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"sparselife/internal/sim"
)

const (
	graphWidth  = 160
	graphHeight = 48
	margin      = 8
)

var (
	hudText     = color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	graphBar    = color.RGBA{R: 0x44, G: 0xaa, B: 0x66, A: 0xff}
	graphMarker = color.RGBA{R: 0xcc, G: 0x55, B: 0x55, A: 0xff}
	graphFrame  = color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
)

// HUD paints simulation stats and a population sparkline over the board.
type HUD struct {
	pixel *ebiten.Image
}

// NewHUD constructs the stats overlay.
func NewHUD() *HUD {
	px := ebiten.NewImage(1, 1)
	px.Fill(color.White)
	return &HUD{pixel: px}
}

// Draw renders the stats line and the population graph.
func (h *HUD) Draw(screen *ebiten.Image, s *sim.Simulation) {
	state := "paused"
	if s.IsPlaying() {
		state = "playing"
	}
	line := fmt.Sprintf("gen %d   pop %d   interval %v   %s",
		s.StepCount(), s.LivingCount(), s.Interval().Round(time.Millisecond), state)
	text.Draw(screen, line, basicfont.Face7x13, margin, margin+13, hudText)

	h.drawGraph(screen, s)
}

// drawGraph paints the recent population history in the top-right corner,
// with a marker at every generation where the player toggled a cell.
func (h *HUD) drawGraph(screen *ebiten.Image, s *sim.Simulation) {
	history := s.PopulationHistory()
	if len(history) < 2 {
		return
	}
	window := history
	first := 0
	if len(window) > graphWidth {
		first = len(window) - graphWidth
		window = window[first:]
	}

	peak := 1
	for _, n := range window {
		if n > peak {
			peak = n
		}
	}

	x0 := screen.Bounds().Dx() - graphWidth - margin
	y0 := margin
	h.fill(screen, x0-1, y0-1, graphWidth+2, graphHeight+2, graphFrame)

	toggled := make(map[int]bool, len(s.ToggleRecord()))
	for _, step := range s.ToggleRecord() {
		toggled[int(step)] = true
	}

	for i, n := range window {
		barH := n * graphHeight / peak
		c := graphBar
		if toggled[first+i] {
			c = graphMarker
			if barH == 0 {
				barH = 1
			}
		}
		if barH == 0 {
			continue
		}
		h.fill(screen, x0+i, y0+graphHeight-barH, 1, barH, c)
	}
}

func (h *HUD) fill(dst *ebiten.Image, x, y, w, ht int, c color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), float64(ht))
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(h.pixel, op)
}
