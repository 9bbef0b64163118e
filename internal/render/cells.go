//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"sparselife/internal/geom"
	"sparselife/internal/sim"
)

// maxAgeSteps is the survival age at which a cell's color stops changing.
const maxAgeSteps = 6

// CellPainter draws the sparse living set. Cells are colored by how many
// generations they have survived.
type CellPainter struct {
	pixel   *ebiten.Image
	cells   []geom.Point
	tracker *ageTracker
	palette []color.Color
}

// NewCellPainter allocates a painter.
func NewCellPainter() *CellPainter {
	px := ebiten.NewImage(1, 1)
	px.Fill(color.White)
	return &CellPainter{
		pixel:   px,
		tracker: newAgeTracker(),
		palette: agePalette(maxAgeSteps),
	}
}

// SetCells replaces the cell list to draw. Call whenever the change-set
// reports new cells.
func (cp *CellPainter) SetCells(cells []geom.Point) {
	cp.cells = cells
	cp.tracker.set(cells)
}

// Advance ages every visible cell by one generation. Call once per
// completed step, not on toggles or view changes.
func (cp *CellPainter) Advance() {
	cp.tracker.advance()
}

// Draw paints every on-screen cell as a filled square.
func (cp *CellPainter) Draw(dst *ebiten.Image, vp sim.Viewport, pan geom.Vec, scale float64) {
	side := vp.CellSidePixels(scale)
	if side <= 0 {
		return
	}
	w := float64(vp.W)
	h := float64(vp.H)

	for _, c := range cp.cells {
		center := vp.ScreenFromCell(c, pan, scale)
		x := center.X - side/2
		y := center.Y - side/2
		if x+side < 0 || y+side < 0 || x > w || y > h {
			continue
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(side, side)
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(colorForAge(cp.palette, cp.tracker.age(c)))
		dst.DrawImage(cp.pixel, op)
	}
}
