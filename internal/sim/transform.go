package sim

import "sparselife/internal/geom"

// Viewport is the window size in pixels.
type Viewport struct {
	W, H int
}

// normalized maps a pixel position into the square [0,1] coordinate system
// the pan offset lives in. Cells stay square under a non-square window: the
// x axis is shifted to the centered square region and stretched by the
// aspect ratio, then both axes are divided by the window size.
func (vp Viewport) normalized(pos geom.Vec) geom.Vec {
	w := float64(vp.W)
	h := float64(vp.H)
	aspect := w / h
	shift := (w - h) / 2
	return geom.V((pos.X-shift)*aspect/w, pos.Y/h)
}

// CellAt returns the cell under the given pixel position for a view defined
// by pan and scale.
func (vp Viewport) CellAt(pos, pan geom.Vec, scale float64) geom.Point {
	return vp.normalized(pos).Add(pan).Div(scale).Floor()
}

// ScreenFromCell returns the pixel position of the center of a cell. It is
// the inverse of CellAt up to floating-point tolerance: feeding the result
// back through CellAt recovers the same cell.
func (vp Viewport) ScreenFromCell(c geom.Point, pan geom.Vec, scale float64) geom.Vec {
	w := float64(vp.W)
	h := float64(vp.H)
	aspect := w / h
	shift := (w - h) / 2

	center := geom.V(
		float64(c.X)*scale+scale/2,
		float64(c.Y)*scale+scale/2,
	)
	norm := center.Sub(pan)
	return geom.V(norm.X*w/aspect+shift, norm.Y*h)
}

// CellSidePixels returns the on-screen side length of one cell. One unit of
// the normalized coordinate system spans the window height on both axes, so
// cells are scale*h pixels square.
func (vp Viewport) CellSidePixels(scale float64) float64 {
	return scale * float64(vp.H)
}
