package geom

import "math"

// Point is an integer cell coordinate on the unbounded grid.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Vec is a 2D float64 vector used for screen, world and pan math.
type Vec struct {
	X, Y float64
}

// V is shorthand for Vec{x, y}.
func V(x, y float64) Vec { return Vec{X: x, Y: y} }

// Add returns v + o.
func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale returns v scaled uniformly by s.
func (v Vec) Scale(s float64) Vec { return Vec{X: v.X * s, Y: v.Y * s} }

// Mul returns the component-wise product of v and o.
func (v Vec) Mul(o Vec) Vec { return Vec{X: v.X * o.X, Y: v.Y * o.Y} }

// Div returns v divided uniformly by s.
func (v Vec) Div(s float64) Vec { return Vec{X: v.X / s, Y: v.Y / s} }

// Abs returns v with both components made non-negative.
func (v Vec) Abs() Vec { return Vec{X: math.Abs(v.X), Y: math.Abs(v.Y)} }

// Magnitude returns the length of v.
func (v Vec) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Floor returns the cell containing v, flooring both components.
func (v Vec) Floor() Point {
	return Point{X: int(math.Floor(v.X)), Y: int(math.Floor(v.Y))}
}
