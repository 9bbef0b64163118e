package life

import "sparselife/internal/geom"

// Set is the sparse living set: the coordinates of every live cell.
// The grid is unbounded; anything absent from the set is dead.
type Set map[geom.Point]struct{}

// NewSet returns a living set containing the given cells.
func NewSet(cells ...geom.Point) Set {
	s := make(Set, len(cells))
	for _, c := range cells {
		s[c] = struct{}{}
	}
	return s
}

// Contains reports whether the cell is alive.
func (s Set) Contains(p geom.Point) bool {
	_, ok := s[p]
	return ok
}

// Toggle flips one cell and reports whether it is now alive.
func (s Set) Toggle(p geom.Point) bool {
	if s.Contains(p) {
		delete(s, p)
		return false
	}
	s[p] = struct{}{}
	return true
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for p := range s {
		c[p] = struct{}{}
	}
	return c
}

// Count returns the number of living cells.
func (s Set) Count() int { return len(s) }

// adjacent returns the 8 neighbors of a cell, diagonals included.
func adjacent(p geom.Point) [8]geom.Point {
	return [8]geom.Point{
		{X: p.X - 1, Y: p.Y - 1},
		{X: p.X - 1, Y: p.Y},
		{X: p.X - 1, Y: p.Y + 1},
		{X: p.X, Y: p.Y - 1},
		{X: p.X, Y: p.Y + 1},
		{X: p.X + 1, Y: p.Y - 1},
		{X: p.X + 1, Y: p.Y},
		{X: p.X + 1, Y: p.Y + 1},
	}
}

// Step computes the next generation. It never mutates prev.
//
// Candidates are exactly the cells adjacent to at least one living cell;
// cells with zero living neighbors can never become or stay alive, so they
// are never visited. The whole pass is O(n) in the number of living cells.
func Step(prev Set) Set {
	counts := make(map[geom.Point]int, len(prev)*4)
	for p := range prev {
		for _, n := range adjacent(p) {
			counts[n]++
		}
	}

	next := make(Set, len(prev))
	for p, count := range counts {
		if count == 3 || (count == 2 && prev.Contains(p)) {
			next[p] = struct{}{}
		}
	}
	return next
}
