package render

import "sparselife/internal/geom"

// ageTracker remembers how many generations each visible cell has survived.
// It is presentation state only; the simulation never sees it.
type ageTracker struct {
	ages map[geom.Point]int
}

func newAgeTracker() *ageTracker {
	return &ageTracker{ages: make(map[geom.Point]int)}
}

// set replaces the tracked cell list. Persisting cells keep their age, new
// cells start at zero, dead cells are forgotten.
func (a *ageTracker) set(cells []geom.Point) {
	next := make(map[geom.Point]int, len(cells))
	for _, c := range cells {
		next[c] = a.ages[c]
	}
	a.ages = next
}

// advance increments every tracked age by one generation.
func (a *ageTracker) advance() {
	for c := range a.ages {
		a.ages[c]++
	}
}

func (a *ageTracker) age(c geom.Point) int {
	return a.ages[c]
}
