//go:build !ebiten

package ui

import "sparselife/internal/sim"

// HUD is a placeholder in headless builds.
type HUD struct{}

// NewHUD returns a no-op HUD.
func NewHUD() *HUD { return &HUD{} }

// Draw is a no-op placeholder.
func (h *HUD) Draw(any, *sim.Simulation) {}
