package sim

import "sparselife/internal/geom"

// Event is a pointer or keyboard event delivered by the front end. The
// variants below mirror the window events the simulation reacts to; anything
// else the front end can keep to itself.
type Event interface {
	isEvent()
}

// Button identifies a mouse button.
type Button int

const (
	// ButtonLeft toggles a cell on a short click and pans on a drag.
	ButtonLeft Button = iota
	// ButtonMiddle requests a single step.
	ButtonMiddle
)

// Key identifies the keyboard controls the simulation understands.
type Key int

const (
	// KeyPlay toggles auto-play (space).
	KeyPlay Key = iota
	// KeyStep advances a single generation (tab).
	KeyStep
	// KeyClear wipes the board (c).
	KeyClear
	// KeySpeedUp shortens the step interval (arrow up).
	KeySpeedUp
	// KeySpeedDown lengthens the step interval (arrow down).
	KeySpeedDown
)

// CursorMoved reports the pointer position in window pixels.
type CursorMoved struct {
	Pos geom.Vec
}

// CursorLeft reports that the pointer left the window.
type CursorLeft struct{}

// MouseButton reports a button press or release.
type MouseButton struct {
	Button  Button
	Pressed bool
}

// Wheel reports scroll input. LinesY is in line units, PixelsY in pixels;
// a front end fills whichever its platform produces.
type Wheel struct {
	LinesY  float64
	PixelsY float64
}

// KeyPressed reports one of the mapped control keys going down.
type KeyPressed struct {
	Key Key
}

func (CursorMoved) isEvent() {}
func (CursorLeft) isEvent()  {}
func (MouseButton) isEvent() {}
func (Wheel) isEvent()       {}
func (KeyPressed) isEvent()  {}
