// Package sim owns the game state: the sparse living set, play/pause
// timing, the background step computation and the queue of inputs deferred
// while a step is in flight.
package sim

import (
	"log"
	"time"

	"sparselife/internal/geom"
	"sparselife/internal/life"
	"sparselife/internal/save"
	"sparselife/internal/worker"
)

const (
	// DefaultInterval is the pause between generations in auto-play mode.
	DefaultInterval = 300 * time.Millisecond
	// DefaultScale fits ten cells across the window height.
	DefaultScale = 0.1

	// intervalFactor multiplies or divides the interval on speed changes.
	intervalFactor = 1.2

	scaleMin = 0.005
	scaleMax = 1.0

	// A left press released within clickMaxDelay that traveled less than
	// clickMaxTravel (in normalized units) toggles a cell; anything longer
	// or farther is a pan.
	clickMaxDelay  = 150 * time.Millisecond
	clickMaxTravel = 0.010

	zoomRate = 0.007
)

// Changes is the per-frame diff handed to the renderer. Each part is only
// flagged when it actually changed, so buffers are touched only when needed.
type Changes struct {
	Cells        []geom.Point
	CellsChanged bool

	Scale        float64
	ScaleChanged bool

	Offset        geom.Vec
	OffsetChanged bool
}

// Deferred user actions, applied in arrival order once the outstanding
// computation lands.
type action interface {
	isAction()
}

type clearAction struct{}

type toggleAction struct {
	cell geom.Point
}

type loadAction struct {
	snap save.Snapshot
}

func (clearAction) isAction()  {}
func (toggleAction) isAction() {}
func (loadAction) isAction()   {}

// Simulation is the interactive state machine. It is owned by the frame
// loop goroutine; the only concurrency is the step worker, which receives
// and returns the living set by value.
type Simulation struct {
	cells    life.Set
	pan      geom.Vec
	scale    float64
	viewport Viewport

	loop     loopState
	interval time.Duration

	w       worker.Worker[life.Set, life.Set]
	queue   []action
	stalled bool

	livingCount int
	stepCount   uint64
	// population history, one entry per completed generation; index is the
	// step number.
	history []int
	// step numbers at which the player toggled a cell by hand.
	toggleRecord []uint64

	mouse      geom.Vec
	mouseKnown bool

	leftDownAt     time.Time
	leftDown       bool
	movedSinceDown geom.Vec

	changes Changes

	now func() time.Time
}

// New returns a simulation backed by a goroutine step worker.
func New(vp Viewport) *Simulation {
	return newSimulation(vp, worker.New(life.Step))
}

// NewSynchronous returns a simulation that computes steps in place, for
// environments without a spare execution context. The send/results contract
// is identical.
func NewSynchronous(vp Viewport) *Simulation {
	return newSimulation(vp, worker.NewSynchronous(life.Step))
}

func newSimulation(vp Viewport, w worker.Worker[life.Set, life.Set]) *Simulation {
	return &Simulation{
		cells:    life.NewSet(),
		scale:    DefaultScale,
		viewport: vp,
		interval: DefaultInterval,
		w:        w,
		history:  []int{0},
		now:      time.Now,
	}
}

// Close tears down the step worker. The simulation must not be stepped
// afterwards.
func (s *Simulation) Close() { s.w.Close() }

// SetViewport updates the window size used by the coordinate transforms.
func (s *Simulation) SetViewport(vp Viewport) { s.viewport = vp }

// Viewport returns the current window size.
func (s *Simulation) Viewport() Viewport { return s.viewport }

// IsPlaying reports whether auto-play is on.
func (s *Simulation) IsPlaying() bool { return s.loop.playing }

// LivingCount returns the current number of living cells.
func (s *Simulation) LivingCount() int { return s.livingCount }

// StepCount returns the number of completed generations.
func (s *Simulation) StepCount() uint64 { return s.stepCount }

// Interval returns the auto-play step interval.
func (s *Simulation) Interval() time.Duration { return s.interval }

// SetInterval changes the auto-play step interval.
func (s *Simulation) SetInterval(d time.Duration) { s.interval = d }

// PopulationHistory returns the per-generation living-cell counts. The
// slice is owned by the simulation; callers must not mutate it.
func (s *Simulation) PopulationHistory() []int { return s.history }

// ToggleRecord returns the step numbers at which a manual toggle occurred.
func (s *Simulation) ToggleRecord() []uint64 { return s.toggleRecord }

// Scale returns the current grid scale.
func (s *Simulation) Scale() float64 { return s.scale }

// Pan returns the current pan offset.
func (s *Simulation) Pan() geom.Vec { return s.pan }

// TogglePlaying flips auto-play. Starting steps once immediately. A
// simulation whose worker has disconnected can never step again, so it
// refuses to start playing.
func (s *Simulation) TogglePlaying() {
	if s.loop.playing {
		s.loop.stop()
		return
	}
	if s.stalled {
		return
	}
	s.Step()
	s.loop.start(s.now())
}

// Step hands the living set to the worker for one generation. It is a no-op
// while a computation is outstanding; back-pressure, not an error.
func (s *Simulation) Step() {
	if s.stalled || s.w.Computing() {
		return
	}
	if _, err := s.w.Send(s.cells.Clone()); err != nil {
		log.Printf("step worker disconnected, simulation stalled: %v", err)
		s.stalled = true
	}
}

// Clear wipes the board, or defers the wipe if a step is in flight.
func (s *Simulation) Clear() {
	if s.w.Computing() {
		s.queue = append(s.queue, clearAction{})
		return
	}
	s.clearNow()
}

// ToggleCell flips one cell, or defers the flip if a step is in flight.
func (s *Simulation) ToggleCell(cell geom.Point) {
	if s.w.Computing() {
		s.queue = append(s.queue, toggleAction{cell: cell})
		return
	}
	s.toggleNow(cell)
}

// RequestLoad replaces the whole state with a snapshot, or defers the load
// if a step is in flight. A deferred load is never dropped: it is applied in
// arrival order with every other queued action.
func (s *Simulation) RequestLoad(snap save.Snapshot) {
	if s.w.Computing() {
		s.queue = append(s.queue, loadAction{snap: snap})
		return
	}
	s.loadNow(snap)
}

// Snapshot captures the current state under the given name.
func (s *Simulation) Snapshot(name string) save.Snapshot {
	cells := make([]geom.Point, 0, len(s.cells))
	for p := range s.cells {
		cells = append(cells, p)
	}
	return save.Snapshot{
		Cells:   cells,
		Scale:   s.scale,
		Offset:  s.pan,
		Created: s.now(),
		Name:    name,
	}
}

// Update runs once per frame: it requests a step when auto-play is due,
// applies a finished computation if one landed, drains the deferred queue
// and returns the accumulated change-set.
func (s *Simulation) Update() Changes {
	if s.loop.update(s.now(), s.interval) && !s.w.Computing() {
		s.Step()
	}

	res, ok, err := s.w.Results()
	switch {
	case err != nil:
		if !s.stalled {
			log.Printf("step worker disconnected, simulation stalled: %v", err)
			s.stalled = true
		}
	case ok:
		s.cells = res
		s.livingCount = s.cells.Count()
		s.stepCount++
		s.history = append(s.history, s.livingCount)
		s.changes.Cells = s.cellList()
		s.changes.CellsChanged = true
		s.drainQueue()
	}

	out := s.changes
	s.changes = Changes{}
	return out
}

// HandleInput consumes one window event. Effects surface through the next
// Update's change-set.
func (s *Simulation) HandleInput(ev Event) {
	switch ev := ev.(type) {
	case CursorLeft:
		s.mouseKnown = false

	case Wheel:
		s.handleScroll(ev)

	case CursorMoved:
		if s.leftDown && s.mouseKnown {
			s.dragBy(ev.Pos)
		}
		s.mouse = ev.Pos
		s.mouseKnown = true

	case MouseButton:
		s.handleButton(ev)

	case KeyPressed:
		switch ev.Key {
		case KeyPlay:
			s.TogglePlaying()
		case KeyStep:
			s.Step()
		case KeyClear:
			s.Clear()
		case KeySpeedUp:
			s.interval = time.Duration(float64(s.interval) / intervalFactor)
		case KeySpeedDown:
			s.interval = time.Duration(float64(s.interval) * intervalFactor)
		}
	}
}

func (s *Simulation) handleButton(ev MouseButton) {
	if ev.Button == ButtonMiddle {
		if ev.Pressed {
			s.Step()
		}
		return
	}
	if ev.Button != ButtonLeft {
		return
	}
	if ev.Pressed {
		s.leftDownAt = s.now()
		s.leftDown = true
		s.movedSinceDown = geom.Vec{}
		return
	}
	// Release: only a short, nearly motionless press counts as a click.
	if s.leftDown && s.mouseKnown &&
		s.now().Sub(s.leftDownAt) < clickMaxDelay &&
		s.movedSinceDown.Magnitude() < clickMaxTravel {
		s.ToggleCell(s.viewport.CellAt(s.mouse, s.pan, s.scale))
	}
	s.leftDown = false
	s.movedSinceDown = geom.Vec{}
}

// dragBy pans the view by the pointer movement since the last event,
// aspect-corrected so dragging tracks the grid exactly.
func (s *Simulation) dragBy(pos geom.Vec) {
	w := float64(s.viewport.W)
	h := float64(s.viewport.H)
	ratio := w / h

	diff := pos.Sub(s.mouse).Mul(geom.V(1/w, 1/h)).Mul(geom.V(ratio, 1))
	s.pan = s.pan.Sub(diff)
	s.movedSinceDown = s.movedSinceDown.Add(diff.Abs())

	s.changes.Offset = s.pan
	s.changes.OffsetChanged = true
}

// handleScroll zooms multiplicatively around the cursor: the pan offset is
// corrected so the world point under the cursor stays put across the scale
// change.
func (s *Simulation) handleScroll(ev Wheel) {
	delta := ev.LinesY*12 + ev.PixelsY*3
	if delta == 0 {
		return
	}

	prev := s.scale
	scale := s.scale * (1 + zoomRate*delta)
	if scale < scaleMin {
		scale = scaleMin
	}
	if scale > scaleMax {
		scale = scaleMax
	}
	s.scale = scale

	if s.mouseKnown {
		// The cursor's world point p satisfies p = (norm + pan) / scale.
		// Keeping p fixed across the scale change gives
		// pan' = pan + (norm + pan) * (scale'/scale - 1).
		center := s.viewport.normalized(s.mouse).Add(s.pan)
		s.pan = s.pan.Add(center.Scale(s.scale/prev - 1))
		s.changes.Offset = s.pan
		s.changes.OffsetChanged = true
	}

	s.changes.Scale = s.scale
	s.changes.ScaleChanged = true
	s.changes.Cells = s.cellList()
	s.changes.CellsChanged = true
}

func (s *Simulation) drainQueue() {
	for len(s.queue) > 0 {
		a := s.queue[0]
		s.queue = s.queue[1:]
		switch a := a.(type) {
		case clearAction:
			s.clearNow()
		case toggleAction:
			s.toggleNow(a.cell)
		case loadAction:
			s.loadNow(a.snap)
		}
	}
}

func (s *Simulation) clearNow() {
	s.cells = life.NewSet()
	s.livingCount = 0
	s.stepCount = 0
	s.history = []int{0}
	s.toggleRecord = nil

	s.changes.Cells = nil
	s.changes.CellsChanged = true
}

func (s *Simulation) toggleNow(cell geom.Point) {
	if s.cells.Toggle(cell) {
		s.livingCount++
	} else {
		s.livingCount--
	}
	s.toggleRecord = append(s.toggleRecord, s.stepCount)

	s.changes.Cells = s.cellList()
	s.changes.CellsChanged = true
}

func (s *Simulation) loadNow(snap save.Snapshot) {
	s.clearNow()
	s.cells = snap.LivingSet()
	s.livingCount = s.cells.Count()
	s.pan = snap.Offset
	s.scale = snap.Scale

	s.changes.Cells = s.cellList()
	s.changes.CellsChanged = true
	s.changes.Scale = s.scale
	s.changes.ScaleChanged = true
	s.changes.Offset = s.pan
	s.changes.OffsetChanged = true
}

func (s *Simulation) cellList() []geom.Point {
	out := make([]geom.Point, 0, len(s.cells))
	for p := range s.cells {
		out = append(out, p)
	}
	return out
}
