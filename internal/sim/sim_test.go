package sim

import (
	"testing"
	"time"

	"sparselife/internal/geom"
	"sparselife/internal/life"
	"sparselife/internal/save"
	"sparselife/internal/worker"
)

// manualWorker lets tests decide when a computation finishes.
type manualWorker struct {
	inflight life.Set
	has      bool
	result   life.Set
	ready    bool
	sends    int
}

func (m *manualWorker) Send(s life.Set) (bool, error) {
	if m.Computing() {
		return false, nil
	}
	m.inflight = s
	m.has = true
	m.sends++
	return true, nil
}

func (m *manualWorker) Results() (life.Set, bool, error) {
	if m.ready {
		m.ready = false
		r := m.result
		m.result = nil
		return r, true, nil
	}
	return nil, false, nil
}

func (m *manualWorker) Computing() bool { return m.has || m.ready }

func (m *manualWorker) Close() {}

func (m *manualWorker) finish(r life.Set) {
	m.result = r
	m.ready = true
	m.has = false
}

// failWorker reports a dead compute context on every call.
type failWorker struct{}

func (failWorker) Send(life.Set) (bool, error)      { return false, worker.ErrDisconnected }
func (failWorker) Results() (life.Set, bool, error) { return nil, false, worker.ErrDisconnected }
func (failWorker) Computing() bool                  { return false }
func (failWorker) Close()                           {}

func testSim(w worker.Worker[life.Set, life.Set]) (*Simulation, *time.Time) {
	s := newSimulation(Viewport{W: 800, H: 600}, w)
	clock := time.Unix(1000, 0)
	s.now = func() time.Time { return clock }
	return s, &clock
}

func TestToggleAppliesImmediatelyWhenIdle(t *testing.T) {
	s, _ := testSim(&manualWorker{})
	p := geom.Pt(3, -2)

	s.ToggleCell(p)
	if !s.cells.Contains(p) || s.LivingCount() != 1 {
		t.Fatalf("toggle did not apply: cells=%v count=%d", s.cells, s.LivingCount())
	}
	if len(s.ToggleRecord()) != 1 || s.ToggleRecord()[0] != 0 {
		t.Fatalf("toggle record = %v, expected [0]", s.ToggleRecord())
	}

	s.ToggleCell(p)
	if s.cells.Contains(p) || s.LivingCount() != 0 {
		t.Fatalf("second toggle did not revert: cells=%v count=%d", s.cells, s.LivingCount())
	}
}

func TestDeferredActionOrdering(t *testing.T) {
	mw := &manualWorker{}
	s, _ := testSim(mw)
	a := geom.Pt(1, 1)
	b := geom.Pt(2, 2)

	s.Step()
	if !mw.Computing() {
		t.Fatalf("Step did not hand work to the worker")
	}

	// All three race the outstanding computation and must queue.
	s.ToggleCell(a)
	s.Clear()
	s.ToggleCell(b)
	if s.LivingCount() != 0 {
		t.Fatalf("queued actions applied early: count=%d", s.LivingCount())
	}

	mw.finish(life.NewSet())
	s.Update()

	// Clear erases toggle A; toggle B lands on the cleared board.
	if s.LivingCount() != 1 || !s.cells.Contains(b) || s.cells.Contains(a) {
		t.Fatalf("after drain cells=%v, expected exactly {%v}", s.cells, b)
	}
}

func TestDeferredLoadThenToggle(t *testing.T) {
	mw := &manualWorker{}
	s, _ := testSim(mw)
	x := geom.Pt(5, 5)
	y := geom.Pt(6, 5)

	s.Step()
	s.RequestLoad(save.Snapshot{
		Cells:  []geom.Point{x},
		Scale:  DefaultScale,
		Offset: geom.V(0, 0),
		Name:   "queued",
	})
	s.ToggleCell(y)

	mw.finish(life.NewSet())
	s.Update()

	// The toggle applies to the just-loaded state, not before it.
	if s.LivingCount() != 2 || !s.cells.Contains(x) || !s.cells.Contains(y) {
		t.Fatalf("after drain cells=%v, expected {%v %v}", s.cells, x, y)
	}
}

func TestPlayingStepsAtInterval(t *testing.T) {
	mw := &manualWorker{}
	s, clock := testSim(mw)

	s.TogglePlaying()
	if !s.IsPlaying() {
		t.Fatalf("TogglePlaying did not start playing")
	}
	if !mw.has {
		t.Fatalf("starting auto-play did not step immediately")
	}

	mw.finish(life.NewSet())
	s.Update()
	if s.StepCount() != 1 {
		t.Fatalf("step count = %d after first result, expected 1", s.StepCount())
	}
	if got := s.PopulationHistory(); len(got) != 2 || got[1] != 0 {
		t.Fatalf("history = %v, expected [0 0]", got)
	}

	// Not due yet.
	*clock = clock.Add(s.Interval() / 2)
	s.Update()
	if mw.has {
		t.Fatalf("stepped before the interval elapsed")
	}

	*clock = clock.Add(s.Interval())
	s.Update()
	if !mw.has {
		t.Fatalf("did not step after the interval elapsed")
	}

	s.TogglePlaying()
	if s.IsPlaying() {
		t.Fatalf("TogglePlaying did not stop playing")
	}
}

func TestStepIsNoOpWhileComputing(t *testing.T) {
	mw := &manualWorker{}
	s, _ := testSim(mw)

	s.Step()
	s.Step()
	if mw.sends != 1 {
		t.Fatalf("worker received %d sends, expected 1", mw.sends)
	}
	if !mw.Computing() {
		t.Fatalf("worker lost the in-flight computation")
	}
}

func TestClickTogglesCell(t *testing.T) {
	s, clock := testSim(&manualWorker{})

	s.HandleInput(CursorMoved{Pos: geom.V(400, 300)})
	s.HandleInput(MouseButton{Button: ButtonLeft, Pressed: true})
	*clock = clock.Add(50 * time.Millisecond)
	s.HandleInput(MouseButton{Button: ButtonLeft, Pressed: false})

	// normalized(400,300) = (0.5, 0.5); divided by scale 0.1 that is cell (5,5).
	if !s.cells.Contains(geom.Pt(5, 5)) {
		t.Fatalf("click did not toggle cell (5,5): %v", s.cells)
	}
}

func TestSlowPressDoesNotToggle(t *testing.T) {
	s, clock := testSim(&manualWorker{})

	s.HandleInput(CursorMoved{Pos: geom.V(400, 300)})
	s.HandleInput(MouseButton{Button: ButtonLeft, Pressed: true})
	*clock = clock.Add(400 * time.Millisecond)
	s.HandleInput(MouseButton{Button: ButtonLeft, Pressed: false})

	if s.LivingCount() != 0 {
		t.Fatalf("slow press toggled a cell: %v", s.cells)
	}
}

func TestDragPansInsteadOfToggling(t *testing.T) {
	s, clock := testSim(&manualWorker{})

	s.HandleInput(CursorMoved{Pos: geom.V(400, 300)})
	s.HandleInput(MouseButton{Button: ButtonLeft, Pressed: true})
	*clock = clock.Add(50 * time.Millisecond)
	s.HandleInput(CursorMoved{Pos: geom.V(450, 300)})
	s.HandleInput(MouseButton{Button: ButtonLeft, Pressed: false})

	if s.LivingCount() != 0 {
		t.Fatalf("drag toggled a cell: %v", s.cells)
	}
	if s.Pan() == (geom.Vec{}) {
		t.Fatalf("drag did not pan")
	}
}

func TestZoomKeepsCursorPointFixed(t *testing.T) {
	s, _ := testSim(&manualWorker{})
	cursor := geom.V(123, 456)
	s.HandleInput(CursorMoved{Pos: cursor})

	worldBefore := s.viewport.normalized(cursor).Add(s.Pan()).Div(s.Scale())
	s.HandleInput(Wheel{LinesY: 3})
	worldAfter := s.viewport.normalized(cursor).Add(s.Pan()).Div(s.Scale())

	if d := worldBefore.Sub(worldAfter).Magnitude(); d > 1e-9 {
		t.Fatalf("cursor world point moved by %v during zoom", d)
	}
}

func TestZoomClampsScale(t *testing.T) {
	s, _ := testSim(&manualWorker{})
	for i := 0; i < 200; i++ {
		s.HandleInput(Wheel{LinesY: -50})
	}
	if s.Scale() < scaleMin {
		t.Fatalf("scale %v below minimum", s.Scale())
	}
	for i := 0; i < 200; i++ {
		s.HandleInput(Wheel{LinesY: 50})
	}
	if s.Scale() > scaleMax {
		t.Fatalf("scale %v above maximum", s.Scale())
	}
}

func TestSpeedKeysScaleInterval(t *testing.T) {
	s, _ := testSim(&manualWorker{})
	base := s.Interval()

	s.HandleInput(KeyPressed{Key: KeySpeedUp})
	if s.Interval() >= base {
		t.Fatalf("speed up did not shorten the interval: %v", s.Interval())
	}
	s.HandleInput(KeyPressed{Key: KeySpeedDown})
	s.HandleInput(KeyPressed{Key: KeySpeedDown})
	if s.Interval() <= base {
		t.Fatalf("speed down did not lengthen the interval: %v", s.Interval())
	}
}

func TestClearResetsCounters(t *testing.T) {
	mw := &manualWorker{}
	s, _ := testSim(mw)

	s.ToggleCell(geom.Pt(0, 0))
	s.ToggleCell(geom.Pt(1, 0))
	s.Step()
	mw.finish(life.NewSet(geom.Pt(0, 0)))
	s.Update()

	s.Clear()
	if s.LivingCount() != 0 || s.StepCount() != 0 {
		t.Fatalf("clear left count=%d steps=%d", s.LivingCount(), s.StepCount())
	}
	if got := s.PopulationHistory(); len(got) != 1 || got[0] != 0 {
		t.Fatalf("history after clear = %v, expected [0]", got)
	}
	if len(s.ToggleRecord()) != 0 {
		t.Fatalf("toggle record after clear = %v", s.ToggleRecord())
	}
}

func TestSnapshotLoadRoundTrip(t *testing.T) {
	s, _ := testSim(&manualWorker{})
	s.ToggleCell(geom.Pt(0, 0))
	s.ToggleCell(geom.Pt(4, -1))
	snap := s.Snapshot("roundtrip")

	other, _ := testSim(&manualWorker{})
	other.RequestLoad(snap)

	if other.LivingCount() != 2 || !other.cells.Contains(geom.Pt(4, -1)) {
		t.Fatalf("loaded cells = %v, expected the snapshot's 2 cells", other.cells)
	}
	if other.Scale() != snap.Scale || other.Pan() != snap.Offset {
		t.Fatalf("loaded view = (%v, %v), expected (%v, %v)",
			other.Scale(), other.Pan(), snap.Scale, snap.Offset)
	}
}

func TestDisconnectedWorkerStallsSimulation(t *testing.T) {
	s, _ := testSim(failWorker{})

	s.Step()
	if !s.stalled {
		t.Fatalf("disconnected send did not stall the simulation")
	}
	// Further steps and updates are quiet no-ops.
	s.Step()
	s.Update()
	if s.StepCount() != 0 {
		t.Fatalf("stalled simulation advanced: steps=%d", s.StepCount())
	}

	// A dead worker can never step, so auto-play must not report playing.
	s.TogglePlaying()
	if s.IsPlaying() {
		t.Fatalf("stalled simulation entered playing state")
	}
}

func TestSynchronousSimulationSteps(t *testing.T) {
	s := NewSynchronous(Viewport{W: 800, H: 600})
	defer s.Close()

	// Blinker: one step flips the horizontal line vertical.
	for _, p := range []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(2, 0)} {
		s.ToggleCell(p)
	}
	s.Step()
	ch := s.Update()

	if !ch.CellsChanged || s.StepCount() != 1 {
		t.Fatalf("synchronous step did not land: changed=%v steps=%d", ch.CellsChanged, s.StepCount())
	}
	want := life.NewSet(geom.Pt(1, -1), geom.Pt(1, 0), geom.Pt(1, 1))
	if s.LivingCount() != 3 {
		t.Fatalf("living count = %d, expected 3", s.LivingCount())
	}
	for p := range want {
		if !s.cells.Contains(p) {
			t.Fatalf("cell %v missing after blinker step: %v", p, s.cells)
		}
	}
}
