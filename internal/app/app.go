//go:build ebiten

package app

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"sparselife/internal/geom"
	"sparselife/internal/render"
	"sparselife/internal/save"
	"sparselife/internal/sim"
	"sparselife/internal/ui"
)

// Game adapts the simulation to the ebiten.Game interface: it translates
// polled input into simulation events, applies the per-frame change-set to
// the painter and draws the board and HUD.
type Game struct {
	sim     *sim.Simulation
	painter *render.CellPainter
	hud     *ui.HUD
	store   *save.Store

	scale  float64
	pan    geom.Vec
	cursor geom.Vec

	lastStep uint64
}

// New constructs a Game around the provided simulation and save store.
func New(s *sim.Simulation, store *save.Store) *Game {
	return &Game{
		sim:     s,
		painter: render.NewCellPainter(),
		hud:     ui.NewHUD(),
		store:   store,
		scale:   s.Scale(),
		pan:     s.Pan(),
	}
}

// Update handles per-frame input translation and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.forwardInput()

	ch := g.sim.Update()
	if ch.ScaleChanged {
		g.scale = ch.Scale
	}
	if ch.OffsetChanged {
		g.pan = ch.Offset
	}
	if ch.CellsChanged {
		g.painter.SetCells(ch.Cells)
	}
	if n := g.sim.StepCount(); n != g.lastStep {
		g.painter.Advance()
		g.lastStep = n
	}
	return nil
}

func (g *Game) forwardInput() {
	x, y := ebiten.CursorPosition()
	pos := geom.V(float64(x), float64(y))
	if pos != g.cursor {
		g.cursor = pos
		g.sim.HandleInput(sim.CursorMoved{Pos: pos})
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		g.sim.HandleInput(sim.Wheel{LinesY: wy})
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.sim.HandleInput(sim.MouseButton{Button: sim.ButtonLeft, Pressed: true})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.sim.HandleInput(sim.MouseButton{Button: sim.ButtonLeft})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		g.sim.HandleInput(sim.MouseButton{Button: sim.ButtonMiddle, Pressed: true})
	}

	for key, mapped := range map[ebiten.Key]sim.Key{
		ebiten.KeySpace:     sim.KeyPlay,
		ebiten.KeyTab:       sim.KeyStep,
		ebiten.KeyC:         sim.KeyClear,
		ebiten.KeyArrowUp:   sim.KeySpeedUp,
		ebiten.KeyArrowDown: sim.KeySpeedDown,
	} {
		if inpututil.IsKeyJustPressed(key) {
			g.sim.HandleInput(sim.KeyPressed{Key: mapped})
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		name := fmt.Sprintf("save %s", time.Now().Format("2006-01-02 15:04:05"))
		if err := g.store.Add(g.sim.Snapshot(name)); err != nil {
			log.Printf("saving game: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		saves, err := g.store.List()
		if err != nil {
			log.Printf("listing saves: %v", err)
		} else if len(saves) > 0 {
			g.sim.RequestLoad(saves[len(saves)-1])
		}
	}
}

// Draw renders the current board state and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Draw(screen, g.sim.Viewport(), g.pan, g.scale)
	g.hud.Draw(screen, g.sim)
}

// Layout reports the logical screen size and keeps the simulation's
// viewport in sync with the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.sim.SetViewport(sim.Viewport{W: outsideWidth, H: outsideHeight})
	return outsideWidth, outsideHeight
}
