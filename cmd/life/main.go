//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"sparselife/internal/app"
	"sparselife/internal/save"
	"sparselife/internal/sim"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	vp := sim.Viewport{W: cfg.Width, H: cfg.Height}
	var s *sim.Simulation
	if cfg.Sync {
		s = sim.NewSynchronous(vp)
	} else {
		s = sim.New(vp)
	}
	defer s.Close()
	s.SetInterval(cfg.Interval)

	game := app.New(s, save.NewStore(cfg.Saves))

	ebiten.SetWindowTitle("sparselife")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
