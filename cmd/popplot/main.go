// Command popplot replays a saved board headlessly and charts its
// population over time.
package main

import (
	"flag"
	"fmt"
	"log"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"sparselife/internal/geom"
	"sparselife/internal/life"
	"sparselife/internal/save"
)

func main() {
	var (
		savesPath = flag.String("saves", "saves.json", "path of the save file")
		name      = flag.String("name", "", "name of the snapshot to replay (default: most recent)")
		steps     = flag.Int("steps", 500, "number of generations to run")
		out       = flag.String("out", "population.png", "output image path")
		list      = flag.Bool("list", false, "list stored snapshots and exit")
		del       = flag.Int("delete", -1, "delete the snapshot at this index and exit")
	)
	flag.Parse()

	if *list {
		listSaves(*savesPath)
		return
	}
	if *del >= 0 {
		deleteSave(*savesPath, *del)
		return
	}

	cells := startingCells(*savesPath, *name)

	counts := make([]float64, 0, *steps+1)
	counts = append(counts, float64(cells.Count()))
	for i := 0; i < *steps; i++ {
		cells = life.Step(cells)
		counts = append(counts, float64(cells.Count()))
	}

	mean := stat.Mean(counts, nil)
	sigma := stat.StdDev(counts, nil)
	peak := 0.0
	for _, n := range counts {
		if n > peak {
			peak = n
		}
	}
	fmt.Printf("generations: %d\n", *steps)
	fmt.Printf("final population: %.0f\n", counts[len(counts)-1])
	fmt.Printf("mean population: %.1f (stddev %.1f, peak %.0f)\n", mean, sigma, peak)

	if err := writePlot(counts, *out); err != nil {
		log.Fatalf("writing plot: %v", err)
	}
	fmt.Printf("wrote %s\n", *out)
}

func listSaves(path string) {
	saves, err := save.NewStore(path).List()
	if err != nil {
		log.Fatalf("reading saves: %v", err)
	}
	if len(saves) == 0 {
		fmt.Printf("no saves in %s\n", path)
		return
	}
	for i, s := range saves {
		fmt.Printf("%3d  %s  %d cells  %s\n",
			i, s.Created.Format("2006-01-02 15:04:05"), len(s.Cells), s.Name)
	}
}

func deleteSave(path string, index int) {
	removed, err := save.NewStore(path).Delete(index)
	if err != nil {
		log.Fatalf("deleting save: %v", err)
	}
	if !removed {
		log.Fatalf("no snapshot at index %d in %s", index, path)
	}
	fmt.Printf("deleted snapshot %d from %s\n", index, path)
}

// startingCells loads the requested snapshot, falling back to an
// R-pentomino when the store is empty so the tool works out of the box.
func startingCells(path, name string) life.Set {
	store := save.NewStore(path)
	saves, err := store.List()
	if err != nil {
		log.Fatalf("reading saves: %v", err)
	}

	if name != "" {
		for _, s := range saves {
			if s.Name == name {
				return s.LivingSet()
			}
		}
		log.Fatalf("no snapshot named %q in %s", name, path)
	}
	if len(saves) > 0 {
		return saves[len(saves)-1].LivingSet()
	}

	log.Printf("no saves in %s, running the R-pentomino", path)
	return life.NewSet(
		geom.Pt(0, -1), geom.Pt(1, -1),
		geom.Pt(-1, 0), geom.Pt(0, 0),
		geom.Pt(0, 1),
	)
}

func writePlot(counts []float64, out string) error {
	xys := make(plotter.XYs, len(counts))
	for i, n := range counts {
		xys[i].X = float64(i)
		xys[i].Y = n
	}

	p := plot.New()
	p.Title.Text = "Population over time"
	p.X.Label.Text = "generation"
	p.Y.Label.Text = "living cells"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	p.Add(line)

	return p.Save(8*vg.Inch, 4*vg.Inch, out)
}
