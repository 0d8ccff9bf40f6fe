package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/katalvlaran/antcolony/colony"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("chart: no data to plot")

// Default image size.
const (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

var (
	bestColor  = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	iterColor  = color.RGBA{R: 30, G: 90, B: 200, A: 255}
	meanColor  = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	cityColor  = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	trailColor = color.RGBA{R: 30, G: 140, B: 60, A: 160}
)

// Convergence writes a line chart of history to path.
func Convergence(history []colony.Result, path string) error {
	best := make(plotter.XYs, 0, len(history))
	iter := make(plotter.XYs, 0, len(history))
	mean := make(plotter.XYs, 0, len(history))
	for _, r := range history {
		x := float64(r.Iteration)
		if finite(r.BestLength) {
			best = append(best, plotter.XY{X: x, Y: r.BestLength})
		}
		if finite(r.IterationBest) {
			iter = append(iter, plotter.XY{X: x, Y: r.IterationBest})
		}
		if finite(r.IterationMean) {
			mean = append(mean, plotter.XY{X: x, Y: r.IterationMean})
		}
	}
	if len(best) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Convergence"
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "Tour length"
	p.Legend.Top = true

	series := []struct {
		name string
		pts  plotter.XYs
		c    color.Color
	}{
		{"best", best, bestColor},
		{"iteration best", iter, iterColor},
		{"iteration mean", mean, meanColor},
	}
	for _, s := range series {
		if len(s.pts) == 0 {
			continue
		}
		l, err := plotter.NewLine(s.pts)
		if err != nil {
			return fmt.Errorf("chart: %s line: %w", s.name, err)
		}
		l.Color = s.c
		p.Add(l)
		p.Legend.Add(s.name, l)
	}

	return save(p, path)
}

// Tour writes the cities and the closed tour through them to path. A nil
// tour draws the cities only.
func Tour(cities []colony.City, tour []int, path string) error {
	if len(cities) == 0 {
		return ErrNoData
	}
	if tour != nil {
		if err := colony.ValidateTour(tour, len(cities)); err != nil {
			return fmt.Errorf("chart: %w", err)
		}
	}

	p := newMap("Best tour")
	if len(tour) > 0 {
		pts := make(plotter.XYs, len(tour))
		for i, idx := range tour {
			pts[i] = plotter.XY{X: cities[idx].X, Y: cities[idx].Y}
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("chart: tour line: %w", err)
		}
		l.Color = bestColor
		l.Width = vg.Points(1.5)
		p.Add(l)
		if length, err := colony.TourLength(cities, tour); err == nil {
			p.Title.Text = fmt.Sprintf("Best tour (length %.2f)", length)
		}
	}
	if err := addCities(p, cities); err != nil {
		return err
	}

	return save(p, path)
}

// Trails writes the pheromone map of s to path.
func Trails(s colony.Snapshot, path string) error {
	if len(s.Cities) == 0 {
		return ErrNoData
	}

	p := newMap(fmt.Sprintf("Pheromone trails (iteration %d)", s.Iteration))
	for _, e := range s.Pheromones {
		if s.MaxLevel <= 0 || e.Level <= 0 {
			continue
		}
		a, b := s.Cities[e.Key.A], s.Cities[e.Key.B]
		l, err := plotter.NewLine(plotter.XYs{{X: a.X, Y: a.Y}, {X: b.X, Y: b.Y}})
		if err != nil {
			return fmt.Errorf("chart: trail %d-%d: %w", e.Key.A, e.Key.B, err)
		}
		l.Color = trailColor
		l.Width = vg.Points(0.25 + 4*e.Level/s.MaxLevel)
		p.Add(l)
	}
	if err := addCities(p, s.Cities); err != nil {
		return err
	}

	return save(p, path)
}

func newMap(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	return p
}

func addCities(p *plot.Plot, cities []colony.City) error {
	pts := make(plotter.XYs, len(cities))
	for i, c := range cities {
		pts[i] = plotter.XY{X: c.X, Y: c.Y}
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("chart: cities: %w", err)
	}
	sc.GlyphStyle.Color = cityColor
	sc.GlyphStyle.Radius = vg.Points(3)
	p.Add(sc)
	return nil
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(Width, Height, path); err != nil {
		return fmt.Errorf("chart: save %s: %w", path, err)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
