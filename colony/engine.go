// Package colony - Engine state and lifecycle.
//
// This file owns everything that changes between iterations without running
// one: construction, city edits, reset and the read accessors.
//
// Design:
//   - One RWMutex guards cities, distances, pheromone and the best record.
//   - Any city-set change rebuilds the distance table, reinitializes the
//     store to uniform levels and clears the best record and counter.
//   - Readers get copies; the pheromone store is never handed out.
package colony

import (
	"fmt"
	"math"
	"sync"

	"github.com/katalvlaran/antcolony/matrix"
	"github.com/katalvlaran/antcolony/pheromone"
	"github.com/katalvlaran/antcolony/tsp"
)

// Engine owns the city set, the pheromone store, the best-tour record and
// the iteration counter of one Ant System run.
//
// All methods are safe for concurrent use. RunIteration holds the write lock
// for the whole generation, so readers never observe a half-applied update.
type Engine struct {
	mu sync.RWMutex

	cities []City
	dist   *matrix.Dense // n×n Euclidean distances
	store  *pheromone.Store
	rng    RandSource

	bestTour   []int
	bestLength float64
	iteration  int

	// scratch reused across ants
	visited []bool
	cand    []int
	weights []float64
}

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	rng          RandSource
	initialLevel float64
}

// WithRand injects the random source. A nil source is ignored.
func WithRand(r RandSource) Option {
	return func(c *engineConfig) {
		if r != nil {
			c.rng = r
		}
	}
}

// WithSeed uses tsp.NewRand(seed) as the random source.
func WithSeed(seed int64) Option {
	return func(c *engineConfig) {
		c.rng = tsp.NewRand(seed)
	}
}

// WithInitialLevel sets the uniform pheromone level used on every
// (re)initialization. Defaults to pheromone.InitialLevel.
func WithInitialLevel(level float64) Option {
	return func(c *engineConfig) {
		c.initialLevel = level
	}
}

// NewEngine returns an engine for cities. Fewer than two cities is allowed;
// RunIteration reports ErrInsufficientCities until more are added.
func NewEngine(cities []City, opts ...Option) (*Engine, error) {
	cfg := engineConfig{initialLevel: pheromone.InitialLevel}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = tsp.NewRand(0)
	}
	if !finite(cfg.initialLevel) || cfg.initialLevel <= 0 {
		return nil, fmt.Errorf("%w: initial pheromone level %v", ErrInvalidInput, cfg.initialLevel)
	}

	store, err := pheromone.New(0, pheromone.WithInitialLevel(cfg.initialLevel))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	e := &Engine{store: store, rng: cfg.rng}
	if err = e.SetCities(cities); err != nil {
		return nil, err
	}
	return e, nil
}

// SetCities replaces the city set. Levels over the old set are meaningless
// for the new one, so the store is reinitialized to uniform levels, the best
// record is cleared and the iteration counter restarts at 0.
// City IDs are rewritten to their slice index.
func (e *Engine) SetCities(cities []City) error {
	next := make([]City, len(cities))
	for i, c := range cities {
		if !finite(c.X) || !finite(c.Y) {
			return fmt.Errorf("%w: city %d has non-finite coordinates (%v, %v)", ErrInvalidInput, i, c.X, c.Y)
		}
		next[i] = City{ID: i, X: c.X, Y: c.Y}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.replaceCitiesLocked(next)
}

// AddCity appends a city at (x, y) and resets the run.
func (e *Engine) AddCity(x, y float64) (City, error) {
	if !finite(x) || !finite(y) {
		return City{}, fmt.Errorf("%w: non-finite coordinates (%v, %v)", ErrInvalidInput, x, y)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.addCityLocked(x, y)
}

// RemoveCity deletes the city at index, renumbers the rest and resets the run.
func (e *Engine) RemoveCity(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.removeCityLocked(index)
}

// ToggleCity mirrors click-to-edit placement: if a city lies within radius
// of (x, y) the nearest one is removed, otherwise a new city is added there.
// It reports whether a city was added.
func (e *Engine) ToggleCity(x, y, radius float64) (bool, error) {
	if !finite(x) || !finite(y) || !finite(radius) || radius < 0 {
		return false, fmt.Errorf("%w: toggle at (%v, %v) radius %v", ErrInvalidInput, x, y, radius)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	nearest, best := -1, math.Inf(1)
	p := City{X: x, Y: y}
	for i, c := range e.cities {
		if d := distance(p, c); d <= radius && d < best {
			nearest, best = i, d
		}
	}
	if nearest >= 0 {
		return false, e.removeCityLocked(nearest)
	}
	_, err := e.addCityLocked(x, y)
	return err == nil, err
}

// Reset restores the initial state for the current city set: uniform
// pheromone, no best tour, iteration 0.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Initialize only fails for negative counts.
	_ = e.store.Initialize(len(e.cities))
	e.clearBestLocked()
}

// Cities returns a copy of the current city set.
func (e *Engine) Cities() []City {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]City(nil), e.cities...)
}

// Level returns the pheromone level of {a, b} as roulette selection sees it,
// with absent or exhausted edges reading as pheromone.Floor.
func (e *Engine) Level(a, b int) float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Level(a, b)
}

// RawLevel returns the stored level of {a, b} without the floor, and
// whether the edge exists.
func (e *Engine) RawLevel(a, b int) (float64, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Raw(a, b)
}

// Iteration returns the number of completed iterations since the last reset.
func (e *Engine) Iteration() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.iteration
}

// Best returns a copy of the best tour and its length (nil, +Inf if none).
func (e *Engine) Best() ([]int, float64) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return tsp.CopyTour(e.bestTour), e.bestLength
}

// Snapshot returns a consistent copy of everything a renderer needs.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return Snapshot{
		Cities:     append([]City(nil), e.cities...),
		Pheromones: e.store.Snapshot(),
		MaxLevel:   e.store.Max(),
		Iteration:  e.iteration,
		BestTour:   tsp.CopyTour(e.bestTour),
		BestLength: e.bestLength,
	}
}

// replaceCitiesLocked installs next, rebuilds the distance table and resets
// the run. Caller must hold e.mu.
func (e *Engine) replaceCitiesLocked(next []City) error {
	n := len(next)
	dist, err := distanceTable(next)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err = e.store.Initialize(n); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	e.cities = next
	e.dist = dist
	e.visited = make([]bool, n)
	e.cand = make([]int, 0, n)
	e.weights = make([]float64, n)
	e.clearBestLocked()
	return nil
}

func (e *Engine) addCityLocked(x, y float64) (City, error) {
	c := City{ID: len(e.cities), X: x, Y: y}
	next := append(append(make([]City, 0, len(e.cities)+1), e.cities...), c)
	if err := e.replaceCitiesLocked(next); err != nil {
		return City{}, err
	}
	return c, nil
}

func (e *Engine) removeCityLocked(index int) error {
	if index < 0 || index >= len(e.cities) {
		return fmt.Errorf("%w: %d (have %d cities)", ErrIndexOutOfRange, index, len(e.cities))
	}
	next := make([]City, 0, len(e.cities)-1)
	for i, c := range e.cities {
		if i == index {
			continue
		}
		next = append(next, City{ID: len(next), X: c.X, Y: c.Y})
	}
	return e.replaceCitiesLocked(next)
}

func (e *Engine) clearBestLocked() {
	e.bestTour = nil
	e.bestLength = math.Inf(1)
	e.iteration = 0
}
