package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/antcolony/colony"
	"github.com/katalvlaran/antcolony/logger"
	"github.com/katalvlaran/antcolony/metrics"
)

// defaultHistoryLimit bounds the convergence history kept per run.
const defaultHistoryLimit = 100_000

// Observer receives iteration outcomes; *metrics.Collector implements it.
type Observer interface {
	ObserveIteration(res colony.Result, took time.Duration)
	ObserveSkip(reason string)
	ObserveReset(cities int)
}

// Frame is one published view of the run.
type Frame struct {
	RunID    string
	Params   colony.Params
	Paused   bool
	Snapshot colony.Snapshot

	// Last is the result of the most recent iteration of this run.
	Last colony.Result

	At time.Time
}

// Driver owns the pacing of one engine.
type Driver struct {
	engine   *colony.Engine
	log      *slog.Logger
	observer Observer
	interval time.Duration
	maxIter  int
	histCap  int

	mu      sync.Mutex
	params  colony.Params
	paused  bool
	runID   string
	last    colony.Result
	latest  Frame
	history []colony.Result
	subs    map[int]chan Frame
	nextSub int

	// step serializes iterations and edits so frames follow engine order.
	step sync.Mutex
	wake chan struct{}
}

// Option configures a Driver.
type Option func(*Driver)

// WithInterval sets the pause between iterations; 0 runs back to back.
func WithInterval(d time.Duration) Option {
	return func(dr *Driver) {
		if d >= 0 {
			dr.interval = d
		}
	}
}

// WithMaxIterations pauses the driver once a run reaches n iterations.
// 0 (the default) never pauses.
func WithMaxIterations(n int) Option {
	return func(dr *Driver) {
		if n >= 0 {
			dr.maxIter = n
		}
	}
}

// WithLogger replaces logger.Default.
func WithLogger(l *slog.Logger) Option {
	return func(dr *Driver) {
		if l != nil {
			dr.log = l
		}
	}
}

// WithObserver reports iterations, skips and resets to o.
func WithObserver(o Observer) Option {
	return func(dr *Driver) {
		dr.observer = o
	}
}

// WithHistoryLimit caps the per-run convergence history.
func WithHistoryLimit(n int) Option {
	return func(dr *Driver) {
		if n > 0 {
			dr.histCap = n
		}
	}
}

// WithPaused starts the driver paused.
func WithPaused() Option {
	return func(dr *Driver) {
		dr.paused = true
	}
}

// New returns a driver for engine. params are validated here so Run never
// starts with a bad parameter bundle.
func New(engine *colony.Engine, params colony.Params, opts ...Option) (*Driver, error) {
	if engine == nil {
		return nil, fmt.Errorf("driver: engine is required")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	d := &Driver{
		engine:   engine,
		log:      logger.Default,
		interval: 50 * time.Millisecond,
		histCap:  defaultHistoryLimit,
		params:   params,
		subs:     make(map[int]chan Frame),
		wake:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.step.Lock()
	d.startRunLocked("start")
	d.step.Unlock()
	return d, nil
}

// Run drives iterations until ctx is cancelled and returns ctx.Err().
// While paused, while the population is empty (Ants == 0), or while the
// engine has fewer than two cities, it waits for Resume, SetParams or a
// city edit instead of spinning.
func (d *Driver) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if d.interval > 0 {
		t := time.NewTicker(d.interval)
		defer t.Stop()
		tick = t.C
	}
	d.log.Info("driver started", "interval", d.interval, "max_iterations", d.maxIter, "run_id", d.RunID())

	for {
		if d.Paused() || d.Params().Ants == 0 {
			if err := d.waitWake(ctx); err != nil {
				return d.stopped(err)
			}
			continue
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return d.stopped(ctx.Err())
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return d.stopped(err)
		}

		if _, err := d.Step(); errors.Is(err, colony.ErrInsufficientCities) {
			if err = d.waitWake(ctx); err != nil {
				return d.stopped(err)
			}
		}
	}
}

// Step runs exactly one iteration regardless of the paused flag and
// publishes the resulting frame. colony.ErrInsufficientCities is returned
// unchanged so callers can prompt for more cities.
func (d *Driver) Step() (Frame, error) {
	d.step.Lock()
	defer d.step.Unlock()

	d.mu.Lock()
	params := d.params
	d.mu.Unlock()

	started := time.Now()
	res, err := d.engine.RunIteration(params)
	took := time.Since(started)

	switch {
	case errors.Is(err, colony.ErrInsufficientCities):
		d.log.Debug("iteration skipped: not enough cities", "cities", len(d.engine.Cities()))
		d.observe(func(o Observer) { o.ObserveSkip(metrics.ReasonInsufficientCities) })
		return d.Latest(), err
	case err != nil:
		d.log.Error("iteration failed", "error", err)
		d.observe(func(o Observer) { o.ObserveSkip(metrics.ReasonError) })
		return d.Latest(), err
	}

	d.observe(func(o Observer) { o.ObserveIteration(res, took) })
	if res.Improved {
		d.log.Info("new best tour", "iteration", res.Iteration, "best_length", res.BestLength)
	} else {
		d.log.Debug("iteration done", "iteration", res.Iteration, "iteration_best", res.IterationBest, "took", took)
	}

	d.mu.Lock()
	if res.Tours > 0 {
		d.last = res
		d.history = append(d.history, res)
		if len(d.history) > d.histCap {
			d.history = d.history[len(d.history)-d.histCap:]
		}
	}
	if d.maxIter > 0 && res.Iteration >= d.maxIter && !d.paused {
		d.paused = true
		d.log.Info("iteration limit reached, pausing", "iteration", res.Iteration, "best_length", res.BestLength)
	}
	d.mu.Unlock()

	return d.publish(), nil
}

// Pause stops Run from requesting further iterations.
func (d *Driver) Pause() Frame {
	d.mu.Lock()
	d.paused = true
	d.mu.Unlock()
	d.log.Info("driver paused")
	return d.publish()
}

// Resume lets Run continue. After the iteration limit is reached Resume
// allows one more iteration per call; Reset starts a fresh budget.
func (d *Driver) Resume() Frame {
	d.mu.Lock()
	d.paused = false
	d.mu.Unlock()
	d.log.Info("driver resumed")
	d.signal()
	return d.publish()
}

// Paused reports whether Run is paused.
func (d *Driver) Paused() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.paused
}

// Params returns the parameters used by the next iteration.
func (d *Driver) Params() colony.Params {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.params
}

// SetParams validates p and applies it from the next iteration on.
// Parameters do not invalidate the pheromone memory, so the run continues.
func (d *Driver) SetParams(p colony.Params) (Frame, error) {
	if err := p.Validate(); err != nil {
		return d.Latest(), err
	}
	d.mu.Lock()
	d.params = p
	d.mu.Unlock()
	d.log.Info("params updated", "alpha", p.Alpha, "beta", p.Beta, "rho", p.Rho, "ants", p.Ants)
	d.signal()
	return d.publish(), nil
}

// Reset clears pheromone, best tour and counter, and starts a new run.
func (d *Driver) Reset() Frame {
	d.step.Lock()
	defer d.step.Unlock()

	d.engine.Reset()
	return d.startRunLocked("reset")
}

// SetCities replaces the city set and starts a new run.
func (d *Driver) SetCities(cities []colony.City) (Frame, error) {
	return d.edit("cities replaced", func() error { return d.engine.SetCities(cities) })
}

// AddCity adds a city at (x, y) and starts a new run.
func (d *Driver) AddCity(x, y float64) (Frame, error) {
	return d.edit("city added", func() error {
		_, err := d.engine.AddCity(x, y)
		return err
	})
}

// RemoveCity removes the city at index and starts a new run.
func (d *Driver) RemoveCity(index int) (Frame, error) {
	return d.edit("city removed", func() error { return d.engine.RemoveCity(index) })
}

// ToggleCity removes the city nearest (x, y) within radius or adds one there.
func (d *Driver) ToggleCity(x, y, radius float64) (Frame, error) {
	return d.edit("city toggled", func() error {
		_, err := d.engine.ToggleCity(x, y, radius)
		return err
	})
}

// RunID identifies the current run.
func (d *Driver) RunID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.runID
}

// Latest returns the most recently published frame.
func (d *Driver) Latest() Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.latest
}

// History returns a copy of the current run's iteration results.
func (d *Driver) History() []colony.Result {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]colony.Result(nil), d.history...)
}

// Subscribe returns a channel of frames and a cancel func. Slow subscribers
// miss frames rather than stall the driver.
func (d *Driver) Subscribe() (<-chan Frame, func()) {
	ch := make(chan Frame, 8)

	d.mu.Lock()
	id := d.nextSub
	d.nextSub++
	d.subs[id] = ch
	d.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			d.mu.Lock()
			delete(d.subs, id)
			d.mu.Unlock()
			close(ch)
		})
	}
}

func (d *Driver) edit(what string, apply func() error) (Frame, error) {
	d.step.Lock()
	defer d.step.Unlock()

	if err := apply(); err != nil {
		return d.Latest(), err
	}
	return d.startRunLocked(what), nil
}

// startRunLocked assigns a new run ID and clears per-run state.
// Caller must hold d.step.
func (d *Driver) startRunLocked(reason string) Frame {
	cities := len(d.engine.Cities())
	id := uuid.NewString()

	d.mu.Lock()
	d.runID = id
	d.last = colony.Result{}
	d.history = nil
	d.mu.Unlock()

	d.observe(func(o Observer) { o.ObserveReset(cities) })
	d.log.Info("run started", "reason", reason, "run_id", id, "cities", cities)
	d.signal()
	return d.publish()
}

// publish snapshots the engine, stores the frame as latest and fans it out.
func (d *Driver) publish() Frame {
	snap := d.engine.Snapshot()

	d.mu.Lock()
	defer d.mu.Unlock()

	f := Frame{
		RunID:    d.runID,
		Params:   d.params,
		Paused:   d.paused,
		Snapshot: snap,
		Last:     d.last,
		At:       time.Now(),
	}
	d.latest = f
	for _, ch := range d.subs {
		select {
		case ch <- f:
		default:
		}
	}
	return f
}

func (d *Driver) observe(fn func(Observer)) {
	if d.observer != nil {
		fn(d.observer)
	}
}

func (d *Driver) signal() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *Driver) waitWake(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-d.wake:
		return nil
	}
}

func (d *Driver) stopped(err error) error {
	d.log.Info("driver stopped", "reason", err, "run_id", d.RunID())
	return err
}
