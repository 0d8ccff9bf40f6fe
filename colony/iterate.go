// Package colony - one Ant System generation.
//
// Phases, strictly in order: construct every ant's tour, evaporate once,
// deposit per ant, update the best record, advance the counter.
//
// Design:
//   - Ants run sequentially in index order; a seeded source replays a run.
//   - Candidates are weighed in ascending city index.
//   - Roulette falls back to the last candidate on rounding and to a
//     uniform pick when the weight sum is not a finite positive number.
//
// Complexity: O(ants·n²) time per generation, O(ants·n) space.
package colony

import (
	"fmt"
	"math"

	"github.com/katalvlaran/antcolony/tsp"
)

// RunIteration performs one Ant System generation with parameters p.
//
// Steps, in order: build p.Ants tours; evaporate every edge once by p.Rho;
// deposit 1/(length+DepositEpsilon) on every leg of every tour; replace the
// best record with the first strictly shorter tour; advance the counter.
//
// Invalid parameters (ErrInvalidInput) and fewer than two cities
// (ErrInsufficientCities) leave all state untouched. p.Ants == 0 is a valid
// no-op and returns the current record.
//
// Complexity: O(ants·n²) time, O(ants·n) space.
func (e *Engine) RunIteration(p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	n := len(e.cities)
	if n < 2 {
		return e.resultLocked(0, false), fmt.Errorf("%w: have %d", ErrInsufficientCities, n)
	}
	if p.Ants == 0 {
		return e.resultLocked(0, false), nil
	}

	// Phase 1: construct. Ants run in index order so a seeded source
	// reproduces the same tours.
	tours := make([][]int, p.Ants)
	lengths := make([]float64, p.Ants)
	var a int
	var err error
	for a = 0; a < p.Ants; a++ {
		tours[a] = e.constructTour(p)
		if lengths[a], err = tsp.TourCost(e.dist, tours[a]); err != nil {
			return Result{}, fmt.Errorf("colony: tour cost for ant %d: %w", a, err)
		}
	}

	// Phase 2: evaporate all edges, strictly before any deposit.
	if err = e.store.Evaporate(p.Rho); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// Phase 3: deposit.
	for a = 0; a < p.Ants; a++ {
		if err = e.store.Deposit(tourEdges(tours[a]), 1/(lengths[a]+DepositEpsilon)); err != nil {
			return Result{}, fmt.Errorf("colony: deposit for ant %d: %w", a, err)
		}
	}

	// Phase 4: best-tour record. Strict < keeps the first of equal tours.
	improved := false
	for a = 0; a < p.Ants; a++ {
		if lengths[a] < e.bestLength {
			e.bestLength = lengths[a]
			e.bestTour = tours[a]
			improved = true
		}
	}

	e.iteration++

	res := e.resultLocked(p.Ants, improved)
	res.IterationBest, res.IterationMean = summarize(lengths)
	return res, nil
}

// constructTour walks one ant from a uniformly random start through every
// city and back. Caller must hold e.mu.
func (e *Engine) constructTour(p Params) []int {
	n := len(e.cities)
	for i := range e.visited {
		e.visited[i] = false
	}

	start := e.rng.Intn(n)
	tour := make([]int, 0, n+1)
	tour = append(tour, start)
	e.visited[start] = true

	var (
		cur = start
		j   int
	)
	for len(tour) < n {
		e.cand = e.cand[:0]
		for j = 0; j < n; j++ {
			if !e.visited[j] {
				e.cand = append(e.cand, j)
			}
		}
		cur = e.selectNext(cur, p)
		e.visited[cur] = true
		tour = append(tour, cur)
	}
	return append(tour, start)
}

// selectNext samples the next city from e.cand by roulette wheel over
// τ(cur,j)^α · η(cur,j)^β. A draw r ∈ [0, sum) is reduced by each weight in
// turn and the first candidate at which r ≤ 0 wins; floating error that
// never reaches 0 falls back to the last candidate. A sum that is not a
// finite positive number makes the pick uniform.
func (e *Engine) selectNext(cur int, p Params) int {
	row := e.distRow(cur)
	w := e.weights[:len(e.cand)]

	var sum float64
	for i, j := range e.cand {
		tau := e.store.Level(cur, j)
		eta := 1 / (row[j] + DistanceEpsilon)
		w[i] = fastPow(tau, p.Alpha) * fastPow(eta, p.Beta)
		sum += w[i]
	}

	if !(sum > 0) || math.IsInf(sum, 1) {
		return e.cand[e.rng.Intn(len(e.cand))]
	}

	r := e.rng.Float64() * sum
	for i := range w {
		r -= w[i]
		if r <= 0 {
			return e.cand[i]
		}
	}
	return e.cand[len(e.cand)-1]
}

// distRow returns the distance row of city i. i always comes from the
// current city set, so a failure is a programming error.
func (e *Engine) distRow(i int) []float64 {
	row, err := e.dist.Row(i)
	if err != nil {
		panic(fmt.Sprintf("colony: distance row: %v", err))
	}
	return row
}

// resultLocked packages the record. Caller must hold e.mu.
func (e *Engine) resultLocked(tours int, improved bool) Result {
	return Result{
		Iteration:     e.iteration,
		Tours:         tours,
		BestTour:      tsp.CopyTour(e.bestTour),
		BestLength:    e.bestLength,
		Improved:      improved,
		IterationBest: math.Inf(1),
		IterationMean: math.Inf(1),
	}
}

func summarize(lengths []float64) (best, mean float64) {
	best = math.Inf(1)
	var sum float64
	for _, l := range lengths {
		if l < best {
			best = l
		}
		sum += l
	}
	return best, sum / float64(len(lengths))
}
