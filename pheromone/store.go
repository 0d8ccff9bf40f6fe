// Package pheromone - Store, the triangular level table.
//
// Design:
//   - One float64 per unordered pair {a, b}, a < b, in a flat slice;
//     row a starts at a·(2n−a−1)/2. No string keys, no maps.
//   - Every mutation validates all of its input before touching a level,
//     so a failed call leaves the store unchanged.
//   - Levels never go negative: evaporation scales by 1−rho ∈ [0,1] and
//     deposits are non-negative.
//
// Complexity:
//   - Level, Raw: O(1). Evaporate, Initialize, Snapshot: O(n²).
//     Deposit: O(len(edges)).
package pheromone

import (
	"fmt"
	"math"
	"sync"
)

// Store holds one pheromone level per unordered city pair.
type Store struct {
	mu      sync.RWMutex
	n       int       // number of cities the store was initialized for
	initial float64   // level assigned by Initialize
	levels  []float64 // triangular, see index
}

// Option configures a Store.
type Option func(*Store)

// WithInitialLevel overrides InitialLevel. Non-positive or non-finite values
// are ignored so every edge still starts selectable.
func WithInitialLevel(level float64) Option {
	return func(s *Store) {
		if level > 0 && !math.IsInf(level, 0) {
			s.initial = level
		}
	}
}

// New returns a Store initialized for cityCount cities.
// Returns ErrInvalidInput if cityCount < 0.
func New(cityCount int, opts ...Option) (*Store, error) {
	s := &Store{initial: InitialLevel}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Initialize(cityCount); err != nil {
		return nil, err
	}
	return s, nil
}

// Initialize discards every level and creates cityCount·(cityCount−1)/2 entries
// at the store's initial level. On error the store is left untouched.
//
// Complexity: O(n²).
func (s *Store) Initialize(cityCount int) error {
	if cityCount < 0 {
		return fmt.Errorf("%w: city count %d", ErrInvalidInput, cityCount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.n = cityCount
	s.levels = make([]float64, pairCount(cityCount))
	for i := range s.levels {
		s.levels[i] = s.initial
	}
	return nil
}

// Reset drops every entry. Level then returns Floor for every pair until the
// next Initialize.
func (s *Store) Reset() {
	s.mu.Lock()
	s.n = 0
	s.levels = nil
	s.mu.Unlock()
}

// Cities reports the city count the store is initialized for.
func (s *Store) Cities() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.n
}

// Len reports the number of stored edges, n·(n−1)/2.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.levels)
}

// Level returns the level of the edge {a, b}.
// Self-pairs, out-of-range indices and exhausted (zero) levels read as Floor.
//
// Complexity: O(1).
func (s *Store) Level(a, b int) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index(a, b)
	if !ok || s.levels[i] == 0 {
		return Floor
	}
	return s.levels[i]
}

// Raw returns the stored level of {a, b} without applying Floor, and whether
// the edge exists.
func (s *Store) Raw(a, b int) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index(a, b)
	if !ok {
		return 0, false
	}
	return s.levels[i], true
}

// Evaporate multiplies every level by (1 − rho).
// rho must lie in [0,1]; rho == 0 is a no-op and rho == 1 forgets everything.
//
// Complexity: O(n²).
func (s *Store) Evaporate(rho float64) error {
	if math.IsNaN(rho) || rho < 0 || rho > 1 {
		return fmt.Errorf("%w: rho %v outside [0,1]", ErrInvalidInput, rho)
	}
	if rho == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	keep := 1 - rho
	for i := range s.levels {
		s.levels[i] *= keep
	}
	return nil
}

// Deposit adds amount to every edge in edges. An edge listed twice receives
// the amount twice. All edges are checked before any level changes.
//
// Complexity: O(len(edges)).
func (s *Store) Deposit(edges []EdgeKey, amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return fmt.Errorf("%w: deposit amount %v", ErrInvalidInput, amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range edges {
		if _, ok := s.index(e.A, e.B); !ok {
			return fmt.Errorf("%w: edge {%d,%d} not in store of %d cities", ErrInvalidInput, e.A, e.B, s.n)
		}
	}
	for _, e := range edges {
		i, _ := s.index(e.A, e.B)
		s.levels[i] += amount
	}
	return nil
}

// Snapshot returns a copy of every edge in canonical (A, B) order.
//
// Complexity: O(n²).
func (s *Store) Snapshot() []Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Edge, 0, len(s.levels))
	var a, b int
	for a = 0; a < s.n; a++ {
		for b = a + 1; b < s.n; b++ {
			i, _ := s.index(a, b)
			out = append(out, Edge{Key: EdgeKey{A: a, B: b}, Level: s.levels[i]})
		}
	}
	return out
}

// Max returns the highest stored level, 0 for an empty store.
// Renderers use it to normalize line widths.
func (s *Store) Max() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var m float64
	for _, v := range s.levels {
		if v > m {
			m = v
		}
	}
	return m
}

// Sum returns the total of all stored levels.
func (s *Store) Sum() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum float64
	for _, v := range s.levels {
		sum += v
	}
	return sum
}

// index maps the unordered pair {a, b} onto the triangular array.
// Row a (a < b) starts at a·(2n−a−1)/2. Caller must hold s.mu.
func (s *Store) index(a, b int) (int, bool) {
	if a == b || a < 0 || b < 0 || a >= s.n || b >= s.n {
		return 0, false
	}
	if a > b {
		a, b = b, a
	}
	return a*(2*s.n-a-1)/2 + (b - a - 1), true
}
