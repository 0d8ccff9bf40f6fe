// Package colony runs Ant System, a pheromone-guided metaheuristic for the
// symmetric Euclidean Travelling Salesman Problem.
//
// An Engine owns a fixed city set, a pheromone.Store and the best tour found
// so far. Each call to RunIteration performs exactly one generation:
//
//  1. every ant builds a closed tour, choosing each next city by roulette
//     sampling proportional to τ^α · η^β, where τ is the pheromone level and
//     η = 1/(distance + ε);
//  2. the store evaporates once by ρ;
//  3. every ant deposits 1/(length + ε) on each edge of its tour;
//  4. the best-tour record is replaced by any strictly shorter tour
//     (the first such ant wins ties);
//  5. the iteration counter advances.
//
// The engine performs no I/O and never blocks; pacing between iterations is
// the caller's concern (see package driver). Randomness comes from an
// injectable RandSource, so a fixed seed reproduces tours exactly.
//
// Errors:
//
//	ErrInvalidInput       - malformed parameters or coordinates; nothing is mutated.
//	ErrInsufficientCities - fewer than 2 cities; a recoverable no-op.
//	ErrIndexOutOfRange    - RemoveCity with an unknown index.
//
// Ant System finds good tours, not provably optimal ones.
package colony
