// Package pheromone implements the shared memory of an Ant System colony:
// one non-negative scalar level per unordered pair of cities.
//
// Levels are stored in a fixed-size triangular array indexed by a canonical
// EdgeKey, so a store built for n cities always holds exactly n·(n−1)/2
// entries regardless of the direction in which ants traverse an edge.
//
// Operations:
//
//   - Initialize — (re)create n·(n−1)/2 entries at InitialLevel.
//   - Level      — read a level; absent or exhausted entries read as Floor.
//   - Evaporate  — multiply every level by (1 − rho), rho ∈ [0,1].
//   - Deposit    — add an amount to each listed edge (duplicates accumulate).
//   - Reset      — drop every entry (used when the city set changes).
//
// Evaporation only multiplies by a factor in [0,1] and Deposit only adds
// non-negative finite amounts, so a level can never become negative.
//
// A Store is safe for concurrent use; every method takes an internal
// sync.RWMutex.
package pheromone
