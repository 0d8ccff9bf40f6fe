// Package antcolony is an Ant System solver for the symmetric Euclidean
// travelling salesman problem, built to drive an interactive visualization.
//
// What is inside?
//
//	pheromone/ — the pheromone store: one level per unordered city pair,
//	             uniform initialization, evaporation, deposit, floor reads
//	colony/    — the iteration engine: probabilistic tour construction,
//	             evaporate-then-deposit update, best-tour tracking
//	matrix/    — dense row-major table holding pairwise city distances
//	tsp/       — closed-tour validation, tour cost, seeded random sources
//	driver/    — paced iteration loop with pause, step, city edits and
//	             frame fan-out to subscribers
//	server/    — HTTP + WebSocket boundary for a renderer (gin, gorilla)
//	metrics/   — Prometheus instrumentation of iterations
//	chart/     — convergence, tour and pheromone-trail images (gonum/plot)
//	config/    — YAML scenarios
//	logger/    — log/slog setup
//	cmd/antsim — headless runs and the HTTP service
//
// The core packages (pheromone, colony) never log and never panic on user
// input; failures come back as sentinel errors checked with errors.Is.
//
// Quick example, the four corners of a 10×10 square:
//
//	(0,10)───(10,10)
//	   │         │
//	(0,0) ───(10,0)
//
//	e, _ := colony.NewEngine(cities, colony.WithSeed(42))
//	for i := 0; i < 100; i++ {
//		res, _ := e.RunIteration(colony.DefaultParams())
//		_ = res.BestLength // converges to 40
//	}
package antcolony
