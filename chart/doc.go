// Package chart renders a colony run to image files with gonum/plot.
//
// Convergence draws the best-so-far, iteration-best and iteration-mean tour
// lengths against the iteration number. Tour draws the cities and a closed
// tour through them. Trails draws every pheromone edge with a line width
// proportional to its level, normalized by the strongest edge.
//
// The output format follows the file extension accepted by plot.Save
// (.png, .svg, .pdf, ...). Iterations without a finite length are skipped.
package chart
