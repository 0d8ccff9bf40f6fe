// Package driver paces a colony.Engine the way an animation loop would:
// one iteration per tick, with pause/resume, manual stepping, city edits
// and resets applied between iterations.
//
// Every state change is published as a Frame to subscribers (the HTTP and
// WebSocket layers). Each reset or city-set change starts a new run with a
// fresh run ID; the convergence history restarts with it.
package driver
