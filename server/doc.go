// Package server is the HTTP and WebSocket boundary between a driver.Driver
// and a presentation layer: it serves the latest frame, accepts parameter
// and city edits, streams frames over /ws and exposes Prometheus metrics.
//
// Error codes in JSON bodies:
//
//	insufficient_cities (409) - fewer than two cities; add cities and retry.
//	invalid_input       (400) - malformed parameters, coordinates or body.
//	not_found           (404) - unknown city index.
//	internal            (500) - anything else.
package server
