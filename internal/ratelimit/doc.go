// Package ratelimit provides the FIFO request queue that paces calls to the
// external rating API.
//
// The public search endpoint has no documented quota but throttles aggressive
// clients, so every outbound call funnels through one Limiter per process.
// Tasks execute in submission order with a minimum wall-clock gap between the
// completion of one task and the start of the next; a failing task affects
// only its own caller. The Limiter is handed to components explicitly rather
// than living in package state so tests can construct isolated instances.
package ratelimit
