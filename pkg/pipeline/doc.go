// Package pipeline runs a fixed sequence of named stages over one shared
// payload.
//
// Stages are registered in the order they must run and executed strictly
// sequentially: each stage receives the same payload, mutates it in place
// and returns control before the next stage starts. There is exactly one
// writer at any time, so stages need no synchronisation.
//
// The pipeline stops on the first stage error and decorates it with the
// stage name, which makes it easy to identify which enrichment step broke
// a run. Optional features report per-stage progress to a console, record
// per-stage durations and render the stage graph as a DOT file.
package pipeline
