// Package passes runs body transformations in a fixed pipeline.
//
// The runner is strictly deterministic: passes execute in registration
// order, one body at a time, with no concurrency and no randomness. Two
// runs over structurally identical bodies produce identical outputs and
// identical trace dumps, which is what makes dump diffing between
// compiler versions meaningful.
//
// A pass either succeeds, leaving the body in a valid state, or returns
// an error, in which case the runner stops and the caller must abort the
// unit. Passes never partially apply: any pass that can fail midway must
// work on a clone and attach or swap only on success.
package passes
