// Package trace captures body dumps as the pass pipeline runs.
//
// Dumps are the pipeline's observability surface: a canonical text
// rendering of each body after each pass, keyed by (unit, pass, seq) and
// fingerprinted so identical bodies deduplicate. Two sinks are provided:
// WriterSink streams dumps to any io.Writer (stderr during debugging),
// and Store persists them to SQLite so runs can be diffed after the
// fact.
//
// Because the pipeline is deterministic, two runs over the same input
// produce byte-identical dumps; a fingerprint mismatch between runs of
// the same compiler version is always a bug.
package trace
