// Package harness runs conformance scenarios for the by-move body
// synthesis pass.
//
// A scenario is a YAML file describing a parent/child capture-list pair,
// the child's closure kind, and the expected outcome: either a
// field-remapping table or a specific error code. The harness builds a
// canonical coroutine body from the child list, runs the full pass
// pipeline over it, and checks the result. Scenarios with golden files
// additionally compare the synthesized body's canonical dump byte for
// byte.
//
// Scenario files live in testdata/scenarios, golden dumps in
// testdata/golden. Regenerate golden files with:
//
//	go test ./internal/harness -update
package harness
