package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/mirpass/internal/mir"
)

// RunWithGolden executes a scenario and compares the synthesized
// by-move body's canonical dump against a golden file stored at
// testdata/golden/{scenario.Name}.golden.
//
// Only success scenarios that synthesize a body can carry a golden
// file; error and CallOnce scenarios have no dump to compare.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if scenario execution fails; golden mismatch fails
// the test via goldie.
func RunWithGolden(t *testing.T, s *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(s)
	if err != nil {
		return nil, err
	}
	if result.Err != nil || result.Body.Coroutine.ByMoveBody == nil {
		return result, nil
	}

	dump := mir.FormatBody(result.Body.Coroutine.ByMoveBody)
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, s.Name, []byte(dump))
	return result, nil
}
