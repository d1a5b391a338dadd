package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioConformance(t *testing.T) {
	scenarios, err := LoadDir("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "expectation failures: %v", result.Errors)
		})
	}
}

func TestRunRefinedPair(t *testing.T) {
	s, err := Load("testdata/scenarios/refined-pair.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	require.True(t, result.Pass, "expectation failures: %v", result.Errors)
	require.NoError(t, result.Err)

	bm := result.Body.Coroutine.ByMoveBody
	require.NotNil(t, bm)
	assert.Len(t, bm.Blocks, 1)
	assert.Len(t, bm.Blocks[0].Statements, 2)
}

func TestRunReportsExpectationMismatch(t *testing.T) {
	s, err := Load("testdata/scenarios/borrowed-whole.yaml")
	require.NoError(t, err)

	// Corrupt the expectation; the run itself still succeeds but the
	// result must flag the mismatch.
	s.Expect.Remapping[0].ParentField = 5

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.NotEmpty(t, result.Errors)
}

func TestRunErrorScenarioWithWrongCode(t *testing.T) {
	s, err := Load("testdata/scenarios/unused-parent.yaml")
	require.NoError(t, err)

	s.Expect.Error = "LEFTOVER_PARENT_CAPTURES"

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
}
