package bymove

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mirpass/internal/capture"
	"github.com/roach88/mirpass/internal/mir"
	"github.com/roach88/mirpass/internal/testutil"
)

const testUnit = mir.UnitID("demo/child")

var (
	i32   = mir.IntTy{Bits: 32}
	point = mir.AdtTy{Name: "Point"}
)

func TestMatchCapturesOneToOne(t *testing.T) {
	parent := capture.List{
		testutil.Cap(0, capture.ByValue, point),
		testutil.Cap(1, capture.ByRefMut, i32),
	}
	child := capture.List{
		testutil.Cap(0, capture.ByRefShared, point),
		testutil.Cap(1, capture.ByRefMut, i32),
	}

	remapping, err := MatchCaptures(testUnit, parent, child, 0, mir.CallMut)
	require.NoError(t, err)
	require.Len(t, remapping, 2)

	// Parent holds upvar 0 by value while the child borrows it, so the
	// rewrite must peel one deref.
	first := remapping[0]
	assert.Equal(t, mir.Field(0), first.ParentField)
	assert.Equal(t, point, first.ParentTy)
	assert.True(t, first.NeedsDeref)
	assert.Empty(t, first.Extra)

	second := remapping[1]
	assert.Equal(t, mir.Field(1), second.ParentField)
	assert.Equal(t, mir.RefTy{Mut: mir.Mut, Elem: i32}, second.ParentTy)
	assert.False(t, second.NeedsDeref)
	assert.Empty(t, second.Extra)
}

func TestMatchCapturesRefinementSplitsOneParent(t *testing.T) {
	// The child captured two fields out of a struct the parent captures
	// whole, then the next upvar unrefined.
	parent := capture.List{
		testutil.Cap(0, capture.ByValue, point),
		testutil.Cap(1, capture.ByValue, i32),
	}
	child := capture.List{
		testutil.Cap(0, capture.ByValue, i32, testutil.FieldStep(0, i32)),
		testutil.Cap(0, capture.ByValue, i32, testutil.FieldStep(1, i32)),
		testutil.Cap(1, capture.ByValue, i32),
	}

	remapping, err := MatchCaptures(testUnit, parent, child, 0, mir.CallMut)
	require.NoError(t, err)
	require.Len(t, remapping, 3)

	// Both refined children retarget onto parent field 0, each keeping
	// its own refinement suffix.
	assert.Equal(t, mir.Field(0), remapping[0].ParentField)
	require.Len(t, remapping[0].Extra, 1)
	assert.Equal(t, mir.Field(0), remapping[0].Extra[0].Field)

	assert.Equal(t, mir.Field(0), remapping[1].ParentField)
	require.Len(t, remapping[1].Extra, 1)
	assert.Equal(t, mir.Field(1), remapping[1].Extra[0].Field)

	assert.Equal(t, mir.Field(1), remapping[2].ParentField)
	assert.Empty(t, remapping[2].Extra)
}

func TestMatchCapturesSkipsCallArguments(t *testing.T) {
	parent := capture.List{
		testutil.Cap(0, capture.ByValue, i32),
	}
	child := testutil.WithArgs(2, capture.List{
		testutil.Cap(0, capture.ByValue, i32),
	})

	remapping, err := MatchCaptures(testUnit, parent, child, 2, mir.CallMut)
	require.NoError(t, err)
	require.Len(t, remapping, 1)

	// Both sides of the table are offset past the argument fields.
	m, ok := remapping[2]
	require.True(t, ok, "remapped child field must be offset by the argument count")
	assert.Equal(t, mir.Field(2), m.ParentField)
}

func TestMatchCapturesParentCaptureUnused(t *testing.T) {
	parent := capture.List{
		testutil.Cap(0, capture.ByValue, i32),
		testutil.Cap(1, capture.ByValue, i32),
	}
	child := capture.List{
		testutil.Cap(1, capture.ByValue, i32),
	}

	_, err := MatchCaptures(testUnit, parent, child, 0, mir.CallMut)
	require.Error(t, err)
	assert.True(t, IsConsistencyError(err))

	var ce *ConsistencyError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeParentCaptureUnused, ce.Code)
	assert.Equal(t, testUnit, ce.Unit)
}

func TestMatchCapturesParentListExhausted(t *testing.T) {
	parent := capture.List{
		testutil.Cap(0, capture.ByValue, i32),
	}
	child := capture.List{
		testutil.Cap(0, capture.ByValue, i32),
		testutil.Cap(1, capture.ByValue, i32),
	}

	_, err := MatchCaptures(testUnit, parent, child, 0, mir.CallMut)
	var ce *ConsistencyError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeParentCapturesExhausted, ce.Code)
}

func TestMatchCapturesLeftoverParents(t *testing.T) {
	parent := capture.List{
		testutil.Cap(0, capture.ByValue, i32),
		testutil.Cap(1, capture.ByValue, i32),
	}
	child := capture.List{
		testutil.Cap(0, capture.ByValue, i32),
	}

	_, err := MatchCaptures(testUnit, parent, child, 0, mir.CallMut)
	var ce *ConsistencyError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeLeftoverParentCaptures, ce.Code)
}

func TestMatchCapturesDerefUnderCallOnce(t *testing.T) {
	parent := capture.List{
		testutil.Cap(0, capture.ByValue, point),
	}
	child := capture.List{
		testutil.Cap(0, capture.ByRefShared, point),
	}

	_, err := MatchCaptures(testUnit, parent, child, 0, mir.CallOnce)
	var ce *ConsistencyError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeDerefUnderCallOnce, ce.Code)
}

func TestMatchCapturesCallOnceAllByValue(t *testing.T) {
	parent := capture.List{
		testutil.Cap(0, capture.ByValue, i32),
		testutil.Cap(1, capture.ByValue, point),
	}
	child := capture.List{
		testutil.Cap(0, capture.ByValue, i32),
		testutil.Cap(1, capture.ByValue, point),
	}

	remapping, err := MatchCaptures(testUnit, parent, child, 0, mir.CallOnce)
	require.NoError(t, err)
	assert.Len(t, remapping, len(parent))
	for _, m := range remapping {
		assert.False(t, m.NeedsDeref)
	}
}

func TestMatchCapturesEmptyLists(t *testing.T) {
	remapping, err := MatchCaptures(testUnit, nil, nil, 0, mir.CallMut)
	require.NoError(t, err)
	assert.Empty(t, remapping)
}

// TestMatchCapturesRefinedListsAlwaysMatch drives the matcher with
// randomized refinements of randomized parent lists. Every refinement
// produced by testutil.Refine satisfies the prefix relationship, so the
// matcher must always succeed, cover every child, and preserve per-row
// refinement suffixes.
func TestMatchCapturesRefinedListsAlwaysMatch(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		r := rand.New(rand.NewSource(seed))

		n := 1 + r.Intn(5)
		parent := make(capture.List, 0, n)
		for i := 0; i < n; i++ {
			mode := capture.ByValue
			if r.Intn(2) == 0 {
				mode = capture.ByRefShared
			}
			parent = append(parent, testutil.Cap(capture.UpvarID(i), mode, point))
		}

		child := testutil.Refine(r, parent)
		numArgs := r.Intn(3)
		full := testutil.WithArgs(numArgs, child)

		remapping, err := MatchCaptures(testUnit, parent, full, numArgs, mir.CallMut)
		require.NoError(t, err, "seed %d", seed)
		require.Len(t, remapping, len(child), "seed %d", seed)

		for i, c := range child {
			m, ok := remapping[mir.Field(i+numArgs)]
			require.True(t, ok, "seed %d child %d", seed, i)
			parentIdx := int(m.ParentField) - numArgs
			require.GreaterOrEqual(t, parentIdx, 0, "seed %d", seed)
			require.Less(t, parentIdx, len(parent), "seed %d", seed)
			pc := parent[parentIdx]
			assert.Equal(t, pc.Place.Base, c.Place.Base, "seed %d child %d", seed, i)
			assert.Len(t, m.Extra, len(c.Place.Projections)-len(pc.Place.Projections),
				"seed %d child %d", seed, i)
		}
	}
}
