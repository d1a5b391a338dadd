package testutil

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mirpass/internal/capture"
	"github.com/roach88/mirpass/internal/mir"
)

func TestBodyBuilderLayout(t *testing.T) {
	i32 := mir.IntTy{Bits: 32}
	captureTy := mir.CoroutineTy{Unit: "u/child", Kind: mir.CallMut, Upvars: []mir.Ty{i32}}

	b := NewCoroutineBody("u/child", "u/parent", mir.CallMut, captureTy)
	x := b.NewLocal(i32, false)
	b.MoveFromCapture(x, mir.FieldElem{Field: 0, Ty: i32})
	body := b.Finish()

	require.Len(t, body.LocalDecls, 3)
	assert.Equal(t, mir.UnitTy{}, body.LocalDecls[mir.ReturnLocal].Ty)
	assert.Equal(t, captureTy, body.LocalDecls[mir.CaptureStructLocal].Ty)
	assert.Equal(t, 1, body.ArgCount)

	require.NotNil(t, body.Coroutine)
	assert.Equal(t, mir.CoroutineSourceClosure, body.Coroutine.Source)
	assert.Equal(t, mir.UnitID("u/parent"), body.Coroutine.Parent)
	assert.Equal(t, mir.OriginItem, body.Source.Origin)

	require.Len(t, body.Blocks, 1)
	require.Len(t, body.Blocks[0].Statements, 1)
	require.IsType(t, &mir.ReturnTerm{}, body.Blocks[0].Terminator.Kind)

	assign := body.Blocks[0].Statements[0].Kind.(*mir.AssignStmt)
	src := assign.Rv.(*mir.UseRvalue).Op.(*mir.MoveOperand).Place
	assert.Equal(t, "_1.f0", src.String())
}

func TestBodyBuilderIsDeterministic(t *testing.T) {
	build := func() *mir.Body {
		i32 := mir.IntTy{Bits: 32}
		ty := mir.CoroutineTy{Unit: "u/c", Kind: mir.CallMut, Upvars: []mir.Ty{i32}}
		b := NewCoroutineBody("u/c", "u/p", mir.CallMut, ty)
		x := b.NewLocal(i32, true)
		b.StorageLive(x)
		b.CopyFromCapture(x, mir.FieldElem{Field: 0, Ty: i32})
		b.StorageDead(x)
		return b.Finish()
	}

	assert.Equal(t, mir.Fingerprint(build()), mir.Fingerprint(build()))
}

func TestWithArgsPrependsArgumentCaptures(t *testing.T) {
	upvars := capture.List{
		Cap(0, capture.ByValue, mir.IntTy{Bits: 32}),
	}
	full := WithArgs(2, upvars)

	require.Len(t, full, 3)
	assert.Equal(t, upvars[0], full[2])
	assert.NoError(t, full.Validate())
}

func TestRefinePreservesPrefixRelationship(t *testing.T) {
	point := mir.AdtTy{Name: "Point"}

	for seed := int64(0); seed < 20; seed++ {
		r := rand.New(rand.NewSource(seed))

		parent := capture.List{
			Cap(0, capture.ByValue, point),
			Cap(1, capture.ByRefShared, point),
			Cap(2, capture.ByValue, point),
		}
		child := Refine(r, parent)

		require.GreaterOrEqual(t, len(child), len(parent), "seed %d", seed)
		assert.NoError(t, child.Validate(), "seed %d", seed)

		// Every child extends some parent in order, and every parent is
		// served at least once.
		parentIdx := 0
		for i, c := range child {
			for parentIdx < len(parent) && !capture.PrefixMatches(parent[parentIdx], c) {
				parentIdx++
			}
			require.Less(t, parentIdx, len(parent), "seed %d child %d has no parent", seed, i)
		}
		assert.Equal(t, len(parent)-1, parentIdx, "seed %d: trailing parents unserved", seed)
	}
}
