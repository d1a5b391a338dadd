package mir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneProducesEqualBody(t *testing.T) {
	body := testBody()
	clone := body.Clone()

	assert.Equal(t, FormatBody(body), FormatBody(clone))
	assert.Equal(t, Fingerprint(body), Fingerprint(clone))
}

func TestCloneSharesNoMutableState(t *testing.T) {
	body := testBody()
	body.Coroutine = &CoroutineInfo{
		Kind:   CallMut,
		Source: CoroutineSourceClosure,
		Parent: "demo/parent",
	}
	before := FormatBody(body)

	clone := body.Clone()

	// Rewrite every local use and decl type in the clone.
	r := &localRenamer{from: 2, to: 9}
	r.V = r
	r.VisitBody(clone)
	clone.LocalDecls[0].Ty = BoolTy{}
	clone.Blocks[0].Statements[0].Kind = &NopStmt{}
	clone.Coroutine.Kind = CallOnce
	clone.Source.Origin = OriginByMoveShim

	assert.Equal(t, before, FormatBody(body), "mutating the clone must not touch the original")
	require.NotNil(t, body.Coroutine)
	assert.Equal(t, CallMut, body.Coroutine.Kind)
	assert.Equal(t, OriginItem, body.Source.Origin)
}

func TestCloneCoversEveryStatementAndTerminatorShape(t *testing.T) {
	unwind := BasicBlock(3)
	drop := BasicBlock(2)
	si := SourceInfo{}
	i32 := IntTy{Bits: 32}

	body := &Body{
		Source:       Source{Unit: "demo/all"},
		SourceScopes: []SourceScopeData{{}},
		LocalDecls:   []LocalDecl{{Ty: UnitTy{}}, {Ty: i32}},
		ArgCount:     1,
		Blocks: []BasicBlockData{
			{
				Statements: []Statement{
					{SourceInfo: si, Kind: &SetDiscriminantStmt{Place: PlaceFor(1), Variant: 2}},
					{SourceInfo: si, Kind: &ValidateStmt{Operands: []ValidateOperand{{Place: PlaceFor(1), Ty: i32}}}},
					{SourceInfo: si, Kind: &InlineAsmStmt{
						Outputs: []Place{PlaceFor(1)},
						Inputs:  []Operand{&MoveOperand{Place: PlaceFor(1)}},
					}},
					{SourceInfo: si, Kind: &EndRegionStmt{Region: ErasedRegion}},
					{SourceInfo: si, Kind: &NopStmt{}},
				},
				Terminator: &Terminator{SourceInfo: si, Kind: &SwitchIntTerm{
					Discr:    &CopyOperand{Place: PlaceFor(1)},
					SwitchTy: i32,
					Values:   []uint64{0},
					Targets:  []BasicBlock{1, 2},
				}},
			},
			{
				Statements: []Statement{
					{SourceInfo: si, Kind: &AssignStmt{
						Place: PlaceFor(1),
						Rv: &AggregateRvalue{
							Kind:     &TupleAgg{},
							Operands: []Operand{&MoveOperand{Place: PlaceFor(1)}},
						},
					}},
				},
				Terminator: &Terminator{SourceInfo: si, Kind: &AssertTerm{
					Cond:     &CopyOperand{Place: PlaceFor(1)},
					Expected: true,
					Msg: &BoundsCheckMessage{
						Len:   &CopyOperand{Place: PlaceFor(1)},
						Index: &CopyOperand{Place: PlaceFor(1)},
					},
					Target:  2,
					Cleanup: &unwind,
				}},
			},
			{
				Terminator: &Terminator{SourceInfo: si, Kind: &YieldTerm{
					Value:  &MoveOperand{Place: PlaceFor(1)},
					Resume: 0,
					Drop:   &drop,
				}},
			},
			{
				IsCleanup:  true,
				Terminator: &Terminator{SourceInfo: si, Kind: &ResumeTerm{}},
			},
		},
	}

	clone := body.Clone()
	assert.Equal(t, FormatBody(body), FormatBody(clone))

	// Rewriting cloned operands must not leak into the original.
	r := &localRenamer{from: 1, to: 5}
	r.V = r
	r.VisitBody(clone)
	assert.NotEqual(t, FormatBody(body), FormatBody(clone))
}
