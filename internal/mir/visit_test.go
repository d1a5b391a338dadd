package mir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nodeCounter tallies every entry point it overrides while still
// descending through the default traversal.
type nodeCounter struct {
	VisitorBase

	statements  int
	terminators int
	assigns     int
	places      int
	locals      int
	branches    int
	rvalues     int
	operands    int
	projections int
	projElems   int
	constants   int
	localDecls  int

	mutatingPlaces    int
	nonMutatingPlaces int
}

func newNodeCounter() *nodeCounter {
	c := &nodeCounter{}
	c.V = c
	return c
}

func (c *nodeCounter) VisitStatement(block BasicBlock, stmt *Statement, loc Location) {
	c.statements++
	WalkStatement(c, block, stmt, loc)
}

func (c *nodeCounter) VisitTerminator(block BasicBlock, term *Terminator, loc Location) {
	c.terminators++
	WalkTerminator(c, block, term, loc)
}

func (c *nodeCounter) VisitAssign(block BasicBlock, place Place, rv Rvalue, loc Location) {
	c.assigns++
	WalkAssign(c, block, place, rv, loc)
}

func (c *nodeCounter) VisitPlace(place Place, ctx PlaceContext, loc Location) {
	c.places++
	if ctx.IsMutatingUse() {
		c.mutatingPlaces++
	}
	if ctx.IsNonMutatingUse() {
		c.nonMutatingPlaces++
	}
	WalkPlace(c, place, ctx, loc)
}

func (c *nodeCounter) VisitLocal(local Local, ctx PlaceContext, loc Location) {
	c.locals++
	WalkLocal(c, local, ctx, loc)
}

func (c *nodeCounter) VisitBranch(source, target BasicBlock) {
	c.branches++
	WalkBranch(c, source, target)
}

func (c *nodeCounter) VisitRvalue(rv Rvalue, loc Location) {
	c.rvalues++
	WalkRvalue(c, rv, loc)
}

func (c *nodeCounter) VisitOperand(op Operand, loc Location) {
	c.operands++
	WalkOperand(c, op, loc)
}

func (c *nodeCounter) VisitProjection(place Place, ctx PlaceContext, loc Location) {
	c.projections++
	WalkProjection(c, place, ctx, loc)
}

func (c *nodeCounter) VisitProjectionElem(elem ProjectionElem, ctx PlaceContext, loc Location) {
	c.projElems++
	WalkProjectionElem(c, elem, ctx, loc)
}

func (c *nodeCounter) VisitConstant(cst Constant, loc Location) {
	c.constants++
	WalkConstant(c, cst, loc)
}

func (c *nodeCounter) VisitLocalDecl(local Local, decl *LocalDecl) {
	c.localDecls++
	WalkLocalDecl(c, local, decl)
}

// testBody builds a two-block body exercising statements, operands,
// projections, constants, and a branch:
//
//	bb0: {
//	    StorageLive(_2);
//	    _2 = (*_1).f0;
//	    _0 = BinOp(Add, _2, const 1_i32);
//	    goto -> bb1;
//	}
//	bb1: {
//	    return;
//	}
func testBody() *Body {
	i32 := IntTy{Bits: 32}
	si := SourceInfo{Scope: OuterSourceScope}

	return &Body{
		Source:       Source{Unit: "demo/unit"},
		SourceScopes: []SourceScopeData{{}},
		LocalDecls: []LocalDecl{
			{Mutable: true, Ty: i32},
			{Ty: RefTy{Mut: Mut, Elem: AdtTy{Name: "Point"}}},
			{Mutable: true, Ty: i32},
		},
		ArgCount: 1,
		Blocks: []BasicBlockData{
			{
				Statements: []Statement{
					{SourceInfo: si, Kind: &StorageLiveStmt{Local: 2}},
					{SourceInfo: si, Kind: &AssignStmt{
						Place: PlaceFor(2),
						Rv: &UseRvalue{Op: &CopyOperand{Place: Place{
							Local:      1,
							Projection: []ProjectionElem{DerefElem{}, FieldElem{Field: 0, Ty: i32}},
						}}},
					}},
					{SourceInfo: si, Kind: &AssignStmt{
						Place: PlaceFor(0),
						Rv: &BinaryOpRvalue{
							Op:  AddOp,
							Lhs: &CopyOperand{Place: PlaceFor(2)},
							Rhs: &ConstOperand{Constant: Constant{
								Ty:      i32,
								Literal: &ValueLiteral{Value: ConstVal{Ty: i32, Bits: 1}},
							}},
						},
					}},
				},
				Terminator: &Terminator{SourceInfo: si, Kind: &GotoTerm{Target: 1}},
			},
			{
				Terminator: &Terminator{SourceInfo: si, Kind: &ReturnTerm{}},
			},
		},
	}
}

func TestWalkBodyVisitsEveryNode(t *testing.T) {
	c := newNodeCounter()
	c.VisitBody(testBody())

	assert.Equal(t, 3, c.statements)
	assert.Equal(t, 2, c.terminators)
	assert.Equal(t, 2, c.assigns)
	assert.Equal(t, 4, c.places, "two store targets and two operand reads")
	assert.Equal(t, 5, c.locals, "one per place base plus the storage marker")
	assert.Equal(t, 1, c.branches)
	assert.Equal(t, 2, c.rvalues)
	assert.Equal(t, 3, c.operands)
	assert.Equal(t, 1, c.projections, "only (*_1).f0 has projections")
	assert.Equal(t, 2, c.projElems)
	assert.Equal(t, 1, c.constants)
	assert.Equal(t, 3, c.localDecls)

	assert.Equal(t, 2, c.mutatingPlaces, "the two assignment targets")
	assert.Equal(t, 2, c.nonMutatingPlaces, "the two copy reads")
}

func TestVisitLocationResolvesStatementAndTerminator(t *testing.T) {
	body := testBody()

	c := newNodeCounter()
	VisitLocation(c, body, Location{Block: 0, StatementIndex: 1})
	assert.Equal(t, 1, c.statements)
	assert.Equal(t, 0, c.terminators)

	c = newNodeCounter()
	VisitLocation(c, body, Location{Block: 0, StatementIndex: 3})
	assert.Equal(t, 0, c.statements)
	assert.Equal(t, 1, c.terminators)
}

// localRenamer rewrites every use of one local to another via the
// mutating traversal, declarations excluded.
type localRenamer struct {
	MutVisitorBase
	from, to Local
}

func (r *localRenamer) VisitLocal(local *Local, ctx PlaceContext, loc Location) {
	if *local == r.from {
		*local = r.to
	}
}

func TestMutVisitorRenamesLocalUses(t *testing.T) {
	body := testBody()

	r := &localRenamer{from: 2, to: 7}
	r.V = r
	r.VisitBody(body)

	// The storage marker and both uses moved to _7.
	live, ok := body.Blocks[0].Statements[0].Kind.(*StorageLiveStmt)
	require.True(t, ok)
	assert.Equal(t, Local(7), live.Local)

	assign, ok := body.Blocks[0].Statements[1].Kind.(*AssignStmt)
	require.True(t, ok)
	assert.Equal(t, Local(7), assign.Place.Local)

	binop, ok := body.Blocks[0].Statements[2].Kind.(*AssignStmt)
	require.True(t, ok)
	lhs, ok := binop.Rv.(*BinaryOpRvalue).Lhs.(*CopyOperand)
	require.True(t, ok)
	assert.Equal(t, Local(7), lhs.Place.Local)
}

// fieldBumper replaces field projections in place through the mutating
// element hook.
type fieldBumper struct {
	MutVisitorBase
}

func (b *fieldBumper) VisitProjectionElem(elem *ProjectionElem, ctx PlaceContext, loc Location) {
	if f, ok := (*elem).(FieldElem); ok {
		f.Field++
		*elem = f
		return
	}
	WalkProjectionElemMut(b, elem, ctx, loc)
}

func TestMutVisitorReplacesProjectionElems(t *testing.T) {
	body := testBody()

	b := &fieldBumper{}
	b.V = b
	b.VisitBody(body)

	assign := body.Blocks[0].Statements[1].Kind.(*AssignStmt)
	src := assign.Rv.(*UseRvalue).Op.(*CopyOperand).Place
	assert.Equal(t, "(*_1).f1", src.String())
}

func TestWalkPlaceUsesProjectionContextForBase(t *testing.T) {
	var got []PlaceContext
	c := &localRecorder{got: &got}
	c.V = c

	// A projected store: the base local is a mutating projection base.
	c.VisitPlace(Place{
		Local:      1,
		Projection: []ProjectionElem{DerefElem{}},
	}, StoreContext(), Location{})

	require.Len(t, got, 1)
	assert.Equal(t, ProjectionKind, got[0].Kind)
	assert.Equal(t, Mut, got[0].Mutability)

	// A projected read: non-mutating projection base.
	got = got[:0]
	c.VisitPlace(Place{
		Local:      1,
		Projection: []ProjectionElem{DerefElem{}},
	}, CopyContext(), Location{})

	require.Len(t, got, 1)
	assert.Equal(t, ProjectionKind, got[0].Kind)
	assert.Equal(t, Not, got[0].Mutability)

	// An unprojected place passes its context through unchanged.
	got = got[:0]
	c.VisitPlace(PlaceFor(1), MoveContext(), Location{})
	require.Len(t, got, 1)
	assert.Equal(t, MoveKind, got[0].Kind)
}

type localRecorder struct {
	VisitorBase
	got *[]PlaceContext
}

func (r *localRecorder) VisitLocal(local Local, ctx PlaceContext, loc Location) {
	*r.got = append(*r.got, ctx)
}
