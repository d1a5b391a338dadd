package mir

// Visitor is the read-only structural visitor: one overridable entry
// point per node kind. The default behavior of every entry point is the
// matching Walk function; an override that wants to keep descending must
// call that Walk function itself.
//
// Concrete visitors embed VisitorBase and override selectively:
//
//	type counter struct {
//		mir.VisitorBase
//		places int
//	}
//
//	func (c *counter) VisitPlace(p mir.Place, ctx mir.PlaceContext, loc mir.Location) {
//		c.places++
//		mir.WalkPlace(c, p, ctx, loc)
//	}
//
//	c := &counter{}
//	c.V = c
//	c.VisitBody(body)
type Visitor interface {
	VisitBody(body *Body)
	VisitBasicBlockData(block BasicBlock, data *BasicBlockData)
	VisitSourceScopeData(data *SourceScopeData)
	VisitStatement(block BasicBlock, stmt *Statement, loc Location)
	VisitAssign(block BasicBlock, place Place, rv Rvalue, loc Location)
	VisitTerminator(block BasicBlock, term *Terminator, loc Location)
	VisitTerminatorKind(block BasicBlock, kind TerminatorKind, loc Location)
	VisitAssertMessage(msg AssertMessage, loc Location)
	VisitRvalue(rv Rvalue, loc Location)
	VisitOperand(op Operand, loc Location)
	VisitPlace(place Place, ctx PlaceContext, loc Location)
	VisitProjection(place Place, ctx PlaceContext, loc Location)
	VisitProjectionElem(elem ProjectionElem, ctx PlaceContext, loc Location)
	VisitBranch(source, target BasicBlock)
	VisitConstant(c Constant, loc Location)
	VisitLiteral(lit Literal, loc Location)
	VisitConst(val ConstVal, loc Location)
	VisitLocalDecl(local Local, decl *LocalDecl)
	VisitLocal(local Local, ctx PlaceContext, loc Location)
	VisitSourceInfo(si SourceInfo)
	VisitSourceScope(scope SourceScope)
	VisitSpan(span Span)
	VisitTy(ty Ty, ctx TyContext)
	VisitRegion(region Region, loc Location)
	VisitGenericArgs(args GenericArgs, loc Location)
	VisitAggregateKind(kind AggregateKind, loc Location)
}

// WalkBody is the default traversal of a body: blocks in order, then
// scopes, the return type, local declarations, and the body span.
func WalkBody(v Visitor, body *Body) {
	for bb := range body.Blocks {
		v.VisitBasicBlockData(BasicBlock(bb), &body.Blocks[bb])
	}
	for i := range body.SourceScopes {
		v.VisitSourceScopeData(&body.SourceScopes[i])
	}
	v.VisitTy(body.ReturnTy(), ReturnTyContext(SourceInfo{
		Span:  body.Span,
		Scope: OuterSourceScope,
	}))
	for l := range body.LocalDecls {
		v.VisitLocalDecl(Local(l), &body.LocalDecls[l])
	}
	v.VisitSpan(body.Span)
}

// WalkBasicBlockData visits the statements in order, then the
// terminator. The terminator's location index is the statement count.
func WalkBasicBlockData(v Visitor, block BasicBlock, data *BasicBlockData) {
	for i := range data.Statements {
		loc := Location{Block: block, StatementIndex: i}
		v.VisitStatement(block, &data.Statements[i], loc)
	}
	if data.Terminator != nil {
		loc := Location{Block: block, StatementIndex: len(data.Statements)}
		v.VisitTerminator(block, data.Terminator, loc)
	}
}

// WalkSourceScopeData visits the scope's span and parent.
func WalkSourceScopeData(v Visitor, data *SourceScopeData) {
	v.VisitSpan(data.Span)
	if data.Parent != nil {
		v.VisitSourceScope(*data.Parent)
	}
}

// WalkStatement visits the source info, then the kind through its
// traversal hook.
func WalkStatement(v Visitor, block BasicBlock, stmt *Statement, loc Location) {
	v.VisitSourceInfo(stmt.SourceInfo)
	stmt.Kind.walkStmt(v, block, loc)
}

// WalkAssign visits the target place in store context, then the rvalue.
func WalkAssign(v Visitor, block BasicBlock, place Place, rv Rvalue, loc Location) {
	v.VisitPlace(place, StoreContext(), loc)
	v.VisitRvalue(rv, loc)
}

// WalkTerminator visits the source info, then the kind.
func WalkTerminator(v Visitor, block BasicBlock, term *Terminator, loc Location) {
	v.VisitSourceInfo(term.SourceInfo)
	v.VisitTerminatorKind(block, term.Kind, loc)
}

// WalkTerminatorKind dispatches through the kind's traversal hook.
func WalkTerminatorKind(v Visitor, block BasicBlock, kind TerminatorKind, loc Location) {
	kind.walkTerm(v, block, loc)
}

// WalkAssertMessage dispatches through the message's traversal hook.
func WalkAssertMessage(v Visitor, msg AssertMessage, loc Location) {
	msg.walkMsg(v, loc)
}

// WalkRvalue dispatches through the rvalue's traversal hook.
func WalkRvalue(v Visitor, rv Rvalue, loc Location) {
	rv.walkRvalue(v, loc)
}

// WalkOperand dispatches through the operand's traversal hook.
func WalkOperand(v Visitor, op Operand, loc Location) {
	op.walkOperand(v, loc)
}

// WalkPlace visits the base local, then the projection sequence. When
// projections are present the base and the elements are visited in
// projection-base context, whose mutability mirrors whether the outer
// use mutates.
func WalkPlace(v Visitor, place Place, ctx PlaceContext, loc Location) {
	baseCtx := ctx
	if len(place.Projection) > 0 {
		if ctx.IsMutatingUse() {
			baseCtx = ProjectionContext(Mut)
		} else {
			baseCtx = ProjectionContext(Not)
		}
	}
	v.VisitLocal(place.Local, baseCtx, loc)
	if len(place.Projection) > 0 {
		v.VisitProjection(place, baseCtx, loc)
	}
}

// WalkProjection visits each projection element left to right.
func WalkProjection(v Visitor, place Place, ctx PlaceContext, loc Location) {
	for _, elem := range place.Projection {
		v.VisitProjectionElem(elem, ctx, loc)
	}
}

// WalkProjectionElem dispatches through the element's traversal hook.
func WalkProjectionElem(v Visitor, elem ProjectionElem, ctx PlaceContext, loc Location) {
	elem.walkElem(v, ctx, loc)
}

// WalkBranch is a leaf.
func WalkBranch(v Visitor, source, target BasicBlock) {}

// WalkConstant visits the constant's span, type, and literal.
func WalkConstant(v Visitor, c Constant, loc Location) {
	v.VisitSpan(c.Span)
	v.VisitTy(c.Ty, LocationTyContext(loc))
	v.VisitLiteral(c.Literal, loc)
}

// WalkLiteral dispatches through the literal's traversal hook.
func WalkLiteral(v Visitor, lit Literal, loc Location) {
	lit.walkLit(v, loc)
}

// WalkConst is a leaf.
func WalkConst(v Visitor, val ConstVal, loc Location) {}

// WalkLocalDecl visits the declared type, source info, and scope.
func WalkLocalDecl(v Visitor, local Local, decl *LocalDecl) {
	v.VisitTy(decl.Ty, LocalDeclTyContext(local, decl.SourceInfo))
	v.VisitSourceInfo(decl.SourceInfo)
	v.VisitSourceScope(decl.Scope)
}

// WalkLocal is a leaf.
func WalkLocal(v Visitor, local Local, ctx PlaceContext, loc Location) {}

// WalkSourceInfo visits the span and scope.
func WalkSourceInfo(v Visitor, si SourceInfo) {
	v.VisitSpan(si.Span)
	v.VisitSourceScope(si.Scope)
}

// WalkSourceScope is a leaf.
func WalkSourceScope(v Visitor, scope SourceScope) {}

// WalkSpan is a leaf.
func WalkSpan(v Visitor, span Span) {}

// WalkTy is a leaf: types are not recursed into by the structural
// traversal.
func WalkTy(v Visitor, ty Ty, ctx TyContext) {}

// WalkRegion is a leaf.
func WalkRegion(v Visitor, region Region, loc Location) {}

// WalkGenericArgs is a leaf.
func WalkGenericArgs(v Visitor, args GenericArgs, loc Location) {}

// WalkAggregateKind dispatches through the kind's traversal hook.
func WalkAggregateKind(v Visitor, kind AggregateKind, loc Location) {
	kind.walkAgg(v, loc)
}

// VisitLocation resolves the statement or terminator at loc and
// dispatches to the matching entry point. Pure lookup; no independent
// logic.
func VisitLocation(v Visitor, body *Body, loc Location) {
	data := &body.Blocks[loc.Block]
	if loc.StatementIndex == len(data.Statements) {
		if data.Terminator != nil {
			v.VisitTerminator(loc.Block, data.Terminator, loc)
		}
		return
	}
	v.VisitStatement(loc.Block, &data.Statements[loc.StatementIndex], loc)
}

// VisitorBase implements every Visitor entry point with the default
// structural recursion, delegating through V so that overrides on the
// outer type intercept nested visits. Embedders must set V to the outer
// visitor before use.
type VisitorBase struct {
	V Visitor
}

func (b *VisitorBase) VisitBody(body *Body) { WalkBody(b.V, body) }

func (b *VisitorBase) VisitBasicBlockData(block BasicBlock, data *BasicBlockData) {
	WalkBasicBlockData(b.V, block, data)
}

func (b *VisitorBase) VisitSourceScopeData(data *SourceScopeData) {
	WalkSourceScopeData(b.V, data)
}

func (b *VisitorBase) VisitStatement(block BasicBlock, stmt *Statement, loc Location) {
	WalkStatement(b.V, block, stmt, loc)
}

func (b *VisitorBase) VisitAssign(block BasicBlock, place Place, rv Rvalue, loc Location) {
	WalkAssign(b.V, block, place, rv, loc)
}

func (b *VisitorBase) VisitTerminator(block BasicBlock, term *Terminator, loc Location) {
	WalkTerminator(b.V, block, term, loc)
}

func (b *VisitorBase) VisitTerminatorKind(block BasicBlock, kind TerminatorKind, loc Location) {
	WalkTerminatorKind(b.V, block, kind, loc)
}

func (b *VisitorBase) VisitAssertMessage(msg AssertMessage, loc Location) {
	WalkAssertMessage(b.V, msg, loc)
}

func (b *VisitorBase) VisitRvalue(rv Rvalue, loc Location) { WalkRvalue(b.V, rv, loc) }

func (b *VisitorBase) VisitOperand(op Operand, loc Location) { WalkOperand(b.V, op, loc) }

func (b *VisitorBase) VisitPlace(place Place, ctx PlaceContext, loc Location) {
	WalkPlace(b.V, place, ctx, loc)
}

func (b *VisitorBase) VisitProjection(place Place, ctx PlaceContext, loc Location) {
	WalkProjection(b.V, place, ctx, loc)
}

func (b *VisitorBase) VisitProjectionElem(elem ProjectionElem, ctx PlaceContext, loc Location) {
	WalkProjectionElem(b.V, elem, ctx, loc)
}

func (b *VisitorBase) VisitBranch(source, target BasicBlock) { WalkBranch(b.V, source, target) }

func (b *VisitorBase) VisitConstant(c Constant, loc Location) { WalkConstant(b.V, c, loc) }

func (b *VisitorBase) VisitLiteral(lit Literal, loc Location) { WalkLiteral(b.V, lit, loc) }

func (b *VisitorBase) VisitConst(val ConstVal, loc Location) { WalkConst(b.V, val, loc) }

func (b *VisitorBase) VisitLocalDecl(local Local, decl *LocalDecl) {
	WalkLocalDecl(b.V, local, decl)
}

func (b *VisitorBase) VisitLocal(local Local, ctx PlaceContext, loc Location) {
	WalkLocal(b.V, local, ctx, loc)
}

func (b *VisitorBase) VisitSourceInfo(si SourceInfo) { WalkSourceInfo(b.V, si) }

func (b *VisitorBase) VisitSourceScope(scope SourceScope) { WalkSourceScope(b.V, scope) }

func (b *VisitorBase) VisitSpan(span Span) { WalkSpan(b.V, span) }

func (b *VisitorBase) VisitTy(ty Ty, ctx TyContext) { WalkTy(b.V, ty, ctx) }

func (b *VisitorBase) VisitRegion(region Region, loc Location) { WalkRegion(b.V, region, loc) }

func (b *VisitorBase) VisitGenericArgs(args GenericArgs, loc Location) {
	WalkGenericArgs(b.V, args, loc)
}

func (b *VisitorBase) VisitAggregateKind(kind AggregateKind, loc Location) {
	WalkAggregateKind(b.V, kind, loc)
}
