package mir

// MutVisitor is the mutating structural visitor. It shares the traversal
// shape of Visitor but hands out exclusive references, permitting
// in-place replacement of any visited place, operand, type, constant, or
// projection element. Embed MutVisitorBase and set V exactly as with
// VisitorBase.
type MutVisitor interface {
	VisitBody(body *Body)
	VisitBasicBlockData(block BasicBlock, data *BasicBlockData)
	VisitSourceScopeData(data *SourceScopeData)
	VisitStatement(block BasicBlock, stmt *Statement, loc Location)
	VisitAssign(block BasicBlock, place *Place, rv *Rvalue, loc Location)
	VisitTerminator(block BasicBlock, term *Terminator, loc Location)
	VisitTerminatorKind(block BasicBlock, kind TerminatorKind, loc Location)
	VisitAssertMessage(msg AssertMessage, loc Location)
	VisitRvalue(rv *Rvalue, loc Location)
	VisitOperand(op *Operand, loc Location)
	VisitPlace(place *Place, ctx PlaceContext, loc Location)
	VisitProjection(place *Place, ctx PlaceContext, loc Location)
	VisitProjectionElem(elem *ProjectionElem, ctx PlaceContext, loc Location)
	VisitBranch(source, target BasicBlock)
	VisitConstant(c *Constant, loc Location)
	VisitLiteral(lit Literal, loc Location)
	VisitConst(val *ConstVal, loc Location)
	VisitLocalDecl(local Local, decl *LocalDecl)
	VisitLocal(local *Local, ctx PlaceContext, loc Location)
	VisitSourceInfo(si *SourceInfo)
	VisitSourceScope(scope *SourceScope)
	VisitSpan(span *Span)
	VisitTy(ty *Ty, ctx TyContext)
	VisitRegion(region *Region, loc Location)
	VisitGenericArgs(args *GenericArgs, loc Location)
	VisitAggregateKind(kind AggregateKind, loc Location)
}

// WalkBodyMut mirrors WalkBody with exclusive references.
func WalkBodyMut(v MutVisitor, body *Body) {
	for bb := range body.Blocks {
		v.VisitBasicBlockData(BasicBlock(bb), &body.Blocks[bb])
	}
	for i := range body.SourceScopes {
		v.VisitSourceScopeData(&body.SourceScopes[i])
	}
	v.VisitTy(&body.LocalDecls[ReturnLocal].Ty, ReturnTyContext(SourceInfo{
		Span:  body.Span,
		Scope: OuterSourceScope,
	}))
	for l := range body.LocalDecls {
		v.VisitLocalDecl(Local(l), &body.LocalDecls[l])
	}
	v.VisitSpan(&body.Span)
}

// WalkBasicBlockDataMut mirrors WalkBasicBlockData.
func WalkBasicBlockDataMut(v MutVisitor, block BasicBlock, data *BasicBlockData) {
	for i := range data.Statements {
		loc := Location{Block: block, StatementIndex: i}
		v.VisitStatement(block, &data.Statements[i], loc)
	}
	if data.Terminator != nil {
		loc := Location{Block: block, StatementIndex: len(data.Statements)}
		v.VisitTerminator(block, data.Terminator, loc)
	}
}

// WalkSourceScopeDataMut mirrors WalkSourceScopeData.
func WalkSourceScopeDataMut(v MutVisitor, data *SourceScopeData) {
	v.VisitSpan(&data.Span)
	if data.Parent != nil {
		v.VisitSourceScope(data.Parent)
	}
}

// WalkStatementMut mirrors WalkStatement.
func WalkStatementMut(v MutVisitor, block BasicBlock, stmt *Statement, loc Location) {
	v.VisitSourceInfo(&stmt.SourceInfo)
	stmt.Kind.walkStmtMut(v, block, loc)
}

// WalkAssignMut mirrors WalkAssign.
func WalkAssignMut(v MutVisitor, block BasicBlock, place *Place, rv *Rvalue, loc Location) {
	v.VisitPlace(place, StoreContext(), loc)
	v.VisitRvalue(rv, loc)
}

// WalkTerminatorMut mirrors WalkTerminator.
func WalkTerminatorMut(v MutVisitor, block BasicBlock, term *Terminator, loc Location) {
	v.VisitSourceInfo(&term.SourceInfo)
	v.VisitTerminatorKind(block, term.Kind, loc)
}

// WalkTerminatorKindMut mirrors WalkTerminatorKind.
func WalkTerminatorKindMut(v MutVisitor, block BasicBlock, kind TerminatorKind, loc Location) {
	kind.walkTermMut(v, block, loc)
}

// WalkAssertMessageMut mirrors WalkAssertMessage.
func WalkAssertMessageMut(v MutVisitor, msg AssertMessage, loc Location) {
	msg.walkMsgMut(v, loc)
}

// WalkRvalueMut mirrors WalkRvalue.
func WalkRvalueMut(v MutVisitor, rv *Rvalue, loc Location) {
	(*rv).walkRvalueMut(v, loc)
}

// WalkOperandMut mirrors WalkOperand.
func WalkOperandMut(v MutVisitor, op *Operand, loc Location) {
	(*op).walkOperandMut(v, loc)
}

// WalkPlaceMut mirrors WalkPlace.
func WalkPlaceMut(v MutVisitor, place *Place, ctx PlaceContext, loc Location) {
	baseCtx := ctx
	if len(place.Projection) > 0 {
		if ctx.IsMutatingUse() {
			baseCtx = ProjectionContext(Mut)
		} else {
			baseCtx = ProjectionContext(Not)
		}
	}
	v.VisitLocal(&place.Local, baseCtx, loc)
	if len(place.Projection) > 0 {
		v.VisitProjection(place, baseCtx, loc)
	}
}

// WalkProjectionMut visits each projection element through a pointer so
// elements can be replaced in place.
func WalkProjectionMut(v MutVisitor, place *Place, ctx PlaceContext, loc Location) {
	for i := range place.Projection {
		v.VisitProjectionElem(&place.Projection[i], ctx, loc)
	}
}

// WalkProjectionElemMut dispatches through the element's mutating hook
// and writes the result back.
func WalkProjectionElemMut(v MutVisitor, elem *ProjectionElem, ctx PlaceContext, loc Location) {
	*elem = (*elem).walkElemMut(v, ctx, loc)
}

// WalkBranchMut is a leaf.
func WalkBranchMut(v MutVisitor, source, target BasicBlock) {}

// WalkConstantMut mirrors WalkConstant.
func WalkConstantMut(v MutVisitor, c *Constant, loc Location) {
	v.VisitSpan(&c.Span)
	v.VisitTy(&c.Ty, LocationTyContext(loc))
	v.VisitLiteral(c.Literal, loc)
}

// WalkLiteralMut mirrors WalkLiteral.
func WalkLiteralMut(v MutVisitor, lit Literal, loc Location) {
	lit.walkLitMut(v, loc)
}

// WalkConstMut is a leaf.
func WalkConstMut(v MutVisitor, val *ConstVal, loc Location) {}

// WalkLocalDeclMut mirrors WalkLocalDecl.
func WalkLocalDeclMut(v MutVisitor, local Local, decl *LocalDecl) {
	v.VisitTy(&decl.Ty, LocalDeclTyContext(local, decl.SourceInfo))
	v.VisitSourceInfo(&decl.SourceInfo)
	v.VisitSourceScope(&decl.Scope)
}

// WalkLocalMut is a leaf.
func WalkLocalMut(v MutVisitor, local *Local, ctx PlaceContext, loc Location) {}

// WalkSourceInfoMut mirrors WalkSourceInfo.
func WalkSourceInfoMut(v MutVisitor, si *SourceInfo) {
	v.VisitSpan(&si.Span)
	v.VisitSourceScope(&si.Scope)
}

// WalkSourceScopeMut is a leaf.
func WalkSourceScopeMut(v MutVisitor, scope *SourceScope) {}

// WalkSpanMut is a leaf.
func WalkSpanMut(v MutVisitor, span *Span) {}

// WalkTyMut is a leaf.
func WalkTyMut(v MutVisitor, ty *Ty, ctx TyContext) {}

// WalkRegionMut is a leaf.
func WalkRegionMut(v MutVisitor, region *Region, loc Location) {}

// WalkGenericArgsMut is a leaf.
func WalkGenericArgsMut(v MutVisitor, args *GenericArgs, loc Location) {}

// WalkAggregateKindMut dispatches through the kind's mutating hook.
func WalkAggregateKindMut(v MutVisitor, kind AggregateKind, loc Location) {
	kind.walkAggMut(v, loc)
}

// MutVisitLocation resolves the statement or terminator at loc and
// dispatches to the matching entry point.
func MutVisitLocation(v MutVisitor, body *Body, loc Location) {
	data := &body.Blocks[loc.Block]
	if loc.StatementIndex == len(data.Statements) {
		if data.Terminator != nil {
			v.VisitTerminator(loc.Block, data.Terminator, loc)
		}
		return
	}
	v.VisitStatement(loc.Block, &data.Statements[loc.StatementIndex], loc)
}

// MutVisitorBase implements every MutVisitor entry point with the
// default structural recursion, delegating through V. Embedders must set
// V to the outer visitor before use.
type MutVisitorBase struct {
	V MutVisitor
}

func (b *MutVisitorBase) VisitBody(body *Body) { WalkBodyMut(b.V, body) }

func (b *MutVisitorBase) VisitBasicBlockData(block BasicBlock, data *BasicBlockData) {
	WalkBasicBlockDataMut(b.V, block, data)
}

func (b *MutVisitorBase) VisitSourceScopeData(data *SourceScopeData) {
	WalkSourceScopeDataMut(b.V, data)
}

func (b *MutVisitorBase) VisitStatement(block BasicBlock, stmt *Statement, loc Location) {
	WalkStatementMut(b.V, block, stmt, loc)
}

func (b *MutVisitorBase) VisitAssign(block BasicBlock, place *Place, rv *Rvalue, loc Location) {
	WalkAssignMut(b.V, block, place, rv, loc)
}

func (b *MutVisitorBase) VisitTerminator(block BasicBlock, term *Terminator, loc Location) {
	WalkTerminatorMut(b.V, block, term, loc)
}

func (b *MutVisitorBase) VisitTerminatorKind(block BasicBlock, kind TerminatorKind, loc Location) {
	WalkTerminatorKindMut(b.V, block, kind, loc)
}

func (b *MutVisitorBase) VisitAssertMessage(msg AssertMessage, loc Location) {
	WalkAssertMessageMut(b.V, msg, loc)
}

func (b *MutVisitorBase) VisitRvalue(rv *Rvalue, loc Location) { WalkRvalueMut(b.V, rv, loc) }

func (b *MutVisitorBase) VisitOperand(op *Operand, loc Location) { WalkOperandMut(b.V, op, loc) }

func (b *MutVisitorBase) VisitPlace(place *Place, ctx PlaceContext, loc Location) {
	WalkPlaceMut(b.V, place, ctx, loc)
}

func (b *MutVisitorBase) VisitProjection(place *Place, ctx PlaceContext, loc Location) {
	WalkProjectionMut(b.V, place, ctx, loc)
}

func (b *MutVisitorBase) VisitProjectionElem(elem *ProjectionElem, ctx PlaceContext, loc Location) {
	WalkProjectionElemMut(b.V, elem, ctx, loc)
}

func (b *MutVisitorBase) VisitBranch(source, target BasicBlock) {
	WalkBranchMut(b.V, source, target)
}

func (b *MutVisitorBase) VisitConstant(c *Constant, loc Location) { WalkConstantMut(b.V, c, loc) }

func (b *MutVisitorBase) VisitLiteral(lit Literal, loc Location) { WalkLiteralMut(b.V, lit, loc) }

func (b *MutVisitorBase) VisitConst(val *ConstVal, loc Location) { WalkConstMut(b.V, val, loc) }

func (b *MutVisitorBase) VisitLocalDecl(local Local, decl *LocalDecl) {
	WalkLocalDeclMut(b.V, local, decl)
}

func (b *MutVisitorBase) VisitLocal(local *Local, ctx PlaceContext, loc Location) {
	WalkLocalMut(b.V, local, ctx, loc)
}

func (b *MutVisitorBase) VisitSourceInfo(si *SourceInfo) { WalkSourceInfoMut(b.V, si) }

func (b *MutVisitorBase) VisitSourceScope(scope *SourceScope) { WalkSourceScopeMut(b.V, scope) }

func (b *MutVisitorBase) VisitSpan(span *Span) { WalkSpanMut(b.V, span) }

func (b *MutVisitorBase) VisitTy(ty *Ty, ctx TyContext) { WalkTyMut(b.V, ty, ctx) }

func (b *MutVisitorBase) VisitRegion(region *Region, loc Location) { WalkRegionMut(b.V, region, loc) }

func (b *MutVisitorBase) VisitGenericArgs(args *GenericArgs, loc Location) {
	WalkGenericArgsMut(b.V, args, loc)
}

func (b *MutVisitorBase) VisitAggregateKind(kind AggregateKind, loc Location) {
	WalkAggregateKindMut(b.V, kind, loc)
}
