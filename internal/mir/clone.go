package mir

import "fmt"

// Clone produces a deep copy of the body sharing no mutable
// substructure with the original: every block, statement, terminator,
// operand, place, and declaration is re-allocated, so the copy and the
// original can be rewritten independently by later pipeline stages.
//
// Ty values are treated as immutable: visitors replace whole type
// references rather than mutating their interiors, so type innards may
// be shared between the two bodies.
func (b *Body) Clone() *Body {
	clone := &Body{
		Source:       b.Source,
		Blocks:       make([]BasicBlockData, len(b.Blocks)),
		SourceScopes: make([]SourceScopeData, len(b.SourceScopes)),
		LocalDecls:   make([]LocalDecl, len(b.LocalDecls)),
		ArgCount:     b.ArgCount,
		Span:         b.Span,
	}
	for i := range b.Blocks {
		clone.Blocks[i] = cloneBlock(&b.Blocks[i])
	}
	for i := range b.SourceScopes {
		clone.SourceScopes[i] = b.SourceScopes[i]
		if p := b.SourceScopes[i].Parent; p != nil {
			parent := *p
			clone.SourceScopes[i].Parent = &parent
		}
	}
	copy(clone.LocalDecls, b.LocalDecls)
	if b.Coroutine != nil {
		info := *b.Coroutine
		clone.Coroutine = &info
	}
	return clone
}

func cloneBlock(data *BasicBlockData) BasicBlockData {
	out := BasicBlockData{
		Statements: make([]Statement, len(data.Statements)),
		IsCleanup:  data.IsCleanup,
	}
	for i := range data.Statements {
		out.Statements[i] = Statement{
			SourceInfo: data.Statements[i].SourceInfo,
			Kind:       cloneStatementKind(data.Statements[i].Kind),
		}
	}
	if data.Terminator != nil {
		out.Terminator = &Terminator{
			SourceInfo: data.Terminator.SourceInfo,
			Kind:       cloneTerminatorKind(data.Terminator.Kind),
		}
	}
	return out
}

func cloneStatementKind(kind StatementKind) StatementKind {
	switch k := kind.(type) {
	case *AssignStmt:
		return &AssignStmt{Place: clonePlace(k.Place), Rv: cloneRvalue(k.Rv)}
	case *SetDiscriminantStmt:
		return &SetDiscriminantStmt{Place: clonePlace(k.Place), Variant: k.Variant}
	case *StorageLiveStmt:
		return &StorageLiveStmt{Local: k.Local}
	case *StorageDeadStmt:
		return &StorageDeadStmt{Local: k.Local}
	case *ValidateStmt:
		ops := make([]ValidateOperand, len(k.Operands))
		for i, op := range k.Operands {
			ops[i] = ValidateOperand{Place: clonePlace(op.Place), Ty: op.Ty}
		}
		return &ValidateStmt{Operands: ops}
	case *InlineAsmStmt:
		outs := make([]Place, len(k.Outputs))
		for i, p := range k.Outputs {
			outs[i] = clonePlace(p)
		}
		ins := make([]Operand, len(k.Inputs))
		for i, op := range k.Inputs {
			ins[i] = cloneOperand(op)
		}
		return &InlineAsmStmt{Outputs: outs, Inputs: ins}
	case *EndRegionStmt:
		return &EndRegionStmt{Region: k.Region}
	case *NopStmt:
		return &NopStmt{}
	default:
		panic(fmt.Sprintf("mir: clone of unknown statement kind %T", kind))
	}
}

func cloneTerminatorKind(kind TerminatorKind) TerminatorKind {
	switch k := kind.(type) {
	case *GotoTerm:
		return &GotoTerm{Target: k.Target}
	case *SwitchIntTerm:
		return &SwitchIntTerm{
			Discr:    cloneOperand(k.Discr),
			SwitchTy: k.SwitchTy,
			Values:   append([]uint64(nil), k.Values...),
			Targets:  append([]BasicBlock(nil), k.Targets...),
		}
	case *ResumeTerm:
		return &ResumeTerm{}
	case *ReturnTerm:
		return &ReturnTerm{}
	case *UnreachableTerm:
		return &UnreachableTerm{}
	case *CoroutineDropTerm:
		return &CoroutineDropTerm{}
	case *DropTerm:
		return &DropTerm{Place: clonePlace(k.Place), Target: k.Target, Unwind: cloneBlockRef(k.Unwind)}
	case *DropAndReplaceTerm:
		return &DropAndReplaceTerm{
			Place:  clonePlace(k.Place),
			Value:  cloneOperand(k.Value),
			Target: k.Target,
			Unwind: cloneBlockRef(k.Unwind),
		}
	case *CallTerm:
		args := make([]Operand, len(k.Args))
		for i, arg := range k.Args {
			args[i] = cloneOperand(arg)
		}
		var dest *CallDestination
		if k.Destination != nil {
			dest = &CallDestination{Place: clonePlace(k.Destination.Place), Target: k.Destination.Target}
		}
		return &CallTerm{
			Func:        cloneOperand(k.Func),
			Args:        args,
			Destination: dest,
			Cleanup:     cloneBlockRef(k.Cleanup),
		}
	case *AssertTerm:
		return &AssertTerm{
			Cond:     cloneOperand(k.Cond),
			Expected: k.Expected,
			Msg:      cloneAssertMessage(k.Msg),
			Target:   k.Target,
			Cleanup:  cloneBlockRef(k.Cleanup),
		}
	case *YieldTerm:
		return &YieldTerm{Value: cloneOperand(k.Value), Resume: k.Resume, Drop: cloneBlockRef(k.Drop)}
	case *FalseEdgesTerm:
		return &FalseEdgesTerm{
			RealTarget:       k.RealTarget,
			ImaginaryTargets: append([]BasicBlock(nil), k.ImaginaryTargets...),
		}
	default:
		panic(fmt.Sprintf("mir: clone of unknown terminator kind %T", kind))
	}
}

func cloneAssertMessage(msg AssertMessage) AssertMessage {
	switch m := msg.(type) {
	case *BoundsCheckMessage:
		return &BoundsCheckMessage{Len: cloneOperand(m.Len), Index: cloneOperand(m.Index)}
	case *OverflowMessage:
		return &OverflowMessage{Op: m.Op}
	case *ResumedAfterReturnMessage:
		return &ResumedAfterReturnMessage{}
	case *ResumedAfterPanicMessage:
		return &ResumedAfterPanicMessage{}
	default:
		panic(fmt.Sprintf("mir: clone of unknown assert message %T", msg))
	}
}

func cloneRvalue(rv Rvalue) Rvalue {
	switch r := rv.(type) {
	case *UseRvalue:
		return &UseRvalue{Op: cloneOperand(r.Op)}
	case *RepeatRvalue:
		return &RepeatRvalue{Value: cloneOperand(r.Value), Count: r.Count}
	case *RefRvalue:
		return &RefRvalue{Region: r.Region, Kind: r.Kind, Place: clonePlace(r.Place)}
	case *LenRvalue:
		return &LenRvalue{Place: clonePlace(r.Place)}
	case *CastRvalue:
		return &CastRvalue{Kind: r.Kind, Op: cloneOperand(r.Op), Ty: r.Ty}
	case *BinaryOpRvalue:
		return &BinaryOpRvalue{Op: r.Op, Lhs: cloneOperand(r.Lhs), Rhs: cloneOperand(r.Rhs)}
	case *CheckedBinaryOpRvalue:
		return &CheckedBinaryOpRvalue{Op: r.Op, Lhs: cloneOperand(r.Lhs), Rhs: cloneOperand(r.Rhs)}
	case *UnaryOpRvalue:
		return &UnaryOpRvalue{Op: r.Op, X: cloneOperand(r.X)}
	case *DiscriminantRvalue:
		return &DiscriminantRvalue{Place: clonePlace(r.Place)}
	case *NullaryOpRvalue:
		return &NullaryOpRvalue{Op: r.Op, Ty: r.Ty}
	case *AggregateRvalue:
		ops := make([]Operand, len(r.Operands))
		for i, op := range r.Operands {
			ops[i] = cloneOperand(op)
		}
		return &AggregateRvalue{Kind: cloneAggregateKind(r.Kind), Operands: ops}
	default:
		panic(fmt.Sprintf("mir: clone of unknown rvalue %T", rv))
	}
}

func cloneAggregateKind(kind AggregateKind) AggregateKind {
	switch a := kind.(type) {
	case *ArrayAgg:
		return &ArrayAgg{Elem: a.Elem}
	case *TupleAgg:
		return &TupleAgg{}
	case *AdtAgg:
		out := &AdtAgg{Name: a.Name, Variant: a.Variant, Args: append(GenericArgs(nil), a.Args...)}
		if a.ActiveField != nil {
			f := *a.ActiveField
			out.ActiveField = &f
		}
		return out
	case *ClosureAgg:
		return &ClosureAgg{Unit: a.Unit, Args: append(GenericArgs(nil), a.Args...)}
	case *CoroutineAgg:
		return &CoroutineAgg{Unit: a.Unit, Args: append(GenericArgs(nil), a.Args...)}
	default:
		panic(fmt.Sprintf("mir: clone of unknown aggregate kind %T", kind))
	}
}

func cloneOperand(op Operand) Operand {
	switch o := op.(type) {
	case *CopyOperand:
		return &CopyOperand{Place: clonePlace(o.Place)}
	case *MoveOperand:
		return &MoveOperand{Place: clonePlace(o.Place)}
	case *ConstOperand:
		return &ConstOperand{Constant: Constant{
			Span:    o.Constant.Span,
			Ty:      o.Constant.Ty,
			Literal: cloneLiteral(o.Constant.Literal),
		}}
	default:
		panic(fmt.Sprintf("mir: clone of unknown operand %T", op))
	}
}

func cloneLiteral(lit Literal) Literal {
	switch l := lit.(type) {
	case *ValueLiteral:
		return &ValueLiteral{Value: l.Value}
	case *PromotedLiteral:
		return &PromotedLiteral{Index: l.Index}
	default:
		panic(fmt.Sprintf("mir: clone of unknown literal %T", lit))
	}
}

func clonePlace(p Place) Place {
	return Place{
		Local:      p.Local,
		Projection: append([]ProjectionElem(nil), p.Projection...),
	}
}

func cloneBlockRef(b *BasicBlock) *BasicBlock {
	if b == nil {
		return nil
	}
	out := *b
	return &out
}
