package mir

import (
	"fmt"
	"strings"
)

// The textual form in this file is the canonical dump format: it is
// deterministic for a given body, so trace sinks and golden tests can
// compare dumps byte for byte.

// String renders a place as its base local refined left to right.
func (p Place) String() string {
	s := fmt.Sprintf("_%d", p.Local)
	for _, elem := range p.Projection {
		switch e := elem.(type) {
		case FieldElem:
			s = fmt.Sprintf("%s.f%d", s, e.Field)
		case DerefElem:
			s = fmt.Sprintf("(*%s)", s)
		case IndexElem:
			s = fmt.Sprintf("%s[_%d]", s, e.Index)
		case ConstantIndexElem:
			if e.FromEnd {
				s = fmt.Sprintf("%s[-%d of %d]", s, e.Offset, e.MinLength)
			} else {
				s = fmt.Sprintf("%s[%d of %d]", s, e.Offset, e.MinLength)
			}
		case SubsliceElem:
			s = fmt.Sprintf("%s[%d:%d]", s, e.From, e.To)
		case DowncastElem:
			s = fmt.Sprintf("(%s as variant#%d)", s, e.Variant)
		default:
			s = fmt.Sprintf("%s.<%T>", s, elem)
		}
	}
	return s
}

// TyString renders a type reference.
func TyString(ty Ty) string {
	switch t := ty.(type) {
	case IntTy:
		sign := "i"
		if t.Unsigned {
			sign = "u"
		}
		return fmt.Sprintf("%s%d", sign, t.Bits)
	case BoolTy:
		return "bool"
	case UnitTy:
		return "()"
	case RefTy:
		if t.Mut == Mut {
			return "&mut " + TyString(t.Elem)
		}
		return "&" + TyString(t.Elem)
	case TupleTy:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = TyString(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case AdtTy:
		if len(t.Args) == 0 {
			return t.Name
		}
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = TyString(a)
		}
		return t.Name + "<" + strings.Join(parts, ", ") + ">"
	case ClosureTy:
		return fmt.Sprintf("{closure %s%s}", t.Unit, upvarsString(t.Upvars))
	case CoroutineClosureTy:
		return fmt.Sprintf("{coroutine-closure %s%s}", t.Unit, upvarsString(t.Upvars))
	case CoroutineTy:
		return fmt.Sprintf("{coroutine %s/%s%s}", t.Unit, t.Kind, upvarsString(t.Upvars))
	case ErrorTy:
		return "{error}"
	default:
		return fmt.Sprintf("{%T}", ty)
	}
}

func upvarsString(upvars []Ty) string {
	if len(upvars) == 0 {
		return ""
	}
	parts := make([]string, len(upvars))
	for i, u := range upvars {
		parts[i] = TyString(u)
	}
	return " [" + strings.Join(parts, ", ") + "]"
}

func operandString(op Operand) string {
	switch o := op.(type) {
	case *CopyOperand:
		return o.Place.String()
	case *MoveOperand:
		return "move " + o.Place.String()
	case *ConstOperand:
		return constantString(o.Constant)
	default:
		return fmt.Sprintf("<%T>", op)
	}
}

func constantString(c Constant) string {
	switch l := c.Literal.(type) {
	case *ValueLiteral:
		return fmt.Sprintf("const %d_%s", l.Value.Bits, TyString(c.Ty))
	case *PromotedLiteral:
		return fmt.Sprintf("promoted[%d]", l.Index)
	default:
		return fmt.Sprintf("const <%T>", c.Literal)
	}
}

func rvalueString(rv Rvalue) string {
	switch r := rv.(type) {
	case *UseRvalue:
		return operandString(r.Op)
	case *RepeatRvalue:
		return fmt.Sprintf("[%s; %d]", operandString(r.Value), r.Count)
	case *RefRvalue:
		switch r.Kind {
		case MutBorrow:
			return "&mut " + r.Place.String()
		case UniqueBorrow:
			return "&unique " + r.Place.String()
		default:
			return "&" + r.Place.String()
		}
	case *LenRvalue:
		return fmt.Sprintf("Len(%s)", r.Place)
	case *CastRvalue:
		return fmt.Sprintf("%s as %s", operandString(r.Op), TyString(r.Ty))
	case *BinaryOpRvalue:
		return fmt.Sprintf("BinOp(%d, %s, %s)", r.Op, operandString(r.Lhs), operandString(r.Rhs))
	case *CheckedBinaryOpRvalue:
		return fmt.Sprintf("CheckedBinOp(%d, %s, %s)", r.Op, operandString(r.Lhs), operandString(r.Rhs))
	case *UnaryOpRvalue:
		return fmt.Sprintf("UnOp(%d, %s)", r.Op, operandString(r.X))
	case *DiscriminantRvalue:
		return fmt.Sprintf("discriminant(%s)", r.Place)
	case *NullaryOpRvalue:
		return fmt.Sprintf("NullOp(%d, %s)", r.Op, TyString(r.Ty))
	case *AggregateRvalue:
		ops := make([]string, len(r.Operands))
		for i, op := range r.Operands {
			ops[i] = operandString(op)
		}
		return fmt.Sprintf("%s(%s)", aggregateKindString(r.Kind), strings.Join(ops, ", "))
	default:
		return fmt.Sprintf("<%T>", rv)
	}
}

func aggregateKindString(kind AggregateKind) string {
	switch a := kind.(type) {
	case *ArrayAgg:
		return fmt.Sprintf("[%s]", TyString(a.Elem))
	case *TupleAgg:
		return "tuple"
	case *AdtAgg:
		return fmt.Sprintf("%s::variant#%d", a.Name, a.Variant)
	case *ClosureAgg:
		return fmt.Sprintf("closure(%s)", a.Unit)
	case *CoroutineAgg:
		return fmt.Sprintf("coroutine(%s)", a.Unit)
	default:
		return fmt.Sprintf("<%T>", kind)
	}
}

func statementString(s *Statement) string {
	switch k := s.Kind.(type) {
	case *AssignStmt:
		return fmt.Sprintf("%s = %s", k.Place, rvalueString(k.Rv))
	case *SetDiscriminantStmt:
		return fmt.Sprintf("discriminant(%s) = %d", k.Place, k.Variant)
	case *StorageLiveStmt:
		return fmt.Sprintf("StorageLive(_%d)", k.Local)
	case *StorageDeadStmt:
		return fmt.Sprintf("StorageDead(_%d)", k.Local)
	case *ValidateStmt:
		parts := make([]string, len(k.Operands))
		for i, op := range k.Operands {
			parts[i] = fmt.Sprintf("%s: %s", op.Place, TyString(op.Ty))
		}
		return fmt.Sprintf("Validate(%s)", strings.Join(parts, ", "))
	case *InlineAsmStmt:
		return "asm!(...)"
	case *EndRegionStmt:
		return fmt.Sprintf("EndRegion(%d)", k.Region)
	case *NopStmt:
		return "nop"
	default:
		return fmt.Sprintf("<%T>", s.Kind)
	}
}

func terminatorString(t *Terminator) string {
	switch k := t.Kind.(type) {
	case *GotoTerm:
		return fmt.Sprintf("goto -> bb%d", k.Target)
	case *SwitchIntTerm:
		arms := make([]string, 0, len(k.Targets))
		for i, target := range k.Targets {
			if i < len(k.Values) {
				arms = append(arms, fmt.Sprintf("%d: bb%d", k.Values[i], target))
			} else {
				arms = append(arms, fmt.Sprintf("otherwise: bb%d", target))
			}
		}
		return fmt.Sprintf("switchInt(%s) -> [%s]", operandString(k.Discr), strings.Join(arms, ", "))
	case *ResumeTerm:
		return "resume"
	case *ReturnTerm:
		return "return"
	case *UnreachableTerm:
		return "unreachable"
	case *CoroutineDropTerm:
		return "coroutine_drop"
	case *DropTerm:
		return fmt.Sprintf("drop(%s) -> bb%d%s", k.Place, k.Target, unwindString(k.Unwind))
	case *DropAndReplaceTerm:
		return fmt.Sprintf("replace(%s <- %s) -> bb%d%s",
			k.Place, operandString(k.Value), k.Target, unwindString(k.Unwind))
	case *CallTerm:
		args := make([]string, len(k.Args))
		for i, arg := range k.Args {
			args[i] = operandString(arg)
		}
		call := fmt.Sprintf("%s(%s)", operandString(k.Func), strings.Join(args, ", "))
		if k.Destination != nil {
			call = fmt.Sprintf("%s = %s -> bb%d", k.Destination.Place, call, k.Destination.Target)
		}
		return call + unwindString(k.Cleanup)
	case *AssertTerm:
		return fmt.Sprintf("assert(%s, expected: %t) -> bb%d%s",
			operandString(k.Cond), k.Expected, k.Target, unwindString(k.Cleanup))
	case *YieldTerm:
		s := fmt.Sprintf("yield(%s) -> bb%d", operandString(k.Value), k.Resume)
		if k.Drop != nil {
			s = fmt.Sprintf("%s (drop bb%d)", s, *k.Drop)
		}
		return s
	case *FalseEdgesTerm:
		return fmt.Sprintf("falseEdges -> bb%d", k.RealTarget)
	default:
		return fmt.Sprintf("<%T>", t.Kind)
	}
}

func unwindString(b *BasicBlock) string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf(" (unwind bb%d)", *b)
}

func originString(o Origin) string {
	if o == OriginByMoveShim {
		return "by-move shim"
	}
	return "item"
}

// FormatBody renders the canonical dump of a body.
func FormatBody(b *Body) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "fn %s (%s) {\n", b.Source.Unit, originString(b.Source.Origin))
	for l, decl := range b.LocalDecls {
		kind := "let"
		if decl.Mutable {
			kind = "let mut"
		}
		fmt.Fprintf(&sb, "    %s _%d: %s;\n", kind, l, TyString(decl.Ty))
	}
	for bb := range b.Blocks {
		data := &b.Blocks[bb]
		cleanup := ""
		if data.IsCleanup {
			cleanup = " (cleanup)"
		}
		fmt.Fprintf(&sb, "\n    bb%d%s: {\n", bb, cleanup)
		for i := range data.Statements {
			fmt.Fprintf(&sb, "        %s;\n", statementString(&data.Statements[i]))
		}
		if data.Terminator != nil {
			fmt.Fprintf(&sb, "        %s;\n", terminatorString(data.Terminator))
		}
		sb.WriteString("    }\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}
