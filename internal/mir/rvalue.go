package mir

// BinOp enumerates binary operators.
type BinOp int

const (
	AddOp BinOp = iota
	SubOp
	MulOp
	DivOp
	RemOp
	BitXorOp
	BitAndOp
	BitOrOp
	ShlOp
	ShrOp
	EqOp
	LtOp
	LeOp
	NeOp
	GeOp
	GtOp
	OffsetOp
)

// UnOp enumerates unary operators.
type UnOp int

const (
	NotOp UnOp = iota
	NegOp
)

// NullOp enumerates operators with no runtime operand.
type NullOp int

const (
	SizeOfOp NullOp = iota
	AlignOfOp
)

// CastKind enumerates cast flavors.
type CastKind int

const (
	MiscCast CastKind = iota
	PointerCast
	UnsizeCast
)

// Rvalue is the sealed sum of value-producing expressions on the right
// of an assignment. Sealing methods are the traversal hooks.
type Rvalue interface {
	walkRvalue(v Visitor, loc Location)
	walkRvalueMut(v MutVisitor, loc Location)
}

// UseRvalue yields an operand unchanged.
type UseRvalue struct {
	Op Operand
}

func (r *UseRvalue) walkRvalue(v Visitor, loc Location) {
	v.VisitOperand(r.Op, loc)
}

func (r *UseRvalue) walkRvalueMut(v MutVisitor, loc Location) {
	v.VisitOperand(&r.Op, loc)
}

// RepeatRvalue yields an array of Count copies of Value.
type RepeatRvalue struct {
	Value Operand
	Count uint64
}

func (r *RepeatRvalue) walkRvalue(v Visitor, loc Location) {
	v.VisitOperand(r.Value, loc)
}

func (r *RepeatRvalue) walkRvalueMut(v MutVisitor, loc Location) {
	v.VisitOperand(&r.Value, loc)
}

// RefRvalue borrows a place.
type RefRvalue struct {
	Region Region
	Kind   BorrowKind
	Place  Place
}

func (r *RefRvalue) walkRvalue(v Visitor, loc Location) {
	v.VisitRegion(r.Region, loc)
	v.VisitPlace(r.Place, BorrowContext(r.Kind, r.Region), loc)
}

func (r *RefRvalue) walkRvalueMut(v MutVisitor, loc Location) {
	v.VisitRegion(&r.Region, loc)
	v.VisitPlace(&r.Place, BorrowContext(r.Kind, r.Region), loc)
}

// LenRvalue yields the length of an array or slice place.
type LenRvalue struct {
	Place Place
}

func (r *LenRvalue) walkRvalue(v Visitor, loc Location) {
	v.VisitPlace(r.Place, InspectContext(), loc)
}

func (r *LenRvalue) walkRvalueMut(v MutVisitor, loc Location) {
	v.VisitPlace(&r.Place, InspectContext(), loc)
}

// CastRvalue converts an operand to another type.
type CastRvalue struct {
	Kind CastKind
	Op   Operand
	Ty   Ty
}

func (r *CastRvalue) walkRvalue(v Visitor, loc Location) {
	v.VisitOperand(r.Op, loc)
	v.VisitTy(r.Ty, LocationTyContext(loc))
}

func (r *CastRvalue) walkRvalueMut(v MutVisitor, loc Location) {
	v.VisitOperand(&r.Op, loc)
	v.VisitTy(&r.Ty, LocationTyContext(loc))
}

// BinaryOpRvalue applies a binary operator.
type BinaryOpRvalue struct {
	Op  BinOp
	Lhs Operand
	Rhs Operand
}

func (r *BinaryOpRvalue) walkRvalue(v Visitor, loc Location) {
	v.VisitOperand(r.Lhs, loc)
	v.VisitOperand(r.Rhs, loc)
}

func (r *BinaryOpRvalue) walkRvalueMut(v MutVisitor, loc Location) {
	v.VisitOperand(&r.Lhs, loc)
	v.VisitOperand(&r.Rhs, loc)
}

// CheckedBinaryOpRvalue applies a binary operator and also yields an
// overflow flag.
type CheckedBinaryOpRvalue struct {
	Op  BinOp
	Lhs Operand
	Rhs Operand
}

func (r *CheckedBinaryOpRvalue) walkRvalue(v Visitor, loc Location) {
	v.VisitOperand(r.Lhs, loc)
	v.VisitOperand(r.Rhs, loc)
}

func (r *CheckedBinaryOpRvalue) walkRvalueMut(v MutVisitor, loc Location) {
	v.VisitOperand(&r.Lhs, loc)
	v.VisitOperand(&r.Rhs, loc)
}

// UnaryOpRvalue applies a unary operator.
type UnaryOpRvalue struct {
	Op UnOp
	X  Operand
}

func (r *UnaryOpRvalue) walkRvalue(v Visitor, loc Location) {
	v.VisitOperand(r.X, loc)
}

func (r *UnaryOpRvalue) walkRvalueMut(v MutVisitor, loc Location) {
	v.VisitOperand(&r.X, loc)
}

// DiscriminantRvalue reads the discriminant of a sum-typed place.
type DiscriminantRvalue struct {
	Place Place
}

func (r *DiscriminantRvalue) walkRvalue(v Visitor, loc Location) {
	v.VisitPlace(r.Place, InspectContext(), loc)
}

func (r *DiscriminantRvalue) walkRvalueMut(v MutVisitor, loc Location) {
	v.VisitPlace(&r.Place, InspectContext(), loc)
}

// NullaryOpRvalue applies an operator with no runtime operand.
type NullaryOpRvalue struct {
	Op NullOp
	Ty Ty
}

func (r *NullaryOpRvalue) walkRvalue(v Visitor, loc Location) {
	v.VisitTy(r.Ty, LocationTyContext(loc))
}

func (r *NullaryOpRvalue) walkRvalueMut(v MutVisitor, loc Location) {
	v.VisitTy(&r.Ty, LocationTyContext(loc))
}

// AggregateRvalue builds an aggregate value from operands.
type AggregateRvalue struct {
	Kind     AggregateKind
	Operands []Operand
}

func (r *AggregateRvalue) walkRvalue(v Visitor, loc Location) {
	v.VisitAggregateKind(r.Kind, loc)
	for _, op := range r.Operands {
		v.VisitOperand(op, loc)
	}
}

func (r *AggregateRvalue) walkRvalueMut(v MutVisitor, loc Location) {
	v.VisitAggregateKind(r.Kind, loc)
	for i := range r.Operands {
		v.VisitOperand(&r.Operands[i], loc)
	}
}

// AggregateKind is the sealed sum of aggregate payload shapes.
type AggregateKind interface {
	walkAgg(v Visitor, loc Location)
	walkAggMut(v MutVisitor, loc Location)
}

// ArrayAgg builds an array with the given element type.
type ArrayAgg struct {
	Elem Ty
}

func (a *ArrayAgg) walkAgg(v Visitor, loc Location) {
	v.VisitTy(a.Elem, LocationTyContext(loc))
}

func (a *ArrayAgg) walkAggMut(v MutVisitor, loc Location) {
	v.VisitTy(&a.Elem, LocationTyContext(loc))
}

// TupleAgg builds a tuple.
type TupleAgg struct{}

func (*TupleAgg) walkAgg(Visitor, Location)       {}
func (*TupleAgg) walkAggMut(MutVisitor, Location) {}

// AdtAgg builds a value of a nominal type.
type AdtAgg struct {
	Name        string
	Variant     VariantIdx
	Args        GenericArgs
	ActiveField *Field // set for union-like initialization
}

func (a *AdtAgg) walkAgg(v Visitor, loc Location) {
	v.VisitGenericArgs(a.Args, loc)
}

func (a *AdtAgg) walkAggMut(v MutVisitor, loc Location) {
	v.VisitGenericArgs(&a.Args, loc)
}

// ClosureAgg builds the capture aggregate of a closure-like unit.
type ClosureAgg struct {
	Unit UnitID
	Args GenericArgs
}

func (a *ClosureAgg) walkAgg(v Visitor, loc Location) {
	v.VisitGenericArgs(a.Args, loc)
}

func (a *ClosureAgg) walkAggMut(v MutVisitor, loc Location) {
	v.VisitGenericArgs(&a.Args, loc)
}

// CoroutineAgg builds the capture aggregate of a coroutine unit.
type CoroutineAgg struct {
	Unit UnitID
	Args GenericArgs
}

func (a *CoroutineAgg) walkAgg(v Visitor, loc Location) {
	v.VisitGenericArgs(a.Args, loc)
}

func (a *CoroutineAgg) walkAggMut(v MutVisitor, loc Location) {
	v.VisitGenericArgs(&a.Args, loc)
}

// Operand is the sealed sum of argument shapes consumed by statements
// and terminators.
type Operand interface {
	walkOperand(v Visitor, loc Location)
	walkOperandMut(v MutVisitor, loc Location)
}

// CopyOperand reads a place without consuming it.
type CopyOperand struct {
	Place Place
}

func (o *CopyOperand) walkOperand(v Visitor, loc Location) {
	v.VisitPlace(o.Place, CopyContext(), loc)
}

func (o *CopyOperand) walkOperandMut(v MutVisitor, loc Location) {
	v.VisitPlace(&o.Place, CopyContext(), loc)
}

// MoveOperand reads a place and consumes it.
type MoveOperand struct {
	Place Place
}

func (o *MoveOperand) walkOperand(v Visitor, loc Location) {
	v.VisitPlace(o.Place, MoveContext(), loc)
}

func (o *MoveOperand) walkOperandMut(v MutVisitor, loc Location) {
	v.VisitPlace(&o.Place, MoveContext(), loc)
}

// ConstOperand yields a constant.
type ConstOperand struct {
	Constant Constant
}

func (o *ConstOperand) walkOperand(v Visitor, loc Location) {
	v.VisitConstant(o.Constant, loc)
}

func (o *ConstOperand) walkOperandMut(v MutVisitor, loc Location) {
	v.VisitConstant(&o.Constant, loc)
}

// Constant is a literal with its type and source position.
type Constant struct {
	Span    Span
	Ty      Ty
	Literal Literal
}

// Literal is the sealed sum of constant payloads.
type Literal interface {
	walkLit(v Visitor, loc Location)
	walkLitMut(v MutVisitor, loc Location)
}

// ConstVal is an evaluated constant, stored as raw bits.
type ConstVal struct {
	Ty   Ty
	Bits uint64
}

// ValueLiteral holds an evaluated constant.
type ValueLiteral struct {
	Value ConstVal
}

func (l *ValueLiteral) walkLit(v Visitor, loc Location) {
	v.VisitConst(l.Value, loc)
}

func (l *ValueLiteral) walkLitMut(v MutVisitor, loc Location) {
	v.VisitConst(&l.Value, loc)
}

// PromotedLiteral references a promoted sub-body by index.
type PromotedLiteral struct {
	Index int
}

func (*PromotedLiteral) walkLit(Visitor, Location)       {}
func (*PromotedLiteral) walkLitMut(MutVisitor, Location) {}
