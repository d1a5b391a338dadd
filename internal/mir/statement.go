package mir

// Statement is one non-terminator instruction of a basic block.
type Statement struct {
	SourceInfo SourceInfo
	Kind       StatementKind
}

// StatementKind is the sealed sum of statement shapes. The sealing
// methods are the structural-recursion hooks for the two visitor
// flavors; a new statement shape cannot exist until both handle it.
type StatementKind interface {
	walkStmt(v Visitor, block BasicBlock, loc Location)
	walkStmtMut(v MutVisitor, block BasicBlock, loc Location)
}

// AssignStmt stores the value of an rvalue into a place.
type AssignStmt struct {
	Place Place
	Rv    Rvalue
}

func (s *AssignStmt) walkStmt(v Visitor, block BasicBlock, loc Location) {
	v.VisitAssign(block, s.Place, s.Rv, loc)
}

func (s *AssignStmt) walkStmtMut(v MutVisitor, block BasicBlock, loc Location) {
	v.VisitAssign(block, &s.Place, &s.Rv, loc)
}

// SetDiscriminantStmt writes the discriminant of a sum-typed place.
type SetDiscriminantStmt struct {
	Place   Place
	Variant VariantIdx
}

func (s *SetDiscriminantStmt) walkStmt(v Visitor, block BasicBlock, loc Location) {
	v.VisitPlace(s.Place, StoreContext(), loc)
}

func (s *SetDiscriminantStmt) walkStmtMut(v MutVisitor, block BasicBlock, loc Location) {
	v.VisitPlace(&s.Place, StoreContext(), loc)
}

// StorageLiveStmt starts the storage live range of a local.
type StorageLiveStmt struct {
	Local Local
}

func (s *StorageLiveStmt) walkStmt(v Visitor, block BasicBlock, loc Location) {
	v.VisitLocal(s.Local, StorageLiveContext(), loc)
}

func (s *StorageLiveStmt) walkStmtMut(v MutVisitor, block BasicBlock, loc Location) {
	v.VisitLocal(&s.Local, StorageLiveContext(), loc)
}

// StorageDeadStmt ends the storage live range of a local.
type StorageDeadStmt struct {
	Local Local
}

func (s *StorageDeadStmt) walkStmt(v Visitor, block BasicBlock, loc Location) {
	v.VisitLocal(s.Local, StorageDeadContext(), loc)
}

func (s *StorageDeadStmt) walkStmtMut(v MutVisitor, block BasicBlock, loc Location) {
	v.VisitLocal(&s.Local, StorageDeadContext(), loc)
}

// ValidateOperand is one place a ValidateStmt covers.
type ValidateOperand struct {
	Place Place
	Ty    Ty
}

// ValidateStmt asserts validity of a set of places. Emitted only under
// validation instrumentation; carried through so visitors stay total.
type ValidateStmt struct {
	Operands []ValidateOperand
}

func (s *ValidateStmt) walkStmt(v Visitor, block BasicBlock, loc Location) {
	for _, op := range s.Operands {
		v.VisitPlace(op.Place, ValidateContext(), loc)
		v.VisitTy(op.Ty, LocationTyContext(loc))
	}
}

func (s *ValidateStmt) walkStmtMut(v MutVisitor, block BasicBlock, loc Location) {
	for i := range s.Operands {
		v.VisitPlace(&s.Operands[i].Place, ValidateContext(), loc)
		v.VisitTy(&s.Operands[i].Ty, LocationTyContext(loc))
	}
}

// InlineAsmStmt is an opaque assembly block with place outputs and
// operand inputs.
type InlineAsmStmt struct {
	Outputs []Place
	Inputs  []Operand
}

func (s *InlineAsmStmt) walkStmt(v Visitor, block BasicBlock, loc Location) {
	for _, out := range s.Outputs {
		v.VisitPlace(out, StoreContext(), loc)
	}
	for _, in := range s.Inputs {
		v.VisitOperand(in, loc)
	}
}

func (s *InlineAsmStmt) walkStmtMut(v MutVisitor, block BasicBlock, loc Location) {
	for i := range s.Outputs {
		v.VisitPlace(&s.Outputs[i], StoreContext(), loc)
	}
	for i := range s.Inputs {
		v.VisitOperand(&s.Inputs[i], loc)
	}
}

// EndRegionStmt closes a borrow region. Regions are erased here, so the
// statement carries no children.
type EndRegionStmt struct {
	Region Region
}

func (s *EndRegionStmt) walkStmt(Visitor, BasicBlock, Location)       {}
func (s *EndRegionStmt) walkStmtMut(MutVisitor, BasicBlock, Location) {}

// NopStmt does nothing; left behind when statements are deleted in
// place.
type NopStmt struct{}

func (*NopStmt) walkStmt(Visitor, BasicBlock, Location)       {}
func (*NopStmt) walkStmtMut(MutVisitor, BasicBlock, Location) {}
