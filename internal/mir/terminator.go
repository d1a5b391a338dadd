package mir

// Terminator ends a basic block and transfers control.
type Terminator struct {
	SourceInfo SourceInfo
	Kind       TerminatorKind
}

// TerminatorKind is the sealed sum of terminator shapes. As with
// StatementKind, the sealing methods are the traversal hooks.
type TerminatorKind interface {
	walkTerm(v Visitor, block BasicBlock, loc Location)
	walkTermMut(v MutVisitor, block BasicBlock, loc Location)
}

// GotoTerm jumps unconditionally.
type GotoTerm struct {
	Target BasicBlock
}

func (t *GotoTerm) walkTerm(v Visitor, block BasicBlock, loc Location) {
	v.VisitBranch(block, t.Target)
}

func (t *GotoTerm) walkTermMut(v MutVisitor, block BasicBlock, loc Location) {
	v.VisitBranch(block, t.Target)
}

// SwitchIntTerm branches on an integer discriminant. Values and Targets
// are parallel; Targets additionally carries the otherwise edge last.
type SwitchIntTerm struct {
	Discr    Operand
	SwitchTy Ty
	Values   []uint64
	Targets  []BasicBlock
}

func (t *SwitchIntTerm) walkTerm(v Visitor, block BasicBlock, loc Location) {
	v.VisitOperand(t.Discr, loc)
	v.VisitTy(t.SwitchTy, LocationTyContext(loc))
	for _, target := range t.Targets {
		v.VisitBranch(block, target)
	}
}

func (t *SwitchIntTerm) walkTermMut(v MutVisitor, block BasicBlock, loc Location) {
	v.VisitOperand(&t.Discr, loc)
	v.VisitTy(&t.SwitchTy, LocationTyContext(loc))
	for _, target := range t.Targets {
		v.VisitBranch(block, target)
	}
}

// ResumeTerm resumes unwinding in a cleanup block.
type ResumeTerm struct{}

func (*ResumeTerm) walkTerm(Visitor, BasicBlock, Location)       {}
func (*ResumeTerm) walkTermMut(MutVisitor, BasicBlock, Location) {}

// ReturnTerm returns from the body through the return slot.
type ReturnTerm struct{}

func (*ReturnTerm) walkTerm(Visitor, BasicBlock, Location)       {}
func (*ReturnTerm) walkTermMut(MutVisitor, BasicBlock, Location) {}

// UnreachableTerm marks control flow proven impossible.
type UnreachableTerm struct{}

func (*UnreachableTerm) walkTerm(Visitor, BasicBlock, Location)       {}
func (*UnreachableTerm) walkTermMut(MutVisitor, BasicBlock, Location) {}

// CoroutineDropTerm ends the drop path of a coroutine body.
type CoroutineDropTerm struct{}

func (*CoroutineDropTerm) walkTerm(Visitor, BasicBlock, Location)       {}
func (*CoroutineDropTerm) walkTermMut(MutVisitor, BasicBlock, Location) {}

// DropTerm drops the value held by a place.
type DropTerm struct {
	Place  Place
	Target BasicBlock
	Unwind *BasicBlock
}

func (t *DropTerm) walkTerm(v Visitor, block BasicBlock, loc Location) {
	v.VisitPlace(t.Place, DropContext(), loc)
	v.VisitBranch(block, t.Target)
	if t.Unwind != nil {
		v.VisitBranch(block, *t.Unwind)
	}
}

func (t *DropTerm) walkTermMut(v MutVisitor, block BasicBlock, loc Location) {
	v.VisitPlace(&t.Place, DropContext(), loc)
	v.VisitBranch(block, t.Target)
	if t.Unwind != nil {
		v.VisitBranch(block, *t.Unwind)
	}
}

// DropAndReplaceTerm drops the value held by a place and stores a new
// one in its stead.
type DropAndReplaceTerm struct {
	Place  Place
	Value  Operand
	Target BasicBlock
	Unwind *BasicBlock
}

func (t *DropAndReplaceTerm) walkTerm(v Visitor, block BasicBlock, loc Location) {
	v.VisitPlace(t.Place, DropContext(), loc)
	v.VisitOperand(t.Value, loc)
	v.VisitBranch(block, t.Target)
	if t.Unwind != nil {
		v.VisitBranch(block, *t.Unwind)
	}
}

func (t *DropAndReplaceTerm) walkTermMut(v MutVisitor, block BasicBlock, loc Location) {
	v.VisitPlace(&t.Place, DropContext(), loc)
	v.VisitOperand(&t.Value, loc)
	v.VisitBranch(block, t.Target)
	if t.Unwind != nil {
		v.VisitBranch(block, *t.Unwind)
	}
}

// CallDestination is where a call's return value lands and where control
// continues. Absent for diverging calls.
type CallDestination struct {
	Place  Place
	Target BasicBlock
}

// CallTerm invokes a function-typed operand.
type CallTerm struct {
	Func        Operand
	Args        []Operand
	Destination *CallDestination
	Cleanup     *BasicBlock
}

func (t *CallTerm) walkTerm(v Visitor, block BasicBlock, loc Location) {
	v.VisitOperand(t.Func, loc)
	for _, arg := range t.Args {
		v.VisitOperand(arg, loc)
	}
	if t.Destination != nil {
		v.VisitPlace(t.Destination.Place, CallContext(), loc)
		v.VisitBranch(block, t.Destination.Target)
	}
	if t.Cleanup != nil {
		v.VisitBranch(block, *t.Cleanup)
	}
}

func (t *CallTerm) walkTermMut(v MutVisitor, block BasicBlock, loc Location) {
	v.VisitOperand(&t.Func, loc)
	for i := range t.Args {
		v.VisitOperand(&t.Args[i], loc)
	}
	if t.Destination != nil {
		v.VisitPlace(&t.Destination.Place, CallContext(), loc)
		v.VisitBranch(block, t.Destination.Target)
	}
	if t.Cleanup != nil {
		v.VisitBranch(block, *t.Cleanup)
	}
}

// AssertTerm checks a runtime condition and panics with Msg on failure.
type AssertTerm struct {
	Cond     Operand
	Expected bool
	Msg      AssertMessage
	Target   BasicBlock
	Cleanup  *BasicBlock
}

func (t *AssertTerm) walkTerm(v Visitor, block BasicBlock, loc Location) {
	v.VisitOperand(t.Cond, loc)
	v.VisitAssertMessage(t.Msg, loc)
	v.VisitBranch(block, t.Target)
	if t.Cleanup != nil {
		v.VisitBranch(block, *t.Cleanup)
	}
}

func (t *AssertTerm) walkTermMut(v MutVisitor, block BasicBlock, loc Location) {
	v.VisitOperand(&t.Cond, loc)
	v.VisitAssertMessage(t.Msg, loc)
	v.VisitBranch(block, t.Target)
	if t.Cleanup != nil {
		v.VisitBranch(block, *t.Cleanup)
	}
}

// YieldTerm suspends a coroutine body with a value.
type YieldTerm struct {
	Value  Operand
	Resume BasicBlock
	Drop   *BasicBlock
}

func (t *YieldTerm) walkTerm(v Visitor, block BasicBlock, loc Location) {
	v.VisitOperand(t.Value, loc)
	v.VisitBranch(block, t.Resume)
	if t.Drop != nil {
		v.VisitBranch(block, *t.Drop)
	}
}

func (t *YieldTerm) walkTermMut(v MutVisitor, block BasicBlock, loc Location) {
	v.VisitOperand(&t.Value, loc)
	v.VisitBranch(block, t.Resume)
	if t.Drop != nil {
		v.VisitBranch(block, *t.Drop)
	}
}

// FalseEdgesTerm is a borrow-check artifact: one real successor plus
// imaginary ones that keep the graph conservative.
type FalseEdgesTerm struct {
	RealTarget       BasicBlock
	ImaginaryTargets []BasicBlock
}

func (t *FalseEdgesTerm) walkTerm(v Visitor, block BasicBlock, loc Location) {
	v.VisitBranch(block, t.RealTarget)
	for _, target := range t.ImaginaryTargets {
		v.VisitBranch(block, target)
	}
}

func (t *FalseEdgesTerm) walkTermMut(v MutVisitor, block BasicBlock, loc Location) {
	v.VisitBranch(block, t.RealTarget)
	for _, target := range t.ImaginaryTargets {
		v.VisitBranch(block, target)
	}
}

// AssertMessage is the sealed sum of assertion payloads.
type AssertMessage interface {
	walkMsg(v Visitor, loc Location)
	walkMsgMut(v MutVisitor, loc Location)
}

// BoundsCheckMessage reports an out-of-bounds index.
type BoundsCheckMessage struct {
	Len   Operand
	Index Operand
}

func (m *BoundsCheckMessage) walkMsg(v Visitor, loc Location) {
	v.VisitOperand(m.Len, loc)
	v.VisitOperand(m.Index, loc)
}

func (m *BoundsCheckMessage) walkMsgMut(v MutVisitor, loc Location) {
	v.VisitOperand(&m.Len, loc)
	v.VisitOperand(&m.Index, loc)
}

// OverflowMessage reports arithmetic overflow for the named operation.
type OverflowMessage struct {
	Op string
}

func (*OverflowMessage) walkMsg(Visitor, Location)       {}
func (*OverflowMessage) walkMsgMut(MutVisitor, Location) {}

// ResumedAfterReturnMessage reports a coroutine resumed after it
// completed.
type ResumedAfterReturnMessage struct{}

func (*ResumedAfterReturnMessage) walkMsg(Visitor, Location)       {}
func (*ResumedAfterReturnMessage) walkMsgMut(MutVisitor, Location) {}

// ResumedAfterPanicMessage reports a coroutine resumed after it
// panicked.
type ResumedAfterPanicMessage struct{}

func (*ResumedAfterPanicMessage) walkMsg(Visitor, Location)       {}
func (*ResumedAfterPanicMessage) walkMsgMut(MutVisitor, Location) {}
