package mir

// Local indexes one stack-resident binding in a body's LocalDecls table.
type Local int

// ReturnLocal is the designated return slot of every body.
const ReturnLocal Local = 0

// CaptureStructLocal is the local holding the capture aggregate of a
// closure-like body: the first argument, laid out with one field per
// capture-list entry.
const CaptureStructLocal Local = 1

// BasicBlock indexes one block in a body's Blocks slice.
type BasicBlock int

// Location addresses one statement or terminator within a body.
// StatementIndex == len(Blocks[Block].Statements) addresses the
// terminator.
type Location struct {
	Block          BasicBlock
	StatementIndex int
}

// Span is an opaque source position carried through for diagnostics.
type Span struct {
	Lo int
	Hi int
}

// SourceScope indexes one scope in a body's SourceScopes table.
type SourceScope int

// OuterSourceScope is the root lexical scope of a body; arguments are
// declared in it.
const OuterSourceScope SourceScope = 0

// SourceScopeData describes one lexical scope.
type SourceScopeData struct {
	Span   Span
	Parent *SourceScope // nil for the root scope
}

// SourceInfo ties a node to its source position and lexical scope.
type SourceInfo struct {
	Span  Span
	Scope SourceScope
}

// UnitID identifies one function or closure-like unit in the crate being
// compiled. IDs are assigned by upstream lowering and are opaque here.
type UnitID string

// Origin records how a body came to exist.
type Origin int

const (
	// OriginItem is a body lowered directly from source.
	OriginItem Origin = iota

	// OriginByMoveShim marks a synthesized value-consuming sibling body.
	// The by-move pass tags its output with this origin so the pipeline
	// never re-applies the pass to it.
	OriginByMoveShim
)

// Source identifies the unit a body belongs to and how the body was
// produced.
type Source struct {
	Unit   UnitID
	Origin Origin
}

// CoroutineSource records what surface construct a coroutine body was
// desugared from.
type CoroutineSource int

const (
	CoroutineSourceBlock CoroutineSource = iota
	CoroutineSourceClosure
	CoroutineSourceFn
)

// CoroutineInfo is present on bodies compiled from suspendable
// computations. ByMoveBody, when set, is the synthesized alternate body
// in which every capture is held by value; consumers resolving a
// value-consuming call select it when present.
type CoroutineInfo struct {
	Kind       ClosureKind
	Source     CoroutineSource
	Parent     UnitID // enclosing closure-like unit
	ByMoveBody *Body
}

// LocalDecl declares one local with its type.
type LocalDecl struct {
	Mutable    bool
	Ty         Ty
	SourceInfo SourceInfo
	Scope      SourceScope
}

// BasicBlockData is one node of the control-flow graph: an ordered
// statement list plus an optional terminator.
type BasicBlockData struct {
	Statements []Statement
	Terminator *Terminator
	IsCleanup  bool
}

// Body is the control-flow-graph representation of one function or
// closure body.
type Body struct {
	Source       Source
	Blocks       []BasicBlockData
	SourceScopes []SourceScopeData
	LocalDecls   []LocalDecl
	// ArgCount locals immediately after ReturnLocal are the arguments.
	ArgCount  int
	Span      Span
	Coroutine *CoroutineInfo
}

// ReturnTy reports the type of the body's designated return slot.
func (b *Body) ReturnTy() Ty {
	return b.LocalDecls[ReturnLocal].Ty
}

// StatementAt returns the statement at loc, or nil when loc addresses
// the block's terminator slot.
func (b *Body) StatementAt(loc Location) *Statement {
	stmts := b.Blocks[loc.Block].Statements
	if loc.StatementIndex < len(stmts) {
		return &stmts[loc.StatementIndex]
	}
	return nil
}
