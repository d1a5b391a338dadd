package mir

// Mutability distinguishes shared from exclusive access.
type Mutability int

const (
	Not Mutability = iota
	Mut
)

func (m Mutability) String() string {
	if m == Mut {
		return "mut"
	}
	return "not"
}

// BorrowKind classifies how a place is borrowed.
type BorrowKind int

const (
	SharedBorrow BorrowKind = iota
	UniqueBorrow
	MutBorrow
)

func (k BorrowKind) String() string {
	switch k {
	case SharedBorrow:
		return "shared"
	case UniqueBorrow:
		return "unique"
	case MutBorrow:
		return "mut"
	default:
		return "unknown"
	}
}

// Region is a lifetime marker. Regions are erased before this layer
// runs, so a single value suffices; the type exists so that visitors
// still get an entry point for it.
type Region int

// ErasedRegion is the only region value in circulation after borrow
// regions have been erased by upstream analysis.
const ErasedRegion Region = 0

// ClosureKind is the capability a closure-like unit's body was generated
// for. CallOnce bodies already consume their captures by value.
type ClosureKind int

const (
	// CallOnce: a single consuming call.
	CallOnce ClosureKind = iota
	// CallMut: repeatable calls through exclusive access.
	CallMut
	// CallImmut: repeatable calls through shared access.
	CallImmut
)

func (k ClosureKind) String() string {
	switch k {
	case CallOnce:
		return "call_once"
	case CallMut:
		return "call_mut"
	case CallImmut:
		return "call"
	default:
		return "unknown"
	}
}

// GenericArgs is the argument list of a generic instantiation. Visitors
// treat it as a leaf.
type GenericArgs []Ty

// Ty is a sealed type reference. The sealing method referencesError is
// also the behavior every variant must decide on: whether the type
// contains an unresolved or error placeholder anywhere inside it. A new
// variant does not exist as a Ty until it answers that question.
type Ty interface {
	referencesError() bool
}

// IntTy is a sized integer type.
type IntTy struct {
	Bits     int
	Unsigned bool
}

func (IntTy) referencesError() bool { return false }

// BoolTy is the boolean type.
type BoolTy struct{}

func (BoolTy) referencesError() bool { return false }

// UnitTy is the empty tuple type.
type UnitTy struct{}

func (UnitTy) referencesError() bool { return false }

// RefTy is a reference type with erased region.
type RefTy struct {
	Mut  Mutability
	Elem Ty
}

func (t RefTy) referencesError() bool { return t.Elem.referencesError() }

// TupleTy is a tuple of element types.
type TupleTy struct {
	Elems []Ty
}

func (t TupleTy) referencesError() bool {
	for _, e := range t.Elems {
		if e.referencesError() {
			return true
		}
	}
	return false
}

// AdtTy is a named nominal type instantiated with Args.
type AdtTy struct {
	Name string
	Args GenericArgs
}

func (t AdtTy) referencesError() bool {
	for _, a := range t.Args {
		if a.referencesError() {
			return true
		}
	}
	return false
}

// ClosureTy is the type of an ordinary (non-suspending) closure-like
// unit. Upvars are the field types of its capture aggregate, one per
// capture-list entry.
type ClosureTy struct {
	Unit   UnitID
	Upvars []Ty
}

func (t ClosureTy) referencesError() bool { return anyReferencesError(t.Upvars) }

// CoroutineClosureTy is the type of a closure-like unit whose call
// returns a coroutine. TupledInputs are the explicit call argument
// types; by construction a child coroutine captures these first, before
// any true upvars.
type CoroutineClosureTy struct {
	Unit         UnitID
	TupledInputs []Ty
	Upvars       []Ty
}

func (t CoroutineClosureTy) referencesError() bool {
	return anyReferencesError(t.TupledInputs) || anyReferencesError(t.Upvars)
}

// CoroutineTy is the type of a coroutine unit: its capture aggregate
// layout plus the capability its body was generated for.
type CoroutineTy struct {
	Unit   UnitID
	Kind   ClosureKind
	Upvars []Ty
}

func (t CoroutineTy) referencesError() bool { return anyReferencesError(t.Upvars) }

// ErrorTy is the placeholder left behind when upstream type checking
// failed. Bodies mentioning it are skipped by transformation passes.
type ErrorTy struct{}

func (ErrorTy) referencesError() bool { return true }

// ReferencesError reports whether ty contains an unresolved or error
// placeholder anywhere inside it.
func ReferencesError(ty Ty) bool {
	return ty.referencesError()
}

func anyReferencesError(tys []Ty) bool {
	for _, t := range tys {
		if t.referencesError() {
			return true
		}
	}
	return false
}
