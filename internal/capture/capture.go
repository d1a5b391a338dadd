// Package capture defines the capture descriptors produced by upstream
// capture analysis for closure-like units: which enclosing variables (or
// sub-paths of them) a unit pulls in, and whether each is held by value
// or by reference. The descriptors are immutable inputs to the
// transformation layer; this package only models them and their
// refinement relationship.
//
// A nested unit's capture list refines a prefix of its parent's list:
// precise capture analysis may split one parent capture into several
// finer child captures whose paths extend the parent path. Refinement
// never reorders siblings, which is what lets the matcher in the bymove
// package reconcile the two lists in one forward pass.
package capture

import (
	"fmt"

	"github.com/roach88/mirpass/internal/mir"
)

// UpvarID identifies one captured variable of the enclosing scope.
type UpvarID int

// ProjectionKind classifies one step of a capture path. Capture paths
// are analysis-level places: they carry projection kinds rather than the
// full MIR projection payloads.
type ProjectionKind int

const (
	DerefKind ProjectionKind = iota
	FieldKind
	IndexKind
	SubsliceKind
	DowncastKind
)

func (k ProjectionKind) String() string {
	switch k {
	case DerefKind:
		return "deref"
	case FieldKind:
		return "field"
	case IndexKind:
		return "index"
	case SubsliceKind:
		return "subslice"
	case DowncastKind:
		return "downcast"
	default:
		return "unknown"
	}
}

// Projection is one step of a capture path: its kind, the type it
// projects to, and the field index when Kind is FieldKind.
type Projection struct {
	Kind  ProjectionKind
	Ty    mir.Ty
	Field mir.Field
}

// Place is the analysis-level storage path of a capture: an upvar base
// plus the projections applied to it. Ty is the type of the fully
// projected place.
type Place struct {
	Base        UpvarID
	Projections []Projection
	Ty          mir.Ty
}

// Mode is how a capture is held.
type Mode int

const (
	// ByValue: the capture owns the value.
	ByValue Mode = iota
	// ByRefShared: a shared reference.
	ByRefShared
	// ByRefUnique: a unique (closure-internal) reference.
	ByRefUnique
	// ByRefMut: an exclusive reference.
	ByRefMut
)

func (m Mode) String() string {
	switch m {
	case ByValue:
		return "by_value"
	case ByRefShared:
		return "ref_shared"
	case ByRefUnique:
		return "ref_unique"
	case ByRefMut:
		return "ref_mut"
	default:
		return "unknown"
	}
}

// IsByRef reports whether the capture is held through a reference.
func (m Mode) IsByRef() bool {
	return m != ByValue
}

// Mutability is the MIR mutability of the reference a by-ref capture is
// held through.
func (m Mode) Mutability() mir.Mutability {
	if m == ByRefMut {
		return mir.Mut
	}
	return mir.Not
}

// Capture is one entry of a unit's capture list.
type Capture struct {
	Place Place
	Mode  Mode
}

// EffectiveTy is the type the capture occupies in the capture aggregate:
// the place type, wrapped in a reference of the captured mutability when
// the capture is by reference.
func (c Capture) EffectiveTy() mir.Ty {
	if c.Mode.IsByRef() {
		return mir.RefTy{Mut: c.Mode.Mutability(), Elem: c.Place.Ty}
	}
	return c.Place.Ty
}

// List is the ordered capture list of one closure-like unit. Field i of
// the unit's capture aggregate corresponds to entry i.
type List []Capture

// Validate checks the within-list invariant: no two captures denote the
// exact same path.
func (l List) Validate() error {
	for i := range l {
		for j := i + 1; j < len(l); j++ {
			if samePath(l[i].Place, l[j].Place) {
				return fmt.Errorf("capture: duplicate path at entries %d and %d", i, j)
			}
		}
	}
	return nil
}

func samePath(a, b Place) bool {
	if a.Base != b.Base || len(a.Projections) != len(b.Projections) {
		return false
	}
	for i := range a.Projections {
		if !sameStep(a.Projections[i], b.Projections[i]) {
			return false
		}
	}
	return true
}

func sameStep(a, b Projection) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == FieldKind && a.Field != b.Field {
		return false
	}
	return true
}

// PrefixMatches reports whether parent's path is a kind-wise prefix of
// child's path on the same upvar: projection kinds must align pairwise
// over the parent's length, and field indices inside the shared prefix
// must align too. The child may have more projections when it captures
// sub-fields out of something the parent captures whole.
func PrefixMatches(parent, child Capture) bool {
	if parent.Place.Base != child.Place.Base {
		return false
	}
	if len(child.Place.Projections) < len(parent.Place.Projections) {
		return false
	}
	for i, p := range parent.Place.Projections {
		if !sameStep(p, child.Place.Projections[i]) {
			return false
		}
	}
	return true
}

// Provider hands the transformation layer the capture analysis results
// it needs: per-unit capture lists and unit types. Implemented by the
// surrounding compiler driver. Parent identity travels on the body
// itself (mir.CoroutineInfo.Parent).
type Provider interface {
	// Captures returns the ordered capture list of a unit.
	Captures(unit mir.UnitID) List

	// TypeOf returns the type of a closure-like unit.
	TypeOf(unit mir.UnitID) mir.Ty
}
