package mir

import "fmt"

// PlaceContextKind tags how a place is used at one occurrence.
type PlaceContextKind int

const (
	// StoreKind: appears as the target of an assignment.
	StoreKind PlaceContextKind = iota
	// CallKind: destination of a call.
	CallKind
	// DropKind: being dropped.
	DropKind
	// InspectKind: inspected without being read as a value, like taking
	// a length or a discriminant.
	InspectKind
	// BorrowKind_: being borrowed.
	BorrowKind_
	// ProjectionKind: used as the base of another place, like x in x.y.
	// The mutability flag records whether the outer use mutates.
	ProjectionKind
	// CopyKind: consumed by copy as part of an operand.
	CopyKind
	// MoveKind: consumed by move as part of an operand.
	MoveKind
	// StorageLiveKind: start of the storage live range.
	StorageLiveKind
	// StorageDeadKind: end of the storage live range.
	StorageDeadKind
	// ValidateKind: referenced by a validation statement.
	ValidateKind
)

// PlaceContext classifies how a place or local is being used at the
// occurrence a visitor is handed. The classification predicates are
// total: every context is exactly one of mutating, non-mutating, or
// neither, and the two use tables are disjoint.
type PlaceContext struct {
	Kind PlaceContextKind

	// Borrow fields, set for BorrowKind_.
	Borrow BorrowKind
	Region Region

	// Mutability of the outer use, set for ProjectionKind.
	Mutability Mutability
}

// StoreContext is the assignment-target context.
func StoreContext() PlaceContext { return PlaceContext{Kind: StoreKind} }

// CallContext is the call-destination context.
func CallContext() PlaceContext { return PlaceContext{Kind: CallKind} }

// DropContext is the drop-target context.
func DropContext() PlaceContext { return PlaceContext{Kind: DropKind} }

// InspectContext is the observed-only context.
func InspectContext() PlaceContext { return PlaceContext{Kind: InspectKind} }

// BorrowContext is the borrowed context for the given borrow kind and
// region.
func BorrowContext(kind BorrowKind, region Region) PlaceContext {
	return PlaceContext{Kind: BorrowKind_, Borrow: kind, Region: region}
}

// ProjectionContext is the used-as-projection-base context with the
// given outer mutability.
func ProjectionContext(m Mutability) PlaceContext {
	return PlaceContext{Kind: ProjectionKind, Mutability: m}
}

// CopyContext is the consumed-by-copy context.
func CopyContext() PlaceContext { return PlaceContext{Kind: CopyKind} }

// MoveContext is the consumed-by-move context.
func MoveContext() PlaceContext { return PlaceContext{Kind: MoveKind} }

// StorageLiveContext is the storage-liveness-start context.
func StorageLiveContext() PlaceContext { return PlaceContext{Kind: StorageLiveKind} }

// StorageDeadContext is the storage-liveness-end context.
func StorageDeadContext() PlaceContext { return PlaceContext{Kind: StorageDeadKind} }

// ValidateContext is the validation-only context.
func ValidateContext() PlaceContext { return PlaceContext{Kind: ValidateKind} }

// IsDrop reports whether the context is a drop.
func (c PlaceContext) IsDrop() bool {
	return c.Kind == DropKind
}

// IsStorageMarker reports whether the context is a storage liveness
// marker of either polarity.
func (c PlaceContext) IsStorageMarker() bool {
	return c.Kind == StorageLiveKind || c.Kind == StorageDeadKind
}

// IsStorageLiveMarker reports whether the context starts a storage live
// range.
func (c PlaceContext) IsStorageLiveMarker() bool {
	return c.Kind == StorageLiveKind
}

// IsStorageDeadMarker reports whether the context ends a storage live
// range.
func (c PlaceContext) IsStorageDeadMarker() bool {
	return c.Kind == StorageDeadKind
}

// IsMutatingUse reports whether the context is a use that potentially
// changes the value: store, call destination, mutable borrow, mutating
// projection base, or drop.
func (c PlaceContext) IsMutatingUse() bool {
	switch c.Kind {
	case StoreKind, CallKind, DropKind:
		return true
	case BorrowKind_:
		return c.Borrow == MutBorrow
	case ProjectionKind:
		return c.Mutability == Mut
	case InspectKind, CopyKind, MoveKind, StorageLiveKind, StorageDeadKind, ValidateKind:
		return false
	default:
		panic(fmt.Sprintf("mir: unknown place context kind %d", c.Kind))
	}
}

// IsNonMutatingUse reports whether the context is a use that does not
// change the value: inspect, shared or unique borrow, non-mutating
// projection base, copy, or move. Storage markers and validation are
// neither kind of use.
func (c PlaceContext) IsNonMutatingUse() bool {
	switch c.Kind {
	case InspectKind, CopyKind, MoveKind:
		return true
	case BorrowKind_:
		return c.Borrow == SharedBorrow || c.Borrow == UniqueBorrow
	case ProjectionKind:
		return c.Mutability == Not
	case StoreKind, CallKind, DropKind, StorageLiveKind, StorageDeadKind, ValidateKind:
		return false
	default:
		panic(fmt.Sprintf("mir: unknown place context kind %d", c.Kind))
	}
}

// IsUse reports whether the context reads or writes the value at all.
func (c PlaceContext) IsUse() bool {
	return c.IsMutatingUse() || c.IsNonMutatingUse()
}

// TyContextKind tags where a visited type appeared.
type TyContextKind int

const (
	// LocalDeclTyKind: the declared type of a local.
	LocalDeclTyKind TyContextKind = iota
	// ReturnTyKind: the return type of the body.
	ReturnTyKind
	// LocationTyKind: a type found at some statement or terminator.
	LocationTyKind
)

// TyContext gives visitors context about where a type reference
// appeared.
type TyContext struct {
	Kind       TyContextKind
	Local      Local      // for LocalDeclTyKind
	SourceInfo SourceInfo // for LocalDeclTyKind and ReturnTyKind
	Location   Location   // for LocationTyKind
}

// LocalDeclTyContext is the context for a local declaration's type.
func LocalDeclTyContext(local Local, si SourceInfo) TyContext {
	return TyContext{Kind: LocalDeclTyKind, Local: local, SourceInfo: si}
}

// ReturnTyContext is the context for the body's return type.
func ReturnTyContext(si SourceInfo) TyContext {
	return TyContext{Kind: ReturnTyKind, SourceInfo: si}
}

// LocationTyContext is the context for a type found at a location.
func LocationTyContext(loc Location) TyContext {
	return TyContext{Kind: LocationTyKind, Location: loc}
}
