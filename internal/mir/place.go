package mir

// Field indexes one field of an aggregate.
type Field int

// VariantIdx indexes one variant of a sum-typed aggregate.
type VariantIdx int

// Place names a storage location: a base local refined by an ordered
// projection sequence. Projections compose left to right, each refining
// the location denoted by the prefix; an empty projection denotes the
// whole local.
type Place struct {
	Local      Local
	Projection []ProjectionElem
}

// PlaceFor is shorthand for a whole-local place.
func PlaceFor(l Local) Place {
	return Place{Local: l}
}

// Equal reports structural equality of two places.
func (p Place) Equal(other Place) bool {
	if p.Local != other.Local || len(p.Projection) != len(other.Projection) {
		return false
	}
	for i, elem := range p.Projection {
		if !elem.elemEqual(other.Projection[i]) {
			return false
		}
	}
	return true
}

// ProjectionElem is one sealed refinement step of a place. The sealing
// methods are the traversal hooks and the equality predicate: a new
// projection shape cannot be constructed until both visitor flavors and
// place equality handle it.
// The mutating hook returns the (possibly updated) element so that the
// default traversal can write it back into the projection slice;
// replacing a whole element is done through MutVisitor.VisitProjectionElem.
type ProjectionElem interface {
	walkElem(v Visitor, ctx PlaceContext, loc Location)
	walkElemMut(v MutVisitor, ctx PlaceContext, loc Location) ProjectionElem
	elemEqual(other ProjectionElem) bool
}

// FieldElem projects one field of an aggregate, recording the field's
// type.
type FieldElem struct {
	Field Field
	Ty    Ty
}

// DerefElem dereferences through a pointer or reference.
type DerefElem struct{}

// IndexElem indexes with the value of another local.
type IndexElem struct {
	Index Local
}

// ConstantIndexElem indexes with a constant offset, optionally from the
// end, guaranteed in bounds for MinLength elements.
type ConstantIndexElem struct {
	Offset    int
	MinLength int
	FromEnd   bool
}

// SubsliceElem takes the subslice [From, To).
type SubsliceElem struct {
	From int
	To   int
}

// DowncastElem refines a sum-typed aggregate to one variant.
type DowncastElem struct {
	Variant VariantIdx
}

func (e FieldElem) walkElem(v Visitor, ctx PlaceContext, loc Location) {
	v.VisitTy(e.Ty, LocationTyContext(loc))
}

func (e FieldElem) walkElemMut(v MutVisitor, ctx PlaceContext, loc Location) ProjectionElem {
	v.VisitTy(&e.Ty, LocationTyContext(loc))
	return e
}

func (DerefElem) walkElem(Visitor, PlaceContext, Location) {}

func (e DerefElem) walkElemMut(MutVisitor, PlaceContext, Location) ProjectionElem {
	return e
}

func (e IndexElem) walkElem(v Visitor, ctx PlaceContext, loc Location) {
	v.VisitLocal(e.Index, CopyContext(), loc)
}

func (e IndexElem) walkElemMut(v MutVisitor, ctx PlaceContext, loc Location) ProjectionElem {
	v.VisitLocal(&e.Index, CopyContext(), loc)
	return e
}

func (ConstantIndexElem) walkElem(Visitor, PlaceContext, Location) {}

func (e ConstantIndexElem) walkElemMut(MutVisitor, PlaceContext, Location) ProjectionElem {
	return e
}

func (SubsliceElem) walkElem(Visitor, PlaceContext, Location) {}

func (e SubsliceElem) walkElemMut(MutVisitor, PlaceContext, Location) ProjectionElem {
	return e
}

func (DowncastElem) walkElem(Visitor, PlaceContext, Location) {}

func (e DowncastElem) walkElemMut(MutVisitor, PlaceContext, Location) ProjectionElem {
	return e
}

func (e FieldElem) elemEqual(other ProjectionElem) bool {
	o, ok := other.(FieldElem)
	return ok && o.Field == e.Field
}

func (DerefElem) elemEqual(other ProjectionElem) bool {
	_, ok := other.(DerefElem)
	return ok
}

func (e IndexElem) elemEqual(other ProjectionElem) bool {
	o, ok := other.(IndexElem)
	return ok && o == e
}

func (e ConstantIndexElem) elemEqual(other ProjectionElem) bool {
	o, ok := other.(ConstantIndexElem)
	return ok && o == e
}

func (e SubsliceElem) elemEqual(other ProjectionElem) bool {
	o, ok := other.(SubsliceElem)
	return ok && o == e
}

func (e DowncastElem) elemEqual(other ProjectionElem) bool {
	o, ok := other.(DowncastElem)
	return ok && o == e
}
