package mir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferencesError(t *testing.T) {
	i32 := IntTy{Bits: 32}

	assert.False(t, ReferencesError(i32))
	assert.False(t, ReferencesError(TupleTy{Elems: []Ty{i32, BoolTy{}}}))
	assert.True(t, ReferencesError(ErrorTy{}))
	assert.True(t, ReferencesError(RefTy{Elem: ErrorTy{}}))
	assert.True(t, ReferencesError(TupleTy{Elems: []Ty{i32, ErrorTy{}}}))
	assert.True(t, ReferencesError(AdtTy{Name: "Vec", Args: GenericArgs{ErrorTy{}}}))
	assert.True(t, ReferencesError(CoroutineTy{Unit: "u", Upvars: []Ty{ErrorTy{}}}))
	assert.False(t, ReferencesError(CoroutineClosureTy{Unit: "u", TupledInputs: []Ty{i32}}))
}

func TestPlaceEqual(t *testing.T) {
	i32 := IntTy{Bits: 32}

	a := Place{Local: 1, Projection: []ProjectionElem{FieldElem{Field: 0, Ty: i32}, DerefElem{}}}
	b := Place{Local: 1, Projection: []ProjectionElem{FieldElem{Field: 0, Ty: BoolTy{}}, DerefElem{}}}
	c := Place{Local: 1, Projection: []ProjectionElem{FieldElem{Field: 1, Ty: i32}, DerefElem{}}}

	assert.True(t, a.Equal(b), "field equality ignores the recorded type")
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(PlaceFor(1)))
	assert.False(t, PlaceFor(1).Equal(PlaceFor(2)))
}
