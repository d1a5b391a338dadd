package mir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceString(t *testing.T) {
	i32 := IntTy{Bits: 32}

	tests := []struct {
		name  string
		place Place
		want  string
	}{
		{"bare local", PlaceFor(3), "_3"},
		{
			"field chain",
			Place{Local: 1, Projection: []ProjectionElem{
				FieldElem{Field: 0, Ty: i32},
				FieldElem{Field: 2, Ty: i32},
			}},
			"_1.f0.f2",
		},
		{
			"deref of field",
			Place{Local: 1, Projection: []ProjectionElem{
				FieldElem{Field: 1, Ty: i32},
				DerefElem{},
			}},
			"(*_1.f1)",
		},
		{
			"index",
			Place{Local: 2, Projection: []ProjectionElem{IndexElem{Index: 4}}},
			"_2[_4]",
		},
		{
			"constant index from end",
			Place{Local: 2, Projection: []ProjectionElem{
				ConstantIndexElem{Offset: 1, MinLength: 3, FromEnd: true},
			}},
			"_2[-1 of 3]",
		},
		{
			"subslice",
			Place{Local: 2, Projection: []ProjectionElem{SubsliceElem{From: 1, To: 4}}},
			"_2[1:4]",
		},
		{
			"downcast",
			Place{Local: 2, Projection: []ProjectionElem{DowncastElem{Variant: 1}}},
			"(_2 as variant#1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.place.String())
		})
	}
}

func TestTyString(t *testing.T) {
	tests := []struct {
		ty   Ty
		want string
	}{
		{IntTy{Bits: 32}, "i32"},
		{IntTy{Bits: 8, Unsigned: true}, "u8"},
		{BoolTy{}, "bool"},
		{UnitTy{}, "()"},
		{RefTy{Mut: Not, Elem: AdtTy{Name: "Point"}}, "&Point"},
		{RefTy{Mut: Mut, Elem: IntTy{Bits: 64}}, "&mut i64"},
		{TupleTy{Elems: []Ty{IntTy{Bits: 32}, BoolTy{}}}, "(i32, bool)"},
		{AdtTy{Name: "Vec", Args: GenericArgs{IntTy{Bits: 32}}}, "Vec<i32>"},
		{ErrorTy{}, "{error}"},
		{
			CoroutineTy{Unit: "u/c", Kind: CallOnce, Upvars: []Ty{IntTy{Bits: 32}}},
			"{coroutine u/c/call_once [i32]}",
		},
		{
			CoroutineClosureTy{Unit: "u/p", TupledInputs: []Ty{BoolTy{}}, Upvars: []Ty{BoolTy{}}},
			"{coroutine-closure u/p [bool]}",
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TyString(tt.ty))
	}
}

func TestFormatBodyCanonicalDump(t *testing.T) {
	want := `fn demo/unit (item) {
    let mut _0: i32;
    let _1: &mut Point;
    let mut _2: i32;

    bb0: {
        StorageLive(_2);
        _2 = (*_1).f0;
        _0 = BinOp(0, _2, const 1_i32);
        goto -> bb1;
    }

    bb1: {
        return;
    }
}
`
	assert.Equal(t, want, FormatBody(testBody()))
}

func TestFingerprintTracksStructure(t *testing.T) {
	a := testBody()
	b := testBody()
	assert.Equal(t, Fingerprint(a), Fingerprint(b))

	r := &localRenamer{from: 2, to: 6}
	r.V = r
	r.VisitBody(b)
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}
