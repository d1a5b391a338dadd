// Package testutil provides builders for constructing coroutine bodies
// and capture lists in tests. Construction is deterministic: spans come
// from a monotonic counter, so the same builder calls always produce
// byte-identical dumps for golden comparison.
package testutil

import (
	"github.com/roach88/mirpass/internal/mir"
)

// BodyBuilder accumulates statements for a single-block coroutine body.
type BodyBuilder struct {
	body    *mir.Body
	stmts   []mir.Statement
	nextPos int
}

// NewCoroutineBody starts a body for a coroutine desugared from the
// closure-like unit parent. The body gets the standard local layout: _0
// is the unit-typed return slot and _1 the capture aggregate of type
// captureTy.
func NewCoroutineBody(unit, parent mir.UnitID, kind mir.ClosureKind, captureTy mir.Ty) *BodyBuilder {
	b := &BodyBuilder{
		body: &mir.Body{
			Source: mir.Source{Unit: unit, Origin: mir.OriginItem},
			SourceScopes: []mir.SourceScopeData{
				{Span: mir.Span{Lo: 0, Hi: 0}},
			},
			LocalDecls: []mir.LocalDecl{
				{Mutable: true, Ty: mir.UnitTy{}},
				{Ty: captureTy},
			},
			ArgCount: 1,
			Coroutine: &mir.CoroutineInfo{
				Kind:   kind,
				Source: mir.CoroutineSourceClosure,
				Parent: parent,
			},
		},
	}
	return b
}

// NewLocal appends a local declaration and returns its index.
func (b *BodyBuilder) NewLocal(ty mir.Ty, mutable bool) mir.Local {
	b.body.LocalDecls = append(b.body.LocalDecls, mir.LocalDecl{
		Mutable:    mutable,
		Ty:         ty,
		SourceInfo: b.nextSourceInfo(),
	})
	return mir.Local(len(b.body.LocalDecls) - 1)
}

// Assign appends `place = rv`.
func (b *BodyBuilder) Assign(place mir.Place, rv mir.Rvalue) *BodyBuilder {
	b.stmts = append(b.stmts, mir.Statement{
		SourceInfo: b.nextSourceInfo(),
		Kind:       &mir.AssignStmt{Place: place, Rv: rv},
	})
	return b
}

// MoveFromCapture appends `_dest = move _1.<elems>`: the canonical
// upvar-initialization shape every closure-desugared body opens with.
func (b *BodyBuilder) MoveFromCapture(dest mir.Local, elems ...mir.ProjectionElem) *BodyBuilder {
	src := mir.Place{Local: mir.CaptureStructLocal, Projection: elems}
	return b.Assign(mir.PlaceFor(dest), &mir.UseRvalue{Op: &mir.MoveOperand{Place: src}})
}

// CopyFromCapture appends `_dest = _1.<elems>` (a copy use).
func (b *BodyBuilder) CopyFromCapture(dest mir.Local, elems ...mir.ProjectionElem) *BodyBuilder {
	src := mir.Place{Local: mir.CaptureStructLocal, Projection: elems}
	return b.Assign(mir.PlaceFor(dest), &mir.UseRvalue{Op: &mir.CopyOperand{Place: src}})
}

// StorageLive appends a StorageLive marker for local.
func (b *BodyBuilder) StorageLive(local mir.Local) *BodyBuilder {
	b.stmts = append(b.stmts, mir.Statement{
		SourceInfo: b.nextSourceInfo(),
		Kind:       &mir.StorageLiveStmt{Local: local},
	})
	return b
}

// StorageDead appends a StorageDead marker for local.
func (b *BodyBuilder) StorageDead(local mir.Local) *BodyBuilder {
	b.stmts = append(b.stmts, mir.Statement{
		SourceInfo: b.nextSourceInfo(),
		Kind:       &mir.StorageDeadStmt{Local: local},
	})
	return b
}

// Finish closes the single block with a return terminator and hands the
// body over. The builder must not be reused afterwards.
func (b *BodyBuilder) Finish() *mir.Body {
	b.body.Blocks = []mir.BasicBlockData{{
		Statements: b.stmts,
		Terminator: &mir.Terminator{
			SourceInfo: b.nextSourceInfo(),
			Kind:       &mir.ReturnTerm{},
		},
	}}
	b.body.Span = mir.Span{Lo: 0, Hi: b.nextPos}
	return b.body
}

func (b *BodyBuilder) nextSourceInfo() mir.SourceInfo {
	b.nextPos++
	return mir.SourceInfo{
		Span:  mir.Span{Lo: b.nextPos - 1, Hi: b.nextPos},
		Scope: mir.OuterSourceScope,
	}
}
