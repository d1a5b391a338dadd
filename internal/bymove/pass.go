// Package bymove synthesizes the by-move sibling body of a coroutine
// that was desugared from a closure-like unit.
//
// A coroutine nested in a closure normally borrows its captures from the
// parent closure's capture aggregate. When the unit is invoked through
// its consuming call path, the parent aggregate is destroyed, so the
// coroutine must instead hold the parent's captures by value. This pass
// reconciles the parent and child capture lists into a field-remapping
// table, clones the coroutine body, retargets every capture-aggregate
// place through the table (peeling the dereference layer that became
// redundant wherever the parent captured by value), retypes the capture
// aggregate local, and attaches the clone to the original body as its
// alternate, value-consuming entry point.
//
// The pass is deterministic and pure: it mutates only its own clone, and
// re-running it on the same inputs yields the same output or the same
// fatal condition. Consistency violations abort the unit; they are
// defects in upstream capture analysis or in this pass, never valid
// inputs to recover from.
package bymove

import (
	"fmt"
	"log/slog"

	"github.com/roach88/mirpass/internal/capture"
	"github.com/roach88/mirpass/internal/mir"
)

// PassName identifies this pass in logs and trace dumps.
const PassName = "coroutine_by_move"

// DumpSink receives the dump of a freshly synthesized body. Implemented
// by the trace package; a nil sink disables dumping. Sink failures are
// reported to the pass logger and are not pass failures.
type DumpSink interface {
	Dump(unit mir.UnitID, pass string, seq int, body *mir.Body) error
}

// Pass is the by-move body synthesis pass.
type Pass struct {
	// Captures provides capture lists and unit types.
	Captures capture.Provider

	// Sink, when non-nil, receives a dump of each synthesized body.
	Sink DumpSink

	// Log, when non-nil, receives pass diagnostics.
	Log *slog.Logger
}

// Name implements the body-pass interface.
func (p *Pass) Name() string { return PassName }

// Run synthesizes and attaches the by-move body when the input needs
// one. The original body is left unchanged apart from the attachment.
//
// Early exits, indistinguishable from success: the body is not a
// coroutine desugared from a closure; the capture aggregate's type
// contains an error placeholder; the body is itself an already
// synthesized by-move shim; the unit's kind is CallOnce (its body
// already consumes captures by value — the remapping is still computed
// and checked for full coverage).
func (p *Pass) Run(body *mir.Body) error {
	if body.Coroutine == nil || body.Coroutine.Source != mir.CoroutineSourceClosure {
		return nil
	}

	// Skip bodies with type errors; there is no guarantee they were
	// constructed well.
	coroutineTy := body.LocalDecls[mir.CaptureStructLocal].Ty
	if mir.ReferencesError(coroutineTy) {
		return nil
	}

	if body.Source.Origin == mir.OriginByMoveShim {
		return nil
	}

	unit := body.Source.Unit
	ct, ok := coroutineTy.(mir.CoroutineTy)
	if !ok {
		return &InputError{
			Code:    ErrCodeNotACoroutineType,
			Message: "capture aggregate of a coroutine body has a non-coroutine type",
			Unit:    unit,
			Ty:      coroutineTy,
		}
	}
	coroutineKind := ct.Kind

	parentUnit := body.Coroutine.Parent
	parentTy := p.Captures.TypeOf(parentUnit)
	pct, ok := parentTy.(mir.CoroutineClosureTy)
	if !ok {
		return &InputError{
			Code:    ErrCodeNotACoroutineClosureType,
			Message: "parent of a closure-desugared coroutine has a non-coroutine-closure type",
			Unit:    unit,
			Ty:      parentTy,
		}
	}
	numArgs := len(pct.TupledInputs)

	parentCaptures := p.Captures.Captures(parentUnit)
	childCaptures := p.Captures.Captures(unit)

	remapping, err := MatchCaptures(unit, parentCaptures, childCaptures, numArgs, coroutineKind)
	if err != nil {
		return err
	}

	if coroutineKind == mir.CallOnce {
		// The body already captures everything by value; no alternate
		// body is needed, but the remapping must still cover the whole
		// parent list.
		if len(remapping) != len(parentCaptures) {
			return &ConsistencyError{
				Code: ErrCodeCallOnceCoverage,
				Message: fmt.Sprintf("remapping covers %d of %d parent captures",
					len(remapping), len(parentCaptures)),
				Unit:        unit,
				ChildField:  -1,
				ParentField: -1,
			}
		}
		return nil
	}

	// The by-move aggregate keeps the leading argument fields and holds
	// the parent's captures after them, which is why remapped indices
	// are parent field plus argument count.
	upvars := make([]mir.Ty, 0, len(pct.TupledInputs)+len(pct.Upvars))
	upvars = append(upvars, pct.TupledInputs...)
	upvars = append(upvars, pct.Upvars...)
	byMoveTy := mir.CoroutineTy{
		Unit:   unit,
		Kind:   mir.CallOnce,
		Upvars: upvars,
	}

	byMoveBody := body.Clone()
	rw := &rewriter{
		unit:     unit,
		remap:    remapping,
		byMoveTy: byMoveTy,
	}
	rw.V = rw
	rw.VisitBody(byMoveBody)
	if rw.err != nil {
		return rw.err
	}

	byMoveBody.Source.Origin = mir.OriginByMoveShim
	if byMoveBody.Coroutine != nil {
		byMoveBody.Coroutine.ByMoveBody = nil
		byMoveBody.Coroutine.Kind = mir.CallOnce
	}
	body.Coroutine.ByMoveBody = byMoveBody

	if p.Sink != nil {
		if err := p.Sink.Dump(unit, PassName, 0, byMoveBody); err != nil && p.Log != nil {
			p.Log.Warn("by-move dump failed",
				slog.String("unit", string(unit)),
				slog.String("error", err.Error()))
		}
	}
	return nil
}

// rewriter retargets every capture-aggregate place through the
// remapping table. Everything else delegates to the default mutating
// traversal, so the clone stays structurally identical elsewhere.
type rewriter struct {
	mir.MutVisitorBase
	unit     mir.UnitID
	remap    Remapping
	byMoveTy mir.Ty
	err      error
}

func (r *rewriter) VisitPlace(place *mir.Place, ctx mir.PlaceContext, loc mir.Location) {
	if r.err == nil {
		if repl, changed, err := r.rewritePlace(*place); err != nil {
			r.err = err
		} else if changed {
			*place = repl
		}
	}
	mir.WalkPlaceMut(r, place, ctx, loc)
}

// rewritePlace applies the remapping to one place. Initializing an
// upvar local always starts with the capture aggregate local and a field
// projection; fields in the remapping are upvars rather than call args.
func (r *rewriter) rewritePlace(place mir.Place) (mir.Place, bool, error) {
	if place.Local != mir.CaptureStructLocal || len(place.Projection) == 0 {
		return place, false, nil
	}
	first, ok := place.Projection[0].(mir.FieldElem)
	if !ok {
		return place, false, nil
	}
	m, ok := r.remap[first.Field]
	if !ok {
		return place, false, nil
	}

	suffix := place.Projection[1:]
	if m.NeedsDeref {
		// The parent captures by value and the child by reference: the
		// layer of reffing is now redundant, so one deref is peeled.
		if len(suffix) == 0 {
			return place, false, &ConsistencyError{
				Code:        ErrCodeMalformedUpvarSuffix,
				Message:     fmt.Sprintf("expected a deref after upvar field in %s", place),
				Unit:        r.unit,
				ChildField:  first.Field,
				ParentField: m.ParentField,
			}
		}
		if _, isDeref := suffix[0].(mir.DerefElem); !isDeref {
			return place, false, &ConsistencyError{
				Code:        ErrCodeMalformedUpvarSuffix,
				Message:     fmt.Sprintf("expected a deref after upvar field in %s", place),
				Unit:        r.unit,
				ChildField:  first.Field,
				ParentField: m.ParentField,
			}
		}
		suffix = suffix[1:]
	}

	// The only thing that may remain is one deref, present when the
	// parent itself captured the upvar by reference.
	if len(suffix) > 1 {
		return place, false, &ConsistencyError{
			Code:        ErrCodeMalformedUpvarSuffix,
			Message:     fmt.Sprintf("unexpected projection suffix on upvar place %s", place),
			Unit:        r.unit,
			ChildField:  first.Field,
			ParentField: m.ParentField,
		}
	}
	if len(suffix) == 1 {
		if _, isDeref := suffix[0].(mir.DerefElem); !isDeref {
			return place, false, &ConsistencyError{
				Code:        ErrCodeMalformedUpvarSuffix,
				Message:     fmt.Sprintf("unexpected projection suffix on upvar place %s", place),
				Unit:        r.unit,
				ChildField:  first.Field,
				ParentField: m.ParentField,
			}
		}
	}

	projection := make([]mir.ProjectionElem, 0, 1+len(m.Extra)+len(suffix))
	projection = append(projection, mir.FieldElem{Field: m.ParentField, Ty: m.ParentTy})

	// Precise captures only ever refine through fields and derefs.
	for _, extra := range m.Extra {
		switch extra.Kind {
		case capture.DerefKind:
			projection = append(projection, mir.DerefElem{})
		case capture.FieldKind:
			projection = append(projection, mir.FieldElem{Field: extra.Field, Ty: extra.Ty})
		default:
			return place, false, &ConsistencyError{
				Code:        ErrCodeMalformedExtraProjection,
				Message:     fmt.Sprintf("precise capture refined through %s", extra.Kind),
				Unit:        r.unit,
				ChildField:  first.Field,
				ParentField: m.ParentField,
			}
		}
	}
	projection = append(projection, suffix...)

	return mir.Place{Local: place.Local, Projection: projection}, true, nil
}

func (r *rewriter) VisitLocalDecl(local mir.Local, decl *mir.LocalDecl) {
	// Replace the type of the self arg; other declarations are left
	// untouched.
	if local == mir.CaptureStructLocal {
		decl.Ty = r.byMoveTy
	}
}
