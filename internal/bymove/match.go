package bymove

import (
	"fmt"

	"github.com/roach88/mirpass/internal/capture"
	"github.com/roach88/mirpass/internal/mir"
)

// Remap is one row of the field-remapping table: how a child
// capture-aggregate field retargets onto the parent's aggregate.
type Remap struct {
	// ParentField is the parent aggregate field the child field maps to.
	ParentField mir.Field

	// ParentTy is the parent capture's effective type: the place type,
	// wrapped in a reference of the captured mutability when the parent
	// holds it by reference. Needed when rebuilding field projections.
	ParentTy mir.Ty

	// NeedsDeref is set when the child captures by reference while the
	// parent captures by value: the child body dereferences one level
	// that the by-move body must elide.
	NeedsDeref bool

	// Extra is the suffix of the child's capture path beyond the
	// parent's path length: precise-capture refinements to re-apply
	// after retargeting.
	Extra []capture.Projection
}

// Remapping maps child capture-aggregate fields to their retargeting.
type Remapping map[mir.Field]Remap

// MatchCaptures reconciles a parent capture list against a child list
// that may have split parent captures into finer ones, producing the
// field-remapping table for the by-move rewrite.
//
// The first numArgs child captures are the explicit call arguments,
// which the child captures first by construction; they are skipped. The
// remainder are matched against the parent list in one forward pass: a
// peeked parent capture serves consecutive matching children and is
// only advanced past once a child fails to match — at which point it
// must have served at least one child. Both lists are ordered by
// declaration and refinement never reorders siblings, so the merge is
// linear with no backtracking.
//
// kind is the closure kind of the child coroutine. A match that needs a
// deref peel under CallOnce is a consistency error: CallOnce bodies
// capture from their own aggregate by value and can never re-derive a
// parent reference.
func MatchCaptures(unit mir.UnitID, parent, child capture.List, numArgs int, kind mir.ClosureKind) (Remapping, error) {
	remapping := make(Remapping, len(child))

	// One parent capture may correspond to several child captures when
	// precise captures refined the set. Peek the current parent and
	// keep serving children until one stops matching.
	parentIdx := 0
	usedAtLeastOnce := false

	childUpvars := child
	if numArgs <= len(childUpvars) {
		childUpvars = childUpvars[numArgs:]
	} else {
		childUpvars = nil
	}

	for childIdx, childCapture := range childUpvars {
		for {
			if parentIdx >= len(parent) {
				return nil, &ConsistencyError{
					Code:        ErrCodeParentCapturesExhausted,
					Message:     fmt.Sprintf("ran out of parent captures with child capture %d unmatched", childIdx),
					Unit:        unit,
					ChildField:  mir.Field(childIdx + numArgs),
					ParentField: -1,
				}
			}
			parentCapture := parent[parentIdx]

			if !capture.PrefixMatches(parentCapture, childCapture) {
				// The parent capture is done serving children; it must
				// have served at least one.
				if !usedAtLeastOnce {
					return nil, &ConsistencyError{
						Code:        ErrCodeParentCaptureUnused,
						Message:     fmt.Sprintf("parent capture %d was never used by the child coroutine", parentIdx),
						Unit:        unit,
						ChildField:  mir.Field(childIdx + numArgs),
						ParentField: mir.Field(parentIdx),
					}
				}
				usedAtLeastOnce = false
				parentIdx++
				continue
			}

			// The suffix beyond the parent's path length holds the
			// precise-capture refinements to re-apply later.
			extra := childCapture.Place.Projections[len(parentCapture.Place.Projections):]

			needsDeref := childCapture.Mode.IsByRef() && !parentCapture.Mode.IsByRef()
			if needsDeref && kind == mir.CallOnce {
				return nil, &ConsistencyError{
					Code:        ErrCodeDerefUnderCallOnce,
					Message:     "CallOnce coroutine body would borrow from its own by-value capture",
					Unit:        unit,
					ChildField:  mir.Field(childIdx + numArgs),
					ParentField: mir.Field(parentIdx),
				}
			}

			remapping[mir.Field(childIdx+numArgs)] = Remap{
				ParentField: mir.Field(parentIdx + numArgs),
				ParentTy:    parentCapture.EffectiveTy(),
				NeedsDeref:  needsDeref,
				Extra:       extra,
			}
			usedAtLeastOnce = true
			break
		}
	}

	// Pop the final parent capture, then require exhaustion.
	if usedAtLeastOnce {
		parentIdx++
	}
	if parentIdx < len(parent) {
		return nil, &ConsistencyError{
			Code:        ErrCodeLeftoverParentCaptures,
			Message:     fmt.Sprintf("%d parent capture(s) left unmatched", len(parent)-parentIdx),
			Unit:        unit,
			ChildField:  -1,
			ParentField: mir.Field(parentIdx),
		}
	}

	return remapping, nil
}
