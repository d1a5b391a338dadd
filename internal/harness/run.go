package harness

import (
	"errors"
	"fmt"

	"github.com/roach88/mirpass/internal/bymove"
	"github.com/roach88/mirpass/internal/capture"
	"github.com/roach88/mirpass/internal/mir"
	"github.com/roach88/mirpass/internal/passes"
	"github.com/roach88/mirpass/internal/testutil"
)

// Result is the outcome of one scenario run.
type Result struct {
	// Pass indicates that every expectation held.
	Pass bool

	// Errors lists expectation violations. Empty when Pass is true.
	Errors []string

	// Body is the input body after the pipeline ran; its coroutine info
	// carries the synthesized by-move body when one was produced.
	Body *mir.Body

	// Err is the pipeline error, when the run failed.
	Err error
}

// AddError records one expectation violation.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Run executes a scenario: it builds the child coroutine body from the
// capture lists, runs the pass pipeline over it, and checks the outcome
// against the scenario's expectations.
func Run(s *Scenario) (*Result, error) {
	kind, err := parseKind(s.Kind)
	if err != nil {
		return nil, err
	}
	parentList, err := toList(s.ParentCaptures)
	if err != nil {
		return nil, fmt.Errorf("parent captures: %w", err)
	}
	childUpvars, err := toList(s.ChildCaptures)
	if err != nil {
		return nil, fmt.Errorf("child captures: %w", err)
	}
	if err := parentList.Validate(); err != nil {
		return nil, fmt.Errorf("parent captures: %w", err)
	}
	if err := childUpvars.Validate(); err != nil {
		return nil, fmt.Errorf("child captures: %w", err)
	}

	parentUnit := mir.UnitID(s.ParentUnit)
	if parentUnit == "" {
		parentUnit = mir.UnitID(s.Name + "/parent")
	}
	childUnit := mir.UnitID(s.ChildUnit)
	if childUnit == "" {
		childUnit = mir.UnitID(s.Name + "/child")
	}

	childList := testutil.WithArgs(s.NumArgs, childUpvars)
	body, provider := buildScenario(s, kind, parentUnit, childUnit, parentList, childList)

	runner := passes.New([]passes.BodyPass{
		&bymove.Pass{Captures: provider},
	})

	result := &Result{Pass: true, Body: body}
	result.Err = runner.Run(body)
	checkExpectations(s, kind, parentList, childList, result)
	return result, nil
}

// buildScenario assembles the child coroutine body and the capture
// provider backing both units.
func buildScenario(s *Scenario, kind mir.ClosureKind, parentUnit, childUnit mir.UnitID, parentList, childList capture.List) (*mir.Body, *testutil.Provider) {
	childUpvarTys := make([]mir.Ty, len(childList))
	for i, c := range childList {
		childUpvarTys[i] = c.EffectiveTy()
	}
	childTy := mir.CoroutineTy{Unit: childUnit, Kind: kind, Upvars: childUpvarTys}

	parentUpvarTys := make([]mir.Ty, len(parentList))
	for i, c := range parentList {
		parentUpvarTys[i] = c.EffectiveTy()
	}
	tupledInputs := make([]mir.Ty, s.NumArgs)
	for i := range tupledInputs {
		tupledInputs[i] = mir.IntTy{Bits: 32}
	}
	parentTy := mir.CoroutineClosureTy{
		Unit:         parentUnit,
		TupledInputs: tupledInputs,
		Upvars:       parentUpvarTys,
	}

	provider := testutil.NewProvider()
	provider.SetUnit(parentUnit, parentTy, parentList)
	provider.SetUnit(childUnit, childTy, childList)

	// The body is the canonical upvar prologue: one local per true
	// upvar, moved (or re-borrowed through a deref) out of the capture
	// aggregate.
	b := testutil.NewCoroutineBody(childUnit, parentUnit, kind, childTy)
	for i := s.NumArgs; i < len(childList); i++ {
		c := childList[i]
		dest := b.NewLocal(c.Place.Ty, false)
		elems := []mir.ProjectionElem{
			mir.FieldElem{Field: mir.Field(i), Ty: c.EffectiveTy()},
		}
		if c.Mode.IsByRef() {
			elems = append(elems, mir.DerefElem{})
			b.CopyFromCapture(dest, elems...)
		} else {
			b.MoveFromCapture(dest, elems...)
		}
	}
	return b.Finish(), provider
}

func checkExpectations(s *Scenario, kind mir.ClosureKind, parentList, childList capture.List, result *Result) {
	if s.Expect.Error != "" {
		if result.Err == nil {
			result.AddError("expected error %s, pipeline succeeded", s.Expect.Error)
			return
		}
		code := errorCode(result.Err)
		if code != s.Expect.Error {
			result.AddError("expected error %s, got %s (%v)", s.Expect.Error, code, result.Err)
		}
		return
	}

	if result.Err != nil {
		result.AddError("pipeline failed: %v", result.Err)
		return
	}

	// Re-derive the remapping the pass computed; MatchCaptures is
	// deterministic, so this is the table the rewrite used.
	remapping, err := bymove.MatchCaptures(result.Body.Source.Unit, parentList, childList, s.NumArgs, kind)
	if err != nil {
		result.AddError("re-deriving remapping: %v", err)
		return
	}

	if len(remapping) != len(s.Expect.Remapping) {
		result.AddError("expected %d remapping rows, got %d", len(s.Expect.Remapping), len(remapping))
	}
	for _, want := range s.Expect.Remapping {
		got, ok := remapping[mir.Field(want.ChildField)]
		if !ok {
			result.AddError("no remapping row for child field %d", want.ChildField)
			continue
		}
		if int(got.ParentField) != want.ParentField {
			result.AddError("child field %d: parent field %d, want %d", want.ChildField, got.ParentField, want.ParentField)
		}
		if got.NeedsDeref != want.NeedsDeref {
			result.AddError("child field %d: needs_deref %t, want %t", want.ChildField, got.NeedsDeref, want.NeedsDeref)
		}
		if len(got.Extra) != want.Extra {
			result.AddError("child field %d: %d extra steps, want %d", want.ChildField, len(got.Extra), want.Extra)
		}
	}

	if kind == mir.CallOnce {
		if result.Body.Coroutine.ByMoveBody != nil {
			result.AddError("CallOnce unit must not get an alternate body")
		}
	} else {
		bm := result.Body.Coroutine.ByMoveBody
		if bm == nil {
			result.AddError("no by-move body was synthesized")
			return
		}
		if bm.Source.Origin != mir.OriginByMoveShim {
			result.AddError("by-move body is not tagged as a shim")
		}
		if bm.Coroutine == nil || bm.Coroutine.Kind != mir.CallOnce {
			result.AddError("by-move body must be a CallOnce coroutine")
		}
	}
}

func errorCode(err error) string {
	var ce *bymove.ConsistencyError
	if errors.As(err, &ce) {
		return string(ce.Code)
	}
	var ie *bymove.InputError
	if errors.As(err, &ie) {
		return string(ie.Code)
	}
	return err.Error()
}
