package bymove

import (
	"errors"
	"fmt"

	"github.com/roach88/mirpass/internal/mir"
)

// ConsistencyErrorCode categorizes internal-consistency violations.
// These indicate a defect in upstream capture analysis or in this pass,
// never a user-facing language error; the caller must abort the
// compilation unit rather than keep a possibly unsound body.
type ConsistencyErrorCode string

const (
	// ErrCodeParentCaptureUnused: a parent capture was never matched by
	// any child capture.
	ErrCodeParentCaptureUnused ConsistencyErrorCode = "PARENT_CAPTURE_UNUSED"

	// ErrCodeParentCapturesExhausted: the parent list ran out while
	// child captures remained unmatched.
	ErrCodeParentCapturesExhausted ConsistencyErrorCode = "PARENT_CAPTURES_EXHAUSTED"

	// ErrCodeLeftoverParentCaptures: parent captures remained after the
	// last child capture was matched.
	ErrCodeLeftoverParentCaptures ConsistencyErrorCode = "LEFTOVER_PARENT_CAPTURES"

	// ErrCodeDerefUnderCallOnce: a match required peeling a deref while
	// the child's closure kind is CallOnce. A value-consuming body can
	// never be re-deriving a reference from its own by-value captures.
	ErrCodeDerefUnderCallOnce ConsistencyErrorCode = "DEREF_UNDER_CALL_ONCE"

	// ErrCodeCallOnceCoverage: a CallOnce unit's remapping failed to
	// cover the parent's full capture list.
	ErrCodeCallOnceCoverage ConsistencyErrorCode = "CALL_ONCE_COVERAGE"

	// ErrCodeMalformedUpvarSuffix: after retargeting, the remaining
	// projection suffix of an upvar place was not empty or a single
	// dereference.
	ErrCodeMalformedUpvarSuffix ConsistencyErrorCode = "MALFORMED_UPVAR_SUFFIX"

	// ErrCodeMalformedExtraProjection: a precise-capture refinement
	// step was neither a field nor a dereference.
	ErrCodeMalformedExtraProjection ConsistencyErrorCode = "MALFORMED_EXTRA_PROJECTION"
)

// ConsistencyError is an unrecoverable internal-consistency violation
// detected while matching capture lists or rewriting a body.
type ConsistencyError struct {
	Code    ConsistencyErrorCode
	Message string

	// Unit is the coroutine unit being transformed.
	Unit mir.UnitID

	// ChildField and ParentField identify the capture-aggregate fields
	// involved, when known (-1 otherwise).
	ChildField  mir.Field
	ParentField mir.Field
}

// Error implements the error interface.
func (e *ConsistencyError) Error() string {
	if e.Unit != "" {
		return fmt.Sprintf("%s: %s (unit=%s)", e.Code, e.Message, e.Unit)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsConsistencyError reports whether err is a ConsistencyError,
// unwrapping as needed.
func IsConsistencyError(err error) bool {
	var ce *ConsistencyError
	return errors.As(err, &ce)
}

// InputErrorCode categorizes malformed upstream input.
type InputErrorCode string

const (
	// ErrCodeNotACoroutineType: the capture aggregate's type is not a
	// coroutine type.
	ErrCodeNotACoroutineType InputErrorCode = "NOT_A_COROUTINE_TYPE"

	// ErrCodeNotACoroutineClosureType: the parent unit's type is not a
	// coroutine-closure type.
	ErrCodeNotACoroutineClosureType InputErrorCode = "NOT_A_COROUTINE_CLOSURE_TYPE"
)

// InputError reports upstream-input malformation the pass has no
// meaningful fallback for. Compilation of the unit must abort.
type InputError struct {
	Code    InputErrorCode
	Message string
	Unit    mir.UnitID
	Ty      mir.Ty
}

// Error implements the error interface.
func (e *InputError) Error() string {
	if e.Ty != nil {
		return fmt.Sprintf("%s: %s (unit=%s, ty=%s)", e.Code, e.Message, e.Unit, mir.TyString(e.Ty))
	}
	return fmt.Sprintf("%s: %s (unit=%s)", e.Code, e.Message, e.Unit)
}

// IsInputError reports whether err is an InputError, unwrapping as
// needed.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
