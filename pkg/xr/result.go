package xr

import "fmt"

// Result is the wrapped API's result-code space. Negative values are errors.
type Result int32

const (
	Success                        Result = 0
	ErrorValidationFailure         Result = -1
	ErrorRuntimeFailure            Result = -2
	ErrorHandleInvalid             Result = -12
	ErrorInstanceLost              Result = -13
	ErrorPathInvalid               Result = -19
	ErrorPathCountExceeded         Result = -20
	ErrorPathFormatInvalid         Result = -21
	ErrorActionTypeMismatch        Result = -27
	ErrorActionsetNotAttached      Result = -46
	ErrorActionsetsAlreadyAttached Result = -47
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case ErrorValidationFailure:
		return "validation failure"
	case ErrorRuntimeFailure:
		return "runtime failure"
	case ErrorHandleInvalid:
		return "handle invalid"
	case ErrorInstanceLost:
		return "instance lost"
	case ErrorPathInvalid:
		return "path invalid"
	case ErrorPathCountExceeded:
		return "path count exceeded"
	case ErrorPathFormatInvalid:
		return "path format invalid"
	case ErrorActionTypeMismatch:
		return "action type mismatch"
	case ErrorActionsetNotAttached:
		return "action set not attached"
	case ErrorActionsetsAlreadyAttached:
		return "action sets already attached"
	default:
		return fmt.Sprintf("result(%d)", int32(r))
	}
}

// Error wraps a Result code as a Go error. Forwarded-call failures are
// propagated as the same *Error the runtime returned, never masked.
type Error struct {
	Code Result
}

func (e *Error) Error() string {
	return "xr: " + e.Code.String()
}

// Is matches any *Error with the same code, so errors.Is(err, ErrHandleInvalid)
// holds for handle-invalid errors from any Runtime implementation.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Sentinel errors for the result codes the layer itself raises or inspects.
var (
	ErrValidationFailure         = &Error{ErrorValidationFailure}
	ErrRuntimeFailure            = &Error{ErrorRuntimeFailure}
	ErrHandleInvalid             = &Error{ErrorHandleInvalid}
	ErrPathInvalid               = &Error{ErrorPathInvalid}
	ErrPathFormatInvalid         = &Error{ErrorPathFormatInvalid}
	ErrActionTypeMismatch        = &Error{ErrorActionTypeMismatch}
	ErrActionsetNotAttached      = &Error{ErrorActionsetNotAttached}
	ErrActionsetsAlreadyAttached = &Error{ErrorActionsetsAlreadyAttached}
)
