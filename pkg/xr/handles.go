package xr

// Instance is an opaque instance handle issued by the underlying runtime.
type Instance uint64

// Session is an opaque session handle issued by the underlying runtime.
type Session uint64

// ActionSet is an opaque action-set handle issued by the underlying runtime.
type ActionSet uint64

// Action is an opaque action handle issued by the underlying runtime.
type Action uint64

// Path is a native semantic-path atom. Path values are only meaningful to
// the runtime that resolved them; use StringToPath/PathToString to convert.
type Path uint64

// NullPath is the absent path. A state query with NullPath as the subaction
// path addresses all subaction paths of the action at once.
const NullPath Path = 0

// ActionType classifies the value shape of an action.
type ActionType int32

const (
	ActionTypeUnknown         ActionType = 0
	ActionTypeBooleanInput    ActionType = 1
	ActionTypeFloatInput      ActionType = 2
	ActionTypeVector2fInput   ActionType = 3
	ActionTypePoseInput       ActionType = 4
	ActionTypeVibrationOutput ActionType = 100
)

// IsInput reports whether the type carries application-readable state.
// Vibration outputs and unknown types do not.
func (t ActionType) IsInput() bool {
	switch t {
	case ActionTypeBooleanInput, ActionTypeFloatInput, ActionTypeVector2fInput, ActionTypePoseInput:
		return true
	}
	return false
}

func (t ActionType) String() string {
	switch t {
	case ActionTypeBooleanInput:
		return "boolean"
	case ActionTypeFloatInput:
		return "float"
	case ActionTypeVector2fInput:
		return "vector2f"
	case ActionTypePoseInput:
		return "pose"
	case ActionTypeVibrationOutput:
		return "vibration"
	default:
		return "unknown"
	}
}
