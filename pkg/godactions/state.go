package godactions

import (
	"errors"

	"github.com/unibind/unibind-go/pkg/xr"
)

// ErrNotAnInput is returned when a readable state is requested for an
// action type that carries none (vibration outputs, unknown features).
var ErrNotAnInput = errors.New("godactions: action type has no readable state")

// State is the tagged union over the four input state shapes. Kind selects
// the populated variant; the others stay zero. States are small values and
// always replaced whole, never field-by-field.
type State struct {
	Kind     xr.ActionType
	Boolean  xr.ActionStateBoolean
	Float    xr.ActionStateFloat
	Vector2f xr.ActionStateVector2f
	Pose     xr.ActionStatePose
}

/// RestState returns the zero/rest state for an input kind: boolean false,
// float 0, vector (0,0), pose untracked. Validity and change flags are
// false; callers seeding a live cell mark activity themselves.
func RestState(kind xr.ActionType) (State, error) {
	if !kind.IsInput() {
		return State{}, ErrNotAnInput
	}
	return State{Kind: kind}, nil
}

// withActive returns a copy with the variant's validity flag set.
func (s State) withActive(active bool) State {
	switch s.Kind {
	case xr.ActionTypeBooleanInput:
		s.Boolean.IsActive = active
	case xr.ActionTypeFloatInput:
		s.Float.IsActive = active
	case xr.ActionTypeVector2fInput:
		s.Vector2f.IsActive = active
	case xr.ActionTypePoseInput:
		s.Pose.IsActive = active
	}
	return s
}

// Active reports the variant's validity flag.
func (s State) Active() bool {
	switch s.Kind {
	case xr.ActionTypeBooleanInput:
		return s.Boolean.IsActive
	case xr.ActionTypeFloatInput:
		return s.Float.IsActive
	case xr.ActionTypeVector2fInput:
		return s.Vector2f.IsActive
	case xr.ActionTypePoseInput:
		return s.Pose.IsActive
	default:
		return false
	}
}

// merge folds another state of the same kind into s, for NullPath queries
// spanning several subaction paths: booleans OR, floats take the larger
// value, vectors keep the longer one, poses are active if any is.
func (s State) merge(o State) State {
	switch s.Kind {
	case xr.ActionTypeBooleanInput:
		s.Boolean.CurrentState = s.Boolean.CurrentState || o.Boolean.CurrentState
		s.Boolean.ChangedSinceLastSync = s.Boolean.ChangedSinceLastSync || o.Boolean.ChangedSinceLastSync
		s.Boolean.IsActive = s.Boolean.IsActive || o.Boolean.IsActive
		if o.Boolean.LastChangeTime > s.Boolean.LastChangeTime {
			s.Boolean.LastChangeTime = o.Boolean.LastChangeTime
		}
	case xr.ActionTypeFloatInput:
		if o.Float.CurrentState > s.Float.CurrentState {
			s.Float.CurrentState = o.Float.CurrentState
		}
		s.Float.ChangedSinceLastSync = s.Float.ChangedSinceLastSync || o.Float.ChangedSinceLastSync
		s.Float.IsActive = s.Float.IsActive || o.Float.IsActive
		if o.Float.LastChangeTime > s.Float.LastChangeTime {
			s.Float.LastChangeTime = o.Float.LastChangeTime
		}
	case xr.ActionTypeVector2fInput:
		if magnitude(o.Vector2f.CurrentState) > magnitude(s.Vector2f.CurrentState) {
			s.Vector2f.CurrentState = o.Vector2f.CurrentState
		}
		s.Vector2f.ChangedSinceLastSync = s.Vector2f.ChangedSinceLastSync || o.Vector2f.ChangedSinceLastSync
		s.Vector2f.IsActive = s.Vector2f.IsActive || o.Vector2f.IsActive
		if o.Vector2f.LastChangeTime > s.Vector2f.LastChangeTime {
			s.Vector2f.LastChangeTime = o.Vector2f.LastChangeTime
		}
	case xr.ActionTypePoseInput:
		s.Pose.IsActive = s.Pose.IsActive || o.Pose.IsActive
	}
	return s
}

func magnitude(v xr.Vector2f) float32 {
	return v.X*v.X + v.Y*v.Y
}
