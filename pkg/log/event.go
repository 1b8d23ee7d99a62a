package log

import (
	"time"

	"github.com/unibind/unibind-go/pkg/xr"
)

// Event represents one intercepted layer call.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// LayerID uniquely identifies the layer instance (UUID).
	LayerID string `cbor:"2,keyasint"`

	// Call is the intercepted operation.
	Call Call `cbor:"3,keyasint"`

	// Handle is the primary handle the call operated on (0 for
	// instance creation, which has no handle yet).
	Handle uint64 `cbor:"4,keyasint,omitempty"`

	// Result is the outcome forwarded to the application.
	Result xr.Result `cbor:"5,keyasint"`

	// Call-specific payload (at most one of these will be set).
	Attach   *AttachEvent   `cbor:"6,keyasint,omitempty"`
	Sync     *SyncEvent     `cbor:"7,keyasint,omitempty"`
	Bindings *BindingsEvent `cbor:"8,keyasint,omitempty"`
	Error    *ErrorEvent    `cbor:"9,keyasint,omitempty"`
}

// Call identifies the intercepted operation.
type Call uint8

const (
	// CallCreateInstance is instance creation (including god set synthesis).
	CallCreateInstance Call = 0
	// CallDestroyInstance is instance teardown.
	CallDestroyInstance Call = 1
	// CallCreateSession is session creation (including god set attach).
	CallCreateSession Call = 2
	// CallDestroySession is session teardown.
	CallDestroySession Call = 3
	// CallCreateActionSet is application action set creation.
	CallCreateActionSet Call = 4
	// CallDestroyActionSet is application action set teardown.
	CallDestroyActionSet Call = 5
	// CallCreateAction is application action creation.
	CallCreateAction Call = 6
	// CallDestroyAction is application action teardown.
	CallDestroyAction Call = 7
	// CallSuggestBindings is an application binding suggestion.
	CallSuggestBindings Call = 8
	// CallAttachActionSets is the application's attach call.
	CallAttachActionSets Call = 9
	// CallSyncActions is a frame synchronization.
	CallSyncActions Call = 10
	// CallGetActionState is any of the four state queries.
	CallGetActionState Call = 11
)

// String returns the call name.
func (c Call) String() string {
	switch c {
	case CallCreateInstance:
		return "CREATE_INSTANCE"
	case CallDestroyInstance:
		return "DESTROY_INSTANCE"
	case CallCreateSession:
		return "CREATE_SESSION"
	case CallDestroySession:
		return "DESTROY_SESSION"
	case CallCreateActionSet:
		return "CREATE_ACTION_SET"
	case CallDestroyActionSet:
		return "DESTROY_ACTION_SET"
	case CallCreateAction:
		return "CREATE_ACTION"
	case CallDestroyAction:
		return "DESTROY_ACTION"
	case CallSuggestBindings:
		return "SUGGEST_BINDINGS"
	case CallAttachActionSets:
		return "ATTACH_ACTION_SETS"
	case CallSyncActions:
		return "SYNC_ACTIONS"
	case CallGetActionState:
		return "GET_ACTION_STATE"
	default:
		return "UNKNOWN"
	}
}

// AttachEvent captures god set attachment during session creation, or the
// application's own attach call.
type AttachEvent struct {
	// SetCount is the number of action sets in the attach call.
	SetCount int `cbor:"1,keyasint"`

	// GodSets indicates whether these are synthesized sets (true) or the
	// application's recorded sets (false).
	GodSets bool `cbor:"2,keyasint,omitempty"`

	// StateCount is the number of god state cells seeded by the attach.
	StateCount int `cbor:"3,keyasint,omitempty"`
}

// SyncEvent captures per-frame synchronization bookkeeping.
type SyncEvent struct {
	// ActiveSets is the number of active sets the application requested.
	ActiveSets int `cbor:"1,keyasint"`

	// ForwardedSets is the number of god sets forwarded in their place.
	ForwardedSets int `cbor:"2,keyasint"`

	// RefreshedCells is the number of god state cells updated this frame.
	RefreshedCells int `cbor:"3,keyasint"`
}

// BindingsEvent captures a binding suggestion.
type BindingsEvent struct {
	// ProfilePath is the interaction profile the suggestion targets.
	ProfilePath string `cbor:"1,keyasint"`

	// BindingCount is the number of suggested bindings.
	BindingCount int `cbor:"2,keyasint"`

	// Known indicates the profile exists in the catalogue.
	Known bool `cbor:"3,keyasint,omitempty"`
}

// ErrorEvent captures errors surfaced by the layer itself rather than
// forwarded from the runtime.
type ErrorEvent struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}
