package xr

// InstanceCreateInfo carries the application identity for instance creation.
type InstanceCreateInfo struct {
	ApplicationName    string
	ApplicationVersion uint32
	EngineName         string
	EngineVersion      uint32
}

// SessionCreateInfo identifies the system a session is created for.
type SessionCreateInfo struct {
	SystemID uint64
}

// ActionSetCreateInfo carries the application-visible action-set identity.
// Priority only affects how the runtime resolves binding conflicts; the
// layer forwards it untouched.
type ActionSetCreateInfo struct {
	Name          string
	LocalizedName string
	Priority      uint32
}

// ActionCreateInfo describes an action to create within an action set.
type ActionCreateInfo struct {
	Name           string
	Type           ActionType
	SubactionPaths []Path
	LocalizedName  string
}

// SuggestedBinding pairs an action with one binding path under a profile.
type SuggestedBinding struct {
	Action  Action
	Binding Path
}

// ActiveActionSet names an action set to synchronize, optionally narrowed
// to a single subaction path.
type ActiveActionSet struct {
	ActionSet     ActionSet
	SubactionPath Path
}

// GetInfo addresses one (action, subaction path) pair for a state query.
type GetInfo struct {
	Action        Action
	SubactionPath Path
}

// Runtime is the layer below: the real XR runtime (or the next layer down).
// Every method forwards one wrapped API call. Implementations must be safe
// for concurrent use. Failures are *Error values and must be returned
// unchanged by anything forwarding them.
type Runtime interface {
	CreateInstance(info *InstanceCreateInfo) (Instance, error)
	DestroyInstance(instance Instance) error

	CreateSession(instance Instance, info *SessionCreateInfo) (Session, error)
	DestroySession(session Session) error

	CreateActionSet(instance Instance, info *ActionSetCreateInfo) (ActionSet, error)
	DestroyActionSet(actionSet ActionSet) error

	CreateAction(actionSet ActionSet, info *ActionCreateInfo) (Action, error)
	DestroyAction(action Action) error

	AttachSessionActionSets(session Session, actionSets []ActionSet) error
	SuggestInteractionProfileBindings(instance Instance, profile Path, bindings []SuggestedBinding) error
	SyncActions(session Session, activeSets []ActiveActionSet) error

	GetActionStateBoolean(session Session, info *GetInfo) (ActionStateBoolean, error)
	GetActionStateFloat(session Session, info *GetInfo) (ActionStateFloat, error)
	GetActionStateVector2f(session Session, info *GetInfo) (ActionStateVector2f, error)
	GetActionStatePose(session Session, info *GetInfo) (ActionStatePose, error)

	StringToPath(instance Instance, s string) (Path, error)
	PathToString(instance Instance, p Path) (string, error)
}
