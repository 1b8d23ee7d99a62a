// Package fake provides a scripted in-memory xr.Runtime for tests: handle
// issuance, path interning, attach-once enforcement, per-action scripted
// states, call recording, and error injection.
package fake

import (
	"fmt"
	"sync"

	"github.com/unibind/unibind-go/pkg/xr"
)

// Runtime is a scripted stand-in for the layer below. Safe for concurrent
// use. The zero value is not usable; construct with NewRuntime.
type Runtime struct {
	mu sync.Mutex

	nextHandle uint64
	nextPath   uint64

	paths     map[string]xr.Path
	pathNames map[xr.Path]string

	instances  map[xr.Instance]bool
	sessions   map[xr.Session]xr.Instance
	actionSets map[xr.ActionSet]*actionSetRec
	actions    map[xr.Action]*actionRec

	attached  map[xr.Session][]xr.ActionSet
	suggested map[suggestKey][]xr.SuggestedBinding
	syncCount map[xr.Session]int

	boolStates  map[stateKey]xr.ActionStateBoolean
	floatStates map[stateKey]xr.ActionStateFloat
	vec2States  map[stateKey]xr.ActionStateVector2f
	poseStates  map[stateKey]xr.ActionStatePose

	calls []string

	// Error injection. A non-nil value makes the corresponding call fail.
	FailCreateInstance  error
	FailCreateSession   error
	FailCreateActionSet error
	FailCreateAction    error
	FailAttach          error
	FailSuggest         error
	FailSync            error
	FailStringToPath    error
	FailGetState        error
}

type actionSetRec struct {
	instance xr.Instance
	info     xr.ActionSetCreateInfo
}

type actionRec struct {
	set  xr.ActionSet
	info xr.ActionCreateInfo
}

type suggestKey struct {
	instance xr.Instance
	profile  xr.Path
}

type stateKey struct {
	action    xr.Action
	subaction xr.Path
}

// NewRuntime creates an empty fake runtime.
func NewRuntime() *Runtime {
	return &Runtime{
		paths:       make(map[string]xr.Path),
		pathNames:   make(map[xr.Path]string),
		instances:   make(map[xr.Instance]bool),
		sessions:    make(map[xr.Session]xr.Instance),
		actionSets:  make(map[xr.ActionSet]*actionSetRec),
		actions:     make(map[xr.Action]*actionRec),
		attached:    make(map[xr.Session][]xr.ActionSet),
		suggested:   make(map[suggestKey][]xr.SuggestedBinding),
		syncCount:   make(map[xr.Session]int),
		boolStates:  make(map[stateKey]xr.ActionStateBoolean),
		floatStates: make(map[stateKey]xr.ActionStateFloat),
		vec2States:  make(map[stateKey]xr.ActionStateVector2f),
		poseStates:  make(map[stateKey]xr.ActionStatePose),
	}
}

func (r *Runtime) record(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *Runtime) issue() uint64 {
	r.nextHandle++
	return r.nextHandle
}

// CreateInstance issues a new instance handle.
func (r *Runtime) CreateInstance(info *xr.InstanceCreateInfo) (xr.Instance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailCreateInstance != nil {
		return 0, r.FailCreateInstance
	}
	h := xr.Instance(r.issue())
	r.instances[h] = true
	r.record("CreateInstance(%s)", info.ApplicationName)
	return h, nil
}

// DestroyInstance forgets an instance handle.
func (r *Runtime) DestroyInstance(instance xr.Instance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.instances[instance] {
		return xr.ErrHandleInvalid
	}
	delete(r.instances, instance)
	r.record("DestroyInstance(%d)", instance)
	return nil
}

// CreateSession issues a new session handle under an instance.
func (r *Runtime) CreateSession(instance xr.Instance, _ *xr.SessionCreateInfo) (xr.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailCreateSession != nil {
		return 0, r.FailCreateSession
	}
	if !r.instances[instance] {
		return 0, xr.ErrHandleInvalid
	}
	h := xr.Session(r.issue())
	r.sessions[h] = instance
	r.record("CreateSession(%d)", instance)
	return h, nil
}

// DestroySession forgets a session handle.
func (r *Runtime) DestroySession(session xr.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session]; !ok {
		return xr.ErrHandleInvalid
	}
	delete(r.sessions, session)
	delete(r.attached, session)
	r.record("DestroySession(%d)", session)
	return nil
}

// CreateActionSet issues a new action-set handle.
func (r *Runtime) CreateActionSet(instance xr.Instance, info *xr.ActionSetCreateInfo) (xr.ActionSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailCreateActionSet != nil {
		return 0, r.FailCreateActionSet
	}
	if !r.instances[instance] {
		return 0, xr.ErrHandleInvalid
	}
	h := xr.ActionSet(r.issue())
	r.actionSets[h] = &actionSetRec{instance: instance, info: *info}
	r.record("CreateActionSet(%s)", info.Name)
	return h, nil
}

// DestroyActionSet forgets an action-set handle.
func (r *Runtime) DestroyActionSet(actionSet xr.ActionSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.actionSets[actionSet]; !ok {
		return xr.ErrHandleInvalid
	}
	delete(r.actionSets, actionSet)
	r.record("DestroyActionSet(%d)", actionSet)
	return nil
}

// CreateAction issues a new action handle within a set.
func (r *Runtime) CreateAction(actionSet xr.ActionSet, info *xr.ActionCreateInfo) (xr.Action, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailCreateAction != nil {
		return 0, r.FailCreateAction
	}
	if _, ok := r.actionSets[actionSet]; !ok {
		return 0, xr.ErrHandleInvalid
	}
	h := xr.Action(r.issue())
	r.actions[h] = &actionRec{set: actionSet, info: *info}
	r.record("CreateAction(%s)", info.Name)
	return h, nil
}

// DestroyAction forgets an action handle.
func (r *Runtime) DestroyAction(action xr.Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.actions[action]; !ok {
		return xr.ErrHandleInvalid
	}
	delete(r.actions, action)
	r.record("DestroyAction(%d)", action)
	return nil
}

// AttachSessionActionSets records the one permitted attach for a session.
func (r *Runtime) AttachSessionActionSets(session xr.Session, actionSets []xr.ActionSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailAttach != nil {
		return r.FailAttach
	}
	if _, ok := r.sessions[session]; !ok {
		return xr.ErrHandleInvalid
	}
	if _, ok := r.attached[session]; ok {
		return xr.ErrActionsetsAlreadyAttached
	}
	r.attached[session] = append([]xr.ActionSet(nil), actionSets...)
	r.record("AttachSessionActionSets(%d, %d sets)", session, len(actionSets))
	return nil
}

// SuggestInteractionProfileBindings records suggested bindings per profile.
// A later suggestion for the same profile replaces the earlier one.
func (r *Runtime) SuggestInteractionProfileBindings(instance xr.Instance, profile xr.Path, bindings []xr.SuggestedBinding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailSuggest != nil {
		return r.FailSuggest
	}
	if !r.instances[instance] {
		return xr.ErrHandleInvalid
	}
	r.suggested[suggestKey{instance, profile}] = append([]xr.SuggestedBinding(nil), bindings...)
	r.record("SuggestInteractionProfileBindings(%d, %d bindings)", profile, len(bindings))
	return nil
}

// SyncActions counts synchronizations per session.
func (r *Runtime) SyncActions(session xr.Session, activeSets []xr.ActiveActionSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailSync != nil {
		return r.FailSync
	}
	if _, ok := r.sessions[session]; !ok {
		return xr.ErrHandleInvalid
	}
	if _, ok := r.attached[session]; !ok {
		return xr.ErrActionsetNotAttached
	}
	r.syncCount[session]++
	r.record("SyncActions(%d, %d sets)", session, len(activeSets))
	return nil
}

// GetActionStateBoolean returns the scripted state, or an inactive rest
// state if nothing was scripted for the pair.
func (r *Runtime) GetActionStateBoolean(session xr.Session, info *xr.GetInfo) (xr.ActionStateBoolean, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailGetState != nil {
		return xr.ActionStateBoolean{}, r.FailGetState
	}
	if _, ok := r.sessions[session]; !ok {
		return xr.ActionStateBoolean{}, xr.ErrHandleInvalid
	}
	return r.boolStates[stateKey{info.Action, info.SubactionPath}], nil
}

// GetActionStateFloat returns the scripted state for the pair.
func (r *Runtime) GetActionStateFloat(session xr.Session, info *xr.GetInfo) (xr.ActionStateFloat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailGetState != nil {
		return xr.ActionStateFloat{}, r.FailGetState
	}
	if _, ok := r.sessions[session]; !ok {
		return xr.ActionStateFloat{}, xr.ErrHandleInvalid
	}
	return r.floatStates[stateKey{info.Action, info.SubactionPath}], nil
}

// GetActionStateVector2f returns the scripted state for the pair.
func (r *Runtime) GetActionStateVector2f(session xr.Session, info *xr.GetInfo) (xr.ActionStateVector2f, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailGetState != nil {
		return xr.ActionStateVector2f{}, r.FailGetState
	}
	if _, ok := r.sessions[session]; !ok {
		return xr.ActionStateVector2f{}, xr.ErrHandleInvalid
	}
	return r.vec2States[stateKey{info.Action, info.SubactionPath}], nil
}

// GetActionStatePose returns the scripted state for the pair.
func (r *Runtime) GetActionStatePose(session xr.Session, info *xr.GetInfo) (xr.ActionStatePose, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailGetState != nil {
		return xr.ActionStatePose{}, r.FailGetState
	}
	if _, ok := r.sessions[session]; !ok {
		return xr.ActionStatePose{}, xr.ErrHandleInvalid
	}
	return r.poseStates[stateKey{info.Action, info.SubactionPath}], nil
}

// StringToPath interns a path string.
func (r *Runtime) StringToPath(instance xr.Instance, s string) (xr.Path, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailStringToPath != nil {
		return xr.NullPath, r.FailStringToPath
	}
	if !r.instances[instance] {
		return xr.NullPath, xr.ErrHandleInvalid
	}
	return r.internLocked(s), nil
}

// PathToString reverses interning.
func (r *Runtime) PathToString(instance xr.Instance, p xr.Path) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.instances[instance] {
		return "", xr.ErrHandleInvalid
	}
	s, ok := r.pathNames[p]
	if !ok {
		return "", xr.ErrPathInvalid
	}
	return s, nil
}

func (r *Runtime) internLocked(s string) xr.Path {
	if p, ok := r.paths[s]; ok {
		return p
	}
	r.nextPath++
	p := xr.Path(r.nextPath)
	r.paths[s] = p
	r.pathNames[p] = s
	return p
}

var _ xr.Runtime = (*Runtime)(nil)
