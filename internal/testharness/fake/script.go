package fake

import "github.com/unibind/unibind-go/pkg/xr"

// Scripting and inspection helpers for tests.

// PathOf interns a path string without going through an instance, so tests
// can compute expected path values.
func (r *Runtime) PathOf(s string) xr.Path {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.internLocked(s)
}

// SetBooleanState scripts the state returned for (action, subaction path).
func (r *Runtime) SetBooleanState(action xr.Action, subaction xr.Path, st xr.ActionStateBoolean) {
	r.mu.Lock()
	r.boolStates[stateKey{action, subaction}] = st
	r.mu.Unlock()
}

// SetFloatState scripts the state returned for (action, subaction path).
func (r *Runtime) SetFloatState(action xr.Action, subaction xr.Path, st xr.ActionStateFloat) {
	r.mu.Lock()
	r.floatStates[stateKey{action, subaction}] = st
	r.mu.Unlock()
}

// SetVector2fState scripts the state returned for (action, subaction path).
func (r *Runtime) SetVector2fState(action xr.Action, subaction xr.Path, st xr.ActionStateVector2f) {
	r.mu.Lock()
	r.vec2States[stateKey{action, subaction}] = st
	r.mu.Unlock()
}

// SetPoseState scripts the state returned for (action, subaction path).
func (r *Runtime) SetPoseState(action xr.Action, subaction xr.Path, st xr.ActionStatePose) {
	r.mu.Lock()
	r.poseStates[stateKey{action, subaction}] = st
	r.mu.Unlock()
}

// AttachedSets returns the action sets attached to a session, or nil.
func (r *Runtime) AttachedSets(session xr.Session) []xr.ActionSet {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]xr.ActionSet(nil), r.attached[session]...)
}

// SuggestedBindings returns the last suggested bindings for a profile.
func (r *Runtime) SuggestedBindings(instance xr.Instance, profile xr.Path) []xr.SuggestedBinding {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]xr.SuggestedBinding(nil), r.suggested[suggestKey{instance, profile}]...)
}

// SyncCount returns how many times a session was synchronized.
func (r *Runtime) SyncCount(session xr.Session) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.syncCount[session]
}

// ActionCount returns the number of live actions.
func (r *Runtime) ActionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.actions)
}

// ActionSetCount returns the number of live action sets.
func (r *Runtime) ActionSetCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.actionSets)
}

// InstanceCount returns the number of live instances.
func (r *Runtime) InstanceCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances)
}

// SessionCount returns the number of live sessions.
func (r *Runtime) SessionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Calls returns the recorded call log.
func (r *Runtime) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}
