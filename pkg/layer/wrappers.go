package layer

import (
	"sync"

	"github.com/unibind/unibind-go/pkg/godactions"
	"github.com/unibind/unibind-go/pkg/xr"
)

// Instance wraps one native instance. It owns the god action sets built for
// it and the handles of the sessions and action sets created under it.
type Instance struct {
	// Handle is the native instance handle.
	Handle xr.Instance

	// godSets maps profile handle to god action set. Built once at
	// creation, immutable afterward.
	godSets map[xr.Path]*godactions.Set

	// mu serializes destruction against child creation: child-creating
	// calls hold it shared for the forward+register window, destroy holds
	// it exclusively.
	mu        sync.RWMutex
	destroyed bool

	// childMu guards the child handle lists. Children are append-only;
	// the handle tables remain the source of liveness.
	childMu    sync.Mutex
	sessions   []xr.Session
	actionSets []xr.ActionSet
}

func (i *Instance) addSession(h xr.Session) {
	i.childMu.Lock()
	i.sessions = append(i.sessions, h)
	i.childMu.Unlock()
}

func (i *Instance) addActionSet(h xr.ActionSet) {
	i.childMu.Lock()
	i.actionSets = append(i.actionSets, h)
	i.childMu.Unlock()
}

// children returns a snapshot of the child handle lists.
func (i *Instance) children() ([]xr.Session, []xr.ActionSet) {
	i.childMu.Lock()
	defer i.childMu.Unlock()
	return append([]xr.Session(nil), i.sessions...),
		append([]xr.ActionSet(nil), i.actionSets...)
}

// GodSets exposes the instance's god action sets keyed by profile handle.
func (i *Instance) GodSets() map[xr.Path]*godactions.Set {
	return i.godSets
}

// Session wraps one native session. The instance back-reference is a handle,
// upgraded through the layer's registry on use.
type Session struct {
	// Handle is the native session handle.
	Handle xr.Session

	// Instance is the parent instance handle (non-owning).
	Instance xr.Instance

	// godStates is the session's god-state cache, seeded during creation.
	// The map structure is immutable; cells carry their own locks.
	godStates godactions.States

	// attachMu guards the one-shot application attach record and the
	// per-action state collections it populates.
	attachMu     sync.RWMutex
	attached     bool
	attachedSets []xr.ActionSet
	actionStates map[xr.Action]*godactions.SubactionCollection
}

// GodStates exposes the session's god-state cache keyed by profile handle
// then binding path.
func (s *Session) GodStates() godactions.States {
	return s.godStates
}

// collection returns the cached state collection for an action, or nil when
// the session has no attach record covering it.
func (s *Session) collection(action xr.Action) *godactions.SubactionCollection {
	s.attachMu.RLock()
	defer s.attachMu.RUnlock()
	return s.actionStates[action]
}

// isAttached reports whether the application's attach call happened.
func (s *Session) isAttached() bool {
	s.attachMu.RLock()
	defer s.attachMu.RUnlock()
	return s.attached
}

// hasAttachedSet reports whether the handle is part of the attach record.
func (s *Session) hasAttachedSet(h xr.ActionSet) bool {
	s.attachMu.RLock()
	defer s.attachMu.RUnlock()
	for _, attached := range s.attachedSets {
		if attached == h {
			return true
		}
	}
	return false
}

// ActionSet wraps one native action set. Actions are recorded append-only;
// the handle table remains the source of liveness.
type ActionSet struct {
	// Handle is the native action set handle.
	Handle xr.ActionSet

	// Instance is the parent instance handle (non-owning).
	Instance xr.Instance

	// Name is the forwarded action set name, kept for diagnostics.
	Name string

	childMu sync.Mutex
	actions []xr.Action
}

func (s *ActionSet) addAction(h xr.Action) {
	s.childMu.Lock()
	s.actions = append(s.actions, h)
	s.childMu.Unlock()
}

// Actions returns a snapshot of the set's action handles in creation order.
func (s *ActionSet) Actions() []xr.Action {
	s.childMu.Lock()
	defer s.childMu.Unlock()
	return append([]xr.Action(nil), s.actions...)
}

// Action wraps one native action created by the application.
type Action struct {
	// Handle is the native action handle.
	Handle xr.Action

	// Set is the parent action set handle (non-owning).
	Set xr.ActionSet

	// Name is the forwarded action name, kept for diagnostics.
	Name string

	// Kind is the declared action type; state queries must match it.
	Kind xr.ActionType

	// SubactionPaths are the declared subaction-path restrictions.
	SubactionPaths []xr.Path

	// mu guards the binding record updated by suggestion calls.
	mu       sync.RWMutex
	bindings map[xr.Path][]xr.Path
}

// recordBindings stores the suggested binding paths under a profile. A later
// suggestion for the same profile replaces the earlier one, matching the
// wrapped API's replacement semantics.
func (a *Action) recordBindings(profile xr.Path, paths []xr.Path) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.bindings == nil {
		a.bindings = make(map[xr.Path][]xr.Path)
	}
	a.bindings[profile] = append([]xr.Path(nil), paths...)
}

// Bindings returns a snapshot of the recorded bindings per profile.
func (a *Action) Bindings() map[xr.Path][]xr.Path {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make(map[xr.Path][]xr.Path, len(a.bindings))
	for profile, paths := range a.bindings {
		out[profile] = append([]xr.Path(nil), paths...)
	}
	return out
}

