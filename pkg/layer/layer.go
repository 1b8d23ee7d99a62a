package layer

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/unibind/unibind-go/pkg/godactions"
	"github.com/unibind/unibind-go/pkg/handle"
	"github.com/unibind/unibind-go/pkg/log"
	"github.com/unibind/unibind-go/pkg/profiles"
	"github.com/unibind/unibind-go/pkg/xr"
)

// Layer intercepts the wrapped API call set, forwards every call to the next
// runtime down, and maintains the wrapper graph and god-action caches.
// It implements xr.Runtime itself, so layers can stack.
type Layer struct {
	next     xr.Runtime
	profiles *profiles.Registry
	logger   log.Logger
	id       string

	instances  *handle.Table[xr.Instance, *Instance]
	sessions   *handle.Table[xr.Session, *Session]
	actionSets *handle.Table[xr.ActionSet, *ActionSet]
	actions    *handle.Table[xr.Action, *Action]
}

// Option configures a Layer.
type Option func(*Layer)

// WithProfileRegistry overrides the embedded interaction-profile catalogue.
func WithProfileRegistry(reg *profiles.Registry) Option {
	return func(l *Layer) { l.profiles = reg }
}

// WithLogger sets the event logger. Defaults to log.NoopLogger.
func WithLogger(logger log.Logger) Option {
	return func(l *Layer) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a Layer forwarding to next.
func New(next xr.Runtime, opts ...Option) *Layer {
	l := &Layer{
		next:       next,
		profiles:   profiles.MustLoad(),
		logger:     log.NoopLogger{},
		id:         uuid.NewString(),
		instances:  handle.NewTable[xr.Instance, *Instance](),
		sessions:   handle.NewTable[xr.Session, *Session](),
		actionSets: handle.NewTable[xr.ActionSet, *ActionSet](),
		actions:    handle.NewTable[xr.Action, *Action](),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ID returns the layer's instance identifier stamped into log events.
func (l *Layer) ID() string {
	return l.id
}

// resultCode maps an error to the result code reported in log events.
func resultCode(err error) xr.Result {
	if err == nil {
		return xr.Success
	}
	var xe *xr.Error
	if errors.As(err, &xe) {
		return xe.Code
	}
	return xr.ErrorRuntimeFailure
}

// emit sends one event for an intercepted call.
func (l *Layer) emit(call log.Call, h uint64, err error, decorate func(*log.Event)) {
	event := log.Event{
		Timestamp: time.Now(),
		LayerID:   l.id,
		Call:      call,
		Handle:    h,
		Result:    resultCode(err),
	}
	if decorate != nil {
		decorate(&event)
	}
	l.logger.Log(event)
}

// upgradeInstance resolves an instance handle or fails with ErrHandleInvalid.
func (l *Layer) upgradeInstance(h xr.Instance) (*Instance, error) {
	inst, err := l.instances.Lookup(h)
	if err != nil {
		return nil, xr.ErrHandleInvalid
	}
	return inst, nil
}

func (l *Layer) upgradeSession(h xr.Session) (*Session, error) {
	sess, err := l.sessions.Lookup(h)
	if err != nil {
		return nil, xr.ErrHandleInvalid
	}
	return sess, nil
}

func (l *Layer) upgradeActionSet(h xr.ActionSet) (*ActionSet, error) {
	set, err := l.actionSets.Lookup(h)
	if err != nil {
		return nil, xr.ErrHandleInvalid
	}
	return set, nil
}

func (l *Layer) upgradeAction(h xr.Action) (*Action, error) {
	act, err := l.actions.Lookup(h)
	if err != nil {
		return nil, xr.ErrHandleInvalid
	}
	return act, nil
}

// CreateInstance forwards instance creation and eagerly builds the god
// action sets covering every catalogued profile. A build failure destroys
// the forwarded instance and fails the creation as a whole.
func (l *Layer) CreateInstance(info *xr.InstanceCreateInfo) (xr.Instance, error) {
	h, err := l.next.CreateInstance(info)
	if err != nil {
		l.emit(log.CallCreateInstance, 0, err, nil)
		return 0, err
	}

	godSets, err := godactions.BuildSets(l.next, h, l.profiles)
	if err != nil {
		_ = l.next.DestroyInstance(h)
		l.emit(log.CallCreateInstance, uint64(h), err, func(e *log.Event) {
			e.Error = &log.ErrorEvent{Message: err.Error(), Context: "building god action sets"}
		})
		return 0, err
	}

	inst := &Instance{Handle: h, godSets: godSets}
	if err := l.instances.Register(h, inst); err != nil {
		_ = l.next.DestroyInstance(h)
		return 0, xr.ErrValidationFailure
	}
	l.emit(log.CallCreateInstance, uint64(h), nil, nil)
	return h, nil
}

// DestroyInstance forwards destruction and removes the instance and every
// child handle from the registries. Destruction is serialized against child
// creation under the same instance.
func (l *Layer) DestroyInstance(instance xr.Instance) error {
	inst, err := l.upgradeInstance(instance)
	if err != nil {
		l.emit(log.CallDestroyInstance, uint64(instance), err, nil)
		return err
	}

	inst.mu.Lock()
	defer inst.mu.Unlock()
	if inst.destroyed {
		l.emit(log.CallDestroyInstance, uint64(instance), xr.ErrHandleInvalid, nil)
		return xr.ErrHandleInvalid
	}

	if err := l.next.DestroyInstance(instance); err != nil {
		l.emit(log.CallDestroyInstance, uint64(instance), err, nil)
		return err
	}

	inst.destroyed = true
	l.instances.Remove(instance)

	// Cascade: the runtime destroyed the children with the instance, so
	// their handles must stop resolving here too.
	sessions, actionSets := inst.children()
	for _, s := range sessions {
		l.sessions.Remove(s)
	}
	for _, asHandle := range actionSets {
		if set, err := l.actionSets.Remove(asHandle); err == nil {
			for _, a := range set.Actions() {
				l.actions.Remove(a)
			}
		}
	}

	l.emit(log.CallDestroyInstance, uint64(instance), nil, nil)
	return nil
}

// CreateSession forwards session creation, then runs the god attach
// sequence: attach every god set, seed the god-state cells, and suggest
// bindings for every catalogued profile. An attach failure destroys the
// forwarded session and fails the creation.
func (l *Layer) CreateSession(instance xr.Instance, info *xr.SessionCreateInfo) (xr.Session, error) {
	inst, err := l.upgradeInstance(instance)
	if err != nil {
		l.emit(log.CallCreateSession, 0, err, nil)
		return 0, err
	}

	inst.mu.RLock()
	defer inst.mu.RUnlock()
	if inst.destroyed {
		l.emit(log.CallCreateSession, 0, xr.ErrHandleInvalid, nil)
		return 0, xr.ErrHandleInvalid
	}

	h, err := l.next.CreateSession(instance, info)
	if err != nil {
		l.emit(log.CallCreateSession, 0, err, nil)
		return 0, err
	}

	states, err := godactions.AttachSets(l.next, instance, h, inst.godSets)
	if err != nil {
		_ = l.next.DestroySession(h)
		l.emit(log.CallCreateSession, uint64(h), err, func(e *log.Event) {
			e.Error = &log.ErrorEvent{Message: err.Error(), Context: "attaching god action sets"}
		})
		return 0, err
	}

	sess := &Session{Handle: h, Instance: instance, godStates: states}
	if err := l.sessions.Register(h, sess); err != nil {
		_ = l.next.DestroySession(h)
		return 0, xr.ErrValidationFailure
	}
	inst.addSession(h)

	l.emit(log.CallCreateSession, uint64(h), nil, func(e *log.Event) {
		cells := 0
		for _, profileCells := range states {
			cells += len(profileCells)
		}
		e.Attach = &log.AttachEvent{SetCount: len(inst.godSets), GodSets: true, StateCount: cells}
	})
	return h, nil
}

// DestroySession forwards destruction and removes the session handle.
func (l *Layer) DestroySession(session xr.Session) error {
	if _, err := l.upgradeSession(session); err != nil {
		l.emit(log.CallDestroySession, uint64(session), err, nil)
		return err
	}
	if err := l.next.DestroySession(session); err != nil {
		l.emit(log.CallDestroySession, uint64(session), err, nil)
		return err
	}
	l.sessions.Remove(session)
	l.emit(log.CallDestroySession, uint64(session), nil, nil)
	return nil
}

// CreateActionSet forwards action set creation under an instance.
func (l *Layer) CreateActionSet(instance xr.Instance, info *xr.ActionSetCreateInfo) (xr.ActionSet, error) {
	inst, err := l.upgradeInstance(instance)
	if err != nil {
		l.emit(log.CallCreateActionSet, 0, err, nil)
		return 0, err
	}

	inst.mu.RLock()
	defer inst.mu.RUnlock()
	if inst.destroyed {
		l.emit(log.CallCreateActionSet, 0, xr.ErrHandleInvalid, nil)
		return 0, xr.ErrHandleInvalid
	}

	h, err := l.next.CreateActionSet(instance, info)
	if err != nil {
		l.emit(log.CallCreateActionSet, 0, err, nil)
		return 0, err
	}

	set := &ActionSet{Handle: h, Instance: instance, Name: info.Name}
	if err := l.actionSets.Register(h, set); err != nil {
		_ = l.next.DestroyActionSet(h)
		return 0, xr.ErrValidationFailure
	}
	inst.addActionSet(h)
	l.emit(log.CallCreateActionSet, uint64(h), nil, nil)
	return h, nil
}

// DestroyActionSet forwards destruction and removes the set and its actions.
func (l *Layer) DestroyActionSet(actionSet xr.ActionSet) error {
	set, err := l.upgradeActionSet(actionSet)
	if err != nil {
		l.emit(log.CallDestroyActionSet, uint64(actionSet), err, nil)
		return err
	}
	if err := l.next.DestroyActionSet(actionSet); err != nil {
		l.emit(log.CallDestroyActionSet, uint64(actionSet), err, nil)
		return err
	}
	l.actionSets.Remove(actionSet)
	for _, a := range set.Actions() {
		l.actions.Remove(a)
	}
	l.emit(log.CallDestroyActionSet, uint64(actionSet), nil, nil)
	return nil
}

// CreateAction forwards action creation within a set.
func (l *Layer) CreateAction(actionSet xr.ActionSet, info *xr.ActionCreateInfo) (xr.Action, error) {
	set, err := l.upgradeActionSet(actionSet)
	if err != nil {
		l.emit(log.CallCreateAction, 0, err, nil)
		return 0, err
	}
	inst, err := l.upgradeInstance(set.Instance)
	if err != nil {
		l.emit(log.CallCreateAction, 0, err, nil)
		return 0, err
	}

	inst.mu.RLock()
	defer inst.mu.RUnlock()
	if inst.destroyed {
		l.emit(log.CallCreateAction, 0, xr.ErrHandleInvalid, nil)
		return 0, xr.ErrHandleInvalid
	}

	h, err := l.next.CreateAction(actionSet, info)
	if err != nil {
		l.emit(log.CallCreateAction, 0, err, nil)
		return 0, err
	}

	act := &Action{
		Handle:         h,
		Set:            actionSet,
		Name:           info.Name,
		Kind:           info.Type,
		SubactionPaths: append([]xr.Path(nil), info.SubactionPaths...),
	}
	if err := l.actions.Register(h, act); err != nil {
		_ = l.next.DestroyAction(h)
		return 0, xr.ErrValidationFailure
	}
	set.addAction(h)
	l.emit(log.CallCreateAction, uint64(h), nil, nil)
	return h, nil
}

// DestroyAction forwards destruction and removes the action handle.
func (l *Layer) DestroyAction(action xr.Action) error {
	if _, err := l.upgradeAction(action); err != nil {
		l.emit(log.CallDestroyAction, uint64(action), err, nil)
		return err
	}
	if err := l.next.DestroyAction(action); err != nil {
		l.emit(log.CallDestroyAction, uint64(action), err, nil)
		return err
	}
	l.actions.Remove(action)
	l.emit(log.CallDestroyAction, uint64(action), nil, nil)
	return nil
}

// SuggestInteractionProfileBindings forwards the application's suggestion
// and, on success, records each suggested binding on its action wrapper so
// synchronization can route god states into the action's cache.
func (l *Layer) SuggestInteractionProfileBindings(instance xr.Instance, profile xr.Path, bindings []xr.SuggestedBinding) error {
	if _, err := l.upgradeInstance(instance); err != nil {
		l.emit(log.CallSuggestBindings, uint64(instance), err, nil)
		return err
	}

	if err := l.next.SuggestInteractionProfileBindings(instance, profile, bindings); err != nil {
		l.emit(log.CallSuggestBindings, uint64(instance), err, nil)
		return err
	}

	perAction := make(map[*Action][]xr.Path)
	for _, b := range bindings {
		if act, err := l.upgradeAction(b.Action); err == nil {
			perAction[act] = append(perAction[act], b.Binding)
		}
	}
	for act, paths := range perAction {
		act.recordBindings(profile, paths)
	}

	l.emit(log.CallSuggestBindings, uint64(instance), nil, func(e *log.Event) {
		profileStr, _ := l.next.PathToString(instance, profile)
		known := false
		if profileStr != "" {
			_, known = l.profiles.Get(profileStr)
		}
		e.Bindings = &log.BindingsEvent{
			ProfilePath:  profileStr,
			BindingCount: len(bindings),
			Known:        known,
		}
	})
	return nil
}

// AttachSessionActionSets records the application's action sets. The call is
// not forwarded: the god sets were attached during session creation and the
// runtime accepts a single attach per session. The record is computed once;
// a second call fails with ErrActionsetsAlreadyAttached.
func (l *Layer) AttachSessionActionSets(session xr.Session, actionSets []xr.ActionSet) error {
	sess, err := l.upgradeSession(session)
	if err != nil {
		l.emit(log.CallAttachActionSets, uint64(session), err, nil)
		return err
	}

	sess.attachMu.Lock()
	defer sess.attachMu.Unlock()
	if sess.attached {
		l.emit(log.CallAttachActionSets, uint64(session), xr.ErrActionsetsAlreadyAttached, nil)
		return xr.ErrActionsetsAlreadyAttached
	}

	collections := make(map[xr.Action]*godactions.SubactionCollection)
	for _, setHandle := range actionSets {
		set, err := l.upgradeActionSet(setHandle)
		if err != nil {
			l.emit(log.CallAttachActionSets, uint64(session), err, nil)
			return err
		}
		for _, actionHandle := range set.Actions() {
			act, err := l.upgradeAction(actionHandle)
			if err != nil {
				continue
			}
			if act.Kind.IsInput() {
				collections[actionHandle] = godactions.NewSubactionCollection(act.Kind)
			}
		}
	}

	sess.attached = true
	sess.attachedSets = append([]xr.ActionSet(nil), actionSets...)
	sess.actionStates = collections

	l.emit(log.CallAttachActionSets, uint64(session), nil, func(e *log.Event) {
		e.Attach = &log.AttachEvent{SetCount: len(actionSets), StateCount: len(collections)}
	})
	return nil
}

// SyncActions forwards one synchronization with the god sets active in place
// of the application's sets, then refreshes the god-state cells and the
// attached actions' state collections from the same observed values.
func (l *Layer) SyncActions(session xr.Session, activeSets []xr.ActiveActionSet) error {
	sess, err := l.upgradeSession(session)
	if err != nil {
		l.emit(log.CallSyncActions, uint64(session), err, nil)
		return err
	}
	if !sess.isAttached() {
		l.emit(log.CallSyncActions, uint64(session), xr.ErrActionsetNotAttached, nil)
		return xr.ErrActionsetNotAttached
	}
	for _, active := range activeSets {
		if !sess.hasAttachedSet(active.ActionSet) {
			l.emit(log.CallSyncActions, uint64(session), xr.ErrActionsetNotAttached, nil)
			return xr.ErrActionsetNotAttached
		}
	}
	inst, err := l.upgradeInstance(sess.Instance)
	if err != nil {
		l.emit(log.CallSyncActions, uint64(session), err, nil)
		return err
	}

	godActive := make([]xr.ActiveActionSet, 0, len(inst.godSets))
	for _, set := range inst.godSets {
		godActive = append(godActive, xr.ActiveActionSet{ActionSet: set.Handle})
	}
	sort.Slice(godActive, func(i, j int) bool {
		return godActive[i].ActionSet < godActive[j].ActionSet
	})

	if err := l.next.SyncActions(session, godActive); err != nil {
		l.emit(log.CallSyncActions, uint64(session), err, nil)
		return err
	}

	// Refresh every god cell from the runtime, remembering each freshly
	// observed value so the action collections are fed the same data.
	// A binding path exists once per profile declaring it, so observations
	// are kept per cell, never folded across profiles.
	observed := make(map[*godactions.Cell]godactions.State)
	refreshed := 0
	for _, cells := range sess.godStates {
		for _, cell := range cells {
			fresh, err := l.readState(session, cell)
			if err != nil {
				continue
			}
			cell.Store(fresh)
			observed[cell] = fresh
			refreshed++
		}
	}

	// Route observed values into the cached collections of every attached
	// action, following each recorded (profile, binding path) pair to the
	// god cell of that profile.
	sess.attachMu.RLock()
	for actionHandle, collection := range sess.actionStates {
		act, err := l.upgradeAction(actionHandle)
		if err != nil {
			continue
		}
		for profile, paths := range act.Bindings() {
			cells, ok := sess.godStates[profile]
			if !ok {
				continue
			}
			for _, bindingPath := range paths {
				cell, ok := cells[bindingPath]
				if !ok {
					continue
				}
				fresh, ok := observed[cell]
				if !ok || fresh.Kind != collection.Kind() {
					continue
				}
				collection.Put(cell.SubactionPath, fresh)
			}
		}
	}
	sess.attachMu.RUnlock()

	l.emit(log.CallSyncActions, uint64(session), nil, func(e *log.Event) {
		e.Sync = &log.SyncEvent{
			ActiveSets:     len(activeSets),
			ForwardedSets:  len(godActive),
			RefreshedCells: refreshed,
		}
	})
	return nil
}

// readState queries the runtime for a cell's current value, preserving the
// cell's activity flag semantics as reported by the runtime.
func (l *Layer) readState(session xr.Session, cell *godactions.Cell) (godactions.State, error) {
	kind := cell.Load().Kind
	info := &xr.GetInfo{Action: cell.ActionHandle, SubactionPath: cell.SubactionPath}
	state := godactions.State{Kind: kind}
	switch kind {
	case xr.ActionTypeBooleanInput:
		got, err := l.next.GetActionStateBoolean(session, info)
		if err != nil {
			return godactions.State{}, err
		}
		state.Boolean = got
	case xr.ActionTypeFloatInput:
		got, err := l.next.GetActionStateFloat(session, info)
		if err != nil {
			return godactions.State{}, err
		}
		state.Float = got
	case xr.ActionTypeVector2fInput:
		got, err := l.next.GetActionStateVector2f(session, info)
		if err != nil {
			return godactions.State{}, err
		}
		state.Vector2f = got
	case xr.ActionTypePoseInput:
		got, err := l.next.GetActionStatePose(session, info)
		if err != nil {
			return godactions.State{}, err
		}
		state.Pose = got
	default:
		return godactions.State{}, godactions.ErrNotAnInput
	}
	return state, nil
}

// queryState is the shared path of the four state queries: resolve wrappers,
// check the kind, and read the cached collection. The runtime is never
// called; an unpopulated pair yields the rest state with flags false.
func (l *Layer) queryState(session xr.Session, info *xr.GetInfo, want xr.ActionType) (godactions.State, error) {
	sess, err := l.upgradeSession(session)
	if err != nil {
		l.emit(log.CallGetActionState, uint64(session), err, nil)
		return godactions.State{}, err
	}
	act, err := l.upgradeAction(info.Action)
	if err != nil {
		l.emit(log.CallGetActionState, uint64(info.Action), err, nil)
		return godactions.State{}, err
	}
	if act.Kind != want {
		l.emit(log.CallGetActionState, uint64(info.Action), xr.ErrActionTypeMismatch, nil)
		return godactions.State{}, xr.ErrActionTypeMismatch
	}

	if collection := sess.collection(info.Action); collection != nil {
		if state, ok := collection.Get(info.SubactionPath); ok {
			return state, nil
		}
	}
	return godactions.State{Kind: want}, nil
}

// GetActionStateBoolean serves a boolean state query from the cache.
func (l *Layer) GetActionStateBoolean(session xr.Session, info *xr.GetInfo) (xr.ActionStateBoolean, error) {
	state, err := l.queryState(session, info, xr.ActionTypeBooleanInput)
	if err != nil {
		return xr.ActionStateBoolean{}, err
	}
	return state.Boolean, nil
}

// GetActionStateFloat serves a float state query from the cache.
func (l *Layer) GetActionStateFloat(session xr.Session, info *xr.GetInfo) (xr.ActionStateFloat, error) {
	state, err := l.queryState(session, info, xr.ActionTypeFloatInput)
	if err != nil {
		return xr.ActionStateFloat{}, err
	}
	return state.Float, nil
}

// GetActionStateVector2f serves a 2D vector state query from the cache.
func (l *Layer) GetActionStateVector2f(session xr.Session, info *xr.GetInfo) (xr.ActionStateVector2f, error) {
	state, err := l.queryState(session, info, xr.ActionTypeVector2fInput)
	if err != nil {
		return xr.ActionStateVector2f{}, err
	}
	return state.Vector2f, nil
}

// GetActionStatePose serves a pose state query from the cache.
func (l *Layer) GetActionStatePose(session xr.Session, info *xr.GetInfo) (xr.ActionStatePose, error) {
	state, err := l.queryState(session, info, xr.ActionTypePoseInput)
	if err != nil {
		return xr.ActionStatePose{}, err
	}
	return state.Pose, nil
}

// StringToPath forwards path interning unchanged.
func (l *Layer) StringToPath(instance xr.Instance, s string) (xr.Path, error) {
	return l.next.StringToPath(instance, s)
}

// PathToString forwards path resolution unchanged.
func (l *Layer) PathToString(instance xr.Instance, p xr.Path) (string, error) {
	return l.next.PathToString(instance, p)
}

// LookupInstance resolves an instance wrapper for inspection.
func (l *Layer) LookupInstance(h xr.Instance) (*Instance, error) {
	return l.upgradeInstance(h)
}

// LookupSession resolves a session wrapper for inspection.
func (l *Layer) LookupSession(h xr.Session) (*Session, error) {
	return l.upgradeSession(h)
}

// LookupActionSet resolves an action set wrapper for inspection.
func (l *Layer) LookupActionSet(h xr.ActionSet) (*ActionSet, error) {
	return l.upgradeActionSet(h)
}

// LookupAction resolves an action wrapper for inspection.
func (l *Layer) LookupAction(h xr.Action) (*Action, error) {
	return l.upgradeAction(h)
}

// GodState returns a session's cached god state for a profile and
// fully-qualified binding path, both given as strings.
func (l *Layer) GodState(session xr.Session, profilePath, bindingPath string) (godactions.State, error) {
	sess, err := l.upgradeSession(session)
	if err != nil {
		return godactions.State{}, err
	}
	profile, err := l.next.StringToPath(sess.Instance, profilePath)
	if err != nil {
		return godactions.State{}, err
	}
	binding, err := l.next.StringToPath(sess.Instance, bindingPath)
	if err != nil {
		return godactions.State{}, err
	}
	cells, ok := sess.godStates[profile]
	if !ok {
		return godactions.State{}, xr.ErrPathInvalid
	}
	cell, ok := cells[binding]
	if !ok {
		return godactions.State{}, xr.ErrPathInvalid
	}
	return cell.Load(), nil
}

// Layers stack: a Layer is itself a Runtime.
var _ xr.Runtime = (*Layer)(nil)
