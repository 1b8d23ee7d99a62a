package godactions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unibind/unibind-go/internal/testharness/fake"
	"github.com/unibind/unibind-go/pkg/godactions"
	"github.com/unibind/unibind-go/pkg/profiles"
	"github.com/unibind/unibind-go/pkg/xr"
)

const simpleController = "/interaction_profiles/khr/simple_controller"

func buildFixture(t *testing.T) (*fake.Runtime, xr.Instance, *profiles.Registry, map[xr.Path]*godactions.Set) {
	t.Helper()
	rt := fake.NewRuntime()
	inst, err := rt.CreateInstance(&xr.InstanceCreateInfo{ApplicationName: "test"})
	require.NoError(t, err)

	reg := profiles.MustLoad()
	sets, err := godactions.BuildSets(rt, inst, reg)
	require.NoError(t, err)
	return rt, inst, reg, sets
}

func TestBuildSetsCoversEveryProfile(t *testing.T) {
	rt, _, reg, sets := buildFixture(t)

	require.Len(t, sets, reg.Len())
	assert.Equal(t, reg.Len(), rt.ActionSetCount())

	// Every actionable subpath/feature pair must have produced a god action.
	wantActions := 0
	for _, p := range reg.Profiles() {
		for _, name := range p.SubpathNames() {
			for _, f := range p.Subpaths[name].Features {
				if f.ActionType() != xr.ActionTypeUnknown {
					wantActions++
				}
			}
		}
	}
	assert.Equal(t, wantActions, rt.ActionCount())
}

func TestBuildSetsSimpleController(t *testing.T) {
	rt, _, _, sets := buildFixture(t)

	set, ok := sets[rt.PathOf(simpleController)]
	require.True(t, ok, "no god set for the simple controller")
	require.Len(t, set.Actions, 5)

	sel, ok := set.Actions["/input/select/click"]
	require.True(t, ok)
	assert.Equal(t, xr.ActionTypeBooleanInput, sel.Kind)
	assert.Equal(t, []string{"/user/hand/left", "/user/hand/right"}, sel.SubactionPaths)

	haptic, ok := set.Actions["/output/haptic/haptic"]
	require.True(t, ok)
	assert.Equal(t, xr.ActionTypeVibrationOutput, haptic.Kind)
}

func TestBuildSetsSideRestriction(t *testing.T) {
	rt, _, _, sets := buildFixture(t)

	set := sets[rt.PathOf("/interaction_profiles/oculus/touch_controller")]
	require.NotNil(t, set)

	x := set.Actions["/input/x/click"]
	require.NotNil(t, x)
	assert.Equal(t, []string{"/user/hand/left"}, x.SubactionPaths)

	system := set.Actions["/input/system/click"]
	require.NotNil(t, system)
	assert.Equal(t, []string{"/user/hand/right"}, system.SubactionPaths)

	trigger := set.Actions["/input/trigger/value"]
	require.NotNil(t, trigger)
	assert.Len(t, trigger.SubactionPaths, 2)
}

func TestBuildSetsFailureFailsWholeBuild(t *testing.T) {
	rt := fake.NewRuntime()
	inst, err := rt.CreateInstance(&xr.InstanceCreateInfo{ApplicationName: "test"})
	require.NoError(t, err)

	rt.FailCreateAction = xr.ErrRuntimeFailure
	_, err = godactions.BuildSets(rt, inst, profiles.MustLoad())
	require.ErrorIs(t, err, xr.ErrRuntimeFailure)
}

func TestAttachSeedsGodStates(t *testing.T) {
	rt, inst, reg, sets := buildFixture(t)
	sess, err := rt.CreateSession(inst, &xr.SessionCreateInfo{})
	require.NoError(t, err)

	states, err := godactions.AttachSets(rt, inst, sess, sets)
	require.NoError(t, err)
	require.Len(t, states, reg.Len())

	// All god sets attached in one call.
	assert.Len(t, rt.AttachedSets(sess), reg.Len())

	// Simple controller: 4 input god actions x 2 hands = 8 cells, and one
	// suggest call carrying a binding per cell.
	profilePath := rt.PathOf(simpleController)
	cells := states[profilePath]
	require.Len(t, cells, 8)
	assert.Len(t, rt.SuggestedBindings(inst, profilePath), 8)

	// The left-hand select cell is seeded at rest but active.
	binding := rt.PathOf("/user/hand/left/input/select/click")
	cell, ok := cells[binding]
	require.True(t, ok, "missing god state for left select click")
	st := cell.Load()
	assert.Equal(t, xr.ActionTypeBooleanInput, st.Kind)
	assert.False(t, st.Boolean.CurrentState)
	assert.True(t, st.Boolean.IsActive)
	assert.False(t, st.Boolean.ChangedSinceLastSync)
	assert.Equal(t, rt.PathOf("/user/hand/left"), cell.SubactionPath)

	// No cell exists for vibration outputs.
	for _, cell := range cells {
		assert.True(t, cell.Load().Kind.IsInput())
	}
}

func TestAttachHonorsSideRestriction(t *testing.T) {
	rt, inst, _, sets := buildFixture(t)
	sess, err := rt.CreateSession(inst, &xr.SessionCreateInfo{})
	require.NoError(t, err)

	states, err := godactions.AttachSets(rt, inst, sess, sets)
	require.NoError(t, err)

	cells := states[rt.PathOf("/interaction_profiles/oculus/touch_controller")]
	_, left := cells[rt.PathOf("/user/hand/left/input/x/click")]
	assert.True(t, left, "left-hand x click must exist")
	_, right := cells[rt.PathOf("/user/hand/right/input/x/click")]
	assert.False(t, right, "right-hand x click must not exist")
}

func TestAttachFailuresLeaveNothing(t *testing.T) {
	rt, inst, _, sets := buildFixture(t)
	sess, err := rt.CreateSession(inst, &xr.SessionCreateInfo{})
	require.NoError(t, err)

	rt.FailAttach = xr.ErrRuntimeFailure
	states, err := godactions.AttachSets(rt, inst, sess, sets)
	require.ErrorIs(t, err, xr.ErrRuntimeFailure)
	assert.Nil(t, states)
	rt.FailAttach = nil

	rt.FailSuggest = xr.ErrPathInvalid
	// A fresh session: the fake enforces attach-once per session.
	sess2, err := rt.CreateSession(inst, &xr.SessionCreateInfo{})
	require.NoError(t, err)
	states, err = godactions.AttachSets(rt, inst, sess2, sets)
	require.ErrorIs(t, err, xr.ErrPathInvalid)
	assert.Nil(t, states)
}
