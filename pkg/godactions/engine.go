package godactions

import (
	"fmt"
	"sort"
	"strings"

	"github.com/unibind/unibind-go/pkg/profiles"
	"github.com/unibind/unibind-go/pkg/xr"
)

// Action is one god action: a synthetic action standing in for a single
// subpath/feature so bindings can exist for it without the application's
// involvement. Built once per instance and immutable afterward.
type Action struct {
	// Handle is the real action created against the underlying runtime,
	// making the god action a legitimate bindable target.
	Handle xr.Action

	// Name is the path fragment appended to a subaction path to form the
	// fully-qualified binding path, e.g. "/input/select/click".
	Name string

	// LocalizedName labels the action for runtime UIs.
	LocalizedName string

	// Kind is the value shape derived from the feature.
	Kind xr.ActionType

	// SubactionPaths are the profile's declared subaction paths, filtered
	// by the subpath's side restriction. PathHandles holds the resolved
	// values in the same order.
	SubactionPaths []string
	PathHandles    []xr.Path
}

// Set is the god action set for one (instance, profile) pair.
type Set struct {
	// Handle is the real action set created against the underlying runtime.
	Handle xr.ActionSet

	// ProfilePath identifies the interaction profile; ProfileHandle is its
	// resolved native value.
	ProfilePath   string
	ProfileHandle xr.Path

	// Actions indexes god actions by their path-fragment name.
	Actions map[string]*Action
}

// States maps profile handle to binding-path handle to god-state cell:
// a session's complete god-state cache.
type States map[xr.Path]map[xr.Path]*Cell

// setNamePrefix namespaces god action sets away from anything an
// application could legally name.
const setNamePrefix = "unibind_god"

// BuildSets constructs one god action set per profile in the registry,
// creating real runtime actions for every actionable subpath/feature pair.
// Unknown features produce no action. Any creation failure fails the whole
// build; the caller must then abandon the instance it was building for.
func BuildSets(rt xr.Runtime, inst xr.Instance, reg *profiles.Registry) (map[xr.Path]*Set, error) {
	sets := make(map[xr.Path]*Set, reg.Len())

	for _, profile := range reg.Profiles() {
		profileHandle, err := rt.StringToPath(inst, profile.Path())
		if err != nil {
			return nil, fmt.Errorf("resolving profile %s: %w", profile.Path(), err)
		}

		setHandle, err := rt.CreateActionSet(inst, &xr.ActionSetCreateInfo{
			Name:          sanitizeName(setNamePrefix + profile.Path()),
			LocalizedName: setNamePrefix + " " + profile.Title,
		})
		if err != nil {
			return nil, fmt.Errorf("creating god action set for %s: %w", profile.Path(), err)
		}

		set := &Set{
			Handle:        setHandle,
			ProfilePath:   profile.Path(),
			ProfileHandle: profileHandle,
			Actions:       make(map[string]*Action),
		}

		for _, subpathName := range profile.SubpathNames() {
			subpath := profile.Subpaths[subpathName]
			for _, feature := range subpath.Features {
				kind := feature.ActionType()
				if kind == xr.ActionTypeUnknown {
					continue
				}

				subactionPaths := make([]string, 0, len(profile.SubactionPaths))
				pathHandles := make([]xr.Path, 0, len(profile.SubactionPaths))
				for _, sap := range profile.SubactionPaths {
					if !subpath.AllowsSubactionPath(sap) {
						continue
					}
					h, err := rt.StringToPath(inst, sap)
					if err != nil {
						return nil, fmt.Errorf("resolving subaction path %s: %w", sap, err)
					}
					subactionPaths = append(subactionPaths, sap)
					pathHandles = append(pathHandles, h)
				}

				name := subpathName + "/" + feature.String()
				actionHandle, err := rt.CreateAction(setHandle, &xr.ActionCreateInfo{
					Name:           sanitizeName(name),
					Type:           kind,
					SubactionPaths: pathHandles,
					LocalizedName:  profile.Title + " " + subpath.LocalizedName + " " + feature.String(),
				})
				if err != nil {
					return nil, fmt.Errorf("creating god action %s for %s: %w", name, profile.Path(), err)
				}

				set.Actions[name] = &Action{
					Handle:         actionHandle,
					Name:           name,
					LocalizedName:  subpath.LocalizedName + " " + feature.String(),
					Kind:           kind,
					SubactionPaths: subactionPaths,
					PathHandles:    pathHandles,
				}
			}
		}

		sets[profileHandle] = set
	}

	return sets, nil
}

// AttachSets runs the session attach sequence: attach every god set in one
// call, seed a god-state cell per (profile, input god action, subaction
// path), and suggest bindings for every cell under its profile, covering
// all profiles in the registry, not only those the application uses. On any
// failure the runtime's error is returned and no states are retained.
func AttachSets(rt xr.Runtime, inst xr.Instance, sess xr.Session, sets map[xr.Path]*Set) (States, error) {
	ordered := orderedSets(sets)

	handles := make([]xr.ActionSet, len(ordered))
	for i, set := range ordered {
		handles[i] = set.Handle
	}
	if err := rt.AttachSessionActionSets(sess, handles); err != nil {
		return nil, err
	}

	states := make(States, len(sets))
	for _, set := range ordered {
		cells := make(map[xr.Path]*Cell)
		var bindings []xr.SuggestedBinding

		for _, name := range orderedActionNames(set) {
			god := set.Actions[name]
			if !god.Kind.IsInput() {
				continue
			}
			for i, sap := range god.SubactionPaths {
				full := sap + god.Name
				bindingPath, err := rt.StringToPath(inst, full)
				if err != nil {
					return nil, fmt.Errorf("resolving binding path %s: %w", full, err)
				}

				rest, err := RestState(god.Kind)
				if err != nil {
					return nil, err
				}
				cells[bindingPath] = &Cell{
					ActionHandle:  god.Handle,
					Name:          full,
					BindingPath:   bindingPath,
					SubactionPath: god.PathHandles[i],
					state:         rest.withActive(true),
				}
				bindings = append(bindings, xr.SuggestedBinding{
					Action:  god.Handle,
					Binding: bindingPath,
				})
			}
		}

		if err := rt.SuggestInteractionProfileBindings(inst, set.ProfileHandle, bindings); err != nil {
			return nil, fmt.Errorf("suggesting god bindings for %s: %w", set.ProfilePath, err)
		}
		states[set.ProfileHandle] = cells
	}

	return states, nil
}

func orderedSets(sets map[xr.Path]*Set) []*Set {
	ordered := make([]*Set, 0, len(sets))
	for _, set := range sets {
		ordered = append(ordered, set)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ProfilePath < ordered[j].ProfilePath
	})
	return ordered
}

func orderedActionNames(set *Set) []string {
	names := make([]string, 0, len(set.Actions))
	for name := range set.Actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// sanitizeName maps a path-like name onto the wrapped API's action-name
// alphabet (lowercase, digits, '_', '-', '.').
func sanitizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastUnderscore := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
