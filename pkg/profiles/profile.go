package profiles

import (
	"sort"
	"strings"
)

// Subpath is one physical input or output location within a profile.
type Subpath struct {
	// Kind is the hardware kind tag (button, trigger, trackpad, joystick,
	// pose, vibration).
	Kind string `yaml:"type"`

	// LocalizedName is the human-readable label.
	LocalizedName string `yaml:"localized_name"`

	// Side restricts the subpath to one hand ("left" or "right");
	// empty means unrestricted.
	Side string `yaml:"side,omitempty"`

	// Features lists what the subpath exposes, in catalogue order.
	Features []Feature `yaml:"features"`
}

// AllowsSubactionPath reports whether the subpath exists under the given
// subaction path, honoring the side restriction.
func (s *Subpath) AllowsSubactionPath(subactionPath string) bool {
	if s.Side == "" {
		return true
	}
	return strings.HasSuffix(subactionPath, "/"+s.Side)
}

// Profile describes one class of input hardware.
type Profile struct {
	path string

	// Title is the display name of the hardware class.
	Title string `yaml:"title"`

	// SubactionPaths are the top-level locations this hardware occupies.
	SubactionPaths []string `yaml:"subaction_paths"`

	// Subpaths maps subpath strings to their descriptors.
	Subpaths map[string]*Subpath `yaml:"subpaths"`
}

// Path returns the profile's identifying path.
func (p *Profile) Path() string {
	return p.path
}

// SubpathNames returns the subpath strings in deterministic (sorted) order.
func (p *Profile) SubpathNames() []string {
	names := make([]string, 0, len(p.Subpaths))
	for name := range p.Subpaths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registry is the immutable, process-wide profile table. Safe for
// unsynchronized concurrent reads after load.
type Registry struct {
	profiles map[string]*Profile
	order    []string
}

// Get returns the profile for a path.
func (r *Registry) Get(path string) (*Profile, bool) {
	p, ok := r.profiles[path]
	return p, ok
}

// Profiles returns all profiles sorted by path.
func (r *Registry) Profiles() []*Profile {
	out := make([]*Profile, 0, len(r.order))
	for _, path := range r.order {
		out = append(out, r.profiles[path])
	}
	return out
}

// Len returns the number of profiles in the registry.
func (r *Registry) Len() int {
	return len(r.order)
}
