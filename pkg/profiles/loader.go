package profiles

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/profiles.yaml
var embeddedCatalogue []byte

// root mirrors the catalogue file layout.
type root struct {
	Profiles map[string]*Profile `yaml:"profiles"`
}

// Parse parses and validates a profile catalogue from YAML bytes.
func Parse(data []byte) (*Registry, error) {
	var r root
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing profile catalogue: %w", err)
	}
	if len(r.Profiles) == 0 {
		return nil, fmt.Errorf("profile catalogue is empty")
	}

	reg := &Registry{profiles: make(map[string]*Profile, len(r.Profiles))}
	for path, p := range r.Profiles {
		if err := validateProfile(path, p); err != nil {
			return nil, err
		}
		p.path = path
		reg.profiles[path] = p
		reg.order = append(reg.order, path)
	}
	sort.Strings(reg.order)
	return reg, nil
}

func validateProfile(path string, p *Profile) error {
	if p == nil {
		return fmt.Errorf("profile %s: missing body", path)
	}
	if len(p.SubactionPaths) == 0 {
		return fmt.Errorf("profile %s: no subaction paths", path)
	}
	if len(p.Subpaths) == 0 {
		return fmt.Errorf("profile %s: no subpaths", path)
	}
	for name, sp := range p.Subpaths {
		if sp == nil || len(sp.Features) == 0 {
			return fmt.Errorf("profile %s: subpath %s has no features", path, name)
		}
		switch sp.Side {
		case "", "left", "right":
		default:
			return fmt.Errorf("profile %s: subpath %s: invalid side %q", path, name, sp.Side)
		}
	}
	return nil
}

var loadOnce = sync.OnceValues(func() (*Registry, error) {
	return Parse(embeddedCatalogue)
})

// Load parses the embedded catalogue. The result is computed once and
// shared; the registry is immutable.
func Load() (*Registry, error) {
	return loadOnce()
}

// MustLoad is Load for callers that treat an unparseable embedded catalogue
// as a programming error.
func MustLoad() *Registry {
	reg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("profiles: embedded catalogue invalid: %v", err))
	}
	return reg
}
