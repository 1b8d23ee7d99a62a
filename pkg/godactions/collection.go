package godactions

import (
	"sync"

	"github.com/unibind/unibind-go/pkg/xr"
)

// SubactionCollection holds one cached State per subaction path for a single
// real action. It is written only by synchronization; state queries read it
// without touching the runtime.
type SubactionCollection struct {
	kind xr.ActionType

	mu     sync.RWMutex
	states map[xr.Path]State
}

// NewSubactionCollection creates an empty collection for an action kind.
func NewSubactionCollection(kind xr.ActionType) *SubactionCollection {
	return &SubactionCollection{
		kind:   kind,
		states: make(map[xr.Path]State),
	}
}

// Kind returns the action kind every entry carries.
func (c *SubactionCollection) Kind() xr.ActionType {
	return c.kind
}

// Put stores the state for a subaction path.
func (c *SubactionCollection) Put(subactionPath xr.Path, s State) {
	c.mu.Lock()
	c.states[subactionPath] = s
	c.mu.Unlock()
}

// Get returns the cached state for a subaction path. NullPath addresses the
// whole action: all entries fold into one combined state. The second result
// is false when nothing has been cached for the requested path.
func (c *SubactionCollection) Get(subactionPath xr.Path) (State, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if subactionPath != xr.NullPath {
		s, ok := c.states[subactionPath]
		return s, ok
	}

	if len(c.states) == 0 {
		return State{}, false
	}
	var combined State
	first := true
	for _, s := range c.states {
		if first {
			combined = s
			first = false
			continue
		}
		combined = combined.merge(s)
	}
	return combined, true
}

// Len returns the number of cached subaction paths.
func (c *SubactionCollection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.states)
}
