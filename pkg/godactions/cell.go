package godactions

import (
	"sync"

	"github.com/unibind/unibind-go/pkg/xr"
)

// Cell is one god state: the cached value of one god action observed at one
// binding path for one subaction path. Cells live from session attach to
// session destruction and are guarded independently of one another.
type Cell struct {
	// ActionHandle is the owning god action's native handle.
	ActionHandle xr.Action

	// Name is the fully-qualified binding path string,
	// e.g. "/user/hand/left/input/select/click".
	Name string

	// BindingPath is Name resolved to a native path.
	BindingPath xr.Path

	// SubactionPath is the subaction path the cell was instantiated for.
	SubactionPath xr.Path

	mu    sync.RWMutex
	state State
}

// Load returns the cached state. The whole tagged value is read under the
// cell's lock, so a concurrent Store can never be observed torn.
func (c *Cell) Load() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Store replaces the cached state atomically.
func (c *Cell) Store(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
