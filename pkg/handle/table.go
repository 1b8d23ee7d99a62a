package handle

import (
	"errors"
	"sync"
)

// Table errors.
var (
	ErrDuplicateHandle = errors.New("handle: already registered")
	ErrNotFound        = errors.New("handle: not found")
)

// shardCount must be a power of two.
const shardCount = 32

// Table is a sharded concurrent map from native handles to wrapper values.
// The zero value is not usable; construct with NewTable.
type Table[H ~uint64, T any] struct {
	shards [shardCount]shard[H, T]
}

type shard[H ~uint64, T any] struct {
	mu      sync.RWMutex
	entries map[H]T
}

// NewTable creates an empty table.
func NewTable[H ~uint64, T any]() *Table[H, T] {
	t := &Table[H, T]{}
	for i := range t.shards {
		t.shards[i].entries = make(map[H]T)
	}
	return t
}

func (t *Table[H, T]) shardFor(h H) *shard[H, T] {
	// Fibonacci hashing spreads sequentially issued handles across shards.
	return &t.shards[(uint64(h)*0x9E3779B97F4A7C15)>>59&(shardCount-1)]
}

// Register stores a wrapper for a handle. A handle may be registered at most
// once for its lifetime; re-registering is ErrDuplicateHandle.
func (t *Table[H, T]) Register(h H, v T) error {
	s := t.shardFor(h)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[h]; ok {
		return ErrDuplicateHandle
	}
	s.entries[h] = v
	return nil
}

// Lookup returns the wrapper for a handle, or ErrNotFound.
func (t *Table[H, T]) Lookup(h H) (T, error) {
	s := t.shardFor(h)
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[h]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return v, nil
}

// Remove deletes and returns the wrapper for a handle, or ErrNotFound.
func (t *Table[H, T]) Remove(h H) (T, error) {
	s := t.shardFor(h)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[h]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	delete(s.entries, h)
	return v, nil
}

// Len returns the number of registered handles.
func (t *Table[H, T]) Len() int {
	n := 0
	for i := range t.shards {
		s := &t.shards[i]
		s.mu.RLock()
		n += len(s.entries)
		s.mu.RUnlock()
	}
	return n
}

// Range calls f for entries present in the table, stopping early if f
// returns false. Entries registered concurrently may or may not be visited;
// no entry is visited twice. f runs without shard locks held.
func (t *Table[H, T]) Range(f func(H, T) bool) {
	for i := range t.shards {
		s := &t.shards[i]
		s.mu.RLock()
		snapshot := make(map[H]T, len(s.entries))
		for h, v := range s.entries {
			snapshot[h] = v
		}
		s.mu.RUnlock()
		for h, v := range snapshot {
			if !f(h, v) {
				return
			}
		}
	}
}
