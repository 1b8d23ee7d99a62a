// Package godactions implements the virtualization engine at the heart of
// the layer: for every interaction profile in the catalogue it synthesizes a
// complete set of "god" actions, one per physical input or output, so that
// suggested bindings exist for any profile the hardware might report,
// regardless of what the application requested.
//
// # Lifecycle
//
// BuildSets runs once per instance, eagerly, against the underlying runtime:
// one real action set per profile, one real action per actionable
// subpath/feature pair. A failed creation fails the whole build and the
// instance creation that triggered it.
//
// AttachSets runs once per session: it attaches every god set in a single
// call, seeds one god-state cell per (profile, input god action, subaction
// path), and suggests bindings for every cell under its profile. A failure
// anywhere in the sequence returns the runtime's error with nothing
// retained.
//
// # State cells
//
// Each Cell caches the latest synthesized state for one binding path. Cells
// are guarded independently; a whole tagged State value is stored or loaded
// atomically per cell, so readers never observe a torn value. Cells are
// refreshed only by synchronization; state queries are pure cache reads.
package godactions
