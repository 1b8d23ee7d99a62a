// Package layer is the interception layer itself: it wraps an xr.Runtime,
// forwards every call, and augments input-binding compatibility by
// synthesizing god actions for every catalogued interaction profile.
//
// A Layer owns the handle registries mapping native handles to wrapper
// objects (Instance, Session, ActionSet, Action). Children hold their
// parent's handle, not a pointer; the parent is upgraded through the
// registry on use and a destroyed parent surfaces as xr.ErrHandleInvalid.
//
// Construct with New(next, opts...). A Layer is safe for concurrent use
// from any number of calling goroutines.
package layer
