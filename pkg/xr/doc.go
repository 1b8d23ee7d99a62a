// Package xr defines the native surface of the wrapped XR API as seen by the
// interception layer: opaque handle types, the result-code error space, action
// state shapes, and the Runtime interface describing the layer below.
//
// # Handles
//
// Instance, Session, ActionSet and Action are opaque identifiers issued by
// the underlying runtime. The layer never fabricates handles; it only wraps
// handles the runtime returned.
//
// # Errors
//
// Every failure of the wrapped API is a *Error carrying a Result code.
// Sentinel values (ErrHandleInvalid, ErrPathInvalid, ...) support errors.Is;
// two *Error values compare equal when their codes match, so an error
// returned by any Runtime implementation matches the package sentinels.
//
// # Runtime
//
// Runtime is the outbound call contract: the fixed set of operations the
// layer forwards downward. Implementations must be safe for concurrent use;
// these calls are the only blocking points in the layer.
package xr
