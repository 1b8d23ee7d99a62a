// Package log captures structured events from the interception layer: one
// event per intercepted call, with the forwarded result and call-specific
// detail (attach coverage, sync bookkeeping, suggested bindings).
//
// Applications embedding the layer implement Logger (or use SlogAdapter to
// route events into log/slog). Events encode to compact integer-keyed CBOR
// for capture files; see EncodeEvent/DecodeEvent.
//
// Logging is never on the hot path's critical section: the layer emits
// events after its own state updates, and NoopLogger disables capture
// entirely.
package log
