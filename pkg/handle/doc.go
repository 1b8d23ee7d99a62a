// Package handle provides the concurrent handle table backing the layer's
// wrapper registries: a generic store keyed by opaque native handles.
//
// The table is sharded so operations on unrelated handles never contend on
// a common lock; concurrent operations on the same handle are serialized by
// that handle's shard. Lookups of handles that were never registered, or
// were already removed, fail with ErrNotFound; the layer surfaces that as
// the wrapped API's handle-invalid error.
package handle
