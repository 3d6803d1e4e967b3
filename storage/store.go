// Package storage provides the durable key-value storage abstraction used by
// the session and account layers.
package storage

import "errors"

// ErrNotFound is returned when no value exists for the requested key.
var ErrNotFound = errors.New("key not found")

// Store defines a durable key-value store of opaque byte blobs. Keys are
// flat strings; namespacing is by convention (each component owns a disjoint
// key prefix and never writes another component's keys).
//
// Implementations must make each Put and Delete atomic per key, but provide
// no cross-key transactions and no optimistic concurrency: callers doing
// read-modify-write of a blob accept last-write-wins semantics.
type Store interface {
	// Get retrieves the value for key. Returns ErrNotFound if absent.
	Get(key string) ([]byte, error)
	// Put creates or replaces the value for key.
	Put(key string, value []byte) error
	// Delete removes the value for key. Deleting an absent key is a no-op.
	Delete(key string) error
}
