// Package kv provides the durable key-value store backing session
// persistence. Values survive process restarts; all operations are
// synchronous.
package kv

// Store abstracts durable key-value persistence (SQLite, in-memory, etc.).
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}
