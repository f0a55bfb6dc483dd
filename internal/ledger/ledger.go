// Package ledger defines the key-value world-state abstraction the engine
// runs against. Records are JSON values under composite string keys; the
// engine stages every mutation in an Overlay and commits once per
// operation.
package ledger

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get for keys with no committed value.
var ErrNotFound = errors.New("ledger: key not found")

// Entry is one key-value pair from a prefix scan.
type Entry struct {
	Key   string
	Value []byte
}

// Ledger is the durable world state. Implementations must return entries
// from QueryByPrefix in ascending key order.
type Ledger interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	QueryByPrefix(ctx context.Context, prefix string) ([]Entry, error)
}
