// ABOUTME: Backend contract for named snapshot documents.
// ABOUTME: Implemented by the SQLite store here and the Charm KV client.
package storage

import (
	"context"
	"errors"
)

// ErrSnapshotNotFound is returned when no document is stored under a name.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Backend stores opaque documents by name.
type Backend interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
	Close() error
}
