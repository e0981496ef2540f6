//go:generate mockgen -package store -source versioned_store.go -destination versioned_store_mock.go

package store

import (
	"errors"
	"fmt"
)

type (
	// Key identifies one slot in the shared object graph.
	Key string

	// Value is an opaque stored value.
	Value any

	// Snapshot is a handle to one snapshot-isolated view of the store with
	// an attached write buffer. A handle is consumed by exactly one Commit
	// or Release.
	Snapshot interface {
		// Version is the store version the snapshot was taken at.
		Version() int64
	}

	// VersionedStore provides snapshot reads, buffered writes, and atomic
	// validate-and-commit. Commits are linearizable; a commit fails with
	// ErrConflict when another commit has written into this snapshot's read
	// set since the snapshot was taken.
	VersionedStore interface {
		Snapshot() Snapshot
		Read(snap Snapshot, key Key) (Value, bool, error)
		BufferWrite(snap Snapshot, key Key, value Value) error
		Commit(snap Snapshot) error
		Release(snap Snapshot)
	}
)

// ErrConflict reports a refused commit: another transaction committed a write
// into this snapshot's read set.
var ErrConflict = errors.New("store: commit conflict")

// ErrSnapshotConsumed reports use of a snapshot after Commit or Release.
var ErrSnapshotConsumed = errors.New("store: snapshot already consumed")

var errSnapshotForeign = errors.New("store: snapshot belongs to a different store")

// ConflictError carries the keys whose versions invalidated the commit.
type ConflictError struct {
	Keys []Key
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("store: commit conflict on %d key(s)", len(e.Keys))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
