package scheduler

import (
	"github.com/chaptersix/taskgrid/store"
)

type txnState int

const (
	txnOpen txnState = iota
	txnCommitted
	txnDiscarded
)

// TransactionContext wraps one store snapshot plus write buffer for the
// lifetime of a single execution segment. It is consumed exactly once, by
// Commit or Discard, at the next suspension point, completion, kill, or
// conflict.
type TransactionContext struct {
	vs    store.VersionedStore
	snap  store.Snapshot
	state txnState
}

// NewTransactionContext opens a context over the store's current state.
func NewTransactionContext(vs store.VersionedStore) *TransactionContext {
	return &TransactionContext{
		vs:   vs,
		snap: vs.Snapshot(),
	}
}

func (t *TransactionContext) Read(key store.Key) (store.Value, bool, error) {
	if t.state != txnOpen {
		return nil, false, ErrTransactionClosed
	}
	return t.vs.Read(t.snap, key)
}

func (t *TransactionContext) Write(key store.Key, value store.Value) error {
	if t.state != txnOpen {
		return ErrTransactionClosed
	}
	return t.vs.BufferWrite(t.snap, key, value)
}

// Commit validates and applies the buffered writes. A store.ErrConflict
// result consumes the context; the task must re-execute under a new one.
func (t *TransactionContext) Commit() error {
	if t.state != txnOpen {
		return ErrTransactionClosed
	}
	t.state = txnCommitted
	return t.vs.Commit(t.snap)
}

// Discard drops the buffered writes without applying them.
func (t *TransactionContext) Discard() {
	if t.state != txnOpen {
		return
	}
	t.state = txnDiscarded
	t.vs.Release(t.snap)
}

// Open reports whether the context is still usable.
func (t *TransactionContext) Open() bool {
	return t.state == txnOpen
}
