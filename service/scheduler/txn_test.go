package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chaptersix/taskgrid/store"
)

func TestTransactionContextCommitAppliesWrites(t *testing.T) {
	t.Parallel()

	vs := store.NewMemoryStore()
	txn := NewTransactionContext(vs)

	require.NoError(t, txn.Write("counter", 1))
	v, ok, err := txn.Read("counter")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, v)

	require.NoError(t, txn.Commit())
	require.False(t, txn.Open())

	check := NewTransactionContext(vs)
	v, ok, err = check.Read("counter")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, v)
	check.Discard()
}

func TestTransactionContextDiscardDropsWrites(t *testing.T) {
	t.Parallel()

	vs := store.NewMemoryStore()
	txn := NewTransactionContext(vs)
	require.NoError(t, txn.Write("counter", 1))
	txn.Discard()

	check := NewTransactionContext(vs)
	_, ok, err := check.Read("counter")
	require.NoError(t, err)
	require.False(t, ok)
	check.Discard()
}

func TestTransactionContextConsumedExactlyOnce(t *testing.T) {
	t.Parallel()

	vs := store.NewMemoryStore()
	txn := NewTransactionContext(vs)
	require.NoError(t, txn.Commit())

	require.ErrorIs(t, txn.Commit(), ErrTransactionClosed)
	require.ErrorIs(t, txn.Write("k", 1), ErrTransactionClosed)
	_, _, err := txn.Read("k")
	require.ErrorIs(t, err, ErrTransactionClosed)

	// Discard after commit is a no-op, not a second consumption.
	txn.Discard()
	require.False(t, txn.Open())
}

func TestTransactionContextConflict(t *testing.T) {
	t.Parallel()

	vs := store.NewMemoryStore()
	seed := NewTransactionContext(vs)
	require.NoError(t, seed.Write("counter", 0))
	require.NoError(t, seed.Commit())

	first := NewTransactionContext(vs)
	second := NewTransactionContext(vs)

	for _, txn := range []*TransactionContext{first, second} {
		v, ok, err := txn.Read("counter")
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, txn.Write("counter", v.(int)+1))
	}

	require.NoError(t, first.Commit())
	require.ErrorIs(t, second.Commit(), store.ErrConflict)

	check := NewTransactionContext(vs)
	v, _, err := check.Read("counter")
	require.NoError(t, err)
	require.Equal(t, 1, v)
	check.Discard()
}
