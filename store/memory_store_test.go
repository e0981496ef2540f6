package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreReadYourWrites(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	snap := s.Snapshot()

	_, ok, err := s.Read(snap, "counter")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.BufferWrite(snap, "counter", 7))
	v, ok, err := s.Read(snap, "counter")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 7, v)

	// Buffered writes are invisible to other snapshots.
	other := s.Snapshot()
	_, ok, err = s.Read(other, "counter")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreCommitVisibility(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	snap := s.Snapshot()
	require.NoError(t, s.BufferWrite(snap, "counter", 1))
	require.NoError(t, s.Commit(snap))

	after := s.Snapshot()
	v, ok, err := s.Read(after, "counter")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func TestMemoryStoreSnapshotReadIsPinned(t *testing.T) {
	t.Parallel()

	// A snapshot keeps reading the state it was taken at, even after later
	// commits overwrite it.
	s := NewMemoryStore()
	seed := s.Snapshot()
	require.NoError(t, s.BufferWrite(seed, "k", "v0"))
	require.NoError(t, s.Commit(seed))

	pinned := s.Snapshot()

	writer := s.Snapshot()
	require.NoError(t, s.BufferWrite(writer, "k", "v1"))
	require.NoError(t, s.BufferWrite(writer, "fresh", 1))
	require.NoError(t, s.Commit(writer))

	v, ok, err := s.Read(pinned, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v0", v)

	// Keys born after the snapshot do not exist in its view.
	_, ok, err = s.Read(pinned, "fresh")
	require.NoError(t, err)
	require.False(t, ok)

	latest := s.Snapshot()
	v, ok, err = s.Read(latest, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v1", v)

	s.Release(pinned)
	s.Release(latest)
}

func TestMemoryStoreConflictOnReadSet(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	seed := s.Snapshot()
	require.NoError(t, s.BufferWrite(seed, "counter", 0))
	require.NoError(t, s.Commit(seed))

	first := s.Snapshot()
	second := s.Snapshot()

	readCounter := func(snap Snapshot) int {
		v, ok, err := s.Read(snap, "counter")
		require.NoError(t, err)
		require.True(t, ok)
		return v.(int)
	}

	require.NoError(t, s.BufferWrite(first, "counter", readCounter(first)+1))
	require.NoError(t, s.BufferWrite(second, "counter", readCounter(second)+1))

	require.NoError(t, s.Commit(first))

	err := s.Commit(second)
	require.ErrorIs(t, err, ErrConflict)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, []Key{"counter"}, conflict.Keys)

	// The refused commit left no writes behind.
	check := s.Snapshot()
	require.Equal(t, 1, readCounter(check))
}

func TestMemoryStoreDisjointCommitsBothSucceed(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	first := s.Snapshot()
	second := s.Snapshot()

	require.NoError(t, s.BufferWrite(first, "a", "x"))
	require.NoError(t, s.BufferWrite(second, "b", "y"))

	require.NoError(t, s.Commit(first))
	require.NoError(t, s.Commit(second))
}

func TestMemoryStoreWriteOnlyCommitIgnoresReadSet(t *testing.T) {
	t.Parallel()

	// A blind write does not conflict with a concurrent commit to the same
	// key; the later commit simply wins.
	s := NewMemoryStore()
	first := s.Snapshot()
	second := s.Snapshot()

	require.NoError(t, s.BufferWrite(first, "a", 1))
	require.NoError(t, s.BufferWrite(second, "a", 2))
	require.NoError(t, s.Commit(first))
	require.NoError(t, s.Commit(second))

	check := s.Snapshot()
	v, _, err := s.Read(check, "a")
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

func TestMemoryStoreSnapshotConsumed(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	snap := s.Snapshot()
	require.NoError(t, s.Commit(snap))

	_, _, err := s.Read(snap, "a")
	require.ErrorIs(t, err, ErrSnapshotConsumed)
	require.ErrorIs(t, s.BufferWrite(snap, "a", 1), ErrSnapshotConsumed)
	require.ErrorIs(t, s.Commit(snap), ErrSnapshotConsumed)
}

func TestMemoryStoreRelease(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	snap := s.Snapshot()
	require.NoError(t, s.BufferWrite(snap, "a", 1))
	s.Release(snap)

	check := s.Snapshot()
	_, ok, err := s.Read(check, "a")
	require.NoError(t, err)
	require.False(t, ok)
	require.EqualValues(t, 0, s.CurrentVersion())
}

func TestMemoryStoreConcurrentCounterIncrements(t *testing.T) {
	t.Parallel()

	// Optimistic read-increment-write from many goroutines; losers retry.
	// The final value must equal the number of successful increments.
	s := NewMemoryStore()
	seed := s.Snapshot()
	require.NoError(t, s.BufferWrite(seed, "counter", 0))
	require.NoError(t, s.Commit(seed))

	const goroutines = 8
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				snap := s.Snapshot()
				v, ok, err := s.Read(snap, "counter")
				if err != nil || !ok {
					panic("read failed")
				}
				if err := s.BufferWrite(snap, "counter", v.(int)+1); err != nil {
					panic(err)
				}
				if err := s.Commit(snap); err == nil {
					return
				}
			}
		}()
	}
	wg.Wait()

	check := s.Snapshot()
	v, _, err := s.Read(check, "counter")
	require.NoError(t, err)
	require.Equal(t, goroutines, v)
}
