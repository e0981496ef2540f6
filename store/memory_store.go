package store

import (
	"sort"
	"sync"
)

type (
	// MemoryStore is an in-memory VersionedStore using optimistic
	// concurrency control: reads are tracked per snapshot, writes are
	// buffered, and Commit validates that no key in the read set has been
	// committed above the snapshot version before applying the buffer
	// under one lock. Each key keeps its full version history, ascending,
	// so a snapshot reads the newest version at or below its pinned
	// version regardless of later commits.
	MemoryStore struct {
		mu        sync.Mutex
		version   int64
		committed map[Key][]versionedValue
	}

	versionedValue struct {
		value   Value
		version int64
	}

	memSnapshot struct {
		store    *MemoryStore
		version  int64
		reads    map[Key]struct{}
		writes   map[Key]Value
		consumed bool
	}
)

// NewMemoryStore returns an empty store at version zero.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		committed: make(map[Key][]versionedValue),
	}
}

func (s *MemoryStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &memSnapshot{
		store:   s,
		version: s.version,
		reads:   make(map[Key]struct{}),
		writes:  make(map[Key]Value),
	}
}

func (s *MemoryStore) Read(snap Snapshot, key Key) (Value, bool, error) {
	ms, err := s.own(snap)
	if err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if ms.consumed {
		return nil, false, ErrSnapshotConsumed
	}
	ms.reads[key] = struct{}{}
	if v, ok := ms.writes[key]; ok {
		return v, true, nil
	}
	versions := s.committed[key]
	for i := len(versions) - 1; i >= 0; i-- {
		if versions[i].version <= ms.version {
			return versions[i].value, true, nil
		}
	}
	return nil, false, nil
}

func (s *MemoryStore) BufferWrite(snap Snapshot, key Key, value Value) error {
	ms, err := s.own(snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if ms.consumed {
		return ErrSnapshotConsumed
	}
	ms.writes[key] = value
	return nil
}

func (s *MemoryStore) Commit(snap Snapshot) error {
	ms, err := s.own(snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if ms.consumed {
		return ErrSnapshotConsumed
	}
	ms.consumed = true

	var conflicting []Key
	for key := range ms.reads {
		if versions := s.committed[key]; len(versions) > 0 && versions[len(versions)-1].version > ms.version {
			conflicting = append(conflicting, key)
		}
	}
	if len(conflicting) > 0 {
		sort.Slice(conflicting, func(i, j int) bool { return conflicting[i] < conflicting[j] })
		return &ConflictError{Keys: conflicting}
	}

	if len(ms.writes) == 0 {
		return nil
	}
	s.version++
	for key, value := range ms.writes {
		s.committed[key] = append(s.committed[key], versionedValue{value: value, version: s.version})
	}
	return nil
}

func (s *MemoryStore) Release(snap Snapshot) {
	ms, err := s.own(snap)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ms.consumed = true
}

// CurrentVersion returns the latest committed version.
func (s *MemoryStore) CurrentVersion() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

func (s *MemoryStore) own(snap Snapshot) (*memSnapshot, error) {
	ms, ok := snap.(*memSnapshot)
	if !ok || ms.store != s {
		return nil, errSnapshotForeign
	}
	return ms, nil
}

func (ms *memSnapshot) Version() int64 {
	return ms.version
}
