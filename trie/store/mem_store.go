// Package store provides concrete trie.Store implementations: an
// in-memory map for tests and tooling, and a goleveldb-backed store for
// durable on-disk use.
package store

import (
	"fmt"
	"sync"

	"github.com/sterliakov/merkle-patricia-trie/trie"
)

// MemStore is a trie.Store backed by a plain Go map, guarded by a mutex so
// it tolerates multiple readers walking distinct historical roots
// concurrently.
type MemStore struct {
	mu   sync.RWMutex
	data map[trie.Hash][]byte
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[trie.Hash][]byte)}
}

// Get implements trie.Store.
func (s *MemStore) Get(hash trie.Hash) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	encoded, ok := s.data[hash]
	if !ok {
		return nil, fmt.Errorf("%w: %s", trie.ErrStoreMiss, hash)
	}
	// Return a copy: the trie treats store contents as immutable once
	// written, but a caller holding this slice shouldn't be able to
	// corrupt our map's backing array.
	out := make([]byte, len(encoded))
	copy(out, encoded)
	return out, nil
}

// Put implements trie.Store. Writing the same hash twice is a no-op, per
// the idempotent-insert contract of trie.Store.
func (s *MemStore) Put(hash trie.Hash, encoded []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[hash]; ok {
		return nil
	}
	cp := make([]byte, len(encoded))
	copy(cp, encoded)
	s.data[hash] = cp
	return nil
}

// Len returns the number of distinct nodes currently stored, for tests and
// diagnostics.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
