package store

import (
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/sterliakov/merkle-patricia-trie/trie"
)

// LevelDBStore is a trie.Store backed by goleveldb, trimmed to the two
// methods trie.Store actually needs.
//
// The caller is responsible for serializing writers against a single
// LevelDBStore -- goleveldb itself only guarantees safety for concurrent
// readers plus one writer.
type LevelDBStore struct {
	db *leveldb.DB
}

// OpenLevelDBStore opens (creating if absent) a LevelDB database at path.
func OpenLevelDBStore(path string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{})
	if err != nil {
		return nil, fmt.Errorf("opening leveldb at %s: %w", path, err)
	}
	return &LevelDBStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *LevelDBStore) Close() error {
	return s.db.Close()
}

// Get implements trie.Store.
func (s *LevelDBStore) Get(hash trie.Hash) ([]byte, error) {
	value, err := s.db.Get(hash.Bytes(), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, fmt.Errorf("%w: %s", trie.ErrStoreMiss, hash)
		}
		return nil, fmt.Errorf("reading node %s from leveldb: %w", hash, err)
	}
	return value, nil
}

// Put implements trie.Store. LevelDB's Put already overwrites idempotently
// for identical keys, which is exactly the semantics content-addressed
// writes need.
func (s *LevelDBStore) Put(hash trie.Hash, encoded []byte) error {
	if err := s.db.Put(hash.Bytes(), encoded, nil); err != nil {
		return fmt.Errorf("writing node %s to leveldb: %w", hash, err)
	}
	return nil
}
