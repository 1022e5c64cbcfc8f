package trie

import "fmt"

// Store is the abstract, external byte-addressable mapping the trie
// resolves hash references against. Its persistence, sharding, caching, and
// transactional behaviour are the caller's concern; the trie only requires:
//
//   - Get to return the exact bytes previously stored under hash, or
//     ErrStoreMiss if nothing was ever stored there;
//   - Put to be an idempotent insert -- writing the same hash twice with
//     the same bytes (the only way content-addressing allows a collision)
//     must not be treated as an error.
//
// There is deliberately no iteration, deletion, or size primitive: orphaned
// nodes are never reclaimed by the trie, and historical roots remain valid
// for as long as the store retains their nodes.
type Store interface {
	Get(hash Hash) ([]byte, error)
	Put(hash Hash, encoded []byte) error
}

// emit serializes n and, if the encoding is short enough to be embedded in
// its parent (<32 bytes), returns it as an inline Reference without
// touching the store. Otherwise the encoding is hashed, written to store
// under that hash, and the hash is returned as the Reference -- a node is
// always written before anything references it.
func emit(store Store, n Node) (Reference, error) {
	encoded := encodeNode(n)
	if len(encoded) < 32 {
		return Reference(encoded), nil
	}
	hash := Keccak256(encoded)
	if err := store.Put(hash, encoded); err != nil {
		return nil, fmt.Errorf("writing node %s to store: %w", hash, err)
	}
	return Reference(hash[:]), nil
}

// resolve decodes the node a Reference points to: inline bytes are decoded
// directly, hash references are first fetched from the store. The empty
// Reference has no node and is never passed here.
func resolve(store Store, ref Reference) (Node, error) {
	switch ref.Kind() {
	case refInline:
		return decodeNode(ref)
	case refHashed:
		var hash Hash
		copy(hash[:], ref)
		encoded, err := store.Get(hash)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrStoreMiss, hash, err)
		}
		return decodeNode(encoded)
	default:
		panic("resolve called on an empty reference")
	}
}
