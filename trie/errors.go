package trie

// ConstError is an error type usable to define immutable error constants,
// so trie.ErrNotFound and friends can be compared with errors.Is after
// being wrapped with additional context via fmt.Errorf's %w verb.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}

const (
	// ErrNotFound is returned by Get/Delete when the requested key is not
	// present in the trie, and by Find when the walk cannot reach the key.
	// It is not a fatal condition.
	ErrNotFound = ConstError("trie: key not found")

	// ErrDecode is returned when bytes retrieved from the store (or passed
	// to a path/node decoder) are not a well-formed encoding: wrong RLP
	// list arity, a malformed NibblePath prefix byte, or a child slot that
	// is not a byte string where one is required. It indicates store
	// corruption or an incompatible encoding and is fatal.
	ErrDecode = ConstError("trie: malformed node encoding")

	// ErrStoreMiss is returned when a hash reference does not resolve to
	// anything in the backing store, a violation of the store contract.
	ErrStoreMiss = ConstError("trie: reference missing from store")
)
