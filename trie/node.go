package trie

// Reference is how one node points at another: either the empty sentinel
// (no child), the node's own RLP encoding when that encoding is shorter
// than 32 bytes ("inline"), or its Keccak-256 digest when the encoding is
// 32 bytes or longer ("hashed"). In-memory, a Reference is uniformly a byte
// slice; its interpretation is a pure function of its length.
type Reference []byte

// referenceKind classifies a Reference by length.
type referenceKind int

const (
	refEmpty referenceKind = iota
	refInline
	refHashed
)

// Kind reports whether r is empty, an inline node encoding, or a hash.
func (r Reference) Kind() referenceKind {
	switch {
	case len(r) == 0:
		return refEmpty
	case len(r) < 32:
		return refInline
	default:
		return refHashed
	}
}

func (r Reference) isEmpty() bool { return r.Kind() == refEmpty }

// Node is the tagged-variant interface implemented by the three node kinds
// the trie is built from: leafNode, extensionNode, and branchNode. A single
// exhaustive type switch at every recursive step (see trie.go) dispatches
// on the concrete type.
type Node interface {
	isNode()
}

// leafNode is a terminal node: path holds all remaining nibbles of the key
// it stores, and value is the opaque bytes associated with that key.
type leafNode struct {
	path  NibblePath
	value []byte
}

func (leafNode) isNode() {}

// extensionNode compresses a shared nibble prefix shared by every key below
// it. path has length >= 1 in canonical form, and next references exactly
// one child, which must be a branchNode in canonical form (not enforced by
// the type system).
type extensionNode struct {
	path NibblePath
	next Reference
}

func (extensionNode) isNode() {}

// branchNode is a 16-way radix node. children[i] is either the empty
// Reference (no child at nibble i) or a reference to the next node; value
// holds the opaque bytes associated with the key that ends exactly at this
// branch, or is nil if no such key exists.
type branchNode struct {
	children [16]Reference
	value    []byte
}

func (branchNode) isNode() {}

// hasValue reports whether b stores a value for the key ending at this
// branch. In memory an empty (non-nil-but-zero-length) value counts as a
// stored empty string, distinct from "no value" (nil); once the branch has
// been encoded and decoded, an empty value reads back as nil.
func (b *branchNode) hasValue() bool {
	return b.value != nil
}

// childCount returns the number of non-empty child slots.
func (b *branchNode) childCount() int {
	n := 0
	for i := range b.children {
		if !b.children[i].isEmpty() {
			n++
		}
	}
	return n
}

// soleChild returns the index and reference of the only non-empty child
// slot. It must only be called when childCount() == 1.
func (b *branchNode) soleChild() (int, Reference) {
	for i := range b.children {
		if !b.children[i].isEmpty() {
			return i, b.children[i]
		}
	}
	panic("soleChild called on a branch with no children")
}
