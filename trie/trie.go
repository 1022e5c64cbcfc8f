package trie

import (
	"errors"
	"fmt"
	"time"
)

// Config carries the small set of knobs a Trie is constructed with.
type Config struct {
	// Secure, when true, hashes every key with Keccak256 before it ever
	// touches a NibblePath. All four public operations (Get, Put, Delete,
	// Contains) apply it identically.
	Secure bool
}

// Trie is an authenticated, persistent key/value index over an external
// Store. It is not safe for concurrent use: serializing writers is the
// caller's responsibility.
type Trie struct {
	store  Store
	root   Reference
	config Config
}

// New returns an empty Trie backed by store.
func New(store Store, config Config) *Trie {
	return &Trie{store: store, config: config}
}

// NewWithRoot returns a Trie rooted at an existing reference, for resuming
// work against a previously populated store or reading an earlier,
// historical root. root is used as-is and is not validated against store
// until the first operation resolves it.
func NewWithRoot(store Store, root Reference, config Config) *Trie {
	return &Trie{store: store, root: root, config: config}
}

// Root returns the trie's current root reference: empty, inline, or a
// 32-byte hash.
func (t *Trie) Root() Reference {
	return t.root
}

// RootHash returns the root hash: the empty-trie constant for an empty
// root, the reference itself when it is already a 32-byte hash, or
// Keccak256 of the inline encoding otherwise.
func (t *Trie) RootHash() Hash {
	switch t.root.Kind() {
	case refEmpty:
		return EmptyRootHash()
	case refHashed:
		var h Hash
		copy(h[:], t.root)
		return h
	default: // refInline
		return Keccak256(t.root)
	}
}

// keyPath converts an external key into the NibblePath the engine walks,
// hashing it with Keccak256 first when secure mode is configured.
func (t *Trie) keyPath(key []byte) NibblePath {
	if t.config.Secure {
		h := Keccak256(key)
		return newNibblePath(bytesToNibbles(h.Bytes()))
	}
	return newNibblePath(bytesToNibbles(key))
}

// Get returns the value stored under key, or ErrNotFound if key is absent.
func (t *Trie) Get(key []byte) ([]byte, error) {
	start := time.Now()
	value, err := t.get(t.root, t.keyPath(key))
	metricsInstance().observe("get", start, err)
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Contains reports whether key is present, treating ErrNotFound as false
// and propagating any other error.
func (t *Trie) Contains(key []byte) (bool, error) {
	_, err := t.Get(key)
	switch {
	case err == nil:
		return true, nil
	case isNotFound(err):
		return false, nil
	default:
		return false, err
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// get is the recursive lookup.
func (t *Trie) get(ref Reference, path NibblePath) ([]byte, error) {
	if ref.isEmpty() {
		return nil, ErrNotFound
	}

	node, err := resolve(t.store, ref)
	if err != nil {
		return nil, err
	}

	switch n := node.(type) {
	case leafNode:
		if !n.path.Equal(path) {
			return nil, ErrNotFound
		}
		return n.value, nil

	case extensionNode:
		if !path.StartsWith(n.path) {
			return nil, ErrNotFound
		}
		path.consume(n.path.Len())
		return t.get(n.next, path)

	case branchNode:
		if path.Len() == 0 {
			if !n.hasValue() {
				return nil, ErrNotFound
			}
			return n.value, nil
		}
		idx := path.At(0)
		child := n.children[idx]
		if child.isEmpty() {
			return nil, ErrNotFound
		}
		path.consume(1)
		return t.get(child, path)

	default:
		panic(fmt.Sprintf("unknown node type %T", node))
	}
}

// Put inserts or overwrites the value stored under key.
func (t *Trie) Put(key, value []byte) error {
	start := time.Now()
	newRoot, err := t.update(t.root, t.keyPath(key), value)
	metricsInstance().observe("put", start, err)
	if err != nil {
		return err
	}
	t.root = newRoot
	return nil
}

// update is the recursive insert.
func (t *Trie) update(ref Reference, path NibblePath, value []byte) (Reference, error) {
	if ref.isEmpty() {
		return emit(t.store, leafNode{path: path, value: value})
	}

	node, err := resolve(t.store, ref)
	if err != nil {
		return nil, err
	}

	switch n := node.(type) {
	case leafNode:
		return t.updateLeaf(n, path, value)
	case extensionNode:
		return t.updateExtension(n, path, value)
	case branchNode:
		return t.updateBranch(n, path, value)
	default:
		panic(fmt.Sprintf("unknown node type %T", node))
	}
}

func (t *Trie) updateLeaf(n leafNode, path NibblePath, value []byte) (Reference, error) {
	if n.path.Equal(path) {
		return emit(t.store, leafNode{path: path, value: value})
	}

	commonPrefix := path.CommonPrefix(n.path)
	path.consume(commonPrefix.Len())
	n.path.consume(commonPrefix.Len())

	branchRef, err := t.buildSplitBranch(path, value, n.path, n.value)
	if err != nil {
		return nil, err
	}
	if commonPrefix.Len() == 0 {
		return branchRef, nil
	}
	return emit(t.store, extensionNode{path: commonPrefix, next: branchRef})
}

func (t *Trie) updateExtension(n extensionNode, path NibblePath, value []byte) (Reference, error) {
	if path.StartsWith(n.path) {
		path.consume(n.path.Len())
		childRef, err := t.update(n.next, path, value)
		if err != nil {
			return nil, err
		}
		return emit(t.store, extensionNode{path: n.path, next: childRef})
	}

	commonPrefix := path.CommonPrefix(n.path)
	path.consume(commonPrefix.Len())
	n.path.consume(commonPrefix.Len())

	var branchValue []byte
	if path.Len() == 0 {
		branchValue = value
	}

	var b branchNode
	b.value = branchValue
	if err := t.setBranchLeaf(&b, path, value); err != nil {
		return nil, err
	}
	if err := t.setBranchExtension(&b, n.path, n.next); err != nil {
		return nil, err
	}

	branchRef, err := emit(t.store, b)
	if err != nil {
		return nil, err
	}
	if commonPrefix.Len() == 0 {
		return branchRef, nil
	}
	return emit(t.store, extensionNode{path: commonPrefix, next: branchRef})
}

func (t *Trie) updateBranch(n branchNode, path NibblePath, value []byte) (Reference, error) {
	if path.Len() == 0 {
		n.value = value
		return emit(t.store, n)
	}

	idx := path.At(0)
	path.consume(1)
	childRef, err := t.update(n.children[idx], path, value)
	if err != nil {
		return nil, err
	}
	n.children[idx] = childRef
	return emit(t.store, n)
}

// buildSplitBranch creates a Branch with up to two Leaf children (one per
// diverging path) and, if either path is now empty, that Leaf's value
// becomes the Branch's own value instead of a child slot. At least one of
// pathA/pathB must be non-empty.
func (t *Trie) buildSplitBranch(pathA NibblePath, valueA []byte, pathB NibblePath, valueB []byte) (Reference, error) {
	var b branchNode
	switch {
	case pathA.Len() == 0:
		b.value = valueA
	case pathB.Len() == 0:
		b.value = valueB
	}

	if err := t.setBranchLeaf(&b, pathA, valueA); err != nil {
		return nil, err
	}
	if err := t.setBranchLeaf(&b, pathB, valueB); err != nil {
		return nil, err
	}
	return emit(t.store, b)
}

// setBranchLeaf installs a Leaf for path/value into b's matching child
// slot, or does nothing if path is empty (the value already landed on b
// itself -- see buildSplitBranch / updateExtension).
func (t *Trie) setBranchLeaf(b *branchNode, path NibblePath, value []byte) error {
	if path.Len() == 0 {
		return nil
	}
	idx := path.At(0)
	path.consume(1)
	ref, err := emit(t.store, leafNode{path: path, value: value})
	if err != nil {
		return err
	}
	b.children[idx] = ref
	return nil
}

// setBranchExtension installs the remainder of an Extension's path (and
// its existing child reference) into b's matching slot, collapsing to a
// direct reference when only one nibble of path remains.
func (t *Trie) setBranchExtension(b *branchNode, path NibblePath, next Reference) error {
	if path.Len() == 0 {
		panic("setBranchExtension requires a non-empty path")
	}
	idx := path.At(0)
	path.consume(1)
	if path.Len() == 0 {
		b.children[idx] = next
		return nil
	}
	ref, err := emit(t.store, extensionNode{path: path, next: next})
	if err != nil {
		return err
	}
	b.children[idx] = ref
	return nil
}

// deleteOutcome tags the three-way result of a recursive delete step: the
// node was removed outright, it was updated in place, or it collapsed down
// to a single child that its parent must fold into itself.
type deleteOutcome int

const (
	outcomeDeleted deleteOutcome = iota
	outcomeUpdated
	outcomeUselessBranch
)

// deleteResult carries a delete step's outcome: ref is populated for
// outcomeUpdated and outcomeUselessBranch; path is populated only for
// outcomeUselessBranch, carrying the path of the collapsed node at ref
// (zero nibbles when that node is a Leaf holding only the branch's value).
type deleteResult struct {
	outcome deleteOutcome
	ref     Reference
	path    NibblePath
}

// Delete removes key, returning ErrNotFound if it is absent.
func (t *Trie) Delete(key []byte) error {
	start := time.Now()
	result, err := t.delete(t.root, t.keyPath(key))
	metricsInstance().observe("delete", start, err)
	if err != nil {
		return err
	}

	switch result.outcome {
	case outcomeDeleted:
		t.root = nil
	default: // outcomeUpdated, outcomeUselessBranch
		t.root = result.ref
	}
	return nil
}

// delete is the recursive delete dispatch.
func (t *Trie) delete(ref Reference, path NibblePath) (deleteResult, error) {
	if ref.isEmpty() {
		return deleteResult{}, ErrNotFound
	}

	node, err := resolve(t.store, ref)
	if err != nil {
		return deleteResult{}, err
	}

	switch n := node.(type) {
	case leafNode:
		if !n.path.Equal(path) {
			return deleteResult{}, ErrNotFound
		}
		return deleteResult{outcome: outcomeDeleted}, nil

	case extensionNode:
		return t.deleteExtension(n, path)

	case branchNode:
		return t.deleteBranch(n, path)

	default:
		panic(fmt.Sprintf("unknown node type %T", node))
	}
}

func (t *Trie) deleteExtension(n extensionNode, path NibblePath) (deleteResult, error) {
	if !path.StartsWith(n.path) {
		return deleteResult{}, ErrNotFound
	}
	path.consume(n.path.Len())

	result, err := t.delete(n.next, path)
	if err != nil {
		return deleteResult{}, err
	}

	switch result.outcome {
	case outcomeDeleted:
		return deleteResult{outcome: outcomeDeleted}, nil

	case outcomeUpdated:
		ref, err := emit(t.store, extensionNode{path: n.path, next: result.ref})
		if err != nil {
			return deleteResult{}, err
		}
		return deleteResult{outcome: outcomeUpdated, ref: ref}, nil

	default: // outcomeUselessBranch
		child, err := resolve(t.store, result.ref)
		if err != nil {
			return deleteResult{}, err
		}

		var merged Node
		switch c := child.(type) {
		case leafNode:
			merged = leafNode{path: n.path.Combine(c.path), value: c.value}
		case extensionNode:
			merged = extensionNode{path: n.path.Combine(c.path), next: c.next}
		case branchNode:
			merged = extensionNode{path: n.path.Combine(result.path), next: result.ref}
		default:
			panic(fmt.Sprintf("unknown node type %T", child))
		}

		ref, err := emit(t.store, merged)
		if err != nil {
			return deleteResult{}, err
		}
		return deleteResult{outcome: outcomeUpdated, ref: ref}, nil
	}
}

func (t *Trie) deleteBranch(n branchNode, path NibblePath) (deleteResult, error) {
	var idx Nibble
	haveIdx := false
	var result deleteResult

	if path.Len() == 0 {
		if !n.hasValue() {
			return deleteResult{}, ErrNotFound
		}
		n.value = nil
		result = deleteResult{outcome: outcomeDeleted}
	} else {
		idx = path.At(0)
		haveIdx = true
		if n.children[idx].isEmpty() {
			return deleteResult{}, ErrNotFound
		}

		path.consume(1)
		var err error
		result, err = t.delete(n.children[idx], path)
		if err != nil {
			return deleteResult{}, err
		}
		n.children[idx] = nil
	}

	switch result.outcome {
	case outcomeDeleted:
		count := n.childCount()
		switch {
		case count == 0 && !n.hasValue():
			return deleteResult{outcome: outcomeDeleted}, nil

		case count == 0 && n.hasValue():
			ref, err := emit(t.store, leafNode{path: emptyNibblePath(), value: n.value})
			if err != nil {
				return deleteResult{}, err
			}
			return deleteResult{outcome: outcomeUselessBranch, path: emptyNibblePath(), ref: ref}, nil

		case count == 1 && !n.hasValue():
			return t.collapseBranch(n)

		default:
			ref, err := emit(t.store, n)
			if err != nil {
				return deleteResult{}, err
			}
			return deleteResult{outcome: outcomeUpdated, ref: ref}, nil
		}

	case outcomeUpdated:
		if !haveIdx {
			panic("delete: UPDATED result from own-value removal")
		}
		n.children[idx] = result.ref
		ref, err := emit(t.store, n)
		if err != nil {
			return deleteResult{}, err
		}
		return deleteResult{outcome: outcomeUpdated, ref: ref}, nil

	default: // outcomeUselessBranch
		if !haveIdx {
			panic("delete: USELESS_BRANCH result from own-value removal")
		}
		n.children[idx] = result.ref
		ref, err := emit(t.store, n)
		if err != nil {
			return deleteResult{}, err
		}
		return deleteResult{outcome: outcomeUpdated, ref: ref}, nil
	}

	panic("unreachable")
}

// collapseBranch folds a branch down to its lone remaining child: the
// child's index becomes a fresh one-nibble path, merged
// into the child's own path when it is a Leaf or Extension, or left
// standing alone as a wrapping Extension when the child is a Branch (so a
// Branch never ends up with exactly one child and no value).
func (t *Trie) collapseBranch(n branchNode) (deleteResult, error) {
	idx, childRef := n.soleChild()
	prefix := newNibblePath([]Nibble{Nibble(idx)})

	child, err := resolve(t.store, childRef)
	if err != nil {
		return deleteResult{}, err
	}

	var newPath NibblePath
	var newNode Node
	switch c := child.(type) {
	case leafNode:
		newPath = prefix.Combine(c.path)
		newNode = leafNode{path: newPath, value: c.value}
	case extensionNode:
		newPath = prefix.Combine(c.path)
		newNode = extensionNode{path: newPath, next: c.next}
	case branchNode:
		newPath = prefix
		newNode = extensionNode{path: newPath, next: childRef}
	default:
		panic(fmt.Sprintf("unknown node type %T", child))
	}

	ref, err := emit(t.store, newNode)
	if err != nil {
		return deleteResult{}, err
	}
	return deleteResult{outcome: outcomeUselessBranch, path: newPath, ref: ref}, nil
}
