package trie

// PathTracer walks the node sequence a lookup visits for a single key. It
// is built once by Trie.Find and then drained with the HasNext/Next
// pull-iterator idiom.
//
// The walk itself happens eagerly inside Find: the trie has no cursor
// abstraction over the store that would make a suspend/resume style
// iterator worthwhile, and a Store implementation is free to be backed by
// disk I/O that is cheaper to batch than to interleave with Next() calls.
type PathTracer struct {
	nodes []Node
	pos   int
	err   error
}

// Find traces the node sequence visited while looking up key, for
// constructing Merkle proofs. If key is absent, the tracer still yields
// every node reached before the walk had to stop, and Err reports
// ErrNotFound once the sequence is exhausted.
func (t *Trie) Find(key []byte) *PathTracer {
	pt := &PathTracer{}
	pt.err = pt.walk(t.store, t.root, t.keyPath(key))
	return pt
}

func (pt *PathTracer) walk(store Store, ref Reference, path NibblePath) error {
	if ref.isEmpty() {
		return ErrNotFound
	}

	node, err := resolve(store, ref)
	if err != nil {
		return err
	}
	pt.nodes = append(pt.nodes, node)

	switch n := node.(type) {
	case leafNode:
		if n.path.Equal(path) {
			return nil
		}
		return ErrNotFound

	case extensionNode:
		if !path.StartsWith(n.path) {
			return ErrNotFound
		}
		path.consume(n.path.Len())
		return pt.walk(store, n.next, path)

	case branchNode:
		if path.Len() == 0 {
			if n.hasValue() {
				return nil
			}
			return ErrNotFound
		}
		idx := path.At(0)
		child := n.children[idx]
		if child.isEmpty() {
			return ErrNotFound
		}
		path.consume(1)
		return pt.walk(store, child, path)

	default:
		return ErrDecode
	}
}

// HasNext reports whether another node remains in the traced sequence.
func (pt *PathTracer) HasNext() bool {
	return pt.pos < len(pt.nodes)
}

// Next returns the next node in the sequence, root first. HasNext must be
// checked first; calling Next past the end panics.
func (pt *PathTracer) Next() Node {
	n := pt.nodes[pt.pos]
	pt.pos++
	return n
}

// Err reports ErrNotFound if the traced key was absent, nil if the walk
// reached a node holding it.
func (pt *PathTracer) Err() error {
	return pt.err
}

// Nodes returns the full traced sequence at once, root first, for callers
// that would rather not pull one node at a time.
func (pt *PathTracer) Nodes() []Node {
	return pt.nodes
}
