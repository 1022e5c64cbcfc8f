package trie

import (
	"fmt"

	"github.com/sterliakov/merkle-patricia-trie/internal/rlp"
)

// encodeNode serializes a node per its RLP shape:
//   - Leaf:      [ path.Encode(true),  value ]
//   - Extension: [ path.Encode(false), childRef ]
//   - Branch:    [ c0 .. c15, value ]            (17 elements)
func encodeNode(n Node) []byte {
	switch node := n.(type) {
	case leafNode:
		return rlp.Encode(rlp.List{Items: []rlp.Item{
			rlp.String{Bytes: node.path.Encode(true)},
			rlp.String{Bytes: node.value},
		}})
	case extensionNode:
		return rlp.Encode(rlp.List{Items: []rlp.Item{
			rlp.String{Bytes: node.path.Encode(false)},
			referenceItem(node.next),
		}})
	case branchNode:
		items := make([]rlp.Item, 17)
		for i, child := range node.children {
			items[i] = referenceItem(child)
		}
		items[16] = rlp.String{Bytes: node.value}
		return rlp.Encode(rlp.List{Items: items})
	default:
		panic(fmt.Sprintf("unknown node type %T", n))
	}
}

// referenceItem produces the RLP item representing a child reference for
// splicing into a parent's list. A 32-byte reference is inserted as a byte
// string; a shorter (inline) reference is itself already the raw RLP
// encoding of the child node, so it is spliced verbatim as the decoded
// structure it represents rather than wrapped as a byte string. Splicing
// the raw bytes directly is equivalent to decoding them and re-inserting
// the result, since RLP encoding is deterministic.
func referenceItem(ref Reference) rlp.Item {
	switch ref.Kind() {
	case refEmpty:
		return rlp.String{Bytes: nil}
	case refHashed:
		return rlp.String{Bytes: ref}
	default: // refInline
		return rlp.Encoded{Data: ref}
	}
}

// decodeNode parses a node's RLP encoding back into its tagged-variant
// representation: a 17-element list is a Branch, a 2-element list is a
// Leaf or Extension distinguished by the decoded path's is-leaf flag. Any
// other shape is a decode error.
func decodeNode(data []byte) (Node, error) {
	item, err := rlp.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	list, ok := item.(rlp.List)
	if !ok {
		return nil, fmt.Errorf("%w: node encoding is not a list", ErrDecode)
	}

	switch len(list.Items) {
	case 2:
		return decodeLeafOrExtension(list.Items)
	case 17:
		return decodeBranch(list.Items)
	default:
		return nil, fmt.Errorf("%w: list of %d elements is not a valid node", ErrDecode, len(list.Items))
	}
}

func decodeLeafOrExtension(items []rlp.Item) (Node, error) {
	pathStr, ok := items[0].(rlp.String)
	if !ok {
		return nil, fmt.Errorf("%w: node path is not a byte string", ErrDecode)
	}
	path, isLeaf, err := decodeNibblePath(pathStr.Bytes)
	if err != nil {
		return nil, err
	}

	if isLeaf {
		valueStr, ok := items[1].(rlp.String)
		if !ok {
			return nil, fmt.Errorf("%w: leaf value is not a byte string", ErrDecode)
		}
		return leafNode{path: path, value: normalizeEmptyString(valueStr.Bytes)}, nil
	}

	next, err := decodeReference(items[1])
	if err != nil {
		return nil, err
	}
	return extensionNode{path: path, next: next}, nil
}

func decodeBranch(items []rlp.Item) (Node, error) {
	var b branchNode
	for i := 0; i < 16; i++ {
		ref, err := decodeReference(items[i])
		if err != nil {
			return nil, err
		}
		b.children[i] = ref
	}
	valueStr, ok := items[16].(rlp.String)
	if !ok {
		return nil, fmt.Errorf("%w: branch value is not a byte string", ErrDecode)
	}
	b.value = normalizeEmptyString(valueStr.Bytes)
	return b, nil
}

// normalizeEmptyString maps the RLP decoder's zero-length byte slice (which
// Go slicing never produces as a nil, even for the empty string) back to nil
// so "no value" survives a round trip through the store: branchNode.hasValue
// tests nilness. RLP encodes an empty value and no value identically, so a
// stored empty value also decodes as nil.
func normalizeEmptyString(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}

// decodeReference interprets a decoded child slot as a Reference: a byte
// string is used directly (the empty string or a 32-byte hash); a nested
// list arrived because the child was inline, so it is re-encoded to
// recover the raw bytes that make up its Reference -- the mirror image of
// referenceItem's splicing.
func decodeReference(item rlp.Item) (Reference, error) {
	switch v := item.(type) {
	case rlp.String:
		if len(v.Bytes) != 0 && len(v.Bytes) != 32 {
			return nil, fmt.Errorf("%w: reference string has invalid length %d", ErrDecode, len(v.Bytes))
		}
		if len(v.Bytes) == 0 {
			return nil, nil
		}
		return Reference(v.Bytes), nil
	case rlp.List:
		return Reference(rlp.Encode(v)), nil
	default:
		return nil, fmt.Errorf("%w: unsupported reference encoding", ErrDecode)
	}
}
