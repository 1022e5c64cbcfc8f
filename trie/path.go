package trie

import (
	"fmt"
	"strings"
)

// nibblePathOddFlag and nibblePathLeafFlag are the high-nibble wire flags:
// bit 0x10 marks an odd nibble count, bit 0x20 marks a Leaf (as opposed to
// an Extension) path.
const (
	nibblePathOddFlag  = 0x10
	nibblePathLeafFlag = 0x20
)

// NibblePath is a contiguous run of nibbles backed by a packed byte buffer
// plus a head offset counted in nibbles. Two nibbles are packed per byte,
// high nibble first; the offset lets leading nibbles be skipped without
// repacking the buffer, which is what makes `consume` cheap during trie
// recursion.
//
// newNibblePath, CommonPrefix and Combine pack a fresh buffer with offset 0
// or 1. decodeNibblePath reuses the wire bytes with offset 1 or 2 (skipping
// the flag nibble, plus the padding nibble for an even length). consume then
// advances the offset in place by any amount. A path reaches the store only
// through Encode, which writes out the remaining nibbles into a new buffer.
type NibblePath struct {
	data   []byte
	offset int
}

// newNibblePath packs a nibble sequence into a fresh NibblePath with
// offset 0 or 1, mirroring the reference implementation's `_create_new`.
func newNibblePath(nibbles []Nibble) NibblePath {
	length := len(nibbles)
	odd := length%2 == 1

	var data []byte
	pos := 0
	if odd {
		data = append(data, byte(nibbles[0]))
		pos = 1
	}
	for pos < length {
		data = append(data, byte(nibbles[pos])<<4|byte(nibbles[pos+1]))
		pos += 2
	}

	offset := 0
	if odd {
		offset = 1
	}
	return NibblePath{data: data, offset: offset}
}

// emptyNibblePath is the zero-length path.
func emptyNibblePath() NibblePath {
	return NibblePath{}
}

// Len returns the number of nibbles remaining in the path.
func (p NibblePath) Len() int {
	return len(p.data)*2 - p.offset
}

// At returns the i-th remaining nibble.
func (p NibblePath) At(i int) Nibble {
	i += p.offset
	b := p.data[i/2]
	if i%2 == 0 {
		return Nibble(b >> 4)
	}
	return Nibble(b & 0x0F)
}

// consume advances the head of the path in place by amount nibbles and
// returns the (mutated) receiver. Only the receiver's offset changes; the
// packed buffer, which copies of the path share, is left untouched.
func (p *NibblePath) consume(amount int) *NibblePath {
	p.offset += amount
	return p
}

// StartsWith reports whether other is a prefix of p.
func (p NibblePath) StartsWith(other NibblePath) bool {
	if other.Len() > p.Len() {
		return false
	}
	for i := 0; i < other.Len(); i++ {
		if p.At(i) != other.At(i) {
			return false
		}
	}
	return true
}

// Equal reports whether p and other describe the same nibble sequence,
// independent of their internal offset or packing.
func (p NibblePath) Equal(other NibblePath) bool {
	if p.Len() != other.Len() {
		return false
	}
	for i := 0; i < p.Len(); i++ {
		if p.At(i) != other.At(i) {
			return false
		}
	}
	return true
}

// CommonPrefix returns a freshly packed NibblePath holding the shared
// prefix of p and other.
func (p NibblePath) CommonPrefix(other NibblePath) NibblePath {
	n := p.Len()
	if other.Len() < n {
		n = other.Len()
	}
	length := n
	for i := 0; i < n; i++ {
		if p.At(i) != other.At(i) {
			length = i
			break
		}
	}
	return newNibblePath(p.nibbles()[:length])
}

// Combine returns a freshly packed NibblePath with other appended after p.
func (p NibblePath) Combine(other NibblePath) NibblePath {
	nibbles := make([]Nibble, 0, p.Len()+other.Len())
	nibbles = append(nibbles, p.nibbles()...)
	nibbles = append(nibbles, other.nibbles()...)
	return newNibblePath(nibbles)
}

// nibbles materializes the path as a plain nibble slice.
func (p NibblePath) nibbles() []Nibble {
	res := make([]Nibble, p.Len())
	for i := range res {
		res[i] = p.At(i)
	}
	return res
}

// Encode serializes the path into its wire form: a flag byte (odd-length
// and leaf bits, plus the leading nibble when the length is odd) followed
// by the remaining nibbles packed two-per-byte.
func (p NibblePath) Encode(isLeaf bool) []byte {
	length := p.Len()
	odd := length%2 == 1

	prefix := byte(0)
	if isLeaf {
		prefix |= nibblePathLeafFlag
	}
	pos := 0
	if odd {
		prefix |= nibblePathOddFlag | byte(p.At(0))
		pos = 1
	}

	out := make([]byte, 0, 1+(length-pos)/2+1)
	out = append(out, prefix)
	for pos < length {
		out = append(out, byte(p.At(pos))<<4|byte(p.At(pos+1)))
		pos += 2
	}
	return out
}

// decodeNibblePath decodes a path and its is-leaf flag from wire bytes.
// The inverse of Encode.
func decodeNibblePath(data []byte) (NibblePath, bool, error) {
	if len(data) == 0 {
		return NibblePath{}, false, fmt.Errorf("%w: empty path encoding", ErrDecode)
	}
	flags := data[0]
	odd := flags&nibblePathOddFlag != 0
	isLeaf := flags&nibblePathLeafFlag != 0

	offset := 2
	if odd {
		offset = 1
	}
	return NibblePath{data: data, offset: offset}, isLeaf, nil
}

func (p NibblePath) String() string {
	if p.Len() == 0 {
		return "-empty-"
	}
	var b strings.Builder
	for i := 0; i < p.Len(); i++ {
		b.WriteRune(p.At(i).rune())
	}
	return b.String()
}
