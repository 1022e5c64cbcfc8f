package trie

import (
	"sync"

	"golang.org/x/crypto/sha3"

	"github.com/sterliakov/merkle-patricia-trie/internal/rlp"
)

// Hash is a 32-byte Keccak-256 digest.
type Hash [32]byte

// Bytes returns h as a byte slice.
func (h Hash) Bytes() []byte {
	return h[:]
}

func (h Hash) String() string {
	const hextable = "0123456789abcdef"
	out := make([]byte, 64)
	for i, b := range h {
		out[2*i] = hextable[b>>4]
		out[2*i+1] = hextable[b&0xF]
	}
	return string(out)
}

// keccakHasherPool recycles sha3 states across calls to avoid a fresh
// allocation per hash.
var keccakHasherPool = sync.Pool{
	New: func() any { return sha3.NewLegacyKeccak256() },
}

// Keccak256 hashes data with Keccak-256, the digest function the trie uses
// to content-address nodes.
func Keccak256(data []byte) Hash {
	hasher := keccakHasherPool.Get().(keccakHasher)
	hasher.Reset()
	hasher.Write(data)
	var out Hash
	hasher.Read(out[:])
	keccakHasherPool.Put(hasher)
	return out
}

type keccakHasher interface {
	Reset()
	Write(p []byte) (int, error)
	Read(p []byte) (int, error)
}

// emptyTrieRootHash is the well-known constant Keccak256(RLP("")), the root
// hash of a trie holding no key/value pairs at all.
var emptyTrieRootHash = Keccak256(rlp.Encode(rlp.String{Bytes: nil}))

// EmptyRootHash returns the canonical root hash of an empty trie.
func EmptyRootHash() Hash {
	return emptyTrieRootHash
}
