package trie_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/sterliakov/merkle-patricia-trie/trie"
	"github.com/sterliakov/merkle-patricia-trie/trie/store"
)

// The reference hashes below are the well-known Ethereum MPT test vectors,
// reproduced here exactly as given.

func TestS1_ClassicFourLeaves(t *testing.T) {
	t.Parallel()
	tr := trie.New(store.NewMemStore(), trie.Config{})

	mustPut(t, tr, "do", "verb")
	mustPut(t, tr, "dog", "puppy")
	mustPut(t, tr, "doge", "coin")
	mustPut(t, tr, "horse", "stallion")

	want := "5991bb8c6514148a29db676a14ac506cd2cd5775ace63c30a4fe457715e9ac84"
	if got := fmt.Sprintf("%x", tr.RootHash()); got != want {
		t.Errorf("invalid root hash\nexpected %s\n     got %s", want, got)
	}
}

func TestS2_IncrementalInsert(t *testing.T) {
	t.Parallel()
	tr := trie.New(store.NewMemStore(), trie.Config{})

	mustPut(t, tr, "doge", "coin")
	mustPut(t, tr, "do", "verb")

	want := "f803dfcb7e8f1afd45e88eedb4699a7138d6c07b71243d9ae9bff720c99925f9"
	if got := fmt.Sprintf("%x", tr.RootHash()); got != want {
		t.Errorf("invalid root hash after 2 inserts\nexpected %s\n     got %s", want, got)
	}

	mustPut(t, tr, "done", "finished")

	want = "409cff4d820b394ed3fb1cd4497bdd19ffa68d30ae34157337a7043c94a3e8cb"
	if got := fmt.Sprintf("%x", tr.RootHash()); got != want {
		t.Errorf("invalid root hash after 3 inserts\nexpected %s\n     got %s", want, got)
	}
}

func TestS3_DeletesRestoreEarlierRoot(t *testing.T) {
	t.Parallel()
	tr := trie.New(store.NewMemStore(), trie.Config{})

	mustPut(t, tr, "do", "verb")
	mustPut(t, tr, "dog", "puppy")
	mustPut(t, tr, "doge", "coin")
	mustPut(t, tr, "horse", "stallion")

	savedRoot := tr.RootHash()

	mustPut(t, tr, "a", "some-value")
	mustPut(t, tr, "some_key", "another-value")
	mustPut(t, tr, "dodog", "yet-another")

	mustDelete(t, tr, "a")
	mustDelete(t, tr, "some_key")
	mustDelete(t, tr, "dodog")

	if got := tr.RootHash(); got != savedRoot {
		t.Errorf("root hash after delete-back-to-S1 mismatch\nexpected %x\n     got %x", savedRoot, got)
	}
}

func TestS4_HundredRandomKeysRoundTripThenEmpty(t *testing.T) {
	t.Parallel()
	tr := trie.New(store.NewMemStore(), trie.Config{})

	rng := rand.New(rand.NewSource(1))
	keys := make([]uint64, 100)
	seen := make(map[uint64]bool)
	for i := range keys {
		var k uint64
		for {
			k = rng.Uint64()
			if !seen[k] {
				seen[k] = true
				break
			}
		}
		keys[i] = k
	}

	for _, k := range keys {
		key := []byte(fmt.Sprintf("%d", k))
		value := []byte(fmt.Sprintf("%d", k*2))
		if err := tr.Put(key, value); err != nil {
			t.Fatalf("put(%d) failed: %v", k, err)
		}
	}

	for _, k := range keys {
		key := []byte(fmt.Sprintf("%d", k))
		want := []byte(fmt.Sprintf("%d", k*2))
		got, err := tr.Get(key)
		if err != nil {
			t.Fatalf("get(%d) failed: %v", k, err)
		}
		if string(got) != string(want) {
			t.Errorf("get(%d) = %q, want %q", k, got, want)
		}
	}

	for _, k := range keys {
		key := []byte(fmt.Sprintf("%d", k))
		if err := tr.Delete(key); err != nil {
			t.Fatalf("delete(%d) failed: %v", k, err)
		}
	}

	if got, want := tr.RootHash(), trie.EmptyRootHash(); got != want {
		t.Errorf("root hash after deleting all keys = %x, want empty-trie constant %x", got, want)
	}
}

func TestS5_SecureModeHashesKeysBeforeInsert(t *testing.T) {
	t.Parallel()

	secure := trie.New(store.NewMemStore(), trie.Config{Secure: true})
	insecure := trie.New(store.NewMemStore(), trie.Config{Secure: false})

	keys := [][]byte{[]byte("do"), []byte("dog"), []byte("doge"), []byte("horse")}
	for _, k := range keys {
		if err := secure.Put(k, []byte("value-"+string(k))); err != nil {
			t.Fatalf("secure put(%q) failed: %v", k, err)
		}
		hashedKey := trie.Keccak256(k).Bytes()
		if err := insecure.Put(hashedKey, []byte("value-"+string(k))); err != nil {
			t.Fatalf("insecure put(%x) failed: %v", hashedKey, err)
		}
	}

	if secure.RootHash() != insecure.RootHash() {
		t.Errorf("secure-mode root hash does not match an equivalent insecure trie over pre-hashed keys:\nsecure   %x\ninsecure %x", secure.RootHash(), insecure.RootHash())
	}

	for _, k := range keys {
		got, err := secure.Get(k)
		if err != nil {
			t.Fatalf("secure get(%q) failed: %v", k, err)
		}
		if string(got) != "value-"+string(k) {
			t.Errorf("secure get(%q) = %q, want %q", k, got, "value-"+string(k))
		}
	}
}

func mustPut(t *testing.T, tr *trie.Trie, key, value string) {
	t.Helper()
	if err := tr.Put([]byte(key), []byte(value)); err != nil {
		t.Fatalf("put(%q, %q) failed: %v", key, value, err)
	}
}

func mustDelete(t *testing.T, tr *trie.Trie, key string) {
	t.Helper()
	if err := tr.Delete([]byte(key)); err != nil {
		t.Fatalf("delete(%q) failed: %v", key, err)
	}
}
