package trie

import "testing"

func TestBytesToNibbles_HighNibbleFirst(t *testing.T) {
	t.Parallel()
	got := bytesToNibbles([]byte{0xab, 0xcd})
	want := []Nibble{0xa, 0xb, 0xc, 0xd}
	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("nibble %d = %x, want %x", i, got[i], want[i])
		}
	}
}

func TestNibblesToBytes_Roundtrip(t *testing.T) {
	t.Parallel()
	original := []byte{0x12, 0x34, 0xff, 0x00}
	nibbles := bytesToNibbles(original)
	back := nibblesToBytes(nibbles)
	if string(back) != string(original) {
		t.Errorf("round trip = %x, want %x", back, original)
	}
}

func TestCommonPrefixLength(t *testing.T) {
	t.Parallel()
	a := []Nibble{1, 2, 3, 4}
	b := []Nibble{1, 2, 9, 4}
	if got := commonPrefixLength(a, b); got != 2 {
		t.Errorf("commonPrefixLength = %d, want 2", got)
	}
	if got := commonPrefixLength(a, a); got != len(a) {
		t.Errorf("commonPrefixLength(a, a) = %d, want %d", got, len(a))
	}
}
