package trie

import "testing"

func TestNibblePath_LenAndAt(t *testing.T) {
	t.Parallel()
	p := newNibblePath([]Nibble{1, 2, 3, 4, 5})
	if p.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", p.Len())
	}
	for i, want := range []Nibble{1, 2, 3, 4, 5} {
		if got := p.At(i); got != want {
			t.Errorf("At(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestNibblePath_Consume(t *testing.T) {
	t.Parallel()
	p := newNibblePath([]Nibble{1, 2, 3, 4})
	p.consume(2)
	if p.Len() != 2 {
		t.Fatalf("Len() after consume(2) = %d, want 2", p.Len())
	}
	if p.At(0) != 3 || p.At(1) != 4 {
		t.Errorf("At() after consume = %d,%d, want 3,4", p.At(0), p.At(1))
	}
}

func TestNibblePath_StartsWith(t *testing.T) {
	t.Parallel()
	p := newNibblePath([]Nibble{1, 2, 3, 4})
	prefix := newNibblePath([]Nibble{1, 2})
	if !p.StartsWith(prefix) {
		t.Error("expected p to start with prefix")
	}
	other := newNibblePath([]Nibble{1, 3})
	if p.StartsWith(other) {
		t.Error("expected p not to start with a mismatching prefix")
	}
	if !p.StartsWith(emptyNibblePath()) {
		t.Error("every path starts with the empty path")
	}
}

func TestNibblePath_Equal(t *testing.T) {
	t.Parallel()
	a := newNibblePath([]Nibble{1, 2, 3})
	b := newNibblePath([]Nibble{1, 2, 3})
	if !a.Equal(b) {
		t.Error("expected equal nibble sequences to compare equal")
	}
	a.consume(1)
	if a.Equal(b) {
		t.Error("expected consumed path to no longer equal the original")
	}
}

func TestNibblePath_CommonPrefix(t *testing.T) {
	t.Parallel()
	a := newNibblePath([]Nibble{1, 2, 3, 4})
	b := newNibblePath([]Nibble{1, 2, 9, 9})
	cp := a.CommonPrefix(b)
	if cp.Len() != 2 {
		t.Fatalf("CommonPrefix length = %d, want 2", cp.Len())
	}
	if cp.At(0) != 1 || cp.At(1) != 2 {
		t.Errorf("CommonPrefix = %v, want [1 2]", cp)
	}
}

func TestNibblePath_Combine(t *testing.T) {
	t.Parallel()
	a := newNibblePath([]Nibble{1, 2})
	b := newNibblePath([]Nibble{3, 4, 5})
	combined := a.Combine(b)
	want := []Nibble{1, 2, 3, 4, 5}
	if combined.Len() != len(want) {
		t.Fatalf("Combine length = %d, want %d", combined.Len(), len(want))
	}
	for i, w := range want {
		if combined.At(i) != w {
			t.Errorf("Combine At(%d) = %d, want %d", i, combined.At(i), w)
		}
	}
}

func TestNibblePath_EncodeDecode_AllFlagCombinations(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		nibbles []Nibble
		isLeaf  bool
	}{
		{"even-extension", []Nibble{1, 2, 3, 4}, false},
		{"odd-extension", []Nibble{1, 2, 3}, false},
		{"even-leaf", []Nibble{0xa, 0xb, 0xc, 0xd}, true},
		{"odd-leaf", []Nibble{0xa, 0xb, 0xc}, true},
		{"empty-extension", []Nibble{}, false},
		{"empty-leaf", []Nibble{}, true},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			p := newNibblePath(c.nibbles)
			encoded := p.Encode(c.isLeaf)
			decoded, isLeaf, err := decodeNibblePath(encoded)
			if err != nil {
				t.Fatalf("decodeNibblePath failed: %v", err)
			}
			if isLeaf != c.isLeaf {
				t.Errorf("isLeaf = %v, want %v", isLeaf, c.isLeaf)
			}
			if !decoded.Equal(p) {
				t.Errorf("decoded path %v != original %v", decoded, p)
			}
		})
	}
}

func TestDecodeNibblePath_RejectsEmptyInput(t *testing.T) {
	t.Parallel()
	if _, _, err := decodeNibblePath(nil); err == nil {
		t.Error("expected an error decoding an empty path encoding")
	}
}
