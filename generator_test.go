package rowmem

import (
	"strings"
	"testing"
)

func TestGenerator_Length(t *testing.T) {
	gen := NewGenerator(64, 1)

	for _, n := range []int{0, 1, 10, 64, 65, 1000} {
		if got := len(gen.Get(n)); got != n {
			t.Errorf("len(Get(%d)) = %d; want %d", n, got, n)
		}
		if got := len(gen.GetBytes(n)); got != n {
			t.Errorf("len(GetBytes(%d)) = %d; want %d", n, got, n)
		}
	}
	if got := gen.Get(-5); got != "" {
		t.Errorf("Get(-5) = %q; want empty", got)
	}
}

func TestGenerator_Alphabet(t *testing.T) {
	gen := NewGenerator(1000, 7)
	for range 100 {
		s := gen.Get(32)
		for _, r := range s {
			if !strings.ContainsRune(alphabet, r) {
				t.Fatalf("Get returned %q with non-alphabet rune %q", s, r)
			}
		}
	}
}

func TestGenerator_WrapsPool(t *testing.T) {
	gen := NewGenerator(4, 3)
	if gen.Cap() != 4 {
		t.Fatalf("Cap() = %d; want 4", gen.Cap())
	}

	s := gen.Get(12)
	for i := 4; i < len(s); i++ {
		if s[i] != s[i-4] {
			t.Fatalf("Get(12) = %q; want period 4", s)
		}
	}
}

func TestGenerator_SameSeed(t *testing.T) {
	a := NewGenerator(500, 99)
	b := NewGenerator(500, 99)

	for i := range 50 {
		if x, y := a.Get(10), b.Get(10); x != y {
			t.Fatalf("call %d: %q != %q", i, x, y)
		}
	}
	// Bytes and strings draw from the same sequence.
	if x, y := string(a.GetBytes(10)), b.Get(10); x != y {
		t.Errorf("GetBytes = %q; Get = %q; want equal", x, y)
	}
}

func TestGenerator_FreshAllocations(t *testing.T) {
	gen := NewGenerator(100, 5)
	b := gen.GetBytes(8)
	s := gen.Get(8)
	want := strings.Clone(s)

	for i := range b {
		b[i] = '!'
	}
	if s != want {
		t.Errorf("Get result changed after mutating GetBytes result: %q; want %q", s, want)
	}
}

func TestGenerator_MinimumPool(t *testing.T) {
	gen := NewGenerator(0, 1)
	if gen.Cap() != 1 {
		t.Errorf("Cap() = %d; want 1", gen.Cap())
	}
	if got := gen.Get(3); len(got) != 3 || got[0] != got[1] || got[1] != got[2] {
		t.Errorf("Get(3) = %q; want one repeated character", got)
	}
}
