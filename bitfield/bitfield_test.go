package bitfield

import "testing"

func TestGetSetRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		r     Range
		value uint32
	}{
		{"low nibble", Range{Offset: 0, Width: 4}, 0xF},
		{"mt nibble", Range{Offset: 28, Width: 4}, 0xD},
		{"7-bit data", Range{Offset: 8, Width: 7}, 0x7F},
		{"full word", Range{Offset: 0, Width: 32}, 0xDEADBEEF},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := Set(0, c.r, c.value)
			got := Get(w, c.r)
			if got != c.value {
				t.Fatalf("Get(Set(0, r, %#x)) = %#x, want %#x", c.value, got, c.value)
			}
		})
	}
}

func TestSetPreservesOtherBits(t *testing.T) {
	w := uint32(0xFFFFFFFF)
	r := Range{Offset: 8, Width: 8}
	w = Set(w, r, 0x00)
	if w != 0xFFFF00FF {
		t.Fatalf("Set cleared bits outside its range: got %#x", w)
	}
}

func TestSetTruncatesOverflow(t *testing.T) {
	r := Range{Offset: 0, Width: 4}
	w := Set(0, r, 0xFF)
	if got := Get(w, r); got != 0xF {
		t.Fatalf("Set did not truncate to range width: got %#x", got)
	}
}

func TestGet8Set16Wrappers(t *testing.T) {
	r8 := Range{Offset: 16, Width: 8}
	w := Set8(0, r8, 0xAB)
	if got := Get8(w, r8); got != 0xAB {
		t.Fatalf("Get8/Set8 round trip failed: got %#x", got)
	}

	r16 := Range{Offset: 0, Width: 16}
	w = Set16(0, r16, 0xBEEF)
	if got := Get16(w, r16); got != 0xBEEF {
		t.Fatalf("Get16/Set16 round trip failed: got %#x", got)
	}
}
