package ump

import "testing"

func TestWordsForMT(t *testing.T) {
	cases := []struct {
		mt   MessageType
		want int
	}{
		{MTUtility, 1},
		{MTSystem, 1},
		{MTM1CVM, 1},
		{MTData64, 2},
		{MTM2CVM, 2},
		{MTData128, 4},
		{MTFlexData, 4},
		{MTStream, 4},
		{0x6, 1},
		{0x7, 1},
		{0xB, 3},
		{0xC, 3},
		{0xE, 4},
	}
	for _, c := range cases {
		if got := WordsForMT(c.mt); got != c.want {
			t.Errorf("WordsForMT(%#x) = %d, want %d", c.mt, got, c.want)
		}
	}
}

func TestMTAndGroupExtraction(t *testing.T) {
	r := NewM1NoteOn(5, 3, 64, 100)
	if got := MT(r.W0); got != MTM1CVM {
		t.Fatalf("MT() = %#x, want %#x", got, MTM1CVM)
	}
	if got := Group(r.W0); got != 5 {
		t.Fatalf("Group() = %d, want 5", got)
	}
}

func TestRecordEquality(t *testing.T) {
	a := NewM1NoteOn(1, 2, 60, 100)
	b := NewM1NoteOn(1, 2, 60, 100)
	c := NewM1NoteOn(1, 2, 61, 100)
	if a != b {
		t.Fatalf("identically-constructed records should compare equal: %+v != %+v", a, b)
	}
	if a == c {
		t.Fatal("records differing in note should not compare equal")
	}
}
