package fifo

import "testing"

func TestNewPanicsOnBadCapacity(t *testing.T) {
	cases := []uint32{0, 1, 3, 5, 6, 7}
	for _, c := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%d) did not panic", c)
				}
			}()
			New[int](c)
		}()
	}
}

func TestEmptyQueue(t *testing.T) {
	f := New[int](4)
	if !f.Empty() {
		t.Fatal("fresh queue should be empty")
	}
	if f.Full() {
		t.Fatal("fresh queue should not be full")
	}
	if f.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", f.Size())
	}
}

func TestPushPopOrder(t *testing.T) {
	f := New[int](4)
	for i := 1; i <= 3; i++ {
		if !f.PushBack(i) {
			t.Fatalf("PushBack(%d) failed unexpectedly", i)
		}
	}
	for i := 1; i <= 3; i++ {
		got := f.PopFront()
		if got != i {
			t.Fatalf("PopFront() = %d, want %d", got, i)
		}
	}
	if !f.Empty() {
		t.Fatal("queue should be empty after draining")
	}
}

func TestFullRejectsPush(t *testing.T) {
	f := New[int](4)
	for i := 0; i < 4; i++ {
		if !f.PushBack(i) {
			t.Fatalf("PushBack(%d) should have succeeded", i)
		}
	}
	if !f.Full() {
		t.Fatal("queue should be full at capacity")
	}
	if f.PushBack(99) {
		t.Fatal("PushBack on a full queue should fail")
	}
}

func TestWrapAround(t *testing.T) {
	f := New[int](4)
	for i := 0; i < 4; i++ {
		f.PushBack(i)
	}
	f.PopFront()
	f.PopFront()
	f.PushBack(4)
	f.PushBack(5)
	if !f.Full() {
		t.Fatal("queue should be full again after wrapping")
	}
	want := []int{2, 3, 4, 5}
	for _, w := range want {
		got := f.PopFront()
		if got != w {
			t.Fatalf("PopFront() = %d, want %d", got, w)
		}
	}
}

func TestMaxSize(t *testing.T) {
	f := New[int](8)
	if f.MaxSize() != 8 {
		t.Fatalf("MaxSize() = %d, want 8", f.MaxSize())
	}
}
