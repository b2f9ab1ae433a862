package heap

import "testing"

func TestPointerValidatorTracksLiveAllocations(t *testing.T) {
	v := NewPointerValidator()
	a := newTestAllocator(t, WithObserver(v))

	p := a.Alloc(64)
	if !v.Contains(p, 64) {
		t.Fatal("validator should contain a freshly allocated span")
	}
	if v.Contains(p, 128) {
		t.Fatal("validator should reject a range larger than the allocation")
	}

	a.Free(p)
	if v.Contains(p, 64) {
		t.Fatal("validator should drop a span once it is freed")
	}
}

func TestPointerValidatorNilPointer(t *testing.T) {
	v := NewPointerValidator()
	if !v.Contains(nil, 0) {
		t.Fatal("Contains(nil, 0) should be true")
	}
	if v.Contains(nil, 1) {
		t.Fatal("Contains(nil, 1) should be false")
	}
}
