package heap

import (
	"testing"
	"unsafe"
)

// S5: aligned allocation. The pointer is aligned, and writing a full
// payload to it does not corrupt whatever is allocated afterward.
func TestAllocAlignedAlignmentAndIsolation(t *testing.T) {
	a := newTestAllocator(t)

	p := a.AllocAligned(100, 64)
	if p == nil {
		t.Fatal("AllocAligned failed")
	}
	if uintptr(p)%64 != 0 {
		t.Fatalf("pointer %p is not 64-byte aligned", p)
	}

	buf := unsafe.Slice((*byte)(p), 100)
	for i := range buf {
		buf[i] = 0xAA
	}

	q := a.Alloc(64)
	if q == nil {
		t.Fatal("Alloc after AllocAligned failed")
	}
	qbuf := unsafe.Slice((*byte)(q), 64)
	for i := range qbuf {
		qbuf[i] = 0x55
	}

	for i := range buf {
		if buf[i] != 0xAA {
			t.Fatalf("aligned allocation corrupted at byte %d", i)
		}
	}
}

func TestAllocAlignedRejectsInvalidAlignment(t *testing.T) {
	a := newTestAllocator(t)

	if p := a.AllocAligned(16, 0); p != nil {
		t.Fatal("alignment 0 should be rejected")
	}
	if p := a.AllocAligned(16, 3); p != nil {
		t.Fatal("non-power-of-two alignment should be rejected")
	}
}

func TestAllocAlignedFreeRecoversRawBlock(t *testing.T) {
	a := newTestAllocator(t)

	before := a.Stats()

	p := a.AllocAligned(100, 128)
	if p == nil {
		t.Fatal("AllocAligned failed")
	}

	a.Free(p)

	after := a.Stats()
	if after.UsedMemory != before.UsedMemory {
		t.Fatalf("UsedMemory = %d, want %d after freeing an aligned pointer", after.UsedMemory, before.UsedMemory)
	}
	if after.ActiveAllocations != before.ActiveAllocations {
		t.Fatalf("ActiveAllocations = %d, want %d", after.ActiveAllocations, before.ActiveAllocations)
	}
}

func TestCallocZeroesAndRejectsOverflow(t *testing.T) {
	a := newTestAllocator(t)

	p := a.Calloc(16, 8)
	if p == nil {
		t.Fatal("Calloc failed")
	}
	buf := unsafe.Slice((*byte)(p), 16*8)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d not zeroed: %d", i, b)
		}
	}

	if got := a.Calloc(^uintptr(0), 2); got != nil {
		t.Fatal("Calloc should reject a size that overflows")
	}
}
