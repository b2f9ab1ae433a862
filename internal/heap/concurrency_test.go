package heap

import (
	"sync"
	"testing"
	"unsafe"
)

// Concurrent allocation and freeing from many goroutines must never
// corrupt the accounting: used+free==total must hold once every
// goroutine has finished, regardless of interleaving.
func TestConcurrentAllocFreeKeepsConservation(t *testing.T) {
	a := newTestAllocator(t, WithInitialHeapSize(4<<20))

	const workers = 16
	const perWorker = 200

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(seed int) {
			defer wg.Done()
			var held []unsafe.Pointer
			for i := 0; i < perWorker; i++ {
				size := uintptr(8 + (seed+i)%128)
				p := a.Alloc(size)
				if p == nil {
					continue
				}
				held = append(held, p)
				if i%3 == 0 && len(held) > 0 {
					a.Free(held[len(held)-1])
					held = held[:len(held)-1]
				}
			}
			for _, p := range held {
				a.Free(p)
			}
		}(w)
	}
	wg.Wait()

	s := a.Stats()
	if s.UsedMemory+s.FreeMemory != s.TotalMemory {
		t.Fatalf("used(%d)+free(%d) != total(%d) after concurrent access", s.UsedMemory, s.FreeMemory, s.TotalMemory)
	}
	if s.UsedMemory != 0 {
		t.Fatalf("UsedMemory = %d, want 0 once every goroutine freed everything it held", s.UsedMemory)
	}
	if s.ActiveAllocations != 0 {
		t.Fatalf("ActiveAllocations = %d, want 0", s.ActiveAllocations)
	}
}

// Realloc's fallback path (alloc+copy+free) must not deadlock the guard
// mutex when it runs concurrently with other operations.
func TestConcurrentReallocDoesNotDeadlock(t *testing.T) {
	a := newTestAllocator(t, WithInitialHeapSize(4<<20))

	const workers = 8
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			p := a.Alloc(32)
			for i := 0; i < 50; i++ {
				p = a.Realloc(p, uintptr(32+i*17))
				if p == nil {
					p = a.Alloc(32)
				}
			}
			if p != nil {
				a.Free(p)
			}
		}()
	}
	wg.Wait()
}

// Stats() must be safe to call concurrently with mutation.
func TestConcurrentStatsReadsDoNotRace(t *testing.T) {
	a := newTestAllocator(t, WithInitialHeapSize(1<<20))

	done := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			p := a.Alloc(64)
			a.Free(p)
		}
		close(done)
	}()

	for {
		select {
		case <-done:
			return
		default:
			_ = a.Stats()
		}
	}
}
