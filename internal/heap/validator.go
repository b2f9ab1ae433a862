package heap

import (
	"sync"
	"unsafe"
)

// PointerValidator tracks the byte ranges of live allocations independently
// of an Allocator's own used list, so that arbitrary pointer+size pairs can
// be checked for containment without touching the Allocator's mutex. It is
// driven entirely through Observer notifications (see WithObserver) and is
// a read-side audit tool, not part of Alloc/Free's correctness path.
// A Realloc that resizes a block in place is not reported to observers, so
// the span recorded for that block keeps the size it was allocated with.
type PointerValidator struct {
	mu    sync.RWMutex
	spans map[uintptr]uintptr // base -> size, keyed by payload address
}

// NewPointerValidator returns an empty validator. Attach it to an Allocator
// with WithObserver to keep it populated.
func NewPointerValidator() *PointerValidator {
	return &PointerValidator{spans: make(map[uintptr]uintptr)}
}

// OnAlloc implements Observer.
func (v *PointerValidator) OnAlloc(p unsafe.Pointer, size uintptr) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.spans[uintptr(p)] = size
}

// OnFree implements Observer.
func (v *PointerValidator) OnFree(p unsafe.Pointer) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.spans, uintptr(p))
}

// OnExtend implements Observer. The validator has no per-extent state to
// update.
func (v *PointerValidator) OnExtend(oldTotal, newTotal uintptr) {}

// Contains reports whether [p, p+size) lies entirely within one allocation
// this validator has observed and not yet seen freed.
func (v *PointerValidator) Contains(p unsafe.Pointer, size uintptr) bool {
	if p == nil {
		return size == 0
	}

	start := uintptr(p)
	if size > 0 && start > ^uintptr(0)-size {
		return false
	}
	end := start + size

	v.mu.RLock()
	defer v.mu.RUnlock()

	for base, spanSize := range v.spans {
		if spanSize > ^uintptr(0)-base {
			continue
		}
		spanEnd := base + spanSize
		if start >= base && end <= spanEnd {
			return true
		}
	}

	return false
}

// Len reports the number of allocations currently tracked.
func (v *PointerValidator) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.spans)
}
