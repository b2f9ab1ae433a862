package heap

import (
	"sync"
	"unsafe"
)

// defaultHeap is the process-wide convenience instance used by the
// package-level functions below. It mirrors the Global mutable state
// rearchitecture this package's design notes call for: an explicit
// Allocator value owned by the caller, with a process-wide convenience
// instance sitting on top of it.
var (
	defaultMu   sync.Mutex
	defaultHeap *Allocator
)

// Init creates and installs the process-wide default allocator. Calling
// it twice without an intervening Cleanup returns ErrAlreadyInitialized.
func Init(opts ...Option) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultHeap != nil {
		return ErrAlreadyInitialized
	}

	a, err := New(opts...)
	if err != nil {
		return err
	}

	defaultHeap = a

	return nil
}

// Cleanup tears down the process-wide default allocator. It is a no-op
// if Init was never called or Cleanup already ran.
func Cleanup() error {
	defaultMu.Lock()
	a := defaultHeap
	defaultHeap = nil
	defaultMu.Unlock()

	if a == nil {
		return nil
	}

	return a.Close()
}

func current() *Allocator {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultHeap
}

// Alloc delegates to the process-wide default allocator.
func Alloc(size uintptr) unsafe.Pointer {
	a := current()
	if a == nil {
		return nil
	}
	return a.Alloc(size)
}

// Free delegates to the process-wide default allocator.
func Free(p unsafe.Pointer) {
	a := current()
	if a == nil {
		return
	}
	a.Free(p)
}

// Realloc delegates to the process-wide default allocator.
func Realloc(p unsafe.Pointer, size uintptr) unsafe.Pointer {
	a := current()
	if a == nil {
		return nil
	}
	return a.Realloc(p, size)
}

// AllocAligned delegates to the process-wide default allocator.
func AllocAligned(size, alignment uintptr) unsafe.Pointer {
	a := current()
	if a == nil {
		return nil
	}
	return a.AllocAligned(size, alignment)
}

// Calloc delegates to the process-wide default allocator.
func Calloc(n, size uintptr) unsafe.Pointer {
	a := current()
	if a == nil {
		return nil
	}
	return a.Calloc(n, size)
}

// Protect delegates to the process-wide default allocator.
func Protect(p unsafe.Pointer, size uintptr, prot Protection) bool {
	a := current()
	if a == nil {
		return false
	}
	return a.Protect(p, size, prot)
}

// StatsSnapshot delegates to the process-wide default allocator.
func StatsSnapshot() Stats {
	a := current()
	if a == nil {
		return Stats{}
	}
	return a.Stats()
}
