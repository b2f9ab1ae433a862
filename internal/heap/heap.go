package heap

import (
	"fmt"
	"sync"
	"unsafe"
)

// Allocator is a single heap manager: free/used bookkeeping, placement,
// splitting/coalescing, heap extension, and statistics, all serialized by
// one mutex. The zero value is not initialized; call Init or use New.
type Allocator struct {
	mu sync.Mutex

	initialized bool
	config      *Config
	pageSize    uintptr

	extents  []*extent
	freeHead *blockHeader
	usedHead *blockHeader

	stats statsAccumulator

	lastErr error
}

// New creates and initializes an Allocator in one step.
func New(opts ...Option) (*Allocator, error) {
	a := &Allocator{}
	if err := a.Init(opts...); err != nil {
		return nil, err
	}
	return a, nil
}

// Init maps the initial heap and prepares the allocator for use. It fails
// if the allocator is already initialized or if the operating system
// refuses the initial mapping; the Allocator's sync.Mutex needs no
// construction and cannot fail, so that failure mode from the reference
// design never fires here.
func (a *Allocator) Init(opts ...Option) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.initialized {
		a.lastErr = ErrAlreadyInitialized
		return ErrAlreadyInitialized
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	pageSize := cfg.PageSize
	if pageSize == 0 {
		pageSize = systemPageSize()
	}

	initSize := cfg.InitialHeapSize
	if initSize == 0 {
		initSize = pageSize
	}

	ext, block, err := newExtent(initSize, pageSize)
	if err != nil {
		a.lastErr = fmt.Errorf("%w: %v", ErrResourceExhausted, err)
		return a.lastErr
	}

	a.config = cfg
	a.pageSize = pageSize
	a.extents = []*extent{ext}
	a.freeHead = nil
	a.usedHead = nil
	a.stats = statsAccumulator{totalMemory: block.size, freeMemory: block.size}

	listInsertHead(&a.freeHead, block)

	a.initialized = true
	a.lastErr = nil

	return nil
}

// Close unmaps every extent this allocator owns and resets its state.
// Re-entry after a successful Close is a no-op.
func (a *Allocator) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		return nil
	}

	var firstErr error
	for _, ext := range a.extents {
		if err := ext.release(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	a.extents = nil
	a.freeHead = nil
	a.usedHead = nil
	a.stats = statsAccumulator{}
	a.initialized = false

	return firstErr
}

// extend grows the heap by at least total bytes, mapping a fresh extent
// that is not assumed contiguous with any prior one. Callers must hold
// a.mu.
func (a *Allocator) extend(total uintptr) (*blockHeader, error) {
	ext, block, err := newExtent(total, a.pageSize)
	if err != nil {
		a.lastErr = fmt.Errorf("%w: %v", ErrResourceExhausted, err)
		return nil, a.lastErr
	}

	oldTotal := a.stats.totalMemory
	a.extents = append(a.extents, ext)
	a.stats.totalMemory += block.size
	a.stats.freeMemory += block.size

	if obs := a.config.Observer; obs != nil {
		obs.OnExtend(oldTotal, a.stats.totalMemory)
	}

	return block, nil
}

// Alloc returns a pointer to size bytes of heap memory, or nil if size is
// zero or the heap cannot be extended to satisfy the request.
func (a *Allocator) Alloc(size uintptr) unsafe.Pointer {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocLocked(size)
}

// allocLocked performs the Placement -> extend-if-needed -> Split ->
// used-list -> statistics sequence. Callers must hold a.mu.
func (a *Allocator) allocLocked(size uintptr) unsafe.Pointer {
	if !a.initialized {
		a.lastErr = ErrNotInitialized
		return nil
	}
	if size == 0 {
		a.lastErr = ErrInvalidArgument
		return nil
	}

	total := alignUp(size, pointerSize) + headerSize
	if total < minBlockSize {
		total = minBlockSize
	}

	block := a.place(total)
	if block != nil {
		listUnlink(&a.freeHead, block)
	} else {
		nb, err := a.extend(total)
		if err != nil {
			return nil
		}
		block = nb
	}

	a.stats.freeMemory -= block.size
	a.split(block, total)

	block.free = false
	listInsertHead(&a.usedHead, block)

	a.stats.usedMemory += block.size
	a.stats.totalAllocations++
	a.stats.activeAllocations++
	if a.stats.usedMemory > a.stats.peakUsage {
		a.stats.peakUsage = a.stats.usedMemory
	}

	a.lastErr = nil

	p := block.payload()
	if obs := a.config.Observer; obs != nil {
		obs.OnAlloc(p, block.payloadSize())
	}

	return p
}

// Free releases a pointer previously returned by Alloc, Calloc, or
// AllocAligned. A pointer that is nil, already freed, or not owned by
// this allocator is silently ignored.
func (a *Allocator) Free(p unsafe.Pointer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.freeLocked(p)
}

func (a *Allocator) freeLocked(p unsafe.Pointer) {
	if !a.initialized {
		a.lastErr = ErrNotInitialized
		return
	}
	if p == nil {
		return
	}

	block := a.findUsed(p)
	if block == nil {
		block = a.recoverAligned(p)
		if block == nil {
			a.lastErr = ErrUnknownPointer
			return
		}
	}

	listUnlink(&a.usedHead, block)
	block.free = true
	listInsertHead(&a.freeHead, block)

	a.stats.freeMemory += block.size
	a.stats.usedMemory -= block.size
	a.stats.activeAllocations--

	a.coalesce(block)
	a.lastErr = nil

	if obs := a.config.Observer; obs != nil {
		obs.OnFree(block.payload())
	}
}

// findUsed validates membership by scanning the used list, rejecting any
// pointer this allocator did not itself hand out.
func (a *Allocator) findUsed(p unsafe.Pointer) *blockHeader {
	for b := a.usedHead; b != nil; b = b.listNext {
		if b.payload() == p {
			return b
		}
	}
	return nil
}

// Realloc resizes a block, preserving the first min(old, new) payload
// bytes. p == nil behaves as Alloc; size == 0 behaves as Free. When the
// block cannot grow in place (or by absorbing its memory-adjacent free
// successor) it falls back to a fresh allocation, copy, and free -- a
// path that must release the guard before re-entering Alloc/Free on this
// same allocator to avoid a self-deadlock on the non-recursive mutex.
func (a *Allocator) Realloc(p unsafe.Pointer, size uintptr) unsafe.Pointer {
	a.mu.Lock()

	if p == nil {
		defer a.mu.Unlock()
		return a.allocLocked(size)
	}

	if size == 0 {
		a.freeLocked(p)
		a.mu.Unlock()
		return nil
	}

	if !a.initialized {
		a.lastErr = ErrNotInitialized
		a.mu.Unlock()
		return nil
	}

	block := a.findUsed(p)
	if block == nil {
		a.lastErr = ErrUnknownPointer
		a.mu.Unlock()
		return nil
	}

	total := alignUp(size, pointerSize) + headerSize
	if total < minBlockSize {
		total = minBlockSize
	}

	if total <= block.size {
		a.stats.usedMemory -= block.size
		a.split(block, total)
		a.stats.usedMemory += block.size
		a.mu.Unlock()
		return p
	}

	if nxt := block.addrNext; nxt != nil && nxt.free && nxt.ext == block.ext && block.size+nxt.size >= total {
		listUnlink(&a.freeHead, nxt)
		a.stats.freeMemory -= nxt.size
		a.stats.usedMemory -= block.size

		block.size += nxt.size
		block.addrNext = nxt.addrNext
		if nxt.addrNext != nil {
			nxt.addrNext.addrPrev = block
		}

		a.split(block, total)
		a.stats.usedMemory += block.size
		if a.stats.usedMemory > a.stats.peakUsage {
			a.stats.peakUsage = a.stats.usedMemory
		}

		a.mu.Unlock()
		return p
	}

	oldPayloadSize := block.payloadSize()
	a.mu.Unlock()

	newPtr := a.Alloc(size)
	if newPtr == nil {
		return nil
	}

	copySize := oldPayloadSize
	if size < copySize {
		copySize = size
	}
	if copySize > 0 {
		src := unsafe.Slice((*byte)(p), copySize)
		dst := unsafe.Slice((*byte)(newPtr), copySize)
		copy(dst, src)
	}

	a.Free(p)

	return newPtr
}

// LastError reports the most recent internal failure recorded by any
// operation on this allocator; it never changes a contractual return
// value and exists purely for diagnostics.
func (a *Allocator) LastError() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}
