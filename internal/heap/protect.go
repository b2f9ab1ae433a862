package heap

import (
	"fmt"
	"unsafe"
)

// Protect changes the page protection covering [p, p+size) to prot. p
// must be a pointer this allocator currently has on its used list; the
// covered page range may extend into pages shared with neighboring
// blocks, and callers assume that risk, exactly as the design this
// package follows warns.
func (a *Allocator) Protect(p unsafe.Pointer, size uintptr, prot Protection) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		a.lastErr = ErrNotInitialized
		return false
	}
	if p == nil {
		a.lastErr = ErrInvalidArgument
		return false
	}

	block := a.findUsed(p)
	if block == nil {
		a.lastErr = ErrUnknownPointer
		return false
	}

	addr := uintptr(p)
	end := addr + size
	base := addr &^ (a.pageSize - 1)
	length := alignUp(end-base, a.pageSize)

	region := block.ext.slice(base, length)
	if err := protectPages(region, prot); err != nil {
		a.lastErr = fmt.Errorf("%w: %v", ErrProtectionDenied, err)
		return false
	}

	block.protection = prot

	return true
}
