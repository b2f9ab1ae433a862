package heap

import "unsafe"

// extent is one OS mapping owned by the Heap Region Manager. Blocks never
// straddle extents, and two blocks may only be coalesced when they share
// one. Every extent the allocator ever acquires is tracked here so that
// Close unmaps all of them -- not just the first, which the reference
// implementation this package is modeled on is known to get wrong (see
// DESIGN.md).
type extent struct {
	data []byte // backing mapping; keeps it alive and lets Protect re-slice it
	base uintptr
	size uintptr
}

// newExtent maps at least nBytes, rounded up to a pageSize multiple, and
// returns the extent together with the single free block spanning it.
func newExtent(nBytes, pageSize uintptr) (*extent, *blockHeader, error) {
	mapped := alignUp(nBytes, pageSize)

	data, err := mapAnonymous(mapped)
	if err != nil {
		return nil, nil, err
	}

	ext := &extent{
		data: data,
		base: uintptr(unsafe.Pointer(&data[0])),
		size: mapped,
	}

	b := blockAt(ext.base)
	b.size = mapped
	b.free = true
	b.protection = ProtRead | ProtWrite
	b.listNext, b.listPrev = nil, nil
	b.addrNext, b.addrPrev = nil, nil
	b.ext = ext

	return ext, b, nil
}

// release unmaps the extent's memory.
func (e *extent) release() error {
	return unmapAnonymous(e.data)
}

// slice returns the portion of the extent's mapping covering
// [base, base+length).
func (e *extent) slice(base, length uintptr) []byte {
	off := base - e.base
	return e.data[off : off+length]
}
