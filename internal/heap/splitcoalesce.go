package heap

// split carves the tail off b when the surplus over requestedTotal is at
// least minBlockSize, linking the tail immediately after b in the
// address-order chain and at the head of the free list. Otherwise the
// surplus is left as internal slack and b is untouched. Callers must
// hold a.mu.
func (a *Allocator) split(b *blockHeader, requestedTotal uintptr) {
	surplus := b.size - requestedTotal
	if surplus < minBlockSize {
		return
	}

	tail := blockAt(b.base() + requestedTotal)
	tail.size = surplus
	tail.free = true
	tail.protection = 0
	tail.ext = b.ext

	tail.addrNext = b.addrNext
	tail.addrPrev = b
	if b.addrNext != nil {
		b.addrNext.addrPrev = tail
	}
	b.addrNext = tail

	b.size = requestedTotal

	listInsertHead(&a.freeHead, tail)
	a.stats.freeMemory += tail.size
}

// coalesce absorbs b's memory-adjacent free neighbors, walking the
// address-order chain rather than free-list link order so that only
// genuinely adjacent blocks merge. It returns the block the merge
// settled on (b itself, or its predecessor if a backward merge
// occurred). Callers must hold a.mu.
func (a *Allocator) coalesce(b *blockHeader) *blockHeader {
	if nxt := b.addrNext; nxt != nil && nxt.free && nxt.ext == b.ext {
		listUnlink(&a.freeHead, nxt)
		b.size += nxt.size
		b.addrNext = nxt.addrNext
		if nxt.addrNext != nil {
			nxt.addrNext.addrPrev = b
		}
	}

	if prv := b.addrPrev; prv != nil && prv.free && prv.ext == b.ext {
		listUnlink(&a.freeHead, b)
		prv.size += b.size
		prv.addrNext = b.addrNext
		if b.addrNext != nil {
			b.addrNext.addrPrev = prv
		}
		b = prv
	}

	return b
}
