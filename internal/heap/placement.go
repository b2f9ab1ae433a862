package heap

// place searches the free list for a block able to satisfy total bytes
// (header + payload), according to the allocator's configured strategy.
// It returns nil when no free block qualifies; the caller is then
// responsible for extending the heap.
func (a *Allocator) place(total uintptr) *blockHeader {
	switch a.config.Strategy {
	case BestFit:
		return firstFitOrBest(a.freeHead, total, true)
	case WorstFit:
		return worstFit(a.freeHead, total)
	default: // FirstFit, and any unrecognized strategy falls back to it
		return firstFitOrBest(a.freeHead, total, false)
	}
}

// firstFitOrBest implements both first-fit (best=false) and best-fit
// (best=true) in a single scan; first-fit returns as soon as a qualifying
// block is found, best-fit keeps scanning for the smallest non-negative
// surplus, ties broken by earlier link order.
func firstFitOrBest(head *blockHeader, total uintptr, best bool) *blockHeader {
	var chosen *blockHeader
	var chosenSurplus uintptr

	for b := head; b != nil; b = b.listNext {
		if b.size < total {
			continue
		}
		if !best {
			return b
		}
		surplus := b.size - total
		if chosen == nil || surplus < chosenSurplus {
			chosen = b
			chosenSurplus = surplus
		}
	}

	return chosen
}

// worstFit returns the free block with the largest surplus, ties broken
// by earlier link order.
func worstFit(head *blockHeader, total uintptr) *blockHeader {
	var chosen *blockHeader
	var chosenSurplus uintptr

	for b := head; b != nil; b = b.listNext {
		if b.size < total {
			continue
		}
		surplus := b.size - total
		if chosen == nil || surplus > chosenSurplus {
			chosen = b
			chosenSurplus = surplus
		}
	}

	return chosen
}
