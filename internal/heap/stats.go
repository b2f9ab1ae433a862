package heap

// statsAccumulator holds the mutable counters backing Stats. It is only
// ever touched while a.mu is held, so unlike several of the counters in
// this package's teacher it needs no atomics of its own.
type statsAccumulator struct {
	totalMemory       uintptr
	usedMemory        uintptr
	freeMemory        uintptr
	peakUsage         uintptr
	totalAllocations  uint64
	activeAllocations uint64
}

// Stats is a point-in-time snapshot of the allocator's usage counters.
type Stats struct {
	TotalMemory        uintptr
	UsedMemory         uintptr
	FreeMemory         uintptr
	Overhead           uintptr
	PeakUsage          uintptr
	TotalAllocations   uint64
	ActiveAllocations  uint64
	FragmentationRatio float64
}

// Stats returns a snapshot of the accumulator. It returns the zero value
// when the allocator is not initialized.
func (a *Allocator) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		return Stats{}
	}

	return Stats{
		TotalMemory:        a.stats.totalMemory,
		UsedMemory:         a.stats.usedMemory,
		FreeMemory:         a.stats.freeMemory,
		Overhead:           headerSize,
		PeakUsage:          a.stats.peakUsage,
		TotalAllocations:   a.stats.totalAllocations,
		ActiveAllocations:  a.stats.activeAllocations,
		FragmentationRatio: a.fragmentationRatio(),
	}
}

// fragmentationRatio is 1 - largest_free_block/free_memory, or 0 when
// there is no free memory at all (a single contiguous free region, or no
// free memory, both read as "not fragmented").
func (a *Allocator) fragmentationRatio() float64 {
	if a.stats.freeMemory == 0 {
		return 0
	}

	largest := a.largestFree()

	return 1 - float64(largest)/float64(a.stats.freeMemory)
}

func (a *Allocator) largestFree() uintptr {
	var largest uintptr
	for b := a.freeHead; b != nil; b = b.listNext {
		if b.size > largest {
			largest = b.size
		}
	}
	return largest
}
