package heap

import "unsafe"

// Strategy selects the placement policy the allocator uses when searching
// the free list for a block able to satisfy a request.
type Strategy int

const (
	// FirstFit returns the first free block, in free-list link order,
	// whose size satisfies the request. It is also the fallback for any
	// Strategy value this package does not recognize.
	FirstFit Strategy = iota
	// BestFit scans the entire free list and returns the block with the
	// smallest non-negative surplus, ties broken by earlier link order.
	BestFit
	// WorstFit scans the entire free list and returns the block with the
	// largest surplus, ties broken by earlier link order.
	WorstFit
)

// Protection is a bitfield describing the page permissions of a block.
type Protection uint32

const (
	ProtRead Protection = 1 << iota
	ProtWrite
	ProtExec
)

// Observer receives notification of allocator lifecycle events. It is the
// only way this package ever reports activity other than return values;
// nothing in the heap package writes to stdout or to a logger directly.
type Observer interface {
	// OnAlloc fires after a successful Alloc/Calloc/AllocAligned.
	OnAlloc(p unsafe.Pointer, size uintptr)
	// OnFree fires after a successful Free.
	OnFree(p unsafe.Pointer)
	// OnExtend fires after the heap grows past oldTotal to newTotal bytes.
	OnExtend(oldTotal, newTotal uintptr)
}

// Config holds the options recognized at allocator initialization.
type Config struct {
	// InitialHeapSize is the number of bytes to map at Init, rounded up
	// to a PageSize multiple.
	InitialHeapSize uintptr

	// PageSize overrides the platform-reported system page size. Zero
	// selects the platform default.
	PageSize uintptr

	// Strategy selects the placement policy (see Strategy).
	Strategy Strategy

	// UseGuardPages is reserved for a future guard-page mode; this
	// package does not currently act on it.
	UseGuardPages bool

	// Observer, if non-nil, is notified of allocation, free, and heap
	// extension events.
	Observer Observer
}

// Option mutates a Config during New or Init.
type Option func(*Config)

func defaultConfig() *Config {
	return &Config{
		InitialHeapSize: 1 << 20, // 1 MiB
		PageSize:        0,
		Strategy:        FirstFit,
		UseGuardPages:   false,
	}
}

// WithInitialHeapSize sets the number of bytes mapped at Init.
func WithInitialHeapSize(size uintptr) Option {
	return func(c *Config) { c.InitialHeapSize = size }
}

// WithPageSize overrides the system page size. Zero restores the
// platform default.
func WithPageSize(size uintptr) Option {
	return func(c *Config) { c.PageSize = size }
}

// WithStrategy selects the placement policy.
func WithStrategy(s Strategy) Option {
	return func(c *Config) { c.Strategy = s }
}

// WithGuardPages reserves (but does not yet enforce) a guard-page mode.
func WithGuardPages(enabled bool) Option {
	return func(c *Config) { c.UseGuardPages = enabled }
}

// WithObserver attaches an Observer notified of allocation, free, and heap
// extension events. A nil Observer (the default) disables notification.
func WithObserver(o Observer) Option {
	return func(c *Config) { c.Observer = o }
}
