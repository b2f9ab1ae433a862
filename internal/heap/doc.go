// Package heap implements a process-local dynamic memory allocator that
// carves its storage directly out of anonymous virtual memory mappings.
//
// Callers request variable-sized byte regions through Alloc, AllocAligned
// or Calloc and release them through Free. The allocator reuses freed
// space, coalesces memory-adjacent free blocks, grows the heap by mapping
// additional extents on demand, and reports usage statistics and
// fragmentation through Stats.
//
// A single Allocator value owns its own heap; the package-level functions
// (Init, Alloc, Free, ...) delegate to a convenience process-wide
// instance.
package heap
