package heap

import "errors"

// Sentinel errors backing the allocator's internal error taxonomy. Public
// operations never return these directly -- per the allocator's contract
// they return a zero value, nil pointer, or false on failure -- but they
// are recorded on the Allocator for LastError and are wrapped with %w when
// surfaced from Init, the internal extend helper, or Protect.
var (
	// ErrAlreadyInitialized is recorded when New or Init is called on an
	// allocator that already completed Init.
	ErrAlreadyInitialized = errors.New("heap: allocator already initialized")

	// ErrNotInitialized is recorded when a public operation runs before
	// Init or after Close.
	ErrNotInitialized = errors.New("heap: allocator not initialized")

	// ErrInvalidArgument is recorded for zero-size allocations and
	// invalid (zero or non-power-of-two) alignments.
	ErrInvalidArgument = errors.New("heap: invalid argument")

	// ErrResourceExhausted is recorded when the operating system refuses
	// to extend the heap with a fresh mapping.
	ErrResourceExhausted = errors.New("heap: failed to acquire memory from the operating system")

	// ErrProtectionDenied is recorded when the operating system rejects
	// a page protection change.
	ErrProtectionDenied = errors.New("heap: operating system denied the protection change")

	// ErrUnknownPointer is recorded when Free, Realloc, or Protect is
	// given a pointer this allocator did not hand out (or one already
	// freed). Free silently ignores such a pointer per §7; Realloc and
	// Protect return nil/false.
	ErrUnknownPointer = errors.New("heap: pointer is not owned by this allocator")
)
