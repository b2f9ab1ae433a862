package heap

import "unsafe"

// blockHeader is the in-band metadata living at the base of every block;
// the client-visible payload begins exactly headerSize bytes after it.
//
// listNext/listPrev thread whichever of the free or used list the block
// currently occupies. addrNext/addrPrev thread the address-order chain of
// blocks carved from the same extent and exist solely to let the
// Splitter/Coalescer recognize memory adjacency; the two relations are
// kept disjoint on purpose (see the design notes on separating list
// membership from adjacency) so that moving a block between lists never
// disturbs its adjacency neighbors.
type blockHeader struct {
	size       uintptr
	free       bool
	protection Protection
	listNext   *blockHeader
	listPrev   *blockHeader
	addrNext   *blockHeader
	addrPrev   *blockHeader
	ext        *extent
}

const (
	headerSize  = unsafe.Sizeof(blockHeader{})
	pointerSize = unsafe.Sizeof(uintptr(0))
	// minPayload is the smallest payload a split tail may carry; splits
	// that would leave a smaller tail are skipped and the surplus is
	// left as internal slack.
	minPayload = 16
	// minBlockSize is the smallest total size (header + payload) any
	// live block may have.
	minBlockSize = headerSize + minPayload
)

func alignUp(x, a uintptr) uintptr {
	return (x + a - 1) &^ (a - 1)
}

// blockAt reinterprets the bytes at base as a blockHeader. base must be
// the address of a block previously carved by this package.
func blockAt(base uintptr) *blockHeader {
	return (*blockHeader)(unsafe.Pointer(base))
}

func (b *blockHeader) base() uintptr {
	return uintptr(unsafe.Pointer(b))
}

// payload returns the client-visible pointer for this block.
func (b *blockHeader) payload() unsafe.Pointer {
	return unsafe.Pointer(b.base() + headerSize)
}

// payloadSize returns the bytes available to the client, excluding the
// header.
func (b *blockHeader) payloadSize() uintptr {
	return b.size - headerSize
}

// listUnlink removes b from the list headed by *head. b must currently be
// a member of that list.
func listUnlink(head **blockHeader, b *blockHeader) {
	if b.listPrev != nil {
		b.listPrev.listNext = b.listNext
	} else {
		*head = b.listNext
	}
	if b.listNext != nil {
		b.listNext.listPrev = b.listPrev
	}
	b.listNext = nil
	b.listPrev = nil
}

// listInsertHead inserts b at the head of the list headed by *head.
func listInsertHead(head **blockHeader, b *blockHeader) {
	b.listPrev = nil
	b.listNext = *head
	if *head != nil {
		(*head).listPrev = b
	}
	*head = b
}
