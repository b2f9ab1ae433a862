//go:build unix

package heap

import "golang.org/x/sys/unix"

// mapAnonymous acquires n bytes of anonymous, private, read+write memory
// from the operating system. n must already be a page-size multiple; the
// Heap Region Manager (newExtent, in extent.go) is responsible for rounding.
func mapAnonymous(n uintptr) ([]byte, error) {
	return unix.Mmap(-1, 0, int(n), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
}

// unmapAnonymous releases memory previously returned by mapAnonymous.
func unmapAnonymous(region []byte) error {
	return unix.Munmap(region)
}

// protectPages changes the protection of a page-aligned, page-length
// sub-slice of a mapped extent.
func protectPages(region []byte, prot Protection) error {
	return unix.Mprotect(region, prot.toUnixProt())
}

// systemPageSize returns the platform-reported page size.
func systemPageSize() uintptr {
	return uintptr(unix.Getpagesize())
}

// toUnixProt converts the internal {READ,WRITE,EXEC} bitfield into the
// golang.org/x/sys/unix PROT_* vocabulary.
func (p Protection) toUnixProt() int {
	prot := unix.PROT_NONE
	if p&ProtRead != 0 {
		prot |= unix.PROT_READ
	}
	if p&ProtWrite != 0 {
		prot |= unix.PROT_WRITE
	}
	if p&ProtExec != 0 {
		prot |= unix.PROT_EXEC
	}
	return prot
}
