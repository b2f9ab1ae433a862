//go:build !unix

package heap

import "errors"

// errUnsupportedPlatform is returned by every mapping primitive on
// platforms outside the golang.org/x/sys/unix family (e.g. Windows,
// wasm). The Heap Region Manager surfaces it as ErrResourceExhausted.
var errUnsupportedPlatform = errors.New("heap: anonymous memory mapping is not implemented on this platform")

func mapAnonymous(n uintptr) ([]byte, error) {
	return nil, errUnsupportedPlatform
}

func unmapAnonymous(region []byte) error {
	return errUnsupportedPlatform
}

func protectPages(region []byte, prot Protection) error {
	return errUnsupportedPlatform
}

func systemPageSize() uintptr {
	return 4096
}

func (p Protection) toUnixProt() int {
	return 0
}
