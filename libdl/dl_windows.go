//go:build windows
// +build windows

package libdl

import (
	"syscall"
	"unsafe"

	"github.com/pkg/errors"
)

// Open loads dllName and returns its module handle.
func Open(dllName string) (uintptr, error) {
	dll, err := syscall.LoadDLL(dllName)
	if err != nil {
		return 0, errors.Wrapf(err, "could not open %s", dllName)
	}
	return uintptr(unsafe.Pointer(dll)), nil
}

// LookupSymbol returns the address of symName inside the module behind
// handle.
func LookupSymbol(handle uintptr, symName string) (uintptr, error) {
	dll := (*syscall.DLL)(unsafe.Pointer(handle))
	proc, err := dll.FindProc(symName)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to lookup symbol %s", symName)
	}
	return proc.Addr(), nil
}
