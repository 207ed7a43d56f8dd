//go:build darwin || dragonfly || freebsd || linux || openbsd || solaris || netbsd
// +build darwin dragonfly freebsd linux openbsd solaris netbsd

package libdl

import (
	"unsafe"

	"github.com/pkg/errors"
)

/*
#cgo linux CFLAGS: -D_GNU_SOURCE
#cgo linux LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdlib.h>
#include <stdint.h>

static uintptr_t openLib(const char* name, char** err) {
	dlerror();
	void* h = dlopen(name, RTLD_NOW|RTLD_GLOBAL);
	if (h == NULL) {
		*err = (char*)dlerror();
	}
	return (uintptr_t)h;
}

static void* lookup(uintptr_t h, const char* name, char** err) {
	dlerror();
	void* r = dlsym((void*)h, name);
	if (r == NULL) {
		*err = (char*)dlerror();
	}
	return r;
}

static void* lookupNext(const char* name, char** err) {
	dlerror();
	void* r = dlsym(RTLD_NEXT, name);
	if (r == NULL) {
		*err = (char*)dlerror();
	}
	return r;
}
*/
import "C"

// Open loads libName with RTLD_NOW|RTLD_GLOBAL and returns the handle. An
// empty libName opens the main program's global scope.
func Open(libName string) (uintptr, error) {
	cName := C.CString(libName)
	defer C.free(unsafe.Pointer(cName))
	var cErr *C.char
	if libName == `` {
		cName = nil
	}
	h := C.openLib(cName, &cErr)
	if h == 0 {
		return uintptr(0), errors.Errorf("dlopen %s: %s", libName, C.GoString(cErr))
	}
	return uintptr(h), nil
}

// LookupSymbol returns the address of symName inside the library behind
// handle.
func LookupSymbol(handle uintptr, symName string) (uintptr, error) {
	cName := C.CString(symName)
	defer C.free(unsafe.Pointer(cName))
	var cErr *C.char
	addr := C.lookup(C.uintptr_t(handle), cName, &cErr)
	if addr == nil {
		return 0, errors.Errorf("failed to lookup symbol %s: %s", symName, C.GoString(cErr))
	}
	return uintptr(addr), nil
}

// LookupNext returns the address of the next definition of symName after
// the calling module in the dynamic linker's search order (RTLD_NEXT).
// Only meaningful where the link editor skips the calling module; dyld
// self-matches here, use an explicit library instead.
func LookupNext(symName string) (uintptr, error) {
	cName := C.CString(symName)
	defer C.free(unsafe.Pointer(cName))
	var cErr *C.char
	addr := C.lookupNext(cName, &cErr)
	if addr == nil {
		return 0, errors.Errorf("failed to lookup next %s: %s", symName, C.GoString(cErr))
	}
	return uintptr(addr), nil
}
