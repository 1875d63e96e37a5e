//go:build windows
// +build windows

// Package dl opens shared libraries for the runtime bindings.
package dl

import "golang.org/x/sys/windows"

// Open loads a DLL. The altered search path makes dependent DLLs resolve
// from the library's own directory, matching how the vendor ships its
// receiver drivers next to the main DLL.
func Open(path string) (uintptr, error) {
	handle, err := windows.LoadLibraryEx(path, 0, windows.LOAD_WITH_ALTERED_SEARCH_PATH)
	if err != nil {
		return 0, err
	}
	return uintptr(handle), nil
}
