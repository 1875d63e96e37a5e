//go:build darwin || linux
// +build darwin linux

// Package dl opens shared libraries for the runtime bindings.
package dl

import "github.com/ebitengine/purego"

// Open loads a shared library with dlopen semantics. A bare file name is
// resolved through the system loader's default search path.
func Open(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}
