package native

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pgv-inc/pitaeeg-go/internal/dl"
	"github.com/pgv-inc/pitaeeg-go/sdk/contracts"
)

const libraryBase = "pitaeegsensor"

// libraryNames returns the library file names for the given OS, release
// build first and the vendor's 'd'-suffixed debug build second.
func libraryNames(goos string) []string {
	switch goos {
	case "windows":
		return []string{libraryBase + ".dll", libraryBase + "d.dll"}
	case "darwin":
		return []string{"lib" + libraryBase + ".dylib", "lib" + libraryBase + "d.dylib"}
	default:
		return []string{"lib" + libraryBase + ".so", "lib" + libraryBase + "d.so"}
	}
}

// debugVariant returns the 'd'-suffixed sibling of a library file path, or
// "" when the path has no extension or already names a debug build.
func debugVariant(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	stem := strings.TrimSuffix(path, ext)
	if strings.HasSuffix(stem, "d") {
		return ""
	}
	return stem + "d" + ext
}

// machineName maps GOARCH to the directory names used in the vendor's
// library bundle.
func machineName(goarch string) string {
	if goarch == "amd64" {
		return "x86_64"
	}
	return goarch
}

// candidatePaths builds the ordered list of library paths to try. An
// explicit path wins: a directory is searched for the platform names, a
// file is tried as given plus its debug sibling. Otherwise the vendor
// bundle layout (libs/<platform>) is searched relative to the executable,
// then the executable directory and the working directory.
func candidatePaths(explicit, exeDir, workDir, goos, goarch string) []string {
	names := libraryNames(goos)

	var cand []string
	if explicit != "" {
		if st, err := os.Stat(explicit); err == nil && st.IsDir() {
			for _, n := range names {
				cand = append(cand, filepath.Join(explicit, n))
			}
			return cand
		}
		cand = append(cand, explicit)
		if d := debugVariant(explicit); d != "" {
			cand = append(cand, d)
		}
		return cand
	}

	var platformDirs []string
	switch goos {
	case "darwin":
		platformDirs = []string{
			filepath.Join("libs", "macos", machineName(goarch)),
			filepath.Join("libs", "macos"),
		}
	case "windows":
		platformDirs = []string{filepath.Join("libs", "windows")}
	default:
		platformDirs = []string{filepath.Join("libs", "linux")}
	}

	for _, dir := range platformDirs {
		for _, n := range names {
			cand = append(cand, filepath.Join(exeDir, dir, n))
		}
	}
	for _, n := range names {
		cand = append(cand, filepath.Join(exeDir, n))
	}
	for _, n := range names {
		cand = append(cand, filepath.Join(workDir, n))
	}
	return cand
}

// Load locates the vendor library, loads it and registers its exported
// functions. explicitPath may name the library file, a directory
// containing it, or be empty to use the default search locations.
func Load(explicitPath string) (API, error) {
	exeDir := ""
	if exe, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exe)
	}
	workDir, _ := os.Getwd()

	cand := candidatePaths(explicitPath, exeDir, workDir, runtime.GOOS, runtime.GOARCH)

	var lastErr error
	for _, c := range cand {
		st, err := os.Stat(c)
		if err != nil || st.IsDir() {
			continue
		}
		handle, err := dl.Open(c)
		if err != nil {
			lastErr = err
			continue
		}
		api, err := register(handle)
		if err != nil {
			lastErr = err
			continue
		}
		return api, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: tried %v: %v", contracts.ErrLibraryNotFound, cand, lastErr)
	}
	return nil, fmt.Errorf("%w: tried %v", contracts.ErrLibraryNotFound, cand)
}
