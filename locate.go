package flash

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// LocatePlatformIO returns the path of the pio executable.
//
// Lookup order:
// - override, when non-empty (must exist)
// - "pio" on PATH
// - the PlatformIO virtualenv under the user's home directory
//
// Returns ErrPlatformIONotFound when none of these exist.
func LocatePlatformIO(override string) (string, error) {
	return locate(override, runtime.GOOS, exec.LookPath, os.UserHomeDir)
}

func locate(override, goos string, lookPath func(string) (string, error), home func() (string, error)) (string, error) {
	if override != "" {
		if fileExists(override) {
			return override, nil
		}
		return "", ErrPlatformIONotFound
	}

	if path, err := lookPath("pio"); err == nil {
		return path, nil
	}

	dir, err := home()
	if err != nil {
		return "", ErrPlatformIONotFound
	}
	path := penvPath(dir, goos)
	if !fileExists(path) {
		return "", ErrPlatformIONotFound
	}
	return path, nil
}

// penvPath is where the PlatformIO installer puts its own pio.
func penvPath(home, goos string) string {
	if goos == "windows" {
		return filepath.Join(home, ".platformio", "penv", "Scripts", "pio.exe")
	}
	return filepath.Join(home, ".platformio", "penv", "bin", "pio")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
