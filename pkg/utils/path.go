// Package utils provides small path helpers shared by the Grab CLI.
package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}

// ExpandPath expands ~ and normalizes the path.
func ExpandPath(path string) string {
	expanded := expandHome(path)
	return filepath.Clean(expanded)
}

// DisplayPath abbreviates the user's home directory to ~ for terminal
// output. Paths outside the home directory come back unchanged.
func DisplayPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	sep := string(filepath.Separator)
	if strings.HasPrefix(path, home+sep) {
		return "~" + strings.TrimPrefix(path, home)
	}
	return path
}

// IsDir reports whether path names an existing directory.
func IsDir(path string) bool {
	info, err := os.Stat(ExpandPath(path))
	if err != nil {
		return false
	}
	return info.IsDir()
}
