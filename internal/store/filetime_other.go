//go:build !linux && !darwin && !windows
// +build !linux,!darwin,!windows

package store

import (
	"os"
	"time"
)

// creationTime is unavailable on this platform; callers fall back to the
// modification time.
func creationTime(_ string, _ os.FileInfo) time.Time {
	return time.Time{}
}
