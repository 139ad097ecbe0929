//go:build linux
// +build linux

package store

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// creationTime returns the file birth time via statx, or the zero time when
// the filesystem does not record one.
func creationTime(path string, _ os.FileInfo) time.Time {
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME, &stx); err != nil {
		return time.Time{}
	}
	if stx.Mask&unix.STATX_BTIME == 0 || stx.Btime.Sec == 0 {
		return time.Time{}
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
}
