//go:build darwin
// +build darwin

package store

import (
	"os"
	"syscall"
	"time"
)

// creationTime returns the file birth time from the stat result, or the
// zero time when unavailable.
func creationTime(_ string, info os.FileInfo) time.Time {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}
	}
	return time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
}
