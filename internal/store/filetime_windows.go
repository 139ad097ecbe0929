//go:build windows
// +build windows

package store

import (
	"os"
	"syscall"
	"time"
)

// creationTime returns the file creation time from the Win32 attribute
// data, or the zero time when unavailable.
func creationTime(_ string, info os.FileInfo) time.Time {
	st, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return time.Time{}
	}
	return time.Unix(0, st.CreationTime.Nanoseconds())
}
