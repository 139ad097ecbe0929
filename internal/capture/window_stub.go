//go:build !windows
// +build !windows

package capture

import (
	"fmt"
	"image"
)

// StubWindowBackend stands in where no native window enumeration is
// available. It reports zero windows, so window captures fail at lookup.
type StubWindowBackend struct{}

// NewWindowBackend returns the platform window backend.
func NewWindowBackend() WindowBackend { return StubWindowBackend{} }

// Windows reports no capturable windows.
func (StubWindowBackend) Windows() ([]Window, error) { return nil, nil }

// Capture always fails; there are no windows to look up.
func (StubWindowBackend) Capture(id string) (*image.RGBA, error) {
	return nil, fmt.Errorf("window %s not found", id)
}
