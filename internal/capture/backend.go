// Package capture grabs bitmaps from monitors and windows and turns them
// into capture results: full screen, single display, single window, or a
// clamped region crop.
package capture

import "image"

// Monitor describes one attached display as reported by the screen backend.
type Monitor struct {
	// Index is the backend enumeration position, stable within one call.
	Index int
	// Bounds is the display rectangle in virtual-desktop coordinates.
	Bounds image.Rectangle
	// Primary marks the main display.
	Primary bool
	// Scale is the display scale factor, 1.0 when the backend does not
	// report one.
	Scale float64
}

// Window describes one capturable top-level window.
type Window struct {
	ID     string
	Title  string
	Bounds image.Rectangle
}

// ScreenBackend enumerates displays and grabs their pixels.
type ScreenBackend interface {
	Monitors() ([]Monitor, error)
	Capture(index int) (*image.RGBA, error)
}

// WindowBackend enumerates top-level windows and grabs their pixels.
type WindowBackend interface {
	Windows() ([]Window, error)
	Capture(id string) (*image.RGBA, error)
}
