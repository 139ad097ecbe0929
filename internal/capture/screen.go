package capture

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// ScreenshotBackend captures displays through the cross-platform screenshot
// library. Display 0 is treated as primary, matching the library's
// enumeration order.
type ScreenshotBackend struct{}

// Monitors lists the active displays.
func (ScreenshotBackend) Monitors() ([]Monitor, error) {
	n := screenshot.NumActiveDisplays()
	monitors := make([]Monitor, 0, n)
	for i := 0; i < n; i++ {
		monitors = append(monitors, Monitor{
			Index:   i,
			Bounds:  screenshot.GetDisplayBounds(i),
			Primary: i == 0,
			Scale:   1.0,
		})
	}
	return monitors, nil
}

// Capture grabs the pixels of the display at index.
func (ScreenshotBackend) Capture(index int) (*image.RGBA, error) {
	if index < 0 || index >= screenshot.NumActiveDisplays() {
		return nil, fmt.Errorf("display index %d out of range", index)
	}
	return screenshot.CaptureDisplay(index)
}
