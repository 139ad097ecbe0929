// Package model defines core data structures for Grab.
package model

// CaptureMode identifies how a capture was framed.
type CaptureMode string

const (
	// ModeFullScreen captures the primary monitor edge to edge.
	ModeFullScreen CaptureMode = "full-screen"
	// ModeDisplay captures one specific monitor by id.
	ModeDisplay CaptureMode = "display"
	// ModeWindow captures a single application window.
	ModeWindow CaptureMode = "window"
	// ModeRegion captures a cropped rectangle of a monitor.
	ModeRegion CaptureMode = "region"
)

// FileToken returns the lowercase token substituted for {mode} in naming
// templates.
func (m CaptureMode) FileToken() string {
	switch m {
	case ModeFullScreen:
		return "fullscreen"
	case ModeDisplay:
		return "display"
	case ModeWindow:
		return "window"
	case ModeRegion:
		return "region"
	default:
		return string(m)
	}
}

// SourceKind distinguishes monitor sources from window sources.
type SourceKind string

const (
	// SourceMonitor is a physical display.
	SourceMonitor SourceKind = "monitor"
	// SourceWindow is a top-level application window.
	SourceWindow SourceKind = "window"
)

// CaptureSource is one enumerated capture target. Sources are recomputed on
// every enumeration call and never persisted.
type CaptureSource struct {
	// ID uniquely identifies the source within one enumeration.
	ID string `json:"id"`
	// Name is the human-readable label shown in pickers.
	Name string `json:"name"`
	// Kind reports whether this is a monitor or a window.
	Kind SourceKind `json:"kind"`
	// Thumbnail optionally holds a preview data URL for pickers.
	Thumbnail string `json:"thumbnail,omitempty"`
	// DisplayID is the owning monitor id, set for monitor sources.
	DisplayID string `json:"displayId,omitempty"`
}

// RegionBounds is a rectangle in source pixel coordinates. It may extend
// outside the source and must be clamped before use.
type RegionBounds struct {
	X      int  `json:"x"`
	Y      int  `json:"y"`
	Width  uint `json:"width"`
	Height uint `json:"height"`
}

// Empty reports whether the region has no area.
func (r RegionBounds) Empty() bool {
	return r.Width == 0 || r.Height == 0
}
