package model

import "time"

// CaptureMetadata describes one completed capture. It is produced by the
// engine and amended with the generated file name after a disk save.
type CaptureMetadata struct {
	Mode        CaptureMode  `json:"mode"`
	DisplayID   string       `json:"displayId,omitempty"`
	WindowID    string       `json:"windowId,omitempty"`
	Bounds      RegionBounds `json:"bounds"`
	Timestamp   string       `json:"timestamp"`
	ScaleFactor float64      `json:"scaleFactor"`
	FileName    string       `json:"fileName,omitempty"`
}

// NewCaptureMetadata stamps metadata for a capture happening now.
func NewCaptureMetadata(mode CaptureMode, bounds RegionBounds, scale float64) CaptureMetadata {
	return CaptureMetadata{
		Mode:        mode,
		Bounds:      bounds,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		ScaleFactor: scale,
	}
}

// CaptureResult is the externally visible outcome of one capture.
type CaptureResult struct {
	// FilePath is set iff the capture was saved to disk.
	FilePath string `json:"filePath,omitempty"`
	// Metadata carries the capture details, with FileName filled in after
	// a successful save.
	Metadata CaptureMetadata `json:"metadata"`
	// CopiedToClipboard reports whether the bitmap reached the clipboard.
	CopiedToClipboard bool `json:"copiedToClipboard"`
}

// HistoryItem records one capture file tracked across sessions.
type HistoryItem struct {
	// ID is unique per item. Scan-derived ids combine the file creation
	// instant with a randomized suffix so files sharing a creation time do
	// not collide.
	ID string `json:"id"`
	// FilePath is the absolute path of the capture on disk.
	FilePath string `json:"filePath"`
	// Timestamp is the capture instant in RFC 3339.
	Timestamp string `json:"timestamp"`
	// Thumbnail optionally holds a preview data URL for the UI.
	Thumbnail string `json:"thumbnail,omitempty"`
}
