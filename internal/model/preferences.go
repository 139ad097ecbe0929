package model

import (
	"os"
	"path/filepath"
	"runtime"
)

// ShortcutBindings holds the accelerator strings for the three global
// capture shortcuts.
type ShortcutBindings struct {
	FullScreen string `json:"fullScreen"`
	Region     string `json:"region"`
	Window     string `json:"window"`
}

// Preferences is the single source of truth for capture-time behavior.
// Exactly one instance exists per running application; it is owned by the
// preferences store and replaced wholesale on every update.
type Preferences struct {
	// OutputFolder is where captures are written. Empty means the default
	// fallback folder.
	OutputFolder string `json:"outputFolder"`
	// CopyToClipboard places every capture on the system clipboard.
	CopyToClipboard bool `json:"copyToClipboard"`
	// SaveToDisk writes every capture into OutputFolder.
	SaveToDisk bool `json:"saveToDisk"`
	// DefaultMode is the capture mode used when none is requested.
	DefaultMode CaptureMode `json:"defaultMode"`
	// NamingTemplate expands into the file name, see GenerateFilename.
	NamingTemplate string `json:"namingTemplate"`
	// Shortcuts are the global accelerator bindings.
	Shortcuts ShortcutBindings `json:"shortcuts"`
	// OpenEditorAfterCapture raises the editor window once a capture lands.
	OpenEditorAfterCapture bool `json:"openEditorAfterCapture"`
	// HideEditorDuringCapture hides the editor while the frame is grabbed.
	HideEditorDuringCapture bool `json:"hideEditorDuringCapture"`
	// ShowNotifications posts a desktop notification per capture. Treated
	// as true when absent from older preference files.
	ShowNotifications bool `json:"showNotifications"`
}

// DefaultPreferences returns preferences with sensible defaults and the
// output folder resolved through the platform fallback chain.
func DefaultPreferences() *Preferences {
	return &Preferences{
		OutputFolder:    DefaultOutputFolder(),
		CopyToClipboard: true,
		SaveToDisk:      true,
		DefaultMode:     ModeFullScreen,
		NamingTemplate:  "grab-{date}-{time}-{mode}",
		Shortcuts: ShortcutBindings{
			FullScreen: "CommandOrControl+Shift+1",
			Region:     "CommandOrControl+Shift+2",
			Window:     "CommandOrControl+Shift+3",
		},
		ShowNotifications: true,
	}
}

// DefaultOutputFolder resolves the capture folder: the platform pictures
// directory, then the home directory, each joined with "Grab Captures",
// then a relative fallback when no home is known.
func DefaultOutputFolder() string {
	if base := picturesDir(); base != "" {
		return filepath.Join(base, "Grab Captures")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, "Grab Captures")
	}
	return "./captures"
}

// picturesDir returns the platform pictures directory, or "" when it cannot
// be determined.
func picturesDir() string {
	if runtime.GOOS == "linux" {
		if dir := os.Getenv("XDG_PICTURES_DIR"); dir != "" {
			return dir
		}
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	pictures := filepath.Join(home, "Pictures")
	if info, err := os.Stat(pictures); err == nil && info.IsDir() {
		return pictures
	}
	return ""
}
