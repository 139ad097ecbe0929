// Package command implements the application command surface. Every
// operation reachable from the HTTP bridge, the CLI, the tray menu, or a
// global shortcut funnels through one Service so all trigger surfaces share
// the same behavior.
package command

import (
	"image"
	"os"
	"strings"

	"github.com/akv004/grab/internal/capture"
	"github.com/akv004/grab/internal/event"
	"github.com/akv004/grab/internal/graberr"
	"github.com/akv004/grab/internal/logging"
	"github.com/akv004/grab/internal/model"
	"github.com/akv004/grab/internal/pipeline"
	"github.com/akv004/grab/internal/store"
	"github.com/akv004/grab/pkg/imgutil"
)

// Clipboard places decoded images on the system clipboard.
type Clipboard interface {
	WriteImage(img image.Image) error
}

// Dialogs drives the OS file pickers. Implementations block until the user
// responds; a dismissed dialog reports ok=false with no error.
type Dialogs interface {
	PickFolder(title string) (path string, ok bool, err error)
	SaveFile(title, defaultName string, exts []string) (path string, ok bool, err error)
}

// Opener hands a path to the OS default handler.
type Opener interface {
	Open(path string) error
}

// Deps bundles everything a Service needs. All fields are required.
type Deps struct {
	Engine    *capture.Engine
	Processor *pipeline.Processor
	Prefs     *store.PreferencesStore
	History   *store.HistoryStore
	Clipboard Clipboard
	Dialogs   Dialogs
	Opener    Opener
	Bus       *event.Bus
	Log       *logging.Logger
}

// Service executes commands against the capture engine, the stores, and the
// OS integrations.
type Service struct {
	engine    *capture.Engine
	processor *pipeline.Processor
	prefs     *store.PreferencesStore
	history   *store.HistoryStore
	clipboard Clipboard
	dialogs   Dialogs
	opener    Opener
	bus       *event.Bus
	log       *logging.Logger

	// onPrefsChange is invoked after preferences are persisted, so the
	// shortcut listener can rebind. Set during wiring, before serving.
	onPrefsChange func(model.Preferences)
}

// NewService wires a Service from its dependencies.
func NewService(d Deps) *Service {
	return &Service{
		engine:    d.Engine,
		processor: d.Processor,
		prefs:     d.Prefs,
		history:   d.History,
		clipboard: d.Clipboard,
		dialogs:   d.Dialogs,
		opener:    d.Opener,
		bus:       d.Bus,
		log:       d.Log,
	}
}

// OnPreferencesChanged registers a callback fired after every successful
// SetPreferences. Must be called before the service starts handling
// commands.
func (s *Service) OnPreferencesChanged(fn func(model.Preferences)) {
	s.onPrefsChange = fn
}

// CaptureFullScreen grabs an entire display and runs the capture pipeline.
// An empty displayID means the primary display.
func (s *Service) CaptureFullScreen(displayID string) (*model.CaptureResult, error) {
	var (
		img  *image.RGBA
		meta model.CaptureMetadata
		err  error
	)
	if displayID != "" {
		img, meta, err = s.engine.CaptureDisplay(displayID)
	} else {
		img, meta, err = s.engine.CaptureFullScreen()
	}
	if err != nil {
		return nil, err
	}
	return s.processor.Process(img, meta, s.prefs.Get())
}

// CaptureRegion grabs a cropped rectangle and runs the capture pipeline. An
// empty displayID means the primary display.
func (s *Service) CaptureRegion(region model.RegionBounds, displayID string) (*model.CaptureResult, error) {
	img, meta, err := s.engine.CaptureRegion(region, displayID)
	if err != nil {
		return nil, err
	}
	return s.processor.Process(img, meta, s.prefs.Get())
}

// CaptureWindow grabs a single window and runs the capture pipeline.
func (s *Service) CaptureWindow(windowID string) (*model.CaptureResult, error) {
	img, meta, err := s.engine.CaptureWindow(windowID)
	if err != nil {
		return nil, err
	}
	return s.processor.Process(img, meta, s.prefs.Get())
}

// ListScreenSources enumerates the attached displays.
func (s *Service) ListScreenSources() ([]model.CaptureSource, error) {
	return s.engine.ListScreenSources()
}

// ListWindowSources enumerates the capturable windows.
func (s *Service) ListWindowSources() ([]model.CaptureSource, error) {
	return s.engine.ListWindowSources()
}

// GetHistory returns the tracked captures, newest first. The output folder
// is scanned first so files dropped there outside the app show up; scan
// failures are logged and otherwise ignored.
func (s *Service) GetHistory() []model.HistoryItem {
	if _, err := s.history.ScanDirectory(s.prefs.OutputFolder()); err != nil {
		s.log.Warn("output folder scan failed: %v", err)
	}
	return s.history.All()
}

// RemoveFromHistory drops the entry for filePath, reporting whether one
// existed. The file itself is left alone.
func (s *Service) RemoveFromHistory(filePath string) (bool, error) {
	return s.history.Remove(filePath)
}

// ScanDirectory sweeps directory for untracked images and returns how many
// were added to history.
func (s *Service) ScanDirectory(directory string) (int, error) {
	return s.history.ScanDirectory(directory)
}

// GetPreferences returns the current preferences.
func (s *Service) GetPreferences() model.Preferences {
	return s.prefs.Get()
}

// SetPreferences replaces the preferences wholesale and persists them.
func (s *Service) SetPreferences(prefs model.Preferences) error {
	if err := s.prefs.Set(prefs); err != nil {
		return err
	}
	if s.onPrefsChange != nil {
		s.onPrefsChange(prefs)
	}
	return nil
}

// GetOutputFolder returns the effective capture folder.
func (s *Service) GetOutputFolder() string {
	return s.prefs.OutputFolder()
}

// BrowseFolder presents a directory picker and returns the chosen path, or
// "" when the dialog was dismissed.
func (s *Service) BrowseFolder() (string, error) {
	path, ok, err := s.dialogs.PickFolder("Select Output Folder")
	if err != nil {
		return "", graberr.Wrap(graberr.CodeExportFailed, "browse for folder", err)
	}
	if !ok {
		return "", nil
	}
	return path, nil
}

// SaveImage writes an image to a user-chosen location. data follows the
// bytes-or-path convention; defaultName seeds the dialog file name. Returns
// "" when the dialog was dismissed.
func (s *Service) SaveImage(data, defaultName string) (string, error) {
	if strings.TrimSpace(defaultName) == "" {
		defaultName = "capture.png"
	}

	path, ok, err := s.dialogs.SaveFile("Save Image", defaultName, []string{"png", "jpg", "jpeg"})
	if err != nil {
		return "", graberr.Wrap(graberr.CodeExportFailed, "save dialog", err)
	}
	if !ok {
		return "", nil
	}

	if strings.HasPrefix(data, "data:") {
		raw, err := imgutil.DecodeInput(data)
		if err != nil {
			if graberr.HasCode(err, graberr.CodeInvalidRequest) {
				return "", err
			}
			return "", graberr.Wrap(graberr.CodeExportFailed, "decode image data", err)
		}
		if err := os.WriteFile(path, raw, 0644); err != nil {
			return "", graberr.Wrap(graberr.CodeExportFailed, "write image", err)
		}
		return path, nil
	}

	// data is a source file path; copy it byte for byte.
	raw, err := os.ReadFile(data)
	if err != nil {
		return "", graberr.Wrap(graberr.CodeExportFailed, "read source image", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return "", graberr.Wrap(graberr.CodeExportFailed, "write image", err)
	}
	return path, nil
}

// CopyToClipboard decodes a bytes-or-path image and places it on the system
// clipboard.
func (s *Service) CopyToClipboard(data string) error {
	raw, err := imgutil.DecodeInput(data)
	if err != nil {
		if graberr.HasCode(err, graberr.CodeInvalidRequest) {
			return err
		}
		return graberr.Wrap(graberr.CodeClipboardFailed, "read image data", err)
	}

	img, err := imgutil.DecodeImage(raw)
	if err != nil {
		return graberr.Wrap(graberr.CodeClipboardFailed, "decode image", err)
	}

	return s.clipboard.WriteImage(img)
}

// DeleteScreenshot removes the file at filePath and its history entry,
// preferring the platform trash when one is available. Reports false
// without error when the file does not exist.
func (s *Service) DeleteScreenshot(filePath string) (bool, error) {
	if _, err := os.Stat(filePath); err != nil {
		return false, nil
	}

	if !moveToTrash(filePath) {
		if err := os.Remove(filePath); err != nil {
			return false, graberr.Wrap(graberr.CodeExportFailed, "delete file", err)
		}
	}
	if _, err := s.history.Remove(filePath); err != nil {
		return true, graberr.Wrap(graberr.CodeExportFailed, "update history", err)
	}
	return true, nil
}

// RevealInFolder opens filePath with the OS default handler.
func (s *Service) RevealInFolder(filePath string) error {
	return graberr.Wrap(graberr.CodeExportFailed, "reveal file", s.opener.Open(filePath))
}

// ExportCapture re-encodes a bytes-or-path image into format ("png",
// "jpeg", or "jpg") at a user-chosen location, honoring quality for JPEG.
// Returns "" when the dialog was dismissed.
func (s *Service) ExportCapture(data, format string, quality int) (string, error) {
	ext := "png"
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		ext = "jpg"
	}

	path, ok, err := s.dialogs.SaveFile("Export Capture", "capture."+ext, []string{ext})
	if err != nil {
		return "", graberr.Wrap(graberr.CodeExportFailed, "export dialog", err)
	}
	if !ok {
		return "", nil
	}

	raw, err := imgutil.DecodeInput(data)
	if err != nil {
		if graberr.HasCode(err, graberr.CodeInvalidRequest) {
			return "", err
		}
		return "", graberr.Wrap(graberr.CodeExportFailed, "read image data", err)
	}
	img, err := imgutil.DecodeImage(raw)
	if err != nil {
		return "", graberr.Wrap(graberr.CodeExportFailed, "decode image", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", graberr.Wrap(graberr.CodeExportFailed, "create export file", err)
	}
	if ext == "jpg" {
		err = imgutil.EncodeJPEG(f, img, quality)
	} else {
		err = imgutil.EncodePNG(f, img)
	}
	if err != nil {
		f.Close()
		return "", graberr.Wrap(graberr.CodeExportFailed, "encode export", err)
	}
	if err := f.Close(); err != nil {
		return "", graberr.Wrap(graberr.CodeExportFailed, "close export file", err)
	}
	return path, nil
}

// TriggerFullScreen captures the primary display through the pipeline.
// Shortcut and tray callers run it on a goroutine and log the error.
func (s *Service) TriggerFullScreen() error {
	_, err := s.CaptureFullScreen("")
	return err
}

// TriggerDisplay captures one display through the pipeline, for the
// per-monitor tray items.
func (s *Service) TriggerDisplay(displayID string) error {
	_, err := s.CaptureFullScreen(displayID)
	return err
}

// TriggerWindowPicker asks the UI to present its window picker; the capture
// itself arrives later as an explicit CaptureWindow command.
func (s *Service) TriggerWindowPicker() {
	s.bus.Publish(event.SignalShowWindowPicker, nil)
}

// TriggerRegionSelect asks the UI to start the region-select overlay; the
// capture itself arrives later as an explicit CaptureRegion command.
func (s *Service) TriggerRegionSelect() {
	s.bus.Publish(event.SignalStartRegionSelect, nil)
}

// ShowScreenPicker asks the UI to present the display picker.
func (s *Service) ShowScreenPicker() {
	s.bus.Publish(event.SignalShowScreenPicker, nil)
}

// OpenSettings asks the UI to open the settings view.
func (s *Service) OpenSettings() {
	s.bus.Publish(event.SignalOpenSettings, nil)
}

// OpenEditor raises the editor without a capture attached.
func (s *Service) OpenEditor() {
	s.bus.Publish(event.SignalShowCapture, nil)
}
