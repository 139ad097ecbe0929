// Package tray parks the capture daemon in the system tray. The menu
// mirrors the in-app trigger surfaces: direct per-display captures plus
// signal items that hand off to the UI pickers.
package tray

import (
	"github.com/getlantern/systray"

	"github.com/akv004/grab/internal/logging"
	"github.com/akv004/grab/internal/model"
)

// Actions is the slice of the command surface the tray menu drives.
type Actions interface {
	TriggerDisplay(displayID string) error
	TriggerRegionSelect()
	TriggerWindowPicker()
	ShowScreenPicker()
	OpenSettings()
	OpenEditor()
	ListScreenSources() ([]model.CaptureSource, error)
}

// Tray owns the tray icon and menu for the lifetime of the daemon.
type Tray struct {
	actions Actions
	log     *logging.Logger
	onQuit  func()
	done    chan struct{}
}

// New builds a tray. onQuit fires once when the tray loop exits, whether
// from the Quit menu item or an external Quit call; it may be nil.
func New(actions Actions, log *logging.Logger, onQuit func()) *Tray {
	return &Tray{
		actions: actions,
		log:     log,
		onQuit:  onQuit,
		done:    make(chan struct{}),
	}
}

// Run blocks until the tray quits. It must be called from the main
// goroutine; the platform UI loops require it.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit tears down the tray and unblocks Run.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetIcon(iconBytes())
	systray.SetTooltip("Grab - Screen Capture")

	fullScreen := systray.AddMenuItem("Capture Full Screen", "Capture an entire display")
	sources, err := t.actions.ListScreenSources()
	if err != nil {
		t.log.Warn("tray: listing displays failed: %v", err)
	}
	for _, src := range sources {
		item := fullScreen.AddSubMenuItem(src.Name, "Capture this display")
		go t.watchDisplayItem(src.ID, item)
	}

	region := systray.AddMenuItem("Capture Region", "Select a rectangle to capture")
	window := systray.AddMenuItem("Capture Window", "Capture a single window")
	systray.AddSeparator()
	editor := systray.AddMenuItem("Open Editor", "Open the capture editor")
	settings := systray.AddMenuItem("Settings...", "Open the settings view")
	systray.AddSeparator()
	quit := systray.AddMenuItem("Quit Grab", "Stop the capture daemon")

	go func() {
		for {
			select {
			case <-fullScreen.ClickedCh:
				// Platforms that deliver clicks on the submenu parent fall
				// back to the in-app display picker.
				t.actions.ShowScreenPicker()
			case <-region.ClickedCh:
				t.actions.TriggerRegionSelect()
			case <-window.ClickedCh:
				t.actions.TriggerWindowPicker()
			case <-editor.ClickedCh:
				t.actions.OpenEditor()
			case <-settings.ClickedCh:
				t.actions.OpenSettings()
			case <-quit.ClickedCh:
				systray.Quit()
				return
			case <-t.done:
				return
			}
		}
	}()
}

// watchDisplayItem captures one display whenever its submenu item is
// clicked. The capture runs on its own goroutine so a slow save never
// blocks the menu.
func (t *Tray) watchDisplayItem(displayID string, item *systray.MenuItem) {
	for {
		select {
		case <-item.ClickedCh:
			go func() {
				if err := t.actions.TriggerDisplay(displayID); err != nil {
					t.log.Error("tray: display capture failed: %v", err)
				}
			}()
		case <-t.done:
			return
		}
	}
}

func (t *Tray) onExit() {
	close(t.done)
	if t.onQuit != nil {
		t.onQuit()
	}
}
