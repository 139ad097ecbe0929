package shortcut

import (
	"strings"
	"sync"

	"golang.design/x/hotkey"

	"github.com/akv004/grab/internal/logging"
	"github.com/akv004/grab/internal/model"
)

// Actions are the operations a global shortcut can fire.
type Actions interface {
	// TriggerFullScreen captures the primary display through the pipeline.
	TriggerFullScreen() error
	// TriggerRegionSelect asks the UI to start region selection.
	TriggerRegionSelect()
	// TriggerWindowPicker asks the UI to present its window picker.
	TriggerWindowPicker()
}

type registration struct {
	hk   *hotkey.Hotkey
	done chan struct{}
}

// Manager owns the registered global shortcuts. Apply replaces the full
// binding set, so a preference change just re-applies.
type Manager struct {
	actions Actions
	log     *logging.Logger

	mu     sync.Mutex
	active []registration
}

// NewManager creates a manager with no registered shortcuts.
func NewManager(actions Actions, log *logging.Logger) *Manager {
	return &Manager{actions: actions, log: log}
}

// Apply registers the given bindings, releasing any previous set first. A
// binding that fails to parse or register is skipped with a warning so the
// remaining shortcuts still work; an empty binding disables that shortcut.
func (m *Manager) Apply(bindings model.ShortcutBindings) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.releaseLocked()
	m.bindLocked(bindings.FullScreen, m.fireFullScreen)
	m.bindLocked(bindings.Region, m.fireRegion)
	m.bindLocked(bindings.Window, m.fireWindow)
}

// Stop releases every registered shortcut.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseLocked()
}

// BindingCount reports how many shortcuts are currently registered.
func (m *Manager) BindingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

func (m *Manager) bindLocked(accel string, fire func()) {
	if strings.TrimSpace(accel) == "" {
		return
	}

	mods, key, err := Parse(accel)
	if err != nil {
		m.log.Warn("skipping shortcut: %v", err)
		return
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		m.log.Warn("could not register shortcut %q: %v", accel, err)
		return
	}

	done := make(chan struct{})
	go listen(hk, fire, done)
	m.active = append(m.active, registration{hk: hk, done: done})
	m.log.Info("registered shortcut %s", accel)
}

func (m *Manager) releaseLocked() {
	for _, reg := range m.active {
		close(reg.done)
		if err := reg.hk.Unregister(); err != nil {
			m.log.Warn("unregister shortcut: %v", err)
		}
	}
	m.active = nil
}

func listen(hk *hotkey.Hotkey, fire func(), done <-chan struct{}) {
	keydown := hk.Keydown()
	for {
		select {
		case <-done:
			return
		case _, ok := <-keydown:
			if !ok {
				return
			}
			fire()
		}
	}
}

// fireFullScreen runs the capture on a fresh goroutine so the hotkey
// listener is never blocked by encoding or disk I/O.
func (m *Manager) fireFullScreen() {
	go func() {
		if err := m.actions.TriggerFullScreen(); err != nil {
			m.log.Error("full screen shortcut capture failed: %v", err)
		}
	}()
}

func (m *Manager) fireRegion() {
	m.actions.TriggerRegionSelect()
}

func (m *Manager) fireWindow() {
	m.actions.TriggerWindowPicker()
}
