package store

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/akv004/grab/internal/logging"
	"github.com/akv004/grab/internal/model"
)

const preferencesFile = "preferences.json"

// PreferencesStore owns the single Preferences value and its backing file.
type PreferencesStore struct {
	mu    sync.RWMutex
	path  string
	log   *logging.Logger
	prefs *model.Preferences
}

// NewPreferencesStore loads preferences from dataDir. A missing or
// unreadable file falls back to defaults. The resolved value is written
// back before returning, so the file always exists and parses afterwards.
func NewPreferencesStore(dataDir string, log *logging.Logger) (*PreferencesStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	path := filepath.Join(dataDir, preferencesFile)
	prefs := model.DefaultPreferences()
	if _, err := os.Stat(path); err == nil {
		loaded := model.DefaultPreferences()
		if err := readJSON(path, loaded); err != nil {
			log.Warn("preferences file unreadable, using defaults: %v", err)
		} else {
			prefs = loaded
		}
	}

	s := &PreferencesStore{
		path:  path,
		log:   log,
		prefs: prefs,
	}
	if err := s.save(); err != nil {
		return nil, err
	}
	return s, nil
}

// save writes the current preferences to disk. Callers hold the lock, or
// run before the store is shared.
func (s *PreferencesStore) save() error {
	return writeJSON(s.path, s.prefs)
}

// Get returns a copy of the current preferences.
func (s *PreferencesStore) Get() model.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.prefs
}

// Set replaces the preferences wholesale and persists them. There is no
// field-level merge; callers send the complete value.
func (s *PreferencesStore) Set(prefs model.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = &prefs
	return s.save()
}

// OutputFolder returns the configured capture folder, or the platform
// default when the configured value is blank.
func (s *PreferencesStore) OutputFolder() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if strings.TrimSpace(s.prefs.OutputFolder) == "" {
		return model.DefaultOutputFolder()
	}
	return s.prefs.OutputFolder
}

// Path returns the location of the backing file.
func (s *PreferencesStore) Path() string {
	return s.path
}
