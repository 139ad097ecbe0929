package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/akv004/grab/internal/logging"
	"github.com/akv004/grab/internal/model"
)

const historyFile = "history.json"

// maxHistoryItems bounds the history list; entries beyond it are dropped
// oldest-first.
const maxHistoryItems = 50

// imageExtensions whitelists the file types ScanDirectory picks up.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// HistoryStore tracks recent capture files in a JSON array, newest first.
type HistoryStore struct {
	mu    sync.Mutex
	path  string
	log   *logging.Logger
	items []model.HistoryItem
}

// NewHistoryStore loads history from dataDir. A missing or corrupt file is
// not an error; the store starts empty.
func NewHistoryStore(dataDir string, log *logging.Logger) (*HistoryStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	s := &HistoryStore{
		path:  filepath.Join(dataDir, historyFile),
		log:   log,
		items: []model.HistoryItem{},
	}
	if _, err := os.Stat(s.path); err == nil {
		if err := readJSON(s.path, &s.items); err != nil {
			log.Warn("history file unreadable, starting empty: %v", err)
			s.items = []model.HistoryItem{}
		}
	}
	return s, nil
}

// Add records filePath as the most recent capture and persists. Explicit
// captures are always recorded as new events; duplicate paths are allowed.
func (s *HistoryStore) Add(filePath string) error {
	now := time.Now().UTC()
	item := model.HistoryItem{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		FilePath:  filePath,
		Timestamp: now.Format(time.RFC3339),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append([]model.HistoryItem{item}, s.items...)
	if len(s.items) > maxHistoryItems {
		s.items = s.items[:maxHistoryItems]
	}
	return s.save()
}

// All returns a snapshot of items whose files still exist on disk. Entries
// pointing at missing files stay in the backing store until a scan or an
// explicit removal cleans them up.
func (s *HistoryStore) All() []model.HistoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]model.HistoryItem, 0, len(s.items))
	for _, item := range s.items {
		if _, err := os.Stat(item.FilePath); err == nil {
			result = append(result, item)
		}
	}
	return result
}

// Latest returns the most recent item whose file still exists, or
// ErrNotFound when history is effectively empty.
func (s *HistoryStore) Latest() (*model.HistoryItem, error) {
	items := s.All()
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	item := items[0]
	return &item, nil
}

// Remove drops every item matching filePath and reports whether anything
// was removed. The backing file is rewritten only on an actual removal.
func (s *HistoryStore) Remove(filePath string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]model.HistoryItem, 0, len(s.items))
	for _, item := range s.items {
		if item.FilePath != filePath {
			kept = append(kept, item)
		}
	}
	removed := len(kept) < len(s.items)
	s.items = kept
	if !removed {
		return false, nil
	}
	return true, s.save()
}

// ScanDirectory reconciles history with the image files present in dir and
// returns how many new items were added. A missing directory yields zero.
// Running the scan twice with no filesystem changes adds nothing the second
// time.
func (s *HistoryStore) ScanDirectory(dir string) (int, error) {
	if _, err := os.Stat(dir); err != nil {
		return 0, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	known := make(map[string]bool, len(s.items))
	for _, item := range s.items {
		known[item.FilePath] = true
	}

	added := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if known[path] {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// File vanished between listing and stat; pick it up next scan.
			continue
		}

		s.items = append(s.items, model.HistoryItem{
			ID:        scanID(path, info),
			FilePath:  path,
			Timestamp: scanTimestamp(path, info),
		})
		known[path] = true
		added++
	}

	sort.SliceStable(s.items, func(i, j int) bool {
		return s.items[i].Timestamp > s.items[j].Timestamp
	})
	if len(s.items) > maxHistoryItems {
		s.items = s.items[:maxHistoryItems]
	}

	if added == 0 {
		return 0, nil
	}
	return added, s.save()
}

// save writes the item list to disk. Callers hold the lock.
func (s *HistoryStore) save() error {
	return writeJSON(s.path, s.items)
}

// scanID derives an id from the file creation instant plus a randomized
// numeric suffix, so files sharing a creation millisecond still get
// distinct ids.
func scanID(path string, info os.FileInfo) string {
	millis := time.Now().UnixMilli()
	if created := creationTime(path, info); !created.IsZero() {
		millis = created.UnixMilli()
	}
	return fmt.Sprintf("%d%05d", millis, time.Now().Nanosecond()%100000)
}

// scanTimestamp prefers the file creation time, then the modification time,
// then the current instant.
func scanTimestamp(path string, info os.FileInfo) string {
	t := creationTime(path, info)
	if t.IsZero() {
		t = info.ModTime()
	}
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339)
}
