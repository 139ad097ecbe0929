// Package store provides the JSON-backed persistence layer for Grab: the
// preferences store and the capture history store. Each store guards its
// in-memory state with a single lock and writes its backing file on every
// mutation, so in-memory and on-disk state never diverge observably.
package store

import (
	"encoding/json"
	"errors"
	"os"
)

var (
	// ErrNotFound is returned when an entry is not found.
	ErrNotFound = errors.New("not found")
)

// readJSON loads path into v. The caller decides how to treat a missing or
// malformed file.
func readJSON(path string, v interface{}) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(content, v)
}

// writeJSON persists v to path as indented JSON.
func writeJSON(path string, v interface{}) error {
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}
