package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath_Tilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "Pictures"), ExpandPath("~/Pictures"))
	assert.Equal(t, home, ExpandPath("~"))
}

func TestExpandPath_CleansRelativeSegments(t *testing.T) {
	assert.Equal(t, "/tmp/captures", ExpandPath("/tmp/./foo/../captures"))
}

func TestDisplayPath_AbbreviatesHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "~", DisplayPath(home))
	assert.Equal(t, filepath.Join("~", "Pictures", "shot.png"), DisplayPath(filepath.Join(home, "Pictures", "shot.png")))
	assert.Equal(t, "/var/tmp/shot.png", DisplayPath("/var/tmp/shot.png"))
}

func TestIsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, IsDir(dir))
	assert.False(t, IsDir(file))
	assert.False(t, IsDir(filepath.Join(dir, "missing")))
}
