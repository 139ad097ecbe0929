package command

import (
	"errors"

	"github.com/skratchdot/open-golang/open"
	"github.com/sqweek/dialog"
)

// NativeDialogs drives the OS file pickers. Each call blocks its goroutine
// until the user picks something or dismisses the dialog.
type NativeDialogs struct{}

// PickFolder presents a directory chooser. A dismissed dialog reports
// ok=false with no error.
func (NativeDialogs) PickFolder(title string) (string, bool, error) {
	path, err := dialog.Directory().Title(title).Browse()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return path, true, nil
}

// SaveFile presents a save dialog primed with defaultName and an image
// extension filter. A dismissed dialog reports ok=false with no error.
func (NativeDialogs) SaveFile(title, defaultName string, exts []string) (string, bool, error) {
	path, err := dialog.File().
		Title(title).
		SetStartFile(defaultName).
		Filter("Images", exts...).
		Save()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return path, true, nil
}

// ShellOpener hands paths to the OS default handler.
type ShellOpener struct{}

// Open launches the default application for path.
func (ShellOpener) Open(path string) error {
	return open.Run(path)
}
