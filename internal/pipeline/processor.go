// Package pipeline sequences what happens to a captured bitmap: disk save,
// clipboard copy, notification, and UI refresh.
package pipeline

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/akv004/grab/internal/capture"
	"github.com/akv004/grab/internal/event"
	"github.com/akv004/grab/internal/graberr"
	"github.com/akv004/grab/internal/logging"
	"github.com/akv004/grab/internal/model"
	"github.com/akv004/grab/internal/store"
)

// Clipboard is the slice of the clipboard writer the pipeline needs.
type Clipboard interface {
	WriteImage(img image.Image) error
}

// Notifier posts the capture-complete notification.
type Notifier interface {
	CaptureComplete(message string)
}

// Processor runs the save-and-process pipeline after every capture,
// regardless of which surface triggered it.
type Processor struct {
	history   *store.HistoryStore
	clipboard Clipboard
	notifier  Notifier
	bus       *event.Bus
	log       *logging.Logger
}

// NewProcessor wires a processor to its collaborators.
func NewProcessor(history *store.HistoryStore, clipboard Clipboard, notifier Notifier, bus *event.Bus, log *logging.Logger) *Processor {
	return &Processor{
		history:   history,
		clipboard: clipboard,
		notifier:  notifier,
		bus:       bus,
		log:       log,
	}
}

// Process saves, copies, and announces one captured bitmap according to
// prefs. A disk failure aborts immediately. A clipboard failure fails the
// capture only when the clipboard was the sole sink; once a file is on disk
// the capture already succeeded, so the failure is logged and the result
// reports CopiedToClipboard=false. Notification delivery is best effort and
// never fails the capture.
func (p *Processor) Process(img *image.RGBA, meta model.CaptureMetadata, prefs model.Preferences) (*model.CaptureResult, error) {
	var (
		filePath string
		copied   bool
	)

	if prefs.SaveToDisk {
		folder := prefs.OutputFolder
		if strings.TrimSpace(folder) == "" {
			folder = model.DefaultOutputFolder()
		}
		if err := os.MkdirAll(folder, 0755); err != nil {
			return nil, graberr.Wrap(graberr.CodeExportFailed, "create output folder", err)
		}

		name := capture.GenerateFilename(prefs.NamingTemplate, meta.Mode)
		fullPath := filepath.Join(folder, name+".png")
		if err := capture.SaveImage(img, fullPath); err != nil {
			return nil, err
		}

		meta.FileName = name
		filePath = fullPath

		if err := p.history.Add(fullPath); err != nil {
			return nil, graberr.Wrap(graberr.CodeExportFailed, "record history", err)
		}
		p.log.Info("capture saved to %s", fullPath)
	}

	if prefs.CopyToClipboard {
		if err := p.clipboard.WriteImage(img); err != nil {
			if filePath == "" {
				return nil, graberr.Wrap(graberr.CodeClipboardFailed, "copy capture to clipboard", err)
			}
			p.log.Error("clipboard copy failed, capture kept on disk: %v", err)
		} else {
			copied = true
		}
	}

	if prefs.ShowNotifications {
		var message string
		if filePath != "" {
			message = fmt.Sprintf("Saved to %s", filepath.Base(filePath))
		}
		if copied {
			if message != "" {
				message += " and clipboard"
			} else {
				message = "Copied to clipboard"
			}
		}
		p.notifier.CaptureComplete(message)
	}

	p.bus.Publish(event.SignalHistoryRefreshed, nil)
	if prefs.OpenEditorAfterCapture {
		// The payload is the saved path, or nil when nothing was written;
		// the UI raises the editor either way.
		if filePath != "" {
			p.bus.Publish(event.SignalShowCapture, filePath)
		} else {
			p.bus.Publish(event.SignalShowCapture, nil)
		}
	}

	return &model.CaptureResult{
		FilePath:          filePath,
		Metadata:          meta,
		CopiedToClipboard: copied,
	}, nil
}
