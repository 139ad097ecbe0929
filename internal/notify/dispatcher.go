// Package notify posts desktop notifications for completed captures.
package notify

import (
	"strings"

	"github.com/gen2brain/beeep"

	"github.com/akv004/grab/internal/logging"
)

// Notifier sends best-effort desktop notifications. Delivery failures are
// logged and swallowed; a notification never fails a capture.
type Notifier struct {
	log *logging.Logger
}

// NewNotifier creates a Notifier.
func NewNotifier(log *logging.Logger) *Notifier {
	return &Notifier{log: log}
}

// CaptureComplete announces a finished capture with a summary of where the
// image went.
func (n *Notifier) CaptureComplete(message string) {
	n.Notify("Capture Complete", message)
}

// Notify posts a desktop notification with the given title and message.
func (n *Notifier) Notify(title, message string) {
	if n == nil {
		return
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = "Grab"
	}
	message = strings.TrimSpace(message)
	if len(message) > 800 {
		message = message[:800] + "..."
	}

	if err := beeep.Notify(title, message, ""); err != nil {
		n.log.Debug("notification failed: %v", err)
	}
}
