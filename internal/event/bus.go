// Package event is the in-process pub/sub channel between the capture
// pipeline and the attached UI surfaces (websocket clients, tray menu).
package event

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// bufSize is the per-subscriber channel capacity; a subscriber that falls
// behind loses events instead of blocking the pipeline.
const bufSize = 100

// Signal names one UI-bound notification.
type Signal string

const (
	// SignalHistoryRefreshed tells the UI to reload its history view.
	SignalHistoryRefreshed Signal = "history-refreshed"
	// SignalShowCapture asks the UI to raise the editor with a saved capture.
	SignalShowCapture Signal = "show-capture"
	// SignalShowScreenPicker asks the UI to present the display picker.
	SignalShowScreenPicker Signal = "show-screen-picker"
	// SignalShowWindowPicker asks the UI to present the window picker.
	SignalShowWindowPicker Signal = "show-window-picker"
	// SignalStartRegionSelect asks the UI to start the region-select overlay.
	SignalStartRegionSelect Signal = "start-region-select"
	// SignalOpenSettings asks the UI to open the settings view.
	SignalOpenSettings Signal = "open-settings"
)

// Event is one fire-and-forget notification pushed to the UI.
type Event struct {
	ID        string      `json:"id"`
	Signal    Signal      `json:"signal"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Bus fans events out to subscribers. Publishing never blocks.
type Bus struct {
	mu      sync.Mutex
	subs    map[chan Event]struct{}
	stopped bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: map[chan Event]struct{}{}}
}

// Publish sends signal with an optional payload to every subscriber.
// Subscribers with full buffers are skipped.
func (b *Bus) Publish(signal Signal, payload interface{}) {
	ev := Event{
		ID:        uuid.NewString(),
		Signal:    signal,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return
	}
	for sub := range b.subs {
		select {
		case sub <- ev:
		default:
			// Subscriber buffer full; drop rather than block.
		}
	}
}

// Subscribe registers a new subscriber channel. Returns nil when the bus is
// stopped. Callers hand the channel back via Unsubscribe when done.
func (b *Bus) Subscribe() chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return nil
	}
	events := make(chan Event, bufSize)
	b.subs[events] = struct{}{}
	return events
}

// Unsubscribe removes a subscriber and closes its channel. Safe to call
// with nil or after Stop.
func (b *Bus) Unsubscribe(events chan Event) {
	if events == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[events]; ok {
		delete(b.subs, events)
		close(events)
	}
}

// Stop shuts the bus down and closes all subscriber channels. Safe to call
// more than once.
func (b *Bus) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return
	}
	b.stopped = true
	for sub := range b.subs {
		close(sub)
	}
	b.subs = map[chan Event]struct{}{}
}
