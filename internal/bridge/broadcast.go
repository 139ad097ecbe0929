package bridge

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/akv004/grab/internal/event"
	"github.com/akv004/grab/internal/logging"
)

// Broadcaster fans bus events out to the connected websocket clients. Each
// event is serialized once and written to every connection; a connection
// that fails a write is dropped on the spot.
type Broadcaster struct {
	mu    sync.Mutex
	conns map[string]*websocket.Conn
	log   *logging.Logger
}

// NewBroadcaster creates a broadcaster with no clients.
func NewBroadcaster(log *logging.Logger) *Broadcaster {
	return &Broadcaster{
		conns: make(map[string]*websocket.Conn),
		log:   log,
	}
}

// Run pumps events into the connected clients until the channel closes,
// then closes every remaining connection.
func (b *Broadcaster) Run(events <-chan event.Event) {
	for ev := range events {
		b.send(ev)
	}
	b.closeAll()
}

// Add registers a connection and returns its handle for Remove.
func (b *Broadcaster) Add(conn *websocket.Conn) string {
	id := uuid.NewString()
	b.mu.Lock()
	b.conns[id] = conn
	total := len(b.conns)
	b.mu.Unlock()
	b.log.Debug("event client connected (%d total)", total)
	return id
}

// Remove unregisters a connection and closes it. Unknown ids are ignored.
func (b *Broadcaster) Remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if conn, ok := b.conns[id]; ok {
		conn.Close()
		delete(b.conns, id)
	}
}

// ClientCount returns the number of connected clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.conns)
}

func (b *Broadcaster) send(ev event.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		b.log.Error("marshal event %s: %v", ev.Signal, err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for id, conn := range b.conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			b.log.Debug("dropping event client: %v", err)
			conn.Close()
			delete(b.conns, id)
		}
	}
}

func (b *Broadcaster) closeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, conn := range b.conns {
		conn.Close()
		delete(b.conns, id)
	}
}
