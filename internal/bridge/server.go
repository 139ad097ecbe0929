// Package bridge exposes the command surface and the UI signal stream to
// local frontends over HTTP and WebSocket.
package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/akv004/grab/internal/command"
	"github.com/akv004/grab/internal/event"
	"github.com/akv004/grab/internal/graberr"
	"github.com/akv004/grab/internal/logging"
	"github.com/akv004/grab/internal/model"
	"github.com/akv004/grab/pkg/imgutil"
)

const (
	// maxCommandBytes bounds a command body; data-URL payloads carry whole
	// captures, so this is generous.
	maxCommandBytes = 64 << 20
	// thumbnailMaxEdge is the longest edge of served thumbnails.
	thumbnailMaxEdge = 320
)

// commandRequest is the envelope posted to /api/v1/command.
type commandRequest struct {
	ID      string          `json:"id"`
	Command string          `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// commandResponse is the reply envelope. Exactly one of Result and Error is
// populated; both may be absent for unit results.
type commandResponse struct {
	ID     string                `json:"id"`
	OK     bool                  `json:"ok"`
	Result interface{}           `json:"result,omitempty"`
	Error  *graberr.Serializable `json:"error,omitempty"`
}

// Server is the local HTTP frontend for a running daemon.
type Server struct {
	commands    *command.Service
	bus         *event.Bus
	broadcaster *Broadcaster
	upgrader    websocket.Upgrader
	mux         *http.ServeMux
	log         *logging.Logger

	httpSrv *http.Server
	events  chan event.Event
}

// NewServer wires a server around the command service and the event bus.
func NewServer(commands *command.Service, bus *event.Bus, log *logging.Logger) *Server {
	s := &Server{
		commands:    commands,
		bus:         bus,
		broadcaster: NewBroadcaster(log),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The bridge binds to loopback; UI shells connect with
			// app-scheme origins that never match the Host header.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		mux: http.NewServeMux(),
		log: log,
	}
	s.mux.HandleFunc("/api/v1/command", s.handleCommand)
	s.mux.HandleFunc("/api/v1/events", s.handleEvents)
	s.mux.HandleFunc("/api/v1/thumbnail", s.handleThumbnail)
	s.mux.HandleFunc("/api/v1/health", s.handleHealth)
	return s
}

// ServeHTTP delegates to the internal mux so Server satisfies http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the event pump and serves HTTP on addr until
// Shutdown or a listener error.
func (s *Server) ListenAndServe(addr string) error {
	s.startPump()
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.log.Info("bridge listening on %s", addr)
	return s.httpSrv.ListenAndServe()
}

// Shutdown stops the HTTP listener and disconnects the event clients.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpSrv != nil {
		err = s.httpSrv.Shutdown(ctx)
	}
	s.stopPump()
	return err
}

// startPump subscribes to the bus and fans events out to websocket clients
// until stopPump or bus shutdown.
func (s *Server) startPump() {
	s.events = s.bus.Subscribe()
	if s.events == nil {
		return
	}
	go s.broadcaster.Run(s.events)
}

func (s *Server) stopPump() {
	s.bus.Unsubscribe(s.events)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req commandRequest
	body := http.MaxBytesReader(w, r.Body, maxCommandBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse(req.ID,
			graberr.Wrap(graberr.CodeInvalidRequest, "decode request", err)))
		return
	}

	result, err := s.dispatch(req)
	if err != nil {
		s.log.Warn("command %s failed: %v", req.Command, err)
		writeJSON(w, http.StatusOK, errorResponse(req.ID, err))
		return
	}
	writeJSON(w, http.StatusOK, commandResponse{ID: req.ID, OK: true, Result: result})
}

// dispatch routes one request to the command service. Command names and
// payload fields mirror the frontend's existing invoke contract.
func (s *Server) dispatch(req commandRequest) (interface{}, error) {
	switch req.Command {
	case "capture_full_screen":
		var p struct {
			DisplayID string `json:"displayId"`
		}
		if err := unmarshalPayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return s.commands.CaptureFullScreen(p.DisplayID)

	case "capture_region":
		var p struct {
			Region    model.RegionBounds `json:"region"`
			DisplayID string             `json:"displayId"`
		}
		if err := unmarshalPayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return s.commands.CaptureRegion(p.Region, p.DisplayID)

	case "capture_window":
		var p struct {
			WindowID string `json:"windowId"`
		}
		if err := unmarshalPayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return s.commands.CaptureWindow(p.WindowID)

	case "get_screen_sources":
		return s.commands.ListScreenSources()

	case "get_window_sources":
		return s.commands.ListWindowSources()

	case "get_history":
		return s.commands.GetHistory(), nil

	case "remove_from_history":
		var p struct {
			FilePath string `json:"filePath"`
		}
		if err := unmarshalPayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return s.commands.RemoveFromHistory(p.FilePath)

	case "scan_directory":
		var p struct {
			Directory string `json:"directory"`
		}
		if err := unmarshalPayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return s.commands.ScanDirectory(p.Directory)

	case "get_preferences":
		return s.commands.GetPreferences(), nil

	case "set_preferences":
		var p struct {
			Preferences model.Preferences `json:"preferences"`
		}
		if err := unmarshalPayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return nil, s.commands.SetPreferences(p.Preferences)

	case "get_output_folder":
		return s.commands.GetOutputFolder(), nil

	case "browse_folder":
		return emptyAsNil(s.commands.BrowseFolder())

	case "save_image":
		var p struct {
			Data        string `json:"data"`
			DefaultPath string `json:"defaultPath"`
		}
		if err := unmarshalPayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return emptyAsNil(s.commands.SaveImage(p.Data, p.DefaultPath))

	case "copy_to_clipboard":
		var p struct {
			Data string `json:"data"`
		}
		if err := unmarshalPayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return nil, s.commands.CopyToClipboard(p.Data)

	case "delete_screenshot":
		var p struct {
			FilePath string `json:"filePath"`
		}
		if err := unmarshalPayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return s.commands.DeleteScreenshot(p.FilePath)

	case "reveal_in_folder":
		var p struct {
			FilePath string `json:"filePath"`
		}
		if err := unmarshalPayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return nil, s.commands.RevealInFolder(p.FilePath)

	case "export_capture":
		var p struct {
			ImageData string `json:"imageData"`
			Format    string `json:"format"`
			Quality   int    `json:"quality"`
		}
		if err := unmarshalPayload(req.Payload, &p); err != nil {
			return nil, err
		}
		return emptyAsNil(s.commands.ExportCapture(p.ImageData, p.Format, p.Quality))

	default:
		return nil, graberr.Newf(graberr.CodeInvalidRequest, "unknown command %q", req.Command)
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed: %v", err)
		return
	}

	id := s.broadcaster.Add(conn)
	defer s.broadcaster.Remove(id)

	// The stream is one-way; reading only detects the client going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) handleThumbnail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, "missing path", http.StatusBadRequest)
		return
	}

	data, err := imgutil.ThumbnailPNG(path, thumbnailMaxEdge)
	if err != nil {
		http.Error(w, "thumbnail unavailable", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"eventClients": s.broadcaster.ClientCount(),
	})
}

func unmarshalPayload(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return graberr.Wrap(graberr.CodeInvalidRequest, "decode payload", err)
	}
	return nil
}

// emptyAsNil turns a dismissed-dialog empty path into an absent result.
func emptyAsNil(path string, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, nil
	}
	return path, nil
}

func errorResponse(id string, err error) commandResponse {
	serialized := graberr.ToSerializable(err)
	return commandResponse{ID: id, OK: false, Error: &serialized}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
