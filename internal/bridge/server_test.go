package bridge

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akv004/grab/internal/capture"
	"github.com/akv004/grab/internal/command"
	"github.com/akv004/grab/internal/event"
	"github.com/akv004/grab/internal/logging"
	"github.com/akv004/grab/internal/model"
	"github.com/akv004/grab/internal/pipeline"
	"github.com/akv004/grab/internal/store"
)

type stubScreens struct{}

func (stubScreens) Monitors() ([]capture.Monitor, error) {
	return []capture.Monitor{{Index: 0, Bounds: image.Rect(0, 0, 64, 48), Primary: true, Scale: 1.0}}, nil
}

func (stubScreens) Capture(index int) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 5, A: 255})
		}
	}
	return img, nil
}

type stubWindows struct{}

func (stubWindows) Windows() ([]capture.Window, error) { return nil, nil }

func (stubWindows) Capture(string) (*image.RGBA, error) {
	return nil, errors.New("no such window")
}

type quietClipboard struct{}

func (quietClipboard) WriteImage(image.Image) error { return nil }

type quietNotifier struct{}

func (quietNotifier) CaptureComplete(string) {}

type stubDialogs struct {
	savePath string
	saveOK   bool
}

func (stubDialogs) PickFolder(string) (string, bool, error) { return "", false, nil }

func (d stubDialogs) SaveFile(string, string, []string) (string, bool, error) {
	return d.savePath, d.saveOK, nil
}

type stubOpener struct{}

func (stubOpener) Open(string) error { return nil }

type fixture struct {
	server *Server
	http   *httptest.Server
	bus    *event.Bus
	svc    *command.Service
	outDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	prefs, err := store.NewPreferencesStore(t.TempDir(), logging.Nop())
	require.NoError(t, err)
	history, err := store.NewHistoryStore(t.TempDir(), logging.Nop())
	require.NoError(t, err)

	outDir := t.TempDir()
	p := *model.DefaultPreferences()
	p.OutputFolder = outDir
	p.CopyToClipboard = false
	p.ShowNotifications = false
	require.NoError(t, prefs.Set(p))

	bus := event.NewBus()
	t.Cleanup(bus.Stop)

	engine := capture.NewEngine(stubScreens{}, stubWindows{}, logging.Nop())
	processor := pipeline.NewProcessor(history, quietClipboard{}, quietNotifier{}, bus, logging.Nop())
	svc := command.NewService(command.Deps{
		Engine:    engine,
		Processor: processor,
		Prefs:     prefs,
		History:   history,
		Clipboard: quietClipboard{},
		Dialogs:   stubDialogs{},
		Opener:    stubOpener{},
		Bus:       bus,
		Log:       logging.Nop(),
	})

	server := NewServer(svc, bus, logging.Nop())
	server.startPump()
	t.Cleanup(server.stopPump)

	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)

	return &fixture{server: server, http: ts, bus: bus, svc: svc, outDir: outDir}
}

type envelope struct {
	ID     string          `json:"id"`
	OK     bool            `json:"ok"`
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (f *fixture) post(t *testing.T, id, cmd string, payload interface{}) (int, envelope) {
	t.Helper()

	req := map[string]interface{}{"id": id, "command": cmd}
	if payload != nil {
		req["payload"] = payload
	}
	body, err := json.Marshal(req)
	require.NoError(t, err)

	resp, err := http.Post(f.http.URL+"/api/v1/command", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestServer_CaptureFullScreenCommand(t *testing.T) {
	f := newFixture(t)

	status, env := f.post(t, "req-1", "capture_full_screen", nil)
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.OK)
	assert.Equal(t, "req-1", env.ID)

	var res model.CaptureResult
	require.NoError(t, json.Unmarshal(env.Result, &res))
	assert.Equal(t, model.ModeFullScreen, res.Metadata.Mode)
	require.NotEmpty(t, res.FilePath)
	_, err := os.Stat(res.FilePath)
	require.NoError(t, err)
}

func TestServer_GetHistoryCommand(t *testing.T) {
	f := newFixture(t)

	_, env := f.post(t, "c", "capture_full_screen", nil)
	require.True(t, env.OK)

	_, env = f.post(t, "h", "get_history", nil)
	require.True(t, env.OK)

	var items []model.HistoryItem
	require.NoError(t, json.Unmarshal(env.Result, &items))
	assert.Len(t, items, 1)
}

func TestServer_PreferencesRoundTrip(t *testing.T) {
	f := newFixture(t)

	_, env := f.post(t, "g1", "get_preferences", nil)
	require.True(t, env.OK)
	var prefs model.Preferences
	require.NoError(t, json.Unmarshal(env.Result, &prefs))

	prefs.NamingTemplate = "shot-{timestamp}"
	_, env = f.post(t, "s1", "set_preferences", map[string]interface{}{"preferences": prefs})
	require.True(t, env.OK)

	_, env = f.post(t, "g2", "get_preferences", nil)
	require.True(t, env.OK)
	var got model.Preferences
	require.NoError(t, json.Unmarshal(env.Result, &got))
	assert.Equal(t, "shot-{timestamp}", got.NamingTemplate)
}

func TestServer_UnknownCommand(t *testing.T) {
	f := newFixture(t)

	status, env := f.post(t, "u", "frobnicate", nil)
	assert.Equal(t, http.StatusOK, status)
	require.False(t, env.OK)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
}

func TestServer_CommandErrorEnvelope(t *testing.T) {
	f := newFixture(t)

	_, env := f.post(t, "w", "capture_window", map[string]string{"windowId": "404"})
	require.False(t, env.OK)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SOURCE_NOT_FOUND", env.Error.Code)
	assert.NotEmpty(t, env.Error.Message)
}

func TestServer_MalformedBody(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Post(f.http.URL+"/api/v1/command", "application/json", strings.NewReader("{nope"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
}

func TestServer_CommandRejectsGet(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Get(f.http.URL + "/api/v1/command")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServer_SaveImageDismissed(t *testing.T) {
	f := newFixture(t)

	_, env := f.post(t, "d", "save_image", map[string]string{"data": "/tmp/whatever.png"})
	require.True(t, env.OK)
	assert.Empty(t, env.Result)
}

func TestServer_Health(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Get(f.http.URL + "/api/v1/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(0), body["eventClients"])
}

func TestServer_Thumbnail(t *testing.T) {
	f := newFixture(t)

	src := filepath.Join(t.TempDir(), "big.png")
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(src, buf.Bytes(), 0644))

	resp, err := http.Get(f.http.URL + "/api/v1/thumbnail?path=" + src)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	thumb, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 320, thumb.Bounds().Dx())
	assert.Equal(t, 240, thumb.Bounds().Dy())
}

func TestServer_ThumbnailMissingFile(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Get(f.http.URL + "/api/v1/thumbnail?path=/nope/missing.png")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_EventsStream(t *testing.T) {
	f := newFixture(t)

	wsURL := "ws" + strings.TrimPrefix(f.http.URL, "http") + "/api/v1/events"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	waitFor(t, func() bool { return f.server.broadcaster.ClientCount() == 1 })

	f.svc.TriggerRegionSelect()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev event.Event
	require.NoError(t, json.Unmarshal(raw, &ev))
	assert.Equal(t, event.SignalStartRegionSelect, ev.Signal)
	assert.NotEmpty(t, ev.ID)
}

func TestServer_EventsClientDisconnectDropsIt(t *testing.T) {
	f := newFixture(t)

	wsURL := "ws" + strings.TrimPrefix(f.http.URL, "http") + "/api/v1/events"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}

	waitFor(t, func() bool { return f.server.broadcaster.ClientCount() == 1 })
	require.NoError(t, conn.Close())
	waitFor(t, func() bool { return f.server.broadcaster.ClientCount() == 0 })
}
