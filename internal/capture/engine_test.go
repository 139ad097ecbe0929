package capture

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akv004/grab/internal/graberr"
	"github.com/akv004/grab/internal/logging"
	"github.com/akv004/grab/internal/model"
)

type fakeScreens struct {
	monitors []Monitor
	images   map[int]*image.RGBA
	listErr  error
	capErr   error
}

func (f *fakeScreens) Monitors() ([]Monitor, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.monitors, nil
}

func (f *fakeScreens) Capture(index int) (*image.RGBA, error) {
	if f.capErr != nil {
		return nil, f.capErr
	}
	img, ok := f.images[index]
	if !ok {
		return nil, errors.New("no such display")
	}
	return img, nil
}

type fakeWindows struct {
	windows []Window
	images  map[string]*image.RGBA
	listErr error
}

func (f *fakeWindows) Windows() ([]Window, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.windows, nil
}

func (f *fakeWindows) Capture(id string) (*image.RGBA, error) {
	img, ok := f.images[id]
	if !ok {
		return nil, errors.New("no such window")
	}
	return img, nil
}

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x % 251), G: uint8(y % 251), B: 7, A: 255})
		}
	}
	return img
}

func newTestEngine(screens ScreenBackend, windows WindowBackend) *Engine {
	return NewEngine(screens, windows, logging.Nop())
}

func TestEngine_ListScreenSources(t *testing.T) {
	screens := &fakeScreens{
		monitors: []Monitor{
			{Index: 0, Bounds: image.Rect(0, 0, 800, 600), Scale: 1.0},
			{Index: 1, Bounds: image.Rect(800, 0, 2720, 1080), Primary: true, Scale: 1.0},
		},
	}
	e := newTestEngine(screens, &fakeWindows{})

	sources, err := e.ListScreenSources()
	require.NoError(t, err)
	require.Len(t, sources, 2)

	assert.Equal(t, "0", sources[0].ID)
	assert.Equal(t, "Display 1: 800x600", sources[0].Name)
	assert.Equal(t, model.SourceMonitor, sources[0].Kind)
	assert.Equal(t, "0", sources[0].DisplayID)

	assert.Equal(t, "1", sources[1].ID)
	assert.Equal(t, "Display 2: 1920x1080 (Primary)", sources[1].Name)
}

func TestEngine_ListScreenSources_BackendError(t *testing.T) {
	e := newTestEngine(&fakeScreens{listErr: errors.New("no backend")}, &fakeWindows{})

	_, err := e.ListScreenSources()
	require.Error(t, err)
	assert.True(t, graberr.HasCode(err, graberr.CodeCaptureFailed))
}

func TestEngine_ListWindowSources_FiltersSystemWindows(t *testing.T) {
	wins := &fakeWindows{
		windows: []Window{
			{ID: "10", Title: "Editor", Bounds: image.Rect(0, 0, 640, 480)},
			{ID: "11", Title: "", Bounds: image.Rect(0, 0, 640, 480)},
			{ID: "12", Title: "Zero", Bounds: image.Rect(5, 5, 5, 5)},
		},
	}
	e := newTestEngine(&fakeScreens{}, wins)

	sources, err := e.ListWindowSources()
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "10", sources[0].ID)
	assert.Equal(t, "Editor", sources[0].Name)
	assert.Equal(t, model.SourceWindow, sources[0].Kind)
}

func TestEngine_CaptureFullScreen_PrefersPrimary(t *testing.T) {
	screens := &fakeScreens{
		monitors: []Monitor{
			{Index: 0, Bounds: image.Rect(0, 0, 800, 600), Scale: 1.0},
			{Index: 1, Bounds: image.Rect(800, 0, 2720, 1080), Primary: true, Scale: 2.0},
		},
		images: map[int]*image.RGBA{
			0: testImage(800, 600),
			1: testImage(1920, 1080),
		},
	}
	e := newTestEngine(screens, &fakeWindows{})

	img, meta, err := e.CaptureFullScreen()
	require.NoError(t, err)
	assert.Equal(t, 1920, img.Bounds().Dx())
	assert.Equal(t, model.ModeFullScreen, meta.Mode)
	assert.Equal(t, "1", meta.DisplayID)
	assert.Equal(t, 800, meta.Bounds.X)
	assert.Equal(t, uint(1920), meta.Bounds.Width)
	assert.Equal(t, 2.0, meta.ScaleFactor)
	assert.NotEmpty(t, meta.Timestamp)
}

func TestEngine_CaptureFullScreen_FallsBackToFirst(t *testing.T) {
	screens := &fakeScreens{
		monitors: []Monitor{
			{Index: 0, Bounds: image.Rect(0, 0, 800, 600), Scale: 1.0},
			{Index: 1, Bounds: image.Rect(800, 0, 2720, 1080), Scale: 1.0},
		},
		images: map[int]*image.RGBA{0: testImage(800, 600)},
	}
	e := newTestEngine(screens, &fakeWindows{})

	_, meta, err := e.CaptureFullScreen()
	require.NoError(t, err)
	assert.Equal(t, "0", meta.DisplayID)
}

func TestEngine_CaptureFullScreen_NoMonitors(t *testing.T) {
	e := newTestEngine(&fakeScreens{}, &fakeWindows{})

	_, _, err := e.CaptureFullScreen()
	require.Error(t, err)
	assert.True(t, graberr.HasCode(err, graberr.CodeSourceNotFound))
}

func TestEngine_CaptureDisplay(t *testing.T) {
	screens := &fakeScreens{
		monitors: []Monitor{
			{Index: 0, Bounds: image.Rect(0, 0, 800, 600), Primary: true, Scale: 1.0},
			{Index: 1, Bounds: image.Rect(800, 0, 2720, 1080), Scale: 1.0},
		},
		images: map[int]*image.RGBA{
			0: testImage(800, 600),
			1: testImage(1920, 1080),
		},
	}
	e := newTestEngine(screens, &fakeWindows{})

	img, meta, err := e.CaptureDisplay("1")
	require.NoError(t, err)
	assert.Equal(t, 1920, img.Bounds().Dx())
	assert.Equal(t, model.ModeDisplay, meta.Mode)
	assert.Equal(t, "1", meta.DisplayID)
}

func TestEngine_CaptureDisplay_NotFound(t *testing.T) {
	screens := &fakeScreens{
		monitors: []Monitor{{Index: 0, Bounds: image.Rect(0, 0, 800, 600), Primary: true}},
		images:   map[int]*image.RGBA{0: testImage(800, 600)},
	}
	e := newTestEngine(screens, &fakeWindows{})

	_, _, err := e.CaptureDisplay("9")
	require.Error(t, err)
	assert.True(t, graberr.HasCode(err, graberr.CodeSourceNotFound))
	assert.Contains(t, err.Error(), "display 9 not found")
}

func TestEngine_CaptureWindow(t *testing.T) {
	wins := &fakeWindows{
		windows: []Window{{ID: "42", Title: "Editor", Bounds: image.Rect(100, 50, 740, 530)}},
		images:  map[string]*image.RGBA{"42": testImage(640, 480)},
	}
	e := newTestEngine(&fakeScreens{}, wins)

	img, meta, err := e.CaptureWindow("42")
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, model.ModeWindow, meta.Mode)
	assert.Equal(t, "42", meta.WindowID)
	assert.Empty(t, meta.DisplayID)
	assert.Equal(t, 1.0, meta.ScaleFactor)
	assert.Equal(t, 100, meta.Bounds.X)
	assert.Equal(t, uint(640), meta.Bounds.Width)
}

func TestEngine_CaptureWindow_NotFound(t *testing.T) {
	e := newTestEngine(&fakeScreens{}, &fakeWindows{})

	_, _, err := e.CaptureWindow("42")
	require.Error(t, err)
	assert.True(t, graberr.HasCode(err, graberr.CodeSourceNotFound))
}

func TestEngine_CaptureRegion_ClampsToSource(t *testing.T) {
	src := testImage(300, 200)
	screens := &fakeScreens{
		monitors: []Monitor{{Index: 0, Bounds: image.Rect(0, 0, 300, 200), Primary: true, Scale: 1.0}},
		images:   map[int]*image.RGBA{0: src},
	}
	e := newTestEngine(screens, &fakeWindows{})

	region := model.RegionBounds{X: -10, Y: 20, Width: 100, Height: 500}
	img, meta, err := e.CaptureRegion(region, "")
	require.NoError(t, err)

	// Negative x clamps to 0, height shrinks to what the source has left.
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 180, img.Bounds().Dy())

	// Bounds echo the requested origin with the clamped dimensions.
	assert.Equal(t, model.ModeRegion, meta.Mode)
	assert.Equal(t, -10, meta.Bounds.X)
	assert.Equal(t, 20, meta.Bounds.Y)
	assert.Equal(t, uint(100), meta.Bounds.Width)
	assert.Equal(t, uint(180), meta.Bounds.Height)

	// Pixels come from the clamped origin.
	assert.Equal(t, src.RGBAAt(0, 20), img.RGBAAt(0, 0))
	assert.Equal(t, src.RGBAAt(99, 199), img.RGBAAt(99, 179))
}

func TestEngine_CaptureRegion_OutsideSource(t *testing.T) {
	screens := &fakeScreens{
		monitors: []Monitor{{Index: 0, Bounds: image.Rect(0, 0, 300, 200), Primary: true}},
		images:   map[int]*image.RGBA{0: testImage(300, 200)},
	}
	e := newTestEngine(screens, &fakeWindows{})

	_, _, err := e.CaptureRegion(model.RegionBounds{X: 500, Y: 0, Width: 50, Height: 50}, "")
	require.Error(t, err)
	assert.True(t, graberr.HasCode(err, graberr.CodeInvalidRequest))
}

func TestEngine_CaptureRegion_ZeroSizeRegion(t *testing.T) {
	screens := &fakeScreens{
		monitors: []Monitor{{Index: 0, Bounds: image.Rect(0, 0, 300, 200), Primary: true}},
		images:   map[int]*image.RGBA{0: testImage(300, 200)},
	}
	e := newTestEngine(screens, &fakeWindows{})

	_, _, err := e.CaptureRegion(model.RegionBounds{X: 10, Y: 10, Width: 0, Height: 40}, "")
	require.Error(t, err)
	assert.True(t, graberr.HasCode(err, graberr.CodeInvalidRequest))
}

func TestEngine_CaptureRegion_OnNamedDisplay(t *testing.T) {
	screens := &fakeScreens{
		monitors: []Monitor{
			{Index: 0, Bounds: image.Rect(0, 0, 800, 600), Primary: true, Scale: 1.0},
			{Index: 1, Bounds: image.Rect(800, 0, 2720, 1080), Scale: 1.0},
		},
		images: map[int]*image.RGBA{
			0: testImage(800, 600),
			1: testImage(1920, 1080),
		},
	}
	e := newTestEngine(screens, &fakeWindows{})

	img, meta, err := e.CaptureRegion(model.RegionBounds{X: 0, Y: 0, Width: 400, Height: 300}, "1")
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, model.ModeRegion, meta.Mode)
	assert.Equal(t, "1", meta.DisplayID)
}

func TestEngine_CaptureRegion_PropagatesSourceNotFound(t *testing.T) {
	screens := &fakeScreens{
		monitors: []Monitor{{Index: 0, Bounds: image.Rect(0, 0, 300, 200), Primary: true}},
		images:   map[int]*image.RGBA{0: testImage(300, 200)},
	}
	e := newTestEngine(screens, &fakeWindows{})

	_, _, err := e.CaptureRegion(model.RegionBounds{X: 0, Y: 0, Width: 10, Height: 10}, "7")
	require.Error(t, err)
	assert.True(t, graberr.HasCode(err, graberr.CodeSourceNotFound))
}
