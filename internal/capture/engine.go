package capture

import (
	"fmt"
	"image"
	"strconv"

	"github.com/akv004/grab/internal/graberr"
	"github.com/akv004/grab/internal/logging"
	"github.com/akv004/grab/internal/model"
)

// Engine runs captures against pluggable screen and window backends and
// stamps metadata describing each grab.
type Engine struct {
	screens ScreenBackend
	windows WindowBackend
	log     *logging.Logger
}

// NewEngine wires an engine to its backends.
func NewEngine(screens ScreenBackend, windows WindowBackend, log *logging.Logger) *Engine {
	return &Engine{
		screens: screens,
		windows: windows,
		log:     log,
	}
}

// ListScreenSources enumerates monitors as capture sources with labels like
// "Display 1: 2560x1440 (Primary)".
func (e *Engine) ListScreenSources() ([]model.CaptureSource, error) {
	monitors, err := e.screens.Monitors()
	if err != nil {
		return nil, graberr.Wrap(graberr.CodeCaptureFailed, "enumerate displays", err)
	}

	sources := make([]model.CaptureSource, 0, len(monitors))
	for i, m := range monitors {
		primary := ""
		if m.Primary {
			primary = " (Primary)"
		}
		id := strconv.Itoa(m.Index)
		sources = append(sources, model.CaptureSource{
			ID:        id,
			Name:      fmt.Sprintf("Display %d: %dx%d%s", i+1, m.Bounds.Dx(), m.Bounds.Dy(), primary),
			Kind:      model.SourceMonitor,
			DisplayID: id,
		})
	}
	return sources, nil
}

// ListWindowSources enumerates windows, skipping zero-sized or untitled
// ones; those are background surfaces, not meaningful capture targets.
func (e *Engine) ListWindowSources() ([]model.CaptureSource, error) {
	wins, err := e.windows.Windows()
	if err != nil {
		return nil, graberr.Wrap(graberr.CodeCaptureFailed, "enumerate windows", err)
	}

	sources := make([]model.CaptureSource, 0, len(wins))
	for _, w := range wins {
		if w.Bounds.Dx() <= 0 || w.Bounds.Dy() <= 0 || w.Title == "" {
			continue
		}
		sources = append(sources, model.CaptureSource{
			ID:   w.ID,
			Name: w.Title,
			Kind: model.SourceWindow,
		})
	}
	return sources, nil
}

// CaptureFullScreen grabs the primary monitor, falling back to the first
// enumerated one when none is flagged primary.
func (e *Engine) CaptureFullScreen() (*image.RGBA, model.CaptureMetadata, error) {
	monitors, err := e.screens.Monitors()
	if err != nil {
		return nil, model.CaptureMetadata{}, graberr.Wrap(graberr.CodeCaptureFailed, "enumerate displays", err)
	}
	if len(monitors) == 0 {
		return nil, model.CaptureMetadata{}, graberr.New(graberr.CodeSourceNotFound, "no monitors found")
	}

	monitor := monitors[0]
	for _, m := range monitors {
		if m.Primary {
			monitor = m
			break
		}
	}
	return e.captureMonitor(monitor, model.ModeFullScreen)
}

// CaptureDisplay grabs the monitor with the given source id.
func (e *Engine) CaptureDisplay(displayID string) (*image.RGBA, model.CaptureMetadata, error) {
	monitors, err := e.screens.Monitors()
	if err != nil {
		return nil, model.CaptureMetadata{}, graberr.Wrap(graberr.CodeCaptureFailed, "enumerate displays", err)
	}
	for _, m := range monitors {
		if strconv.Itoa(m.Index) == displayID {
			return e.captureMonitor(m, model.ModeDisplay)
		}
	}
	return nil, model.CaptureMetadata{}, graberr.Newf(graberr.CodeSourceNotFound, "display %s not found", displayID)
}

func (e *Engine) captureMonitor(m Monitor, mode model.CaptureMode) (*image.RGBA, model.CaptureMetadata, error) {
	img, err := e.screens.Capture(m.Index)
	if err != nil {
		return nil, model.CaptureMetadata{}, graberr.Wrap(graberr.CodeCaptureFailed, "capture display", err)
	}

	meta := model.NewCaptureMetadata(mode, regionOf(m.Bounds), m.Scale)
	meta.DisplayID = strconv.Itoa(m.Index)
	return img, meta, nil
}

// CaptureWindow grabs the window with the given source id. Windows report a
// scale factor of 1.0; per-window scale is not tracked.
func (e *Engine) CaptureWindow(windowID string) (*image.RGBA, model.CaptureMetadata, error) {
	wins, err := e.windows.Windows()
	if err != nil {
		return nil, model.CaptureMetadata{}, graberr.Wrap(graberr.CodeCaptureFailed, "enumerate windows", err)
	}
	for _, w := range wins {
		if w.ID != windowID {
			continue
		}
		img, err := e.windows.Capture(w.ID)
		if err != nil {
			return nil, model.CaptureMetadata{}, graberr.Wrap(graberr.CodeCaptureFailed, "capture window", err)
		}
		meta := model.NewCaptureMetadata(model.ModeWindow, regionOf(w.Bounds), 1.0)
		meta.WindowID = w.ID
		return img, meta, nil
	}
	return nil, model.CaptureMetadata{}, graberr.Newf(graberr.CodeSourceNotFound, "window %s not found", windowID)
}

// CaptureRegion grabs a display (the primary one when displayID is empty)
// and crops it to region. The clamp keeps x and y non-negative and shrinks
// width and height to what the source can supply; a region entirely outside
// the source is an InvalidRequest. The returned bounds carry the requested
// x/y with the clamped dimensions, so callers can detect clamping by
// comparing against what they asked for.
func (e *Engine) CaptureRegion(region model.RegionBounds, displayID string) (*image.RGBA, model.CaptureMetadata, error) {
	var (
		img  *image.RGBA
		meta model.CaptureMetadata
		err  error
	)
	if displayID != "" {
		img, meta, err = e.CaptureDisplay(displayID)
	} else {
		img, meta, err = e.CaptureFullScreen()
	}
	if err != nil {
		return nil, model.CaptureMetadata{}, err
	}

	x := region.X
	if x < 0 {
		x = 0
	}
	y := region.Y
	if y < 0 {
		y = 0
	}
	width := clampDim(region.Width, img.Bounds().Dx()-x)
	height := clampDim(region.Height, img.Bounds().Dy()-y)
	if width == 0 || height == 0 {
		return nil, model.CaptureMetadata{}, graberr.New(graberr.CodeInvalidRequest, "invalid region dimensions")
	}

	cropped := cropRGBA(img, x, y, width, height)

	meta.Mode = model.ModeRegion
	meta.Bounds = model.RegionBounds{
		X:      region.X,
		Y:      region.Y,
		Width:  uint(width),
		Height: uint(height),
	}
	return cropped, meta, nil
}

// regionOf converts a canonical rectangle into region bounds.
func regionOf(r image.Rectangle) model.RegionBounds {
	return model.RegionBounds{
		X:      r.Min.X,
		Y:      r.Min.Y,
		Width:  uint(r.Dx()),
		Height: uint(r.Dy()),
	}
}

// clampDim limits a requested dimension to what remains of the source,
// saturating at zero.
func clampDim(requested uint, available int) int {
	if available <= 0 {
		return 0
	}
	if requested < uint(available) {
		return int(requested)
	}
	return available
}

// cropRGBA copies the w by h rectangle at (x, y) into a fresh image backed
// by its own pixel buffer.
func cropRGBA(src *image.RGBA, x, y, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	origin := src.Bounds().Min
	for row := 0; row < h; row++ {
		srcOff := src.PixOffset(origin.X+x, origin.Y+y+row)
		copy(dst.Pix[row*dst.Stride:row*dst.Stride+w*4], src.Pix[srcOff:srcOff+w*4])
	}
	return dst
}
