//go:build windows
// +build windows

package capture

import (
	"fmt"
	"image"
	"strconv"
	"sync"
	"syscall"
	"unsafe"

	"github.com/kbinani/screenshot"
	"golang.org/x/sys/windows"
)

var (
	user32              = windows.NewLazySystemDLL("user32.dll")
	procEnumWindows     = user32.NewProc("EnumWindows")
	procIsWindowVisible = user32.NewProc("IsWindowVisible")
	procGetWindowTextW  = user32.NewProc("GetWindowTextW")
	procGetWindowRect   = user32.NewProc("GetWindowRect")
)

type winRect struct {
	Left, Top, Right, Bottom int32
}

// Callbacks created by syscall.NewCallback are never released, so a single
// one is shared; enumMu serializes its use of enumResult.
var (
	enumMu       sync.Mutex
	enumResult   []Window
	enumCallback = syscall.NewCallback(collectWindow)
)

func collectWindow(hwnd uintptr, _ uintptr) uintptr {
	visible, _, _ := procIsWindowVisible.Call(hwnd)
	if visible == 0 {
		return 1
	}

	var buf [512]uint16
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	title := syscall.UTF16ToString(buf[:n])

	var rect winRect
	ok, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&rect)))
	if ok == 0 {
		return 1
	}

	enumResult = append(enumResult, Window{
		ID:     strconv.FormatUint(uint64(hwnd), 10),
		Title:  title,
		Bounds: image.Rect(int(rect.Left), int(rect.Top), int(rect.Right), int(rect.Bottom)),
	})
	return 1
}

// NativeWindowBackend enumerates visible top-level windows through user32
// and grabs their pixels by screen rectangle.
type NativeWindowBackend struct{}

// NewWindowBackend returns the platform window backend.
func NewWindowBackend() WindowBackend { return NativeWindowBackend{} }

// Windows lists the currently visible top-level windows.
func (NativeWindowBackend) Windows() ([]Window, error) {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumResult = nil
	ret, _, err := procEnumWindows.Call(enumCallback, 0)
	if ret == 0 {
		return nil, fmt.Errorf("enumerate windows: %v", err)
	}

	out := make([]Window, len(enumResult))
	copy(out, enumResult)
	enumResult = nil
	return out, nil
}

// Capture grabs the pixels of the window with the given id. The rectangle
// is re-resolved at capture time, so a moved window is grabbed where it is
// now.
func (b NativeWindowBackend) Capture(id string) (*image.RGBA, error) {
	wins, err := b.Windows()
	if err != nil {
		return nil, err
	}
	for _, w := range wins {
		if w.ID == id {
			return screenshot.CaptureRect(w.Bounds)
		}
	}
	return nil, fmt.Errorf("window %s not found", id)
}
