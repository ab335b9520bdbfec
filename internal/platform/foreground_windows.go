package platform

import (
	"fmt"
	"syscall"
	"unsafe"
)

const (
	smCxScreen = 0
	smCyScreen = 1
)

var (
	user32DLL               = syscall.NewLazyDLL("user32.dll")
	procGetForegroundWindow = user32DLL.NewProc("GetForegroundWindow")
	procGetWindowRect       = user32DLL.NewProc("GetWindowRect")
	procGetSystemMetrics    = user32DLL.NewProc("GetSystemMetrics")
)

type win32Rect struct {
	left   int32
	top    int32
	right  int32
	bottom int32
}

type windowSource struct{}

func newWindowSource() WindowSource {
	return &windowSource{}
}

func (source *windowSource) ForegroundRect() (Rect, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return Rect{}, fmt.Errorf("get foreground window: no window has focus")
	}

	var rect win32Rect
	result, _, err := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&rect)))
	if result == 0 {
		if err != nil {
			return Rect{}, fmt.Errorf("get window rect: %w", err)
		}
		return Rect{}, fmt.Errorf("get window rect: unknown error")
	}

	return Rect{
		Left:   int(rect.left),
		Top:    int(rect.top),
		Right:  int(rect.right),
		Bottom: int(rect.bottom),
	}, nil
}

func (source *windowSource) ScreenSize() (int, int, error) {
	width, _, _ := procGetSystemMetrics.Call(smCxScreen)
	height, _, _ := procGetSystemMetrics.Call(smCyScreen)
	if width == 0 || height == 0 {
		return 0, 0, fmt.Errorf("get system metrics: screen size unavailable")
	}
	return int(int32(width)), int(int32(height)), nil
}
