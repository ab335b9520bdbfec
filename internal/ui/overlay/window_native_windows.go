//go:build windows

package overlay

import (
	"syscall"
	"unsafe"

	"stopwatch/internal/core/model"

	"fyne.io/fyne/v2/driver"
)

const (
	gwlExStyle  int32 = -20
	wsExLayered       = 0x00080000
	lwaAlpha          = 0x2

	smCxScreen = 0
	smCyScreen = 1

	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
	swpNoZOrder   = 0x0004
	swpNoActivate = 0x0010

	hwndBottom = uintptr(1)
)

var (
	hwndTopmost   = ^uintptr(0) // (HWND)-1
	hwndNoTopmost = ^uintptr(1) // (HWND)-2
)

var (
	user32DLL                      = syscall.NewLazyDLL("user32.dll")
	procGetWindowLongPtrW          = user32DLL.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtrW          = user32DLL.NewProc("SetWindowLongPtrW")
	procSetLayeredWindowAttributes = user32DLL.NewProc("SetLayeredWindowAttributes")
	procSetWindowPos               = user32DLL.NewProc("SetWindowPos")
	procGetWindowRect              = user32DLL.NewProc("GetWindowRect")
	procGetSystemMetrics           = user32DLL.NewProc("GetSystemMetrics")
)

type nativeRect struct {
	Left, Top, Right, Bottom int32
}

type nativeState struct{}

func newNativeState() nativeState { return nativeState{} }

// SupportsStacking reports whether SetTopmost and Lower have any effect.
func (overlay *Window) SupportsStacking() bool { return true }

// SetTopmost raises the overlay above normal windows or releases it.
func (overlay *Window) SetTopmost(enabled bool) {
	insertAfter := hwndNoTopmost
	if enabled {
		insertAfter = hwndTopmost
	}
	overlay.runNative(func(hwnd uintptr) {
		procSetWindowPos.Call(hwnd, insertAfter, 0, 0, 0, 0, swpNoMove|swpNoSize|swpNoActivate)
	})
}

// Lower sends the overlay behind other windows.
func (overlay *Window) Lower() {
	overlay.runNative(func(hwnd uintptr) {
		procSetWindowPos.Call(hwnd, hwndBottom, 0, 0, 0, 0, swpNoMove|swpNoSize|swpNoActivate)
	})
}

func (overlay *Window) applyNativeOpacity(alpha uint8) {
	overlay.runNative(func(hwnd uintptr) {
		style, _, _ := procGetWindowLongPtrW.Call(hwnd, int32ToUintptr(gwlExStyle))
		if style&wsExLayered == 0 {
			procSetWindowLongPtrW.Call(hwnd, int32ToUintptr(gwlExStyle), style|wsExLayered)
		}
		procSetLayeredWindowAttributes.Call(hwnd, 0, uintptr(alpha), uintptr(lwaAlpha))
	})
}

// placeNative anchors the window's top-left corner at the offsets measured
// from the bottom-right corner of the primary screen.
func (overlay *Window) placeNative(geometry model.Geometry) {
	overlay.runNative(func(hwnd uintptr) {
		screenWidth, _, _ := procGetSystemMetrics.Call(smCxScreen)
		screenHeight, _, _ := procGetSystemMetrics.Call(smCyScreen)
		x := int32(screenWidth) - int32(geometry.RightOffset)
		y := int32(screenHeight) - int32(geometry.BottomOffset)
		procSetWindowPos.Call(
			hwnd, 0,
			int32ToUintptr(x), int32ToUintptr(y),
			uintptr(geometry.Width), uintptr(geometry.Height),
			swpNoActivate|swpNoZOrder,
		)
	})
}

func (overlay *Window) moveBy(dx, dy float32) {
	overlay.runNative(func(hwnd uintptr) {
		var rect nativeRect
		ok, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&rect)))
		if ok == 0 {
			return
		}
		x := rect.Left + int32(dx)
		y := rect.Top + int32(dy)
		procSetWindowPos.Call(
			hwnd, 0,
			int32ToUintptr(x), int32ToUintptr(y), 0, 0,
			swpNoSize|swpNoActivate|swpNoZOrder,
		)
	})
}

func (overlay *Window) runNative(fn func(hwnd uintptr)) {
	nativeWindow, ok := overlay.window.(driver.NativeWindow)
	if !ok {
		return
	}

	nativeWindow.RunNative(func(context any) {
		var hwnd uintptr
		switch value := context.(type) {
		case driver.WindowsWindowContext:
			hwnd = value.HWND
		case *driver.WindowsWindowContext:
			hwnd = value.HWND
		default:
			return
		}
		if hwnd == 0 {
			return
		}
		fn(hwnd)
	})
}

func int32ToUintptr(value int32) uintptr {
	return uintptr(uint32(value))
}
