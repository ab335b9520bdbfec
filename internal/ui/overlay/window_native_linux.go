//go:build linux

package overlay

import (
	"log/slog"

	"stopwatch/internal/core/model"
	"stopwatch/internal/platform"

	"fyne.io/fyne/v2/driver"
)

// nativeState runs xdotool calls in order on a worker goroutine so the GUI
// thread never waits on a subprocess.
type nativeState struct {
	stacker *platform.Stacker
	jobs    chan func(*platform.Stacker) error
}

func newNativeState() nativeState {
	stacker, err := platform.NewStacker()
	if err != nil {
		slog.Debug("window stacking unavailable", "error", err)
		return nativeState{}
	}
	state := nativeState{
		stacker: stacker,
		jobs:    make(chan func(*platform.Stacker) error, 16),
	}
	go state.work()
	return state
}

func (state nativeState) work() {
	for job := range state.jobs {
		if err := job(state.stacker); err != nil {
			slog.Debug("window stacking failed", "error", err)
		}
	}
}

// SupportsStacking reports whether SetTopmost and Lower have any effect.
func (overlay *Window) SupportsStacking() bool {
	return overlay.native.stacker != nil
}

// SetTopmost raises the overlay above normal windows or releases it.
func (overlay *Window) SetTopmost(enabled bool) {
	overlay.enqueue(func(stacker *platform.Stacker, windowID uint64) error {
		return stacker.SetAbove(windowID, enabled)
	})
}

// Lower sends the overlay behind other windows.
func (overlay *Window) Lower() {
	overlay.enqueue(func(stacker *platform.Stacker, windowID uint64) error {
		return stacker.Lower(windowID)
	})
}

func (overlay *Window) applyNativeOpacity(uint8) {}

func (overlay *Window) placeNative(geometry model.Geometry) {
	overlay.enqueue(func(stacker *platform.Stacker, windowID uint64) error {
		return stacker.Place(windowID, geometry.RightOffset, geometry.BottomOffset)
	})
}

func (overlay *Window) moveBy(dx, dy float32) {
	overlay.enqueue(func(stacker *platform.Stacker, windowID uint64) error {
		return stacker.MoveBy(windowID, int(dx), int(dy))
	})
}

// enqueue resolves the X11 window id on the GUI thread and hands the call to
// the worker. Calls are dropped while the queue is full.
func (overlay *Window) enqueue(call func(*platform.Stacker, uint64) error) {
	if overlay.native.stacker == nil {
		return
	}
	nativeWindow, ok := overlay.window.(driver.NativeWindow)
	if !ok {
		return
	}

	var windowID uint64
	nativeWindow.RunNative(func(context any) {
		switch value := context.(type) {
		case driver.X11WindowContext:
			windowID = uint64(value.WindowHandle)
		case *driver.X11WindowContext:
			windowID = uint64(value.WindowHandle)
		}
	})
	if windowID == 0 {
		return
	}

	select {
	case overlay.native.jobs <- func(stacker *platform.Stacker) error { return call(stacker, windowID) }:
	default:
	}
}
