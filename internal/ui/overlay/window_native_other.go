//go:build !windows && !linux

package overlay

import "stopwatch/internal/core/model"

type nativeState struct{}

func newNativeState() nativeState { return nativeState{} }

// SupportsStacking reports whether SetTopmost and Lower have any effect.
func (overlay *Window) SupportsStacking() bool { return false }

// SetTopmost is a no-op where the toolkit offers no z-order control.
func (overlay *Window) SetTopmost(bool) {}

// Lower is a no-op where the toolkit offers no z-order control.
func (overlay *Window) Lower() {}

func (overlay *Window) applyNativeOpacity(uint8) {}

func (overlay *Window) placeNative(model.Geometry) {}

func (overlay *Window) moveBy(float32, float32) {}
