package platform

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrForegroundUnsupported indicates foreground window queries are not
// available on this system.
var ErrForegroundUnsupported = errors.New("foreground window detection unsupported")

// Rect is a window rectangle in screen pixels. Right and Bottom are exclusive.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

func (rect Rect) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", rect.Left, rect.Top, rect.Right, rect.Bottom)
}

// WindowSource queries the OS for the focused window and the primary display.
type WindowSource interface {
	ForegroundRect() (Rect, error)
	ScreenSize() (width, height int, err error)
}

// ForegroundMonitor decides whether the focused window covers the whole
// primary screen.
type ForegroundMonitor struct {
	source WindowSource
	logger *slog.Logger
}

// NewForegroundMonitor returns a monitor backed by the platform window source.
func NewForegroundMonitor(logger *slog.Logger) *ForegroundMonitor {
	return NewForegroundMonitorWithSource(newWindowSource(), logger)
}

// NewForegroundMonitorWithSource returns a monitor backed by source.
func NewForegroundMonitorWithSource(source WindowSource, logger *slog.Logger) *ForegroundMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &ForegroundMonitor{source: source, logger: logger}
}

// IsFullscreen reports whether the foreground window rectangle equals the
// primary screen. Query failures count as not fullscreen.
func (monitor *ForegroundMonitor) IsFullscreen() bool {
	rect, err := monitor.source.ForegroundRect()
	if err != nil {
		monitor.logFailure("foreground window", err)
		return false
	}
	width, height, err := monitor.source.ScreenSize()
	if err != nil {
		monitor.logFailure("screen size", err)
		return false
	}
	return rect == Rect{Left: 0, Top: 0, Right: width, Bottom: height}
}

func (monitor *ForegroundMonitor) logFailure(query string, err error) {
	if errors.Is(err, ErrForegroundUnsupported) {
		monitor.logger.Debug("fullscreen check skipped", "query", query, "error", err)
		return
	}
	monitor.logger.Warn("fullscreen check failed", "query", query, "error", err)
}
