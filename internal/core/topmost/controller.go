package topmost

import (
	"context"
	"time"
)

// DefaultInterval is how often the topmost flag is re-evaluated.
const DefaultInterval = time.Second

// FullscreenDetector reports whether a fullscreen application has focus.
type FullscreenDetector interface {
	IsFullscreen() bool
}

// Window is the overlay as seen by the controller.
type Window interface {
	SetTopmost(enabled bool)
	Lower()
}

// Scheduler runs fn on the thread that owns the window.
type Scheduler func(fn func())

// Controller keeps the overlay above other windows, except while a
// fullscreen application has focus.
type Controller struct {
	detector FullscreenDetector
	window   Window
	interval time.Duration
	schedule Scheduler
}

// New creates a controller. A nil scheduler runs window updates inline.
func New(detector FullscreenDetector, window Window, interval time.Duration, schedule Scheduler) *Controller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if schedule == nil {
		schedule = func(fn func()) { fn() }
	}
	return &Controller{
		detector: detector,
		window:   window,
		interval: interval,
		schedule: schedule,
	}
}

// Enforce evaluates the foreground window once and updates the overlay.
// The flag is always cleared first: some window managers ignore assigning
// topmost to a window that already has it.
func (controller *Controller) Enforce() bool {
	fullscreen := controller.detector.IsFullscreen()
	controller.schedule(func() {
		controller.window.SetTopmost(false)
		if fullscreen {
			controller.window.Lower()
			return
		}
		controller.window.SetTopmost(true)
	})
	return fullscreen
}

// Run enforces immediately and then on every interval until ctx is done.
func (controller *Controller) Run(ctx context.Context) {
	controller.Enforce()

	ticker := time.NewTicker(controller.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			controller.Enforce()
		}
	}
}
