package overlay

import (
	"image/color"

	"stopwatch/internal/core/model"
	"stopwatch/internal/core/stopwatch"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Config defines overlay visuals.
type Config struct {
	Geometry model.Geometry
	Opacity  float64
	Reduced  bool
}

// Callbacks defines overlay control handlers.
type Callbacks struct {
	OnStart             func()
	OnTogglePause       func()
	OnReset             func()
	OnTogglePerformance func()
	OnExit              func()
}

// Window manages the stopwatch overlay.
type Window struct {
	window            fyne.Window
	config            Config
	label             *canvas.Text
	pauseButton       *widget.Button
	performanceButton *widget.Button
	native            nativeState
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the overlay window. It is not shown until Show is called.
func New(app fyne.App, config Config, callbacks Callbacks) *Window {
	window := app.NewWindow("Stopwatch")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)
	window.SetFixedSize(true)

	label := canvas.NewText(stopwatch.ZeroDisplay, theme.Color(theme.ColorNameForeground))
	label.Alignment = fyne.TextAlignCenter
	label.TextSize = 14
	label.TextStyle = fyne.TextStyle{Monospace: true}

	overlay := &Window{
		window: window,
		config: config,
		label:  label,
		native: newNativeState(),
	}

	startButton := widget.NewButton("Start", func() { call(callbacks.OnStart) })
	overlay.pauseButton = widget.NewButton("Pause", func() { call(callbacks.OnTogglePause) })
	resetButton := widget.NewButton("Reset", func() { call(callbacks.OnReset) })
	overlay.performanceButton = widget.NewButton(performanceLabel(config.Reduced), func() { call(callbacks.OnTogglePerformance) })
	exitButton := widget.NewButton("X", func() { call(callbacks.OnExit) })
	for _, button := range []*widget.Button{startButton, overlay.pauseButton, resetButton, overlay.performanceButton, exitButton} {
		button.Importance = widget.LowImportance
	}

	buttons := container.NewHBox(
		startButton,
		overlay.pauseButton,
		resetButton,
		overlay.performanceButton,
		newDragHandle(overlay.moveBy),
		layout.NewSpacer(),
		exitButton,
	)
	background := canvas.NewRectangle(color.NRGBA{R: 0x11, G: 0x11, B: 0x1b, A: opacityToAlpha(config.Opacity)})
	window.SetContent(container.NewStack(background, container.NewVBox(label, buttons)))

	window.SetOnClosed(func() { call(callbacks.OnExit) })

	return overlay
}

// Show displays the overlay at its configured position.
func (overlay *Window) Show() {
	overlay.window.Resize(fyne.NewSize(float32(overlay.config.Geometry.Width), float32(overlay.config.Geometry.Height)))
	overlay.window.Show()
	overlay.applyNative()
}

// Close destroys the window.
func (overlay *Window) Close() {
	overlay.window.SetOnClosed(nil)
	overlay.window.Close()
}

// SetElapsed updates the elapsed label. Safe to call from any goroutine.
func (overlay *Window) SetElapsed(text string) {
	fyne.Do(func() {
		if overlay.label.Text == text {
			return
		}
		overlay.label.Text = text
		overlay.label.Refresh()
	})
}

// SetPaused flips the pause button between Pause and Resume.
func (overlay *Window) SetPaused(paused bool) {
	if paused {
		overlay.pauseButton.SetText("Resume")
		return
	}
	overlay.pauseButton.SetText("Pause")
}

// SetReducedMode updates the performance toggle label.
func (overlay *Window) SetReducedMode(reduced bool) {
	overlay.config.Reduced = reduced
	overlay.performanceButton.SetText(performanceLabel(reduced))
}

// ShowError shows a blocking notice over the overlay.
func (overlay *Window) ShowError(title, message string) {
	dialog.ShowInformation(title, message, overlay.window)
}

// UpdateGeometry resizes and repositions the overlay.
func (overlay *Window) UpdateGeometry(geometry model.Geometry) {
	overlay.config.Geometry = geometry
	overlay.window.Resize(fyne.NewSize(float32(geometry.Width), float32(geometry.Height)))
	overlay.applyNative()
}

func (overlay *Window) applyNative() {
	overlay.applyNativeOpacity(opacityToAlpha(overlay.config.Opacity))
	overlay.placeNative(overlay.config.Geometry)
}

func call(callback func()) {
	if callback != nil {
		callback()
	}
}

func performanceLabel(reduced bool) string {
	if reduced {
		return " N "
	}
	return " P "
}

func opacityToAlpha(opacity float64) uint8 {
	if opacity <= 0 {
		opacity = 1
	}
	if opacity > 1 {
		opacity = 1
	}
	return uint8(opacity * 255)
}
