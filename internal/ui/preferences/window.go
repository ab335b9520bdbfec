package preferences

import (
	"stopwatch/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window       fyne.Window
	onSave       func(model.Geometry) error
	width        *widget.Entry
	height       *widget.Entry
	rightOffset  *widget.Entry
	bottomOffset *widget.Entry
}

// New creates a preferences window. onSave receives validated geometry; an
// error keeps the window open and is shown to the user.
func New(app fyne.App, geometry model.Geometry, onSave func(model.Geometry) error) *Window {
	window := app.NewWindow("Stopwatch Settings")

	prefs := &Window{
		window:       window,
		onSave:       onSave,
		width:        widget.NewEntry(),
		height:       widget.NewEntry(),
		rightOffset:  widget.NewEntry(),
		bottomOffset: widget.NewEntry(),
	}
	prefs.UpdateGeometry(geometry)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Overlay", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewGridWithColumns(2,
			widget.NewLabel("Width (px)"), prefs.width,
			widget.NewLabel("Height (px)"), prefs.height,
			widget.NewLabel("Offset from right (px)"), prefs.rightOffset,
			widget.NewLabel("Offset from bottom (px)"), prefs.bottomOffset,
		),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 220))
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateGeometry replaces window values.
func (prefs *Window) UpdateGeometry(geometry model.Geometry) {
	settings := SettingsFromGeometry(geometry)
	prefs.width.SetText(settings.Width)
	prefs.height.SetText(settings.Height)
	prefs.rightOffset.SetText(settings.RightOffset)
	prefs.bottomOffset.SetText(settings.BottomOffset)
}

func (prefs *Window) handleSave() {
	settings := Settings{
		Width:        prefs.width.Text,
		Height:       prefs.height.Text,
		RightOffset:  prefs.rightOffset.Text,
		BottomOffset: prefs.bottomOffset.Text,
	}
	geometry, err := settings.Geometry()
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}
	if prefs.onSave != nil {
		if err := prefs.onSave(geometry); err != nil {
			dialog.ShowError(err, prefs.window)
			return
		}
	}
	prefs.window.Hide()
}
