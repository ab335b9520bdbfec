package resources

import (
	_ "embed"

	"fyne.io/fyne/v2"
)

//go:embed icon.svg
var iconSVG []byte

var icon = fyne.NewStaticResource("icon.svg", iconSVG)

// Icon returns the application icon used by the overlay and the tray.
func Icon() fyne.Resource {
	return icon
}
