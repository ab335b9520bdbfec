package overlay

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// dragHandle is a blank grip that moves the borderless window when dragged.
type dragHandle struct {
	widget.BaseWidget
	onDrag func(dx, dy float32)
}

func newDragHandle(onDrag func(dx, dy float32)) *dragHandle {
	handle := &dragHandle{onDrag: onDrag}
	handle.ExtendBaseWidget(handle)
	return handle
}

func (handle *dragHandle) CreateRenderer() fyne.WidgetRenderer {
	grip := canvas.NewRectangle(theme.Color(theme.ColorNameDisabledButton))
	grip.SetMinSize(fyne.NewSize(theme.IconInlineSize()+theme.Padding(), theme.IconInlineSize()))
	return widget.NewSimpleRenderer(grip)
}

func (handle *dragHandle) Dragged(event *fyne.DragEvent) {
	if handle.onDrag != nil {
		handle.onDrag(event.Dragged.DX, event.Dragged.DY)
	}
}

func (handle *dragHandle) DragEnd() {}
