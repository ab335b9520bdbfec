package platform

type windowSource struct{}

func newWindowSource() WindowSource {
	return &windowSource{}
}

func (source *windowSource) ForegroundRect() (Rect, error) {
	return Rect{}, ErrForegroundUnsupported
}

func (source *windowSource) ScreenSize() (int, int, error) {
	return 0, 0, ErrForegroundUnsupported
}
