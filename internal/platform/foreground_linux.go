package platform

type windowSource struct {
	run runFunc
}

type unsupportedWindowSource struct{}

func newWindowSource() WindowSource {
	run, err := lookupXdotool()
	if err != nil {
		return unsupportedWindowSource{}
	}
	return &windowSource{run: run}
}

func (source *windowSource) ForegroundRect() (Rect, error) {
	output, err := source.run("getactivewindow", "getwindowgeometry", "--shell")
	if err != nil {
		return Rect{}, err
	}
	return parseWindowGeometry(output)
}

func (source *windowSource) ScreenSize() (int, int, error) {
	output, err := source.run("getdisplaygeometry")
	if err != nil {
		return 0, 0, err
	}
	return parseDisplayGeometry(output)
}

func (unsupportedWindowSource) ForegroundRect() (Rect, error) {
	return Rect{}, ErrForegroundUnsupported
}

func (unsupportedWindowSource) ScreenSize() (int, int, error) {
	return 0, 0, ErrForegroundUnsupported
}
