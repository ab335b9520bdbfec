package platform

import "strconv"

// Stacker changes the stacking order and position of X11 windows through
// xdotool. Window ids come from the toolkit's native window handle.
type Stacker struct {
	run runFunc
}

// NewStacker returns a stacker, or ErrForegroundUnsupported when xdotool
// cannot be used.
func NewStacker() (*Stacker, error) {
	run, err := lookupXdotool()
	if err != nil {
		return nil, err
	}
	return &Stacker{run: run}, nil
}

// SetAbove adds or removes the always-on-top state of a window.
func (stacker *Stacker) SetAbove(windowID uint64, enabled bool) error {
	_, err := stacker.run(aboveArgs(windowID, enabled)...)
	return err
}

// Lower sends a window to the bottom of the stack.
func (stacker *Stacker) Lower(windowID uint64) error {
	_, err := stacker.run(lowerArgs(windowID)...)
	return err
}

// Place moves a window so its top-left corner sits rightOffset and
// bottomOffset pixels from the bottom-right corner of the display.
func (stacker *Stacker) Place(windowID uint64, rightOffset, bottomOffset int) error {
	output, err := stacker.run("getdisplaygeometry")
	if err != nil {
		return err
	}
	width, height, err := parseDisplayGeometry(output)
	if err != nil {
		return err
	}
	_, err = stacker.run(moveArgs(windowID, width-rightOffset, height-bottomOffset, false)...)
	return err
}

// MoveBy shifts a window by dx, dy pixels.
func (stacker *Stacker) MoveBy(windowID uint64, dx, dy int) error {
	if dx == 0 && dy == 0 {
		return nil
	}
	_, err := stacker.run(moveArgs(windowID, dx, dy, true)...)
	return err
}

func aboveArgs(windowID uint64, enabled bool) []string {
	action := "--remove"
	if enabled {
		action = "--add"
	}
	return []string{"windowstate", action, "ABOVE", windowIDArg(windowID)}
}

func lowerArgs(windowID uint64) []string {
	return []string{"windowlower", windowIDArg(windowID)}
}

func moveArgs(windowID uint64, x, y int, relative bool) []string {
	args := []string{"windowmove"}
	if relative {
		args = append(args, "--relative")
	}
	return append(args, windowIDArg(windowID), strconv.Itoa(x), strconv.Itoa(y))
}

func windowIDArg(windowID uint64) string {
	return strconv.FormatUint(windowID, 10)
}
