package platform

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

const xdotoolTimeout = 500 * time.Millisecond

// runFunc executes one xdotool invocation and returns its stdout.
type runFunc func(args ...string) (string, error)

// lookupXdotool returns a runner for the xdotool binary, or
// ErrForegroundUnsupported when there is no X display or no xdotool.
func lookupXdotool() (runFunc, error) {
	if strings.ToLower(os.Getenv("XDG_SESSION_TYPE")) == "wayland" && os.Getenv("DISPLAY") == "" {
		return nil, ErrForegroundUnsupported
	}
	path, err := exec.LookPath("xdotool")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrForegroundUnsupported, err)
	}
	return func(args ...string) (string, error) {
		ctx, cancel := context.WithTimeout(context.Background(), xdotoolTimeout)
		defer cancel()

		// #nosec G204
		output, err := exec.CommandContext(ctx, path, args...).Output()
		if err != nil {
			return "", fmt.Errorf("xdotool %s: %w", strings.Join(args, " "), err)
		}
		return string(output), nil
	}, nil
}

// parseWindowGeometry reads `xdotool getwindowgeometry --shell` output.
func parseWindowGeometry(output string) (Rect, error) {
	values := make(map[string]int)
	for _, line := range strings.Split(output, "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		switch key {
		case "X", "Y", "WIDTH", "HEIGHT":
			parsed, err := strconv.Atoi(value)
			if err != nil {
				return Rect{}, fmt.Errorf("parse window geometry %s: %w", key, err)
			}
			values[key] = parsed
		}
	}
	for _, key := range []string{"X", "Y", "WIDTH", "HEIGHT"} {
		if _, ok := values[key]; !ok {
			return Rect{}, fmt.Errorf("parse window geometry: missing %s", key)
		}
	}
	return Rect{
		Left:   values["X"],
		Top:    values["Y"],
		Right:  values["X"] + values["WIDTH"],
		Bottom: values["Y"] + values["HEIGHT"],
	}, nil
}

// parseDisplayGeometry reads `xdotool getdisplaygeometry` output ("W H").
func parseDisplayGeometry(output string) (int, int, error) {
	fields := strings.Fields(output)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("parse display geometry: unexpected output %q", strings.TrimSpace(output))
	}
	width, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("parse display width: %w", err)
	}
	height, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("parse display height: %w", err)
	}
	return width, height, nil
}
