package preferences

import (
	"fmt"
	"strconv"
	"strings"

	"stopwatch/internal/core/model"
)

// Limits for editable geometry values, in pixels.
const (
	MinWidth  = 120
	MinHeight = 30
	MaxSize   = 4096
)

// Settings holds the editable form values as entered by the user.
type Settings struct {
	Width        string
	Height       string
	RightOffset  string
	BottomOffset string
}

// SettingsFromGeometry renders geometry into form values.
func SettingsFromGeometry(geometry model.Geometry) Settings {
	return Settings{
		Width:        strconv.Itoa(geometry.Width),
		Height:       strconv.Itoa(geometry.Height),
		RightOffset:  strconv.Itoa(geometry.RightOffset),
		BottomOffset: strconv.Itoa(geometry.BottomOffset),
	}
}

// Geometry validates the form values.
func (settings Settings) Geometry() (model.Geometry, error) {
	var geometry model.Geometry
	var err error

	if geometry.Width, err = parseBounded("width", settings.Width, MinWidth, MaxSize); err != nil {
		return model.Geometry{}, err
	}
	if geometry.Height, err = parseBounded("height", settings.Height, MinHeight, MaxSize); err != nil {
		return model.Geometry{}, err
	}
	if geometry.RightOffset, err = parseBounded("right offset", settings.RightOffset, 0, MaxSize); err != nil {
		return model.Geometry{}, err
	}
	if geometry.BottomOffset, err = parseBounded("bottom offset", settings.BottomOffset, 0, MaxSize); err != nil {
		return model.Geometry{}, err
	}
	return geometry, nil
}

func parseBounded(field, value string, low, high int) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", field)
	}
	if parsed < low || parsed > high {
		return 0, fmt.Errorf("%s must be between %d and %d", field, low, high)
	}
	return parsed, nil
}
