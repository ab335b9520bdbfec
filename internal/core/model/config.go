package model

import "time"

// Geometry defines the overlay size and its offset from the bottom-right
// corner of the primary screen, in pixels.
type Geometry struct {
	Width        int `json:"SW_WIDTH" mapstructure:"SW_WIDTH"`
	Height       int `json:"SW_HEIGHT" mapstructure:"SW_HEIGHT"`
	RightOffset  int `json:"SW_RIGHTOFF" mapstructure:"SW_RIGHTOFF"`
	BottomOffset int `json:"SW_BOTTOMOFF" mapstructure:"SW_BOTTOMOFF"`
}

// DefaultGeometry returns the geometry written to a fresh config file.
func DefaultGeometry() Geometry {
	return Geometry{
		Width:        180,
		Height:       45,
		RightOffset:  400,
		BottomOffset: 47,
	}
}

// Config contains everything the overlay needs at startup.
type Config struct {
	Geometry Geometry

	// Dir holds config.json, the state file and log files.
	Dir string
	// BaseName prefixes the state and log files, normally the executable name.
	BaseName string

	RefreshInterval time.Duration
	ReducedInterval time.Duration
	ReducedMode     bool
	TopmostInterval time.Duration
	Opacity         float64
}

// DefaultConfig returns runtime defaults for the given directory and base name.
func DefaultConfig(dir, baseName string) Config {
	return Config{
		Geometry:        DefaultGeometry(),
		Dir:             dir,
		BaseName:        baseName,
		RefreshInterval: 10 * time.Millisecond,
		ReducedInterval: 100 * time.Millisecond,
		ReducedMode:     true,
		TopmostInterval: time.Second,
		Opacity:         0.89,
	}
}

// UpdateDelay returns the display refresh delay for the current mode.
func (config Config) UpdateDelay() time.Duration {
	if config.ReducedMode {
		return config.ReducedInterval
	}
	return config.RefreshInterval
}
