package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"stopwatch/internal/core/model"

	"github.com/spf13/viper"
)

const (
	configFileName = "config.json"
	envPrefix      = "STOPWATCH"
)

// ConfigPath returns the config file location inside dir.
func ConfigPath(dir string) string {
	return filepath.Join(dir, configFileName)
}

// LoadGeometry reads the overlay geometry from dir/config.json.
// If the file does not exist, it is created with default values and
// created is true. STOPWATCH_SW_* environment variables override file values.
func LoadGeometry(dir string) (geometry model.Geometry, created bool, err error) {
	defaults := model.DefaultGeometry()
	configPath := ConfigPath(dir)

	if _, statErr := os.Stat(configPath); statErr != nil {
		if !errors.Is(statErr, os.ErrNotExist) {
			return defaults, false, fmt.Errorf("stat config file: %w", statErr)
		}
		if err := SaveGeometry(dir, defaults); err != nil {
			return defaults, false, err
		}
		created = true
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetDefault("SW_WIDTH", defaults.Width)
	v.SetDefault("SW_HEIGHT", defaults.Height)
	v.SetDefault("SW_RIGHTOFF", defaults.RightOffset)
	v.SetDefault("SW_BOTTOMOFF", defaults.BottomOffset)

	if err := v.ReadInConfig(); err != nil {
		return defaults, created, fmt.Errorf("read config file: %w", err)
	}
	if err := v.Unmarshal(&geometry); err != nil {
		return defaults, created, fmt.Errorf("parse config file: %w", err)
	}

	applyGeometryDefaults(&geometry, defaults)
	return geometry, created, nil
}

// SaveGeometry writes the overlay geometry to dir/config.json.
func SaveGeometry(dir string, geometry model.Geometry) error {
	serialized, err := json.MarshalIndent(geometry, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal config json: %w", err)
	}
	if err := writeAtomic(ConfigPath(dir), append(serialized, '\n'), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func applyGeometryDefaults(geometry *model.Geometry, defaults model.Geometry) {
	if geometry.Width <= 0 {
		geometry.Width = defaults.Width
	}
	if geometry.Height <= 0 {
		geometry.Height = defaults.Height
	}
}
