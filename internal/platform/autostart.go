package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AutostartEntry describes how the overlay is launched at login.
type AutostartEntry struct {
	Name     string
	ExecPath string
	Args     []string
}

func (entry AutostartEntry) validate(action string) error {
	if strings.TrimSpace(entry.Name) == "" {
		return fmt.Errorf("%s autostart: app name is empty", action)
	}
	if strings.TrimSpace(entry.ExecPath) == "" {
		return fmt.Errorf("%s autostart: exec path is empty", action)
	}
	return nil
}

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	EnableAutostart(entry AutostartEntry) error
	DisableAutostart(appName string) error
	AutostartEnabled(appName string) (bool, error)
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// ResolveDataDir returns the directory holding config, state and logs: the
// executable's directory when it is writable, otherwise <config dir>/<appName>.
func ResolveDataDir(service Service, execPath, appName string) (string, error) {
	execDir := filepath.Dir(execPath)
	if dirWritable(execDir) {
		return execDir, nil
	}

	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", err
	}
	dataDir := filepath.Join(configDir, appName)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return dataDir, nil
}

func dirWritable(dir string) bool {
	probe, err := os.CreateTemp(dir, ".write-probe-*")
	if err != nil {
		return false
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return true
}

func normalizedAppName(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "stopwatch"
	}
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "-")
}
