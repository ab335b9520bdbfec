package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"stopwatch/internal/core/stopwatch"
	"stopwatch/internal/platform"
	"stopwatch/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAutostart struct {
	configDir string
	enabled   map[string]platform.AutostartEntry
}

func (service *fakeAutostart) GetConfigDir() (string, error) {
	return service.configDir, nil
}

func (service *fakeAutostart) EnableAutostart(entry platform.AutostartEntry) error {
	if service.enabled == nil {
		service.enabled = map[string]platform.AutostartEntry{}
	}
	service.enabled[entry.Name] = entry
	return nil
}

func (service *fakeAutostart) DisableAutostart(appName string) error {
	delete(service.enabled, appName)
	return nil
}

func (service *fakeAutostart) AutostartEnabled(appName string) (bool, error) {
	_, ok := service.enabled[appName]
	return ok, nil
}

func testEnvironment(t *testing.T, running bool) (environment, *fakeAutostart) {
	t.Helper()
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	service := &fakeAutostart{configDir: t.TempDir()}
	return environment{
		execPath:  filepath.Join(t.TempDir(), "stopwatch"),
		clock:     stopwatch.SystemClock{},
		autostart: service,
		findInstance: func(context.Context) (platform.InstanceRecord, bool, error) {
			if running {
				return platform.InstanceRecord{PID: 4242, Name: "stopwatch"}, true, nil
			}
			return platform.InstanceRecord{}, false, nil
		},
	}, service
}

func execute(t *testing.T, env environment, args ...string) (string, error) {
	t.Helper()
	root := buildRoot(env)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestStatusCommand_Paused(t *testing.T) {
	env, _ := testEnvironment(t, false)
	dir := t.TempDir()
	require.NoError(t, storage.NewStateStore(dir, "stopwatch", nil).SavePaused(5*time.Second))

	out, err := execute(t, env, "status", "--dir", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "State:    paused")
	assert.Contains(t, out, "Elapsed:  00:00:05.00")
	assert.Contains(t, out, filepath.Join(dir, "stopwatch.state.yaml"))
	assert.Contains(t, out, "Overlay:  not running")
}

func TestStatusCommand_IdleWithRunningOverlay(t *testing.T) {
	env, _ := testEnvironment(t, true)

	out, err := execute(t, env, "status", "--dir", t.TempDir())
	require.NoError(t, err)

	assert.Contains(t, out, "State:    idle")
	assert.Contains(t, out, "Elapsed:  00:00:00.00")
	assert.Contains(t, out, "Overlay:  running (pid 4242)")
}

func TestStatusCommand_ScanFailure(t *testing.T) {
	env, _ := testEnvironment(t, false)
	env.findInstance = func(context.Context) (platform.InstanceRecord, bool, error) {
		return platform.InstanceRecord{}, false, errors.New("denied")
	}

	out, err := execute(t, env, "status", "--dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "Overlay:  unknown")
}

func TestResetCommand_ClearsState(t *testing.T) {
	env, _ := testEnvironment(t, false)
	dir := t.TempDir()
	store := storage.NewStateStore(dir, "stopwatch", nil)
	require.NoError(t, store.SaveRunning(time.Now().Add(-time.Minute)))

	out, err := execute(t, env, "reset", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Stopwatch reset")

	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr), "state file should be removed")
	assert.False(t, store.Load().Started())
}

func TestResetCommand_RefusesWhileOverlayRuns(t *testing.T) {
	env, _ := testEnvironment(t, true)
	dir := t.TempDir()
	store := storage.NewStateStore(dir, "stopwatch", nil)
	require.NoError(t, store.SavePaused(time.Second))

	_, err := execute(t, env, "reset", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pid 4242")

	_, statErr := os.Stat(store.Path())
	assert.NoError(t, statErr)
}

func TestAutostartCommands(t *testing.T) {
	env, service := testEnvironment(t, false)
	dir := t.TempDir()

	out, err := execute(t, env, "autostart", "status")
	require.NoError(t, err)
	assert.Equal(t, "Autostart disabled\n", out)

	_, err = execute(t, env, "autostart", "enable", "--dir", dir)
	require.NoError(t, err)
	entry := service.enabled[appName]
	assert.Equal(t, env.execPath, entry.ExecPath)
	assert.Equal(t, []string{"--dir", dir}, entry.Args)

	out, err = execute(t, env, "autostart", "status")
	require.NoError(t, err)
	assert.Equal(t, "Autostart enabled\n", out)

	_, err = execute(t, env, "autostart", "disable")
	require.NoError(t, err)
	assert.Empty(t, service.enabled)
}

func TestRootRejectsUnknownLogLevel(t *testing.T) {
	env, _ := testEnvironment(t, false)
	_, err := execute(t, env, "status", "--dir", t.TempDir(), "--log-level", "trace")
	assert.Error(t, err)
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "stopwatch", baseName(filepath.Join("bin", "stopwatch.exe")))
	assert.Equal(t, "timer", baseName(filepath.Join("bin", "timer")))
}

func TestSubcommandsAreHelperCommands(t *testing.T) {
	env, _ := testEnvironment(t, false)
	for _, command := range buildRoot(env).Commands() {
		assert.True(t, platform.HelperCommands[command.Name()], command.Name())
	}
}

func TestRootStartsReducedByDefault(t *testing.T) {
	env, _ := testEnvironment(t, false)
	flag := buildRoot(env).Flags().Lookup("reduced")
	require.NotNil(t, flag)
	assert.Equal(t, "true", flag.DefValue)
}
