package storage

import (
	"encoding/json"
	"os"
	"testing"

	"stopwatch/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGeometry_CreatesDefaults(t *testing.T) {
	dir := t.TempDir()

	geometry, created, err := LoadGeometry(dir)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, model.Geometry{Width: 180, Height: 45, RightOffset: 400, BottomOffset: 47}, geometry)

	rawData, err := os.ReadFile(ConfigPath(dir))
	require.NoError(t, err)
	var onDisk map[string]int
	require.NoError(t, json.Unmarshal(rawData, &onDisk))
	assert.Equal(t, map[string]int{
		"SW_WIDTH":     180,
		"SW_HEIGHT":    45,
		"SW_RIGHTOFF":  400,
		"SW_BOTTOMOFF": 47,
	}, onDisk)

	_, created, err = LoadGeometry(dir)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestLoadGeometry_ReadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, ConfigPath(dir), `{"SW_WIDTH": 220, "SW_HEIGHT": 50, "SW_RIGHTOFF": 300, "SW_BOTTOMOFF": 60}`)

	geometry, created, err := LoadGeometry(dir)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, model.Geometry{Width: 220, Height: 50, RightOffset: 300, BottomOffset: 60}, geometry)
}

func TestLoadGeometry_MissingKeysUseDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, ConfigPath(dir), `{"SW_WIDTH": 0, "SW_RIGHTOFF": 10}`)

	geometry, _, err := LoadGeometry(dir)
	require.NoError(t, err)
	assert.Equal(t, model.Geometry{Width: 180, Height: 45, RightOffset: 10, BottomOffset: 47}, geometry)
}

func TestLoadGeometry_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STOPWATCH_SW_BOTTOMOFF", "80")

	geometry, _, err := LoadGeometry(dir)
	require.NoError(t, err)
	assert.Equal(t, 80, geometry.BottomOffset)
}

func TestLoadGeometry_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, ConfigPath(dir), `{"SW_WIDTH": `)

	geometry, _, err := LoadGeometry(dir)
	require.Error(t, err)
	assert.Equal(t, model.DefaultGeometry(), geometry)
}

func TestSaveGeometry_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := model.Geometry{Width: 200, Height: 40, RightOffset: 500, BottomOffset: 90}

	require.NoError(t, SaveGeometry(dir, want))
	got, created, err := LoadGeometry(dir)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, want, got)
}
