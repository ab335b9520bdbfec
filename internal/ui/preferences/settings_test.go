package preferences

import (
	"testing"

	"stopwatch/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRoundTripDefaults(t *testing.T) {
	settings := SettingsFromGeometry(model.DefaultGeometry())
	assert.Equal(t, Settings{Width: "180", Height: "45", RightOffset: "400", BottomOffset: "47"}, settings)

	geometry, err := settings.Geometry()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultGeometry(), geometry)
}

func TestSettingsGeometryTrimsInput(t *testing.T) {
	geometry, err := Settings{Width: " 200 ", Height: "50", RightOffset: "0", BottomOffset: "10"}.Geometry()
	require.NoError(t, err)
	assert.Equal(t, model.Geometry{Width: 200, Height: 50, RightOffset: 0, BottomOffset: 10}, geometry)
}

func TestSettingsGeometryRejectsInvalid(t *testing.T) {
	cases := map[string]Settings{
		"width must be a whole number":            {Width: "wide", Height: "45", RightOffset: "400", BottomOffset: "47"},
		"width must be between 120 and 4096":      {Width: "10", Height: "45", RightOffset: "400", BottomOffset: "47"},
		"height must be between 30 and 4096":      {Width: "180", Height: "5000", RightOffset: "400", BottomOffset: "47"},
		"right offset must be between 0 and 4096": {Width: "180", Height: "45", RightOffset: "-1", BottomOffset: "47"},
		"bottom offset must be a whole number":    {Width: "180", Height: "45", RightOffset: "400", BottomOffset: ""},
	}
	for message, settings := range cases {
		_, err := settings.Geometry()
		require.Error(t, err, message)
		assert.EqualError(t, err, message)
	}
}
