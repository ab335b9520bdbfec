package platform

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindowSource struct {
	rect      Rect
	rectErr   error
	width     int
	height    int
	screenErr error
}

func (source fakeWindowSource) ForegroundRect() (Rect, error) {
	return source.rect, source.rectErr
}

func (source fakeWindowSource) ScreenSize() (int, int, error) {
	return source.width, source.height, source.screenErr
}

func TestIsFullscreen(t *testing.T) {
	cases := []struct {
		name   string
		source fakeWindowSource
		want   bool
	}{
		{
			name:   "exact screen",
			source: fakeWindowSource{rect: Rect{0, 0, 1920, 1080}, width: 1920, height: 1080},
			want:   true,
		},
		{
			name:   "maximized with taskbar",
			source: fakeWindowSource{rect: Rect{0, 0, 1920, 1040}, width: 1920, height: 1080},
		},
		{
			name:   "offset origin",
			source: fakeWindowSource{rect: Rect{1, 0, 1921, 1080}, width: 1920, height: 1080},
		},
		{
			name:   "larger than screen",
			source: fakeWindowSource{rect: Rect{-8, -8, 1928, 1088}, width: 1920, height: 1080},
		},
		{
			name:   "window query fails",
			source: fakeWindowSource{rect: Rect{0, 0, 1920, 1080}, rectErr: errors.New("invalid handle"), width: 1920, height: 1080},
		},
		{
			name:   "screen query fails",
			source: fakeWindowSource{rect: Rect{0, 0, 1920, 1080}, screenErr: errors.New("no display")},
		},
		{
			name:   "unsupported platform",
			source: fakeWindowSource{rectErr: fmt.Errorf("probe: %w", ErrForegroundUnsupported)},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			monitor := NewForegroundMonitorWithSource(tc.source, nil)
			assert.Equal(t, tc.want, monitor.IsFullscreen())
		})
	}
}

func TestParseWindowGeometry(t *testing.T) {
	output := "WINDOW=62914566\nX=0\nY=0\nWIDTH=2560\nHEIGHT=1440\nSCREEN=0\n"

	rect, err := parseWindowGeometry(output)
	require.NoError(t, err)
	assert.Equal(t, Rect{Left: 0, Top: 0, Right: 2560, Bottom: 1440}, rect)

	rect, err = parseWindowGeometry("X=10\nY=20\nWIDTH=300\nHEIGHT=200\n")
	require.NoError(t, err)
	assert.Equal(t, Rect{Left: 10, Top: 20, Right: 310, Bottom: 220}, rect)

	_, err = parseWindowGeometry("X=10\nY=20\n")
	assert.ErrorContains(t, err, "missing WIDTH")

	_, err = parseWindowGeometry("X=ten\nY=20\nWIDTH=1\nHEIGHT=1\n")
	assert.Error(t, err)
}

func TestParseDisplayGeometry(t *testing.T) {
	width, height, err := parseDisplayGeometry("1920 1080\n")
	require.NoError(t, err)
	assert.Equal(t, 1920, width)
	assert.Equal(t, 1080, height)

	_, _, err = parseDisplayGeometry("")
	assert.Error(t, err)

	_, _, err = parseDisplayGeometry("wide 1080")
	assert.Error(t, err)
}
