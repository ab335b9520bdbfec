package stopwatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{name: "zero", elapsed: 0, want: "00:00:00.00"},
		{name: "negative", elapsed: -3 * time.Second, want: "00:00:00.00"},
		{name: "truncates centiseconds", elapsed: 1999 * time.Millisecond, want: "00:00:01.99"},
		{name: "sub centisecond", elapsed: 9 * time.Millisecond, want: "00:00:00.00"},
		{name: "minutes", elapsed: 61*time.Second + 50*time.Millisecond, want: "00:01:01.05"},
		{name: "hours", elapsed: 3*time.Hour + 4*time.Minute + 5*time.Second + 670*time.Millisecond, want: "03:04:05.67"},
		{name: "past a day", elapsed: 100 * time.Hour, want: "100:00:00.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatElapsed(tc.elapsed))
		})
	}
}
