package stopwatch

import (
	"fmt"
	"time"
)

// ZeroDisplay is shown while the stopwatch is idle.
const ZeroDisplay = "00:00:00.00"

// FormatElapsed renders a duration as HH:MM:SS.CC. Centiseconds are
// truncated, not rounded. Negative durations render as zero.
func FormatElapsed(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	hours := elapsed / time.Hour
	elapsed -= hours * time.Hour
	minutes := elapsed / time.Minute
	elapsed -= minutes * time.Minute
	seconds := elapsed / time.Second
	elapsed -= seconds * time.Second
	centis := elapsed / (10 * time.Millisecond)
	return fmt.Sprintf("%02d:%02d:%02d.%02d", int64(hours), int64(minutes), int64(seconds), int64(centis))
}
