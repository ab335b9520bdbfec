package model

import "time"

// ClockState is the persisted part of the stopwatch.
// PausedTime is set iff Paused. StartTime is zero only when the stopwatch
// was never started or has been reset.
type ClockState struct {
	StartTime  time.Time
	Paused     bool
	PausedTime time.Time
}

// Started reports whether the state holds a start time.
func (state ClockState) Started() bool {
	return !state.StartTime.IsZero()
}

// Elapsed returns the elapsed duration at now. Paused states are frozen at
// PausedTime.
func (state ClockState) Elapsed(now time.Time) time.Duration {
	if !state.Started() {
		return 0
	}
	end := now
	if state.Paused {
		end = state.PausedTime
	}
	return end.Sub(state.StartTime)
}
