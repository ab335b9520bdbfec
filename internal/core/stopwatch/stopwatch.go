package stopwatch

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"stopwatch/internal/core/model"
)

var (
	// ErrNotStarted indicates a pause was requested before the stopwatch started.
	ErrNotStarted = errors.New("stopwatch has not been started")
	// ErrStopped indicates the stopwatch has been shut down.
	ErrStopped = errors.New("stopwatch is stopped")
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Store persists clock state between runs.
type Store interface {
	Load() model.ClockState
	SaveRunning(start time.Time) error
	SavePaused(offset time.Duration) error
	Clear() error
}

// Summary describes the stopwatch at shutdown. Start and End are zero when
// the stopwatch never ran.
type Summary struct {
	Start   time.Time
	End     time.Time
	Elapsed time.Duration
}

// Stopwatch is a state machine computing elapsed time from start, pause,
// resume and reset events. Every transition is written through to the store.
type Stopwatch struct {
	mu      sync.Mutex
	clock   Clock
	store   Store
	logger  *slog.Logger
	state   model.ClockState
	stopped bool
	events  []chan Event
}

// New restores a stopwatch from the store.
func New(store Store, clock Clock, logger *slog.Logger) *Stopwatch {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	watch := &Stopwatch{
		clock:  clock,
		store:  store,
		logger: logger,
	}
	if store != nil {
		watch.state = store.Load()
	}
	return watch
}

// Subscribe registers a new observer channel.
func (watch *Stopwatch) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	watch.mu.Lock()
	watch.events = append(watch.events, ch)
	watch.mu.Unlock()
	return ch
}

// State returns the current mode.
func (watch *Stopwatch) State() State {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return watch.stateLocked()
}

// Snapshot returns a copy of the clock state.
func (watch *Stopwatch) Snapshot() model.ClockState {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return watch.state
}

// Start begins timing from now. Starting a running or paused stopwatch
// restarts it.
func (watch *Stopwatch) Start() error {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if watch.stopped {
		return ErrStopped
	}

	now := watch.clock.Now()
	watch.state = model.ClockState{StartTime: now}
	err := watch.persistLocked(func() error {
		return watch.store.SaveRunning(now)
	})
	watch.emitLocked(Event{Type: EventStateChange, State: StateRunning, At: now})
	return err
}

// Pause freezes the elapsed time.
func (watch *Stopwatch) Pause() error {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if watch.stopped {
		return ErrStopped
	}
	if !watch.state.Started() {
		return ErrNotStarted
	}
	if watch.state.Paused {
		return nil
	}
	return watch.pauseLocked()
}

// Resume continues timing, excluding the paused interval.
func (watch *Stopwatch) Resume() error {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if watch.stopped {
		return ErrStopped
	}
	if !watch.state.Started() {
		return ErrNotStarted
	}
	if !watch.state.Paused {
		return nil
	}
	return watch.resumeLocked()
}

// TogglePause pauses a running stopwatch or resumes a paused one.
func (watch *Stopwatch) TogglePause() error {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if watch.stopped {
		return ErrStopped
	}
	if !watch.state.Started() {
		return ErrNotStarted
	}
	if watch.state.Paused {
		return watch.resumeLocked()
	}
	return watch.pauseLocked()
}

// Reset returns to idle and removes persisted state.
func (watch *Stopwatch) Reset() error {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if watch.stopped {
		return ErrStopped
	}

	watch.state = model.ClockState{}
	err := watch.persistLocked(func() error {
		return watch.store.Clear()
	})
	watch.emitLocked(Event{Type: EventStateChange, State: StateIdle, At: watch.clock.Now()})
	return err
}

// Shutdown stops the stopwatch and closes observers. Persisted state is kept
// so the next run picks up where this one ended.
func (watch *Stopwatch) Shutdown() Summary {
	watch.mu.Lock()
	if watch.stopped {
		watch.mu.Unlock()
		return watch.summaryLocked()
	}
	watch.stopped = true
	summary := watch.summaryLocked()
	events := watch.events
	watch.events = nil
	watch.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
	return summary
}

// Elapsed returns the elapsed time, frozen while paused.
func (watch *Stopwatch) Elapsed() time.Duration {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return watch.state.Elapsed(watch.clock.Now())
}

// Display returns the elapsed time formatted as HH:MM:SS.CC.
func (watch *Stopwatch) Display() string {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	if !watch.state.Started() {
		return ZeroDisplay
	}
	return FormatElapsed(watch.state.Elapsed(watch.clock.Now()))
}

func (watch *Stopwatch) pauseLocked() error {
	now := watch.clock.Now()
	watch.state.Paused = true
	watch.state.PausedTime = now
	offset := now.Sub(watch.state.StartTime)
	err := watch.persistLocked(func() error {
		return watch.store.SavePaused(offset)
	})
	watch.emitLocked(Event{Type: EventStateChange, State: StatePaused, Elapsed: offset, At: now})
	return err
}

func (watch *Stopwatch) resumeLocked() error {
	now := watch.clock.Now()
	offset := watch.state.PausedTime.Sub(watch.state.StartTime)
	start := now.Add(-offset)
	watch.state = model.ClockState{StartTime: start}
	err := watch.persistLocked(func() error {
		return watch.store.SaveRunning(start)
	})
	watch.emitLocked(Event{Type: EventStateChange, State: StateRunning, Elapsed: offset, At: now})
	return err
}

func (watch *Stopwatch) persistLocked(write func() error) error {
	if watch.store == nil {
		return nil
	}
	if err := write(); err != nil {
		watch.logger.Warn("persist stopwatch state", "error", err)
		watch.emitLocked(Event{
			Type:    EventPersistError,
			State:   watch.stateLocked(),
			Message: err.Error(),
			At:      watch.clock.Now(),
		})
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

func (watch *Stopwatch) summaryLocked() Summary {
	if !watch.state.Started() {
		return Summary{}
	}
	end := watch.clock.Now()
	if watch.state.Paused {
		end = watch.state.PausedTime
	}
	return Summary{
		Start:   watch.state.StartTime,
		End:     end,
		Elapsed: end.Sub(watch.state.StartTime),
	}
}

func (watch *Stopwatch) stateLocked() State {
	switch {
	case watch.stopped:
		return StateStopped
	case !watch.state.Started():
		return StateIdle
	case watch.state.Paused:
		return StatePaused
	default:
		return StateRunning
	}
}

func (watch *Stopwatch) emitLocked(event Event) {
	events := append([]chan Event(nil), watch.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
