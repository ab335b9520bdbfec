package stopwatch

import (
	"errors"
	"testing"
	"time"

	"stopwatch/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (clock *fakeClock) Now() time.Time {
	return clock.now
}

func (clock *fakeClock) set(seconds float64) {
	clock.now = time.Unix(0, int64(seconds*float64(time.Second)))
}

type memoryStore struct {
	loaded   model.ClockState
	running  *time.Time
	paused   *time.Duration
	calls    []string
	failNext error
}

func (store *memoryStore) Load() model.ClockState {
	store.calls = append(store.calls, "Load")
	return store.loaded
}

func (store *memoryStore) SaveRunning(start time.Time) error {
	store.calls = append(store.calls, "SaveRunning")
	if err := store.takeFailure(); err != nil {
		return err
	}
	store.running = &start
	store.paused = nil
	return nil
}

func (store *memoryStore) SavePaused(offset time.Duration) error {
	store.calls = append(store.calls, "SavePaused")
	if err := store.takeFailure(); err != nil {
		return err
	}
	store.paused = &offset
	store.running = nil
	return nil
}

func (store *memoryStore) Clear() error {
	store.calls = append(store.calls, "Clear")
	if err := store.takeFailure(); err != nil {
		return err
	}
	store.running = nil
	store.paused = nil
	return nil
}

func (store *memoryStore) takeFailure() error {
	err := store.failNext
	store.failNext = nil
	return err
}

func newTestWatch(t *testing.T) (*Stopwatch, *fakeClock, *memoryStore) {
	t.Helper()
	clock := &fakeClock{}
	clock.set(1000)
	store := &memoryStore{}
	return New(store, clock, nil), clock, store
}

func TestPauseResumeScenario(t *testing.T) {
	watch, clock, store := newTestWatch(t)

	require.NoError(t, watch.Start())
	clock.set(1005)
	require.NoError(t, watch.TogglePause())
	assert.Equal(t, "00:00:05.00", watch.Display())
	require.NotNil(t, store.paused)
	assert.Equal(t, 5*time.Second, *store.paused)

	clock.set(1010)
	assert.Equal(t, "00:00:05.00", watch.Display())
	require.NoError(t, watch.TogglePause())
	require.NotNil(t, store.running)
	assert.Equal(t, time.Unix(1005, 0), *store.running)

	clock.set(1013)
	assert.Equal(t, "00:00:08.00", watch.Display())
	assert.Equal(t, StateRunning, watch.State())
}

func TestIdleDisplayAndState(t *testing.T) {
	watch, clock, _ := newTestWatch(t)

	assert.Equal(t, ZeroDisplay, watch.Display())
	clock.set(5000)
	assert.Equal(t, ZeroDisplay, watch.Display())
	assert.Equal(t, time.Duration(0), watch.Elapsed())
	assert.Equal(t, StateIdle, watch.State())
}

func TestPauseBeforeStartIsRejected(t *testing.T) {
	watch, _, store := newTestWatch(t)
	before := watch.Snapshot()

	err := watch.Pause()
	assert.True(t, errors.Is(err, ErrNotStarted))
	err = watch.TogglePause()
	assert.ErrorIs(t, err, ErrNotStarted)
	assert.ErrorIs(t, watch.Resume(), ErrNotStarted)

	assert.Equal(t, before, watch.Snapshot())
	assert.Equal(t, []string{"Load"}, store.calls)
}

func TestElapsedMonotonicWhileRunningAndFrozenWhilePaused(t *testing.T) {
	watch, clock, _ := newTestWatch(t)
	require.NoError(t, watch.Start())

	var last time.Duration
	for step := 1; step <= 10; step++ {
		clock.set(1000 + float64(step)*0.37)
		elapsed := watch.Elapsed()
		assert.GreaterOrEqual(t, elapsed, last)
		last = elapsed
	}

	require.NoError(t, watch.Pause())
	frozen := watch.Elapsed()
	for step := 1; step <= 5; step++ {
		clock.set(2000 + float64(step))
		assert.Equal(t, frozen, watch.Elapsed())
	}

	require.NoError(t, watch.Resume())
	clock.set(2010)
	assert.Greater(t, watch.Elapsed(), frozen)
}

func TestResetClearsStateAndStore(t *testing.T) {
	watch, clock, store := newTestWatch(t)
	require.NoError(t, watch.Start())
	clock.set(1042)
	require.NoError(t, watch.Pause())

	require.NoError(t, watch.Reset())

	assert.Equal(t, ZeroDisplay, watch.Display())
	assert.Equal(t, StateIdle, watch.State())
	assert.Equal(t, model.ClockState{}, watch.Snapshot())
	assert.Nil(t, store.running)
	assert.Nil(t, store.paused)
}

func TestStartWhilePausedRestarts(t *testing.T) {
	watch, clock, store := newTestWatch(t)
	require.NoError(t, watch.Start())
	clock.set(1003)
	require.NoError(t, watch.Pause())

	clock.set(1100)
	require.NoError(t, watch.Start())
	clock.set(1101.5)

	assert.Equal(t, StateRunning, watch.State())
	assert.Equal(t, "00:00:01.50", watch.Display())
	assert.Nil(t, store.paused)
}

func TestRestoresStateFromStore(t *testing.T) {
	clock := &fakeClock{}
	clock.set(2000)
	store := &memoryStore{loaded: model.ClockState{
		StartTime:  time.Unix(1990, 0),
		Paused:     true,
		PausedTime: time.Unix(2000, 0),
	}}

	watch := New(store, clock, nil)
	clock.set(2050)

	assert.Equal(t, StatePaused, watch.State())
	assert.Equal(t, "00:00:10.00", watch.Display())
}

func TestShutdownSummary(t *testing.T) {
	t.Run("never started", func(t *testing.T) {
		watch, _, _ := newTestWatch(t)
		summary := watch.Shutdown()
		assert.Equal(t, Summary{}, summary)
		assert.Equal(t, StateStopped, watch.State())
	})

	t.Run("paused uses pause time", func(t *testing.T) {
		watch, clock, _ := newTestWatch(t)
		require.NoError(t, watch.Start())
		clock.set(1030)
		require.NoError(t, watch.Pause())
		clock.set(1090)

		summary := watch.Shutdown()
		assert.Equal(t, time.Unix(1030, 0), summary.End)
		assert.Equal(t, 30*time.Second, summary.Elapsed)
	})

	t.Run("running uses now", func(t *testing.T) {
		watch, clock, store := newTestWatch(t)
		require.NoError(t, watch.Start())
		clock.set(1012.25)

		summary := watch.Shutdown()
		assert.Equal(t, 12250*time.Millisecond, summary.Elapsed)
		assert.NotNil(t, store.running, "shutdown keeps persisted state")
		assert.ErrorIs(t, watch.Start(), ErrStopped)
	})
}

func TestPersistFailureIsReportedAndStateKept(t *testing.T) {
	watch, _, store := newTestWatch(t)
	events := watch.Subscribe(4)
	store.failNext = errors.New("disk full")

	err := watch.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, StateRunning, watch.State())

	first := <-events
	assert.Equal(t, EventPersistError, first.Type)
	second := <-events
	assert.Equal(t, EventStateChange, second.Type)
	assert.Equal(t, StateRunning, second.State)
}

func TestSubscribeReceivesTransitionsAndClosesOnShutdown(t *testing.T) {
	watch, clock, _ := newTestWatch(t)
	events := watch.Subscribe(8)

	require.NoError(t, watch.Start())
	clock.set(1001)
	require.NoError(t, watch.TogglePause())
	require.NoError(t, watch.TogglePause())
	require.NoError(t, watch.Reset())
	watch.Shutdown()

	var states []State
	for event := range events {
		states = append(states, event.State)
	}
	assert.Equal(t, []State{StateRunning, StatePaused, StateRunning, StateIdle}, states)
}

func TestWithoutStore(t *testing.T) {
	clock := &fakeClock{}
	clock.set(10)
	watch := New(nil, clock, nil)

	require.NoError(t, watch.Start())
	clock.set(12)
	require.NoError(t, watch.Pause())
	require.NoError(t, watch.Reset())
	assert.Equal(t, ZeroDisplay, watch.Display())
}
