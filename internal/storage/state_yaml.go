package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"stopwatch/internal/core/model"

	"gopkg.in/yaml.v3"
)

const (
	stateFileSuffix   = ".state.yaml"
	legacyStartSuffix = ".start_time"
	legacyPauseSuffix = ".pause_time"

	statusIdle    = "idle"
	statusRunning = "running"
	statusPaused  = "paused"
)

type stateRecord struct {
	Status string        `yaml:"status"`
	Start  time.Time     `yaml:"start,omitempty"`
	Offset time.Duration `yaml:"offset,omitempty"`
}

// StateStore persists the stopwatch state in a single YAML file next to the
// config. Marker files from older releases are read when no state file exists
// and removed on the next write.
type StateStore struct {
	dir      string
	baseName string
	logger   *slog.Logger
	now      func() time.Time
}

// NewStateStore creates a store for <dir>/<baseName>.state.yaml.
func NewStateStore(dir, baseName string, logger *slog.Logger) *StateStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &StateStore{
		dir:      dir,
		baseName: baseName,
		logger:   logger,
		now:      time.Now,
	}
}

// Path returns the state file path.
func (store *StateStore) Path() string {
	return store.pathWithSuffix(stateFileSuffix)
}

// Load reads the persisted state. Missing or unreadable state yields the idle
// state. A running start time in the future is clamped to now.
func (store *StateStore) Load() model.ClockState {
	now := store.now()

	record, found, err := store.readRecord()
	if err != nil {
		store.logger.Warn("ignoring unreadable stopwatch state", "path", store.Path(), "error", err)
		return model.ClockState{}
	}
	if !found {
		record, found, err = store.readLegacyMarkers()
		if err != nil {
			store.logger.Warn("ignoring unreadable stopwatch markers", "dir", store.dir, "error", err)
			return model.ClockState{}
		}
		if !found {
			return model.ClockState{}
		}
		store.logger.Info("loaded legacy stopwatch markers", "status", record.Status)
	}

	state, err := recordToState(record, now)
	if err != nil {
		store.logger.Warn("ignoring invalid stopwatch state", "path", store.Path(), "error", err)
		return model.ClockState{}
	}
	return state
}

// SaveRunning records a running stopwatch started at start.
func (store *StateStore) SaveRunning(start time.Time) error {
	return store.writeRecord(stateRecord{Status: statusRunning, Start: start})
}

// SavePaused records a paused stopwatch with offset elapsed.
func (store *StateStore) SavePaused(offset time.Duration) error {
	return store.writeRecord(stateRecord{Status: statusPaused, Offset: offset})
}

// Clear removes all persisted state.
func (store *StateStore) Clear() error {
	var errs []error
	for _, path := range []string{store.Path(), store.legacyStartPath(), store.legacyPausePath()} {
		if err := removeIfExists(path); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("clear state: %w", errors.Join(errs...))
	}
	return nil
}

func (store *StateStore) writeRecord(record stateRecord) error {
	serialized, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal state yaml: %w", err)
	}
	if err := writeAtomic(store.Path(), serialized, 0o644); err != nil {
		return err
	}
	if err := removeIfExists(store.legacyStartPath()); err != nil {
		return err
	}
	return removeIfExists(store.legacyPausePath())
}

func (store *StateStore) readRecord() (stateRecord, bool, error) {
	rawData, err := os.ReadFile(store.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return stateRecord{}, false, nil
		}
		return stateRecord{}, false, fmt.Errorf("read state file: %w", err)
	}

	var record stateRecord
	if err := yaml.Unmarshal(rawData, &record); err != nil {
		return stateRecord{}, false, fmt.Errorf("parse state yaml: %w", err)
	}
	return record, true, nil
}

// readLegacyMarkers prefers the pause marker when both exist.
func (store *StateStore) readLegacyMarkers() (stateRecord, bool, error) {
	pauseSeconds, found, err := readMarker(store.legacyPausePath())
	if err != nil {
		return stateRecord{}, false, err
	}
	if found {
		return stateRecord{Status: statusPaused, Offset: secondsToDuration(pauseSeconds)}, true, nil
	}

	startSeconds, found, err := readMarker(store.legacyStartPath())
	if err != nil || !found {
		return stateRecord{}, false, err
	}
	return stateRecord{Status: statusRunning, Start: epochToTime(startSeconds)}, true, nil
}

func (store *StateStore) legacyStartPath() string {
	return store.pathWithSuffix(legacyStartSuffix)
}

func (store *StateStore) legacyPausePath() string {
	return store.pathWithSuffix(legacyPauseSuffix)
}

func (store *StateStore) pathWithSuffix(suffix string) string {
	return filepath.Join(store.dir, store.baseName+suffix)
}

func recordToState(record stateRecord, now time.Time) (model.ClockState, error) {
	switch record.Status {
	case statusIdle, "":
		return model.ClockState{}, nil
	case statusRunning:
		if record.Start.IsZero() {
			return model.ClockState{}, fmt.Errorf("running state without start time")
		}
		start := record.Start
		if start.After(now) {
			start = now
		}
		return model.ClockState{StartTime: start}, nil
	case statusPaused:
		if record.Offset < 0 {
			return model.ClockState{StartTime: now}, nil
		}
		return model.ClockState{
			StartTime:  now.Add(-record.Offset),
			Paused:     true,
			PausedTime: now,
		}, nil
	default:
		return model.ClockState{}, fmt.Errorf("unknown status %q", record.Status)
	}
}

func readMarker(path string) (float64, bool, error) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("read marker %s: %w", filepath.Base(path), err)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(string(rawData)), 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse marker %s: %w", filepath.Base(path), err)
	}
	return value, true, nil
}

func epochToTime(seconds float64) time.Time {
	return time.Unix(0, int64(seconds*float64(time.Second)))
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
