package main

import (
	"context"
	"fmt"
	"os"

	"stopwatch/internal/core/stopwatch"
	"stopwatch/internal/platform"
)

const (
	appName = "Stopwatch"
	appID   = "com.stopwatch.app"
)

// environment carries the OS-facing dependencies of the commands.
type environment struct {
	execPath     string
	clock        stopwatch.Clock
	autostart    platform.Service
	findInstance func(ctx context.Context) (platform.InstanceRecord, bool, error)
}

func defaultEnvironment() (environment, error) {
	execPath, err := os.Executable()
	if err != nil {
		return environment{}, fmt.Errorf("resolve executable: %w", err)
	}
	return environment{
		execPath:  execPath,
		clock:     stopwatch.SystemClock{},
		autostart: platform.NewService(),
		findInstance: func(ctx context.Context) (platform.InstanceRecord, bool, error) {
			self, err := platform.CurrentIdentity()
			if err != nil {
				return platform.InstanceRecord{}, false, err
			}
			return platform.FindInstance(ctx, platform.NewProcessLister(), self)
		},
	}, nil
}

func main() {
	env, err := defaultEnvironment()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := buildRoot(env).Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
