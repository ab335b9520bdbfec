package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"stopwatch/internal/core/stopwatch"
	"stopwatch/internal/logging"
	"stopwatch/internal/platform"
	"stopwatch/internal/storage"

	"github.com/spf13/cobra"
)

// rootFlags holds persistent flags shared by all commands.
type rootFlags struct {
	Dir      string
	LogLevel string
	LogFile  bool
	Reduced  bool
}

func buildRoot(env environment) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "stopwatch",
		Short:         "Always-on-top stopwatch overlay that survives restarts",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverlay(cmd, env, flags)
		},
	}

	root.PersistentFlags().StringVar(&flags.Dir, "dir", "", "directory holding config.json, state and logs (default: next to the executable)")
	root.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.Flags().BoolVar(&flags.LogFile, "log-file", false, "write logs to <name>.out.log and <name>.err.log even with a terminal attached")
	root.Flags().BoolVar(&flags.Reduced, "reduced", true, "start in reduced refresh mode (100ms); --reduced=false refreshes every 10ms")

	root.AddCommand(
		newStatusCommand(env, flags),
		newResetCommand(env, flags),
		newAutostartCommand(env, flags),
	)
	return root
}

// resolveDir returns the data directory, creating it when --dir is given.
func resolveDir(env environment, flags *rootFlags) (string, error) {
	if flags.Dir == "" {
		return platform.ResolveDataDir(env.autostart, env.execPath, appName)
	}
	dir, err := filepath.Abs(flags.Dir)
	if err != nil {
		return "", fmt.Errorf("resolve --dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create --dir: %w", err)
	}
	return dir, nil
}

// baseName is the executable name without extension; it prefixes state and
// log files.
func baseName(execPath string) string {
	name := strings.TrimSuffix(filepath.Base(execPath), filepath.Ext(execPath))
	if name == "" || name == "." {
		return "stopwatch"
	}
	return name
}

// consoleLogger sets up colorless console logging for non-GUI commands.
func consoleLogger(flags *rootFlags, w io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(flags.LogLevel)
	if err != nil {
		return nil, err
	}
	output, err := logging.Setup(logging.Config{Level: level, Console: w})
	if err != nil {
		return nil, err
	}
	return output.Logger, nil
}

// openStopwatch restores the persisted stopwatch from dir.
func openStopwatch(env environment, dir string, logger *slog.Logger) (*stopwatch.Stopwatch, *storage.StateStore) {
	store := storage.NewStateStore(dir, baseName(env.execPath), logger)
	return stopwatch.New(store, env.clock, logger), store
}
