package logging

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults for the windowed-mode log files.
const (
	DefaultMaxSizeMB  = 5
	DefaultMaxBackups = 2
	DefaultMaxAgeDays = 14
)

// Config describes where log output goes.
// In file mode output is written to Dir/<BaseName>.out.log and standard
// library log output (used by the GUI toolkit) to Dir/<BaseName>.err.log.
type Config struct {
	Dir      string
	BaseName string
	Level    slog.Level
	ToFile   bool
	Console  io.Writer
	Color    bool
}

// Output holds the configured logger and its sinks.
type Output struct {
	Logger  *slog.Logger
	Stdout  io.Writer
	Stderr  io.Writer
	OutPath string
	ErrPath string
	closers []io.Closer
}

// Windowed reports whether the process has no interactive console, as when
// launched from a desktop shortcut.
func Windowed() bool {
	fd := os.Stdout.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// ConsoleConfig returns a console configuration for dir and baseName,
// switching to file output when there is no terminal.
func ConsoleConfig(dir, baseName string, level slog.Level) Config {
	windowed := Windowed()
	return Config{
		Dir:      dir,
		BaseName: baseName,
		Level:    level,
		ToFile:   windowed,
		Console:  os.Stdout,
		Color:    !windowed,
	}
}

// Setup builds the logger for cfg and installs it as the slog default.
func Setup(cfg Config) (*Output, error) {
	opts := &slog.HandlerOptions{Level: cfg.Level}

	if !cfg.ToFile {
		console := cfg.Console
		if console == nil {
			console = os.Stdout
		}
		var handler slog.Handler = slog.NewTextHandler(console, opts)
		if cfg.Color {
			handler = NewColorTextHandler(console, opts)
		}
		output := &Output{Logger: slog.New(handler), Stdout: console, Stderr: os.Stderr}
		slog.SetDefault(output.Logger)
		return output, nil
	}

	if cfg.Dir == "" || cfg.BaseName == "" {
		return nil, fmt.Errorf("log files need a directory and base name")
	}
	output := &Output{
		OutPath: filepath.Join(cfg.Dir, cfg.BaseName+".out.log"),
		ErrPath: filepath.Join(cfg.Dir, cfg.BaseName+".err.log"),
	}
	outWriter := newRotatingWriter(output.OutPath)
	errWriter := newRotatingWriter(output.ErrPath)
	output.Stdout = outWriter
	output.Stderr = errWriter
	output.closers = []io.Closer{outWriter, errWriter}
	output.Logger = slog.New(slog.NewTextHandler(outWriter, opts))

	slog.SetDefault(output.Logger)
	log.SetOutput(errWriter)
	return output, nil
}

// Close flushes and closes file sinks.
func (output *Output) Close() error {
	if output == nil {
		return nil
	}
	var errs []error
	for _, closer := range output.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	output.closers = nil
	return errors.Join(errs...)
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

func newRotatingWriter(path string) *lj.Logger {
	return &lj.Logger{
		Filename:   path,
		MaxSize:    DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAgeDays,
	}
}
