package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"stopwatch/internal/core/model"
	"stopwatch/internal/core/stopwatch"
	"stopwatch/internal/core/topmost"
	"stopwatch/internal/logging"
	"stopwatch/internal/platform"
	"stopwatch/internal/storage"
	"stopwatch/internal/ui/overlay"
	"stopwatch/internal/ui/preferences"
	"stopwatch/internal/ui/tray"
	"stopwatch/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"
)

// overlayApp wires the stopwatch to the overlay, tray and preferences.
type overlayApp struct {
	fyneApp   fyne.App
	config    model.Config
	logger    *slog.Logger
	watch     *stopwatch.Stopwatch
	window    *overlay.Window
	tray      *tray.Manager
	prefs     *preferences.Window
	refresher *overlay.Refresher
	quitOnce  sync.Once
}

func runOverlay(cmd *cobra.Command, env environment, flags *rootFlags) error {
	level, err := logging.ParseLevel(flags.LogLevel)
	if err != nil {
		return err
	}
	dir, err := resolveDir(env, flags)
	if err != nil {
		return err
	}
	base := baseName(env.execPath)

	logConfig := logging.ConsoleConfig(dir, base, level)
	if flags.LogFile {
		logConfig.ToFile = true
	}
	logOutput, err := logging.Setup(logConfig)
	if err != nil {
		return err
	}
	defer func() {
		_ = logOutput.Close()
	}()
	logger := logOutput.Logger

	geometry, created, err := storage.LoadGeometry(dir)
	if err != nil {
		return err
	}
	if created {
		logger.Info("wrote default config", "path", storage.ConfigPath(dir))
	}

	config := model.DefaultConfig(dir, base)
	config.Geometry = geometry
	config.ReducedMode = flags.Reduced

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	guard, err := platform.AcquireSingleInstance(ctx, appName, logger)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		logger.Info("Stopwatch is already running")
		return nil
	}
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	watch, store := openStopwatch(env, dir, logger)
	logger.Info("stopwatch restored", "state", watch.State(), "elapsed", watch.Display(), "file", store.Path())

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.Icon())

	ui := &overlayApp{
		fyneApp: fyneApp,
		config:  config,
		logger:  logger,
		watch:   watch,
	}
	ui.build()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-runCtx.Done()
		if ctx.Err() != nil {
			logger.Info("signal received, closing")
			fyne.Do(ui.quit)
		}
	}()

	if ui.window.SupportsStacking() {
		controller := topmost.New(platform.NewForegroundMonitor(logger), ui.window, config.TopmostInterval, fyne.Do)
		go controller.Run(runCtx)
	} else {
		logger.Info("window stacking unsupported, overlay will not be kept on top")
	}
	go ui.refresher.Run(runCtx)
	go ui.watchEvents(watch.Subscribe(8))

	ui.window.Show()
	fyneApp.Run()
	cancel()

	summary := watch.Shutdown()
	logger.Info("stopwatch closed", "state", watch.State(), "elapsed", summary.Elapsed)
	_, _ = fmt.Fprintf(logOutput.Stdout, "Elapsed time: %.2f seconds\n", summary.Elapsed.Seconds())
	return nil
}

func (ui *overlayApp) build() {
	ui.window = overlay.New(ui.fyneApp, overlay.Config{
		Geometry: ui.config.Geometry,
		Opacity:  ui.config.Opacity,
		Reduced:  ui.config.ReducedMode,
	}, overlay.Callbacks{
		OnStart:             ui.start,
		OnTogglePause:       ui.togglePause,
		OnReset:             ui.reset,
		OnTogglePerformance: ui.togglePerformance,
		OnExit:              ui.quit,
	})
	ui.window.SetPaused(ui.watch.State() == stopwatch.StatePaused)

	ui.refresher = overlay.NewRefresher(ui.watch.Display, ui.window.SetElapsed, ui.config.UpdateDelay())

	desktopApp, ok := ui.fyneApp.(desktop.App)
	if !ok {
		ui.logger.Debug("system tray unsupported on this platform")
		return
	}
	ui.prefs = preferences.New(ui.fyneApp, ui.config.Geometry, ui.saveGeometry)
	ui.tray = tray.New(desktopApp, resources.Icon(), tray.Callbacks{
		OnStart:             ui.start,
		OnTogglePause:       ui.togglePause,
		OnReset:             ui.reset,
		OnTogglePerformance: ui.togglePerformance,
		OnPreferences:       ui.prefs.Show,
		OnQuit:              ui.quit,
	})
	ui.tray.SetReduced(ui.config.ReducedMode)
	ui.showState(ui.watch.State())
}

func (ui *overlayApp) start() {
	if err := ui.watch.Start(); err != nil {
		ui.logger.Error("start stopwatch", "error", err)
	}
}

func (ui *overlayApp) togglePause() {
	err := ui.watch.TogglePause()
	if errors.Is(err, stopwatch.ErrNotStarted) {
		ui.window.ShowError("Error", "Stopwatch has not been started")
		return
	}
	if err != nil {
		ui.logger.Error("toggle pause", "error", err)
	}
}

func (ui *overlayApp) reset() {
	if err := ui.watch.Reset(); err != nil {
		ui.logger.Error("reset stopwatch", "error", err)
	}
}

func (ui *overlayApp) togglePerformance() {
	ui.config.ReducedMode = !ui.config.ReducedMode
	ui.refresher.SetDelay(ui.config.UpdateDelay())
	ui.window.SetReducedMode(ui.config.ReducedMode)
	if ui.tray != nil {
		ui.tray.SetReduced(ui.config.ReducedMode)
	}
	ui.logger.Info("refresh mode changed", "reduced", ui.config.ReducedMode, "delay", ui.config.UpdateDelay())
}

func (ui *overlayApp) saveGeometry(geometry model.Geometry) error {
	if err := storage.SaveGeometry(ui.config.Dir, geometry); err != nil {
		ui.logger.Error("save geometry", "error", err)
		return err
	}
	ui.config.Geometry = geometry
	ui.window.UpdateGeometry(geometry)
	ui.logger.Info("geometry saved", "path", storage.ConfigPath(ui.config.Dir))
	return nil
}

func (ui *overlayApp) quit() {
	ui.quitOnce.Do(ui.fyneApp.Quit)
}

// watchEvents mirrors stopwatch transitions into the GUI until the
// stopwatch shuts down.
func (ui *overlayApp) watchEvents(events <-chan stopwatch.Event) {
	for event := range events {
		switch event.Type {
		case stopwatch.EventStateChange:
			ui.logger.Debug("stopwatch state changed", "state", event.State, "elapsed", event.Elapsed)
			state := event.State
			fyne.Do(func() {
				ui.window.SetPaused(state == stopwatch.StatePaused)
				ui.showState(state)
			})
		case stopwatch.EventPersistError:
			message := event.Message
			fyne.Do(func() {
				ui.window.ShowError("Error", "Could not save stopwatch state: "+message)
			})
		}
	}
}

func (ui *overlayApp) showState(state stopwatch.State) {
	if ui.tray == nil {
		return
	}
	ui.tray.SetStatus(string(state))
	ui.tray.SetPaused(state == stopwatch.StatePaused)
}
