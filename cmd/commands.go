package main

import (
	"fmt"

	"stopwatch/internal/platform"

	"github.com/spf13/cobra"
)

func newStatusCommand(env environment, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the persisted stopwatch state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := consoleLogger(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			dir, err := resolveDir(env, flags)
			if err != nil {
				return err
			}
			watch, store := openStopwatch(env, dir, logger)

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "State:    %s\n", watch.State())
			_, _ = fmt.Fprintf(out, "Elapsed:  %s\n", watch.Display())
			_, _ = fmt.Fprintf(out, "File:     %s\n", store.Path())

			record, found, err := env.findInstance(cmd.Context())
			switch {
			case err != nil:
				logger.Debug("process scan failed", "error", err)
				_, _ = fmt.Fprintln(out, "Overlay:  unknown")
			case found:
				_, _ = fmt.Fprintf(out, "Overlay:  running (pid %d)\n", record.PID)
			default:
				_, _ = fmt.Fprintln(out, "Overlay:  not running")
			}
			return nil
		},
	}
}

func newResetCommand(env environment, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the persisted stopwatch state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := consoleLogger(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			record, found, err := env.findInstance(cmd.Context())
			if err != nil {
				logger.Warn("process scan failed", "error", err)
			}
			if found {
				return fmt.Errorf("overlay is running (pid %d): use its Reset control", record.PID)
			}

			dir, err := resolveDir(env, flags)
			if err != nil {
				return err
			}
			watch, _ := openStopwatch(env, dir, logger)
			if err := watch.Reset(); err != nil {
				return err
			}
			watch.Shutdown()
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Stopwatch reset")
			return nil
		},
	}
}

func newAutostartCommand(env environment, flags *rootFlags) *cobra.Command {
	autostart := &cobra.Command{
		Use:   "autostart",
		Short: "Manage launching the overlay at login",
	}

	autostart.AddCommand(
		&cobra.Command{
			Use:   "enable",
			Short: "Launch the overlay at login",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				entry := platform.AutostartEntry{Name: appName, ExecPath: env.execPath}
				if flags.Dir != "" {
					dir, err := resolveDir(env, flags)
					if err != nil {
						return err
					}
					entry.Args = []string{"--dir", dir}
				}
				if err := env.autostart.EnableAutostart(entry); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Autostart enabled")
				return nil
			},
		},
		&cobra.Command{
			Use:   "disable",
			Short: "Stop launching the overlay at login",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := env.autostart.DisableAutostart(appName); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Autostart disabled")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Report whether the overlay launches at login",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				enabled, err := env.autostart.AutostartEnabled(appName)
				if err != nil {
					return err
				}
				state := "disabled"
				if enabled {
					state = "enabled"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Autostart %s\n", state)
				return nil
			},
		},
	)
	return autostart
}
