// Package cmd provides the CLI commands for Tasksync.
//
// This software is a derivative work based on Zeit (https://github.com/mrusme/zeit)
// Original work copyright (c) マリウス (mrusme)
// Modifications copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.
package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/tasksync/internal/config"
	"github.com/manav03panchal/tasksync/internal/errors"
	"github.com/manav03panchal/tasksync/internal/logging"
	"github.com/manav03panchal/tasksync/internal/output"
	"github.com/manav03panchal/tasksync/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagDebug  bool
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// Standard streams. Tests swap them for buffers.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tasksync",
	Short: "Tasks, calendar, time blocks and a pomodoro timer in your terminal",
	Long: `Tasksync keeps your to-do list, calendar and focus sessions in one place.

Examples:
  tasksync register you@example.com
  tasksync task add "Write report" --time 14:30 --date tomorrow --priority High
  tasksync today
  tasksync calendar --month "next month"
  tasksync blocks --date friday
  tasksync pomodoro`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(); err != nil {
			return err
		}
		if _, ok := output.ParseFormat(flagFormat); !ok {
			return errors.NewUserErrorWithField("format", flagFormat, "unknown output format",
				"Use cli, json or plain.")
		}

		// Skip initialization for commands that never touch the database
		if !needsRuntime(cmd) {
			return nil
		}

		var err error
		ctx, err = runtime.New(runtimeOptions())
		if err != nil {
			return err
		}
		logging.DebugLog("runtime ready",
			logging.KeyOperation, cmd.CommandPath(),
			"store", ctx.StorePath(),
			"remote_auth", ctx.RemoteEnabled())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeRuntime()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show today's tasks
		return runToday(cmd, args)
	},
}

// runtimeOptions builds runtime options from the global flags.
func runtimeOptions() runtime.Options {
	formatter := output.NewFormatter()
	formatter.Writer = stdout
	formatter.ErrWriter = stderr
	formatter.Format, _ = output.ParseFormat(flagFormat)
	formatter.ColorMode = output.ParseColorMode(flagColor)

	opts := runtime.DefaultOptions()
	opts.Format = formatter.Format
	opts.ColorMode = formatter.ColorMode
	opts.Formatter = formatter
	opts.Debug = flagDebug
	return opts
}

// logFile is the open log.file, closed when the command returns.
var logFile io.Closer

// setupLogging applies the log section of the configuration. --debug wins.
func setupLogging() error {
	if flagDebug {
		logging.ConfigureDebug()
		return nil
	}

	cfg := config.Global.Log
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return errors.NewUserErrorWithField("log.level", cfg.Level, err.Error(),
			"Use debug, info, warn or error.")
	}
	opts := logging.Options{
		Level:  level,
		JSON:   strings.EqualFold(cfg.Format, "json"),
		Output: stderr,
	}
	if cfg.File != "" {
		f, err := logging.OpenFile(cfg.File)
		if err != nil {
			return errors.NewSystemErrorWithOp("open log file", cfg.File, err)
		}
		closeLogFile()
		logFile = f
		opts.Output = f
	}
	logging.Configure(opts)
	return nil
}

func closeLogFile() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

func needsRuntime(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "completion", "help", "version", "path", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return false
	}
	return true
}

func closeRuntime() error {
	if ctx == nil {
		return nil
	}
	err := ctx.Close()
	ctx = nil
	return err
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	defer closeLogFile()

	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	// PersistentPostRunE does not run when RunE fails.
	var f *output.Formatter
	if ctx != nil {
		f = ctx.Formatter
	} else {
		format, _ := output.ParseFormat(flagFormat)
		f = &output.Formatter{Writer: stdout, ErrWriter: stderr, Format: format}
	}
	code := runtime.Report(f, err, flagDebug)
	if closeErr := closeRuntime(); closeErr != nil {
		logging.Warn("closing database failed", logging.KeyError, closeErr.Error())
	}
	if code == 0 {
		code = 1
	}
	return code
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("tasksync %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
		cmd.Println("")
		cmd.Println("Based on Zeit (https://github.com/mrusme/zeit)")
		cmd.Println("Licensed under SEGV License v1.0")
	},
}
