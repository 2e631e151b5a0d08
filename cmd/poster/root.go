package main

import (
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "poster",
		Short: "Batch Reddit posting with built-in pacing and session limits",
		Long: `poster submits batches of Reddit posts from JSON or CSV files.

Every batch runs through validation, a sliding-window request budget,
randomized inter-post delays, and a per-session post quota. Dry-run is
the default; nothing reaches Reddit until you pass --live and confirm.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newRunCmd(&verbose))
	root.AddCommand(newServeCmd(&verbose))
	root.AddCommand(newSamplesCmd())

	return root
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
