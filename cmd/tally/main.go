// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Command tally annotates bracket arithmetic in plain-text sheets.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"nickandperla.net/tally/internal/config"
	"nickandperla.net/tally/pkg/tally"
)

// app is the state shared by every subcommand.
type app struct {
	cfg    config.Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "tally",
		Short:         "Live bracket arithmetic for plain-text sheets",
		Long:          "tally evaluates [expressions] in a sheet, applies +N/-N modifiers written before them, and keeps a running total that [total] markers consume.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: a.cfg.Level()}))
			return nil
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfg.DBPath, "db", a.cfg.DBPath, "SQLite ledger path")
	pf.StringVar(&a.cfg.Color, "color", a.cfg.Color, "Color output: auto, always, or never")
	pf.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "Log level: debug, info, warn, or error")

	root.AddCommand(
		newAnnotateCmd(a),
		newRenderCmd(a),
		newReplCmd(a),
		newHistoryCmd(a),
	)
	return root
}

// engine builds an engine; with ledger set it opens the SQLite ledger.
func (a *app) engine(ledger bool) (*tally.Engine, error) {
	opts := []tally.Option{tally.WithLogger(a.logger)}
	if ledger {
		opts = append(opts, tally.WithSQLiteStore(a.cfg.DBPath))
	}
	e, err := tally.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", a.cfg.DBPath, err)
	}
	return e, nil
}

func main() {
	if err := config.LoadDotenv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	a := &app{cfg: cfg, stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
