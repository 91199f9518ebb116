// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"nickandperla.net/tally/internal/render"
	"nickandperla.net/tally/pkg/tally"
)

type renderFlags struct {
	footer bool
	audit  bool
	cursor int
	name   string
}

func newRenderCmd(a *app) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Print a sheet with its annotations applied",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := tally.NoSelection
			if cmd.Flags().Changed("cursor") {
				sel = tally.Cursor(f.cursor)
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return a.runRender(path, sel, f)
		},
	}
	cmd.Flags().BoolVar(&f.footer, "footer", true, "Print the running total under the sheet")
	cmd.Flags().BoolVar(&f.audit, "audit", false, "List every computed value with its tooltip")
	cmd.Flags().IntVar(&f.cursor, "cursor", -1, "Cursor offset; spans containing it are shown raw")
	cmd.Flags().BoolVar(&a.cfg.Record, "record", a.cfg.Record, "Append the totals to the ledger")
	cmd.Flags().StringVar(&f.name, "name", "", "Ledger document name (default: file name)")
	return cmd
}

func (a *app) runRender(path string, sel tally.Selection, f renderFlags) error {
	e, err := a.engine(a.cfg.Record)
	if err != nil {
		return err
	}
	defer e.Close()

	var (
		text string
		res  tally.Result
	)
	if path == "" {
		text, res, err = e.AnnotateReader(a.stdin, sel)
	} else {
		text, res, err = e.AnnotateFile(path, sel)
	}
	if err != nil {
		return err
	}

	r := a.renderer(render.WithFooter(f.footer), render.WithAudit(f.audit))
	if _, err := io.WriteString(a.stdout, r.Render(text, res)); err != nil {
		return err
	}

	if !a.cfg.Record {
		return nil
	}
	name := f.name
	if name == "" {
		name = documentName(path)
	}
	if _, err := e.Record(name, res); err != nil {
		return err
	}
	return nil
}

// renderer builds a sheet renderer for the app's stdout.
func (a *app) renderer(opts ...render.Option) *render.Renderer {
	lr := render.NewLipgloss(a.stdout, render.ColorMode(a.cfg.Color))
	opts = append([]render.Option{
		render.WithTheme(render.NewTheme(lr)),
		render.WithWidth(terminalWidth(a.stdout)),
	}, opts...)
	return render.New(opts...)
}

// terminalWidth returns the column count of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func documentName(path string) string {
	if path == "" {
		return "stdin"
	}
	return filepath.Base(path)
}
