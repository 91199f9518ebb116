// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"nickandperla.net/tally/pkg/tally"
)

// sheetOutput is the JSON shape of one annotated sheet.
type sheetOutput struct {
	File        string             `json:"file,omitempty"`
	Annotations []tally.Annotation `json:"annotations"`
	Total       float64            `json:"total"`
}

func newAnnotateCmd(a *app) *cobra.Command {
	var cursor int
	cmd := &cobra.Command{
		Use:   "annotate [file...]",
		Short: "Print the annotation set of each sheet as JSON",
		Long:  "Annotate reads each file (or stdin when none is given) and prints its annotations and running total as JSON. Files are processed in parallel.",
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := tally.NoSelection
			if cmd.Flags().Changed("cursor") {
				sel = tally.Cursor(cursor)
			}
			return a.runAnnotate(args, sel)
		},
	}
	cmd.Flags().IntVar(&cursor, "cursor", -1, "Cursor offset; spans containing it are left unevaluated")
	cmd.Flags().IntVarP(&a.cfg.Workers, "workers", "j", a.cfg.Workers, "Number of files annotated in parallel")
	return cmd
}

func (a *app) runAnnotate(files []string, sel tally.Selection) error {
	e, err := a.engine(false)
	if err != nil {
		return err
	}
	defer e.Close()

	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")

	if len(files) == 0 {
		_, res, err := e.AnnotateReader(a.stdin, sel)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		return enc.Encode(sheetOutput{Annotations: nonNil(res.Annotations), Total: res.Total})
	}

	out := make([]sheetOutput, len(files))
	var g errgroup.Group
	g.SetLimit(a.cfg.Workers)
	for i, path := range files {
		g.Go(func() error {
			_, res, err := e.AnnotateFile(path, sel)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			a.logger.Debug("annotated", "file", path, "annotations", len(res.Annotations), "total", res.Total)
			out[i] = sheetOutput{File: path, Annotations: nonNil(res.Annotations), Total: res.Total}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return enc.Encode(out)
}

func nonNil(as []tally.Annotation) []tally.Annotation {
	if as == nil {
		return []tally.Annotation{}
	}
	return as
}
