// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nickandperla.net/tally/pkg/tally"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history [document]",
		Short: "List recorded totals, newest first",
		Long:  "History prints the ledger entries of a document, newest run first. Without a document it lists the recorded documents.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine(true)
			if err != nil {
				return err
			}
			defer e.Close()

			if len(args) == 0 {
				docs, err := e.Documents()
				if err != nil {
					return err
				}
				for _, d := range docs {
					fmt.Fprintln(a.stdout, d)
				}
				return nil
			}

			entries, err := e.History(args[0], limit)
			if err != nil {
				return fmt.Errorf("history %s: %w", args[0], err)
			}
			run := ""
			for _, en := range entries {
				if en.Run != run {
					run = en.Run
					fmt.Fprintf(a.stdout, "%s  %s\n", en.Ts.Local().Format("2006-01-02 15:04:05"), run)
				}
				label := string(en.Kind)
				if en.Offset >= 0 {
					label = fmt.Sprintf("%s@%d", en.Kind, en.Offset)
				}
				fmt.Fprintf(a.stdout, "  %-12s %s\n", label, tally.FormatNumber(en.Value))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show; 0 shows all")
	return cmd
}
