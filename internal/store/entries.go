// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package store

import (
	"time"

	"github.com/google/uuid"

	"nickandperla.net/tally/internal/annot"
)

// EntriesFor builds the ledger entries of one recompute of document: one
// per consumed [total] in order, then the trailing running total. All
// entries share a fresh run ID.
func EntriesFor(document string, res annot.Result, now time.Time) []Entry {
	run := uuid.NewString()
	var entries []Entry
	for _, ev := range res.Evaluations {
		if ev.Kind != annot.Total {
			continue
		}
		entries = append(entries, Entry{
			ID:       uuid.NewString(),
			Run:      run,
			Document: document,
			Kind:     KindTotal,
			Offset:   ev.Start,
			Value:    ev.Final,
			Ts:       now,
		})
	}
	return append(entries, Entry{
		ID:       uuid.NewString(),
		Run:      run,
		Document: document,
		Kind:     KindRunning,
		Offset:   -1,
		Value:    res.Total,
		Ts:       now,
	})
}
