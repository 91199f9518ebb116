// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nickandperla.net/tally/internal/config"
)

// runCLI executes the root command in-process and returns stdout.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "tally.db")
	cfg.Color = "never"
	cfg.HistoryFile = ""
	return runCLIWith(t, cfg, stdin, args...)
}

func runCLIWith(t *testing.T, cfg config.Config, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	a := &app{cfg: cfg, stdin: strings.NewReader(stdin), stdout: &out, stderr: &errOut}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeSheet(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func TestAnnotateStdin(t *testing.T) {
	out, err := runCLI(t, "Str +10 [100] [total]", "annotate")
	require.NoError(t, err)

	var got sheetOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Empty(t, got.File)
	assert.Equal(t, 0.0, got.Total)
	require.Len(t, got.Annotations, 3)
	assert.Equal(t, "modifier-positive", got.Annotations[0].Mode.String())
	assert.Equal(t, "[100 → 110]", got.Annotations[1].Content)
	assert.Equal(t, "[110]", got.Annotations[2].Content)
}

func TestAnnotateEmptyStdin(t *testing.T) {
	out, err := runCLI(t, "", "annotate")
	require.NoError(t, err)
	assert.JSONEq(t, `{"annotations": [], "total": 0}`, out)
}

func TestAnnotateCursor(t *testing.T) {
	out, err := runCLI(t, "[1] [2]", "annotate", "--cursor", "1")
	require.NoError(t, err)

	var got sheetOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Annotations, 2)
	assert.Equal(t, "reveal", got.Annotations[0].Mode.String())
	assert.Equal(t, 2.0, got.Total)
}

func TestAnnotateFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for i, text := range []string{"[1]", "[2] [3]", "-50 [10]", "[bad] text"} {
		files = append(files, writeSheet(t, dir, "sheet"+string(rune('a'+i))+".txt", text))
	}

	out, err := runCLI(t, "", append([]string{"annotate", "-j", "2"}, files...)...)
	require.NoError(t, err)

	var got []sheetOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 4)
	for i, want := range []float64{1, 5, 5, 0} {
		assert.Equal(t, files[i], got[i].File)
		assert.Equal(t, want, got[i].Total, "file %d", i)
	}
}

func TestAnnotateMissingFile(t *testing.T) {
	_, err := runCLI(t, "", "annotate", filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.txt")
}

func TestRender(t *testing.T) {
	out, err := runCLI(t, "Str +10 [100] [total]", "render")
	require.NoError(t, err)
	assert.Equal(t, "Str +10 [100 → 110] [110]\nTotal: 0\n", out)
}

func TestRenderNoFooterWithAudit(t *testing.T) {
	out, err := runCLI(t, "Str +10 [100]\n", "render", "--footer=false", "--audit")
	require.NoError(t, err)
	assert.Equal(t, "Str +10 [100 → 110]\n  [100 → 110]  100 × 1.1 = 110\n", out)
}

func TestRenderRecordAndHistory(t *testing.T) {
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "ledger.db")
	cfg.Color = "never"

	sheet := writeSheet(t, t.TempDir(), "hero.txt", "[10] [5] [total] [7]")
	_, err := runCLIWith(t, cfg, "", "render", "--record", sheet)
	require.NoError(t, err)

	out, err := runCLIWith(t, cfg, "", "history")
	require.NoError(t, err)
	assert.Equal(t, "hero.txt\n", out)

	out, err = runCLIWith(t, cfg, "", "history", "hero.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "total@9")
	assert.Contains(t, out, "15")
	assert.Contains(t, out, "running")
	assert.Contains(t, out, "7")

	_, err = runCLIWith(t, cfg, "", "history", "villain.txt")
	assert.Error(t, err)
}

func TestInvalidFlag(t *testing.T) {
	_, err := runCLI(t, "", "render", "--color", "sometimes")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestREPLPiped(t *testing.T) {
	input := strings.Join([]string{
		"[5]",
		":cursor 0",
		":deselect",
		":bogus",
		":quit",
		"[99]",
	}, "\n")
	out, err := runCLI(t, input, "repl")
	require.NoError(t, err)

	// Sample sheet first
	assert.Contains(t, out, "Advantage, Modifier +10 [100 → 110]\nTotal: 110\n")
	// Appended line joins the running total
	assert.Contains(t, out, "Advantage, Modifier +10 [100 → 110]\n[5]\nTotal: 115\n")
	assert.Contains(t, out, "unknown command :bogus")
	assert.NotContains(t, out, "[99]")
}

func TestREPLCursorReveals(t *testing.T) {
	out, err := runCLI(t, ":clear\n[2] [3]\n:cursor 1\n:record\n", "repl")
	require.NoError(t, err)
	assert.Contains(t, out, "[2] [3]\nTotal: 5\n")
	assert.Contains(t, out, "[2] [3]\nTotal: 3\n")
	assert.Contains(t, out, "Error: no ledger configured")
}

func TestREPLRecord(t *testing.T) {
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "ledger.db")
	cfg.Color = "never"
	cfg.HistoryFile = ""

	out, err := runCLIWith(t, cfg, ":record party\n", "repl", "--record")
	require.NoError(t, err)
	assert.Contains(t, out, "recorded 1 entries for party")

	out, err = runCLIWith(t, cfg, "", "history", "party")
	require.NoError(t, err)
	assert.Contains(t, out, "110")
}
