// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"nickandperla.net/tally/internal/live"
	"nickandperla.net/tally/internal/render"
	"nickandperla.net/tally/pkg/tally"
)

const replHelp = `Lines you enter are appended to the sheet, which is re-rendered after each change.
The cursor starts detached; spans containing it are shown raw.
Commands:
  :show              render the sheet again
  :cursor N          put the cursor at byte offset N
  :select FROM TO    select a byte range
  :deselect          drop the cursor so every span is evaluated
  :clear             empty the sheet
  :reset             restore the sample sheet
  :record [NAME]     append the current totals to the ledger
  :help              show this help
  :quit              exit
`

func newReplCmd(a *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "repl [file]",
		Short: "Edit a sheet interactively",
		Long:  "Repl keeps a sheet in memory, appends each entered line to it and shows the re-annotated result. Without a file it starts from a sample sheet.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := tally.SampleSheet
			path := ""
			if len(args) == 1 {
				path = args[0]
				b, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				text = string(b)
			}
			if name == "" {
				name = "sample"
				if path != "" {
					name = documentName(path)
				}
			}
			return a.runREPL(text, name)
		},
	}
	cmd.Flags().StringVar(&a.cfg.HistoryFile, "history", a.cfg.HistoryFile, "Line history file, relative to the home directory; empty disables it")
	cmd.Flags().BoolVar(&a.cfg.Record, "record", a.cfg.Record, "Open the ledger so :record can append to it")
	cmd.Flags().StringVar(&name, "name", "", "Ledger document name (default: file name)")
	return cmd
}

// repl is one interactive editing session.
type repl struct {
	engine   *tally.Engine
	buf      *live.Buffer
	session  *live.Session
	renderer *render.Renderer
	name     string
	out      io.Writer
}

func (a *app) runREPL(text, name string) error {
	e, err := a.engine(a.cfg.Record)
	if err != nil {
		return err
	}
	defer e.Close()

	buf := live.NewBuffer(text)
	buf.Deselect()
	r := &repl{
		engine:   e,
		buf:      buf,
		session:  e.NewSession(buf),
		renderer: a.renderer(render.WithFooter(true)),
		name:     name,
		out:      a.stdout,
	}

	fmt.Fprintln(a.stdout, "tally REPL (:help for commands, Ctrl+D to exit)")
	fmt.Fprintln(a.stdout)
	r.show()

	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return r.runLiner(historyPath(a.cfg.HistoryFile))
	}
	return r.runBasic(a.stdin)
}

// runBasic handles non-TTY input (piped input).
func (r *repl) runBasic(in io.Reader) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if r.handle(sc.Text()) {
			return nil
		}
	}
	return sc.Err()
}

// runLiner handles TTY input with line editing and history.
func (r *repl) runLiner(histPath string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		line, err := ln.Prompt(">>> ")
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if r.handle(line) {
			return nil
		}
	}
}

// handle runs one input line and reports whether the session should end.
func (r *repl) handle(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if !strings.HasPrefix(trimmed, ":") {
		sep := ""
		if r.buf.Text() != "" {
			sep = "\n"
		}
		r.apply(r.buf.Append(sep + line))
		return false
	}

	fields := strings.Fields(trimmed)
	switch strings.ToLower(fields[0]) {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprint(r.out, replHelp)
	case ":show":
		r.show()
	case ":clear":
		r.apply(r.buf.SetText(""))
	case ":reset":
		r.apply(r.buf.SetText(tally.SampleSheet))
	case ":cursor":
		n, err := intArgs(fields[1:], 1)
		if err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
			break
		}
		r.apply(r.buf.Select(tally.Cursor(n[0])))
	case ":deselect":
		r.apply(r.buf.Deselect())
	case ":select":
		n, err := intArgs(fields[1:], 2)
		if err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
			break
		}
		r.apply(r.buf.Select(tally.Selection{From: n[0], To: n[1]}))
	case ":record":
		name := r.name
		if len(fields) > 1 {
			name = fields[1]
		}
		entries, err := r.engine.Record(name, r.session.Result())
		if err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
			break
		}
		fmt.Fprintf(r.out, "recorded %d entries for %s\n", len(entries), name)
	default:
		fmt.Fprintf(r.out, "unknown command %s. Type :help for commands.\n", fields[0])
	}
	return false
}

// apply forwards a buffer change to the session and shows the sheet when it
// was rebuilt.
func (r *repl) apply(c live.Change) {
	if _, rebuilt := r.session.Notify(c); rebuilt {
		r.show()
	}
}

func (r *repl) show() {
	fmt.Fprint(r.out, r.renderer.Render(r.buf.Text(), r.session.Result()))
}

func intArgs(args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("expected %d numbers, got %d", n, len(args))
	}
	out := make([]int, n)
	for i, s := range args {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("not a number: %s", s)
		}
		out[i] = v
	}
	return out, nil
}

// historyPath resolves name against the home directory.
func historyPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, name)
}
