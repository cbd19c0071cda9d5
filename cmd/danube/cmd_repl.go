package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/danue1/danube/ast"
	"github.com/danue1/danube/ast/owned"
	"github.com/danue1/danube/intern"
	"github.com/danue1/danube/parser"
	"github.com/danue1/danube/syntax"
)

const (
	promptMain  = "danube> "
	promptCont  = "   ...> "
	historyFile = ".danube_history"
)

type replMode struct {
	entry string
	show  string
}

type repl struct {
	cmd  *cobra.Command
	in   *intern.Interner
	mode replMode
}

func newReplCmd() *cobra.Command {
	var entry string
	var show string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactively parse Danube snippets",
		Long: `Read snippets and print their syntax tree or lowered form. Input that
ends inside an unclosed bracket or string continues on the next line.

Commands:
  :entry file|expr|type|pattern   choose the grammar entry point
  :show tree|debug|lower          choose what to print
  :quit                           leave`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := entryPoints[entry]; !ok {
				return fmt.Errorf("unknown entry point: %s", entry)
			}
			r := &repl{cmd: cmd, in: intern.New(), mode: replMode{entry: entry, show: show}}
			return r.run()
		},
	}

	cmd.Flags().StringVarP(&entry, "entry", "e", "expr", "grammar entry point (file, expr, type, pattern)")
	cmd.Flags().StringVar(&show, "show", "tree", "output (tree, debug, lower)")

	return cmd
}

func (r *repl) run() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
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

	for {
		code, ok := r.read(ln)
		if !ok {
			fmt.Fprintln(r.cmd.OutOrStdout())
			return nil
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if strings.HasPrefix(trimmed, ":") {
			if quit := r.command(trimmed); quit {
				return nil
			}
			continue
		}
		r.eval(code)
	}
}

// read collects lines until the snippet no longer ends inside an open
// construct. A blank continuation line forces the snippet through.
func (r *repl) read(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			if strings.TrimSpace(line) == "" {
				return b.String(), true
			}
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if !entryPoints[r.mode.entry](src).Incomplete() {
			return src, true
		}
	}
}

func (r *repl) command(line string) (quit bool) {
	out := r.cmd.OutOrStdout()
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		return true
	case ":entry":
		if len(fields) != 2 {
			fmt.Fprintf(out, "entry is %s\n", r.mode.entry)
			return false
		}
		if _, ok := entryPoints[fields[1]]; !ok {
			fmt.Fprintf(out, "unknown entry point %q\n", fields[1])
			return false
		}
		r.mode.entry = fields[1]
	case ":show":
		if len(fields) != 2 {
			fmt.Fprintf(out, "showing %s\n", r.mode.show)
			return false
		}
		switch fields[1] {
		case "tree", "debug", "lower":
			r.mode.show = fields[1]
		default:
			fmt.Fprintf(out, "unknown output %q\n", fields[1])
		}
	default:
		fmt.Fprintln(out, "commands: :entry, :show, :quit")
	}
	return false
}

func (r *repl) eval(src string) {
	out := r.cmd.OutOrStdout()
	res := entryPoints[r.mode.entry](src)

	switch r.mode.show {
	case "debug":
		fmt.Fprint(out, syntax.Debug(res.Root()))
	case "lower":
		if text, err := r.lower(res); err != nil {
			fmt.Fprintln(r.cmd.ErrOrStderr(), err)
		} else {
			fmt.Fprintln(out, text)
		}
	default:
		fmt.Fprintln(out, syntax.Shape(res.Root()))
	}

	if err := report(r.cmd, "<repl>", src, res.Diagnostics); err != nil && !errors.Is(err, errDiagnostics) {
		fmt.Fprintln(r.cmd.ErrOrStderr(), err)
	}
}

func (r *repl) lower(res *parser.Result) (string, error) {
	if r.mode.entry == "file" {
		file, _ := ast.CastSourceFile(res.Root())
		lowered, err := ast.LowerSourceFile(file, res.Diagnostics, r.in)
		if err != nil {
			return "", err
		}
		return owned.Dump(lowered, r.in), nil
	}
	if res.HasErrors() {
		return "", errors.New("not lowered: the snippet has errors")
	}
	n, err := ast.LowerFragment(res.Root(), r.in)
	if err != nil {
		return "", err
	}
	return owned.Dump(n, r.in), nil
}
