package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/danue1/danube/diag"
	"github.com/danue1/danube/workspace"
)

var errDiagnostics = errors.New("input has errors")

func newRenderer(cmd *cobra.Command) *diag.Renderer {
	colour := diag.ColorEnabled(settings.Color, cmd.ErrOrStderr())
	return diag.NewRenderer(diag.NewStyles(colour), settings.Check.Context)
}

// report prints ds to stderr and returns errDiagnostics when any of them is
// an error.
func report(cmd *cobra.Command, name, src string, ds []diag.Diagnostic) error {
	if len(ds) == 0 {
		return nil
	}
	if err := newRenderer(cmd).Render(cmd.ErrOrStderr(), name, src, ds); err != nil {
		return fmt.Errorf("render diagnostics: %w", err)
	}
	if diag.HasErrors(ds) {
		return errDiagnostics
	}
	return nil
}

func newCheckCmd() *cobra.Command {
	var watch bool
	var jobs int

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Parse .dn files and report syntax errors",
		Long: `Parse every .dn file under the given paths (default: the project root
or the current directory) and print their diagnostics. With --watch, keep
running and recheck files as they change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				root := settings.Root()
				if root == "" {
					root = "."
				}
				args = []string{root}
			}
			if jobs == 0 {
				jobs = settings.Check.Jobs
			}

			var failed bool
			for _, root := range args {
				ws, docs, err := scan(cmd.Context(), root, jobs)
				if err != nil {
					return err
				}
				if err := printDocuments(cmd, docs); err != nil {
					if !errors.Is(err, errDiagnostics) {
						return err
					}
					failed = true
				}
				if watch {
					return watchWorkspace(cmd, ws)
				}
			}
			if failed {
				return errDiagnostics
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "recheck files when they change (first path only)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "files parsed in parallel (default: config or GOMAXPROCS)")

	return cmd
}

// scan checks a single file or every matching file below a directory.
func scan(ctx context.Context, root string, jobs int) (*workspace.Workspace, []*workspace.Document, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, nil, fmt.Errorf("check: %w", err)
	}
	if !info.IsDir() {
		ws := workspace.New(filepath.Dir(root))
		docs, err := ws.ParseFiles(ctx, []string{root})
		return ws, docs, err
	}
	ws := workspace.New(root,
		workspace.WithPatterns(settings.Check.Include, settings.Check.Exclude),
		workspace.WithJobs(jobs),
	)
	docs, err := ws.Scan(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("check: %w", err)
	}
	return ws, docs, nil
}

func printDocuments(cmd *cobra.Command, docs []*workspace.Document) error {
	r := newRenderer(cmd)
	var all []diag.Diagnostic
	for _, doc := range docs {
		if err := r.Render(cmd.ErrOrStderr(), doc.Path, doc.Text, doc.Diagnostics()); err != nil {
			return fmt.Errorf("render diagnostics: %w", err)
		}
		all = append(all, doc.Diagnostics()...)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%d files: %s\n", len(docs), r.Summary(all))
	if diag.HasErrors(all) {
		return errDiagnostics
	}
	return nil
}

func watchWorkspace(cmd *cobra.Command, ws *workspace.Workspace) error {
	w, err := workspace.NewWatcher(ws)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "watching %s\n", ws.Root())
	r := newRenderer(cmd)
	return w.Run(ctx, func(c workspace.Change) {
		if c.Removed {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: removed\n", c.Path)
			return
		}
		ds := c.Doc.Diagnostics()
		if err := r.Render(cmd.ErrOrStderr(), c.Path, c.Doc.Text, ds); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", c.Path, r.Summary(ds))
	})
}
