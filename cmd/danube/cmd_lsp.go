package main

import (
	"github.com/spf13/cobra"

	"github.com/danue1/danube/lsp"
	"github.com/danue1/danube/workspace"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(version,
				workspace.WithPatterns(settings.Check.Include, settings.Check.Exclude),
				workspace.WithJobs(settings.Check.Jobs),
			)
			return server.RunStdio()
		},
	}
}
