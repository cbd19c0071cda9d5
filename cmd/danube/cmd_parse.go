package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danue1/danube/format"
	"github.com/danue1/danube/parser"
)

var entryPoints = map[string]func(string, ...parser.Option) *parser.Result{
	"file":    parser.Parse,
	"expr":    parser.ParseExpression,
	"type":    parser.ParseType,
	"pattern": parser.ParsePattern,
}

func newParseCmd() *cobra.Command {
	var outputFormat string
	var entry string
	var trivia bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a .dn file and dump its syntax tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parse, ok := entryPoints[entry]
			if !ok {
				return fmt.Errorf("unknown entry point: %s (expected file, expr, type or pattern)", entry)
			}
			name, src, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			res := parse(src, parser.WithFile(name))

			var enc format.TreeEncoder
			switch outputFormat {
			case "text":
				enc = format.NewTreeTextEncoder(cmd.OutOrStdout())
			case "compact":
				enc = format.NewTreeTextEncoder(cmd.OutOrStdout()).Compact(true)
			case "json":
				enc = format.NewTreeJSONEncoder(cmd.OutOrStdout(), src).WithTrivia(trivia)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			if err := enc.Encode(res.Root()); err != nil {
				return fmt.Errorf("encode tree: %w", err)
			}

			return report(cmd, name, src, res.Diagnostics)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, compact, json)")
	cmd.Flags().StringVarP(&entry, "entry", "e", "file", "grammar entry point (file, expr, type, pattern)")
	cmd.Flags().BoolVar(&trivia, "trivia", true, "include whitespace and comment leaves in json output")

	return cmd
}
