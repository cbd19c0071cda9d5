package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danue1/danube/ast"
	"github.com/danue1/danube/format"
	"github.com/danue1/danube/intern"
	"github.com/danue1/danube/parser"
)

func newLowerCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "lower [file]",
		Short: "Lower a .dn file to the owned tree and dump it",
		Long: `Parse a .dn file and lower every item that parsed cleanly. Items with
syntax errors are listed as skipped spans and their diagnostics are printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFormat == "" {
				outputFormat = settings.Lower.Format
			}
			name, src, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			in := intern.New()
			enc, err := format.NewLoweredEncoder(cmd.OutOrStdout(), in, outputFormat)
			if err != nil {
				return err
			}

			res := parser.Parse(src, parser.WithFile(name))
			file, ok := ast.CastSourceFile(res.Root())
			if !ok {
				return fmt.Errorf("lower: root is %s", res.Root().Kind())
			}
			lowered, err := ast.LowerSourceFile(file, res.Diagnostics, in)
			if err != nil {
				return fmt.Errorf("lower %s: %w", name, err)
			}
			if err := enc.Encode(lowered); err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			return report(cmd, name, src, res.Diagnostics)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (sexpr, json, yaml; default from config)")

	return cmd
}
