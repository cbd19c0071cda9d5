package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danue1/danube/diag"
	"github.com/danue1/danube/format"
	"github.com/danue1/danube/lexer"
)

func newLexCmd() *cobra.Command {
	var outputFormat string
	var trivia bool

	cmd := &cobra.Command{
		Use:   "lex [file]",
		Short: "Print the token stream of a .dn file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			tokens, lexErrors := lexer.Lex(src)

			enc := format.NewTokenEncoder(cmd.OutOrStdout(), src).WithTrivia(trivia)
			switch outputFormat {
			case "text":
			case "json":
				enc.JSON(true)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			if err := enc.Encode(tokens); err != nil {
				return fmt.Errorf("encode tokens: %w", err)
			}

			if len(lexErrors) > 0 {
				ds := make([]diag.Diagnostic, len(lexErrors))
				for i, e := range lexErrors {
					ds[i] = diag.Errorf(e.Span, "%s", e.Message)
				}
				return report(cmd, name, src, ds)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&trivia, "trivia", false, "include whitespace and comments")

	return cmd
}
