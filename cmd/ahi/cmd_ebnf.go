package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"

	"github.com/danue1/danube/grammar"
	"github.com/danue1/danube/source"
	"github.com/danue1/danube/syntax"
)

func newEbnfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ebnf",
		Short:         "EBNF grammar tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newEbnfCheckCmd())
	cmd.AddCommand(newEbnfListCmd())
	cmd.AddCommand(newEbnfCoverageCmd())
	cmd.AddCommand(newEbnfRecognizeCmd())
	cmd.AddCommand(newEbnfMatchCmd())

	return cmd
}

// loadGrammar reads the grammar named by args, or the embedded danube
// grammar when args is empty.
func loadGrammar(args []string, start string) (ebnf.Grammar, error) {
	name := "danube.ebnf"
	var r io.Reader = strings.NewReader(grammar.Source())
	if len(args) > 0 {
		name = args[0]
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("open file: %w", err)
		}
		defer f.Close()
		r = f
	}
	return grammar.Verify(name, r, start)
}

func newEbnfCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check [file]",
		Short:         "Parse and verify an EBNF grammar file (default: the embedded danube grammar)",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadGrammar(args, startProduction); err != nil {
				printErrors(cmd.OutOrStdout(), err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newEbnfListCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "list [file]",
		Short:         "List the productions of a grammar",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(args, "")
			if err != nil {
				printErrors(cmd.OutOrStdout(), err)
				return err
			}
			for _, name := range grammar.Productions(g) {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

// newEbnfCoverageCmd reports syntax node kinds the grammar does not
// describe. Error nodes are not part of the grammar.
func newEbnfCoverageCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "coverage [file]",
		Short:         "Check that every syntax node kind has a production",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(args, "")
			if err != nil {
				printErrors(cmd.OutOrStdout(), err)
				return err
			}
			var missing []string
			for _, kind := range syntax.NodeKinds() {
				if kind == syntax.Error {
					continue
				}
				if _, ok := g[kind.String()]; !ok {
					missing = append(missing, kind.String())
				}
			}
			for _, name := range missing {
				fmt.Fprintf(cmd.OutOrStdout(), "no production for %s\n", name)
			}
			if len(missing) > 0 {
				return fmt.Errorf("%d node kinds without a production", len(missing))
			}
			return nil
		},
	}
}

// newEbnfRecognizeCmd checks Danube files against the grammar alone,
// independent of the hand written parser.
func newEbnfRecognizeCmd() *cobra.Command {
	var grammarFile string
	var startProduction string

	cmd := &cobra.Command{
		Use:           "recognize file...",
		Short:         "Check that Danube files derive from the grammar",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var grammarArgs []string
			if grammarFile != "" {
				grammarArgs = []string{grammarFile}
			}
			g, err := loadGrammar(grammarArgs, startProduction)
			if err != nil {
				printErrors(cmd.OutOrStdout(), err)
				return err
			}
			rec, err := grammar.NewRecognizer(g, startProduction)
			if err != nil {
				return err
			}

			failed := 0
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
				src := string(data)
				if err := rec.RecognizeSource(src); err != nil {
					failed++
					var serr *grammar.SyntaxError
					if errors.As(err, &serr) {
						pos := source.NewLineIndex(src).Position(serr.Offset)
						fmt.Fprintf(cmd.OutOrStdout(), "%s:%s: unexpected %s, expected %s\n",
							path, pos, serr.Found, strings.Join(serr.Expected, " or "))
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files rejected", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&grammarFile, "grammar", "", "grammar file (default: the embedded danube grammar)")
	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "start production")

	return cmd
}

func newEbnfMatchCmd() *cobra.Command {
	var grammarFile string

	cmd := &cobra.Command{
		Use:           "match production text",
		Short:         "Match text against a lexical production",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var grammarArgs []string
			if grammarFile != "" {
				grammarArgs = []string{grammarFile}
			}
			g, err := loadGrammar(grammarArgs, "")
			if err != nil {
				printErrors(cmd.OutOrStdout(), err)
				return err
			}
			if _, ok := g[args[0]]; !ok {
				return fmt.Errorf("no production %q", args[0])
			}
			n := grammar.NewMatcher(g).Match(args[0], args[1])
			if n < 0 {
				return fmt.Errorf("%s does not match %q", args[0], args[1])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %q\n", args[0], args[1][:n])
			if n < len(args[1]) {
				return fmt.Errorf("%s matches %d of %d bytes", args[0], n, len(args[1]))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&grammarFile, "grammar", "", "grammar file (default: the embedded danube grammar)")

	return cmd
}

func printErrors(w io.Writer, err error) {
	for _, msg := range grammar.Errors(err) {
		fmt.Fprintln(w, msg)
	}
}
