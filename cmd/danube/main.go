package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/danue1/danube/config"
	"github.com/danue1/danube/logging"
)

const version = "0.1.0"

// settings is loaded before any subcommand runs.
var settings = config.Default()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose int
	var logFile string
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:           "danube",
		Short:         "Front end tools for the Danube language",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if configPath != "" {
				settings, err = config.Load(configPath)
			} else {
				settings, err = config.Discover(cmd.Context(), "")
			}
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if color != "" {
				settings.Color = color
			}
			if logFile == "" {
				logFile = settings.Log.File
			}
			level := logging.Verbosity(settings.Log.Level)
			if verbose > 0 {
				level = verbose
			}
			logging.Configure(level, logFile)
			return nil
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: discover danube.yaml or danube.toml)")
	rootCmd.PersistentFlags().StringVar(&color, "color", "", "colour output: auto, always or never")

	rootCmd.AddCommand(newLexCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newLowerCmd())
	rootCmd.AddCommand(newReplCmd())
	rootCmd.AddCommand(newLSPCmd())

	return rootCmd
}

// readInput returns the name and content of the file named by args, or of
// stdin when args is empty or "-".
func readInput(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read file: %w", err)
	}
	return args[0], string(data), nil
}
