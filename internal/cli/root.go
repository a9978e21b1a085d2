// Package cli implements the cobra-based CLI commands for linecut.
//
// Each subcommand (remove, preview, batch) is defined in its own file
// within this package. This file defines the root command that serves as
// the parent for all subcommands and handles global flags, configuration
// loading, and exit codes.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/linecut/internal/config"
	"github.com/mmr-tortoise/linecut/internal/log"
	"github.com/mmr-tortoise/linecut/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	jsonOutput bool

	// verbose forces debug-level logging on stderr.
	verbose bool

	// envFile is an optional .env file loaded before LINECUT_* variables.
	envFile string
)

// Settings resolved in PersistentPreRunE, before any subcommand runs.
var (
	appConfig config.EnvConfig
	logger    = log.Discard()
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// The root command itself does not perform any action; it only provides
// help text and global flags.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "linecut",
		Short: "Remove line ranges from text files",
		Long: `linecut removes a contiguous, 1-based, inclusive range of lines from a text
file and writes the remaining lines back in their original order.

Line endings are preserved exactly. Ranges that run past the end of the file
are narrowed to the lines that exist. Writes are atomic by default.`,

		// We print errors ourselves (text or JSON based on --json flag).
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadSettings(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load LINECUT_* settings from this .env file (default: ./.env if present)")

	rootCmd.AddCommand(NewRemoveCommand())
	rootCmd.AddCommand(NewPreviewCommand())
	rootCmd.AddCommand(NewBatchCommand())

	return rootCmd
}

// loadSettings reads configuration and builds the shared logger.
func loadSettings(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "invalid configuration", err)
	}
	appConfig = cfg
	logger = log.New(cmd.ErrOrStderr(), cfg.Format(), cfg.LogLevel, verbose)
	return nil
}

// Run executes rootCmd, prints any error, and returns the exit code for
// main to pass to os.Exit. CLIError types carry their own exit codes;
// other errors (including cobra flag errors) map to 1.
func Run(ctx context.Context, rootCmd *cobra.Command) model.ExitCode {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return model.ExitSuccess
	}

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(rootCmd.ErrOrStderr(), cliErr.Message, cliErr.Err)
		return cliErr.Code
	}

	printError(rootCmd.ErrOrStderr(), err.Error(), nil)
	return model.ExitGeneralError
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(w io.Writer, message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode; stdout is reserved for
		// successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// VerboseLog emits a debug-level message. It is visible with --verbose
// or LINECUT_LOG_LEVEL=debug.
func VerboseLog(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Logger returns the logger configured for the current invocation.
func Logger() logrus.FieldLogger {
	return logger
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
