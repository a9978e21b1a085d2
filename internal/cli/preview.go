// Package cli: preview.go implements the "linecut preview" command.
//
// preview prints the lines a remove command would drop, with their line
// numbers, and never writes. It is equivalent to
// `linecut remove --dry-run --show` with a listing-oriented output.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/linecut/internal/lines"
)

// previewFlags holds the flag values for the preview command.
type previewFlags struct {
	from int
	to   int
}

// NewPreviewCommand creates the "preview" cobra command.
func NewPreviewCommand() *cobra.Command {
	flags := &previewFlags{}

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Show the lines a removal would drop",
		Long: `Show lines FROM through TO of a file with their line numbers,
exactly as "linecut remove" would remove them. The file is never modified.

Examples:
  linecut preview notes.txt --from 2 --to 4
  linecut preview notes.txt --from 2 --to 4 --json`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntVar(&flags.from, "from", 0, "First line (1-based)")
	cmd.Flags().IntVar(&flags.to, "to", 0, "Last line (inclusive)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

// runPreview performs a dry-run removal that keeps the removed text.
func runPreview(cmd *cobra.Command, path string, flags *previewFlags) error {
	rng, err := parseRange(flags.from, flags.to)
	if err != nil {
		return err
	}

	r := lines.NewRemover(lines.Options{DryRun: true, KeepRemoved: true}, Logger())
	res, err := r.Remove(cmd.Context(), path, rng)
	if err != nil {
		return removalError(path, err)
	}

	printPreviewResult(cmd.OutOrStdout(), res)
	return nil
}
