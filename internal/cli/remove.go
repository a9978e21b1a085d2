// Package cli: remove.go implements the "linecut remove" command.
//
// The remove command deletes lines FROM..TO (1-based, inclusive) from a
// single file. It validates the range, reads the whole file, builds the new
// content in memory, and only then writes, so a bad range or unreadable
// file never leaves a partially written result behind.
//
// With --interactive the command shows the lines it is about to drop and
// asks for confirmation before writing.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/linecut/internal/lines"
	"github.com/mmr-tortoise/linecut/internal/model"
)

// removeFlags holds the flag values for the remove command.
type removeFlags struct {
	writeFlags

	from int
	to   int

	// show includes the removed lines in the output.
	show bool

	// interactive asks for confirmation before writing.
	interactive bool
}

// NewRemoveCommand creates the "remove" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewRemoveCommand() *cobra.Command {
	flags := &removeFlags{}

	cmd := &cobra.Command{
		Use:   "remove <file>",
		Short: "Remove a range of lines from a file",
		Long: `Remove lines FROM through TO (1-based, inclusive) from a file.

Lines past the end of the file are ignored: a range that starts after the
last line leaves the file unchanged. Running the same command twice removes
different lines the second time, because numbering follows the current content.

Examples:
  linecut remove notes.txt --from 2 --to 4
  linecut remove notes.txt --from 10 --to 10 --backup
  linecut remove notes.txt --from 1 --to 3 --dry-run --show
  linecut remove notes.txt --from 5 --to 9 --interactive`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntVar(&flags.from, "from", 0, "First line to remove (1-based)")
	cmd.Flags().IntVar(&flags.to, "to", 0, "Last line to remove (inclusive)")
	cmd.Flags().BoolVar(&flags.show, "show", false, "Print the removed lines")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "Confirm before writing")
	addWriteFlags(cmd, &flags.writeFlags)

	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

// runRemove is the main logic function for the remove command.
func runRemove(cmd *cobra.Command, path string, flags *removeFlags) error {
	ctx := cmd.Context()

	// Step 1: Validate the range before touching the file.
	rng, err := parseRange(flags.from, flags.to)
	if err != nil {
		return err
	}
	VerboseLog("removing lines %s from %s", rng, path)

	// Step 2: Confirm with the user, showing exactly what will go.
	if flags.interactive && !flags.dryRun {
		proceed, err := confirmRemoval(ctx, cmd, path, rng)
		if err != nil {
			return err
		}
		if !proceed {
			return model.NewCLIError(model.ExitUserCancelled, "operation cancelled by user")
		}
	}

	// Step 3: Remove the range.
	res, err := newRemover(cmd, &flags.writeFlags, flags.show).Remove(ctx, path, rng)
	if err != nil {
		return removalError(path, err)
	}

	// Step 4: Output the result.
	printRemovalResult(cmd.OutOrStdout(), res, flags.show)
	return nil
}

// confirmRemoval previews the removal and prompts. It returns true without
// prompting when there is nothing to remove.
func confirmRemoval(ctx context.Context, cmd *cobra.Command, path string, rng model.LineRange) (bool, error) {
	preview := lines.NewRemover(lines.Options{DryRun: true, KeepRemoved: true}, Logger())
	res, err := preview.Remove(ctx, path, rng)
	if err != nil {
		return false, removalError(path, err)
	}
	if !res.Changed {
		return true, nil
	}

	confirmed, err := promptConfirmation(cmd.InOrStdin(), cmd.OutOrStdout(), res)
	if err != nil {
		return false, model.WrapCLIError(model.ExitGeneralError, "failed to read user input", err)
	}
	return confirmed, nil
}

// promptConfirmation lists the lines about to be removed and reads a
// single answer line. Only "y" or "yes" confirm.
func promptConfirmation(in io.Reader, out io.Writer, res *model.RemovalResult) (bool, error) {
	fmt.Fprintf(out, "About to remove %d line(s) from %s:\n", res.Removed(), res.Path)
	writeNumberedLines(out, res.Effective.From, res.RemovedLines)
	fmt.Fprint(out, "\nContinue? [y/N] ")

	// bufio.Scanner handles both LF and CRLF answers.
	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
		return answer == "y" || answer == "yes", nil
	}

	// A closed stdin counts as "no".
	if err := scanner.Err(); err != nil {
		return false, err
	}
	return false, nil
}
