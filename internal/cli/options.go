package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/linecut/internal/lines"
	"github.com/mmr-tortoise/linecut/internal/model"
	"github.com/mmr-tortoise/linecut/internal/vcs"
)

// writeFlags are the flags shared by every command that modifies files.
// Unset flags fall back to the LINECUT_* configuration.
type writeFlags struct {
	dryRun       bool
	atomic       bool
	backup       bool
	backupSuffix string
	requireClean bool
}

// addWriteFlags registers writeFlags on cmd.
func addWriteFlags(cmd *cobra.Command, f *writeFlags) {
	cmd.Flags().BoolVarP(&f.dryRun, "dry-run", "n", false, "Report what would be removed without writing")
	cmd.Flags().BoolVar(&f.atomic, "atomic", true, "Write via a temporary file and rename (env: LINECUT_ATOMIC)")
	cmd.Flags().BoolVar(&f.backup, "backup", false, "Save the original file before writing (env: LINECUT_BACKUP)")
	cmd.Flags().StringVar(&f.backupSuffix, "backup-suffix", lines.DefaultBackupSuffix, "Suffix for backup files (env: LINECUT_BACKUP_SUFFIX)")
	cmd.Flags().BoolVar(&f.requireClean, "require-clean", false, "Refuse to modify Git-tracked files with uncommitted changes (env: LINECUT_REQUIRE_CLEAN)")
}

// removerOptions merges configuration with explicitly set flags.
func removerOptions(cmd *cobra.Command, f *writeFlags) (lines.Options, bool) {
	opts := lines.Options{
		DryRun:       f.dryRun,
		Atomic:       appConfig.Atomic,
		Backup:       appConfig.Backup,
		BackupSuffix: appConfig.BackupSuffix,
	}
	requireClean := appConfig.RequireClean

	flags := cmd.Flags()
	if flags.Changed("atomic") {
		opts.Atomic = f.atomic
	}
	if flags.Changed("backup") {
		opts.Backup = f.backup
	}
	if flags.Changed("backup-suffix") {
		opts.BackupSuffix = f.backupSuffix
	}
	if flags.Changed("require-clean") {
		requireClean = f.requireClean
	}
	return opts, requireClean
}

// newRemover builds a Remover from the merged options, attaching the Git
// guard when the clean-file check is enabled.
func newRemover(cmd *cobra.Command, f *writeFlags, keepRemoved bool) *lines.Remover {
	opts, requireClean := removerOptions(cmd, f)
	opts.KeepRemoved = keepRemoved

	VerboseLog("write options: atomic=%t backup=%t suffix=%q dry-run=%t require-clean=%t",
		opts.Atomic, opts.Backup, opts.BackupSuffix, opts.DryRun, requireClean)

	r := lines.NewRemover(opts, Logger())
	if requireClean {
		r.WithGuard(vcs.NewGuard())
	}
	return r
}

// parseRange validates --from/--to and maps failures to ExitInvalidRange.
func parseRange(from, to int) (model.LineRange, error) {
	rng, err := model.NewLineRange(from, to)
	if err != nil {
		return model.LineRange{}, model.WrapCLIError(model.ExitInvalidRange, "cannot remove lines", err)
	}
	return rng, nil
}

// removalError translates a Remover error into a CLIError with the
// matching exit code. CLIErrors (e.g. from the Git guard) pass through.
func removalError(path string, err error) error {
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	message := fmt.Sprintf("cannot remove lines from %s", path)
	switch {
	case errors.Is(err, model.ErrInvalidRange):
		return model.WrapCLIError(model.ExitInvalidRange, message, err)
	case errors.Is(err, lines.ErrFileAccess):
		return model.WrapCLIError(model.ExitFileAccess, message, err)
	case errors.Is(err, context.Canceled):
		return model.WrapCLIError(model.ExitGeneralError, "interrupted", err)
	default:
		return model.WrapCLIError(model.ExitGeneralError, message, err)
	}
}
