// Package cli: batch.go implements the "linecut batch" command.
//
// batch reads a YAML or JSONC job file listing {path, from, to} entries
// and applies every job. Jobs on the same file run in file order, each
// against the content left by the previous one; different files are
// processed concurrently (see package batch).
//
// In --dry-run mode nothing is written, so every job is evaluated against
// the file's current content rather than the result of earlier jobs.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/linecut/internal/batch"
	"github.com/mmr-tortoise/linecut/internal/jobfile"
	"github.com/mmr-tortoise/linecut/internal/model"
)

// batchFlags holds the flag values for the batch command.
type batchFlags struct {
	writeFlags

	// concurrency bounds how many files are processed at once.
	// Zero means "use LINECUT_CONCURRENCY".
	concurrency int
}

// NewBatchCommand creates the "batch" cobra command.
func NewBatchCommand() *cobra.Command {
	flags := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "batch <jobfile>",
		Short: "Apply the removals listed in a job file",
		Long: `Apply every removal listed in a YAML (.yaml/.yml) or JSONC (.json/.jsonc)
job file. Relative paths are resolved against the job file's directory.

Job file example:
  jobs:
    - path: notes.txt
      from: 2
      to: 4

If a job fails, later jobs for the same file are skipped; other files
are still processed. The command exits non-zero if any job failed.

Examples:
  linecut batch cleanup.yaml
  linecut batch cleanup.jsonc --dry-run --json
  linecut batch cleanup.yaml --backup --concurrency 8`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntVar(&flags.concurrency, "concurrency", 0, "Files processed in parallel (env: LINECUT_CONCURRENCY)")
	addWriteFlags(cmd, &flags.writeFlags)

	return cmd
}

// runBatch is the main logic function for the batch command.
func runBatch(cmd *cobra.Command, jobPath string, flags *batchFlags) error {
	// Step 1: Load and validate the job file.
	jf, err := jobfile.Load(jobPath)
	if err != nil {
		return err
	}
	VerboseLog("loaded %d job(s) from %s", len(jf.Jobs), jobPath)

	// Step 2: Resolve concurrency (flag wins over configuration).
	concurrency := appConfig.Concurrency
	if cmd.Flags().Changed("concurrency") {
		if flags.concurrency < 1 {
			return model.NewCLIError(model.ExitGeneralError, "--concurrency must be at least 1")
		}
		concurrency = flags.concurrency
	}

	// Step 3: Run every job.
	runner := &batch.Runner{
		Remover:     newRemover(cmd, &flags.writeFlags, false),
		Concurrency: concurrency,
		Log:         Logger(),
	}
	outcomes := runner.Run(cmd.Context(), jf.Jobs)

	// Step 4: Output results, then fail if anything failed.
	printBatchResult(cmd.OutOrStdout(), outcomes)

	if failed := batch.Failed(outcomes); failed > 0 {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("%d of %d job(s) failed", failed, len(outcomes)))
	}
	return nil
}
