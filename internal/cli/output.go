package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mmr-tortoise/linecut/internal/batch"
	"github.com/mmr-tortoise/linecut/internal/model"
)

// printRemovalResult outputs a single removal result in text or JSON format.
func printRemovalResult(w io.Writer, res *model.RemovalResult, show bool) {
	if IsJSONOutput() {
		writeJSON(w, res)
		return
	}

	fmt.Fprintln(w, DescribeResult(res))
	if res.BackupPath != "" {
		fmt.Fprintf(w, "  Backup saved to %s\n", res.BackupPath)
	}
	if show && res.Effective != nil {
		writeNumberedLines(w, res.Effective.From, res.RemovedLines)
	}
}

// printPreviewResult outputs the lines a removal would drop.
func printPreviewResult(w io.Writer, res *model.RemovalResult) {
	if IsJSONOutput() {
		writeJSON(w, res)
		return
	}

	if res.Effective == nil {
		fmt.Fprintf(w, "%s: range %s is outside the file (%d lines)\n",
			res.Path, res.Requested, res.LinesBefore)
		return
	}
	fmt.Fprintf(w, "%s: lines %s of %d\n", res.Path, res.Effective, res.LinesBefore)
	writeNumberedLines(w, res.Effective.From, res.RemovedLines)
}

// batchOutcomeJSON is the JSON form of one batch job.
type batchOutcomeJSON struct {
	Path   string               `json:"path"`
	From   int                  `json:"from"`
	To     int                  `json:"to"`
	Status string               `json:"status"`
	Result *model.RemovalResult `json:"result,omitempty"`
	Error  string               `json:"error,omitempty"`
}

// printBatchResult outputs every job outcome in text or JSON format.
func printBatchResult(w io.Writer, outcomes []batch.Outcome) {
	if IsJSONOutput() {
		type resultJSON struct {
			Results []batchOutcomeJSON `json:"results"`
			Failed  int                `json:"failed"`
		}

		result := resultJSON{
			// Empty slice, not nil, so the JSON shows [] instead of null.
			Results: make([]batchOutcomeJSON, 0, len(outcomes)),
			Failed:  batch.Failed(outcomes),
		}
		for _, o := range outcomes {
			entry := batchOutcomeJSON{
				Path:   o.Job.Path,
				From:   o.Job.From,
				To:     o.Job.To,
				Status: OutcomeStatus(o),
				Result: o.Result,
			}
			if o.Err != nil {
				entry.Error = o.Err.Error()
			}
			result.Results = append(result.Results, entry)
		}
		writeJSON(w, result)
		return
	}

	for _, o := range outcomes {
		status := OutcomeStatus(o)
		switch {
		case o.Err != nil:
			fmt.Fprintf(w, "%-8s %s %d-%d: %v\n", status, o.Job.Path, o.Job.From, o.Job.To, o.Err)
		default:
			fmt.Fprintf(w, "%-8s %s\n", status, DescribeResult(o.Result))
		}
	}
}

// OutcomeStatus classifies a batch outcome for display: "skipped",
// "failed", "removed", "would" (dry run) or "unchanged".
func OutcomeStatus(o batch.Outcome) string {
	switch {
	case errors.Is(o.Err, batch.ErrSkipped):
		return "skipped"
	case o.Err != nil:
		return "failed"
	case !o.Result.Changed:
		return "unchanged"
	case o.Result.DryRun:
		return "would"
	default:
		return "removed"
	}
}

// DescribeResult renders a one-line summary of a removal.
//
// Examples:
//
//	Removed lines 2-4 from notes.txt (5 → 2 lines)
//	Would remove lines 2-4 from notes.txt (5 → 2 lines)
//	No lines removed from notes.txt: range 7-9 is outside the file (5 lines)
func DescribeResult(res *model.RemovalResult) string {
	if res.Effective == nil {
		return fmt.Sprintf("No lines removed from %s: range %s is outside the file (%d lines)",
			res.Path, res.Requested, res.LinesBefore)
	}

	verb := "Removed"
	if res.DryRun {
		verb = "Would remove"
	}
	return fmt.Sprintf("%s lines %s from %s (%d → %d lines)",
		verb, res.Effective, res.Path, res.LinesBefore, res.LinesAfter)
}

// writeNumberedLines prints lines prefixed with right-aligned numbers
// starting at first.
func writeNumberedLines(w io.Writer, first int, texts []string) {
	for i, text := range texts {
		fmt.Fprintf(w, "%6d  %s\n", first+i, text)
	}
}

// writeJSON marshals v with 2-space indentation.
func writeJSON(w io.Writer, v interface{}) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(data))
}
