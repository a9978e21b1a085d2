// Package batch applies many line-range removals, one Remover call per job.
//
// Jobs that target the same file run sequentially in job-file order,
// because each removal renumbers the lines that follow it. Jobs for
// different files run concurrently, bounded by Runner.Concurrency, using
// golang.org/x/sync/errgroup.
//
// A failed job does not stop other files. Later jobs for the same file
// are skipped, since their line numbers were written against content the
// failed job was supposed to produce.
package batch

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/mmr-tortoise/linecut/internal/jobfile"
	"github.com/mmr-tortoise/linecut/internal/model"
)

// ErrSkipped marks jobs that never ran because an earlier job on the same
// file failed or the context was cancelled.
var ErrSkipped = errors.New("skipped")

// Remover is the subset of lines.Remover the runner needs.
type Remover interface {
	Remove(ctx context.Context, path string, rng model.LineRange) (*model.RemovalResult, error)
}

// Outcome is the result of one job. Exactly one of Result and Err is set.
type Outcome struct {
	Job    jobfile.Job
	Result *model.RemovalResult
	Err    error
}

// Runner executes jobs against a Remover.
type Runner struct {
	Remover     Remover
	Concurrency int
	Log         logrus.FieldLogger
}

// Run executes every job and returns one Outcome per job, in the same
// order as jobs. It only returns early if ctx is cancelled, in which case
// unstarted jobs are reported as skipped.
func (r *Runner) Run(ctx context.Context, jobs []jobfile.Job) []Outcome {
	outcomes := make([]Outcome, len(jobs))
	for i, j := range jobs {
		outcomes[i].Job = j
	}

	var g errgroup.Group
	g.SetLimit(max(r.Concurrency, 1))

	for _, group := range GroupByFile(jobs) {
		group := group
		g.Go(func() error {
			r.runGroup(ctx, group, outcomes)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// runGroup processes the jobs of a single file in order. Each index in
// group is owned by this goroutine alone, so writes to outcomes need no lock.
func (r *Runner) runGroup(ctx context.Context, group []int, outcomes []Outcome) {
	var failed error
	for _, idx := range group {
		job := outcomes[idx].Job

		if failed != nil {
			outcomes[idx].Err = skipError(failed)
			continue
		}
		if err := ctx.Err(); err != nil {
			outcomes[idx].Err = skipError(err)
			failed = err
			continue
		}

		res, err := r.Remover.Remove(ctx, job.Path, job.Range())
		if err != nil {
			r.logger().WithFields(logrus.Fields{"path": job.Path, "from": job.From, "to": job.To}).
				WithError(err).Warn("job failed")
			outcomes[idx].Err = err
			failed = err
			continue
		}
		outcomes[idx].Result = res
	}
}

func (r *Runner) logger() logrus.FieldLogger {
	if r.Log == nil {
		return logrus.StandardLogger()
	}
	return r.Log
}

// skipError wraps the cause of a skip so callers can report it.
func skipError(cause error) error {
	return &skippedError{cause: cause}
}

type skippedError struct {
	cause error
}

func (e *skippedError) Error() string {
	return "skipped after earlier failure: " + e.cause.Error()
}

func (e *skippedError) Is(target error) bool {
	return target == ErrSkipped
}

func (e *skippedError) Unwrap() error {
	return e.cause
}

// GroupByFile partitions job indices by target file. Groups appear in the
// order their file is first mentioned and indices within a group keep job
// order. Paths are compared after cleaning and symlink resolution, so
// "./a.txt", "a.txt" and a link to it fall into one group.
func GroupByFile(jobs []jobfile.Job) [][]int {
	var groups [][]int
	byKey := make(map[string]int)

	for i, j := range jobs {
		key := fileKey(j.Path)
		gi, ok := byKey[key]
		if !ok {
			gi = len(groups)
			byKey[key] = gi
			groups = append(groups, nil)
		}
		groups[gi] = append(groups[gi], i)
	}
	return groups
}

// fileKey returns a canonical identity for path. Unresolvable paths fall
// back to their absolute form; the Remover reports the real error later.
func fileKey(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Failed counts outcomes with an error, skipped ones included.
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
