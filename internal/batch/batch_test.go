package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/linecut/internal/jobfile"
	"github.com/mmr-tortoise/linecut/internal/lines"
	"github.com/mmr-tortoise/linecut/internal/log"
	"github.com/mmr-tortoise/linecut/internal/model"
)

// recordingRemover fails for paths listed in failOn and records calls.
type recordingRemover struct {
	mu     sync.Mutex
	failOn map[string]error
	calls  []jobfile.Job
}

func (r *recordingRemover) Remove(_ context.Context, path string, rng model.LineRange) (*model.RemovalResult, error) {
	r.mu.Lock()
	r.calls = append(r.calls, jobfile.Job{Path: path, From: rng.From, To: rng.To})
	r.mu.Unlock()

	if err, ok := r.failOn[path]; ok {
		return nil, err
	}
	return &model.RemovalResult{Path: path, Requested: rng, Changed: true}, nil
}

func TestGroupByFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	link := filepath.Join(dir, "link.txt")
	require.NoError(t, os.WriteFile(a, []byte("x\n"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("x\n"), 0644))
	require.NoError(t, os.Symlink(a, link))

	jobs := []jobfile.Job{
		{Path: a},
		{Path: b},
		{Path: filepath.Join(dir, ".", "a.txt")},
		{Path: link},
	}

	groups := GroupByFile(jobs)
	assert.Equal(t, [][]int{{0, 2, 3}, {1}}, groups)
}

// TestRun_SequentialPerFile runs real removals: two jobs on one file must
// apply in order, each against the content the previous one produced.
func TestRun_SequentialPerFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("1\n2\n3\n4\n5\n"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("x\ny\n"), 0644))

	runner := &Runner{
		Remover:     lines.NewRemover(lines.Options{Atomic: true}, nil),
		Concurrency: 2,
		Log:         log.Discard(),
	}

	outcomes := runner.Run(context.Background(), []jobfile.Job{
		{Path: a, From: 1, To: 1},
		{Path: b, From: 2, To: 2},
		{Path: a, From: 1, To: 1},
	})

	require.Len(t, outcomes, 3)
	assert.Zero(t, Failed(outcomes))

	data, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.Equal(t, "3\n4\n5\n", string(data))

	data, err = os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, "x\n", string(data))
}

// TestRun_FailureSkipsRestOfFile checks that a failure stops later jobs
// for the same file but not jobs for other files, and that outcomes keep
// job order.
func TestRun_FailureSkipsRestOfFile(t *testing.T) {
	boom := errors.New("boom")
	rem := &recordingRemover{failOn: map[string]error{"/virtual/bad.txt": boom}}
	runner := &Runner{Remover: rem, Concurrency: 4, Log: log.Discard()}

	jobs := []jobfile.Job{
		{Path: "/virtual/bad.txt", From: 1, To: 1},
		{Path: "/virtual/good.txt", From: 1, To: 1},
		{Path: "/virtual/bad.txt", From: 2, To: 2},
	}
	outcomes := runner.Run(context.Background(), jobs)

	require.Len(t, outcomes, 3)
	for i := range jobs {
		assert.Equal(t, jobs[i], outcomes[i].Job, "outcome %d should match its job", i)
	}

	assert.ErrorIs(t, outcomes[0].Err, boom)
	assert.NoError(t, outcomes[1].Err)
	require.NotNil(t, outcomes[1].Result)
	assert.ErrorIs(t, outcomes[2].Err, ErrSkipped)
	assert.Equal(t, 2, Failed(outcomes))
	assert.Len(t, rem.calls, 2, "the skipped job must not reach the remover")
}

func TestRun_CancelledContext(t *testing.T) {
	rem := &recordingRemover{}
	runner := &Runner{Remover: rem, Concurrency: 1, Log: log.Discard()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := runner.Run(ctx, []jobfile.Job{
		{Path: "/virtual/a.txt", From: 1, To: 1},
		{Path: "/virtual/a.txt", From: 2, To: 2},
	})

	for _, o := range outcomes {
		assert.ErrorIs(t, o.Err, ErrSkipped)
		assert.ErrorIs(t, o.Err, context.Canceled)
	}
	assert.Empty(t, rem.calls)
}
