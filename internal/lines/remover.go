package lines

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/mmr-tortoise/linecut/internal/model"
)

// DefaultBackupSuffix is appended to the target path when a backup is taken
// and no other suffix is configured.
const DefaultBackupSuffix = ".bak"

// Guard decides whether a file may be modified. The vcs package provides
// an implementation that refuses files with uncommitted Git changes.
type Guard interface {
	CheckClean(path string) error
}

// Options controls how a Remover writes its result.
type Options struct {
	// DryRun computes the result without touching the file.
	DryRun bool

	// Atomic selects temp-file-and-rename writes instead of overwriting
	// the file in place.
	Atomic bool

	// Backup saves the original content to Path+BackupSuffix before writing.
	Backup bool

	// BackupSuffix is the backup file suffix. Empty means DefaultBackupSuffix.
	BackupSuffix string

	// KeepRemoved fills RemovalResult.RemovedLines with the dropped text.
	KeepRemoved bool
}

// Remover removes closed line ranges from files on disk.
type Remover struct {
	opts  Options
	guard Guard
	log   logrus.FieldLogger
}

// NewRemover creates a Remover. A nil logger discards log output.
func NewRemover(opts Options, logger logrus.FieldLogger) *Remover {
	if opts.BackupSuffix == "" {
		opts.BackupSuffix = DefaultBackupSuffix
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Remover{opts: opts, log: logger}
}

// WithGuard attaches a Guard consulted before any file is modified.
// Dry runs and no-op removals skip the guard.
func (r *Remover) WithGuard(g Guard) *Remover {
	r.guard = g
	return r
}

// Options returns the options the Remover was created with.
func (r *Remover) Options() Options {
	return r.opts
}

// Remove deletes the lines in rng from the file at path.
//
// The operation runs in a fixed order so that every failure before step 6
// leaves the file untouched:
//  1. Validate rng (InvalidRangeError)
//  2. Resolve symlinks and stat the target (FileAccessError)
//  3. Read the whole file and, unless dry-running, confirm it is writable
//  4. Narrow rng to the file's bounds; an empty intersection is a no-op
//  5. Consult the Guard
//  6. Write the backup (if enabled), then the new content
//
// Applying the same range twice removes different lines the second time,
// because line numbers refer to the file's current content.
func (r *Remover) Remove(ctx context.Context, path string, rng model.LineRange) (*model.RemovalResult, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := r.log.WithFields(logrus.Fields{"path": path, "from": rng.From, "to": rng.To})

	target, info, err := resolveTarget(path)
	if err != nil {
		return nil, err
	}
	if target != path {
		log.Debugf("resolved target to %s", target)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return nil, &FileAccessError{Op: "read", Path: path, Err: err}
	}
	if !r.opts.DryRun {
		if err := checkWritable(target); err != nil {
			return nil, &FileAccessError{Op: "open for write", Path: path, Err: err}
		}
	}

	doc := Parse(data)
	log.Debugf("read %d lines (%s line endings)", doc.Len(), doc.Ending())

	result := &model.RemovalResult{
		Path:        path,
		Requested:   rng,
		LinesBefore: doc.Len(),
		LinesAfter:  doc.Len(),
		DryRun:      r.opts.DryRun,
	}

	eff, ok := rng.Clamp(doc.Len())
	if !ok {
		log.Debug("range lies outside the file, nothing to remove")
		return result, nil
	}
	if eff != rng {
		log.Debugf("range narrowed to %s", eff)
	}

	out, removed := doc.Remove(eff)
	result.Effective = &eff
	result.LinesAfter = out.Len()
	result.Changed = true
	if r.opts.KeepRemoved {
		result.RemovedLines = removed
	}

	if r.opts.DryRun {
		return result, nil
	}

	if r.guard != nil {
		if err := r.guard.CheckClean(target); err != nil {
			return nil, err
		}
	}

	var write writeFunc = writeInPlace
	if r.opts.Atomic {
		write = writeAtomic
	}
	perm := info.Mode().Perm()

	if r.opts.Backup {
		backupPath := target + r.opts.BackupSuffix
		if err := write(backupPath, data, perm); err != nil {
			return nil, &FileAccessError{Op: "backup", Path: backupPath, Err: err}
		}
		result.BackupPath = backupPath
		log.Debugf("saved backup to %s", backupPath)
	}

	if err := write(target, out.Bytes(), perm); err != nil {
		return nil, &FileAccessError{Op: "write", Path: path, Err: err}
	}

	log.WithField("removed", result.Removed()).Debug("removed lines")
	return result, nil
}

// resolveTarget follows symlinks so writes land on the real file and
// verifies that the result is a regular file.
func resolveTarget(path string) (string, os.FileInfo, error) {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", nil, &FileAccessError{Op: "stat", Path: path, Err: err}
	}
	info, err := os.Stat(target)
	if err != nil {
		return "", nil, &FileAccessError{Op: "stat", Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return "", nil, &FileAccessError{Op: "stat", Path: path,
			Err: fmt.Errorf("%w (mode %s)", errNotRegular, info.Mode().Type())}
	}
	return target, info, nil
}
