// Package model defines the domain types for the linecut CLI.
//
// All line numbers in this package are 1-based and ranges are closed on
// both ends, matching the way editors and `sed -n 'A,Bp'` number lines.
package model

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is the sentinel matched by every InvalidRangeError.
// Callers use errors.Is(err, ErrInvalidRange) without caring about the
// concrete bounds that were rejected.
var ErrInvalidRange = errors.New("invalid line range")

// InvalidRangeError reports a structurally invalid [From, To] pair.
// It is returned before any file is read or written.
type InvalidRangeError struct {
	// From and To are the bounds exactly as the caller supplied them.
	From int
	To   int

	// Reason is a short human-readable explanation of the violation.
	Reason string
}

// Error satisfies the error interface.
func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid line range %d-%d: %s", e.From, e.To, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidRange) succeed for any InvalidRangeError.
func (e *InvalidRangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

// LineRange is a closed interval [From, To] of 1-based line numbers.
//
// Invariants enforced by Validate:
//   - From >= 1 and To >= 1
//   - From <= To
//
// A valid LineRange may still extend past the end of a file; Clamp
// narrows it to the lines that actually exist.
type LineRange struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

// NewLineRange builds a LineRange and validates it in one step.
func NewLineRange(from, to int) (LineRange, error) {
	r := LineRange{From: from, To: to}
	if err := r.Validate(); err != nil {
		return LineRange{}, err
	}
	return r, nil
}

// Validate checks the structural invariants of the range. Bounds relative
// to a particular file are not checked here; see Clamp.
func (r LineRange) Validate() error {
	if r.From < 1 || r.To < 1 {
		return &InvalidRangeError{From: r.From, To: r.To, Reason: "line numbers must be positive"}
	}
	if r.From > r.To {
		return &InvalidRangeError{From: r.From, To: r.To, Reason: "start line is after end line"}
	}
	return nil
}

// Len returns the number of lines the range covers.
func (r LineRange) Len() int {
	if r.To < r.From {
		return 0
	}
	return r.To - r.From + 1
}

// Contains reports whether the 1-based line number n lies inside the range.
func (r LineRange) Contains(n int) bool {
	return n >= r.From && n <= r.To
}

// Clamp intersects the range with [1, lineCount]. The boolean result is
// false when the intersection is empty (for example From > lineCount or
// an empty file), in which case nothing should be removed.
//
// Example:
//
//	LineRange{3, 10}.Clamp(5) → {3, 5}, true
//	LineRange{7, 9}.Clamp(5)  → {}, false
func (r LineRange) Clamp(lineCount int) (LineRange, bool) {
	from := max(r.From, 1)
	to := min(r.To, lineCount)
	if from > to {
		return LineRange{}, false
	}
	return LineRange{From: from, To: to}, true
}

// String formats the range the way it is shown in CLI output ("2-4").
func (r LineRange) String() string {
	return fmt.Sprintf("%d-%d", r.From, r.To)
}

// RemovalResult describes the outcome of removing a line range from one
// file. The same structure is produced for dry runs, in which case Changed
// reports what would have happened and nothing was written.
type RemovalResult struct {
	// Path is the file the range was removed from, as given by the caller.
	Path string `json:"path"`

	// Requested is the range as supplied by the caller.
	Requested LineRange `json:"requested"`

	// Effective is the requested range narrowed to the file's bounds.
	// Nil when the requested range lies entirely outside the file.
	Effective *LineRange `json:"effective,omitempty"`

	// LinesBefore and LinesAfter are the line counts before and after removal.
	LinesBefore int `json:"linesBefore"`
	LinesAfter  int `json:"linesAfter"`

	// RemovedLines holds the text of the dropped lines without their
	// terminators. Populated for previews and dry runs.
	RemovedLines []string `json:"removedLines,omitempty"`

	// BackupPath is where the original content was saved, if a backup was taken.
	BackupPath string `json:"backupPath,omitempty"`

	// DryRun is true when the file was left untouched on purpose.
	DryRun bool `json:"dryRun"`

	// Changed is true when the file content differs (or would differ) after removal.
	Changed bool `json:"changed"`
}

// Removed returns the number of lines dropped from the file.
func (r *RemovalResult) Removed() int {
	return r.LinesBefore - r.LinesAfter
}

// ExitCode defines standard CLI exit codes.
// Each code maps to a specific category of failure, allowing scripts
// and CI pipelines to react to particular error conditions.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitFileAccess indicates the target file could not be read or written
	// (missing file, permission denied, not a regular file).
	ExitFileAccess ExitCode = 2

	// ExitInvalidRange indicates the requested line range is malformed.
	ExitInvalidRange ExitCode = 3

	// ExitInvalidJobFile indicates a batch job file could not be parsed
	// or contains an invalid job.
	ExitInvalidJobFile ExitCode = 4

	// ExitGitError indicates a Git query failed or the target file has
	// uncommitted changes while the clean-file guard is enabled.
	ExitGitError ExitCode = 5

	// ExitUserCancelled indicates the user cancelled an interactive prompt.
	ExitUserCancelled ExitCode = 6
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
