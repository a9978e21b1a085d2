package lines

import (
	"errors"
	"fmt"
)

// ErrFileAccess is the sentinel matched by every FileAccessError.
var ErrFileAccess = errors.New("file access error")

// errNotRegular is wrapped when the target exists but is a directory,
// device, or other non-regular file.
var errNotRegular = errors.New("not a regular file")

// FileAccessError reports that the target path could not be resolved,
// read, or written. Op names the failing step ("stat", "read", "open for
// write", "write", "backup").
type FileAccessError struct {
	Op   string
	Path string
	Err  error
}

// Error satisfies the error interface.
func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes the underlying OS error (e.g. fs.ErrNotExist).
func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrFileAccess) succeed for any FileAccessError.
func (e *FileAccessError) Is(target error) bool {
	return target == ErrFileAccess
}
