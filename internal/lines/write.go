package lines

import (
	"io/fs"
	"os"

	"github.com/moby/sys/atomicwriter"
)

// writeFunc replaces the content of path with data. perm is applied when
// the file is (re)created.
type writeFunc func(path string, data []byte, perm fs.FileMode) error

// writeAtomic writes to a temporary file in the same directory and renames
// it over path, so readers observe either the old or the new content.
// atomicwriter refuses symlinked destinations; callers pass resolved paths.
func writeAtomic(path string, data []byte, perm fs.FileMode) error {
	return atomicwriter.WriteFile(path, data, perm)
}

// writeInPlace truncates and rewrites path. A failure midway leaves the
// file in an undefined state.
func writeInPlace(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// checkWritable opens path for writing without truncating it, so
// permission problems surface before any content is replaced.
func checkWritable(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	return f.Close()
}
