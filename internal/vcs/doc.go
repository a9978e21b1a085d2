// Package vcs provides the Git dirty-file guard for linecut.
//
// All Git operations are performed via os/exec calls to the git binary,
// rather than using a Git library like go-git. This approach:
//   - Avoids CGO dependencies (libgit2)
//   - Uses the exact same Git behavior the user sees in their terminal
//   - Honors the repository's own ignore rules and attributes
//
// The Guard refuses to let linecut modify a tracked file that already has
// uncommitted changes, so every removal can be reviewed (and reverted)
// with plain `git diff` / `git checkout`.
package vcs
