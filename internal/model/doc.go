// Package model defines the domain types and value objects for the
// linecut CLI.
//
// This package contains pure data structures with no external dependencies.
// LineRange describes the closed interval of lines to drop from a file and
// RemovalResult reports what a removal did (or would do, for dry runs).
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
