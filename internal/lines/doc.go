// Package lines implements the line-range remover: it reads a text file
// into an ordered sequence of lines, drops a closed range of 1-based line
// numbers, and writes the remaining lines back in their original order.
//
// Each line keeps its own terminator ("\n", "\r\n", or none for a final
// unterminated line), so a file's line-ending convention survives removal
// byte for byte. Only "\n" starts a new line; a bare "\r" is ordinary text.
//
// The full file is read and the new content is built in memory before
// anything is written. By default the write goes through
// github.com/moby/sys/atomicwriter (temporary file + rename), so a failed
// write leaves the original content intact.
//
// A Remover is not safe for concurrent use against the same file. Callers
// that process many files (see package batch) must serialize work per path.
package lines
