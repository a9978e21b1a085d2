package lines

import (
	"bytes"
	"strings"

	"github.com/mmr-tortoise/linecut/internal/model"
)

// Line is a single record of a Document. EOL holds the exact terminator
// that followed Text in the source, or "" for an unterminated last line.
type Line struct {
	Text string
	EOL  string
}

// Ending names the line-ending convention observed in a Document.
type Ending string

const (
	// EndingNone means the document has no terminated lines at all.
	EndingNone Ending = "none"

	// EndingLF means every terminated line ends with "\n".
	EndingLF Ending = "lf"

	// EndingCRLF means every terminated line ends with "\r\n".
	EndingCRLF Ending = "crlf"

	// EndingMixed means both conventions appear in the same document.
	EndingMixed Ending = "mixed"
)

// Document is an ordered, immutable sequence of lines. Line numbers are
// 1-based; order defines numbering and is preserved by every operation.
type Document struct {
	lines []Line
}

// Parse splits raw file content into a Document.
//
// Splitting rules:
//   - "\n" terminates a line; a "\r" immediately before it belongs to the terminator
//   - trailing bytes after the last "\n" form a final line with an empty EOL
//   - empty input yields a Document with zero lines
//
// Example:
//
//	"A\r\nB\nC" → [{A, "\r\n"}, {B, "\n"}, {C, ""}]
func Parse(data []byte) *Document {
	doc := &Document{}
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			doc.lines = append(doc.lines, Line{Text: string(data)})
			break
		}

		text, eol := data[:i], "\n"
		if i > 0 && data[i-1] == '\r' {
			text, eol = data[:i-1], "\r\n"
		}
		doc.lines = append(doc.lines, Line{Text: string(text), EOL: eol})
		data = data[i+1:]
	}
	return doc
}

// FromStrings builds a Document of "\n"-terminated lines. Mostly useful in
// tests and for callers that already hold split text.
func FromStrings(texts ...string) *Document {
	doc := &Document{lines: make([]Line, 0, len(texts))}
	for _, t := range texts {
		doc.lines = append(doc.lines, Line{Text: t, EOL: "\n"})
	}
	return doc
}

// Len returns the number of lines in the document.
func (d *Document) Len() int {
	return len(d.lines)
}

// Line returns the 1-based line n and whether it exists.
func (d *Document) Line(n int) (Line, bool) {
	if n < 1 || n > len(d.lines) {
		return Line{}, false
	}
	return d.lines[n-1], true
}

// Texts returns the text of every line without terminators.
func (d *Document) Texts() []string {
	out := make([]string, len(d.lines))
	for i, l := range d.lines {
		out[i] = l.Text
	}
	return out
}

// Bytes reassembles the document, writing each line followed by its
// original terminator.
func (d *Document) Bytes() []byte {
	var b strings.Builder
	for _, l := range d.lines {
		b.WriteString(l.Text)
		b.WriteString(l.EOL)
	}
	return []byte(b.String())
}

// Ending reports the line-ending convention used by the document.
func (d *Document) Ending() Ending {
	var lf, crlf bool
	for _, l := range d.lines {
		switch l.EOL {
		case "\n":
			lf = true
		case "\r\n":
			crlf = true
		}
	}
	switch {
	case lf && crlf:
		return EndingMixed
	case crlf:
		return EndingCRLF
	case lf:
		return EndingLF
	default:
		return EndingNone
	}
}

// Remove returns a new Document without the lines in r, plus the text of
// the removed lines. The receiver is not modified.
//
// r is narrowed to the document's bounds first, so a range extending past
// the end removes only the lines that exist, and a range entirely outside
// the document returns an equal copy with nothing removed. Structural
// validity of r is the caller's job (see model.LineRange.Validate).
func (d *Document) Remove(r model.LineRange) (*Document, []string) {
	eff, ok := r.Clamp(len(d.lines))
	if !ok {
		kept := make([]Line, len(d.lines))
		copy(kept, d.lines)
		return &Document{lines: kept}, nil
	}

	kept := make([]Line, 0, len(d.lines)-eff.Len())
	removed := make([]string, 0, eff.Len())
	for i, l := range d.lines {
		if eff.Contains(i + 1) {
			removed = append(removed, l.Text)
			continue
		}
		kept = append(kept, l)
	}
	return &Document{lines: kept}, removed
}
