// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlsplit

// accumulator holds the text of the document currently being built.
type accumulator struct {
	buf       []byte
	startLine int

	// holds a line other than blank lines, comments and directives
	content bool
	// holds a "---" line
	marker bool
}

func (a *accumulator) append(line []byte, lineNum int, class LineClass, preamble bool) {
	if len(a.buf) == 0 {
		a.startLine = lineNum
	}
	a.buf = append(a.buf, line...)

	switch {
	case class == StartMarker:
		a.marker = true
	case class == Content && !preamble:
		a.content = true
	}
}

// startsNewDocument reports whether a "---" line must cut the open buffer
// rather than join it. A buffer holding only a preamble (blank lines,
// comments, directives) is the header of the document the marker starts.
func (a *accumulator) startsNewDocument() bool {
	return a.content || a.marker
}

// isPreamble reports whether line, read in Normal mode, could be part of the
// header of a document that has not started yet.
func (a *accumulator) isPreamble(line []byte) bool {
	if a.content {
		return false
	}
	return isBlankLine(line) || isCommentLine(line) || (!a.marker && isDirective(line))
}

func (a *accumulator) empty() bool { return len(a.buf) == 0 }

// flush hands off the buffered bytes and resets the accumulator.
// The returned slice is not retained.
func (a *accumulator) flush() (data []byte, startLine int, blank bool) {
	data, startLine, blank = a.buf, a.startLine, !a.content && !a.marker
	*a = accumulator{}
	return
}

// discard drops whatever was buffered (used when the stream fails mid-document).
func (a *accumulator) discard() { *a = accumulator{} }
