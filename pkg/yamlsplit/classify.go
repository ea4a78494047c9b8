// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlsplit

import (
	"bytes"
)

type LineClass int

const (
	Content LineClass = iota
	StartMarker
	EndMarker
)

func (c LineClass) String() string {
	switch c {
	case StartMarker:
		return "StartMarker"
	case EndMarker:
		return "EndMarker"
	default:
		return "Content"
	}
}

var (
	startMarker = []byte("---")
	endMarker   = []byte("...")
)

// Classify reports the role of line given the mode in effect at its start.
// Markers are only recognized in Normal mode.
func Classify(m Mode, line []byte) LineClass {
	if !m.IsNormal() {
		return Content
	}
	switch {
	case isStartMarker(line):
		return StartMarker
	case isEndMarker(line):
		return EndMarker
	default:
		return Content
	}
}

// isStartMarker matches "---" at column zero followed by whitespace or end of line.
// Whatever follows the whitespace is content of the new document (e.g. "--- |").
func isStartMarker(line []byte) bool {
	if !bytes.HasPrefix(line, startMarker) {
		return false
	}
	return len(line) == len(startMarker) || isBlank(line[len(startMarker)])
}

// isEndMarker matches "..." at column zero followed only by whitespace or a comment.
func isEndMarker(line []byte) bool {
	if !bytes.HasPrefix(line, endMarker) {
		return false
	}
	rest := line[len(endMarker):]
	if len(rest) == 0 {
		return true
	}
	if !isBlank(rest[0]) {
		return false
	}
	rest = bytes.TrimLeft(rest, " \t\r\n")
	return len(rest) == 0 || rest[0] == '#'
}

// isDirective matches a "%" directive line (e.g. "%YAML 1.2").
func isDirective(line []byte) bool {
	return len(line) > 0 && line[0] == '%'
}

// isCommentLine matches lines holding nothing but a comment.
func isCommentLine(line []byte) bool {
	trimmed := bytes.TrimLeft(line, " \t")
	return len(trimmed) > 0 && trimmed[0] == '#'
}

func isBlankLine(line []byte) bool {
	for _, c := range line {
		if !isBlank(c) {
			return false
		}
	}
	return true
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func leadingSpaces(line []byte) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}
