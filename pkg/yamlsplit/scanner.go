// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlsplit

import (
	"bytes"
)

// lineScanner walks a single line left to right tracking just enough of
// YAML's lexical structure to know which scalars are left open at its end.
type lineScanner struct {
	line   []byte
	pos    int
	indent int
	mode   Mode

	// a new node may begin at pos: line start, after "- ", "? ", ": ", "[", "{" or ","
	nodeStart bool
	// column of the innermost node owning a value on this line; -1 if none
	nodeCol int
	// column where the most recent scalar began
	keyCol int
}

func newLineScanner(line []byte, m Mode) *lineScanner {
	return &lineScanner{
		line:      line,
		indent:    leadingSpaces(line),
		mode:      m,
		nodeStart: true,
		nodeCol:   -1,
		keyCol:    -1,
	}
}

func (s *lineScanner) scanFrom(pos int) Mode {
	s.pos = pos
	return s.scan()
}

// scan consumes the rest of the line under Normal rules and returns the
// mode for the next line.
func (s *lineScanner) scan() Mode {
	for s.pos < len(s.line) {
		c := s.line[s.pos]

		switch {
		case isBlank(c):
			s.pos++

		case c == '#' && s.afterBlank():
			return s.mode

		case c == '"' || c == '\'':
			kind := ModeDoubleQuote
			if c == '\'' {
				kind = ModeSingleQuote
			}
			s.keyCol = s.pos
			s.nodeStart = false
			s.pos++
			if !s.scanQuoted(kind) {
				s.mode.kind = kind
				return s.mode
			}

		case c == '[' || c == '{':
			s.mode.flowLevel++
			s.nodeStart = true
			s.pos++

		case c == ']' || c == '}':
			if s.mode.flowLevel > 0 {
				s.mode.flowLevel--
			}
			s.nodeStart = false
			s.pos++

		case c == ',' && s.inFlow():
			s.nodeStart = true
			s.pos++

		case c == '-' && s.nodeStart && !s.inFlow() && s.indicatorAt(s.pos):
			s.nodeCol = s.pos
			s.pos++

		case c == '?' && s.nodeStart && s.indicatorAt(s.pos):
			s.nodeCol = s.pos
			s.pos++

		case c == ':' && s.indicatorAt(s.pos):
			if s.nodeStart {
				s.nodeCol = s.pos
			} else {
				s.nodeCol = s.keyCol
			}
			s.nodeStart = true
			s.pos++

		case (c == '|' || c == '>') && s.nodeStart && !s.inFlow():
			if block, ok := s.blockScalarHeader(); ok {
				return block
			}
			s.scanPlain()

		case (c == '&' || c == '!') && s.nodeStart:
			// anchors and tags precede the node they belong to
			s.skipToken()

		case c == '*' && s.nodeStart:
			s.keyCol = s.pos
			s.nodeStart = false
			s.skipToken()

		default:
			s.scanPlain()
		}
	}

	return s.mode
}

// scanQuoted consumes up to and including the closing quote.
// It reports false when the line ends with the scalar still open.
func (s *lineScanner) scanQuoted(kind ModeKind) bool {
	for s.pos < len(s.line) {
		c := s.line[s.pos]

		switch {
		case kind == ModeDoubleQuote && c == '\\':
			s.pos += 2
			continue

		case kind == ModeDoubleQuote && c == '"':
			s.pos++
			return true

		case kind == ModeSingleQuote && c == '\'':
			if s.pos+1 < len(s.line) && s.line[s.pos+1] == '\'' {
				s.pos += 2
				continue
			}
			s.pos++
			return true
		}

		s.pos++
	}
	return false
}

// scanPlain consumes a plain scalar. It stops before a value indicator,
// a comment, or (inside a flow collection) a flow indicator.
// Quotes inside a plain scalar (e.g. "it's") are literal.
func (s *lineScanner) scanPlain() {
	s.keyCol = s.pos
	s.nodeStart = false
	s.pos++

	for s.pos < len(s.line) {
		c := s.line[s.pos]

		switch {
		case c == ':' && s.indicatorAt(s.pos):
			return
		case c == '#' && s.afterBlank():
			return
		case s.inFlow() && isFlowIndicator(c):
			return
		}

		s.pos++
	}
}

func (s *lineScanner) skipToken() {
	for s.pos < len(s.line) {
		c := s.line[s.pos]
		if isBlank(c) || (s.inFlow() && isFlowIndicator(c)) {
			return
		}
		s.pos++
	}
}

// blockScalarHeader recognizes "|" or ">" with optional indentation and
// chomping indicators, followed by nothing but whitespace or a comment.
func (s *lineScanner) blockScalarHeader() (Mode, bool) {
	style := BlockLiteral
	if s.line[s.pos] == '>' {
		style = BlockFolded
	}

	var (
		increment int
		chomping  = ChompClip
		chomped   bool
		p         = s.pos + 1
	)

header:
	for p < len(s.line) {
		c := s.line[p]
		switch {
		case c >= '1' && c <= '9' && increment == 0:
			increment = int(c - '0')
		case c == '-' && !chomped:
			chomping, chomped = ChompStrip, true
		case c == '+' && !chomped:
			chomping, chomped = ChompKeep, true
		default:
			break header
		}
		p++
	}

	rest := s.line[p:]
	if len(rest) > 0 && !isBlank(rest[0]) {
		return s.mode, false
	}
	rest = bytes.TrimLeft(rest, " \t\r\n")
	if len(rest) > 0 && rest[0] != '#' {
		return s.mode, false
	}

	parent := s.nodeCol
	if parent < 0 {
		parent = s.indent - 1
	}

	block := Mode{
		kind:         ModeBlockScalar,
		parentIndent: parent,
		style:        style,
		chomping:     chomping,
	}
	if increment > 0 {
		block.contentIndent = max(parent, 0) + increment
		block.contentKnown = true
	}
	return block, true
}

func (s *lineScanner) inFlow() bool { return s.mode.flowLevel > 0 }

func (s *lineScanner) afterBlank() bool {
	return s.pos == 0 || isBlank(s.line[s.pos-1])
}

// indicatorAt reports whether the indicator at pos is followed by
// whitespace, end of line, or (inside a flow collection) a flow indicator.
func (s *lineScanner) indicatorAt(pos int) bool {
	next := pos + 1
	if next >= len(s.line) {
		return true
	}
	c := s.line[next]
	return isBlank(c) || (s.inFlow() && isFlowIndicator(c))
}

func isFlowIndicator(c byte) bool {
	return c == ',' || c == '[' || c == ']' || c == '{' || c == '}'
}
