// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlsplit

import (
	"fmt"
)

type ModeKind int

const (
	ModeNormal ModeKind = iota
	ModeBlockScalar
	ModeSingleQuote
	ModeDoubleQuote
)

func (k ModeKind) String() string {
	switch k {
	case ModeNormal:
		return "Normal"
	case ModeBlockScalar:
		return "BlockScalar"
	case ModeSingleQuote:
		return "SingleQuote"
	case ModeDoubleQuote:
		return "DoubleQuote"
	default:
		return fmt.Sprintf("ModeKind(%d)", int(k))
	}
}

type BlockStyle int

const (
	BlockLiteral BlockStyle = iota // |
	BlockFolded                    // >
)

func (s BlockStyle) String() string {
	if s == BlockFolded {
		return ">"
	}
	return "|"
}

type Chomping int

const (
	ChompClip Chomping = iota
	ChompStrip
	ChompKeep
)

// Mode is the lexical state at a line boundary.
// The zero value is Normal.
type Mode struct {
	kind ModeKind

	// flow collection ([ or {) nesting; quotes opened inside a flow
	// collection keep it so that it is restored when they close
	flowLevel int

	// block scalar body must be indented more than parentIndent;
	// contentIndent is fixed by the indentation indicator or the first
	// non-blank body line
	parentIndent  int
	contentIndent int
	contentKnown  bool
	style         BlockStyle
	chomping      Chomping
}

func NormalMode() Mode { return Mode{} }

func (m Mode) Kind() ModeKind         { return m.kind }
func (m Mode) IsNormal() bool         { return m.kind == ModeNormal }
func (m Mode) FlowLevel() int         { return m.flowLevel }
func (m Mode) BlockStyle() BlockStyle { return m.style }
func (m Mode) Chomping() Chomping     { return m.chomping }

// BlockIndent returns the indentation that the current block scalar body must exceed.
func (m Mode) BlockIndent() int { return m.parentIndent }

// ContentIndent returns the block scalar body indentation if it is already known.
func (m Mode) ContentIndent() (int, bool) { return m.contentIndent, m.contentKnown }

func (m Mode) String() string {
	switch m.kind {
	case ModeBlockScalar:
		if m.contentKnown {
			return fmt.Sprintf("BlockScalar(%s, indent=%d, content=%d)", m.style, m.parentIndent, m.contentIndent)
		}
		return fmt.Sprintf("BlockScalar(%s, indent=%d)", m.style, m.parentIndent)
	case ModeNormal:
		if m.flowLevel > 0 {
			return fmt.Sprintf("Normal(flow=%d)", m.flowLevel)
		}
		return "Normal"
	default:
		return m.kind.String()
	}
}

// Advance returns the Mode in effect at the start of the line following line.
func (m Mode) Advance(line []byte) Mode {
	_, next := Step(m, line)
	return next
}

// Step consumes one line: it classifies line under the mode in effect for it
// and returns the mode for the next line.
func Step(m Mode, line []byte) (LineClass, Mode) {
	m = m.settle(line)
	class := Classify(m, line)

	switch class {
	case StartMarker:
		// "--- |" and "--- 'text" open scalars on the marker line itself
		return class, newLineScanner(line, NormalMode()).scanFrom(len(startMarker))
	case EndMarker:
		return class, NormalMode()
	default:
		return class, m.advance(line)
	}
}

// settle decides whether line still belongs to an open block scalar.
// A line that leaves the block is handled under Normal rules.
func (m Mode) settle(line []byte) Mode {
	if m.kind != ModeBlockScalar {
		return m
	}
	if isBlankLine(line) {
		return m
	}
	// top level block scalars cannot contain markers
	if m.parentIndent < 0 && (isStartMarker(line) || isEndMarker(line)) {
		return NormalMode()
	}

	indent := leadingSpaces(line)

	if !m.contentKnown {
		if indent > m.parentIndent {
			m.contentIndent = indent
			m.contentKnown = true
			return m
		}
		return NormalMode()
	}

	if indent >= m.contentIndent {
		return m
	}
	return NormalMode()
}

func (m Mode) advance(line []byte) Mode {
	switch m.kind {
	case ModeBlockScalar:
		return m

	case ModeSingleQuote, ModeDoubleQuote:
		s := newLineScanner(line, m)
		s.nodeStart = false
		s.keyCol = s.indent
		if !s.scanQuoted(m.kind) {
			return m
		}
		s.mode.kind = ModeNormal
		return s.scan()

	default:
		return newLineScanner(line, m).scan()
	}
}
