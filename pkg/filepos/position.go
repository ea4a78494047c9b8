// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package filepos

import (
	"fmt"
)

// Position is a line within a named YAML stream.
type Position struct {
	name    string
	lineNum int    // 1 based; 0 when unknown
	text    string // the line itself, without its line break
}

func NewPosition(lineNum int) *Position {
	return NewPositionInFile(lineNum, "")
}

// NewPositionInFile returns the Position of line "lineNum" of the stream called "name"
func NewPositionInFile(lineNum int, name string) *Position {
	if lineNum <= 0 {
		panic("Lines are 1 based")
	}
	return &Position{name: name, lineNum: lineNum}
}

// NewUnknownPosition is equivalent of zero value *Position
func NewUnknownPosition() *Position {
	return &Position{}
}

func (p *Position) IsKnown() bool { return p != nil && p.lineNum > 0 }

func (p *Position) LineNum() int {
	if !p.IsKnown() {
		panic("Position is unknown")
	}
	return p.lineNum
}

func (p *Position) Name() string        { return p.name }
func (p *Position) Text() string        { return p.text }
func (p *Position) SetText(text string) { p.text = text }

// StreamLine translates line "docLine" of the document starting at p
// (the first line being 1) into a line number of the whole stream.
func (p *Position) StreamLine(docLine int) int {
	if docLine <= 0 {
		panic("Lines are 1 based")
	}
	return p.LineNum() + docLine - 1
}

func (p *Position) AsString() string {
	return "line " + p.AsCompactString()
}

func (p *Position) AsCompactString() string {
	prefix := p.name
	if len(prefix) > 0 {
		prefix += ":"
	}
	if p.IsKnown() {
		return fmt.Sprintf("%s%d", prefix, p.lineNum)
	}
	return prefix + "?"
}
