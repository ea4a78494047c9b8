// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlsplit

import (
	"bytes"

	"carvel.dev/yaml2json/pkg/filepos"
)

// Document is the verbatim text of one YAML document within a stream.
type Document struct {
	data     []byte
	index    int
	position *filepos.Position
	blank    bool
}

// NewDocument wraps data that is already known to be a single document.
func NewDocument(data []byte) Document {
	return Document{data: data, index: 1, position: filepos.NewPosition(1), blank: isBlankDocument(data)}
}

// Bytes returns the document text including any leading markers, directives
// and trailing "..." exactly as they appeared in the stream.
func (d Document) Bytes() []byte  { return d.data }
func (d Document) String() string { return string(d.data) }
func (d Document) Len() int       { return len(d.data) }

// Index is the 1-based ordinal of the document within its stream.
func (d Document) Index() int { return d.index }

// Position is the location of the document's first line within its stream.
func (d Document) Position() *filepos.Position {
	if d.position == nil {
		return filepos.NewUnknownPosition()
	}
	return d.position
}

// IsBlank reports whether the document holds nothing but blank lines,
// comments, directives and "..." markers, i.e. it has no node and no "---".
// Such text trails the last document of a stream.
func (d Document) IsBlank() bool { return d.blank }

func isBlankDocument(data []byte) bool {
	it := NewDocumentIterator(bytes.NewReader(data))
	for {
		doc, err := it.Next()
		if err != nil {
			return true
		}
		if !doc.IsBlank() {
			return false
		}
	}
}
