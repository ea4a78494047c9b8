// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlsplit

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"carvel.dev/yaml2json/pkg/filepos"
)

type IteratorOpts struct {
	// AssociatedName is typically a file name where data came from
	AssociatedName string
	// BufferSize of the underlying bufio.Reader; lines longer than it are still read whole
	BufferSize int
}

// DocumentIterator yields the documents of a YAML stream one at a time.
// It never reads past the line that ends the document it returns.
type DocumentIterator struct {
	reader *bufio.Reader
	opts   IteratorOpts

	mode    Mode
	acc     accumulator
	line    []byte
	lineNum int
	index   int

	eof bool
	err error
}

func NewDocumentIterator(r io.Reader) *DocumentIterator {
	return NewDocumentIteratorWithOpts(r, IteratorOpts{})
}

func NewDocumentIteratorWithOpts(r io.Reader, opts IteratorOpts) *DocumentIterator {
	var reader *bufio.Reader
	if opts.BufferSize > 0 {
		reader = bufio.NewReaderSize(r, opts.BufferSize)
	} else {
		reader = bufio.NewReader(r)
	}
	return &DocumentIterator{reader: reader, opts: opts}
}

// Next returns the next document of the stream.
//
// Once the stream is exhausted, Next returns io.EOF, and keeps doing so.
// A read error is returned as is (wrapped) and ends iteration: the partially
// read document is discarded and every later call returns the same error.
func (it *DocumentIterator) Next() (Document, error) {
	if it.err != nil {
		return Document{}, it.err
	}

	for {
		if it.eof {
			return it.finish()
		}

		line, err := it.readLine()
		switch {
		case err == io.EOF:
			it.eof = true
		case err != nil:
			it.acc.discard()
			it.err = fmt.Errorf("Reading line %d: %w", it.lineNum+1, err)
			return Document{}, it.err
		}

		if len(line) == 0 {
			continue
		}
		if doc, ok := it.consume(line); ok {
			return doc, nil
		}
	}
}

// Mode reports the lexical mode at the current read position.
func (it *DocumentIterator) Mode() Mode { return it.mode }

// LineNum reports how many lines have been read so far.
func (it *DocumentIterator) LineNum() int { return it.lineNum }

func (it *DocumentIterator) readLine() ([]byte, error) {
	it.line = it.line[:0]
	for {
		chunk, err := it.reader.ReadSlice('\n')
		it.line = append(it.line, chunk...)
		if err != bufio.ErrBufferFull {
			return it.line, err
		}
	}
}

// consume feeds one line through the classifier and the accumulator.
// It returns a document when the line completes one.
func (it *DocumentIterator) consume(line []byte) (Document, bool) {
	it.lineNum++

	preamble := it.mode.settle(line).IsNormal() && it.acc.isPreamble(line)
	class, next := Step(it.mode, line)
	it.mode = next

	switch class {
	case StartMarker:
		if it.acc.startsNewDocument() {
			doc := it.flush()
			it.acc.append(line, it.lineNum, class, false)
			return doc, true
		}
		it.acc.append(line, it.lineNum, class, false)

	case EndMarker:
		it.acc.append(line, it.lineNum, class, false)
		return it.flush(), true

	default:
		it.acc.append(line, it.lineNum, class, preamble)
	}

	return Document{}, false
}

func (it *DocumentIterator) finish() (Document, error) {
	if it.acc.empty() {
		it.err = io.EOF
		return Document{}, it.err
	}
	return it.flush(), nil
}

func (it *DocumentIterator) flush() Document {
	data, startLine, blank := it.acc.flush()
	it.index++

	pos := filepos.NewPositionInFile(startLine, it.opts.AssociatedName)
	pos.SetText(firstLine(data))

	return Document{data: data, index: it.index, position: pos, blank: blank}
}

// SplitBytes splits an in-memory stream into its documents.
func SplitBytes(data []byte) ([]Document, error) {
	var docs []Document

	it := NewDocumentIterator(bytes.NewReader(data))
	for {
		doc, err := it.Next()
		if err == io.EOF {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
}

func firstLine(data []byte) string {
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		data = data[:idx]
	}
	return string(bytes.TrimRight(data, "\r"))
}
