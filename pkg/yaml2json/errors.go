// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package yaml2json

import (
	"fmt"
	"regexp"
	"strconv"

	"carvel.dev/yaml2json/pkg/filepos"
	"carvel.dev/yaml2json/pkg/yamlsplit"
)

var (
	lineErrRegexp = regexp.MustCompile(`^(?P<prefix>yaml: line )(?P<num>\d+)(?P<suffix>: .+)$`)
)

// DocumentError describes a document that could not be converted.
type DocumentError struct {
	Index    int
	Position *filepos.Position
	Err      error
}

func NewDocumentError(doc yamlsplit.Document, err error) *DocumentError {
	return &DocumentError{
		Index:    doc.Index(),
		Position: doc.Position(),
		Err:      correctErrLine(err, doc.Position()),
	}
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("Converting document %d (%s): %s", e.Index, e.Position.AsCompactString(), e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// correctErrLine rewrites the document relative line number the YAML
// library reports so that it refers to the line within the whole stream.
func correctErrLine(err error, docPos *filepos.Position) error {
	if !docPos.IsKnown() {
		return err
	}

	submatches := lineErrRegexp.FindAllStringSubmatch(err.Error(), -1)
	if len(submatches) != 1 || len(submatches[0]) != 4 {
		return err
	}

	origLine, parseErr := strconv.Atoi(submatches[0][2])
	if parseErr != nil || origLine < 1 {
		return err
	}

	return fmt.Errorf("%s%d%s", submatches[0][1], docPos.StreamLine(origLine), submatches[0][3])
}
