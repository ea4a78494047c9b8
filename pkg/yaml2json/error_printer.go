// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package yaml2json

import (
	"encoding/json"
	"io"
	"sync"

	"carvel.dev/yaml2json/pkg/cmd/ui"
)

// ErrorPrinter reports conversion failures according to an ErrorMode.
// In ErrorModeJSON the failure takes the place of the document's output.
type ErrorPrinter struct {
	mode ErrorMode
	out  io.Writer
	ui   ui.UI

	lock  sync.Mutex
	count int
}

type jsonError struct {
	YAMLError string `json:"yaml-error"`
}

func NewErrorPrinter(mode ErrorMode, out io.Writer, ui ui.UI) *ErrorPrinter {
	return &ErrorPrinter{mode: mode, out: out, ui: ui}
}

func (p *ErrorPrinter) Mode() ErrorMode { return p.mode }

// Report records err and prints it. Only a failure to write the JSON error
// object is returned.
func (p *ErrorPrinter) Report(err error) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.count++

	switch p.mode {
	case ErrorModeSilent:
		p.ui.Debugf("yaml2json: suppressed error: %s\n", err)
		return nil

	case ErrorModeJSON:
		enc := json.NewEncoder(p.out)
		enc.SetEscapeHTML(false)
		return enc.Encode(jsonError{YAMLError: err.Error()})

	default:
		p.ui.Warnf("yaml2json: Error: %s\n", err)
		return nil
	}
}

// Count is the number of errors reported so far.
func (p *ErrorPrinter) Count() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.count
}
