// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package yaml2json

import (
	"fmt"
	"strings"
)

type Style int

const (
	// StyleCompact writes each value on a single line
	StyleCompact Style = iota
	StylePretty
)

type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Formats lists every supported Format, in the order shown to users.
var Formats = []Format{FormatJSON, FormatTOML}

func ParseFormat(val string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(val) {
			return f, nil
		}
	}
	return "", fmt.Errorf("Expected output format to be one of %s, but was '%s'", joinFormats(), val)
}

func joinFormats() string {
	var names []string
	for _, f := range Formats {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// ErrorMode selects where conversion failures are reported.
type ErrorMode string

const (
	ErrorModeSilent ErrorMode = "silent"
	ErrorModeStderr ErrorMode = "stderr"
	ErrorModeJSON   ErrorMode = "json"
)

func ParseErrorMode(val string) (ErrorMode, error) {
	switch strings.ToLower(val) {
	case "silent", "none":
		return ErrorModeSilent, nil
	case "stderr", "":
		return ErrorModeStderr, nil
	case "json":
		return ErrorModeJSON, nil
	default:
		return "", fmt.Errorf("Expected error mode to be one of silent, none, stderr, json, but was '%s'", val)
	}
}

const (
	DefaultIndent = 2
	MaxIndent     = 8
)

type ConverterOpts struct {
	Style  Style
	Format Format
	// Indent is the number of spaces per nesting level for StylePretty;
	// zero selects DefaultIndent
	Indent int
}

func (o ConverterOpts) Validate() error {
	if o.Indent < 0 || o.Indent > MaxIndent {
		return fmt.Errorf("Expected indent to be between 1 and %d, but was %d", MaxIndent, o.Indent)
	}
	switch o.Format {
	case "", FormatJSON, FormatTOML:
		return nil
	default:
		return fmt.Errorf("Unknown output format '%s'", o.Format)
	}
}

func (o ConverterOpts) indent() string {
	if o.Indent == 0 {
		return strings.Repeat(" ", DefaultIndent)
	}
	return strings.Repeat(" ", o.Indent)
}
