// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"

	"carvel.dev/yaml2json/pkg/yaml2json"
	"github.com/cppforlife/cobrautil"
)

const errorModeEnvVar = "YAML2JSON_ERROR"

// ErrorModeFlag is the value of --error. When the flag is not given,
// it is resolved from the YAML2JSON_ERROR environment variable.
type ErrorModeFlag struct {
	mode   yaml2json.ErrorMode
	set    bool
	lookup func(string) (string, bool)
}

var _ cobrautil.ResolvableFlag = &ErrorModeFlag{}

func NewErrorModeFlag() *ErrorModeFlag {
	return &ErrorModeFlag{mode: yaml2json.ErrorModeStderr, lookup: os.LookupEnv}
}

func (s *ErrorModeFlag) Set(val string) error {
	mode, err := yaml2json.ParseErrorMode(val)
	if err != nil {
		return err
	}
	s.mode = mode
	s.set = true
	return nil
}

func (s *ErrorModeFlag) Type() string   { return "string" }
func (s *ErrorModeFlag) String() string { return string(s.mode) }

func (s *ErrorModeFlag) Mode() yaml2json.ErrorMode { return s.mode }

func (s *ErrorModeFlag) Resolve() error {
	if s.set {
		return nil
	}
	val, found := s.lookup(errorModeEnvVar)
	if !found {
		return nil
	}
	mode, err := yaml2json.ParseErrorMode(val)
	if err != nil {
		return err
	}
	s.mode = mode
	return nil
}
