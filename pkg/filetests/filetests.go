// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package filetests houses a test harness for converting YAML streams and
asserting the expected output.
*/
package filetests

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"carvel.dev/yaml2json/pkg/version"
	"carvel.dev/yaml2json/pkg/yaml2json"
	"carvel.dev/yaml2json/pkg/yamlsplit"
	"github.com/k14s/difflib"
)

// EvaluateFunc is the processing desired from a source stream to the final result.
type EvaluateFunc func(src string) (string, *TestErr)

// FileTests contain a suite of test cases, each described in a separate file, verifying conversion results.
//
// Test cases:
// - are found within the directory at "PathToTests"
// - top-half is the YAML stream; bottom-half is the expected output; divided by `+++` and a blank line.
//
// Types of tests:
// - expected output starting with `ERR:` indicate that expected output is an error message
// - otherwise expected output is the literal output of the conversion
//
// For example:
//
//	---
//	msg: hello
//	+++
//
//	{"msg":"hello"}
type FileTests struct {
	PathToTests string
	EvalFunc    EvaluateFunc
	Opts        yaml2json.ConverterOpts
}

// Run runs each test: enumerates each file within FileTests.PathToTests; splits and evaluates using FileTests.EvalFunc.
func (f FileTests) Run(t *testing.T) {
	var files []string
	version.Version = "0.0.0"

	err := filepath.Walk(f.PathToTests, func(walkedPath string, fi os.FileInfo, err error) error {
		if err != nil || fi.IsDir() {
			return err
		}
		files = append(files, walkedPath)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to enumerate filetests: %s", err)
	}
	if len(files) == 0 {
		t.Fatalf("Expected to find filetests in %s", f.PathToTests)
	}

	if f.EvalFunc == nil {
		f.EvalFunc = f.DefaultEvalFunc
	}

	for _, filePath := range files {
		t.Run(filePath, func(t *testing.T) {
			contents, err := os.ReadFile(filePath)
			if err != nil {
				t.Fatal(err)
			}

			pieces := strings.SplitN(string(contents), "\n+++\n\n", 2)

			if len(pieces) != 2 {
				t.Fatalf("expected file %s to include +++ separator", filePath)
			}
			// the separator consumes the newline ending the input
			src, expectedStr := pieces[0]+"\n", pieces[1]

			result, testErr := f.EvalFunc(src)

			switch {
			case strings.HasPrefix(expectedStr, "ERR:"):
				if testErr == nil {
					err = fmt.Errorf("expected eval error, but did not receive it")
				} else {
					resultStr := TrimTrailingMultilineWhitespace(testErr.UserErr().Error())

					expectedStr = strings.TrimPrefix(expectedStr, "ERR:")
					expectedStr = strings.TrimPrefix(expectedStr, " ")
					expectedStr = strings.ReplaceAll(expectedStr, "__VERSION__", version.Version)
					expectedStr = TrimTrailingMultilineWhitespace(expectedStr)
					err = f.expectEquals(resultStr, expectedStr)
				}
			default:
				if testErr == nil {
					err = f.expectEquals(result, expectedStr)
				} else {
					err = testErr.TestErr()
				}
			}

			if err != nil {
				t.Fatalf("%s", err)
			}
		})
	}
}

// TestErr captures an error result from a single test.
type TestErr struct {
	realErr error
	testErr error
}

// NewTestErr creates a new TestErr
func NewTestErr(realErr, testErr error) *TestErr {
	return &TestErr{realErr, testErr}
}

// UserErr yields the error returned to the user
func (e TestErr) UserErr() error { return e.realErr }

// TestErr yields the error wrapped with helpful test context
func (e TestErr) TestErr() error { return e.testErr }

func (f FileTests) expectEquals(resultStr, expectedStr string) error {
	if resultStr != expectedStr {
		diff := difflib.PPDiff(strings.Split(expectedStr, "\n"), strings.Split(resultStr, "\n"))
		return fmt.Errorf("not equal\n\n### result %d chars:\n>>>%s<<<\n###expected %d chars:\n>>>%s<<<\n### diff expected...result:\n%s",
			len(resultStr), resultStr, len(expectedStr), expectedStr, diff)
	}
	return nil
}

// DefaultEvalFunc converts every document of "src" and stops at the first document that fails.
func (f FileTests) DefaultEvalFunc(src string) (string, *TestErr) {
	converter, err := yaml2json.NewConverter(f.Opts)
	if err != nil {
		return "", NewTestErr(err, fmt.Errorf("converter error: %v", err))
	}

	docs, err := yamlsplit.SplitBytes([]byte(src))
	if err != nil {
		return "", NewTestErr(err, fmt.Errorf("split error: %v", err))
	}

	var out bytes.Buffer
	for _, doc := range docs {
		if doc.IsBlank() {
			continue
		}
		data, err := converter.Convert(doc)
		if err != nil {
			return "", NewTestErr(err, fmt.Errorf("convert error: %v", err))
		}
		out.Write(data)
	}
	return out.String(), nil
}

// TrimTrailingMultilineWhitespace returns a string with trailing whitespace trimmed from every line as well
// as trimmed trailing empty lines
func TrimTrailingMultilineWhitespace(s string) string {
	var trimmedLines []string
	for _, line := range strings.Split(s, "\n") {
		trimmedLine := strings.TrimRight(line, "\t ")
		trimmedLines = append(trimmedLines, trimmedLine)
	}
	multiline := strings.Join(trimmedLines, "\n")
	return strings.TrimRight(multiline, "\n")
}
