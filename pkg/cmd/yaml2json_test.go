// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"carvel.dev/yaml2json/pkg/cmd"
	"carvel.dev/yaml2json/pkg/cmd/ui"
	"carvel.dev/yaml2json/pkg/files"
	"carvel.dev/yaml2json/pkg/version"
	"carvel.dev/yaml2json/pkg/yaml2json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runConvert(t *testing.T, opts *cmd.ConvertOptions, srcs ...files.Source) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := opts.RunWithSources(context.Background(), srcs, ui.NewCustomWriterTTY(false, &stdout, &stderr))
	return stdout.String(), stderr.String(), err
}

func newOpts(t *testing.T, errorMode string) *cmd.ConvertOptions {
	opts := cmd.NewConvertOptions()
	opts.Output = "json"
	opts.Indent = yaml2json.DefaultIndent
	require.NoError(t, opts.ErrorFlag.Set(errorMode))
	return opts
}

func TestConvertSources(t *testing.T) {
	first := files.NewBytesSource("first.yml", []byte("a: 1\n---\nb: 2\n"))
	second := files.NewBytesSource("second.yml", []byte("--- |\n  text\n"))

	stdout, stderr, err := runConvert(t, newOpts(t, "stderr"), first, second)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n{\"b\":2}\n\"text\\n\"\n", stdout)
	assert.Empty(t, stderr)
}

func TestConvertPrettyAndTOML(t *testing.T) {
	src := files.NewBytesSource("in.yml", []byte("a: [1]\n"))

	opts := newOpts(t, "stderr")
	opts.Pretty = true
	opts.Indent = 3

	stdout, _, err := runConvert(t, opts, src)
	require.NoError(t, err)
	assert.Equal(t, "{\n   \"a\": [\n      1\n   ]\n}\n", stdout)

	opts = newOpts(t, "stderr")
	opts.Output = "toml"

	stdout, _, err = runConvert(t, opts, files.NewBytesSource("in.yml", []byte("name: x\n")))
	require.NoError(t, err)
	assert.Equal(t, "name = \"x\"\n", stdout)

	opts.Output = "xml"
	_, _, err = runConvert(t, opts, src)
	require.EqualError(t, err, "Expected output format to be one of json, toml, but was 'xml'")
}

func TestConvertReportsFailedSources(t *testing.T) {
	missing := files.NewLocalSource("testdata/does-not-exist.yml", "")
	good := files.NewBytesSource("good.yml", []byte("ok: true\n"))

	t.Run("stderr", func(t *testing.T) {
		stdout, stderr, err := runConvert(t, newOpts(t, "stderr"), missing, good)
		require.EqualError(t, err, "Converting 1 of 2 source(s) failed")
		assert.Equal(t, "{\"ok\":true}\n", stdout)
		assert.Contains(t, stderr, "yaml2json: Error: Opening file 'testdata/does-not-exist.yml'")
	})

	t.Run("json", func(t *testing.T) {
		stdout, stderr, err := runConvert(t, newOpts(t, "json"), missing, good)
		require.Error(t, err)
		lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], `{"yaml-error":"Opening file 'testdata/does-not-exist.yml': `), lines[0])
		assert.Equal(t, `{"ok":true}`, lines[1])
		assert.Empty(t, stderr)
	})

	t.Run("bad documents do not fail the run", func(t *testing.T) {
		stdout, stderr, err := runConvert(t, newOpts(t, "silent"), files.NewBytesSource("in.yml", []byte("a: [\n---\nb: 1\n")))
		require.NoError(t, err)
		assert.Equal(t, "{\"b\":1}\n", stdout)
		assert.Empty(t, stderr)
	})
}

func TestErrorModeFlagResolvesFromEnv(t *testing.T) {
	t.Setenv("YAML2JSON_ERROR", "json")

	flag := cmd.NewErrorModeFlag()
	assert.Equal(t, yaml2json.ErrorModeStderr, flag.Mode())
	require.NoError(t, flag.Resolve())
	assert.Equal(t, yaml2json.ErrorModeJSON, flag.Mode())

	flag = cmd.NewErrorModeFlag()
	require.NoError(t, flag.Set("none"))
	require.NoError(t, flag.Resolve())
	assert.Equal(t, yaml2json.ErrorModeSilent, flag.Mode())
	assert.Equal(t, "silent", flag.String())

	t.Setenv("YAML2JSON_ERROR", "loud")
	require.Error(t, cmd.NewErrorModeFlag().Resolve())
}

func TestCommandWiring(t *testing.T) {
	root := cmd.NewDefaultYaml2JSONCmd()

	for _, name := range []string{"pretty", "indent", "output", "recursive", "debug", "error"} {
		assert.NotNil(t, root.Flags().Lookup(name), "flag %s", name)
	}
	assert.Equal(t, "e", root.Flags().Lookup("error").Shorthand)

	t.Run("version rejects extra arguments", func(t *testing.T) {
		root := cmd.NewDefaultYaml2JSONCmd()
		root.SetArgs([]string{"version", "extra"})
		err := root.Execute()
		require.EqualError(t, err, "command 'yaml2json version' does not accept extra arguments 'extra'")
	})

	t.Run("version requirement", func(t *testing.T) {
		defer func(orig string) { version.Version = orig }(version.Version)
		version.Version = "0.1.0"

		root := cmd.NewDefaultYaml2JSONCmd()
		root.SetArgs([]string{"version", "--require-at-least", "1.0.0"})
		err := root.Execute()
		require.EqualError(t, err, "yaml2json version 0.1.0 does not meet the minimum required version 1.0.0")
	})

	t.Run("invalid error flag", func(t *testing.T) {
		root := cmd.NewDefaultYaml2JSONCmd()
		root.SetArgs([]string{"--error", "loud", "-"})
		err := root.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Expected error mode to be one of silent, none, stderr, json, but was 'loud'")
	})
}

func TestVersionOutput(t *testing.T) {
	defer func(orig string) { version.Version = orig }(version.Version)
	version.Version = "1.2.3"

	var stdout bytes.Buffer
	opts := cmd.NewVersionOptions()
	opts.RequireAtLeast = "1.2.0"

	require.NoError(t, opts.Run(ui.NewCustomWriterTTY(false, &stdout, nil)))
	assert.Equal(t, "yaml2json version 1.2.3\n", stdout.String())
}
