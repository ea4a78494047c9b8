// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"carvel.dev/yaml2json/pkg/files"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readSource(t *testing.T, src files.Source) string {
	t.Helper()

	rc, err := src.Open(context.Background())
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func TestHTTPFileSources(t *testing.T) {
	url := "http://example.com/some/path.yml"

	client := NewTestClient(func(req *http.Request) *http.Response {
		// Test request parameters
		require.Equal(t, req.URL.String(), url)
		return &http.Response{
			StatusCode: http.StatusOK,
			// Send response to be tested
			Body: io.NopCloser(bytes.NewBufferString(`a: 1`)),
			// Must be set to non-nil value or it panics
			Header: make(http.Header),
		}
	})

	fileSource := files.NewHTTPSource(url)
	fileSource.Client = client
	require.Equal(t, "a: 1", readSource(t, fileSource))

	relPath, err := fileSource.RelativePath()
	require.NoError(t, err)
	require.Equal(t, "path.yml", relPath)

	// 2xx Status Codes
	client = NewTestClient(func(req *http.Request) *http.Response {
		require.Equal(t, req.URL.String(), url)
		return &http.Response{
			StatusCode: http.StatusIMUsed,
			Body:       io.NopCloser(bytes.NewBufferString(`OK`)),
			Header:     make(http.Header),
		}
	})

	fileSource = files.NewHTTPSource(url)
	fileSource.Client = client
	require.Equal(t, "OK", readSource(t, fileSource))

	// Non-OK HTTP Status Code
	status := "404 Not Found"
	client = NewTestClient(func(req *http.Request) *http.Response {
		require.Equal(t, req.URL.String(), url)
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Status:     status,
			Body:       io.NopCloser(bytes.NewBufferString(`missing`)),
			Header:     make(http.Header),
		}
	})

	fileSource = files.NewHTTPSource(url)
	fileSource.Client = client
	_, err = fileSource.Open(context.Background())
	require.EqualError(t, err, fmt.Sprintf("Requesting URL '%s': %s", url, status))
}

func TestHTTPSourceHonorsContext(t *testing.T) {
	url := "http://example.com/stream.yml"

	fileSource := files.NewHTTPSource(url)
	fileSource.Client = &http.Client{Transport: blockingTransport{}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fileSource.Open(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("Requesting URL '%s': ", url))
	assert.Contains(t, err.Error(), "context canceled")
}

func TestStdinSourceOpensOnce(t *testing.T) {
	src := files.NewStdinSourceFromReader(strings.NewReader("a: 1\n"))
	require.Equal(t, "a: 1\n", readSource(t, src))

	_, err := src.Open(context.Background())
	require.EqualError(t, err, "Standard input has already been read, has the '-' argument been used more than once?")
}

func TestBytesSource(t *testing.T) {
	src := files.NewBytesSource("mem.yml", []byte("a: 1\n"))
	assert.Equal(t, "mem.yml", src.Description())
	assert.Equal(t, "a: 1\n", readSource(t, src))
	assert.Equal(t, "a: 1\n", readSource(t, src))
}

func TestNewSourcesFromPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.yml"), "b: 1\n")
	writeFile(t, filepath.Join(dir, "a.yaml"), "a: 1\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "skip me\n")
	writeFile(t, filepath.Join(dir, "nested", "c.yml"), "c: 1\n")

	t.Run("single file", func(t *testing.T) {
		srcs, err := files.NewSourcesFromPaths([]string{filepath.Join(dir, "notes.txt")}, false)
		require.NoError(t, err)
		require.Len(t, srcs, 1)
		assert.Equal(t, "skip me\n", readSource(t, srcs[0]))
	})

	t.Run("recursive directory", func(t *testing.T) {
		srcs, err := files.NewSourcesFromPaths([]string{dir}, true)
		require.NoError(t, err)

		var relPaths []string
		for _, src := range srcs {
			relPath, err := src.RelativePath()
			require.NoError(t, err)
			relPaths = append(relPaths, relPath)
		}
		assert.Equal(t, []string{"a.yaml", "b.yml", filepath.Join("nested", "c.yml")}, relPaths)
	})

	t.Run("directory without recursive", func(t *testing.T) {
		_, err := files.NewSourcesFromPaths([]string{dir}, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "to not be a directory")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := files.NewSourcesFromPaths([]string{filepath.Join(dir, "missing.yml")}, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Checking file")
	})

	t.Run("stdin more than once", func(t *testing.T) {
		_, err := files.NewSourcesFromPaths([]string{"-", "-"}, false)
		require.Error(t, err)
	})

	t.Run("urls are not checked up front", func(t *testing.T) {
		srcs, err := files.NewSourcesFromPaths([]string{"https://example.com/x.yml"}, false)
		require.NoError(t, err)
		assert.Equal(t, "HTTP URL 'https://example.com/x.yml'", srcs[0].Description())
	})
}

func TestIsYAMLPath(t *testing.T) {
	assert.True(t, files.IsYAMLPath("dir/config.yml"))
	assert.True(t, files.IsYAMLPath("config.yaml"))
	assert.False(t, files.IsYAMLPath("config.json"))
	assert.False(t, files.IsYAMLPath("yml"))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

// NewTestClient returns *http.Client with Transport replaced to avoid making real calls
func NewTestClient(fn RoundTripFunc) *http.Client {
	return &http.Client{
		Transport: RoundTripFunc(fn),
	}
}

type RoundTripFunc func(req *http.Request) *http.Response

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

// blockingTransport stands in for a server that never answers
type blockingTransport struct{}

func (blockingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	<-req.Context().Done()
	return nil, req.Context().Err()
}
