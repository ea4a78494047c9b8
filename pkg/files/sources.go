// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Source is a named stream of YAML. Open may be called once per conversion;
// the caller closes the returned reader. Sources that block on the network
// give up once ctx is done.
type Source interface {
	Description() string
	RelativePath() (string, error)
	Open(ctx context.Context) (io.ReadCloser, error)
}

var _ []Source = []Source{BytesSource{}, &StdinSource{},
	LocalSource{}, HTTPSource{}}

type BytesSource struct {
	path string
	data []byte
}

func NewBytesSource(path string, data []byte) BytesSource { return BytesSource{path, data} }

func (s BytesSource) Description() string           { return s.path }
func (s BytesSource) RelativePath() (string, error) { return s.path, nil }

func (s BytesSource) Open(_ context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.data)), nil
}

type StdinSource struct {
	reader io.Reader
	opened bool
}

func NewStdinSource() *StdinSource { return NewStdinSourceFromReader(os.Stdin) }

func NewStdinSourceFromReader(r io.Reader) *StdinSource { return &StdinSource{reader: r} }

func (s *StdinSource) Description() string           { return "stdin" }
func (s *StdinSource) RelativePath() (string, error) { return "stdin", nil }

// Open hands out standard input; it is streamed, so it can only be opened once.
func (s *StdinSource) Open(_ context.Context) (io.ReadCloser, error) {
	if s.opened {
		return nil, fmt.Errorf("Standard input has already been read, has the '-' argument been used more than once?")
	}
	s.opened = true
	return io.NopCloser(s.reader), nil
}

type LocalSource struct {
	path string
	dir  string
}

func NewLocalSource(path, dir string) LocalSource { return LocalSource{path, dir} }

func (s LocalSource) Description() string { return fmt.Sprintf("file '%s'", s.path) }

func (s LocalSource) RelativePath() (string, error) {
	if s.dir == "" {
		return filepath.Base(s.path), nil
	}

	cleanPath, err := filepath.Abs(filepath.Clean(s.path))
	if err != nil {
		return "", err
	}

	cleanDir, err := filepath.Abs(filepath.Clean(s.dir))
	if err != nil {
		return "", err
	}

	if strings.HasPrefix(cleanPath, cleanDir) {
		result := strings.TrimPrefix(cleanPath, cleanDir)
		result = strings.TrimPrefix(result, string(os.PathSeparator))
		return result, nil
	}

	return "", fmt.Errorf("unknown relative path for %s", s.path)
}

func (s LocalSource) Open(_ context.Context) (io.ReadCloser, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("Opening file '%s': %s", s.path, err)
	}
	return file, nil
}

type HTTPSource struct {
	url    string
	Client *http.Client
}

func NewHTTPSource(path string) HTTPSource { return HTTPSource{path, &http.Client{}} }

func (s HTTPSource) Description() string {
	return fmt.Sprintf("HTTP URL '%s'", s.url)
}

func (s HTTPSource) RelativePath() (string, error) { return path.Base(s.url), nil }

// Open returns the response body as it arrives, without buffering it whole.
// Cancelling ctx aborts the request, including reads of the body.
func (s HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("Building request for URL '%s': %s", s.url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Requesting URL '%s': %s", s.url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.Body != nil {
			resp.Body.Close()
		}
		return nil, fmt.Errorf("Requesting URL '%s': %s", s.url, resp.Status)
	}

	return resp.Body, nil
}
