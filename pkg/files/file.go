// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	yamlExts = []string{".yaml", ".yml"}
)

// NewSourcesFromPaths turns command line arguments into sources, in order.
// "-" is standard input, http(s):// paths are fetched, and directories are
// walked (when recursive) for YAML files in lexical order.
func NewSourcesFromPaths(paths []string, recursive bool) ([]Source, error) {
	var fileSrcs []Source
	var stdin *StdinSource

	for _, path := range paths {
		switch {
		case path == "-":
			if stdin != nil {
				return nil, fmt.Errorf("Standard input has already been read, has the '-' argument been used more than once?")
			}
			stdin = NewStdinSource()
			fileSrcs = append(fileSrcs, stdin)

		case strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://"):
			fileSrcs = append(fileSrcs, NewHTTPSource(path))

		default:
			fileInfo, err := os.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("Checking file '%s': %s", path, err)
			}

			if !fileInfo.IsDir() {
				fileSrcs = append(fileSrcs, NewLocalSource(path, ""))
				continue
			}

			if !recursive {
				return nil, fmt.Errorf("Expected file '%s' to not be a directory (use --recursive to convert its YAML files)", path)
			}

			selectedPaths, err := yamlFilesInDir(path)
			if err != nil {
				return nil, err
			}

			for _, selectedPath := range selectedPaths {
				fileSrcs = append(fileSrcs, NewLocalSource(selectedPath, path))
			}
		}
	}

	return fileSrcs, nil
}

func yamlFilesInDir(dir string) ([]string, error) {
	var selectedPaths []string

	err := filepath.Walk(dir, func(walkedPath string, fi os.FileInfo, err error) error {
		if err != nil || fi.IsDir() {
			return err
		}
		if IsYAMLPath(walkedPath) {
			selectedPaths = append(selectedPaths, walkedPath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("Listing files '%s': %s", dir, err)
	}

	sort.Strings(selectedPaths)
	return selectedPaths, nil
}

// IsYAMLPath reports whether path has a YAML file extension.
func IsYAMLPath(path string) bool {
	filename := filepath.Base(path)
	for _, ext := range yamlExts {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}
