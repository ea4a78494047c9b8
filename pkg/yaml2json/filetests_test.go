// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package yaml2json_test

import (
	"testing"

	"carvel.dev/yaml2json/pkg/filetests"
)

func TestFileTests(t *testing.T) {
	filetests.FileTests{PathToTests: "filetests"}.Run(t)
}
