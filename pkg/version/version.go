// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

// Version is set at build time with -ldflags "-X carvel.dev/yaml2json/pkg/version.Version=..."
var Version = "develop"

// RequireAtLeast fails unless the running binary is at least version val.
func RequireAtLeast(val string) error {
	userConstraint, err := goversion.NewConstraint(">=" + val)
	if err != nil {
		return fmt.Errorf("Parsing version constraint '%s': %s", val, err)
	}

	currentVersion, err := goversion.NewVersion(Version)
	if err != nil {
		return fmt.Errorf("Parsing yaml2json version '%s': %s", Version, err)
	}

	if !userConstraint.Check(currentVersion) {
		return fmt.Errorf("yaml2json version %s does not meet the minimum required version %s", Version, val)
	}
	return nil
}
