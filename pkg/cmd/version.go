// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"carvel.dev/yaml2json/pkg/cmd/ui"
	"carvel.dev/yaml2json/pkg/version"
	"github.com/spf13/cobra"
)

type VersionOptions struct {
	RequireAtLeast string
}

func NewVersionOptions() *VersionOptions {
	return &VersionOptions{}
}

func NewVersionCmd(o *VersionOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run(ui.NewTTY(false)) },
	}
	cmd.Flags().StringVar(&o.RequireAtLeast, "require-at-least", "", "Fail unless the version is at least this one")
	return cmd
}

func (o *VersionOptions) Run(tty ui.UI) error {
	if o.RequireAtLeast != "" {
		err := version.RequireAtLeast(o.RequireAtLeast)
		if err != nil {
			return err
		}
	}

	tty.Printf("yaml2json version %s\n", version.Version)

	return nil
}
