// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"time"

	"carvel.dev/yaml2json/pkg/cmd/ui"
	"carvel.dev/yaml2json/pkg/files"
	"carvel.dev/yaml2json/pkg/version"
	"carvel.dev/yaml2json/pkg/yaml2json"
	"github.com/cppforlife/cobrautil"
	"github.com/spf13/cobra"
)

type ConvertOptions struct {
	Pretty    bool
	Indent    int
	Output    string
	Recursive bool
	Debug     bool

	ErrorFlag *ErrorModeFlag
}

func NewConvertOptions() *ConvertOptions {
	return &ConvertOptions{ErrorFlag: NewErrorModeFlag()}
}

func NewDefaultYaml2JSONCmd() *cobra.Command {
	return NewYaml2JSONCmd(NewConvertOptions())
}

func NewYaml2JSONCmd(o *ConvertOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "yaml2json [flags] [file|-|url ...]",
		Version: version.Version,
		Short:   "yaml2json converts streams of YAML documents to JSON",
		Long: `yaml2json converts streams of YAML documents to JSON.

Each document of the input becomes one JSON value on the output, in order.
Documents are converted as soon as they are read, so endless streams work.
Without arguments standard input is converted.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error { return o.Run(cmd.Context(), args) },
	}

	cmd.Flags().BoolVarP(&o.Pretty, "pretty", "p", false, "Indent output across multiple lines")
	cmd.Flags().IntVar(&o.Indent, "indent", yaml2json.DefaultIndent, "Number of spaces per nesting level with --pretty")
	cmd.Flags().StringVarP(&o.Output, "output", "o", string(yaml2json.FormatJSON), "Output format (json, toml)")
	cmd.Flags().BoolVarP(&o.Recursive, "recursive", "r", false, "Convert YAML files found in directories")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	cmd.Flags().VarP(o.ErrorFlag, "error", "e", "Where to report conversion errors (silent, none, stderr, json) ($YAML2JSON_ERROR)")

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	// Disable docs header
	cmd.DisableAutoGenTag = true

	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))
	cmd.AddCommand(NewServeCmd(NewServeOptions()))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.ReconfigureLeafCmds(cobrautil.DisallowExtraArgs),
		cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}

func (o *ConvertOptions) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"-"}
	}

	srcs, err := files.NewSourcesFromPaths(args, o.Recursive)
	if err != nil {
		return err
	}

	return o.RunWithSources(ctx, srcs, ui.NewTTY(o.Debug))
}

// RunWithSources converts srcs one after another, writing to the TTY's stdout.
// A source that cannot be read is reported like a failed document; the
// returned error then only summarizes how many sources failed.
func (o *ConvertOptions) RunWithSources(ctx context.Context, srcs []files.Source, tty ui.TTY) error {
	t1 := time.Now()

	defer func() {
		tty.Debugf("total: %s\n", time.Since(t1))
	}()

	converter, err := o.Converter()
	if err != nil {
		return err
	}

	errPrinter := yaml2json.NewErrorPrinter(o.ErrorFlag.Mode(), tty.Stdout(), tty)
	pipeline := yaml2json.NewPipeline(converter, errPrinter, tty)

	var failed int

	for _, src := range srcs {
		err := o.convertSource(ctx, pipeline, src, tty)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			failed++
			reportErr := errPrinter.Report(err)
			if reportErr != nil {
				return reportErr
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("Converting %d of %d source(s) failed", failed, len(srcs))
	}
	return nil
}

func (o *ConvertOptions) Converter() (*yaml2json.Converter, error) {
	format, err := yaml2json.ParseFormat(o.Output)
	if err != nil {
		return nil, err
	}

	opts := yaml2json.ConverterOpts{Format: format, Indent: o.Indent}
	if o.Pretty {
		opts.Style = yaml2json.StylePretty
	}
	return yaml2json.NewConverter(opts)
}

func (o *ConvertOptions) convertSource(ctx context.Context, pipeline *yaml2json.Pipeline, src files.Source, tty ui.TTY) error {
	name, err := src.RelativePath()
	if err != nil {
		return fmt.Errorf("Calculating relative path for %s: %s", src.Description(), err)
	}

	tty.Debugf("converting %s\n", src.Description())

	reader, err := src.Open(ctx)
	if err != nil {
		return err
	}
	defer reader.Close()

	_, err = pipeline.Run(ctx, reader, name, tty.Stdout())
	return err
}
