// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"

	"carvel.dev/yaml2json/pkg/cmd/ui"
	"carvel.dev/yaml2json/pkg/website"
	"carvel.dev/yaml2json/pkg/yaml2json"
	"github.com/spf13/cobra"
)

type ServeOptions struct {
	ListenAddr      string
	RedirectToHTTPS bool
	// Pretty is the default for requests that do not pass "pretty"
	Pretty bool
}

func NewServeOptions() *ServeOptions {
	return &ServeOptions{}
}

func NewServeCmd(o *ServeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts HTTP server converting POSTed YAML streams",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVar(&o.ListenAddr, "listen-addr", "localhost:8080", "Listen address")
	cmd.Flags().BoolVar(&o.RedirectToHTTPS, "redirect-to-https", false, "Redirect to HTTPs address")
	cmd.Flags().BoolVarP(&o.Pretty, "pretty", "p", false, "Indent output unless the request says otherwise")
	return cmd
}

func (o *ServeOptions) Server() *website.Server {
	opts := website.ServerOpts{
		ListenAddr:      o.ListenAddr,
		RedirectToHTTPS: o.RedirectToHTTPS,
		ConvertFunc:     o.convert,
		ErrorFunc:       o.errorJSON,
	}
	return website.NewServer(opts)
}

func (o *ServeOptions) Run() error {
	return o.Server().Run()
}

// convert honors the query parameters pretty, indent, output and error
// (which defaults to json so that failures show up in the response).
func (o *ServeOptions) convert(ctx context.Context, r io.Reader, w io.Writer, query url.Values) error {
	convertOpts := NewConvertOptions()
	convertOpts.Pretty = o.Pretty
	convertOpts.Indent = yaml2json.DefaultIndent
	convertOpts.Output = string(yaml2json.FormatJSON)

	err := convertOpts.ErrorFlag.Set(string(yaml2json.ErrorModeJSON))
	if err != nil {
		return err
	}

	if val := query.Get("pretty"); val != "" {
		convertOpts.Pretty, err = strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("Parsing 'pretty' parameter: %s", err)
		}
	}
	if val := query.Get("indent"); val != "" {
		convertOpts.Indent, err = strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("Parsing 'indent' parameter: %s", err)
		}
	}
	if val := query.Get("output"); val != "" {
		convertOpts.Output = val
	}
	if val := query.Get("error"); val != "" {
		err = convertOpts.ErrorFlag.Set(val)
		if err != nil {
			return err
		}
	}

	converter, err := convertOpts.Converter()
	if err != nil {
		return err
	}

	tty := ui.NewCustomWriterTTY(false, w, os.Stderr)
	errPrinter := yaml2json.NewErrorPrinter(convertOpts.ErrorFlag.Mode(), w, tty)

	_, err = yaml2json.NewPipeline(converter, errPrinter, tty).Run(ctx, r, "request", w)
	return err
}

func (*ServeOptions) errorJSON(err error) ([]byte, error) {
	var buf bytes.Buffer
	reportErr := yaml2json.NewErrorPrinter(yaml2json.ErrorModeJSON, &buf, ui.NewCustomWriterTTY(false, io.Discard, io.Discard)).Report(err)
	if reportErr != nil {
		return nil, reportErr
	}
	return buf.Bytes(), nil
}
