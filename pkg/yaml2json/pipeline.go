// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package yaml2json

import (
	"context"
	"fmt"
	"io"
	"time"

	"carvel.dev/yaml2json/pkg/cmd/ui"
	"carvel.dev/yaml2json/pkg/yamlsplit"
	"golang.org/x/sync/errgroup"
)

// Pipeline splits a stream and converts its documents as they are found:
// one goroutine scans while another converts and writes, so at most one
// document waits between them and output keeps the input order.
type Pipeline struct {
	converter *Converter
	errors    *ErrorPrinter
	ui        ui.UI
}

func NewPipeline(converter *Converter, errors *ErrorPrinter, ui ui.UI) *Pipeline {
	return &Pipeline{converter, errors, ui}
}

// Stats summarizes one Run.
type Stats struct {
	Documents int
	Failed    int
}

// Run converts every document read from r and writes results to out.
//
// Documents that fail to convert are reported through the ErrorPrinter and
// do not stop the run. The returned error is a failure of the stream itself
// (reading r, writing out) or ctx cancellation.
func (p *Pipeline) Run(ctx context.Context, r io.Reader, name string, out io.Writer) (Stats, error) {
	var stats Stats
	t1 := time.Now()

	defer func() {
		p.ui.Debugf("%s: %d document(s), %d failed, took %s\n", name, stats.Documents, stats.Failed, time.Since(t1))
	}()

	docs := make(chan yamlsplit.Document)
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer close(docs)

		it := yamlsplit.NewDocumentIteratorWithOpts(r, yamlsplit.IteratorOpts{AssociatedName: name})
		for {
			doc, err := it.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("Splitting %s: %w", name, err)
			}

			select {
			case docs <- doc:
			case <-groupCtx.Done():
				return groupCtx.Err()
			}
		}
	})

	group.Go(func() error {
		// a received document is converted even if the producer has failed
		// since; only the caller's ctx stops conversion early
		for doc := range docs {
			if err := ctx.Err(); err != nil {
				return err
			}
			if doc.IsBlank() {
				p.ui.Debugf("%s: skipping blank document %d\n", name, doc.Index())
				continue
			}
			stats.Documents++

			data, err := p.converter.Convert(doc)
			if err != nil {
				stats.Failed++
				err = p.errors.Report(err)
				if err != nil {
					return fmt.Errorf("Writing error: %s", err)
				}
				continue
			}

			_, err = out.Write(data)
			if err != nil {
				return fmt.Errorf("Writing output: %s", err)
			}
		}
		return nil
	})

	err := group.Wait()
	return stats, err
}
