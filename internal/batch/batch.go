// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch drives the metadata pipeline over a list of images: for
// each image it extracts the embedded tags, assembles the extended document
// and writes it beside the image.
//
// Images are processed one at a time in the order given. By default the
// first failure stops the batch and images after it are not touched. With
// Options.KeepGoing a failing image is reported and the batch moves on.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/pdiddy/metadata-extender/internal/document"
	"github.com/pdiddy/metadata-extender/internal/exif"
	"github.com/pdiddy/metadata-extender/internal/selector"
	"github.com/pdiddy/metadata-extender/pkg/types"
)

// Recorder receives the outcome of every attempted image.
type Recorder interface {
	Record(ctx context.Context, outcome types.ImageOutcome) error
}

// Options controls a batch run. The zero value aborts on the first failure,
// discards progress output and writes documents with the default indent.
type Options struct {
	KeepGoing bool
	Progress  io.Writer
	Recorder  Recorder

	// Indent is the number of spaces per level. Zero selects
	// document.DefaultIndent; a negative value writes one-line documents.
	Indent int

	// Assembler builds the documents; nil uses document.NewAssembler.
	Assembler *document.Assembler
}

// Result holds the outcome of a batch run.
type Result struct {
	// Written lists the output documents in processing order.
	Written []string
	Failed  []types.ImageOutcome
}

// Total returns the number of images attempted.
func (r Result) Total() int {
	return len(r.Written) + len(r.Failed)
}

// HasFailures reports whether any image failed.
func (r Result) HasFailures() bool {
	return len(r.Failed) > 0
}

// Err joins the errors of all failed images, nil when there are none.
func (r Result) Err() error {
	errs := make([]error, 0, len(r.Failed))
	for _, o := range r.Failed {
		errs = append(errs, fmt.Errorf("%s: %w", o.Name, o.Err))
	}
	return errors.Join(errs...)
}

// Run processes imageNames, all relative to imageDir, with the descriptive
// content of rec. The record is validated before any image is touched, and
// so is the image list: two images that would write the same document
// (x.jpg and x.JPEG) reject the whole batch.
//
// Without KeepGoing the first failing image ends the run and its error is
// returned; documents already written are left in place. With KeepGoing
// every image is attempted and failures are collected in Result.Failed.
func Run(ctx context.Context, imageDir string, imageNames []string, rec types.ConfigurationRecord, opts Options) (Result, error) {
	var result Result
	if err := rec.Validate(); err != nil {
		return result, err
	}

	w := opts.Progress
	if w == nil {
		w = io.Discard
	}
	if len(imageNames) == 0 {
		fmt.Fprintln(w, "no images to process")
		return result, nil
	}
	if err := checkOutputs(imageDir, imageNames); err != nil {
		return result, err
	}

	asm := opts.Assembler
	if asm == nil {
		asm = document.NewAssembler()
	}
	indent := opts.Indent
	if indent == 0 {
		indent = document.DefaultIndent
	}
	sections := selector.Select(rec)
	log.Debug().Str("dir", imageDir).Int("images", len(imageNames)).Int("sections", len(sections)).Msg("starting batch")

	for _, name := range imageNames {
		if err := ctx.Err(); err != nil {
			summarize(w, result)
			return result, err
		}

		outcome := processImage(types.NewImageRecord(imageDir, name), sections, asm, indent)
		record(ctx, opts.Recorder, outcome)

		if outcome.Failed() {
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, outcome.Err)
			result.Failed = append(result.Failed, outcome)
			if !opts.KeepGoing {
				summarize(w, result)
				return result, fmt.Errorf("processing %s: %w", name, outcome.Err)
			}
			continue
		}
		fmt.Fprintf(w, "wrote: %s\n", filepath.Base(outcome.OutputPath))
		result.Written = append(result.Written, outcome.OutputPath)
	}

	summarize(w, result)
	return result, nil
}

// checkOutputs returns a ConfigurationError when two names share an output
// path.
func checkOutputs(imageDir string, imageNames []string) error {
	seen := make(map[string]string, len(imageNames))
	for _, name := range imageNames {
		out := types.NewImageRecord(imageDir, name).OutputPath
		if prev, ok := seen[out]; ok {
			return &types.ConfigurationError{
				Key:    filepath.Base(out),
				Reason: fmt.Sprintf("images %s and %s would write the same document", prev, name),
			}
		}
		seen[out] = name
	}
	return nil
}

// processImage runs one image through extraction, assembly and writing.
// The source file is closed before it returns.
func processImage(img types.ImageRecord, sections []types.Section, asm *document.Assembler, indent int) types.ImageOutcome {
	outcome := types.ImageOutcome{ImageRecord: img}

	f, err := os.Open(img.SourcePath)
	if err != nil {
		outcome.Err = &types.ExtractionError{Path: img.SourcePath, Err: err}
		return outcome
	}
	defer f.Close()

	tags, err := exif.ExtractFrom(f, img.SourcePath)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	doc := asm.Assemble(img.Name, tags, sections)
	if err := document.Write(doc, img.OutputPath, indent); err != nil {
		outcome.Err = err
		return outcome
	}

	outcome.ExifTags = tags.Len()
	for _, s := range sections {
		outcome.Sections = append(outcome.Sections, s.Name)
	}
	return outcome
}

func record(ctx context.Context, r Recorder, outcome types.ImageOutcome) {
	if r == nil {
		return
	}
	if err := r.Record(ctx, outcome); err != nil {
		log.Warn().Err(err).Str("image", outcome.Name).Msg("recording outcome")
	}
}

func summarize(w io.Writer, r Result) {
	fmt.Fprintf(w, "\nBatch summary: %d written, %d failed (total: %d)\n",
		len(r.Written), len(r.Failed), r.Total())
}
