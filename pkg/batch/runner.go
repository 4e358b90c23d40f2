// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package batch filters several independent inputs with one engine.
package batch

import (
	"context"
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/walteh/textfilter/pkg/filter"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🔄 Engine filters a whole reader
type Engine interface {
	FilterReader(ctx context.Context, content io.Reader) (*filter.Report, error)
}

// 📄 Input is a named source of text
type Input struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// FileInput reads the file at path.
func FileInput(path string) Input {
	return Input{
		Name: path,
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// ReaderInput reads r once; the reader is not closed.
func ReaderInput(name string, r io.Reader) Input {
	return Input{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(r), nil
		},
	}
}

// 📊 Result is the filtered form of one input
type Result struct {
	Name   string
	Report *filter.Report
}

// InputError is a failure tied to one input.
type InputError struct {
	Name string
	Err  error
}

func (e *InputError) Error() string {
	return e.Err.Error()
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// 🏃 Runner filters inputs in order or concurrently
type Runner struct {
	engine Engine
	async  bool
	limit  int
}

// 🏗️ NewRunner creates a new runner
func NewRunner(engine Engine, async bool) *Runner {
	return &Runner{
		engine: engine,
		async:  async,
		limit:  runtime.GOMAXPROCS(0),
	}
}

// 🏃 Run filters every input. Results are in input order whatever the mode; the first
// failure stops the run and is returned as an *InputError.
func (r *Runner) Run(ctx context.Context, inputs []Input) ([]Result, error) {
	if r.async {
		return r.runAsync(ctx, inputs)
	}
	return r.runSync(ctx, inputs)
}

// 🔄 runSync filters inputs one after another
func (r *Runner) runSync(ctx context.Context, inputs []Input) ([]Result, error) {
	results := make([]Result, len(inputs))
	for i, in := range inputs {
		res, err := r.runOne(ctx, in)
		if err != nil {
			return nil, err
		}
		results[i] = res
	}
	return results, nil
}

// ⚡ runAsync filters inputs concurrently, bounded by GOMAXPROCS
func (r *Runner) runAsync(ctx context.Context, inputs []Input) ([]Result, error) {
	results := make([]Result, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)
	for i, in := range inputs {
		g.Go(func() error {
			res, err := r.runOne(gctx, in)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, in Input) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, &InputError{Name: in.Name, Err: errors.Errorf("filtering %s: %w", in.Name, err)}
	}

	rc, err := in.Open()
	if err != nil {
		return Result{}, &InputError{Name: in.Name, Err: errors.Errorf("opening %s: %w", in.Name, err)}
	}
	defer rc.Close()

	report, err := r.engine.FilterReader(ctx, rc)
	if err != nil {
		return Result{}, &InputError{Name: in.Name, Err: errors.Errorf("filtering %s: %w", in.Name, err)}
	}

	zerolog.Ctx(ctx).Debug().
		Str("input", in.Name).
		Int("replacements", report.ReplacementCount).
		Msg("filtered input")
	return Result{Name: in.Name, Report: report}, nil
}
