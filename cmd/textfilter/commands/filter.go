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

package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/walteh/textfilter/cmd/textfilter/opts"
	"github.com/walteh/textfilter/pkg/batch"
	"github.com/walteh/textfilter/pkg/filter"
	"github.com/walteh/textfilter/pkg/log"
	"gitlab.com/tozd/go/errors"
)

type filterFlags struct {
	diff   bool
	async  bool
	report bool
}

func NewFilterCmd(rootOpts *opts.RootOpts) *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "filter [files...]",
		Short: "Filter files, or stdin when no file is given",
		Long: `Filter replaces every dictionary phrase in each input and prints the result.
With several files, each result is preceded by a "==> name <==" header.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := make([]batch.Input, 0, len(args))
			for _, path := range args {
				inputs = append(inputs, batch.FileInput(path))
			}
			if len(inputs) == 0 {
				inputs = append(inputs, batch.ReaderInput("stdin", cmd.InOrStdin()))
			}
			return runFilter(cmd.Context(), rootOpts, inputs, cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print an inline diff instead of the filtered text")
	cmd.Flags().BoolVar(&flags.async, "async", false, "filter inputs concurrently")
	cmd.Flags().BoolVar(&flags.report, "report", false, "log a summary line per input")

	return cmd
}

func runFilter(ctx context.Context, rootOpts *opts.RootOpts, inputs []batch.Input, out io.Writer, flags filterFlags) error {
	logger := log.FromContext(ctx)

	if flags.report {
		logger.Header("filtering with " + rootOpts.Config.DictionarySource())
		logger.StartBatchOperation(ctx, log.BatchOperation{
			Dictionary: rootOpts.Config.DictionarySource(),
			Phrases:    rootOpts.Dictionary.Len(),
			Inputs:     len(inputs),
			Async:      flags.async,
		})
	}

	results, err := batch.NewRunner(rootOpts.Engine, flags.async).Run(ctx, inputs)
	if err != nil {
		var inputErr *batch.InputError
		if flags.report && errors.As(err, &inputErr) {
			logger.LogFilterOperation(ctx, log.FilterOperation{
				Source: inputErr.Name,
				Status: "failed",
				Failed: true,
			})
			logger.EndBatchOperation(ctx)
		}
		return errors.Errorf("running filter: %w", err)
	}

	for _, res := range results {
		if len(results) > 1 {
			fmt.Fprintf(out, "==> %s <==\n", res.Name)
		}

		text := res.Report.Filtered
		if flags.diff {
			text = filter.Diff(res.Report.Original, res.Report.Filtered)
		}
		if _, err := io.WriteString(out, text); err != nil {
			return errors.Errorf("writing %s: %w", res.Name, err)
		}

		if flags.report {
			status := ""
			if res.Report.WasModified {
				status = "modified"
			}
			logger.LogFilterOperation(ctx, log.FilterOperation{
				Source:       res.Name,
				Status:       status,
				Replacements: res.Report.ReplacementCount,
				IsModified:   res.Report.WasModified,
			})
		}
	}

	if flags.report {
		modified := logger.EndBatchOperation(ctx)
		logger.LogNewline()
		logger.Successf("%d of %d inputs modified", modified, len(results))
	}
	return nil
}
