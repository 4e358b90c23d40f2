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
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/textfilter/cmd/textfilter/opts"
	"github.com/walteh/textfilter/pkg/dictionary"
	"github.com/walteh/textfilter/pkg/filter"
	"github.com/walteh/textfilter/pkg/log"
	"github.com/walteh/textfilter/pkg/render"
	"gitlab.com/tozd/go/errors"
)

func NewDictCmd(rootOpts *opts.RootOpts) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "dict",
		Short: "List dictionary phrases in the order they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.FromContext(cmd.Context())

			entries := rootOpts.Dictionary.Entries()
			if search != "" {
				entries = rootOpts.Dictionary.Search(search)
				if len(entries) == 0 {
					logger.Warningf("no phrase matches %q", search)
					return nil
				}
			}
			if err := writeEntries(cmd.OutOrStdout(), entries); err != nil {
				return err
			}
			logger.Infof("%d of %d phrases, in the order they are applied", len(entries), rootOpts.Dictionary.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "fuzzy search phrases, closest first")

	cmd.AddCommand(newDictCheckCmd(rootOpts))

	return cmd
}

func newDictCheckCmd(rootOpts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "List replacements that a later phrase matches again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.FromContext(cmd.Context())

			hazards := filter.Hazards(rootOpts.Dictionary)
			if len(hazards) == 0 {
				logger.Successf("no re-match hazards in %d phrases", rootOpts.Dictionary.Len())
				return nil
			}

			data := pterm.TableData{{"phrase", "replacement", "matched again by"}}
			for _, h := range hazards {
				data = append(data, []string{render.Isolate(h.Phrase), render.Isolate(h.Replacement), render.Isolate(h.Rematched)})
			}
			if err := writeTable(cmd.OutOrStdout(), data); err != nil {
				return err
			}
			logger.Warningf("%d re-match hazards", len(hazards))
			return nil
		},
	}
}

func writeEntries(out io.Writer, entries []dictionary.Entry) error {
	data := pterm.TableData{{"#", "phrase", "replacement"}}
	for i, e := range entries {
		data = append(data, []string{strconv.Itoa(i + 1), render.Isolate(e.From), render.Isolate(e.To)})
	}
	return writeTable(out, data)
}

func writeTable(out io.Writer, data pterm.TableData) error {
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("rendering table: %w", err)
	}
	_, err = fmt.Fprintln(out, table)
	return err
}
