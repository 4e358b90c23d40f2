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

package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/textfilter/cmd/textfilter/commands"
	"github.com/walteh/textfilter/cmd/textfilter/opts"
	"github.com/walteh/textfilter/pkg/config"
	"github.com/walteh/textfilter/pkg/filter"
	"github.com/walteh/textfilter/pkg/log"
	"gitlab.com/tozd/go/errors"
)

func newRootCmd() *cobra.Command {
	rootOpts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "textfilter",
		Short: "Replace phrases in text using a substitution dictionary",
		Long: `textfilter rewrites text by replacing every phrase of a dictionary, longest
phrase first. It can filter files in one go or run as an interactive shell that
refilters the input as it changes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupRootOpts(cmd, rootOpts)
		},
	}

	addRootFlags(cmd, rootOpts)

	cmd.AddCommand(
		commands.NewFilterCmd(rootOpts),
		commands.NewShellCmd(rootOpts),
		commands.NewDictCmd(rootOpts),
		newVersionCmd(),
	)

	return cmd
}

func addRootFlags(cmd *cobra.Command, rootOpts *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&rootOpts.ConfigFile, "config", "c", config.DefaultFile, "config file path")
	cmd.PersistentFlags().BoolVarP(&rootOpts.Debug, "debug", "d", false, "enable debug logging")
}

// setupRootOpts sets up logging, loads the config and builds the engine for the command
// about to run.
func setupRootOpts(cmd *cobra.Command, rootOpts *opts.RootOpts) error {
	level := zerolog.WarnLevel
	if rootOpts.Debug {
		level = zerolog.DebugLevel
	}
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).Level(level).With().Timestamp().Logger()
	ctx := zlog.WithContext(cmd.Context())

	ctx = log.NewContext(ctx, log.NewWithZerolog(cmd.ErrOrStderr(), zlog))

	cfg, err := config.LoadOrDefault(ctx, rootOpts.ConfigFile, cmd.Flags().Changed("config"))
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	if err := config.Validate(ctx, cfg); err != nil {
		return errors.Errorf("validating config: %w", err)
	}

	m, err := cfg.Dictionary(ctx)
	if err != nil {
		return errors.Errorf("building dictionary: %w", err)
	}

	var filterOpts []filter.Option
	if form, ok := cfg.NormalizationForm(); ok {
		filterOpts = append(filterOpts, filter.WithNormalization(form))
	}

	rootOpts.Config = cfg
	rootOpts.Dictionary = m
	rootOpts.Engine = filter.New(m, filterOpts...)

	zlog.Debug().Str("config", cfg.String()).Int("phrases", m.Len()).Msg("ready")

	cmd.SetContext(ctx)
	return nil
}
