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
	"bufio"
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/textfilter/cmd/textfilter/opts"
	"github.com/walteh/textfilter/pkg/clipboard"
	"github.com/walteh/textfilter/pkg/log"
	"github.com/walteh/textfilter/pkg/render"
	"github.com/walteh/textfilter/pkg/shell"
	"gitlab.com/tozd/go/errors"
)

const (
	clearCommand = ":clear"
	copyCommand  = ":copy"
	quitCommand  = ":quit"
)

type shellFlags struct {
	noClipboard bool
	plain       bool
}

func NewShellCmd(rootOpts *opts.RootOpts) *cobra.Command {
	var flags shellFlags

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Filter text interactively",
		Long: `Shell reads lines from stdin and appends each one to the input. The input is
refiltered once typing pauses. Commands:
  :clear  empty the input and the output
  :copy   copy the filtered text to the clipboard
  :quit   leave the shell`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clip, fallback := clipboard.Open(flags.noClipboard)
			if fallback && !flags.noClipboard {
				log.FromContext(cmd.Context()).Warning("system clipboard unavailable, copies are kept in memory")
			}

			in := cmd.InOrStdin()
			prompt := false
			if f, ok := in.(*os.File); ok {
				prompt = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
			}

			return runShell(cmd.Context(), rootOpts, in, cmd.OutOrStdout(), clip, prompt, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.noClipboard, "no-clipboard", false, "keep copies in memory instead of the system clipboard")
	cmd.Flags().BoolVar(&flags.plain, "plain", false, "render without colors or boxes")

	return cmd
}

func runShell(ctx context.Context, rootOpts *opts.RootOpts, in io.Reader, out io.Writer, clip clipboard.Writer, prompt bool, flags shellFlags) error {
	logger := zerolog.Ctx(ctx)

	sh, err := shell.New(ctx, shell.Options{
		Engine:       rootOpts.Engine,
		Clipboard:    clip,
		Debounce:     rootOpts.Config.Debounce,
		CopiedWindow: rootOpts.Config.CopiedWindow,
	})
	if err != nil {
		return errors.Errorf("creating shell: %w", err)
	}
	defer sh.Close()

	renderer := render.New(out, render.WithStyle(!flags.plain))

	settled := make(chan struct{}, 1)
	unsubscribe := sh.Subscribe(func(s shell.Snapshot) {
		if err := renderer.Render(s); err != nil {
			logger.Debug().Err(err).Msg("rendering snapshot")
		}
		if s.Phase == shell.Idle {
			select {
			case settled <- struct{}{}:
			default:
			}
		}
	})
	defer unsubscribe()

	if prompt {
		log.FromContext(ctx).Info("type to filter; :clear, :copy and :quit are commands")
	}
	if err := renderer.Render(sh.Snapshot()); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			if err := renderer.Print("> "); err != nil {
				return err
			}
		}
		if !scanner.Scan() {
			break
		}

		switch line := scanner.Text(); line {
		case quitCommand:
			return nil
		case clearCommand:
			sh.OnClear()
		case copyCommand:
			sh.OnCopy()
		default:
			text := line
			if current := sh.Snapshot().Input; current != "" {
				text = current + "\n" + line
			}
			sh.OnInputChange(text)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Errorf("reading input: %w", err)
	}

	// input ended: let the last change settle so its output is shown
	for sh.Snapshot().Phase == shell.PendingRecompute {
		select {
		case <-settled:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
