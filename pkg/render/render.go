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

package render

import (
	"fmt"
	"io"
	"sync"

	"github.com/walteh/textfilter/pkg/shell"
	"gitlab.com/tozd/go/errors"
)

// Option configures a Renderer
type Option func(*Renderer)

// WithLabels replaces the default labels.
func WithLabels(labels Labels) Option {
	return func(r *Renderer) {
		r.labels = labels
	}
}

// WithStyle turns pterm styling on or off. It is on by default.
func WithStyle(styled bool) Option {
	return func(r *Renderer) {
		r.styled = styled
	}
}

// WithFormatter sets a custom formatter; labels and style are then ignored.
func WithFormatter(f Formatter) Option {
	return func(r *Renderer) {
		r.formatter = f
	}
}

// 🖼️ Renderer writes one frame per shell snapshot
type Renderer struct {
	mu        sync.Mutex
	out       io.Writer
	labels    Labels
	styled    bool
	formatter Formatter
}

// New creates a Renderer writing to out.
func New(out io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		out:    out,
		labels: DefaultLabels(),
		styled: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.formatter == nil {
		if r.styled {
			r.formatter = NewStyledFormatter(r.labels)
		} else {
			r.formatter = NewPlainFormatter(r.labels)
		}
	}
	return r
}

// Frame formats a snapshot without writing it.
func (r *Renderer) Frame(s shell.Snapshot) string {
	return fmt.Sprintf("%s\n%s\n%s\n",
		r.formatter.FormatPane(r.labels.InputTitle, s.Input, ""),
		r.formatter.FormatPane(r.labels.OutputTitle, s.Filtered, r.labels.Placeholder),
		r.formatter.FormatButtons(s.Copied),
	)
}

// Render writes the frame of s. It is safe to call from shell subscribers.
func (r *Renderer) Render(s shell.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := io.WriteString(r.out, r.Frame(s)); err != nil {
		return errors.Errorf("writing frame: %w", err)
	}
	return nil
}

// Print writes s between frames, for prompts and notices.
func (r *Renderer) Print(s string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := io.WriteString(r.out, s); err != nil {
		return errors.Errorf("writing: %w", err)
	}
	return nil
}
