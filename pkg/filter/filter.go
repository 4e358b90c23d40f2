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

// Package filter substitutes dictionary phrases in text.
//
// Phrases are applied one at a time, longest first, each as a literal global
// replace over the text produced by the previous phrase. Because every pass sees
// the output of the passes before it, a replacement can itself be matched again
// by a shorter phrase later in the same call.
package filter

import (
	"context"
	"io"
	"strings"

	"github.com/walteh/textfilter/pkg/dictionary"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/unicode/norm"
)

// Filter returns text with every phrase of m replaced, longest phrase first.
func Filter(text string, m dictionary.Map) string {
	return New(m).Filter(text)
}

// 🔄 rule is one precomputed pass
type rule struct {
	from string
	to   string
}

// ⚙️ Option configures a Replacer
type Option func(*Replacer)

// WithNormalization normalizes phrases, replacements and input text to form before matching.
func WithNormalization(form norm.Form) Option {
	return func(r *Replacer) {
		r.normalize = true
		r.form = form
	}
}

// 🎯 Replacer applies an immutable phrase table. It holds no mutable state and is
// safe for concurrent use.
type Replacer struct {
	rules     []rule
	normalize bool
	form      norm.Form
}

// 🏭 New precomputes the processing order of m.
func New(m dictionary.Map, opts ...Option) *Replacer {
	r := &Replacer{}
	for _, opt := range opts {
		opt(r)
	}

	if !r.normalize {
		for _, e := range m.Entries() {
			r.rules = append(r.rules, rule{from: e.From, to: e.To})
		}
		return r
	}

	// normalizing can make two phrases equal, keep the first in processing order
	var entries []dictionary.Entry
	seen := map[string]struct{}{}
	for _, e := range m.Entries() {
		from := r.form.String(e.From)
		if _, ok := seen[from]; ok {
			continue
		}
		seen[from] = struct{}{}
		entries = append(entries, dictionary.Entry{From: from, To: r.form.String(e.To)})
	}
	normalized, err := dictionary.FromEntries(entries)
	if err != nil {
		// unreachable: entries are unique and non-empty
		panic(err)
	}
	for _, e := range normalized.Entries() {
		r.rules = append(r.rules, rule{from: e.From, to: e.To})
	}
	return r
}

// Len returns the number of passes a call performs.
func (r *Replacer) Len() int {
	return len(r.rules)
}

// 🔄 Filter applies every pass to text in order.
func (r *Replacer) Filter(text string) string {
	if text == "" {
		return ""
	}
	if r.normalize {
		text = r.form.String(text)
	}
	for _, rl := range r.rules {
		text = strings.ReplaceAll(text, rl.from, rl.to)
	}
	return text
}

// 📊 Report is the outcome of a filter call with per-phrase counts
type Report struct {
	// Original is the text as given
	Original string

	// Filtered is the text after every pass
	Filtered string

	// WasModified indicates if Filtered differs from Original
	WasModified bool

	// ReplacementCount is the number of replacements made across all passes
	ReplacementCount int

	// Counts maps each phrase that matched to the number of occurrences its pass replaced
	Counts map[string]int
}

// 📊 Report filters text and records how many occurrences each pass replaced.
func (r *Replacer) Report(text string) *Report {
	report, _ := r.report(context.Background(), text)
	return report
}

func (r *Replacer) report(ctx context.Context, text string) (*Report, error) {
	result := &Report{
		Original: text,
		Counts:   map[string]int{},
	}

	current := text
	if r.normalize {
		current = r.form.String(current)
	}
	for _, rl := range r.rules {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("filtering text: %w", err)
		}
		if n := strings.Count(current, rl.from); n > 0 {
			result.Counts[rl.from] += n
			result.ReplacementCount += n
			current = strings.ReplaceAll(current, rl.from, rl.to)
		}
	}

	result.Filtered = current
	result.WasModified = current != text
	return result, nil
}

// 📖 FilterReader reads all of content and filters it, checking ctx between passes.
func (r *Replacer) FilterReader(ctx context.Context, content io.Reader) (*Report, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}
	return r.report(ctx, string(data))
}
