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
	"strings"

	"github.com/pterm/pterm"
)

// 🏷️ Labels are the user-facing strings of the shell
type Labels struct {
	InputTitle  string
	OutputTitle string
	Placeholder string // shown when there is no filtered text
	Clear       string
	Copy        string
	Copied      string // copy button while the copied flag is set
}

// DefaultLabels returns the Kurdish labels.
func DefaultLabels() Labels {
	return Labels{
		InputTitle:  "input",
		OutputTitle: "filtered",
		Placeholder: "...ئەنجامی فلتەرکراو لێرە دەردەکەوێت",
		Clear:       "سڕینەوە",
		Copy:        "کۆپیکردن",
		Copied:      "کۆپیکرا!",
	}
}

// Formatter defines how the panes and buttons are formatted
type Formatter interface {
	// FormatPane formats a titled text pane; placeholder is shown when text is empty
	FormatPane(title, text, placeholder string) string

	// FormatButtons formats the clear and copy buttons
	FormatButtons(copied bool) string
}

// PlainFormatter formats frames as unstyled text
type PlainFormatter struct {
	labels Labels
}

// NewPlainFormatter creates a new PlainFormatter
func NewPlainFormatter(labels Labels) *PlainFormatter {
	return &PlainFormatter{labels: labels}
}

// FormatPane formats a pane as a title rule followed by the text
func (f *PlainFormatter) FormatPane(title, text, placeholder string) string {
	body := Isolate(text)
	if text == "" {
		body = Isolate(placeholder)
	}
	return fmt.Sprintf("── %s ──\n%s", title, body)
}

// FormatButtons formats both buttons on one line
func (f *PlainFormatter) FormatButtons(copied bool) string {
	return fmt.Sprintf("[ %s ]  [ %s ]", Isolate(f.labels.Clear), Isolate(copyLabel(f.labels, copied)))
}

// 🎨 StyledFormatter formats frames with pterm boxes and colors
type StyledFormatter struct {
	labels Labels
}

// NewStyledFormatter creates a new StyledFormatter
func NewStyledFormatter(labels Labels) *StyledFormatter {
	return &StyledFormatter{labels: labels}
}

// FormatPane formats a pane as a titled box; the placeholder is grayed out
func (f *StyledFormatter) FormatPane(title, text, placeholder string) string {
	body := Isolate(text)
	if text == "" {
		body = pterm.Gray(Isolate(placeholder))
	}
	return pterm.DefaultBox.WithTitle(title).Sprint(body)
}

// FormatButtons formats both buttons; the copy button turns green while copied
func (f *StyledFormatter) FormatButtons(copied bool) string {
	clr := pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint(" " + Isolate(f.labels.Clear) + " ")

	copyStyle := pterm.NewStyle(pterm.FgCyan, pterm.Bold)
	if copied {
		copyStyle = pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	}
	cp := copyStyle.Sprint(" " + Isolate(copyLabel(f.labels, copied)) + " ")

	return strings.Join([]string{"[" + clr + "]", "[" + cp + "]"}, "  ")
}

func copyLabel(labels Labels, copied bool) string {
	if copied {
		return labels.Copied
	}
	return labels.Copy
}
