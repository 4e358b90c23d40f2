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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	inputIndent  = 4  // spaces to indent input entries
	sourceWidth  = 35 // Base width for the input name
	countWidth   = 15 // Width for the replacement count
	statusWidth  = 15 // Width for status text
	noChangeText = "no change"
)

// 🎯 FilterOperation describes one filtered input
type FilterOperation struct {
	Source       string // Input name (file path or "stdin")
	Status       string // Operation status
	Replacements int    // Number of replacements made
	IsModified   bool   // Whether the output differs from the input
	Failed       bool   // Whether filtering the input failed
}

// 📦 BatchOperation describes a run over several inputs
type BatchOperation struct {
	Dictionary string // Where the phrase table came from
	Phrases    int    // Number of phrases in the table
	Inputs     int    // Number of inputs in the run
	Async      bool   // Whether inputs are filtered concurrently
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentOp  *BatchOperation
	operations []FilterOperation
}

// 🏭 New creates a logger whose zerolog mirror writes to console as well
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: console, NoColor: true}).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🏭 NewWithZerolog creates a logger that mirrors into an existing zerolog logger
func NewWithZerolog(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFilterOperation formats a filter operation for display
func (l *Logger) formatFilterOperation(op FilterOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.Failed:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.IsModified:
		symbol = '⟳'
		symbolColor = color.FgBlue
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	status := op.Status
	if status == "" {
		status = noChangeText
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", inputIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", sourceWidth, op.Source),
		color.New(color.FgYellow).Sprint(fmt.Sprintf("%-*s", countWidth, fmt.Sprintf("%d replaced", op.Replacements))),
		fmt.Sprintf("%-*s", statusWidth, status))
}

// 📝 LogFilterOperation logs the outcome of filtering one input
func (l *Logger) LogFilterOperation(ctx context.Context, op FilterOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatFilterOperation(op))

	l.zlog.Info().
		Str("source", op.Source).
		Str("status", op.Status).
		Int("replacements", op.Replacements).
		Bool("is_modified", op.IsModified).
		Bool("failed", op.Failed).
		Msg("filter operation")
}

// 📝 StartBatchOperation starts a new batch operation
func (l *Logger) StartBatchOperation(ctx context.Context, op BatchOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.operations = nil

	fmt.Fprintf(l.console, "[filtering %s]\n",
		color.New(color.FgCyan).Sprint(fmt.Sprintf("%d inputs", op.Inputs)))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Dictionary),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(fmt.Sprintf("%d phrases", op.Phrases)))

	l.zlog.Info().
		Str("dictionary", op.Dictionary).
		Int("phrases", op.Phrases).
		Int("inputs", op.Inputs).
		Bool("async", op.Async).
		Msg("starting batch operation")
}

// 📝 EndBatchOperation ends the current batch operation and returns the number of modified inputs
func (l *Logger) EndBatchOperation(ctx context.Context) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return 0
	}

	modified := 0
	for _, op := range l.operations {
		if op.IsModified {
			modified++
		}
	}

	l.zlog.Info().
		Int("inputs", len(l.operations)).
		Int("modified", modified).
		Msg("batch operation complete")

	l.currentOp = nil
	l.operations = nil
	return modified
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("textfilter")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
