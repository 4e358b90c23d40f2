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
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_filter_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFilterOperation(context.Background(), FilterOperation{
					Source:       "notes.txt",
					Status:       "modified",
					Replacements: 2,
					IsModified:   true,
				})
			},
			wantLogs: []string{
				"⟳ notes.txt                           2 replaced      modified",
			},
		},
		{
			name: "log_batch_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.StartBatchOperation(context.Background(), BatchOperation{
					Dictionary: "default.yaml",
					Phrases:    8,
					Inputs:     3,
				})
			},
			wantLogs: []string{
				"[filtering 3 inputs]",
				"◆ default.yaml • 8 phrases",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("filtering text")
			},
			wantLogs: []string{
				"textfilter • filtering text",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewWithZerolog(buf, zerolog.Nop())

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.InfoLevel)

	ctx := NewContext(context.Background(), logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestFilterOperationFormatting(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   FilterOperation
		want string
	}{
		{
			name: "modified_input",
			op: FilterOperation{
				Source:       "notes.txt",
				Status:       "modified",
				Replacements: 2,
				IsModified:   true,
			},
			want: "    ⟳ notes.txt                           2 replaced      modified       ",
		},
		{
			name: "unchanged_input_default_status",
			op: FilterOperation{
				Source: "stdin",
			},
			want: "    • stdin                               0 replaced      no change      ",
		},
		{
			name: "failed_input",
			op: FilterOperation{
				Source: "missing.txt",
				Status: "failed",
				Failed: true,
			},
			want: "    ✗ missing.txt                         0 replaced      failed         ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewWithZerolog(buf, zerolog.Nop())

			logger.LogFilterOperation(context.Background(), tt.op)

			assert.Equal(t, tt.want, strings.TrimSuffix(buf.String(), "\n"), "formatted output should match")
		})
	}
}

func TestEndBatchOperation(t *testing.T) {
	logger := NewWithZerolog(io.Discard, zerolog.Nop())
	ctx := context.Background()

	assert.Equal(t, 0, logger.EndBatchOperation(ctx), "no batch in progress")

	logger.StartBatchOperation(ctx, BatchOperation{Inputs: 3})
	logger.LogFilterOperation(ctx, FilterOperation{Source: "a", IsModified: true})
	logger.LogFilterOperation(ctx, FilterOperation{Source: "b"})
	logger.LogFilterOperation(ctx, FilterOperation{Source: "c", IsModified: true})

	assert.Equal(t, 2, logger.EndBatchOperation(ctx))
	assert.Equal(t, 0, logger.EndBatchOperation(ctx), "batch already ended")
}

func TestNew_WritesToConsole(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	buf := &bytes.Buffer{}
	logger := New(buf, zerolog.ErrorLevel)

	logger.Warning("below level")
	logger.Errorf("command %s failed", "filter")

	output := buf.String()
	assert.Contains(t, output, "⚠️  below level")
	assert.Contains(t, output, "❌ command filter failed")
	assert.Equal(t, 1, strings.Count(output, "below level"), "zerolog mirror drops messages under its level")
	assert.Equal(t, 2, strings.Count(output, "command filter failed"), "console line plus zerolog mirror")
}
