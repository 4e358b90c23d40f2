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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/textfilter/pkg/dictionary"
	"github.com/walteh/textfilter/pkg/shell"
	"golang.org/x/text/unicode/norm"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid_yaml",
			file: "config.yaml",
			config: `
dictionaries:
  - dicts/**/*.yaml
replacements:
  cat: dog
debounce: 150ms
copied_window: 3s
normalize: nfc
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"dicts/**/*.yaml"}, cfg.Dictionaries, "dictionaries should match")
				assert.Equal(t, map[string]string{"cat": "dog"}, cfg.Replacements, "replacements should match")
				assert.Equal(t, 150*time.Millisecond, cfg.Debounce, "debounce should match")
				assert.Equal(t, 3*time.Second, cfg.CopiedWindow, "copied window should match")
				form, ok := cfg.NormalizationForm()
				assert.True(t, ok, "normalization should be on")
				assert.Equal(t, norm.NFC, form)
			},
		},
		{
			name:   "minimal_yaml",
			file:   "config.yml",
			config: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultDebounce, cfg.Debounce, "debounce should have default value")
				assert.Equal(t, DefaultCopiedWindow, cfg.CopiedWindow, "copied window should have default value")
				assert.Empty(t, cfg.Dictionaries)
				_, ok := cfg.NormalizationForm()
				assert.False(t, ok, "normalization should be off")
			},
		},
		{
			name: "valid_json",
			file: "config.json",
			config: `{
				"dictionaries": ["a.json"],
				"replacements": {"x": "A", "xy": "B"},
				"debounce": "1s"
			}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"a.json"}, cfg.Dictionaries)
				assert.Equal(t, map[string]string{"x": "A", "xy": "B"}, cfg.Replacements)
				assert.Equal(t, time.Second, cfg.Debounce)
				assert.Equal(t, DefaultCopiedWindow, cfg.CopiedWindow)
			},
		},
		{
			name: "valid_hcl",
			file: "config.hcl",
			config: `
dictionaries  = ["dicts/*.hcl"]
copied_window = "500ms"

replacement {
  from = "هاک"
  to   = "ه*ا*ک"
}

replacement {
  from = "cat"
  to   = ""
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"dicts/*.hcl"}, cfg.Dictionaries)
				assert.Equal(t, map[string]string{"هاک": "ه*ا*ک", "cat": ""}, cfg.Replacements)
				assert.Equal(t, 500*time.Millisecond, cfg.CopiedWindow)
				assert.Equal(t, DefaultDebounce, cfg.Debounce)
			},
		},
		{
			name:        "unknown_yaml_field",
			file:        "config.yaml",
			config:      "debounse: 1s\n",
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_json_field",
			file:        "config.json",
			config:      `{"colour": "red"}`,
			errContains: "parsing JSON",
		},
		{
			name:        "duplicate_hcl_phrase",
			file:        "config.hcl",
			config:      "replacement {\n  from = \"a\"\n  to = \"1\"\n}\nreplacement {\n  from = \"a\"\n  to = \"2\"\n}\n",
			errContains: `phrase "a" defined more than once`,
		},
		{
			name:        "invalid_hcl",
			file:        "config.hcl",
			config:      "debounce = ",
			errContains: "parsing HCL",
		},
		{
			name:        "bad_duration",
			file:        "config.yaml",
			config:      "debounce: soon\n",
			errContains: "debounce",
		},
		{
			name:        "zero_duration",
			file:        "config.yaml",
			config:      "copied_window: 0s\n",
			errContains: "copied_window must be positive",
		},
		{
			name:        "negative_duration",
			file:        "config.yaml",
			config:      "debounce: -1s\n",
			errContains: "debounce must be positive",
		},
		{
			name:        "unknown_normalization",
			file:        "config.yaml",
			config:      "normalize: NFX\n",
			errContains: "normalize must be one of",
		},
		{
			name:        "empty_inline_phrase",
			file:        "config.json",
			config:      `{"replacements": {"": "x"}}`,
			errContains: "phrase is required",
		},
		{
			name:        "unsupported_extension",
			file:        "config.toml",
			config:      "debounce = 1",
			errContains: "unsupported file extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.config)

			cfg, err := LoadConfig(context.Background(), path)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, path, cfg.Location())
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, DefaultFile)

	cfg, err := LoadOrDefault(context.Background(), missing, false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg, "missing implicit config falls back to defaults")
	assert.Equal(t, ".", cfg.Dir())

	_, err = LoadOrDefault(context.Background(), missing, true)
	require.Error(t, err, "an explicitly named config must exist")

	path := writeFile(t, dir, DefaultFile, "debounce: 1s\n")
	cfg, err = LoadOrDefault(context.Background(), path, false)
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Debounce)
	assert.Equal(t, dir, cfg.Dir())
}

func TestConfig_Dictionary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dicts/base.yaml", "x: A\n")
	writeFile(t, dir, "dicts/more/extra.json", `{"xy": "B"}`)

	t.Run("files_and_inline", func(t *testing.T) {
		path := writeFile(t, dir, "config.yaml", "dictionaries:\n  - dicts/**/*.*\nreplacements:\n  cat: dog\n")
		cfg, err := LoadConfig(context.Background(), path)
		require.NoError(t, err)

		m, err := cfg.Dictionary(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []dictionary.Entry{
			{From: "cat", To: "dog"},
			{From: "xy", To: "B"},
			{From: "x", To: "A"},
		}, m.Entries())
	})

	t.Run("inline_duplicates_file", func(t *testing.T) {
		path := writeFile(t, dir, "dup.yaml", "dictionaries:\n  - dicts/base.yaml\nreplacements:\n  x: other\n")
		cfg, err := LoadConfig(context.Background(), path)
		require.NoError(t, err)

		_, err = cfg.Dictionary(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), `phrase "x" defined more than once`)
	})

	t.Run("missing_files", func(t *testing.T) {
		path := writeFile(t, dir, "missing.yaml", "dictionaries:\n  - nowhere/*.yaml\n")
		cfg, err := LoadConfig(context.Background(), path)
		require.NoError(t, err)

		_, err = cfg.Dictionary(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading dictionaries")
	})

	t.Run("embedded_default", func(t *testing.T) {
		m, err := Default().Dictionary(context.Background())
		require.NoError(t, err)
		assert.Equal(t, dictionary.Default().Entries(), m.Entries())
	})
}

func TestConfig_DictionarySource(t *testing.T) {
	assert.Equal(t, dictionary.DefaultName, Default().DictionarySource())

	cfg := Default()
	cfg.location = "/etc/textfilter.yaml"
	cfg.Replacements = map[string]string{"a": "b"}
	assert.Equal(t, "/etc/textfilter.yaml", cfg.DictionarySource())

	cfg.Dictionaries = []string{"a.yaml", "words/*.json"}
	assert.Equal(t, "a.yaml, words/*.json", cfg.DictionarySource())
}

func TestDefault_MatchesShellTimings(t *testing.T) {
	cfg := Default()
	assert.Equal(t, shell.DefaultDebounce, cfg.Debounce)
	assert.Equal(t, shell.DefaultCopiedWindow, cfg.CopiedWindow)
	require.NoError(t, Validate(context.Background(), cfg))
}
