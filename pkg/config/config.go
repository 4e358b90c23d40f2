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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/textfilter/pkg/dictionary"
	"github.com/walteh/textfilter/pkg/shell"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/unicode/norm"
)

const (
	// 📄 DefaultFile is looked up when no config file is named explicitly
	DefaultFile = ".textfilter.yaml"

	DefaultDebounce     = shell.DefaultDebounce
	DefaultCopiedWindow = shell.DefaultCopiedWindow
)

// 🔤 normalizationForms maps config names to Unicode normalization forms
var normalizationForms = map[string]norm.Form{
	"NFC":  norm.NFC,
	"NFD":  norm.NFD,
	"NFKC": norm.NFKC,
	"NFKD": norm.NFKD,
}

// 📚 Config represents the complete configuration
type Config struct {
	// Dictionaries are doublestar patterns of dictionary files, relative to the config file
	Dictionaries []string
	// Replacements are phrases defined inline in the config file
	Replacements map[string]string
	// Debounce is the quiet period before the shell filters typed input
	Debounce time.Duration
	// CopiedWindow is how long the shell reports a copy as fresh
	CopiedWindow time.Duration
	// Normalize names a Unicode normalization form applied before matching, or is empty
	Normalize string

	location string
}

// 🏭 Default returns the configuration used when no config file exists
func Default() *Config {
	return &Config{
		Debounce:     DefaultDebounce,
		CopiedWindow: DefaultCopiedWindow,
	}
}

// Location returns the path the config was loaded from, or "" for Default.
func (cfg *Config) Location() string {
	return cfg.location
}

// Dir returns the directory dictionary patterns are resolved against.
func (cfg *Config) Dir() string {
	if cfg.location == "" {
		return "."
	}
	return filepath.Dir(cfg.location)
}

// NormalizationForm returns the configured form; ok is false when normalization is off.
func (cfg *Config) NormalizationForm() (form norm.Form, ok bool) {
	form, ok = normalizationForms[cfg.Normalize]
	return form, ok
}

// 🔍 Validate checks if the configuration is valid
func Validate(ctx context.Context, cfg *Config) error {
	if cfg.Debounce <= 0 {
		return errors.Errorf("debounce must be positive, got %s", cfg.Debounce)
	}
	if cfg.CopiedWindow <= 0 {
		return errors.Errorf("copied_window must be positive, got %s", cfg.CopiedWindow)
	}
	if cfg.Normalize != "" {
		if _, ok := normalizationForms[cfg.Normalize]; !ok {
			return errors.Errorf("normalize must be one of NFC, NFD, NFKC, NFKD, got %q", cfg.Normalize)
		}
	}
	for from := range cfg.Replacements {
		if from == "" {
			return errors.Errorf("replacements: phrase is required")
		}
	}
	for i, pattern := range cfg.Dictionaries {
		if pattern == "" {
			return errors.Errorf("dictionaries[%d]: pattern is required", i)
		}
	}
	return nil
}

// 📖 Dictionary builds the phrase table the config describes: every dictionary pattern
// plus the inline replacements. With neither, the embedded default dictionary is used.
func (cfg *Config) Dictionary(ctx context.Context) (dictionary.Map, error) {
	logger := zerolog.Ctx(ctx)

	if len(cfg.Dictionaries) == 0 && len(cfg.Replacements) == 0 {
		logger.Debug().Msg("no dictionaries configured, using the embedded default")
		return dictionary.Default(), nil
	}

	files, err := dictionary.Load(ctx, os.DirFS(cfg.Dir()), cfg.Dictionaries...)
	if err != nil {
		return dictionary.Map{}, errors.Errorf("loading dictionaries: %w", err)
	}

	inline, err := dictionary.New(cfg.Replacements)
	if err != nil {
		return dictionary.Map{}, errors.Errorf("loading inline replacements: %w", err)
	}

	m, err := dictionary.Merge(files, inline)
	if err != nil {
		return dictionary.Map{}, err
	}
	logger.Debug().Int("phrases", m.Len()).Msg("dictionary ready")
	return m, nil
}

// DictionarySource names where Dictionary reads its phrases from.
func (cfg *Config) DictionarySource() string {
	switch {
	case len(cfg.Dictionaries) == 0 && len(cfg.Replacements) == 0:
		return dictionary.DefaultName
	case len(cfg.Dictionaries) == 0:
		return cfg.location
	default:
		return strings.Join(cfg.Dictionaries, ", ")
	}
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	source := cfg.location
	if source == "" {
		source = "defaults"
	}
	return fmt.Sprintf("%s: %d dictionaries, %d inline, debounce %s, copied %s",
		source, len(cfg.Dictionaries), len(cfg.Replacements), cfg.Debounce, cfg.CopiedWindow)
}
