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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/walteh/textfilter/pkg/dictionary"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML and JSON schema
type fileConfig struct {
	Dictionaries []string          `json:"dictionaries" yaml:"dictionaries"`
	Replacements map[string]string `json:"replacements" yaml:"replacements"`
	Debounce     string            `json:"debounce" yaml:"debounce"`
	CopiedWindow string            `json:"copied_window" yaml:"copied_window"`
	Normalize    string            `json:"normalize" yaml:"normalize"`
}

// hclConfig is the HCL schema
type hclConfig struct {
	Dictionaries []string                    `hcl:"dictionaries,optional"`
	Debounce     string                      `hcl:"debounce,optional"`
	CopiedWindow string                      `hcl:"copied_window,optional"`
	Normalize    string                      `hcl:"normalize,optional"`
	Replacements []dictionary.HCLReplacement `hcl:"replacement,block"`
}

// LoadConfig loads a configuration file from the given path.
// The format is determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
func LoadConfig(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	var raw *fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		raw, err = loadJSON(data)
	case ".yaml", ".yml":
		raw, err = loadYAML(data)
	case ".hcl":
		raw, err = loadHCL(data, path)
	default:
		return nil, errors.Errorf("unsupported file extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	cfg, err := raw.toConfig()
	if err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	cfg.location = path

	if err := Validate(ctx, cfg); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// 🎯 LoadOrDefault loads path, or returns Default when path does not exist and was not
// named explicitly by the user.
func LoadOrDefault(ctx context.Context, path string, explicit bool) (*Config, error) {
	if _, err := os.Stat(path); err != nil && !explicit && errors.Is(err, os.ErrNotExist) {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using defaults")
		return Default(), nil
	}
	return LoadConfig(ctx, path)
}

func (raw *fileConfig) toConfig() (*Config, error) {
	cfg := Default()
	cfg.Dictionaries = raw.Dictionaries
	cfg.Replacements = raw.Replacements
	cfg.Normalize = strings.ToUpper(raw.Normalize)

	var err error
	if raw.Debounce != "" {
		if cfg.Debounce, err = time.ParseDuration(raw.Debounce); err != nil {
			return nil, errors.Errorf("debounce: %w", err)
		}
	}
	if raw.CopiedWindow != "" {
		if cfg.CopiedWindow, err = time.ParseDuration(raw.CopiedWindow); err != nil {
			return nil, errors.Errorf("copied_window: %w", err)
		}
	}
	return cfg, nil
}

// loadJSON loads a configuration from JSON data
func loadJSON(data []byte) (*fileConfig, error) {
	var cfg fileConfig
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &cfg, nil
}

// loadYAML loads a configuration from YAML data
func loadYAML(data []byte) (*fileConfig, error) {
	var cfg fileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}

// loadHCL loads a configuration from HCL data
func loadHCL(data []byte, filename string) (*fileConfig, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	ctx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var cfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, ctx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	raw := &fileConfig{
		Dictionaries: cfg.Dictionaries,
		Debounce:     cfg.Debounce,
		CopiedWindow: cfg.CopiedWindow,
		Normalize:    cfg.Normalize,
	}
	if len(cfg.Replacements) > 0 {
		raw.Replacements = make(map[string]string, len(cfg.Replacements))
		for _, r := range cfg.Replacements {
			if _, ok := raw.Replacements[r.From]; ok {
				return nil, errors.Errorf("decoding HCL: phrase %q defined more than once", r.From)
			}
			raw.Replacements[r.From] = r.To
		}
	}
	return raw, nil
}
