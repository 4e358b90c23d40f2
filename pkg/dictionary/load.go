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

package dictionary

import (
	"context"
	_ "embed"
	"io/fs"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

//go:embed default.yaml
var defaultDictionary []byte

// DefaultName is the name the embedded dictionary reports in diagnostics.
const DefaultName = "default.yaml"

// 📦 Default returns the embedded phrase table used when nothing else is configured.
func Default() Map {
	entries, err := (&YAMLParser{}).Parse(context.Background(), DefaultName, defaultDictionary)
	if err != nil {
		panic(errors.Errorf("embedded dictionary: %w", err))
	}
	m, err := FromEntries(entries)
	if err != nil {
		panic(errors.Errorf("embedded dictionary: %w", err))
	}
	return m
}

// 🎯 Load expands each doublestar pattern against fsys, parses every matching file and
// merges the results into one Map.
//
// A phrase defined twice, in one file or across files, is an error, and so is a pattern
// that matches no file.
func Load(ctx context.Context, fsys fs.FS, patterns ...string) (Map, error) {
	logger := zerolog.Ctx(ctx)

	var files []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return Map{}, errors.Errorf("invalid dictionary pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return Map{}, errors.Errorf("expanding pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return Map{}, errors.Errorf("pattern %q matched no dictionary files", pattern)
		}
		slices.Sort(matches)
		for _, match := range matches {
			if !slices.Contains(files, match) {
				files = append(files, match)
			}
		}
	}

	var entries []Entry
	sources := map[string]string{}
	for _, name := range files {
		fileEntries, err := LoadFile(ctx, fsys, name)
		if err != nil {
			return Map{}, err
		}
		for _, e := range fileEntries {
			if prev, ok := sources[e.From]; ok {
				return Map{}, errors.Errorf("phrase %q defined in both %s and %s", e.From, prev, name)
			}
			sources[e.From] = name
		}
		entries = append(entries, fileEntries...)
		logger.Debug().Str("file", name).Int("phrases", len(fileEntries)).Msg("loaded dictionary file")
	}

	m, err := FromEntries(entries)
	if err != nil {
		return Map{}, errors.Errorf("building dictionary: %w", err)
	}
	return m, nil
}

// 📄 LoadFile parses a single dictionary file, rejecting empty phrases.
func LoadFile(ctx context.Context, fsys fs.FS, name string) ([]Entry, error) {
	p := GetParser(name)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", name)
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Errorf("reading dictionary file: %w", err)
	}

	entries, err := p.Parse(ctx, name, data)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if e.From == "" {
			return nil, errors.Errorf("%s: entry %d: phrase is required", name, i)
		}
		if _, ok := seen[e.From]; ok {
			return nil, errors.Errorf("%s: phrase %q defined more than once", name, e.From)
		}
		seen[e.From] = struct{}{}
	}
	return entries, nil
}
