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
	"cmp"
	"slices"
	"sort"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Entry is a single phrase substitution
type Entry struct {
	From string // Literal phrase to find, never empty
	To   string // Replacement, may be empty or equal to From
}

// 📚 Map is an immutable table of phrase substitutions.
//
// A Map is built once and only read afterwards; every accessor returns copies.
// The zero value is an empty table.
type Map struct {
	phrases map[string]string
	order   []string
}

// 🏭 New builds a Map from a plain Go map. The input is copied.
func New(phrases map[string]string) (Map, error) {
	entries := make([]Entry, 0, len(phrases))
	for from, to := range phrases {
		entries = append(entries, Entry{From: from, To: to})
	}
	return FromEntries(entries)
}

// 🏭 MustNew is New for static tables; it panics on an invalid table.
func MustNew(phrases map[string]string) Map {
	m, err := New(phrases)
	if err != nil {
		panic(err)
	}
	return m
}

// 🏭 FromEntries builds a Map from a list of entries, rejecting empty and repeated phrases.
func FromEntries(entries []Entry) (Map, error) {
	m := Map{
		phrases: make(map[string]string, len(entries)),
		order:   make([]string, 0, len(entries)),
	}
	for i, e := range entries {
		if e.From == "" {
			return Map{}, errors.Errorf("entry %d: phrase is required", i)
		}
		if _, ok := m.phrases[e.From]; ok {
			return Map{}, errors.Errorf("entry %d: phrase %q defined more than once", i, e.From)
		}
		m.phrases[e.From] = e.To
		m.order = append(m.order, e.From)
	}
	sortPhrases(m.order)
	return m, nil
}

// 🔗 Merge combines several maps. A phrase present in more than one map is an error.
func Merge(maps ...Map) (Map, error) {
	var entries []Entry
	for _, m := range maps {
		entries = append(entries, m.Entries()...)
	}
	merged, err := FromEntries(entries)
	if err != nil {
		return Map{}, errors.Errorf("merging dictionaries: %w", err)
	}
	return merged, nil
}

// sortPhrases orders phrases longest first, counting runes. Equal lengths fall back to
// byte order so the result never depends on map iteration.
func sortPhrases(phrases []string) {
	slices.SortStableFunc(phrases, func(a, b string) int {
		if c := cmp.Compare(utf8.RuneCountInString(b), utf8.RuneCountInString(a)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}

// Len returns the number of phrases.
func (m Map) Len() int {
	return len(m.order)
}

// Lookup returns the replacement for an exact phrase.
func (m Map) Lookup(phrase string) (string, bool) {
	to, ok := m.phrases[phrase]
	return to, ok
}

// 📋 Entries returns all entries in processing order: longest phrase first.
func (m Map) Entries() []Entry {
	entries := make([]Entry, len(m.order))
	for i, from := range m.order {
		entries[i] = Entry{From: from, To: m.phrases[from]}
	}
	return entries
}

// Phrases returns the source phrases in processing order.
func (m Map) Phrases() []string {
	return slices.Clone(m.order)
}

// 🔍 Search returns the entries whose phrase fuzzily matches query, closest first.
func (m Map) Search(query string) []Entry {
	if query == "" {
		return nil
	}
	ranks := fuzzy.RankFindFold(query, m.order)
	sort.Stable(ranks)

	entries := make([]Entry, 0, len(ranks))
	for _, r := range ranks {
		entries = append(entries, Entry{From: r.Target, To: m.phrases[r.Target]})
	}
	return entries
}
