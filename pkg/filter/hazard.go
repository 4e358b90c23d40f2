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

package filter

import (
	"strings"

	"github.com/walteh/textfilter/pkg/dictionary"
)

// ⚠️ Hazard is a replacement that a later, shorter phrase will match again
type Hazard struct {
	Phrase      string // Phrase whose replacement is affected
	Replacement string // Replacement text produced by Phrase
	Rematched   string // Later phrase found inside Replacement
}

// Hazards lists every replacement that contains a phrase processed after it.
//
// Filtering still re-matches these; the list exists so dictionary authors can see it.
func Hazards(m dictionary.Map) []Hazard {
	entries := m.Entries()

	var hazards []Hazard
	for i, e := range entries {
		for _, later := range entries[i+1:] {
			if strings.Contains(e.To, later.From) {
				hazards = append(hazards, Hazard{
					Phrase:      e.From,
					Replacement: e.To,
					Rematched:   later.From,
				})
			}
		}
	}
	return hazards
}
