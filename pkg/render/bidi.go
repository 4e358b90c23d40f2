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
	"golang.org/x/text/unicode/bidi"
)

const (
	rli = "\u2067" // RIGHT-TO-LEFT ISOLATE
	pdi = "\u2069" // POP DIRECTIONAL ISOLATE
)

// IsRTL reports whether the first strong character of text is right-to-left.
// Text with no strong characters is treated as left-to-right.
func IsRTL(text string) bool {
	for i := 0; i < len(text); {
		props, size := bidi.LookupString(text[i:])
		if size == 0 {
			break
		}
		switch props.Class() {
		case bidi.R, bidi.AL:
			return true
		case bidi.L:
			return false
		}
		i += size
	}
	return false
}

// Isolate wraps right-to-left text in an RLI/PDI pair and returns anything else unchanged.
func Isolate(text string) string {
	if !IsRTL(text) {
		return text
	}
	return rli + text + pdi
}
