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

package filter_test

import (
	"fmt"

	"github.com/walteh/textfilter/pkg/dictionary"
	"github.com/walteh/textfilter/pkg/filter"
)

func ExampleFilter() {
	m := dictionary.MustNew(map[string]string{
		"x":   "A",
		"xy":  "B",
		"cat": "dog",
	})

	fmt.Println(filter.Filter("xy", m))
	fmt.Println(filter.Filter("concatenate", m))

	// Output:
	// B
	// condogenate
}

func ExampleReplacer_Report() {
	r := filter.New(dictionary.MustNew(map[string]string{
		"World": "Universe",
		"Hello": "Hi",
	}))

	report := r.Report("Hello World!")

	fmt.Printf("Original: %s\n", report.Original)
	fmt.Printf("Filtered: %s\n", report.Filtered)
	fmt.Printf("Changes: %d\n", report.ReplacementCount)
	fmt.Printf("Was Modified: %v\n", report.WasModified)

	// Output:
	// Original: Hello World!
	// Filtered: Hi Universe!
	// Changes: 2
	// Was Modified: true
}

func ExampleDiff() {
	fmt.Println(filter.Diff("concatenate", "condogenate"))

	// Output:
	// con[-cat-]{+dog+}enate
}
