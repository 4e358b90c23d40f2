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

/*
Package render draws the shell state in a terminal.

	+-----------------------------+
	| input                       |
	+-----------------------------+
	+-----------------------------+
	| filtered (or placeholder)   |
	+-----------------------------+
	[ clear ]  [ copy | copied ]

Right-to-left text is wrapped in Unicode isolates (RLI ... PDI) so that it keeps
its direction when printed next to left-to-right frame characters.

The Formatter decides how each element looks; the Renderer writes one frame per
snapshot. Styling can be turned off, which makes frames plain text.
*/
package render
