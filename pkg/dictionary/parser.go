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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser decodes one dictionary file into entries, in file order
type Parser interface {
	// 📝 Parse decodes the file contents; name is used in diagnostics
	Parse(ctx context.Context, name string, data []byte) ([]Entry, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

func hasExt(filename string, exts ...string) bool {
	ext := strings.ToLower(path.Ext(filename))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// 🔧 YAMLParser reads a flat phrase: replacement mapping
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return hasExt(filename, ".yaml", ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, name string, data []byte) ([]Entry, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, errors.Errorf("parsing YAML %s: %w", name, err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.Errorf("parsing YAML %s: line %d: expected a mapping of phrases", name, root.Line)
	}

	entries := make([]Entry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode || value.Kind != yaml.ScalarNode {
			return nil, errors.Errorf("parsing YAML %s: line %d: phrases and replacements must be strings", name, key.Line)
		}
		var to string
		if err := value.Decode(&to); err != nil {
			return nil, errors.Errorf("parsing YAML %s: line %d: %w", name, value.Line, err)
		}
		entries = append(entries, Entry{From: key.Value, To: to})
	}
	return entries, nil
}

// 🔧 JSONParser reads a flat {"phrase": "replacement"} object
type JSONParser struct{}

func init() {
	Register(&JSONParser{})
}

func (p *JSONParser) CanParse(filename string) bool {
	return hasExt(filename, ".json")
}

func (p *JSONParser) Parse(ctx context.Context, name string, data []byte) ([]Entry, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))

	// decode token by token so repeated keys are kept instead of silently overwritten
	tok, err := decoder.Token()
	if err != nil {
		return nil, errors.Errorf("parsing JSON %s: %w", name, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.Errorf("parsing JSON %s: expected an object of phrases", name)
	}

	var entries []Entry
	for decoder.More() {
		tok, err := decoder.Token()
		if err != nil {
			return nil, errors.Errorf("parsing JSON %s: %w", name, err)
		}
		from, ok := tok.(string)
		if !ok {
			return nil, errors.Errorf("parsing JSON %s: expected a phrase key", name)
		}
		var to string
		if err := decoder.Decode(&to); err != nil {
			return nil, errors.Errorf("parsing JSON %s: phrase %q: %w", name, from, err)
		}
		entries = append(entries, Entry{From: from, To: to})
	}

	if _, err := decoder.Token(); err != nil {
		return nil, errors.Errorf("parsing JSON %s: %w", name, err)
	}
	return entries, nil
}

// 🔧 HCLParser reads replacement blocks:
//
//	replacement {
//	  from = "phrase"
//	  to   = "replacement"
//	}
type HCLParser struct{}

func init() {
	Register(&HCLParser{})
}

func (p *HCLParser) CanParse(filename string) bool {
	return hasExt(filename, ".hcl")
}

// HCLReplacement is the HCL schema of one replacement block, shared with the config file.
type HCLReplacement struct {
	From string `hcl:"from"`
	To   string `hcl:"to"`
}

func (p *HCLParser) Parse(ctx context.Context, name string, data []byte) ([]Entry, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, name)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var body struct {
		Replacements []HCLReplacement `hcl:"replacement,block"`
	}
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &body)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	entries := make([]Entry, 0, len(body.Replacements))
	for _, r := range body.Replacements {
		entries = append(entries, Entry{From: r.From, To: r.To})
	}
	return entries, nil
}
