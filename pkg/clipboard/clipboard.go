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

// Package clipboard writes filtered text to a clipboard.
package clipboard

import (
	"sync"

	atotto "github.com/atotto/clipboard"
	"gitlab.com/tozd/go/errors"
)

// ErrUnsupported is returned when no system clipboard utility is available.
var ErrUnsupported = errors.Base("system clipboard is not supported on this machine")

// ✍️ Writer is the single clipboard operation the shell needs
type Writer interface {
	WriteText(text string) error
}

// 📋 System writes to the operating system clipboard
type System struct{}

// 🏭 NewSystem returns the system clipboard, or ErrUnsupported when the platform has no
// clipboard utility (for example a headless Linux box without xclip, xsel or wl-copy).
func NewSystem() (*System, error) {
	if atotto.Unsupported {
		return nil, errors.WithStack(ErrUnsupported)
	}
	return &System{}, nil
}

func (s *System) WriteText(text string) error {
	if err := atotto.WriteAll(text); err != nil {
		return errors.Errorf("writing to system clipboard: %w", err)
	}
	return nil
}

// 🧠 Memory keeps the last written text in process. It stands in for the system
// clipboard when none is available.
type Memory struct {
	mu     sync.Mutex
	text   string
	writes int
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	m.writes++
	return nil
}

// Text returns the last written text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Writes returns how many times WriteText was called.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// 🎯 Open returns the system clipboard, falling back to an in-memory one when the system
// clipboard is unsupported or disabled. The bool reports whether the fallback was used.
func Open(disableSystem bool) (Writer, bool) {
	if !disableSystem {
		if sys, err := NewSystem(); err == nil {
			return sys, false
		}
	}
	return NewMemory(), true
}
