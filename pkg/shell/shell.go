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

// Package shell holds the interactive state of the filter: the text being typed, its
// filtered form and the transient "copied" flag.
//
// Typing only stores the text and re-arms a debounce timer; the filter runs once the
// input has been quiet for the debounce period. Copying writes the filtered text to a
// clipboard and raises a flag that drops again after a fixed window.
//
// All state lives under one mutex. Each timer callback carries the generation it was
// armed with, so a callback that was already running when its timer was replaced does
// nothing.
package shell

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/textfilter/pkg/clipboard"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultDebounce is the quiet period after the last input change before filtering.
	DefaultDebounce = 200 * time.Millisecond

	// DefaultCopiedWindow is how long the copied flag stays raised after a copy.
	DefaultCopiedWindow = 2 * time.Second
)

// 📊 Phase is the recompute state of the shell
type Phase int

const (
	Idle             Phase = iota // No recompute pending
	PendingRecompute              // Debounce timer armed
)

// String returns a string representation of Phase
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case PendingRecompute:
		return "pending"
	default:
		return "unknown"
	}
}

// 🔄 Filterer turns input text into filtered text. It must be pure.
type Filterer interface {
	Filter(text string) string
}

// 📸 Snapshot is a consistent copy of the shell state
type Snapshot struct {
	Input    string // Raw input as last typed
	Filtered string // Filtered text, current once Phase is Idle
	Copied   bool   // Raised for the copied window after a successful copy
	Phase    Phase  // Recompute state

	// Version increases by one on every state change
	Version uint64
}

// 🔧 Options contains the collaborators of a Shell
type Options struct {
	// Engine filters settled input
	Engine Filterer
	// Clipboard receives copied text
	Clipboard clipboard.Writer
	// Clock arms the debounce and copied timers; defaults to RealClock
	Clock Clock
	// Debounce defaults to DefaultDebounce
	Debounce time.Duration
	// CopiedWindow defaults to DefaultCopiedWindow
	CopiedWindow time.Duration
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// 🎮 Shell owns the input, the filtered output and the copied flag
type Shell struct {
	engine       Filterer
	clip         clipboard.Writer
	clock        Clock
	debounce     time.Duration
	copiedWindow time.Duration
	logger       *zerolog.Logger

	mu       sync.Mutex
	input    string
	filtered string
	copied   bool
	phase    Phase
	version  uint64
	closed   bool

	recompute    Timer
	recomputeGen uint64
	copiedTimer  Timer
	copiedGen    uint64

	subscribers []subscriber
	nextSubID   int

	// notifications run outside mu, one version at a time
	notifyMu sync.Mutex
	notifyCv *sync.Cond
	notified uint64
}

// 🏭 New creates an idle shell with empty input
func New(ctx context.Context, opts Options) (*Shell, error) {
	if opts.Engine == nil {
		return nil, errors.Errorf("engine is required")
	}
	if opts.Clipboard == nil {
		return nil, errors.Errorf("clipboard is required")
	}
	if opts.Debounce < 0 {
		return nil, errors.Errorf("debounce must not be negative: %s", opts.Debounce)
	}
	if opts.CopiedWindow < 0 {
		return nil, errors.Errorf("copied window must not be negative: %s", opts.CopiedWindow)
	}

	s := &Shell{
		engine:       opts.Engine,
		clip:         opts.Clipboard,
		clock:        opts.Clock,
		debounce:     opts.Debounce,
		copiedWindow: opts.CopiedWindow,
		logger:       zerolog.Ctx(ctx),
	}
	if s.clock == nil {
		s.clock = RealClock()
	}
	if s.debounce == 0 {
		s.debounce = DefaultDebounce
	}
	if s.copiedWindow == 0 {
		s.copiedWindow = DefaultCopiedWindow
	}
	s.notifyCv = sync.NewCond(&s.notifyMu)
	return s, nil
}

// 📸 Snapshot returns the current state
func (s *Shell) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Shell) snapshotLocked() Snapshot {
	return Snapshot{
		Input:    s.input,
		Filtered: s.filtered,
		Copied:   s.copied,
		Phase:    s.phase,
		Version:  s.version,
	}
}

// 📢 Subscribe registers fn to receive every state change in order. fn runs outside the
// shell's lock and may call Snapshot, but must not call the actions synchronously.
func (s *Shell) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// commitLocked records a state change and releases mu; subscribers are then told about
// it in version order.
func (s *Shell) commitLocked() {
	s.version++
	snap := s.snapshotLocked()
	subs := make([]subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	for s.notified+1 != snap.Version {
		s.notifyCv.Wait()
	}
	for _, sub := range subs {
		sub.fn(snap)
	}
	s.notified = snap.Version
	s.notifyCv.Broadcast()
}

// ⌨️ OnInputChange stores text immediately and restarts the debounce period
func (s *Shell) OnInputChange(text string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	s.input = text
	s.stopRecomputeLocked()
	gen := s.recomputeGen
	s.recompute = s.clock.AfterFunc(s.debounce, func() {
		s.settle(gen)
	})
	s.phase = PendingRecompute

	s.logger.Trace().Int("length", len(text)).Uint64("generation", gen).Msg("input changed")
	s.commitLocked()
}

// stopRecomputeLocked cancels the armed recompute and invalidates its callback
func (s *Shell) stopRecomputeLocked() {
	if s.recompute != nil {
		s.recompute.Stop()
		s.recompute = nil
	}
	s.recomputeGen++
}

func (s *Shell) settle(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.recomputeGen || s.phase != PendingRecompute {
		s.mu.Unlock()
		return
	}

	s.recompute = nil
	if s.input == "" {
		s.filtered = ""
	} else {
		s.filtered = s.engine.Filter(s.input)
	}
	s.phase = Idle

	s.logger.Debug().Int("input_length", len(s.input)).Int("filtered_length", len(s.filtered)).Msg("input settled")
	s.commitLocked()
}

// 🧹 OnClear empties input and output and cancels any pending recompute
func (s *Shell) OnClear() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	s.stopRecomputeLocked()
	s.input = ""
	s.filtered = ""
	s.phase = Idle

	s.logger.Debug().Msg("cleared")
	s.commitLocked()
}

// 📋 OnCopy writes the filtered text to the clipboard and raises the copied flag for the
// copied window. Empty output is a no-op. A failed write is logged and leaves the flag alone.
func (s *Shell) OnCopy() {
	s.mu.Lock()
	if s.closed || s.filtered == "" {
		s.mu.Unlock()
		return
	}
	text := s.filtered
	s.mu.Unlock()

	if err := s.clip.WriteText(text); err != nil {
		s.logger.Warn().Err(err).Msg("copying filtered text")
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	if s.copiedTimer != nil {
		s.copiedTimer.Stop()
	}
	s.copiedGen++
	gen := s.copiedGen
	s.copiedTimer = s.clock.AfterFunc(s.copiedWindow, func() {
		s.resetCopied(gen)
	})
	s.copied = true

	s.logger.Debug().Int("length", len(text)).Msg("copied filtered text")
	s.commitLocked()
}

func (s *Shell) resetCopied(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.copiedGen || !s.copied {
		s.mu.Unlock()
		return
	}

	s.copiedTimer = nil
	s.copied = false
	s.commitLocked()
}

// 🛑 Close stops both timers and waits until every change made before it has reached the
// subscribers. Actions and timer callbacks after Close are ignored. Close must not be called
// from a subscriber.
func (s *Shell) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.stopRecomputeLocked()
	if s.copiedTimer != nil {
		s.copiedTimer.Stop()
		s.copiedTimer = nil
	}
	s.copiedGen++
	last := s.version
	s.mu.Unlock()

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	for s.notified < last {
		s.notifyCv.Wait()
	}
	return nil
}
