// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

var DefaultFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner redraws a single status line until stopped. It is meant for
// terminals; the line is cleared on Stop.
type Spinner struct {
	out        io.Writer
	frames     []string
	interval   time.Duration
	color      Colorizer
	frameColor color.Attribute

	mu      sync.Mutex
	msg     string
	idx     int
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

type SpinnerOption func(*Spinner)

func WithFrames(frames []string) SpinnerOption {
	return func(s *Spinner) {
		if len(frames) > 0 {
			s.frames = frames
		}
	}
}

func WithInterval(d time.Duration) SpinnerOption {
	return func(s *Spinner) {
		if d > 0 {
			s.interval = d
		}
	}
}

func WithColor(colorizer Colorizer, frameColor color.Attribute) SpinnerOption {
	return func(s *Spinner) {
		s.color = colorizer
		s.frameColor = frameColor
	}
}

func NewSpinner(out io.Writer, opts ...SpinnerOption) *Spinner {
	s := &Spinner{
		out:        out,
		frames:     DefaultFrames,
		interval:   120 * time.Millisecond,
		frameColor: ColorYellow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Spinner) Start(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msg = msg
	if s.running {
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.renderLocked()
	go s.loop(s.stopCh, s.doneCh)
}

// Update replaces the message; it is a no-op when the spinner is stopped.
func (s *Spinner) Update(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msg = msg
	if s.running {
		s.renderLocked()
	}
}

// Progress is an Update with a "msg done/total" message.
func (s *Spinner) Progress(msg string, done, total int) {
	s.Update(fmt.Sprintf("%s %d/%d", msg, done, total))
}

func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stopCh, doneCh := s.stopCh, s.doneCh
	s.mu.Unlock()

	close(stopCh)
	<-doneCh
	fmt.Fprint(s.out, "\r\033[K")
}

func (s *Spinner) loop(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			if s.running {
				s.idx = (s.idx + 1) % len(s.frames)
				s.renderLocked()
			}
			s.mu.Unlock()
		case <-stopCh:
			return
		}
	}
}

func (s *Spinner) renderLocked() {
	line := s.color.Wrap(s.frameColor, s.frames[s.idx%len(s.frames)])
	if s.msg != "" {
		line += " " + s.msg
	}
	fmt.Fprintf(s.out, "\r\033[K%s", line)
}
