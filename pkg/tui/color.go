// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const (
	ColorRed    = color.FgRed
	ColorGreen  = color.FgGreen
	ColorYellow = color.FgYellow
	ColorDim    = color.FgHiBlack
)

// isTerminalFn is swapped in tests.
var isTerminalFn = term.IsTerminal

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && isTerminalFn(int(f.Fd()))
}

type Colorizer struct {
	Enabled bool
}

// NewColorizer returns a Colorizer that colors output only when enabled
// and the environment allows it (NO_COLOR unset, TERM set and not "dumb").
func NewColorizer(enabled bool) Colorizer {
	if !enabled {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	term := os.Getenv("TERM")
	if term == "" || term == "dumb" {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

func (c Colorizer) Wrap(attr color.Attribute, text string) string {
	if !c.Enabled {
		return text
	}
	col := color.New(attr)
	// The global color.NoColor looks at stdout; the caller already decided.
	col.EnableColor()
	return col.Sprint(text)
}

func (c Colorizer) Red(text string) string    { return c.Wrap(ColorRed, text) }
func (c Colorizer) Green(text string) string  { return c.Wrap(ColorGreen, text) }
func (c Colorizer) Yellow(text string) string { return c.Wrap(ColorYellow, text) }
func (c Colorizer) Dim(text string) string    { return c.Wrap(ColorDim, text) }
