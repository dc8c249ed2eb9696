// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argv

import "strings"

// helpColumn is the column where descriptions start.
const helpColumn = 20

// helpSpec is everything renderHelp needs.
type helpSpec struct {
	name     string
	header   string
	footer   string
	help     bool
	version  bool
	slash    bool
	options  []Info
	required []Info
	list     *Info
}

var (
	helpInfo = Info{
		Kind:        DeclOption,
		Short:       '?',
		Long:        "help",
		Description: "display this help and exit",
		Traits:      Traits{Valueless: true},
	}
	versionInfo = Info{
		Kind:        DeclOption,
		Long:        "version",
		Description: "output version information and exit",
		Traits:      Traits{Valueless: true},
	}
)

// renderHelp formats the help text.
func renderHelp(s helpSpec) string {
	var b strings.Builder

	if s.header != "" {
		b.WriteString(s.header)
		b.WriteString("\n\n")
	}

	hasOptions := len(s.options) > 0 || s.help || s.version
	b.WriteString("Usage:")
	if s.name != "" {
		b.WriteString(" " + s.name)
	}
	if hasOptions {
		b.WriteString(" [OPTION...]")
	}
	for _, r := range s.required {
		b.WriteString(" " + r.Name)
	}
	if s.list != nil {
		b.WriteString(" " + s.list.Name + "...")
	}
	b.WriteString("\n")

	if len(s.required) > 0 || s.list != nil {
		b.WriteString("\n")
		for _, r := range s.required {
			writeHelpLine(&b, r.Name, r.Description)
		}
		if s.list != nil {
			writeHelpLine(&b, s.list.Name+"...", s.list.Description)
		}
	}

	if hasOptions {
		b.WriteString("\nOptions:\n")
		groups := 0
		for _, o := range s.options {
			if o.Kind == DeclGroup {
				groups++
				b.WriteString("\n" + o.Name + "\n")
				continue
			}
			writeHelpLine(&b, optionLabel(o, s.slash), o.Description)
		}
		if groups > 0 && (s.help || s.version) {
			b.WriteString("\n")
		}
		if s.help {
			writeHelpLine(&b, optionLabel(helpInfo, s.slash), helpInfo.Description)
		}
		if s.version {
			writeHelpLine(&b, optionLabel(versionInfo, s.slash), versionInfo.Description)
		}
	}

	if s.footer != "" {
		b.WriteString("\n" + s.footer + "\n")
	}
	return b.String()
}

// optionLabel renders "-x, --word=VALUE". Options without a letter are
// indented so that words line up.
func optionLabel(o Info, slash bool) string {
	letterPrefix, wordPrefix := "-", "--"
	if slash {
		letterPrefix, wordPrefix = "/", "/"
	}

	var b strings.Builder
	switch {
	case o.Short != 0 && o.Long != "":
		b.WriteString(letterPrefix + string(o.Short) + ", ")
	case o.Short != 0:
		b.WriteString(letterPrefix + string(o.Short))
	default:
		b.WriteString("    ")
	}
	if o.Long != "" {
		b.WriteString(wordPrefix + o.Long)
		if !o.Traits.Valueless {
			if o.Traits.Numeric {
				b.WriteString("=NUM")
			} else {
				b.WriteString("=VALUE")
			}
		}
	}
	return b.String()
}

func writeHelpLine(b *strings.Builder, label, description string) {
	line := "  " + label
	if description == "" {
		b.WriteString(line + "\n")
		return
	}
	if len(line) < helpColumn {
		line += strings.Repeat(" ", helpColumn-len(line))
	} else {
		line += " "
	}
	b.WriteString(line + description + "\n")
}
