// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package specfile

import (
	"fmt"

	"github.com/yeetrun/argv/pkg/argv"
	"tailscale.com/util/set"
)

// Value is the state of one declaration after a parse.
type Value struct {
	Type     string // e.g. "int", or "[]string" for the list
	Nullable bool
	// Present is false only for nullable declarations that were not given.
	Present bool
	V       any
}

// String formats the value the way argv.Argument does.
func (v Value) String() string {
	if !v.Present {
		return "(blank)"
	}
	return fmt.Sprint(v.V)
}

// Parser is an argv.Arguments whose targets are owned by the parser.
type Parser struct {
	Args *argv.Arguments

	keys  []string
	slots map[string]slot
}

// Build declares everything in d on a new argv.Arguments.
func (d *Definition) Build() (*Parser, error) {
	a := argv.New()
	if d.Slash != nil {
		if err := a.SetSlashOptions(*d.Slash); err != nil {
			return nil, err
		}
	}
	a.SetName(d.Name)
	a.SetHeader(d.Header)
	a.SetFooter(d.Footer)
	if d.Help != nil && !*d.Help {
		a.DisableHelp()
	}
	if err := a.SetVersion(NormalizeVersion(d.Version)); err != nil {
		return nil, err
	}

	p := &Parser{Args: a, slots: make(map[string]slot)}
	seen := make(set.Set[string])
	add := func(key string, s slot) error {
		if seen.Contains(key) {
			return fmt.Errorf("%q is declared more than once", key)
		}
		seen.Add(key)
		p.keys = append(p.keys, key)
		p.slots[key] = s
		return nil
	}

	group := ""
	for i, o := range d.Options {
		if o.Group != group {
			group = o.Group
			if group != "" {
				if err := a.AddGroup(group); err != nil {
					return nil, err
				}
			}
		}
		short, err := o.letter()
		if err != nil {
			return nil, fmt.Errorf("option %d: %w", i+1, err)
		}
		s, err := newSlot(o.Type, o.Nullable, false)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", o.key(), err)
		}
		if err := a.AddOption(short, o.Long, o.Description, s.target()); err != nil {
			return nil, err
		}
		if err := add(o.key(), s); err != nil {
			return nil, err
		}
	}

	for _, r := range d.Required {
		s, err := newSlot(r.Type, r.Nullable, false)
		if err != nil {
			return nil, fmt.Errorf("required %q: %w", r.Name, err)
		}
		if err := a.AddRequired(r.Name, r.Description, s.target()); err != nil {
			return nil, err
		}
		if err := add(r.Name, s); err != nil {
			return nil, err
		}
	}

	if l := d.List; l != nil {
		s, err := newSlot(l.Type, false, true)
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", l.Name, err)
		}
		if err := a.AddList(l.Name, l.Description, s.target()); err != nil {
			return nil, err
		}
		if err := add(l.Name, s); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Parse clears the values from any earlier parse and parses args.
func (p *Parser) Parse(args []string) error {
	for _, s := range p.slots {
		s.reset()
	}
	return p.Args.Parse(args)
}

// Keys returns the value names in declaration order.
func (p *Parser) Keys() []string {
	return append([]string(nil), p.keys...)
}

// Values returns the current value of every declaration.
func (p *Parser) Values() map[string]Value {
	out := make(map[string]Value, len(p.slots))
	for k, s := range p.slots {
		out[k] = s.value()
	}
	return out
}
