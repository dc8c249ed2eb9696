// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argv

// DeclKind identifies the kind of a declaration.
type DeclKind int

const (
	DeclOption DeclKind = iota
	DeclRequired
	DeclList
	DeclGroup
)

// Info describes a declaration. It is what help rendering and tooling see.
type Info struct {
	Kind        DeclKind
	Short       rune   // Option only; 0 when absent
	Long        string // Option only; "" when absent
	Name        string // Required and List name, or Group title
	Description string
	Traits      Traits
}

// option is a named, optional argument. A heading is an option with no
// identifiers and no target; it only shows up in help.
type option struct {
	short       rune
	long        string
	description string
	heading     string
	target      Target
	tr          Traits
}

func (o *option) isHeading() bool { return o.target == nil }

func (o *option) info() Info {
	if o.isHeading() {
		return Info{Kind: DeclGroup, Name: o.heading}
	}
	return Info{
		Kind:        DeclOption,
		Short:       o.short,
		Long:        o.long,
		Description: o.description,
		Traits:      o.tr,
	}
}

// positional is a Required or List declaration. Both take a whole token.
type positional struct {
	kind        DeclKind
	name        string
	description string
	target      Target
	tr          Traits
}

func (p *positional) info() Info {
	return Info{
		Kind:        p.kind,
		Name:        p.name,
		Description: p.description,
		Traits:      p.tr,
	}
}

// consume coerces tok into the target. The whole token must be consumed.
func (p *positional) consume(tok string) bool {
	n, commit := p.target.coerce(tok)
	if n == 0 || n != len(tok) {
		return false
	}
	commit()
	return true
}

func validLetter(r rune) bool {
	return r < 0x80 && isAlnum(byte(r))
}

func validWord(w string) bool {
	if len(w) < 2 {
		return false
	}
	for i := 0; i < len(w); i++ {
		if !isAlnum(w[i]) {
			return false
		}
	}
	return true
}
