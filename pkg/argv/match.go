// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argv

import "strings"

// cursor is a position in the token stream: a token index and a byte offset
// into that token. Matchers take a cursor and return the advanced one.
type cursor struct {
	arg int
	pos int
}

// outcome is the result of offering a token to one option.
type outcome int

const (
	// noMatch means the option does not recognize the text under the
	// cursor; the next option should be tried.
	noMatch outcome = iota
	// matched means the option consumed text and stored its value.
	matched
	// malformed means the option recognized its identifier but the value
	// is unusable. The whole token is invalid.
	malformed
)

// tokens is the argument vector plus the platform rules for reading it.
type tokens struct {
	args []string
	// slash enables '/' as an option prefix and case-insensitive
	// identifier matching.
	slash bool
}

func (ts tokens) at(c cursor) string { return ts.args[c.arg] }

// isOptionLike reports whether s starts with an option prefix character.
func (ts tokens) isOptionLike(s string) bool {
	return s != "" && (s[0] == '-' || (ts.slash && s[0] == '/'))
}

func (ts tokens) equal(a, b string) bool {
	if ts.slash {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func (ts tokens) hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && ts.equal(s[:len(prefix)], prefix)
}

func (ts tokens) sameLetter(c byte, r rune) bool {
	if ts.slash {
		return lower(c) == lower(byte(r))
	}
	return rune(c) == r
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// matchWord offers the text under the cursor to o as a long identifier.
// With exact set only "--word" followed by nothing is considered.
func (o *option) matchWord(ts tokens, c cursor, exact bool) (cursor, outcome) {
	if o.isHeading() || o.long == "" {
		return c, noMatch
	}
	tok := ts.at(c)
	rest := tok[c.pos:]

	if ts.equal(rest, o.long) {
		end := cursor{arg: c.arg, pos: len(tok)}
		if o.tr.Valueless {
			o.setPresent()
			return end, matched
		}
		if next, ok := o.fromNext(ts, end); ok {
			return next, matched
		}
		return c, malformed
	}
	if exact || !ts.hasPrefix(rest, o.long) {
		return c, noMatch
	}

	// The token starts with the word and has more text after it.
	if o.tr.Valueless {
		return c, malformed
	}
	after := rest[len(o.long):]
	assigned := after[0] == '='
	if o.tr.RequiresAssignment && !assigned {
		return c, malformed
	}
	if assigned {
		after = after[1:]
	}
	return o.attach(ts, cursor{arg: c.arg, pos: len(tok) - len(after)}, assigned, true)
}

// matchLetter offers the character under the cursor to o as a short
// identifier. A valueless option leaves the cursor just past its letter so
// the cluster can continue.
func (o *option) matchLetter(ts tokens, c cursor) (cursor, outcome) {
	if o.isHeading() || o.short == 0 {
		return c, noMatch
	}
	tok := ts.at(c)
	if !ts.sameLetter(tok[c.pos], o.short) {
		return c, noMatch
	}
	c.pos++

	if o.tr.Valueless {
		if c.pos < len(tok) && tok[c.pos] == '=' {
			return c, malformed
		}
		o.setPresent()
		return c, matched
	}

	assigned := false
	if c.pos < len(tok) {
		switch {
		case tok[c.pos] == '=':
			assigned = true
			c.pos++
		case o.tr.RequiresAssignment:
			return c, malformed
		}
	}
	return o.attach(ts, c, assigned, false)
}

// attach reads o's value starting at the cursor. When the cursor is at the
// end of its token the value comes from the next token instead. With whole
// set the value must run to the end of the token, and a remainder that
// reads as nothing also defers to the next token.
func (o *option) attach(ts tokens, c cursor, assigned, whole bool) (cursor, outcome) {
	tok := ts.at(c)
	if c.pos < len(tok) {
		text := tok[c.pos:]
		n, commit := o.target.coerce(text)
		switch {
		case n == 0 && whole:
			if next, ok := o.fromNext(ts, c); ok {
				return next, matched
			}
			return c, malformed
		case n == 0, whole && n != len(text):
			return c, malformed
		}
		commit()
		return cursor{arg: c.arg, pos: c.pos + n}, matched
	}
	if next, ok := o.fromNext(ts, c); ok {
		return next, matched
	}
	// "-s=" and "--str=" with no usable next token are empty strings.
	if assigned && o.tr.Kind == KindString {
		_, commit := o.target.coerce("")
		commit()
		return c, matched
	}
	return c, malformed
}

// fromNext takes o's value from the token after the cursor. That token must
// not look like an option and must be consumed entirely.
func (o *option) fromNext(ts tokens, c cursor) (cursor, bool) {
	i := c.arg + 1
	if i >= len(ts.args) {
		return c, false
	}
	next := ts.args[i]
	if ts.isOptionLike(next) {
		return c, false
	}
	n, commit := o.target.coerce(next)
	if n == 0 || n != len(next) {
		return c, false
	}
	commit()
	return cursor{arg: i, pos: len(next)}, true
}

// setPresent stores a valueless option's value.
func (o *option) setPresent() {
	_, commit := o.target.coerce("")
	commit()
}
