// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argv

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"tailscale.com/util/set"
)

// Help and version tokens.
const (
	helpLetter    = "-?"
	helpWord      = "--help"
	versionWord   = "--version"
	slashHelp     = "/?"
	slashHelpWord = "/help"
	slashVersion  = "/version"
)

// Arguments is a set of declarations and the parser that applies them to an
// argument vector. Declarations must be complete before Parse is called.
// An Arguments value must not be used by concurrent Parse calls.
type Arguments struct {
	name        string
	version     string
	header      string
	footer      string
	helpEnabled bool
	slash       bool

	stdout io.Writer
	stderr io.Writer

	options  []*option
	required []*positional
	list     *positional
}

// New returns an empty Arguments with help enabled. Slash-prefixed options
// are recognized on Windows only.
func New() *Arguments {
	return &Arguments{
		helpEnabled: true,
		slash:       runtime.GOOS == "windows",
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}
}

// SetName sets the program name shown in the usage line.
func (a *Arguments) SetName(name string) { a.name = name }

// Name returns the program name set with SetName.
func (a *Arguments) Name() string { return a.name }

// SetHeader sets text printed before the usage line.
func (a *Arguments) SetHeader(header string) { a.header = header }

// SetFooter sets text printed at the end of the help.
func (a *Arguments) SetFooter(footer string) { a.footer = footer }

// SetVersion sets the version string and enables --version.
func (a *Arguments) SetVersion(version string) error {
	if version != "" && a.hasLong("version") {
		return configErrorf("SetVersion", ErrReserved, "option --version is already declared")
	}
	a.version = version
	return nil
}

// DisableHelp turns off the -? and --help options.
func (a *Arguments) DisableHelp() { a.helpEnabled = false }

// SetSlashOptions overrides the platform default for '/' prefixed options
// and case-insensitive matching.
func (a *Arguments) SetSlashOptions(enabled bool) error {
	prev := a.slash
	a.slash = enabled
	if err := a.checkUnique("SetSlashOptions", 0, ""); err != nil {
		a.slash = prev
		return err
	}
	return nil
}

// SetOutput sets where help and version text (stdout) and errors reported
// by Report (stderr) are written. Nil leaves the current writer in place.
func (a *Arguments) SetOutput(stdout, stderr io.Writer) {
	if stdout != nil {
		a.stdout = stdout
	}
	if stderr != nil {
		a.stderr = stderr
	}
}

// AddOption declares an option with a short letter, a long word, or both.
// Pass 0 or "" to omit one of them.
func (a *Arguments) AddOption(short rune, long, description string, t Target) error {
	const op = "AddOption"
	if short == 0 && long == "" {
		return configErrorf(op, ErrInvalidIdentifier, "option needs a letter or a word")
	}
	if short != 0 && !validLetter(short) {
		return configErrorf(op, ErrInvalidIdentifier, "option is not alphanumeric: %q", short)
	}
	if long != "" && !validWord(long) {
		if len(long) < 2 {
			return configErrorf(op, ErrInvalidIdentifier, "option's length must be two or more characters: %s", long)
		}
		return configErrorf(op, ErrInvalidIdentifier, "option contains a non-alphanumeric character: %s", long)
	}
	if t == nil {
		return configErrorf(op, ErrDisallowedType, "option %s has no target", optionName(short, long))
	}
	tr := t.traits()
	if tr.Container {
		return configErrorf(op, ErrDisallowedType, "option %s cannot target a list", optionName(short, long))
	}
	if long != "" {
		if a.helpEnabled && a.fold(long) == "help" {
			return configErrorf(op, ErrReserved, "--help is reserved while help is enabled")
		}
		if a.version != "" && a.fold(long) == "version" {
			return configErrorf(op, ErrReserved, "--version is reserved while a version is set")
		}
	}
	if err := a.checkUnique(op, short, long); err != nil {
		return err
	}
	a.options = append(a.options, &option{
		short:       short,
		long:        long,
		description: description,
		target:      t,
		tr:          tr,
	})
	return nil
}

// AddGroup starts a new group of options under title in the help output.
func (a *Arguments) AddGroup(title string) error {
	if title == "" {
		return configErrorf("AddGroup", ErrInvalidIdentifier, "group must have a title")
	}
	a.options = append(a.options, &option{heading: title})
	return nil
}

// AddRequired declares the next positional argument. Bool and list targets
// are not allowed.
func (a *Arguments) AddRequired(name, description string, t Target) error {
	const op = "AddRequired"
	if name == "" {
		return configErrorf(op, ErrInvalidIdentifier, "required argument must have a name")
	}
	if t == nil {
		return configErrorf(op, ErrDisallowedType, "required argument %s has no target", name)
	}
	tr := t.traits()
	if tr.Valueless || tr.Container {
		return configErrorf(op, ErrDisallowedType, "disallowed type of required argument: %s", name)
	}
	a.required = append(a.required, &positional{
		kind:        DeclRequired,
		name:        name,
		description: description,
		target:      t,
		tr:          tr,
	})
	return nil
}

// AddList declares the list argument, which collects every positional token
// left once all required arguments are filled. The target must come from
// List.
func (a *Arguments) AddList(name, description string, t Target) error {
	const op = "AddList"
	if a.list != nil {
		return &ConfigError{Op: op, Err: ErrMultipleLists}
	}
	if name == "" {
		return configErrorf(op, ErrInvalidIdentifier, "list argument must have a name")
	}
	if t == nil {
		return configErrorf(op, ErrDisallowedType, "list argument %s has no target", name)
	}
	tr := t.traits()
	if !tr.Container || tr.Valueless {
		return configErrorf(op, ErrDisallowedType, "disallowed type of list argument: %s", name)
	}
	a.list = &positional{
		kind:        DeclList,
		name:        name,
		description: description,
		target:      t,
		tr:          tr,
	}
	return nil
}

// Options returns the declared options and group headings, in order.
func (a *Arguments) Options() []Info {
	out := make([]Info, 0, len(a.options))
	for _, o := range a.options {
		out = append(out, o.info())
	}
	return out
}

// Required returns the declared required arguments, in order.
func (a *Arguments) Required() []Info {
	out := make([]Info, 0, len(a.required))
	for _, r := range a.required {
		out = append(out, r.info())
	}
	return out
}

// ListDecl returns the list declaration, if any.
func (a *Arguments) ListDecl() (Info, bool) {
	if a.list == nil {
		return Info{}, false
	}
	return a.list.info(), true
}

// Parse applies the declarations to args, which must not include the
// program name. It returns nil on success, ErrShown when help or version
// text was written, a *ParseError when args are rejected, or a
// *ConfigError when nothing was declared.
//
// Parsing stops at the first error. Values stored before the error are
// left in place.
func (a *Arguments) Parse(args []string) error {
	if len(a.options) == 0 && len(a.required) == 0 && a.list == nil {
		return &ConfigError{Op: "Parse", Err: ErrNoDeclarations}
	}
	if a.showHelpOrVersion(args) {
		return ErrShown
	}

	ts := tokens{args: args, slash: a.slash}
	nextRequired := 0

	for i := 0; i < len(args); i++ {
		tok := args[i]
		if tok == "" {
			continue
		}
		// A lone "-" is positional.
		if len(tok) > 1 && ts.isOptionLike(tok) {
			last, ok := a.processOptions(ts, i)
			if !ok {
				return invalidArgument(tok)
			}
			i = last
			continue
		}

		switch {
		case nextRequired < len(a.required):
			if !a.required[nextRequired].consume(tok) {
				return invalidArgument(tok)
			}
			nextRequired++
		case a.list != nil:
			if !a.list.consume(tok) {
				return invalidArgument(tok)
			}
		default:
			return invalidArgument(tok)
		}
	}

	if nextRequired < len(a.required) {
		return &ParseError{Kind: MissingArgument, Arg: a.required[nextRequired].name}
	}
	return nil
}

// Process parses args and reports success along with the error text. The
// text is empty on success and when help or version was displayed.
func (a *Arguments) Process(args []string) (bool, string) {
	err := a.Parse(args)
	switch {
	case err == nil:
		return true, ""
	case errors.Is(err, ErrShown):
		return false, ""
	default:
		return false, err.Error()
	}
}

// Report is like Process but writes any error text to the error writer.
func (a *Arguments) Report(args []string) bool {
	ok, msg := a.Process(args)
	if !ok && msg != "" {
		fmt.Fprintln(a.stderr, msg)
	}
	return ok
}

// Help returns the help text.
func (a *Arguments) Help() string {
	return renderHelp(a.helpSpec())
}

// processOptions handles the option token at index i. It returns the index
// of the last token consumed, which is past i when a value was taken from
// the following token.
func (a *Arguments) processOptions(ts tokens, i int) (int, bool) {
	tok := ts.args[i]
	if tok[0] == '/' {
		// "/word" and "/letters" share a prefix; words are tried first.
		if last, out := a.processWord(ts, cursor{arg: i, pos: 1}); out == matched {
			return last, true
		}
		return a.processLetters(ts, cursor{arg: i, pos: 1})
	}
	if strings.HasPrefix(tok, "--") {
		last, out := a.processWord(ts, cursor{arg: i, pos: 2})
		return last, out == matched
	}
	return a.processLetters(ts, cursor{arg: i, pos: 1})
}

// processWord offers a long-form token to every option. An exact
// identifier match takes priority over the assignment forms, which are then
// tried in declaration order.
func (a *Arguments) processWord(ts tokens, c cursor) (int, outcome) {
	for _, exact := range []bool{true, false} {
		for _, o := range a.options {
			next, out := o.matchWord(ts, c, exact)
			if out != noMatch {
				return next.arg, out
			}
		}
	}
	return c.arg, noMatch
}

// processLetters walks a cluster of short options. It stops at the end of
// the token, when no option accepts the current letter, or when an option
// took its value from the next token.
func (a *Arguments) processLetters(ts tokens, c cursor) (int, bool) {
	start := c.arg
	tok := ts.args[start]
	for c.arg == start && c.pos < len(tok) {
		advanced := false
		for _, o := range a.options {
			next, out := o.matchLetter(ts, c)
			if out == malformed {
				return start, false
			}
			if out == matched {
				c = next
				advanced = true
				break
			}
		}
		if !advanced {
			return start, false
		}
	}
	return c.arg, c.pos == len(ts.at(c))
}

// showHelpOrVersion scans args for help and version tokens and writes the
// matching text. It reports whether anything was written.
func (a *Arguments) showHelpOrVersion(args []string) bool {
	if !a.helpEnabled && a.version == "" {
		return false
	}
	ts := tokens{slash: a.slash}
	for _, arg := range args {
		if a.helpEnabled && a.isHelpToken(ts, arg) {
			fmt.Fprint(a.stdout, a.Help())
			return true
		}
		if a.version != "" && a.isVersionToken(ts, arg) {
			fmt.Fprintln(a.stdout, a.version)
			return true
		}
	}
	return false
}

func (a *Arguments) isHelpToken(ts tokens, arg string) bool {
	if ts.equal(arg, helpLetter) || ts.equal(arg, helpWord) {
		return true
	}
	return a.slash && (ts.equal(arg, slashHelp) || ts.equal(arg, slashHelpWord))
}

func (a *Arguments) isVersionToken(ts tokens, arg string) bool {
	if ts.equal(arg, versionWord) || (a.slash && ts.equal(arg, slashVersion)) {
		return true
	}
	// Without help, the help letter shows the version.
	if !a.helpEnabled {
		return arg == helpLetter || (a.slash && arg == slashHelp)
	}
	return false
}

// fold normalizes an identifier for comparison on this platform.
func (a *Arguments) fold(id string) string {
	if a.slash {
		return strings.ToLower(id)
	}
	return id
}

func (a *Arguments) hasLong(word string) bool {
	for _, o := range a.options {
		if o.long != "" && a.fold(o.long) == a.fold(word) {
			return true
		}
	}
	return false
}

// checkUnique verifies that the declared identifiers, plus short and long
// when set, are distinct under the current matching rules.
func (a *Arguments) checkUnique(op string, short rune, long string) error {
	shorts := make(set.Set[string])
	longs := make(set.Set[string])
	check := func(short rune, long string) error {
		if short != 0 {
			k := a.fold(string(short))
			if shorts.Contains(k) {
				return configErrorf(op, ErrDuplicate, "duplicate option: %c", short)
			}
			shorts.Add(k)
		}
		if long != "" {
			k := a.fold(long)
			if longs.Contains(k) {
				return configErrorf(op, ErrDuplicate, "duplicate option: %s", long)
			}
			longs.Add(k)
		}
		return nil
	}
	for _, o := range a.options {
		if err := check(o.short, o.long); err != nil {
			return err
		}
	}
	return check(short, long)
}

func (a *Arguments) helpSpec() helpSpec {
	s := helpSpec{
		name:     a.name,
		header:   a.header,
		footer:   a.footer,
		help:     a.helpEnabled,
		version:  a.version != "",
		slash:    a.slash,
		options:  a.Options(),
		required: a.Required(),
	}
	if l, ok := a.ListDecl(); ok {
		s.list = &l
	}
	return s
}

func optionName(short rune, long string) string {
	if long != "" {
		return "--" + long
	}
	return "-" + string(short)
}
