// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argv

import (
	"errors"
	"fmt"
)

// Sentinel errors for declaration problems. A *ConfigError wraps one of
// these, so callers can test with errors.Is.
var (
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrDuplicate         = errors.New("duplicate identifier")
	ErrDisallowedType    = errors.New("disallowed target type")
	ErrMultipleLists     = errors.New("only one list argument can be specified")
	ErrReserved          = errors.New("reserved identifier")
	ErrNoDeclarations    = errors.New("no optional, required, or list arguments")
)

// ErrShown is returned by Parse when help or version text was written
// instead of parsing. Callers should exit without reporting an error.
var ErrShown = errors.New("help or version displayed")

// ConfigError is returned when a declaration is invalid. It indicates a bug
// in the program declaring its arguments, not in the user's input.
type ConfigError struct {
	Op  string // The call that failed, e.g. "AddOption"
	Msg string // Human readable detail
	Err error  // One of the Err* sentinels
}

func (e *ConfigError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("argv: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("argv: %s: %s", e.Op, e.Msg)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErrorf(op string, sentinel error, format string, a ...any) *ConfigError {
	return &ConfigError{Op: op, Msg: fmt.Sprintf(format, a...), Err: sentinel}
}

// ParseErrorKind distinguishes the two ways user input can be rejected.
type ParseErrorKind int

const (
	// InvalidArgument means a token was unrecognized or malformed.
	InvalidArgument ParseErrorKind = iota
	// MissingArgument means fewer positional tokens than required arguments.
	MissingArgument
)

// ParseError is returned by Parse when the argument vector is rejected.
type ParseError struct {
	Kind ParseErrorKind
	// Arg is the offending token for InvalidArgument and the name of the
	// first unfilled required argument for MissingArgument.
	Arg string
}

func (e *ParseError) Error() string {
	if e.Kind == MissingArgument {
		return "Missing argument: " + e.Arg
	}
	return "Invalid argument: " + e.Arg
}

func invalidArgument(tok string) *ParseError {
	return &ParseError{Kind: InvalidArgument, Arg: tok}
}
