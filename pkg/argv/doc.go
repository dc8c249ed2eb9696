// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argv parses a command line against a fixed set of declarations:
// named options, ordered required arguments, and an optional trailing list.
//
// # Basic Usage
//
//	var (
//	    all   bool
//	    jobs  int = 1
//	    name  argv.Argument[string]
//	    file  string
//	    extra []string
//	)
//
//	args := argv.New()
//	args.SetName("example")
//	args.SetVersion("1.0.0")
//	args.AddOption('a', "all", "show everything", argv.Var(&all))
//	args.AddOption('j', "jobs", "number of jobs", argv.Var(&jobs))
//	args.AddOption('n', "name", "user name", &name)
//	args.AddRequired("file", "input file", argv.Var(&file))
//	args.AddList("extra", "extra inputs", argv.List(&extra))
//
//	if !args.Report(os.Args[1:]) {
//	    os.Exit(1)
//	}
//
// The Add calls return a *ConfigError for invalid declarations. Parse
// returns nil, ErrShown after printing help or the version, or a
// *ParseError whose text is "Invalid argument: <token>" or
// "Missing argument: <name>".
//
// # Option Syntax
//
// Long options:
//   - --all            bool options take no value
//   - --name=value     assignment
//   - --name value     value in the next token, which must not start with '-'
//   - --jobs4          integers may follow the word directly
//
// Short options:
//   - -a -b, -ab       bool options can be clustered
//   - -n=value         assignment
//   - -n value         value in the next token
//   - -j4, -j=4        integers may follow the letter directly, so "-aj4"
//     sets a and j
//
// A string option given an empty assignment ("-n=", "--name=") takes its
// value from the next token when that token does not start with '-'.
// Otherwise it is set to the empty string. Use an Argument to tell that
// apart from an option that was not given.
//
// When the text after "--word" or "--word=" cannot be read as a value
// at all, the value is taken from the next token as well: "--num=abc 5"
// sets num to 5.
//
// Integer values use C notation: "0x1f" is hexadecimal and "017" is octal.
// Values that overflow the target type read as no value at all.
//
// Positional tokens fill the required arguments in order, then go to the
// list. Every token that starts with '-' is an option, except a lone "-",
// which is positional. A bare "--" names no option and is rejected.
//
// On Windows, "/x" and "/word" are accepted as well and identifiers are
// matched without regard to case. SetSlashOptions overrides this.
//
// # Help
//
// "-?" or "--help" anywhere on the command line prints the help text and
// makes Parse return ErrShown. When a version is set, "--version" does the
// same with the version string.
package argv
