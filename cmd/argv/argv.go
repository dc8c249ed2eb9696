// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command argv parses argument vectors against declaration files, renders
// their help, and runs case files.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/shayne/yargs"
	"github.com/yeetrun/argv/pkg/cli"
	"github.com/yeetrun/argv/pkg/tui"
)

var (
	// bridgedArgs are the tokens after the first "--" on the command line.
	// They are handed to the declared program untouched.
	bridgedArgs   []string
	defaultFormat = "table"

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	colors tui.Colorizer

	isTerminalFn = tui.IsTerminal
)

func init() {
	if f := os.Getenv("ARGV_FORMAT"); f != "" {
		defaultFormat = f
	}
}

type globalFlagsParsed struct {
	Verbose bool `flag:"verbose" short:"v" help:"Log diagnostics to stderr"`
	NoColor bool `flag:"no-color" help:"Disable colored output (NO_COLOR)"`
}

// parseGlobalFlags only looks at the flags before the command name; flags
// after it belong to the command or to the declared program.
func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	head, rest := args, []string(nil)
	for i, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			head, rest = args[:i], args[i:]
			break
		}
	}
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](head, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	remaining := make([]string, 0, len(result.RemainingArgs)+len(rest))
	remaining = append(remaining, result.RemainingArgs...)
	remaining = append(remaining, rest...)
	return result.Flags, remaining, nil
}

func asJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

type errorPrefixer interface {
	errorPrefix() string
}

// exitCoder is implemented by errors that want a specific exit status.
type exitCoder interface {
	exitCode() int
}

// parseFailure is a rejected argument vector. It is reported the way the
// declared program would report it.
type parseFailure struct {
	program string
	err     error
}

func (e parseFailure) Error() string { return e.err.Error() }
func (e parseFailure) Unwrap() error { return e.err }
func (e parseFailure) exitCode() int { return 2 }

func (e parseFailure) errorPrefix() string {
	if e.program == "" {
		return ""
	}
	return e.program + ": "
}

func printCLIError(w io.Writer, err error) {
	if err == nil {
		return
	}
	prefix := colors.Red("error:") + " "
	var pref errorPrefixer
	if errors.As(err, &pref) {
		prefix = pref.errorPrefix()
	}
	fmt.Fprint(w, prefix)
	fmt.Fprintln(w, err)
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ec exitCoder
	if errors.As(err, &ec) {
		return ec.exitCode()
	}
	return 1
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	args, bridgedArgs = cli.SplitArgsAtDoubleDash(args)
	globalFlags, remaining, err := parseGlobalFlags(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	log.SetFlags(0)
	if globalFlags.Verbose {
		log.SetOutput(stderr)
	} else {
		log.SetOutput(io.Discard)
	}
	colors = tui.NewColorizer(!globalFlags.NoColor && isTerminalFn(os.Stdout))

	handlers := map[string]yargs.SubcommandHandler{
		"parse":   handleParse,
		"usage":   handleUsage,
		"check":   handleCheck,
		"types":   handleTypes,
		"version": handleVersion,
	}
	err = yargs.RunSubcommands(ctx, remaining, buildHelpConfig(), globalFlagsParsed{}, handlers)
	printCLIError(stderr, err)
	return exitCode(err)
}

func buildHelpConfig() yargs.HelpConfig {
	subcommands := make(map[string]yargs.SubCommandInfo)
	for name, info := range cli.CommandInfos() {
		subcommands[name] = cli.ToSubCommandInfo(name, info)
	}
	return yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        "argv",
			Description: "Try out argument declarations: parse tokens against a declaration file, print its help, or run case files.",
			Examples: []string{
				"argv usage ./cp.toml",
				"argv parse ./cp.toml -rv src dst",
				"argv parse --format=json ./cp.yaml -- --help",
				"argv check --jobs=8 ./testdata/*.yaml",
			},
		},
		SubCommands: subcommands,
	}
}
