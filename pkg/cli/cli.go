// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/shayne/yargs"
)

type FlagSpec struct {
	ConsumesValue bool
}

type CommandInfo struct {
	Name        string
	Description string
	Usage       string
	Examples    []string
	Hidden      bool
	Aliases     []string
	// ArgsSchema optionally defines positional args via `pos` tags.
	ArgsSchema any
}

type ParseFlags struct {
	Format    string
	EnvPrefix string
}

type CheckFlags struct {
	Jobs  int
	Quiet bool
}

type VersionFlags struct {
	JSON bool
}

type parseFlagsParsed struct {
	Format    string `flag:"format" short:"f" help:"Output format: table, json, yaml or env (ARGV_FORMAT)"`
	EnvPrefix string `flag:"env-prefix" help:"Prefix for variable names with --format=env"`
}

type checkFlagsParsed struct {
	Jobs  int  `flag:"jobs" short:"j" default:"4" help:"Number of cases to run at once"`
	Quiet bool `flag:"quiet" short:"q" help:"Only print failing cases"`
}

type versionFlagsParsed struct {
	JSON bool `flag:"json" help:"Print version information as JSON"`
}

type SpecArgs struct {
	Spec string `pos:"0" help:"Declaration file (.toml, .yaml, .yml or .hcl)"`
}

type ParseArgs struct {
	Spec   string   `pos:"0" help:"Declaration file (.toml, .yaml, .yml or .hcl)"`
	Tokens []string `pos:"1*" help:"Tokens to parse"`
}

type CheckArgs struct {
	Files []string `pos:"0+" help:"Case files"`
}

var commandInfos = map[string]CommandInfo{
	"parse": {Name: "parse", Description: "Parse tokens against a declaration file and print the values", Usage: "SPECFILE [TOKENS...] [-- TOKENS...]", Examples: []string{
		"argv parse ./cp.toml -rv src dst",
		"argv parse --format=json ./cp.hcl -- --help",
		`eval "$(argv parse -f env --env-prefix=CP_ ./cp.toml -- "$@")"`,
	}, ArgsSchema: ParseArgs{}},
	"usage": {Name: "usage", Description: "Print the help text generated from a declaration file", Usage: "SPECFILE", Examples: []string{"argv usage ./cp.yaml"}, ArgsSchema: SpecArgs{}},
	"check": {Name: "check", Description: "Run case files and report failures", Usage: "CASEFILE [CASEFILE...] [--jobs=4]", Examples: []string{
		"argv check ./testdata/*.yaml",
		"argv check -q --jobs=1 ./cases.yaml",
	}, Aliases: []string{"test"}, ArgsSchema: CheckArgs{}},
	"types":   {Name: "types", Description: "List the value types a declaration file can use"},
	"version": {Name: "version", Description: "Show the version of argv"},
}

var flagSpecs = map[string]map[string]FlagSpec{
	"parse":   flagSpecsFromStruct(parseFlagsParsed{}),
	"check":   flagSpecsFromStruct(checkFlagsParsed{}),
	"version": flagSpecsFromStruct(versionFlagsParsed{}),
	"usage":   {},
	"types":   {},
}

// CommandNames returns the command names, sorted.
func CommandNames() []string {
	names := make([]string, 0, len(commandInfos))
	for name := range commandInfos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func CommandInfos() map[string]CommandInfo {
	return commandInfos
}

func FlagSpecs() map[string]map[string]FlagSpec {
	return flagSpecs
}

func Registry() yargs.Registry {
	subcommands := make(map[string]yargs.CommandSpec, len(commandInfos))
	for name, info := range commandInfos {
		subcommands[name] = yargs.CommandSpec{
			Info:       ToSubCommandInfo(name, info),
			ArgsSchema: info.ArgsSchema,
		}
	}
	return yargs.Registry{
		Command:     yargs.CommandInfo{Name: "argv"},
		SubCommands: subcommands,
	}
}

func ToSubCommandInfo(name string, info CommandInfo) yargs.SubCommandInfo {
	return yargs.SubCommandInfo{
		Name:        name,
		Description: info.Description,
		Usage:       info.Usage,
		Examples:    info.Examples,
		Hidden:      info.Hidden,
		Aliases:     info.Aliases,
	}
}

// ParseParse parses the flags of the parse command. Flag parsing stops at
// the first flag parse does not know, so the returned args are the
// declaration file followed by the tokens to parse.
func ParseParse(args []string) (ParseFlags, []string, error) {
	parseArgs, extraArgs := splitArgsForParsing(args, flagSpecs["parse"])
	parsed, err := parseFlags[parseFlagsParsed](parseArgs)
	if err != nil {
		return ParseFlags{}, nil, err
	}
	flags := ParseFlags{
		Format:    parsed.Flags.Format,
		EnvPrefix: parsed.Flags.EnvPrefix,
	}
	argsOut := append(parsed.Args, extraArgs...)
	return flags, argsOut, nil
}

func ParseCheck(args []string) (CheckFlags, []string, error) {
	parseArgs, extraArgs := SplitArgsAtDoubleDash(args)
	parsed, err := parseFlags[checkFlagsParsed](parseArgs)
	if err != nil {
		return CheckFlags{}, nil, err
	}
	if parsed.Flags.Jobs < 1 {
		return CheckFlags{}, nil, fmt.Errorf("--jobs must be at least 1, got %d", parsed.Flags.Jobs)
	}
	flags := CheckFlags{
		Jobs:  parsed.Flags.Jobs,
		Quiet: parsed.Flags.Quiet,
	}
	argsOut := append(parsed.Args, extraArgs...)
	return flags, argsOut, nil
}

func ParseVersion(args []string) (VersionFlags, []string, error) {
	parseArgs, extraArgs := SplitArgsAtDoubleDash(args)
	parsed, err := parseFlags[versionFlagsParsed](parseArgs)
	if err != nil {
		return VersionFlags{}, nil, err
	}
	flags := VersionFlags{JSON: parsed.Flags.JSON}
	argsOut := append(parsed.Args, extraArgs...)
	return flags, argsOut, nil
}

type parsedFlags[T any] struct {
	Flags  T
	Args   []string
	Parser *yargs.Parser
}

func parseFlags[T any](args []string) (parsedFlags[T], error) {
	result, err := yargs.ParseFlags[T](args)
	if err != nil {
		return parsedFlags[T]{}, err
	}
	argsOut := append([]string{}, result.Args...)
	if len(result.RemainingArgs) > 0 {
		argsOut = append(argsOut, result.RemainingArgs...)
	}
	return parsedFlags[T]{Flags: result.Flags, Args: argsOut, Parser: result.Parser}, nil
}

// SplitArgsAtDoubleDash splits args at the first "--", which is dropped.
func SplitArgsAtDoubleDash(args []string) ([]string, []string) {
	for i, arg := range args {
		if arg == "--" {
			if i+1 < len(args) {
				return args[:i], args[i+1:]
			}
			return args[:i], nil
		}
	}
	return args, nil
}

func splitArgsForParsing(args []string, specs map[string]FlagSpec) ([]string, []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			if i+1 < len(args) {
				return args[:i], args[i+1:]
			}
			return args[:i], nil
		}
		if strings.HasPrefix(arg, "--") && len(arg) > 2 {
			name := arg
			if idx := strings.Index(name, "="); idx != -1 {
				name = name[:idx]
			}
			spec, ok := specs[name]
			if !ok {
				return args[:i], args[i:]
			}
			if spec.ConsumesValue && !strings.Contains(arg, "=") {
				i++
			}
			continue
		}
		if strings.HasPrefix(arg, "-") && arg != "-" {
			if strings.Contains(arg, "=") {
				name := arg[:strings.Index(arg, "=")]
				if _, ok := specs[name]; ok {
					continue
				}
				return args[:i], args[i:]
			}
			if len(arg) == 2 {
				spec, ok := specs[arg]
				if !ok {
					return args[:i], args[i:]
				}
				if spec.ConsumesValue {
					i++
				}
				continue
			}
			// Clusters like "-rv" belong to the declared program.
			return args[:i], args[i:]
		}
	}
	return args, nil
}

func flagSpecsFromStruct(v any) map[string]FlagSpec {
	specs := make(map[string]FlagSpec)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return specs
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Tag.Get("flag")
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		spec := FlagSpec{ConsumesValue: consumesValue(field.Type)}
		specs["--"+name] = spec
		if short := field.Tag.Get("short"); short != "" {
			specs["-"+short] = spec
		}
	}
	return specs
}

func consumesValue(t reflect.Type) bool {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() != reflect.Bool
}

func RequireArgsAtLeast(subcmd string, args []string, count int) error {
	if len(args) < count {
		return fmt.Errorf("'%s' requires at least %d argument(s), got %d", subcmd, count, len(args))
	}
	return nil
}
