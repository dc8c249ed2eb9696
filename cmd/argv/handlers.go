// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/argv/pkg/argv"
	"github.com/yeetrun/argv/pkg/cases"
	"github.com/yeetrun/argv/pkg/cli"
	"github.com/yeetrun/argv/pkg/env"
	"github.com/yeetrun/argv/pkg/specfile"
	"github.com/yeetrun/argv/pkg/tui"
	"gopkg.in/yaml.v3"
	"tailscale.com/util/must"
)

// version is set with -ldflags "-X main.version=...".
var version = "0.1.0"

// stripCommand removes the command name yargs leaves at the front.
func stripCommand(name string, args []string) []string {
	for i, arg := range args {
		if strings.HasPrefix(arg, "-") {
			continue
		}
		if arg == name {
			out := make([]string, 0, len(args)-1)
			out = append(out, args[:i]...)
			return append(out, args[i+1:]...)
		}
		break
	}
	return args
}

func loadParser(path string) (*specfile.Parser, error) {
	def, err := specfile.Load(path)
	if err != nil {
		return nil, err
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	p, err := def.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.Args.SetOutput(stdout, stderr)
	return p, nil
}

type valueRow struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Nullable bool   `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Present  bool   `json:"present" yaml:"present"`
	Value    any    `json:"value" yaml:"value"`
}

func valueRows(p *specfile.Parser) []valueRow {
	vals := p.Values()
	rows := make([]valueRow, 0, len(vals))
	for _, k := range p.Keys() {
		v := vals[k]
		row := valueRow{Name: k, Type: v.Type, Nullable: v.Nullable, Present: v.Present}
		if v.Present {
			row.Value = v.V
		}
		rows = append(rows, row)
	}
	return rows
}

func handleParse(_ context.Context, args []string) error {
	flags, rest, err := cli.ParseParse(stripCommand("parse", args))
	if err != nil {
		return err
	}
	if err := cli.RequireArgsAtLeast("parse", rest, 1); err != nil {
		return err
	}
	format := flags.Format
	if format == "" {
		format = defaultFormat
	}
	switch format {
	case "table", "json", "yaml", "env":
	default:
		return fmt.Errorf("unknown format %q, want table, json, yaml or env", format)
	}

	p, err := loadParser(rest[0])
	if err != nil {
		return err
	}
	tokens := append(append([]string{}, rest[1:]...), bridgedArgs...)
	log.Printf("parse %s: %q", rest[0], tokens)
	if err := p.Parse(tokens); err != nil {
		if errors.Is(err, argv.ErrShown) {
			return nil
		}
		var pe *argv.ParseError
		if errors.As(err, &pe) {
			return parseFailure{program: p.Args.Name(), err: err}
		}
		return err
	}

	rows := valueRows(p)
	switch format {
	case "json":
		fmt.Fprintln(stdout, asJSON(rows))
	case "env":
		vars := make([]env.Var, 0, len(rows))
		for _, r := range rows {
			vars = append(vars, env.Var{Name: r.Name, Value: r.Value})
		}
		return env.Marshal(stdout, flags.EnvPrefix, vars)
	case "yaml":
		b, err := yaml.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to encode values: %w", err)
		}
		fmt.Fprint(stdout, string(b))
	default:
		w := tabwriter.NewWriter(stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tTYPE\tVALUE")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, r.Type, specfile.Value{Present: r.Present, V: r.Value})
		}
		return w.Flush()
	}
	return nil
}

func handleUsage(_ context.Context, args []string) error {
	args = stripCommand("usage", args)
	if len(args) != 1 {
		return fmt.Errorf("'usage' takes exactly one declaration file, got %d", len(args))
	}
	p, err := loadParser(args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, p.Args.Help())
	return nil
}

// checkFailed reports that some cases failed; the details are already printed.
type checkFailed struct {
	failed, total int
}

func (e checkFailed) Error() string {
	return fmt.Sprintf("%d of %d cases failed", e.failed, e.total)
}

func handleCheck(ctx context.Context, args []string) error {
	flags, files, err := cli.ParseCheck(stripCommand("check", args))
	if err != nil {
		return err
	}
	files = append(files, bridgedArgs...)
	if err := cli.RequireArgsAtLeast("check", files, 1); err != nil {
		return err
	}

	loaded := make([]*cases.File, 0, len(files))
	for _, path := range files {
		f, err := cases.Load(path)
		if err != nil {
			return err
		}
		loaded = append(loaded, f)
	}

	var progress func(done, total int)
	if !flags.Quiet && isTerminalFn(os.Stderr) {
		sp := tui.NewSpinner(stderr, tui.WithColor(colors, tui.ColorYellow))
		sp.Start("running cases")
		defer sp.Stop()
		progress = func(done, total int) { sp.Progress("running cases", done, total) }
	}
	results, err := cases.RunWithProgress(ctx, loaded, flags.Jobs, progress)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Passed() {
			if !flags.Quiet {
				fmt.Fprintf(stdout, "%s %s: %s\n", colors.Green("PASS"), r.File, r.Case)
			}
			continue
		}
		failed++
		fmt.Fprintf(stdout, "%s %s: %s\n", colors.Red("FAIL"), r.File, r.Case)
		fmt.Fprintf(stdout, "    %s\n", colors.Dim(r.Err.Error()))
	}
	if failed > 0 {
		return checkFailed{failed: failed, total: len(results)}
	}
	if !flags.Quiet {
		fmt.Fprintf(stdout, "ok %d cases\n", len(results))
	}
	return nil
}

func handleTypes(_ context.Context, args []string) error {
	if args = stripCommand("types", args); len(args) > 0 {
		return fmt.Errorf("'types' takes no arguments")
	}
	for _, t := range specfile.Types() {
		fmt.Fprintln(stdout, t)
	}
	return nil
}

func handleVersion(_ context.Context, args []string) error {
	flags, rest, err := cli.ParseVersion(stripCommand("version", args))
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("'version' takes no arguments")
	}
	v := must.Get(semver.NewVersion(version))
	if flags.JSON {
		fmt.Fprintln(stdout, asJSON(struct {
			Version string `json:"version"`
			Go      string `json:"go"`
		}{v.String(), runtime.Version()}))
		return nil
	}
	fmt.Fprintf(stdout, "argv %s (%s)\n", v, runtime.Version())
	return nil
}
