// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package specfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/argv/pkg/argv"
	"tailscale.com/types/ptr"
)

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "a.toml", want: FormatTOML},
		{path: "dir/a.YAML", want: FormatYAML},
		{path: "a.yml", want: FormatYAML},
		{path: "a.hcl", want: FormatHCL},
		{path: "a.json", wantErr: true},
		{path: "noext", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFor(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadFormatsAgree(t *testing.T) {
	want, err := Load(filepath.Join("testdata", "example.toml"))
	if err != nil {
		t.Fatalf("Load(toml) error = %v", err)
	}
	if len(want.Options) != 4 || len(want.Required) != 2 || want.List == nil {
		t.Fatalf("Load(toml) = %+v", want)
	}
	for _, name := range []string{"example.yaml", "example.hcl"} {
		t.Run(name, func(t *testing.T) {
			got, err := Load(filepath.Join("testdata", name))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Load() mismatch (-toml +%s):\n%s", name, diff)
			}
		})
	}
}

func TestDecodeUnknownKeys(t *testing.T) {
	tests := []struct {
		format Format
		src    string
	}{
		{FormatTOML, "name = \"x\"\nnmae = \"y\"\n"},
		{FormatYAML, "name: x\nnmae: y\n"},
		{FormatHCL, "name = \"x\"\nnmae = \"y\"\n"},
		{FormatTOML, "[[option]]\nlong = \"all\"\nkind = \"bool\"\n"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if _, err := Decode(tt.format, "test", []byte(tt.src)); err == nil {
				t.Fatal("Decode() succeeded, want error")
			}
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	for _, f := range []Format{FormatTOML, FormatYAML, FormatHCL} {
		d, err := Decode(f, "empty", nil)
		if err != nil {
			t.Fatalf("Decode(%s, empty) error = %v", f, err)
		}
		if _, err := d.Build(); err != nil {
			t.Fatalf("Build() error = %v", err)
		}
	}
}

func TestNormalizeVersion(t *testing.T) {
	tests := map[string]string{
		"":                   "",
		"v1.2":               "1.2.0",
		"1":                  "1.0.0",
		"1.0.0-beta.1+build": "1.0.0-beta.1+build",
		"2024 edition":       "2024 edition",
	}
	for in, want := range tests {
		if got := NormalizeVersion(in); got != want {
			t.Errorf("NormalizeVersion(%q) = %q, want %q", in, got, want)
		}
	}
}

func loadExample(t *testing.T) *Parser {
	t.Helper()
	d, err := Load(filepath.Join("testdata", "example.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	d.Slash = ptr.To(false)
	p, err := d.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return p
}

func TestBuildHelp(t *testing.T) {
	p := loadExample(t)
	want := strings.Join([]string{
		"Example header",
		"",
		"Usage: example [OPTION...] file count extra...",
		"",
		"  file              input file",
		"  count             how many",
		"  extra...          extra inputs",
		"",
		"Options:",
		"  -a, --all         show all",
		"  -n, --name=VALUE  user name",
		"",
		"Tuning:",
		"  -j, --jobs=NUM    number of jobs",
		"      --ratio=NUM   ratio",
		"",
		"  -?, --help        display this help and exit",
		"      --version     output version information and exit",
		"",
		"See the docs",
		"",
	}, "\n")
	if got := p.Args.Help(); got != want {
		t.Errorf("Help() =\n%s\nwant\n%s", got, want)
	}

	var stdout bytes.Buffer
	p.Args.SetOutput(&stdout, nil)
	if err := p.Parse([]string{"--version"}); !errors.Is(err, argv.ErrShown) {
		t.Fatalf("Parse(--version) error = %v", err)
	}
	if got := stdout.String(); got != "1.2.0\n" {
		t.Errorf("version output = %q, want %q", got, "1.2.0\n")
	}
}

func TestParserValues(t *testing.T) {
	p := loadExample(t)
	if err := p.Parse([]string{"-aj4", "in.txt", "--ratio=0.5", "3", "x", "y"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := map[string]Value{
		"all":   {Type: "bool", Present: true, V: true},
		"name":  {Type: "string", Nullable: true, V: ""},
		"jobs":  {Type: "int", Present: true, V: 4},
		"ratio": {Type: "float64", Present: true, V: 0.5},
		"file":  {Type: "string", Present: true, V: "in.txt"},
		"count": {Type: "uint", Present: true, V: uint(3)},
		"extra": {Type: "[]string", Present: true, V: []string{"x", "y"}},
	}
	if diff := cmp.Diff(want, p.Values()); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"all", "name", "jobs", "ratio", "file", "count", "extra"}, p.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}

	// A second parse starts from empty values.
	if err := p.Parse([]string{"--name=", "a", "1"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got := p.Values()
	if got["all"].V != false || got["jobs"].V != 0 || got["extra"].String() != "[]" {
		t.Errorf("values not reset: %v", got)
	}
	if v := got["name"]; !v.Present || v.String() != "" {
		t.Errorf("name = %+v, want present and empty", v)
	}
}

func TestParserErrors(t *testing.T) {
	p := loadExample(t)
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"in.txt"}, "Missing argument: count"},
		{[]string{"in.txt", "-1"}, "Invalid argument: -1"},
		{[]string{"--jobs", "many", "in.txt", "1"}, "Invalid argument: --jobs"},
		{[]string{"--all=yes"}, "Invalid argument: --all=yes"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			err := p.Parse(tt.args)
			if err == nil || err.Error() != tt.want {
				t.Errorf("Parse() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{
			name: "unknown type",
			src:  "option:\n  - long: level\n    type: complex128\n",
		},
		{
			name: "long short",
			src:  "option:\n  - short: ab\n",
		},
		{
			name:    "bool required",
			src:     "required:\n  - name: flag\n    type: bool\n",
			wantErr: argv.ErrDisallowedType,
		},
		{
			name:    "bool list",
			src:     "list:\n  name: flags\n  type: bool\n",
			wantErr: argv.ErrDisallowedType,
		},
		{
			name:    "duplicate option",
			src:     "option:\n  - short: a\n  - short: a\n    long: all\n",
			wantErr: argv.ErrDuplicate,
		},
		{
			name: "option and required share a name",
			src:  "option:\n  - long: file\nrequired:\n  - name: file\n",
		},
		{
			name:    "version option with version",
			src:     "version: 1.0.0\noption:\n  - long: version\n    type: bool\n",
			wantErr: argv.ErrReserved,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Decode(FormatYAML, tt.name, []byte(tt.src))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			_, err = d.Build()
			if err == nil {
				t.Fatal("Build() succeeded, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Build() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNullableAndHelpDisabled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tool.toml")
	src := `help = false
version = "3"

[[option]]
short = "l"
long = "level"
type = "int8"
nullable = true

[[required]]
name = "target"
nullable = true
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	d.Slash = ptr.To(false)
	p, err := d.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var stdout bytes.Buffer
	p.Args.SetOutput(&stdout, nil)
	if err := p.Parse([]string{"-?"}); !errors.Is(err, argv.ErrShown) || stdout.String() != "3.0.0\n" {
		t.Fatalf("Parse(-?) = %v, stdout %q", err, stdout.String())
	}

	if err := p.Parse([]string{"t"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	vals := p.Values()
	if vals["level"].Present || vals["level"].String() != "(blank)" {
		t.Errorf("level = %+v, want absent", vals["level"])
	}
	if !vals["target"].Present || vals["target"].V != "t" {
		t.Errorf("target = %+v", vals["target"])
	}

	if err := p.Parse([]string{"-l-9", "t"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if v := p.Values()["level"]; !v.Present || v.V != int8(-9) {
		t.Errorf("level = %+v, want -9", v)
	}
}

func TestTypes(t *testing.T) {
	got := Types()
	if len(got) != 14 || got[0] != "bool" || got[len(got)-1] != "uint8" {
		t.Errorf("Types() = %v", got)
	}
}
