// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package specfile loads argument declarations from TOML, YAML or HCL files
// and builds parsers from them.
package specfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

// Format is a declaration file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// FormatFor picks the format from the file extension.
func FormatFor(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("unsupported declaration file extension %q", ext)
	}
}

// Definition is the contents of a declaration file.
type Definition struct {
	Name    string `toml:"name" yaml:"name" hcl:"name,optional"`
	Version string `toml:"version" yaml:"version" hcl:"version,optional"`
	Header  string `toml:"header" yaml:"header" hcl:"header,optional"`
	Footer  string `toml:"footer" yaml:"footer" hcl:"footer,optional"`
	// Help defaults to true.
	Help *bool `toml:"help" yaml:"help" hcl:"help,optional"`
	// Slash defaults to the platform rule.
	Slash *bool `toml:"slash" yaml:"slash" hcl:"slash,optional"`

	Options  []Option     `toml:"option" yaml:"option" hcl:"option,block"`
	Required []Positional `toml:"required" yaml:"required" hcl:"required,block"`
	List     *Positional  `toml:"list" yaml:"list" hcl:"list,block"`
}

// Option declares a named option. Short is a single character.
type Option struct {
	Short       string `toml:"short" yaml:"short" hcl:"short,optional"`
	Long        string `toml:"long" yaml:"long" hcl:"long,optional"`
	Description string `toml:"description" yaml:"description" hcl:"description,optional"`
	Type        string `toml:"type" yaml:"type" hcl:"type,optional"`
	Nullable    bool   `toml:"nullable" yaml:"nullable" hcl:"nullable,optional"`
	// Group starts a new help heading when it differs from the previous
	// option's group.
	Group string `toml:"group" yaml:"group" hcl:"group,optional"`
}

// Positional declares a required argument or the list argument.
type Positional struct {
	Name        string `toml:"name" yaml:"name" hcl:"name,label"`
	Description string `toml:"description" yaml:"description" hcl:"description,optional"`
	Type        string `toml:"type" yaml:"type" hcl:"type,optional"`
	Nullable    bool   `toml:"nullable" yaml:"nullable" hcl:"nullable,optional"`
}

// Load reads and decodes the declaration file at path.
func Load(path string) (*Definition, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(format, path, src)
}

// Decode decodes src in the given format. name is used in error messages.
// Unknown keys are errors in every format.
func Decode(format Format, name string, src []byte) (*Definition, error) {
	var d Definition
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(src), &d)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML file %s: %w", name, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q in %s", undecoded[0].String(), name)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(src))
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML file %s: %w", name, err)
		}
	case FormatHCL:
		file, diags := hclparse.NewParser().ParseHCL(src, name)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", name, diags)
		}
		if diags := gohcl.DecodeBody(file.Body, nil, &d); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", name, diags)
		}
	default:
		return nil, fmt.Errorf("unsupported declaration format %q", format)
	}
	return &d, nil
}

// NormalizeVersion returns the canonical form of a semantic version, so
// "v1.2" becomes "1.2.0". Other strings are returned unchanged.
func NormalizeVersion(v string) string {
	if v == "" {
		return ""
	}
	sv, err := semver.NewVersion(v)
	if err != nil {
		return v
	}
	return sv.String()
}

// key is the name a declaration's value is reported under.
func (o Option) key() string {
	if o.Long != "" {
		return o.Long
	}
	return o.Short
}

func (o Option) letter() (rune, error) {
	r := []rune(o.Short)
	switch len(r) {
	case 0:
		return 0, nil
	case 1:
		return r[0], nil
	default:
		return 0, fmt.Errorf("short option %q must be a single character", o.Short)
	}
}
