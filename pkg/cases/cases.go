// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cases runs table-driven parse cases stored in YAML files against
// declarations loaded with specfile.
package cases

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/shlex"
	"github.com/yeetrun/argv/pkg/specfile"
	"gopkg.in/yaml.v3"
)

// File is a case file. Exactly one of Spec and SpecFile must be set.
type File struct {
	// Path is where the file was loaded from.
	Path string `yaml:"-"`

	Spec *specfile.Definition `yaml:"spec"`
	// SpecFile is relative to the case file.
	SpecFile string `yaml:"specFile"`
	Cases    []Case `yaml:"cases"`
}

// Case is one argument vector and its expected outcome.
//
// The expectation follows argv.Arguments.Process: OK for success, Error for
// the exact error text, and neither when help or version output is expected.
type Case struct {
	Name string `yaml:"name"`
	// Args is split like a shell command line. Argv, when set, is used
	// verbatim instead.
	Args string   `yaml:"args"`
	Argv []string `yaml:"argv"`

	OK    bool   `yaml:"ok"`
	Error string `yaml:"error"`
	// Values maps declaration names to their expected formatted values.
	Values map[string]string `yaml:"values"`
}

// Tokens returns the argument vector for c.
func (c Case) Tokens() ([]string, error) {
	if c.Argv != nil {
		return c.Argv, nil
	}
	args, err := shlex.Split(c.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to split args %q: %w", c.Args, err)
	}
	return args, nil
}

// Load reads a case file and resolves its declarations.
func Load(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(path, src)
	if err != nil {
		return nil, err
	}
	if f.SpecFile != "" {
		specPath := f.SpecFile
		if !filepath.IsAbs(specPath) {
			specPath = filepath.Join(filepath.Dir(path), specPath)
		}
		def, err := specfile.Load(specPath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		f.Spec = def
	}
	return f, nil
}

// Decode decodes a case file without resolving SpecFile.
func Decode(path string, src []byte) (*File, error) {
	f := &File{Path: path}
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse case file %s: %w", path, err)
	}
	switch {
	case f.Spec != nil && f.SpecFile != "":
		return nil, fmt.Errorf("%s: spec and specFile are mutually exclusive", path)
	case f.Spec == nil && f.SpecFile == "":
		return nil, fmt.Errorf("%s: one of spec or specFile is required", path)
	}
	for i, c := range f.Cases {
		if c.OK && c.Error != "" {
			return nil, fmt.Errorf("%s: case %d: ok and error are mutually exclusive", path, i+1)
		}
		if c.Name == "" {
			f.Cases[i].Name = fmt.Sprintf("case %d", i+1)
		}
	}
	return f, nil
}
