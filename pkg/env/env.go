// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package env writes parsed values as POSIX shell variable assignments.
package env

import (
	"fmt"
	"io"
	"reflect"
	"strings"
)

// Var is one value to write. A nil Value is skipped. Slices are written as
// NAME_COUNT plus one NAME_<i> per element.
type Var struct {
	Name  string
	Value any
}

// Marshal writes vars to o, one assignment per line, with names converted
// by VarName.
func Marshal(o io.Writer, prefix string, vars []Var) error {
	for _, v := range vars {
		if v.Value == nil {
			continue
		}
		name := VarName(prefix, v.Name)
		rv := reflect.ValueOf(v.Value)
		if rv.Kind() != reflect.Slice {
			if _, err := fmt.Fprintf(o, "%s=%s\n", name, Quote(fmt.Sprint(v.Value))); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(o, "%s_COUNT=%d\n", name, rv.Len()); err != nil {
			return err
		}
		for i := 0; i < rv.Len(); i++ {
			if _, err := fmt.Fprintf(o, "%s_%d=%s\n", name, i, Quote(fmt.Sprint(rv.Index(i).Interface()))); err != nil {
				return err
			}
		}
	}
	return nil
}

// VarName upper-cases prefix+name and replaces anything that is not a
// letter, digit or underscore with '_'.
func VarName(prefix, name string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, prefix+name)
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		s = "_" + s
	}
	return s
}

// Quote single-quotes s for a POSIX shell.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
