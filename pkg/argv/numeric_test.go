// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argv

import (
	"math"
	"testing"
)

func TestParseIntPrefix(t *testing.T) {
	tests := []struct {
		in      string
		bitSize int
		want    int64
		wantN   int
	}{
		{"42", 64, 42, 2},
		{"42abc", 64, 42, 2},
		{"-42", 64, -42, 3},
		{"+7", 64, 7, 2},
		{"0x1F", 64, 31, 4},
		{"0x", 64, 0, 1},
		{"0xg", 64, 0, 1},
		{"017", 64, 15, 3},
		{"019", 64, 1, 2},
		{"0", 64, 0, 1},
		{"-", 64, 0, 0},
		{"", 64, 0, 0},
		{"abc", 64, 0, 0},
		{" 1", 64, 0, 0},
		{"127", 8, 127, 3},
		{"128", 8, 0, 0},
		{"-128", 8, -128, 4},
		{"9223372036854775808", 64, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, n := parseIntPrefix(tt.in, tt.bitSize)
			if got != tt.want || n != tt.wantN {
				t.Errorf("parseIntPrefix(%q, %d) = (%d, %d), want (%d, %d)", tt.in, tt.bitSize, got, n, tt.want, tt.wantN)
			}
		})
	}
}

func TestParseUintPrefix(t *testing.T) {
	tests := []struct {
		in      string
		bitSize int
		want    uint64
		wantN   int
	}{
		{"42", 64, 42, 2},
		{"+42", 64, 42, 3},
		{"-42", 64, 0, 0},
		{"0XfF", 64, 255, 4},
		{"0777", 64, 511, 4},
		{"255", 8, 255, 3},
		{"256", 8, 0, 0},
		{"18446744073709551615", 64, math.MaxUint64, 20},
		{"18446744073709551616", 64, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, n := parseUintPrefix(tt.in, tt.bitSize)
			if got != tt.want || n != tt.wantN {
				t.Errorf("parseUintPrefix(%q, %d) = (%d, %d), want (%d, %d)", tt.in, tt.bitSize, got, n, tt.want, tt.wantN)
			}
		})
	}
}

func TestParseFloatPrefix(t *testing.T) {
	tests := []struct {
		in    string
		want  float64
		wantN int
	}{
		{"9.8", 9.8, 3},
		{".5", 0.5, 2},
		{"5.", 5, 2},
		{"-1.5e3", -1500, 6},
		{"1e", 1, 1},
		{"1e+", 1, 1},
		{"2E-2x", 0.02, 4},
		{"12abc", 12, 2},
		{".", 0, 0},
		{"e5", 0, 0},
		{"", 0, 0},
		{"inf", math.Inf(1), 3},
		{"-Infinity", math.Inf(-1), 9},
		{"0x1p3", 8, 5},
		{"-0X1.8P1", -3, 8},
		{"0x.8", 0.5, 4},
		{"0x1f", 31, 4},
		{"0x1p", 1, 3},
		{"0x", 0, 1},
		{"0xg", 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, n := parseFloatPrefix(tt.in, 64)
			if got != tt.want || n != tt.wantN {
				t.Errorf("parseFloatPrefix(%q) = (%v, %d), want (%v, %d)", tt.in, got, n, tt.want, tt.wantN)
			}
		})
	}

	if v, n := parseFloatPrefix("nan", 64); !math.IsNaN(v) || n != 3 {
		t.Errorf("parseFloatPrefix(nan) = (%v, %d)", v, n)
	}
	if _, n := parseFloatPrefix("1e39", 32); n != 0 {
		t.Errorf("parseFloatPrefix(1e39, 32) consumed %d, want 0", n)
	}
}

func TestCoerceScalar(t *testing.T) {
	if v, n := coerceScalar[bool]("anything"); !v || n != 0 {
		t.Errorf("coerceScalar[bool] = (%v, %d), want (true, 0)", v, n)
	}
	if v, n := coerceScalar[string]("=x=y"); v != "x=y" || n != 4 {
		t.Errorf("coerceScalar[string](=x=y) = (%q, %d)", v, n)
	}
	if v, n := coerceScalar[string](""); v != "" || n != 0 {
		t.Errorf("coerceScalar[string]() = (%q, %d)", v, n)
	}
	if v, n := coerceScalar[int16]("-0x10;"); v != -16 || n != 5 {
		t.Errorf("coerceScalar[int16] = (%d, %d)", v, n)
	}
	if v, n := coerceScalar[float32]("0.25"); v != 0.25 || n != 4 {
		t.Errorf("coerceScalar[float32] = (%v, %d)", v, n)
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		KindBool:   "bool",
		KindInt:    "int",
		KindUint:   "uint",
		KindFloat:  "float",
		KindString: "string",
		Kind(42):   "Kind(42)",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}

func TestArgumentString(t *testing.T) {
	var a Argument[int]
	if got := a.String(); got != "(blank)" {
		t.Errorf("String() = %q, want (blank)", got)
	}
	a.Set(0)
	if got := a.String(); got != "0" {
		t.Errorf("String() = %q, want 0", got)
	}
	a.Reset()
	if a.Present() {
		t.Error("Present() after Reset")
	}
}
