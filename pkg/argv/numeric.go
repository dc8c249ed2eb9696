// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argv

import (
	"strconv"
	"strings"
)

// scanIntPrefix returns the length of the longest prefix of s that forms an
// integer literal: an optional sign, then "0x" followed by hex digits, a
// leading "0" followed by octal digits, or decimal digits.
// A signed scan accepts '+' and '-', an unsigned scan accepts only '+'.
func scanIntPrefix(s string, signed bool) int {
	i := 0
	if i < len(s) && (s[i] == '+' || (signed && s[i] == '-')) {
		i++
	}
	start := i
	switch {
	case hasHexPrefix(s[i:]):
		i += 2
		for i < len(s) && isHexDigit(s[i]) {
			i++
		}
	case i < len(s) && s[i] == '0':
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '7' {
			i++
		}
	default:
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i == start {
		return 0
	}
	return i
}

// parseIntPrefix parses the integer prefix of s for a target of the given bit
// size. It returns the value and the number of bytes consumed, which is zero
// when s has no integer prefix or the value overflows bitSize.
func parseIntPrefix(s string, bitSize int) (int64, int) {
	n := scanIntPrefix(s, true)
	if n == 0 {
		return 0, 0
	}
	v, err := strconv.ParseInt(cLiteral(s[:n]), 0, bitSize)
	if err != nil {
		return 0, 0
	}
	return v, n
}

// parseUintPrefix is the unsigned counterpart of parseIntPrefix.
func parseUintPrefix(s string, bitSize int) (uint64, int) {
	n := scanIntPrefix(s, false)
	if n == 0 {
		return 0, 0
	}
	v, err := strconv.ParseUint(cLiteral(strings.TrimPrefix(s[:n], "+")), 0, bitSize)
	if err != nil {
		return 0, 0
	}
	return v, n
}

// cLiteral rewrites a C octal literal ("017") into the Go form ("0o17") so
// that strconv with base 0 reads it the same way strtol does.
func cLiteral(lit string) string {
	sign := ""
	if lit != "" && (lit[0] == '+' || lit[0] == '-') {
		sign, lit = lit[:1], lit[1:]
	}
	if len(lit) > 1 && lit[0] == '0' && lit[1] != 'x' && lit[1] != 'X' {
		lit = "0o" + lit[1:]
	}
	return sign + lit
}

// scanFloatPrefix returns the length of the longest prefix of s that forms a
// decimal or hexadecimal ("0x1.8p3") floating-point literal, or one of the
// words inf, infinity and nan.
func scanFloatPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	rest := strings.ToLower(s[i:])
	for _, word := range []string{"infinity", "inf", "nan"} {
		if strings.HasPrefix(rest, word) {
			return i + len(word)
		}
	}
	if n := scanHexFloat(s[i:]); n > 0 {
		return i + n
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}

	// An exponent only counts when at least one digit follows it.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

// scanHexFloat returns the length of the hexadecimal float literal at the
// start of s, without sign, or 0 if there is none. The binary exponent is
// optional.
func scanHexFloat(s string) int {
	if len(s) < 3 || s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		return 0
	}
	i := 2
	digits := 0
	for i < len(s) && isHexDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isHexDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'p' || s[i] == 'P') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

// parseFloatPrefix parses the floating-point prefix of s. Values that do not
// fit bitSize consume nothing.
func parseFloatPrefix(s string, bitSize int) (float64, int) {
	n := scanFloatPrefix(s)
	if n == 0 {
		return 0, 0
	}
	lit := s[:n]
	// strconv wants a binary exponent on every hexadecimal float.
	if l := strings.ToLower(lit); strings.Contains(l, "0x") && !strings.ContainsRune(l, 'p') {
		lit += "p0"
	}
	v, err := strconv.ParseFloat(lit, bitSize)
	if err != nil {
		return 0, 0
	}
	return v, n
}

// hasHexPrefix reports whether s starts with "0x" or "0X" and a hex digit.
// A bare "0x" reads as the number 0 followed by an 'x'.
func hasHexPrefix(s string) bool {
	return len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') && isHexDigit(s[2])
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isAlnum(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
