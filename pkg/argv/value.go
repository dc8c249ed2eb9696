// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argv

import (
	"fmt"
	"strconv"
)

// Scalar is the set of value types a declaration can target.
type Scalar interface {
	bool |
		int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64 |
		string
}

// Kind classifies a target's value type.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindUint
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Traits are the parsing rules derived from a target's value type.
type Traits struct {
	Kind Kind
	// Valueless targets are set by presence alone and never take a value.
	Valueless bool
	// RequiresAssignment targets need an '=' between an option and an
	// attached value. Integer targets accept a directly appended number.
	RequiresAssignment bool
	// Numeric selects the NUM placeholder in help output.
	Numeric bool
	// Nullable targets record whether a value was supplied.
	Nullable bool
	// Container targets collect every value; only a List may use one.
	Container bool
}

func traitsFor(k Kind) Traits {
	return Traits{
		Kind:               k,
		Valueless:          k == KindBool,
		RequiresAssignment: k != KindInt && k != KindUint,
		Numeric:            k == KindInt || k == KindUint || k == KindFloat,
	}
}

// Target is a typed destination for parsed values. Use Var, List, or a
// pointer to an Argument to obtain one.
type Target interface {
	traits() Traits
	// coerce parses a value from the start of text. It returns the number of
	// bytes consumed and a function that stores the value; nothing is
	// stored until commit is called.
	coerce(text string) (n int, commit func())
}

// kindOf returns the Kind of the Scalar type T.
func kindOf[T Scalar]() Kind {
	var zero T
	switch any(zero).(type) {
	case bool:
		return KindBool
	case int, int8, int16, int32, int64:
		return KindInt
	case uint, uint8, uint16, uint32, uint64:
		return KindUint
	case float32, float64:
		return KindFloat
	default:
		return KindString
	}
}

// coerceScalar parses text into a value of type T and reports the number of
// bytes consumed. A zero count for a non-bool type means no value was found.
func coerceScalar[T Scalar](text string) (T, int) {
	var v T
	n := 0
	switch p := any(&v).(type) {
	case *bool:
		*p = true
	case *int:
		x, c := parseIntPrefix(text, strconv.IntSize)
		*p, n = int(x), c
	case *int8:
		x, c := parseIntPrefix(text, 8)
		*p, n = int8(x), c
	case *int16:
		x, c := parseIntPrefix(text, 16)
		*p, n = int16(x), c
	case *int32:
		x, c := parseIntPrefix(text, 32)
		*p, n = int32(x), c
	case *int64:
		*p, n = parseIntPrefix(text, 64)
	case *uint:
		x, c := parseUintPrefix(text, strconv.IntSize)
		*p, n = uint(x), c
	case *uint8:
		x, c := parseUintPrefix(text, 8)
		*p, n = uint8(x), c
	case *uint16:
		x, c := parseUintPrefix(text, 16)
		*p, n = uint16(x), c
	case *uint32:
		x, c := parseUintPrefix(text, 32)
		*p, n = uint32(x), c
	case *uint64:
		*p, n = parseUintPrefix(text, 64)
	case *float32:
		x, c := parseFloatPrefix(text, 32)
		*p, n = float32(x), c
	case *float64:
		*p, n = parseFloatPrefix(text, 64)
	case *string:
		if len(text) > 0 && text[0] == '=' {
			*p = text[1:]
		} else {
			*p = text
		}
		n = len(text)
	default:
		panic(fmt.Sprintf("argv: unsupported type %T", v))
	}
	return v, n
}

type varTarget[T Scalar] struct {
	p *T
}

// Var returns a Target that stores into p.
func Var[T Scalar](p *T) Target {
	if p == nil {
		panic("argv: Var called with nil pointer")
	}
	return varTarget[T]{p: p}
}

func (t varTarget[T]) traits() Traits { return traitsFor(kindOf[T]()) }

func (t varTarget[T]) coerce(text string) (int, func()) {
	v, n := coerceScalar[T](text)
	return n, func() { *t.p = v }
}

type listTarget[T Scalar] struct {
	p *[]T
}

// List returns a Target that appends each value to *p, in order.
// It can only be used with AddList.
func List[T Scalar](p *[]T) Target {
	if p == nil {
		panic("argv: List called with nil pointer")
	}
	return listTarget[T]{p: p}
}

func (t listTarget[T]) traits() Traits {
	tr := traitsFor(kindOf[T]())
	tr.Container = true
	return tr
}

func (t listTarget[T]) coerce(text string) (int, func()) {
	v, n := coerceScalar[T](text)
	return n, func() { *t.p = append(*t.p, v) }
}
