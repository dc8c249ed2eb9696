// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package specfile

import (
	"fmt"
	"slices"
	"sort"

	"github.com/yeetrun/argv/pkg/argv"
)

// slot is the typed storage behind one declaration.
type slot interface {
	target() argv.Target
	value() Value
	reset()
}

type scalarSlot[T argv.Scalar] struct {
	typ string
	v   T
}

func (s *scalarSlot[T]) target() argv.Target { return argv.Var(&s.v) }
func (s *scalarSlot[T]) value() Value      { return Value{Type: s.typ, Present: true, V: s.v} }

func (s *scalarSlot[T]) reset() {
	var zero T
	s.v = zero
}

type nullableSlot[T argv.Scalar] struct {
	typ string
	v   argv.Argument[T]
}

func (s *nullableSlot[T]) target() argv.Target { return &s.v }
func (s *nullableSlot[T]) reset()              { s.v.Reset() }

func (s *nullableSlot[T]) value() Value {
	return Value{Type: s.typ, Nullable: true, Present: s.v.Present(), V: s.v.Get()}
}

type listSlot[T argv.Scalar] struct {
	typ string
	v   []T
}

func (s *listSlot[T]) target() argv.Target { return argv.List(&s.v) }
func (s *listSlot[T]) reset()              { s.v = nil }

func (s *listSlot[T]) value() Value {
	return Value{Type: "[]" + s.typ, Present: true, V: slices.Clone(s.v)}
}

type slotFactory struct {
	scalar, nullable, list func() slot
}

func factoryFor[T argv.Scalar](typ string) slotFactory {
	return slotFactory{
		scalar:   func() slot { return &scalarSlot[T]{typ: typ} },
		nullable: func() slot { return &nullableSlot[T]{typ: typ} },
		list:     func() slot { return &listSlot[T]{typ: typ} },
	}
}

var factories = map[string]slotFactory{
	"bool":    factoryFor[bool]("bool"),
	"int":     factoryFor[int]("int"),
	"int8":    factoryFor[int8]("int8"),
	"int16":   factoryFor[int16]("int16"),
	"int32":   factoryFor[int32]("int32"),
	"int64":   factoryFor[int64]("int64"),
	"uint":    factoryFor[uint]("uint"),
	"uint8":   factoryFor[uint8]("uint8"),
	"uint16":  factoryFor[uint16]("uint16"),
	"uint32":  factoryFor[uint32]("uint32"),
	"uint64":  factoryFor[uint64]("uint64"),
	"float32": factoryFor[float32]("float32"),
	"float64": factoryFor[float64]("float64"),
	"string":  factoryFor[string]("string"),
}

// Types returns the type names a declaration file may use, sorted.
func Types() []string {
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// newSlot returns storage for typ. An empty type means string.
func newSlot(typ string, nullable, list bool) (slot, error) {
	if typ == "" {
		typ = "string"
	}
	f, ok := factories[typ]
	if !ok {
		return nil, fmt.Errorf("unknown type %q", typ)
	}
	switch {
	case list:
		return f.list(), nil
	case nullable:
		return f.nullable(), nil
	default:
		return f.scalar(), nil
	}
}
