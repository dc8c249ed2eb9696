// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argv

import "fmt"

// Argument holds a value that may or may not have been supplied. It tells
// "not given" apart from the type's zero value.
//
// A pointer to an Argument is a Target:
//
//	var name argv.Argument[string]
//	args.AddOption('n', "name", "user name", &name)
type Argument[T Scalar] struct {
	value   T
	present bool
}

// Present reports whether a value has been set.
func (a *Argument[T]) Present() bool { return a.present }

// Get returns the value, or the zero value when none was set.
func (a *Argument[T]) Get() T { return a.value }

// Set stores v and marks the argument present.
func (a *Argument[T]) Set(v T) {
	a.value = v
	a.present = true
}

// Reset returns the argument to the absent state.
func (a *Argument[T]) Reset() {
	var zero T
	a.value = zero
	a.present = false
}

// String returns the formatted value, or "(blank)" when absent.
func (a *Argument[T]) String() string {
	if !a.present {
		return "(blank)"
	}
	return fmt.Sprint(a.value)
}

func (a *Argument[T]) traits() Traits {
	tr := traitsFor(kindOf[T]())
	tr.Nullable = true
	return tr
}

func (a *Argument[T]) coerce(text string) (int, func()) {
	v, n := coerceScalar[T](text)
	return n, func() { a.Set(v) }
}
