// The MIT License (MIT)
//
// Copyright (c) 2026 The shapes Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package types

// Field is a named item of a shape.
type Field struct {
	Name     string
	Type     Type
	Required bool
	ReadOnly bool
}

// Openness indicates which keys, other than the named fields, a shape permits.
type Openness int

const (
	// Unlisted keys are not permitted. This is equivalent to `extra_items=Never`.
	Closed Openness = iota
	// Unlisted keys may hold values of any type, but may not be written through the shape.
	// This is equivalent to `extra_items=ReadOnly[object]`.
	Open
	// Unlisted keys must hold values of the declared extra type.
	ExtraItems
)

func (o Openness) String() string {
	switch o {
	case Open:
		return "open"
	case Closed:
		return "closed"
	case ExtraItems:
		return "extra_items"
	}
	return "invalid"
}

// Extra is the rule governing keys which are not named by a shape. The zero value is the absent
// rule: no unlisted keys are permitted, but subclasses may still name new keys.
type Extra struct {
	Openness Openness
	// Type and ReadOnly are only meaningful when Openness is ExtraItems.
	Type     Type
	ReadOnly bool
	// Declared is set when the rule was declared rather than implied by its absence.
	Declared bool
}

var (
	NoExtra     = Extra{}
	OpenExtra   = Extra{Openness: Open, Declared: true}
	ClosedExtra = Extra{Openness: Closed, Declared: true}
)

// Create an explicit extra rule.
func ExtraOf(t Type, readOnly bool) Extra {
	return Extra{Openness: ExtraItems, Type: t, ReadOnly: readOnly, Declared: true}
}

// Rule returns the effective value type and read-only flag for unlisted keys.
func (e Extra) Rule() (Type, bool) {
	switch e.Openness {
	case Closed:
		return Never, true
	case ExtraItems:
		return e.Type, e.ReadOnly
	}
	return Object, true
}

// Sealed reports whether the rule was declared to permit no unlisted keys (`closed=True` or
// `extra_items=Never`). Subclasses of a sealed shape cannot name new keys.
func (e Extra) Sealed() bool {
	if !e.Declared {
		return false
	}
	t, _ := e.Rule()
	_, never := RealType(t).(*Bottom)
	return never
}

// Pseudo returns the extra rule as a field which stands in for any unlisted key. Pseudo-fields
// are never required.
func (e Extra) Pseudo() *Field {
	t, ro := e.Rule()
	return &Field{Name: "", Type: t, ReadOnly: ro}
}

// Record-shape type: `{name: str, year: NotRequired[int]}`
//
// A shape stores its own fields and references its bases; the flattened field set contains the
// inherited fields, overridden by the shape's own fields. Shapes are immutable once created.
type Shape struct {
	Name string

	bases       []*Shape
	own         FieldMap
	extra       Extra
	fields      FieldMap
	hasRequired bool
}

// Create a shape. Own fields override inherited fields with the same name; bases are merged in
// order. The extra rule must already account for inheritance.
func NewShape(name string, bases []*Shape, own FieldMap, extra Extra) *Shape {
	s := &Shape{Name: name, bases: append([]*Shape(nil), bases...), own: own, extra: extra}
	b := NewFieldMapBuilder()
	for _, base := range bases {
		b.Merge(base.fields)
	}
	b.Merge(own)
	s.fields = b.Build()
	s.fields.Range(func(f *Field) bool {
		s.hasRequired = f.Required
		return !s.hasRequired
	})
	return s
}

// Bases returns a copy of the shape's direct bases.
func (s *Shape) Bases() []*Shape { return append([]*Shape(nil), s.bases...) }

// Own returns the fields declared by the shape itself.
func (s *Shape) Own() FieldMap { return s.own }

// Extra returns the rule for unlisted keys, which already accounts for inheritance.
func (s *Shape) Extra() Extra { return s.extra }

// Fields returns the flattened field set, including inherited fields.
func (s *Shape) Fields() FieldMap { return s.fields }

// Field returns the named field, including inherited fields.
func (s *Shape) Field(name string) (*Field, bool) { return s.fields.Get(name) }

// Closed reports whether the shape permits no unlisted keys.
func (s *Shape) Closed() bool {
	if s.extra.Openness == Closed {
		return true
	}
	if s.extra.Openness == ExtraItems {
		_, never := RealType(s.extra.Type).(*Bottom)
		return never
	}
	return false
}

// HasRequired reports whether the shape or any of its bases declares a required field.
func (s *Shape) HasRequired() bool { return s.hasRequired }

// Corresponding returns the field which corresponds to the given name: the named field if the
// shape has one, or else the extra rule as a pseudo-field. If the shape is closed and does not
// name the field, nil is returned.
func (s *Shape) Corresponding(name string) *Field {
	if f, ok := s.fields.Get(name); ok {
		return f
	}
	if s.Closed() {
		return nil
	}
	return s.extra.Pseudo()
}

// Check if the shape inherits from (or is) the given shape.
func (s *Shape) Inherits(base *Shape) bool {
	if s == base {
		return true
	}
	for _, b := range s.bases {
		if b.Inherits(base) {
			return true
		}
	}
	return false
}
