// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
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

import (
	"github.com/benbjohnson/immutable"
)

var emptyMap = immutable.NewSortedMap(nil)

var EmptyFieldMap = FieldMap{emptyMap}

// FieldMap contains immutable mappings from field names to fields.
type FieldMap struct {
	m *immutable.SortedMap
}

func NewFieldMap() FieldMap { return FieldMap{emptyMap} }

// Create a FieldMap from a list of fields. Later fields replace earlier fields with the same name.
func NewFieldMapOf(fields ...*Field) FieldMap {
	b := NewFieldMapBuilder()
	for _, f := range fields {
		b.Set(f)
	}
	return b.Build()
}

// Get the number of entries in the map.
func (m FieldMap) Len() int {
	if m.m == nil {
		return 0
	}
	return m.m.Len()
}

// Get the field with the given name.
func (m FieldMap) Get(name string) (*Field, bool) {
	if m.m == nil {
		return nil, false
	}
	f, ok := m.m.Get(name)
	if !ok {
		return nil, false
	}
	return f.(*Field), true
}

// Iterate over entries in the map. Entries are sorted by name.
// If f returns false, iteration will be stopped.
func (m FieldMap) Range(f func(*Field) bool) {
	if m.m == nil {
		return
	}
	iter := m.m.Iterator()
	for !iter.Done() {
		_, v := iter.Next()
		if !f(v.(*Field)) {
			return
		}
	}
}

// Fields copies the entries of the map into a slice, sorted by name.
func (m FieldMap) Fields() []*Field {
	fs := make([]*Field, 0, m.Len())
	m.Range(func(f *Field) bool {
		fs = append(fs, f)
		return true
	})
	return fs
}

// Convert the map to a builder for modification, without mutating the existing map.
func (m FieldMap) Builder() FieldMapBuilder {
	imm := m.m
	if imm == nil {
		imm = emptyMap
	}
	return FieldMapBuilder{immutable.NewSortedMapBuilder(imm)}
}

// FieldMapBuilder enables in-place updates of a map before finalization.
type FieldMapBuilder struct {
	b *immutable.SortedMapBuilder
}

func NewFieldMapBuilder() FieldMapBuilder {
	return FieldMapBuilder{immutable.NewSortedMapBuilder(emptyMap)}
}

// Get the number of entries in the builder.
func (b FieldMapBuilder) Len() int { return b.b.Len() }

// Get the field with the given name from the builder.
func (b FieldMapBuilder) Get(name string) (*Field, bool) {
	f, ok := b.b.Get(name)
	if !ok {
		return nil, false
	}
	return f.(*Field), true
}

// Set a field in the builder, replacing any field with the same name.
func (b FieldMapBuilder) Set(f *Field) FieldMapBuilder {
	b.b.Set(f.Name, f)
	return b
}

// Delete the field with the given name from the builder.
func (b FieldMapBuilder) Delete(name string) FieldMapBuilder {
	b.b.Delete(name)
	return b
}

// Finalize the builder into an immutable map.
func (b FieldMapBuilder) Build() FieldMap {
	if b.b == nil {
		return EmptyFieldMap
	}
	return FieldMap{b.b.Map()}
}

// Merge entries into the builder. Entries in m replace existing entries with the same name.
func (b FieldMapBuilder) Merge(m FieldMap) FieldMapBuilder {
	m.Range(func(f *Field) bool {
		b.Set(f)
		return true
	})
	return b
}
