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

package shapes

import (
	"fmt"

	"github.com/rdkamali/shapes/types"
)

// FieldDecl is a field declaration with its qualifiers.
type FieldDecl struct {
	Name string
	Type types.Type
	// `Required[...]`
	Required bool
	// `NotRequired[...]`
	NotRequired bool
	// `ReadOnly[...]`
	ReadOnly bool
}

// ShapeDecl is a shape declaration: `class Name(Bases..., total=..., closed=..., extra_items=...)`
//
// A shape without bases which declares none of Closed, Open, or ExtraItems permits no unlisted
// keys. A shape with bases inherits the extra rule of its bases.
type ShapeDecl struct {
	Name  string
	Bases []string
	// Fields declared without `Required[...]` or `NotRequired[...]` are not required when NotTotal is set.
	NotTotal bool
	Fields   []FieldDecl
	// Closed declares that unlisted keys are not permitted, and that subclasses cannot add fields.
	Closed bool
	// Open declares that unlisted keys may hold any value, which is read-only through the shape.
	// This is equivalent to `extra_items=ReadOnly[object]`.
	Open bool
	// ExtraItems declares the type of unlisted keys. The Name of the declaration is ignored.
	ExtraItems *FieldDecl
}

const extraItemsField = "extra_items"

type declChecker struct {
	ctx   *Context
	name  string
	diags Diagnostics
}

func (c *declChecker) report(field, format string, args ...interface{}) {
	c.diags = append(c.diags, &Diagnostic{
		Kind:    IllFormedDeclaration,
		Decl:    c.name,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

// DeclareShape validates a shape declaration and declares the shape in the environment. Every
// problem with the declaration is reported; if any are found, the returned error will be of type
// Diagnostics and the shape will not be declared.
//
// If references to the shape's name were created with Ref, they will be resolved to the shape.
func (e *Env) DeclareShape(decl ShapeDecl) (*types.Shape, error) {
	c := &declChecker{ctx: NewContext(), name: decl.Name}
	if decl.Name == "" {
		c.report("", "shape name must not be empty")
	} else if _, exists := e.Shapes[decl.Name]; exists {
		c.report("", "shape is already declared")
	} else if _, exists := e.Classes[decl.Name]; exists {
		c.report("", "name is already declared as a class")
	}

	bases := c.bases(e, decl.Bases)
	inherited := c.inheritedFields(bases)
	inheritedExtra := c.inheritedExtra(bases)

	own := types.NewFieldMapBuilder()
	seen := make(map[string]bool, len(decl.Fields))
	for _, fd := range decl.Fields {
		if seen[fd.Name] {
			c.report(fd.Name, "field is declared more than once")
			continue
		}
		seen[fd.Name] = true
		f, ok := c.field(decl, fd)
		if !ok {
			continue
		}
		if inh, ok := inherited.Get(fd.Name); ok {
			c.checkOverride(inh, f)
		} else if len(bases) > 0 {
			c.checkAddition(inheritedExtra, f)
		}
		own.Set(f)
	}

	extra := c.extra(decl, bases, inheritedExtra)

	if len(c.diags) > 0 {
		return nil, c.diags
	}
	s := types.NewShape(decl.Name, bases, own.Build(), extra)
	e.Shapes[decl.Name] = s
	if ref, ok := e.refs[decl.Name]; ok && !ref.Resolved() {
		if err := ref.Resolve(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (c *declChecker) bases(e *Env, names []string) []*types.Shape {
	bases := make([]*types.Shape, 0, len(names))
	for _, name := range names {
		t, ok := e.Lookup(name)
		if !ok {
			c.report("", "unknown base %s", name)
			continue
		}
		s, ok := t.(*types.Shape)
		if !ok {
			c.report("", "base %s is not a shape", name)
			continue
		}
		bases = append(bases, s)
	}
	return bases
}

// Fields which appear in multiple bases must be declared identically.
func (c *declChecker) inheritedFields(bases []*types.Shape) types.FieldMap {
	b := types.NewFieldMapBuilder()
	for _, base := range bases {
		base.Fields().Range(func(f *types.Field) bool {
			if prev, ok := b.Get(f.Name); ok && prev != f && !sameField(prev, f) {
				c.report(f.Name, "field is inherited from multiple bases with conflicting declarations %s and %s",
					types.FieldString(prev), types.FieldString(f))
				return true
			}
			b.Set(f)
			return true
		})
	}
	return b.Build()
}

// Extra rules of multiple bases must be equal, or all read-only with one rule which is consistent
// with all other rules.
func (c *declChecker) inheritedExtra(bases []*types.Shape) types.Extra {
	switch len(bases) {
	case 0:
		return types.NoExtra
	case 1:
		return bases[0].Extra()
	}
	extras := make([]types.Extra, len(bases))
	allReadOnly, allSame := true, true
	for i, base := range bases {
		extras[i] = base.Extra()
		if _, ro := base.Extra().Rule(); !ro {
			allReadOnly = false
		}
		if !sameExtra(extras[0], extras[i]) {
			allSame = false
		}
	}
	if allSame {
		return extras[0]
	}
	if allReadOnly {
		chosen := -1
		for i, candidate := range extras {
			ct, _ := candidate.Rule()
			specific := true
			for _, other := range extras {
				ot, _ := other.Rule()
				if !c.ctx.IsConsistent(ct, ot) {
					specific = false
					break
				}
			}
			// A sealed rule is preferred over an absent rule.
			if specific && (chosen < 0 || candidate.Sealed()) {
				chosen = i
			}
		}
		if chosen >= 0 {
			return extras[chosen]
		}
	}
	c.report(extraItemsField, "bases declare incompatible extra items")
	return extras[0]
}

func (c *declChecker) field(decl ShapeDecl, fd FieldDecl) (*types.Field, bool) {
	if fd.Name == "" {
		c.report("", "field name must not be empty")
		return nil, false
	}
	if fd.Type == nil {
		c.report(fd.Name, "field has no type")
		return nil, false
	}
	if fd.Required && fd.NotRequired {
		c.report(fd.Name, "field cannot be both Required and NotRequired")
		return nil, false
	}
	required := !decl.NotTotal
	switch {
	case fd.Required:
		required = true
	case fd.NotRequired:
		required = false
	}
	return &types.Field{Name: fd.Name, Type: fd.Type, Required: required, ReadOnly: fd.ReadOnly}, true
}

// An inherited writable field may not be changed. An inherited read-only field may be narrowed
// to a consistent type, made writable, or made required.
func (c *declChecker) checkOverride(inh, f *types.Field) {
	if !inh.ReadOnly {
		if f.ReadOnly {
			c.report(f.Name, "inherited writable field cannot be made read-only")
		}
		if f.Required != inh.Required {
			c.report(f.Name, "inherited writable field cannot change from %s to %s",
				types.FieldString(inh), types.FieldString(f))
		}
		if !types.Identical(inh.Type, f.Type) {
			c.report(f.Name, "inherited writable field cannot change type from %s to %s",
				types.TypeString(inh.Type), types.TypeString(f.Type))
		}
		return
	}
	if inh.Required && !f.Required {
		c.report(f.Name, "inherited required field cannot be made not required")
	}
	if !c.ctx.IsConsistent(f.Type, inh.Type) {
		c.report(f.Name, "type %s is not consistent with inherited type %s",
			types.TypeString(f.Type), types.TypeString(inh.Type))
	}
}

// A field added under an inherited extra rule narrows the extra rule for that key. An absent
// extra rule does not constrain added fields.
func (c *declChecker) checkAddition(extra types.Extra, f *types.Field) {
	if !extra.Declared {
		return
	}
	if extra.Sealed() {
		c.report(f.Name, "cannot add a field to a closed shape")
		return
	}
	et, ro := extra.Rule()
	if ro {
		if !c.ctx.IsConsistent(f.Type, et) {
			c.report(f.Name, "type %s is not consistent with inherited extra items %s",
				types.TypeString(f.Type), types.TypeString(et))
		}
		return
	}
	if f.Required {
		c.report(f.Name, "cannot add a required field where inherited extra items are writable")
	}
	if f.ReadOnly {
		c.report(f.Name, "cannot add a read-only field where inherited extra items are writable")
	}
	if !c.ctx.IsConsistent(f.Type, et) || !c.ctx.IsConsistent(et, f.Type) {
		c.report(f.Name, "type %s must be consistent in both directions with inherited writable extra items %s",
			types.TypeString(f.Type), types.TypeString(et))
	}
}

func (c *declChecker) extra(decl ShapeDecl, bases []*types.Shape, inherited types.Extra) types.Extra {
	n := 0
	for _, set := range []bool{decl.Closed, decl.Open, decl.ExtraItems != nil} {
		if set {
			n++
		}
	}
	if n > 1 {
		c.report(extraItemsField, "only one of closed, open, and extra_items can be declared")
		return inherited
	}
	var declared types.Extra
	switch {
	case decl.Closed:
		declared = types.ClosedExtra
	case decl.Open:
		declared = types.OpenExtra
	case decl.ExtraItems != nil:
		ed := decl.ExtraItems
		if ed.Required || ed.NotRequired {
			c.report(extraItemsField, "extra items cannot be qualified with Required or NotRequired")
			return inherited
		}
		if ed.Type == nil {
			c.report(extraItemsField, "extra items have no type")
			return inherited
		}
		declared = types.ExtraOf(ed.Type, ed.ReadOnly)
	default:
		return inherited
	}
	if len(bases) == 0 || !inherited.Declared {
		return declared
	}

	it, iro := inherited.Rule()
	dt, dro := declared.Rule()
	if inherited.Sealed() {
		if !declared.Sealed() {
			c.report(extraItemsField, "a closed shape cannot be reopened")
		}
		return declared
	}
	if !iro {
		if dro || !types.Identical(it, dt) {
			c.report(extraItemsField, "inherited writable extra items %s cannot be redeclared",
				types.TypeString(it))
		}
		return declared
	}
	if !c.ctx.IsConsistent(dt, it) {
		c.report(extraItemsField, "extra items %s are not consistent with inherited extra items %s",
			types.TypeString(dt), types.TypeString(it))
	}
	return declared
}

func sameField(a, b *types.Field) bool {
	return a.Name == b.Name && a.Required == b.Required && a.ReadOnly == b.ReadOnly && types.Identical(a.Type, b.Type)
}

func sameExtra(a, b types.Extra) bool {
	at, aro := a.Rule()
	bt, bro := b.Rule()
	return a.Declared == b.Declared && aro == bro && types.Identical(at, bt)
}
