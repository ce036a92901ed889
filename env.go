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
	"errors"
	"sort"

	"github.com/rdkamali/shapes/internal/util"
	"github.com/rdkamali/shapes/types"
)

// Env is a declaration environment containing mappings from names to declared classes and shapes.
//
// An environment cannot be modified concurrently; to share an environment across threads, create
// a new environment for each thread which inherits from the shared environment.
type Env struct {
	// Declarations in the parent of the current environment
	Parent *Env
	// Classes declared in the current environment
	Classes map[string]*types.Class
	// Shapes declared in the current environment
	Shapes map[string]*types.Shape

	refs map[string]*types.Named
}

// Create an environment. The new environment will inherit declarations from the parent, if the
// parent is not nil. The root environment contains the predeclared classes.
func NewEnv(parent *Env) *Env {
	return &Env{
		Parent:  parent,
		Classes: make(map[string]*types.Class),
		Shapes:  make(map[string]*types.Shape),
		refs:    make(map[string]*types.Named),
	}
}

// Lookup the class or shape declared with the given name.
func (e *Env) Lookup(name string) (types.Type, bool) {
	for env := e; env != nil; env = env.Parent {
		if c, ok := env.Classes[name]; ok {
			return c, true
		}
		if s, ok := env.Shapes[name]; ok {
			return s, true
		}
	}
	if c, ok := types.Builtins[name]; ok {
		return c, true
	}
	return nil, false
}

// Lookup the class declared with the given name.
func (e *Env) LookupClass(name string) (*types.Class, bool) {
	t, ok := e.Lookup(name)
	if !ok {
		return nil, false
	}
	c, ok := t.(*types.Class)
	return c, ok
}

// Lookup the shape declared with the given name.
func (e *Env) LookupShape(name string) (*types.Shape, bool) {
	t, ok := e.Lookup(name)
	if !ok {
		return nil, false
	}
	s, ok := t.(*types.Shape)
	return s, ok
}

// Ref returns a reference to the type declared with the given name. If no such type has been
// declared yet, the reference will be resolved when a shape with the name is declared in the
// current environment.
func (e *Env) Ref(name string) types.Type {
	if t, ok := e.Lookup(name); ok {
		return t
	}
	if ref, ok := e.refs[name]; ok {
		return ref
	}
	ref := types.NewNamed(name)
	e.refs[name] = ref
	return ref
}

// Unresolved returns the sorted names of references which have not been resolved.
func (e *Env) Unresolved() []string {
	var names []string
	for name, ref := range e.refs {
		if !ref.Resolved() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Declare a class which inherits from the named bases.
func (e *Env) DeclareClass(name string, bases ...string) (*types.Class, error) {
	if name == "" {
		return nil, &Diagnostic{Kind: IllFormedDeclaration, Message: "class name must not be empty"}
	}
	if _, exists := e.Classes[name]; exists {
		return nil, &Diagnostic{Kind: IllFormedDeclaration, Decl: name, Message: "class is already declared"}
	}
	c := &types.Class{Name: name}
	for _, baseName := range bases {
		base, ok := e.LookupClass(baseName)
		if !ok {
			return nil, &Diagnostic{Kind: IllFormedDeclaration, Decl: name, Message: "unknown base class " + baseName}
		}
		c.Bases = append(c.Bases, base)
	}
	e.Classes[name] = c
	return c, nil
}

// Declare a set of (possibly mutually-referencing) shapes. Shapes are declared after their bases,
// regardless of their order in decls. Cyclic inheritance is reported as a diagnostic for each
// shape in the cycle; other shapes are still declared.
func (e *Env) DeclareShapes(decls []ShapeDecl) ([]*types.Shape, error) {
	index := make(map[string]int, len(decls))
	for i, d := range decls {
		if _, dupe := index[d.Name]; !dupe {
			index[d.Name] = i
		}
	}
	g := util.NewGraph(len(decls))
	for i, d := range decls {
		for _, base := range d.Bases {
			if j, ok := index[base]; ok {
				g.AddEdge(j, i)
			}
		}
	}
	order, cycles := g.Order()

	var diags Diagnostics
	blocked := make(map[string]bool)
	for _, c := range cycles {
		sort.Ints(c)
		for _, i := range c {
			blocked[decls[i].Name] = true
			diags = append(diags, &Diagnostic{Kind: IllFormedDeclaration, Decl: decls[i].Name, Message: "cyclic inheritance"})
		}
	}

	declared := make([]*types.Shape, 0, len(order))
	for _, i := range order {
		d := decls[i]
		if blockedBase(d, blocked) {
			blocked[d.Name] = true
			diags = append(diags, &Diagnostic{Kind: IllFormedDeclaration, Decl: d.Name, Message: "a base shape could not be declared"})
			continue
		}
		s, err := e.DeclareShape(d)
		if err != nil {
			blocked[d.Name] = true
			var ds Diagnostics
			var single *Diagnostic
			switch {
			case errors.As(err, &ds):
				diags = append(diags, ds...)
			case errors.As(err, &single):
				diags = append(diags, single)
			default:
				return declared, err
			}
			continue
		}
		declared = append(declared, s)
	}
	return declared, diags.Err()
}

func blockedBase(d ShapeDecl, blocked map[string]bool) bool {
	for _, base := range d.Bases {
		if blocked[base] {
			return true
		}
	}
	return false
}

// FlatField is a field of a flattened shape, along with the shape which declares it.
type FlatField struct {
	*types.Field
	Origin *types.Shape
}

// Flatten returns the composed field set of the named shape (its own fields and the fields it
// inherits) in name order. Each field is reported with the nearest shape which declares it.
func (e *Env) Flatten(name string) ([]FlatField, bool) {
	s, ok := e.LookupShape(name)
	if !ok {
		return nil, false
	}
	fields := s.Fields().Fields()
	flat := make([]FlatField, len(fields))
	for i, f := range fields {
		flat[i] = FlatField{Field: f, Origin: origin(s, f)}
	}
	return flat, true
}

func origin(s *types.Shape, f *types.Field) *types.Shape {
	if own, ok := s.Own().Get(f.Name); ok && own == f {
		return s
	}
	for _, base := range s.Bases() {
		if inherited, ok := base.Field(f.Name); ok && inherited == f {
			return origin(base, f)
		}
	}
	return s
}
