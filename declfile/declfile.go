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

// declfile loads shape, class, and narrowing-function declarations from YAML documents.
//
//  classes:
//    Animal: []
//    Dog: [Animal]
//  shapes:
//    Base:
//      open: true
//    Movie:
//      extra_items: "ReadOnly[str | int]"
//      fields:
//        name: str
//        year: "NotRequired[int]"
//  functions:
//    is_dog: "Callable[[Animal], TypeIs[Dog]]"
//  checks:
//    - {source: Movie, target: "Mapping[str, object]", expect: true}
package declfile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rdkamali/shapes"
	"github.com/rdkamali/shapes/typeexpr"
	"github.com/rdkamali/shapes/types"
)

type document struct {
	Classes   yaml.Node   `yaml:"classes"`
	Shapes    yaml.Node   `yaml:"shapes"`
	Functions yaml.Node   `yaml:"functions"`
	Checks    []checkNode `yaml:"checks"`
}

type shapeNode struct {
	Bases      []string  `yaml:"bases"`
	Total      *bool     `yaml:"total"`
	Closed     bool      `yaml:"closed"`
	Open       bool      `yaml:"open"`
	ExtraItems string    `yaml:"extra_items"`
	Fields     yaml.Node `yaml:"fields"`
}

type checkNode struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
	Expect bool   `yaml:"expect"`
}

// Function is a declared narrowing function.
type Function struct {
	Name string
	Type *types.Arrow
	Line int
}

// Check is an assertion that a source type is (or is not) consistent with a target type.
type Check struct {
	Source string
	Target string
	Expect bool
}

// Declarations contains everything declared by a document, in declaration order.
type Declarations struct {
	Env       *shapes.Env
	Classes   []*types.Class
	Shapes    []*types.Shape
	Functions []Function
	Checks    []Check
}

// Load declarations from a YAML file. See Parse.
func Load(path string) (*Declarations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decls, err := Parse(data, nil)
	if err != nil {
		return decls, fmt.Errorf("%s: %w", path, err)
	}
	return decls, nil
}

// Parse declarations from a YAML document into a new environment which inherits from parent.
//
// If the document is malformed, nil declarations are returned with the error. If declarations
// are ill-formed, the valid declarations are returned along with an error of type
// shapes.Diagnostics.
func Parse(data []byte, parent *shapes.Env) (*Declarations, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid declaration document: %w", err)
	}
	l := &loader{decls: &Declarations{Env: shapes.NewEnv(parent)}}
	if err := l.classes(&doc.Classes); err != nil {
		return nil, err
	}
	shapeDecls, err := l.shapeDecls(&doc.Shapes)
	if err != nil {
		return nil, err
	}
	declared, err := l.decls.Env.DeclareShapes(shapeDecls)
	l.decls.Shapes = declared
	if err != nil {
		var ds shapes.Diagnostics
		if !errors.As(err, &ds) {
			return nil, err
		}
		l.diags = append(l.diags, ds...)
	}
	if err := l.functions(&doc.Functions); err != nil {
		return nil, err
	}
	for _, name := range l.decls.Env.Unresolved() {
		l.report(name, "", "unknown or undeclared type name")
	}
	for _, c := range doc.Checks {
		l.decls.Checks = append(l.decls.Checks, Check{Source: c.Source, Target: c.Target, Expect: c.Expect})
	}
	return l.decls, l.diags.Err()
}

type loader struct {
	decls *Declarations
	diags shapes.Diagnostics
}

func (l *loader) report(decl, field, format string, args ...interface{}) {
	l.diags = append(l.diags, &shapes.Diagnostic{
		Kind:    shapes.IllFormedDeclaration,
		Decl:    decl,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

// Iterate over the entries of a mapping node, in document order.
func mappingEntries(n *yaml.Node, section string, f func(key string, value *yaml.Node) error) error {
	if n.Kind == 0 {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: %s must be a mapping", n.Line, section)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: %s keys must be names", k.Line, section)
		}
		if err := f(k.Value, v); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) classes(n *yaml.Node) error {
	return mappingEntries(n, "classes", func(name string, v *yaml.Node) error {
		var bases []string
		if err := v.Decode(&bases); err != nil {
			return fmt.Errorf("line %d: bases of class %s must be a list of names: %w", v.Line, name, err)
		}
		c, err := l.decls.Env.DeclareClass(name, bases...)
		if err != nil {
			var d *shapes.Diagnostic
			if !errors.As(err, &d) {
				return err
			}
			l.diags = append(l.diags, d)
			return nil
		}
		l.decls.Classes = append(l.decls.Classes, c)
		return nil
	})
}

func (l *loader) shapeDecls(n *yaml.Node) ([]shapes.ShapeDecl, error) {
	var decls []shapes.ShapeDecl
	err := mappingEntries(n, "shapes", func(name string, v *yaml.Node) error {
		var sn shapeNode
		if err := v.Decode(&sn); err != nil {
			return fmt.Errorf("line %d: invalid shape %s: %w", v.Line, name, err)
		}
		decl := shapes.ShapeDecl{Name: name, Bases: sn.Bases, Closed: sn.Closed, Open: sn.Open}
		if sn.Total != nil && !*sn.Total {
			decl.NotTotal = true
		}
		if sn.ExtraItems != "" {
			fd, ok := l.fieldDecl(name, "extra_items", sn.ExtraItems, v.Line)
			if ok {
				decl.ExtraItems = &fd
			}
		}
		err := mappingEntries(&sn.Fields, "fields of "+name, func(field string, fv *yaml.Node) error {
			if fv.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: type of %s.%s must be a type expression", fv.Line, name, field)
			}
			fd, ok := l.fieldDecl(name, field, fv.Value, fv.Line)
			if ok {
				decl.Fields = append(decl.Fields, fd)
			}
			return nil
		})
		if err != nil {
			return err
		}
		decls = append(decls, decl)
		return nil
	})
	return decls, err
}

func (l *loader) fieldDecl(decl, field, src string, line int) (shapes.FieldDecl, bool) {
	t, q, err := typeexpr.ParseQualified(src, l.decls.Env)
	if err != nil {
		l.report(decl, field, "line %d: %v", line, err)
		return shapes.FieldDecl{}, false
	}
	return shapes.FieldDecl{
		Name:        field,
		Type:        t,
		Required:    q.Required,
		NotRequired: q.NotRequired,
		ReadOnly:    q.ReadOnly,
	}, true
}

func (l *loader) functions(n *yaml.Node) error {
	return mappingEntries(n, "functions", func(name string, v *yaml.Node) error {
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: type of function %s must be a type expression", v.Line, name)
		}
		t, err := typeexpr.ParseType(v.Value, l.decls.Env)
		if err != nil {
			l.report(name, "", "line %d: %v", v.Line, err)
			return nil
		}
		fn, ok := t.(*types.Arrow)
		if !ok {
			l.report(name, "", "line %d: %s is not a callable type", v.Line, types.TypeString(t))
			return nil
		}
		if err := shapes.ValidateNarrowingFunc(name, fn); err != nil {
			var d *shapes.Diagnostic
			if !errors.As(err, &d) {
				return err
			}
			l.diags = append(l.diags, d)
			return nil
		}
		l.decls.Functions = append(l.decls.Functions, Function{Name: name, Type: fn, Line: v.Line})
		return nil
	})
}

// Result is the outcome of evaluating a check.
type Result struct {
	Check      Check
	Consistent bool
	// Reason describes why the source is not consistent with the target.
	Reason string
}

// Passed reports whether the outcome matched the expectation.
func (r Result) Passed() bool { return r.Consistent == r.Check.Expect }

// Evaluate the check within an environment.
func (c Check) Evaluate(env *shapes.Env) (Result, error) {
	src, err := ParseDeclared(c.Source, env)
	if err != nil {
		return Result{Check: c}, fmt.Errorf("source %q: %w", c.Source, err)
	}
	dst, err := ParseDeclared(c.Target, env)
	if err != nil {
		return Result{Check: c}, fmt.Errorf("target %q: %w", c.Target, err)
	}
	ctx := shapes.NewContext()
	ok := ctx.IsConsistent(src, dst)
	return Result{Check: c, Consistent: ok, Reason: ctx.Reason()}, nil
}

// ParseDeclared parses and resolves a type expression in which every name must already be declared.
func ParseDeclared(src string, env *shapes.Env) (types.Type, error) {
	scope := &declaredScope{env: env}
	t, err := typeexpr.ParseType(src, scope)
	if err != nil {
		return nil, err
	}
	if len(scope.unknown) > 0 {
		return nil, fmt.Errorf("unknown type name %s", scope.unknown[0])
	}
	return t, nil
}

type declaredScope struct {
	env     *shapes.Env
	unknown []string
}

func (s *declaredScope) Ref(name string) types.Type {
	if t, ok := s.env.Lookup(name); ok {
		return t
	}
	s.unknown = append(s.unknown, name)
	return types.NewNamed(name)
}
