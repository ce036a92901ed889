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

package declfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rdkamali/shapes"
	"github.com/rdkamali/shapes/types"
)

const movies = `
classes:
  Animal: []
  Dog: [Animal]
shapes:
  Sequel:
    bases: [Movie]
    fields:
      prequel: str
  Movie:
    extra_items: "ReadOnly[str | int]"
    fields:
      name: str
      year: "NotRequired[int]"
  Partial:
    total: false
    closed: true
    fields:
      a: int
      b: "Required[str]"
  Node:
    closed: true
    fields:
      value: int
      next: "NotRequired[Node]"
functions:
  is_dog: "Callable[[Animal], TypeIs[Dog]]"
  is_movie: "Callable[[object], TypeGuard[Movie]]"
checks:
  - {source: Movie, target: "Mapping[str, object]", expect: true}
  - {source: Sequel, target: Movie, expect: true}
  - {source: Movie, target: Sequel, expect: false}
  - {source: Partial, target: "Mapping[str, int | str]", expect: true}
`

func TestParse(t *testing.T) {
	decls, err := Parse([]byte(movies), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(decls.Classes) != 2 || decls.Classes[1].Name != "Dog" {
		t.Fatalf("unexpected classes %v", decls.Classes)
	}
	// Bases are declared before the shapes which inherit from them:
	names := make([]string, len(decls.Shapes))
	for i, s := range decls.Shapes {
		names[i] = s.Name
	}
	if strings.Join(names, " ") != "Movie Sequel Partial Node" {
		t.Fatalf("unexpected shapes %v", names)
	}

	sequel, _ := decls.Env.LookupShape("Sequel")
	if s := types.ShapeString(sequel); s != "Sequel{name: str, prequel: str, year: NotRequired[int], extra_items: ReadOnly[str | int]}" {
		t.Fatalf("unexpected shape %s", s)
	}
	partial, _ := decls.Env.LookupShape("Partial")
	if s := types.ShapeString(partial); s != "Partial{a: NotRequired[int], b: str, closed}" {
		t.Fatalf("unexpected shape %s", s)
	}

	if len(decls.Functions) != 2 || decls.Functions[0].Name != "is_dog" || decls.Functions[0].Line == 0 {
		t.Fatalf("unexpected functions %v", decls.Functions)
	}
	if s := types.TypeString(decls.Functions[1].Type); s != "Callable[[object], TypeGuard[Movie]]" {
		t.Fatalf("unexpected function type %s", s)
	}

	if len(decls.Checks) != 4 {
		t.Fatalf("expected 4 checks, found %d", len(decls.Checks))
	}
	for _, c := range decls.Checks {
		res, err := c.Evaluate(decls.Env)
		if err != nil {
			t.Fatal(err)
		}
		if !res.Passed() {
			t.Fatalf("check %s <: %s failed: %s", c.Source, c.Target, res.Reason)
		}
	}
}

func TestParseDiagnostics(t *testing.T) {
	src := `
classes:
  Dog: [Missing]
shapes:
  Bad:
    closed: true
    extra_items: int
  Typo:
    fields:
      name: "strr"
      year: "list["
  Child:
    bases: [Typo]
    fields:
      name: "ReadOnly[strr]"
functions:
  not_narrowing: "Callable[[int], bool]"
  not_callable: int
  inconsistent: "Callable[[str], TypeIs[int]]"
`
	decls, err := Parse([]byte(src), nil)
	var ds shapes.Diagnostics
	if !errors.As(err, &ds) {
		t.Fatalf("expected diagnostics, found %v", err)
	}
	if decls == nil {
		t.Fatalf("expected valid declarations to be returned with diagnostics")
	}
	expect := []string{
		"IllFormedDeclaration: Dog: unknown base class Missing",
		"IllFormedDeclaration: Typo.year: line 11: syntax error",
		"IllFormedDeclaration: Bad.extra_items: only one of closed, open, and extra_items can be declared",
		"IllFormedDeclaration: Child.name: inherited writable field cannot be made read-only",
		"IllFormedDeclaration: not_narrowing: function does not return a narrowing type",
		"IllFormedDeclaration: not_callable: line 18: int is not a callable type",
		"IllFormedDeclaration: inconsistent: narrowed type int is not consistent with input type str",
		"IllFormedDeclaration: strr: unknown or undeclared type name",
	}
	msg := err.Error()
	for _, e := range expect {
		if !strings.Contains(msg, e) {
			t.Fatalf("expected a diagnostic %q, found:\n%s", e, msg)
		}
	}
	if len(ds) != len(expect) {
		t.Fatalf("expected %d diagnostics, found %d:\n%s", len(expect), len(ds), msg)
	}
	if _, ok := decls.Env.LookupShape("Typo"); !ok {
		t.Fatalf("expected Typo to be declared")
	}
}

func TestParseExtraItemsDefault(t *testing.T) {
	src := `
shapes:
  A:
    fields:
      name: str
      year: "NotRequired[int]"
  OpenA:
    open: true
    fields:
      name: str
      year: "NotRequired[int]"
  B:
    extra_items: "ReadOnly[str | int]"
    fields:
      name: str
  W:
    extra_items: int
    fields:
      name: str
`
	decls, err := Parse([]byte(src), nil)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := decls.Env.LookupShape("A")
	if !a.Closed() || types.ShapeString(a) != "A{name: str, year: NotRequired[int]}" {
		t.Fatalf("expected A to be closed, found %s", types.ShapeString(a))
	}
	openA, _ := decls.Env.LookupShape("OpenA")
	if openA.Closed() || types.ShapeString(openA) != "OpenA{name: str, year: NotRequired[int], open}" {
		t.Fatalf("expected OpenA to be open, found %s", types.ShapeString(openA))
	}

	for _, c := range []Check{
		{Source: "A", Target: "B", Expect: true},
		{Source: "A", Target: "W", Expect: false},
		{Source: "OpenA", Target: "B", Expect: false},
		{Source: "A", Target: "OpenA", Expect: true},
	} {
		res, err := c.Evaluate(decls.Env)
		if err != nil {
			t.Fatal(err)
		}
		if !res.Passed() {
			t.Fatalf("expected %s <: %s to be %t: %s", c.Source, c.Target, c.Expect, res.Reason)
		}
	}

	_, err = Parse([]byte("shapes:\n  Both:\n    open: true\n    closed: true\n"), nil)
	if err == nil || !strings.Contains(err.Error(), "only one of closed, open, and extra_items") {
		t.Fatalf("expected open and closed to be rejected together, found %v", err)
	}
}

func TestParseMalformed(t *testing.T) {
	for _, src := range []string{
		"shapes: [Movie]",
		"classes:\n  Dog: 1\n",
		"shapes:\n  Movie:\n    fields:\n      name: [str]\n",
		"checks: {source: int}",
		"shapes: {",
	} {
		decls, err := Parse([]byte(src), nil)
		if err == nil {
			t.Fatalf("%q: expected an error", src)
		}
		var ds shapes.Diagnostics
		if errors.As(err, &ds) || decls != nil {
			t.Fatalf("%q: expected a malformed document, found %v", src, err)
		}
	}
}

func TestParseParent(t *testing.T) {
	parent, err := Parse([]byte("shapes:\n  Base:\n    fields:\n      id: int\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	child, err := Parse([]byte("shapes:\n  Derived:\n    bases: [Base]\n    fields:\n      name: str\n"), parent.Env)
	if err != nil {
		t.Fatal(err)
	}
	if len(child.Shapes) != 1 {
		t.Fatalf("expected only the child's shapes, found %d", len(child.Shapes))
	}
	if _, ok := child.Shapes[0].Field("id"); !ok {
		t.Fatalf("expected Derived to inherit id")
	}
}

func TestCheckEvaluate(t *testing.T) {
	decls, err := Parse([]byte(movies), nil)
	if err != nil {
		t.Fatal(err)
	}
	res, err := Check{Source: "Movie", Target: "Mapping[str, str]", Expect: true}.Evaluate(decls.Env)
	if err != nil {
		t.Fatal(err)
	}
	if res.Passed() || res.Consistent || res.Reason == "" {
		t.Fatalf("unexpected result %+v", res)
	}
	if _, err := (Check{Source: "Unknown", Target: "Movie"}).Evaluate(decls.Env); err == nil {
		t.Fatalf("expected an unknown name to be rejected")
	}
	if _, err := (Check{Source: "Movie", Target: "Mapping[str"}).Evaluate(decls.Env); err == nil {
		t.Fatalf("expected a syntax error")
	}
	if _, ok := decls.Env.LookupShape("Unknown"); ok || len(decls.Env.Unresolved()) != 0 {
		t.Fatalf("expected checks not to create references")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.yaml")
	if err := os.WriteFile(path, []byte(movies), 0o644); err != nil {
		t.Fatal(err)
	}
	decls, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(decls.Shapes) != 4 {
		t.Fatalf("expected 4 shapes, found %d", len(decls.Shapes))
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a missing file error, found %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("shapes:\n  A:\n    bases: [A]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(bad)
	var ds shapes.Diagnostics
	if !errors.As(err, &ds) || !strings.HasPrefix(err.Error(), bad+": ") {
		t.Fatalf("expected diagnostics prefixed with the path, found %v", err)
	}
}
