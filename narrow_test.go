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

package shapes_test

import (
	"testing"

	. "github.com/rdkamali/shapes"
	. "github.com/rdkamali/shapes/construct"

	"github.com/rdkamali/shapes/types"
)

func TestValidateNarrowingFunc(t *testing.T) {
	valid := map[string]*types.Arrow{
		"is_int":       TArrow1(TUnion(Int, Str), TTypeIs(Int)),
		"is_object":    TArrow1(Object, TTypeIs(Str)),
		"guard_int":    TArrow1(Str, TTypeGuard(Int)),
		"is_str_extra": TArrow([]types.Type{Object, Int}, TTypeIs(Str)),
	}
	for name, fn := range valid {
		if err := ValidateNarrowingFunc(name, fn); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}

	invalid := map[string]*types.Arrow{
		"not_narrowing": TArrow1(Object, Bool),
		"no_args":       TArrow(nil, TTypeIs(Int)),
		"inconsistent":  TArrow1(Str, TTypeIs(Int)),
		"wider":         TArrow1(Int, TTypeIs(TUnion(Int, Str))),
	}
	for name, fn := range invalid {
		err := ValidateNarrowingFunc(name, fn)
		d, ok := err.(*Diagnostic)
		if !ok || d.Kind != IllFormedDeclaration || d.Decl != name {
			t.Fatalf("%s: expected an ill-formed declaration, found %v", name, err)
		}
	}
}

func TestNarrowTypeGuard(t *testing.T) {
	declared := TUnion(Int, Str)
	guard := TTypeGuard(Int)
	if got := NarrowType(declared, guard, true); got != Int {
		t.Fatalf("positive: %s", types.TypeString(got))
	}
	if got := NarrowType(declared, guard, false); got != declared {
		t.Fatalf("negative: %s", types.TypeString(got))
	}
}

func TestNarrowTypeIs(t *testing.T) {
	cases := []struct {
		declared, target types.Type
		positive         string
		negative         string
	}{
		{TUnion(Int, Str), Int, "int", "str"},
		{TUnion(Int, Str, Float), TUnion(Int, Str), "int | str", "float"},
		{Int, Bool, "bool", "int"},
		{Bool, Int, "bool", "Never"},
		{Str, Int, "Never", "str"},
		{types.Any, Int, "int", "Any"},
		{Object, Str, "str", "object"},
		{TUnion(Bool, Str), Int, "bool", "str"},
	}
	for _, c := range cases {
		n := TTypeIs(c.target)
		if got := types.TypeString(NarrowType(c.declared, n, true)); got != c.positive {
			t.Fatalf("%s narrowed by %s: expected %s, found %s",
				types.TypeString(c.declared), types.TypeString(n), c.positive, got)
		}
		if got := types.TypeString(NarrowType(c.declared, n, false)); got != c.negative {
			t.Fatalf("%s narrowed by not %s: expected %s, found %s",
				types.TypeString(c.declared), types.TypeString(n), c.negative, got)
		}
	}
}

func TestNarrowShapes(t *testing.T) {
	movie := TClosed("Movie", Req("name", Str))
	book := TClosed("Book", Req("title", Str))
	declared := TUnion(movie, book, Int)
	if got := NarrowType(declared, TTypeIs(movie), true); got != movie {
		t.Fatalf("positive: %s", types.TypeString(got))
	}
	if got := types.TypeString(NarrowType(declared, TTypeIs(movie), false)); got != "Book | int" {
		t.Fatalf("negative: %s", got)
	}
}
