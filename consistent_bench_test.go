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

package shapes_test

import (
	"testing"

	. "github.com/rdkamali/shapes"
	. "github.com/rdkamali/shapes/construct"

	"github.com/rdkamali/shapes/types"
)

func BenchmarkWritableExtraItems(b *testing.B) {
	ctx := NewContext()
	target := TExtra("Target", Int, false, Req("name", Str), Opt("year", Int))
	source := TExtra("Source", Int, false, Req("name", Str), Opt("year", Int), Opt("rating", Int), Opt("budget", Int))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !ctx.IsConsistent(source, target) {
			b.Fatal(ctx.Reason())
		}
	}
}

func BenchmarkRecursiveShapes(b *testing.B) {
	env := NewEnv(nil)
	decl := func(name string) ShapeDecl {
		return ShapeDecl{
			Name:   name,
			Closed: true,
			Fields: []FieldDecl{
				{Name: "value", Type: TUnion(Int, Str)},
				{Name: "left", Type: env.Ref(name), NotRequired: true},
				{Name: "right", Type: env.Ref(name), NotRequired: true},
			},
		}
	}
	declared, err := env.DeclareShapes([]ShapeDecl{decl("Tree"), decl("Branch")})
	if err != nil {
		b.Fatal(err)
	}
	ctx := NewContext()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !ctx.IsConsistent(declared[0], declared[1]) {
			b.Fatal(ctx.Reason())
		}
	}
}

func BenchmarkPooledContext(b *testing.B) {
	source := TClosed("Source", Req("name", Str), Opt("year", Int))
	target := TMapping(TUnion(Str, Int, types.NoneType))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !IsConsistent(source, target) {
			b.Fatal("expected Source to be consistent with the mapping")
		}
	}
}
