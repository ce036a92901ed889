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

package typeexpr

import (
	"errors"
	"strings"
	"testing"

	"github.com/rdkamali/shapes/types"
)

type testScope map[string]types.Type

func (s testScope) Ref(name string) types.Type {
	if t, ok := s[name]; ok {
		return t
	}
	if c, ok := types.Builtins[name]; ok {
		return c
	}
	n := types.NewNamed(name)
	s[name] = n
	return n
}

func TestTokenize(t *testing.T) {
	toks, err := Tokenize("typing.ReadOnly[ dict[str,int] ] | None")
	if err != nil {
		t.Fatal(err)
	}
	expect := []TokenType{IDENT, LSQUARE, IDENT, LSQUARE, IDENT, COMMA, IDENT, RSQUARE, RSQUARE, PIPE, IDENT, EOF}
	if len(toks) != len(expect) {
		t.Fatalf("expected %d tokens, found %d", len(expect), len(toks))
	}
	for i, tok := range toks {
		if tok.Type != expect[i] {
			t.Fatalf("token %d: expected %s, found %s", i, expect[i], tok.Type)
		}
	}
	if toks[0].Lexeme != "typing.ReadOnly" || toks[2].Pos != 17 {
		t.Fatalf("unexpected tokens %v", toks[:3])
	}

	for _, src := range []string{"int?", "typing.", "1int", "list[int]."} {
		_, err := Tokenize(src)
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Fatalf("%q: expected a syntax error, found %v", src, err)
		}
	}
}

func TestParse(t *testing.T) {
	cases := map[string]string{
		"int":                                         "int",
		"  int |str|  None ":                          "int | str | None",
		"list[int,]":                                  "list[int]",
		"Callable[[], bool]":                          "Callable[[], bool]",
		"Callable[[int, str | None], bool]":           "Callable[[int, str | None], bool]",
		"ReadOnly[NotRequired[dict[str, list[int]]]]": "ReadOnly[NotRequired[dict[str, list[int]]]]",
	}
	for src, expect := range cases {
		e, err := Parse(src)
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		if s := ExprString(e); s != expect {
			t.Fatalf("%q: expected %s, found %s", src, expect, s)
		}
	}

	for _, src := range []string{"", "list[]", "list[int", "int]", "int |", "[int] int", "list[,]"} {
		if _, err := Parse(src); err == nil {
			t.Fatalf("%q: expected a syntax error", src)
		}
	}
}

func TestResolve(t *testing.T) {
	movie := &types.Shape{Name: "Movie"}
	scope := testScope{"Movie": movie}
	cases := map[string]string{
		"Any":                                   "Any",
		"object":                                "object",
		"NoReturn":                              "Never",
		"typing.Never":                          "Never",
		"Optional[int]":                         "int | None",
		"Union[int, str, int]":                  "int | str",
		"typing_extensions.TypeIs[Movie]":       "TypeIs[Movie]",
		"TypeGuard[list[int]]":                  "TypeGuard[list[int]]",
		"Callable[[Movie, int], TypeIs[Movie]]": "Callable[[Movie, int], TypeIs[Movie]]",
		"Mapping[str, int | None]":              "Mapping[str, int | None]",
		"Dict[str, Movie]":                      "dict[str, Movie]",
		"dict[str, object]":                     "dict[str, object]",
	}
	for src, expect := range cases {
		typ, err := ParseType(src, scope)
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		if s := types.TypeString(typ); s != expect {
			t.Fatalf("%q: expected %s, found %s", src, expect, s)
		}
	}

	if typ, _ := ParseType("Later", scope); types.TypeString(typ) != "Later" {
		t.Fatalf("expected a named reference for an undeclared name")
	} else if _, ok := typ.(*types.Named); !ok {
		t.Fatalf("expected a named reference, found %T", typ)
	}

	invalid := map[string]string{
		"ReadOnly":                "must be applied to a type",
		"list[ReadOnly[int]]":     "outermost level",
		"Optional[int, str]":      "single type argument",
		"TypeIs[int, str]":        "single type argument",
		"Callable[int, bool]":     "list of types",
		"Callable[[int]]":         "argument list and a return type",
		"Mapping[int, str]":       "keys must be str",
		"dict[str]":               "key type and a value type",
		"Movie[int]":              "not a generic class",
		"[int]":                   "only valid as the arguments of Callable",
		"Callable[[int], [bool]]": "only valid as the arguments of Callable",
	}
	for src, substr := range invalid {
		_, err := ParseType(src, scope)
		var re *ResolveError
		if !errors.As(err, &re) || !strings.Contains(re.Msg, substr) {
			t.Fatalf("%q: expected an error containing %q, found %v", src, substr, err)
		}
	}
}

func TestResolveQualifiers(t *testing.T) {
	scope := testScope{}
	typ, q, err := ParseQualified("typing.ReadOnly[NotRequired[int | str]]", scope)
	if err != nil {
		t.Fatal(err)
	}
	if !q.ReadOnly || !q.NotRequired || q.Required {
		t.Fatalf("unexpected qualifiers %+v", q)
	}
	if types.TypeString(typ) != "int | str" {
		t.Fatalf("unexpected type %s", types.TypeString(typ))
	}

	typ, q, err = ParseQualified("Required[list[int]]", scope)
	if err != nil || !q.Required || types.TypeString(typ) != "list[int]" {
		t.Fatalf("unexpected result %s %+v %v", types.TypeString(typ), q, err)
	}

	for _, src := range []string{"ReadOnly[ReadOnly[int]]", "Required[int, str]", "ReadOnly[Required]"} {
		if _, _, err := ParseQualified(src, scope); err == nil {
			t.Fatalf("%q: expected an error", src)
		}
	}

	// Qualifiers are not types:
	if _, err := ParseType("ReadOnly[int]", scope); err == nil {
		t.Fatalf("expected an unqualified type to reject ReadOnly")
	}
}
