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
	"fmt"
	"strings"

	"github.com/rdkamali/shapes/types"
)

// Scope resolves names which are not special forms. Ref may return an unresolved named reference
// for names which have not been declared yet.
type Scope interface {
	Ref(name string) types.Type
}

// Qualifiers are the item qualifiers which may wrap the type of a field.
type Qualifiers struct {
	Required    bool
	NotRequired bool
	ReadOnly    bool
}

// ResolveError is returned for expressions which are well-formed but do not denote a type.
type ResolveError struct {
	Pos int
	Msg string
}

func (e *ResolveError) Error() string { return fmt.Sprintf("offset %d: %s", e.Pos, e.Msg) }

func errorf(e Expr, format string, args ...interface{}) error {
	return &ResolveError{Pos: e.Position(), Msg: fmt.Sprintf(format, args...)}
}

// Resolve a type expression within a scope. Qualifiers are only permitted at the outermost level
// of the expression (and may be nested within each other).
func Resolve(e Expr, scope Scope) (types.Type, Qualifiers, error) {
	var q Qualifiers
	for {
		sub, ok := e.(*Subscript)
		if !ok {
			break
		}
		var flag *bool
		switch baseName(sub.Base.Name) {
		case "Required":
			flag = &q.Required
		case "NotRequired":
			flag = &q.NotRequired
		case "ReadOnly":
			flag = &q.ReadOnly
		}
		if flag == nil {
			break
		}
		if *flag {
			return nil, q, errorf(sub, "%s is applied more than once", sub.Base.Name)
		}
		if len(sub.Args) != 1 {
			return nil, q, errorf(sub, "%s accepts a single type argument", sub.Base.Name)
		}
		*flag = true
		e = sub.Args[0]
	}
	t, err := resolve(e, scope)
	return t, q, err
}

// ResolveType resolves a type expression which must not be qualified.
func ResolveType(e Expr, scope Scope) (types.Type, error) {
	return resolve(e, scope)
}

// ParseType parses and resolves an unqualified type expression.
func ParseType(src string, scope Scope) (types.Type, error) {
	e, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return resolve(e, scope)
}

// ParseQualified parses and resolves a possibly-qualified type expression.
func ParseQualified(src string, scope Scope) (types.Type, Qualifiers, error) {
	e, err := Parse(src)
	if err != nil {
		return nil, Qualifiers{}, err
	}
	return Resolve(e, scope)
}

// Names exported from typing modules may be written with their module prefix.
func baseName(name string) string {
	for _, prefix := range []string{"typing.", "typing_extensions."} {
		if strings.HasPrefix(name, prefix) {
			return name[len(prefix):]
		}
	}
	return name
}

func resolve(e Expr, scope Scope) (types.Type, error) {
	switch e := e.(type) {
	case *Name:
		switch baseName(e.Name) {
		case "Any":
			return types.Any, nil
		case "object":
			return types.Object, nil
		case "Never", "NoReturn":
			return types.Never, nil
		case "None":
			return types.NoneType, nil
		case "Required", "NotRequired", "ReadOnly":
			return nil, errorf(e, "%s must be applied to a type", e.Name)
		}
		return scope.Ref(e.Name), nil

	case *Union:
		ts := make([]types.Type, len(e.Members))
		for i, m := range e.Members {
			t, err := resolve(m, scope)
			if err != nil {
				return nil, err
			}
			ts[i] = t
		}
		return types.NewUnion(ts...), nil

	case *List:
		return nil, errorf(e, "a list of types is only valid as the arguments of Callable")

	case *Subscript:
		return resolveSubscript(e, scope)
	}
	return nil, fmt.Errorf("unsupported expression %T", e)
}

func resolveArgs(args []Expr, scope Scope) ([]types.Type, error) {
	ts := make([]types.Type, len(args))
	for i, arg := range args {
		t, err := resolve(arg, scope)
		if err != nil {
			return nil, err
		}
		ts[i] = t
	}
	return ts, nil
}

func resolveSubscript(e *Subscript, scope Scope) (types.Type, error) {
	name := baseName(e.Base.Name)
	switch name {
	case "Required", "NotRequired", "ReadOnly":
		return nil, errorf(e, "%s is only permitted at the outermost level of a field type", e.Base.Name)

	case "Union":
		ts, err := resolveArgs(e.Args, scope)
		if err != nil {
			return nil, err
		}
		return types.NewUnion(ts...), nil

	case "Optional":
		if len(e.Args) != 1 {
			return nil, errorf(e, "Optional accepts a single type argument")
		}
		t, err := resolve(e.Args[0], scope)
		if err != nil {
			return nil, err
		}
		return types.NewUnion(t, types.NoneType), nil

	case "TypeGuard", "TypeIs":
		if len(e.Args) != 1 {
			return nil, errorf(e, "%s accepts a single type argument", name)
		}
		t, err := resolve(e.Args[0], scope)
		if err != nil {
			return nil, err
		}
		return &types.Narrow{Target: t, AppliesNegativeNarrowing: name == "TypeIs"}, nil

	case "Callable":
		if len(e.Args) != 2 {
			return nil, errorf(e, "Callable accepts an argument list and a return type")
		}
		list, ok := e.Args[0].(*List)
		if !ok {
			return nil, errorf(e.Args[0], "the first argument of Callable must be a list of types")
		}
		args, err := resolveArgs(list.Elems, scope)
		if err != nil {
			return nil, err
		}
		ret, err := resolve(e.Args[1], scope)
		if err != nil {
			return nil, err
		}
		return &types.Arrow{Args: args, Return: ret}, nil

	case "Mapping", "dict", "Dict":
		if len(e.Args) != 2 {
			return nil, errorf(e, "%s accepts a key type and a value type", e.Base.Name)
		}
		key, err := resolve(e.Args[0], scope)
		if err != nil {
			return nil, err
		}
		if key != types.Str {
			return nil, errorf(e.Args[0], "%s keys must be str", e.Base.Name)
		}
		value, err := resolve(e.Args[1], scope)
		if err != nil {
			return nil, err
		}
		if name == "Mapping" {
			return &types.Mapping{Value: value}, nil
		}
		return &types.Dict{Value: value}, nil
	}

	base := scope.Ref(e.Base.Name)
	class, ok := types.RealType(base).(*types.Class)
	if !ok {
		return nil, errorf(e.Base, "%s is not a generic class", e.Base.Name)
	}
	params, err := resolveArgs(e.Args, scope)
	if err != nil {
		return nil, err
	}
	return &types.App{Const: class, Params: params}, nil
}
