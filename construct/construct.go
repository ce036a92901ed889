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

// construct provides shorthand constructors for types and fields.
package construct

import (
	"github.com/rdkamali/shapes/types"
)

// Types

// Nominal class: `int`, `bool(int)`
func TClass(name string, bases ...*types.Class) *types.Class {
	return types.NewClass(name, bases...)
}

// Union type: `int | str`
func TUnion(ts ...types.Type) types.Type {
	return types.NewUnion(ts...)
}

// Type application: `list[int]`
func TApp(constructor *types.Class, params ...types.Type) *types.App {
	return &types.App{Const: constructor, Params: params}
}

// List type: `list[int]`
func TList(elem types.Type) *types.App {
	return &types.App{Const: types.List, Params: []types.Type{elem}}
}

// Function type: `Callable[[int, str], bool]`
func TArrow(args []types.Type, ret types.Type) *types.Arrow {
	return &types.Arrow{Args: args, Return: ret}
}

// Function type: `Callable[[int], bool]`
func TArrow1(arg types.Type, ret types.Type) *types.Arrow {
	return &types.Arrow{Args: []types.Type{arg}, Return: ret}
}

// Narrowing return type without negative narrowing: `TypeGuard[int]`
func TTypeGuard(target types.Type) *types.Narrow {
	return &types.Narrow{Target: target}
}

// Narrowing return type with negative narrowing: `TypeIs[int]`
func TTypeIs(target types.Type) *types.Narrow {
	return &types.Narrow{Target: target, AppliesNegativeNarrowing: true}
}

// Read-only open mapping: `Mapping[str, int]`
func TMapping(value types.Type) *types.Mapping {
	return &types.Mapping{Value: value}
}

// Mutable open mapping: `dict[str, int]`
func TDict(value types.Type) *types.Dict {
	return &types.Dict{Value: value}
}

// Shape type: `class Movie(Base): ...`
func TShape(name string, bases []*types.Shape, extra types.Extra, fields ...*types.Field) *types.Shape {
	return types.NewShape(name, bases, types.NewFieldMapOf(fields...), extra)
}

// Closed shape without bases: `class Movie(TypedDict, closed=True): ...`
func TClosed(name string, fields ...*types.Field) *types.Shape {
	return TShape(name, nil, types.ClosedExtra, fields...)
}

// Shape with extra items and without bases: `class Movie(TypedDict, extra_items=int): ...`
func TExtra(name string, extra types.Type, readOnly bool, fields ...*types.Field) *types.Shape {
	return TShape(name, nil, types.ExtraOf(extra, readOnly), fields...)
}

// Fields

// Required field: `name: str`
func Req(name string, t types.Type) *types.Field {
	return &types.Field{Name: name, Type: t, Required: true}
}

// Non-required field: `name: NotRequired[str]`
func Opt(name string, t types.Type) *types.Field {
	return &types.Field{Name: name, Type: t}
}

// Required read-only field: `name: ReadOnly[str]`
func ReqRO(name string, t types.Type) *types.Field {
	return &types.Field{Name: name, Type: t, Required: true, ReadOnly: true}
}

// Non-required read-only field: `name: ReadOnly[NotRequired[str]]`
func OptRO(name string, t types.Type) *types.Field {
	return &types.Field{Name: name, Type: t, ReadOnly: true}
}
