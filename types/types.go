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

// Type is the base interface for all types.
type Type interface {
	TypeName() string
}

func (t *Dynamic) TypeName() string { return "Any" }
func (t *Top) TypeName() string     { return "Object" }
func (t *Bottom) TypeName() string  { return "Never" }
func (t *Class) TypeName() string   { return "Class" }
func (t *Union) TypeName() string   { return "Union" }
func (t *App) TypeName() string     { return "App" }
func (t *Arrow) TypeName() string   { return "Arrow" }
func (t *Shape) TypeName() string   { return "Shape" }
func (t *Mapping) TypeName() string { return "Mapping" }
func (t *Dict) TypeName() string    { return "Dict" }
func (t *Named) TypeName() string   { return "Named" }

func (t *Narrow) TypeName() string {
	if t.AppliesNegativeNarrowing {
		return "TypeIs"
	}
	return "TypeGuard"
}

// Dynamic type: `Any`
type Dynamic struct{}

// Top type: `object`
type Top struct{}

// Bottom type: `Never`
type Bottom struct{}

var (
	Any    = &Dynamic{}
	Object = &Top{}
	Never  = &Bottom{}
)

// Type application: `list[int]`
//
// Parameters of an application are invariant.
type App struct {
	Const  *Class
	Params []Type
}

// Function type: `(int, str) -> bool`
type Arrow struct {
	Args   []Type
	Return Type
}

// Narrowing return type: `TypeGuard[T]` or `TypeIs[T]`
//
// A narrowing contract which applies negative narrowing (`TypeIs`) also refines the
// declared type on the false branch, and its target is invariant. Otherwise (`TypeGuard`)
// the declared type is only refined on the true branch, and the target is covariant.
type Narrow struct {
	Target                   Type
	AppliesNegativeNarrowing bool
}

// Read-only open mapping: `Mapping[str, V]`
type Mapping struct {
	Value Type
}

// Mutable open mapping: `dict[str, V]`
type Dict struct {
	Value Type
}

// Get the underlying type for a chain of resolved names, when applicable.
func RealType(t Type) Type {
	for {
		n, ok := t.(*Named)
		if !ok || n.link == nil {
			return t
		}
		t = n.link
	}
}
