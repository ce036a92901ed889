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

package types

// Nominal class: `int`, `bool(int)`
type Class struct {
	Name  string
	Bases []*Class
}

// Create a nominal class which inherits from the given bases.
func NewClass(name string, bases ...*Class) *Class {
	return &Class{Name: name, Bases: bases}
}

// Predeclared classes
var (
	Int      = NewClass("int")
	Float    = NewClass("float")
	Str      = NewClass("str")
	Bool     = NewClass("bool", Int)
	Bytes    = NewClass("bytes")
	NoneType = NewClass("None")
	List     = NewClass("list")
	Set      = NewClass("set")
	Tuple    = NewClass("tuple")
)

// Builtins contains the predeclared classes, indexed by name.
var Builtins = map[string]*Class{
	Int.Name:      Int,
	Float.Name:    Float,
	Str.Name:      Str,
	Bool.Name:     Bool,
	Bytes.Name:    Bytes,
	NoneType.Name: NoneType,
	List.Name:     List,
	Set.Name:      Set,
	Tuple.Name:    Tuple,
}

// Check if a class is the same as, or a (transitive) sub-class of, another class.
func (c *Class) IsSubClass(super *Class) bool {
	if c == super {
		return true
	}
	seen := make(map[*Class]bool, 8)
	return c.hasSuperClass(seen, super)
}

func (c *Class) hasSuperClass(seen map[*Class]bool, super *Class) bool {
	seen[c] = true
	for _, base := range c.Bases {
		switch {
		case base == super:
			return true
		case seen[base]:
			continue
		case base.hasSuperClass(seen, super):
			return true
		}
	}
	return false
}
