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

import "errors"

var _ Type = (*Named)(nil)

// Named is a reference to a declared type by name. A named reference is created unresolved,
// which allows shapes to refer to themselves or to shapes declared later; it must be resolved
// exactly once before it is compared.
type Named struct {
	Name string
	link Type
}

// Create an unresolved reference to the declared type with the given name.
func NewNamed(name string) *Named { return &Named{Name: name} }

// Link returns the declared type, or nil if the reference has not been resolved.
func (n *Named) Link() Type { return n.link }

// Resolved reports whether the reference has been resolved.
func (n *Named) Resolved() bool { return n.link != nil }

// Resolve links the reference to its declared type.
func (n *Named) Resolve(t Type) error {
	if n.link != nil {
		return errors.New("named type " + n.Name + " is already resolved")
	}
	if t == nil {
		return errors.New("named type " + n.Name + " cannot be resolved to nil")
	}
	for cur := t; ; {
		link, ok := cur.(*Named)
		if !ok {
			break
		}
		if link == n {
			return errors.New("named type " + n.Name + " refers to itself")
		}
		if link.link == nil {
			break
		}
		cur = link.link
	}
	n.link = t
	return nil
}
