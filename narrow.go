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

package shapes

import (
	"github.com/rdkamali/shapes/types"
)

// ValidateNarrowingFunc checks the declaration of a narrowing function: a function which returns
// `TypeGuard[T]` or `TypeIs[T]`. The function must accept at least one argument, whose type is the
// one being narrowed. A contract which applies negative narrowing requires T to be consistent with
// the type of the first argument.
func ValidateNarrowingFunc(name string, fn *types.Arrow) error {
	n, ok := types.RealType(fn.Return).(*types.Narrow)
	if !ok {
		return &Diagnostic{Kind: IllFormedDeclaration, Decl: name, Message: "function does not return a narrowing type"}
	}
	if len(fn.Args) == 0 {
		return &Diagnostic{Kind: IllFormedDeclaration, Decl: name, Message: n.TypeName() + " functions must accept at least one argument"}
	}
	if n.AppliesNegativeNarrowing && !IsConsistent(n.Target, fn.Args[0]) {
		return &Diagnostic{
			Kind:    IllFormedDeclaration,
			Decl:    name,
			Message: "narrowed type " + types.TypeString(n.Target) + " is not consistent with input type " + types.TypeString(fn.Args[0]),
		}
	}
	return nil
}

// NarrowType returns the type of a value with the declared type after a narrowing function
// returns true (positive) or false (not positive).
//
// Without negative narrowing, the true branch narrows to the target and the false branch leaves the
// declared type unchanged. With negative narrowing, the true branch narrows to the intersection of
// the declared type and the target, and the false branch removes the target from the declared type.
func NarrowType(declared types.Type, n *types.Narrow, positive bool) types.Type {
	if !n.AppliesNegativeNarrowing {
		if positive {
			return n.Target
		}
		return declared
	}
	if positive {
		return meet(declared, n.Target)
	}
	return exclude(declared, n.Target)
}

func meet(declared, target types.Type) types.Type {
	rt := types.RealType(declared)
	switch rt.(type) {
	case *types.Dynamic:
		return target
	case *types.Union:
		var kept []types.Type
		members(rt, func(m types.Type) {
			if t := meet(m, target); t != types.Never {
				kept = append(kept, t)
			}
		})
		return types.NewUnion(kept...)
	}
	if u, ok := types.RealType(target).(*types.Union); ok {
		var kept []types.Type
		members(u, func(m types.Type) {
			if t := meet(declared, m); t != types.Never {
				kept = append(kept, t)
			}
		})
		return types.NewUnion(kept...)
	}
	switch {
	case IsConsistent(declared, target):
		return declared
	case IsConsistent(target, declared):
		return target
	}
	return types.Never
}

func exclude(declared, target types.Type) types.Type {
	rt := types.RealType(declared)
	switch rt.(type) {
	case *types.Dynamic:
		return declared
	case *types.Union:
		var kept []types.Type
		members(rt, func(m types.Type) {
			if !IsConsistent(m, target) {
				kept = append(kept, m)
			}
		})
		return types.NewUnion(kept...)
	}
	if IsConsistent(declared, target) {
		return types.Never
	}
	return declared
}

func members(u types.Type, f func(types.Type)) {
	u.(*types.Union).Members.Range(func(_ int, m types.Type) bool {
		f(m)
		return true
	})
}
