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

// Union type: `int | str`
//
// Members are flattened and de-duplicated when the union is created. Member order follows
// the order of first appearance.
type Union struct {
	Members TypeList
}

// Create a union of the given types. A union of a single type is that type; an empty union
// is `Never`. Nested unions are flattened, and `Never` members are dropped.
func NewUnion(ts ...Type) Type {
	b := NewTypeListBuilder()
	var seen []Type
	var add func(t Type)
	add = func(t Type) {
		switch t := RealType(t).(type) {
		case *Union:
			t.Members.Range(func(_ int, m Type) bool {
				add(m)
				return true
			})
			return
		case *Bottom:
			return
		}
		for _, s := range seen {
			if Identical(s, t) {
				return
			}
		}
		seen = append(seen, t)
		b.Append(t)
	}
	for _, t := range ts {
		add(t)
	}
	switch b.Len() {
	case 0:
		return Never
	case 1:
		return seen[0]
	}
	return &Union{Members: b.Build()}
}

// Identical reports whether two types are structurally identical. Shapes and classes are
// identical only to themselves; named references are compared by their resolved types.
func Identical(a, b Type) bool {
	a, b = RealType(a), RealType(b)
	if a == b {
		return true
	}
	switch a := a.(type) {
	case *Dynamic:
		_, ok := b.(*Dynamic)
		return ok
	case *Top:
		_, ok := b.(*Top)
		return ok
	case *Bottom:
		_, ok := b.(*Bottom)
		return ok
	case *Named:
		bn, ok := b.(*Named)
		return ok && a.Name == bn.Name
	case *App:
		bApp, ok := b.(*App)
		if !ok || a.Const != bApp.Const || len(a.Params) != len(bApp.Params) {
			return false
		}
		for i := range a.Params {
			if !Identical(a.Params[i], bApp.Params[i]) {
				return false
			}
		}
		return true
	case *Arrow:
		bArrow, ok := b.(*Arrow)
		if !ok || len(a.Args) != len(bArrow.Args) || !Identical(a.Return, bArrow.Return) {
			return false
		}
		for i := range a.Args {
			if !Identical(a.Args[i], bArrow.Args[i]) {
				return false
			}
		}
		return true
	case *Narrow:
		bn, ok := b.(*Narrow)
		return ok && a.AppliesNegativeNarrowing == bn.AppliesNegativeNarrowing && Identical(a.Target, bn.Target)
	case *Mapping:
		bm, ok := b.(*Mapping)
		return ok && Identical(a.Value, bm.Value)
	case *Dict:
		bd, ok := b.(*Dict)
		return ok && Identical(a.Value, bd.Value)
	case *Union:
		bu, ok := b.(*Union)
		if !ok || a.Members.Len() != bu.Members.Len() {
			return false
		}
		same := true
		a.Members.Range(func(_ int, am Type) bool {
			found := false
			bu.Members.Range(func(_ int, bm Type) bool {
				found = Identical(am, bm)
				return !found
			})
			same = found
			return same
		})
		return same
	}
	return false
}
