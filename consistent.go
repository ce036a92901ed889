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

func (ctx *Context) consistent(a, b types.Type) bool {
	a, b = types.RealType(a), types.RealType(b)
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return ctx.fail("missing type")
	}

	switch b.(type) {
	case *types.Dynamic, *types.Top:
		return true
	}

	switch at := a.(type) {
	case *types.Dynamic, *types.Bottom:
		return true
	case *types.Named:
		return ctx.fail("unresolved type %s", at.Name)
	case *types.Union:
		ok := true
		at.Members.Range(func(_ int, m types.Type) bool {
			ok = ctx.consistent(m, b)
			return ok
		})
		return ok
	}

	switch bt := b.(type) {
	case *types.Named:
		return ctx.fail("unresolved type %s", bt.Name)

	case *types.Union:
		found := false
		bt.Members.Range(func(_ int, m types.Type) bool {
			found = ctx.try(a, m)
			return !found
		})
		if !found {
			return ctx.fail("%s is not consistent with any member of %s", types.TypeString(a), types.TypeString(b))
		}
		return true

	case *types.Bottom:
		return ctx.fail("%s is not consistent with Never", types.TypeString(a))

	case *types.Class:
		switch at := a.(type) {
		case *types.Class:
			if at.IsSubClass(bt) {
				return true
			}
		case *types.App:
			if at.Const.IsSubClass(bt) {
				return true
			}
		case *types.Narrow:
			if types.Bool.IsSubClass(bt) {
				return true
			}
		}

	case *types.App:
		at, ok := a.(*types.App)
		if !ok || !at.Const.IsSubClass(bt.Const) {
			break
		}
		if len(at.Params) != len(bt.Params) {
			return ctx.fail("%s and %s have different numbers of parameters", types.TypeString(a), types.TypeString(b))
		}
		for i := range at.Params {
			if !ctx.mutual(at.Params[i], bt.Params[i]) {
				return ctx.fail("parameter %d of %s is invariant", i, types.TypeString(b))
			}
		}
		return true

	case *types.Arrow:
		at, ok := a.(*types.Arrow)
		if !ok {
			break
		}
		if len(at.Args) != len(bt.Args) {
			return ctx.fail("%s and %s have different numbers of arguments", types.TypeString(a), types.TypeString(b))
		}
		for i := range at.Args {
			if !ctx.consistent(bt.Args[i], at.Args[i]) {
				return false
			}
		}
		return ctx.consistent(at.Return, bt.Return)

	case *types.Narrow:
		at, ok := a.(*types.Narrow)
		if !ok {
			break
		}
		if at.AppliesNegativeNarrowing != bt.AppliesNegativeNarrowing {
			return ctx.fail("%s is not consistent with %s", at.TypeName(), bt.TypeName())
		}
		if bt.AppliesNegativeNarrowing {
			if !ctx.mutual(at.Target, bt.Target) {
				return ctx.fail("the target of %s is invariant", types.TypeString(b))
			}
			return true
		}
		return ctx.consistent(at.Target, bt.Target)

	case *types.Mapping:
		switch at := a.(type) {
		case *types.Mapping:
			return ctx.consistent(at.Value, bt.Value)
		case *types.Dict:
			return ctx.consistent(at.Value, bt.Value)
		case *types.Shape:
			return ctx.shapeToMapping(at, bt)
		}

	case *types.Dict:
		switch at := a.(type) {
		case *types.Dict:
			if !ctx.mutual(at.Value, bt.Value) {
				return ctx.fail("the value type of %s is invariant", types.TypeString(b))
			}
			return true
		case *types.Shape:
			return ctx.shapeToDict(at, bt)
		}

	case *types.Shape:
		switch at := a.(type) {
		case *types.Shape:
			return ctx.shapeToShape(at, bt)
		case *types.Dict:
			return ctx.dictToShape(at, bt)
		case *types.Mapping:
			return ctx.mappingToShape(at, bt)
		}
	}

	return ctx.fail("%s is not consistent with %s", types.TypeString(a), types.TypeString(b))
}

// Check each field of b against the corresponding field of a, then check the extra rule of b
// against the fields of a which b does not name and the extra rule of a.
func (ctx *Context) shapeToShape(a, b *types.Shape) bool {
	key := assumption{a, b}
	if ctx.assumed[key] {
		return true
	}
	ctx.assumed[key] = true
	ok := ctx.shapeFields(a, b) && ctx.shapeExtra(a, b)
	delete(ctx.assumed, key)
	return ok
}

func (ctx *Context) shapeFields(a, b *types.Shape) bool {
	ok := true
	b.Fields().Range(func(fb *types.Field) bool {
		ok = ctx.field(a, b, fb.Name, a.Corresponding(fb.Name), fb)
		return ok
	})
	return ok
}

func (ctx *Context) shapeExtra(a, b *types.Shape) bool {
	if b.Closed() {
		if !a.Closed() {
			return ctx.fail("%s permits extra keys, but %s is closed", shapeName(a), shapeName(b))
		}
		ok := true
		a.Fields().Range(func(fa *types.Field) bool {
			if _, named := b.Field(fa.Name); !named {
				ok = ctx.fail("%s is closed and does not permit key %q", shapeName(b), fa.Name)
			}
			return ok
		})
		return ok
	}

	eb := b.Extra().Pseudo()
	ok := true
	a.Fields().Range(func(fa *types.Field) bool {
		if _, named := b.Field(fa.Name); !named {
			ok = ctx.field(a, b, fa.Name, fa, eb)
		}
		return ok
	})
	if !ok {
		return false
	}

	ea := a.Extra().Pseudo()
	if eb.ReadOnly {
		if !ctx.consistent(ea.Type, eb.Type) {
			return ctx.fail("extra items of %s are not consistent with extra items of %s", shapeName(a), shapeName(b))
		}
		return true
	}
	if a.Closed() {
		return ctx.fail("%s is closed, but %s permits writing extra keys", shapeName(a), shapeName(b))
	}
	if ea.ReadOnly {
		return ctx.fail("extra items of %s are read-only, but writable in %s", shapeName(a), shapeName(b))
	}
	if !ctx.mutual(ea.Type, eb.Type) {
		return ctx.fail("writable extra items of %s and %s must have consistent types", shapeName(a), shapeName(b))
	}
	return true
}

// Check the field fa of a (which may be a pseudo-field for a's extra rule, or nil) against the
// field fb of b (which may be a pseudo-field for b's extra rule).
func (ctx *Context) field(a, b *types.Shape, name string, fa, fb *types.Field) bool {
	if fa == nil {
		if fb.ReadOnly && !fb.Required && isTop(fb.Type) {
			return true
		}
		return ctx.fail("%s is missing key %q required by %s", shapeName(a), name, shapeName(b))
	}
	if fb.Required && !fa.Required {
		return ctx.fail("key %q is required in %s, but not in %s", name, shapeName(b), shapeName(a))
	}
	if fb.ReadOnly {
		if !ctx.consistent(fa.Type, fb.Type) {
			return ctx.fail("key %q: %s is not consistent with %s", name, types.TypeString(fa.Type), types.TypeString(fb.Type))
		}
		return true
	}
	if fa.ReadOnly {
		return ctx.fail("key %q is read-only in %s, but writable in %s", name, shapeName(a), shapeName(b))
	}
	if !fb.Required && fa.Required {
		return ctx.fail("key %q is not required in %s, but required in %s", name, shapeName(b), shapeName(a))
	}
	if !ctx.mutual(fa.Type, fb.Type) {
		return ctx.fail("key %q is writable, so %s and %s must be consistent in both directions",
			name, types.TypeString(fa.Type), types.TypeString(fb.Type))
	}
	return true
}

// A shape is consistent with `Mapping[str, V]` when every value it may hold is consistent with V.
func (ctx *Context) shapeToMapping(a *types.Shape, m *types.Mapping) bool {
	ok := true
	a.Fields().Range(func(f *types.Field) bool {
		if !ctx.consistent(f.Type, m.Value) {
			ok = ctx.fail("key %q of %s is not consistent with %s", f.Name, shapeName(a), types.TypeString(m))
		}
		return ok
	})
	if !ok {
		return false
	}
	extra, _ := a.Extra().Rule()
	if !ctx.consistent(extra, m.Value) {
		return ctx.fail("extra items of %s are not consistent with %s", shapeName(a), types.TypeString(m))
	}
	return true
}

// A shape is consistent with `dict[str, V]` when it declares writable extra items, none of its
// fields (own or inherited) are required or read-only, and every value type is consistent with V
// in both directions.
func (ctx *Context) shapeToDict(a *types.Shape, d *types.Dict) bool {
	if a.Extra().Openness != types.ExtraItems || a.Extra().ReadOnly || a.Closed() {
		return ctx.fail("%s must declare writable extra items to be consistent with %s", shapeName(a), types.TypeString(d))
	}
	if a.HasRequired() {
		return ctx.fail("%s has required keys, which %s cannot guarantee", shapeName(a), types.TypeString(d))
	}
	ok := true
	a.Fields().Range(func(f *types.Field) bool {
		switch {
		case f.ReadOnly:
			ok = ctx.fail("key %q of %s is read-only", f.Name, shapeName(a))
		case !ctx.mutual(f.Type, d.Value):
			ok = ctx.fail("key %q of %s must be consistent with %s in both directions", f.Name, shapeName(a), types.TypeString(d))
		}
		return ok
	})
	if !ok {
		return false
	}
	if !ctx.mutual(a.Extra().Type, d.Value) {
		return ctx.fail("extra items of %s must be consistent with %s in both directions", shapeName(a), types.TypeString(d))
	}
	return true
}

// `dict[str, V]` is consistent with a shape which declares extra items and has no required keys,
// when V is consistent with each slot of the shape.
func (ctx *Context) dictToShape(d *types.Dict, b *types.Shape) bool {
	if b.Extra().Openness != types.ExtraItems {
		return ctx.fail("%s must declare extra items to accept %s", shapeName(b), types.TypeString(d))
	}
	if b.HasRequired() {
		return ctx.fail("%s has required keys, which %s cannot guarantee", shapeName(b), types.TypeString(d))
	}
	ok := true
	b.Fields().Range(func(f *types.Field) bool {
		ok = ctx.slot(d.Value, f)
		return ok
	})
	return ok && ctx.slot(d.Value, b.Extra().Pseudo())
}

// `Mapping[str, V]` is consistent with a shape whose slots are all read-only and not required.
func (ctx *Context) mappingToShape(m *types.Mapping, b *types.Shape) bool {
	if b.Closed() {
		return ctx.fail("%s is closed, but %s may contain any key", shapeName(b), types.TypeString(m))
	}
	ok := true
	b.Fields().Range(func(f *types.Field) bool {
		switch {
		case f.Required:
			ok = ctx.fail("key %q is required in %s, which %s cannot guarantee", f.Name, shapeName(b), types.TypeString(m))
		case !f.ReadOnly:
			ok = ctx.fail("key %q is writable in %s, but %s is read-only", f.Name, shapeName(b), types.TypeString(m))
		default:
			ok = ctx.slot(m.Value, f)
		}
		return ok
	})
	if !ok {
		return false
	}
	extra := b.Extra().Pseudo()
	if !extra.ReadOnly {
		return ctx.fail("extra items of %s are writable, but %s is read-only", shapeName(b), types.TypeString(m))
	}
	return ctx.slot(m.Value, extra)
}

func (ctx *Context) slot(v types.Type, f *types.Field) bool {
	if f.ReadOnly {
		return ctx.consistent(v, f.Type)
	}
	return ctx.mutual(v, f.Type)
}

func isTop(t types.Type) bool {
	_, ok := types.RealType(t).(*types.Top)
	return ok
}

func shapeName(s *types.Shape) string {
	if s.Name != "" {
		return s.Name
	}
	return types.TypeString(s)
}
