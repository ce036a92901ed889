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
	"fmt"
	"sort"

	"github.com/rdkamali/shapes/types"
)

// CheckObject checks an object literal, given as a mapping from keys to the types of their values,
// against the shape it is constructed as. Every required key must be present, every named key
// must hold a consistent value, and every other key must be permitted by the shape's extra rule.
//
// Every problem is reported; the returned error will be of type Diagnostics.
func CheckObject(s *types.Shape, keys map[string]types.Type) error {
	ctx := NewContext()
	var diags Diagnostics
	report := func(key, format string, args ...interface{}) {
		diags = append(diags, &Diagnostic{Kind: InvalidObject, Decl: s.Name, Field: key, Message: fmt.Sprintf(format, args...)})
	}

	s.Fields().Range(func(f *types.Field) bool {
		if _, ok := keys[f.Name]; !ok && f.Required {
			report(f.Name, "required key is missing")
		}
		return true
	})

	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, k := range names {
		v := keys[k]
		f := s.Corresponding(k)
		if f == nil {
			report(k, "key is not permitted by closed shape")
			continue
		}
		if !ctx.IsConsistent(v, f.Type) {
			if _, named := s.Field(k); named {
				report(k, "value of type %s is not consistent with %s", types.TypeString(v), types.TypeString(f.Type))
			} else {
				report(k, "value of type %s is not consistent with extra items %s", types.TypeString(v), types.TypeString(f.Type))
			}
		}
	}
	return diags.Err()
}
