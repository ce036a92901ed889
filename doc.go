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

// shapes provides structural consistency checking for record-shape types with typed extra items,
// along with validation of shape declarations and type narrowing.
//
// A shape describes named fields, each of which may be required or not and read-only or not, and
// a rule for unlisted keys: the shape may be closed (no unlisted keys, which is the default), open
// (unlisted keys hold values of any type, read-only), or declare a type for extra items (read-only
// or writable).
//
// Consistency is the gradual-typing assignability relation: IsConsistent(a, b) reports whether
// a value of type a may be used where type b is expected.
//
//
// Supported Features:
//
//   * Required, NotRequired, and ReadOnly fields
//   * Open, closed, and typed extra items, including read-only extra items
//   * Consistency with read-only and mutable open mappings
//   * Single and multiple inheritance of shapes, with declaration-time validation
//   * Recursive shapes via named references
//   * Narrowing contracts with and without negative narrowing
//   * Nominal classes, unions, generic applications, and callables
//
//
// Links:
//
// TypedDict: Read-only items: https://peps.python.org/pep-0705/
//
// TypedDict with closed and extra items: https://peps.python.org/pep-0728/
//
// Narrowing types with TypeIs: https://peps.python.org/pep-0742/
//
// User-defined type guards: https://peps.python.org/pep-0647/
package shapes
