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
	"strings"
)

// DiagnosticKind classifies a static diagnostic.
type DiagnosticKind int

const (
	// A type declaration which cannot be accepted until it is fixed.
	IllFormedDeclaration DiagnosticKind = iota + 1
	// An object literal which does not match the shape it is constructed as.
	InvalidObject
)

func (k DiagnosticKind) String() string {
	switch k {
	case IllFormedDeclaration:
		return "IllFormedDeclaration"
	case InvalidObject:
		return "InvalidObject"
	}
	return "Unknown"
}

// Diagnostic is a static diagnostic for a declaration or object literal.
type Diagnostic struct {
	Kind DiagnosticKind
	// Decl is the name of the declaration (or the shape of the object literal).
	Decl string
	// Field is the name of the offending field, if any. The extra-items slot is reported as "extra_items".
	Field   string
	Message string
}

func (d *Diagnostic) Error() string {
	var sb strings.Builder
	sb.WriteString(d.Kind.String())
	sb.WriteString(": ")
	if d.Decl != "" {
		sb.WriteString(d.Decl)
		if d.Field != "" {
			sb.WriteByte('.')
			sb.WriteString(d.Field)
		}
		sb.WriteString(": ")
	}
	sb.WriteString(d.Message)
	return sb.String()
}

// Diagnostics is a list of diagnostics, reported together.
type Diagnostics []*Diagnostic

func (ds Diagnostics) Error() string {
	switch len(ds) {
	case 0:
		return "no diagnostics"
	case 1:
		return ds[0].Error()
	}
	msgs := make([]string, len(ds))
	for i, d := range ds {
		msgs[i] = d.Error()
	}
	return strings.Join(msgs, "\n")
}

// Return ds as an error, or nil if ds is empty.
func (ds Diagnostics) Err() error {
	if len(ds) == 0 {
		return nil
	}
	return ds
}
