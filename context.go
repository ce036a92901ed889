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

package shapes

import (
	"fmt"
	"sync"

	"github.com/rdkamali/shapes/types"
)

// Context is a reusable context for consistency checks. After a failed check, the context
// reports which sub-checks failed.
//
// A context cannot be used concurrently.
type Context struct {
	assumed map[assumption]bool
	reason  string
}

type assumption struct {
	a, b *types.Shape
}

// Create a new consistency-checking context. A context may be reused for multiple checks.
func NewContext() *Context {
	return &Context{assumed: make(map[assumption]bool)}
}

var contextPool = sync.Pool{
	New: func() interface{} { return NewContext() },
}

// IsConsistent reports whether a value of type a is assignable where type b is expected.
//
// Consistency is directional: IsConsistent(a, b) and IsConsistent(b, a) are independent questions.
func IsConsistent(a, b types.Type) bool {
	ctx := contextPool.Get().(*Context)
	ok := ctx.IsConsistent(a, b)
	ctx.reset()
	contextPool.Put(ctx)
	return ok
}

// IsConsistent reports whether a value of type a is assignable where type b is expected.
// If the check fails, Reason describes why.
func (ctx *Context) IsConsistent(a, b types.Type) bool {
	ctx.reset()
	ok := ctx.consistent(a, b)
	if ok {
		ctx.reason = ""
	}
	return ok
}

// Reason describes the sub-checks which caused the most recent check to fail, from the outermost
// to the innermost. The reason is empty if the most recent check succeeded.
func (ctx *Context) Reason() string { return ctx.reason }

func (ctx *Context) reset() {
	for k := range ctx.assumed {
		delete(ctx.assumed, k)
	}
	ctx.reason = ""
}

// Record a failure. Failures are recorded as a chain from the outermost check to the innermost check.
func (ctx *Context) fail(format string, args ...interface{}) bool {
	msg := fmt.Sprintf(format, args...)
	if ctx.reason == "" {
		ctx.reason = msg
	} else {
		ctx.reason = msg + ": " + ctx.reason
	}
	return false
}

// Speculatively check consistency; a failure does not change the recorded reason.
func (ctx *Context) try(a, b types.Type) bool {
	reason := ctx.reason
	ok := ctx.consistent(a, b)
	ctx.reason = reason
	return ok
}

func (ctx *Context) mutual(a, b types.Type) bool {
	return ctx.consistent(a, b) && ctx.consistent(b, a)
}
