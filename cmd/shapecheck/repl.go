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

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/rdkamali/shapes"
	"github.com/rdkamali/shapes/types"
)

const (
	historyFile = ".shapecheck_history"
	promptMain  = "<: "
	replHelp    = `Queries:
  <source> <: <target>   Report whether source is consistent with target
  :show <shape>          Print a shape with its flattened fields
  :reason                Repeat the reason the last query failed
  :quit                  Exit
`
)

func historyPath() string {
	if p := os.Getenv("SHAPES_HISTORY"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}

func cmdRepl(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s repl <decls.yaml>\n", appName)
		return 2
	}
	env, ok := loadEnv(args[0])
	if !ok {
		return 1
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completer(env))

	hist := historyPath()
	if f, err := os.Open(hist); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(hist); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Print(replHelp)
	sess := &session{env: env}
	for {
		input, err := line.Prompt(promptMain)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		if !sess.eval(os.Stdout, input) {
			return 0
		}
	}
}

type session struct {
	env        *shapes.Env
	lastReason string
}

// Evaluate a line of input, writing the result to w. False is returned when the session ends.
func (sess *session) eval(w io.Writer, input string) bool {
	switch {
	case input == ":quit":
		return false
	case input == ":reason":
		if sess.lastReason == "" {
			fmt.Fprintln(w, "the last query succeeded")
		} else {
			fmt.Fprintln(w, sess.lastReason)
		}
		return true
	case strings.HasPrefix(input, ":show "):
		name := strings.TrimSpace(strings.TrimPrefix(input, ":show "))
		s, ok := sess.env.LookupShape(name)
		if !ok {
			fmt.Fprintf(w, "no shape named %s\n", name)
			return true
		}
		fmt.Fprintln(w, types.ShapeString(s))
		fields, _ := sess.env.Flatten(name)
		for _, f := range fields {
			fmt.Fprintf(w, "  %s: %s  (%s)\n", f.Name, types.FieldString(f.Field), f.Origin.Name)
		}
		return true
	}

	source, target, ok := splitQuery(input)
	if !ok {
		fmt.Fprint(w, replHelp)
		return true
	}
	res, err := query(sess.env, source, target)
	if err != nil {
		fmt.Fprintln(w, err)
		return true
	}
	sess.lastReason = strings.TrimPrefix(strings.TrimPrefix(res, "true"), "false: ")
	fmt.Fprintln(w, res)
	return true
}

func splitQuery(input string) (source, target string, ok bool) {
	i := strings.Index(input, "<:")
	if i < 0 {
		return "", "", false
	}
	source, target = strings.TrimSpace(input[:i]), strings.TrimSpace(input[i+2:])
	return source, target, source != "" && target != ""
}

// Complete the last word of the line with declared shape and class names.
func completer(env *shapes.Env) liner.Completer {
	var names []string
	for e := env; e != nil; e = e.Parent {
		for name := range e.Shapes {
			names = append(names, name)
		}
		for name := range e.Classes {
			names = append(names, name)
		}
	}
	for name := range types.Builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return func(line string) []string {
		i := strings.LastIndexAny(line, " [,|") + 1
		prefix, word := line[:i], line[i:]
		var out []string
		for _, name := range names {
			if strings.HasPrefix(name, word) {
				out = append(out, prefix+name)
			}
		}
		return out
	}
}
