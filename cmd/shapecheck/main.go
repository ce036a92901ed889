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
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/rdkamali/shapes"
	"github.com/rdkamali/shapes/buildinfo"
	"github.com/rdkamali/shapes/declfile"
	"github.com/rdkamali/shapes/types"
)

const appName = "shapecheck"

func main() {
	log.SetFlags(0)
	log.SetPrefix(appName + ": ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "check":
		os.Exit(cmdCheck(os.Args[2:]))
	case "is":
		os.Exit(cmdIs(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "watch":
		os.Exit(cmdWatch(os.Args[2:]))
	case "buildinfo":
		os.Exit(cmdBuildInfo(os.Args[2:]))
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Usage:
  %s check [-v] <decls.yaml>          Validate declarations and run their checks.
  %s is <decls.yaml> <source> <target> Report whether source is consistent with target.
  %s repl <decls.yaml>                Query consistency interactively.
  %s watch <decls.yaml>               Re-run check whenever the file is written.
  %s buildinfo <build-details.json>   Validate an installation description.

`, appName, appName, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// check
// -----------------------------------------------------------------------------

func cmdCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "print every check, including passing checks")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s check [-v] <decls.yaml>\n", appName)
		return 2
	}
	return runCheck(os.Stdout, fs.Arg(0), *verbose)
}

// Load and check a declaration file, printing a report to w. The result is an exit code.
func runCheck(w io.Writer, path string, verbose bool) int {
	decls, err := declfile.Load(path)
	failures := 0
	if err != nil {
		var ds shapes.Diagnostics
		if !errors.As(err, &ds) {
			log.Print(err)
			return 1
		}
		for _, d := range ds {
			fmt.Fprintln(w, d.Error())
		}
		failures += len(ds)
	}

	for _, c := range decls.Checks {
		res, err := c.Evaluate(decls.Env)
		if err != nil {
			fmt.Fprintf(w, "ERROR %s <: %s: %v\n", c.Source, c.Target, err)
			failures++
			continue
		}
		switch {
		case !res.Passed():
			failures++
			fmt.Fprintf(w, "FAIL  %s <: %s: expected %t, found %t", c.Source, c.Target, c.Expect, res.Consistent)
			if res.Reason != "" {
				fmt.Fprintf(w, " (%s)", res.Reason)
			}
			fmt.Fprintln(w)
		case verbose:
			fmt.Fprintf(w, "ok    %s <: %s = %t\n", c.Source, c.Target, res.Consistent)
		}
	}

	if verbose {
		for _, s := range decls.Shapes {
			fmt.Fprintln(w, types.ShapeString(s))
		}
	}
	fmt.Fprintf(w, "%d shapes, %d functions, %d checks, %d problems\n",
		len(decls.Shapes), len(decls.Functions), len(decls.Checks), failures)
	if failures > 0 {
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// is
// -----------------------------------------------------------------------------

func cmdIs(args []string) int {
	if len(args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s is <decls.yaml> <source> <target>\n", appName)
		return 2
	}
	env, ok := loadEnv(args[0])
	if !ok {
		return 1
	}
	res, err := query(env, args[1], args[2])
	if err != nil {
		log.Print(err)
		return 1
	}
	fmt.Println(res)
	if !strings.HasPrefix(res, "true") {
		return 1
	}
	return 0
}

// Load a declaration file for queries. Ill-formed declarations are reported, but the valid
// declarations remain usable.
func loadEnv(path string) (*shapes.Env, bool) {
	decls, err := declfile.Load(path)
	if err != nil {
		var ds shapes.Diagnostics
		if !errors.As(err, &ds) {
			log.Print(err)
			return nil, false
		}
		for _, d := range ds {
			log.Print(d.Error())
		}
	}
	return decls.Env, true
}

func query(env *shapes.Env, source, target string) (string, error) {
	src, err := declfile.ParseDeclared(source, env)
	if err != nil {
		return "", fmt.Errorf("source: %w", err)
	}
	dst, err := declfile.ParseDeclared(target, env)
	if err != nil {
		return "", fmt.Errorf("target: %w", err)
	}
	ctx := shapes.NewContext()
	if ctx.IsConsistent(src, dst) {
		return "true", nil
	}
	return "false: " + ctx.Reason(), nil
}

// -----------------------------------------------------------------------------
// buildinfo
// -----------------------------------------------------------------------------

func cmdBuildInfo(args []string) int {
	fs := flag.NewFlagSet("buildinfo", flag.ContinueOnError)
	canonical := fs.Bool("print", false, "print the canonical form of the description")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s buildinfo [-print] <build-details.json>\n", appName)
		return 2
	}
	d, err := buildinfo.Load(fs.Arg(0))
	if err != nil {
		log.Print(err)
		return 1
	}
	if err := d.Validate(); err != nil {
		var ve *buildinfo.ValidationError
		if errors.As(err, &ve) {
			for _, p := range ve.Problems {
				fmt.Println(p)
			}
			return 1
		}
		log.Print(err)
		return 1
	}
	if *canonical {
		data, err := d.Marshal()
		if err != nil {
			log.Print(err)
			return 1
		}
		os.Stdout.Write(data)
		return 0
	}
	fmt.Printf("%s %s\n", d.Implementation.Name, d.Language.VersionString())
	return 0
}
