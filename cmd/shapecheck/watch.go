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
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
)

func cmdWatch(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s watch <decls.yaml>\n", appName)
		return 2
	}
	path, err := filepath.Abs(args[0])
	if err != nil {
		log.Print(err)
		return 1
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("create watcher: %v", err)
		return 1
	}
	defer watcher.Close()

	// Renames and replacements are reported on the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		log.Printf("watch %s: %v", filepath.Dir(path), err)
		return 1
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	runCheck(os.Stdout, path, false)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return 0
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if name, _ := filepath.Abs(event.Name); name != path {
				continue
			}
			fmt.Println("---", filepath.Base(path), "changed")
			runCheck(os.Stdout, path, false)
		case err, ok := <-watcher.Errors:
			if !ok {
				return 0
			}
			log.Printf("watcher error: %v", err)
		case <-sigs:
			return 0
		}
	}
}
