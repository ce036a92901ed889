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

// buildinfo reads and validates installation description documents, which describe the
// language version, the implementation, and optionally the C API and shared library of an
// installed interpreter.
//
//  {
//    "schema_version": 1,
//    "language": {
//      "version": "3.14",
//      "version_parts": {"major": 3, "minor": 14, "micro": 0, "releaselevel": "final", "serial": 0}
//    },
//    "implementation": {"name": "cpython", "cache_tag": "cpython-314"}
//  }
package buildinfo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// SchemaVersion is the only supported schema version.
const SchemaVersion = 1

// ReleaseLevels are the permitted values of `version_parts.releaselevel`.
var ReleaseLevels = []string{"alpha", "beta", "candidate", "final"}

// Details is an installation description.
type Details struct {
	SchemaVersion  int             `json:"schema_version"`
	BasePrefix     string          `json:"base_prefix,omitempty"`
	Platform       string          `json:"platform,omitempty"`
	Language       *Language       `json:"language"`
	Implementation *Implementation `json:"implementation"`
	LibPython      *LibPython      `json:"libpython,omitempty"`
	CAPI           *CAPI           `json:"c_api,omitempty"`

	// Extra contains top-level keys which are not otherwise described.
	Extra map[string]json.RawMessage `json:"-"`
}

type Language struct {
	Version      string       `json:"version"`
	VersionParts VersionParts `json:"version_parts"`
}

type VersionParts struct {
	Major        int    `json:"major"`
	Minor        int    `json:"minor"`
	Micro        int    `json:"micro"`
	ReleaseLevel string `json:"releaselevel"`
	Serial       int    `json:"serial"`
}

// Implementation describes the interpreter implementation. Only the name is required; all other
// keys are implementation-defined.
type Implementation struct {
	Name  string
	Extra map[string]json.RawMessage
}

type LibPython struct {
	Dynamic          string `json:"dynamic,omitempty"`
	DynamicStableABI string `json:"dynamic_stableabi,omitempty"`
	Static           string `json:"static,omitempty"`
	LinkExtensions   *bool  `json:"link_extensions,omitempty"`
}

type CAPI struct {
	Headers       string `json:"headers"`
	PkgConfigPath string `json:"pkgconfig_path,omitempty"`
}

var knownKeys = map[string]bool{
	"schema_version": true,
	"base_prefix":    true,
	"platform":       true,
	"language":       true,
	"implementation": true,
	"libpython":      true,
	"c_api":          true,
}

// Load and parse an installation description from a file. The description is not validated.
func Load(path string) (*Details, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse an installation description. Values must have the documented JSON types; the description
// is not otherwise validated.
func Parse(data []byte) (*Details, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid installation description: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("invalid installation description: expected an object")
	}
	d := &Details{}
	if err := json.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("invalid installation description: %w", err)
	}
	for k, v := range raw {
		if knownKeys[k] {
			continue
		}
		if d.Extra == nil {
			d.Extra = make(map[string]json.RawMessage)
		}
		d.Extra[k] = v
	}
	return d, nil
}

// Marshal the description into indented JSON, including unknown top-level keys. Top-level keys are sorted.
func (d *Details) Marshal() ([]byte, error) {
	type plain Details
	data, err := json.Marshal((*plain)(d))
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	for k, v := range d.Extra {
		if !knownKeys[k] {
			m[k] = v
		}
	}
	if data, err = json.Marshal(m); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func (impl *Implementation) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if name, ok := m["name"]; ok {
		if err := json.Unmarshal(name, &impl.Name); err != nil {
			return fmt.Errorf("implementation.name: %w", err)
		}
		delete(m, "name")
	}
	if len(m) > 0 {
		impl.Extra = m
	}
	return nil
}

func (impl Implementation) MarshalJSON() ([]byte, error) {
	m := make(map[string]json.RawMessage, len(impl.Extra)+1)
	for k, v := range impl.Extra {
		m[k] = v
	}
	name, err := json.Marshal(impl.Name)
	if err != nil {
		return nil, err
	}
	m["name"] = name
	return json.Marshal(m)
}

// ValidationError lists every problem found in a description.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid installation description: " + strings.Join(e.Problems, "; ")
}

// Validate checks the description against the schema. All problems are reported together.
func (d *Details) Validate() error {
	var problems []string
	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if d.SchemaVersion != SchemaVersion {
		add("schema_version must be %d, found %d", SchemaVersion, d.SchemaVersion)
	}

	if d.Language == nil {
		add("language is required")
	} else {
		vp := d.Language.VersionParts
		if vp.Major < 0 || vp.Minor < 0 || vp.Micro < 0 {
			add("language.version_parts must not contain negative numbers")
		}
		if want := strconv.Itoa(vp.Major) + "." + strconv.Itoa(vp.Minor); d.Language.Version != want {
			add("language.version must be %q to match version_parts, found %q", want, d.Language.Version)
		}
		if !validReleaseLevel(vp.ReleaseLevel) {
			add("language.version_parts.releaselevel must be one of %s, found %q",
				strings.Join(ReleaseLevels, ", "), vp.ReleaseLevel)
		}
		if vp.Serial < 0 {
			add("language.version_parts.serial must not be negative")
		}
	}

	if d.Implementation == nil {
		add("implementation is required")
	} else if d.Implementation.Name == "" {
		add("implementation.name is required")
	}

	if d.CAPI != nil && d.CAPI.Headers == "" {
		add("c_api.headers is required when c_api is present")
	}
	if d.LibPython != nil && d.LibPython.Dynamic == "" && d.LibPython.Static == "" && d.LibPython.DynamicStableABI == "" {
		add("libpython must describe at least one library")
	}

	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return &ValidationError{Problems: problems}
}

func validReleaseLevel(level string) bool {
	for _, l := range ReleaseLevels {
		if l == level {
			return true
		}
	}
	return false
}

// VersionString returns the full language version: `3.14.0`, `3.14.0b2`, `3.14.0rc1`.
func (l *Language) VersionString() string {
	vp := l.VersionParts
	s := fmt.Sprintf("%d.%d.%d", vp.Major, vp.Minor, vp.Micro)
	switch vp.ReleaseLevel {
	case "alpha":
		s += "a" + strconv.Itoa(vp.Serial)
	case "beta":
		s += "b" + strconv.Itoa(vp.Serial)
	case "candidate":
		s += "rc" + strconv.Itoa(vp.Serial)
	}
	return s
}
