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

package buildinfo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const example = `{
  "schema_version": 1,
  "base_prefix": "/usr",
  "platform": "linux-x86_64",
  "language": {
    "version": "3.14",
    "version_parts": {"major": 3, "minor": 14, "micro": 1, "releaselevel": "candidate", "serial": 2}
  },
  "implementation": {"name": "cpython", "cache_tag": "cpython-314", "hexversion": 51249314},
  "libpython": {"dynamic": "/usr/lib/libpython3.14.so.1.0", "link_extensions": false},
  "c_api": {"headers": "/usr/include/python3.14", "pkgconfig_path": "/usr/lib/pkgconfig"},
  "arbitrary": {"data": [1, 2]}
}`

func TestParseValid(t *testing.T) {
	d, err := Parse([]byte(example))
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Validate(); err != nil {
		t.Fatal(err)
	}
	if d.Implementation.Name != "cpython" || len(d.Implementation.Extra) != 2 {
		t.Fatalf("unexpected implementation %+v", d.Implementation)
	}
	if string(d.Implementation.Extra["cache_tag"]) != `"cpython-314"` {
		t.Fatalf("unexpected cache_tag %s", d.Implementation.Extra["cache_tag"])
	}
	if d.LibPython.LinkExtensions == nil || *d.LibPython.LinkExtensions {
		t.Fatalf("expected link_extensions to be false")
	}
	if _, ok := d.Extra["arbitrary"]; !ok || len(d.Extra) != 1 {
		t.Fatalf("expected unknown keys to be kept, found %v", d.Extra)
	}
	if v := d.Language.VersionString(); v != "3.14.1rc2" {
		t.Fatalf("unexpected version %s", v)
	}
}

func TestMarshal(t *testing.T) {
	d, err := Parse([]byte(example))
	if err != nil {
		t.Fatal(err)
	}
	data, err := d.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.HasPrefix(out, "{\n  \"arbitrary\": {") || !strings.HasSuffix(out, "}\n") {
		t.Fatalf("expected sorted and indented keys, found:\n%s", out)
	}
	if !strings.Contains(out, `"cache_tag": "cpython-314"`) {
		t.Fatalf("expected implementation keys to be kept, found:\n%s", out)
	}

	again, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	data2, err := again.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if string(data2) != out {
		t.Fatalf("expected a stable canonical form:\n%s\n%s", out, data2)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]string{
		`{"schema_version": 2, "language": {"version": "3.14", "version_parts": {"major": 3, "minor": 14, "releaselevel": "final"}}, "implementation": {"name": "pypy"}}`: "schema_version must be 1",
		`{"schema_version": 1, "implementation": {"name": "pypy"}}`: "language is required",
		`{"schema_version": 1, "language": {"version": "3.13", "version_parts": {"major": 3, "minor": 14, "releaselevel": "final"}}, "implementation": {"name": "pypy"}}`: `language.version must be "3.14"`,
		`{"schema_version": 1, "language": {"version": "3.14", "version_parts": {"major": 3, "minor": 14, "releaselevel": "gamma"}}, "implementation": {"name": "pypy"}}`: "releaselevel must be one of",
		`{"schema_version": 1, "language": {"version": "3.14", "version_parts": {"major": 3, "minor": 14, "releaselevel": "beta", "serial": -1}}, "implementation": {"name": "pypy"}}`: "serial must not be negative",
		`{"schema_version": 1, "language": {"version": "3.14", "version_parts": {"major": 3, "minor": 14, "releaselevel": "final"}}}`: "implementation is required",
		`{"schema_version": 1, "language": {"version": "3.14", "version_parts": {"major": 3, "minor": 14, "releaselevel": "final"}}, "implementation": {"cache_tag": "x"}}`: "implementation.name is required",
		`{"schema_version": 1, "language": {"version": "3.14", "version_parts": {"major": 3, "minor": 14, "releaselevel": "final"}}, "implementation": {"name": "pypy"}, "c_api": {}}`: "c_api.headers is required",
		`{"schema_version": 1, "language": {"version": "3.14", "version_parts": {"major": 3, "minor": 14, "releaselevel": "final"}}, "implementation": {"name": "pypy"}, "libpython": {"link_extensions": true}}`: "at least one library",
	}
	for src, substr := range cases {
		d, err := Parse([]byte(src))
		if err != nil {
			t.Fatalf("%s: %v", src, err)
		}
		err = d.Validate()
		ve, ok := err.(*ValidationError)
		if !ok {
			t.Fatalf("%s: expected a validation error, found %v", src, err)
		}
		if !strings.Contains(ve.Error(), substr) {
			t.Fatalf("%s: expected a problem containing %q, found %v", src, substr, ve.Problems)
		}
	}

	d, _ := Parse([]byte(`{}`))
	err := d.Validate().(*ValidationError)
	if len(err.Problems) != 3 {
		t.Fatalf("expected every problem to be reported, found %v", err.Problems)
	}
}

func TestParseInvalid(t *testing.T) {
	for _, src := range []string{
		`null`,
		`[]`,
		`{"schema_version": "1"}`,
		`{"implementation": {"name": 3}}`,
		`{"language": `,
	} {
		if _, err := Parse([]byte(src)); err == nil {
			t.Fatalf("%s: expected an error", src)
		}
	}
}

func TestVersionString(t *testing.T) {
	cases := map[VersionParts]string{
		{Major: 3, Minor: 14, Micro: 0, ReleaseLevel: "final"}:                "3.14.0",
		{Major: 3, Minor: 14, Micro: 0, ReleaseLevel: "alpha", Serial: 1}:     "3.14.0a1",
		{Major: 3, Minor: 13, Micro: 2, ReleaseLevel: "beta", Serial: 2}:      "3.13.2b2",
		{Major: 3, Minor: 15, Micro: 0, ReleaseLevel: "candidate", Serial: 3}: "3.15.0rc3",
	}
	for vp, expect := range cases {
		l := &Language{VersionParts: vp}
		if s := l.VersionString(); s != expect {
			t.Fatalf("expected %s, found %s", expect, s)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build-details.json")
	if err := os.WriteFile(path, []byte(example), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if d.Platform != "linux-x86_64" {
		t.Fatalf("unexpected platform %q", d.Platform)
	}
	if err := os.WriteFile(path, []byte(`[1]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil || !strings.HasPrefix(err.Error(), path) {
		t.Fatalf("expected an error prefixed with the path, found %v", err)
	}
}
