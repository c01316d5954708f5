/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

//nolint:testpackage // White-box tests need the unexported helpers.
package rfc3986

import (
	"errors"
	"testing"
)

// TestMerge_RFC3986Examples runs the examples of RFC 3986, Sections 5.4.1
// and 5.4.2.
func TestMerge_RFC3986Examples(t *testing.T) {
	base := mustParse(t, "http://a/b/c/d;p?q")
	tests := []struct {
		ref  string
		want string
	}{
		// Normal examples.
		{"g:h", "g:h"},
		{"g", "http://a/b/c/g"},
		{"./g", "http://a/b/c/g"},
		{"g/", "http://a/b/c/g/"},
		{"/g", "http://a/g"},
		{"//g", "http://g"},
		{"?y", "http://a/b/c/d;p?y"},
		{"g?y", "http://a/b/c/g?y"},
		{"#s", "http://a/b/c/d;p?q#s"},
		{"g#s", "http://a/b/c/g#s"},
		{"g?y#s", "http://a/b/c/g?y#s"},
		{";x", "http://a/b/c/;x"},
		{"g;x", "http://a/b/c/g;x"},
		{"g;x?y#s", "http://a/b/c/g;x?y#s"},
		{"", "http://a/b/c/d;p?q"},
		{".", "http://a/b/c/"},
		{"./", "http://a/b/c/"},
		{"..", "http://a/b/"},
		{"../", "http://a/b/"},
		{"../g", "http://a/b/g"},
		{"../..", "http://a/"},
		{"../../", "http://a/"},
		{"../../g", "http://a/g"},
		// Abnormal examples.
		{"../../../g", "http://a/g"},
		{"../../../../g", "http://a/g"},
		{"/./g", "http://a/g"},
		{"/../g", "http://a/g"},
		{"g.", "http://a/b/c/g."},
		{".g", "http://a/b/c/.g"},
		{"g..", "http://a/b/c/g.."},
		{"..g", "http://a/b/c/..g"},
		{"./../g", "http://a/b/g"},
		{"./g/.", "http://a/b/c/g/"},
		{"g/./h", "http://a/b/c/g/h"},
		{"g/../h", "http://a/b/c/h"},
		{"g;x=1/./y", "http://a/b/c/g;x=1/y"},
		{"g;x=1/../y", "http://a/b/c/y"},
		{"g?y/./x", "http://a/b/c/g?y/./x"},
		{"g?y/../x", "http://a/b/c/g?y/../x"},
		{"g#s/./x", "http://a/b/c/g#s/./x"},
		{"g#s/../x", "http://a/b/c/g#s/../x"},
		{"http:g", "http:g"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := Merge(mustParse(t, tt.ref), base)
			if err != nil {
				t.Fatalf("Merge(%q) failed: %v", tt.ref, err)
			}
			if got.String() != tt.want {
				t.Errorf("Merge(%q) = %q, want %q", tt.ref, got.String(), tt.want)
			}
			// The recorded positions must match a fresh parse of the output.
			if reparsed := mustParse(t, got.String()); reparsed.Positions() != got.Positions() {
				t.Errorf("positions %+v, want %+v", got.Positions(), reparsed.Positions())
			}
		})
	}
}

func TestMerge_BaseWithoutPath(t *testing.T) {
	got, err := Merge(mustParse(t, "g"), mustParse(t, "http://a"))
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if got.String() != "http://a/g" {
		t.Errorf("Merge = %q, want %q", got.String(), "http://a/g")
	}
}

func TestMerge_PathStartingWithDoubleSlash(t *testing.T) {
	got, err := Merge(mustParse(t, "..//c"), mustParse(t, "foo:/a/b"))
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if got.String() != "foo:/.//c" {
		t.Errorf("Merge = %q, want %q", got.String(), "foo:/.//c")
	}
	if got.Host().Present() {
		t.Errorf("Host = %q, want absent", got.Host().String())
	}
	reparsed := mustParse(t, got.String())
	if reparsed.Host().Present() || !Equal(got, reparsed) {
		t.Errorf("reparsed %q differs from %q", reparsed.String(), got.String())
	}
}

func TestMerge_RelativeBase(t *testing.T) {
	_, err := Merge(mustParse(t, "g"), mustParse(t, "/a/b"))
	if !errors.Is(err, ErrBaseNotAbsolute) {
		t.Fatalf("Merge error = %v, want ErrBaseNotAbsolute", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Errorf("Merge error %T is not a *ParseError", err)
	}
}

func TestRemoveDotSegments(t *testing.T) {
	tests := map[string]string{
		"/a/b/c/./../../g":   "/a/g",
		"mid/content=5/../6": "mid/6",
		"/..":                "/",
		"/a/..":              "/",
		"no/dots/here":       "no/dots/here",
		".":                  "",
		"/a/./b/":            "/a/b/",
	}
	for in, want := range tests {
		if got := removeDotSegments(in); got != want {
			t.Errorf("removeDotSegments(%q) = %q, want %q", in, got, want)
		}
	}
}
