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

package rfc3986

import "strings"

// Merge resolves ref against base following RFC 3986, Section 5.2.2 and
// returns the target reference. The base must have a scheme; its fragment is
// ignored. Dot segments are removed from the resulting path.
func Merge(ref, base *Ref) (*Ref, error) {
	if !base.IsAbsolute() {
		return nil, newParseError(ErrBaseNotAbsolute)
	}

	r := ref.components()
	if r.hasScheme {
		r.path = removeDotSegments(r.path)
		return r.ref(), nil
	}

	b := base.components()
	t := components{
		scheme:      b.scheme,
		hasScheme:   true,
		fragment:    r.fragment,
		hasFragment: r.hasFragment,
	}

	switch {
	case r.hasAuthority:
		t.setAuthority(&r)
		t.path = removeDotSegments(r.path)
		t.query, t.hasQuery = r.query, r.hasQuery
	case r.path == "":
		t.setAuthority(&b)
		t.path = b.path
		if r.hasQuery {
			t.query, t.hasQuery = r.query, true
		} else {
			t.query, t.hasQuery = b.query, b.hasQuery
		}
	default:
		t.setAuthority(&b)
		if strings.HasPrefix(r.path, "/") {
			t.path = removeDotSegments(r.path)
		} else {
			t.path = removeDotSegments(mergePaths(&b, r.path))
		}
		t.query, t.hasQuery = r.query, r.hasQuery
	}
	return t.ref(), nil
}

func (c *components) setAuthority(from *components) {
	c.hasAuthority = from.hasAuthority
	c.userinfo, c.hasUserinfo = from.userinfo, from.hasUserinfo
	c.host = from.host
	c.port, c.hasPort = from.port, from.hasPort
}

// mergePaths implements the "merge" routine of RFC 3986, Section 5.2.3.
func mergePaths(base *components, relPath string) string {
	if base.hasAuthority && base.path == "" {
		return "/" + relPath
	}
	lastSlash := strings.LastIndexByte(base.path, '/')
	if lastSlash < 0 {
		return relPath
	}
	return base.path[:lastSlash+1] + relPath
}

// removeDotSegments implements the algorithm of RFC 3986, Section 5.2.4,
// interpreting "." and ".." segments in a path.
func removeDotSegments(path string) string {
	if !strings.Contains(path, ".") {
		return path
	}

	in := path
	out := make([]string, 0, strings.Count(path, "/")+1)
	for in != "" {
		switch {
		// Rule A.
		case strings.HasPrefix(in, "../"):
			in = in[3:]
		case strings.HasPrefix(in, "./"):
			in = in[2:]
		// Rule B.
		case strings.HasPrefix(in, "/./"):
			in = in[2:]
		case in == "/.":
			in = "/"
		// Rule C.
		case strings.HasPrefix(in, "/../"):
			in = in[3:]
			out = popSegment(out)
		case in == "/..":
			in = "/"
			out = popSegment(out)
		// Rule D.
		case in == "." || in == "..":
			in = ""
		// Rule E.
		default:
			segment, rest := firstSegment(in)
			out = append(out, segment)
			in = rest
		}
	}
	return strings.Join(out, "")
}

func popSegment(out []string) []string {
	if len(out) == 0 {
		return out
	}
	return out[:len(out)-1]
}

// firstSegment splits off the first segment of in, including its leading
// "/" if any, up to but excluding the next "/".
func firstSegment(in string) (string, string) {
	from := 0
	if strings.HasPrefix(in, "/") {
		from = 1
	}
	next := strings.IndexByte(in[from:], '/')
	if next < 0 {
		return in, ""
	}
	return in[:from+next], in[from+next:]
}
