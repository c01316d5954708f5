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

// Package rfc3986 is the grammar engine behind liburi: it parses URI
// references as defined by RFC 3986, resolves them against a base,
// normalizes their syntax, serializes them back and compares them.
//
// A parsed reference exposes its components as textrange views into its
// own text:
//   - scheme, userinfo, host, port, query and fragment, each possibly absent;
//   - the path, split into an ordered list of segments, together with a flag
//     telling whether the path is rooted while no authority is present.
//
// The parser also accepts raw IRIs (RFC 3987), in which case the bidi rules
// of RFC 3987, Section 4.2 apply.
package rfc3986

import (
	"encoding/json"
	"strings"

	"github.com/jplu/liburi/textrange"
)

// Ref is a parsed URI reference. It is immutable: Merge and Normalize return
// new values.
type Ref struct {
	s   string
	pos Positions
}

// String serializes the reference.
func (r *Ref) String() string {
	return r.s
}

// Len returns the number of bytes String would return.
func (r *Ref) Len() int {
	return len(r.s)
}

// Positions returns the component offsets of the reference.
func (r *Ref) Positions() Positions {
	return r.pos
}

// IsAbsolute reports whether the reference has a scheme.
func (r *Ref) IsAbsolute() bool {
	return r.pos.SchemeEnd != 0
}

// Scheme returns the scheme, without its ":".
func (r *Ref) Scheme() textrange.View {
	if !r.IsAbsolute() {
		return textrange.Absent()
	}
	return textrange.New(r.s, 0, r.pos.SchemeEnd-1)
}

func (r *Ref) hasAuthority() bool {
	return r.pos.AuthorityEnd > r.pos.SchemeEnd
}

// authority returns the authority text, without "//", and its offset.
func (r *Ref) authority() (string, int) {
	start := r.pos.SchemeEnd + authorityPrefixLength
	return r.s[start:r.pos.AuthorityEnd], start
}

// Authority returns the whole authority, without its leading "//".
func (r *Ref) Authority() textrange.View {
	if !r.hasAuthority() {
		return textrange.Absent()
	}
	a, start := r.authority()
	return textrange.New(r.s, start, start+len(a))
}

// UserInfo returns the userinfo, without its trailing "@".
func (r *Ref) UserInfo() textrange.View {
	if !r.hasAuthority() {
		return textrange.Absent()
	}
	a, start := r.authority()
	split := splitAuthority(a)
	if split.at < 0 {
		return textrange.Absent()
	}
	return textrange.New(r.s, start, start+split.at)
}

// Host returns the host. It is present, possibly empty, whenever the
// reference has an authority.
func (r *Ref) Host() textrange.View {
	if !r.hasAuthority() {
		return textrange.Absent()
	}
	a, start := r.authority()
	split := splitAuthority(a)
	return textrange.New(r.s, start+split.hostStart, start+split.hostEnd)
}

// PortText returns the port digits, without the ":". An empty port after a
// ":" is present but empty.
func (r *Ref) PortText() textrange.View {
	if !r.hasAuthority() {
		return textrange.Absent()
	}
	a, start := r.authority()
	split := splitAuthority(a)
	if split.colon < 0 {
		return textrange.Absent()
	}
	return textrange.New(r.s, start+split.colon+1, start+len(a))
}

// Path returns the path as a whole. A path is always present, possibly empty.
func (r *Ref) Path() textrange.View {
	return textrange.New(r.s, r.pos.AuthorityEnd, r.pos.PathEnd)
}

// AbsolutePath reports whether the path starts with "/" while the reference
// has no authority. With an authority the leading "/" is implied by the
// grammar and the flag stays false.
func (r *Ref) AbsolutePath() bool {
	return !r.hasAuthority() && strings.HasPrefix(r.Path().String(), "/")
}

// Segments returns the path segments in order. The leading "/" of a rooted
// path is not a segment of its own, so "/a/b" yields "a" and "b", and "/"
// yields a single empty segment. An empty path has no segments.
func (r *Ref) Segments() []textrange.View {
	start, end := r.pos.AuthorityEnd, r.pos.PathEnd
	if start == end {
		return nil
	}
	if r.s[start] == '/' {
		start++
	}
	segments := make([]textrange.View, 0, strings.Count(r.s[start:end], "/")+1)
	for {
		slash := strings.IndexByte(r.s[start:end], '/')
		if slash < 0 {
			return append(segments, textrange.New(r.s, start, end))
		}
		segments = append(segments, textrange.New(r.s, start, start+slash))
		start += slash + 1
	}
}

// Query returns the query, without its "?".
func (r *Ref) Query() textrange.View {
	if r.pos.QueryEnd <= r.pos.PathEnd {
		return textrange.Absent()
	}
	return textrange.New(r.s, r.pos.PathEnd+1, r.pos.QueryEnd)
}

// Fragment returns the fragment, without its "#".
func (r *Ref) Fragment() textrange.View {
	if r.pos.QueryEnd >= len(r.s) {
		return textrange.Absent()
	}
	return textrange.Open(r.s, r.pos.QueryEnd+1)
}

// Equal reports whether a and b are structurally equal: every component
// must agree in presence and in content. No normalization is applied, so
// callers wanting equivalence should compare normalized references.
func Equal(a, b *Ref) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.components() == b.components()
}

// MarshalJSON encodes the reference as a JSON string.
func (r *Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.s)
}

// UnmarshalJSON decodes a JSON string and parses it.
func (r *Ref) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}

// components is the decomposed form used for resolution, normalization and
// comparison.
type components struct {
	scheme, userinfo, host, port, path, query, fragment string

	hasScheme, hasAuthority, hasUserinfo, hasPort, hasQuery, hasFragment bool
}

func (r *Ref) components() components {
	var c components
	c.scheme, c.hasScheme = viewOf(r.Scheme())
	c.hasAuthority = r.hasAuthority()
	c.userinfo, c.hasUserinfo = viewOf(r.UserInfo())
	c.host, _ = viewOf(r.Host())
	c.port, c.hasPort = viewOf(r.PortText())
	c.path = r.Path().String()
	c.query, c.hasQuery = viewOf(r.Query())
	c.fragment, c.hasFragment = viewOf(r.Fragment())
	return c
}

func viewOf(v textrange.View) (string, bool) {
	return v.String(), v.Present()
}

// ref recomposes the components (RFC 3986, Section 5.3), recording the
// component offsets on the way so no reparse is needed.
func (c *components) ref() *Ref {
	var b strings.Builder
	b.Grow(len(c.scheme) + len(c.userinfo) + len(c.host) + len(c.port) +
		len(c.path) + len(c.query) + len(c.fragment) + len("://@:?#"))

	var pos Positions
	if c.hasScheme {
		b.WriteString(c.scheme)
		b.WriteByte(':')
	}
	pos.SchemeEnd = b.Len()

	if c.hasAuthority {
		b.WriteString("//")
		if c.hasUserinfo {
			b.WriteString(c.userinfo)
			b.WriteByte('@')
		}
		b.WriteString(c.host)
		if c.hasPort {
			b.WriteByte(':')
			b.WriteString(c.port)
		}
	}
	pos.AuthorityEnd = b.Len()

	// Without an authority a leading "//" would read back as one.
	if !c.hasAuthority && strings.HasPrefix(c.path, "//") {
		b.WriteString("/.")
	}
	b.WriteString(c.path)
	pos.PathEnd = b.Len()

	if c.hasQuery {
		b.WriteByte('?')
		b.WriteString(c.query)
	}
	pos.QueryEnd = b.Len()

	if c.hasFragment {
		b.WriteByte('#')
		b.WriteString(c.fragment)
	}
	return &Ref{s: b.String(), pos: pos}
}
