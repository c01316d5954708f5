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

package uri

import (
	"strconv"

	"github.com/jplu/liburi/textrange"
)

// SizeUnknown is returned by StrTo and PathTo when the URI cannot be read.
const SizeUnknown = -1

// portTextMax bounds the port text PortNumber accepts, terminator included.
const portTextMax = 32

// copyView fills buf with v under the query-then-fill convention. An absent
// component returns 0; a present one returns its length plus one.
func copyView(v textrange.View, buf []byte) int {
	if !v.Present() {
		if len(buf) > 0 {
			buf[0] = 0
		}
		return 0
	}
	out := newOutputBuffer(buf)
	out.writeString(v.String())
	out.terminate()
	return out.len() + 1
}

// view returns the component get reads, or an absent view once u has been
// destroyed.
func (u *URI) view(get func() textrange.View) textrange.View {
	if u.ref == nil {
		return textrange.Absent()
	}
	return get()
}

// SchemeTo copies the scheme into buf.
func (u *URI) SchemeTo(buf []byte) int {
	return copyView(u.view(u.ref.Scheme), buf)
}

// AuthTo copies the user information into buf.
func (u *URI) AuthTo(buf []byte) int {
	return copyView(u.view(u.ref.UserInfo), buf)
}

// HostTo copies the host into buf.
func (u *URI) HostTo(buf []byte) int {
	return copyView(u.view(u.ref.Host), buf)
}

// PortTo copies the port text into buf.
func (u *URI) PortTo(buf []byte) int {
	return copyView(u.view(u.ref.PortText), buf)
}

// QueryTo copies the query into buf.
func (u *URI) QueryTo(buf []byte) int {
	return copyView(u.view(u.ref.Query), buf)
}

// FragmentTo copies the fragment into buf.
func (u *URI) FragmentTo(buf []byte) int {
	return copyView(u.view(u.ref.Fragment), buf)
}

// PathTo recomposes the path from its segments into buf.
//
// A URI with no segments and no rooted path has no path at all and gets 0.
// Otherwise the path starts with "/" whenever AbsolutePath holds, segments
// are joined with "/", and the full length plus one is returned even when
// buf is too small to hold it.
func (u *URI) PathTo(buf []byte) int {
	if u.ref == nil {
		if len(buf) > 0 {
			buf[0] = 0
		}
		return SizeUnknown
	}
	segments := u.ref.Segments()
	if len(segments) == 0 && !u.ref.AbsolutePath() {
		return copyView(textrange.Absent(), buf)
	}

	out := newOutputBuffer(buf)
	if u.AbsolutePath() {
		out.writeByte('/')
	}
	for i, segment := range segments {
		if i > 0 {
			out.writeByte('/')
		}
		out.writeString(segment.String())
	}
	out.terminate()
	return out.len() + 1
}

// StrTo copies the recomposed URI into buf.
func (u *URI) StrTo(buf []byte) int {
	if u.ref == nil {
		if len(buf) > 0 {
			buf[0] = 0
		}
		return SizeUnknown
	}
	return copyView(textrange.Of(u.ref.String()), buf)
}

// Scheme returns the scheme and whether it is present.
func (u *URI) Scheme() (string, bool) {
	return viewString(u.view(u.ref.Scheme))
}

// Auth returns the user information and whether it is present.
func (u *URI) Auth() (string, bool) {
	return viewString(u.view(u.ref.UserInfo))
}

// Host returns the host and whether it is present.
func (u *URI) Host() (string, bool) {
	return viewString(u.view(u.ref.Host))
}

// Port returns the port text and whether it is present. A ":" with nothing
// after it gives a present, empty port.
func (u *URI) Port() (string, bool) {
	return viewString(u.view(u.ref.PortText))
}

// Query returns the query and whether it is present.
func (u *URI) Query() (string, bool) {
	return viewString(u.view(u.ref.Query))
}

// Fragment returns the fragment and whether it is present.
func (u *URI) Fragment() (string, bool) {
	return viewString(u.view(u.ref.Fragment))
}

// Path returns the path as PathTo composes it, and whether it is present.
func (u *URI) Path() (string, bool) {
	n := u.PathTo(nil)
	if n <= 0 {
		return "", false
	}
	buf := make([]byte, n)
	u.PathTo(buf)
	return string(buf[:n-1]), true
}

func viewString(v textrange.View) (string, bool) {
	return v.String(), v.Present()
}

// PortNumber returns the port as an integer. It returns 0 when the port is
// absent or empty, or when its text is not entirely a decimal number that
// fits an int32.
func (u *URI) PortNumber() int {
	var buf [portTextMax]byte
	n := u.PortTo(buf[:])
	if n <= 1 || n > portTextMax {
		return 0
	}
	return portNumber(string(buf[:n-1]))
}

func portNumber(text string) int {
	if text == "" || text[0] < '0' || text[0] > '9' {
		return 0
	}
	n, err := strconv.ParseUint(text, 10, 31)
	if err != nil {
		return 0
	}
	return int(n)
}
