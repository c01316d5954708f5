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

// Package textrange provides View, a non-owning reference to a contiguous
// substring of a larger buffer.
//
// A View distinguishes a component that is absent from one that is present
// but empty: the zero View is absent, while a View built over an empty range
// of a buffer is present with length zero.
package textrange

// View references the bytes buf[start:end] of a buffer it does not own.
// When the end is not bounded, the view runs to the end of the buffer, which
// mirrors a terminated string read from start.
type View struct {
	buf     string
	start   int
	end     int
	bounded bool
	present bool
}

// Absent returns the view of a component that does not exist.
func Absent() View {
	return View{}
}

// New returns the view buf[start:end]. It panics if the bounds are not a
// valid half-open range inside buf.
func New(buf string, start, end int) View {
	if start < 0 || end < start || end > len(buf) {
		panic("textrange: invalid bounds")
	}
	return View{buf: buf, start: start, end: end, bounded: true, present: true}
}

// Open returns the view of buf from start to its end.
func Open(buf string, start int) View {
	if start < 0 || start > len(buf) {
		panic("textrange: invalid start")
	}
	return View{buf: buf, start: start, present: true}
}

// Of returns a present view covering the whole of s.
func Of(s string) View {
	return View{buf: s, start: 0, end: len(s), bounded: true, present: true}
}

// Present reports whether the view references a component at all.
func (v View) Present() bool {
	return v.present
}

// End returns the offset one past the last byte of the view in its buffer.
func (v View) End() int {
	if !v.bounded {
		return len(v.buf)
	}
	return v.end
}

// Len returns the number of bytes covered by the view; zero when absent.
func (v View) Len() int {
	if !v.present {
		return 0
	}
	return v.End() - v.start
}

// String returns the referenced text. The result shares memory with the
// underlying buffer; no copy is made.
func (v View) String() string {
	if !v.present {
		return ""
	}
	return v.buf[v.start:v.End()]
}
