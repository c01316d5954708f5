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

// Package uri parses, resolves, normalizes and recomposes URIs and IRIs.
//
// Input text is first mapped to an ASCII URI by a Preprocessor, then parsed
// and normalized by the rfc3986 engine. Components are read back either as
// strings or, under the query-then-fill convention, into caller buffers: a
// call with an empty buffer returns the size a full copy needs, terminator
// included, and a second call with a buffer of that size fills it.
//
// A URI owns its text. Destroy releases it; the URI must not be used
// afterwards, although Destroy itself accepts a nil URI.
package uri

import (
	"bytes"

	"github.com/jplu/liburi/rfc3986"
)

// URI is a parsed, normalized URI reference.
type URI struct {
	ref *rfc3986.Ref
	// buf is the preprocessed text the reference was parsed from. It is nil
	// for a reference produced by resolution against a base.
	buf []byte
}

type options struct {
	base *URI
	pre  Preprocessor
}

// Option configures Parse.
type Option func(*options)

// WithBase resolves the parsed reference against base.
func WithBase(base *URI) Option {
	return func(o *options) {
		o.base = base
	}
}

// WithPreprocessor sets the preprocessor mapping the raw input to ASCII.
func WithPreprocessor(p Preprocessor) Option {
	return func(o *options) {
		o.pre = p
	}
}

// Parse preprocesses raw, parses it, resolves it against the base given by
// WithBase if any, and normalizes the result.
func Parse(raw string, opts ...Option) (*URI, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	buf, err := o.pre.Preprocess([]byte(raw))
	if err != nil {
		return nil, err
	}
	ref, err := rfc3986.Parse(string(buf))
	if err != nil {
		return nil, &Error{Op: "parse", Kind: ErrSyntax, Err: err}
	}
	if o.base != nil {
		if ref, err = merge("parse", ref, o.base); err != nil {
			return nil, err
		}
		buf = nil
	}
	return &URI{ref: rfc3986.Normalize(ref), buf: buf}, nil
}

// MustParse is like Parse but panics on error. It simplifies the
// initialization of URIs known to be valid.
func MustParse(raw string, opts ...Option) *URI {
	u, err := Parse(raw, opts...)
	if err != nil {
		panic(err)
	}
	return u
}

// Rebase returns a new URI from source. With a base, source is resolved
// against it; source was validated when it was built, so it is not
// preprocessed again. Without a base, the text of source is copied and
// parsed afresh, giving an independent URI.
func Rebase(source, base *URI) (*URI, error) {
	if source == nil || source.ref == nil {
		return nil, &Error{Op: "rebase", Kind: ErrComponent, Err: errDestroyed}
	}
	if base != nil {
		ref, err := merge("rebase", source.ref, base)
		if err != nil {
			return nil, err
		}
		return &URI{ref: rfc3986.Normalize(ref)}, nil
	}

	buf := bytes.Clone(source.buf)
	if buf == nil {
		buf = []byte(source.ref.String())
	}
	ref, err := rfc3986.Parse(string(buf))
	if err != nil {
		return nil, &Error{Op: "rebase", Kind: ErrSyntax, Err: err}
	}
	return &URI{ref: rfc3986.Normalize(ref), buf: buf}, nil
}

func merge(op string, ref *rfc3986.Ref, base *URI) (*rfc3986.Ref, error) {
	if base.ref == nil {
		return nil, &Error{Op: op, Kind: ErrMerge, Err: errDestroyed}
	}
	merged, err := rfc3986.Merge(ref, base.ref)
	if err != nil {
		return nil, &Error{Op: op, Kind: ErrMerge, Err: err}
	}
	return merged, nil
}

// Destroy releases the URI. It is safe to call on a nil URI.
func (u *URI) Destroy() {
	if u == nil {
		return
	}
	u.ref = nil
	u.buf = nil
}

// Equal reports whether a and b are the same URI once normalized.
func Equal(a, b *URI) bool {
	if a == nil || b == nil {
		return a == b
	}
	return rfc3986.Equal(a.ref, b.ref)
}

// Absolute reports whether u has a scheme.
func (u *URI) Absolute() bool {
	return u.ref != nil && u.ref.Scheme().Present()
}

// AbsolutePath reports whether the path of u is rooted. Besides a path
// written with a leading "/", any path following a host or a scheme counts
// as rooted.
func (u *URI) AbsolutePath() bool {
	if u.ref == nil {
		return false
	}
	return u.ref.AbsolutePath() || u.ref.Host().Present() || u.ref.Scheme().Present()
}

// String returns the recomposed URI, or "" for a destroyed URI.
func (u *URI) String() string {
	if u.ref == nil {
		return ""
	}
	return u.ref.String()
}

// MarshalText encodes the URI as its recomposed form.
func (u *URI) MarshalText() ([]byte, error) {
	if u.ref == nil {
		return nil, &Error{Op: "marshal", Kind: ErrComponent, Err: errDestroyed}
	}
	return []byte(u.ref.String()), nil
}
