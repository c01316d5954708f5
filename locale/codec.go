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

// Package locale decodes text from a character encoding into Unicode code
// points. A Codec is an explicit value: nothing in this package depends on
// the locale of the running process unless FromEnv is called.
package locale

import (
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalid is returned when the input is not valid in the codec's
// encoding.
var ErrInvalid = errors.New("invalid multibyte sequence")

var errNonASCII = errors.New("byte outside the ASCII range")

type kind int

const (
	kindCharset kind = iota
	kindUTF8
	kindASCII
)

// Codec decodes text in one character encoding.
type Codec struct {
	name string
	kind kind
	enc  encoding.Encoding
	nfc  bool
}

// UTF8 returns the codec for UTF-8. Malformed sequences are errors rather
// than being replaced.
func UTF8() *Codec {
	return &Codec{name: "UTF-8", kind: kindUTF8}
}

// ASCII returns the codec of the C and POSIX locales, which rejects every
// byte above 0x7F.
func ASCII() *Codec {
	return &Codec{name: "US-ASCII", kind: kindASCII}
}

// New returns a codec for enc. Since x/text decoders replace undecodable
// input with U+FFFD, a decoded U+FFFD is reported as ErrInvalid.
func New(name string, enc encoding.Encoding) *Codec {
	return &Codec{name: name, kind: kindCharset, enc: enc}
}

// Name returns the charset name of the codec.
func (c *Codec) Name() string {
	return c.name
}

// WithNFC returns a copy of c that also normalizes the decoded text to
// Unicode Normalization Form C, as RFC 3987, Section 3.1 asks for IRIs
// coming from non-Unicode sources.
func (c *Codec) WithNFC() *Codec {
	cp := *c
	cp.nfc = true
	return &cp
}

// DecodeRunes decodes src and calls fn with every code point in order.
// Each call starts from a fresh decoder state. fn is only called once the
// whole input decoded successfully.
func (c *Codec) DecodeRunes(src []byte, fn func(r rune)) error {
	out, _, err := transform.Bytes(c.transformer(), src)
	if err != nil {
		return errors.Wrapf(ErrInvalid, "%s: %v", c.name, err)
	}
	if c.kind == kindCharset && containsReplacement(out) {
		return errors.Wrapf(ErrInvalid, "%s: undecodable input", c.name)
	}
	for len(out) > 0 {
		r, size := utf8.DecodeRune(out)
		fn(r)
		out = out[size:]
	}
	return nil
}

func (c *Codec) transformer() transform.Transformer {
	var t transform.Transformer
	switch c.kind {
	case kindUTF8:
		t = encoding.UTF8Validator
	case kindASCII:
		t = asciiValidator{}
	default:
		t = c.enc.NewDecoder()
	}
	if c.nfc {
		t = transform.Chain(t, norm.NFC)
	}
	return t
}

func containsReplacement(b []byte) bool {
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError {
			return true
		}
		b = b[size:]
	}
	return false
}

// asciiValidator copies 7-bit bytes and fails on anything else.
type asciiValidator struct{ transform.NopResetter }

func (asciiValidator) Transform(dst, src []byte, _ bool) (int, int, error) {
	n := len(src)
	var err error
	if n > len(dst) {
		n = len(dst)
		err = transform.ErrShortDst
	}
	for i := range n {
		if src[i] >= utf8.RuneSelf {
			return i, i, errNonASCII
		}
		dst[i] = src[i]
	}
	return n, n, err
}
