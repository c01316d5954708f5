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
	"unicode/utf8"

	"github.com/jplu/liburi/locale"
)

// reservedPerRune is the number of bytes set aside by the sizing pass for
// each code point that must be percent-encoded. It is a fixed allowance
// sized for the common case: a code point needing four UTF-8 bytes takes
// twelve once encoded, and the output buffer then grows.
const reservedPerRune = 6

const lowerHex = "0123456789abcdef"

// Decoder decodes text from a character encoding into code points. Each
// call must start from a fresh decoding state. *locale.Codec implements it.
type Decoder interface {
	DecodeRunes(src []byte, fn func(r rune)) error
}

// Preprocessor maps IRIs to URIs as RFC 3987, Section 3.1 describes: input
// text is decoded with Decoder and every code point outside the printable
// ASCII range is written as percent-encoded UTF-8.
//
// The zero Preprocessor decodes UTF-8.
type Preprocessor struct {
	Decoder Decoder
}

func (p Preprocessor) decoder() Decoder {
	if p.Decoder == nil {
		return locale.UTF8()
	}
	return p.Decoder
}

// mustEncode reports whether r is outside [33, 127].
func mustEncode(r rune) bool {
	return r < '!' || r > 0x7F
}

// Extra returns the number of bytes reserved beyond len(raw) for the
// encoded form of raw.
func (p Preprocessor) Extra(raw []byte) (int, error) {
	extra := 0
	err := p.decoder().DecodeRunes(raw, func(r rune) {
		if mustEncode(r) {
			extra += reservedPerRune
		}
	})
	if err != nil {
		return 0, err
	}
	return extra, nil
}

// Preprocess returns the ASCII form of raw. Decoding errors from either
// pass abort the whole conversion and wrap ErrInvalidEncoding.
func (p Preprocessor) Preprocess(raw []byte) ([]byte, error) {
	extra, err := p.Extra(raw)
	if err != nil {
		return nil, &Error{Op: "preprocess", Kind: ErrInvalidEncoding, Err: err}
	}

	out := make([]byte, 0, len(raw)+extra+1)
	err = p.decoder().DecodeRunes(raw, func(r rune) {
		if !mustEncode(r) {
			out = append(out, byte(r))
			return
		}
		var u [utf8.UTFMax]byte
		n := utf8.EncodeRune(u[:], r)
		for _, c := range u[:n] {
			out = append(out, '%', lowerHex[c>>4], lowerHex[c&0x0F])
		}
	})
	if err != nil {
		return nil, &Error{Op: "preprocess", Kind: ErrInvalidEncoding, Err: err}
	}
	return out, nil
}
