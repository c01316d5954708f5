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

const upperHex = "0123456789ABCDEF"

// writePercentEncoded writes c as a "%XX" triplet.
func writePercentEncoded(b *strings.Builder, c byte) {
	b.WriteByte('%')
	b.WriteByte(upperHex[c>>4])
	b.WriteByte(upperHex[c&0x0F])
}

func unhex(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	default:
		return c - '0'
	}
}

// Normalize applies the syntax-based normalization of RFC 3986,
// Section 6.2.2 and returns the normalized reference:
//   - the scheme and the host are lowercased;
//   - hexadecimal digits of percent-encoded octets are uppercased and octets
//     encoding unreserved characters are decoded;
//   - dot segments are removed, except from relative-path references where
//     a leading ".." still carries meaning;
//   - an empty path under an authority becomes "/".
//
// Host names are not mapped through IDNA and default ports are kept, since
// both depend on the scheme.
func Normalize(r *Ref) *Ref {
	c := r.components()

	c.scheme = strings.ToLower(c.scheme)
	c.userinfo = normalizePercentEncoding(c.userinfo)
	c.host = lowerOutsideEscapes(normalizePercentEncoding(c.host))
	c.path = normalizePercentEncoding(c.path)
	c.query = normalizePercentEncoding(c.query)
	c.fragment = normalizePercentEncoding(c.fragment)

	if c.hasScheme || c.hasAuthority || strings.HasPrefix(c.path, "/") {
		c.path = removeDotSegments(c.path)
	}
	if c.hasAuthority && c.path == "" {
		c.path = "/"
	}

	n := c.ref()
	if n.s == r.s {
		return r
	}
	return n
}

// normalizePercentEncoding decodes percent-encoded unreserved characters
// and uppercases the hexadecimal digits of the remaining triplets
// (RFC 3986, Sections 6.2.2.1 and 6.2.2.2).
func normalizePercentEncoding(s string) string {
	if strings.IndexByte(s, '%') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '%' || i+2 >= len(s) ||
			!isASCIIHexDigit(rune(s[i+1])) || !isASCIIHexDigit(rune(s[i+2])) {
			b.WriteByte(s[i])
			continue
		}
		c := unhex(s[i+1])<<4 | unhex(s[i+2])
		if isUnreserved(rune(c)) {
			b.WriteByte(c)
		} else {
			writePercentEncoded(&b, c)
		}
		i += 2
	}
	return b.String()
}

// lowerOutsideEscapes lowercases ASCII letters that are not part of a
// percent-encoded triplet.
func lowerOutsideEscapes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && i+2 < len(s) {
			b.WriteString(s[i : i+3])
			i += 2
			continue
		}
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}
