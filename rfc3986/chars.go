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

// ASCII character classes from RFC 3986, Section 2. A byte may belong to
// several classes at once.
const (
	classAlpha uint8 = 1 << iota
	classDigit
	classHex
	classUnreservedMark // "-" / "." / "_" / "~"
	classSubDelim       // "!" / "$" / "&" / "'" / "(" / ")" / "*" / "+" / "," / ";" / "="
	classLax            // printable ASCII a lenient parser percent-encodes (RFC 3987, Section 3.1)
)

var asciiClasses = func() [128]uint8 {
	var t [128]uint8
	for c := 'a'; c <= 'z'; c++ {
		t[c] |= classAlpha
	}
	for c := 'A'; c <= 'Z'; c++ {
		t[c] |= classAlpha
	}
	for c := '0'; c <= '9'; c++ {
		t[c] |= classDigit | classHex
	}
	for _, c := range "abcdefABCDEF" {
		t[c] |= classHex
	}
	for _, c := range "-._~" {
		t[c] |= classUnreservedMark
	}
	for _, c := range "!$&'()*+,;=" {
		t[c] |= classSubDelim
	}
	// "#", "%", "[" and "]" are deliberately absent: they must never be
	// rewritten.
	for _, c := range "<>\" {}|\\^`" {
		t[c] |= classLax
	}
	return t
}()

func hasClass(r rune, class uint8) bool {
	return r >= 0 && r < 128 && asciiClasses[r]&class != 0
}

func isASCIILetter(r rune) bool   { return hasClass(r, classAlpha) }
func isASCIIDigit(r rune) bool    { return hasClass(r, classDigit) }
func isASCIIHexDigit(r rune) bool { return hasClass(r, classHex) }
func isLaxASCII(r rune) bool      { return hasClass(r, classLax) }

// isUnreserved reports membership of the RFC 3986 unreserved set.
func isUnreserved(r rune) bool {
	return hasClass(r, classAlpha|classDigit|classUnreservedMark)
}

// isUnreservedOrSubDelims reports membership of unreserved / sub-delims.
func isUnreservedOrSubDelims(r rune) bool {
	return hasClass(r, classAlpha|classDigit|classUnreservedMark|classSubDelim)
}

// isSchemeChar reports whether r may follow the first letter of a scheme.
func isSchemeChar(r rune) bool {
	return isASCIILetter(r) || isASCIIDigit(r) || r == '+' || r == '-' || r == '.'
}

// isForbiddenBidiFormatting matches LRM, RLM and LRE through RLO. RFC 3987,
// Section 4.1 forbids them anywhere in an IRI.
func isForbiddenBidiFormatting(r rune) bool {
	return r == '\u200E' || r == '\u200F' || (r >= '\u202A' && r <= '\u202E')
}

// ucscharRanges lists the ucschar production of RFC 3987, Section 2.2.
var ucscharRanges = [...][2]rune{
	{0x00A0, 0xD7FF}, {0xF900, 0xFDCF}, {0xFDF0, 0xFFEF},
	{0x10000, 0x1FFFD}, {0x20000, 0x2FFFD}, {0x30000, 0x3FFFD},
	{0x40000, 0x4FFFD}, {0x50000, 0x5FFFD}, {0x60000, 0x6FFFD},
	{0x70000, 0x7FFFD}, {0x80000, 0x8FFFD}, {0x90000, 0x9FFFD},
	{0xA0000, 0xAFFFD}, {0xB0000, 0xBFFFD}, {0xC0000, 0xCFFFD},
	{0xD0000, 0xDFFFD}, {0xE1000, 0xEFFFD},
}

func isUCSChar(r rune) bool {
	if r < 0x00A0 || isForbiddenBidiFormatting(r) {
		return false
	}
	for _, rg := range ucscharRanges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}

// isIPrivate matches the iprivate production, only allowed in queries.
func isIPrivate(r rune) bool {
	return (r >= 0xE000 && r <= 0xF8FF) ||
		(r >= 0xF0000 && r <= 0xFFFFD) ||
		(r >= 0x100000 && r <= 0x10FFFD)
}

// isIUnreservedOrSubDelims extends isUnreservedOrSubDelims with ucschar.
func isIUnreservedOrSubDelims(r rune) bool {
	return isUnreservedOrSubDelims(r) || isUCSChar(r)
}

func isUserinfoChar(r rune) bool { return isIUnreservedOrSubDelims(r) || r == ':' }

func isSegmentNoColonChar(r rune) bool { return isIUnreservedOrSubDelims(r) || r == '@' }

func isPathChar(r rune) bool {
	return isIUnreservedOrSubDelims(r) || r == ':' || r == '@' || r == '/'
}

func isFragmentChar(r rune) bool { return isPathChar(r) || r == '?' }

func isQueryChar(r rune) bool { return isFragmentChar(r) || isIPrivate(r) }

func isHostChar(r rune) bool {
	return isIUnreservedOrSubDelims(r) || r == ':'
}
