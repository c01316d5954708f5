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

import (
	"strings"
	"unicode/utf8"
)

// Positions holds the end offsets of the components of a parsed reference.
//
//   - SchemeEnd is the offset just after the scheme's ":", or 0 without a scheme.
//   - AuthorityEnd is the offset just after the authority. It equals SchemeEnd
//     when there is no authority; otherwise the authority starts at SchemeEnd
//     with the "//" prefix.
//   - PathEnd is the offset just after the path.
//   - QueryEnd is the offset just after the query, whose "?" starts at
//     PathEnd. It equals PathEnd when there is no query.
//
// A fragment is present when QueryEnd is before the end of the string.
type Positions struct {
	SchemeEnd    int
	AuthorityEnd int
	PathEnd      int
	QueryEnd     int
}

// input is a cursor over the string being parsed.
type input struct {
	s   string
	pos int
}

// peek returns the next rune without consuming it.
func (in *input) peek() (rune, bool) {
	if in.pos >= len(in.s) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(in.s[in.pos:])
	return r, true
}

// next consumes and returns the next rune.
func (in *input) next() (rune, bool) {
	if in.pos >= len(in.s) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(in.s[in.pos:])
	in.pos += size
	return r, true
}

func (in *input) startsWith(r rune) bool {
	c, ok := in.peek()
	return ok && c == r
}

// rest returns the unread part of the input.
func (in *input) rest() string {
	return in.s[in.pos:]
}

// parser holds the state of a single Parse call. Validated characters are
// copied to out; lax ASCII characters are percent-encoded on the way, so out
// is the canonical text the resulting Ref is built on.
type parser struct {
	in  input
	out strings.Builder
	pos Positions
}

// Parse parses and validates s as a URI reference (RFC 3986, Section 4.1).
// Raw IRI characters (RFC 3987 ucschar and iprivate) are accepted as well
// and are subject to the bidi rules of RFC 3987, Section 4.2.
//
// Printable ASCII characters that are not allowed in URIs, such as space,
// "<" or "{", are leniently percent-encoded rather than rejected.
func Parse(s string) (*Ref, error) {
	p := &parser{in: input{s: s}}
	p.out.Grow(len(s))
	if err := p.parseSchemeStart(); err != nil {
		return nil, newParseError(err)
	}
	return &Ref{s: p.out.String(), pos: p.pos}, nil
}

func (p *parser) parseSchemeStart() error {
	if strings.HasPrefix(p.in.s, "//") {
		// Network-path reference, such as "//example.com/path".
		p.in.pos = authorityPrefixLength
		p.out.WriteString("//")
		if err := p.parseAuthority(); err != nil {
			return err
		}
		return p.parsePathStart()
	}

	r, ok := p.in.peek()
	switch {
	case !ok:
		return p.parseRelative()
	case r == ':':
		return errNoScheme
	case isASCIILetter(r):
		return p.parseScheme()
	default:
		return p.parseRelative()
	}
}

// parseScheme looks for "scheme:" at the start of the input. Anything else
// is parsed again from the start as a relative reference.
func (p *parser) parseScheme() error {
	for i := 0; i < len(p.in.s); i++ {
		c := p.in.s[i]
		if c != ':' {
			if !isSchemeChar(rune(c)) {
				break
			}
			continue
		}

		p.out.WriteString(p.in.s[:i+1])
		p.pos.SchemeEnd = i + 1
		p.in.pos = i + 1
		if p.in.startsWith('/') {
			p.in.next()
			p.out.WriteByte('/')
			return p.parsePathOrAuthority()
		}
		p.pos.AuthorityEnd = p.pos.SchemeEnd
		return p.parsePath()
	}
	return p.parseRelative()
}

// parsePathOrAuthority handles what follows "scheme:/".
func (p *parser) parsePathOrAuthority() error {
	if p.in.startsWith('/') {
		p.in.next()
		p.out.WriteByte('/')
		if err := p.parseAuthority(); err != nil {
			return err
		}
		return p.parsePathStart()
	}
	p.pos.AuthorityEnd = p.pos.SchemeEnd
	return p.parsePath()
}

// parseRelative handles a relative reference: an absolute or relative path
// followed by the optional query and fragment.
func (p *parser) parseRelative() error {
	p.pos.SchemeEnd = 0
	p.pos.AuthorityEnd = 0
	if p.in.startsWith('/') {
		p.in.next()
		p.out.WriteByte('/')
		return p.parsePath()
	}
	return p.parsePathNoScheme()
}

// parsePathStart dispatches on the first character after an authority,
// which is either the end of input, "?", "#" or "/".
func (p *parser) parsePathStart() error {
	r, ok := p.in.peek()
	if !ok {
		p.pos.PathEnd = p.out.Len()
		p.pos.QueryEnd = p.pos.PathEnd
		return nil
	}
	switch r {
	case '?':
		p.in.next()
		p.pos.PathEnd = p.out.Len()
		p.out.WriteByte('?')
		return p.parseQuery()
	case '#':
		p.in.next()
		p.pos.PathEnd = p.out.Len()
		p.pos.QueryEnd = p.pos.PathEnd
		p.out.WriteByte('#')
		return p.parseFragment()
	default:
		return p.parsePath()
	}
}

// parsePathNoScheme consumes the first segment of a relative-path reference,
// which must not contain a colon (RFC 3986, Section 4.2).
func (p *parser) parsePathNoScheme() error {
	for {
		c, ok := p.in.peek()
		if !ok || c == '/' || c == '?' || c == '#' {
			break
		}
		if c == ':' {
			return &kindError{message: "Invalid URI character in first path segment", char: c}
		}
		p.in.next()
		if err := p.consume(&p.in, c, isSegmentNoColonChar); err != nil {
			return err
		}
	}
	return p.parsePath()
}

// parsePath consumes the rest of the path, up to a query or fragment.
func (p *parser) parsePath() error {
	hasAuthority := p.pos.AuthorityEnd > p.pos.SchemeEnd
	segmentStart := p.out.Len()

	for {
		c, ok := p.in.peek()
		if !ok {
			break
		}

		if c == '?' || c == '#' {
			if err := p.validateBidiPart(segmentStart); err != nil {
				return err
			}
			p.in.next()
			p.pos.PathEnd = p.out.Len()
			if c == '?' {
				p.out.WriteByte('?')
				return p.parseQuery()
			}
			p.pos.QueryEnd = p.pos.PathEnd
			p.out.WriteByte('#')
			return p.parseFragment()
		}

		p.in.next()
		if c != '/' {
			if err := p.consume(&p.in, c, isPathChar); err != nil {
				return err
			}
			continue
		}

		if !hasAuthority && p.out.String()[p.pos.AuthorityEnd:] == "/" {
			return errPathStartingWithSlashes
		}
		if err := p.validateBidiPart(segmentStart); err != nil {
			return err
		}
		p.out.WriteByte('/')
		segmentStart = p.out.Len()
	}

	if err := p.validateBidiPart(segmentStart); err != nil {
		return err
	}
	p.pos.PathEnd = p.out.Len()
	p.pos.QueryEnd = p.pos.PathEnd
	return nil
}

// parseQuery consumes the query and, if present, hands over to the fragment.
func (p *parser) parseQuery() error {
	start := p.out.Len()
	for {
		r, ok := p.in.peek()
		if !ok || r == '#' {
			if err := p.validateBidiPart(start); err != nil {
				return err
			}
			p.pos.QueryEnd = p.out.Len()
			if !ok {
				return nil
			}
			p.in.next()
			p.out.WriteByte('#')
			return p.parseFragment()
		}
		p.in.next()
		if err := p.consume(&p.in, r, isQueryChar); err != nil {
			return err
		}
	}
}

// parseFragment consumes the fragment, which runs to the end of input.
func (p *parser) parseFragment() error {
	start := p.out.Len()
	for {
		r, ok := p.in.next()
		if !ok {
			return p.validateBidiPart(start)
		}
		if err := p.consume(&p.in, r, isFragmentChar); err != nil {
			return err
		}
	}
}

// validateBidiPart checks the bidi rules on the output written since start.
func (p *parser) validateBidiPart(start int) error {
	return validateBidiComponent(p.out.String()[start:])
}

// consume writes r, already read from in, to the output. A "%" must start
// a valid percent-encoded octet, valid characters are copied and lax ASCII
// characters are percent-encoded (RFC 3987, Section 3.1).
func (p *parser) consume(in *input, r rune, valid func(rune) bool) error {
	switch {
	case r == '%':
		return p.readEchar(in)
	case valid(r):
		p.out.WriteRune(r)
		return nil
	case isLaxASCII(r):
		writePercentEncoded(&p.out, byte(r))
		return nil
	default:
		return &kindError{message: "Invalid URI character", char: r}
	}
}

// readEchar reads the two hexadecimal digits following a "%".
func (p *parser) readEchar(in *input) error {
	c1, ok1 := in.next()
	c2, ok2 := in.next()
	if !ok1 || !ok2 || !isASCIIHexDigit(c1) || !isASCIIHexDigit(c2) {
		details := "%"
		if ok1 {
			details += string(c1)
		}
		if ok2 {
			details += string(c2)
		}
		return &kindError{message: "Invalid URI percent encoding", details: details}
	}
	p.out.WriteByte('%')
	p.out.WriteRune(c1)
	p.out.WriteRune(c2)
	return nil
}
