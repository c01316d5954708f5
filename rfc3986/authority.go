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
	"net/netip"
	"strings"
)

const (
	// authorityPrefixLength is the length of the string "//".
	authorityPrefixLength = 2
	// ipvFutureParts is the number of dot-separated parts of an IPvFuture
	// literal such as "v1.abc".
	ipvFutureParts = 2
)

// authoritySplit locates userinfo, host and port inside an authority.
// Offsets are relative to the authority text, without its "//" prefix.
type authoritySplit struct {
	at        int // offset of the "@" ending the userinfo, -1 without userinfo
	hostStart int
	hostEnd   int
	colon     int // offset of the ":" starting the port, -1 without port
}

// splitAuthority is the single place where an authority is cut into its
// userinfo, host and port subcomponents.
func splitAuthority(authority string) authoritySplit {
	s := authoritySplit{at: -1, colon: -1}
	if at := strings.LastIndexByte(authority, '@'); at >= 0 {
		s.at = at
		s.hostStart = at + 1
	}
	s.hostEnd = len(authority)
	hostport := authority[s.hostStart:]

	if strings.HasPrefix(hostport, "[") {
		end := strings.LastIndexByte(hostport, ']')
		if end < 0 {
			return s
		}
		switch rest := hostport[end+1:]; {
		case rest == "":
		case rest[0] == ':':
			s.hostEnd = s.hostStart + end + 1
			s.colon = s.hostEnd
		default:
			// Leave the trailing garbage in the host so validation rejects it.
		}
		return s
	}

	if colon := strings.LastIndexByte(hostport, ':'); colon >= 0 {
		s.hostEnd = s.hostStart + colon
		s.colon = s.hostEnd
	}
	return s
}

func (s authoritySplit) userinfo(authority string) (string, bool) {
	if s.at < 0 {
		return "", false
	}
	return authority[:s.at], true
}

func (s authoritySplit) host(authority string) string {
	return authority[s.hostStart:s.hostEnd]
}

func (s authoritySplit) port(authority string) (string, bool) {
	if s.colon < 0 {
		return "", false
	}
	return authority[s.colon+1:], true
}

// parseAuthority consumes and validates the authority, which runs up to the
// first "/", "?" or "#".
func (p *parser) parseAuthority() error {
	rest := p.in.rest()
	end := strings.IndexAny(rest, "/?#")
	if end < 0 {
		end = len(rest)
	}
	authority := rest[:end]
	split := splitAuthority(authority)

	if userinfo, ok := split.userinfo(authority); ok {
		if err := p.parseUserinfo(userinfo); err != nil {
			return err
		}
	}
	if err := p.parseHost(split.host(authority)); err != nil {
		return err
	}
	if port, ok := split.port(authority); ok {
		if err := p.parsePort(port); err != nil {
			return err
		}
	}

	p.in.pos += end
	p.pos.AuthorityEnd = p.out.Len()
	return nil
}

// parseUserinfo copies the userinfo and its terminating "@".
func (p *parser) parseUserinfo(userinfo string) error {
	if err := validateBidiComponent(userinfo); err != nil {
		return err
	}
	in := &input{s: userinfo}
	for {
		r, ok := in.next()
		if !ok {
			break
		}
		if err := p.consume(in, r, isUserinfoChar); err != nil {
			return err
		}
	}
	p.out.WriteByte('@')
	return nil
}

// parseHost validates and copies the host. Lax ASCII characters are not
// tolerated here.
func (p *parser) parseHost(host string) error {
	if err := validateHost(host); err != nil {
		return err
	}
	// Brackets only delimit an IP literal, never appear inside a reg-name.
	literal := strings.HasPrefix(host, "[")
	if literal {
		host = host[1 : len(host)-1]
		p.out.WriteByte('[')
	}
	in := &input{s: host}
	for {
		r, ok := in.next()
		if !ok {
			if literal {
				p.out.WriteByte(']')
			}
			return nil
		}
		if r == '%' {
			if err := p.readEchar(in); err != nil {
				return err
			}
			continue
		}
		if !isHostChar(r) {
			return &kindError{message: "Invalid character in host", char: r}
		}
		p.out.WriteRune(r)
	}
}

// parsePort copies ":" and the port, which may be empty.
func (p *parser) parsePort(port string) error {
	for _, r := range port {
		if !isASCIIDigit(r) {
			return &kindError{message: "Invalid port character", char: r}
		}
	}
	p.out.WriteByte(':')
	p.out.WriteString(port)
	return nil
}

// validateHost checks IP literals for structure and registered names for
// the bidi rules.
func validateHost(host string) error {
	if !strings.HasPrefix(host, "[") {
		return validateBidiHost(host)
	}
	if !strings.HasSuffix(host, "]") {
		return &kindError{message: "Invalid host IP: unterminated IP literal", details: host}
	}
	return validateIPLiteral(host[1 : len(host)-1])
}

// validateIPLiteral accepts an IPv6 address or an IPvFuture literal, the
// two forms RFC 3986, Section 3.2.2 allows between brackets.
func validateIPLiteral(literal string) error {
	if strings.HasPrefix(literal, "v") || strings.HasPrefix(literal, "V") {
		return validateIPvFuture(literal)
	}
	addr, err := netip.ParseAddr(literal)
	if err != nil || !addr.Is6() {
		return &kindError{message: "Invalid host IP", details: literal}
	}
	return nil
}

func validateIPvFuture(literal string) error {
	parts := strings.SplitN(literal[1:], ".", ipvFutureParts)
	if len(parts) != ipvFutureParts {
		return &kindError{message: "Invalid IPvFuture format: no dot separator", details: literal}
	}
	version, address := parts[0], parts[1]
	if version == "" {
		return &kindError{message: "Invalid IPvFuture: missing version", details: literal}
	}
	for _, r := range version {
		if !isASCIIHexDigit(r) {
			return &kindError{message: "Invalid IPvFuture version char", char: r}
		}
	}
	if address == "" {
		return &kindError{message: "Invalid IPvFuture: empty address part", details: literal}
	}
	for _, r := range address {
		if !isUnreservedOrSubDelims(r) && r != ':' {
			return &kindError{message: "Invalid IPvFuture address char", char: r}
		}
	}
	return nil
}
