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

	"golang.org/x/text/unicode/bidi"
)

// direction classifies r as right-to-left, left-to-right or neutral for the
// purposes of RFC 3987, Section 4.2.
func direction(r rune) (rtl, ltr bool) {
	prop, _ := bidi.LookupRune(r)
	switch prop.Class() {
	case bidi.R, bidi.AL:
		return true, false
	case bidi.L:
		return false, true
	default:
		return false, false
	}
}

func isRTL(r rune) bool {
	rtl, _ := direction(r)
	return rtl
}

// validateBidiComponent applies the structural rules of RFC 3987,
// Section 4.2 to a single component: it must not mix left-to-right and
// right-to-left characters, and a right-to-left component must start and
// end with right-to-left characters.
func validateBidiComponent(component string) error {
	if isASCII(component) {
		return nil
	}

	var hasLTR, hasRTL bool
	for _, r := range component {
		rtl, ltr := direction(r)
		hasRTL = hasRTL || rtl
		hasLTR = hasLTR || ltr
	}
	if hasLTR && hasRTL {
		return &kindError{
			message: "Invalid IRI component: mixed left-to-right and right-to-left characters",
			details: component,
		}
	}
	if !hasRTL {
		return nil
	}

	first, _ := utf8.DecodeRuneInString(component)
	last, _ := utf8.DecodeLastRuneInString(component)
	if !isRTL(first) || !isRTL(last) {
		return &kindError{
			message: "Invalid IRI component: right-to-left parts must start and end with right-to-left characters",
			details: component,
		}
	}
	return nil
}

// validateBidiHost validates each dot-separated label of a registered name
// as its own component. IP literals are exempt.
func validateBidiHost(host string) error {
	if strings.HasPrefix(host, "[") {
		return nil
	}
	for label := range strings.SplitSeq(host, ".") {
		if err := validateBidiComponent(label); err != nil {
			return &kindError{
				message: "Invalid IRI host label",
				details: label + " in host '" + host + "'",
			}
		}
	}
	return nil
}

func isASCII(s string) bool {
	for i := range len(s) {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
