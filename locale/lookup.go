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

package locale

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// ErrUnknownCharset is returned for charset names no codec exists for.
var ErrUnknownCharset = errors.New("unknown charset")

// chardet reports a few charsets under names the registries do not know.
var detectorNames = map[string]string{
	"GB-18030": "GB18030",
}

// Lookup returns the codec for a charset name. IANA names and aliases are
// tried first, then MIME names, then the names of the WHATWG Encoding
// Standard.
func Lookup(name string) (*Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8":
		return UTF8(), nil
	case "us-ascii", "ascii", "ansi_x3.4-1968", "646":
		return ASCII(), nil
	}

	enc, canonical := lookupEncoding(name)
	if enc == nil {
		return nil, errors.Wrapf(ErrUnknownCharset, "lookup %q", name)
	}
	if enc == unicode.UTF8 {
		return UTF8(), nil
	}
	return New(canonical, enc), nil
}

func lookupEncoding(name string) (encoding.Encoding, string) {
	for _, idx := range []*ianaindex.Index{ianaindex.IANA, ianaindex.MIME} {
		// Registered charsets without an implementation yield a nil encoding.
		if enc, err := idx.Encoding(name); err == nil && enc != nil {
			return enc, canonicalName(enc, name)
		}
	}
	if enc, err := htmlindex.Get(name); err == nil {
		if canonical, err := htmlindex.Name(enc); err == nil {
			return enc, canonical
		}
		return enc, name
	}
	return nil, ""
}

// canonicalName prefers the preferred MIME name of enc.
func canonicalName(enc encoding.Encoding, fallback string) string {
	for _, idx := range []*ianaindex.Index{ianaindex.MIME, ianaindex.IANA} {
		if name, err := idx.Name(enc); err == nil {
			return name
		}
	}
	return fallback
}

// FromEnv returns the codec of the character type locale of the process,
// taken from LC_ALL, LC_CTYPE and LANG in that order of precedence. With
// none of them set, or with a locale naming no charset, UTF-8 is assumed.
// The C and POSIX locales map to ASCII.
func FromEnv() (*Codec, error) {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if v := os.Getenv(key); v != "" {
			c, err := FromLocale(v)
			return c, errors.WithMessagef(err, "%s=%s", key, v)
		}
	}
	return UTF8(), nil
}

// FromLocale returns the codec of a POSIX locale name of the form
// language[_territory][.charset][@modifier].
func FromLocale(name string) (*Codec, error) {
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	if name == "C" || name == "POSIX" {
		return ASCII(), nil
	}
	dot := strings.IndexByte(name, '.')
	if dot < 0 {
		return UTF8(), nil
	}
	return Lookup(name[dot+1:])
}

// Detect guesses the charset of sample and returns its codec. An empty
// sample is taken as UTF-8.
func Detect(sample []byte) (*Codec, error) {
	if len(sample) == 0 {
		return UTF8(), nil
	}
	best, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil {
		return nil, errors.Wrap(err, "detect charset")
	}
	name := best.Charset
	if alias, ok := detectorNames[name]; ok {
		name = alias
	}
	return Lookup(name)
}
