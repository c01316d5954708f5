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

// Command uriparse parses a URI, optionally resolves it against a base, and
// prints its components as shell variable assignments.
//
// Usage:
//
//	uriparse [OPTIONS] URI [BASE]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jplu/liburi/locale"
	"github.com/jplu/liburi/uri"
)

const programName = "uriparse"

type config struct {
	verbose  bool
	prefix   string
	printURI bool
	omit     bool
	charset  string
	nfc      bool
	json     bool
	uri      string
	base     string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	log := newLogger(stderr, cfg.verbose)

	u, err := parseURIs(cfg, log)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %s\n", programName, err)
		return 1
	}
	defer u.Destroy()
	log.Debug().Str("uri", u.String()).Msg("parsed")

	switch {
	case cfg.json:
		err = printJSON(stdout, u)
	case cfg.printURI:
		err = printRecomposed(stdout, u)
	default:
		p := &printer{w: stdout, prefix: cfg.prefix, omit: cfg.omit}
		err = p.components(u)
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s: %s\n", programName, err)
		return 1
	}
	return 0
}

func parseArgs(args []string, stderr io.Writer) (*config, error) {
	var cfg config
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(fs) }

	fs.BoolVar(&cfg.verbose, "v", false, "Produce verbose output")
	fs.StringVar(&cfg.prefix, "p", "", "Prefix output variable names with `PREFIX`")
	fs.BoolVar(&cfg.printURI, "u", false, "Print the parsed URI instead of components")
	fs.BoolVar(&cfg.omit, "o", false, "Omit printing components which are absent")
	fs.StringVar(&cfg.charset, "charset", "",
		"Decode the arguments from charset `NAME`, or guess it with \"auto\" (default: from the locale)")
	fs.BoolVar(&cfg.nfc, "nfc", false, "Normalize the decoded arguments to Unicode NFC")
	fs.BoolVar(&cfg.json, "json", false, "Print the components as a JSON object")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return nil, errors.New("wrong number of arguments")
	}
	cfg.uri = fs.Arg(0)
	cfg.base = fs.Arg(1)
	return &cfg, nil
}

func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintf(w, "Parse a URI and print its components\n\n")
	fmt.Fprintf(w, "Usage: %s [OPTIONS] URI [BASE]\n\nOPTIONS is one or more of:\n", programName)
	fs.PrintDefaults()
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).With().Timestamp().Str("program", programName).Logger()
}

// codec picks the decoder for the command-line arguments.
func codec(cfg *config, log zerolog.Logger) (*locale.Codec, error) {
	var (
		c   *locale.Codec
		err error
	)
	switch cfg.charset {
	case "":
		c, err = locale.FromEnv()
		err = errors.WithMessage(err, "locale")
	case "auto":
		c, err = locale.Detect([]byte(cfg.uri + cfg.base))
		if err != nil {
			log.Warn().Err(err).Msg("charset detection failed, assuming UTF-8")
			c, err = locale.UTF8(), nil
		}
	default:
		c, err = locale.Lookup(cfg.charset)
	}
	if err != nil {
		return nil, err
	}
	if cfg.nfc {
		c = c.WithNFC()
	}
	log.Debug().Str("charset", c.Name()).Bool("nfc", cfg.nfc).Msg("decoding arguments")
	return c, nil
}

func parseURIs(cfg *config, log zerolog.Logger) (*uri.URI, error) {
	c, err := codec(cfg, log)
	if err != nil {
		return nil, err
	}
	pre := uri.WithPreprocessor(uri.Preprocessor{Decoder: c})

	rel, err := uri.Parse(cfg.uri, pre)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse URI '%s'", cfg.uri)
	}
	if cfg.base == "" {
		return rel, nil
	}
	defer rel.Destroy()

	base, err := uri.Parse(cfg.base, pre)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse URI '%s'", cfg.base)
	}
	defer base.Destroy()

	u, err := uri.Rebase(rel, base)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve '%s' against '%s'", cfg.uri, cfg.base)
	}
	return u, nil
}

func printRecomposed(w io.Writer, u *uri.URI) error {
	n := u.StrTo(nil)
	if n == uri.SizeUnknown {
		return errors.New("failed to recompose URI")
	}
	buf := make([]byte, n)
	u.StrTo(buf)
	_, err := fmt.Fprintf(w, "%s\n", buf[:n-1])
	return err
}

func printJSON(w io.Writer, u *uri.URI) error {
	info, err := uri.Snapshot(u)
	if err != nil {
		return errors.Wrap(err, "failed to obtain components")
	}
	defer info.Destroy()
	return json.NewEncoder(w).Encode(info)
}

// printer writes components as shell assignments, reusing one buffer grown
// on demand.
type printer struct {
	w      io.Writer
	prefix string
	omit   bool
	buf    []byte
}

func (p *printer) components(u *uri.URI) error {
	for _, c := range []struct {
		name string
		get  func([]byte) int
	}{
		{"scheme", u.SchemeTo},
		{"auth", u.AuthTo},
		{"host", u.HostTo},
		{"port", u.PortTo},
		{"path", u.PathTo},
		{"query", u.QueryTo},
		{"fragment", u.FragmentTo},
	} {
		if err := p.component(c.name, c.get); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) component(name string, get func([]byte) int) error {
	n := get(p.buf)
	if n == uri.SizeUnknown {
		return errors.Errorf("failed to obtain %s", name)
	}
	if n > len(p.buf) {
		p.buf = make([]byte, n)
		n = get(p.buf)
	}
	if n == 0 {
		if p.omit {
			return nil
		}
		_, err := fmt.Fprintf(p.w, "%s%s=''\n", p.prefix, name)
		return err
	}
	_, err := fmt.Fprintf(p.w, "%s%s=\"%s\"\n", p.prefix, name, shellEscape(p.buf[:n-1]))
	return err
}

// shellEscape quotes text for use between double quotes in a POSIX shell.
// Bytes outside the printable range are written as octal escapes.
func shellEscape(text []byte) string {
	var b strings.Builder
	for _, c := range text {
		switch {
		case c == '$' || c == '"' || c == '\\' || c == '`':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c < 32 || c > 127:
			fmt.Fprintf(&b, "\\%03o", c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
