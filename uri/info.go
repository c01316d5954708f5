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
	"encoding/json"
	"unsafe"

	"github.com/jplu/liburi/textrange"
)

// Info is a snapshot of the components of a URI. All of its text lives in
// one allocation it owns alone, so it stays valid after the URI it was
// taken from is destroyed.
type Info struct {
	text                                      string
	scheme, auth, host, path, query, fragment textrange.View
	port                                      int
}

// Snapshot copies the components of u into a new Info.
func Snapshot(u *URI) (*Info, error) {
	if u == nil {
		return nil, &Error{Op: "snapshot", Kind: ErrComponent, Err: errDestroyed}
	}
	fetch := [...]func([]byte) int{u.SchemeTo, u.AuthTo, u.HostTo, u.PathTo, u.QueryTo, u.FragmentTo}

	total := 0
	for _, f := range fetch {
		n := f(nil)
		if n == SizeUnknown {
			return nil, &Error{Op: "snapshot", Kind: ErrComponent, Err: errDestroyed}
		}
		total += n
	}

	type span struct {
		start, end int
		ok         bool
	}
	var spans [len(fetch)]span
	buf := make([]byte, total)
	off := 0
	for i, f := range fetch {
		if n := f(buf[off:]); n > 0 {
			spans[i] = span{start: off, end: off + n - 1, ok: true}
			off += n
		}
	}

	// buf is never written again from here on.
	info := &Info{
		text: unsafe.String(unsafe.SliceData(buf), len(buf)),
		port: u.PortNumber(),
	}
	fields := [len(fetch)]*textrange.View{&info.scheme, &info.auth, &info.host, &info.path, &info.query, &info.fragment}
	for i, s := range spans {
		if s.ok {
			*fields[i] = textrange.New(info.text, s.start, s.end)
		}
	}
	return info, nil
}

// Scheme returns the scheme and whether it was present.
func (i *Info) Scheme() (string, bool) { return viewString(i.scheme) }

// Auth returns the user information and whether it was present.
func (i *Info) Auth() (string, bool) { return viewString(i.auth) }

// Host returns the host and whether it was present.
func (i *Info) Host() (string, bool) { return viewString(i.host) }

// Path returns the recomposed path and whether it was present.
func (i *Info) Path() (string, bool) { return viewString(i.path) }

// Query returns the query and whether it was present.
func (i *Info) Query() (string, bool) { return viewString(i.query) }

// Fragment returns the fragment and whether it was present.
func (i *Info) Fragment() (string, bool) { return viewString(i.fragment) }

// Port returns the port number, 0 when there is none usable.
func (i *Info) Port() int { return i.port }

// Destroy releases the snapshot. It is safe to call on a nil Info.
func (i *Info) Destroy() {
	if i == nil {
		return
	}
	*i = Info{}
}

type infoJSON struct {
	Scheme   *string `json:"scheme,omitempty"`
	Auth     *string `json:"auth,omitempty"`
	Host     *string `json:"host,omitempty"`
	Port     int     `json:"port,omitempty"`
	Path     *string `json:"path,omitempty"`
	Query    *string `json:"query,omitempty"`
	Fragment *string `json:"fragment,omitempty"`
}

func optional(v textrange.View) *string {
	if !v.Present() {
		return nil
	}
	s := v.String()
	return &s
}

// MarshalJSON encodes the snapshot as an object. Absent components are
// left out; present but empty ones are encoded as "".
func (i *Info) MarshalJSON() ([]byte, error) {
	return json.Marshal(infoJSON{
		Scheme:   optional(i.scheme),
		Auth:     optional(i.auth),
		Host:     optional(i.host),
		Port:     i.port,
		Path:     optional(i.path),
		Query:    optional(i.query),
		Fragment: optional(i.fragment),
	})
}
