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

// outputBuffer receives component text under the query-then-fill
// convention. Every byte offered is counted, whether or not it fits.
type outputBuffer interface {
	// writeByte appends a single byte.
	writeByte(c byte)
	// writeString appends s and returns how many of its bytes did not fit.
	writeString(s string) int
	// len returns the number of bytes offered so far.
	len() int
	// terminate writes the NUL after the stored bytes, if there is room
	// for anything at all.
	terminate()
}

// newOutputBuffer returns the buffer filling buf. A zero-capacity buf only
// asks for the size.
func newOutputBuffer(buf []byte) outputBuffer {
	if len(buf) == 0 {
		return &voidOutputBuffer{}
	}
	return &boundedOutputBuffer{buf: buf}
}

// voidOutputBuffer discards all writes and only tracks the length of the
// would-be output.
type voidOutputBuffer struct {
	length int
}

func (b *voidOutputBuffer) writeByte(byte) { b.length++ }

func (b *voidOutputBuffer) writeString(s string) int {
	b.length += len(s)
	return len(s)
}

func (b *voidOutputBuffer) len() int { return b.length }

func (b *voidOutputBuffer) terminate() {}

// boundedOutputBuffer copies into a caller buffer, keeping its last byte
// for the terminator. Once full it keeps counting without writing.
type boundedOutputBuffer struct {
	buf    []byte
	length int
}

// stored returns the number of bytes actually held in buf.
func (b *boundedOutputBuffer) stored() int {
	return min(b.length, len(b.buf)-1)
}

func (b *boundedOutputBuffer) writeByte(c byte) {
	if n := b.stored(); n < len(b.buf)-1 {
		b.buf[n] = c
	}
	b.length++
}

func (b *boundedOutputBuffer) writeString(s string) int {
	n := copy(b.buf[b.stored():len(b.buf)-1], s)
	b.length += len(s)
	return len(s) - n
}

func (b *boundedOutputBuffer) len() int { return b.length }

func (b *boundedOutputBuffer) terminate() {
	b.buf[b.stored()] = 0
}
