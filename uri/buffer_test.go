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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoidOutputBuffer(t *testing.T) {
	b := newOutputBuffer(nil)
	b.writeByte('/')
	assert.Equal(t, 3, b.writeString("abc"))
	b.terminate()
	assert.Equal(t, 4, b.len())
}

func TestBoundedOutputBuffer(t *testing.T) {
	tests := []struct {
		name      string
		size      int
		writes    []string
		want      string
		truncated []int
	}{
		{"fits", 8, []string{"ab", "cd"}, "abcd", []int{0, 0}},
		{"exact", 5, []string{"ab", "cd"}, "abcd", []int{0, 0}},
		{"truncates in the middle", 4, []string{"ab", "cd"}, "abc", []int{0, 1}},
		{"full before the write", 3, []string{"ab", "cd"}, "ab", []int{0, 2}},
		{"terminator only", 1, []string{"ab"}, "", []int{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, tt.size)
			for i := range buf {
				buf[i] = 'x'
			}
			b := newOutputBuffer(buf)
			total := 0
			for i, s := range tt.writes {
				assert.Equal(t, tt.truncated[i], b.writeString(s))
				total += len(s)
			}
			b.terminate()

			require.Equal(t, total, b.len())
			assert.Equal(t, tt.want, string(buf[:len(tt.want)]))
			assert.Equal(t, byte(0), buf[len(tt.want)])
		})
	}
}

func TestBoundedOutputBuffer_WriteByte(t *testing.T) {
	buf := make([]byte, 3)
	b := newOutputBuffer(buf)
	b.writeByte('a')
	b.writeByte('b')
	b.writeByte('c')
	b.terminate()
	assert.Equal(t, 3, b.len())
	assert.Equal(t, []byte{'a', 'b', 0}, buf)
}
