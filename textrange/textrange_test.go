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

package textrange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbsent(t *testing.T) {
	v := Absent()

	assert.False(t, v.Present())
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, "", v.String())
}

func TestNew(t *testing.T) {
	buf := "http://example.com/path"
	v := New(buf, 7, 18)

	require.True(t, v.Present())
	assert.Equal(t, "example.com", v.String())
	assert.Equal(t, 11, v.Len())
	assert.Equal(t, 18, v.End())
}

func TestNew_EmptyIsPresent(t *testing.T) {
	v := New("http://host/?", 13, 13)

	assert.True(t, v.Present(), "an empty range is still a present component")
	assert.Equal(t, 0, v.Len())
}

func TestNew_InvalidBounds(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
	}{
		{"negative start", -1, 2},
		{"end before start", 3, 2},
		{"end past buffer", 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() { New("abc", tt.start, tt.end) })
		})
	}
}

func TestOpen(t *testing.T) {
	v := Open("scheme:rest", 7)

	require.True(t, v.Present())
	assert.Equal(t, "rest", v.String())
	assert.Equal(t, 11, v.End())
	assert.Panics(t, func() { Open("abc", 4) })
}

func TestOf(t *testing.T) {
	assert.Equal(t, "segment", Of("segment").String())
	assert.True(t, Of("").Present())
}
