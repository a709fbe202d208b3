/*
 * Copyright 2024-2025 by the peview project authors
 * All Rights Reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package pe

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorBounds(t *testing.T) {
	c := newCursor([]byte{0x01, 0x02, 0x03, 0x04})

	assert.True(t, c.in(0, 4))
	assert.True(t, c.in(3, 1))
	assert.False(t, c.in(4, 1))
	assert.False(t, c.in(0, 5))
	// offset+n arithmetic must not wrap
	assert.False(t, c.in(math.MaxUint64, 1))
	assert.False(t, c.in(1, math.MaxUint64))

	v, ok := c.uint32(0)
	require.True(t, ok)
	assert.Equal(t, uint32(0x04030201), v)

	_, ok = c.uint32(1)
	require.False(t, ok)

	b, ok := c.slice(2, 2)
	require.True(t, ok)
	assert.Equal(t, []byte{0x03, 0x04}, b)

	_, ok = c.slice(2, 3)
	assert.False(t, ok)
}

func TestCursorReadInto(t *testing.T) {
	c := newCursor([]byte{0x50, 0x45, 0x00, 0x00, 0x4c, 0x01})

	var v struct {
		Sig     uint32
		Machine uint16
	}
	require.True(t, c.readInto(0, &v))
	assert.Equal(t, uint32(ntMagic), v.Sig)
	assert.Equal(t, uint16(0x14c), v.Machine)

	assert.False(t, c.readInto(1, &v))
}

func TestCursorCString(t *testing.T) {
	c := newCursor([]byte("kernel32.dll\x00junk"))

	s, ok := c.cstring(0)
	require.True(t, ok)
	assert.Equal(t, "kernel32.dll", s)

	// unterminated string at the buffer end yields the portion read
	s, ok = c.cstring(13)
	require.True(t, ok)
	assert.Equal(t, "junk", s)

	_, ok = c.cstring(100)
	assert.False(t, ok)
}

func TestCursorCStringCapped(t *testing.T) {
	c := newCursor([]byte(strings.Repeat("a", maxString*2)))

	s, ok := c.cstring(0)
	require.True(t, ok)
	assert.Len(t, s, maxString)
}
