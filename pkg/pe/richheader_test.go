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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRichHeader(t *testing.T) {
	img := buildImage(imageOpts{withRich: true})

	rh := parseRichHeader(newCursor(img), testNTOffset)
	require.NotNil(t, rh)

	assert.Equal(t, uint32(0x40), rh.Offset)
	assert.Equal(t, uint32(0x18), rh.Length)
	assert.Equal(t, uint32(0x11223344), rh.Key)
	assert.Len(t, rh.Raw, int(rh.Length))
	assert.Len(t, rh.Clear, int(rh.Length))
	assert.Equal(t, []byte("DanS"), rh.Clear[:4])
}

func TestRichHeaderRoundTrip(t *testing.T) {
	img := buildImage(imageOpts{withRich: true})

	rh := parseRichHeader(newCursor(img), testNTOffset)
	require.NotNil(t, rh)

	// re-applying the key reproduces the stored bytes exactly
	assert.Equal(t, rh.Raw, xorWithKey(rh.Clear, rh.Key))
	assert.Equal(t, rh.Clear, xorWithKey(rh.Raw, rh.Key))
}

func TestRichHeaderAbsent(t *testing.T) {
	img := buildImage(imageOpts{})
	assert.Nil(t, parseRichHeader(newCursor(img), testNTOffset))
}

func TestRichHeaderMissingSentinel(t *testing.T) {
	img := buildImage(imageOpts{withRich: true})
	// corrupt the encrypted sentinel dword so the backward walk fails
	putU32(img, 0x40, 0)

	assert.Nil(t, parseRichHeader(newCursor(img), testNTOffset))
}

func TestRichHeaderTruncatedBuffer(t *testing.T) {
	assert.Nil(t, parseRichHeader(newCursor(make([]byte, 0x20)), testNTOffset))
	assert.Nil(t, parseRichHeader(newCursor(nil), 0))
}
