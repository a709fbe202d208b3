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

func TestParseVersionResources(t *testing.T) {
	vers := parseVersionResources(newCursor(buildVersionInfo()), 0)
	require.NotNil(t, vers)

	assert.Equal(t, "Acme", vers[Company])
	assert.Equal(t, "Rocket", vers[ProductName])
	assert.Len(t, vers, 2)
}

func TestParseVersionResourcesMisnamedRoot(t *testing.T) {
	block := vsBlock("NOT_VERSION_INFO", 0, 52, make([]byte, 52))
	assert.Nil(t, parseVersionResources(newCursor(block), 0))
}

func TestParseVersionResourcesTruncated(t *testing.T) {
	data := buildVersionInfo()

	// cutting the buffer inside the string tables keeps the entries
	// harvested up to the cut
	assert.Nil(t, parseVersionResources(newCursor(data[:4]), 0))

	vers := parseVersionResources(newCursor(data[:len(data)-8]), 0)
	require.NotNil(t, vers)
	assert.Equal(t, "Acme", vers[Company])
}

func TestParseVersionResourcesEmptyValue(t *testing.T) {
	// a String entry with no value still indexes the key
	block := vsBlock("VS_VERSION_INFO", 0, 52, make([]byte, 52),
		vsBlock("StringFileInfo", 1, 0, nil,
			vsBlock("040904b0", 1, 0, nil,
				vsBlock("Comments", 1, 0, nil))))

	vers := parseVersionResources(newCursor(block), 0)
	require.NotNil(t, vers)
	v, ok := vers["Comments"]
	require.True(t, ok)
	assert.Equal(t, "", v)
}

func TestDwordAlign(t *testing.T) {
	assert.Equal(t, uint64(0), dwordAlign(0))
	assert.Equal(t, uint64(4), dwordAlign(1))
	assert.Equal(t, uint64(4), dwordAlign(4))
	assert.Equal(t, uint64(8), dwordAlign(5))
}

func TestReadUTF16String(t *testing.T) {
	c := newCursor(utf16z("StringFileInfo"))

	s, n, ok := readUTF16String(c, 0)
	require.True(t, ok)
	assert.Equal(t, "StringFileInfo", s)
	assert.Equal(t, uint64(30), n)

	_, _, ok = readUTF16String(c, 1000)
	assert.False(t, ok)
}
