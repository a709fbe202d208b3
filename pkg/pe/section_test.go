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

func newSectionTable(secs ...Sec) *sectionTable {
	return &sectionTable{secs: secs, offsets: make(map[uint32]int64)}
}

func TestRvaToOffset(t *testing.T) {
	secs := newSectionTable(
		Sec{Name: ".text", VirtualAddress: 0x1000, VirtualSize: 0x800, RawDataOffset: 0x400, RawDataSize: 0x800},
		Sec{Name: ".data", VirtualAddress: 0x2000, VirtualSize: 0x200, RawDataOffset: 0xc00, RawDataSize: 0x400},
	)

	var tests = []struct {
		name   string
		rva    uint32
		offset uint64
		ok     bool
	}{
		{"start of section", 0x1000, 0x400, true},
		{"inside section", 0x1200, 0x600, true},
		{"last byte of section", 0x17ff, 0xbff, true},
		{"start of second section", 0x2000, 0xc00, true},
		{"gap between sections", 0x1900, 0, false},
		{"beyond all sections", 0x5000, 0, false},
		{"header region maps verbatim", 0x200, 0x200, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off, ok := secs.rvaToOffset(tt.rva)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.offset, off)
		})
	}
}

func TestRvaToOffsetZeroVirtualSize(t *testing.T) {
	// zero virtual size falls back to the raw data size for containment
	secs := newSectionTable(
		Sec{Name: ".rsrc", VirtualAddress: 0x3000, VirtualSize: 0, RawDataOffset: 0x800, RawDataSize: 0x200},
	)

	off, ok := secs.rvaToOffset(0x3100)
	require.True(t, ok)
	assert.Equal(t, uint64(0x900), off)

	_, ok = secs.rvaToOffset(0x3200)
	assert.False(t, ok)
}

func TestRvaToOffsetMemoized(t *testing.T) {
	secs := newSectionTable(
		Sec{Name: ".text", VirtualAddress: 0x1000, VirtualSize: 0x800, RawDataOffset: 0x400, RawDataSize: 0x800},
	)

	off1, ok1 := secs.rvaToOffset(0x1234)
	off2, ok2 := secs.rvaToOffset(0x1234)
	assert.Equal(t, off1, off2)
	assert.Equal(t, ok1, ok2)

	_, ok := secs.rvaToOffset(0x9999)
	require.False(t, ok)
	// negative memo entries stay undefined
	_, ok = secs.rvaToOffset(0x9999)
	assert.False(t, ok)
}

func TestRvaToOffsetEmptyTable(t *testing.T) {
	secs := newSectionTable()

	// with no sections every address maps onto itself
	off, ok := secs.rvaToOffset(0x80)
	require.True(t, ok)
	assert.Equal(t, uint64(0x80), off)
}

func TestSectionEntropyAndMD5(t *testing.T) {
	img := buildImage(imageOpts{withImports: true, withExports: true})

	p, err := Parse(img, ModeFile, WithSectionEntropy(), WithSectionMD5())
	require.NoError(t, err)

	require.Len(t, p.Sections, 1)
	sec := p.Sections[0]
	assert.Greater(t, sec.Entropy, 0.0)
	assert.Len(t, sec.Md5, 32)
}

func TestEntropy(t *testing.T) {
	assert.Equal(t, 0.0, entropy(nil))
	assert.Equal(t, 0.0, entropy([]byte{0x41, 0x41, 0x41, 0x41}))

	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	assert.InDelta(t, 8.0, entropy(all), 0.0001)
}
