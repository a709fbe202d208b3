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
	"bytes"
	"encoding/binary"
)

// maxString caps the length of NUL-terminated string reads to
// prevent unbounded scans over attacker-controlled name tables.
const maxString = 512

// cursor provides bounds-checked random access into the input buffer.
// Every read performed by the header, section, and directory parsers
// goes through the cursor, so a single out-of-range offset degrades
// that one fact instead of faulting the whole scan. All arithmetic
// is performed in 64 bits to rule out 32-bit offset wrapping.
type cursor struct {
	data []byte
}

func newCursor(data []byte) *cursor { return &cursor{data: data} }

func (c *cursor) size() uint64 { return uint64(len(c.data)) }

// in reports whether the [offset, offset+n) window lies within the buffer.
func (c *cursor) in(offset, n uint64) bool {
	if n > c.size() {
		return false
	}
	return offset <= c.size()-n
}

// slice returns the window of n bytes starting at the given offset.
// The returned slice aliases the underlying buffer and must be treated
// as read-only.
func (c *cursor) slice(offset, n uint64) ([]byte, bool) {
	if !c.in(offset, n) {
		return nil, false
	}
	return c.data[offset : offset+n], true
}

func (c *cursor) uint8(offset uint64) (uint8, bool) {
	b, ok := c.slice(offset, 1)
	if !ok {
		return 0, false
	}
	return b[0], true
}

func (c *cursor) uint16(offset uint64) (uint16, bool) {
	b, ok := c.slice(offset, 2)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint16(b), true
}

func (c *cursor) uint32(offset uint64) (uint32, bool) {
	b, ok := c.slice(offset, 4)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b), true
}

func (c *cursor) uint64(offset uint64) (uint64, bool) {
	b, ok := c.slice(offset, 8)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint64(b), true
}

// readInto decodes the little-endian structure layout at the given offset.
func (c *cursor) readInto(offset uint64, v interface{}) bool {
	n := binary.Size(v)
	if n < 0 {
		return false
	}
	b, ok := c.slice(offset, uint64(n))
	if !ok {
		return false
	}
	return binary.Read(bytes.NewReader(b), binary.LittleEndian, v) == nil
}

// cstring reads an ASCII NUL-terminated string at the given offset.
// Strings running past the buffer end or exceeding the maximum allowed
// length yield the portion read so far.
func (c *cursor) cstring(offset uint64) (string, bool) {
	if offset >= c.size() {
		return "", false
	}
	end := offset + maxString
	if end > c.size() {
		end = c.size()
	}
	b := c.data[offset:end]
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b), true
}
