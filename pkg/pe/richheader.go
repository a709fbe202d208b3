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

const (
	// richMarker is the trailing "Rich" tag following the encrypted stamp.
	richMarker = 0x68636952
	// dansMarker is the decrypted "DanS" sentinel that opens the stamp.
	dansMarker = 0x536e6144

	// dosHeaderSize is where the DOS stub, and thus the earliest possible
	// stamp location, begins
	dosHeaderSize = 0x40
)

// RichHeader is the decoded compiler/toolchain stamp some Microsoft
// linkers embed between the DOS stub and the NT header. The stamp is
// stored XOR-encrypted with a per-file key derived from a checksum of
// the preceding bytes.
type RichHeader struct {
	// Offset is the file offset where the encrypted stamp begins.
	Offset uint32 `json:"offset"`
	// Length is the stamp length in bytes, excluding the trailing
	// marker and key.
	Length uint32 `json:"length"`
	// Key is the 32-bit XOR key stored right after the marker.
	Key uint32 `json:"key"`
	// Raw holds the stamp bytes as stored in the file.
	Raw []byte `json:"-"`
	// Clear holds the stamp bytes XORed with the key. Always the same
	// length as Raw, and re-applying the key reproduces Raw exactly.
	Clear []byte `json:"-"`
}

// parseRichHeader scans the region between the DOS header and the NT
// header for the trailing marker, then decrypts backwards until the
// opening sentinel surfaces. A missing marker or sentinel is not an
// error since plenty of legitimate toolchains emit no stamp at all.
func parseRichHeader(c *cursor, ntOffset uint32) *RichHeader {
	end := uint64(ntOffset)
	if end > c.size() {
		end = c.size()
	}
	if end <= dosHeaderSize {
		return nil
	}
	region, ok := c.slice(0, end)
	if !ok {
		return nil
	}
	markerOffset := bytes.Index(region[dosHeaderSize:], []byte("Rich"))
	if markerOffset < 0 {
		return nil
	}
	markerOffset += dosHeaderSize

	key, ok := c.uint32(uint64(markerOffset) + 4)
	if !ok {
		return nil
	}

	// walk backwards one dword at a time XORing with the key until the
	// decrypted sentinel marks the start of the stamp
	dansOffset := -1
	for off := markerOffset - 4; off >= dosHeaderSize; off -= 4 {
		word, ok := c.uint32(uint64(off))
		if !ok {
			return nil
		}
		if word^key == dansMarker {
			dansOffset = off
			break
		}
	}
	if dansOffset < 0 {
		return nil
	}

	raw, ok := c.slice(uint64(dansOffset), uint64(markerOffset-dansOffset))
	if !ok {
		return nil
	}

	rh := &RichHeader{
		Offset: uint32(dansOffset),
		Length: uint32(markerOffset - dansOffset),
		Key:    key,
		Raw:    append([]byte(nil), raw...),
	}
	rh.Clear = xorWithKey(rh.Raw, key)
	return rh
}

// xorWithKey XORs the data with the repeating little-endian key bytes.
// The stamp is dword-aligned so this is equivalent to the dword-wise
// decryption the linker applies.
func xorWithKey(data []byte, key uint32) []byte {
	kb := make([]byte, 4)
	binary.LittleEndian.PutUint32(kb, key)
	clear := make([]byte, len(data))
	for i, b := range data {
		clear[i] = b ^ kb[i%4]
	}
	return clear
}
