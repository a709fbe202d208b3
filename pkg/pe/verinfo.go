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
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// maxVersionStrings caps the number of key/value entries harvested from
// the version resource.
const maxVersionStrings = 256

var utf16Decoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// verBlock is the common header shape shared by every node of the
// VS_VERSIONINFO structure: a length-prefixed block with an UTF-16 key
// followed by a DWORD-aligned value and/or child blocks.
type verBlock struct {
	length      uint16
	valueLength uint16
	typ         uint16
	key         string
	valueOffset uint64 // absolute offset of the aligned value/children area
	end         uint64 // absolute offset one past the block
}

func dwordAlign(offset uint64) uint64 { return (offset + 3) &^ 3 }

// readVerBlock decodes the block header and key string at the given offset.
func readVerBlock(c *cursor, offset uint64) (verBlock, bool) {
	length, ok := c.uint16(offset)
	if !ok || length < 6 {
		return verBlock{}, false
	}
	valueLength, ok := c.uint16(offset + 2)
	if !ok {
		return verBlock{}, false
	}
	typ, ok := c.uint16(offset + 4)
	if !ok {
		return verBlock{}, false
	}
	key, n, ok := readUTF16String(c, offset+6)
	if !ok {
		return verBlock{}, false
	}
	return verBlock{
		length:      length,
		valueLength: valueLength,
		typ:         typ,
		key:         key,
		valueOffset: dwordAlign(offset + 6 + n),
		end:         offset + uint64(length),
	}, true
}

// parseVersionResources decodes the VS_VERSIONINFO block located at the
// given file offset into a flat key/value mapping. The structure is a
// recursive length-prefixed tree: the root carries the fixed file info
// value, its StringFileInfo children carry language-keyed string tables,
// and the table entries carry the actual key/value pairs. VarFileInfo
// subtrees hold translation ids only and are skipped. Returns nil when
// the root block is unreadable or misnamed.
func parseVersionResources(c *cursor, offset uint64) map[string]string {
	root, ok := readVerBlock(c, offset)
	if !ok || root.key != "VS_VERSION_INFO" {
		return nil
	}
	vers := make(map[string]string)

	// children follow the fixed file info value
	childOffset := dwordAlign(root.valueOffset + uint64(root.valueLength))
	harvested := 0
	for childOffset+6 <= root.end {
		fileInfo, ok := readVerBlock(c, childOffset)
		if !ok || fileInfo.length == 0 {
			break
		}
		if strings.HasPrefix(fileInfo.key, "StringFileInfo") {
			parseStringTables(c, fileInfo, vers, &harvested)
		}
		next := dwordAlign(childOffset + uint64(fileInfo.length))
		if next <= childOffset {
			break
		}
		childOffset = next
	}
	return vers
}

// parseStringTables walks the string tables of a StringFileInfo block.
// Each table is keyed by the 8-digit hex language/codepage id and holds
// the String entries with the version keys and values.
func parseStringTables(c *cursor, fileInfo verBlock, vers map[string]string, harvested *int) {
	tableOffset := fileInfo.valueOffset
	for tableOffset+6 <= fileInfo.end {
		table, ok := readVerBlock(c, tableOffset)
		if !ok || table.length == 0 {
			return
		}
		entryOffset := table.valueOffset
		for entryOffset+6 <= table.end {
			entry, ok := readVerBlock(c, entryOffset)
			if !ok || entry.length == 0 {
				break
			}
			if *harvested >= maxVersionStrings {
				return
			}
			// a text value follows the key; a value that cannot be read
			// still indexes the key with an empty string
			value := ""
			if entry.typ == 1 && entry.valueLength > 0 {
				if v, _, ok := readUTF16String(c, entry.valueOffset); ok {
					value = v
				}
			}
			vers[entry.key] = value
			*harvested++

			next := dwordAlign(entryOffset + uint64(entry.length))
			if next <= entryOffset {
				break
			}
			entryOffset = next
		}
		next := dwordAlign(tableOffset + uint64(table.length))
		if next <= tableOffset {
			return
		}
		tableOffset = next
	}
}

// readUTF16String reads a NUL-terminated UTF-16LE string at the given
// offset, returning the decoded string and the number of bytes consumed
// including the terminator.
func readUTF16String(c *cursor, offset uint64) (string, uint64, bool) {
	var n uint64
	for {
		if n >= maxString*2 {
			break
		}
		ch, ok := c.uint16(offset + n)
		if !ok {
			if n == 0 {
				return "", 0, false
			}
			break
		}
		if ch == 0 {
			break
		}
		n += 2
	}
	raw, ok := c.slice(offset, n)
	if !ok {
		return "", 0, false
	}
	utf8, err := utf16Decoder.NewDecoder().Bytes(raw)
	if err != nil {
		return "", 0, false
	}
	return string(utf8), n + 2, true
}
