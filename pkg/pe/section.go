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
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// maxSections caps the number of parsed section headers. The Windows
// loader refuses images with more than 96 sections, so anything beyond
// that is hostile or corrupted input.
const maxSections = 96

// sectionHeader is the raw IMAGE_SECTION_HEADER layout.
type sectionHeader struct {
	Name                 [8]byte
	VirtualSize          uint32
	VirtualAddress       uint32
	SizeOfRawData        uint32
	PointerToRawData     uint32
	PointerToRelocations uint32
	PointerToLinenumbers uint32
	NumberOfRelocations  uint16
	NumberOfLinenumbers  uint16
	Characteristics      uint32
}

// Sec describes a single section. Sections keep their declaration order
// from the section table, with the raw members describing the file-backed
// view and the virtual members the mapped view. The two may legally
// diverge, e.g. a zero-filled tail makes VirtualSize exceed RawDataSize.
type Sec struct {
	Name            string  `json:"name"`
	VirtualAddress  uint32  `json:"virtual_address"`
	VirtualSize     uint32  `json:"virtual_size"`
	RawDataOffset   uint32  `json:"raw_data_offset"`
	RawDataSize     uint32  `json:"raw_data_size"`
	Characteristics uint32  `json:"characteristics"`
	Entropy         float64 `json:"entropy,omitempty"`
	Md5             string  `json:"md5,omitempty"`
}

// String returns the string representation of the section.
func (s Sec) String() string {
	return fmt.Sprintf("Name: %s, VirtualSize: %d, RawSize: %d, Entropy: %f, Md5: %s",
		s.Name, s.VirtualSize, s.RawDataSize, s.Entropy, s.Md5)
}

// sectionTable holds the ordered section records and underpins the
// RVA to file offset translation used by every directory parser.
type sectionTable struct {
	secs []Sec
	// offsets memoizes translation results so that repeated lookups of
	// the same address yield the same answer within one scan
	offsets map[uint32]int64
}

// parseSections decodes the section header array that immediately follows
// the optional header. The count comes from the file header, clamped to
// the loader limit; headers running past the buffer end truncate the table.
func parseSections(c *cursor, hdr *header, opts opts) *sectionTable {
	n := uint64(hdr.numberOfSections)
	if n > maxSections {
		n = maxSections
	}
	t := &sectionTable{secs: make([]Sec, 0, n), offsets: make(map[uint32]int64)}
	for i := uint64(0); i < n; i++ {
		var raw sectionHeader
		if !c.readInto(hdr.sectionTableOffset+i*40, &raw) {
			break
		}
		sec := Sec{
			Name:            string(bytes.TrimRight(raw.Name[:], "\x00")),
			VirtualAddress:  raw.VirtualAddress,
			VirtualSize:     raw.VirtualSize,
			RawDataOffset:   raw.PointerToRawData,
			RawDataSize:     raw.SizeOfRawData,
			Characteristics: raw.Characteristics,
		}
		if opts.sectionEntropy || opts.sectionMD5 {
			if data, ok := c.slice(uint64(sec.RawDataOffset), uint64(sec.RawDataSize)); ok {
				if opts.sectionEntropy {
					sec.Entropy = entropy(data)
				}
				if opts.sectionMD5 {
					sum := md5.Sum(data)
					sec.Md5 = hex.EncodeToString(sum[:])
				}
			}
		}
		t.secs = append(t.secs, sec)
	}
	return t
}

// rvaToOffset translates the relative virtual address to the file offset
// backed by the section containing the address. Addresses below the first
// section map onto themselves since the PE header region is mapped
// verbatim. Addresses contained in no section, or whose computed offset
// falls outside the section's raw data, translate to undefined.
func (t *sectionTable) rvaToOffset(rva uint32) (uint64, bool) {
	if off, ok := t.offsets[rva]; ok {
		return uint64(off), off >= 0
	}
	off, ok := t.translate(rva)
	if ok {
		t.offsets[rva] = int64(off)
	} else {
		t.offsets[rva] = -1
	}
	return off, ok
}

func (t *sectionTable) translate(rva uint32) (uint64, bool) {
	var lowest uint32 = ^uint32(0)
	for _, sec := range t.secs {
		if sec.VirtualAddress < lowest {
			lowest = sec.VirtualAddress
		}
		if rva < sec.VirtualAddress {
			continue
		}
		size := sec.VirtualSize
		if size == 0 {
			size = sec.RawDataSize
		}
		if uint64(rva) >= uint64(sec.VirtualAddress)+uint64(size) {
			continue
		}
		off := uint64(sec.RawDataOffset) + uint64(rva-sec.VirtualAddress)
		if off > uint64(sec.RawDataOffset)+uint64(sec.RawDataSize) {
			return 0, false
		}
		return off, true
	}
	// addresses preceding the first section live in the header region
	// which is mapped at identical offsets
	if len(t.secs) == 0 || rva < lowest {
		return uint64(rva), true
	}
	return 0, false
}
