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
	"encoding/binary"
)

// dosHeader is the IMAGE_DOS_HEADER layout at the very beginning of the file.
type dosHeader struct {
	Magic    uint16
	Cblp     uint16
	Cp       uint16
	Crlc     uint16
	Cparhdr  uint16
	MinAlloc uint16
	MaxAlloc uint16
	SS       uint16
	SP       uint16
	Csum     uint16
	IP       uint16
	CS       uint16
	Lfarlc   uint16
	Ovno     uint16
	Res      [4]uint16
	OEMID    uint16
	OEMInfo  uint16
	Res2     [10]uint16
	Lfanew   uint32
}

// fileHeader is the IMAGE_FILE_HEADER following the PE signature.
type fileHeader struct {
	Machine              uint16
	NumberOfSections     uint16
	TimeDateStamp        uint32
	PointerToSymbolTable uint32
	NumberOfSymbols      uint32
	SizeOfOptionalHeader uint16
	Characteristics      uint16
}

// optionalHeader32 is the fixed portion of the PE32 optional header,
// up to and including NumberOfRvaAndSizes. The data directory table
// that follows is decoded separately since its declared entry count
// is attacker-controlled.
type optionalHeader32 struct {
	Magic                       uint16
	MajorLinkerVersion          uint8
	MinorLinkerVersion          uint8
	SizeOfCode                  uint32
	SizeOfInitializedData       uint32
	SizeOfUninitializedData     uint32
	AddressOfEntryPoint         uint32
	BaseOfCode                  uint32
	BaseOfData                  uint32
	ImageBase                   uint32
	SectionAlignment            uint32
	FileAlignment               uint32
	MajorOperatingSystemVersion uint16
	MinorOperatingSystemVersion uint16
	MajorImageVersion           uint16
	MinorImageVersion           uint16
	MajorSubsystemVersion       uint16
	MinorSubsystemVersion       uint16
	Win32VersionValue           uint32
	SizeOfImage                 uint32
	SizeOfHeaders               uint32
	CheckSum                    uint32
	Subsystem                   uint16
	DllCharacteristics          uint16
	SizeOfStackReserve          uint32
	SizeOfStackCommit           uint32
	SizeOfHeapReserve           uint32
	SizeOfHeapCommit            uint32
	LoaderFlags                 uint32
	NumberOfRvaAndSizes         uint32
}

// optionalHeader64 is the fixed portion of the PE32+ optional header.
type optionalHeader64 struct {
	Magic                       uint16
	MajorLinkerVersion          uint8
	MinorLinkerVersion          uint8
	SizeOfCode                  uint32
	SizeOfInitializedData       uint32
	SizeOfUninitializedData     uint32
	AddressOfEntryPoint         uint32
	BaseOfCode                  uint32
	ImageBase                   uint64
	SectionAlignment            uint32
	FileAlignment               uint32
	MajorOperatingSystemVersion uint16
	MinorOperatingSystemVersion uint16
	MajorImageVersion           uint16
	MinorImageVersion           uint16
	MajorSubsystemVersion       uint16
	MinorSubsystemVersion       uint16
	Win32VersionValue           uint32
	SizeOfImage                 uint32
	SizeOfHeaders               uint32
	CheckSum                    uint32
	Subsystem                   uint16
	DllCharacteristics          uint16
	SizeOfStackReserve          uint64
	SizeOfStackCommit           uint64
	SizeOfHeapReserve           uint64
	SizeOfHeapCommit            uint64
	LoaderFlags                 uint32
	NumberOfRvaAndSizes         uint32
}

// dataDirectory locates a structural region such as the import or
// resource directory. The security directory is special in that its
// VirtualAddress member holds a raw file offset instead of an RVA.
type dataDirectory struct {
	VirtualAddress uint32
	Size           uint32
}

// header aggregates the parsed DOS/NT/optional header state consumed
// by the section table and the directory parsers. The 32/64-bit layout
// is resolved exactly once from the optional header magic. Downstream
// readers consume this resolved form and never re-inspect the magic.
type header struct {
	is64               bool
	machine            Machine
	subsystem          Subsystem
	characteristics    Characteristics
	timestamp          uint32
	entryRVA           uint32
	imageBase          uint64
	linkerVersion      VersionPair
	osVersion          VersionPair
	imageVersion       VersionPair
	subsystemVersion   VersionPair
	numberOfSections   uint16
	sectionAlignment   uint32
	fileAlignment      uint32
	dataDirs           [16]dataDirectory
	ntOffset           uint64
	sectionTableOffset uint64
}

// directory returns the data directory at the given table index.
// Absent or zero directories report ok=false.
func (h *header) directory(idx int) (dataDirectory, bool) {
	if idx < 0 || idx >= len(h.dataDirs) {
		return dataDirectory{}, false
	}
	dir := h.dataDirs[idx]
	if dir.VirtualAddress == 0 || dir.Size == 0 {
		return dataDirectory{}, false
	}
	return dir, true
}

// parseHeader validates the DOS and NT signatures and decodes the file
// and optional headers. A failed signature check renders the whole input
// not-PE, in which case every derived fact is absent.
func parseHeader(c *cursor) (*header, error) {
	var dos dosHeader
	if !c.readInto(0, &dos) || dos.Magic != dosMagic {
		return nil, ErrNotPE
	}
	ntOffset := uint64(dos.Lfanew)
	sig, ok := c.uint32(ntOffset)
	if !ok || sig != ntMagic {
		return nil, ErrNotPE
	}
	var file fileHeader
	if !c.readInto(ntOffset+4, &file) {
		return nil, ErrNotPE
	}

	hdr := &header{
		ntOffset:         ntOffset,
		machine:          Machine(file.Machine),
		characteristics:  Characteristics(file.Characteristics),
		timestamp:        file.TimeDateStamp,
		numberOfSections: file.NumberOfSections,
	}

	optOffset := ntOffset + 4 + uint64(binary.Size(file))
	magic, ok := c.uint16(optOffset)
	if !ok {
		return nil, ErrNotPE
	}

	// the optional header magic is the single source of truth for the
	// 32/64-bit layout. Conflicting indicators elsewhere in the file,
	// e.g. the machine type, never influence field width resolution.
	var ndirs uint32
	var dirOffset uint64
	switch magic {
	case pe32Magic:
		var opt optionalHeader32
		if !c.readInto(optOffset, &opt) {
			return nil, ErrNotPE
		}
		hdr.is64 = false
		hdr.entryRVA = opt.AddressOfEntryPoint
		hdr.imageBase = uint64(opt.ImageBase)
		hdr.subsystem = Subsystem(opt.Subsystem)
		hdr.sectionAlignment = opt.SectionAlignment
		hdr.fileAlignment = opt.FileAlignment
		hdr.linkerVersion = VersionPair{uint16(opt.MajorLinkerVersion), uint16(opt.MinorLinkerVersion)}
		hdr.osVersion = VersionPair{opt.MajorOperatingSystemVersion, opt.MinorOperatingSystemVersion}
		hdr.imageVersion = VersionPair{opt.MajorImageVersion, opt.MinorImageVersion}
		hdr.subsystemVersion = VersionPair{opt.MajorSubsystemVersion, opt.MinorSubsystemVersion}
		ndirs = opt.NumberOfRvaAndSizes
		dirOffset = optOffset + uint64(binary.Size(opt))
	case pe64Magic:
		var opt optionalHeader64
		if !c.readInto(optOffset, &opt) {
			return nil, ErrNotPE
		}
		hdr.is64 = true
		hdr.entryRVA = opt.AddressOfEntryPoint
		hdr.imageBase = opt.ImageBase
		hdr.subsystem = Subsystem(opt.Subsystem)
		hdr.sectionAlignment = opt.SectionAlignment
		hdr.fileAlignment = opt.FileAlignment
		hdr.linkerVersion = VersionPair{uint16(opt.MajorLinkerVersion), uint16(opt.MinorLinkerVersion)}
		hdr.osVersion = VersionPair{opt.MajorOperatingSystemVersion, opt.MinorOperatingSystemVersion}
		hdr.imageVersion = VersionPair{opt.MajorImageVersion, opt.MinorImageVersion}
		hdr.subsystemVersion = VersionPair{opt.MajorSubsystemVersion, opt.MinorSubsystemVersion}
		ndirs = opt.NumberOfRvaAndSizes
		dirOffset = optOffset + uint64(binary.Size(opt))
	default:
		return nil, ErrNotPE
	}

	if ndirs > uint32(len(hdr.dataDirs)) {
		ndirs = uint32(len(hdr.dataDirs))
	}
	for i := uint32(0); i < ndirs; i++ {
		var dir dataDirectory
		if !c.readInto(dirOffset+uint64(i)*8, &dir) {
			break
		}
		hdr.dataDirs[i] = dir
	}

	// the section table starts right after the declared optional header
	// size, which may include header extensions beyond the directories
	hdr.sectionTableOffset = optOffset + uint64(file.SizeOfOptionalHeader)

	return hdr, nil
}
