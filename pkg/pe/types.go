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
	"errors"
	"fmt"
	"strings"
)

// ErrNotPE is returned when the DOS or NT signature checks fail. The input
// is not a Portable Executable and every derived fact is absent.
var ErrNotPE = errors.New("not a PE file")

const (
	// Company represents the company name string file info entry in the resources table
	Company = "CompanyName"
	// FileDescription represents the file description entry in the resources table
	FileDescription = "FileDescription"
	// FileVersion represents the file version entry in the resources table
	FileVersion = "FileVersion"
	// OriginalFilename the name of the original executable in the resources table
	OriginalFilename = "OriginalFilename"
	// LegalCopyright represents the copyright notice in the resources directory table
	LegalCopyright = "LegalCopyright"
	// ProductName is the product name entry in the resources table
	ProductName = "ProductName"
	// ProductVersion is the product version entry in the resources table
	ProductVersion = "ProductVersion"
)

// Mode designates the provenance of the scanned buffer. The mode is fixed
// at parse time and determines the interpretation of the entry point, i.e.
// file-relative offset for file scans and absolute virtual address for
// process memory scans.
type Mode uint8

const (
	// ModeFile indicates the buffer holds the on-disk PE layout.
	ModeFile Mode = iota
	// ModeMem indicates the buffer was acquired from process memory.
	ModeMem
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeMem {
		return "mem"
	}
	return "file"
}

// VersionPair is a major:minor version tuple from the optional header.
type VersionPair struct {
	Major uint16 `json:"major"`
	Minor uint16 `json:"minor"`
}

// String returns the major.minor form.
func (v VersionPair) String() string { return fmt.Sprintf("%d.%d", v.Major, v.Minor) }

// ImportedFunction designates a single function imported from a library.
// Functions imported by ordinal carry no name and are excluded from
// name-based lookups.
type ImportedFunction struct {
	Name      string `json:"name,omitempty"`
	Ordinal   uint16 `json:"ordinal,omitempty"`
	ByOrdinal bool   `json:"by_ordinal,omitempty"`
}

// Import holds the imported library along with its function thunks in
// declaration order.
type Import struct {
	Library   string             `json:"library"`
	Functions []ImportedFunction `json:"functions"`
}

// PE contains the parsed headers and directory facts of the executable
// image. A PE is constructed once per scanned buffer and is strictly
// read-only afterwards, so concurrent readers need no locking as long
// as each instance is owned by the worker that produced it.
type PE struct {
	// Is64 designates the PE32+ optional header layout.
	Is64 bool `json:"is_64"`
	// Mode is the scan mode the image was parsed with.
	Mode Mode `json:"-"`
	// Machine is the target architecture.
	Machine Machine `json:"machine"`
	// Subsystem is the Windows subsystem required to run the image.
	Subsystem Subsystem `json:"subsystem"`
	// Characteristics is the image attribute bitmask.
	Characteristics Characteristics `json:"characteristics"`
	// Timestamp is the raw link timestamp. The value is author-controlled
	// and must be treated as untrusted.
	Timestamp uint32 `json:"timestamp"`
	// EntryPoint locates the entry point function. In file mode this is the
	// file offset resulting from section translation, while in memory mode
	// it is the absolute virtual address.
	EntryPoint uint64 `json:"entry_point"`
	// HasEntryPoint is false when the entry point RVA translates to no section.
	HasEntryPoint bool `json:"-"`
	// ImageBase is the preferred base address of the mapped image.
	ImageBase uint64 `json:"image_base"`

	LinkerVersion    VersionPair `json:"linker_version"`
	OSVersion        VersionPair `json:"os_version"`
	ImageVersion     VersionPair `json:"image_version"`
	SubsystemVersion VersionPair `json:"subsystem_version"`

	// NumberOfSections designates the total number of sections found within the binary.
	NumberOfSections uint16 `json:"nsections"`
	// Sections contains the section records in declaration order.
	Sections []Sec `json:"sections"`
	// Imports contains the imported libraries with their function thunks.
	Imports []Import `json:"imports,omitempty"`
	// Exports contains the exported function names in name table order.
	Exports []string `json:"exports,omitempty"`
	// VersionResources holds the version resources.
	VersionResources map[string]string `json:"resources,omitempty"`
	// Signatures holds the authenticode signature records in certificate
	// table declaration order.
	Signatures []Signature `json:"signatures,omitempty"`
	// RichHeader holds the decoded compiler stamp header, or nil when the
	// image carries none. Absence is common and legal.
	RichHeader *RichHeader `json:"rich_header,omitempty"`
	// Imphash is the normalized MD5 digest of the import table.
	Imphash string `json:"imphash,omitempty"`

	// IsDLL designates the dynamic link library image.
	IsDLL bool `json:"is_dll"`
	// IsExecutable designates a regular executable image.
	IsExecutable bool `json:"is_exec"`
	// IsDriver indicates the image is likely a kernel driver.
	IsDriver bool `json:"is_driver"`

	locales   map[uint16]struct{}
	languages map[uint8]struct{}
	exports   map[string]struct{}
}

// String returns the string representation of the PE metadata.
func (pe *PE) String() string {
	return fmt.Sprintf(`
		 Machine: %s
		 Subsystem: %s
		 Number of sections: %d
		 Image base: %x
		 Entrypoint: %x
		 Timestamp: %d
		 Sections: %v
		 Imports: %v
		 Version resources: %v
		`,
		pe.Machine,
		pe.Subsystem,
		pe.NumberOfSections,
		pe.ImageBase,
		pe.EntryPoint,
		pe.Timestamp,
		pe.Sections,
		pe.Imports,
		pe.VersionResources,
	)
}

// Section returns the section with the specified name. If multiple
// sections share the name, the first one in declaration order wins.
func (pe *PE) Section(s string) *Sec {
	for i, sec := range pe.Sections {
		if sec.Name == s {
			return &pe.Sections[i]
		}
	}
	return nil
}

// HasExport determines if the function with the given name appears in
// the export name table. Ordinal-only exports never match.
func (pe *PE) HasExport(name string) bool {
	if pe.exports != nil {
		_, ok := pe.exports[name]
		return ok
	}
	// instances restored from their serialized form carry the slice only
	for _, exp := range pe.Exports {
		if exp == name {
			return true
		}
	}
	return false
}

// HasImport determines if the function is imported from the given library.
// The library name comparison is case-insensitive. Ordinal-only imports
// never match by name.
func (pe *PE) HasImport(lib, name string) bool {
	for _, imp := range pe.Imports {
		if !strings.EqualFold(imp.Library, lib) {
			continue
		}
		for _, fn := range imp.Functions {
			if !fn.ByOrdinal && fn.Name == name {
				return true
			}
		}
	}
	return false
}

// HasLocale determines if any resource leaf is tagged with the given
// 16-bit locale identifier.
func (pe *PE) HasLocale(id uint16) bool {
	_, ok := pe.locales[id]
	return ok
}

// HasLanguage determines if any resource leaf locale has the given
// 8-bit primary language identifier in its low byte.
func (pe *PE) HasLanguage(id uint8) bool {
	_, ok := pe.languages[id]
	return ok
}

// NumberOfSignatures returns the count of extracted signature records.
func (pe *PE) NumberOfSignatures() int { return len(pe.Signatures) }

func (pe *PE) addExport(name string) {
	if pe.exports == nil {
		pe.exports = make(map[string]struct{})
	}
	pe.Exports = append(pe.Exports, name)
	pe.exports[name] = struct{}{}
}

func (pe *PE) addLocale(id uint16) {
	if pe.locales == nil {
		pe.locales = make(map[uint16]struct{})
		pe.languages = make(map[uint8]struct{})
	}
	pe.locales[id] = struct{}{}
	pe.languages[uint8(id&0xff)] = struct{}{}
}
