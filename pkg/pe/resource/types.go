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

package resource

import (
	"encoding/binary"
)

// ID is the type for identifying resource types.
type ID uint32

// Well-known resource type identifiers.
const (
	Cursor       ID = 1
	Bitmap       ID = 2
	Icon         ID = 3
	Menu         ID = 4
	Dialog       ID = 5
	StringTableR ID = 6
	Accelerator  ID = 9
	RCData       ID = 10
	MessageTable ID = 11
	GroupIcon    ID = 14
	Version      ID = 16 // Version defines version resources
	Manifest     ID = 24
)

// String yields a human-readable resource type name.
func (id ID) String() string {
	switch id {
	case Cursor:
		return "RT_CURSOR"
	case Bitmap:
		return "RT_BITMAP"
	case Icon:
		return "RT_ICON"
	case Menu:
		return "RT_MENU"
	case Dialog:
		return "RT_DIALOG"
	case StringTableR:
		return "RT_STRING"
	case Accelerator:
		return "RT_ACCELERATOR"
	case RCData:
		return "RT_RCDATA"
	case MessageTable:
		return "RT_MESSAGETABLE"
	case GroupIcon:
		return "RT_GROUP_ICON"
	case Version:
		return "RT_VERSION"
	case Manifest:
		return "RT_MANIFEST"
	default:
		return ""
	}
}

// Directory represents the layout of the resource directory node. The
// resource tree has a fixed shape of type, name/id, and language levels,
// each level being one of these nodes followed by its entry table.
type Directory struct {
	Characteristics    uint32
	Timestamp          uint32
	Major              uint16
	Minor              uint16
	NumberNamedEntries uint16
	NumberIDEntries    uint16
}

// Size returns the size in bytes of the resource directory.
func (d Directory) Size() int { return binary.Size(d) }

// Entries returns the total declared entry count across named and
// id-keyed entries.
func (d Directory) Entries() int { return int(d.NumberNamedEntries) + int(d.NumberIDEntries) }

// DirectoryEntry defines the entry in the directory table.
type DirectoryEntry struct {
	Name         uint32
	OffsetToData uint32
}

// Size returns the size in bytes of the resource entry.
func (e DirectoryEntry) Size() int { return binary.Size(e) }

// ID returns the identifier of the entry. At the type level this is the
// resource type, at the language level the 16-bit LANGID.
func (e DirectoryEntry) ID() ID {
	if e.IsString() {
		return ID(e.Name & 0x7fffffff)
	}
	return ID(e.Name)
}

// IsString determines if the entry is keyed by name string rather than id.
func (e DirectoryEntry) IsString() bool { return e.Name&0x80000000 != 0 }

// IsDir indicates if this resource entry points to a subdirectory node
// instead of resource final data.
func (e DirectoryEntry) IsDir() bool { return e.OffsetToData&0x80000000 != 0 }

// DirOffset returns the offset of the target node or data entry, relative
// to the beginning of the resource directory.
func (e DirectoryEntry) DirOffset() uint32 { return e.OffsetToData & 0x7fffffff }

// DataEntry stores the location of the resource payload. OffsetToData
// is an RVA, unlike the tree-internal offsets which are relative to the
// directory start.
type DataEntry struct {
	OffsetToData uint32
	DataSize     uint32
	CodePage     uint32
	Reserved     uint32
}

// Size returns the size in bytes of the resource data entry.
func (e DataEntry) Size() int { return binary.Size(e) }
