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

// maxExportNames caps the number of export name table entries walked
// before the directory is declared malformed.
const maxExportNames = 8192

// exportDirectory is the IMAGE_EXPORT_DIRECTORY layout. The name pointer
// and ordinal arrays run in parallel, while functions exported by ordinal
// only have no name table entry at all.
type exportDirectory struct {
	Characteristics       uint32
	TimeDateStamp         uint32
	MajorVersion          uint16
	MinorVersion          uint16
	Name                  uint32
	Base                  uint32
	NumberOfFunctions     uint32
	NumberOfNames         uint32
	AddressOfFunctions    uint32
	AddressOfNames        uint32
	AddressOfNameOrdinals uint32
}

// parseExports reads the export directory name table. Ordinal-only exports
// carry no name and are deliberately excluded from name lookup. Individual
// name RVAs that fail to resolve are skipped, retaining the entries parsed
// so far.
func parseExports(c *cursor, hdr *header, secs *sectionTable, p *PE) {
	dir, ok := hdr.directory(dirExport)
	if !ok {
		return
	}
	offset, ok := secs.rvaToOffset(dir.VirtualAddress)
	if !ok {
		directoryParseErrors.Add(1)
		return
	}
	var exp exportDirectory
	if !c.readInto(offset, &exp) {
		directoryParseErrors.Add(1)
		return
	}
	namesOffset, ok := secs.rvaToOffset(exp.AddressOfNames)
	if !ok {
		return
	}
	n := uint64(exp.NumberOfNames)
	if n > maxExportNames {
		directoryParseErrors.Add(1)
		n = maxExportNames
	}
	for i := uint64(0); i < n; i++ {
		nameRVA, ok := c.uint32(namesOffset + i*4)
		if !ok {
			break
		}
		nameOffset, ok := secs.rvaToOffset(nameRVA)
		if !ok {
			continue
		}
		name, ok := c.cstring(nameOffset)
		if !ok || name == "" {
			continue
		}
		p.addExport(name)
	}
}
