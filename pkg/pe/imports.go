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

const (
	// maxImportDescriptors caps the number of import descriptors walked
	// before the directory is declared malformed
	maxImportDescriptors = 256
	// maxThunks caps the number of thunks walked per library
	maxThunks = 4096

	ordinalMask32 = uint64(1) << 31
	ordinalMask64 = uint64(1) << 63
)

// importDescriptor is the IMAGE_IMPORT_DESCRIPTOR layout. The descriptor
// array is terminated by an all-zero entry.
type importDescriptor struct {
	OriginalFirstThunk uint32
	TimeDateStamp      uint32
	ForwarderChain     uint32
	Name               uint32
	FirstThunk         uint32
}

func (d importDescriptor) isTerminal() bool {
	return d.OriginalFirstThunk == 0 && d.Name == 0 && d.FirstThunk == 0
}

// parseImports walks the import directory table. Each descriptor points,
// via RVA, to the library name and its import lookup table. A malformed
// thunk array truncates that library's import list but never aborts the
// remaining descriptors, and a descriptor with an unresolvable name is
// skipped altogether.
func parseImports(c *cursor, hdr *header, secs *sectionTable) []Import {
	dir, ok := hdr.directory(dirImport)
	if !ok {
		return nil
	}
	offset, ok := secs.rvaToOffset(dir.VirtualAddress)
	if !ok {
		directoryParseErrors.Add(1)
		return nil
	}

	imports := make([]Import, 0)
	for i := 0; i < maxImportDescriptors; i++ {
		var desc importDescriptor
		if !c.readInto(offset+uint64(i)*20, &desc) || desc.isTerminal() {
			break
		}
		nameOffset, ok := secs.rvaToOffset(desc.Name)
		if !ok {
			continue
		}
		lib, ok := c.cstring(nameOffset)
		if !ok || lib == "" {
			continue
		}
		// prefer the import lookup table. Some linkers leave it zeroed,
		// in which case the import address table carries the thunks
		thunks := desc.OriginalFirstThunk
		if thunks == 0 {
			thunks = desc.FirstThunk
		}
		imports = append(imports, Import{
			Library:   lib,
			Functions: parseThunks(c, hdr, secs, thunks),
		})
	}
	return imports
}

// parseThunks walks the thunk array until a zero thunk or until the array
// points outside the buffer. The high bit flags an ordinal import, which
// carries no name. Otherwise the thunk holds the RVA of the hint/name
// entry whose name begins two bytes in.
func parseThunks(c *cursor, hdr *header, secs *sectionTable, rva uint32) []ImportedFunction {
	offset, ok := secs.rvaToOffset(rva)
	if !ok {
		return nil
	}
	thunkSize := uint64(4)
	ordinalMask := ordinalMask32
	if hdr.is64 {
		thunkSize = 8
		ordinalMask = ordinalMask64
	}

	functions := make([]ImportedFunction, 0)
	for i := uint64(0); i < maxThunks; i++ {
		var thunk uint64
		if hdr.is64 {
			t, ok := c.uint64(offset + i*thunkSize)
			if !ok {
				break
			}
			thunk = t
		} else {
			t, ok := c.uint32(offset + i*thunkSize)
			if !ok {
				break
			}
			thunk = uint64(t)
		}
		if thunk == 0 {
			break
		}
		if thunk&ordinalMask != 0 {
			functions = append(functions, ImportedFunction{
				Ordinal:   uint16(thunk & 0xffff),
				ByOrdinal: true,
			})
			continue
		}
		hintOffset, ok := secs.rvaToOffset(uint32(thunk))
		if !ok {
			// malformed hint/name RVA truncates this library's imports
			break
		}
		name, ok := c.cstring(hintOffset + 2)
		if !ok {
			break
		}
		functions = append(functions, ImportedFunction{Name: name})
	}
	return functions
}
