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
	"github.com/peview/peview/pkg/pe/resource"
)

const (
	// maxResourceEntries determines the maximum number of directory entries we are allowed to process
	maxResourceEntries = 4096
	// maxResourceDepth caps the tree depth. Well-formed trees have the fixed
	// type/name/language shape of three levels, anything deeper is hostile.
	maxResourceDepth = 16
)

// resourceNode is a pending directory node in the iterative traversal.
type resourceNode struct {
	rel   uint32 // offset relative to the resource directory start
	depth uint16
	typ   resource.ID // resource type inherited from the level-0 entry
	lang  uint16      // LANGID inherited from the level-2 entry
}

// parseResources walks the resource directory tree to collect the locale
// identifiers present among the data leaves and to locate the version
// resource payload. The traversal is deliberately iterative with a
// visited-offset set and hard entry/depth caps: the tree offsets are
// attacker-controlled and may be cyclic or self-referential, in which
// case the offending branch is abandoned while siblings keep parsing.
func parseResources(c *cursor, hdr *header, secs *sectionTable, p *PE) {
	dir, ok := hdr.directory(dirResource)
	if !ok {
		return
	}
	base, ok := secs.rvaToOffset(dir.VirtualAddress)
	if !ok {
		directoryParseErrors.Add(1)
		return
	}

	var versionData *resource.DataEntry

	visited := map[uint32]struct{}{0: {}}
	stack := []resourceNode{{rel: 0}}
	entries := 0

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var d resource.Directory
		if !c.readInto(base+uint64(node.rel), &d) {
			failedResourceEntryReads.Add(1)
			continue
		}
		n := d.Entries()
		if entries+n > maxResourceEntries {
			maxResourceEntriesExceeded.Add(1)
			break
		}
		entries += n

		entryOffset := base + uint64(node.rel) + uint64(d.Size())
		for i := 0; i < n; i++ {
			var e resource.DirectoryEntry
			if !c.readInto(entryOffset+uint64(i)*uint64(e.Size()), &e) {
				failedResourceEntryReads.Add(1)
				break
			}
			child := resourceNode{
				rel:   e.DirOffset(),
				depth: node.depth + 1,
				typ:   node.typ,
				lang:  node.lang,
			}
			switch node.depth {
			case 0:
				child.typ = e.ID()
			case 2:
				child.lang = uint16(e.ID())
			}
			if e.IsDir() {
				if child.depth >= maxResourceDepth {
					continue
				}
				// revisiting a node offset means the tree references
				// itself; treat the branch as malformed
				if _, seen := visited[child.rel]; seen {
					directoryParseErrors.Add(1)
					continue
				}
				visited[child.rel] = struct{}{}
				stack = append(stack, child)
				continue
			}
			var data resource.DataEntry
			if !c.readInto(base+uint64(e.DirOffset()), &data) {
				failedResourceEntryReads.Add(1)
				continue
			}
			// leaves at or below the language level carry the LANGID
			// assigned by the depth-2 entry. Shallower leaves have no
			// language tag
			if node.depth >= 2 {
				p.addLocale(child.lang)
			}
			if child.typ == resource.Version && versionData == nil {
				versionData = &data
			}
		}
	}

	if versionData != nil {
		offset, ok := secs.rvaToOffset(versionData.OffsetToData)
		if !ok {
			versionResourcesParseErrors.Add(1)
			return
		}
		vers := parseVersionResources(c, offset)
		if vers == nil {
			versionResourcesParseErrors.Add(1)
			return
		}
		p.VersionResources = vers
	}
}
