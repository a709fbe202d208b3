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
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/valyala/bytebufferpool"
)

// imphash computes the normalized MD5 digest of the import table. The
// normalization follows the pefile lineage so digests are comparable
// across tooling: library names are lowercased with any trailing .dll,
// .ocx, or .sys extension stripped, function names are lowercased, and
// ordinal imports render as ord<N> tokens. The lib.func tokens are then
// joined with commas across the whole import set and hashed. An absent
// import directory degenerates to the digest of the empty string.
//
// Two import tables differing only in name casing or extension form
// must produce identical digests. That equivalence is the entire point
// of the normalization.
func imphash(imports []Import) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, imp := range imports {
		lib := strings.ToLower(imp.Library)
		switch {
		case strings.HasSuffix(lib, ".dll"),
			strings.HasSuffix(lib, ".ocx"),
			strings.HasSuffix(lib, ".sys"):
			lib = lib[:len(lib)-4]
		}
		for _, fn := range imp.Functions {
			if buf.Len() > 0 {
				_ = buf.WriteByte(',')
			}
			_, _ = buf.WriteString(lib)
			_ = buf.WriteByte('.')
			if fn.ByOrdinal {
				_, _ = buf.WriteString("ord")
				_, _ = buf.WriteString(strconv.FormatUint(uint64(fn.Ordinal), 10))
			} else {
				_, _ = buf.WriteString(strings.ToLower(fn.Name))
			}
		}
	}

	sum := md5.Sum(buf.Bytes())
	return hex.EncodeToString(sum[:])
}
