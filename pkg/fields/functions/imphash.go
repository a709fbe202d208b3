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

package functions

import "github.com/peview/peview/pkg/pe"

// emptyImphash is the digest of the empty import set, i.e. md5("").
const emptyImphash = "d41d8cd98f00b204e9800998ecf8427e"

// Imphash returns the normalized MD5 digest of the image import table
// as a lowercase hex string.
type Imphash struct{}

// Call returns the import hash computed at parse time. Images rejected
// by the parser, or parsed without the import hash, degenerate to the
// digest of the empty import set.
func (f Imphash) Call(p *pe.PE, args []interface{}) (interface{}, bool) {
	if p == nil || p.Imphash == "" {
		return emptyImphash, true
	}
	return p.Imphash, true
}

// Desc returns the function signature.
func (f Imphash) Desc() FunctionDesc {
	return FunctionDesc{Name: ImphashFn}
}

// Name returns the function identifier.
func (f Imphash) Name() Fn { return ImphashFn }
