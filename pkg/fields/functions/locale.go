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

// Locale evaluates to true if any resource leaf carries the given 16-bit
// locale identifier.
type Locale struct{}

// Call matches the id against the resource locale set.
func (f Locale) Call(p *pe.PE, args []interface{}) (interface{}, bool) {
	if p == nil {
		return false, true
	}
	id, ok := intArg(args, 0)
	if !ok || id < 0 || id > 0xffff {
		return false, false
	}
	return p.HasLocale(uint16(id)), true
}

// Desc returns the function signature.
func (f Locale) Desc() FunctionDesc {
	return FunctionDesc{
		Name: LocaleFn,
		Args: []FunctionArgDesc{
			{Keyword: "id", Types: []ArgType{Number}, Required: true},
		},
	}
}

// Name returns the function identifier.
func (f Locale) Name() Fn { return LocaleFn }
