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

// Language evaluates to true if the low byte of any resource leaf locale
// equals the given 8-bit primary language identifier.
type Language struct{}

// Call matches the id against the resource language set.
func (f Language) Call(p *pe.PE, args []interface{}) (interface{}, bool) {
	if p == nil {
		return false, true
	}
	id, ok := intArg(args, 0)
	if !ok || id < 0 || id > 0xff {
		return false, false
	}
	return p.HasLanguage(uint8(id)), true
}

// Desc returns the function signature.
func (f Language) Desc() FunctionDesc {
	return FunctionDesc{
		Name: LanguageFn,
		Args: []FunctionArgDesc{
			{Keyword: "id", Types: []ArgType{Number}, Required: true},
		},
	}
}

// Name returns the function identifier.
func (f Language) Name() Fn { return LanguageFn }
