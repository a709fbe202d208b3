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

// Imports evaluates to true if the image imports the given function from
// the given library. The library comparison is case-insensitive while
// ordinal-only imports never match by name.
type Imports struct{}

// Call matches the library/function pair against the import directory.
func (f Imports) Call(p *pe.PE, args []interface{}) (interface{}, bool) {
	if p == nil {
		return false, true
	}
	lib, ok := stringArg(args, 0)
	if !ok {
		return false, false
	}
	name, ok := stringArg(args, 1)
	if !ok {
		return false, false
	}
	return p.HasImport(lib, name), true
}

// Desc returns the function signature.
func (f Imports) Desc() FunctionDesc {
	return FunctionDesc{
		Name: ImportsFn,
		Args: []FunctionArgDesc{
			{Keyword: "dll", Types: []ArgType{String}, Required: true},
			{Keyword: "name", Types: []ArgType{String}, Required: true},
		},
	}
}

// Name returns the function identifier.
func (f Imports) Name() Fn { return ImportsFn }
