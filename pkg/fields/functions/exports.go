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

// Exports evaluates to true if the image exports the function with the
// given name. Ordinal-only exports never match.
type Exports struct{}

// Call matches the name against the export name table.
func (f Exports) Call(p *pe.PE, args []interface{}) (interface{}, bool) {
	if p == nil {
		return false, true
	}
	name, ok := stringArg(args, 0)
	if !ok {
		return false, false
	}
	return p.HasExport(name), true
}

// Desc returns the function signature.
func (f Exports) Desc() FunctionDesc {
	return FunctionDesc{
		Name: ExportsFn,
		Args: []FunctionArgDesc{
			{Keyword: "name", Types: []ArgType{String}, Required: true},
		},
	}
}

// Name returns the function identifier.
func (f Exports) Name() Fn { return ExportsFn }
