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

// ValidOn evaluates to true if the timestamp falls inside the validity
// window of any extracted signature. The check is purely temporal, no
// trust chain or revocation validation happens here.
type ValidOn struct{}

// Call matches the timestamp against the signature validity windows.
func (f ValidOn) Call(p *pe.PE, args []interface{}) (interface{}, bool) {
	if p == nil {
		return false, true
	}
	ts, ok := intArg(args, 0)
	if !ok {
		return false, false
	}
	for _, sig := range p.Signatures {
		if sig.ValidOn(ts) {
			return true, true
		}
	}
	return false, true
}

// Desc returns the function signature.
func (f ValidOn) Desc() FunctionDesc {
	return FunctionDesc{
		Name: ValidOnFn,
		Args: []FunctionArgDesc{
			{Keyword: "timestamp", Types: []ArgType{Number}, Required: true},
		},
	}
}

// Name returns the function identifier.
func (f ValidOn) Name() Fn { return ValidOnFn }
