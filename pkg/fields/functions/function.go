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

import (
	"strings"

	"github.com/peview/peview/pkg/pe"
)

// Fn is the type alias for function definitions.
type Fn uint16

const (
	// ExportsFn identifies the exports function
	ExportsFn Fn = iota + 1
	// ImportsFn identifies the imports function
	ImportsFn
	// LocaleFn identifies the locale function
	LocaleFn
	// LanguageFn identifies the language function
	LanguageFn
	// ImphashFn identifies the imphash function
	ImphashFn
	// ValidOnFn identifies the valid_on function
	ValidOnFn
)

// String yields the function keyword as referenced in rule expressions.
func (f Fn) String() string {
	switch f {
	case ExportsFn:
		return "exports"
	case ImportsFn:
		return "imports"
	case LocaleFn:
		return "locale"
	case LanguageFn:
		return "language"
	case ImphashFn:
		return "imphash"
	case ValidOnFn:
		return "valid_on"
	default:
		return "unknown"
	}
}

// ArgType is the type alias for the argument value type.
type ArgType uint8

const (
	// String represents the string argument type.
	String ArgType = iota
	// Number represents the integer argument type.
	Number
	// Unknown is the unknown argument type.
	Unknown
)

// String returns the argument type as a string value.
func (typ ArgType) String() string {
	switch typ {
	case String:
		return "string"
	case Number:
		return "number"
	}
	return "unknown"
}

// FunctionArgDesc describes a single function argument.
type FunctionArgDesc struct {
	Keyword  string
	Required bool
	Types    []ArgType
}

// FunctionDesc contains the function signature exposed to rule authors.
type FunctionDesc struct {
	Name Fn
	Args []FunctionArgDesc
}

// RequiredArgs returns the number of the mandatory function arguments.
func (f FunctionDesc) RequiredArgs() int {
	var n int
	for _, arg := range f.Args {
		if arg.Required {
			n++
		}
	}
	return n
}

// Function is the contract every queryable PE function satisfies. Call
// evaluates the function against the parsed image; the boolean result
// designates whether the evaluation produced a defined value. Functions
// are pure read accessors: the image fact set is never re-parsed, so
// repeated calls within one scan observe identical values.
type Function interface {
	Call(p *pe.PE, args []interface{}) (interface{}, bool)
	Desc() FunctionDesc
	Name() Fn
}

// All returns every registered function.
func All() []Function {
	return []Function{
		Exports{},
		Imports{},
		Locale{},
		Language{},
		Imphash{},
		ValidOn{},
	}
}

// Find resolves the function by its keyword.
func Find(keyword string) Function {
	for _, f := range All() {
		if f.Name().String() == strings.ToLower(keyword) {
			return f
		}
	}
	return nil
}

func stringArg(args []interface{}, i int) (string, bool) {
	if i >= len(args) {
		return "", false
	}
	s, ok := args[i].(string)
	return s, ok
}

func intArg(args []interface{}, i int) (int64, bool) {
	if i >= len(args) {
		return 0, false
	}
	switch n := args[i].(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}
