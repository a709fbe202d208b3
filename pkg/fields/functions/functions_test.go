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
	"testing"

	"github.com/peview/peview/pkg/pe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	for _, f := range All() {
		found := Find(f.Name().String())
		require.NotNil(t, found)
		assert.Equal(t, f.Name(), found.Name())
	}

	assert.NotNil(t, Find("EXPORTS"))
	assert.Nil(t, Find("nonexistent"))
}

func TestExportsCall(t *testing.T) {
	p := &pe.PE{Exports: []string{"CPlApplet", "DllRegisterServer"}}

	v, ok := Exports{}.Call(p, []interface{}{"CPlApplet"})
	require.True(t, ok)
	assert.Equal(t, true, v)

	v, ok = Exports{}.Call(p, []interface{}{"DllGetClassObject"})
	require.True(t, ok)
	assert.Equal(t, false, v)

	// missing argument renders the call undefined
	_, ok = Exports{}.Call(p, nil)
	assert.False(t, ok)

	v, ok = Exports{}.Call(nil, []interface{}{"CPlApplet"})
	require.True(t, ok)
	assert.Equal(t, false, v)
}

func TestImportsCall(t *testing.T) {
	p := &pe.PE{Imports: []pe.Import{
		{Library: "KERNEL32.dll", Functions: []pe.ImportedFunction{
			{Name: "GetProcAddress"},
			{Ordinal: 17, ByOrdinal: true},
		}},
	}}

	v, ok := Imports{}.Call(p, []interface{}{"kernel32.dll", "GetProcAddress"})
	require.True(t, ok)
	assert.Equal(t, true, v)

	// ordinal imports never match by name
	v, ok = Imports{}.Call(p, []interface{}{"kernel32.dll", ""})
	require.True(t, ok)
	assert.Equal(t, false, v)

	_, ok = Imports{}.Call(p, []interface{}{"kernel32.dll"})
	assert.False(t, ok)
}

func TestLocaleLanguageCall(t *testing.T) {
	p := &pe.PE{}

	v, ok := Locale{}.Call(p, []interface{}{0x0409})
	require.True(t, ok)
	assert.Equal(t, false, v)

	_, ok = Locale{}.Call(p, []interface{}{0x10000})
	assert.False(t, ok)

	v, ok = Language{}.Call(p, []interface{}{0x09})
	require.True(t, ok)
	assert.Equal(t, false, v)

	_, ok = Language{}.Call(p, []interface{}{0x100})
	assert.False(t, ok)

	_, ok = Language{}.Call(p, []interface{}{"english"})
	assert.False(t, ok)
}

func TestImphashCall(t *testing.T) {
	p := &pe.PE{Imphash: "f34d5f2d4577ed6d9ceec516c1f5a744"}

	v, ok := Imphash{}.Call(p, nil)
	require.True(t, ok)
	assert.Equal(t, "f34d5f2d4577ed6d9ceec516c1f5a744", v)

	// an absent image degenerates to the empty import set digest
	v, ok = Imphash{}.Call(nil, nil)
	require.True(t, ok)
	assert.Equal(t, emptyImphash, v)

	v, ok = Imphash{}.Call(&pe.PE{}, nil)
	require.True(t, ok)
	assert.Equal(t, emptyImphash, v)
}

func TestImphashCallNotPE(t *testing.T) {
	// garbage input yields no image at all, yet the accessor still
	// reports the empty import set digest instead of faulting
	p, err := pe.Parse(make([]byte, 10), pe.ModeFile)
	require.ErrorIs(t, err, pe.ErrNotPE)
	require.Nil(t, p)

	v, ok := Imphash{}.Call(p, nil)
	require.True(t, ok)
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", v)
}

func TestValidOnCall(t *testing.T) {
	p := &pe.PE{Signatures: []pe.Signature{
		{NotBefore: 1000, NotAfter: 2000},
		{NotBefore: 5000, NotAfter: 6000},
	}}

	var tests = []struct {
		ts       int64
		expected bool
	}{
		{999, false},
		{1000, true},
		{2000, true},
		{2001, false},
		{5500, true},
		{6001, false},
	}

	for _, tt := range tests {
		v, ok := ValidOn{}.Call(p, []interface{}{tt.ts})
		require.True(t, ok)
		assert.Equal(t, tt.expected, v, "timestamp %d", tt.ts)
	}

	_, ok := ValidOn{}.Call(p, []interface{}{"not a timestamp"})
	assert.False(t, ok)

	v, ok := ValidOn{}.Call(&pe.PE{}, []interface{}{int64(1500)})
	require.True(t, ok)
	assert.Equal(t, false, v)
}

func TestDescriptors(t *testing.T) {
	for _, f := range All() {
		desc := f.Desc()
		assert.Equal(t, f.Name(), desc.Name)
		for _, arg := range desc.Args {
			assert.NotEmpty(t, arg.Keyword)
		}
	}

	assert.Equal(t, 1, Exports{}.Desc().RequiredArgs())
	assert.Equal(t, 2, Imports{}.Desc().RequiredArgs())
	assert.Equal(t, 1, ValidOn{}.Desc().RequiredArgs())
}
