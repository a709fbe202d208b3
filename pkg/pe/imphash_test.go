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
	"testing"

	"github.com/stretchr/testify/assert"
)

func md5hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestImphash(t *testing.T) {
	imports := []Import{
		{Library: "KERNEL32.DLL", Functions: []ImportedFunction{
			{Name: "GetProcAddress"},
			{Name: "LoadLibraryW"},
		}},
		{Library: "oleaut32.dll", Functions: []ImportedFunction{
			{Ordinal: 6, ByOrdinal: true},
		}},
	}

	expected := md5hex("kernel32.getprocaddress,kernel32.loadlibraryw,oleaut32.ord6")
	assert.Equal(t, expected, imphash(imports))
}

func TestImphashNormalization(t *testing.T) {
	upper := []Import{
		{Library: "USER32.DLL", Functions: []ImportedFunction{{Name: "MessageBoxW"}}},
	}
	lower := []Import{
		{Library: "user32.dll", Functions: []ImportedFunction{{Name: "messageboxw"}}},
	}
	bare := []Import{
		{Library: "user32", Functions: []ImportedFunction{{Name: "MessageBoxW"}}},
	}

	// casing and extension form never influence the digest
	assert.Equal(t, imphash(upper), imphash(lower))
	assert.Equal(t, imphash(upper), imphash(bare))
}

func TestImphashExtensions(t *testing.T) {
	var tests = []struct {
		library string
		token   string
	}{
		{"kernel32.dll", "kernel32.sleep"},
		{"driver.sys", "driver.sleep"},
		{"control.ocx", "control.sleep"},
		{"weird.exe", "weird.exe.sleep"},
	}

	for _, tt := range tests {
		t.Run(tt.library, func(t *testing.T) {
			imports := []Import{{Library: tt.library, Functions: []ImportedFunction{{Name: "Sleep"}}}}
			assert.Equal(t, md5hex(tt.token), imphash(imports))
		})
	}
}

func TestImphashEmpty(t *testing.T) {
	// absent import directory degenerates to the digest of the empty string
	assert.Equal(t, md5hex(""), imphash(nil))
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", imphash([]Import{}))
}
