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

package fields

import (
	"testing"

	"github.com/peview/peview/pkg/pe"
	"github.com/stretchr/testify/assert"
)

func testPE() *pe.PE {
	return &pe.PE{
		Machine:          pe.MachineAMD64,
		Subsystem:        pe.SubsystemWindowsGUI,
		Characteristics:  pe.ExecutableImage | pe.LargeAddressAware,
		Timestamp:        1609459200,
		EntryPoint:       0x4120,
		HasEntryPoint:    true,
		ImageBase:        0x140000000,
		LinkerVersion:    pe.VersionPair{Major: 14, Minor: 2},
		NumberOfSections: 5,
		Sections: []pe.Sec{
			{Name: ".text", VirtualAddress: 0x1000},
		},
		Imports: []pe.Import{
			{Library: "kernel32.dll"},
			{Library: "user32.dll"},
		},
		Exports: []string{"CPlApplet"},
		Imphash: "f34d5f2d4577ed6d9ceec516c1f5a744",
		VersionResources: map[string]string{
			pe.Company:     "Microsoft Corporation",
			pe.ProductName: "Windows",
		},
		Signatures: []pe.Signature{
			{
				Issuer:    "CN=Microsoft Code Signing PCA",
				Subject:   "CN=Microsoft Corporation",
				Serial:    "33:00:00:02",
				NotBefore: 1600000000,
				NotAfter:  1700000000,
			},
		},
		RichHeader: &pe.RichHeader{Offset: 0x80, Length: 0x40, Key: 0xdeadbeef},
		IsDLL:      false,
	}
}

func TestGet(t *testing.T) {
	p := testPE()

	var tests = []struct {
		field    Field
		expected interface{}
	}{
		{PeMachine, "amd64"},
		{PeSubsystem, "windows_gui"},
		{PeTimestamp, uint32(1609459200)},
		{PeCharacteristics, uint16(0x0022)},
		{PeBaseAddress, uint64(0x140000000)},
		{PeEntrypoint, uint64(0x4120)},
		{PeLinkerVersion, "14.2"},
		{PeNumSections, uint16(5)},
		{PeImports, []string{"kernel32.dll", "user32.dll"}},
		{PeExports, []string{"CPlApplet"}},
		{PeImphash, "f34d5f2d4577ed6d9ceec516c1f5a744"},
		{PeNumSignatures, 1},
		{PeCertIssuer, "CN=Microsoft Code Signing PCA"},
		{PeCertSubject, "CN=Microsoft Corporation"},
		{PeCertSerial, "33:00:00:02"},
		{PeCertBefore, int64(1600000000)},
		{PeCertAfter, int64(1700000000)},
		{PeRichOffset, uint32(0x80)},
		{PeRichLength, uint32(0x40)},
		{PeRichKey, uint32(0xdeadbeef)},
		{PeCompany, "Microsoft Corporation"},
		{PeProduct, "Windows"},
		{PeIsDLL, false},
		{PeIsExecutable, false},
	}

	for _, tt := range tests {
		t.Run(tt.field.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, Get(tt.field, p))
		})
	}
}

func TestGetAbsentFacts(t *testing.T) {
	assert.Nil(t, Get(PeMachine, nil))

	p := &pe.PE{}
	assert.Nil(t, Get(PeEntrypoint, p))
	assert.Nil(t, Get(PeRichOffset, p))
	assert.Nil(t, Get(PeCertIssuer, p))
	assert.Nil(t, Get(Field("pe.nonexistent"), p))
}

func TestLookupCoversAllFields(t *testing.T) {
	for f, info := range Lookup {
		assert.Equal(t, f, info.Field)
		assert.NotEmpty(t, info.Description, "field %s has no description", f)
		assert.NotEmpty(t, info.Examples, "field %s has no examples", f)
	}
}

func TestIsCertField(t *testing.T) {
	assert.True(t, PeCertIssuer.IsCertField())
	assert.True(t, PeCertAfter.IsCertField())
	assert.False(t, PeMachine.IsCertField())
}
