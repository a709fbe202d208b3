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

import "strings"

// Field represents the type for the PE field literals the rule engine
// can reference in filter expressions.
type Field string

const (
	// PeMachine represents the target architecture
	PeMachine Field = "pe.machine"
	// PeSubsystem represents the Windows subsystem
	PeSubsystem Field = "pe.subsystem"
	// PeTimestamp is the raw link timestamp
	PeTimestamp Field = "pe.timestamp"
	// PeCharacteristics is the image attributes bitmask
	PeCharacteristics Field = "pe.characteristics"
	// PeBaseAddress represents the base address when the binary is loaded
	PeBaseAddress Field = "pe.address.base"
	// PeEntrypoint is the address of the entrypoint function
	PeEntrypoint Field = "pe.address.entrypoint"
	// PeLinkerVersion is the linker major/minor version pair
	PeLinkerVersion Field = "pe.linker.version"
	// PeOSVersion is the required operating system version pair
	PeOSVersion Field = "pe.os.version"
	// PeImageVersion is the image version pair
	PeImageVersion Field = "pe.image.version"
	// PeSubsystemVersion is the subsystem version pair
	PeSubsystemVersion Field = "pe.subsystem.version"
	// PeNumSections represents the number of sections
	PeNumSections Field = "pe.nsections"
	// PeSections represents distinct section records
	PeSections Field = "pe.sections"
	// PeImports represents the imported libraries
	PeImports Field = "pe.imports"
	// PeExports represents the exported function names
	PeExports Field = "pe.exports"
	// PeImphash is the normalized import table digest
	PeImphash Field = "pe.imphash"
	// PeResources represents PE version resources
	PeResources Field = "pe.resources"
	// PeNumSignatures represents the number of extracted signature records
	PeNumSignatures Field = "pe.nsignatures"
	// PeCertIssuer is the distinguished name of the leaf certificate issuer
	PeCertIssuer Field = "pe.cert.issuer"
	// PeCertSubject is the distinguished name of the leaf certificate subject
	PeCertSubject Field = "pe.cert.subject"
	// PeCertSerial is the leaf certificate serial number
	PeCertSerial Field = "pe.cert.serial"
	// PeCertBefore is the start of the certificate validity window
	PeCertBefore Field = "pe.cert.before"
	// PeCertAfter is the end of the certificate validity window
	PeCertAfter Field = "pe.cert.after"
	// PeRichOffset is the file offset of the rich header stamp
	PeRichOffset Field = "pe.rich.offset"
	// PeRichLength is the byte length of the rich header stamp
	PeRichLength Field = "pe.rich.length"
	// PeRichKey is the rich header XOR key
	PeRichKey Field = "pe.rich.key"
	// PeCompany represents the company name resource entry
	PeCompany Field = "pe.company"
	// PeDescription represents the file description resource entry
	PeDescription Field = "pe.description"
	// PeFileVersion represents the file version resource entry
	PeFileVersion Field = "pe.file.version"
	// PeProduct represents the product name resource entry
	PeProduct Field = "pe.product"
	// PeProductVersion represents the product version resource entry
	PeProductVersion Field = "pe.product.version"
	// PeIsDLL indicates if the file is a DLL
	PeIsDLL Field = "pe.is_dll"
	// PeIsDriver indicates if the file is a driver
	PeIsDriver Field = "pe.is_driver"
	// PeIsExecutable indicates if the file is an executable image
	PeIsExecutable Field = "pe.is_exec"
)

// String casts the field type to string.
func (f Field) String() string { return string(f) }

// IsCertField determines if the field references certificate data.
func (f Field) IsCertField() bool { return strings.HasPrefix(string(f), "pe.cert.") }

// FieldInfo is the field metadata exposed to rule authors.
type FieldInfo struct {
	Field       Field
	Description string
	Examples    []string
}

// Lookup contains the descriptions and examples of all exposed fields.
var Lookup = map[Field]FieldInfo{
	PeMachine:          {PeMachine, "target machine architecture", []string{"pe.machine = 'amd64'"}},
	PeSubsystem:        {PeSubsystem, "required Windows subsystem", []string{"pe.subsystem = 'windows_gui'"}},
	PeTimestamp:        {PeTimestamp, "untrusted link timestamp", []string{"pe.timestamp > 1609459200"}},
	PeCharacteristics:  {PeCharacteristics, "image characteristics bitmask", []string{"pe.characteristics & 0x2000 != 0"}},
	PeBaseAddress:      {PeBaseAddress, "image base address", []string{"pe.address.base = 140000000"}},
	PeEntrypoint:       {PeEntrypoint, "address of the entrypoint function", []string{"pe.address.entrypoint = 20110"}},
	PeLinkerVersion:    {PeLinkerVersion, "linker version pair", []string{"pe.linker.version = '14.0'"}},
	PeOSVersion:        {PeOSVersion, "required operating system version pair", []string{"pe.os.version = '6.0'"}},
	PeImageVersion:     {PeImageVersion, "image version pair", []string{"pe.image.version = '1.0'"}},
	PeSubsystemVersion: {PeSubsystemVersion, "subsystem version pair", []string{"pe.subsystem.version = '6.0'"}},
	PeNumSections:      {PeNumSections, "number of sections", []string{"pe.nsections < 5"}},
	PeSections:         {PeSections, "section records", []string{"pe.sections[0].name = '.text'"}},
	PeImports:          {PeImports, "imported libraries", []string{"pe.imports in ('kernel32.dll')"}},
	PeExports:          {PeExports, "exported function names", []string{"pe.exports in ('CPlApplet')"}},
	PeImphash:          {PeImphash, "normalized import table digest", []string{"pe.imphash = 'f34d5f2d4577ed6d9ceec516c1f5a744'"}},
	PeResources:        {PeResources, "version resources", []string{"pe.resources[CompanyName] = 'Microsoft Corporation'"}},
	PeNumSignatures:    {PeNumSignatures, "number of signature records", []string{"pe.nsignatures > 0"}},
	PeCertIssuer:       {PeCertIssuer, "leaf certificate issuer", []string{"pe.cert.issuer contains 'DigiCert'"}},
	PeCertSubject:      {PeCertSubject, "leaf certificate subject", []string{"pe.cert.subject contains 'Microsoft'"}},
	PeCertSerial:       {PeCertSerial, "leaf certificate serial number", []string{"pe.cert.serial = '33:00:00:02'"}},
	PeCertBefore:       {PeCertBefore, "certificate validity start", []string{"pe.cert.before < 1609459200"}},
	PeCertAfter:        {PeCertAfter, "certificate validity end", []string{"pe.cert.after > 1609459200"}},
	PeRichOffset:       {PeRichOffset, "rich header stamp offset", []string{"pe.rich.offset = 128"}},
	PeRichLength:       {PeRichLength, "rich header stamp length", []string{"pe.rich.length > 0"}},
	PeRichKey:          {PeRichKey, "rich header XOR key", []string{"pe.rich.key != 0"}},
	PeCompany:          {PeCompany, "company name resource entry", []string{"pe.company = 'Microsoft Corporation'"}},
	PeDescription:      {PeDescription, "file description resource entry", []string{"pe.description = 'Notepad'"}},
	PeFileVersion:      {PeFileVersion, "file version resource entry", []string{"pe.file.version contains '10.0'"}},
	PeProduct:          {PeProduct, "product name resource entry", []string{"pe.product contains 'Windows'"}},
	PeProductVersion:   {PeProductVersion, "product version resource entry", []string{"pe.product.version contains '10.0'"}},
	PeIsDLL:            {PeIsDLL, "indicates if the file is a DLL", []string{"pe.is_dll"}},
	PeIsDriver:         {PeIsDriver, "indicates if the file is a driver", []string{"pe.is_driver"}},
	PeIsExecutable:     {PeIsExecutable, "indicates if the file is an executable image", []string{"pe.is_exec"}},
}
