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
	"github.com/peview/peview/pkg/pe"
)

// Get resolves the field value against the parsed image. Accessing any
// field of a nil image, or a fact the parser could not derive, yields
// nil. The accessor never panics since absence is always a legitimate
// terminal state for a fact.
func Get(f Field, p *pe.PE) interface{} {
	if p == nil {
		return nil
	}
	switch f {
	case PeMachine:
		return p.Machine.String()
	case PeSubsystem:
		return p.Subsystem.String()
	case PeTimestamp:
		return p.Timestamp
	case PeCharacteristics:
		return uint16(p.Characteristics)
	case PeBaseAddress:
		return p.ImageBase
	case PeEntrypoint:
		if !p.HasEntryPoint {
			return nil
		}
		return p.EntryPoint
	case PeLinkerVersion:
		return p.LinkerVersion.String()
	case PeOSVersion:
		return p.OSVersion.String()
	case PeImageVersion:
		return p.ImageVersion.String()
	case PeSubsystemVersion:
		return p.SubsystemVersion.String()
	case PeNumSections:
		return p.NumberOfSections
	case PeSections:
		return p.Sections
	case PeImports:
		libs := make([]string, 0, len(p.Imports))
		for _, imp := range p.Imports {
			libs = append(libs, imp.Library)
		}
		return libs
	case PeExports:
		return p.Exports
	case PeImphash:
		return p.Imphash
	case PeResources:
		return p.VersionResources
	case PeNumSignatures:
		return p.NumberOfSignatures()
	case PeCertIssuer, PeCertSubject, PeCertSerial, PeCertBefore, PeCertAfter:
		return certField(f, p)
	case PeRichOffset:
		if p.RichHeader == nil {
			return nil
		}
		return p.RichHeader.Offset
	case PeRichLength:
		if p.RichHeader == nil {
			return nil
		}
		return p.RichHeader.Length
	case PeRichKey:
		if p.RichHeader == nil {
			return nil
		}
		return p.RichHeader.Key
	case PeCompany:
		return p.VersionResources[pe.Company]
	case PeDescription:
		return p.VersionResources[pe.FileDescription]
	case PeFileVersion:
		return p.VersionResources[pe.FileVersion]
	case PeProduct:
		return p.VersionResources[pe.ProductName]
	case PeProductVersion:
		return p.VersionResources[pe.ProductVersion]
	case PeIsDLL:
		return p.IsDLL
	case PeIsDriver:
		return p.IsDriver
	case PeIsExecutable:
		return p.IsExecutable
	default:
		return nil
	}
}

// certField resolves fields of the first signature record. Rules needing
// the full signature sequence use the valid_on function or the signatures
// slice directly.
func certField(f Field, p *pe.PE) interface{} {
	if len(p.Signatures) == 0 {
		return nil
	}
	sig := p.Signatures[0]
	switch f {
	case PeCertIssuer:
		return sig.Issuer
	case PeCertSubject:
		return sig.Subject
	case PeCertSerial:
		return sig.Serial
	case PeCertBefore:
		return sig.NotBefore
	case PeCertAfter:
		return sig.NotAfter
	}
	return nil
}
