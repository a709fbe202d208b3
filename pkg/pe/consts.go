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

const (
	dosMagic  = 0x5a4d     // MZ
	ntMagic   = 0x00004550 // PE\0\0
	pe32Magic = 0x10b
	pe64Magic = 0x20b
)

// Data directory indexes in the optional header table.
const (
	dirExport   = 0
	dirImport   = 1
	dirResource = 2
	dirSecurity = 4
)

// Machine designates the target architecture declared in the file header.
type Machine uint16

// Machine types as declared in the IMAGE_FILE_HEADER.
const (
	MachineUnknown Machine = 0x0
	MachineI386    Machine = 0x14c
	MachineR4000   Machine = 0x166
	MachineIA64    Machine = 0x200
	MachineAMD64   Machine = 0x8664
	MachineARM     Machine = 0x1c0
	MachineARMNT   Machine = 0x1c4
	MachineARM64   Machine = 0xaa64
	MachineEBC     Machine = 0xebc
	MachineM32R    Machine = 0x9041
)

// String yields a human-readable machine type name.
func (m Machine) String() string {
	switch m {
	case MachineI386:
		return "i386"
	case MachineAMD64:
		return "amd64"
	case MachineARM:
		return "arm"
	case MachineARMNT:
		return "armnt"
	case MachineARM64:
		return "arm64"
	case MachineIA64:
		return "ia64"
	case MachineR4000:
		return "r4000"
	case MachineEBC:
		return "ebc"
	case MachineM32R:
		return "m32r"
	default:
		return "unknown"
	}
}

// Subsystem denotes the Windows subsystem required to run the image.
type Subsystem uint16

// Subsystems as declared in the optional header.
const (
	SubsystemUnknown        Subsystem = 0
	SubsystemNative         Subsystem = 1
	SubsystemWindowsGUI     Subsystem = 2
	SubsystemWindowsCUI     Subsystem = 3
	SubsystemOS2CUI         Subsystem = 5
	SubsystemPosixCUI       Subsystem = 7
	SubsystemNativeWindows  Subsystem = 8
	SubsystemWindowsCEGUI   Subsystem = 9
	SubsystemEFIApplication Subsystem = 10
	SubsystemEFIBootDriver  Subsystem = 11
	SubsystemEFIRuntime     Subsystem = 12
	SubsystemEFIROM         Subsystem = 13
	SubsystemXbox           Subsystem = 14
	SubsystemWindowsBootApp Subsystem = 16
)

// String yields a human-readable subsystem name.
func (s Subsystem) String() string {
	switch s {
	case SubsystemNative:
		return "native"
	case SubsystemWindowsGUI:
		return "windows_gui"
	case SubsystemWindowsCUI:
		return "windows_cui"
	case SubsystemOS2CUI:
		return "os2_cui"
	case SubsystemPosixCUI:
		return "posix_cui"
	case SubsystemNativeWindows:
		return "native_windows"
	case SubsystemWindowsCEGUI:
		return "windows_ce_gui"
	case SubsystemEFIApplication:
		return "efi_application"
	case SubsystemEFIBootDriver:
		return "efi_boot_service_driver"
	case SubsystemEFIRuntime:
		return "efi_runtime_driver"
	case SubsystemEFIROM:
		return "efi_rom"
	case SubsystemXbox:
		return "xbox"
	case SubsystemWindowsBootApp:
		return "windows_boot_application"
	default:
		return "unknown"
	}
}

// Characteristics is the bitmask describing attributes of the image.
type Characteristics uint16

// Image characteristics flags from the IMAGE_FILE_HEADER.
const (
	RelocsStripped       Characteristics = 0x0001
	ExecutableImage      Characteristics = 0x0002
	LineNumsStripped     Characteristics = 0x0004
	LocalSymsStripped    Characteristics = 0x0008
	AggressiveWSTrim     Characteristics = 0x0010
	LargeAddressAware    Characteristics = 0x0020
	BytesReversedLo      Characteristics = 0x0080
	Machine32Bit         Characteristics = 0x0100
	DebugStripped        Characteristics = 0x0200
	RemovableRunFromSwap Characteristics = 0x0400
	NetRunFromSwap       Characteristics = 0x0800
	System               Characteristics = 0x1000
	DLL                  Characteristics = 0x2000
	UPSystemOnly         Characteristics = 0x4000
	BytesReversedHi      Characteristics = 0x8000
)

// Section characteristics flags.
const (
	SectionCode               uint32 = 0x00000020
	SectionInitializedData    uint32 = 0x00000040
	SectionUninitializedData  uint32 = 0x00000080
	SectionMemDiscardable     uint32 = 0x02000000
	SectionMemNotCached       uint32 = 0x04000000
	SectionMemNotPaged        uint32 = 0x08000000
	SectionMemShared          uint32 = 0x10000000
	SectionMemExecute         uint32 = 0x20000000
	SectionMemRead            uint32 = 0x40000000
	SectionMemWrite           uint32 = 0x80000000
)
