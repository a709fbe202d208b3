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
	"expvar"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

var (
	skippedImages               = expvar.NewInt("pe.skipped.images")
	directoryParseErrors        = expvar.NewInt("pe.directory.parse.errors")
	versionResourcesParseErrors = expvar.NewInt("pe.version.resources.parse.errors")
	failedResourceEntryReads    = expvar.NewInt("pe.failed.resource.entry.reads")
	maxResourceEntriesExceeded  = expvar.NewInt("pe.max.resource.entries.exceeded")
)

type opts struct {
	parseImports   bool
	parseExports   bool
	parseResources bool
	parseSecurity  bool
	parseRich      bool
	sectionEntropy bool
	sectionMD5     bool
	calcImphash    bool
	excludedImages []string
}

func (o opts) isImageExcluded(path string) bool {
	base := imageBase(path)
	for _, img := range o.excludedImages {
		if strings.EqualFold(img, base) {
			skippedImages.Add(1)
			return true
		}
	}
	return false
}

// imageBase extracts the image file name from the path. Windows images
// are routinely scanned from non-Windows hosts, so both separators are
// honored regardless of the host convention.
func imageBase(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Option represents the option type for the PE parser.
type Option func(o *opts)

// WithExcludedImages provides a list of image paths for
// which the parsing is skipped.
func WithExcludedImages(images []string) Option {
	return func(o *opts) {
		o.excludedImages = images
	}
}

// WithImports indicates the import directory is parsed for imported symbols.
func WithImports() Option {
	return func(o *opts) {
		o.parseImports = true
	}
}

// WithExports indicates if the export directory is parsed.
func WithExports() Option {
	return func(o *opts) {
		o.parseExports = true
	}
}

// WithVersionResources indicates if the resource directory is walked for
// locale identifiers and version resources.
func WithVersionResources() Option {
	return func(o *opts) {
		o.parseResources = true
	}
}

// WithSecurity indicates if the security directory is parsed to extract
// authenticode signature information.
func WithSecurity() Option {
	return func(o *opts) {
		o.parseSecurity = true
	}
}

// WithRichHeader indicates if the encrypted compiler stamp header is
// located and decoded.
func WithRichHeader() Option {
	return func(o *opts) {
		o.parseRich = true
	}
}

// WithImphash indicates if the import hash (imphash) is calculated as part
// of PE parsing. Implies import directory parsing.
func WithImphash() Option {
	return func(o *opts) {
		o.calcImphash = true
		o.parseImports = true
	}
}

// WithSectionEntropy indicates if entropy is calculated for available sections.
func WithSectionEntropy() Option {
	return func(o *opts) {
		o.sectionEntropy = true
	}
}

// WithSectionMD5 indicates if MD5 hash is calculated for available sections.
func WithSectionMD5() Option {
	return func(o *opts) {
		o.sectionMD5 = true
	}
}

// WithAllDirectories turns on every directory parser along with the rich
// header decoder and the imphash calculation.
func WithAllDirectories() Option {
	return func(o *opts) {
		o.parseImports = true
		o.parseExports = true
		o.parseResources = true
		o.parseSecurity = true
		o.parseRich = true
		o.calcImphash = true
	}
}

// ParseFile parses the PE given the file system path and parser options.
func ParseFile(path string, options ...Option) (*PE, error) {
	var o opts
	for _, opt := range options {
		opt(&o)
	}
	if o.isImageExcluded(path) {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, ModeFile, options...)
}

// ParseFileWithConfig parses the PE given the file system path and the
// config which is usually read from the YAML file. Config flags are
// converted to parser options.
func ParseFileWithConfig(path string, config Config) (*PE, error) {
	if !config.Enabled {
		return nil, nil
	}
	return ParseFile(path, config.options()...)
}

// Parse parses the PE from the given byte buffer. The buffer is treated
// as immutable and is the only external state the parser ever touches.
// The mode designates whether the buffer holds the on-disk layout or a
// snapshot of process memory, which fixes the entry point interpretation
// for the lifetime of the returned PE.
//
// Parsing never faults on malformed input. Directories with out-of-range
// or cyclic internal offsets degrade to partial or absent fact sets while
// the remaining directories keep their values. Only a missing DOS/NT
// signature makes the whole input not-PE, reported via ErrNotPE.
func Parse(data []byte, mode Mode, options ...Option) (*PE, error) {
	var o opts
	for _, opt := range options {
		opt(&o)
	}

	c := newCursor(data)
	hdr, err := parseHeader(c)
	if err != nil {
		return nil, err
	}

	p := &PE{
		Is64:             hdr.is64,
		Mode:             mode,
		Machine:          hdr.machine,
		Subsystem:        hdr.subsystem,
		Characteristics:  hdr.characteristics,
		Timestamp:        hdr.timestamp,
		ImageBase:        hdr.imageBase,
		LinkerVersion:    hdr.linkerVersion,
		OSVersion:        hdr.osVersion,
		ImageVersion:     hdr.imageVersion,
		SubsystemVersion: hdr.subsystemVersion,
		NumberOfSections: hdr.numberOfSections,
	}

	secs := parseSections(c, hdr, o)
	p.Sections = secs.secs

	switch mode {
	case ModeMem:
		// in process memory the image is already mapped, so the entry
		// point is the absolute virtual address
		p.EntryPoint = hdr.imageBase + uint64(hdr.entryRVA)
		p.HasEntryPoint = true
	default:
		if off, ok := secs.rvaToOffset(hdr.entryRVA); ok {
			p.EntryPoint = off
			p.HasEntryPoint = true
		}
	}

	if o.parseImports {
		p.Imports = parseImports(c, hdr, secs)
	}
	if o.calcImphash {
		p.Imphash = imphash(p.Imports)
	}
	if o.parseExports {
		parseExports(c, hdr, secs, p)
	}
	if o.parseResources {
		parseResources(c, hdr, secs, p)
	}
	if o.parseSecurity {
		p.Signatures = parseSecurity(c, hdr)
	}
	if o.parseRich {
		p.RichHeader = parseRichHeader(c, uint32(hdr.ntOffset))
	}

	p.IsDLL = hdr.characteristics&DLL != 0
	p.IsExecutable = hdr.characteristics&ExecutableImage != 0 && !p.IsDLL
	p.IsDriver = p.isDriver()

	if p.RichHeader == nil && o.parseRich {
		log.Debugf("no rich header stamp found (machine %s)", p.Machine)
	}

	return p, nil
}

// isDriver determines if the PE is a Windows driver. Some driver samples
// carry no import directory at all, in which case typical driver section
// names combined with the native subsystem reveal the nature of the image.
func (pe *PE) isDriver() bool {
	// Prevent false positives such as ntdll.dll
	// because it has the PAGE section which is
	// driver-typical
	if pe.IsDLL {
		return false
	}
	systemDLLs := []string{"ntoskrnl.exe", "hal.dll", "ndis.sys",
		"bootvid.dll", "kdcom.dll"}
	for _, imp := range pe.Imports {
		for _, dll := range systemDLLs {
			if strings.EqualFold(imp.Library, dll) {
				return true
			}
		}
	}

	if pe.Subsystem != SubsystemNative && pe.Subsystem != SubsystemNativeWindows {
		return false
	}
	commonDriverSectionNames := []string{"page", "paged", "nonpage", "init"}
	for _, section := range pe.Sections {
		s := strings.ToLower(section.Name)
		for _, driverSection := range commonDriverSectionNames {
			if s == driverSection {
				return true
			}
		}
	}
	return false
}
