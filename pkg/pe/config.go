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
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	enabled        = "pe.enabled"
	readImports    = "pe.read-imports"
	readExports    = "pe.read-exports"
	readResources  = "pe.read-resources"
	readSecurity   = "pe.read-security"
	readRichHeader = "pe.read-rich-header"
	calcImphash    = "pe.imphash"
	sectionEntropy = "pe.section-entropy"
	sectionMD5     = "pe.section-md5"
	excludedImages = "pe.excluded-images"
)

// Config stores the preferences that dictate the behaviour of the PE parser.
type Config struct {
	Enabled        bool     `json:"pe.enabled" yaml:"pe.enabled" mapstructure:"enabled"`
	ReadImports    bool     `json:"pe.read-imports" yaml:"pe.read-imports" mapstructure:"read-imports"`
	ReadExports    bool     `json:"pe.read-exports" yaml:"pe.read-exports" mapstructure:"read-exports"`
	ReadResources  bool     `json:"pe.read-resources" yaml:"pe.read-resources" mapstructure:"read-resources"`
	ReadSecurity   bool     `json:"pe.read-security" yaml:"pe.read-security" mapstructure:"read-security"`
	ReadRichHeader bool     `json:"pe.read-rich-header" yaml:"pe.read-rich-header" mapstructure:"read-rich-header"`
	Imphash        bool     `json:"pe.imphash" yaml:"pe.imphash" mapstructure:"imphash"`
	SectionEntropy bool     `json:"pe.section-entropy" yaml:"pe.section-entropy" mapstructure:"section-entropy"`
	SectionMD5     bool     `json:"pe.section-md5" yaml:"pe.section-md5" mapstructure:"section-md5"`
	ExcludedImages []string `json:"pe.excluded-images" yaml:"pe.excluded-images" mapstructure:"excluded-images"`
}

// InitFromViper initializes PE config from Viper.
func (c *Config) InitFromViper(v *viper.Viper) {
	c.Enabled = v.GetBool(enabled)
	c.ReadImports = v.GetBool(readImports)
	c.ReadExports = v.GetBool(readExports)
	c.ReadResources = v.GetBool(readResources)
	c.ReadSecurity = v.GetBool(readSecurity)
	c.ReadRichHeader = v.GetBool(readRichHeader)
	c.Imphash = v.GetBool(calcImphash)
	c.SectionEntropy = v.GetBool(sectionEntropy)
	c.SectionMD5 = v.GetBool(sectionMD5)
	c.ExcludedImages = v.GetStringSlice(excludedImages)
}

// AddFlags registers persistent flags.
func AddFlags(flags *pflag.FlagSet) {
	flags.Bool(enabled, true, "Specifies if PE metadata is parsed from the image file")
	flags.Bool(readImports, true, "Determines if the import directory is parsed")
	flags.Bool(readExports, true, "Determines if the export directory is parsed")
	flags.Bool(readResources, true, "Determines if resources are read from the PE resource directory")
	flags.Bool(readSecurity, true, "Determines if authenticode signatures are extracted from the security directory")
	flags.Bool(readRichHeader, true, "Determines if the rich header stamp is located and decrypted")
	flags.Bool(calcImphash, true, "Indicates if the import hash is calculated as part of PE parsing")
	flags.Bool(sectionEntropy, false, "Indicates if Shannon entropy is computed for available sections")
	flags.Bool(sectionMD5, false, "Indicates if MD5 digests are computed for available sections")
	flags.StringSlice(excludedImages, []string{}, "Contains a list of comma-separated image names that are excluded from PE parsing")
}

// options converts config flags to parser options.
func (c Config) options() []Option {
	opts := make([]Option, 0)
	if len(c.ExcludedImages) > 0 {
		opts = append(opts, WithExcludedImages(c.ExcludedImages))
	}
	if c.ReadImports {
		opts = append(opts, WithImports())
	}
	if c.ReadExports {
		opts = append(opts, WithExports())
	}
	if c.ReadResources {
		opts = append(opts, WithVersionResources())
	}
	if c.ReadSecurity {
		opts = append(opts, WithSecurity())
	}
	if c.ReadRichHeader {
		opts = append(opts, WithRichHeader())
	}
	if c.Imphash {
		opts = append(opts, WithImphash())
	}
	if c.SectionEntropy {
		opts = append(opts, WithSectionEntropy())
	}
	if c.SectionMD5 {
		opts = append(opts, WithSectionMD5())
	}
	return opts
}
