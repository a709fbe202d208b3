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

package app

import (
	"github.com/peview/peview/pkg/config"
	"github.com/spf13/cobra"
)

// RootCmd is the entrance to peview CLI
var RootCmd = &cobra.Command{
	Use:   "peview",
	Short: "Portable Executable metadata extraction tool",
	Long: `
	Peview inspects Portable Executable images and surfaces the facts
	buried in their headers and data directories. It decodes sections,
	imported and exported symbols, version resources, authenticode
	signatures and the rich header stamp from hostile or well-formed
	binaries alike, without ever loading the image.
	`,
	SilenceUsage: true,
}

var cfg = config.New()

func init() {
	cfg.MustViperize(RootCmd)

	RootCmd.AddCommand(inspectCmd)
	RootCmd.AddCommand(fieldsCmd)
	RootCmd.AddCommand(versionCmd)
}
