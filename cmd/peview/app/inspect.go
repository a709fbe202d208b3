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
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/peview/peview/cmd/peview/common"
	"github.com/peview/peview/pkg/pe"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <image>",
	Short: "Extract PE metadata from the image file",
	Args:  cobra.ExactArgs(1),
	RunE:  inspect,
}

var jsonOutput bool

func init() {
	inspectCmd.Flags().BoolVar(&jsonOutput, "json", false, "Dumps PE metadata in JSON format")
}

func inspect(cmd *cobra.Command, args []string) error {
	if err := common.Init(cfg); err != nil {
		return err
	}

	p, err := pe.ParseFileWithConfig(args[0], cfg.PE)
	if err != nil {
		return errors.Wrapf(err, "unable to parse %s", args[0])
	}
	if p == nil {
		fmt.Fprintf(os.Stdout, "%s: parsing skipped\n", args[0])
		return nil
	}

	if jsonOutput {
		b, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(append(b, '\n'))
		return err
	}

	render(p)

	return nil
}

func render(p *pe.PE) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendRow(table.Row{"Machine", p.Machine.String()})
	t.AppendRow(table.Row{"Subsystem", p.Subsystem.String()})
	t.AppendRow(table.Row{"Characteristics", fmt.Sprintf("%#x", uint16(p.Characteristics))})
	t.AppendRow(table.Row{"Timestamp", time.Unix(int64(p.Timestamp), 0).UTC().Format(time.RFC3339)})
	t.AppendRow(table.Row{"Image base", fmt.Sprintf("%#x", p.ImageBase)})
	if p.HasEntryPoint {
		t.AppendRow(table.Row{"Entrypoint", fmt.Sprintf("%#x", p.EntryPoint)})
	} else {
		t.AppendRow(table.Row{"Entrypoint", "n/a"})
	}
	t.AppendRow(table.Row{"Linker version", p.LinkerVersion.String()})
	t.AppendRow(table.Row{"OS version", p.OSVersion.String()})
	t.AppendRow(table.Row{"Number of sections", p.NumberOfSections})
	if p.Imphash != "" {
		t.AppendRow(table.Row{"Imphash", p.Imphash})
	}
	t.AppendRow(table.Row{"DLL", p.IsDLL})
	t.AppendRow(table.Row{"Driver", p.IsDriver})
	t.AppendRow(table.Row{"Executable", p.IsExecutable})
	if p.RichHeader != nil {
		t.AppendRow(table.Row{"Rich header", fmt.Sprintf("offset %d, length %d, key %#x",
			p.RichHeader.Offset, p.RichHeader.Length, p.RichHeader.Key)})
	}
	t.Render()

	renderSections(p)
	renderImports(p)
	renderResources(p)
	renderSignatures(p)
}

func renderSections(p *pe.PE) {
	if len(p.Sections) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Name", "Virtual address", "Virtual size", "Raw size", "Entropy", "MD5"})
	t.SetStyle(table.StyleLight)
	for _, sec := range p.Sections {
		t.AppendRow(table.Row{
			sec.Name,
			fmt.Sprintf("%#x", sec.VirtualAddress),
			humanize.Bytes(uint64(sec.VirtualSize)),
			humanize.Bytes(uint64(sec.RawDataSize)),
			fmt.Sprintf("%.2f", sec.Entropy),
			sec.Md5,
		})
	}
	t.Render()
}

func renderImports(p *pe.PE) {
	if len(p.Imports) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Library", "Functions"})
	t.SetStyle(table.StyleLight)
	for _, imp := range p.Imports {
		t.AppendRow(table.Row{imp.Library, len(imp.Functions)})
	}
	t.Render()
}

func renderResources(p *pe.PE) {
	if len(p.VersionResources) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Resource", "Value"})
	t.SetStyle(table.StyleLight)
	for k, v := range p.VersionResources {
		t.AppendRow(table.Row{k, v})
	}
	t.Render()
}

func renderSignatures(p *pe.PE) {
	if len(p.Signatures) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Subject", "Issuer", "Serial", "Not before", "Not after"})
	t.SetStyle(table.StyleLight)
	for _, sig := range p.Signatures {
		t.AppendRow(table.Row{
			sig.Subject,
			sig.Issuer,
			sig.Serial,
			time.Unix(sig.NotBefore, 0).UTC().Format(time.RFC3339),
			time.Unix(sig.NotAfter, 0).UTC().Format(time.RFC3339),
		})
	}
	t.Render()
}
