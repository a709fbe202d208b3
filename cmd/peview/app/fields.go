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
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/peview/peview/pkg/fields"
	"github.com/spf13/cobra"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List available PE fields",
	Run:   listFields,
}

// listFields renders a table with available fields containing the name,
// description and the example expression.
func listFields(cmd *cobra.Command, args []string) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Name", "Description", "Example"})
	t.SetStyle(table.StyleLight)

	infos := make([]fields.FieldInfo, 0, len(fields.Lookup))
	for _, info := range fields.Lookup {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Field < infos[j].Field })

	for _, info := range infos {
		t.AppendRow(table.Row{info.Field, info.Description, strings.Join(info.Examples, ",")})
	}
	t.Render()
}
