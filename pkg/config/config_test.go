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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	yml := `
pe:
  enabled: true
  read-imports: true
  read-resources: false
  imphash: true
  excluded-images: calc.exe,notepad.exe
logging:
  level: debug
  formatter: json
`
	file := filepath.Join(t.TempDir(), "peview.yml")
	require.NoError(t, os.WriteFile(file, []byte(yml), 0o644))

	c := New()
	c.MustViperize(&cobra.Command{})
	require.NoError(t, c.flags.Set(configFile, file))

	require.NoError(t, c.TryLoadFile(file))
	require.NoError(t, c.Init())
	require.NoError(t, c.Validate())

	assert.True(t, c.PE.Enabled)
	assert.True(t, c.PE.ReadImports)
	assert.False(t, c.PE.ReadResources)
	assert.True(t, c.PE.Imphash)
	// comma-separated scalars coalesce into slices
	assert.Equal(t, []string{"calc.exe", "notepad.exe"}, c.PE.ExcludedImages)

	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "json", c.Log.Formatter)
}

func TestMissingFileKeepsFlagDefaults(t *testing.T) {
	c := New()
	c.MustViperize(&cobra.Command{})

	require.NoError(t, c.TryLoadFile(filepath.Join(t.TempDir(), "nonexistent.yml")))
	require.NoError(t, c.Init())

	assert.True(t, c.PE.Enabled)
	assert.True(t, c.PE.ReadImports)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "text", c.Log.Formatter)
	assert.True(t, c.Log.LogStdout)
}

func TestValidateRejectsUnknownExtension(t *testing.T) {
	file := filepath.Join(t.TempDir(), "peview.toml")
	require.NoError(t, os.WriteFile(file, []byte("x = 1"), 0o644))

	c := New()
	c.MustViperize(&cobra.Command{})
	require.NoError(t, c.flags.Set(configFile, file))

	assert.Error(t, c.Validate())
}
