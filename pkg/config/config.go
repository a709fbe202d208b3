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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peview/peview/pkg/pe"
	"github.com/peview/peview/pkg/util/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const configFile = "config-file"

// Config stores the application-wide preferences. Sections come from
// the configuration file, environment variables or command line flags,
// where the latter always takes the precedence.
type Config struct {
	// PE stores the preferences that dictate the behaviour of the PE parser.
	PE pe.Config `json:"pe" yaml:"pe"`
	// Log contains log-specific configuration options.
	Log log.Config `json:"logging" yaml:"logging"`

	flags *pflag.FlagSet
	viper *viper.Viper
}

// New builds a fresh config instance with the full flag set registered.
func New() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	flagSet := new(pflag.FlagSet)

	c := &Config{
		PE:    pe.Config{},
		Log:   log.Config{},
		viper: v,
		flags: flagSet,
	}

	flagSet.String(configFile, defaultConfigFile(), "Specifies the location of the configuration file")
	pe.AddFlags(flagSet)
	log.AddFlags(flagSet)

	return c
}

func defaultConfigFile() string {
	exe, err := os.Executable()
	if err != nil {
		return "config/peview.yml"
	}
	return filepath.Join(filepath.Dir(exe), "config", "peview.yml")
}

// File gets the path of the configuration file from the Viper value.
func (c *Config) File() string { return c.viper.GetString(configFile) }

// TryLoadFile attempts to load the configuration file from specified path on the file system.
func (c *Config) TryLoadFile(file string) error {
	if _, err := os.Stat(file); err != nil {
		// missing config file is fine, flags and env vars still apply
		return nil
	}
	c.viper.SetConfigFile(file)
	return c.viper.ReadInConfig()
}

// Init reads all configuration sections from the Viper state.
func (c *Config) Init() error {
	c.PE.InitFromViper(c.viper)
	c.Log.InitFromViper(c.viper)
	// run the pe section through the decoder so comma-separated
	// scalars coming from the file coalesce into slices
	if m := c.viper.GetStringMap("pe"); len(m) > 0 {
		if err := decode(m, &c.PE); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the config file structure is well-formed.
func (c *Config) Validate() error {
	file := c.File()
	b, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var out interface{}
	switch filepath.Ext(file) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &out)
	case ".json":
		err = json.Unmarshal(b, &out)
	default:
		return fmt.Errorf("%s is not a supported config file extension", filepath.Ext(file))
	}
	if err != nil {
		return fmt.Errorf("couldn't read the config file: %v", err)
	}
	return nil
}

// MustViperize adds the flag set to the Cobra command and binds them within the Viper flags.
func (c *Config) MustViperize(cmd *cobra.Command) {
	cmd.PersistentFlags().AddFlagSet(c.flags)
	if err := c.viper.BindPFlags(cmd.PersistentFlags()); err != nil {
		panic(err)
	}
}
