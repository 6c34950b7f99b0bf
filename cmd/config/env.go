// Copyright 2026 The vnet Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Var struct {
	Key        string // e.g. "VNET_STATE_FILE"
	ViperKey   string // optional, e.g. "vnet/stateFile"
	Default    string // optional
	HasDefault bool
}

func DefineKV(envName, viperKey string, defaultVal ...string) Var {
	v := Var{Key: envName, ViperKey: viperKey}
	if len(defaultVal) > 0 {
		v.Default = defaultVal[0]
		v.HasDefault = true
	}
	return v
}

func (v *Var) EnvKey() string               { return v.Key }
func (v *Var) DefaultValue() (string, bool) { return v.Default, v.HasDefault }

// ValueOrDefault defines precedence: viper (if the key is present) → OS env →
// default → "".
func (v *Var) ValueOrDefault() string {
	if v.ViperKey != "" && viper.IsSet(v.ViperKey) {
		return viper.GetString(v.ViperKey)
	}
	if val, ok := os.LookupEnv(v.Key); ok {
		return val
	}
	if v.HasDefault {
		return v.Default
	}
	return ""
}

// BindEnv is safe if ViperKey is empty: does nothing.
func (v *Var) BindEnv() error {
	if v.ViperKey == "" {
		return nil
	}
	return viper.BindEnv(v.ViperKey, v.Key)
}

func (v *Var) Set(value string) error {
	return os.Setenv(v.Key, value)
}

// DefaultConfigFile returns the optional config file path under the user's
// home directory.
func DefaultConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".vnet", "config.yaml")
}

// ---- Declare statically (Viper key optional per var) ----.
var (
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	VNET_ROOT_VERBOSE = DefineKV("VNET_VERBOSE", "vnet/verbose")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	VNET_ROOT_LOG_LEVEL = DefineKV("VNET_LOG_LEVEL", "vnet/logLevel", "info")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	VNET_ROOT_CONFIG_FILE = DefineKV("VNET_CONFIG_FILE", "vnet/configFile")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	VNET_ROOT_STATE_FILE = DefineKV("VNET_STATE_FILE", "vnet/stateFile")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	VNET_ROOT_LOCK_FILE = DefineKV("VNET_LOCK_FILE", "vnet/lockFile")

	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	VNET_DELETE_FORCE = DefineKV("VNET_DELETE_FORCE", "vnet/delete/force")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	VNET_DELETE_ALL = DefineKV("VNET_DELETE_ALL", "vnet/delete/all")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	VNET_DELETE_QUIET = DefineKV("VNET_DELETE_QUIET", "vnet/delete/quiet")

	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	VNET_GET_STATE_OUTPUT = DefineKV("VNET_GET_STATE_OUTPUT", "vnet/get/state/output", "yaml")
)
